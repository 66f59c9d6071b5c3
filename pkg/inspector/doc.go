// Package inspector implements the selection state machine and the overlay
// it produces.
//
// A [Controller] holds the current node set, the selection and the spacings
// derived from them. Hosts feed it events:
//
//   - [Controller.OnNodeSetUpdated] after every published layout pass
//   - [Controller.Tap] and [Controller.DoubleTap] for gestures on a node
//   - [Controller.SetEnabled] and [Controller.ToggleInspection]
//   - [Controller.OnSelectionChanged] to set the selection by id
//
// and reads back [Controller.Overlay], a flat list of render instructions
// (bordered boxes, labels and measurement lines with z-order) that any
// renderer can draw.
//
// # States
//
//	Idle ──Tap(n)──────────▶ Selected(n)
//	Selected(n) ──Tap(n)───▶ Idle
//	Selected(n) ──Tap(m)───▶ Selected(m)
//	Selected(n) ──DoubleTap(m)──▶ SelectedWithFocus(n, m)
//	SelectedWithFocus(n, _) ──Tap(n)──▶ Idle
//	SelectedWithFocus(n, _) ──Tap(m)──▶ Selected(m)
//
// A double tap while idle selects. A double tap on the selected node itself
// changes nothing. Disabling inspection always returns to Idle and empties
// the overlay.
//
// Entering Selected computes [spacing.All] for the selected node. Entering
// SelectedWithFocus computes [spacing.Direct] between the selected and the
// focused node. Both are recomputed on every node set update, after the
// selection has been re-resolved by id against the new set.
//
// Events are serialised with a mutex: each one runs to completion before the
// next, whichever goroutine delivers it.
package inspector
