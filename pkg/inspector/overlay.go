package inspector

import (
	"cmp"
	"slices"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/spacing"
)

// Z-order constants for overlay elements.
const (
	// LabelZ places size labels and measurement lines above every box.
	LabelZ = 1000
	// SelectionLift raises selected and focused boxes above siblings at the
	// same depth.
	SelectionLift = 0.5
)

// Role says why a box is drawn the way it is.
type Role int

const (
	RolePlain Role = iota
	RoleConnected
	RoleFocused
	RoleSelected
)

func (r Role) String() string {
	switch r {
	case RoleConnected:
		return "connected"
	case RoleFocused:
		return "focused"
	case RoleSelected:
		return "selected"
	}
	return "plain"
}

// Anchor says which point of a label At refers to.
type Anchor int

const (
	AnchorTopLeading Anchor = iota
	AnchorCenter
)

// Box is a bordered, unfilled rectangle over one node.
type Box struct {
	Node  node.Node
	Role  Role
	Color string
	Width float64
	Z     float64
}

// Label is a short text on a filled background.
type Label struct {
	Text       string
	At         geometry.Point
	Anchor     Anchor
	Foreground string
	Background string
	Z          float64
}

// Line is a measurement between two edges, labelled at its midpoint.
type Line struct {
	Spacing spacing.Spacing
	Start   geometry.Point
	End     geometry.Point
	Color   string
	Width   float64
	Z       float64
	Label   Label
}

// Overlay is the full set of render instructions for one controller state.
// Boxes are in render order; use [Overlay.Stacked] to draw by z.
type Overlay struct {
	Boxes  []Box
	Labels []Label
	Lines  []Line
}

// Empty reports whether there is nothing to draw.
func (o Overlay) Empty() bool {
	return len(o.Boxes) == 0 && len(o.Labels) == 0 && len(o.Lines) == 0
}

// Stacked returns the boxes sorted by ascending z. Boxes with equal z keep
// render order.
func (o Overlay) Stacked() []Box {
	out := slices.Clone(o.Boxes)
	slices.SortStableFunc(out, func(a, b Box) int { return cmp.Compare(a.Z, b.Z) })
	return out
}

// Box returns the first box drawn for id.
func (o Overlay) Box(id string) (Box, bool) {
	for _, b := range o.Boxes {
		if b.Node.ID == id {
			return b, true
		}
	}
	return Box{}, false
}

// Overlay builds the render instructions for the current state. A disabled
// controller returns an empty overlay.
func (c *Controller) Overlay() Overlay {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return Overlay{}
	}
	return buildOverlay(c.set, c.z, c.sel, c.spacings, c.style)
}

func buildOverlay(set node.Set, z map[string]int, sel Selection, spacings []spacing.Spacing, style Style) Overlay {
	connected := make(map[string]bool, len(spacings))
	for _, s := range spacings {
		connected[s.To.ID] = true
	}
	selID, focusID := sel.IDs()

	var o Overlay
	for _, n := range set.Nodes() {
		b := Box{
			Node:  n,
			Role:  RolePlain,
			Color: style.Border,
			Width: style.Regular,
			Z:     float64(z[n.ID]),
		}
		switch {
		case n.ID == selID:
			b.Role = RoleSelected
		case focusID != "" && n.ID == focusID:
			b.Role = RoleFocused
		case connected[n.ID]:
			b.Role = RoleConnected
		}
		if b.Role == RoleSelected || b.Role == RoleFocused {
			b.Color = style.Highlight
			b.Z += SelectionLift
		}
		if b.Role != RolePlain {
			b.Width = style.Emphasized
		}
		o.Boxes = append(o.Boxes, b)
	}

	if sel.State == Idle {
		return o
	}

	o.Labels = append(o.Labels, Label{
		Text:       sel.Selected.SizeLabel(),
		At:         sel.Selected.Frame.Origin(),
		Anchor:     AnchorTopLeading,
		Foreground: style.LabelText,
		Background: style.Highlight,
		Z:          LabelZ,
	})

	for _, s := range spacings {
		o.Lines = append(o.Lines, Line{
			Spacing: s,
			Start:   s.Start(),
			End:     s.End(),
			Color:   style.Highlight,
			Width:   style.Regular,
			Z:       LabelZ,
			Label: Label{
				Text:       s.Label(),
				At:         s.Mid(),
				Anchor:     AnchorCenter,
				Foreground: style.LabelText,
				Background: style.Highlight,
				Z:          LabelZ,
			},
		})
	}
	return o
}
