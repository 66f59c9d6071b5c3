package inspector

import (
	"fmt"

	"github.com/matzehuels/framescope/pkg/node"
)

// State is the controller's selection state.
type State int

const (
	Idle State = iota
	Selected
	SelectedWithFocus
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	case SelectedWithFocus:
		return "focused"
	}
	return "idle"
}

// Selection is the selected and optionally focused node. Nodes are only
// meaningful for states that carry them.
type Selection struct {
	State    State
	Selected node.Node
	Focused  node.Node
}

// IDs returns the selected and focused ids, empty where the state carries
// no node.
func (s Selection) IDs() (selected, focused string) {
	switch s.State {
	case Selected:
		return s.Selected.ID, ""
	case SelectedWithFocus:
		return s.Selected.ID, s.Focused.ID
	}
	return "", ""
}

// Same reports whether s and other are the same state over the same ids.
func (s Selection) Same(other Selection) bool {
	a1, b1 := s.IDs()
	a2, b2 := other.IDs()
	return s.State == other.State && a1 == a2 && b1 == b2
}

func (s Selection) String() string {
	switch s.State {
	case Selected:
		return fmt.Sprintf("selected(%s)", s.Selected.ID)
	case SelectedWithFocus:
		return fmt.Sprintf("selected(%s) focus(%s)", s.Selected.ID, s.Focused.ID)
	}
	return "idle"
}

func idle() Selection { return Selection{} }

func selected(n node.Node) Selection {
	return Selection{State: Selected, Selected: n}
}

func withFocus(sel, focus node.Node) Selection {
	return Selection{State: SelectedWithFocus, Selected: sel, Focused: focus}
}

// afterTap returns the state reached by tapping n.
func afterTap(s Selection, n node.Node) Selection {
	if s.State == Idle {
		return selected(n)
	}
	if s.Selected.Equal(n) {
		return idle()
	}
	return selected(n)
}

// afterDoubleTap returns the state reached by double tapping n.
func afterDoubleTap(s Selection, n node.Node) Selection {
	if s.State == Idle {
		return selected(n)
	}
	if s.Selected.Equal(n) {
		return s
	}
	return withFocus(s.Selected, n)
}

// resolve re-binds s to the nodes of set by id. A vanished selected node
// clears the selection and a vanished focus drops back to Selected.
func resolve(s Selection, set node.Set) Selection {
	if s.State == Idle {
		return s
	}
	sel, ok := set.Node(s.Selected.ID)
	if !ok {
		return idle()
	}
	if s.State == Selected {
		return selected(sel)
	}
	focus, ok := set.Node(s.Focused.ID)
	if !ok {
		return selected(sel)
	}
	return withFocus(sel, focus)
}
