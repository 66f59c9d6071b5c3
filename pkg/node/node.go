package node

import (
	"fmt"

	"github.com/matzehuels/framescope/pkg/geometry"
)

// Node is one observed rectangle. ParentID is the ID of the nearest annotated
// ancestor, or empty for a root.
type Node struct {
	ID       string        `json:"id"`
	ParentID string        `json:"parent_id,omitempty"`
	Frame    geometry.Rect `json:"frame"`
}

// HasParent reports whether n names a parent.
func (n Node) HasParent() bool { return n.ParentID != "" }

// Equal reports whether n and other are the same element. Identity is the
// ID alone; frames change from pass to pass.
func (n Node) Equal(other Node) bool { return n.ID == other.ID }

// SizeLabel formats the frame size as "WxH" with whole units.
func (n Node) SizeLabel() string {
	return fmt.Sprintf("%dx%d", int(n.Frame.Width), int(n.Frame.Height))
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%g,%g %gx%g)", n.ID, n.Frame.X, n.Frame.Y, n.Frame.Width, n.Frame.Height)
}
