package io

import (
	"math"
	"slices"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
)

// Frames is one layout pass as stored on disk or sent over the wire.
type Frames struct {
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
	Nodes  []node.Node `json:"nodes"`
}

// FromSet converts a published set back to report order.
func FromSet(set node.Set, width, height float64) Frames {
	nodes := set.Nodes()
	slices.Reverse(nodes)
	return Frames{Width: width, Height: height, Nodes: nodes}
}

// Set returns the pass in render order.
func (f Frames) Set() node.Set {
	nodes := slices.Clone(f.Nodes)
	slices.Reverse(nodes)
	return node.NewSet(nodes...)
}

// Viewport returns the declared viewport, or the bounds of all frames when
// width or height is missing.
func (f Frames) Viewport() geometry.Rect {
	if f.Width > 0 && f.Height > 0 {
		return geometry.NewRect(0, 0, f.Width, f.Height)
	}
	b := node.NewSet(f.Nodes...).Bounds()
	return geometry.NewRect(0, 0, math.Max(b.MaxX(), 0), math.Max(b.MaxY(), 0))
}

// Validate checks the viewport and every node.
func (f Frames) Validate() error {
	if err := errors.ValidateFrame(geometry.NewRect(0, 0, f.Width, f.Height)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "viewport")
	}
	for i, n := range f.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidNodeID, err, "node %d", i)
		}
		if err := errors.ValidateParentID(n.ParentID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidNodeID, err, "node %s parent", n.ID)
		}
		if err := errors.ValidateFrame(n.Frame); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFrame, err, "node %s", n.ID)
		}
	}
	return nil
}
