package spacing

import (
	"fmt"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
)

// Spacing is the measured distance from one edge of From to one edge of To.
type Spacing struct {
	From     node.Node     `json:"from"`
	FromEdge geometry.Edge `json:"from_edge"`
	To       node.Node     `json:"to"`
	ToEdge   geometry.Edge `json:"to_edge"`
}

// Start is the point on FromEdge, centered on From's frame along the other
// axis.
func (s Spacing) Start() geometry.Point {
	return s.point(s.From.Frame.EdgeValue(s.FromEdge))
}

// End is the point on ToEdge, on the same line as Start.
func (s Spacing) End() geometry.Point {
	return s.point(s.To.Frame.EdgeValue(s.ToEdge))
}

func (s Spacing) point(v float64) geometry.Point {
	if s.FromEdge.Axis() == geometry.Vertical {
		return geometry.Point{X: s.From.Frame.MidX(), Y: v}
	}
	return geometry.Point{X: v, Y: s.From.Frame.MidY()}
}

// Mid is the midpoint between Start and End, where the length label goes.
func (s Spacing) Mid() geometry.Point {
	a, b := s.Start(), s.End()
	return geometry.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Length is the signed distance from Start to End. Positive means To lies
// outward from FromEdge; negative means it overlaps or lies inward.
func (s Spacing) Length() float64 {
	return distance(s.From.Frame, s.FromEdge, s.To.Frame, s.ToEdge)
}

// Label formats Length in whole units.
func (s Spacing) Label() string {
	return fmt.Sprintf("%d", int(s.Length()))
}

func (s Spacing) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s = %g", s.From.ID, s.FromEdge, s.To.ID, s.ToEdge, s.Length())
}

// distance is the signed distance from edge fe of a to edge te of b,
// oriented by fe's direction.
func distance(a geometry.Rect, fe geometry.Edge, b geometry.Rect, te geometry.Edge) float64 {
	return (b.EdgeValue(te) - a.EdgeValue(fe)) * fe.Direction()
}
