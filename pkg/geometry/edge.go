package geometry

import (
	"fmt"
	"strings"
)

// Axis is either horizontal or vertical.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Edge identifies one side of a rectangle. Leading and trailing are the
// horizontal edges in left-to-right contexts.
type Edge int

const (
	Top Edge = iota
	Bottom
	Leading
	Trailing
)

// Edges lists every edge in the order spacings are reported.
var Edges = [...]Edge{Top, Bottom, Leading, Trailing}

// Axis returns the axis along which distances from e are measured.
func (e Edge) Axis() Axis {
	if e == Top || e == Bottom {
		return Vertical
	}
	return Horizontal
}

// Direction is -1 for edges facing toward the origin (top, leading) and +1
// otherwise. Multiplying a coordinate delta by it makes "away from the
// node" positive.
func (e Edge) Direction() float64 {
	if e == Top || e == Leading {
		return -1
	}
	return 1
}

// Opposite returns the edge on the other side of the same axis.
func (e Edge) Opposite() Edge {
	switch e {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Leading:
		return Trailing
	default:
		return Leading
	}
}

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// ParseEdge parses an edge name. "left" and "right" are accepted as
// aliases for leading and trailing.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "leading", "left":
		return Leading, nil
	case "trailing", "right":
		return Trailing, nil
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}

// MarshalText encodes e by name.
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes a name accepted by [ParseEdge].
func (e *Edge) UnmarshalText(b []byte) error {
	v, err := ParseEdge(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
