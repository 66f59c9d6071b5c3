package geometry

import "math"

// Point is a location in the shared coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. X and Y are the top-leading corner;
// Y grows downward.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a Rect with the given origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MinX returns the leading edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the trailing edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// MidX returns the horizontal center.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// MidY returns the vertical center.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// Origin returns the top-leading corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the center point.
func (r Rect) Center() Point { return Point{X: r.MidX(), Y: r.MidY()} }

// Contains reports whether p lies inside r. All four edges are inclusive,
// so a tap exactly on a border still hits the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// IsFinite reports whether every component is a finite number.
func (r Rect) IsFinite() bool {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Span returns the closed interval r covers on axis.
func (r Rect) Span(axis Axis) (lo, hi float64) {
	if axis == Horizontal {
		return r.MinX(), r.MaxX()
	}
	return r.MinY(), r.MaxY()
}

// Mid returns the center of r on axis.
func (r Rect) Mid(axis Axis) float64 {
	if axis == Horizontal {
		return r.MidX()
	}
	return r.MidY()
}

// EdgeValue returns the coordinate of edge e.
func (r Rect) EdgeValue(e Edge) float64 {
	switch e {
	case Top:
		return r.MinY()
	case Bottom:
		return r.MaxY()
	case Leading:
		return r.MinX()
	default:
		return r.MaxX()
	}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x := min(r.MinX(), other.MinX())
	y := min(r.MinY(), other.MinY())
	right := max(r.MaxX(), other.MaxX())
	bottom := max(r.MaxY(), other.MaxY())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}
