// Package geometry provides the value types the inspector measures with.
//
// All frames observed during one layout pass share a single coordinate space
// whose origin is the top-leading corner and whose Y axis grows downward.
// [Rect] exposes its four edges through [Rect.EdgeValue], so algorithms can be
// written once per [Edge] instead of once per side:
//
//	r := geometry.NewRect(10, 20, 100, 40)
//	r.EdgeValue(geometry.Bottom) // 60
//	geometry.Bottom.Direction()  // +1, away from the rectangle
//
// Every edge belongs to exactly one [Axis]: top and bottom to [Vertical],
// leading and trailing to [Horizontal].
package geometry
