package spacing

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
)

// TieBreak decides between candidates at exactly the same distance.
type TieBreak int

const (
	// TieFirst keeps the candidate encountered first.
	TieFirst TieBreak = iota
	// TieSibling prefers a sibling of the measured node, then encounter order.
	TieSibling
	// TieLowestID prefers the lexicographically smallest ID, which makes the
	// result independent of candidate order.
	TieLowestID
)

func (t TieBreak) String() string {
	switch t {
	case TieSibling:
		return "sibling"
	case TieLowestID:
		return "id"
	default:
		return "first"
	}
}

// ParseTieBreak parses "first", "sibling" or "id".
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return TieFirst, nil
	case "sibling":
		return TieSibling, nil
	case "id":
		return TieLowestID, nil
	}
	return 0, fmt.Errorf("unknown tie-break %q", s)
}

// Options configures the neighbor search.
type Options struct {
	TieBreak TieBreak
}

// Neighbor is the result of a nearest-edge search.
type Neighbor struct {
	Node node.Node
	Edge geometry.Edge
	// Distance is the signed distance from the searched edge.
	Distance float64
}

// Intersects reports whether a and b overlap on the axis perpendicular to
// the one edge measures along. Touching spans count as overlapping.
func Intersects(a, b geometry.Rect, edge geometry.Edge) bool {
	axis := edge.Axis().Cross()
	alo, ahi := a.Span(axis)
	blo, bhi := b.Span(axis)
	return (blo >= alo && blo <= ahi) ||
		(bhi >= alo && bhi <= ahi) ||
		(alo >= blo && alo <= bhi) ||
		(ahi >= blo && ahi <= bhi)
}

// NearestEdgeNeighbor finds the candidate closest to n's edge.
//
// Each candidate is read twice: its same-side edge (a container reaching past
// n) and its opposite edge (a neighbor beside n). The reading with the
// smaller magnitude stands for the candidate. The winner is the candidate
// with the smallest non-negative distance; if every candidate lies inward,
// the smallest magnitude wins instead. n itself is never returned.
func NearestEdgeNeighbor(candidates []node.Node, n node.Node, edge geometry.Edge, tie TieBreak) (Neighbor, bool) {
	var (
		outward, inward       Neighbor
		hasOutward, hasInward bool
	)
	for _, c := range candidates {
		if c.ID == n.ID {
			continue
		}
		r := reading(n, edge, c)
		if r.Distance >= 0 {
			if !hasOutward || better(r, outward, r.Distance, outward.Distance, n, tie) {
				outward, hasOutward = r, true
			}
			continue
		}
		if !hasInward || better(r, inward, -r.Distance, -inward.Distance, n, tie) {
			inward, hasInward = r, true
		}
	}
	if hasOutward {
		return outward, true
	}
	return inward, hasInward
}

// reading picks the candidate edge closest to n's edge.
func reading(n node.Node, edge geometry.Edge, c node.Node) Neighbor {
	same := distance(n.Frame, edge, c.Frame, edge)
	opp := distance(n.Frame, edge, c.Frame, edge.Opposite())
	switch {
	case math.Abs(opp) < math.Abs(same),
		math.Abs(opp) == math.Abs(same) && same < 0 && opp >= 0:
		return Neighbor{Node: c, Edge: edge.Opposite(), Distance: opp}
	}
	return Neighbor{Node: c, Edge: edge, Distance: same}
}

// better reports whether candidate a beats the current best b, comparing the
// magnitudes da and db.
func better(a, b Neighbor, da, db float64, n node.Node, tie TieBreak) bool {
	if da != db {
		return da < db
	}
	switch tie {
	case TieSibling:
		return a.Node.ParentID == n.ParentID && b.Node.ParentID != n.ParentID
	case TieLowestID:
		return a.Node.ID < b.Node.ID
	}
	return false
}

// Find measures from one edge of n to its nearest neighbor in set. Direct
// children of n are ignored, as is anything not overlapping n on the other
// axis.
func Find(set node.Set, n node.Node, edge geometry.Edge, opts Options) (Spacing, bool) {
	var candidates []node.Node
	for _, c := range set.ExcludeChildren(n) {
		if Intersects(n.Frame, c.Frame, edge) {
			candidates = append(candidates, c)
		}
	}
	nb, ok := NearestEdgeNeighbor(candidates, n, edge, opts.TieBreak)
	if !ok {
		return Spacing{}, false
	}
	return Spacing{From: n, FromEdge: edge, To: nb.Node, ToEdge: nb.Edge}, true
}

// All measures every edge of n and drops redundant findings: when both
// edges of an axis land on the same neighbor edge, only the longer one
// survives, the first edge of the axis (top, leading) winning ties.
// Results are ordered top, bottom, leading, trailing.
func All(set node.Set, n node.Node, opts Options) []Spacing {
	found := make(map[geometry.Edge]Spacing, 4)
	for _, e := range geometry.Edges {
		if s, ok := Find(set, n, e, opts); ok {
			found[e] = s
		}
	}
	dedup(found, geometry.Top, geometry.Bottom)
	dedup(found, geometry.Leading, geometry.Trailing)
	return ordered(found)
}

func dedup(found map[geometry.Edge]Spacing, first, second geometry.Edge) {
	a, okA := found[first]
	b, okB := found[second]
	if !okA || !okB || a.To.ID != b.To.ID || a.ToEdge != b.ToEdge {
		return
	}
	if math.Abs(b.Length()) > math.Abs(a.Length()) {
		delete(found, first)
		return
	}
	delete(found, second)
}

func ordered(found map[geometry.Edge]Spacing) []Spacing {
	out := make([]Spacing, 0, len(found))
	for _, e := range geometry.Edges {
		if s, ok := found[e]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Direct measures from one node straight to another, without searching or
// filtering by overlap. On each axis, when to lies wholly on one side of
// from, the facing edges are measured. When they overlap on that axis, both
// same-side insets are reported instead.
func Direct(from, to node.Node) []Spacing {
	if from.ID == to.ID {
		return nil
	}
	var out []Spacing
	out = append(out, directAxis(from, to, geometry.Top, geometry.Bottom)...)
	out = append(out, directAxis(from, to, geometry.Leading, geometry.Trailing)...)
	return out
}

func directAxis(from, to node.Node, near, far geometry.Edge) []Spacing {
	switch {
	case to.Frame.EdgeValue(near) >= from.Frame.EdgeValue(far):
		return []Spacing{{From: from, FromEdge: far, To: to, ToEdge: near}}
	case to.Frame.EdgeValue(far) <= from.Frame.EdgeValue(near):
		return []Spacing{{From: from, FromEdge: near, To: to, ToEdge: far}}
	}
	return []Spacing{
		{From: from, FromEdge: near, To: to, ToEdge: near},
		{From: from, FromEdge: far, To: to, ToEdge: far},
	}
}
