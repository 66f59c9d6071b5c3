package node

import "github.com/matzehuels/framescope/pkg/geometry"

// Set is an immutable collection of nodes observed in one layout pass.
// Order is render order: index 0 draws first.
//
// Duplicate IDs are a caller error. Lookups resolve them to the first
// occurrence in set order.
type Set struct {
	nodes []Node
	index map[string]int
}

// NewSet builds a Set over a copy of nodes.
func NewSet(nodes ...Node) Set {
	s := Set{
		nodes: make([]Node, len(nodes)),
		index: make(map[string]int, len(nodes)),
	}
	copy(s.nodes, nodes)
	for i, n := range s.nodes {
		if _, dup := s.index[n.ID]; !dup {
			s.index[n.ID] = i
		}
	}
	return s
}

// Len returns the number of nodes, duplicates included.
func (s Set) Len() int { return len(s.nodes) }

// Nodes returns a copy of the nodes in render order.
func (s Set) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Node looks up a node by ID.
func (s Set) Node(id string) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i], true
}

// Parent returns the node named by n.ParentID. Orphaned parent IDs report
// false, the same as a root.
func (s Set) Parent(n Node) (Node, bool) {
	if !n.HasParent() {
		return Node{}, false
	}
	return s.Node(n.ParentID)
}

// Siblings returns every other node sharing n's ParentID. Roots are
// siblings of each other.
func (s Set) Siblings(n Node) []Node {
	var out []Node
	for _, c := range s.nodes {
		if c.ID != n.ID && c.ParentID == n.ParentID {
			out = append(out, c)
		}
	}
	return out
}

// Children returns the direct children of n.
func (s Set) Children(n Node) []Node {
	var out []Node
	for _, c := range s.nodes {
		if c.ID != n.ID && c.ParentID == n.ID {
			out = append(out, c)
		}
	}
	return out
}

// ExcludeChildren returns every node except n and its direct children.
// Grandchildren are kept: measuring against a container ignores what is
// drawn directly inside it, nothing deeper.
func (s Set) ExcludeChildren(n Node) []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, c := range s.nodes {
		if c.ID == n.ID || c.ParentID == n.ID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Ancestors returns the parent chain of n, nearest first. The walk stops at
// the first missing parent or at the first node already visited, so cyclic
// parent links terminate.
func (s Set) Ancestors(n Node) []Node {
	var out []Node
	seen := map[string]bool{n.ID: true}
	cur := n
	for {
		p, ok := s.Parent(cur)
		if !ok || seen[p.ID] {
			return out
		}
		seen[p.ID] = true
		out = append(out, p)
		cur = p
	}
}

// ZIndex returns the nesting depth of n: 0 for a node without a resolvable
// parent, otherwise one more than its parent. Deeper nodes draw on top.
// A cycle in the parent links is cut where it closes.
func (s Set) ZIndex(n Node) int {
	return len(s.Ancestors(n))
}

// ZIndexes returns the z-index of every distinct ID in the set.
func (s Set) ZIndexes() map[string]int {
	out := make(map[string]int, len(s.index))
	for id, i := range s.index {
		out[id] = s.ZIndex(s.nodes[i])
	}
	return out
}

// HitTest returns the topmost node whose frame contains p. Higher z-index
// wins; among equal z-indexes the one drawn later wins.
func (s Set) HitTest(p geometry.Point) (Node, bool) {
	var (
		best  Node
		bestZ = -1
		found bool
	)
	for _, n := range s.nodes {
		if !n.Frame.Contains(p) {
			continue
		}
		if z := s.ZIndex(n); z >= bestZ {
			best, bestZ, found = n, z, true
		}
	}
	return best, found
}

// Bounds returns the union of every frame, or the zero Rect for an empty set.
func (s Set) Bounds() geometry.Rect {
	if len(s.nodes) == 0 {
		return geometry.Rect{}
	}
	b := s.nodes[0].Frame
	for _, n := range s.nodes[1:] {
		b = b.Union(n.Frame)
	}
	return b
}
