// Package nodelink renders the reconstructed view hierarchy as a node-link
// diagram.
//
// # Overview
//
// Parent links reported during a layout pass form a forest. This package
// draws it with Graphviz: each node is a box, each resolvable parent link an
// arrow from parent to child. Nodes whose parent id names nothing in the
// pass (orphans) get a dashed outline, and links that close a cycle are
// drawn dashed as well, so broken hierarchies are easy to spot.
//
// # Usage
//
// Convert a node set to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(set, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the frame, size and z-index
//   - Selected, Focused: ids drawn with the highlight colour
//   - Highlight: the colour used for them (defaults to red)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No external Graphviz installation is needed.
package nodelink
