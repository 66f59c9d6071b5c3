// Package render groups the output formats for inspector overlays and node
// hierarchies.
//
// # Overview
//
// The inspector controller produces an [inspector.Overlay]: boxes, labels
// and measurement lines in frame coordinates. The subpackages turn that
// overlay, or the node hierarchy behind it, into something to look at:
//
//   - [svg]: the overlay as a standalone SVG document
//   - [term]: the overlay rasterised onto terminal cells
//   - [nodelink]: the parent hierarchy as a Graphviz diagram
//
// # Overlays
//
//	o := ctrl.Overlay()
//	doc := svg.RenderSVG(o, viewport, svg.WithNodeIDs())
//	text := term.Render(o, term.Grid{CellWidth: 8, CellHeight: 16}, 80, 24)
//
// # Hierarchies
//
//	dot := nodelink.ToDOT(ctrl.Set(), nodelink.Options{Selected: "title"})
//	out, err := nodelink.RenderSVG(ctx, dot)
//
// [inspector.Overlay]: github.com/matzehuels/framescope/pkg/inspector.Overlay
// [svg]: github.com/matzehuels/framescope/pkg/render/svg
// [term]: github.com/matzehuels/framescope/pkg/render/term
// [nodelink]: github.com/matzehuels/framescope/pkg/render/nodelink
package render
