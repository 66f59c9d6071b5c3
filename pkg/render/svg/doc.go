// Package svg draws an inspector overlay as a standalone SVG document.
//
// The output mirrors what an on-device overlay shows: every node as an
// unfilled bordered box in z order, the selected node's size label at its
// origin, and a measurement line with a length label for every spacing.
//
//	o := controller.Overlay()
//	data := svg.RenderSVG(o, frames.Viewport(), svg.WithNodeIDs())
//
// Node boxes carry their id as the element id (box-<id>) so the document
// can be scripted or diffed.
package svg
