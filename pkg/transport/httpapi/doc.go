// Package httpapi serves an inspector over HTTP.
//
// A [Server] owns nothing but routes: it drives a [recorder.Recorder] and an
// [inspector.Controller] supplied by the caller, so the same pair can also
// be fed from Redis or a terminal at the same time.
//
// # Routes
//
//	POST /v1/passes        publish a frames document as the current pass
//	GET  /v1/nodes         current nodes in render order, with z-index
//	GET  /v1/spacings      spacings for the current selection
//	GET  /v1/selection     selection state
//	POST /v1/selection     {"selected": "id", "focused": "id"}
//	POST /v1/tap           {"id": "..."} or {"x": .., "y": ..}
//	POST /v1/double-tap    same body as tap
//	POST /v1/toggle        flip inspection on or off
//	GET  /v1/overlay.svg   overlay snapshot (?ids=1 labels boxes)
//	GET  /v1/hierarchy.dot hierarchy as Graphviz DOT (?detailed=1)
//	GET  /v1/hierarchy.svg the same, rendered by graphviz and cached
//	GET  /healthz          liveness and build info
//
// Errors are JSON objects {"error": "...", "code": "..."} with a status
// derived from the error code.
package httpapi
