// Package pkg provides the core libraries for framescope, a geometry
// inspector for declarative UI trees.
//
// # Overview
//
// Annotated views report their frame and the id of their nearest annotated
// ancestor on every layout pass. framescope rebuilds the hierarchy from those
// parent links, stacks nodes by depth and measures the distance from a
// selected node to its nearest neighbour on each edge. The pkg directory is
// organized by layer:
//
//  1. [geometry], [node], [spacing] - value types and the pure algorithms
//  2. [recorder], [inspector] - pass collection and the selection state machine
//  3. [render] - SVG, terminal and Graphviz output
//  4. [transport] - HTTP debug server and Redis pass transport
//  5. [io], [config], [cache], [errors], [observability] - supporting infrastructure
//
// # Architecture
//
//	Annotated views (host UI framework)
//	         ↓  Report(id, parentID, frame)
//	    [recorder] package (commit pass, publish whole set)
//	         ↓  OnNodeSetUpdated
//	    [inspector] package (selection, spacings, overlay)
//	         ↓
//	    [render] packages (SVG, terminal cells, DOT)
//
// Passes can also arrive from another process, as frames files, HTTP posts
// or Redis messages, through [io] and [transport].
//
// # Quick Start
//
//	rec := recorder.New(nil)
//	ctrl := inspector.New(nil)
//	stop := ctrl.Follow(ctx, rec)
//	defer stop()
//
//	card := recorder.NewAnnotation("card")
//	scope := card.Record(rec, recorder.Root(), geometry.NewRect(0, 0, 200, 120))
//	recorder.NewAnnotation("title").Record(rec, scope, geometry.NewRect(16, 16, 120, 24))
//	rec.Commit(ctx)
//
//	ctrl.Tap(ctx, "title")
//	for _, s := range ctrl.Spacings() {
//	    fmt.Println(s.FromEdge, s.To.ID, s.Label())
//	}
//
// [geometry]: github.com/matzehuels/framescope/pkg/geometry
// [node]: github.com/matzehuels/framescope/pkg/node
// [spacing]: github.com/matzehuels/framescope/pkg/spacing
// [recorder]: github.com/matzehuels/framescope/pkg/recorder
// [inspector]: github.com/matzehuels/framescope/pkg/inspector
// [render]: github.com/matzehuels/framescope/pkg/render
// [transport]: github.com/matzehuels/framescope/pkg/transport/httpapi
// [io]: github.com/matzehuels/framescope/pkg/io
// [config]: github.com/matzehuels/framescope/pkg/config
// [cache]: github.com/matzehuels/framescope/pkg/cache
// [errors]: github.com/matzehuels/framescope/pkg/errors
// [observability]: github.com/matzehuels/framescope/pkg/observability
package pkg
