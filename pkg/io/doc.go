// Package io provides JSON import and export for layout passes.
//
// # Overview
//
// A frames file captures one layout pass: the frame every annotated element
// reported, with its parent link. It lets a pass recorded in one process be
// inspected in another, by the CLI, the HTTP server or a Redis subscriber.
//
// # JSON Format
//
//	{
//	  "width": 320,
//	  "height": 480,
//	  "nodes": [
//	    {"id": "card", "frame": {"x": 0, "y": 0, "width": 200, "height": 120}},
//	    {"id": "title", "parent_id": "card", "frame": {"x": 16, "y": 16, "width": 120, "height": 24}}
//	  ]
//	}
//
// width and height describe the viewport and are optional; when absent the
// union of all frames is used. Nodes are listed in report order, parents
// before children, the way a layout pass visits them. [Frames.Set] reverses
// them into render order exactly as [recorder.Recorder.Commit] does, and
// [FromSet] reverses a set back, so export followed by import is lossless.
//
// # Import
//
// Use [ImportFrames] to read a file path ("-" reads stdin), or [ReadFrames]
// to read from any io.Reader:
//
//	f, err := io.ImportFrames("pass.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rec.Publish(ctx, f.Set().Nodes())
//
// Both validate every node id and frame. Errors carry INVALID_FORMAT,
// INVALID_NODE_ID or INVALID_FRAME codes and name the offending node.
//
// # Export
//
// Use [ExportFrames] to write a file, or [WriteFrames] for any io.Writer.
//
// [recorder.Recorder.Commit]: github.com/matzehuels/framescope/pkg/recorder.Recorder.Commit
package io
