// Package recorder aggregates per-pass frame reports into node sets.
//
// During a layout pass every annotated element calls [Recorder.Report] with
// its id, its parent's id and its frame. [Recorder.Commit] closes the pass:
// the pending reports are reversed into render order (children reported
// after their parents end up earlier, which is the order an overlay draws
// them) and published as an immutable [node.Set].
//
// Publication is a pointer swap. Readers calling [Recorder.Current] never
// see a half-built pass, and subscribers registered with
// [Recorder.Subscribe] are notified synchronously, in subscription order,
// after each swap.
//
// Passes produced outside the process (a frames file, an HTTP request, a
// Redis message) enter through [Recorder.Publish], which takes the nodes
// as-is.
//
// # Annotations
//
// Parent ids are threaded explicitly. An [Annotation] owns an element's
// stable id; recording it under a parent [Scope] returns the scope its own
// descendants record under:
//
//	card := recorder.NewAnnotation("card")
//	title := recorder.NewAnnotation("")     // fresh uuid, stable across passes
//
//	scope := card.Record(rec, recorder.Root(), cardFrame)
//	title.Record(rec, scope, titleFrame)
//	rec.Commit(ctx)
package recorder
