// Package observability provides hooks for logging and metrics around
// layout passes and inspection.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about committed passes, spacing computation
// and selection changes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the recorder and
// inspector packages stay free of any particular backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRecorderHooks(&myRecorderHooks{})
//	    observability.SetInspectorHooks(&myInspectorHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Recorder().OnPassCommitted(ctx, pass, nodeCount)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Recorder Hooks
// =============================================================================

// RecorderHooks receives events from the recording aggregator.
type RecorderHooks interface {
	// OnPassCommitted is called after a pass has been published.
	// source is "report" for committed reports and "publish" for passes
	// handed over whole (file, HTTP, Redis).
	OnPassCommitted(ctx context.Context, pass uint64, source string, nodeCount int)
}

// =============================================================================
// Inspector Hooks
// =============================================================================

// InspectorHooks receives events from the inspector controller.
type InspectorHooks interface {
	// OnSpacingsComputed is called after spacings were recomputed for a
	// selection.
	OnSpacingsComputed(ctx context.Context, selected string, count int, duration time.Duration)

	// OnSelectionChanged is called after a transition changed the selection.
	OnSelectionChanged(ctx context.Context, from, to string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRecorderHooks is a no-op implementation of RecorderHooks.
type NoopRecorderHooks struct{}

func (NoopRecorderHooks) OnPassCommitted(context.Context, uint64, string, int) {}

// NoopInspectorHooks is a no-op implementation of InspectorHooks.
type NoopInspectorHooks struct{}

func (NoopInspectorHooks) OnSpacingsComputed(context.Context, string, int, time.Duration) {}
func (NoopInspectorHooks) OnSelectionChanged(context.Context, string, string)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	recorderHooks  RecorderHooks  = NoopRecorderHooks{}
	inspectorHooks InspectorHooks = NoopInspectorHooks{}
	hooksMu        sync.RWMutex
)

// SetRecorderHooks registers custom recorder hooks.
// This should be called once at application startup before any pass is committed.
func SetRecorderHooks(h RecorderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		recorderHooks = h
	}
}

// SetInspectorHooks registers custom inspector hooks.
// This should be called once at application startup before any controller runs.
func SetInspectorHooks(h InspectorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		inspectorHooks = h
	}
}

// Recorder returns the registered recorder hooks.
func Recorder() RecorderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return recorderHooks
}

// Inspector returns the registered inspector hooks.
func Inspector() InspectorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return inspectorHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	recorderHooks = NoopRecorderHooks{}
	inspectorHooks = NoopInspectorHooks{}
}
