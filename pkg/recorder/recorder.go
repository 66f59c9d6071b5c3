package recorder

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/observability"
)

// Pass sources reported to observability hooks.
const (
	SourceReport  = "report"
	SourcePublish = "publish"
)

// Subscriber receives every published node set.
type Subscriber func(node.Set)

// Recorder collects frame reports and publishes complete passes.
//
// All methods are safe for concurrent use. Subscribers run on the goroutine
// that committed or published the pass and must not call Commit or Publish.
type Recorder struct {
	Logger *log.Logger

	mu      sync.Mutex
	pending []node.Node
	enabled bool

	publishMu sync.Mutex
	subsMu    sync.RWMutex
	subs      []*subscription

	current atomic.Pointer[node.Set]
	passes  atomic.Uint64
}

type subscription struct {
	fn Subscriber
}

// New creates an enabled recorder with an empty current set.
// If logger is nil, log.Default() is used.
func New(logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	r := &Recorder{Logger: logger, enabled: true}
	empty := node.NewSet()
	r.current.Store(&empty)
	return r
}

// Report adds a frame to the pending pass. Reports are a union: the same id
// may be reported more than once. Reports made while recording is disabled
// are dropped.
func (r *Recorder) Report(id, parentID string, frame geometry.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	r.pending = append(r.pending, node.Node{ID: id, ParentID: parentID, Frame: frame})
}

// Pending returns the number of reports in the open pass.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Commit closes the pending pass, publishes it in reverse report order and
// returns the published set. A pass with no reports publishes an empty set.
// While recording is disabled nothing is published and the current set is
// returned.
func (r *Recorder) Commit(ctx context.Context) node.Set {
	reports, ok := r.take()
	if !ok {
		return r.drop(SourceReport)
	}
	slices.Reverse(reports)
	return r.publish(ctx, node.NewSet(reports...), SourceReport)
}

// Publish replaces the current set with nodes, kept in the given order.
// Any pending reports are discarded. Like Commit, it publishes nothing while
// recording is disabled.
func (r *Recorder) Publish(ctx context.Context, nodes []node.Node) node.Set {
	if _, ok := r.take(); !ok {
		return r.drop(SourcePublish)
	}
	return r.publish(ctx, node.NewSet(nodes...), SourcePublish)
}

// take empties the pending pass and reports whether recording is enabled.
func (r *Recorder) take() ([]node.Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reports := r.pending
	r.pending = nil
	return reports, r.enabled
}

func (r *Recorder) drop(source string) node.Set {
	r.Logger.Debug("dropping pass, recording disabled", "source", source)
	return r.Current()
}

func (r *Recorder) publish(ctx context.Context, set node.Set, source string) node.Set {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	r.current.Store(&set)
	pass := r.passes.Add(1)

	r.Logger.Debug("published pass", "pass", pass, "source", source, "nodes", set.Len())
	observability.Recorder().OnPassCommitted(ctx, pass, source, set.Len())

	r.subsMu.RLock()
	subs := slices.Clone(r.subs)
	r.subsMu.RUnlock()
	for _, s := range subs {
		s.fn(set)
	}
	return set
}

// Current returns the most recently published set.
func (r *Recorder) Current() node.Set {
	return *r.current.Load()
}

// Passes returns how many passes have been published.
func (r *Recorder) Passes() uint64 {
	return r.passes.Load()
}

// Subscribe registers fn for every future publication and returns a
// function that removes it.
func (r *Recorder) Subscribe(fn Subscriber) (cancel func()) {
	s := &subscription{fn: fn}
	r.subsMu.Lock()
	r.subs = append(r.subs, s)
	r.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subsMu.Lock()
			defer r.subsMu.Unlock()
			r.subs = slices.DeleteFunc(r.subs, func(x *subscription) bool { return x == s })
		})
	}
}

// SetEnabled turns recording on or off. Disabling drops the pending pass;
// the current set is kept.
func (r *Recorder) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
	if !enabled {
		r.pending = nil
	}
}

// Enabled reports whether reports are being recorded.
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}
