package recorder

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/observability"
)

func quietRecorder() *Recorder {
	return New(log.New(io.Discard))
}

func ids(s node.Set) []string {
	var out []string
	for _, n := range s.Nodes() {
		out = append(out, n.ID)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCommitReversesReportOrder(t *testing.T) {
	r := quietRecorder()
	r.Report("root", "", geometry.NewRect(0, 0, 100, 100))
	r.Report("a", "root", geometry.NewRect(0, 0, 10, 10))
	r.Report("b", "root", geometry.NewRect(20, 0, 10, 10))

	set := r.Commit(context.Background())

	want := []string{"b", "a", "root"}
	if got := ids(set); !equalStrings(got, want) {
		t.Errorf("Commit() order = %v, want %v", got, want)
	}
	if got := ids(r.Current()); !equalStrings(got, want) {
		t.Errorf("Current() order = %v, want %v", got, want)
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() = %d after commit, want 0", r.Pending())
	}
}

func TestCurrentIsStableUntilCommit(t *testing.T) {
	r := quietRecorder()
	r.Report("a", "", geometry.NewRect(0, 0, 10, 10))
	first := r.Commit(context.Background())

	r.Report("b", "", geometry.NewRect(0, 0, 10, 10))
	if got := ids(r.Current()); !equalStrings(got, []string{"a"}) {
		t.Errorf("Current() mid-pass = %v, want [a]", got)
	}

	r.Commit(context.Background())
	if got := ids(first); !equalStrings(got, []string{"a"}) {
		t.Errorf("earlier set changed to %v", got)
	}
	if got := ids(r.Current()); !equalStrings(got, []string{"b"}) {
		t.Errorf("Current() = %v, want [b]", got)
	}
}

func TestEmptyCommitPublishesEmptySet(t *testing.T) {
	r := quietRecorder()
	r.Report("a", "", geometry.Rect{})
	r.Commit(context.Background())

	set := r.Commit(context.Background())
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
	if r.Passes() != 2 {
		t.Errorf("Passes() = %d, want 2", r.Passes())
	}
}

func TestDuplicateReportsAreKept(t *testing.T) {
	r := quietRecorder()
	r.Report("a", "", geometry.NewRect(0, 0, 10, 10))
	r.Report("a", "", geometry.NewRect(5, 5, 10, 10))

	set := r.Commit(context.Background())
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	// the later report comes first in render order and wins lookups
	n, _ := set.Node("a")
	if n.Frame.X != 5 {
		t.Errorf("Node(a).Frame.X = %v, want 5", n.Frame.X)
	}
}

func TestPublishKeepsOrder(t *testing.T) {
	r := quietRecorder()
	r.Report("stale", "", geometry.Rect{})

	nodes := []node.Node{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	r.Publish(context.Background(), nodes)
	nodes[0].ID = "mutated"

	if got := ids(r.Current()); !equalStrings(got, []string{"x", "y", "z"}) {
		t.Errorf("Current() = %v, want [x y z]", got)
	}
	if r.Pending() != 0 {
		t.Errorf("Publish should drop pending reports, Pending() = %d", r.Pending())
	}
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	r := quietRecorder()

	var calls []string
	r.Subscribe(func(s node.Set) { calls = append(calls, "first") })
	cancel := r.Subscribe(func(s node.Set) { calls = append(calls, "second") })
	r.Subscribe(func(s node.Set) {
		calls = append(calls, "third")
		if s.Len() != r.Current().Len() {
			t.Error("subscriber saw a set different from Current()")
		}
	})

	r.Report("a", "", geometry.Rect{})
	r.Commit(context.Background())

	if want := []string{"first", "second", "third"}; !equalStrings(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}

	calls = nil
	cancel()
	cancel()
	r.Commit(context.Background())
	if want := []string{"first", "third"}; !equalStrings(calls, want) {
		t.Errorf("after cancel calls = %v, want %v", calls, want)
	}
}

func TestDisabledRecorderDropsReports(t *testing.T) {
	r := quietRecorder()
	r.Report("a", "", geometry.Rect{})
	r.SetEnabled(false)

	if r.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
	if r.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", r.Pending())
	}

	r.Report("b", "", geometry.Rect{})
	if r.Pending() != 0 {
		t.Errorf("report while disabled was kept")
	}

	r.SetEnabled(true)
	r.Report("c", "", geometry.Rect{})
	if got := ids(r.Commit(context.Background())); !equalStrings(got, []string{"c"}) {
		t.Errorf("Commit() = %v, want [c]", got)
	}
}

func TestDisabledRecorderPublishesNothing(t *testing.T) {
	ctx := context.Background()
	r := quietRecorder()
	r.Publish(ctx, []node.Node{{ID: "a"}})
	r.SetEnabled(false)

	var notified int
	cancel := r.Subscribe(func(node.Set) { notified++ })
	defer cancel()

	if got := ids(r.Publish(ctx, []node.Node{{ID: "b"}})); !equalStrings(got, []string{"a"}) {
		t.Errorf("Publish() while disabled = %v, want current [a]", got)
	}
	r.Report("c", "", geometry.Rect{})
	if got := ids(r.Commit(ctx)); !equalStrings(got, []string{"a"}) {
		t.Errorf("Commit() while disabled = %v, want current [a]", got)
	}

	if r.Passes() != 1 {
		t.Errorf("Passes() = %d, want 1", r.Passes())
	}
	if notified != 0 {
		t.Errorf("subscribers notified %d times while disabled", notified)
	}
	if got := ids(r.Current()); !equalStrings(got, []string{"a"}) {
		t.Errorf("Current() = %v, want [a]", got)
	}
}

type countingHooks struct {
	observability.NoopRecorderHooks
	mu      sync.Mutex
	sources []string
	counts  []int
}

func (h *countingHooks) OnPassCommitted(_ context.Context, _ uint64, source string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sources = append(h.sources, source)
	h.counts = append(h.counts, n)
}

func TestHooksReceivePasses(t *testing.T) {
	h := &countingHooks{}
	observability.SetRecorderHooks(h)
	defer observability.Reset()

	r := quietRecorder()
	r.Report("a", "", geometry.Rect{})
	r.Commit(context.Background())
	r.Publish(context.Background(), []node.Node{{ID: "x"}, {ID: "y"}})

	if want := []string{SourceReport, SourcePublish}; !equalStrings(h.sources, want) {
		t.Errorf("sources = %v, want %v", h.sources, want)
	}
	if len(h.counts) != 2 || h.counts[0] != 1 || h.counts[1] != 2 {
		t.Errorf("counts = %v, want [1 2]", h.counts)
	}
}

func TestConcurrentReportAndRead(t *testing.T) {
	r := quietRecorder()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Report("n", "", geometry.Rect{})
				_ = r.Current().Len()
			}
		}()
	}
	wg.Wait()

	if got := r.Commit(ctx).Len(); got != 800 {
		t.Errorf("Len() = %d, want 800", got)
	}
}

func TestAnnotationScopes(t *testing.T) {
	r := quietRecorder()

	screen := NewAnnotation("screen")
	card := NewAnnotation("card")
	title := NewAnnotation("")

	if _, err := uuid.Parse(title.ID()); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", title.ID(), err)
	}

	for pass := 0; pass < 2; pass++ {
		s := screen.Record(r, Root(), geometry.NewRect(0, 0, 320, 480))
		c := card.Record(r, s, geometry.NewRect(10, 10, 300, 200))
		title.Record(r, c, geometry.NewRect(20, 20, 100, 20))
		r.Commit(context.Background())
	}

	set := r.Current()
	tests := []struct {
		id     string
		parent string
	}{
		{"screen", ""},
		{"card", "screen"},
		{title.ID(), "card"},
	}
	for _, tt := range tests {
		n, ok := set.Node(tt.id)
		if !ok {
			t.Fatalf("Node(%q) not found", tt.id)
		}
		if n.ParentID != tt.parent {
			t.Errorf("Node(%q).ParentID = %q, want %q", tt.id, n.ParentID, tt.parent)
		}
	}
	if set.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (id reused across passes)", set.Len())
	}

	n, _ := set.Node(title.ID())
	if z := set.ZIndex(n); z != 2 {
		t.Errorf("ZIndex(title) = %d, want 2", z)
	}
}

func TestRootScope(t *testing.T) {
	if !Root().IsRoot() {
		t.Error("Root().IsRoot() = false")
	}
	if ScopeOf("x").IsRoot() {
		t.Error("ScopeOf(x).IsRoot() = true")
	}
	if got := NewAnnotation("x").Scope().ParentID(); got != "x" {
		t.Errorf("Scope().ParentID() = %q, want x", got)
	}
}
