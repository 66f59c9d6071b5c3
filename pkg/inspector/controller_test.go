package inspector

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/observability"
	"github.com/matzehuels/framescope/pkg/recorder"
	"github.com/matzehuels/framescope/pkg/spacing"
)

var ctx = context.Background()

// cardSet is a card with a title above a body.
func cardSet() node.Set {
	return node.NewSet(
		node.Node{ID: "card", Frame: geometry.NewRect(0, 0, 200, 120)},
		node.Node{ID: "title", ParentID: "card", Frame: geometry.NewRect(16, 16, 120, 24)},
		node.Node{ID: "body", ParentID: "card", Frame: geometry.NewRect(16, 52, 168, 48)},
	)
}

func newController(opts ...Option) *Controller {
	c := New(log.New(io.Discard), opts...)
	c.OnNodeSetUpdated(ctx, cardSet())
	return c
}

func describe(ss []spacing.Spacing) []string {
	var out []string
	for _, s := range ss {
		out = append(out, fmt.Sprintf("%s->%s.%s=%s", s.FromEdge, s.To.ID, s.ToEdge, s.Label()))
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

func TestTapSelectsAndComputesSpacings(t *testing.T) {
	c := newController()

	sel := c.Tap(ctx, "title")
	if sel.State != Selected || sel.Selected.ID != "title" {
		t.Fatalf("Tap() = %v, want selected(title)", sel)
	}

	want := []string{
		"top->card.top=16",
		"bottom->body.top=12",
		"leading->card.leading=16",
		"trailing->card.trailing=64",
	}
	if got := describe(c.Spacings()); !equalStrings(got, want) {
		t.Errorf("Spacings() = %v, want %v", got, want)
	}

	c.Tap(ctx, "title")
	if got := c.Selection(); got.State != Idle {
		t.Errorf("second Tap() = %v, want idle", got)
	}
	if len(c.Spacings()) != 0 {
		t.Errorf("Spacings() = %v after deselect, want none", describe(c.Spacings()))
	}
}

func TestDoubleTapFocuses(t *testing.T) {
	c := newController()

	c.Tap(ctx, "title")
	sel := c.DoubleTap(ctx, "body")
	if sel.State != SelectedWithFocus || sel.Focused.ID != "body" {
		t.Fatalf("DoubleTap() = %v, want focus on body", sel)
	}

	want := []string{
		"bottom->body.top=12",
		"leading->body.leading=0",
		"trailing->body.trailing=48",
	}
	if got := describe(c.Spacings()); !equalStrings(got, want) {
		t.Errorf("Spacings() = %v, want %v", got, want)
	}

	c.Tap(ctx, "title")
	if got := c.Selection(); got.State != Idle {
		t.Errorf("Tap(selected) in focus = %v, want idle", got)
	}
}

func TestDoubleTapWhileIdleSelects(t *testing.T) {
	c := newController()
	if sel := c.DoubleTap(ctx, "body"); sel.State != Selected || sel.Selected.ID != "body" {
		t.Errorf("DoubleTap() = %v, want selected(body)", sel)
	}
	if sel := c.DoubleTap(ctx, "body"); sel.State != Selected {
		t.Errorf("DoubleTap(selected) = %v, want unchanged", sel)
	}
}

func TestUnknownNodeIgnored(t *testing.T) {
	c := newController()
	c.Tap(ctx, "title")

	if sel := c.Tap(ctx, "ghost"); sel.Selected.ID != "title" {
		t.Errorf("Tap(ghost) = %v, want selection unchanged", sel)
	}
	if sel := c.DoubleTap(ctx, "ghost"); sel.State != Selected {
		t.Errorf("DoubleTap(ghost) = %v, want selection unchanged", sel)
	}
}

func TestDisableClearsSelection(t *testing.T) {
	c := newController()
	c.Tap(ctx, "title")
	c.DoubleTap(ctx, "body")

	c.SetEnabled(ctx, false)
	if c.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if sel := c.Selection(); sel.State != Idle {
		t.Errorf("Selection() = %v, want idle", sel)
	}
	if o := c.Overlay(); !o.Empty() {
		t.Errorf("Overlay() has %d boxes while disabled, want none", len(o.Boxes))
	}
	if sel := c.Tap(ctx, "title"); sel.State != Idle {
		t.Errorf("Tap() while disabled = %v, want idle", sel)
	}

	if !c.ToggleInspection(ctx) {
		t.Error("ToggleInspection() = false, want true")
	}
	if c.Overlay().Empty() {
		t.Error("Overlay() empty after re-enabling")
	}
}

func TestToggleFromSelected(t *testing.T) {
	c := newController()
	c.Tap(ctx, "title")

	if c.ToggleInspection(ctx) {
		t.Fatal("ToggleInspection() = true, want false")
	}
	c.ToggleInspection(ctx)
	if sel := c.Selection(); sel.State != Idle {
		t.Errorf("Selection() after toggling twice = %v, want idle", sel)
	}
}

func TestStartDisabled(t *testing.T) {
	c := New(log.New(io.Discard), WithEnabled(false))
	if c.Enabled() {
		t.Error("WithEnabled(false) controller is enabled")
	}
}

func TestNodeSetUpdateReresolves(t *testing.T) {
	c := newController()
	c.Tap(ctx, "title")
	c.DoubleTap(ctx, "body")

	// body moves down; focus follows it by id
	c.OnNodeSetUpdated(ctx, node.NewSet(
		node.Node{ID: "card", Frame: geometry.NewRect(0, 0, 200, 140)},
		node.Node{ID: "title", ParentID: "card", Frame: geometry.NewRect(16, 16, 120, 24)},
		node.Node{ID: "body", ParentID: "card", Frame: geometry.NewRect(16, 72, 168, 48)},
	))
	if got := describe(c.Spacings()); len(got) == 0 || got[0] != "bottom->body.top=32" {
		t.Errorf("Spacings() = %v, want bottom->body.top=32 first", got)
	}

	// body disappears; focus drops
	c.OnNodeSetUpdated(ctx, node.NewSet(
		node.Node{ID: "card", Frame: geometry.NewRect(0, 0, 200, 140)},
		node.Node{ID: "title", ParentID: "card", Frame: geometry.NewRect(16, 16, 120, 24)},
	))
	if sel := c.Selection(); sel.State != Selected || sel.Selected.ID != "title" {
		t.Errorf("Selection() = %v, want selected(title)", sel)
	}
	// top and bottom both land on card.top; the longer bottom reading stays
	want := []string{
		"bottom->card.top=-40",
		"leading->card.leading=16",
		"trailing->card.trailing=64",
	}
	if got := describe(c.Spacings()); !equalStrings(got, want) {
		t.Errorf("Spacings() = %v, want %v", got, want)
	}

	// title disappears; selection clears
	c.OnNodeSetUpdated(ctx, node.NewSet(node.Node{ID: "card"}))
	if sel := c.Selection(); sel.State != Idle {
		t.Errorf("Selection() = %v, want idle", sel)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	c := newController()
	c.Tap(ctx, "title")
	first := describe(c.Spacings())

	c.OnNodeSetUpdated(ctx, cardSet())
	c.OnNodeSetUpdated(ctx, cardSet())
	if got := describe(c.Spacings()); !equalStrings(got, first) {
		t.Errorf("Spacings() = %v after repeated update, want %v", got, first)
	}
}

func TestOnSelectionChanged(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		focused  string
		want     State
		code     errors.Code
	}{
		{"select", "title", "", Selected, ""},
		{"focus", "title", "body", SelectedWithFocus, ""},
		{"focus on self", "title", "title", Selected, ""},
		{"clear", "", "", Idle, ""},
		{"missing selected", "ghost", "", Idle, errors.ErrCodeNodeNotFound},
		{"missing focus", "title", "ghost", Idle, errors.ErrCodeNodeNotFound},
		{"focus without selection", "", "body", Idle, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			sel, err := c.OnSelectionChanged(ctx, tt.selected, tt.focused)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("error = %v, want code %v", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if sel.State != tt.want {
				t.Errorf("State = %v, want %v", sel.State, tt.want)
			}
		})
	}

	c := newController()
	c.SetEnabled(ctx, false)
	if _, err := c.OnSelectionChanged(ctx, "title", ""); err == nil {
		t.Error("OnSelectionChanged() while disabled should fail")
	}
}

func TestTieBreakOption(t *testing.T) {
	// two candidates 10 below a, the later one a sibling
	set := node.NewSet(
		node.Node{ID: "x", Frame: geometry.NewRect(0, 20, 10, 10)},
		node.Node{ID: "p", Frame: geometry.NewRect(-100, -100, 300, 300)},
		node.Node{ID: "a", ParentID: "p", Frame: geometry.NewRect(0, 0, 10, 10)},
		node.Node{ID: "y", ParentID: "p", Frame: geometry.NewRect(0, 20, 10, 10)},
	)

	tests := []struct {
		tb   spacing.TieBreak
		want string
	}{
		{spacing.TieFirst, "x"},
		{spacing.TieSibling, "y"},
	}
	for _, tt := range tests {
		t.Run(tt.tb.String(), func(t *testing.T) {
			c := New(log.New(io.Discard), WithTieBreak(tt.tb))
			c.OnNodeSetUpdated(ctx, set)
			c.Tap(ctx, "a")
			for _, s := range c.Spacings() {
				if s.FromEdge == geometry.Bottom && s.To.ID != tt.want {
					t.Errorf("bottom neighbour = %s, want %s", s.To.ID, tt.want)
				}
			}
		})
	}
}

func TestFollowRecorder(t *testing.T) {
	rec := recorder.New(log.New(io.Discard))
	c := New(log.New(io.Discard))

	cancel := c.Follow(ctx, rec)
	defer cancel()

	rec.Publish(ctx, cardSet().Nodes())
	if got := len(c.Nodes()); got != 3 {
		t.Fatalf("len(Nodes()) = %d, want 3", got)
	}
	c.Tap(ctx, "body")

	rec.Report("card", "", geometry.NewRect(0, 0, 200, 120))
	rec.Commit(ctx)
	if sel := c.Selection(); sel.State != Idle {
		t.Errorf("Selection() = %v after body vanished, want idle", sel)
	}
}

func TestToggleStopsFollowedRecorder(t *testing.T) {
	rec := recorder.New(log.New(io.Discard))
	c := New(log.New(io.Discard))
	cancel := c.Follow(ctx, rec)
	defer cancel()

	rec.Publish(ctx, cardSet().Nodes())
	if c.ToggleInspection(ctx) {
		t.Fatal("ToggleInspection() = true, want false")
	}
	if rec.Enabled() {
		t.Fatal("recorder still enabled after inspection was turned off")
	}

	passes := rec.Passes()
	rec.Report("card", "", geometry.NewRect(0, 0, 10, 10))
	rec.Commit(ctx)
	rec.Publish(ctx, []node.Node{{ID: "other"}})
	if rec.Passes() != passes {
		t.Errorf("Passes() = %d, want %d", rec.Passes(), passes)
	}
	if got := len(c.Nodes()); got != 3 {
		t.Errorf("len(Nodes()) = %d, want 3", got)
	}

	c.ToggleInspection(ctx)
	rec.Publish(ctx, []node.Node{{ID: "other"}})
	if got := len(c.Nodes()); got != 1 {
		t.Errorf("len(Nodes()) after re-enabling = %d, want 1", got)
	}
}

func TestFollowAdoptsEnabledFlag(t *testing.T) {
	rec := recorder.New(log.New(io.Discard))
	c := New(log.New(io.Discard), WithEnabled(false))

	cancel := c.Follow(ctx, rec)
	if rec.Enabled() {
		t.Error("recorder enabled while following a disabled controller")
	}

	cancel()
	c.SetEnabled(ctx, true)
	if rec.Enabled() {
		t.Error("recorder followed the controller after cancel")
	}
}

type recordingHooks struct {
	mu          sync.Mutex
	transitions []string
	computed    int
}

func (h *recordingHooks) OnSpacingsComputed(context.Context, string, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.computed++
}

func (h *recordingHooks) OnSelectionChanged(_ context.Context, from, to string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transitions = append(h.transitions, from+" > "+to)
}

func TestHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetInspectorHooks(h)
	defer observability.Reset()

	c := newController()
	c.Tap(ctx, "title")
	c.DoubleTap(ctx, "body")
	c.DoubleTap(ctx, "title") // ignored
	c.Tap(ctx, "title")

	want := []string{
		"idle > selected(title)",
		"selected(title) > selected(title) focus(body)",
		"selected(title) focus(body) > idle",
	}
	if !equalStrings(h.transitions, want) {
		t.Errorf("transitions = %v, want %v", h.transitions, want)
	}
	if h.computed != 2 {
		t.Errorf("computed = %d, want 2", h.computed)
	}
}

func TestConcurrentEvents(t *testing.T) {
	c := newController()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Tap(ctx, "title")
				c.DoubleTap(ctx, "body")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.OnNodeSetUpdated(ctx, cardSet())
				_ = c.Overlay()
			}
		}()
	}
	wg.Wait()
}

func BenchmarkNodeSetUpdate(b *testing.B) {
	for _, size := range []int{10, 100, 500} {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			nodes := make([]node.Node, 0, size)
			for i := range size {
				parent := ""
				if i > 0 {
					parent = fmt.Sprintf("n%d", (i-1)/4)
				}
				nodes = append(nodes, node.Node{
					ID:       fmt.Sprintf("n%d", i),
					ParentID: parent,
					Frame:    geometry.NewRect(float64(i%20)*30, float64(i/20)*30, 20, 20),
				})
			}
			set := node.NewSet(nodes...)
			c := New(log.New(io.Discard))
			c.OnNodeSetUpdated(ctx, set)
			c.Tap(ctx, fmt.Sprintf("n%d", size/2))

			for b.Loop() {
				c.OnNodeSetUpdated(ctx, set)
			}
		})
	}
}
