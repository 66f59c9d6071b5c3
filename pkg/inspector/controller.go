package inspector

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/observability"
	"github.com/matzehuels/framescope/pkg/recorder"
	"github.com/matzehuels/framescope/pkg/spacing"
)

// Option configures a Controller.
type Option func(*Controller)

// WithTieBreak sets the neighbour tie-break policy.
func WithTieBreak(tb spacing.TieBreak) Option {
	return func(c *Controller) { c.opts.TieBreak = tb }
}

// WithStyle sets the overlay style.
func WithStyle(s Style) Option {
	return func(c *Controller) { c.style = s }
}

// WithEnabled sets whether inspection starts enabled. The default is true.
func WithEnabled(enabled bool) Option {
	return func(c *Controller) { c.enabled = enabled }
}

// Controller owns the selection state for one inspected view tree.
// It is safe for concurrent use.
type Controller struct {
	Logger *log.Logger

	mu       sync.Mutex
	enabled  bool
	set      node.Set
	z        map[string]int
	sel      Selection
	spacings []spacing.Spacing
	opts     spacing.Options
	style    Style

	// recorders follow the enabled flag.
	recorders []*recorder.Recorder
}

// New creates an idle controller over an empty node set.
// If logger is nil, log.Default() is used.
func New(logger *log.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		Logger:  logger,
		enabled: true,
		set:     node.NewSet(),
		z:       map[string]int{},
		style:   DefaultStyle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Follow feeds every pass rec publishes into the controller, starting with
// its current set. While following, rec records only when inspection is
// enabled. The returned function stops following.
func (c *Controller) Follow(ctx context.Context, rec *recorder.Recorder) (cancel func()) {
	c.mu.Lock()
	rec.SetEnabled(c.enabled)
	c.recorders = append(c.recorders, rec)
	c.mu.Unlock()

	c.OnNodeSetUpdated(ctx, rec.Current())
	unsubscribe := rec.Subscribe(func(s node.Set) { c.OnNodeSetUpdated(ctx, s) })

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			c.mu.Lock()
			defer c.mu.Unlock()
			c.recorders = slices.DeleteFunc(c.recorders, func(r *recorder.Recorder) bool { return r == rec })
		})
	}
}

// =============================================================================
// Events
// =============================================================================

// OnNodeSetUpdated replaces the node set, re-resolves the selection by id
// and recomputes spacings.
func (c *Controller) OnNodeSetUpdated(ctx context.Context, set node.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set = set
	c.z = set.ZIndexes()
	c.apply(ctx, resolve(c.sel, set), true)
}

// Tap handles a single tap on the node with id. Taps on ids missing from
// the current set, and taps while inspection is disabled, are ignored.
func (c *Controller) Tap(ctx context.Context, id string) Selection {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.target(id)
	if !ok {
		return c.sel
	}
	c.apply(ctx, afterTap(c.sel, n), false)
	return c.sel
}

// DoubleTap handles a double tap on the node with id.
func (c *Controller) DoubleTap(ctx context.Context, id string) Selection {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.target(id)
	if !ok {
		return c.sel
	}
	c.apply(ctx, afterDoubleTap(c.sel, n), false)
	return c.sel
}

// OnSelectionChanged sets the selection directly. An empty selectedID
// clears it. A focusedID equal to selectedID is ignored.
func (c *Controller) OnSelectionChanged(ctx context.Context, selectedID, focusedID string) (Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return c.sel, errors.New(errors.ErrCodeInvalidInput, "inspection is disabled")
	}
	if selectedID == "" {
		if focusedID != "" {
			return c.sel, errors.New(errors.ErrCodeInvalidInput, "focus %q requires a selected node", focusedID)
		}
		c.apply(ctx, idle(), false)
		return c.sel, nil
	}

	sel, ok := c.set.Node(selectedID)
	if !ok {
		return c.sel, errors.New(errors.ErrCodeNodeNotFound, "node %q not in current pass", selectedID)
	}
	next := selected(sel)
	if focusedID != "" && focusedID != selectedID {
		focus, ok := c.set.Node(focusedID)
		if !ok {
			return c.sel, errors.New(errors.ErrCodeNodeNotFound, "node %q not in current pass", focusedID)
		}
		next = withFocus(sel, focus)
	}
	c.apply(ctx, next, false)
	return c.sel, nil
}

// SetEnabled turns inspection on or off. Disabling clears the selection.
func (c *Controller) SetEnabled(ctx context.Context, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setEnabled(ctx, enabled)
}

// ToggleInspection flips the enabled flag and returns the new value.
func (c *Controller) ToggleInspection(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setEnabled(ctx, !c.enabled)
	return c.enabled
}

func (c *Controller) setEnabled(ctx context.Context, enabled bool) {
	if c.enabled != enabled {
		c.Logger.Debug("inspection toggled", "enabled", enabled)
	}
	c.enabled = enabled
	for _, rec := range c.recorders {
		rec.SetEnabled(enabled)
	}
	if !enabled {
		c.apply(ctx, idle(), false)
	}
}

func (c *Controller) target(id string) (node.Node, bool) {
	if !c.enabled {
		return node.Node{}, false
	}
	n, ok := c.set.Node(id)
	if !ok {
		c.Logger.Debug("ignoring gesture on unknown node", "id", id)
	}
	return n, ok
}

// apply moves to next and recomputes spacings when the selection changed
// or force is set. Callers hold c.mu.
func (c *Controller) apply(ctx context.Context, next Selection, force bool) {
	prev := c.sel
	c.sel = next
	changed := !prev.Same(next)
	if changed {
		c.Logger.Debug("selection changed", "from", prev.String(), "to", next.String())
		observability.Inspector().OnSelectionChanged(ctx, prev.String(), next.String())
	}
	if changed || force {
		c.recompute(ctx)
	}
}

func (c *Controller) recompute(ctx context.Context) {
	start := time.Now()
	switch c.sel.State {
	case Selected:
		c.spacings = spacing.All(c.set, c.sel.Selected, c.opts)
	case SelectedWithFocus:
		c.spacings = spacing.Direct(c.sel.Selected, c.sel.Focused)
	default:
		c.spacings = nil
		return
	}
	observability.Inspector().OnSpacingsComputed(ctx, c.sel.Selected.ID, len(c.spacings), time.Since(start))
}

// =============================================================================
// Reads
// =============================================================================

// Enabled reports whether inspection is on.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Set returns the current node set.
func (c *Controller) Set() node.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set
}

// Nodes returns the current nodes in render order.
func (c *Controller) Nodes() []node.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Nodes()
}

// Selection returns the current selection.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// Spacings returns the spacings derived from the current selection.
func (c *Controller) Spacings() []spacing.Spacing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.spacings)
}

// ZIndex returns the stacking depth of n in the current set.
func (c *Controller) ZIndex(n node.Node) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.z[n.ID]
}

// HitTest returns the topmost node containing p.
func (c *Controller) HitTest(p geometry.Point) (node.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.HitTest(p)
}

// Style returns the overlay style.
func (c *Controller) Style() Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}
