package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/inspector"
	"github.com/matzehuels/framescope/pkg/node"
	"github.com/matzehuels/framescope/pkg/render/term"
	"github.com/matzehuels/framescope/pkg/spacing"
)

// Screen rows above and below the canvas.
const (
	headerLines = 2
	footerLines = 2
)

var (
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	cursorStyle = lipgloss.NewStyle().Foreground(colorCyan)
	offStyle    = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// passMsg reports that a new pass reached the controller.
type passMsg struct{ nodes int }

// =============================================================================
// InspectModel - Interactive overlay
// =============================================================================

// InspectModel is the bubbletea model for the interactive inspector. Left
// clicks tap the topmost element under the pointer, right clicks double-tap.
type InspectModel struct {
	ctx      context.Context
	ctrl     *inspector.Controller
	passes   <-chan int
	viewport geometry.Rect

	base       term.Grid // configured cell size
	grid       term.Grid // base fitted to the window
	cols, rows int

	cursor int    // keyboard position in render order
	status string // last event, shown in the footer
}

// NewInspectModel creates a model showing ctrl over viewport. passes, when
// non-nil, delivers the node count of every live pass.
func NewInspectModel(ctx context.Context, ctrl *inspector.Controller, viewport geometry.Rect, cell term.Grid, passes <-chan int) InspectModel {
	cell.Origin = viewport.Origin()
	cols, rows := cell.Size(viewport)
	return InspectModel{
		ctx:      ctx,
		ctrl:     ctrl,
		passes:   passes,
		viewport: viewport,
		base:     cell,
		grid:     cell,
		cols:     cols,
		rows:     rows,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return m.waitForPass()
}

func (m InspectModel) waitForPass() tea.Cmd {
	if m.passes == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-m.passes
		if !ok {
			return nil
		}
		return passMsg{nodes: n}
	}
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 1)
		m.rows = max(msg.Height-headerLines-footerLines, 1)
		m.grid = m.base.Fit(m.viewport, m.cols, m.rows)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.gestureAt(msg.X, msg.Y, false)
		case tea.MouseButtonRight:
			m.gestureAt(msg.X, msg.Y, true)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "down", "j":
			m.moveCursor(1)
		case "shift+tab", "up", "k":
			m.moveCursor(-1)
		case "enter", " ":
			if n, ok := m.cursorNode(); ok {
				m.ctrl.Tap(m.ctx, n.ID)
				m.status = "tap " + n.ID
			}
		case "f":
			if n, ok := m.cursorNode(); ok {
				m.ctrl.DoubleTap(m.ctx, n.ID)
				m.status = "double tap " + n.ID
			}
		case "esc":
			if _, err := m.ctrl.OnSelectionChanged(m.ctx, "", ""); err == nil {
				m.status = "cleared"
			}
		case "i":
			if m.ctrl.ToggleInspection(m.ctx) {
				m.status = "inspection on"
			} else {
				m.status = "inspection off"
			}
		}

	case passMsg:
		m.status = fmt.Sprintf("pass with %d nodes", msg.nodes)
		m.clampCursor()
		return m, m.waitForPass()
	}
	return m, nil
}

// gestureAt taps or double-taps the element under screen cell (x, y).
func (m *InspectModel) gestureAt(x, y int, double bool) {
	row := y - headerLines
	if x < 0 || x >= m.cols || row < 0 || row >= m.rows {
		return
	}
	n, ok := m.ctrl.HitTest(m.grid.Point(x, row))
	if !ok {
		m.status = "nothing here"
		return
	}
	if double {
		m.ctrl.DoubleTap(m.ctx, n.ID)
		m.status = "double tap " + n.ID
		return
	}
	m.ctrl.Tap(m.ctx, n.ID)
	m.status = "tap " + n.ID
}

func (m *InspectModel) moveCursor(step int) {
	n := len(m.ctrl.Nodes())
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+step)%n + n) % n
}

func (m *InspectModel) clampCursor() {
	if n := len(m.ctrl.Nodes()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m InspectModel) cursorNode() (node.Node, bool) {
	nodes := m.ctrl.Nodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return node.Node{}, false
	}
	return nodes[m.cursor], true
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName) + "  " + formatSelection(m.ctrl.Selection()))
	if !m.ctrl.Enabled() {
		b.WriteString("  " + offStyle.Render("inspection off"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("click select · right-click focus · tab/enter/f keyboard · esc clear · i toggle · q quit"))
	b.WriteString("\n")

	b.WriteString(term.Render(m.ctrl.Overlay(), m.grid, m.cols, m.rows))
	b.WriteString("\n")

	b.WriteString(spacingSummary(m.ctrl.Spacings()))
	b.WriteString("\n")
	footer := m.status
	if n, ok := m.cursorNode(); ok {
		footer = cursorStyle.Render("▸ "+n.ID) + "  " + helpStyle.Render(footer)
	}
	b.WriteString(footer)

	return b.String()
}

// spacingSummary lists spacings on one line, e.g. "top→card.top 16".
func spacingSummary(spacings []spacing.Spacing) string {
	if len(spacings) == 0 {
		return helpStyle.Render("no spacings")
	}
	parts := make([]string, 0, len(spacings))
	for _, s := range spacings {
		parts = append(parts, fmt.Sprintf("%s%s%s.%s %s",
			s.FromEdge, iconArrow, s.To.ID, s.ToEdge, StyleNumber.Render(s.Label())))
	}
	return strings.Join(parts, helpStyle.Render("  ·  "))
}
