package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/framescope/pkg/inspector"
)

type borderChars struct {
	TopLeft, Top, TopRight          rune
	Left, Right                     rune
	BottomLeft, Bottom, BottomRight rune
}

var (
	lightBorder = borderChars{'┌', '─', '┐', '│', '│', '└', '─', '┘'}
	heavyBorder = borderChars{'┏', '━', '┓', '┃', '┃', '┗', '━', '┛'}
)

type cell struct {
	r  rune
	fg string
	bg string
}

// Canvas is a fixed-size grid of styled runes.
type Canvas struct {
	grid  Grid
	cols  int
	rows  int
	cells []cell
}

// NewCanvas returns a blank canvas of cols x rows cells. Each side is
// clamped to [0, MaxSize].
func NewCanvas(grid Grid, cols, rows int) *Canvas {
	cols, rows = min(max(cols, 0), MaxSize), min(max(rows, 0), MaxSize)
	c := &Canvas{grid: grid, cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	c.Clear()
	return c
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Grid returns the canvas coordinate mapping.
func (c *Canvas) Grid() Grid { return c.grid }

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

// Rune returns the rune at a cell, or 0 outside the canvas.
func (c *Canvas) Rune(col, row int) rune {
	if !c.in(col, row) {
		return 0
	}
	return c.cells[row*c.cols+col].r
}

func (c *Canvas) in(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.cols && row < c.rows
}

func (c *Canvas) set(col, row int, r rune, fg, bg string) {
	if !c.in(col, row) {
		return
	}
	c.cells[row*c.cols+col] = cell{r: r, fg: fg, bg: bg}
}

// DrawOverlay draws boxes by ascending z, then lines, then labels.
func (c *Canvas) DrawOverlay(o inspector.Overlay) {
	for _, b := range o.Stacked() {
		c.DrawBox(b)
	}
	for _, l := range o.Lines {
		c.DrawLine(l)
	}
	for _, l := range o.Lines {
		c.DrawLabel(l.Label)
	}
	for _, l := range o.Labels {
		c.DrawLabel(l)
	}
}

// DrawBox outlines a node's frame. Boxes narrower than two cells collapse to
// a line or a single mark.
func (c *Canvas) DrawBox(b inspector.Box) {
	chars := lightBorder
	if b.Width > 1 {
		chars = heavyBorder
	}
	c0, r0, c1, r1 := c.grid.Span(b.Node.Frame)

	// Loops only visit visible cells; corners outside the canvas are
	// dropped by set.
	for col := max(c0+1, 0); col < min(c1, c.cols); col++ {
		c.set(col, r0, chars.Top, b.Color, "")
		c.set(col, r1, chars.Bottom, b.Color, "")
	}
	for row := max(r0+1, 0); row < min(r1, c.rows); row++ {
		c.set(c0, row, chars.Left, b.Color, "")
		c.set(c1, row, chars.Right, b.Color, "")
	}
	switch {
	case c0 == c1 && r0 == r1:
		c.set(c0, r0, '□', b.Color, "")
	case c0 == c1:
		for row := max(r0, 0); row <= min(r1, c.rows-1); row++ {
			c.set(c0, row, chars.Left, b.Color, "")
		}
	case r0 == r1:
		for col := max(c0, 0); col <= min(c1, c.cols-1); col++ {
			c.set(col, r0, chars.Top, b.Color, "")
		}
	default:
		c.set(c0, r0, chars.TopLeft, b.Color, "")
		c.set(c1, r0, chars.TopRight, b.Color, "")
		c.set(c0, r1, chars.BottomLeft, b.Color, "")
		c.set(c1, r1, chars.BottomRight, b.Color, "")
	}
}

// DrawLine draws a measurement line between its endpoints.
func (c *Canvas) DrawLine(l inspector.Line) {
	ac, ar := c.grid.Cell(l.Start)
	bc, br := c.grid.Cell(l.End)
	if ar == br {
		for col := max(min(ac, bc), 0); col <= min(max(ac, bc), c.cols-1); col++ {
			c.set(col, ar, '╌', l.Color, "")
		}
		return
	}
	for row := max(min(ar, br), 0); row <= min(max(ar, br), c.rows-1); row++ {
		c.set(ac, row, '╎', l.Color, "")
	}
}

// DrawLabel writes text on its background colour.
func (c *Canvas) DrawLabel(l inspector.Label) {
	col, row := c.grid.Cell(l.At)
	text := []rune(l.Text)
	if l.Anchor == inspector.AnchorCenter {
		col -= len(text) / 2
	}
	for i, r := range text {
		c.set(col+i, row, r, l.Foreground, l.Background)
	}
}

// String returns the canvas as plain text, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			sb.WriteRune(c.cells[row*c.cols+col].r)
		}
	}
	return sb.String()
}

// Render returns the canvas with lipgloss colours. Runs of equally styled
// cells share one style.
func (c *Canvas) Render() string {
	var sb strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end].fg == line[start].fg && line[end].bg == line[start].bg {
				end++
			}
			sb.WriteString(styleFor(line[start]).Render(runString(line[start:end])))
			start = end
		}
	}
	return sb.String()
}

func styleFor(c cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.fg != "" {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		s = s.Background(lipgloss.Color(c.bg))
	}
	return s
}

func runString(cells []cell) string {
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.r
	}
	return string(rs)
}

// Render draws o on a cols x rows canvas and returns the coloured result.
func Render(o inspector.Overlay, grid Grid, cols, rows int) string {
	c := NewCanvas(grid, cols, rows)
	c.DrawOverlay(o)
	return c.Render()
}
