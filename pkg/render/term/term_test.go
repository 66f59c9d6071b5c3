package term

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/inspector"
	"github.com/matzehuels/framescope/pkg/node"
)

var tenGrid = Grid{CellWidth: 10, CellHeight: 10}

func TestGridCell(t *testing.T) {
	tests := []struct {
		p        geometry.Point
		col, row int
	}{
		{geometry.Point{X: 0, Y: 0}, 0, 0},
		{geometry.Point{X: 9.9, Y: 10}, 0, 1},
		{geometry.Point{X: 25, Y: 39}, 2, 3},
		{geometry.Point{X: -1, Y: -1}, -1, -1},
	}
	for _, tt := range tests {
		col, row := tenGrid.Cell(tt.p)
		if col != tt.col || row != tt.row {
			t.Errorf("Cell(%v) = (%d, %d), want (%d, %d)", tt.p, col, row, tt.col, tt.row)
		}
	}

	if p := tenGrid.Point(2, 3); p != (geometry.Point{X: 25, Y: 35}) {
		t.Errorf("Point(2, 3) = %v, want (25, 35)", p)
	}
}

func TestGridSpanAndSize(t *testing.T) {
	c0, r0, c1, r1 := tenGrid.Span(geometry.NewRect(16, 16, 120, 24))
	if c0 != 1 || r0 != 1 || c1 != 13 || r1 != 3 {
		t.Errorf("Span() = %d,%d,%d,%d, want 1,1,13,3", c0, r0, c1, r1)
	}

	// zero-sized frames still cover a cell
	c0, r0, c1, r1 = tenGrid.Span(geometry.NewRect(5, 5, 0, 0))
	if c0 != c1 || r0 != r1 {
		t.Errorf("Span(empty) = %d,%d,%d,%d, want a single cell", c0, r0, c1, r1)
	}

	cols, rows := tenGrid.Size(geometry.NewRect(0, 0, 200, 120))
	if cols != 20 || rows != 12 {
		t.Errorf("Size() = %dx%d, want 20x12", cols, rows)
	}
}

func TestGridFit(t *testing.T) {
	g := Grid{CellWidth: 1, CellHeight: 2}.Fit(geometry.NewRect(0, 0, 200, 100), 20, 20)
	if g.CellWidth != 10 || g.CellHeight != 20 {
		t.Errorf("Fit() = %+v, want 10x20 cells", g)
	}
	cols, rows := g.Size(geometry.NewRect(0, 0, 200, 100))
	if cols > 20 || rows > 20 {
		t.Errorf("fitted size %dx%d exceeds 20x20", cols, rows)
	}
}

func box(x, y, w, h, width float64) inspector.Box {
	return inspector.Box{
		Node:  node.Node{ID: "n", Frame: geometry.NewRect(x, y, w, h)},
		Color: "#0000ff",
		Width: width,
	}
}

func TestDrawBox(t *testing.T) {
	tests := []struct {
		name string
		box  inspector.Box
		want string
	}{
		{"light", box(0, 0, 30, 30, 1), "┌─┐\n│ │\n└─┘"},
		{"heavy", box(0, 0, 30, 30, 2), "┏━┓\n┃ ┃\n┗━┛"},
		{"flat", box(0, 10, 30, 5, 1), "   \n───\n   "},
		{"thin", box(10, 0, 5, 30, 1), " │ \n │ \n │ "},
		{"dot", box(10, 10, 2, 2, 1), "   \n □ \n   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(tenGrid, 3, 3)
			c.DrawBox(tt.box)
			if got := c.String(); got != tt.want {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestDrawClipsOutsideCanvas(t *testing.T) {
	c := NewCanvas(tenGrid, 2, 2)
	c.DrawBox(box(-50, -50, 200, 200, 1))
	if got := c.String(); got != "  \n  " {
		t.Errorf("String() = %q, want blank", got)
	}
	if r := c.Rune(5, 5); r != 0 {
		t.Errorf("Rune(5, 5) = %q, want 0", r)
	}
}

func TestDrawHugeFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame geometry.Rect
	}{
		{"wide", geometry.NewRect(0, 0, 1e11, 10)},
		{"beyond int range", geometry.NewRect(0, 0, 1e300, 10)},
		{"far left", geometry.NewRect(-1e19, 0, 2e19, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan [2]string, 1)
			go func() {
				b := NewCanvas(tenGrid, 4, 1)
				b.DrawBox(inspector.Box{Node: node.Node{ID: "n", Frame: tt.frame}, Color: "#ff0000", Width: 1})
				l := NewCanvas(tenGrid, 4, 1)
				l.DrawLine(inspector.Line{Start: tt.frame.Origin(), End: geometry.Point{X: tt.frame.MaxX(), Y: 0}})
				done <- [2]string{b.String(), l.String()}
			}()
			select {
			case got := <-done:
				if got[0] != "────" {
					t.Errorf("box = %q, want %q", got[0], "────")
				}
				if got[1] != "╌╌╌╌" {
					t.Errorf("line = %q, want %q", got[1], "╌╌╌╌")
				}
			case <-time.After(5 * time.Second):
				t.Fatal("drawing did not finish")
			}
		})
	}
}

func TestGridClampsFarPoints(t *testing.T) {
	col, row := tenGrid.Cell(geometry.Point{X: 1e300, Y: -1e300})
	if col != maxCell || row != -maxCell {
		t.Errorf("Cell() = (%d, %d), want (%d, %d)", col, row, maxCell, -maxCell)
	}

	_, _, c1, _ := tenGrid.Span(geometry.NewRect(0, 0, 1e300, 10))
	if c1 != maxCell-1 {
		t.Errorf("Span() col1 = %d, want %d", c1, maxCell-1)
	}

	cols, rows := tenGrid.Size(geometry.NewRect(0, 0, 1e12, 1e12))
	if cols != MaxSize || rows != MaxSize {
		t.Errorf("Size() = %dx%d, want %dx%d", cols, rows, MaxSize, MaxSize)
	}
}

func TestDrawLabelAndLine(t *testing.T) {
	c := NewCanvas(tenGrid, 7, 3)
	c.DrawLine(inspector.Line{Start: geometry.Point{X: 5, Y: 0}, End: geometry.Point{X: 5, Y: 25}})
	c.DrawLabel(inspector.Label{Text: "12", At: geometry.Point{X: 45, Y: 15}, Anchor: inspector.AnchorCenter})
	c.DrawLabel(inspector.Label{Text: "ab", At: geometry.Point{X: 50, Y: 0}})

	want := strings.Join([]string{
		"╎    ab",
		"╎  12  ",
		"╎      ",
	}, "\n")
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	h := NewCanvas(tenGrid, 4, 1)
	h.DrawLine(inspector.Line{Start: geometry.Point{X: 35, Y: 5}, End: geometry.Point{X: 5, Y: 5}})
	if got := h.String(); got != "╌╌╌╌" {
		t.Errorf("horizontal line = %q", got)
	}
}

func TestDrawOverlay(t *testing.T) {
	ctx := context.Background()
	ctrl := inspector.New(log.New(io.Discard))
	ctrl.OnNodeSetUpdated(ctx, node.NewSet(
		node.Node{ID: "card", Frame: geometry.NewRect(0, 0, 200, 120)},
		node.Node{ID: "title", ParentID: "card", Frame: geometry.NewRect(16, 16, 120, 24)},
		node.Node{ID: "body", ParentID: "card", Frame: geometry.NewRect(16, 52, 168, 48)},
	))
	ctrl.Tap(ctx, "title")

	c := NewCanvas(tenGrid, 20, 12)
	c.DrawOverlay(ctrl.Overlay())
	out := c.String()

	if !strings.Contains(out, "120x24") {
		t.Errorf("size label missing:\n%s", out)
	}
	// the selected title is heavy, the connected card too
	if c.Rune(10, 1) != '━' {
		t.Errorf("title top border = %q, want heavy", c.Rune(10, 1))
	}
	if c.Rune(0, 5) != '┃' {
		t.Errorf("card left border = %q, want heavy", c.Rune(0, 5))
	}

	styled := Render(ctrl.Overlay(), tenGrid, 20, 12)
	if !strings.Contains(styled, "120x24") {
		t.Error("Render() lost the label text")
	}
}
