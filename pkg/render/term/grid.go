package term

import (
	"math"

	"github.com/matzehuels/framescope/pkg/geometry"
)

// Grid maps frame coordinates onto terminal cells.
type Grid struct {
	CellWidth  float64
	CellHeight float64
	// Origin is the frame point drawn at cell (0, 0).
	Origin geometry.Point
}

// maxCell bounds cell coordinates so far-off frames stay in int range.
const maxCell = 1 << 30

// MaxSize is the largest canvas side, in cells.
const MaxSize = 4096

// Cell returns the cell containing p.
func (g Grid) Cell(p geometry.Point) (col, row int) {
	return toCell(math.Floor((p.X - g.Origin.X) / g.CellWidth)),
		toCell(math.Floor((p.Y - g.Origin.Y) / g.CellHeight))
}

// toCell converts a cell coordinate to int, clamped to ±maxCell. NaN maps
// to 0.
func toCell(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxCell:
		return maxCell
	case v < -maxCell:
		return -maxCell
	}
	return int(v)
}

// Point returns the frame point at the centre of a cell.
func (g Grid) Point(col, row int) geometry.Point {
	return geometry.Point{
		X: g.Origin.X + (float64(col)+0.5)*g.CellWidth,
		Y: g.Origin.Y + (float64(row)+0.5)*g.CellHeight,
	}
}

// Span returns the cells covered by r, inclusive. Every rectangle covers at
// least one cell.
func (g Grid) Span(r geometry.Rect) (col0, row0, col1, row1 int) {
	col0, row0 = g.Cell(r.Origin())
	col1 = toCell(math.Ceil((r.MaxX()-g.Origin.X)/g.CellWidth)) - 1
	row1 = toCell(math.Ceil((r.MaxY()-g.Origin.Y)/g.CellHeight)) - 1
	return col0, row0, max(col1, col0), max(row1, row0)
}

// Size returns the number of cells needed to show viewport, at most
// MaxSize per side.
func (g Grid) Size(viewport geometry.Rect) (cols, rows int) {
	_, _, c1, r1 := g.Span(viewport)
	return min(max(c1+1, 0), MaxSize), min(max(r1+1, 0), MaxSize)
}

// Fit returns a grid that shows viewport in at most cols x rows cells,
// keeping the terminal cell aspect given by g.
func (g Grid) Fit(viewport geometry.Rect, cols, rows int) Grid {
	if cols <= 0 || rows <= 0 || viewport.Width <= 0 || viewport.Height <= 0 {
		return g
	}
	scale := math.Max(
		viewport.Width/(float64(cols)*g.CellWidth),
		viewport.Height/(float64(rows)*g.CellHeight),
	)
	return Grid{
		CellWidth:  g.CellWidth * scale,
		CellHeight: g.CellHeight * scale,
		Origin:     viewport.Origin(),
	}
}
