// Package term rasterises an inspector overlay onto a terminal cell grid.
//
// Frames are measured in points; terminals address character cells. A
// [Grid] maps between the two. A [Canvas] holds one styled rune per cell
// and draws boxes with box-drawing characters (heavy lines for emphasised
// borders), measurement lines and filled labels, in z order.
//
//	grid := term.Grid{CellWidth: 8, CellHeight: 16}
//	cols, rows := grid.Size(viewport)
//	c := term.NewCanvas(grid, cols, rows)
//	c.DrawOverlay(controller.Overlay())
//	fmt.Println(c.Render())
//
// [Canvas.Render] colours cells with lipgloss; [Canvas.String] returns the
// same picture without escape codes.
package term
