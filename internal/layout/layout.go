package layout

// Rect is a rectangle in root-window coordinates.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Grid returns the column and row counts used to tile n windows.
// Fewer than three windows sit side by side; beyond that the grid is
// ceil(n/2) columns wide. Returns 0, 0 when there is nothing to tile.
func Grid(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}

	if n < 3 {
		cols = n
	} else {
		cols = (n + 1) / 2
	}
	rows = (n + cols - 1) / cols

	return cols, rows
}

// Tile computes the geometry of n windows on screen, in sequence order.
//
// Each window gets one grid cell of size screen.Width/cols by
// screen.Height/rows. The border is drawn outside the returned rectangle,
// so the window itself is shrunk by twice the border width. Division
// truncates; the remainder pixels on the right and bottom edges stay
// uncovered.
func Tile(n int, screen Rect, border int) []Rect {
	cols, rows := Grid(n)
	if cols == 0 {
		return nil
	}

	cellW := screen.Width / cols
	cellH := screen.Height / rows

	rects := make([]Rect, n)
	for i := range rects {
		col := i % cols
		row := i / cols
		rects[i] = Rect{
			X:      screen.X + col*cellW,
			Y:      screen.Y + row*cellH,
			Width:  cellW - 2*border,
			Height: cellH - 2*border,
		}
	}

	return rects
}

// Bar returns the geometry of a status bar stretched across the top edge.
func Bar(screen Rect, height int) Rect {
	return Rect{
		X:      screen.X,
		Y:      screen.Y,
		Width:  screen.Width,
		Height: height,
	}
}
