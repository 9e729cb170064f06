package layout

// GridDims returns the column count and the tallest column's row count
// for n clients.
func GridDims(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}

	cols = gridCols(n)
	rows = n / cols
	if n%cols != 0 {
		rows++
	}
	return cols, rows
}

func gridCols(n int) int {
	if n == 5 {
		return 2
	}
	cols := 1
	for cols*cols < n {
		cols++
	}
	return cols
}

// grid fills columns top to bottom. The last n mod cols columns hold one
// extra row.
func grid(area Rect, n int) []Rect {
	cols := gridCols(n)
	widths := split(area.W, cols)

	rects := make([]Rect, 0, n)
	x := area.X
	for c := 0; c < cols; c++ {
		rows := n / cols
		if c >= cols-n%cols {
			rows++
		}

		y := area.Y
		for _, h := range split(area.H, rows) {
			rects = append(rects, Rect{X: x, Y: y, W: widths[c], H: h})
			y += h
		}
		x += widths[c]
	}
	return rects
}
