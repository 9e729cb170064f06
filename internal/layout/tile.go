package layout

// tile places the first nmaster clients in a master column of width
// mfact and the rest in a stack column, each column split evenly by
// height. Without masters the clients are placed side by side in equal
// columns across the whole area.
func tile(area Rect, n int, mfact float64, nmaster int) []Rect {
	if n == 1 {
		return []Rect{area}
	}

	if nmaster <= 0 {
		return columns(area, n)
	}

	masters := min(nmaster, n)
	mw := area.W
	if n > nmaster {
		mw = int(float64(area.W) * clampMfact(mfact))
	}

	rects := make([]Rect, 0, n)
	rects = append(rects, rows(Rect{X: area.X, Y: area.Y, W: mw, H: area.H}, masters)...)
	if n > masters {
		stack := Rect{X: area.X + mw, Y: area.Y, W: area.W - mw, H: area.H}
		rects = append(rects, rows(stack, n-masters)...)
	}
	return rects
}

func rows(area Rect, n int) []Rect {
	rects := make([]Rect, n)
	y := area.Y
	for i, h := range split(area.H, n) {
		rects[i] = Rect{X: area.X, Y: y, W: area.W, H: h}
		y += h
	}
	return rects
}

func columns(area Rect, n int) []Rect {
	rects := make([]Rect, n)
	x := area.X
	for i, w := range split(area.W, n) {
		rects[i] = Rect{X: x, Y: area.Y, W: w, H: area.H}
		x += w
	}
	return rects
}

const (
	MinMfact = 0.05
	MaxMfact = 0.95
)

func clampMfact(f float64) float64 {
	return max(MinMfact, min(MaxMfact, f))
}

// ClampMfact keeps f inside the range the tile layout accepts.
func ClampMfact(f float64) float64 {
	return clampMfact(f)
}
