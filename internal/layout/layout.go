// Package layout computes client geometry for a workspace.
package layout

import (
	"fmt"
	"strings"
)

type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Right() int { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Kind is a closed set of layouts.
type Kind int

const (
	Tile Kind = iota
	Monocle
	Float
	Grid
)

var kinds = []struct {
	name   string
	symbol string
}{
	Tile:    {"tile", "[]="},
	Monocle: {"monocle", "[M]"},
	Float:   {"float", "><>"},
	Grid:    {"grid", "HHH"},
}

// Kinds returns every layout in cycle order.
func Kinds() []Kind {
	return []Kind{Tile, Monocle, Float, Grid}
}

func (k Kind) Valid() bool {
	return k >= Tile && int(k) < len(kinds)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

// Symbol is shown in the bar.
func (k Kind) Symbol() string {
	if !k.Valid() {
		return "???"
	}
	return kinds[k].symbol
}

// Arranges reports whether the layout touches client geometry at all.
func (k Kind) Arranges() bool {
	return k != Float
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range kinds {
		if v.name == s || v.symbol == s {
			return Kind(k), nil
		}
	}
	if s == "none" || s == "noarrange" {
		return Float, nil
	}
	return 0, fmt.Errorf("unknown layout: %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid layout: %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Params are the per-workspace layout settings.
type Params struct {
	Mfact   float64
	Nmaster int
}

// Arrange returns the outer rectangle of each of the n clients in list
// order. Float returns nil, leaving geometry untouched.
func Arrange(kind Kind, area Rect, n int, p Params) []Rect {
	if n <= 0 {
		return nil
	}

	switch kind {
	case Tile:
		return tile(area, n, p.Mfact, p.Nmaster)
	case Monocle:
		return monocle(area, n)
	case Grid:
		return grid(area, n)
	default:
		return nil
	}
}

func monocle(area Rect, n int) []Rect {
	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = area
	}
	return rects
}

// Content returns the area left for clients on a screen of size sw by sh
// and the y position of the bar. A hidden bar sits just above the screen.
func Content(sw, sh, bh int, showBar, topBar bool) (area Rect, barY int) {
	area = Rect{X: 0, Y: 0, W: sw, H: sh}
	if !showBar {
		return area, -bh
	}

	area.H -= bh
	if topBar {
		area.Y += bh
		return area, 0
	}
	return area, area.H
}

// split divides total into n parts that add up to total.
func split(total, n int) []int {
	parts := make([]int, n)
	rest := total
	for i := range parts {
		parts[i] = rest / (n - i)
		rest -= parts[i]
	}
	return parts
}
