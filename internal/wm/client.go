package wm

// Window is an X window handle.
type Window uint32

type Geometry struct {
	X  int
	Y  int
	W  int
	H  int
	BW int
}

// Outer returns the width and height including the border.
func (g Geometry) Outer() (w, h int) {
	return g.W + 2*g.BW, g.H + 2*g.BW
}

// SizeHints mirror WM_NORMAL_HINTS. Zero means unset.
type SizeHints struct {
	BaseW int
	BaseH int
	IncW  int
	IncH  int
	MinW  int
	MinH  int
	MaxW  int
	MaxH  int
	MinA  float64
	MaxA  float64
}

// Hints is everything read from a client's ICCCM properties.
type Hints struct {
	Size         SizeHints
	Urgent       bool
	NeverFocus   bool
	TransientFor Window
}

type Client struct {
	Window Window
	Name   string
	Geometry
	Old Geometry

	SizeHints

	Fixed      bool
	Floating   bool
	Urgent     bool
	Fullscreen bool
	NeverFocus bool
}

// Tiled reports whether the layout places this client.
func (c *Client) Tiled() bool {
	return !c.Floating && !c.Fullscreen
}

func (c *Client) setSizeHints(h SizeHints) {
	c.SizeHints = h
	if c.BaseW == 0 && c.BaseH == 0 {
		c.BaseW, c.BaseH = c.MinW, c.MinH
	} else if c.MinW == 0 && c.MinH == 0 {
		c.MinW, c.MinH = c.BaseW, c.BaseH
	}
	c.Fixed = c.MaxW > 0 && c.MaxH > 0 && c.MaxW == c.MinW && c.MaxH == c.MinH
}

// applySizeHints adjusts w and h to the client's increments, aspect and
// bounds. Only floating clients are constrained.
func (c *Client) applySizeHints(w, h int) (int, int) {
	w, h = max(1, w), max(1, h)
	if !c.Floating {
		return w, h
	}

	baseIsMin := c.BaseW == c.MinW && c.BaseH == c.MinH
	if !baseIsMin {
		w -= c.BaseW
		h -= c.BaseH
	}
	if c.MinA > 0 && c.MaxA > 0 {
		if c.MaxA < float64(w)/float64(h) {
			w = int(float64(h)*c.MaxA + 0.5)
		} else if c.MinA < float64(h)/float64(w) {
			h = int(float64(w)*c.MinA + 0.5)
		}
	}
	if baseIsMin {
		w -= c.BaseW
		h -= c.BaseH
	}
	if c.IncW > 0 {
		w -= w % c.IncW
	}
	if c.IncH > 0 {
		h -= h % c.IncH
	}
	w = max(w+c.BaseW, c.MinW)
	h = max(h+c.BaseH, c.MinH)
	if c.MaxW > 0 {
		w = min(w, c.MaxW)
	}
	if c.MaxH > 0 {
		h = min(h, c.MaxH)
	}
	return max(1, w), max(1, h)
}
