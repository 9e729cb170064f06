package config

import (
	"github.com/lucasb-eyer/go-colorful"
)

type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseColor parses a "#rrggbb" color.
func ParseColor(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func (s Scheme) RGB() (fg, bg, border RGB, err error) {
	if fg, err = ParseColor(s.Fg); err != nil {
		return
	}
	if bg, err = ParseColor(s.Bg); err != nil {
		return
	}
	border, err = ParseColor(s.Border)
	return
}
