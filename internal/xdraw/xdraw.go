// Package xdraw draws the bar with X core fonts into a pixmap.
package xdraw

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/xtagwm/internal/config"
	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var ErrNoFont = errors.New("no usable font")

const ellipsis = "..."

type Scheme struct {
	Fg     uint32
	Bg     uint32
	Border uint32
}

type Surface struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	window xproto.Window
	pixmap xproto.Pixmap
	gc     xproto.Gcontext
	w      int
	h      int

	font    xproto.Font
	ascent  int
	descent int
	widths  map[string]int

	schemes [2]Scheme
	scheme  Scheme
}

// New loads the first font that opens and creates a drawing area w pixels
// wide and one line of text high.
func New(conn *xgb.Conn, screen *xproto.ScreenInfo, w int, fonts []string) (*Surface, error) {
	s := &Surface{
		conn:   conn,
		screen: screen,
		w:      max(1, w),
		widths: make(map[string]int),
	}

	if err := s.loadFont(fonts); err != nil {
		return nil, err
	}
	s.h = s.FontHeight() + 2

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, err
	}
	s.gc = gc
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(screen.Root),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{screen.WhitePixel, screen.BlackPixel, uint32(s.font), 0}).Check(); err != nil {
		return nil, fmt.Errorf("failed to create graphics context: %w", err)
	}

	if err := s.createPixmap(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Surface) loadFont(names []string) error {
	for _, name := range names {
		fid, err := xproto.NewFontId(s.conn)
		if err != nil {
			return err
		}

		if err := xproto.OpenFontChecked(s.conn, fid, uint16(len(name)), name).Check(); err != nil {
			slog.Warn("Failed to open font", "font", name, "error", err)
			continue
		}

		reply, err := xproto.QueryFont(s.conn, xproto.Fontable(fid)).Reply()
		if err != nil {
			xproto.CloseFont(s.conn, fid)
			slog.Warn("Failed to query font", "font", name, "error", err)
			continue
		}

		s.font = fid
		s.ascent = int(reply.FontAscent)
		s.descent = int(reply.FontDescent)
		slog.Debug("Loaded font", "font", name, "height", s.FontHeight())
		return nil
	}

	return fmt.Errorf("%w: tried %q", ErrNoFont, names)
}

func (s *Surface) createPixmap() error {
	pid, err := xproto.NewPixmapId(s.conn)
	if err != nil {
		return err
	}
	if err := xproto.CreatePixmapChecked(s.conn, s.screen.RootDepth, pid, xproto.Drawable(s.screen.Root), uint16(s.w), uint16(s.h)).Check(); err != nil {
		return fmt.Errorf("failed to create pixmap: %w", err)
	}
	s.pixmap = pid
	return nil
}

// LoadSchemes allocates the colors of both schemes.
func (s *Surface) LoadSchemes(norm, sel config.Scheme) error {
	for i, scheme := range []config.Scheme{norm, sel} {
		fg, bg, border, err := scheme.RGB()
		if err != nil {
			return err
		}

		var pixels [3]uint32
		for j, c := range []config.RGB{fg, bg, border} {
			pixel, err := s.allocColor(c)
			if err != nil {
				return err
			}
			pixels[j] = pixel
		}
		s.schemes[i] = Scheme{Fg: pixels[0], Bg: pixels[1], Border: pixels[2]}
	}
	s.scheme = s.schemes[wm.SchemeNorm]
	return nil
}

func (s *Surface) allocColor(c config.RGB) (uint32, error) {
	reply, err := xproto.AllocColor(s.conn, s.screen.DefaultColormap,
		uint16(c.R)<<8|uint16(c.R), uint16(c.G)<<8|uint16(c.G), uint16(c.B)<<8|uint16(c.B)).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate color %v: %w", c, err)
	}
	return reply.Pixel, nil
}

// Scheme returns the allocated pixels of scheme.
func (s *Surface) Scheme(scheme wm.Scheme) Scheme {
	if scheme == wm.SchemeSel {
		return s.schemes[1]
	}
	return s.schemes[0]
}

// SetWindow sets where Flush copies to.
func (s *Surface) SetWindow(win xproto.Window) {
	s.window = win
}

func (s *Surface) FontHeight() int {
	return s.ascent + s.descent
}

func (s *Surface) TextWidth(text string) int {
	if text == "" {
		return 0
	}
	if w, ok := s.widths[text]; ok {
		return w
	}

	chars := latin1(text)
	str := make([]xproto.Char2b, len(chars))
	for i, c := range chars {
		str[i] = xproto.Char2b{Byte1: 0, Byte2: c}
	}

	reply, err := xproto.QueryTextExtents(s.conn, xproto.Fontable(s.font), str, uint16(len(str))).Reply()
	if err != nil {
		slog.Debug("Failed to query text extents", "error", err)
		return len(chars) * s.FontHeight() / 2
	}

	w := int(reply.OverallWidth)
	if len(s.widths) > 512 {
		clear(s.widths)
	}
	s.widths[text] = w
	return w
}

func (s *Surface) SetScheme(scheme wm.Scheme) {
	s.scheme = s.Scheme(scheme)
}

func (s *Surface) setForeground(pixel uint32) {
	xproto.ChangeGC(s.conn, s.gc, xproto.GcForeground, []uint32{pixel})
}

func (s *Surface) Rect(x, y, w, h int, filled, invert bool) {
	if w <= 0 || h <= 0 {
		return
	}

	if invert {
		s.setForeground(s.scheme.Bg)
	} else {
		s.setForeground(s.scheme.Fg)
	}

	if filled {
		xproto.PolyFillRectangle(s.conn, xproto.Drawable(s.pixmap), s.gc, []xproto.Rectangle{
			{X: int16(x), Y: int16(y), Width: uint16(w), Height: uint16(h)},
		})
		return
	}
	xproto.PolyRectangle(s.conn, xproto.Drawable(s.pixmap), s.gc, []xproto.Rectangle{
		{X: int16(x), Y: int16(y), Width: uint16(w - 1), Height: uint16(h - 1)},
	})
}

// Text fills the cell with the background and draws text left aligned
// after lpad pixels, cutting it to fit. It returns the right edge.
func (s *Surface) Text(x, y, w, h, lpad int, text string, invert bool) int {
	if w <= 0 || h <= 0 {
		return x
	}

	fg, bg := s.scheme.Fg, s.scheme.Bg
	if invert {
		fg, bg = bg, fg
	}

	s.setForeground(bg)
	xproto.PolyFillRectangle(s.conn, xproto.Drawable(s.pixmap), s.gc, []xproto.Rectangle{
		{X: int16(x), Y: int16(y), Width: uint16(w), Height: uint16(h)},
	})

	text = s.fit(text, w-lpad)
	if text == "" {
		return x + w
	}

	xproto.ChangeGC(s.conn, s.gc, xproto.GcForeground|xproto.GcBackground, []uint32{fg, bg})
	chars := latin1(text)
	ty := y + (h-s.FontHeight())/2 + s.ascent
	xproto.ImageText8(s.conn, byte(len(chars)), xproto.Drawable(s.pixmap), s.gc, int16(x+lpad), int16(ty), string(chars))

	return x + w
}

// fit shortens text until it is at most w pixels wide.
func (s *Surface) fit(text string, w int) string {
	if w <= 0 {
		return ""
	}
	if s.TextWidth(text) <= w {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		cut := string(runes) + ellipsis
		if s.TextWidth(cut) <= w {
			return cut
		}
	}
	return ""
}

func (s *Surface) Resize(w, h int) {
	w, h = max(1, w), max(1, h)
	if w == s.w && h == s.h {
		return
	}

	xproto.FreePixmap(s.conn, s.pixmap)
	s.w, s.h = w, h
	if err := s.createPixmap(); err != nil {
		slog.Error("Failed to resize bar", "error", err)
	}
}

func (s *Surface) Flush(x, y, w, h int) {
	if s.window == 0 {
		return
	}
	xproto.CopyArea(s.conn, xproto.Drawable(s.pixmap), xproto.Drawable(s.window), s.gc,
		int16(x), int16(y), int16(x), int16(y), uint16(w), uint16(h))
}

func (s *Surface) Close() {
	xproto.FreePixmap(s.conn, s.pixmap)
	xproto.FreeGC(s.conn, s.gc)
	xproto.CloseFont(s.conn, s.font)
}

// latin1 converts text for core fonts, replacing anything outside
// Latin-1 and keeping at most 255 characters.
func latin1(text string) []byte {
	out := make([]byte, 0, min(len(text), 255))
	for _, r := range text {
		if len(out) == 255 {
			break
		}
		if r > 0xff {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}
