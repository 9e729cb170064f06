package xwm

import (
	"slices"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
)

// Hints reads WM_NORMAL_HINTS, WM_HINTS and WM_TRANSIENT_FOR. Missing
// properties leave their part zero.
func (c *Conn) Hints(win wm.Window) (wm.Hints, error) {
	var hints wm.Hints
	w := xproto.Window(win)

	if nh, err := icccm.WmNormalHintsGet(c.XU, w); err == nil {
		hints.Size = sizeHints(nh)
	}
	if h, err := icccm.WmHintsGet(c.XU, w); err == nil {
		hints.Urgent, hints.NeverFocus = wmHints(h)
	}
	if parent, err := icccm.WmTransientForGet(c.XU, w); err == nil {
		hints.TransientFor = wm.Window(parent)
	}

	return hints, nil
}

func sizeHints(nh *icccm.NormalHints) wm.SizeHints {
	var h wm.SizeHints
	if nh == nil {
		return h
	}

	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.BaseW, h.BaseH = int(nh.BaseWidth), int(nh.BaseHeight)
	} else if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.BaseW, h.BaseH = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.IncW, h.IncH = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxW, h.MaxH = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.MinW, h.MinH = int(nh.MinWidth), int(nh.MinHeight)
	} else if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.MinW, h.MinH = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 && nh.MinAspectNum != 0 && nh.MaxAspectDen != 0 {
		h.MinA = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		h.MaxA = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	}
	return h
}

// wmHints returns the urgency and whether the client refuses input focus.
func wmHints(h *icccm.Hints) (urgent, neverFocus bool) {
	if h == nil {
		return false, false
	}
	urgent = h.Flags&icccm.HintUrgency != 0
	neverFocus = h.Flags&icccm.HintInput != 0 && h.Input == 0
	return urgent, neverFocus
}

const brokenName = "broken"

func (c *Conn) Title(win wm.Window) string {
	name, err := ewmh.WmNameGet(c.XU, xproto.Window(win))
	if err != nil || name == "" {
		name, _ = icccm.WmNameGet(c.XU, xproto.Window(win))
	}
	if name == "" {
		return brokenName
	}
	return name
}

func (c *Conn) RootName() (string, bool) {
	name, err := icccm.WmNameGet(c.XU, c.Root)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// supportsDelete reports whether win lists WM_DELETE_WINDOW in
// WM_PROTOCOLS.
func (c *Conn) supportsDelete(win xproto.Window) bool {
	protocols, err := icccm.WmProtocolsGet(c.XU, win)
	if err != nil {
		return false
	}
	return slices.Contains(protocols, "WM_DELETE_WINDOW")
}

// iconic reports whether win was left in the iconic state, which is how
// windows on hidden tags look after the previous window manager exited.
func (c *Conn) iconic(win xproto.Window) bool {
	state, err := icccm.WmStateGet(c.XU, win)
	return err == nil && state.State == icccm.StateIconic
}
