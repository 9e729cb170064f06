package xwm

import (
	"log/slog"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/xevent"
)

var _ wm.Display = (*Conn)(nil)

func (c *Conn) Attributes(win wm.Window) (wm.Attributes, error) {
	attrs, err := xproto.GetWindowAttributes(c.X, xproto.Window(win)).Reply()
	if err != nil {
		return wm.Attributes{}, err
	}
	geom, err := xproto.GetGeometry(c.X, xproto.Drawable(win)).Reply()
	if err != nil {
		return wm.Attributes{}, err
	}

	return wm.Attributes{
		Geometry: wm.Geometry{
			X:  int(geom.X),
			Y:  int(geom.Y),
			W:  int(geom.Width),
			H:  int(geom.Height),
			BW: int(geom.BorderWidth),
		},
		OverrideRedirect: attrs.OverrideRedirect,
		Viewable:         attrs.MapState == xproto.MapStateViewable,
	}, nil
}

func (c *Conn) PointerWindow() (wm.Window, error) {
	reply, err := xproto.QueryPointer(c.X, c.Root).Reply()
	if err != nil {
		return 0, err
	}
	return wm.Window(reply.Child), nil
}

func (c *Conn) Map(win wm.Window) {
	xproto.MapWindow(c.X, xproto.Window(win))
	c.setWMState(xproto.Window(win), icccm.StateNormal)
}

func (c *Conn) Unmap(win wm.Window) {
	xproto.UnmapWindow(c.X, xproto.Window(win))
	c.setWMState(xproto.Window(win), icccm.StateIconic)
}

// Withdraw marks a window the client unmapped itself as withdrawn.
func (c *Conn) Withdraw(win wm.Window) {
	c.setWMState(xproto.Window(win), icccm.StateWithdrawn)
}

func (c *Conn) setWMState(win xproto.Window, state uint) {
	if err := icccm.WmStateSet(c.XU, win, &icccm.WmState{State: state}); err != nil {
		slog.Debug("Failed to set WM_STATE", "window", win, "error", err)
	}
}

func (c *Conn) Configure(win wm.Window, g wm.Geometry) {
	xproto.ConfigureWindow(c.X, xproto.Window(win),
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(int32(g.X)), uint32(int32(g.Y)), uint32(g.W), uint32(g.H), uint32(g.BW)})
}

// PassConfigure grants a request from a window that is not managed.
func (c *Conn) PassConfigure(req wm.ConfigureRequest) {
	var mask uint16
	var values []uint32
	for _, field := range []struct {
		bit   uint16
		value uint32
	}{
		{wm.ConfigX, uint32(int32(req.X))},
		{wm.ConfigY, uint32(int32(req.Y))},
		{wm.ConfigW, uint32(req.W)},
		{wm.ConfigH, uint32(req.H)},
		{wm.ConfigBW, uint32(req.BW)},
		{wm.ConfigSibling, uint32(req.Sibling)},
		{wm.ConfigStackMode, uint32(req.StackMode)},
	} {
		if req.Mask&field.bit != 0 {
			mask |= field.bit
			values = append(values, field.value)
		}
	}
	xproto.ConfigureWindow(c.X, xproto.Window(req.Window), mask, values)
}

// SendConfigureNotify tells a client its geometry when the request it made
// was not honored as asked.
func (c *Conn) SendConfigureNotify(win wm.Window, g wm.Geometry) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            xproto.Window(win),
		Window:           xproto.Window(win),
		AboveSibling:     xproto.WindowNone,
		X:                int16(g.X),
		Y:                int16(g.Y),
		Width:            uint16(g.W),
		Height:           uint16(g.H),
		BorderWidth:      uint16(g.BW),
		OverrideRedirect: false,
	}
	xproto.SendEvent(c.X, false, xproto.Window(win), xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (c *Conn) Raise(win wm.Window) {
	xproto.ConfigureWindow(c.X, xproto.Window(win), xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

func (c *Conn) SelectClientInput(win wm.Window) {
	xproto.ChangeWindowAttributes(c.X, xproto.Window(win), xproto.CwEventMask, []uint32{
		xproto.EventMaskEnterWindow |
			xproto.EventMaskFocusChange |
			xproto.EventMaskPropertyChange |
			xproto.EventMaskStructureNotify,
	})
}

func (c *Conn) SetBorderColor(win wm.Window, scheme wm.Scheme) {
	if c.surface == nil {
		return
	}
	xproto.ChangeWindowAttributes(c.X, xproto.Window(win), xproto.CwBorderPixel,
		[]uint32{c.surface.Scheme(scheme).Border})
}

func (c *Conn) SetFullscreen(win wm.Window, on bool) {
	var states []string
	if on {
		states = []string{"_NET_WM_STATE_FULLSCREEN"}
	}
	if err := ewmh.WmStateSet(c.XU, xproto.Window(win), states); err != nil {
		slog.Debug("Failed to set _NET_WM_STATE", "window", win, "error", err)
	}
}

// Close asks win to close with WM_DELETE_WINDOW and kills its client when
// the protocol is not supported.
func (c *Conn) Close(win wm.Window) {
	w := xproto.Window(win)
	if !c.supportsDelete(w) {
		slog.Debug("Killing client", "window", win)
		xproto.KillClient(c.X, uint32(w))
		return
	}

	ev, err := xevent.NewClientMessage(32, w, c.atoms.WMProtocols, int(c.atoms.WMDelete), int(xproto.TimeCurrentTime))
	if err != nil {
		slog.Error("Failed to build WM_DELETE_WINDOW message", "window", win, "error", err)
		return
	}
	xproto.SendEvent(c.X, false, w, xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func (c *Conn) MoveBar(g wm.Geometry) {
	if c.Bar == 0 {
		return
	}
	xproto.ConfigureWindow(c.X, c.Bar,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(g.X)), uint32(int32(g.Y)), uint32(max(1, g.W)), uint32(max(1, g.H))})
}

func (c *Conn) SetClientList(wins []wm.Window) {
	clients := make([]xproto.Window, len(wins))
	for i, win := range wins {
		clients[i] = xproto.Window(win)
	}
	if err := ewmh.ClientListSet(c.XU, clients); err != nil {
		slog.Error("Failed to set _NET_CLIENT_LIST", "error", err)
	}
}

func (c *Conn) SetCurrentDesktop(tag int) {
	if err := ewmh.CurrentDesktopSet(c.XU, uint(tag-1)); err != nil {
		slog.Error("Failed to set _NET_CURRENT_DESKTOP", "error", err)
	}
}
