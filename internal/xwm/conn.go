// Package xwm connects the window manager to an X server.
package xwm

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/ItsNotGoodName/xtagwm/internal/xdraw"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/xprop"
)

var (
	ErrNoDisplay        = errors.New("cannot open display")
	ErrOtherWM          = errors.New("another window manager is already running")
	ErrConnectionClosed = errors.New("x connection closed")
)

const wmName = "xtagwm"

// Conn is the X side of the window manager.
type Conn struct {
	XU     *xgbutil.XUtil
	X      *xgb.Conn
	Screen *xproto.ScreenInfo
	Root   xproto.Window
	Bar    xproto.Window
	Check  xproto.Window

	atoms   atoms
	cursors cursors
	surface *xdraw.Surface
	keys    []wm.Key
	buttons []wm.Button
}

// Open connects to the display named by $DISPLAY.
func Open() (*Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDisplay, err)
	}

	return &Conn{
		XU:     xu,
		X:      xu.Conn(),
		Screen: xu.Screen(),
		Root:   xu.RootWin(),
	}, nil
}

// CheckOtherWM fails when another client already redirects the root
// window.
func (c *Conn) CheckOtherWM() error {
	err := xproto.ChangeWindowAttributesChecked(c.X, c.Root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskSubstructureRedirect}).Check()
	if err == nil {
		return nil
	}

	var accessErr xproto.AccessError
	if errors.As(err, &accessErr) {
		return ErrOtherWM
	}
	return err
}

// Setup selects root events, creates the bar window and publishes EWMH
// hints. The surface may be nil.
func (c *Conn) Setup(tags []string, surface *xdraw.Surface) error {
	var err error
	if c.atoms, err = internAtoms(c.XU); err != nil {
		return err
	}
	if c.cursors, err = createCursors(c.X); err != nil {
		return fmt.Errorf("failed to create cursors: %w", err)
	}
	keybind.Initialize(c.XU)

	if err := xproto.ChangeWindowAttributesChecked(c.X, c.Root,
		xproto.CwEventMask|xproto.CwCursor,
		[]uint32{
			xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskSubstructureNotify |
				xproto.EventMaskButtonPress |
				xproto.EventMaskStructureNotify |
				xproto.EventMaskPropertyChange,
			uint32(c.cursors.Normal),
		}).Check(); err != nil {
		return fmt.Errorf("failed to select root events: %w", err)
	}

	if surface != nil {
		if err := c.createBar(surface); err != nil {
			return err
		}
	}

	return c.setupEWMH(tags)
}

func (c *Conn) createBar(surface *xdraw.Surface) error {
	wid, err := xproto.NewWindowId(c.X)
	if err != nil {
		return err
	}

	if err := xproto.CreateWindowChecked(c.X, c.Screen.RootDepth,
		wid, c.Root,
		0, 0, c.Screen.WidthInPixels, uint16(surface.FontHeight()+2), 0,
		xproto.WindowClassInputOutput, c.Screen.RootVisual,
		xproto.CwBackPixmap|xproto.CwOverrideRedirect|xproto.CwEventMask|xproto.CwCursor,
		[]uint32{
			xproto.BackPixmapParentRelative,
			1,
			xproto.EventMaskButtonPress | xproto.EventMaskExposure,
			uint32(c.cursors.Normal),
		}).Check(); err != nil {
		return fmt.Errorf("failed to create bar window: %w", err)
	}

	c.Bar = wid
	c.surface = surface
	surface.SetWindow(wid)
	xproto.MapWindow(c.X, wid)
	xproto.ConfigureWindow(c.X, wid, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	return nil
}

func (c *Conn) setupEWMH(tags []string) error {
	wid, err := xproto.NewWindowId(c.X)
	if err != nil {
		return err
	}
	if err := xproto.CreateWindowChecked(c.X, xproto.WindowClassCopyFromParent,
		wid, c.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassCopyFromParent, xproto.WindowClassCopyFromParent, 0, nil).Check(); err != nil {
		return fmt.Errorf("failed to create check window: %w", err)
	}
	c.Check = wid

	for _, set := range []func() error{
		func() error { return ewmh.SupportingWmCheckSet(c.XU, c.Root, wid) },
		func() error { return ewmh.SupportingWmCheckSet(c.XU, wid, wid) },
		func() error { return ewmh.WmNameSet(c.XU, wid, wmName) },
		func() error { return ewmh.SupportedSet(c.XU, supported) },
		func() error { return ewmh.NumberOfDesktopsSet(c.XU, uint(len(tags))) },
		func() error { return ewmh.DesktopNamesSet(c.XU, tags) },
		func() error { return ewmh.ClientListSet(c.XU, nil) },
	} {
		if err := set(); err != nil {
			return fmt.Errorf("failed to set EWMH hints: %w", err)
		}
	}

	return nil
}

// ScreenInfo returns the root geometry, bar and lock state for wm.New.
func (c *Conn) ScreenInfo() wm.Screen {
	return wm.Screen{
		Root:        wm.Window(c.Root),
		W:           int(c.Screen.WidthInPixels),
		H:           int(c.Screen.HeightInPixels),
		BarWindow:   wm.Window(c.Bar),
		NumlockMask: c.numlockMask(),
	}
}

// scannable reports whether a window found at startup should be managed.
func scannable(attrs wm.Attributes, iconic bool) bool {
	return !attrs.OverrideRedirect && (attrs.Viewable || iconic)
}

// Scan manages the windows that existed before the window manager
// started. Transient windows are managed last.
func (c *Conn) Scan(m *wm.Manager) error {
	reply, err := xproto.QueryTree(c.X, c.Root).Reply()
	if err != nil {
		return fmt.Errorf("failed to query tree: %w", err)
	}

	var normal, transient []wm.Window
	for _, win := range reply.Children {
		if win == c.Bar || win == c.Check || win == c.XU.Dummy() {
			continue
		}
		attrs, err := c.Attributes(wm.Window(win))
		if err != nil || !scannable(attrs, !attrs.Viewable && c.iconic(win)) {
			continue
		}
		hints, _ := c.Hints(wm.Window(win))
		if hints.TransientFor != 0 {
			transient = append(transient, wm.Window(win))
		} else {
			normal = append(normal, wm.Window(win))
		}
	}

	slog.Debug("Scanned existing windows", "normal", len(normal), "transient", len(transient))
	for _, win := range slices.Concat(normal, transient) {
		m.Manage(win)
	}
	return nil
}

// Cleanup gives every managed window back to the server and removes the
// window manager's own windows.
func (c *Conn) Cleanup(m *wm.Manager) {
	state := m.State()
	for _, win := range state.Windows() {
		xproto.ChangeWindowAttributes(c.X, xproto.Window(win), xproto.CwEventMask, []uint32{xproto.EventMaskNoEvent})
		xproto.MapWindow(c.X, xproto.Window(win))
		c.setWMState(xproto.Window(win), icccm.StateNormal)
	}

	xproto.UngrabKey(c.X, xproto.GrabAny, c.Root, xproto.ModMaskAny)
	xproto.UngrabButton(c.X, xproto.ButtonIndexAny, c.Root, xproto.ModMaskAny)
	if c.Bar != 0 {
		xproto.DestroyWindow(c.X, c.Bar)
	}
	if c.Check != 0 {
		xproto.DestroyWindow(c.X, c.Check)
	}
	for _, name := range []string{"_NET_ACTIVE_WINDOW", "_NET_CLIENT_LIST"} {
		if atom, err := xprop.Atm(c.XU, name); err == nil {
			xproto.DeleteProperty(c.X, c.Root, atom)
		}
	}
	c.cursors.free(c.X)
	if c.surface != nil {
		c.surface.Close()
	}
	xproto.SetInputFocus(c.X, xproto.InputFocusPointerRoot, xproto.InputFocusPointerRoot, xproto.TimeCurrentTime)
	xproto.GetInputFocus(c.X).Reply()
}

func (c *Conn) Disconnect() {
	c.X.Close()
}
