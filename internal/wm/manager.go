// Package wm keeps track of managed windows, their workspaces and the
// bar, and decides where every window goes.
package wm

import (
	"log/slog"
	"strconv"

	"github.com/ItsNotGoodName/xtagwm/internal/layout"
)

// Settings are fixed for the lifetime of a Manager.
type Settings struct {
	Tags       []string
	BorderPx   int
	Snap       int
	ShowBar    bool
	TopBar     bool
	Mfact      float64
	Nmaster    int
	Layout     layout.Kind
	Keys       []Key
	Buttons    []Button
	StatusText string
}

// Screen describes the root window and bar created by the display.
type Screen struct {
	Root        Window
	W           int
	H           int
	BarWindow   Window
	NumlockMask uint16
}

// Manager owns the window manager state. It is not safe for concurrent
// use; every call must come from the event loop.
type Manager struct {
	dpy      Display
	surface  Surface
	spawner  Spawner
	settings Settings
	state    State
	// unmaps counts the UnmapNotify events still expected from unmaps the
	// manager requested itself.
	unmaps   map[Window]int
}

// New creates a manager. The surface may be nil, in which case no bar is
// drawn and no space is reserved for it.
func New(dpy Display, surface Surface, spawner Spawner, settings Settings, screen Screen) *Manager {
	if len(settings.Tags) == 0 {
		for i := 1; i <= 9; i++ {
			settings.Tags = append(settings.Tags, strconv.Itoa(i))
		}
	}
	if !settings.Layout.Valid() {
		settings.Layout = layout.Tile
	}
	if settings.Mfact == 0 {
		settings.Mfact = 0.5
	}
	settings.Mfact = layout.ClampMfact(settings.Mfact)
	settings.Nmaster = max(0, settings.Nmaster)

	bh := 0
	if surface != nil {
		bh = surface.FontHeight() + 2
	}

	m := &Manager{
		dpy:      dpy,
		surface:  surface,
		spawner:  spawner,
		settings: settings,
		unmaps:   make(map[Window]int),
		state: State{
			Selected:    1,
			Previous:    1,
			Running:     true,
			StatusText:  settings.StatusText,
			NumlockMask: screen.NumlockMask,
			SW:          screen.W,
			SH:          screen.H,
			BH:          bh,
			BarWindow:   screen.BarWindow,
			Root:        screen.Root,
		},
	}

	kinds := layout.Kinds()
	prev := kinds[(int(settings.Layout)+1)%len(kinds)]
	for _, name := range settings.Tags {
		m.state.Workspaces = append(m.state.Workspaces, Workspace{
			Name:       name,
			Layout:     settings.Layout,
			PrevLayout: prev,
			Mfact:      settings.Mfact,
			Nmaster:    settings.Nmaster,
			ShowBar:    settings.ShowBar,
			TopBar:     settings.TopBar,
		})
	}
	for tag := 1; tag <= m.state.TagCount(); tag++ {
		m.updateBarPos(tag)
	}

	return m
}

// State exposes the current state for inspection.
func (m *Manager) State() *State {
	return &m.state
}

func (m *Manager) Settings() Settings {
	return m.settings
}

func (m *Manager) Running() bool {
	return m.state.Running
}

// Start publishes the initial state to the display.
func (m *Manager) Start() {
	m.updateStatus()
	m.moveBar()
	m.dpy.SetCurrentDesktop(m.state.Selected)
	m.dpy.SetClientList(m.state.Windows())
	m.drawBar()
}

// Manage starts managing win on the selected workspace.
func (m *Manager) Manage(win Window) {
	if win == m.state.BarWindow || win == m.state.Root {
		return
	}
	if _, _, ok := m.state.Find(win); ok {
		return
	}

	attrs, err := m.dpy.Attributes(win)
	if err != nil {
		slog.Debug("Failed to get window attributes", "window", win, "error", err)
		return
	}
	if attrs.OverrideRedirect {
		return
	}

	c := Client{
		Window:   win,
		Name:     m.dpy.Title(win),
		Geometry: attrs.Geometry,
	}
	c.Old = c.Geometry
	c.BW = m.settings.BorderPx

	hints, err := m.dpy.Hints(win)
	if err != nil {
		slog.Debug("Failed to get window hints", "window", win, "error", err)
	}
	c.setSizeHints(hints.Size)
	c.Urgent = hints.Urgent
	c.NeverFocus = hints.NeverFocus
	if hints.TransientFor != 0 || c.Fixed {
		c.Floating = true
	}
	if c.Floating {
		c.Geometry = m.clampToScreen(c.Geometry)
	}

	slog.Debug("Managing window", "window", win, "name", c.Name, "floating", c.Floating)

	m.state.Current().push(c)
	m.dpy.SelectClientInput(win)
	m.dpy.SetBorderColor(win, SchemeNorm)
	m.dpy.Configure(win, c.Geometry)
	m.dpy.SendConfigureNotify(win, c.Geometry)
	m.arrange(m.state.Selected)
	m.dpy.Map(win)
	m.dpy.SetClientList(m.state.Windows())
	m.drawBar()
}

// Unmanage forgets win. It reports whether win was managed.
func (m *Manager) Unmanage(win Window) bool {
	tag, idx, ok := m.state.Find(win)
	if !ok {
		return false
	}

	slog.Debug("Unmanaging window", "window", win, "tag", tag)

	m.state.Workspace(tag).remove(idx)
	delete(m.unmaps, win)
	m.arrange(tag)
	m.dpy.SetClientList(m.state.Windows())
	m.drawBar()
	return true
}

// SwitchTo shows the workspace for target and hides the current one.
func (m *Manager) SwitchTo(target int) {
	if target == m.state.Selected || !m.state.ValidTag(target) {
		return
	}

	for _, c := range m.state.Current().Clients {
		m.hide(c.Window)
	}

	m.state.Previous = m.state.Selected
	m.state.Selected = target

	m.moveBar()
	m.arrange(target)
	for _, c := range m.state.Current().Clients {
		m.dpy.Map(c.Window)
	}
	m.restack(target)
	m.dpy.SetCurrentDesktop(target)
	m.drawBar()
}

// MoveClientToWorkspace sends the pointed client to the head of target.
func (m *Manager) MoveClientToWorkspace(target int) {
	if !m.state.ValidTag(target) {
		return
	}

	win, ok := m.pointed()
	if !ok {
		return
	}
	tag, idx, _ := m.state.Find(win)
	if tag == target {
		return
	}

	c := m.state.Workspace(tag).remove(idx)
	m.state.Workspace(target).push(c)

	m.arrange(tag)
	m.arrange(target)
	if target == m.state.Selected {
		m.dpy.Map(win)
		m.restack(target)
	} else if tag == m.state.Selected {
		m.hide(win)
	}
	m.dpy.SetClientList(m.state.Windows())
	m.drawBar()
}

// CloseClient unmanages the pointed client and asks it to close.
func (m *Manager) CloseClient() {
	win, ok := m.pointed()
	if !ok {
		return
	}

	m.Unmanage(win)
	m.dpy.Close(win)
}

// View switches to tag, or to the previous tag when tag is 0.
func (m *Manager) View(tag int) {
	if tag == 0 {
		tag = m.state.Previous
	}
	m.SwitchTo(tag)
}

func (m *Manager) ToggleBar() {
	ws := m.state.Current()
	ws.ShowBar = !ws.ShowBar
	m.updateBarPos(m.state.Selected)
	m.moveBar()
	m.arrange(m.state.Selected)
	m.drawBar()
}

// SetLayout switches the current workspace to kind. A nil kind swaps back
// to the previous layout.
func (m *Manager) SetLayout(kind *layout.Kind) {
	ws := m.state.Current()
	if kind == nil {
		ws.Layout, ws.PrevLayout = ws.PrevLayout, ws.Layout
	} else if *kind != ws.Layout {
		ws.PrevLayout, ws.Layout = ws.Layout, *kind
	}
	m.arrange(m.state.Selected)
	m.restack(m.state.Selected)
	m.drawBar()
}

// SetMfact changes the master size by delta.
func (m *Manager) SetMfact(delta float64) {
	ws := m.state.Current()
	if !ws.Layout.Arranges() {
		return
	}
	ws.Mfact = layout.ClampMfact(ws.Mfact + delta)
	m.arrange(m.state.Selected)
}

func (m *Manager) IncNmaster(delta int) {
	ws := m.state.Current()
	ws.Nmaster = max(0, ws.Nmaster+delta)
	m.arrange(m.state.Selected)
}

// Zoom makes the pointed client the master.
func (m *Manager) Zoom() {
	win, ok := m.pointed()
	if !ok {
		return
	}
	tag, idx, _ := m.state.Find(win)
	if idx == 0 {
		return
	}

	ws := m.state.Workspace(tag)
	ws.push(ws.remove(idx))
	m.arrange(tag)
	m.drawBar()
}

func (m *Manager) ToggleFloating() {
	win, ok := m.pointed()
	if !ok {
		return
	}
	c, _ := m.state.Client(win)
	if c.Fullscreen {
		return
	}

	c.Floating = !c.Floating || c.Fixed
	if c.Floating {
		w, h := c.applySizeHints(c.W, c.H)
		g := m.clampToScreen(Geometry{X: c.X, Y: c.Y, W: w, H: h, BW: c.BW})
		m.resize(c, g)
		m.dpy.Raise(win)
	}
	m.arrange(m.state.Selected)
}

func (m *Manager) SetFullscreen(win Window, on bool) {
	c, ok := m.state.Client(win)
	if !ok || c.Fullscreen == on {
		return
	}

	tag, _, _ := m.state.Find(win)
	m.dpy.SetFullscreen(win, on)
	if on {
		c.Old = c.Geometry
		c.Fullscreen = true
		m.resize(c, Geometry{X: 0, Y: 0, W: m.state.SW, H: m.state.SH, BW: 0})
		m.arrange(tag)
		m.dpy.Raise(win)
		return
	}

	c.Fullscreen = false
	m.resize(c, c.Old)
	m.arrange(tag)
	m.restack(tag)
}

// Spawn starts argv. Failures are only logged.
func (m *Manager) Spawn(argv []string) {
	if len(argv) == 0 {
		return
	}
	if err := m.spawner.Spawn(argv); err != nil {
		slog.Error("Failed to spawn command", "argv", argv, "error", err)
	}
}

// SetNumlockMask records the modifier bit Num_Lock is bound to after the
// keyboard mapping changed.
func (m *Manager) SetNumlockMask(mask uint16) {
	m.state.NumlockMask = mask
}

// Quit stops the event loop after the current event.
func (m *Manager) Quit() {
	slog.Info("Quitting")
	m.state.Running = false
}

// hide unmaps a visible client and remembers that the resulting
// UnmapNotify is not a withdraw.
func (m *Manager) hide(win Window) {
	m.unmaps[win]++
	m.dpy.Unmap(win)
}

// pointed returns the managed window under the pointer.
func (m *Manager) pointed() (Window, bool) {
	win, err := m.dpy.PointerWindow()
	if err != nil {
		slog.Debug("Failed to query pointer", "error", err)
		return 0, false
	}
	if _, _, ok := m.state.Find(win); !ok {
		return 0, false
	}
	return win, true
}

// arrange applies the layout of tag to its tiled clients.
func (m *Manager) arrange(tag int) {
	ws := m.state.Workspace(tag)

	var tiled []int
	for i := range ws.Clients {
		if ws.Clients[i].Tiled() {
			tiled = append(tiled, i)
		}
	}

	area, _ := layout.Content(m.state.SW, m.state.SH, m.state.BH, ws.ShowBar, ws.TopBar)
	rects := layout.Arrange(ws.Layout, area, len(tiled), layout.Params{Mfact: ws.Mfact, Nmaster: ws.Nmaster})
	for i, r := range rects {
		c := &ws.Clients[tiled[i]]
		bw := c.BW
		m.resize(c, Geometry{X: r.X, Y: r.Y, W: max(1, r.W-2*bw), H: max(1, r.H-2*bw), BW: bw})
	}

	if tag == m.state.Selected && ws.Layout == layout.Monocle {
		m.restack(tag)
	}
}

// restack raises floating clients over tiled ones. In monocle the head
// ends up on top of the tiled clients.
func (m *Manager) restack(tag int) {
	if tag != m.state.Selected {
		return
	}

	ws := m.state.Workspace(tag)
	if ws.Layout == layout.Monocle {
		for i := len(ws.Clients) - 1; i >= 0; i-- {
			if ws.Clients[i].Tiled() {
				m.dpy.Raise(ws.Clients[i].Window)
			}
		}
	}
	for i := len(ws.Clients) - 1; i >= 0; i-- {
		if !ws.Clients[i].Tiled() {
			m.dpy.Raise(ws.Clients[i].Window)
		}
	}
}

func (m *Manager) resize(c *Client, g Geometry) {
	if c.Geometry == g {
		return
	}
	c.Geometry = g
	m.dpy.Configure(c.Window, g)
}

// clampToScreen keeps g at least partly visible, snapping it to the
// screen edges when close.
func (m *Manager) clampToScreen(g Geometry) Geometry {
	ow, oh := g.Outer()
	sw, sh := m.state.SW, m.state.SH
	if sw == 0 || sh == 0 {
		return g
	}

	if g.X+ow > sw {
		g.X = sw - ow
	}
	if g.Y+oh > sh {
		g.Y = sh - oh
	}
	g.X = max(0, g.X)
	g.Y = max(0, g.Y)

	if snap := m.settings.Snap; snap > 0 {
		if g.X < snap {
			g.X = 0
		} else if d := sw - (g.X + ow); d >= 0 && d < snap {
			g.X = sw - ow
		}
		if g.Y < snap {
			g.Y = 0
		} else if d := sh - (g.Y + oh); d >= 0 && d < snap {
			g.Y = sh - oh
		}
		g.X = max(0, g.X)
		g.Y = max(0, g.Y)
	}
	return g
}

func (m *Manager) updateBarPos(tag int) {
	ws := m.state.Workspace(tag)
	_, ws.BarY = layout.Content(m.state.SW, m.state.SH, m.state.BH, ws.ShowBar, ws.TopBar)
}

func (m *Manager) moveBar() {
	if m.surface == nil {
		return
	}
	m.dpy.MoveBar(Geometry{X: 0, Y: m.state.Current().BarY, W: m.state.SW, H: m.state.BH})
}

func (m *Manager) updateStatus() {
	if name, ok := m.dpy.RootName(); ok && name != "" {
		m.state.StatusText = name
	} else {
		m.state.StatusText = m.settings.StatusText
	}
	m.drawBar()
}

func (m *Manager) resizeScreen(w, h int) {
	if w == m.state.SW && h == m.state.SH {
		return
	}

	m.state.SW, m.state.SH = w, h
	if m.surface != nil {
		m.surface.Resize(w, m.state.BH)
	}
	for tag := 1; tag <= m.state.TagCount(); tag++ {
		m.updateBarPos(tag)
		m.arrange(tag)
	}
	m.moveBar()
}
