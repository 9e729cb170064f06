package wm

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ItsNotGoodName/xtagwm/internal/layout"
)

// Handle reacts to one event from the display.
func (m *Manager) Handle(ev any) {
	switch ev := ev.(type) {
	case MapRequest:
		m.onMapRequest(ev)
	case ConfigureRequest:
		m.onConfigureRequest(ev)
	case ConfigureNotify:
		m.onConfigureNotify(ev)
	case DestroyNotify:
		m.onDestroyNotify(ev)
	case UnmapNotify:
		m.onUnmapNotify(ev)
	case KeyPress:
		m.onKeyPress(ev)
	case ButtonPress:
		m.onButtonPress(ev)
	case PropertyNotify:
		m.onPropertyNotify(ev)
	case ClientMessage:
		m.onClientMessage(ev)
	case Expose:
		if ev.Window == m.state.BarWindow {
			m.drawBar()
		}
	default:
		slog.Debug("Unhandled event", "event", fmt.Sprintf("%T", ev))
	}
}

func (m *Manager) onMapRequest(ev MapRequest) {
	m.Manage(ev.Window)
}

func (m *Manager) onConfigureRequest(ev ConfigureRequest) {
	c, ok := m.state.Client(ev.Window)
	if !ok {
		m.dpy.PassConfigure(ev)
		return
	}

	g := c.Geometry
	if ev.Mask&ConfigBW != 0 {
		g.BW = ev.BW
	} else if c.Floating || !m.state.Current().Layout.Arranges() {
		if ev.Mask&ConfigX != 0 {
			g.X = ev.X
		}
		if ev.Mask&ConfigY != 0 {
			g.Y = ev.Y
		}
		if ev.Mask&ConfigW != 0 {
			g.W = ev.W
		}
		if ev.Mask&ConfigH != 0 {
			g.H = ev.H
		}
		g.W, g.H = c.applySizeHints(g.W, g.H)
		g = m.clampToScreen(g)
	}

	m.resize(c, g)
	m.dpy.SendConfigureNotify(c.Window, c.Geometry)
}

func (m *Manager) onConfigureNotify(ev ConfigureNotify) {
	if ev.Window == m.state.Root {
		m.resizeScreen(ev.W, ev.H)
	}
	m.drawBar()
}

func (m *Manager) onDestroyNotify(ev DestroyNotify) {
	m.Unmanage(ev.Window)
}

// onUnmapNotify unmanages clients that unmap themselves. Unmaps caused by
// hiding a workspace are counted and skipped.
func (m *Manager) onUnmapNotify(ev UnmapNotify) {
	if n := m.unmaps[ev.Window]; n > 0 {
		if n == 1 {
			delete(m.unmaps, ev.Window)
		} else {
			m.unmaps[ev.Window] = n - 1
		}
		return
	}
	if _, _, ok := m.state.Find(ev.Window); !ok {
		return
	}

	m.dpy.Withdraw(ev.Window)
	m.Unmanage(ev.Window)
}

func (m *Manager) onKeyPress(ev KeyPress) {
	state := CleanMask(ev.State, m.state.NumlockMask)
	for _, key := range m.settings.Keys {
		if CleanMask(key.Mod, m.state.NumlockMask) == state && slices.Contains(m.dpy.Keycodes(key.Key), ev.Keycode) {
			m.run(Command{Action: key.Action, Arg: key.Arg})
			return
		}
	}
}

func (m *Manager) onButtonPress(ev ButtonPress) {
	click, tag := m.classifyClick(ev)
	state := CleanMask(ev.State, m.state.NumlockMask)
	for _, b := range m.settings.Buttons {
		if b.Click != click || b.Button != ev.Button || CleanMask(b.Mod, m.state.NumlockMask) != state {
			continue
		}

		arg := b.Arg
		if click == ClickTagBar && tag > 0 {
			if i, ok := arg.(ArgInt); ok && i == 0 {
				arg = ArgInt(tag)
			} else if _, ok := arg.(ArgNone); ok || arg == nil {
				arg = ArgInt(tag)
			}
		}
		m.run(Command{Action: b.Action, Arg: arg})
		return
	}
}

// classifyClick returns where ev landed and, for the tag bar, which tag.
func (m *Manager) classifyClick(ev ButtonPress) (Click, int) {
	if ev.Window == m.state.BarWindow && m.surface != nil {
		cells := m.barCells()
		for i, right := range cells.tags {
			if ev.X < right {
				return ClickTagBar, i + 1
			}
		}
		if ev.X < cells.symbol {
			return ClickLtSymbol, 0
		}
		if ev.X >= cells.status {
			return ClickStatusText, 0
		}
		return ClickWinTitle, 0
	}

	if _, _, ok := m.state.Find(ev.Window); ok {
		return ClickClientWin, 0
	}
	if _, _, ok := m.state.Find(ev.Child); ok {
		return ClickClientWin, 0
	}
	return ClickRootWin, 0
}

func (m *Manager) onPropertyNotify(ev PropertyNotify) {
	if ev.Deleted {
		return
	}

	if ev.Window == m.state.Root {
		if ev.Property == PropName {
			m.updateStatus()
		}
		return
	}

	c, ok := m.state.Client(ev.Window)
	if !ok {
		return
	}

	switch ev.Property {
	case PropName:
		c.Name = m.dpy.Title(c.Window)
		m.drawBar()
	case PropHints:
		hints, err := m.dpy.Hints(c.Window)
		if err != nil {
			return
		}
		c.Urgent = hints.Urgent
		c.NeverFocus = hints.NeverFocus
		m.drawBar()
	case PropNormalHints:
		hints, err := m.dpy.Hints(c.Window)
		if err != nil {
			return
		}
		c.setSizeHints(hints.Size)
	case PropTransientFor:
		hints, err := m.dpy.Hints(c.Window)
		if err != nil || c.Floating || hints.TransientFor == 0 {
			return
		}
		if _, ok := m.state.Client(hints.TransientFor); ok {
			c.Floating = true
			tag, _, _ := m.state.Find(c.Window)
			m.arrange(tag)
		}
	}
}

func (m *Manager) onClientMessage(ev ClientMessage) {
	c, ok := m.state.Client(ev.Window)
	if !ok {
		return
	}

	switch ev.Message {
	case MessageFullscreen:
		on := ev.Action == StateAdd || (ev.Action == StateToggle && !c.Fullscreen)
		m.SetFullscreen(ev.Window, on)
	case MessageActivate:
		if tag, _, _ := m.state.Find(ev.Window); tag != m.state.Selected && !c.Urgent {
			c.Urgent = true
			m.drawBar()
		}
	}
}

// Execute runs cmd. It is the entry point for commands that did not come
// from a binding.
func (m *Manager) Execute(cmd Command) error {
	slog.Debug("Executing command", "id", cmd.ID, "action", cmd.Action.String())
	return m.run(cmd)
}

func (m *Manager) run(cmd Command) error {
	if cmd.Arg == nil {
		cmd.Arg = ArgNone{}
	}

	err := m.dispatch(cmd)
	if err != nil {
		slog.Warn("Failed to run command", "action", cmd.Action.String(), "error", err)
	}
	return err
}

func (m *Manager) dispatch(cmd Command) error {
	switch cmd.Action {
	case ActionSpawn:
		argv, ok := cmd.Arg.(ArgCommand)
		if !ok || len(argv) == 0 {
			return badArg(cmd)
		}
		m.Spawn(argv)
	case ActionView:
		tag, ok := cmd.Arg.(ArgInt)
		if !ok {
			return badArg(cmd)
		}
		m.View(int(tag))
	case ActionTag:
		tag, ok := cmd.Arg.(ArgInt)
		if !ok {
			return badArg(cmd)
		}
		m.MoveClientToWorkspace(int(tag))
	case ActionToggleBar:
		m.ToggleBar()
	case ActionSetLayout:
		switch arg := cmd.Arg.(type) {
		case ArgNone:
			m.SetLayout(nil)
		case ArgLayout:
			kind := layout.Kind(arg)
			if !kind.Valid() {
				return badArg(cmd)
			}
			m.SetLayout(&kind)
		default:
			return badArg(cmd)
		}
	case ActionSetMfact:
		delta, ok := cmd.Arg.(ArgFloat)
		if !ok {
			return badArg(cmd)
		}
		m.SetMfact(float64(delta))
	case ActionIncNmaster:
		delta, ok := cmd.Arg.(ArgInt)
		if !ok {
			return badArg(cmd)
		}
		m.IncNmaster(int(delta))
	case ActionZoom:
		m.Zoom()
	case ActionKillClient:
		m.CloseClient()
	case ActionToggleFloating:
		m.ToggleFloating()
	case ActionQuit:
		m.Quit()
	default:
		return fmt.Errorf("%w: unknown action %d", ErrBadArg, int(cmd.Action))
	}
	return nil
}

func badArg(cmd Command) error {
	return fmt.Errorf("%w: %s does not take %T", ErrBadArg, cmd.Action, cmd.Arg)
}
