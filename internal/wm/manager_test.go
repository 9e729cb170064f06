package wm

import (
	"errors"
	"testing"

	"github.com/ItsNotGoodName/xtagwm/internal/layout"
	"github.com/stretchr/testify/require"
)

func windowsOf(ws *Workspace) []Window {
	var wins []Window
	for _, c := range ws.Clients {
		wins = append(wins, c.Window)
	}
	return wins
}

func TestManageInsertsAtHead(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11, 12)

	require.Equal(t, []Window{12, 11, 10}, windowsOf(m.State().Current()))
	for _, win := range []Window{10, 11, 12} {
		require.True(t, dpy.mapped(win))
	}
	require.Equal(t, []Window{12, 11, 10}, dpy.clientList)
}

func TestTileThreeClientsNoMaster(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11, 12)

	xs := map[int]bool{}
	for _, c := range m.State().Current().Clients {
		require.Equal(t, 300, c.W)
		require.Equal(t, 600, c.H)
		xs[c.X] = true
	}
	require.Equal(t, map[int]bool{0: true, 300: true, 600: true}, xs)
}

func TestTileMasterWithBorder(t *testing.T) {
	settings := testSettings()
	settings.Nmaster = 1
	settings.BorderPx = 2
	m, dpy, _ := newTestManager(settings)
	mapClients(m, dpy, 10, 11)

	master, _ := m.State().Client(11)
	require.Equal(t, Geometry{X: 0, Y: 0, W: 446, H: 596, BW: 2}, master.Geometry)
	stack, _ := m.State().Client(10)
	require.Equal(t, Geometry{X: 450, Y: 0, W: 446, H: 596, BW: 2}, stack.Geometry)
}

func TestManageIgnoresOverrideRedirectAndDuplicates(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	dpy.add(20, "menu")
	dpy.windows[20].attrs.OverrideRedirect = true

	m.Handle(MapRequest{Window: 20})
	require.Empty(t, m.State().Current().Clients)

	mapClients(m, dpy, 10)
	m.Handle(MapRequest{Window: 10})
	require.Len(t, m.State().Current().Clients, 1)
}

func TestManageTransientFloats(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)

	dpy.add(11, "dialog")
	dpy.windows[11].hints.TransientFor = 10
	m.Handle(MapRequest{Window: 11})

	c, ok := m.State().Client(11)
	require.True(t, ok)
	require.True(t, c.Floating)

	owner, _ := m.State().Client(10)
	require.Equal(t, 900, owner.W)
}

func TestSwitchTo(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)
	m.SwitchTo(3)
	mapClients(m, dpy, 12)
	m.SwitchTo(1)

	require.True(t, dpy.mapped(10))
	require.True(t, dpy.mapped(11))
	require.False(t, dpy.mapped(12))

	m.SwitchTo(3)

	require.False(t, dpy.mapped(10))
	require.False(t, dpy.mapped(11))
	require.True(t, dpy.mapped(12))
	require.Equal(t, 3, m.State().Selected)
	require.Equal(t, 1, m.State().Previous)
	require.Equal(t, 3, dpy.desktop)
}

func TestSwitchToIgnoresCurrentAndOutOfRange(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)

	for _, target := range []int{1, 0, -1, 5, 100} {
		m.SwitchTo(target)
		require.Equal(t, 1, m.State().Selected)
		require.Equal(t, 1, m.State().Previous)
		require.True(t, dpy.mapped(10))
	}
}

func TestViewZeroPivots(t *testing.T) {
	m, _, _ := newTestManager(testSettings())
	m.View(4)
	m.View(2)
	m.View(0)
	require.Equal(t, 4, m.State().Selected)
	require.Equal(t, 2, m.State().Previous)
}

func TestMoveClientToWorkspace(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)
	dpy.pointer = 10

	m.MoveClientToWorkspace(2)

	require.Equal(t, []Window{11}, windowsOf(m.State().Workspace(1)))
	require.Equal(t, []Window{10}, windowsOf(m.State().Workspace(2)))
	require.False(t, dpy.mapped(10))
	require.True(t, dpy.mapped(11))

	remaining, _ := m.State().Client(11)
	require.Equal(t, 900, remaining.W)
}

func TestMoveClientToWorkspaceInsertsAtHead(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	m.SwitchTo(2)
	mapClients(m, dpy, 20)
	m.SwitchTo(1)
	mapClients(m, dpy, 10)
	dpy.pointer = 10

	m.MoveClientToWorkspace(2)

	require.Equal(t, []Window{10, 20}, windowsOf(m.State().Workspace(2)))
}

func TestMoveClientToWorkspaceNoops(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)

	dpy.pointer = 10
	m.MoveClientToWorkspace(1)
	m.MoveClientToWorkspace(0)
	m.MoveClientToWorkspace(9)
	require.Equal(t, []Window{10}, windowsOf(m.State().Workspace(1)))

	dpy.pointer = 99
	m.MoveClientToWorkspace(2)
	require.Equal(t, []Window{10}, windowsOf(m.State().Workspace(1)))
	require.True(t, dpy.mapped(10))
}

func TestCloseClient(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)
	dpy.pointer = 10

	m.CloseClient()

	require.Equal(t, []Window{11}, windowsOf(m.State().Current()))
	require.Equal(t, []Window{10}, dpy.closed)

	dpy.pointer = testRoot
	m.CloseClient()
	require.Equal(t, []Window{10}, dpy.closed)
}

func TestDestroyNotify(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)

	m.Handle(DestroyNotify{Window: 99})
	require.Len(t, m.State().Current().Clients, 2)

	m.Handle(DestroyNotify{Window: 11})
	require.Equal(t, []Window{10}, windowsOf(m.State().Current()))
	c, _ := m.State().Client(10)
	require.Equal(t, 900, c.W)
	require.Equal(t, []Window{10}, dpy.clientList)
}

func TestDestroyNotifyOnHiddenWorkspace(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)
	m.SwitchTo(2)
	dpy.deliver(m)

	m.Handle(DestroyNotify{Window: 11})
	_, _, ok := m.State().Find(11)
	require.False(t, ok)
	c, ok := m.State().Client(10)
	require.True(t, ok)
	require.Equal(t, 900, c.W)

	m.SwitchTo(1)
	require.Equal(t, 900, dpy.windows[10].attrs.W)
}

func TestUnmapNotifyWithdrawsClient(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)

	dpy.withdrawSelf(11)
	dpy.deliver(m)
	_, _, ok := m.State().Find(11)
	require.False(t, ok)
	require.Equal(t, []Window{11}, dpy.withdrawn)
	c, _ := m.State().Client(10)
	require.Equal(t, 900, c.W)

	m.SwitchTo(2)
	dpy.deliver(m)
	m.SwitchTo(1)
	dpy.deliver(m)
	require.True(t, dpy.mapped(10))
	require.False(t, dpy.mapped(11))
	require.Equal(t, []Window{10}, windowsOf(m.State().Current()))
	require.Equal(t, []Window{10}, dpy.clientList)
}

func TestUnmapNotifyFromSwitchIsIgnored(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)

	m.SwitchTo(2)
	require.Len(t, dpy.pending, 2)
	dpy.deliver(m)
	require.Equal(t, []Window{11, 10}, windowsOf(m.State().Workspace(1)))
	require.Empty(t, dpy.withdrawn)

	m.SwitchTo(1)
	require.True(t, dpy.mapped(10))
	require.True(t, dpy.mapped(11))
}

func TestUnmapNotifyFromMoveIsIgnored(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)
	dpy.pointer = 10

	m.MoveClientToWorkspace(2)
	dpy.deliver(m)
	require.Equal(t, []Window{10}, windowsOf(m.State().Workspace(2)))
}

func TestUnmapNotifySyntheticOnHiddenWorkspace(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)
	m.SwitchTo(2)
	dpy.deliver(m)

	m.Handle(UnmapNotify{Window: 10})
	_, _, ok := m.State().Find(10)
	require.False(t, ok)
	require.Equal(t, []Window{10}, dpy.withdrawn)
}

func TestUnmapNotifyUnmanaged(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())

	m.Handle(UnmapNotify{Window: 50})
	require.Empty(t, dpy.withdrawn)
}

func TestConfigureRequestManaged(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)

	m.Handle(ConfigureRequest{Window: 10, Mask: ConfigX | ConfigY | ConfigW | ConfigH, X: 5, Y: 5, W: 50, H: 50})
	c, _ := m.State().Client(10)
	require.Equal(t, Geometry{X: 0, Y: 0, W: 900, H: 600}, c.Geometry)
	require.Equal(t, c.Geometry, dpy.notified[10])

	m.Handle(ConfigureRequest{Window: 10, Mask: ConfigBW, BW: 3})
	require.Equal(t, 3, c.BW)
	require.Equal(t, c.Geometry, dpy.notified[10])
	require.Empty(t, dpy.passed)
}

func TestConfigureRequestFloating(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)
	dpy.pointer = 10
	m.ToggleFloating()

	m.Handle(ConfigureRequest{Window: 10, Mask: ConfigX | ConfigY | ConfigW | ConfigH, X: 200, Y: 150, W: 300, H: 200})
	c, _ := m.State().Client(10)
	require.Equal(t, Geometry{X: 200, Y: 150, W: 300, H: 200}, c.Geometry)
	require.Equal(t, c.Geometry, dpy.notified[10])
}

func TestConfigureRequestUnmanagedPassesThrough(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	req := ConfigureRequest{Window: 50, Mask: ConfigW, W: 20}

	m.Handle(req)
	require.Equal(t, []ConfigureRequest{req}, dpy.passed)
}

func TestConfigureNotifyRootResizes(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)

	m.Handle(ConfigureNotify{Window: testRoot, W: 1200, H: 800})
	c, _ := m.State().Client(10)
	require.Equal(t, 1200, c.W)
	require.Equal(t, 800, c.H)
}

func TestKeyPress(t *testing.T) {
	settings := testSettings()
	dpy := newFakeDisplay()
	dpy.keymap[12] = "3"
	m := New(dpy, nil, &fakeSpawner{}, settings, Screen{Root: testRoot, W: 900, H: 600, NumlockMask: Mod2})

	m.Handle(KeyPress{Keycode: 12, State: Mod4 | Mod2 | ModLock})
	require.Equal(t, 3, m.State().Selected)

	m.Handle(KeyPress{Keycode: 12, State: Mod4 | ModShift})
	require.Equal(t, 3, m.State().Selected)
	require.Equal(t, 1, m.State().Previous)
}

func TestKeyPressAfterNumlockMoves(t *testing.T) {
	settings := testSettings()
	dpy := newFakeDisplay()
	dpy.keymap[12] = "3"
	m := New(dpy, nil, &fakeSpawner{}, settings, Screen{Root: testRoot, W: 900, H: 600, NumlockMask: Mod2})

	m.SetNumlockMask(Mod3)
	require.Equal(t, Mod3, m.State().NumlockMask)

	m.Handle(KeyPress{Keycode: 12, State: Mod4 | Mod2})
	require.Equal(t, 1, m.State().Selected, "Mod2 is a plain modifier now")

	m.Handle(KeyPress{Keycode: 12, State: Mod4 | Mod3})
	require.Equal(t, 3, m.State().Selected)
}

func TestKeyPressMovesClient(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	dpy.keymap[11] = "2"
	mapClients(m, dpy, 10)
	dpy.pointer = 10

	m.Handle(KeyPress{Keycode: 11, State: Mod4 | ModShift})
	require.Equal(t, []Window{10}, windowsOf(m.State().Workspace(2)))
}

func TestQuit(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	dpy.keymap[24] = "q"
	require.True(t, m.Running())

	m.Handle(KeyPress{Keycode: 24, State: Mod4 | ModShift})
	require.False(t, m.Running())
}

func TestSpawnFailureIsNotFatal(t *testing.T) {
	m, dpy, spawner := newTestManager(testSettings())
	spawner.err = errors.New("exec: not found")
	dpy.keymap[36] = "Return"

	m.Handle(KeyPress{Keycode: 36, State: Mod4})
	require.Equal(t, [][]string{{"xterm"}}, spawner.spawned)
	require.True(t, m.Running())
}

func TestExecuteBadArg(t *testing.T) {
	m, _, _ := newTestManager(testSettings())

	err := m.Execute(Command{Action: ActionView, Arg: ArgFloat(1.5)})
	require.ErrorIs(t, err, ErrBadArg)

	err = m.Execute(Command{Action: ActionSpawn})
	require.ErrorIs(t, err, ErrBadArg)

	require.NoError(t, m.Execute(Command{Action: ActionView, Arg: ArgInt(2)}))
	require.Equal(t, 2, m.State().Selected)
}

func TestSetLayout(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)

	monocle := layout.Monocle
	m.SetLayout(&monocle)
	for _, c := range m.State().Current().Clients {
		require.Equal(t, Geometry{X: 0, Y: 0, W: 900, H: 600}, c.Geometry)
	}
	require.Equal(t, Window(11), dpy.raised[len(dpy.raised)-1])

	m.SetLayout(nil)
	require.Equal(t, layout.Tile, m.State().Current().Layout)
	require.Equal(t, layout.Monocle, m.State().Current().PrevLayout)
}

func TestSetMfactAndIncNmaster(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)

	m.IncNmaster(1)
	m.SetMfact(0.1)
	master, _ := m.State().Client(11)
	require.Equal(t, 540, master.W)

	m.SetMfact(5)
	require.Equal(t, layout.MaxMfact, m.State().Current().Mfact)

	m.IncNmaster(-5)
	require.Equal(t, 0, m.State().Current().Nmaster)
}

func TestZoom(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11, 12)
	dpy.pointer = 10

	m.Zoom()
	require.Equal(t, []Window{10, 12, 11}, windowsOf(m.State().Current()))
}

func TestFullscreenMessage(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10, 11)

	m.Handle(ClientMessage{Window: 10, Message: MessageFullscreen, Action: StateAdd})
	c, _ := m.State().Client(10)
	require.True(t, c.Fullscreen)
	require.Equal(t, Geometry{X: 0, Y: 0, W: 900, H: 600}, c.Geometry)

	other, _ := m.State().Client(11)
	require.Equal(t, 900, other.W)

	m.Handle(ClientMessage{Window: 10, Message: MessageFullscreen, Action: StateToggle})
	require.False(t, c.Fullscreen)
	require.Equal(t, 450, c.W)
}

func TestActivateMarksUrgent(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)
	m.SwitchTo(2)

	m.Handle(ClientMessage{Window: 10, Message: MessageActivate})
	require.True(t, m.State().Urgent(1))
}

func TestRootNameUpdatesStatus(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	dpy.rootName = "load 0.42"

	m.Handle(PropertyNotify{Window: testRoot, Property: PropName})
	require.Equal(t, "load 0.42", m.State().StatusText)

	dpy.rootName = ""
	m.Handle(PropertyNotify{Window: testRoot, Property: PropName})
	require.Equal(t, "xtagwm", m.State().StatusText)
}

func TestClientNameUpdates(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)
	dpy.windows[10].title = "vim"

	m.Handle(PropertyNotify{Window: 10, Property: PropName})
	c, _ := m.State().Client(10)
	require.Equal(t, "vim", c.Name)
}

func TestSnapshot(t *testing.T) {
	m, dpy, _ := newTestManager(testSettings())
	mapClients(m, dpy, 10)

	snap := m.Snapshot()
	require.Equal(t, 1, snap.Selected)
	require.Len(t, snap.Workspaces, 4)
	require.Len(t, snap.Workspaces[0].Clients, 1)
	require.Equal(t, uint32(10), snap.Workspaces[0].Clients[0].Window)
	require.Equal(t, "tile", snap.Workspaces[0].Layout)
}
