package wm

import (
	"errors"
	"slices"
)

const (
	testRoot Window = 1
	testBar  Window = 2
)

type fakeWindow struct {
	attrs  Attributes
	hints  Hints
	title  string
	mapped bool
}

type fakeDisplay struct {
	windows    map[Window]*fakeWindow
	pointer    Window
	rootName   string
	keymap     map[uint8]string
	pending    []UnmapNotify
	withdrawn  []Window
	passed     []ConfigureRequest
	notified   map[Window]Geometry
	closed     []Window
	raised     []Window
	clientList []Window
	desktop    int
	bar        Geometry
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		windows:  make(map[Window]*fakeWindow),
		keymap:   make(map[uint8]string),
		notified: make(map[Window]Geometry),
	}
}

func (d *fakeDisplay) add(win Window, title string) {
	d.windows[win] = &fakeWindow{
		attrs: Attributes{Geometry: Geometry{X: 10, Y: 10, W: 100, H: 100}},
		title: title,
	}
}

func (d *fakeDisplay) mapped(win Window) bool {
	w, ok := d.windows[win]
	return ok && w.mapped
}

func (d *fakeDisplay) Attributes(win Window) (Attributes, error) {
	w, ok := d.windows[win]
	if !ok {
		return Attributes{}, errors.New("BadWindow")
	}
	return w.attrs, nil
}

func (d *fakeDisplay) Hints(win Window) (Hints, error) {
	w, ok := d.windows[win]
	if !ok {
		return Hints{}, errors.New("BadWindow")
	}
	return w.hints, nil
}

func (d *fakeDisplay) Title(win Window) string {
	if w, ok := d.windows[win]; ok {
		return w.title
	}
	return ""
}

func (d *fakeDisplay) RootName() (string, bool) {
	return d.rootName, d.rootName != ""
}

func (d *fakeDisplay) Keycodes(key string) []uint8 {
	var codes []uint8
	for code, name := range d.keymap {
		if name == key {
			codes = append(codes, code)
		}
	}
	return codes
}

func (d *fakeDisplay) PointerWindow() (Window, error) {
	return d.pointer, nil
}

func (d *fakeDisplay) Map(win Window) {
	if w, ok := d.windows[win]; ok {
		w.mapped = true
	}
}

// Unmap queues the UnmapNotify the server would send to the root window.
// Unmapping a window that is not mapped generates nothing.
func (d *fakeDisplay) Unmap(win Window) {
	if w, ok := d.windows[win]; ok && w.mapped {
		w.mapped = false
		d.pending = append(d.pending, UnmapNotify{Window: win})
	}
}

func (d *fakeDisplay) Withdraw(win Window) {
	d.withdrawn = append(d.withdrawn, win)
}

// withdrawSelf acts like a client calling XWithdrawWindow: a real unmap
// when the window is mapped followed by a synthetic UnmapNotify.
func (d *fakeDisplay) withdrawSelf(win Window) {
	d.Unmap(win)
	d.pending = append(d.pending, UnmapNotify{Window: win})
}

// deliver hands every queued UnmapNotify to m.
func (d *fakeDisplay) deliver(m *Manager) {
	for len(d.pending) > 0 {
		ev := d.pending[0]
		d.pending = d.pending[1:]
		m.Handle(ev)
	}
}

func (d *fakeDisplay) Configure(win Window, g Geometry) {
	if w, ok := d.windows[win]; ok {
		w.attrs.Geometry = g
	}
}

func (d *fakeDisplay) PassConfigure(req ConfigureRequest) {
	d.passed = append(d.passed, req)
}

func (d *fakeDisplay) SendConfigureNotify(win Window, g Geometry) {
	d.notified[win] = g
}

func (d *fakeDisplay) Raise(win Window) {
	d.raised = append(d.raised, win)
}

func (d *fakeDisplay) SelectClientInput(win Window) {}

func (d *fakeDisplay) SetBorderColor(win Window, scheme Scheme) {}

func (d *fakeDisplay) SetFullscreen(win Window, on bool) {}

func (d *fakeDisplay) Close(win Window) {
	d.closed = append(d.closed, win)
}

func (d *fakeDisplay) MoveBar(g Geometry) {
	d.bar = g
}

func (d *fakeDisplay) SetClientList(wins []Window) {
	d.clientList = slices.Clone(wins)
}

func (d *fakeDisplay) SetCurrentDesktop(tag int) {
	d.desktop = tag
}

// fakeSurface uses 10 pixels per character and an 18 pixel font.
type fakeSurface struct {
	texts   []string
	flushes int
}

func (s *fakeSurface) FontHeight() int { return 18 }

func (s *fakeSurface) TextWidth(text string) int { return 10 * len(text) }

func (s *fakeSurface) SetScheme(scheme Scheme) {}

func (s *fakeSurface) Rect(x, y, w, h int, filled, invert bool) {}

func (s *fakeSurface) Text(x, y, w, h, lpad int, text string, invert bool) int {
	s.texts = append(s.texts, text)
	return x + w
}

func (s *fakeSurface) Resize(w, h int) {}

func (s *fakeSurface) Flush(x, y, w, h int) {
	s.flushes++
}

type fakeSpawner struct {
	spawned [][]string
	err     error
}

func (s *fakeSpawner) Spawn(argv []string) error {
	s.spawned = append(s.spawned, argv)
	return s.err
}

func testSettings() Settings {
	return Settings{
		Tags:     []string{"1", "2", "3", "4"},
		BorderPx: 0,
		ShowBar:  false,
		Mfact:    0.5,
		Nmaster:  0,
		Keys: []Key{
			{Mod: Mod4, Key: "1", Action: ActionView, Arg: ArgInt(1)},
			{Mod: Mod4, Key: "3", Action: ActionView, Arg: ArgInt(3)},
			{Mod: Mod4 | ModShift, Key: "2", Action: ActionTag, Arg: ArgInt(2)},
			{Mod: Mod4 | ModShift, Key: "q", Action: ActionQuit, Arg: ArgNone{}},
			{Mod: Mod4, Key: "Return", Action: ActionSpawn, Arg: ArgCommand{"xterm"}},
		},
		Buttons: []Button{
			{Click: ClickTagBar, Button: 1, Action: ActionView, Arg: ArgInt(0)},
			{Click: ClickLtSymbol, Button: 1, Action: ActionSetLayout, Arg: ArgNone{}},
		},
		StatusText: "xtagwm",
	}
}

func newTestManager(settings Settings) (*Manager, *fakeDisplay, *fakeSpawner) {
	dpy := newFakeDisplay()
	spawner := &fakeSpawner{}
	m := New(dpy, nil, spawner, settings, Screen{Root: testRoot, W: 900, H: 600, BarWindow: testBar})
	return m, dpy, spawner
}

// mapClients manages the given windows in order on the selected tag.
func mapClients(m *Manager, dpy *fakeDisplay, wins ...Window) {
	for _, win := range wins {
		dpy.add(win, "client")
		m.Handle(MapRequest{Window: win})
	}
}
