package wm

type Attributes struct {
	Geometry
	OverrideRedirect bool
	Viewable         bool
}

// Display is the window system as seen by the window manager. Requests
// without a return value are asynchronous and their errors are reported
// through the event stream.
type Display interface {
	Attributes(win Window) (Attributes, error)
	Hints(win Window) (Hints, error)
	Title(win Window) string
	// RootName returns the root window name, which holds the status text.
	RootName() (string, bool)
	// Keycodes returns the keycodes that produce the named keysym.
	Keycodes(key string) []uint8
	// PointerWindow returns the top level window under the pointer.
	PointerWindow() (Window, error)

	Map(win Window)
	Unmap(win Window)
	// Withdraw sets the ICCCM state of a window the client unmapped.
	Withdraw(win Window)
	Configure(win Window, g Geometry)
	PassConfigure(req ConfigureRequest)
	SendConfigureNotify(win Window, g Geometry)
	Raise(win Window)
	SelectClientInput(win Window)
	SetBorderColor(win Window, scheme Scheme)
	SetFullscreen(win Window, on bool)
	Close(win Window)

	MoveBar(g Geometry)
	SetClientList(wins []Window)
	SetCurrentDesktop(tag int)
}

type Scheme int

const (
	SchemeNorm Scheme = iota
	SchemeSel
)

// Surface draws the bar off screen and copies it to the bar window on
// Flush.
type Surface interface {
	FontHeight() int
	TextWidth(text string) int
	SetScheme(scheme Scheme)
	Rect(x, y, w, h int, filled, invert bool)
	Text(x, y, w, h, lpad int, text string, invert bool) int
	Resize(w, h int)
	Flush(x, y, w, h int)
}

// Spawner starts programs without waiting for them.
type Spawner interface {
	Spawn(argv []string) error
}
