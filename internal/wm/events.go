package wm

// Events delivered to Manager.Handle. They carry only what the handlers
// use.
type (
	MapRequest struct {
		Window Window
	}

	ConfigureRequest struct {
		Window    Window
		Mask      uint16
		X         int
		Y         int
		W         int
		H         int
		BW        int
		Sibling   Window
		StackMode uint8
	}

	ConfigureNotify struct {
		Window Window
		W      int
		H      int
	}

	DestroyNotify struct {
		Window Window
	}

	// UnmapNotify is a client unmapping itself or a synthetic withdraw
	// request sent to the root window.
	UnmapNotify struct {
		Window Window
	}

	KeyPress struct {
		Keycode uint8
		State   uint16
	}

	ButtonPress struct {
		Window Window
		Child  Window
		Button uint8
		State  uint16
		X      int
		Y      int
	}

	PropertyNotify struct {
		Window   Window
		Property Property
		Deleted  bool
	}

	ClientMessage struct {
		Window  Window
		Message Message
		Action  uint32
	}

	Expose struct {
		Window Window
	}
)

// ConfigureRequest mask bits.
const (
	ConfigX uint16 = 1 << iota
	ConfigY
	ConfigW
	ConfigH
	ConfigBW
	ConfigSibling
	ConfigStackMode
)

// Property is a window property the manager cares about.
type Property int

const (
	PropOther Property = iota
	PropName
	PropHints
	PropNormalHints
	PropTransientFor
)

// Message is a client message the manager understands.
type Message int

const (
	MessageOther Message = iota
	MessageFullscreen
	MessageActivate
)

// _NET_WM_STATE actions.
const (
	StateRemove uint32 = 0
	StateAdd    uint32 = 1
	StateToggle uint32 = 2
)
