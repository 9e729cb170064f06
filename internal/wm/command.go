package wm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ItsNotGoodName/xtagwm/internal/layout"
	"github.com/google/shlex"
)

var ErrBadArg = errors.New("bad argument")

type Action int

const (
	ActionSpawn Action = iota
	ActionView
	ActionTag
	ActionToggleBar
	ActionSetLayout
	ActionSetMfact
	ActionIncNmaster
	ActionZoom
	ActionKillClient
	ActionToggleFloating
	ActionQuit
)

var actionNames = []string{
	ActionSpawn:          "spawn",
	ActionView:           "view",
	ActionTag:            "tag",
	ActionToggleBar:      "togglebar",
	ActionSetLayout:      "setlayout",
	ActionSetMfact:       "setmfact",
	ActionIncNmaster:     "incnmaster",
	ActionZoom:           "zoom",
	ActionKillClient:     "killclient",
	ActionToggleFloating: "togglefloating",
	ActionQuit:           "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Actions returns the names of every action.
func Actions() []string {
	return append([]string(nil), actionNames...)
}

func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range actionNames {
		if name == s {
			return Action(i), true
		}
	}
	return 0, false
}

// Arg is the argument of an action. It is one of ArgNone, ArgInt,
// ArgFloat, ArgLayout or ArgCommand.
type Arg interface {
	isArg()
}

type (
	ArgNone    struct{}
	ArgInt     int
	ArgFloat   float64
	ArgLayout  layout.Kind
	ArgCommand []string
)

func (ArgNone) isArg()    {}
func (ArgInt) isArg()     {}
func (ArgFloat) isArg()   {}
func (ArgLayout) isArg()  {}
func (ArgCommand) isArg() {}

// ParseArg converts the textual argument of action into its typed form.
func ParseArg(action Action, s string) (Arg, error) {
	s = strings.TrimSpace(s)
	switch action {
	case ActionSpawn:
		argv, err := shlex.Split(s)
		if err != nil {
			return nil, fmt.Errorf("%w: spawn: %w", ErrBadArg, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("%w: spawn needs a command", ErrBadArg)
		}
		return ArgCommand(argv), nil
	case ActionView, ActionTag, ActionIncNmaster:
		if s == "" && action != ActionIncNmaster {
			return ArgInt(0), nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadArg, action, err)
		}
		return ArgInt(i), nil
	case ActionSetMfact:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadArg, action, err)
		}
		return ArgFloat(f), nil
	case ActionSetLayout:
		if s == "" {
			return ArgNone{}, nil
		}
		k, err := layout.ParseKind(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadArg, err)
		}
		return ArgLayout(k), nil
	default:
		return ArgNone{}, nil
	}
}

// Request carries a command into the event loop. The result is sent on
// Done, which must be buffered.
type Request struct {
	Command Command
	Done    chan error
}

// NewRequest wraps cmd with a buffered Done channel.
func NewRequest(cmd Command) Request {
	return Request{Command: cmd, Done: make(chan error, 1)}
}

// Command is one action request, from a binding or from outside the loop.
type Command struct {
	ID     string
	Action Action
	Arg    Arg
}

// Modifier masks as defined by the X protocol.
const (
	ModShift   uint16 = 1 << 0
	ModLock    uint16 = 1 << 1
	ModControl uint16 = 1 << 2
	Mod1       uint16 = 1 << 3
	Mod2       uint16 = 1 << 4
	Mod3       uint16 = 1 << 5
	Mod4       uint16 = 1 << 6
	Mod5       uint16 = 1 << 7

	modAll = ModShift | ModControl | Mod1 | Mod2 | Mod3 | Mod4 | Mod5
)

// CleanMask drops lock modifiers and button state from mask.
func CleanMask(mask, numlock uint16) uint16 {
	return mask &^ (numlock | ModLock) & modAll
}

// Key binds a modifier mask and keysym name, such as "Return" or "j", to
// a command.
type Key struct {
	Mod    uint16
	Key    string
	Action Action
	Arg    Arg
}

// Click is where a button press landed.
type Click int

const (
	ClickTagBar Click = iota
	ClickLtSymbol
	ClickStatusText
	ClickWinTitle
	ClickClientWin
	ClickRootWin
)

var clickNames = []string{
	ClickTagBar:     "tagbar",
	ClickLtSymbol:   "ltsymbol",
	ClickStatusText: "statustext",
	ClickWinTitle:   "wintitle",
	ClickClientWin:  "clientwin",
	ClickRootWin:    "rootwin",
}

func (c Click) String() string {
	if c < 0 || int(c) >= len(clickNames) {
		return fmt.Sprintf("Click(%d)", int(c))
	}
	return clickNames[c]
}

func ParseClick(s string) (Click, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range clickNames {
		if name == s {
			return Click(i), true
		}
	}
	return 0, false
}

type Button struct {
	Click  Click
	Mod    uint16
	Button uint8
	Action Action
	Arg    Arg
}
