package config

import (
	"fmt"
	"strconv"

	"github.com/ItsNotGoodName/xtagwm/internal/layout"
)

type Config struct {
	Tags      []string    `json:"tags" yaml:"tags" toml:"tags"`
	Fonts     []string    `json:"fonts" yaml:"fonts" toml:"fonts"`
	Colors    Colors      `json:"colors" yaml:"colors" toml:"colors"`
	BorderPx  int         `json:"border_px" yaml:"border_px" toml:"border_px"`
	Snap      int         `json:"snap" yaml:"snap" toml:"snap"`
	ShowBar   bool        `json:"show_bar" yaml:"show_bar" toml:"show_bar"`
	TopBar    bool        `json:"top_bar" yaml:"top_bar" toml:"top_bar"`
	Mfact     float64     `json:"mfact" yaml:"mfact" toml:"mfact"`
	Nmaster   int         `json:"nmaster" yaml:"nmaster" toml:"nmaster"`
	Layout    layout.Kind `json:"layout" yaml:"layout" toml:"layout"`
	Status    string      `json:"status" yaml:"status" toml:"status"`
	Autostart []string    `json:"autostart" yaml:"autostart" toml:"autostart"`
	Keys      []Key       `json:"keys" yaml:"keys" toml:"keys"`
	Buttons   []Button    `json:"buttons" yaml:"buttons" toml:"buttons"`
}

type Colors struct {
	Norm Scheme `json:"norm" yaml:"norm" toml:"norm"`
	Sel  Scheme `json:"sel" yaml:"sel" toml:"sel"`
}

type Scheme struct {
	Fg     string `json:"fg" yaml:"fg" toml:"fg"`
	Bg     string `json:"bg" yaml:"bg" toml:"bg"`
	Border string `json:"border" yaml:"border" toml:"border"`
}

// Key binds a key combination such as "Mod4+Shift+Return" to an action.
type Key struct {
	Key    string `json:"key" yaml:"key" toml:"key"`
	Action string `json:"action" yaml:"action" toml:"action"`
	Arg    string `json:"arg,omitempty" yaml:"arg,omitempty" toml:"arg,omitempty"`
}

// Button binds a click such as "Mod4+Button1" on a bar area or window to
// an action.
type Button struct {
	Click  string `json:"click" yaml:"click" toml:"click"`
	Button string `json:"button" yaml:"button" toml:"button"`
	Action string `json:"action" yaml:"action" toml:"action"`
	Arg    string `json:"arg,omitempty" yaml:"arg,omitempty" toml:"arg,omitempty"`
}

func Default() Config {
	cfg := Config{
		Fonts: []string{
			"-misc-fixed-medium-r-semicondensed--13-*-*-*-*-*-iso8859-1",
			"fixed",
		},
		Colors: Colors{
			Norm: Scheme{Fg: "#bbbbbb", Bg: "#222222", Border: "#444444"},
			Sel:  Scheme{Fg: "#eeeeee", Bg: "#005577", Border: "#005577"},
		},
		BorderPx:  2,
		Snap:      32,
		ShowBar:   true,
		TopBar:    false,
		Mfact:     0.5,
		Nmaster:   2,
		Layout:    layout.Tile,
		Autostart: []string{},
		Keys: []Key{
			{Key: "Mod4+p", Action: "spawn", Arg: "dmenu_run"},
			{Key: "Mod4+Shift+Return", Action: "spawn", Arg: "xterm"},
			{Key: "Mod4+b", Action: "togglebar"},
			{Key: "Mod4+i", Action: "incnmaster", Arg: "1"},
			{Key: "Mod4+d", Action: "incnmaster", Arg: "-1"},
			{Key: "Mod4+h", Action: "setmfact", Arg: "-0.05"},
			{Key: "Mod4+l", Action: "setmfact", Arg: "0.05"},
			{Key: "Mod4+Return", Action: "zoom"},
			{Key: "Mod4+Tab", Action: "view", Arg: "0"},
			{Key: "Mod4+Shift+c", Action: "killclient"},
			{Key: "Mod4+t", Action: "setlayout", Arg: "tile"},
			{Key: "Mod4+m", Action: "setlayout", Arg: "monocle"},
			{Key: "Mod4+f", Action: "setlayout", Arg: "float"},
			{Key: "Mod4+g", Action: "setlayout", Arg: "grid"},
			{Key: "Mod4+space", Action: "setlayout"},
			{Key: "Mod4+Shift+space", Action: "togglefloating"},
			{Key: "Mod4+Shift+q", Action: "quit"},
		},
		Buttons: []Button{
			{Click: "ltsymbol", Button: "Button1", Action: "setlayout"},
			{Click: "ltsymbol", Button: "Button3", Action: "setlayout", Arg: "monocle"},
			{Click: "wintitle", Button: "Button2", Action: "zoom"},
			{Click: "statustext", Button: "Button2", Action: "spawn", Arg: "xterm"},
			{Click: "clientwin", Button: "Mod4+Button2", Action: "togglefloating"},
			{Click: "tagbar", Button: "Button1", Action: "view"},
			{Click: "tagbar", Button: "Mod4+Button1", Action: "tag"},
		},
	}

	for i := 1; i <= 9; i++ {
		tag := strconv.Itoa(i)
		cfg.Tags = append(cfg.Tags, tag)
		cfg.Keys = append(cfg.Keys,
			Key{Key: "Mod4+" + tag, Action: "view", Arg: tag},
			Key{Key: "Mod4+Shift+" + tag, Action: "tag", Arg: tag},
		)
	}

	return cfg
}

// Validate checks values that would otherwise be silently clamped.
func (c Config) Validate() error {
	if len(c.Tags) == 0 || len(c.Tags) > 32 {
		return fmt.Errorf("tags: need between 1 and 32, got %d", len(c.Tags))
	}
	if len(c.Fonts) == 0 {
		return fmt.Errorf("fonts: at least one font is required")
	}
	if c.Mfact < layout.MinMfact || c.Mfact > layout.MaxMfact {
		return fmt.Errorf("mfact: %v is outside [%v, %v]", c.Mfact, layout.MinMfact, layout.MaxMfact)
	}
	if c.Nmaster < 0 {
		return fmt.Errorf("nmaster: must not be negative")
	}
	if c.BorderPx < 0 {
		return fmt.Errorf("border_px: must not be negative")
	}
	if !c.Layout.Valid() {
		return fmt.Errorf("layout: invalid")
	}
	for _, s := range []struct {
		name  string
		value string
	}{
		{"colors.norm.fg", c.Colors.Norm.Fg},
		{"colors.norm.bg", c.Colors.Norm.Bg},
		{"colors.norm.border", c.Colors.Norm.Border},
		{"colors.sel.fg", c.Colors.Sel.Fg},
		{"colors.sel.bg", c.Colors.Sel.Bg},
		{"colors.sel.border", c.Colors.Sel.Border},
	} {
		if _, err := ParseColor(s.value); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// withoutLists clears every list so decoders never merge into default
// elements.
func (c Config) withoutLists() Config {
	c.Tags = nil
	c.Fonts = nil
	c.Autostart = nil
	c.Keys = nil
	c.Buttons = nil
	return c
}

// withDefaultLists restores lists that were absent from the file.
func (c Config) withDefaultLists() Config {
	def := Default()
	if c.Tags == nil {
		c.Tags = def.Tags
	}
	if c.Fonts == nil {
		c.Fonts = def.Fonts
	}
	if c.Autostart == nil {
		c.Autostart = def.Autostart
	}
	if c.Keys == nil {
		c.Keys = def.Keys
	}
	if c.Buttons == nil {
		c.Buttons = def.Buttons
	}
	return c
}
