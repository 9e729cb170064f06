package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrUnknownKey      = errors.New("unknown key")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrUnknownClick    = errors.New("unknown click")
	ErrUnknownButton   = errors.New("unknown button")
)

var modifiers = map[string]uint16{
	"shift":   wm.ModShift,
	"lock":    wm.ModLock,
	"control": wm.ModControl,
	"ctrl":    wm.ModControl,
	"mod1":    wm.Mod1,
	"alt":     wm.Mod1,
	"mod2":    wm.Mod2,
	"mod3":    wm.Mod3,
	"mod4":    wm.Mod4,
	"super":   wm.Mod4,
	"mod5":    wm.Mod5,
}

// splitCombo splits "Mod4+Shift+x" into its modifier mask and final part.
// A literal "+" key is written as "plus".
func splitCombo(s string) (uint16, string, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}

	var mask uint16
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifiers[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return 0, "", fmt.Errorf("%w: %q in %q", ErrUnknownModifier, p, s)
		}
		mask |= mod
	}
	return mask, last, nil
}

// ParseKey parses a key combination such as "Mod4+Shift+Return" into a
// modifier mask and keysym name. Names are resolved against the keyboard
// mapping when the keys are grabbed.
func ParseKey(s string) (uint16, string, error) {
	mask, name, err := splitCombo(s)
	if err != nil {
		return 0, "", err
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	if len(name) == 1 {
		name = strings.ToLower(name)
	}
	return mask, name, nil
}

// ParseButton parses a button combination such as "Mod4+Button1".
func ParseButton(s string) (uint16, uint8, error) {
	mask, name, err := splitCombo(s)
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(name), "button"))
	if err != nil || n < 1 || n > 5 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
	}
	return mask, uint8(n), nil
}

// ParseCommand resolves an action name and its textual argument.
func ParseCommand(action, arg string) (wm.Action, wm.Arg, error) {
	a, ok := wm.ParseAction(action)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	v, err := wm.ParseArg(a, arg)
	if err != nil {
		return 0, nil, err
	}
	return a, v, nil
}

// Settings converts cfg into the settings of the window manager.
func Settings(cfg Config) (wm.Settings, error) {
	settings := wm.Settings{
		Tags:       cfg.Tags,
		BorderPx:   cfg.BorderPx,
		Snap:       cfg.Snap,
		ShowBar:    cfg.ShowBar,
		TopBar:     cfg.TopBar,
		Mfact:      cfg.Mfact,
		Nmaster:    cfg.Nmaster,
		Layout:     cfg.Layout,
		StatusText: cfg.Status,
	}

	for i, k := range cfg.Keys {
		mod, key, err := ParseKey(k.Key)
		if err != nil {
			return wm.Settings{}, fmt.Errorf("keys[%d]: %w", i, err)
		}
		action, arg, err := ParseCommand(k.Action, k.Arg)
		if err != nil {
			return wm.Settings{}, fmt.Errorf("keys[%d]: %w", i, err)
		}
		settings.Keys = append(settings.Keys, wm.Key{Mod: mod, Key: key, Action: action, Arg: arg})
	}

	for i, b := range cfg.Buttons {
		click, ok := wm.ParseClick(b.Click)
		if !ok {
			return wm.Settings{}, fmt.Errorf("buttons[%d]: %w: %q", i, ErrUnknownClick, b.Click)
		}
		mod, button, err := ParseButton(b.Button)
		if err != nil {
			return wm.Settings{}, fmt.Errorf("buttons[%d]: %w", i, err)
		}
		action, arg, err := ParseCommand(b.Action, b.Arg)
		if err != nil {
			return wm.Settings{}, fmt.Errorf("buttons[%d]: %w", i, err)
		}
		settings.Buttons = append(settings.Buttons, wm.Button{Click: click, Mod: mod, Button: button, Action: action, Arg: arg})
	}

	return settings, nil
}
