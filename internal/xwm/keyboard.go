package xwm

import (
	"log/slog"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/keybind"
	"github.com/jezek/xgbutil/xevent"
)

// numlockMask finds the modifier bit bound to Num_Lock.
func (c *Conn) numlockMask() uint16 {
	for _, code := range keybind.StrToKeycodes(c.XU, "Num_Lock") {
		if mask := keybind.ModGet(c.XU, code); mask != 0 {
			return mask
		}
	}
	return 0
}

func lockVariants(numlock uint16) []uint16 {
	return []uint16{0, wm.ModLock, numlock, numlock | wm.ModLock}
}

func (c *Conn) Keycodes(key string) []uint8 {
	codes := keybind.StrToKeycodes(c.XU, key)
	out := make([]uint8, len(codes))
	for i, code := range codes {
		out[i] = uint8(code)
	}
	return out
}

// grabKeys grabs every binding on the root window with all lock
// combinations.
func (c *Conn) grabKeys(keys []wm.Key, numlock uint16) {
	xproto.UngrabKey(c.X, xproto.GrabAny, c.Root, xproto.ModMaskAny)
	xevent.IgnoreMods = lockVariants(numlock)
	for _, key := range keys {
		codes := keybind.StrToKeycodes(c.XU, key.Key)
		if len(codes) == 0 {
			slog.Warn("No keycode for key binding", "key", key.Key)
			continue
		}
		for _, code := range codes {
			keybind.Grab(c.XU, c.Root, key.Mod, code)
		}
	}
}

// grabButtons grabs client window bindings on the root window. Bar and
// root clicks arrive through the normal event mask.
func (c *Conn) grabButtons(buttons []wm.Button, numlock uint16) {
	xproto.UngrabButton(c.X, xproto.ButtonIndexAny, c.Root, xproto.ModMaskAny)
	for _, b := range buttons {
		if b.Click != wm.ClickClientWin {
			continue
		}
		for _, mod := range lockVariants(numlock) {
			xproto.GrabButton(c.X, false, c.Root,
				uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
				xproto.GrabModeAsync, xproto.GrabModeAsync,
				xproto.WindowNone, c.cursors.Move, b.Button, b.Mod|mod)
		}
	}
}

// Grab grabs the bindings of settings.
func (c *Conn) Grab(settings wm.Settings, numlock uint16) {
	c.keys, c.buttons = settings.Keys, settings.Buttons
	c.grabKeys(c.keys, numlock)
	c.grabButtons(c.buttons, numlock)
}

// refreshKeyboard reloads the keyboard and modifier mappings after a
// MappingNotify, grabs again and returns the new Num_Lock mask.
func (c *Conn) refreshKeyboard() uint16 {
	keyMap, modMap := keybind.MapsGet(c.XU)
	keybind.KeyMapSet(c.XU, keyMap)
	keybind.ModMapSet(c.XU, modMap)

	numlock := c.numlockMask()
	c.grabKeys(c.keys, numlock)
	c.grabButtons(c.buttons, numlock)
	return numlock
}
