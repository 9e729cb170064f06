package xwm

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xprop"
)

// atoms compared against incoming events.
type atoms struct {
	WMProtocols   xproto.Atom
	WMDelete      xproto.Atom
	NetWMName     xproto.Atom
	NetWMState    xproto.Atom
	NetFullscreen xproto.Atom
	NetActive     xproto.Atom
}

func internAtoms(xu *xgbutil.XUtil) (atoms, error) {
	var a atoms
	for _, entry := range []struct {
		atom *xproto.Atom
		name string
	}{
		{&a.WMProtocols, "WM_PROTOCOLS"},
		{&a.WMDelete, "WM_DELETE_WINDOW"},
		{&a.NetWMName, "_NET_WM_NAME"},
		{&a.NetWMState, "_NET_WM_STATE"},
		{&a.NetFullscreen, "_NET_WM_STATE_FULLSCREEN"},
		{&a.NetActive, "_NET_ACTIVE_WINDOW"},
	} {
		atom, err := xprop.Atm(xu, entry.name)
		if err != nil {
			return atoms{}, err
		}
		*entry.atom = atom
	}
	return a, nil
}

// supported lists the hints advertised in _NET_SUPPORTED.
var supported = []string{
	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
}
