package xwm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/icccm"
	"github.com/stretchr/testify/require"
)

func testConn() *Conn {
	return &Conn{
		Root: 1,
		atoms: atoms{
			NetWMName:     100,
			NetWMState:    101,
			NetFullscreen: 102,
			NetActive:     103,
		},
	}
}

func TestSizeHints(t *testing.T) {
	h := sizeHints(&icccm.NormalHints{
		Flags:        icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize | icccm.SizeHintPResizeInc | icccm.SizeHintPAspect,
		MinWidth:     100,
		MinHeight:    50,
		MaxWidth:     800,
		MaxHeight:    600,
		WidthInc:     10,
		HeightInc:    20,
		MinAspectNum: 1,
		MinAspectDen: 2,
		MaxAspectNum: 3,
		MaxAspectDen: 1,
	})
	require.Equal(t, 100, h.MinW)
	require.Equal(t, 50, h.MinH)
	require.Equal(t, 100, h.BaseW, "base falls back to min")
	require.Equal(t, 800, h.MaxW)
	require.Equal(t, 600, h.MaxH)
	require.Equal(t, 10, h.IncW)
	require.Equal(t, 20, h.IncH)
	require.Equal(t, 2.0, h.MinA)
	require.Equal(t, 3.0, h.MaxA)
}

func TestSizeHintsBase(t *testing.T) {
	h := sizeHints(&icccm.NormalHints{
		Flags:      icccm.SizeHintPBaseSize,
		BaseWidth:  30,
		BaseHeight: 40,
	})
	require.Equal(t, 30, h.BaseW)
	require.Equal(t, 40, h.BaseH)
	require.Equal(t, 30, h.MinW, "min falls back to base")
	require.Equal(t, 40, h.MinH)
	require.Zero(t, h.MaxW)
}

func TestSizeHintsEmpty(t *testing.T) {
	require.Equal(t, wm.SizeHints{}, sizeHints(nil))
	require.Equal(t, wm.SizeHints{}, sizeHints(&icccm.NormalHints{MinWidth: 100}), "fields without flags are ignored")
}

func TestWMHints(t *testing.T) {
	urgent, neverFocus := wmHints(&icccm.Hints{Flags: icccm.HintUrgency | icccm.HintInput, Input: 0})
	require.True(t, urgent)
	require.True(t, neverFocus)

	urgent, neverFocus = wmHints(&icccm.Hints{Flags: icccm.HintInput, Input: 1})
	require.False(t, urgent)
	require.False(t, neverFocus)

	urgent, neverFocus = wmHints(nil)
	require.False(t, urgent)
	require.False(t, neverFocus)
}

func TestScannable(t *testing.T) {
	require.True(t, scannable(wm.Attributes{Viewable: true}, false))
	require.True(t, scannable(wm.Attributes{}, true), "iconic windows were hidden by the previous window manager")
	require.False(t, scannable(wm.Attributes{}, false))
	require.False(t, scannable(wm.Attributes{Viewable: true, OverrideRedirect: true}, false))
	require.False(t, scannable(wm.Attributes{OverrideRedirect: true}, true))
}

func TestIgnorable(t *testing.T) {
	require.True(t, Ignorable(xproto.WindowError{}))
	require.True(t, Ignorable(xproto.DrawableError{}))
	require.True(t, Ignorable(xproto.MatchError{}))
	require.True(t, Ignorable(fmt.Errorf("wrapped: %w", xproto.AccessError{})))
	require.False(t, Ignorable(xproto.AllocError{}))
	require.False(t, Ignorable(errors.New("other")))
}

func TestLockVariants(t *testing.T) {
	require.Equal(t, []uint16{0, wm.ModLock, wm.Mod2, wm.Mod2 | wm.ModLock}, lockVariants(wm.Mod2))
}

func TestTranslate(t *testing.T) {
	c := testConn()

	require.Equal(t, wm.MapRequest{Window: 5}, c.translate(xproto.MapRequestEvent{Window: 5}))
	require.Equal(t, wm.DestroyNotify{Window: 5}, c.translate(xproto.DestroyNotifyEvent{Window: 5}))
	require.Equal(t, wm.KeyPress{Keycode: 24, State: wm.Mod4}, c.translate(xproto.KeyPressEvent{Detail: 24, State: wm.Mod4}))
	require.Equal(t,
		wm.ConfigureRequest{Window: 5, Mask: wm.ConfigX | wm.ConfigW, X: -10, W: 300},
		c.translate(xproto.ConfigureRequestEvent{Window: 5, ValueMask: wm.ConfigX | wm.ConfigW, X: -10, Width: 300}))
	require.Equal(t,
		wm.ButtonPress{Window: 2, Child: 6, Button: 1, X: 40, Y: 3},
		c.translate(xproto.ButtonPressEvent{Event: 2, Child: 6, Detail: 1, EventX: 40, EventY: 3}))
	require.Nil(t, c.translate(xproto.EnterNotifyEvent{}))
}

func TestTranslateUnmap(t *testing.T) {
	c := testConn()

	require.Equal(t, wm.UnmapNotify{Window: 5}, c.translate(xproto.UnmapNotifyEvent{Event: c.Root, Window: 5}))
	require.Nil(t, c.translate(xproto.UnmapNotifyEvent{Event: 5, Window: 5}), "copy sent to the window itself")
}

func TestTranslateExpose(t *testing.T) {
	c := testConn()

	require.Equal(t, wm.Expose{Window: 2}, c.translate(xproto.ExposeEvent{Window: 2}))
	require.Nil(t, c.translate(xproto.ExposeEvent{Window: 2, Count: 1}))
}

func TestTranslateProperty(t *testing.T) {
	c := testConn()

	for atom, want := range map[xproto.Atom]wm.Property{
		xproto.AtomWmName:         wm.PropName,
		c.atoms.NetWMName:         wm.PropName,
		xproto.AtomWmHints:        wm.PropHints,
		xproto.AtomWmNormalHints:  wm.PropNormalHints,
		xproto.AtomWmTransientFor: wm.PropTransientFor,
		xproto.AtomWmClass:        wm.PropOther,
	} {
		ev := c.translate(xproto.PropertyNotifyEvent{Window: 5, Atom: atom})
		require.Equal(t, wm.PropertyNotify{Window: 5, Property: want}, ev)
	}

	ev := c.translate(xproto.PropertyNotifyEvent{Window: 5, Atom: xproto.AtomWmName, State: xproto.PropertyDelete})
	require.Equal(t, wm.PropertyNotify{Window: 5, Property: wm.PropName, Deleted: true}, ev)
}

func TestTranslateClientMessage(t *testing.T) {
	c := testConn()

	fullscreen := xproto.ClientMessageEvent{
		Format: 32,
		Window: 5,
		Type:   c.atoms.NetWMState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{wm.StateToggle, uint32(c.atoms.NetFullscreen), 0, 0, 0}),
	}
	require.Equal(t, wm.ClientMessage{Window: 5, Message: wm.MessageFullscreen, Action: wm.StateToggle}, c.translate(fullscreen))

	active := xproto.ClientMessageEvent{
		Format: 32,
		Window: 5,
		Type:   c.atoms.NetActive,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	require.Equal(t, wm.ClientMessage{Window: 5, Message: wm.MessageActivate}, c.translate(active))

	other := xproto.ClientMessageEvent{
		Format: 32,
		Window: 5,
		Type:   c.atoms.NetWMState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{wm.StateAdd, 999, 0, 0, 0}),
	}
	require.Nil(t, c.translate(other))
}
