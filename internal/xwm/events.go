package xwm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ReceiveEvents forwards events and asynchronous errors from conn until the
// connection closes or ctx is done. eventC is closed on return.
func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- any) {
	defer close(eventC)
	slog := slog.With("func", "xwm.ReceiveEvents")

	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("exit: no event or error")
			return
		}

		var item any = ev
		if err != nil {
			item = err
		}

		select {
		case <-ctx.Done():
			return
		case eventC <- item:
		}
	}
}

// Ignorable reports whether err is one of the errors expected when racing
// against clients that destroy their windows.
func Ignorable(err error) bool {
	var (
		windowErr   xproto.WindowError
		drawableErr xproto.DrawableError
		matchErr    xproto.MatchError
		accessErr   xproto.AccessError
	)
	return errors.As(err, &windowErr) ||
		errors.As(err, &drawableErr) ||
		errors.As(err, &matchErr) ||
		errors.As(err, &accessErr)
}

// translate converts an X event into the event the manager handles. It
// returns nil for events the manager does not care about.
func (c *Conn) translate(ev xgb.Event) any {
	switch ev := ev.(type) {
	case xproto.MapRequestEvent:
		return wm.MapRequest{Window: wm.Window(ev.Window)}
	case xproto.ConfigureRequestEvent:
		return wm.ConfigureRequest{
			Window:    wm.Window(ev.Window),
			Mask:      ev.ValueMask,
			X:         int(ev.X),
			Y:         int(ev.Y),
			W:         int(ev.Width),
			H:         int(ev.Height),
			BW:        int(ev.BorderWidth),
			Sibling:   wm.Window(ev.Sibling),
			StackMode: ev.StackMode,
		}
	case xproto.ConfigureNotifyEvent:
		return wm.ConfigureNotify{Window: wm.Window(ev.Window), W: int(ev.Width), H: int(ev.Height)}
	case xproto.DestroyNotifyEvent:
		return wm.DestroyNotify{Window: wm.Window(ev.Window)}
	case xproto.UnmapNotifyEvent:
		// Each unmap arrives once for the window and once for the root.
		if ev.Event != c.Root {
			return nil
		}
		return wm.UnmapNotify{Window: wm.Window(ev.Window)}
	case xproto.KeyPressEvent:
		return wm.KeyPress{Keycode: uint8(ev.Detail), State: ev.State}
	case xproto.ButtonPressEvent:
		return wm.ButtonPress{
			Window: wm.Window(ev.Event),
			Child:  wm.Window(ev.Child),
			Button: uint8(ev.Detail),
			State:  ev.State,
			X:      int(ev.EventX),
			Y:      int(ev.EventY),
		}
	case xproto.PropertyNotifyEvent:
		return wm.PropertyNotify{
			Window:   wm.Window(ev.Window),
			Property: c.propertyKind(ev.Atom),
			Deleted:  ev.State == xproto.PropertyDelete,
		}
	case xproto.ClientMessageEvent:
		return c.clientMessage(ev)
	case xproto.ExposeEvent:
		if ev.Count != 0 {
			return nil
		}
		return wm.Expose{Window: wm.Window(ev.Window)}
	default:
		return nil
	}
}

func (c *Conn) propertyKind(atom xproto.Atom) wm.Property {
	switch atom {
	case xproto.AtomWmName, c.atoms.NetWMName:
		return wm.PropName
	case xproto.AtomWmHints:
		return wm.PropHints
	case xproto.AtomWmNormalHints:
		return wm.PropNormalHints
	case xproto.AtomWmTransientFor:
		return wm.PropTransientFor
	default:
		return wm.PropOther
	}
}

func (c *Conn) clientMessage(ev xproto.ClientMessageEvent) any {
	msg := wm.ClientMessage{Window: wm.Window(ev.Window)}
	data := ev.Data.Data32
	switch {
	case ev.Type == c.atoms.NetWMState && len(data) >= 3 &&
		(xproto.Atom(data[1]) == c.atoms.NetFullscreen || xproto.Atom(data[2]) == c.atoms.NetFullscreen):
		msg.Message = wm.MessageFullscreen
		msg.Action = data[0]
	case ev.Type == c.atoms.NetActive:
		msg.Message = wm.MessageActivate
	default:
		return nil
	}
	return msg
}
