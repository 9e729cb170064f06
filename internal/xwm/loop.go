package xwm

import (
	"context"
	"log/slog"

	"github.com/ItsNotGoodName/xtagwm/internal/wm"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Run feeds X events and requests to m until m quits, ctx is done or the
// connection closes. publish is called with a snapshot after every change
// and may be nil.
func Run(ctx context.Context, c *Conn, m *wm.Manager, requestC <-chan wm.Request, publish func(wm.Snapshot)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eventC := make(chan any)
	go ReceiveEvents(ctx, c.X, eventC)

	if publish == nil {
		publish = func(wm.Snapshot) {}
	}
	publish(m.Snapshot())

	for m.Running() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-requestC:
			req.Done <- m.Execute(req.Command)
		case item, ok := <-eventC:
			if !ok {
				return ErrConnectionClosed
			}
			c.dispatch(m, item)
		}
		publish(m.Snapshot())
	}

	return nil
}

func (c *Conn) dispatch(m *wm.Manager, item any) {
	switch item := item.(type) {
	case xgb.Error:
		if Ignorable(item) {
			slog.Debug("Ignoring X error", "error", item)
			return
		}
		slog.Error("X error", "error", item)
	case xproto.MappingNotifyEvent:
		if item.Request == xproto.MappingKeyboard || item.Request == xproto.MappingModifier {
			m.SetNumlockMask(c.refreshKeyboard())
		}
	case xgb.Event:
		if ev := c.translate(item); ev != nil {
			m.Handle(ev)
		}
	}
}
