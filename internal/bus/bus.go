// Package bus fans values out to subscribers that only care about the
// latest one.
package bus

import (
	"sync"
)

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		mu:   sync.Mutex{},
		subs: make(map[*chan T]struct{}),
	}
}

// Hub remembers the last broadcast value and hands it to new subscribers.
type Hub[T any] struct {
	mu     sync.Mutex
	subs   map[*chan T]struct{}
	last   T
	hasAny bool
}

// Broadcast never blocks. A subscriber that has not read the previous value
// gets it replaced by event.
func (h *Hub[T]) Broadcast(event T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last, h.hasAny = event, true
	for sub := range h.subs {
		send(*sub, event)
	}
}

func send[T any](c chan T, event T) {
	for {
		select {
		case c <- event:
			return
		default:
		}
		select {
		case <-c:
		default:
		}
	}
}

// Latest returns the last broadcast value.
func (h *Hub[T]) Latest() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasAny
}

func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T, 1)
	if h.hasAny {
		c <- h.last
	}

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		delete(h.subs, key)
		h.mu.Unlock()
	}
}
