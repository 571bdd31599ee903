// Package bus provides the minimal publish/subscribe surface the gesture
// engine uses to notify external collaborators.
package bus

import "sync"

// Handler receives an event payload. Emission is synchronous on the
// frame-processing goroutine, so handlers must not block.
type Handler func(payload any)

// Bus is a named-callback registry with at most one handler per event
// name; the last registration wins.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[string]Handler),
	}
}

// On registers the handler for the event name, replacing any previous
// handler for that name. A nil handler unregisters the name.
func (b *Bus) On(event string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if h == nil {
		delete(b.handlers, event)
		return
	}
	b.handlers[event] = h
}

// Off removes the handler for the event name, if any.
func (b *Bus) Off(event string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, event)
}

// Emit delivers the payload to the event's handler, if one is
// registered. Delivery happens synchronously on the caller's goroutine.
func (b *Bus) Emit(event string, payload any) {
	b.mu.RLock()
	h := b.handlers[event]
	b.mu.RUnlock()

	if h != nil {
		h(payload)
	}
}
