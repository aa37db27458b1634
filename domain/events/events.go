// Package events carries the session lifecycle signals the token manager
// broadcasts and the application store listens for. The emitter is an
// explicit, injected observer list; there is no ambient global bus.
package events

import "sync"

// Type identifies a session event. Both events are fire-and-forget signals
// with no payload.
type Type string

const (
	// TokenExpired fires when a silent refresh fails and the stored token
	// is past (or about to pass) its expiry.
	TokenExpired Type = "session.token_expired"

	// AuthError fires when the server rejects a request with 401.
	AuthError Type = "session.auth_error"
)

// Handler receives an event. Handlers run synchronously on the emitting
// goroutine and must not block.
type Handler func(Type)

// Emitter is a minimal typed publish/subscribe hub. Delivery is
// best-effort: only listeners subscribed at emit time are invoked.
type Emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[Type]map[int]Handler
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[Type]map[int]Handler)}
}

// Subscribe registers a handler for one event type and returns a function
// that removes it. Unsubscribing twice is harmless.
func (e *Emitter) Subscribe(t Type, h Handler) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	if e.handlers[t] == nil {
		e.handlers[t] = make(map[int]Handler)
	}
	e.handlers[t][id] = h

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers[t], id)
	}
}

// Emit invokes every handler currently subscribed to t.
func (e *Emitter) Emit(t Type) {
	e.mu.Lock()
	hs := make([]Handler, 0, len(e.handlers[t]))
	for _, h := range e.handlers[t] {
		hs = append(hs, h)
	}
	e.mu.Unlock()

	for _, h := range hs {
		h(t)
	}
}
