package middleware

import "context"

// Event types.
const (
	EventTypeEvent = "event"
	EventTypeKeyUp = "keyup"
)

// Event describes one client event handled by a session.
type Event struct {
	SessionID string
	// Type is EventTypeEvent for element events and EventTypeKeyUp for
	// document key events.
	Type string
	// HID and Name identify the element handler ("h3", "onclick").
	HID  string
	Name string
	// Key is set for key events.
	Key string
}

// Handler processes one event.
type Handler func(ctx context.Context, ev Event) error

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain composes middleware so the first one given runs outermost.
func Chain(mws ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				next = mws[i](next)
			}
		}
		return next
	}
}
