package vango

import (
	"sort"
	"sync"
)

// Document is the document-scoped event source of one session.
//
// The host (a live session or a test harness) forwards browser events that
// are not bound to a rendered element, such as keyup on document, through
// Dispatch. Listeners are invoked synchronously in registration order on
// the dispatching goroutine.
type Document struct {
	mu        sync.RWMutex
	listeners map[string][]docListener
}

type docListener struct {
	id uint64
	fn func(payload any)
}

// NewDocument creates an empty document event source.
func NewDocument() *Document {
	return &Document{
		listeners: make(map[string][]docListener),
	}
}

// AddEventListener registers fn for event (e.g. "keyup").
// The returned func removes the listener; calling it twice is harmless.
func (d *Document) AddEventListener(event string, fn func(payload any)) (remove func()) {
	id := nextID()

	d.mu.Lock()
	d.listeners[event] = append(d.listeners[event], docListener{id: id, fn: fn})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		ls := d.listeners[event]
		for i, l := range ls {
			if l.id == id {
				d.listeners[event] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
		if len(d.listeners[event]) == 0 {
			delete(d.listeners, event)
		}
	}
}

// OnKeyUp registers a typed keyup listener.
func (d *Document) OnKeyUp(fn func(KeyboardEvent)) (remove func()) {
	return d.AddEventListener(EventKeyUp, func(payload any) {
		if e, ok := payload.(KeyboardEvent); ok {
			fn(e)
		}
	})
}

// OnKeyDown registers a typed keydown listener.
func (d *Document) OnKeyDown(fn func(KeyboardEvent)) (remove func()) {
	return d.AddEventListener(EventKeyDown, func(payload any) {
		if e, ok := payload.(KeyboardEvent); ok {
			fn(e)
		}
	})
}

// Dispatch invokes every listener registered for event and returns how many
// ran. The listener list is copied first so listeners may remove themselves.
func (d *Document) Dispatch(event string, payload any) int {
	d.mu.RLock()
	ls := make([]docListener, len(d.listeners[event]))
	copy(ls, d.listeners[event])
	d.mu.RUnlock()

	for _, l := range ls {
		l.fn(payload)
	}
	return len(ls)
}

// DispatchKeyUp dispatches a keyup event.
func (d *Document) DispatchKeyUp(e KeyboardEvent) int {
	return d.Dispatch(EventKeyUp, e)
}

// DispatchKeyDown dispatches a keydown event.
func (d *Document) DispatchKeyDown(e KeyboardEvent) int {
	return d.Dispatch(EventKeyDown, e)
}

// ListenerCount returns the number of listeners for event.
func (d *Document) ListenerCount(event string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[event])
}

// Events returns the event names that currently have listeners, sorted.
// The host uses it to tell the client which document events to forward.
func (d *Document) Events() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.listeners))
	for name := range d.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
