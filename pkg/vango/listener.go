package vango

// Listener is anything that can be notified when a dependency changes.
// Components implement it to schedule a re-render.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used to deduplicate subscriptions.
	ID() uint64
}

// Cleanup is a function registered to run when an Owner is disposed.
type Cleanup func()

// ListenerFunc adapts a plain function into a Listener with a fresh ID.
// Useful for observing signals outside of a component render.
func ListenerFunc(fn func()) Listener {
	return &funcListener{id: nextID(), fn: fn}
}

type funcListener struct {
	id uint64
	fn func()
}

func (l *funcListener) MarkDirty() { l.fn() }
func (l *funcListener) ID() uint64 { return l.id }
