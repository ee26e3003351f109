package vango

import (
	"sync"
	"sync/atomic"
)

// Owner represents a component scope.
// Disposing an Owner disposes its child owners and runs its cleanups,
// which is how mounted components release listeners and state on unmount.
//
// Owners form a hierarchy that mirrors the component tree: context values
// set on an Owner are visible to every descendant.
type Owner struct {
	id uint64

	// parent is nil for the root Owner (typically the session).
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	// cleanups are registered via OnCleanup and run in reverse order.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// values stores context values for this scope.
	values   map[any]any
	valuesMu sync.RWMutex

	disposed atomic.Bool

	// Hook slot storage gives hooks stable identity across renders.
	hookSlots   []any
	hookSlotIdx int
	hookMu      sync.Mutex
}

// NewOwner creates a new Owner registered as a child of parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
// If the Owner is already disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// OnCleanup registers fn on the current Owner.
// Outside of an owner scope it does nothing.
func OnCleanup(fn func()) {
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// Dispose disposes this Owner and all its children.
// Children are disposed last-created first, then cleanups run in reverse
// registration order. Dispose is idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// StartRender resets the hook slot index. Hosts call it before each render
// of the component that owns this scope.
func (o *Owner) StartRender() {
	o.hookMu.Lock()
	o.hookSlotIdx = 0
	o.hookMu.Unlock()
}

// UseHookSlot returns the stored value for the current hook slot,
// or nil on the first render (the caller then calls SetHookSlot).
//
//	func useThing() *thing {
//	    owner := vango.CurrentOwner()
//	    if slot := owner.UseHookSlot(); slot != nil {
//	        return slot.(*thing)
//	    }
//	    t := &thing{}
//	    owner.SetHookSlot(t)
//	    return t
//	}
func (o *Owner) UseHookSlot() any {
	o.hookMu.Lock()
	defer o.hookMu.Unlock()

	idx := o.hookSlotIdx
	o.hookSlotIdx++

	if idx < len(o.hookSlots) {
		return o.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the hook slot just consumed by UseHookSlot.
func (o *Owner) SetHookSlot(value any) {
	o.hookMu.Lock()
	defer o.hookMu.Unlock()

	idx := o.hookSlotIdx - 1
	if idx >= 0 && idx < len(o.hookSlots) {
		o.hookSlots[idx] = value
		return
	}
	o.hookSlots = append(o.hookSlots, value)
}
