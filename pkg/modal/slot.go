package modal

import (
	"sync"

	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// Renderer produces the content of the open modal.
//
// A Renderer returns the node built at Open time on its first call and the
// empty node on every later call.
type Renderer func() *vdom.VNode

type entry struct {
	gen    uint64
	render Renderer
}

// Slot holds at most one open modal.
//
// Reads through IsOpen and Renderer are tracked, so a component that reads
// them re-renders on every open, replace and close. Writes are serialized.
// Observers and listeners run after the write is complete, so they may
// write to the same Slot synchronously.
type Slot struct {
	// mu serializes writes and guards gen and cur.
	mu  sync.Mutex
	gen uint64
	cur *entry

	// version is bumped after every write. It carries no state: readers
	// subscribe to it and then read cur, so notifications that arrive out
	// of order still see the latest write.
	version *vango.Signal[uint64]
	cache   bridge

	obsMu     sync.Mutex
	observers []observer
	nextObs   uint64
}

type observer struct {
	id uint64
	fn func(Transition)
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	s := &Slot{
		version: vango.NewSignal[uint64](0),
	}
	s.version.WithEquals(func(_, _ uint64) bool { return false })
	return s
}

// IsOpen reports whether a modal is shown.
func (s *Slot) IsOpen() bool {
	return s.tracked() != nil
}

// Renderer returns the Renderer of the open modal, or nil.
func (s *Slot) Renderer() Renderer {
	if e := s.tracked(); e != nil {
		return e.render
	}
	return nil
}

// Generation returns the generation of the open modal, or 0 when closed.
// It does not subscribe the current listener.
func (s *Slot) Generation() uint64 {
	if e := s.peek(); e != nil {
		return e.gen
	}
	return 0
}

// Clear closes whatever modal is open. It reports whether one was.
func (s *Slot) Clear(reason CloseReason) bool {
	return s.clear(0, false, reason)
}

// Observe registers fn to receive every transition. The returned func
// removes it.
func (s *Slot) Observe(fn func(Transition)) (unsubscribe func()) {
	s.obsMu.Lock()
	s.nextObs++
	id := s.nextObs
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// tracked returns the current entry and subscribes the current listener.
func (s *Slot) tracked() *entry {
	s.version.Get()
	return s.peek()
}

func (s *Slot) peek() *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// changed notifies the listeners of the Slot. It must be called without
// holding mu.
func (s *Slot) changed() {
	s.version.Update(func(v uint64) uint64 { return v + 1 })
}

// reserve allocates the generation for a modal about to be opened.
func (s *Slot) reserve() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// publish stores node for gen and makes it the open modal, replacing any
// modal that was shown.
func (s *Slot) publish(gen uint64, node *vdom.VNode) {
	s.mu.Lock()
	replaced := s.cur != nil
	s.cache.put(gen, node)
	s.cur = &entry{gen: gen, render: s.rendererFor(gen)}
	s.mu.Unlock()

	kind := Opened
	if replaced {
		kind = Replaced
	}
	s.emit(Transition{Kind: kind, Generation: gen})
	s.changed()
}

// clearIf closes the modal only if gen is still the open one.
func (s *Slot) clearIf(gen uint64, reason CloseReason) bool {
	return s.clear(gen, true, reason)
}

func (s *Slot) clear(gen uint64, match bool, reason CloseReason) bool {
	s.mu.Lock()
	cur := s.cur
	if cur == nil || (match && cur.gen != gen) {
		s.mu.Unlock()
		return false
	}
	s.cache.clear()
	s.cur = nil
	s.mu.Unlock()

	s.emit(Transition{Kind: Closed, Reason: reason, Generation: cur.gen})
	s.changed()
	return true
}

func (s *Slot) rendererFor(gen uint64) Renderer {
	return func() *vdom.VNode {
		if node, ok := s.cache.take(gen); ok && node != nil {
			return node
		}
		return vdom.Nothing()
	}
}

func (s *Slot) emit(t Transition) {
	s.obsMu.Lock()
	obs := make([]observer, len(s.observers))
	copy(obs, s.observers)
	s.obsMu.Unlock()

	for _, o := range obs {
		o.fn(t)
	}
}
