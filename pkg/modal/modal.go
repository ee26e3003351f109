package modal

import (
	"sync"

	"github.com/vango-dev/vango-modal/internal/errors"
	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// CloseFunc closes the modal it was created for.
type CloseFunc func()

// RenderFunc builds the content of a modal from the argument given to Open,
// the Handle's context value and the close callback for this opening.
type RenderFunc[A, C any] func(arg A, ctx C, close CloseFunc) *vdom.VNode

// SlotContext carries the Slot of the nearest mounted Collector.
var SlotContext = vango.CreateContext[*Slot](nil).Named("modal.SlotContext")

// Handle opens one kind of modal. A is the argument type accepted by Open
// and C the context value passed to every rendering.
//
// Handles are small values; copy them freely.
type Handle[A, C any] struct {
	render  RenderFunc[A, C]
	context C
	slot    *Slot
}

// New creates a Handle. It has no side effects; the Slot is looked up when
// the Handle is opened or closed.
func New[A, C any](render RenderFunc[A, C], ctx C) Handle[A, C] {
	return Handle[A, C]{render: render, context: ctx}
}

// NewNoContext creates a Handle whose render function takes no context value.
func NewNoContext[A any](render func(arg A, close CloseFunc) *vdom.VNode) Handle[A, struct{}] {
	return New[A, struct{}](func(arg A, _ struct{}, close CloseFunc) *vdom.VNode {
		return render(arg, close)
	}, struct{}{})
}

// NewBound creates a Handle that always uses slot.
func NewBound[A, C any](slot *Slot, render RenderFunc[A, C], ctx C) Handle[A, C] {
	return New(render, ctx).Bind(slot)
}

// Use creates a Handle during a component render and binds it to the Slot
// provided above the component, if any. The returned Handle then keeps
// working from goroutines and handlers that run without an owner.
func Use[A, C any](render RenderFunc[A, C], ctx C) Handle[A, C] {
	h := New(render, ctx)
	if slot, ok := SlotContext.Lookup(); ok && slot != nil {
		h.slot = slot
	}
	return h
}

// Bind returns a copy of h that uses slot instead of the ambient lookup.
func (h Handle[A, C]) Bind(slot *Slot) Handle[A, C] {
	h.slot = slot
	return h
}

// IsBound reports whether h carries its own Slot.
func (h Handle[A, C]) IsBound() bool {
	return h.slot != nil
}

// Context returns the context value passed to every rendering.
func (h Handle[A, C]) Context() C {
	return h.context
}

// Open renders the modal for arg and shows it, replacing any open modal.
//
// The render function runs exactly once, untracked, before the modal is
// published. Open panics with E200 if no Slot can be found.
func (h Handle[A, C]) Open(arg A) {
	slot := h.resolve()

	gen := slot.reserve()
	closeFn := CloseFunc(func() { slot.clearIf(gen, ReasonCallback) })

	var node *vdom.VNode
	vango.Untracked(func() {
		node = h.render(arg, h.context, closeFn)
	})

	slot.publish(gen, node)
}

// Close closes whatever modal is open in the Handle's Slot, including modals
// opened through other Handles. It panics with E200 if no Slot can be found.
func (h Handle[A, C]) Close() {
	h.resolve().Clear(ReasonHandle)
}

func (h Handle[A, C]) resolve() *Slot {
	if h.slot != nil {
		return h.slot
	}
	if slot, ok := SlotContext.Lookup(); ok && slot != nil {
		return slot
	}
	panic(errors.New("E200").
		WithSuggestion("Mount modal.Collector above the component, or bind the handle with Bind").
		WithExample("modal.Collector(App())"))
}

// Component wraps fn so that its output is mounted as a component node.
// The body runs once, the first time the node is rendered, and the result
// is reused afterwards.
func Component[A, C any](fn RenderFunc[A, C]) RenderFunc[A, C] {
	return func(arg A, ctx C, close CloseFunc) *vdom.VNode {
		c := &onceComponent{render: func() *vdom.VNode { return fn(arg, ctx, close) }}
		return &vdom.VNode{Kind: vdom.KindComponent, Comp: c}
	}
}

type onceComponent struct {
	once   sync.Once
	render func() *vdom.VNode
	node   *vdom.VNode
}

func (c *onceComponent) Render() *vdom.VNode {
	c.once.Do(func() { c.node = c.render() })
	return c.node
}
