package modal

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// Element identifiers and defaults of the collector markup.
const (
	CollectorClass    = "vango_modal-collector"
	OverlayID         = "vango_modal-overlay"
	NodeID            = "vango_modal-node"
	DefaultLabelledBy = "modal-title"
	DefaultZIndex     = 2147483647
	DefaultBackdrop   = "rgba(0, 0, 0, .25)"
)

// Option configures a Collector.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	observers  []func(Transition)
	labelledBy string
	zIndex     int
	backdrop   string
}

// WithLogger sets the logger used for transition and lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver registers fn on the collector's Slot.
func WithObserver(fn func(Transition)) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

// WithLabelledBy sets the id referenced by aria-labelledby on the dialog.
func WithLabelledBy(id string) Option {
	return func(o *options) { o.labelledBy = id }
}

// WithZIndex sets the stacking level of the dialog. The scroll container
// sits one level below it.
func WithZIndex(z int) Option {
	return func(o *options) { o.zIndex = z }
}

// WithBackdrop sets the CSS background of the overlay.
func WithBackdrop(color string) Option {
	return func(o *options) { o.backdrop = color }
}

// CollectorState is a mounted modal collector: a Slot, the document keyup
// listener that closes it on Escape, and the markup that shows it.
type CollectorState struct {
	opts   options
	slot   *Slot
	logger *slog.Logger

	mu          sync.Mutex
	removeKeyUp func()

	// shownGen and shown memoize the overlay content per opened modal, so
	// re-rendering the page does not call the Renderer again.
	shownGen uint64
	shown    *vdom.VNode
}

// NewCollector creates a collector with its own empty Slot. The caller
// mounts it on a document with Mount and renders it with View.
func NewCollector(opts ...Option) *CollectorState {
	o := options{
		labelledBy: DefaultLabelledBy,
		zIndex:     DefaultZIndex,
		backdrop:   DefaultBackdrop,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	c := &CollectorState{
		opts:   o,
		slot:   NewSlot(),
		logger: o.logger.With("component", "modal"),
	}
	c.slot.Observe(c.logTransition)
	for _, fn := range o.observers {
		c.slot.Observe(fn)
	}
	return c
}

// UseCollector returns the collector of the current component, creating
// and mounting it on first render. The Slot is provided through SlotContext
// and the collector is unmounted when the component's owner is disposed.
//
// Outside of an owner it returns a fresh, unmounted collector.
func UseCollector(opts ...Option) *CollectorState {
	owner := vango.CurrentOwner()
	if owner == nil {
		return NewCollector(opts...)
	}
	if v := owner.UseHookSlot(); v != nil {
		return v.(*CollectorState)
	}

	c := NewCollector(opts...)
	owner.SetHookSlot(c)
	SlotContext.Provide(c.slot)
	c.Mount(vango.UseDocument())
	owner.OnCleanup(c.Unmount)
	return c
}

// Collector mounts a collector in the current component and renders
// children followed by the modal region.
func Collector(children ...any) *vdom.VNode {
	return UseCollector().View(children...)
}

// Slot returns the collector's Slot.
func (c *CollectorState) Slot() *Slot {
	return c.slot
}

// Mount starts listening for Escape on doc. Mounting again moves the
// listener to the new document. A nil doc is ignored.
func (c *CollectorState) Mount(doc *vango.Document) {
	if doc == nil {
		return
	}

	c.mu.Lock()
	prev := c.removeKeyUp
	c.removeKeyUp = doc.OnKeyUp(c.HandleKeyUp)
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
	c.logger.Debug("collector mounted")
}

// Unmount removes the keyup listener and closes any open modal.
func (c *CollectorState) Unmount() {
	c.mu.Lock()
	remove := c.removeKeyUp
	c.removeKeyUp = nil
	c.shownGen, c.shown = 0, nil
	c.mu.Unlock()

	if remove != nil {
		remove()
	}
	c.slot.Clear(ReasonUnmount)
	c.logger.Debug("collector unmounted")
}

// HandleKeyUp closes the open modal when e is the Escape key.
func (c *CollectorState) HandleKeyUp(e vango.KeyboardEvent) {
	if e.Key != vango.KeyEscape {
		return
	}
	c.slot.Clear(ReasonEscape)
}

// View renders children followed by the dialog region. It reads the Slot,
// so the calling component re-renders whenever a modal opens or closes.
func (c *CollectorState) View(children ...any) *vdom.VNode {
	cur := c.slot.tracked()

	dialog := vdom.Div(
		vdom.Role("dialog"),
		vdom.Styles(
			"position", "relative",
			"z-index", strconv.Itoa(c.opts.zIndex),
		),
		vdom.AriaModal(cur != nil),
		vdom.AriaLabelledBy(c.opts.labelledBy),
		c.region(cur),
	)

	return vdom.Div(
		vdom.Class(CollectorClass),
		vdom.Styles("display", "contents"),
		vdom.Fragment(children...),
		dialog,
	)
}

// region renders the backdrop and scroll container for cur, or nothing
// when the slot is empty.
func (c *CollectorState) region(cur *entry) *vdom.VNode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur == nil {
		c.shownGen, c.shown = 0, nil
		return nil
	}
	if cur.gen != c.shownGen {
		c.shownGen = cur.gen
		c.shown = cur.render()
	}

	overlay := vdom.Div(
		vdom.AriaHidden(true),
		vdom.ID(OverlayID),
		vdom.Styles(
			"position", "fixed",
			"top", "0",
			"right", "0",
			"bottom", "0",
			"left", "0",
			"background", c.opts.backdrop,
		),
	)

	container := vdom.Div(
		vdom.ID(NodeID),
		vdom.Styles(
			"position", "fixed",
			"top", "0",
			"right", "0",
			"bottom", "0",
			"left", "0",
			"z-index", strconv.Itoa(c.opts.zIndex-1),
			"width", "100vw",
			"overflow-y", "auto",
		),
		vdom.Div(
			vdom.Styles(
				"padding", "1rem",
				"justify-content", "center",
				"align-items", "center",
				"min-height", "100%",
				"display", "flex",
			),
			c.shown,
		),
	)

	return vdom.Fragment(overlay, container)
}

func (c *CollectorState) logTransition(t Transition) {
	if t.Kind == Closed {
		c.logger.Debug("modal closed", "generation", t.Generation, "reason", string(t.Reason))
		return
	}
	c.logger.Debug("modal "+t.Kind.String(), "generation", t.Generation)
}
