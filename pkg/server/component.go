package server

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/vango-modal/pkg/render"
	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// Component is the interface for renderable components.
type Component interface {
	// Render returns the VNode tree for this component.
	Render() *vdom.VNode
}

// FuncComponent wraps a render function as a Component.
type FuncComponent func() *vdom.VNode

// Render calls the wrapped function.
func (f FuncComponent) Render() *vdom.VNode {
	return f()
}

// ComponentInstance is a mounted component: its owner, the document it
// listens on and the listener that tracks signals read while rendering.
type ComponentInstance struct {
	// InstanceID is the unique instance identifier.
	InstanceID string

	// Component is the component being rendered.
	Component Component

	// Owner scopes hooks and context values of the component.
	Owner *vango.Owner

	doc      *vango.Document
	runtime  any
	dirty    atomic.Bool
	onDirty  func()
	lastTree *vdom.VNode
}

var _ vango.Listener = (*ComponentInstance)(nil)

var componentIDCounter atomic.Uint64

func generateComponentID() string {
	return fmt.Sprintf("c%d", componentIDCounter.Add(1))
}

// newComponentInstance mounts component below parent. runtime is exposed
// to the component through vango.UseCtx; onDirty is called once each time
// the instance becomes dirty.
func newComponentInstance(component Component, parent *vango.Owner, doc *vango.Document, runtime any, onDirty func()) *ComponentInstance {
	return &ComponentInstance{
		InstanceID: generateComponentID(),
		Component:  component,
		Owner:      vango.NewOwner(parent),
		doc:        doc,
		runtime:    runtime,
		onDirty:    onDirty,
	}
}

// within runs fn in the instance's scope without tracking.
func (c *ComponentInstance) within(fn func()) {
	vango.WithCtx(c.runtime, func() {
		vango.WithOwner(c.Owner, func() {
			vango.WithDocument(c.doc, func() {
				vango.WithListener(nil, fn)
			})
		})
	})
}

// RenderHTML renders the component and serializes it with r. Signals read
// while rendering subscribe the instance.
func (c *ComponentInstance) RenderHTML(r *render.Renderer) (string, error) {
	c.dirty.Store(false)

	var (
		html string
		err  error
	)
	vango.WithCtx(c.runtime, func() {
		vango.WithOwner(c.Owner, func() {
			vango.WithDocument(c.doc, func() {
				c.Owner.StartRender()
				vango.WithListener(c, func() {
					tree := c.Component.Render()
					c.lastTree = tree
					html, err = r.RenderToString(tree)
				})
			})
		})
	})
	return html, err
}

// MarkDirty marks the component as needing re-render.
func (c *ComponentInstance) MarkDirty() {
	if c.dirty.CompareAndSwap(false, true) && c.onDirty != nil {
		c.onDirty()
	}
}

// IsDirty returns whether the component needs re-rendering.
func (c *ComponentInstance) IsDirty() bool {
	return c.dirty.Load()
}

// ID implements vango.Listener.
func (c *ComponentInstance) ID() uint64 {
	return c.Owner.ID()
}

// LastTree returns the tree of the last render.
func (c *ComponentInstance) LastTree() *vdom.VNode {
	return c.lastTree
}

// Dispose unmounts the component, running its cleanups in scope.
func (c *ComponentInstance) Dispose() {
	c.within(c.Owner.Dispose)
}
