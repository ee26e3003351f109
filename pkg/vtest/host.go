package vtest

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vango-dev/vango-modal/pkg/render"
	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// Host runs a root component outside of a server.
type Host struct {
	t        testing.TB
	root     func() *vdom.VNode
	owner    *vango.Owner
	doc      *vango.Document
	listener vango.Listener

	renderer *render.Renderer
	tree     *vdom.VNode
	html     string
	dirty    atomic.Bool
	renders  int
}

// Mount renders root once and returns the Host. The root owner is disposed
// when the test finishes.
func Mount(t testing.TB, root func() *vdom.VNode) *Host {
	t.Helper()

	h := &Host{
		t:        t,
		root:     root,
		owner:    vango.NewOwner(nil),
		doc:      vango.NewDocument(),
		renderer: render.NewRenderer(render.RendererConfig{}),
	}
	h.listener = vango.ListenerFunc(func() { h.dirty.Store(true) })
	t.Cleanup(h.Unmount)

	h.Render()
	return h
}

// Render re-renders the root component and returns the HTML.
func (h *Host) Render() string {
	h.t.Helper()

	h.dirty.Store(false)
	h.renders++
	h.owner.StartRender()
	h.renderer.Reset()

	h.run(h.listener, func() {
		h.tree = h.root()
		html, err := h.renderer.RenderToString(h.tree)
		if err != nil {
			h.t.Fatalf("render failed: %v", err)
		}
		h.html = html
	})
	return h.html
}

// Flush re-renders if anything read by the last render changed.
func (h *Host) Flush() string {
	if h.dirty.Load() {
		return h.Render()
	}
	return h.html
}

// Invoke runs fn the way an event handler runs: under the root owner and
// document, without tracking. The Host flushes afterwards.
func (h *Host) Invoke(fn func()) {
	h.run(nil, fn)
	h.Flush()
}

// KeyUp dispatches a document keyup for key.
func (h *Host) KeyUp(key string) {
	h.Invoke(func() {
		h.doc.DispatchKeyUp(vango.KeyboardEvent{Key: key})
	})
}

// Click calls the click handler of the element with the given hydration ID.
func (h *Host) Click(hid string) {
	h.t.Helper()
	h.fire(hid, "onclick", vango.MouseEvent{})
}

// KeyUpOn calls the keyup handler of the element with the given hydration
// ID, as opposed to KeyUp which dispatches on the document.
func (h *Host) KeyUpOn(hid, key string) {
	h.t.Helper()
	h.fire(hid, "onkeyup", vango.KeyboardEvent{Key: key})
}

// ClickID calls the click handler of the element whose id attribute is id.
func (h *Host) ClickID(id string) {
	h.t.Helper()
	node := h.tree.FindByID(id)
	if node == nil {
		h.t.Fatalf("no element with id %q in:\n%s", id, truncate(h.html, 500))
		return
	}
	h.fire(node.HID, "onclick", vango.MouseEvent{})
}

// ClickText calls the click handler of the first button whose text is label.
func (h *Host) ClickText(label string) {
	h.t.Helper()
	node := h.tree.Find(func(n *vdom.VNode) bool {
		return n.Tag == "button" && textOf(n) == label
	})
	if node == nil {
		h.t.Fatalf("no button %q in:\n%s", label, truncate(h.html, 500))
		return
	}
	h.fire(node.HID, "onclick", vango.MouseEvent{})
}

func (h *Host) fire(hid, event string, payload any) {
	h.t.Helper()
	handler, ok := h.renderer.GetHandlers()[hid+"_"+event]
	if !ok {
		h.t.Fatalf("no %s handler for %q", event, hid)
		return
	}
	var err error
	h.Invoke(func() { err = vango.CallHandler(handler, payload) })
	if err != nil {
		h.t.Fatalf("%s handler for %q: %v", event, hid, err)
	}
}

// HTML returns the output of the last render.
func (h *Host) HTML() string { return h.html }

// Tree returns the VNode tree of the last render.
func (h *Host) Tree() *vdom.VNode { return h.tree }

// Renders returns how many times the root component has rendered.
func (h *Host) Renders() int { return h.renders }

// Document returns the host's document event source.
func (h *Host) Document() *vango.Document { return h.doc }

// Owner returns the root owner.
func (h *Host) Owner() *vango.Owner { return h.owner }

// Unmount disposes the root owner. It is safe to call more than once.
func (h *Host) Unmount() {
	h.owner.Dispose()
}

// ExpectContains asserts that the last render contains expected.
func (h *Host) ExpectContains(expected string) {
	h.t.Helper()
	expectContains(h.t, h.html, expected)
}

// ExpectNotContains asserts that the last render does not contain unexpected.
func (h *Host) ExpectNotContains(unexpected string) {
	h.t.Helper()
	expectNotContains(h.t, h.html, unexpected)
}

// ExpectAttribute asserts that the last render contains attr="value".
func (h *Host) ExpectAttribute(attr, value string) {
	h.t.Helper()
	expectAttribute(h.t, h.html, attr, value)
}

func (h *Host) run(l vango.Listener, fn func()) {
	vango.WithOwner(h.owner, func() {
		vango.WithDocument(h.doc, func() {
			vango.WithListener(l, fn)
		})
	})
}

func textOf(n *vdom.VNode) string {
	var b strings.Builder
	var walk func(*vdom.VNode)
	walk = func(n *vdom.VNode) {
		if n == nil {
			return
		}
		if n.Kind == vdom.KindText {
			b.WriteString(n.Text)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
