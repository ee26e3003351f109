// Package vtest provides testing helpers for vango components.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, Greeting("Ada"), "Hello, Ada")
//	vtest.ExpectNotContains(t, Greeting(""), "Hello")
//
// # Host
//
// A Host mounts a root component the way a live session does: one root
// owner, one document, re-render when a signal read during the last render
// changes. Events run under the root owner, so context values provided by
// the root component are visible to handlers.
//
//	h := vtest.Mount(t, App)
//	h.ClickID("open")
//	h.ExpectContains(`aria-modal="true"`)
//	h.KeyUp("Escape")
//	h.ExpectNotContains("vango_modal-overlay")
package vtest
