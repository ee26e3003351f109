// Package vango provides the reactive core used by vango-modal.
//
// Reactivity is fine-grained and tracked at runtime: reading a Signal while a
// Listener is active (a component render, for example) subscribes that
// listener, and writing the signal marks it dirty.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Owner is a component scope. Owners form a tree that mirrors the component
// tree; they carry context values, hook slots and cleanup functions, and
// disposing an Owner disposes its whole subtree.
//
// Context[T] provides dependency injection through the owner tree:
//
//	var ThemeContext = vango.CreateContext("light")
//
//	ThemeContext.Provider("dark", Header(), Main())
//	theme := ThemeContext.Use()
//
// Document is the document-scoped event source. A session host dispatches
// browser events such as keyup into it and components subscribe through
// UseDocument:
//
//	remove := vango.UseDocument().OnKeyUp(func(e vango.KeyboardEvent) {
//	    if e.Key == vango.KeyEscape { ... }
//	})
//
// # Thread Safety
//
// All primitives are safe for concurrent use. The tracking context (current
// owner, listener, document) is per-goroutine, so work moved to another
// goroutine must re-establish it with WithOwner / WithDocument.
package vango
