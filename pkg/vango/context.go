package vango

import (
	"github.com/vango-dev/vango-modal/internal/errors"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// Context provides dependency injection through the component tree.
// Create a context with CreateContext, provide values with Provider,
// and consume values with Use.
//
// Example:
//
//	var ThemeContext = vango.CreateContext("light")
//
//	func App() *vdom.VNode {
//	    return ThemeContext.Provider("dark",
//	        Header(),
//	        Main(),
//	    )
//	}
//
//	func Button() *vdom.VNode {
//	    theme := ThemeContext.Use()
//	    return vdom.Button(vdom.Class("btn-" + theme))
//	}
type Context[T any] struct {
	// key uniquely identifies this context in the owner value map
	key any

	// name is used in diagnostics when a required provider is missing
	name string

	// defaultValue is returned when no provider is found
	defaultValue T
}

// contextKey wraps Context to create a unique key type
type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a new context with the given default value.
//
//	var ThemeContext = vango.CreateContext("light")
//	var UserContext = vango.CreateContext[*User](nil)
func CreateContext[T any](defaultValue T) *Context[T] {
	ctx := &Context[T]{
		defaultValue: defaultValue,
	}
	ctx.key = contextKey[T]{ctx: ctx}
	return ctx
}

// Named sets the name reported by MustUse when no provider is found.
func (c *Context[T]) Named(name string) *Context[T] {
	c.name = name
	return c
}

// Provider stores value on the current owner and returns the children as a
// fragment. Descendant components can access the value via Use().
func (c *Context[T]) Provider(value T, children ...any) *vdom.VNode {
	c.Provide(value)
	return vdom.Fragment(children...)
}

// Provide stores value on the current owner without rendering anything.
func (c *Context[T]) Provide(value T) {
	if owner := getCurrentOwner(); owner != nil {
		owner.SetValue(c.key, value)
	}
}

// Lookup retrieves the value from the nearest provider.
// ok is false when no provider is found.
func (c *Context[T]) Lookup() (value T, ok bool) {
	owner := getCurrentOwner()
	if owner == nil {
		return c.defaultValue, false
	}
	raw := owner.GetValue(c.key)
	if raw == nil {
		return c.defaultValue, false
	}
	typed, ok := raw.(T)
	if !ok {
		return c.defaultValue, false
	}
	return typed, true
}

// Use retrieves the context value from the nearest Provider ancestor.
// If no Provider is found, returns the default value.
func (c *Context[T]) Use() T {
	value, _ := c.Lookup()
	return value
}

// MustUse is like Use but panics with a coded error when no provider is
// found. Use it for values whose absence is a wiring bug.
func (c *Context[T]) MustUse() T {
	value, ok := c.Lookup()
	if !ok {
		name := c.name
		if name == "" {
			name = "unnamed context"
		}
		panic(errors.New("E201").
			WithDetail("No provider for " + name + " was found above the current component.").
			WithSuggestion("Wrap the component tree in the matching Provider"))
	}
	return value
}

// Default returns the default value for this context.
func (c *Context[T]) Default() T {
	return c.defaultValue
}
