// Package vdom provides the virtual DOM node types used by vango-modal.
//
// VNode is the fundamental building block representing elements, text,
// fragments, components, and raw HTML. Props holds attributes and event
// handlers. Attr and EventHandler are used to build Props.
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H2(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// Arguments may be nil (ignored), Attr, []Attr, *VNode, []*VNode, Component,
// string (text shorthand) or EventHandler.
package vdom
