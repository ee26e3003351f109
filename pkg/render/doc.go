// Package render serializes vdom trees to HTML.
//
// The renderer assigns hydration IDs (data-hid) to interactive elements and
// collects their handlers so a live session can route client events back to
// Go functions:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(tree)
//	handlers := r.GetHandlers() // "h1_onclick" -> func()
//
// Attributes are written in sorted order, so output is deterministic for a
// given tree.
package render
