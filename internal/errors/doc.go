// Package errors provides structured, actionable error messages for
// vango-modal.
//
// Every error carries a stable code (e.g. "E200") that maps to a registered
// template with a category, a short message, a longer explanation and a
// documentation link. Call sites add situational detail and a suggestion:
//
//	err := errors.New("E200").
//	    WithDetail("Handle.Open was called for modal \"confirm\"").
//	    WithSuggestion("Render modal.Collector(...) above the component that opens the modal")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E200: Modal collector not mounted
//	//
//	//   Handle.Open was called for modal "confirm"
//	//
//	//   Hint: Render modal.Collector(...) above the component that opens the modal
//	//
//	//   Learn more: https://vango.dev/docs/errors/E200
//
// # Categories
//
//   - runtime: reactive/runtime wiring errors (missing collector or provider)
//   - protocol: live session transport errors
//   - config: configuration loading and validation
//   - cli: command line usage
package errors
