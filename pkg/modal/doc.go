// Package modal presents one modal dialog at a time on top of the page.
//
// A Collector is mounted once near the root of the component tree. It owns
// a Slot holding at most one open modal and renders the backdrop and the
// scrollable container whenever the Slot is occupied. Any component below
// it creates a Handle for a render function and opens it from an event
// handler:
//
//	var confirmDelete = modal.New(
//	    func(name string, _ struct{}, close modal.CloseFunc) *vdom.VNode {
//	        return vdom.Div(
//	            vdom.H2(vdom.ID("modal-title"), "Delete "+name+"?"),
//	            vdom.Button(vdom.OnClick(close), "Cancel"),
//	        )
//	    },
//	    struct{}{},
//	)
//
//	func App() *vdom.VNode {
//	    return modal.Collector(
//	        vdom.Button(vdom.OnClick(func() { confirmDelete.Open("report.pdf") }), "Delete"),
//	    )
//	}
//
// Opening while a modal is shown replaces it; there is no stacking. The close
// callback handed to the render function only closes the modal it was
// created for, so a callback kept from a replaced modal does nothing. Escape
// on the document closes whatever is open.
//
// Handles find their Slot through SlotContext on the current owner chain.
// Code that runs outside the tree (tests, background goroutines) binds the
// Slot explicitly with Bind or NewBound.
package modal
