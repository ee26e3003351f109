package vango

import (
	"runtime"
	"sync"
)

// TrackingContext holds the reactive state for a goroutine.
// Each goroutine has its own tracking context so sessions can render
// concurrently without sharing the current owner or listener.
type TrackingContext struct {
	// currentOwner is the Owner that will own newly created state and
	// is the starting point for context lookups.
	currentOwner *Owner

	// currentListener is what's currently tracking dependencies.
	// nil means reads don't create subscriptions.
	currentListener Listener

	// currentDocument is the document-scoped event source of the session
	// being rendered or handled on this goroutine.
	currentDocument *Document

	// currentCtx holds the host's runtime context (e.g. a server session).
	// Stored as any to avoid an import cycle with the host package.
	currentCtx any
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the header of runtime.Stack ("goroutine <id> [...]").
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *TrackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext)
	}

	ctx := &TrackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// getCurrentListener returns the current listener being tracked.
func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener sets the current listener and returns the previous one.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// getCurrentOwner returns the current owner for the goroutine.
func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// setCurrentOwner sets the current owner and returns the previous one.
func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// CurrentOwner returns the Owner active on this goroutine, or nil.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// WithOwner runs fn with owner as the current owner.
//
// Example:
//
//	go func() {
//	    WithOwner(parentOwner, func() {
//	        theme := ThemeContext.Use()
//	    })
//	}()
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with l tracking every signal read.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// Untracked runs fn with dependency tracking disabled.
func Untracked(fn func()) {
	WithListener(nil, fn)
}

// UseDocument returns the document-scoped event source for the current
// render or event handler. Returns nil outside of a host.
func UseDocument() *Document {
	return getTrackingContext().currentDocument
}

// WithDocument runs fn with doc as the current document.
func WithDocument(doc *Document, fn func()) {
	ctx := getTrackingContext()
	old := ctx.currentDocument
	ctx.currentDocument = doc
	defer func() { ctx.currentDocument = old }()
	fn()
}

// getCurrentCtx returns the host runtime context, or nil.
func getCurrentCtx() any {
	return getTrackingContext().currentCtx
}

// WithCtx runs fn with c as the host runtime context.
func WithCtx(c any, fn func()) {
	ctx := getTrackingContext()
	old := ctx.currentCtx
	ctx.currentCtx = c
	defer func() { ctx.currentCtx = old }()
	fn()
}

// cleanupGoroutineContext removes the tracking context for the current
// goroutine. Hosts call it when a session goroutine exits.
func cleanupGoroutineContext() {
	trackingContexts.Delete(getGoroutineID())
}

// ReleaseGoroutine drops the tracking state of the calling goroutine.
// Any goroutine that renders or handles events outside a session loop
// should defer it.
func ReleaseGoroutine() {
	cleanupGoroutineContext()
}

// TrackedGoroutines reports how many goroutines currently hold tracking
// state.
func TrackedGoroutines() int {
	n := 0
	trackingContexts.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
