// Package server hosts vango components as live sessions.
//
// A Server renders the root component to HTML for the first request and
// then keeps one Session per WebSocket connection. Each Session owns a
// reactive owner, a document event source and the mounted root component.
// Client events are handled one at a time on the session goroutine; after
// each event the root component is re-rendered if anything it read changed
// and the new markup is pushed to the client.
//
//	srv := server.New(server.DefaultServerConfig())
//	srv.SetRootComponent(func() server.Component {
//	    return server.FuncComponent(App)
//	})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Wire protocol (JSON text frames):
//
//	client -> {"t":"event","hid":"h3","ev":"onclick"}
//	client -> {"t":"keyup","key":"Escape"}
//	server -> {"t":"html","html":"..."}
//	server -> {"t":"error","code":"E009","msg":"..."}
package server
