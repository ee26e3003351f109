// Package middleware provides observability for live sessions.
//
// Every client event handled by a session passes through a chain of
// Middleware before it reaches the handler:
//
//	chain := middleware.Chain(
//	    middleware.OpenTelemetry(),
//	    metrics.Middleware(),
//	)
//	handle := chain(func(ctx context.Context, ev middleware.Event) error {
//	    return dispatch(ev)
//	})
//
// # Prometheus Metrics
//
// NewMetrics registers the following collectors (namespace "vango_modal" by
// default):
//   - events_total: events processed by type and status
//   - event_duration_seconds: event processing duration histogram
//   - event_errors_total: failed events by type and error code
//   - active_sessions: current number of live sessions
//   - modal_transitions_total: modal opens, replacements and closes
//   - modal_open: modals currently shown across sessions
//   - handler_panics_total: panics recovered from event handlers
//
// Expose them with promhttp:
//
//	reg := prometheus.NewRegistry()
//	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # OpenTelemetry
//
// OpenTelemetry starts a span per event using the global tracer provider
// unless another is configured. Modal transitions that happen while the
// event runs are attached to the span with RecordTransition.
package middleware
