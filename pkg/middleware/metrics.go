package middleware

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vango-modal/internal/errors"
	"github.com/vango-dev/vango-modal/pkg/modal"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango_modal").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango_modal",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for sessions, events and modals.
type Metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	eventErrors    *prometheus.CounterVec
	activeSessions prometheus.Gauge
	transitions    *prometheus.CounterVec
	modalOpen      prometheus.Gauge
	handlerPanics  prometheus.Counter
}

// NewMetrics creates and registers the collectors. Registering twice on the
// same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of live events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "code"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active live sessions",
			ConstLabels: config.ConstLabels,
		}),

		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modal_transitions_total",
			Help:        "Modal slot transitions by kind and close reason",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "reason"}),

		modalOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modal_open",
			Help:        "Number of modals currently shown",
			ConstLabels: config.ConstLabels,
		}),

		handlerPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handler_panics_total",
			Help:        "Total number of panics recovered from event handlers",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Middleware times and counts every event.
func (m *Metrics) Middleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, ev Event) error {
			start := time.Now()
			err := next(ctx, ev)
			m.eventDuration.WithLabelValues(ev.Type).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.eventErrors.WithLabelValues(ev.Type, errorCode(err)).Inc()
			}
			m.eventsTotal.WithLabelValues(ev.Type, status).Inc()
			return err
		}
	}
}

// SessionStarted records a new live session.
func (m *Metrics) SessionStarted() {
	m.activeSessions.Inc()
}

// SessionEnded records the end of a live session.
func (m *Metrics) SessionEnded() {
	m.activeSessions.Dec()
}

// RecordPanic records a panic recovered from an event handler.
func (m *Metrics) RecordPanic() {
	m.handlerPanics.Inc()
}

// ObserveTransition records a modal transition. It matches the signature
// expected by modal.WithObserver.
func (m *Metrics) ObserveTransition(t modal.Transition) {
	reason := string(t.Reason)
	if reason == "" {
		reason = "none"
	}
	m.transitions.WithLabelValues(t.Kind.String(), reason).Inc()

	switch t.Kind {
	case modal.Opened:
		m.modalOpen.Inc()
	case modal.Closed:
		m.modalOpen.Dec()
	}
}

// errorCode returns the framework error code of err, which keeps the label
// cardinality bounded.
func errorCode(err error) string {
	var ve *errors.VangoError
	if stderrors.As(err, &ve) && ve.Code != "" {
		return ve.Code
	}
	return "internal"
}
