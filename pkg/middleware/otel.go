package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vango-modal/pkg/modal"
)

const defaultTracerName = "vango-modal"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vango-modal").
	TracerName string

	// TracerProvider supplies the tracer. Default: otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// Filter determines which events to trace.
	// If nil, all events are traced.
	Filter func(ev Event) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(ev Event) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ev Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that starts a span for every event.
// The span is carried by the context passed to the next handler.
//
// Configure the global provider in main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return func(next Handler) Handler {
		return func(ctx context.Context, ev Event) error {
			if config.Filter != nil && !config.Filter(ev) {
				return next(ctx, ev)
			}

			attrs := []attribute.KeyValue{
				attribute.String("vango.event.type", ev.Type),
				attribute.String("vango.session_id", ev.SessionID),
			}
			if ev.HID != "" {
				attrs = append(attrs,
					attribute.String("vango.hid", ev.HID),
					attribute.String("vango.event.name", ev.Name),
				)
			}
			if ev.Key != "" {
				attrs = append(attrs, attribute.String("vango.key", ev.Key))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(ev)...)
			}

			ctx, span := tracer.Start(ctx, "vango."+ev.Type,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			err := next(ctx, ev)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return err
		}
	}
}

// SpanFromContext returns the span of the event being handled. Outside of
// the middleware it returns a non-recording span.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// RecordTransition adds a span event for t to the span in ctx.
func RecordTransition(ctx context.Context, t modal.Transition) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int64("modal.generation", int64(t.Generation)),
	}
	if t.Reason != "" {
		attrs = append(attrs, attribute.String("modal.reason", string(t.Reason)))
	}
	span.AddEvent("modal."+t.Kind.String(), trace.WithAttributes(attrs...))
}
