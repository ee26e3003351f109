package middleware

import (
	"context"
	stderrors "errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vango-modal/pkg/modal"
)

type recordingProvider struct {
	trace.TracerProvider
	tracer *recordingTracer
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

type recordingTracer struct {
	trace.Tracer
	spans []*recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{
		Span:  trace.SpanFromContext(context.Background()),
		name:  name,
		attrs: cfg.Attributes(),
	}
	t.spans = append(t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingSpan struct {
	trace.Span
	name   string
	attrs  []attribute.KeyValue
	events []string
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordingSpan) IsRecording() bool { return !s.ended }
func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }
func (s *recordingSpan) SetStatus(c codes.Code, _ string) { s.status = c }
func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}
func (s *recordingSpan) AddEvent(name string, _ ...trace.EventOption) {
	s.events = append(s.events, name)
}

func (s *recordingSpan) attr(key string) string {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func newRecordingProvider() *recordingProvider {
	base := noop.NewTracerProvider()
	return &recordingProvider{
		TracerProvider: base,
		tracer:         &recordingTracer{Tracer: base.Tracer("")},
	}
}

func TestOpenTelemetryStartsSpanPerEvent(t *testing.T) {
	tp := newRecordingProvider()
	mw := OpenTelemetry(
		WithTracerProvider(tp),
		WithAttributeExtractor(func(Event) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	var inside trace.Span
	err := mw(func(ctx context.Context, ev Event) error {
		inside = SpanFromContext(ctx)
		RecordTransition(ctx, modal.Transition{Kind: modal.Opened, Generation: 1})
		return nil
	})(context.Background(), Event{SessionID: "s1", Type: EventTypeEvent, HID: "h2", Name: "onclick"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tp.tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.tracer.spans))
	}
	span := tp.tracer.spans[0]
	if inside != trace.Span(span) {
		t.Error("handler should see the event span in its context")
	}
	if span.name != "vango.event" {
		t.Errorf("name = %q", span.name)
	}
	for key, want := range map[string]string{
		"vango.session_id": "s1",
		"vango.hid":        "h2",
		"vango.event.name": "onclick",
		"test.attr":        "ok",
	} {
		if got := span.attr(key); got != want {
			t.Errorf("attr %s = %q, want %q", key, got, want)
		}
	}
	if !span.ended || span.status != codes.Ok {
		t.Errorf("ended=%v status=%v", span.ended, span.status)
	}
	if len(span.events) != 1 || span.events[0] != "modal.opened" {
		t.Errorf("events = %v", span.events)
	}
}

func TestOpenTelemetryRecordsErrors(t *testing.T) {
	tp := newRecordingProvider()
	wantErr := stderrors.New("boom")

	err := OpenTelemetry(WithTracerProvider(tp))(func(context.Context, Event) error {
		return wantErr
	})(context.Background(), Event{Type: EventTypeKeyUp, Key: "Escape"})

	if !stderrors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	span := tp.tracer.spans[0]
	if span.status != codes.Error || len(span.errs) != 1 {
		t.Errorf("status=%v errs=%v", span.status, span.errs)
	}
	if span.attr("vango.key") != "Escape" {
		t.Errorf("vango.key = %q", span.attr("vango.key"))
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tp := newRecordingProvider()
	called := false

	mw := OpenTelemetry(WithTracerProvider(tp), WithEventFilter(func(ev Event) bool {
		return ev.Type != EventTypeKeyUp
	}))
	_ = mw(func(context.Context, Event) error { called = true; return nil })(context.Background(), Event{Type: EventTypeKeyUp})

	if !called {
		t.Error("filtered events must still reach the handler")
	}
	if len(tp.tracer.spans) != 0 {
		t.Errorf("spans = %d, want 0", len(tp.tracer.spans))
	}
}

func TestRecordTransitionWithoutSpan(t *testing.T) {
	RecordTransition(context.Background(), modal.Transition{Kind: modal.Closed, Reason: modal.ReasonEscape})
}
