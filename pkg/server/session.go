package server

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/vango-modal/internal/errors"
	"github.com/vango-dev/vango-modal/pkg/middleware"
	"github.com/vango-dev/vango-modal/pkg/modal"
	"github.com/vango-dev/vango-modal/pkg/render"
	"github.com/vango-dev/vango-modal/pkg/vango"
)

// Session is one live connection. All rendering and event handling of a
// session happens on the goroutine running Serve.
type Session struct {
	// ID is the unique session identifier.
	ID string

	conn   *websocket.Conn
	config *SessionConfig
	logger *slog.Logger

	owner    *vango.Owner
	doc      *vango.Document
	root     *ComponentInstance
	renderer *render.Renderer
	handlers map[string]any

	handle  middleware.Handler
	metrics *middleware.Metrics

	// eventCtx is the context of the event being handled, or nil.
	eventCtx context.Context

	events    chan ClientMessage
	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, root Component, config *SessionConfig, chain middleware.Middleware, metrics *middleware.Metrics, logger *slog.Logger) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		conn:     conn,
		config:   config,
		owner:    vango.NewOwner(nil),
		doc:      vango.NewDocument(),
		renderer: render.NewRenderer(render.RendererConfig{}),
		handlers: make(map[string]any),
		metrics:  metrics,
		events:   make(chan ClientMessage, config.MaxEventQueue),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	s.logger = logger.With("session_id", s.ID)
	s.root = newComponentInstance(root, s.owner, s.doc, s, s.scheduleRender)
	s.handle = chain(s.dispatch)
	return s
}

// Serve renders the root component, sends it, and processes events until
// the session is closed. It must be called once.
func (s *Session) Serve() {
	defer vango.ReleaseGoroutine()
	defer s.dispose()

	if s.metrics != nil {
		s.metrics.SessionStarted()
		defer s.metrics.SessionEnded()
	}
	s.logger.Info("session started")

	if err := s.render(); err != nil {
		s.logger.Error("initial render failed", "error", err)
		s.send(errorMessage(err))
		return
	}

	for {
		select {
		case msg := <-s.events:
			s.handleMessage(msg)
		case <-s.wake:
			s.flush()
		case <-s.done:
			return
		}
	}
}

// Close ends the session. It is safe to call from any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Document returns the session's document event source.
func (s *Session) Document() *vango.Document {
	return s.doc
}

// QueueEvent queues msg for the session goroutine. It fails when the queue
// is full or the session is closed.
func (s *Session) QueueEvent(msg ClientMessage) error {
	select {
	case <-s.done:
		return errors.New("E060").WithDetail("session closed")
	default:
	}

	select {
	case s.events <- msg:
		return nil
	default:
		return errors.New("E060").WithDetail("event queue full")
	}
}

func (s *Session) scheduleRender() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Session) handleMessage(msg ClientMessage) {
	if msg.err != nil {
		s.logger.Warn("invalid client message", "error", msg.err)
		s.send(errorMessage(msg.err))
		return
	}

	ev := middleware.Event{
		SessionID: s.ID,
		Type:      msg.T,
		HID:       msg.HID,
		Name:      msg.Ev,
		Key:       msg.Key,
	}

	if err := s.handle(context.Background(), ev); err != nil {
		s.logger.Warn("event failed", "type", ev.Type, "hid", ev.HID, "error", err)
		s.send(errorMessage(err))
	}
	s.flush()
}

// dispatch runs the handler for ev in the root component's scope.
func (s *Session) dispatch(ctx context.Context, ev middleware.Event) (err error) {
	s.eventCtx = ctx
	defer func() { s.eventCtx = nil }()

	s.root.within(func() {
		defer func() {
			if r := recover(); r != nil {
				err = s.recovered(r)
			}
		}()

		switch ev.Type {
		case middleware.EventTypeEvent:
			handler, ok := s.handlers[ev.HID+"_"+ev.Name]
			if !ok {
				err = errors.New("E009").WithDetail(fmt.Sprintf("no %s handler for %s", ev.Name, ev.HID))
				return
			}
			err = vango.CallHandler(handler, eventPayload(ev))
		case middleware.EventTypeKeyUp:
			s.doc.DispatchKeyUp(vango.KeyboardEvent{Key: ev.Key})
		default:
			err = errors.New("E061").WithDetail("unknown event type " + ev.Type)
		}
	})
	return err
}

// eventPayload builds the value passed to an element handler. The thin
// client only reports the key of keyboard events.
func eventPayload(ev middleware.Event) any {
	switch ev.Name {
	case "onkeyup", "onkeydown":
		return vango.KeyboardEvent{Key: ev.Key}
	}
	return vango.MouseEvent{}
}

func (s *Session) recovered(r any) error {
	if s.metrics != nil {
		s.metrics.RecordPanic()
	}
	s.logger.Error("handler panic", "panic", r, "stack", string(debug.Stack()))

	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}

// flush re-renders the root component if it is dirty.
func (s *Session) flush() {
	if !s.root.IsDirty() {
		return
	}
	if err := s.render(); err != nil {
		s.logger.Error("render failed", "error", err)
		s.send(errorMessage(err))
	}
}

func (s *Session) render() error {
	s.renderer.Reset()
	html, err := s.root.RenderHTML(s.renderer)
	if err != nil {
		return err
	}
	s.handlers = s.renderer.GetHandlers()
	s.send(ServerMessage{T: MsgHTML, HTML: html})
	return nil
}

func (s *Session) send(msg ServerMessage) {
	if s.conn == nil {
		return
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Warn("write failed", "error", err)
		s.Close()
	}
}

func (s *Session) dispose() {
	s.root.Dispose()
	s.owner.Dispose()
	s.logger.Info("session ended")
}

// observeTransition records t in metrics and logs it. The transition is
// added to the current event span only when it happens on the session
// goroutine; transitions from other goroutines have no event to join.
func (s *Session) observeTransition(t modal.Transition) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(t)
	}
	if vango.UseCtx() == any(s) && s.eventCtx != nil {
		middleware.RecordTransition(s.eventCtx, t)
	}
	s.logger.Debug("modal transition", "kind", t.Kind.String(), "reason", string(t.Reason), "generation", t.Generation)
}

// ModalObserver returns a modal observer bound to the session rendering on
// the calling goroutine. Call it while rendering, so that transitions
// emitted later from background goroutines still reach that session:
//
//	modal.UseCollector(modal.WithObserver(server.ModalObserver()))
//
// Outside a session the observer looks the session up when a transition
// is emitted, and drops transitions that happen outside one.
func ModalObserver() func(modal.Transition) {
	bound, _ := vango.UseCtx().(*Session)
	return func(t modal.Transition) {
		s := bound
		if s == nil {
			s, _ = vango.UseCtx().(*Session)
		}
		if s != nil {
			s.observeTransition(t)
		}
	}
}
