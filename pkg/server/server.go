package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vango-modal/pkg/middleware"
	"github.com/vango-dev/vango-modal/pkg/render"
	"github.com/vango-dev/vango-modal/pkg/vango"
	"github.com/vango-dev/vango-modal/pkg/vdom"
)

// Route paths served by the Server.
const (
	PathLive    = "/_vango/live"
	PathClient  = "/_vango/client.js"
	PathMetrics = "/metrics"
	PathHealth  = "/healthz"
)

// Server is the HTTP/WebSocket server hosting live sessions.
type Server struct {
	config        *ServerConfig
	rootComponent func() Component
	upgrader      websocket.Upgrader
	logger        *slog.Logger

	registry *prometheus.Registry
	metrics  *middleware.Metrics
	eventMws []middleware.Middleware

	mu       sync.Mutex
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a new Server with the given configuration. Unset fields take
// their defaults.
func New(config *ServerConfig) *Server {
	config = config.withDefaults()

	base := config.Logger
	if base == nil {
		base = slog.Default()
	}
	logger := base.With("component", "server")

	if err := config.ValidateConfig(); err != nil {
		logger.Error("config validation failed", "error", err)
	}

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:   logger,
		sessions: make(map[string]*Session),
	}

	if config.EnableMetrics {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.metrics = middleware.NewMetrics(middleware.WithRegistry(s.registry))
	}

	return s
}

// SetRootComponent sets the root component factory. The factory is called
// once per page render and once per session.
func (s *Server) SetRootComponent(factory func() Component) {
	s.rootComponent = factory
}

// Use appends event middleware. It must be called before serving.
func (s *Server) Use(mws ...middleware.Middleware) {
	s.eventMws = append(s.eventMws, mws...)
}

// Metrics returns the Prometheus collectors, or nil when metrics are off.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

// Registry returns the Prometheus registry, or nil when metrics are off.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) eventChain() middleware.Middleware {
	var mws []middleware.Middleware
	if s.config.EnableTracing {
		mws = append(mws, middleware.OpenTelemetry())
	}
	if s.metrics != nil {
		mws = append(mws, s.metrics.Middleware())
	}
	mws = append(mws, s.eventMws...)
	return middleware.Chain(mws...)
}

// Handler returns the HTTP handler serving the page, the live endpoint,
// the thin client, health and metrics.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", s.servePage)
	r.Get(PathLive, s.HandleWebSocket)
	r.Get(PathClient, s.serveThinClient)
	r.Get(PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.registry != nil {
		r.Handle(PathMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

const pageStyle = `body{margin:0;font-family:system-ui,sans-serif}`

// servePage renders the root component in a throwaway scope and writes
// the full document. The live session re-renders it on connect.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	defer vango.ReleaseGoroutine()

	if s.rootComponent == nil {
		http.Error(w, "no root component", http.StatusServiceUnavailable)
		return
	}

	owner := vango.NewOwner(nil)
	inst := newComponentInstance(s.rootComponent(), owner, vango.NewDocument(), nil, nil)
	defer inst.Dispose()
	defer owner.Dispose()

	body, err := inst.RenderHTML(render.NewRenderer(render.RendererConfig{}))
	if err != nil {
		s.logger.Error("page render failed", "error", err, "request_id", chimw.GetReqID(r.Context()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	page := vdom.Html(vdom.Lang("en"),
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
			vdom.Title(s.config.Title),
			vdom.Style(vdom.Raw(pageStyle)),
		),
		vdom.Body(
			vdom.Div(vdom.ID("vango-root"), vdom.Raw(body)),
			vdom.Script(vdom.Attr{Key: "src", Value: PathClient}, vdom.Attr{Key: "defer", Value: true}),
		),
	)
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(page)
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<!DOCTYPE html>" + html))
}

func (s *Server) track(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.config.ValidateConfig(); err != nil {
		return err
	}

	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
