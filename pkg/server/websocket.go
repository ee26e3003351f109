package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// HandleWebSocket upgrades the request and serves a live session on it.
// It blocks until the session ends.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.rootComponent == nil {
		http.Error(w, "no root component", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.SessionConfig.MaxMessageSize)

	sess := newSession(conn, s.rootComponent(), s.config.SessionConfig, s.eventChain(), s.metrics, s.logger)
	s.track(sess)
	defer s.untrack(sess)

	go sess.readLoop()
	sess.Serve()
}

// readLoop reads client frames and queues them for the session goroutine.
// Malformed frames are answered through the event loop as errors.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		msg, err := DecodeClientMessage(data)
		if err != nil {
			msg = ClientMessage{err: err}
		}

		if err := s.QueueEvent(msg); err != nil {
			s.logger.Warn("event dropped", "error", err)
		}
	}
}
