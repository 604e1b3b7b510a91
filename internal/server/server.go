// Package server exposes the darts engine over WebSockets: clients
// create matches from configured presets, register throws and receive
// every committed result for the match they are watching.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

// Server accepts WebSocket connections and routes their messages into
// the match service.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger
	service  *MatchService

	mu          sync.RWMutex
	connections map[*Connection]struct{}
}

// NewServer builds a server around a match service.
func NewServer(addr string, service *MatchService, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Scoreboards are same-host tools; origin checks are the
			// deployment's reverse proxy's problem.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:      logger.WithPrefix("server"),
		service:     service,
		connections: make(map[*Connection]struct{}),
	}
}

// Handler returns the HTTP handler serving /ws and /health, split out
// so tests can mount it on httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled, then drains connections and shuts
// the listener down.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{Addr: s.addr, Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Listening", "addr", s.addr)
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		s.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Upgrade failed", "error", err)
		return
	}

	conn := newConnection(ws, s, s.logger)
	s.mu.Lock()
	s.connections[conn] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)

	conn.start()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client disconnected", "total", total)
}

// broadcastToMatch fans a message out to every connection watching the
// match, except the originator who already got a direct reply.
func (s *Server) broadcastToMatch(matchID string, msg *Message, except *Connection) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn := range s.connections {
		if conn == except || conn.MatchID() != matchID {
			continue
		}
		_ = conn.sendMessage(msg)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		conn.close()
	}
	s.connections = make(map[*Connection]struct{})
}
