// Package server exposes the table's event stream to WebSocket
// spectators. Spectators are read only; nothing they send reaches the
// engine.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/game"
)

// envelope is the wire format for a broadcast event
type envelope struct {
	Type      string     `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Data      game.Event `json:"data"`
}

// Server broadcasts table events to connected WebSocket spectators
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu      sync.Mutex
	clients map[*client]bool
}

// NewServer creates a spectator server listening on addr
func NewServer(addr string, logger *log.Logger) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:  logger.WithPrefix("server"),
		clients: make(map[*client]bool),
	}
}

// OnEvent implements game.EventSubscriber. Events are serialized and
// fanned out to every connected spectator. A spectator that cannot keep
// up is dropped rather than stalling the table.
func (s *Server) OnEvent(event game.Event) {
	payload, err := json.Marshal(envelope{
		Type:      string(event.EventType()),
		Timestamp: event.Timestamp(),
		Data:      event,
	})
	if err != nil {
		s.logger.Error("Failed to encode event", "type", event.EventType(), "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			s.logger.Warn("Dropping slow spectator", "remote", c.conn.RemoteAddr())
			delete(s.clients, c)
			close(c.send)
		}
	}
}

// Run serves spectators until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.logger.Info("Starting spectator server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		s.closeClients()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// Handler returns the HTTP routes for the spectator server
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/watch", s.handleWatch)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return cors.AllowAll().Handler(router)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn)

	s.mu.Lock()
	s.clients[c] = true
	total := len(s.clients)
	s.mu.Unlock()
	s.logger.Info("Spectator connected", "remote", conn.RemoteAddr(), "total", total)

	go c.writePump()
	go s.readUntilClosed(c)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// readUntilClosed discards inbound frames so pings and close frames are
// processed, then unregisters the spectator on error.
func (s *Server) readUntilClosed(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	s.unregister(c)
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	s.logger.Info("Spectator disconnected", "remote", c.conn.RemoteAddr(), "total", len(s.clients))
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}

// ClientCount returns the number of connected spectators
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
