// Package ws carries duel payloads over WebSocket text frames: a relay server
// that pairs connections through a multiplayer.Sentinel, and a client Link.
package ws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/wire"
	"github.com/vovakirdan/tui-tetris/internal/multiplayer"
)

// ServerConfig holds relay server settings.
type ServerConfig struct {
	// Address is the host:port to listen on.
	Address string

	// Path is the WebSocket endpoint.
	Path string

	// Origins lists allowed browser origins. "*" allows any origin.
	// Requests without an Origin header are always accepted.
	Origins []string

	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration
}

// DefaultServerConfig returns the relay defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8000",
		Path:         "/ws/tetris",
		Origins:      []string{"http://localhost"},
		WriteTimeout: 10 * time.Second,
	}
}

// Server relays payloads between paired WebSocket connections.
type Server struct {
	config   ServerConfig
	sentinel *multiplayer.Sentinel
	sessions *multiplayer.SessionRegistry
	upgrader websocket.Upgrader
	logger   *log.Logger
	nextID   atomic.Uint64
}

// NewServer creates a relay server.
func NewServer(cfg ServerConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Path == "" {
		cfg.Path = DefaultServerConfig().Path
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultServerConfig().WriteTimeout
	}
	s := &Server{
		config:   cfg,
		sentinel: multiplayer.NewSentinel(),
		sessions: multiplayer.NewSessionRegistry(),
		logger:   logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the HTTP handler serving the relay endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.serveWS)
	return mux
}

// Sentinel exposes the room pool.
func (s *Server) Sentinel() *multiplayer.Sentinel {
	return s.sentinel
}

// Connections returns the number of live connections.
func (s *Server) Connections() int {
	return s.sessions.Count()
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting relay", "address", s.config.Address, "path", s.config.Path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ws: relay server: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down relay")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(s.config.Origins, "*") || slices.Contains(s.config.Origins, origin)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := multiplayer.SessionID(fmt.Sprintf("ws-%d", s.nextID.Add(1)))
	session := multiplayer.NewChannelSession(id, 64)
	s.sessions.Register(session)

	room, err := s.sentinel.Join(session)
	if err != nil {
		s.logger.Error("join failed", "session", id, "error", err)
		s.sessions.Unregister(id)
		conn.Close()
		return
	}
	s.logger.Info("session joined", "session", id, "room", room, "remote", r.RemoteAddr)

	go s.writeLoop(conn, session)
	s.readLoop(conn, session)

	s.sentinel.Leave(id)
	session.Close()
	s.sessions.Unregister(id)
	conn.Close()
	s.logger.Info("session left", "session", id, "room", room)
}

// readLoop relays every text frame to the opponent until the peer disconnects.
func (s *Server) readLoop(conn *websocket.Conn, session *multiplayer.ChannelSession) {
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read ended", "session", session.ID(), "error", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		s.sentinel.Relay(session.ID(), data)
	}
}

// writeLoop is the connection's only writer.
func (s *Server) writeLoop(conn *websocket.Conn, session *multiplayer.ChannelSession) {
	for {
		select {
		case <-session.Done():
			return
		case evt := <-session.Events():
			var data []byte
			switch e := evt.(type) {
			case multiplayer.StatusEvent:
				data = wire.EncodeStatus(e.Connected)
			case multiplayer.PayloadEvent:
				data = e.Data
			default:
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug("write failed", "session", session.ID(), "error", err)
				conn.Close()
				return
			}
		}
	}
}
