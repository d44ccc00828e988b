package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/lox/holdem-table/internal/gameid"
	"github.com/lox/holdem-table/internal/protocol"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server exposes a Session over HTTP and WebSocket
type Server struct {
	cfg      *Config
	session  *Session
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer creates a new WebSocket server
func NewServer(cfg *Config, session *Session, logger *log.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		session: session,
		logger:  logger.WithPrefix("server"),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin:     s.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	return s
}

// Handler returns the routed HTTP handler with CORS and optional access logging
func (s *Server) Handler() http.Handler {
	r := gmux.NewRouter()
	r.Methods(http.MethodGet).Path("/ws").HandlerFunc(s.handleWebSocket)
	r.Methods(http.MethodGet).Path("/health").HandlerFunc(s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	var h http.Handler = c.Handler(r)
	if s.cfg.Server.AccessLog {
		access := s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
		h = handlers.CombinedLoggingHandler(access.Writer(), h)
	}
	return h
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddress(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.session.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// checkOrigin allows non-browser clients, which send no Origin header, and
// browsers from the configured origins
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	allowed := s.cfg.Server.AllowedOrigins
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}

// handleWebSocket upgrades the request and seats the new connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(gameid.New(gameid.PrefixConn), ws, s.cfg.Table.SendBuffer, s.session.Handle, s.logger)
	if _, err := s.session.Connect(conn); err != nil {
		s.logger.Warn("Rejecting connection", "conn", conn.ID(), "error", err)
		if msg, merr := protocol.NewMessage(protocol.MessageTypeError, protocol.NewErrorData(err)); merr == nil {
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteJSON(msg)
		}
		_ = conn.Close()
		return
	}
	conn.Start()

	go func() {
		<-conn.Done()
		s.session.Disconnect(conn)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
