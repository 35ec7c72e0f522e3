// Package api exposes the task and event stores over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

const (
	tasksPath  = "/api/tasks"
	eventsPath = "/api/events"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves the REST API backed by a Store.
type Server struct {
	store  store.Store
	cfg    model.ServerConfig
	logger *slog.Logger
}

// NewServer wires the API to st. The store's lifetime is owned by the caller.
func NewServer(st store.Store, cfg model.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, cfg: cfg, logger: logger}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+tasksPath, s.listTasks)
	mux.HandleFunc("POST "+tasksPath, s.createTask)
	mux.HandleFunc("GET "+tasksPath+"/{id}", s.getTask)
	mux.HandleFunc("PUT "+tasksPath+"/{id}", s.updateTask)
	mux.HandleFunc("PATCH "+tasksPath+"/{id}", s.updateTask)
	mux.HandleFunc("DELETE "+tasksPath+"/{id}", s.deleteTask)

	mux.HandleFunc("GET "+eventsPath, s.listEvents)
	mux.HandleFunc("POST "+eventsPath, s.createEvent)
	mux.HandleFunc("GET "+eventsPath+"/{id}", s.getEvent)
	mux.HandleFunc("PUT "+eventsPath+"/{id}", s.updateEvent)
	mux.HandleFunc("PATCH "+eventsPath+"/{id}", s.updateEvent)
	mux.HandleFunc("DELETE "+eventsPath+"/{id}", s.deleteEvent)

	mux.HandleFunc("GET /healthz", s.health)

	if s.cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	var h http.Handler = mux
	h = withCORS(s.cfg.CORSOrigins, h)
	h = withRecovery(s.logger, h)
	h = withLogging(s.logger, h)
	h = withRequestID(h)
	return h
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.ShutdownTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "health check failed", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
