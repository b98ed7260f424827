package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// ReadinessProbe reports whether the bot is currently able to receive updates.
type ReadinessProbe interface {
	Ready() bool
}

// Server is the admin HTTP surface: liveness and readiness probes.
type Server struct {
	addr  string
	ready ReadinessProbe
	log   *zerolog.Logger
}

func NewServer(port int, ready ReadinessProbe, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "AdminServer").Logger()
	return &Server{addr: fmt.Sprintf(":%d", port), ready: ready, log: &l}
}

func (s *Server) Name() string { return "admin-http" }

// Handler builds the router with the guard middlewares applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	return Chain(r, TraceID(), RequestLog(s.log), Recover(s.log), Timeout(shutdownTimeout))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: shutdownTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("admin server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown admin server: %w", err)
		}
		s.log.Info().Msg("admin server stopped")
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, http.StatusOK, "ok")
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.ready == nil || !s.ready.Ready() {
		writeStatus(w, http.StatusServiceUnavailable, "polling")
		return
	}
	writeStatus(w, http.StatusOK, "ready")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
