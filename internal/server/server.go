// AngelaMos | 2026
// server.go

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/renankelm10/cursera/internal/config"
	"github.com/renankelm10/cursera/internal/health"
)

type Config struct {
	ServerConfig  config.ServerConfig
	HealthHandler *health.Handler
	Logger        *slog.Logger
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
	health     *health.Handler
	logger     *slog.Logger
}

func New(cfg Config) *Server {
	router := chi.NewRouter()

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ServerConfig.Address(),
			Handler:      router,
			ReadTimeout:  cfg.ServerConfig.ReadTimeout,
			WriteTimeout: cfg.ServerConfig.WriteTimeout,
			IdleTimeout:  cfg.ServerConfig.IdleTimeout,
		},
		router: router,
		health: cfg.HealthHandler,
		logger: cfg.Logger,
	}
}

func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown flips readiness first and waits drainDelay so load balancers
// stop routing before in-flight requests are drained.
func (s *Server) Shutdown(ctx context.Context, drainDelay time.Duration) error {
	if s.health != nil {
		s.health.SetReady(false)
		s.health.SetShutdown(true)
	}

	s.logger.Info("draining connections", "delay", drainDelay)

	select {
	case <-time.After(drainDelay):
	case <-ctx.Done():
	}

	return s.httpServer.Shutdown(ctx)
}
