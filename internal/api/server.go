package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/api/handlers"
	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
}

// NewRouter returns the api routes backed by svc.
func NewRouter(svc *services.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(tracingMiddleware)

	setupRoutes(r, handlers.New(svc))
	return r
}

func New(cfg *config.ServerConfig, svc *services.Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      NewRouter(svc),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start serves until ctx is done, then shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting api server on %s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
		log.Info().Msg("Shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
