package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/advisor"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/config"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/database"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/discovery"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/handlers"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/service"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils/ratelimit"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// EconomyHandler serves the dashboard endpoints
	EconomyHandler *handlers.EconomyHandler

	// SystemHandler serves health and version
	SystemHandler *handlers.SystemHandler
}

// Server represents the API server of the bridge.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Connector opens one database session per request
	Connector *database.DriverConnector

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// rateLimiter holds per-IP buckets, nil when rate limiting is disabled
	rateLimiter *ratelimit.Store

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
//
// Parameters:
//   - cfg: Application configuration
//   - build: Version information reported by /version
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
//
// No database connection is opened here; every request dials on its own.
func NewServer(cfg *config.AppConfig, build handlers.BuildInfo) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	connector, err := database.NewConnector(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database connector: %w", err)
	}
	s.Connector = connector

	if build.Version == "" {
		build.Version = cfg.App.Version
	}
	if build.Environment == "" {
		build.Environment = cfg.App.Environment
	}

	economyService := service.NewEconomyService(
		connector,
		discovery.NewCandidates(cfg.Discovery.NameColumns, cfg.Discovery.BalanceColumns, cfg.Discovery.TableKeywords),
		advisor.New(cfg.Advisor),
		cfg.Advisor.Timeout,
	)

	s.Handlers = &Handlers{
		EconomyHandler: handlers.NewEconomyHandler(economyService, cfg.Server.HideErrors),
		SystemHandler:  handlers.NewSystemHandler(connector, build),
	}

	if cfg.RateLimit.RequestsPerMinute > 0 {
		s.rateLimiter = ratelimit.NewStore(
			ratelimit.Rate{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute, Burst: cfg.RateLimit.Burst},
			constants.RateLimiterCleanupInterval,
			constants.RateLimiterIdleExpiry,
		)
	} else {
		log.Warn().Msg("Rate limiting disabled")
	}

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// Start starts the HTTP server and blocks until it fails or a shutdown signal arrives.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			// Shutdown the server immediately if graceful shutdown fails
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown waits for in-flight requests and stops background work.
// There is no pool to close; every request released its own connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
		log.Debug().Int("tracked_clients", s.rateLimiter.Len()).Msg("Rate limiter stopped")
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
