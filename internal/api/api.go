// Package api serves the timeline, budget, preview and insights read models
// over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/timeplan/internal/api/middleware"
	"github.com/alexanderramin/timeplan/internal/service"
)

// Config contains HTTP server configuration.
type Config struct {
	Address         string
	ShutdownTimeout time.Duration
	// RateLimit is requests per second per client on /api/v1; 0 disables it.
	RateLimit float64
	RateBurst int
	// TrustProxy keys rate limits by X-Real-IP instead of the peer address.
	TrustProxy bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.RateLimit > 0 && c.RateBurst == 0 {
		c.RateBurst = int(math.Ceil(c.RateLimit)) * 2
	}
}

// Services are the use cases the HTTP layer reads from.
type Services struct {
	Timeline service.TimelineService
	Projects service.ProjectService
}

// Pinger reports database reachability for /health. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server is the HTTP API server.
type Server struct {
	config   *Config
	services Services
	pinger   Pinger
	logger   *slog.Logger
	limiter  *middleware.RateLimiter
	server   *http.Server
}

// New creates a new API server. pinger may be nil, in which case /health
// only reports that the process is up.
func New(cfg *Config, svcs Services, logger *slog.Logger, pinger Pinger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if svcs.Timeline == nil || svcs.Projects == nil {
		return nil, fmt.Errorf("timeline and project services are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.SetDefaults()

	s := &Server{
		config:   cfg,
		services: svcs,
		pinger:   pinger,
		logger:   logger,
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		s.limiter.TrustProxy = cfg.TrustProxy
	}
	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.setupRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}

// Run starts the HTTP server and blocks until ctx is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http api listening", "address", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http api: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down http api")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
