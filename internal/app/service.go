package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"bouncer-service/internal/config"
	"bouncer-service/internal/http"
	"bouncer-service/internal/infra/cache"
	"bouncer-service/internal/repository/postgres"
)

const serviceName = "bouncer-service"

// Service is the assembled application: HTTP server plus the shared
// infrastructure it owns (database pool, permission cache).
type Service struct {
	config      *config.Config
	log         zerolog.Logger
	db          *postgres.DB
	memoryCache *cache.MemoryPermissionCache
	redisCache  *cache.RedisPermissionCache
	server      *http.Server
	pprof       *stdhttp.Server
}

// NewService creates and initializes a new Service instance
// This is a convenience wrapper around InitializeService
func NewService() (*Service, error) {
	return InitializeService()
}

// Start starts the HTTP server and background tasks, blocking until the
// server stops.
func (s *Service) Start() error {
	if s.memoryCache != nil {
		go s.startCacheSweep()
	}

	if s.pprof != nil {
		go func() {
			s.log.Info().Str("address", s.pprof.Addr).Msg("starting pprof listener")
			if err := s.pprof.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
				s.log.Error().Err(err).Msg("pprof listener failed")
			}
		}()
	}

	address := ":" + s.config.Server.Port
	s.log.Info().Str("address", address).Msg("starting server")
	return s.server.Start(address)
}

// startCacheSweep periodically evicts expired entries from the in-process
// permission cache. Redis handles its own expiry.
func (s *Service) startCacheSweep() {
	ticker := time.NewTicker(cacheSweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.memoryCache.Sweep()
	}
}

// ShutdownTimeout is the configured grace period for Shutdown
func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}

// Shutdown gracefully shuts down the service and releases held resources.
func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)

	if s.pprof != nil {
		if pprofErr := s.pprof.Shutdown(ctx); pprofErr != nil && err == nil {
			err = pprofErr
		}
	}

	if s.redisCache != nil {
		if closeErr := s.redisCache.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	s.db.Close()

	return err
}
