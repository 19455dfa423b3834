package app

import (
	"context"
	"fmt"
	"time"

	"bouncer-service/internal/audit"
	"bouncer-service/internal/auth"
	"bouncer-service/internal/config"
	"bouncer-service/internal/http"
	"bouncer-service/internal/http/handler"
	"bouncer-service/internal/infra/cache"
	"bouncer-service/internal/rbac"
	"bouncer-service/internal/rbac/presets"
	"bouncer-service/internal/repository/postgres"
	"bouncer-service/internal/storage/s3"
	"bouncer-service/pkg/logger"
	"bouncer-service/pkg/profiling"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewFromEnv(serviceName)

	db, err := postgres.New(context.Background(), &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	auditLog := audit.NewLogger(db.Pool)

	permissionCache, redisCache, err := newPermissionCache(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	permissions := cache.NewCachedPermissionSource(roleRepo, permissionCache)

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	resolver, err := rbac.NewResolver(presets.Booking())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build route permission table: %w", err)
	}

	exempt := presets.ExemptRoutes()
	authMiddleware := auth.NewMiddleware(tokens, exempt)
	rbacMiddleware := auth.NewRBACMiddleware(resolver, exempt)

	var avatarSigner handler.AvatarURLSigner
	if cfg.AvatarStorageEnabled() {
		client, err := s3.NewClient(&cfg.AWS, cfg.App.AvatarURLExpiry)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create avatar storage client: %w", err)
		}
		avatarSigner = client
	} else {
		log.Info().Msg("avatar storage not configured, avatar uploads disabled")
	}

	server := http.NewServer(&http.ServerDependencies{
		Config:         cfg,
		Logger:         log,
		UserRepo:       userRepo,
		RoleRepo:       roleRepo,
		Permissions:    permissions,
		Tokens:         tokens,
		AuthMiddleware: authMiddleware,
		RBACMiddleware: rbacMiddleware,
		AvatarSigner:   avatarSigner,
		AuditLog:       auditLog,
		AuditReader:    auditLog,
	})

	service := &Service{
		config:      cfg,
		log:         log,
		db:          db,
		memoryCache: asMemoryCache(permissionCache),
		redisCache:  redisCache,
		server:      server,
	}
	if cfg.App.PprofAddr != "" {
		service.pprof = profiling.NewServer(cfg.App.PprofAddr)
	}

	return service, nil
}

// newPermissionCache selects the cache backend. A configured Redis URL
// wins; otherwise permissions are cached in process.
func newPermissionCache(cfg *config.Config) (cache.PermissionCache, *cache.RedisPermissionCache, error) {
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisPermissionCache(cfg.Redis.URL, cfg.App.PermissionCacheTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache, redisCache, nil
	}

	return cache.NewMemoryPermissionCache(cfg.App.PermissionCacheTTL), nil, nil
}

func asMemoryCache(c cache.PermissionCache) *cache.MemoryPermissionCache {
	if mem, ok := c.(*cache.MemoryPermissionCache); ok {
		return mem
	}
	return nil
}

const cacheSweepInterval = 5 * time.Minute
