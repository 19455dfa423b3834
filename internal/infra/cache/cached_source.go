package cache

import (
	"context"

	"github.com/google/uuid"

	"bouncer-service/internal/repository"
)

// CachedPermissionSource wraps a RolePermissionSource with a cache. Misses
// fall through to the store; results are cached best-effort (a cache write
// failure never fails the lookup).
type CachedPermissionSource struct {
	source repository.RolePermissionSource
	cache  PermissionCache
}

func NewCachedPermissionSource(source repository.RolePermissionSource, cache PermissionCache) *CachedPermissionSource {
	return &CachedPermissionSource{source: source, cache: cache}
}

func (s *CachedPermissionSource) GetRolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	key := roleID.String()

	if permissions, found := s.cache.Get(ctx, key); found {
		return permissions, nil
	}

	permissions, err := s.source.GetRolePermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, permissions)

	return permissions, nil
}
