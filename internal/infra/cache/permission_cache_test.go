package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPermissionCacheSetGet(t *testing.T) {
	c := NewMemoryPermissionCache(time.Minute)
	ctx := context.Background()

	_, found := c.Get(ctx, "role-a")
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "role-a", []string{"view_bookings", "create_booking"}))

	permissions, found := c.Get(ctx, "role-a")
	require.True(t, found)
	assert.Equal(t, []string{"view_bookings", "create_booking"}, permissions)
}

func TestMemoryPermissionCacheExpiry(t *testing.T) {
	c := NewMemoryPermissionCache(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "role-a", []string{"view_bookings"}))

	time.Sleep(20 * time.Millisecond)

	_, found := c.Get(ctx, "role-a")
	assert.False(t, found)
}

func TestMemoryPermissionCacheDelete(t *testing.T) {
	c := NewMemoryPermissionCache(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "role-a", []string{"view_bookings"}))
	require.NoError(t, c.Delete(ctx, "role-a"))

	_, found := c.Get(ctx, "role-a")
	assert.False(t, found)
}

func TestMemoryPermissionCacheSweep(t *testing.T) {
	c := NewMemoryPermissionCache(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stale", []string{"view_bookings"}))

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, c.Set(ctx, "fresh", []string{"create_booking"}))

	c.Sweep()

	c.mutex.RLock()
	_, staleKept := c.entries["stale"]
	_, freshKept := c.entries["fresh"]
	c.mutex.RUnlock()

	assert.False(t, staleKept)
	assert.True(t, freshKept)
}

type stubPermissionSource struct {
	permissions []string
	err         error
	calls       int
}

func (s *stubPermissionSource) GetRolePermissions(_ context.Context, _ uuid.UUID) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.permissions, nil
}

func TestCachedPermissionSourceMissThenHit(t *testing.T) {
	source := &stubPermissionSource{permissions: []string{"view_bookings"}}
	cached := NewCachedPermissionSource(source, NewMemoryPermissionCache(time.Minute))

	roleID := uuid.New()
	ctx := context.Background()

	permissions, err := cached.GetRolePermissions(ctx, roleID)
	require.NoError(t, err)
	assert.Equal(t, []string{"view_bookings"}, permissions)
	assert.Equal(t, 1, source.calls)

	permissions, err = cached.GetRolePermissions(ctx, roleID)
	require.NoError(t, err)
	assert.Equal(t, []string{"view_bookings"}, permissions)
	assert.Equal(t, 1, source.calls, "second lookup should be served from cache")
}

func TestCachedPermissionSourceSourceError(t *testing.T) {
	sourceErr := errors.New("connection refused")
	source := &stubPermissionSource{err: sourceErr}
	cached := NewCachedPermissionSource(source, NewMemoryPermissionCache(time.Minute))

	_, err := cached.GetRolePermissions(context.Background(), uuid.New())
	assert.ErrorIs(t, err, sourceErr)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]string, bool) { return nil, false }
func (failingCache) Set(context.Context, string, []string) error {
	return errors.New("cache unavailable")
}
func (failingCache) Delete(context.Context, string) error { return nil }

func TestCachedPermissionSourceCacheWriteFailureIgnored(t *testing.T) {
	source := &stubPermissionSource{permissions: []string{"view_bookings"}}
	cached := NewCachedPermissionSource(source, failingCache{})

	permissions, err := cached.GetRolePermissions(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"view_bookings"}, permissions)
}
