package cache

import (
	"context"
	"sync"
	"time"
)

// PermissionCache is the read-through cache in front of the role
// permission lookup performed at login and token refresh.
type PermissionCache interface {
	Get(ctx context.Context, roleID string) ([]string, bool)
	Set(ctx context.Context, roleID string, permissions []string) error
	Delete(ctx context.Context, roleID string) error
}

type memoryEntry struct {
	permissions []string
	expiryTime  time.Time
}

// MemoryPermissionCache is a thread-safe in-process TTL cache
type MemoryPermissionCache struct {
	entries map[string]memoryEntry
	ttl     time.Duration
	mutex   sync.RWMutex
}

func NewMemoryPermissionCache(ttl time.Duration) *MemoryPermissionCache {
	return &MemoryPermissionCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *MemoryPermissionCache) Get(_ context.Context, roleID string) ([]string, bool) {
	c.mutex.RLock()
	entry, found := c.entries[roleID]
	c.mutex.RUnlock()

	if found && time.Now().Before(entry.expiryTime) {
		return entry.permissions, true
	}

	return nil, false
}

func (c *MemoryPermissionCache) Set(_ context.Context, roleID string, permissions []string) error {
	c.mutex.Lock()
	c.entries[roleID] = memoryEntry{
		permissions: permissions,
		expiryTime:  time.Now().Add(c.ttl),
	}
	c.mutex.Unlock()
	return nil
}

func (c *MemoryPermissionCache) Delete(_ context.Context, roleID string) error {
	c.mutex.Lock()
	delete(c.entries, roleID)
	c.mutex.Unlock()
	return nil
}

// Sweep removes expired entries; run periodically from the app lifecycle
func (c *MemoryPermissionCache) Sweep() {
	now := time.Now()
	c.mutex.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiryTime) {
			delete(c.entries, key)
		}
	}
	c.mutex.Unlock()
}
