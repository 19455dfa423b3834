package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "role_permissions:"
	redisPingTimeout = 5 * time.Second

	errParseRedisURLFmt  = "failed to parse redis URL: %w"
	errPingRedisFmt      = "failed to ping redis: %w"
	errMarshalPermsFmt   = "failed to marshal permissions: %w"
	errUnmarshalPermsFmt = "failed to unmarshal cached permissions: %w"
)

// RedisPermissionCache shares role-permission lookups across processes.
// Selected by REDIS_URL; the in-memory cache is the fallback.
type RedisPermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPermissionCache(url string, ttl time.Duration) (*RedisPermissionCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf(errParseRedisURLFmt, err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf(errPingRedisFmt, err)
	}

	return &RedisPermissionCache{client: client, ttl: ttl}, nil
}

func (c *RedisPermissionCache) Get(ctx context.Context, roleID string) ([]string, bool) {
	payload, err := c.client.Get(ctx, redisKeyPrefix+roleID).Bytes()
	if err != nil {
		return nil, false
	}

	var permissions []string
	if err := json.Unmarshal(payload, &permissions); err != nil {
		return nil, false
	}

	return permissions, true
}

func (c *RedisPermissionCache) Set(ctx context.Context, roleID string, permissions []string) error {
	payload, err := json.Marshal(permissions)
	if err != nil {
		return fmt.Errorf(errMarshalPermsFmt, err)
	}

	return c.client.Set(ctx, redisKeyPrefix+roleID, payload, c.ttl).Err()
}

func (c *RedisPermissionCache) Delete(ctx context.Context, roleID string) error {
	return c.client.Del(ctx, redisKeyPrefix+roleID).Err()
}

func (c *RedisPermissionCache) Close() error {
	return c.client.Close()
}
