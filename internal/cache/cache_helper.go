package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache errors
var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache not found")
)

// CacheConfig defines TTL and key prefix for a cached data type.
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

// ProfileCacheConfig caches identity-provider profiles. Profiles change
// rarely; authorization decisions never read from this cache.
var ProfileCacheConfig = CacheConfig{
	TTL:    15 * time.Minute,
	Prefix: "idp:profile:",
}

// CacheHelper provides JSON get/set/delete against Redis with a key prefix.
// A nil client degrades gracefully: sets and deletes are no-ops, gets report
// ErrCacheNotAvailable.
type CacheHelper struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCacheHelper(client *redis.Client, config CacheConfig) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: config.Prefix,
		ttl:    config.TTL,
	}
}

func (c *CacheHelper) key(key string) string {
	return c.prefix + key
}

// Get retrieves and unmarshals a cached value into dest.
func (c *CacheHelper) Get(ctx context.Context, key string, dest any) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set marshals and stores a value under the helper's TTL.
func (c *CacheHelper) Set(ctx context.Context, key string, value any) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

// Delete removes keys from the cache.
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	cacheKeys := make([]string, len(keys))
	for i, key := range keys {
		cacheKeys[i] = c.key(key)
	}

	return c.client.Del(ctx, cacheKeys...).Err()
}

// HealthCheck verifies cache connectivity.
func (c *CacheHelper) HealthCheck(ctx context.Context) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	if _, err := c.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}

	return nil
}
