package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/framescope/pkg/errors"
)

// DefaultRedisPrefix namespaces cache keys on a shared Redis server.
const DefaultRedisPrefix = "framescope:cache:"

// RedisCache stores entries as Redis strings under a key prefix.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache creates a cache on client. An empty prefix uses
// [DefaultRedisPrefix]. The client is not closed by [RedisCache.Close].
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Get reads key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeNetwork, err, "cache get")
	}
	return data, true, nil
}

// Set writes key. Redis expires the entry after ttl.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "cache set")
	}
	return nil
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "cache delete")
	}
	return nil
}

// Close does nothing; the client belongs to the caller.
func (c *RedisCache) Close() error { return nil }

var _ Cache = (*RedisCache)(nil)
