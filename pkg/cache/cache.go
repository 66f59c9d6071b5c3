// Package cache stores rendered artifacts so repeated renders of the same
// hierarchy skip graphviz.
//
// Three backends implement [Cache]:
//   - [FileCache]: entries as files under a directory, for the CLI
//   - [RedisCache]: entries as Redis strings, shared by serve processes
//   - [NullCache]: never stores anything, for --no-cache
//
// Keys are derived from the rendered input with [HierarchyKey], so a cache
// never needs invalidating: a changed pass produces a different key.
//
//	c, _ := cache.NewFileCache(dir)
//	svg, err := cache.Fetch(ctx, c, cache.HierarchyKey(dot, "svg"), time.Hour, func() ([]byte, error) {
//	    return nodelink.RenderSVG(ctx, dot)
//	})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Fetch returns the cached entry for key, or calls compute and stores its
// result. Cache errors are not fatal: a failed Get computes, a failed Set
// still returns the computed data.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) (data []byte, hit bool, err error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err = compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
