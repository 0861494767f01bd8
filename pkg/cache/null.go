package cache

import (
	"context"
	"time"
)

// NullCache discards writes and misses every read. It backs the "none"
// autosave setting and stands in whenever a configured backend cannot be
// opened, since caching is never load-bearing.
type NullCache struct{}

// NewNullCache returns the no-op cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the entry.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
