// Package cache provides the autosave store for board documents.
//
// The store is a byte-oriented key/value cache with optional expiry. Three
// backends ship: a file cache for local CLI usage, a Redis cache for shared
// deployments, and a null cache for tests or when autosave is disabled. The
// document-level helpers in autosave.go sit on top and speak the io package's
// envelope format.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Get reports (data, hit, error); a miss is not an error. A ttl of zero
// means the entry never expires. Implementations are safe for concurrent
// use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
