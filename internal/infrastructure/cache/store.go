// Package cache provides short-lived key/value caches with per-entry TTL.
package cache

import (
	"context"
	"time"
)

// Store caches opaque values by key
type Store interface {
	// Get returns the value and true on a hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for ttl. A zero ttl keeps the entry until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
