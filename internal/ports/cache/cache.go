// Package cache defines the cache interface used by the HTTP boundary.
package cache

import (
	"context"
	"time"
)

// Cache is a string key-value store with TTL. A missing key is reported as
// an empty value, not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
