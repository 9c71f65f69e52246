package cache

import (
	"context"
	"time"
)

// Store is a best-effort key/value cache with TTL. Implementations never
// surface transport errors: a failed lookup is a miss and a failed write
// reports false, so callers decide explicitly how to treat unavailability.
type Store interface {
	// Get returns the cached value and true on a hit; false on a miss or
	// any cache failure
	Get(ctx context.Context, key string) (string, bool)
	// Set stores the value with the given TTL and reports whether the
	// write succeeded
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
}

// Disabled is a Store that always misses and drops writes. It is used when
// caching is turned off in configuration.
type Disabled struct{}

// Get always reports a miss
func (Disabled) Get(ctx context.Context, key string) (string, bool) {
	return "", false
}

// Set always drops the write
func (Disabled) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	return false
}
