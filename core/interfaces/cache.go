// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the byte-level store backing the feed cache.
// Implementations can be Redis, in-memory, SQLite, or any other key/value store.
//
// Example usage:
//
//	err := cache.Set(ctx, "feed:3f2a...", payload, 5*time.Minute)
//
//	data, err := cache.Get(ctx, "feed:3f2a...")
//	if err != nil {
//		// cache miss
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns an error if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// ExpiringCache is implemented by backends that can drop expired entries on demand.
type ExpiringCache interface {
	Cache

	// DeleteExpired removes every entry whose TTL has elapsed.
	DeleteExpired(ctx context.Context) error
}
