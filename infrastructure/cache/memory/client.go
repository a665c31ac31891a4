// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Bounded to a maximum entry count with oldest-first eviction and TTL expiry

package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultMaxEntries is used when no positive bound is given
const DefaultMaxEntries = 100

// ErrNotFound is returned for missing or expired keys
var ErrNotFound = errors.New("key not found")

// entry is what gets stored in go-cache; seq records insertion order
type entry struct {
	value []byte
	seq   uint64
}

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	items      *gocache.Cache
	maxEntries int

	// mu serializes writes so the bound check and insert happen together
	mu  sync.Mutex
	seq uint64
}

// NewMemoryCache creates a cache holding at most maxEntries items. Expired
// items are swept every sweepInterval; a non-positive interval disables the
// background sweep and leaves purging to DeleteExpired.
func NewMemoryCache(maxEntries int, sweepInterval time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		items:      gocache.New(gocache.NoExpiration, sweepInterval),
		maxEntries: maxEntries,
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}

	e := value.(*entry)
	result := make([]byte, len(e.value))
	copy(result, e.value)
	return result, nil
}

// Set stores a value in the cache with the given TTL. A zero TTL never expires.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items.Get(key); !exists {
		if c.items.ItemCount() >= c.maxEntries {
			c.items.DeleteExpired()
		}
		for c.items.ItemCount() >= c.maxEntries {
			if !c.evictOldest() {
				break
			}
		}
	}

	c.seq++
	c.items.Set(key, &entry{value: valueCopy, seq: c.seq}, expiration)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.Delete(key)
	return nil
}

// DeleteExpired purges every expired entry
func (c *MemoryCache) DeleteExpired(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.items.DeleteExpired()
	return nil
}

// Len reports the number of stored entries, expired ones included until purged
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// evictOldest drops the entry stored first. Callers hold c.mu.
func (c *MemoryCache) evictOldest() bool {
	var (
		oldestKey string
		oldestSeq uint64
		found     bool
	)
	for key, item := range c.items.Items() {
		e := item.Object.(*entry)
		if !found || e.seq < oldestSeq {
			oldestKey, oldestSeq, found = key, e.seq, true
		}
	}
	if found {
		c.items.Delete(oldestKey)
	}
	return found
}
