// ABOUTME: Feed cache memoizes parsed feeds over any interfaces.Cache backend
// ABOUTME: Handles cache keys, TTL expiry, ETags and If-None-Match matching

package feedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"podfeed-api/core/domain"
	"podfeed-api/core/interfaces"
)

const (
	// DefaultTTL is how long a parsed feed stays fresh
	DefaultTTL = 5 * time.Minute

	// CacheControl is sent with every cached feed response
	CacheControl = "public, max-age=300, s-maxage=600"
)

var (
	// ErrMiss is returned by Get when nothing usable is stored under the key
	ErrMiss = errors.New("feed cache miss")

	// ErrPlaceholder is returned by Set for placeholder feeds, which are never cached
	ErrPlaceholder = errors.New("placeholder feeds are not cached")
)

// CachedEntry is a parsed feed together with its validator
type CachedEntry struct {
	Feed      *domain.ParsedFeed `json:"feed"`
	ETag      string             `json:"etag"`
	StoredAt  time.Time          `json:"storedAt"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// Fresh reports whether the entry is still within its TTL at now
func (e *CachedEntry) Fresh(now time.Time) bool {
	return e != nil && now.Before(e.ExpiresAt)
}

// Store is the feed cache
type Store struct {
	backend interfaces.Cache
	ttl     time.Duration
	logger  interfaces.Logger
	metrics interfaces.Metrics
	now     func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records hits and misses
func WithMetrics(metrics interfaces.Metrics) Option {
	return func(s *Store) {
		s.metrics = metrics
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps a byte-level backend
func New(backend interfaces.Cache, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		ttl:     DefaultTTL,
		logger:  interfaces.NopLogger{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured time to live
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Key derives the cache key for a feed URL and optional cache-bust token
func Key(feedURL, bust string) string {
	sum := sha256.Sum256([]byte(feedURL + "\x00" + bust))
	return hex.EncodeToString(sum[:])
}

// ETag returns a strong validator for a serialized feed
func ETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// Get returns the fresh entry stored under key, or ErrMiss
func (s *Store) Get(ctx context.Context, key string) (*CachedEntry, error) {
	if s.backend == nil {
		return nil, ErrMiss
	}

	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.record(false)
		return nil, ErrMiss
	}

	var entry CachedEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Feed == nil {
		s.logger.Warn("Discarding unreadable cache entry", map[string]interface{}{
			"key": key,
		})
		_ = s.backend.Delete(ctx, key)
		s.record(false)
		return nil, ErrMiss
	}

	// Backends without native expiry may hand back stale entries.
	if !entry.Fresh(s.now()) {
		_ = s.backend.Delete(ctx, key)
		s.record(false)
		return nil, ErrMiss
	}

	if entry.Feed.Episodes == nil {
		entry.Feed.Episodes = []domain.ParsedEpisode{}
	}
	s.record(true)
	return &entry, nil
}

// Set stores feed under key. An empty etag is derived from the serialized feed.
func (s *Store) Set(ctx context.Context, key string, feed *domain.ParsedFeed, etag string) (*CachedEntry, error) {
	if feed == nil {
		return nil, errors.New("feed cannot be nil")
	}
	if feed.Placeholder {
		return nil, ErrPlaceholder
	}

	if etag == "" {
		body, err := json.Marshal(feed)
		if err != nil {
			return nil, fmt.Errorf("serialize feed: %w", err)
		}
		etag = ETag(body)
	}

	now := s.now()
	entry := &CachedEntry{
		Feed:      feed,
		ETag:      etag,
		StoredAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	if s.backend == nil {
		return entry, nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("serialize cache entry: %w", err)
	}
	if err := s.backend.Set(ctx, key, data, s.ttl); err != nil {
		return entry, fmt.Errorf("store cache entry: %w", err)
	}
	return entry, nil
}

// EvictExpired purges expired entries when the backend supports it. Backends
// with native expiry (Redis) need no sweep.
func (s *Store) EvictExpired(ctx context.Context) error {
	expiring, ok := s.backend.(interfaces.ExpiringCache)
	if !ok {
		return nil
	}
	return expiring.DeleteExpired(ctx)
}

// RunJanitor calls EvictExpired every interval until ctx is done
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.EvictExpired(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("Feed cache sweep failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// NotModified reports whether an If-None-Match header matches the entry's ETag.
// Weak comparison is used, so W/"x" matches "x"; "*" matches any entry.
func NotModified(entry *CachedEntry, ifNoneMatch string) bool {
	if entry == nil || entry.ETag == "" {
		return false
	}
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}

	want := opaqueTag(entry.ETag)
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if opaqueTag(candidate) == want {
			return true
		}
	}
	return false
}

func opaqueTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "W/")
	return strings.Trim(tag, `"`)
}

func (s *Store) record(hit bool) {
	if s.metrics != nil {
		s.metrics.CacheLookup(hit)
	}
}
