// ABOUTME: Feed service runs the fetch, parse, enrich and cache pipeline for a feed URL
// ABOUTME: Collapses concurrent identical requests and turns soft failures into placeholder feeds

package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"podfeed-api/core/domain"
	coreerrors "podfeed-api/core/errors"
	"podfeed-api/core/feedcache"
	"podfeed-api/core/interfaces"
	"podfeed-api/core/parser"
	"podfeed-api/core/resolver"
	"podfeed-api/core/transport"
)

// referencePrefix keys unenriched copies of feeds fetched for cross-feed lookups
const referencePrefix = "ref:"

// DefaultLoadTimeout bounds one shared fetch, parse and enrich run
const DefaultLoadTimeout = 60 * time.Second

// Result is a feed together with its cache validator
type Result struct {
	Feed *domain.ParsedFeed

	// ETag is empty for placeholder feeds
	ETag string

	// CacheHit reports whether the feed came from the cache
	CacheHit bool
}

// NotModified reports whether ifNoneMatch matches the result's ETag
func (r *Result) NotModified(ifNoneMatch string) bool {
	if r == nil || r.Feed == nil || r.Feed.Placeholder {
		return false
	}
	return feedcache.NotModified(&feedcache.CachedEntry{ETag: r.ETag}, ifNoneMatch)
}

// FeedService handles feed fetching, parsing and caching
type FeedService struct {
	fetcher  interfaces.FeedFetcher
	parser   *parser.Parser
	cache    *feedcache.Store
	resolver *resolver.Resolver
	logger   interfaces.Logger

	loadTimeout time.Duration
	refTimeout  time.Duration

	group singleflight.Group
}

type serviceOptions struct {
	cacheTTL         time.Duration
	loadTimeout      time.Duration
	enrichTimeout    time.Duration
	enrichLimit      int
	enrichmentEnable bool
}

// Option configures a FeedService
type Option func(*serviceOptions)

// WithCacheTTL overrides the feed cache TTL
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *serviceOptions) {
		o.cacheTTL = ttl
	}
}

// WithLoadTimeout bounds a shared load independently of the callers waiting on it
func WithLoadTimeout(d time.Duration) Option {
	return func(o *serviceOptions) {
		if d > 0 {
			o.loadTimeout = d
		}
	}
}

// WithEnrichment sets the per-lookup timeout and concurrency of cross-feed resolution
func WithEnrichment(timeout time.Duration, concurrency int) Option {
	return func(o *serviceOptions) {
		o.enrichTimeout = timeout
		o.enrichLimit = concurrency
	}
}

// WithoutEnrichment skips cross-feed resolution entirely
func WithoutEnrichment() Option {
	return func(o *serviceOptions) {
		o.enrichmentEnable = false
	}
}

// NewFeedService creates a feed service. deps.Cache may be nil, in which case
// nothing is cached.
func NewFeedService(deps interfaces.Dependencies, fetcher interfaces.FeedFetcher, opts ...Option) *FeedService {
	o := serviceOptions{
		cacheTTL:         feedcache.DefaultTTL,
		loadTimeout:      DefaultLoadTimeout,
		enrichTimeout:    resolver.DefaultTimeout,
		enrichLimit:      resolver.DefaultConcurrency,
		enrichmentEnable: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := deps.Logger
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	s := &FeedService{
		fetcher: fetcher,
		parser:  parser.NewParser(logger, deps.Metrics),
		cache: feedcache.New(deps.Cache,
			feedcache.WithTTL(o.cacheTTL),
			feedcache.WithLogger(logger),
			feedcache.WithMetrics(deps.Metrics),
		),
		logger:      logger,
		loadTimeout: o.loadTimeout,
		refTimeout:  o.enrichTimeout,
	}
	if s.refTimeout <= 0 {
		s.refTimeout = resolver.DefaultTimeout
	}
	if o.enrichmentEnable {
		s.resolver = resolver.New(s, logger, deps.Metrics,
			resolver.WithTimeout(o.enrichTimeout),
			resolver.WithConcurrency(o.enrichLimit),
		)
	}
	return s
}

// Cache exposes the feed cache, e.g. for the janitor
func (s *FeedService) Cache() *feedcache.Store {
	return s.cache
}

// FetchAndParseFeed returns the parsed and enriched feed for feedURL. A
// non-empty cacheBust bypasses entries cached under a different token.
//
// Hard failures (invalid URL, malformed XML, missing channel) are returned as
// errors; transport and payload failures yield a placeholder feed.
func (s *FeedService) FetchAndParseFeed(ctx context.Context, feedURL, cacheBust string) (*domain.ParsedFeed, error) {
	res, err := s.Fetch(ctx, feedURL, cacheBust)
	if err != nil {
		return nil, err
	}
	return res.Feed, nil
}

// Fetch is FetchAndParseFeed with the cache validator attached
func (s *FeedService) Fetch(ctx context.Context, feedURL, cacheBust string) (*Result, error) {
	if err := transport.ValidateFeedURL(feedURL); err != nil {
		return nil, err
	}

	key := feedcache.Key(feedURL, cacheBust)
	if entry, err := s.cache.Get(ctx, key); err == nil {
		return &Result{Feed: entry.Feed, ETag: entry.ETag, CacheHit: true}, nil
	}

	return s.shared(ctx, key, s.loadTimeout, func(loadCtx context.Context) (*Result, error) {
		return s.load(loadCtx, feedURL, key, true)
	})
}

// FetchReferencedFeed implements resolver.FeedSource. Referenced feeds go
// through the same cache but are never enriched themselves.
func (s *FeedService) FetchReferencedFeed(ctx context.Context, feedURL string) (*domain.ParsedFeed, error) {
	if err := transport.ValidateFeedURL(feedURL); err != nil {
		return nil, err
	}

	fullKey := feedcache.Key(feedURL, "")
	if entry, err := s.cache.Get(ctx, fullKey); err == nil {
		return entry.Feed, nil
	}
	refKey := feedcache.Key(referencePrefix+feedURL, "")
	if entry, err := s.cache.Get(ctx, refKey); err == nil {
		return entry.Feed, nil
	}

	res, err := s.shared(ctx, refKey, s.refTimeout, func(loadCtx context.Context) (*Result, error) {
		return s.load(loadCtx, feedURL, refKey, false)
	})
	if err != nil {
		return nil, err
	}
	return res.Feed, nil
}

// FetchFeedBytes returns the raw feed text through the transport chain
func (s *FeedService) FetchFeedBytes(ctx context.Context, feedURL string) (string, error) {
	if s.fetcher == nil {
		return "", errors.New("feed fetcher not configured")
	}
	return s.fetcher.FetchFeedBytes(ctx, feedURL)
}

// ParseFeed parses feed text without fetching, enriching or caching
func (s *FeedService) ParseFeed(xmlText string) (*domain.ParsedFeed, error) {
	return s.parser.ParseFeed(xmlText)
}

// shared runs fn once per key among concurrent callers. fn gets a context
// that keeps the starting caller's values but not its cancellation, bounded by
// timeout; each waiter stops waiting when its own context ends.
func (s *FeedService) shared(ctx context.Context, key string, timeout time.Duration, fn func(context.Context) (*Result, error)) (*Result, error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return fn(loadCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		if out.Err != nil {
			return nil, out.Err
		}
		return out.Val.(*Result), nil
	}
}

func (s *FeedService) load(ctx context.Context, feedURL, key string, enrich bool) (*Result, error) {
	// A concurrent flight may have filled the cache since the caller's miss.
	if entry, err := s.cache.Get(ctx, key); err == nil {
		return &Result{Feed: entry.Feed, ETag: entry.ETag, CacheHit: true}, nil
	}

	text, err := s.FetchFeedBytes(ctx, feedURL)
	if err != nil {
		return s.softFailure(ctx, feedURL, err)
	}

	feed, err := s.parser.ParseFeed(text)
	if err != nil {
		s.logger.Warn("Feed could not be parsed", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
		return nil, err
	}

	if enrich && s.resolver != nil && feed.HasCrossFeedReferences() {
		s.resolver.Enrich(ctx, feed)
	}

	entry, err := s.cache.Set(ctx, key, feed, "")
	if err != nil {
		s.logger.Warn("Failed to cache feed", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
		if entry == nil {
			return &Result{Feed: feed}, nil
		}
	}
	return &Result{Feed: feed, ETag: entry.ETag}, nil
}

// softFailure maps fetch errors onto placeholder feeds. Invalid URLs are
// passed through. ctx is the shared load context, so it only ends when the
// load itself runs out of time.
func (s *FeedService) softFailure(ctx context.Context, feedURL string, err error) (*Result, error) {
	if ctx.Err() != nil {
		s.logger.Warn("Feed load ran out of time", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
		return &Result{Feed: domain.UnavailableFeed()}, nil
	}

	var nonXML *coreerrors.NonXMLResponseError
	switch {
	case coreerrors.IsInvalidURL(err):
		return nil, err
	case coreerrors.IsAllTransportsFailed(err):
		s.logger.Warn("Feed unavailable through every transport", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
		return &Result{Feed: domain.UnavailableFeed()}, nil
	case errors.As(err, &nonXML):
		s.logger.Warn("Feed returned non-XML content", map[string]interface{}{
			"url":           feedURL,
			"decode_failed": nonXML.DecodeFailed,
		})
		return &Result{Feed: domain.InvalidFeed(nonXML.DecodeFailed)}, nil
	default:
		s.logger.Error("Unexpected error fetching feed", map[string]interface{}{
			"url":   feedURL,
			"error": fmt.Sprintf("%v", err),
		})
		return &Result{Feed: domain.ErrorFeed()}, nil
	}
}
