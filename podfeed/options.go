// ABOUTME: Configuration options for the podfeed client using the functional options pattern
// ABOUTME: Covers cache, HTTP client, logger, transport chain and enrichment settings

package podfeed

import (
	"time"

	"podfeed-api/core/feedcache"
	"podfeed-api/core/interfaces"
	"podfeed-api/core/resolver"
	"podfeed-api/core/transport"
)

// Config holds the client configuration
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics

	// Strategies replaces the default transport chain when non-nil
	Strategies   []transport.Strategy
	ProxyBaseURL string

	Backoff         time.Duration
	StrategyTimeout time.Duration
	CacheTTL        time.Duration

	Enrichment        bool
	EnrichTimeout     time.Duration
	EnrichConcurrency int

	// ownsCache is set when the client created the cache and must close it
	ownsCache bool
}

// Option is a function that configures the client
type Option func(*Config) error

// FeedOption configures a single FetchAndParseFeed call
type FeedOption func(*feedOptions)

type feedOptions struct {
	cacheBust string
	page      int
	perPage   int
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		if cache == nil {
			return NewError(ErrorTypeConfiguration, "cache cannot be nil")
		}
		c.Cache = cache
		c.ownsCache = false
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		if client == nil {
			return NewError(ErrorTypeConfiguration, "HTTP client cannot be nil")
		}
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return NewError(ErrorTypeConfiguration, "logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithMetrics records transport, parser, cache and enrichment counters
func WithMetrics(metrics interfaces.Metrics) Option {
	return func(c *Config) error {
		c.Metrics = metrics
		return nil
	}
}

// WithStrategies replaces the transport chain
func WithStrategies(strategies ...transport.Strategy) Option {
	return func(c *Config) error {
		if len(strategies) == 0 {
			return NewError(ErrorTypeConfiguration, "at least one transport strategy is required")
		}
		c.Strategies = strategies
		return nil
	}
}

// WithProxyBaseURL enables the server-side proxy strategy at the head of the default chain
func WithProxyBaseURL(baseURL string) Option {
	return func(c *Config) error {
		if baseURL != "" {
			if err := transport.ValidateFeedURL(baseURL); err != nil {
				return NewError(ErrorTypeConfiguration, "invalid proxy base URL").WithCause(err)
			}
		}
		c.ProxyBaseURL = baseURL
		return nil
	}
}

// WithBackoff sets the pause between transport strategies
func WithBackoff(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return NewError(ErrorTypeConfiguration, "backoff cannot be negative")
		}
		c.Backoff = d
		return nil
	}
}

// WithStrategyTimeout sets the timeout of strategies without their own
func WithStrategyTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return NewError(ErrorTypeConfiguration, "strategy timeout must be positive")
		}
		c.StrategyTimeout = d
		return nil
	}
}

// WithCacheTTL sets how long parsed feeds stay cached
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return NewError(ErrorTypeConfiguration, "cache TTL must be positive")
		}
		c.CacheTTL = ttl
		return nil
	}
}

// WithEnrichment tunes cross-feed resolution
func WithEnrichment(timeout time.Duration, concurrency int) Option {
	return func(c *Config) error {
		if timeout <= 0 || concurrency < 1 {
			return NewError(ErrorTypeConfiguration, "enrichment needs a positive timeout and concurrency").
				WithContext("timeout", timeout.String()).
				WithContext("concurrency", concurrency)
		}
		c.Enrichment = true
		c.EnrichTimeout = timeout
		c.EnrichConcurrency = concurrency
		return nil
	}
}

// WithoutEnrichment skips podroll and publisher lookups
func WithoutEnrichment() Option {
	return func(c *Config) error {
		c.Enrichment = false
		return nil
	}
}

// WithCacheBust bypasses cache entries stored under a different token
func WithCacheBust(token string) FeedOption {
	return func(o *feedOptions) {
		o.cacheBust = token
	}
}

// WithPagination returns only the page-th window of perPage episodes
func WithPagination(page, perPage int) FeedOption {
	return func(o *feedOptions) {
		o.page = page
		o.perPage = perPage
	}
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		Cache:             DefaultMemoryCache(),
		HTTPClient:        DefaultHTTPClient(),
		Logger:            QuietLogger(),
		Backoff:           transport.DefaultBackoff,
		StrategyTimeout:   transport.DefaultStrategyTimeout,
		CacheTTL:          feedcache.DefaultTTL,
		Enrichment:        true,
		EnrichTimeout:     resolver.DefaultTimeout,
		EnrichConcurrency: resolver.DefaultConcurrency,
		ownsCache:         true,
	}
}

// validateConfig validates the configuration
func validateConfig(c *Config) error {
	if c.HTTPClient == nil {
		return NewError(ErrorTypeConfiguration, "HTTP client is required")
	}
	if c.Logger == nil {
		return NewError(ErrorTypeConfiguration, "logger is required")
	}
	return nil
}
