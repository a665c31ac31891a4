// ABOUTME: Main client for the podfeed library providing feed fetching and parsing
// ABOUTME: Wraps the transport chain, feed cache and cross-feed resolution behind one API

package podfeed

import (
	"context"
	"sync"

	"podfeed-api/core/domain"
	"podfeed-api/core/feed"
	"podfeed-api/core/interfaces"
	"podfeed-api/core/transport"
)

// Client is the main entry point for the podfeed library
type Client struct {
	service *feed.FeedService
	fetcher *transport.Resolver
	config  *Config

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new podfeed client with the given options
func NewClient(options ...Option) (*Client, error) {
	cfg := defaultConfig()

	for _, opt := range options {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Cache:      cfg.Cache,
		HTTPClient: cfg.HTTPClient,
		Logger:     cfg.Logger,
		Metrics:    cfg.Metrics,
	}

	strategies := cfg.Strategies
	if strategies == nil {
		strategies = transport.DefaultStrategies(cfg.ProxyBaseURL)
	}
	fetcher := transport.NewResolver(deps, strategies,
		transport.WithBackoff(cfg.Backoff),
		transport.WithStrategyTimeout(cfg.StrategyTimeout),
	)

	serviceOpts := []feed.Option{
		feed.WithCacheTTL(cfg.CacheTTL),
		feed.WithEnrichment(cfg.EnrichTimeout, cfg.EnrichConcurrency),
	}
	if !cfg.Enrichment {
		serviceOpts = append(serviceOpts, feed.WithoutEnrichment())
	}

	return &Client{
		service: feed.NewFeedService(deps, fetcher, serviceOpts...),
		fetcher: fetcher,
		config:  cfg,
	}, nil
}

// FetchAndParseFeed fetches, parses and enriches a single feed.
//
// Invalid URLs and unparseable documents return an *Error. When every
// transport fails the result is a placeholder feed with Placeholder set.
func (c *Client) FetchAndParseFeed(ctx context.Context, feedURL string, opts ...FeedOption) (*Feed, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	fo := &feedOptions{}
	for _, opt := range opts {
		opt(fo)
	}

	parsed, err := c.service.FetchAndParseFeed(ctx, feedURL, fo.cacheBust)
	if err != nil {
		return nil, classify(err, feedURL)
	}

	if fo.perPage > 0 {
		paged := *parsed
		paged.Episodes = feed.PaginateEpisodes(parsed.Episodes, fo.page, fo.perPage)
		return &paged, nil
	}
	return parsed, nil
}

// ParseFeed parses RSS text without fetching, enriching or caching it
func (c *Client) ParseFeed(xmlText string) (*Feed, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	parsed, err := c.service.ParseFeed(xmlText)
	if err != nil {
		return nil, classify(err, "")
	}
	return parsed, nil
}

// FetchFeedBytes returns the normalized feed text through the transport chain
func (c *Client) FetchFeedBytes(ctx context.Context, feedURL string) (string, error) {
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	text, err := c.fetcher.FetchFeedBytes(ctx, feedURL)
	if err != nil {
		return "", classify(err, feedURL)
	}
	return text, nil
}

// Strategies returns the transport chain in the order it is tried
func (c *Client) Strategies() []string {
	return c.fetcher.Strategies()
}

// Close releases resources held by the client. Calling it twice is safe.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if closer, ok := c.config.Cache.(interface{ Close() error }); ok && c.config.ownsCache {
		return closer.Close()
	}
	return nil
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Feed is a parsed podcast feed
type Feed = domain.ParsedFeed

// Episode is one item of a feed
type Episode = domain.ParsedEpisode

// PodRollItem is a recommended or owned feed referenced by a feed
type PodRollItem = domain.PodRollItem

// ValueBlock holds value-for-value payment data
type ValueBlock = domain.ValueBlock
