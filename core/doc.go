// Package core contains the feed pipeline of the Podfeed API.
// It is framework-agnostic and can be used without the HTTP layer.
//
// The core package is organized into several sub-packages:
//
// - domain: Parsed feed, episode, value and podroll models plus placeholder feeds
// - transport: Ordered proxy/direct strategy chain that turns a URL into feed text
// - parser: Namespace-tolerant RSS parser for podcast namespace extensions
// - resolver: Cross-feed enrichment of podroll and publisher references
// - feedcache: TTL cache of parsed feeds with ETag validators
// - feed: Service tying fetch, parse, enrich and cache together
// - errors: Typed errors split into hard and soft failures
// - interfaces: Contracts for external dependencies (cache, HTTP, logger, metrics)
//
// # Design Principles
//
// All external dependencies are injected through interfaces.Dependencies, so
// every stage can be tested with in-memory fakes.
//
// # Usage Example
//
//	import (
//	    "podfeed-api/core/feed"
//	    "podfeed-api/core/interfaces"
//	    "podfeed-api/core/transport"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	fetcher := transport.NewResolver(deps, transport.DefaultStrategies(""))
//	feedService := feed.NewFeedService(deps, fetcher)
//
//	parsed, err := feedService.FetchAndParseFeed(ctx, "https://example.com/feed.xml", "")
package core
