// ABOUTME: Builds the cache backend, HTTP clients and transport chain from configuration
// ABOUTME: Kept apart from main so each piece can be constructed and closed on its own

package main

import (
	"fmt"

	"podfeed-api/api/handlers"
	"podfeed-api/api/middleware"
	"podfeed-api/core/interfaces"
	"podfeed-api/core/transport"
	"podfeed-api/infrastructure/cache/memory"
	"podfeed-api/infrastructure/cache/redis"
	"podfeed-api/infrastructure/cache/sqlite"
	stdhttp "podfeed-api/infrastructure/http/standard"
	"podfeed-api/pkg/config"
)

// cacheBackend is the selected cache with its optional health check and closer
type cacheBackend struct {
	cache  interfaces.Cache
	pinger handlers.Pinger
	close  func() error
}

func newCacheBackend(cfg config.CacheConfig, logger interfaces.Logger) (*cacheBackend, error) {
	switch cfg.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
			"db":      cfg.Redis.DB,
		})
		return &cacheBackend{cache: c, pinger: c, close: c.Close}, nil
	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.SQLitePath, cfg.Memory.SweepInterval)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLitePath,
		})
		return &cacheBackend{cache: c, pinger: c, close: c.Close}, nil
	default:
		c := memory.NewMemoryCache(cfg.Memory.MaxEntries, cfg.Memory.SweepInterval)
		logger.Info("Using memory cache", map[string]interface{}{
			"max_entries": cfg.Memory.MaxEntries,
		})
		return &cacheBackend{cache: c, close: func() error { return nil }}, nil
	}
}

// newHTTPClient builds the outbound client shared by transports and enrichment
func newHTTPClient(cfg config.TransportConfig, logger interfaces.Logger) *stdhttp.StandardHTTPClient {
	return stdhttp.NewStandardHTTPClient(cfg.HTTPTimeout,
		stdhttp.WithUserAgent(cfg.UserAgent),
		stdhttp.WithTransport(middleware.NewLoggingRoundTripper(logger)),
	)
}

// newFetcher builds the transport resolver from TRANSPORTS_FILE when set,
// otherwise from the built-in chain
func newFetcher(cfg config.TransportConfig, deps interfaces.Dependencies) (*transport.Resolver, error) {
	strategies := transport.DefaultStrategies(cfg.ProxyBaseURL)
	backoff := cfg.Backoff

	if cfg.StrategiesFile != "" {
		chain, err := transport.LoadChain(cfg.StrategiesFile)
		if err != nil {
			return nil, err
		}
		strategies = chain.Build()
		if chain.Backoff > 0 {
			backoff = chain.Backoff
		}
	}

	return transport.NewResolver(deps, strategies,
		transport.WithBackoff(backoff),
		transport.WithStrategyTimeout(cfg.StrategyTimeout),
	), nil
}
