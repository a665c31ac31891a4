// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: Bounded in-memory cache on patrickmn/go-cache
// - cache/redis: Redis cache on go-redis
// - cache/sqlite: File-backed cache on go-sqlite3 with an expiry sweeper
// - http/standard: net/http client sending feed-friendly headers
// - logger/logruslog, logger/zaplog: Structured logger backends
// - metrics: Prometheus counters for transports, parsing, cache and enrichment
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache(100, time.Minute)
//	err := cache.Set(ctx, "key", []byte("value"), 5*time.Minute)
//	value, err := cache.Get(ctx, "key")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
// # Logger
//
//	logger, closeLog, err := logger.New(config.LogConfig{Backend: "zap", Level: "info"})
//	logger.Info("Processing request", map[string]interface{}{
//	    "url": feedURL,
//	})
//
package infrastructure
