// ABOUTME: Default implementations for the podfeed library dependencies
// ABOUTME: Memory or SQLite cache, feed-friendly HTTP client and logrus or quiet loggers

package podfeed

import (
	"os"
	"time"

	"podfeed-api/core/interfaces"
	"podfeed-api/infrastructure/cache/memory"
	"podfeed-api/infrastructure/cache/sqlite"
	httpInfra "podfeed-api/infrastructure/http/standard"
	"podfeed-api/infrastructure/logger/logruslog"
)

// DefaultHTTPClient returns the default HTTP client
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(15 * time.Second)
}

// DefaultMemoryCache returns a bounded in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache(memory.DefaultMaxEntries, time.Minute)
}

// DefaultSQLiteCache returns a SQLite-backed cache stored at filePath
func DefaultSQLiteCache(filePath string) (interfaces.Cache, error) {
	return sqlite.NewSQLiteCache(filePath, 5*time.Minute)
}

// DefaultLogger returns a text logger writing warnings and errors to stderr
func DefaultLogger() interfaces.Logger {
	return logruslog.New(logruslog.Options{
		Level:  "warn",
		Format: "text",
		Output: os.Stderr,
	})
}

// QuietLogger returns a logger that discards all output
func QuietLogger() interfaces.Logger {
	return interfaces.NopLogger{}
}

// CacheType selects a built-in cache backend
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// WithCacheType creates and owns one of the built-in caches. filePath is only
// used for SQLite and defaults to podfeed_cache.db.
func WithCacheType(cacheType CacheType, filePath string) Option {
	return func(c *Config) error {
		switch cacheType {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			if filePath == "" {
				filePath = "podfeed_cache.db"
			}
			cache, err := DefaultSQLiteCache(filePath)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "open sqlite cache").WithCause(err)
			}
			c.Cache = cache
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(cacheType))
		}
		c.ownsCache = true
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

// WithDefaultLogger logs warnings and errors to stderr
func WithDefaultLogger() Option {
	return func(c *Config) error {
		c.Logger = DefaultLogger()
		return nil
	}
}
