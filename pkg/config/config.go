// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines server, cache, transport, enrichment and logging settings

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Transport controls how feeds are fetched
	Transport TransportConfig

	// Enrichment controls cross-feed lookups
	Enrichment EnrichmentConfig

	// Log selects the logging backend
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per client per minute; 0 disables limiting
	RateLimit int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// TTL is how long a parsed feed stays fresh
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// MaxEntries caps the number of cached feeds; the oldest entry is evicted first
	MaxEntries int

	// SweepInterval is how often expired entries are purged
	SweepInterval time.Duration
}

// TransportConfig holds the outbound fetch settings
type TransportConfig struct {
	// ProxyBaseURL enables the server-side proxy strategy when set
	ProxyBaseURL string

	// StrategiesFile optionally points at a YAML strategy chain
	StrategiesFile string

	// HTTPTimeout bounds every outbound request made by the HTTP client
	HTTPTimeout time.Duration

	// StrategyTimeout is the default timeout of a single strategy attempt
	StrategyTimeout time.Duration

	// Backoff is the pause between strategies
	Backoff time.Duration

	// UserAgent is sent on every outbound request
	UserAgent string
}

// EnrichmentConfig holds cross-feed resolution settings
type EnrichmentConfig struct {
	// Timeout bounds each referenced feed fetch
	Timeout time.Duration

	// Concurrency caps parallel referenced fetches per feed
	Concurrency int
}

// LogConfig holds logger settings
type LogConfig struct {
	// Backend is logrus or zap
	Backend string

	// Level is debug, info, warn or error
	Level string

	// Format is json or text (logrus only)
	Format string

	// File enables rotated file output when set
	File string
}

// Defaults shared with the library entry point
const (
	DefaultUserAgent     = "PodtardstrMusic/1.0 (RSS Feed Reader)"
	DefaultCacheTTL      = 5 * time.Minute
	DefaultMaxEntries    = 100
	DefaultEnrichTimeout = 3 * time.Second
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 120),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", "memory")),
			TTL:  time.Duration(getEnvAsIntOrDefault("CACHE_TTL_SECONDS", int(DefaultCacheTTL/time.Second))) * time.Second,
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				MaxEntries:    getEnvAsIntOrDefault("CACHE_MAX_ENTRIES", DefaultMaxEntries),
				SweepInterval: time.Duration(getEnvAsIntOrDefault("CACHE_SWEEP_SECONDS", 60)) * time.Second,
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "podfeed-cache.db"),
		},
		Transport: TransportConfig{
			ProxyBaseURL:    getEnvOrDefault("PROXY_BASE_URL", ""),
			StrategiesFile:  getEnvOrDefault("TRANSPORTS_FILE", ""),
			HTTPTimeout:     time.Duration(getEnvAsIntOrDefault("FEED_TIMEOUT_SECONDS", 15)) * time.Second,
			StrategyTimeout: time.Duration(getEnvAsIntOrDefault("TRANSPORT_TIMEOUT_SECONDS", 8)) * time.Second,
			Backoff:         time.Duration(getEnvAsIntOrDefault("TRANSPORT_BACKOFF_MS", 500)) * time.Millisecond,
			UserAgent:       getEnvOrDefault("USER_AGENT", DefaultUserAgent),
		},
		Enrichment: EnrichmentConfig{
			Timeout:     time.Duration(getEnvAsIntOrDefault("ENRICH_TIMEOUT_SECONDS", int(DefaultEnrichTimeout/time.Second))) * time.Second,
			Concurrency: getEnvAsIntOrDefault("ENRICH_CONCURRENCY", 8),
		},
		Log: LogConfig{
			Backend: strings.ToLower(getEnvOrDefault("LOG_BACKEND", "logrus")),
			Level:   strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format:  strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
			File:    getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'sqlite', got %q", c.Cache.Type)
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive")
	}

	if c.Cache.Memory.MaxEntries < 1 {
		return errors.New("cache max entries must be at least 1")
	}

	if c.Transport.StrategyTimeout <= 0 || c.Transport.HTTPTimeout <= 0 {
		return errors.New("transport timeouts must be positive")
	}

	if c.Transport.Backoff < 0 {
		return errors.New("transport backoff cannot be negative")
	}

	if c.Enrichment.Timeout <= 0 {
		return errors.New("enrichment timeout must be positive")
	}

	if c.Enrichment.Concurrency < 1 {
		return errors.New("enrichment concurrency must be at least 1")
	}

	if c.Log.Backend != "logrus" && c.Log.Backend != "zap" {
		return fmt.Errorf("log backend must be 'logrus' or 'zap', got %q", c.Log.Backend)
	}

	return nil
}
