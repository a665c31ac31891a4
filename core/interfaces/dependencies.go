// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Bundles the cache, outbound HTTP client, logger and metrics used by feed services

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides the byte store behind the feed cache
	Cache Cache

	// HTTPClient performs outbound fetches for transports and enrichment
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger

	// Metrics records transport, parser and cache counters; nil disables recording
	Metrics Metrics
}
