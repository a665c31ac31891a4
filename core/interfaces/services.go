// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Contracts for fetching raw feed text and recording pipeline metrics

package interfaces

import (
	"context"
)

// FeedFetcher turns a feed URL into raw feed text.
type FeedFetcher interface {
	FetchFeedBytes(ctx context.Context, url string) (string, error)
}

// Metrics records feed pipeline counters.
type Metrics interface {
	// TransportAttempt records one strategy attempt and whether it succeeded
	TransportAttempt(strategy string, success bool)

	// RecipientsDropped records value recipients discarded during parsing
	RecipientsDropped(count int)

	// CacheLookup records a feed cache hit or miss
	CacheLookup(hit bool)

	// EnrichmentResult records the outcome of a cross-feed lookup
	EnrichmentResult(kind string, success bool)
}
