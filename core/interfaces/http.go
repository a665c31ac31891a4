package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making outbound HTTP requests.
// Feed transports, the RSS proxy endpoint and the cross-feed resolver all
// go through it, so tests can swap in a fake without a network.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// Implementations send the feed Accept header and a descriptive User-Agent.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header.
	// Returns an empty string if the header is not present.
	Header(key string) string
}
