// ABOUTME: Transport resolver fetches feed text through an ordered chain of strategies
// ABOUTME: Applies per-strategy timeouts and a fixed backoff, stopping at the first success

package transport

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"podfeed-api/core/errors"
	"podfeed-api/core/interfaces"
)

// MaxFeedBytes caps how much of a response body is read
const MaxFeedBytes = 20 << 20

// Resolver implements interfaces.FeedFetcher over a strategy chain
type Resolver struct {
	client     interfaces.HTTPClient
	logger     interfaces.Logger
	metrics    interfaces.Metrics
	strategies []Strategy
	backoff    time.Duration
	timeout    time.Duration
	maxBytes   int64
}

// Option configures a Resolver
type Option func(*Resolver)

// WithBackoff sets the pause between strategies
func WithBackoff(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.backoff = d
		}
	}
}

// WithStrategyTimeout sets the timeout of strategies that do not carry their own
func WithStrategyTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithMaxFeedBytes sets the largest response body a strategy may return
func WithMaxFeedBytes(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// NewResolver creates a resolver. A nil or empty strategy list falls back to
// the direct fetch only.
func NewResolver(deps interfaces.Dependencies, strategies []Strategy, opts ...Option) *Resolver {
	if len(strategies) == 0 {
		strategies = []Strategy{DirectStrategy()}
	}
	r := &Resolver{
		client:     deps.HTTPClient,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		strategies: strategies,
		backoff:    DefaultBackoff,
		timeout:    DefaultStrategyTimeout,
		maxBytes:   MaxFeedBytes,
	}
	if r.logger == nil {
		r.logger = interfaces.NopLogger{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strategies returns the names of the configured strategies in order
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name
	}
	return names
}

// FetchFeedBytes returns the normalized feed text for feedURL.
//
// Errors: InvalidURLError before any network call, AllTransportsFailedError
// when every strategy failed, NonXMLResponseError when the winning payload is
// not XML, or the context error when ctx ends first.
func (r *Resolver) FetchFeedBytes(ctx context.Context, feedURL string) (string, error) {
	if err := ValidateFeedURL(feedURL); err != nil {
		return "", err
	}

	failure := &errors.AllTransportsFailedError{URL: feedURL}
	for i, strategy := range r.strategies {
		if i > 0 && r.backoff > 0 {
			select {
			case <-time.After(r.backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		start := time.Now()
		text, err := r.attempt(ctx, strategy, feedURL)
		r.record(strategy.Name, err == nil)
		if err != nil {
			r.logger.Warn("Transport strategy failed", map[string]interface{}{
				"strategy":    strategy.Name,
				"url":         feedURL,
				"error":       err.Error(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			failure.Attempts = append(failure.Attempts, errors.TransportAttempt{Strategy: strategy.Name, Err: err})
			continue
		}

		r.logger.Debug("Transport strategy succeeded", map[string]interface{}{
			"strategy":    strategy.Name,
			"url":         feedURL,
			"bytes":       len(text),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return NormalizePayload(feedURL, text)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.logger.Warn("All transport strategies failed", map[string]interface{}{
		"url":      feedURL,
		"attempts": len(failure.Attempts),
	})
	return "", failure
}

func (r *Resolver) attempt(ctx context.Context, strategy Strategy, feedURL string) (string, error) {
	timeout := strategy.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := r.client.Get(attemptCtx, strategy.BuildURL(feedURL))
	if err != nil {
		return "", err
	}
	body := resp.Body()
	if body != nil {
		defer body.Close()
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("%s returned status %d", strategy.Name, resp.StatusCode()),
			API:        strategy.Name,
		}
	}
	if body == nil {
		return "", fmt.Errorf("%s returned no body", strategy.Name)
	}

	data, err := ReadLimited(body, r.maxBytes, strategy.Name)
	if err != nil {
		return "", err
	}

	decode := strategy.Decode
	if decode == nil {
		decode = DecodeAuto
	}
	text, err := decode(data, resp.Header("Content-Type"))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s returned an empty body", strategy.Name)
	}
	return text, nil
}

// ReadLimited reads at most limit bytes from body. A body longer than limit
// yields a FeedTooLargeError instead of a truncated payload.
func ReadLimited(body io.Reader, limit int64, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", source, err)
	}
	if int64(len(data)) > limit {
		return nil, &errors.FeedTooLargeError{Source: source, Limit: limit}
	}
	return data, nil
}

func (r *Resolver) record(strategy string, success bool) {
	if r.metrics != nil {
		r.metrics.TransportAttempt(strategy, success)
	}
}
