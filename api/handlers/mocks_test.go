package handlers

import (
	"context"
	"io"
	"strings"
	"sync"

	"podfeed-api/core/feed"
	"podfeed-api/core/interfaces"
)

// mockFeedService is a mock implementation of the feed service
type mockFeedService struct {
	mu        sync.Mutex
	fetchFunc func(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error)
	calls     []string
}

func (m *mockFeedService) Fetch(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, feedURL+"|"+cacheBust)
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, feedURL, cacheBust)
	}
	return nil, nil
}

// mockHTTPClient is a mock implementation of interfaces.HTTPClient
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.getFunc(ctx, url)
}

type mockResponse struct {
	status int
	body   string
}

func (r *mockResponse) StatusCode() int { return r.status }

func (r *mockResponse) Body() io.ReadCloser { return io.NopCloser(strings.NewReader(r.body)) }

func (r *mockResponse) Header(string) string { return "" }

// mockPinger is a cache backend stand-in for the health check
type mockPinger struct {
	err error
}

func (p *mockPinger) Ping(context.Context) error { return p.err }

// mockStatsPinger is a cache backend that also reports statistics
type mockStatsPinger struct {
	mockPinger
	stats    map[string]interface{}
	statsErr error
}

func (p *mockStatsPinger) Stats(context.Context) (map[string]interface{}, error) {
	return p.stats, p.statsErr
}
