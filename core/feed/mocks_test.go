package feed

import (
	"context"
	"sync"
)

// mockFetcher is a mock implementation of the FeedFetcher interface
type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) (string, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *mockFetcher) FetchFeedBytes(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[url]++
	m.mu.Unlock()

	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return "", nil
}

func (m *mockFetcher) Calls(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}

// staticFetcher serves fixed documents by URL
func staticFetcher(docs map[string]string) *mockFetcher {
	return &mockFetcher{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			if doc, ok := docs[url]; ok {
				return doc, nil
			}
			return "", &notFound{url: url}
		},
	}
}

type notFound struct{ url string }

func (n *notFound) Error() string { return "no document for " + n.url }
