package requests

import (
	"testing"
)

func TestFeedRequest_Normalize(t *testing.T) {
	req := FeedRequest{URL: "  https://example.com/feed.xml\n", Cache: " 17 "}
	req.Normalize()

	if req.URL != "https://example.com/feed.xml" {
		t.Errorf("URL = %q, want trimmed", req.URL)
	}
	if req.Cache != "17" {
		t.Errorf("Cache = %q, want 17", req.Cache)
	}
}

func TestProxyRequest_Normalize(t *testing.T) {
	req := ProxyRequest{URL: "\thttps://example.com/feed.xml "}
	req.Normalize()

	if req.URL != "https://example.com/feed.xml" {
		t.Errorf("URL = %q, want trimmed", req.URL)
	}
}
