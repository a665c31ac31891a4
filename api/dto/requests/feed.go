// ABOUTME: Request DTOs for feed-related API endpoints
// ABOUTME: Query and header bindings plus normalization shared by the handlers

package requests

import "strings"

// FeedRequest binds GET /feed
type FeedRequest struct {
	URL         string `query:"url" required:"true" minLength:"1" doc:"Feed URL to fetch"`
	Cache       string `query:"cache" doc:"Cache-bust token; a different token skips the cached copy"`
	IfNoneMatch string `header:"If-None-Match" doc:"ETag from an earlier response"`
}

// Normalize trims surrounding whitespace from the bound values
func (r *FeedRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
	r.Cache = strings.TrimSpace(r.Cache)
}

// ProxyRequest binds GET /api/rss-proxy
type ProxyRequest struct {
	URL   string `query:"url" required:"true" minLength:"1" doc:"Feed URL to relay"`
	Cache string `query:"cache" doc:"Ignored; lets clients defeat intermediate caches"`
}

// Normalize trims surrounding whitespace from the bound values
func (r *ProxyRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
}
