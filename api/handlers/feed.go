// ABOUTME: Feed handlers for the Huma API
// ABOUTME: Serves parsed, enriched feeds with ETag validation and cache headers

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"podfeed-api/api/dto/mappers"
	"podfeed-api/api/dto/requests"
	"podfeed-api/api/dto/responses"
	"podfeed-api/core/feed"
	"podfeed-api/core/feedcache"
	"podfeed-api/core/interfaces"
)

// noStore is sent with placeholder feeds so clients retry on the next request
const noStore = "no-store"

// FeedService interface defines the methods needed from the feed service
type FeedService interface {
	Fetch(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error)
}

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService FeedService
	logger      interfaces.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService FeedService, logger interfaces.Logger) *FeedHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &FeedHandler{
		feedService: feedService,
		logger:      logger,
	}
}

// RegisterRoutes registers all feed-related routes
func (h *FeedHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/feed",
		Summary:     "Fetch and parse a podcast feed",
		Description: "Fetches an RSS feed through the transport chain, parses podcast namespace extensions " +
			"and resolves podroll and publisher references. Unreachable feeds yield a placeholder feed.",
		Tags: []string{"Feeds"},
	}, h.GetFeed)
}

// FeedOutput defines the output for the GetFeed operation
type FeedOutput struct {
	ETag         string `header:"ETag"`
	CacheControl string `header:"Cache-Control"`
	XCache       string `header:"X-Cache" doc:"HIT when served from the feed cache"`
	Body         *responses.FeedResponse
}

// GetFeed handles the GET /feed endpoint
func (h *FeedHandler) GetFeed(ctx context.Context, input *requests.FeedRequest) (*FeedOutput, error) {
	input.Normalize()

	result, err := h.feedService.Fetch(ctx, input.URL, input.Cache)
	if err != nil {
		h.logger.Warn("Feed request failed", map[string]interface{}{
			"url":   input.URL,
			"error": err.Error(),
		})
		return nil, toHumaError(err)
	}

	if result.NotModified(input.IfNoneMatch) {
		return nil, huma.Status304NotModified()
	}

	out := &FeedOutput{
		Body:   mappers.ToFeedResponse(result.Feed),
		XCache: "MISS",
	}
	if result.CacheHit {
		out.XCache = "HIT"
	}
	if result.Feed.Placeholder {
		out.CacheControl = noStore
		return out, nil
	}
	out.ETag = result.ETag
	out.CacheControl = feedcache.CacheControl
	return out, nil
}
