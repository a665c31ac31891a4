package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podfeed-api/api/dto/responses"
	"podfeed-api/core/domain"
	"podfeed-api/core/errors"
	"podfeed-api/core/feed"
	"podfeed-api/core/feedcache"
)

const testETag = `"abc123"`

func sampleResult(hit bool) *feed.Result {
	return &feed.Result{
		Feed: &domain.ParsedFeed{
			Title:       "Night Drive",
			Description: "<p>Synth records</p>",
			Episodes: []domain.ParsedEpisode{
				{Title: "Track 1", GUID: "t1", Duration: "205"},
			},
		},
		ETag:     testETag,
		CacheHit: hit,
	}
}

func newFeedAPI(t *testing.T, svc *mockFeedService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewFeedHandler(svc, nil).RegisterRoutes(api)
	return api
}

func TestFeedHandler_RegisterRoutes(t *testing.T) {
	_, api := humatest.New(t)
	NewFeedHandler(&mockFeedService{}, nil).RegisterRoutes(api)

	pathItem := api.OpenAPI().Paths["/feed"]
	require.NotNil(t, pathItem, "GET /feed not registered")
	require.NotNil(t, pathItem.Get)
	assert.Equal(t, "getFeed", pathItem.Get.OperationID)
}

func TestFeedHandler_GetFeed(t *testing.T) {
	svc := &mockFeedService{
		fetchFunc: func(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error) {
			return sampleResult(false), nil
		},
	}
	api := newFeedAPI(t, svc)

	resp := api.Get("/feed?url=https://band.example.com/feed.xml&cache=42")

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, testETag, resp.Header().Get("ETag"))
	assert.Equal(t, feedcache.CacheControl, resp.Header().Get("Cache-Control"))
	assert.Equal(t, "MISS", resp.Header().Get("X-Cache"))
	assert.Equal(t, []string{"https://band.example.com/feed.xml|42"}, svc.calls)

	var body responses.FeedResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Night Drive", body.Title)
	assert.Equal(t, "Synth records", body.DescriptionText)
	require.Len(t, body.Episodes, 1)
	require.NotNil(t, body.Episodes[0].DurationSeconds)
	assert.Equal(t, 205, *body.Episodes[0].DurationSeconds)
}

func TestFeedHandler_CacheHitHeader(t *testing.T) {
	api := newFeedAPI(t, &mockFeedService{
		fetchFunc: func(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error) {
			return sampleResult(true), nil
		},
	})

	resp := api.Get("/feed?url=https://band.example.com/feed.xml")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "HIT", resp.Header().Get("X-Cache"))
}

func TestFeedHandler_IfNoneMatch(t *testing.T) {
	api := newFeedAPI(t, &mockFeedService{
		fetchFunc: func(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error) {
			return sampleResult(true), nil
		},
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"exact match", testETag, http.StatusNotModified},
		{"weak match", "W/" + testETag, http.StatusNotModified},
		{"wildcard", "*", http.StatusNotModified},
		{"list", `"other", ` + testETag, http.StatusNotModified},
		{"no match", `"other"`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Get("/feed?url=https://band.example.com/feed.xml", "If-None-Match: "+tt.header)
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

func TestFeedHandler_PlaceholderIsNotCacheable(t *testing.T) {
	api := newFeedAPI(t, &mockFeedService{
		fetchFunc: func(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error) {
			return &feed.Result{Feed: domain.UnavailableFeed()}, nil
		},
	})

	resp := api.Get("/feed?url=https://down.example.com/feed.xml", "If-None-Match: *")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "no-store", resp.Header().Get("Cache-Control"))
	assert.Empty(t, resp.Header().Get("ETag"))

	var body responses.FeedResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Placeholder)
	assert.Equal(t, "Feed Unavailable", body.Title)
	assert.NotNil(t, body.Episodes)
}

func TestFeedHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid url", &errors.InvalidURLError{URL: "nope", Reason: "scheme must be http or https"}, http.StatusBadRequest},
		{"malformed xml", &errors.MalformedXMLError{Cause: assert.AnError}, http.StatusUnprocessableEntity},
		{"missing channel", &errors.MissingChannelError{DetectedType: "atom"}, http.StatusUnprocessableEntity},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFeedAPI(t, &mockFeedService{
				fetchFunc: func(ctx context.Context, feedURL, cacheBust string) (*feed.Result, error) {
					return nil, tt.err
				},
			})

			resp := api.Get("/feed?url=nope")
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

func TestFeedHandler_RequiresURL(t *testing.T) {
	svc := &mockFeedService{}
	api := newFeedAPI(t, svc)

	resp := api.Get("/feed")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Empty(t, svc.calls)
}
