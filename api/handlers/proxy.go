// ABOUTME: Server-side RSS proxy relaying feed XML for clients that cannot fetch cross-origin
// ABOUTME: It backs the first transport strategy of other deployments of this service

package handlers

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"podfeed-api/api/dto/requests"
	"podfeed-api/core/errors"
	"podfeed-api/core/interfaces"
	"podfeed-api/core/transport"
)

const (
	// ProxyTimeout bounds one upstream fetch
	ProxyTimeout = 10 * time.Second

	proxyCacheControl = "public, max-age=300"
	proxyContentType  = "application/xml; charset=utf-8"
)

// ProxyHandler relays raw feed documents
type ProxyHandler struct {
	client   interfaces.HTTPClient
	logger   interfaces.Logger
	timeout  time.Duration
	maxBytes int64
}

// NewProxyHandler creates a proxy handler using client for upstream fetches
func NewProxyHandler(client interfaces.HTTPClient, logger interfaces.Logger) *ProxyHandler {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &ProxyHandler{
		client:   client,
		logger:   logger,
		timeout:  ProxyTimeout,
		maxBytes: transport.MaxFeedBytes,
	}
}

// RegisterRoutes registers the proxy route
func (h *ProxyHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "rssProxy",
		Method:      http.MethodGet,
		Path:        "/api/rss-proxy",
		Summary:     "Relay a feed document",
		Description: "Fetches the feed at url and returns its XML unchanged.",
		Tags:        []string{"Proxy"},
	}, h.Proxy)
}

// ProxyOutput is the raw feed document
type ProxyOutput struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

// Proxy handles GET /api/rss-proxy
func (h *ProxyHandler) Proxy(ctx context.Context, input *requests.ProxyRequest) (*ProxyOutput, error) {
	input.Normalize()
	if err := transport.ValidateFeedURL(input.URL); err != nil {
		return nil, toHumaError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	data, err := h.fetch(ctx, input.URL)
	if err != nil {
		h.logger.Warn("RSS proxy fetch failed", map[string]interface{}{
			"url":         input.URL,
			"error":       err.Error(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, huma.NewError(http.StatusRequestTimeout, "Upstream feed timed out")
		}
		if errors.IsFeedTooLarge(err) {
			return nil, huma.Error502BadGateway("Upstream feed exceeds size limit")
		}
		return nil, huma.Error502BadGateway("Failed to fetch feed", err)
	}

	if !transport.LooksLikeFeedDocument(data) {
		h.logger.Warn("RSS proxy upstream returned non-XML", map[string]interface{}{
			"url":         input.URL,
			"bytes":       len(data),
			"likely_feed": transport.IsLikelyFeedURL(input.URL),
		})
		return nil, huma.Error502BadGateway("Upstream did not return an XML feed")
	}

	return &ProxyOutput{
		ContentType:  proxyContentType,
		CacheControl: proxyCacheControl,
		Body:         data,
	}, nil
}

func (h *ProxyHandler) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	resp, err := h.client.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	body := resp.Body()
	if body == nil {
		return nil, fmt.Errorf("upstream returned no body")
	}
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode())
	}

	data, err := transport.ReadLimited(body, h.maxBytes, "upstream")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return data, nil
}
