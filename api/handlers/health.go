// ABOUTME: Health endpoint reporting cache backend reachability and active transports
// ABOUTME: Returns 503 when the configured cache backend does not answer a ping

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"podfeed-api/api/dto/responses"
	"podfeed-api/pkg/featureflags"
)

const healthPingTimeout = 2 * time.Second

// Pinger is implemented by cache backends that can check their connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsReporter is implemented by cache backends that can describe their contents
type StatsReporter interface {
	Stats(ctx context.Context) (map[string]interface{}, error)
}

// HealthHandler reports service health
type HealthHandler struct {
	cacheName  string
	cache      Pinger
	transports []string
	flags      featureflags.Manager
}

// NewHealthHandler creates a health handler. cache may be nil when the
// backend has nothing to ping.
func NewHealthHandler(cacheName string, cache Pinger, transports []string, flags featureflags.Manager) *HealthHandler {
	return &HealthHandler{
		cacheName:  cacheName,
		cache:      cache,
		transports: transports,
		flags:      flags,
	}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput wraps the health body and its status
type HealthOutput struct {
	Status int
	Body   responses.HealthResponse
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{
		Status: http.StatusOK,
		Body: responses.HealthResponse{
			Status:     "ok",
			Cache:      h.cacheName,
			Transports: h.transports,
		},
	}
	if h.flags != nil {
		out.Body.Features = make(map[string]bool)
		for flag, on := range h.flags.Snapshot() {
			out.Body.Features[string(flag)] = on
		}
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			out.Status = http.StatusServiceUnavailable
			out.Body.Status = "degraded"
			out.Body.Error = err.Error()
			return out, nil
		}
		if reporter, ok := h.cache.(StatsReporter); ok {
			if stats, err := reporter.Stats(ctx); err == nil {
				out.Body.CacheStats = stats
			}
		}
	}
	return out, nil
}
