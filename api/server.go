// ABOUTME: Huma API server configuration and setup
// ABOUTME: Builds the chi router with CORS, request logging and rate limiting in front of huma

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"podfeed-api/api/middleware"
	"podfeed-api/core/interfaces"
)

const (
	apiTitle   = "Podfeed API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window; 0 disables limiting
	RateWindow time.Duration // rate limit window
}

// Server bundles the huma API with its router and the resources it owns
type Server struct {
	API     huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// Close releases background resources held by middleware
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
}

// Mount serves a plain handler, such as the Prometheus exporter, beside the API
func (s *Server) Mount(path string, h http.Handler) {
	s.Router.Handle(path, h)
}

// NewAPI creates and configures a new Huma API instance without middleware
func NewAPI() (huma.API, chi.Router) {
	s := NewServer(APIConfig{})
	return s.API, s.Router
}

// NewServer creates a router with middleware configured and mounts huma on it
func NewServer(cfg APIConfig) *Server {
	router := chi.NewRouter()

	// CORS must run first so preflight requests are answered before limiting
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match", middleware.RequestIDHeader},
		ExposedHeaders: []string{"ETag", "X-Cache", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	s := &Server{Router: router}
	if cfg.RateLimit > 0 {
		window := cfg.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, window)
		router.Use(middleware.RateLimitMiddleware(s.limiter))
	}

	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "Fetches podcast RSS feeds through a proxy chain, parses podcast namespace " +
		"extensions and resolves podroll and publisher references."

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	s.API = humachi.New(router, config)

	return s
}
