// Package api provides the HTTP layer of the podfeed service. It uses huma
// on a chi router for OpenAPI generation and request validation.
//
// # Layout
//
//   - server.go: router, CORS, request logging and rate limiting
//   - handlers/: GET /feed, GET /api/rss-proxy and GET /health
//   - dto/: request bindings, response bodies and the domain mappers
//   - middleware/: request IDs, logging and per-client token buckets
//
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
//
// # Usage
//
//	srv := api.NewServer(api.APIConfig{Logger: logger, RateLimit: 120, RateWindow: time.Minute})
//	defer srv.Close()
//
//	handlers.NewFeedHandler(feedService, logger).RegisterRoutes(srv.API)
//	srv.Mount("/metrics", promMetrics.Handler())
//
//	http.ListenAndServe(":8000", srv.Router)
//
// # Errors
//
// Errors use the RFC 7807 problem format. Invalid feed URLs map to 400,
// unparseable feeds to 422. Feeds that cannot be fetched are not errors: the
// service answers 200 with a placeholder feed and Cache-Control: no-store.
package api
