// ABOUTME: Main entry point for the podfeed API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podfeed-api/api"
	"podfeed-api/api/handlers"
	"podfeed-api/core/feed"
	"podfeed-api/core/interfaces"
	"podfeed-api/infrastructure/logger"
	"podfeed-api/infrastructure/metrics"
	"podfeed-api/pkg/config"
	"podfeed-api/pkg/featureflags"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("podfeed-api: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appLogger, closeLogger, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLogger()

	flags := featureflags.NewEnvManager("")
	appLogger.Info("Starting podfeed API", map[string]interface{}{
		"port":              cfg.Server.Port,
		"cache_type":        cfg.Cache.Type,
		"log_backend":       cfg.Log.Backend,
		"disabled_features": featureflags.Disabled(flags),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := newCacheBackend(cfg.Cache, appLogger)
	if err != nil {
		return err
	}
	defer backend.close()

	deps := interfaces.Dependencies{
		Cache:      backend.cache,
		HTTPClient: newHTTPClient(cfg.Transport, appLogger),
		Logger:     appLogger,
	}

	var promMetrics *metrics.Prometheus
	if flags.IsEnabled(ctx, featureflags.Metrics) {
		promMetrics = metrics.NewPrometheus()
		deps.Metrics = promMetrics
	}

	fetcher, err := newFetcher(cfg.Transport, deps)
	if err != nil {
		return err
	}
	appLogger.Info("Transport chain ready", map[string]interface{}{
		"strategies": fetcher.Strategies(),
	})

	serviceOpts := []feed.Option{
		feed.WithCacheTTL(cfg.Cache.TTL),
		feed.WithEnrichment(cfg.Enrichment.Timeout, cfg.Enrichment.Concurrency),
	}
	if !flags.IsEnabled(ctx, featureflags.Enrichment) {
		serviceOpts = append(serviceOpts, feed.WithoutEnrichment())
	}
	feedService := feed.NewFeedService(deps, fetcher, serviceOpts...)

	go feedService.Cache().RunJanitor(ctx, cfg.Cache.Memory.SweepInterval)

	apiConfig := api.APIConfig{
		Logger:     appLogger,
		RateWindow: time.Minute,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimit) {
		apiConfig.RateLimit = cfg.Server.RateLimit
	}
	server := api.NewServer(apiConfig)
	defer server.Close()

	handlers.NewFeedHandler(feedService, appLogger).RegisterRoutes(server.API)
	handlers.NewHealthHandler(cfg.Cache.Type, backend.pinger, fetcher.Strategies(), flags).RegisterRoutes(server.API)
	if flags.IsEnabled(ctx, featureflags.RSSProxy) {
		handlers.NewProxyHandler(deps.HTTPClient, appLogger).RegisterRoutes(server.API)
	}
	if promMetrics != nil {
		server.Mount("/metrics", promMetrics.Handler())
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			appLogger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	appLogger.Info("Server stopped", nil)
	return nil
}
