package api

import (
	"fmt"

	"regional-airports/flightboard/internal/cache"
	"regional-airports/flightboard/internal/config"
	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/metrics"
	"regional-airports/flightboard/internal/providers"
	"regional-airports/flightboard/internal/services"
	"regional-airports/flightboard/internal/ui"
)

// Dependencies is everything the handlers need, built once at startup.
type Dependencies struct {
	FeedCache  *cache.FeedCache
	SharedFeed cache.SharedStore
	Provider   providers.FeedFetcher
	FlightSvc  *services.FlightBoardService
	Renderer   *ui.Renderer
	Metrics    *metrics.MetricsRegistry
}

// InitDependencies wires provider, caches, service and renderer from config.
// Redis is only used when REDIS_HOST is set.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	opts := []cache.Option{
		cache.WithTTL(cfg.FeedCacheTTL),
		cache.WithMetrics(metricsReg),
	}

	var shared cache.SharedStore
	if cfg.RedisHost != "" {
		client := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		shared = cache.NewRedisFeedStore(client)
		opts = append(opts, cache.WithSharedStore(shared, cfg.SharedCacheTTL))
		logging.Info("Shared feed cache enabled", "ttl", cfg.SharedCacheTTL.String())
	}

	feedCache, err := cache.NewFeedCache(cfg.FeedCacheCapacity, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed cache: %w", err)
	}

	if cfg.AirportAPIKey == "" {
		logging.Warn("AIRPORT_API_KEY is not set; upstream calls will likely be rejected")
	}
	provider := providers.NewAirportFlightProvider(
		cfg.AirportAPIBaseURL,
		cfg.AirportAPIKey,
		cfg.AirportAPIRows,
		cfg.UpstreamTimeout,
	)

	renderer, err := ui.NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		FeedCache:  feedCache,
		SharedFeed: shared,
		Provider:   provider,
		FlightSvc:  services.NewFlightBoardService(provider, feedCache, metricsReg, cfg.UpstreamTimeout, cfg.FetchConcurrency),
		Renderer:   renderer,
		Metrics:    metricsReg,
	}, nil
}

// Close releases the shared store connection, if any
func (d *Dependencies) Close() error {
	if d.SharedFeed != nil {
		return d.SharedFeed.Close()
	}
	return nil
}
