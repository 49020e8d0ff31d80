package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regional-airports/flightboard/internal/api"
	"regional-airports/flightboard/internal/config"
	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/middleware"
)

// RegisterRoutes builds the chi router for the flight board
func RegisterRoutes(cfg *config.Config, deps *api.Dependencies, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	if cfg.AppEnv != "production" {
		r.Use(middleware.DebugLogging)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// operational endpoints stay outside the rate limit
	r.Get("/healthCheck", api.HealthCheckHandler(deps.FeedCache, upSince))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	RegisterAssetRoutes(r, cfg.AssetsDir)

	RegisterBoardRoutes(r, cfg, deps)

	if cfg.AdminToken != "" {
		r.With(middleware.AdminTokenMiddleware(cfg.AdminToken)).
			Post("/admin/cache/refresh", api.RefreshCacheHandler(deps.FlightSvc))
	} else {
		logging.Info("ADMIN_TOKEN not set, admin routes disabled")
	}

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}

// RegisterBoardRoutes mounts the page and query endpoints behind the per-client rate limit
func RegisterBoardRoutes(r chi.Router, cfg *config.Config, deps *api.Dependencies) {
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)

		page := api.BoardPageHandler(deps.FlightSvc, deps.Renderer, cfg.DefaultAirport)
		r.Get("/", page)
		r.Post("/", page)

		r.Get("/get_airlines", api.GetAirlinesHandler(deps.FlightSvc, cfg.DefaultAirport))
		r.Get("/fetch_info", api.FetchInfoHandler(deps.FlightSvc, cfg.DefaultAirport))
	})
}
