package api

import (
	"context"
	"net/http"
	"time"

	"regional-airports/flightboard/internal/cache"
	"regional-airports/flightboard/internal/models/entities"
)

const healthPingTimeout = 2 * time.Second

// HealthCheckHandler handles GET /healthCheck
//
// Reports uptime, feed cache counters and, when a shared store is configured, whether
// Redis answers. A down Redis degrades the overall status but never fails the request.
func HealthCheckHandler(feedCache *cache.FeedCache, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]entities.ServiceStatus)

		services["feed_cache"] = entities.ServiceStatus{
			Status:  "ok",
			Details: "In-memory LRU",
		}

		if shared := feedCache.Shared(); shared != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()

			status := "ok"
			details := "Redis Connected"
			if err := shared.Ping(ctx); err != nil {
				status = "down"
				details = err.Error()
			}
			services["redis"] = entities.ServiceStatus{
				Status:  status,
				Details: details,
			}
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "degraded"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Status:   overallStatus,
			Services: services,
			UpSince:  upSince.UTC(),
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Cache:    feedCache.Stats(),
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
