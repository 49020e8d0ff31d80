package api

import (
	"net/http"
	"time"
)

// RefreshCacheHandler handles POST /admin/cache/refresh
func RefreshCacheHandler(svc FlightBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		svc.Refresh()
		respondWithStatus(w, initTime, "Feed cache purged", nil)
	}
}
