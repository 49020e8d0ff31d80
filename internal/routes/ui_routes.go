package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"regional-airports/flightboard/internal/logging"
)

const assetsMaxAge = 24 * time.Hour

// RegisterAssetRoutes serves airport photos and airline logos from dir under /assets/.
// Nothing is mounted when dir does not exist.
func RegisterAssetRoutes(r chi.Router, dir string) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logging.Warn("Assets directory not found, /assets disabled", "dir", dir)
		return
	}

	fileServer := http.FileServer(http.Dir(dir))
	r.Handle("/assets/*", http.StripPrefix("/assets/", cacheControlMiddleware(fileServer)))
}

// cacheControlMiddleware marks images as cacheable; the board page itself is not.
func cacheControlMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.ToLower(filepath.Ext(r.URL.Path)) {
		case ".jpg", ".jpeg", ".png", ".gif":
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(assetsMaxAge.Seconds())))
		}
		next.ServeHTTP(w, r)
	})
}
