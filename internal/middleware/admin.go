package middleware

import (
	"crypto/subtle"
	"net/http"

	"regional-airports/flightboard/internal/constants"
	"regional-airports/flightboard/internal/logging"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminTokenMiddleware only lets through requests carrying the configured admin token
func AdminTokenMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logging.Warn("Rejected admin request", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				http.Error(w, constants.MsgUnauthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
