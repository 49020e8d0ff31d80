package middleware

import (
	"bytes"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"regional-airports/flightboard/internal/logging"
)

// maxLoggedBody caps how much of a response body the debug logger keeps
const maxLoggedBody = 4096

type respLogger struct {
	http.ResponseWriter
	status int
	buf    *bytes.Buffer
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	if room := maxLoggedBody - l.buf.Len(); room > 0 {
		if len(b) > room {
			l.buf.Write(b[:room])
		} else {
			l.buf.Write(b)
		}
	}
	return l.ResponseWriter.Write(b)
}

// DebugLogging logs request headers and the (truncated) response body at debug level.
// Only mounted outside production.
func DebugLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := r.Header.Clone()
		headers.Del(AdminTokenHeader)

		log := logging.GetLogger().With("request_id", chimw.GetReqID(r.Context()))
		log.Debugw("Request received",
			"method", r.Method,
			"url", r.URL.String(),
			"headers", headers,
		)

		lw := &respLogger{ResponseWriter: w, status: http.StatusOK, buf: &bytes.Buffer{}}

		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Debugw("Response sent",
			"status", lw.status,
			"duration", time.Since(start).String(),
			"body", lw.buf.String(),
		)
	})
}
