package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	log "github.com/sirupsen/logrus"
)

// LogRequest logs every finished request. Server errors go out at warn level.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			entry := log.WithFields(log.Fields{
				"method":   r.Method,
				"route":    routeName(r),
				"path":     r.URL.Path,
				"status":   m.Code,
				"bytes":    m.Written,
				"duration": m.Duration.String(),
				"ua":       r.Header.Get("User-Agent"),
			})
			if m.Code >= http.StatusInternalServerError {
				entry.Warn(" <==== request failed")
				return
			}
			entry.Trace(" <==== request")
		})
	}
}
