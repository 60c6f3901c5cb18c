package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("route", routeName(req)).Errorf(
						"http: panic serving %s %s: %v\n%s", req.Method, req.URL.Path, r, debug.Stack(),
					)
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					apperrors.WriteHTTP(respWriter, apperrors.Dependency("http.serve", fmt.Errorf("panic: %v", r)))
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
