package middleware

import (
	"net/http"
	"strconv"

	"github.com/2beens/gymrats/internal/telemetry/metrics"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

func RequestMetrics(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			m := httpsnoop.CaptureMetrics(next, respWriter, req)

			status := strconv.Itoa(m.Code)
			metricsManager.CounterRequests.With(
				prometheus.Labels{
					"method": req.Method,
					"status": status,
				},
			).Inc()
			metricsManager.HistogramRequestDuration.With(
				prometheus.Labels{
					"route":       routeName(req),
					"method":      req.Method,
					"status_code": status,
				},
			).Observe(m.Duration.Seconds())
		})
	}
}

func routeName(req *http.Request) string {
	route := mux.CurrentRoute(req)
	if route == nil {
		return "unknown"
	}
	if name := route.GetName(); name != "" {
		return name
	}
	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}
	return "unknown"
}
