package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the service registry. Runtime and process metrics
// live under the gymrats namespace, next to any extra collectors (db pool).
func SetupPrometheus(extra ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.MetricsGC,
				collectors.MetricsMemory,
				collectors.MetricsScheduler,
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			Namespace: "gymrats",
		}),
	)
	promRegistry.MustRegister(extra...)

	return promRegistry
}
