// Package metrics holds the prometheus collectors for the health-check
// subsystem. Collectors are registered on the default registry; the router
// exposes them on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statusapp_probes_total",
		Help: "Completed probes by recorded tick status.",
	}, []string{"status"})

	ProbeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "statusapp_probe_duration_seconds",
		Help:    "Wall-clock duration of individual probes.",
		Buckets: prometheus.DefBuckets,
	})

	BatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statusapp_batches_total",
		Help: "Completed batch runs.",
	})

	ProbesInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "statusapp_probes_inflight",
		Help: "Probes currently holding a concurrency slot.",
	})
)

func Handler() http.Handler { return promhttp.Handler() }
