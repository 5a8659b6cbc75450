package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics collects the orchestrator's optional prometheus instrumentation,
// grounded on the teacher's corpus-sibling caddyserver-caddy/metrics.go
// convention: a single struct of counter fields, built once via
// promauto so registration and construction happen together.
type metrics struct {
	cacheEvictions     prometheus.Counter
	greaseInjections   prometheus.Counter
	downgradeDetected  prometheus.Counter
	rotationSelections *prometheus.CounterVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	factory := promauto.With(registerer)
	const ns = "custls"

	return &metrics{
		cacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_evictions_total",
			Help:      "Number of fingerprint cache entries evicted.",
		}),
		greaseInjections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "grease_injections_total",
			Help:      "Number of GREASE values injected across all connections.",
		}),
		downgradeDetected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "downgrade_detected_total",
			Help:      "Number of detected TLS downgrade attempts.",
		}),
		rotationSelections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "rotation_selected_total",
			Help:      "Number of times each template was selected by the rotation policy.",
		}, []string{"template"}),
	}
}
