package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Schema Prometheus metrics.
var (
	SchemaBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecmodel",
			Name:      "schema_builds_total",
			Help:      "Total number of collection definition builds",
		},
		[]string{"status"}, // "ok" / "error"
	)

	RegistryLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecmodel",
			Name:      "registry_lookups_total",
			Help:      "Definition registry lookups by cache result",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ContainerConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vecmodel",
			Name:      "container_conversions_total",
			Help:      "Container adapter conversions by direction",
		},
		[]string{"direction", "status"}, // "to"/"from", "ok"/"error"
	)
)

var registerOnce sync.Once

// RegisterSchemaMetrics registers Prometheus schema metrics. Safe to call
// from multiple tests or applications; registration happens once.
func RegisterSchemaMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SchemaBuildsTotal)
		prometheus.MustRegister(RegistryLookupsTotal)
		prometheus.MustRegister(ContainerConversionsTotal)
	})
}
