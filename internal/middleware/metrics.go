package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache outcome counters, labeled by cache key prefix.
var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_cache_hits_total",
		Help: "Number of cache reads served from Redis.",
	}, []string{"key"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_cache_misses_total",
		Help: "Number of cache reads that fell through to the database.",
	}, []string{"key"})

	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_cache_errors_total",
		Help: "Number of failed Redis operations.",
	}, []string{"op"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
