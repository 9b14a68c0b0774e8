// Package metrics provides Prometheus instrumentation for the provider
// and cache layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderLatency tracks provider call latency in seconds.
	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yyt_provider_latency_seconds",
			Help:    "Provider call latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "operation"},
	)

	// RetryAttemptsTotal counts retried provider calls by error kind.
	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yyt_retry_attempts_total",
			Help: "Total number of retried provider calls.",
		},
		[]string{"provider", "kind"},
	)

	// CacheLookupsTotal counts lookups against the transcript and
	// metadata caches.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yyt_cache_lookups_total",
			Help: "Total number of cache lookups.",
		},
		[]string{"cache"},
	)

	// CacheHitsTotal counts lookups served from cache.
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yyt_cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	// TokenUsageTotal counts tokens reported by providers.
	TokenUsageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yyt_token_usage_total",
			Help: "Total number of tokens consumed.",
		},
		[]string{"provider", "model", "direction"},
	)
)
