package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	NotificationsCreated    *prometheus.CounterVec
	NotificationsSuppressed *prometheus.CounterVec
	ProviderRequests        *prometheus.CounterVec
	CacheHits               prometheus.Counter
	CacheMisses             prometheus.Counter
	JobRuns                 *prometheus.CounterVec
	JobDuration             *prometheus.HistogramVec
}

// NewMetrics creates new prometheus metrics on the default registry
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates new prometheus metrics on the given registerer;
// tests pass a throwaway registry.
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NotificationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "The total number of notifications persisted",
		}, []string{"category"}),
		NotificationsSuppressed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_suppressed_total",
			Help:      "The total number of notifications suppressed by the dedup gate",
		}, []string{"category"}),
		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "The total number of external provider requests by result",
		}, []string{"provider", "result"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_cache_hits_total",
			Help:      "The total number of fresh status cache hits",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_cache_misses_total",
			Help:      "The total number of status cache misses (including stale entries)",
		}),
		JobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "The total number of scheduled job runs by outcome",
		}, []string{"job", "status"}),
		JobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Time taken by a scheduled job run",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
	}
}
