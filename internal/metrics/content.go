package metrics

import "github.com/prometheus/client_golang/prometheus"

// Content pipeline Prometheus metrics.
var (
	CMSRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "cms_requests_total",
			Help:      "Total number of CMS requests",
		},
		[]string{"operation", "status"}, // status: "success" / "partial" / "error"
	)

	CMSRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contentd",
			Name:      "cms_request_duration_seconds",
			Help:      "CMS request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	ContentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "content_cache_total",
			Help:      "Content cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	FeedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "feed_requests_total",
			Help:      "Total number of external feed fetches",
		},
		[]string{"feed", "status"},
	)
)

var contentMetricsRegistered bool

// RegisterContentMetrics registers content pipeline metrics. Must be called once from main.
func RegisterContentMetrics() {
	if contentMetricsRegistered {
		return
	}
	prometheus.MustRegister(CMSRequestsTotal)
	prometheus.MustRegister(CMSRequestDuration)
	prometheus.MustRegister(ContentCacheTotal)
	prometheus.MustRegister(FeedRequestsTotal)
	contentMetricsRegistered = true
}
