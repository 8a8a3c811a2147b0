package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "paypal_client"

var (
	outcomeMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_outcomes_total",
		Help:      "The total number of PayPal operations by normalized outcome",
	}, []string{"operation", "outcome"})
	durationMetric = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Time taken for PayPal operations, including OAuth token requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
	tokenCacheMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_token_cache_total",
		Help:      "OAuth access token cache lookups by result",
	}, []string{"result"})
)

// RecordOutcome counts an operation's outcome and observes its duration
func RecordOutcome(operation, outcome string, started time.Time) {
	outcomeMetric.WithLabelValues(operation, outcome).Inc()
	durationMetric.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// RecordTokenCache counts a token cache "hit" or "miss"
func RecordTokenCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	tokenCacheMetric.WithLabelValues(result).Inc()
}
