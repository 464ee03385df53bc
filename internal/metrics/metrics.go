package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_upstream_requests_total",
		Help: "Azure Retail Prices API calls by outcome",
	}, []string{"outcome"}) // outcome=success|retry|failure

	upstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_upstream_duration_seconds",
		Help:    "Latency of Azure Retail Prices API calls",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_cache_lookups_total",
		Help: "Price cache lookups by result",
	}, []string{"result"}) // result=hit|miss

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_http_requests_total",
		Help: "HTTP requests served by route and status",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

const (
	OutcomeSuccess = "success"
	OutcomeRetry   = "retry"
	OutcomeFailure = "failure"
)

func ObserveUpstream(outcome string, d time.Duration) {
	upstreamRequests.WithLabelValues(outcome).Inc()
	upstreamLatency.Observe(d.Seconds())
}

func CacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveHTTP records a served request. route should be the chi route
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route).Observe(d.Seconds())
}
