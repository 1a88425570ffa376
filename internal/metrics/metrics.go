package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QueriesTotal counts requests by action and outcome status.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collisiondb_queries_total",
			Help: "Total number of collision queries",
		},
		[]string{"action", "status"},
	)
	// QueryDuration is the latency of a request from decode to response.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collisiondb_query_duration_seconds",
			Help:    "Collision query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)
	MatchedRecords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collisiondb_query_matched_records",
			Help:    "Number of records returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "collisiondb_query_cache_hits_total",
			Help: "Queries answered from the result cache",
		},
	)
	RecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "collisiondb_records_loaded",
			Help: "Number of records in the current snapshot",
		},
	)
	// ReloadsTotal counts snapshot reloads by result.
	ReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collisiondb_reloads_total",
			Help: "Total number of data reloads",
		},
		[]string{"result"},
	)
)

// Handler serves /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
