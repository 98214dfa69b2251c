package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Aggregation Metrics
var (
	AggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAggregationsTotal,
			Help: HelpTextAggregationsTotal,
		},
		[]string{LabelScoringMethod},
	)

	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameAggregationDuration,
			Help:    HelpTextAggregationDuration,
			Buckets: prometheus.DefBuckets,
		},
	)

	AggregationMaterialsResolved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameAggregationMaterialsResolved,
			Help:    HelpTextAggregationMaterialsResolved,
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	AggregationSourcesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameAggregationSourcesScored,
			Help:    HelpTextAggregationSourcesScored,
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)
)

// Bookmark Metrics
var (
	BookmarksAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBookmarksAdded,
			Help: HelpTextBookmarksAdded,
		},
	)

	BookmarksRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBookmarksRemoved,
			Help: HelpTextBookmarksRemoved,
		},
	)
)

// Catalog Metrics
var (
	CatalogItemCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogItemCacheHits,
			Help: HelpTextCatalogItemCacheHits,
		},
	)

	CatalogItemCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogItemCacheMisses,
			Help: HelpTextCatalogItemCacheMisses,
		},
	)
)
