package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Aggregation metric names
const (
	MetricNameAggregationsTotal            = "aggregations_total"
	MetricNameAggregationDuration          = "aggregation_duration_seconds"
	MetricNameAggregationMaterialsResolved = "aggregation_materials_resolved"
	MetricNameAggregationSourcesScored     = "aggregation_sources_scored"
)

// Bookmark metric names
const (
	MetricNameBookmarksAdded   = "bookmarks_added_total"
	MetricNameBookmarksRemoved = "bookmarks_removed_total"
)

// Catalog metric names
const (
	MetricNameCatalogItemCacheHits   = "catalog_item_cache_hits_total"
	MetricNameCatalogItemCacheMisses = "catalog_item_cache_misses_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextAggregationsTotal            = "Total number of aggregation runs"
	HelpTextAggregationDuration          = "Aggregation run duration in seconds"
	HelpTextAggregationMaterialsResolved = "Materials resolved per aggregation run"
	HelpTextAggregationSourcesScored     = "Source groups scored per aggregation run"
)

const (
	HelpTextBookmarksAdded   = "Total number of bookmarks added"
	HelpTextBookmarksRemoved = "Total number of bookmarks removed"
)

const (
	HelpTextCatalogItemCacheHits   = "Total catalog item cache hits"
	HelpTextCatalogItemCacheMisses = "Total catalog item cache misses"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod        = "method"
	LabelPath          = "path"
	LabelStatus        = "status"
	LabelScoringMethod = "scoring_method"
)

// HTTPLatencyBuckets covers sub-millisecond pure computation up to slow DB paths
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
