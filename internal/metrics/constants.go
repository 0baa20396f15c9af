package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Market metric names
const (
	MetricNameMarketFetchesTotal    = "market_fetches_total"
	MetricNameMarketFetchBatches    = "market_fetch_batches_total"
	MetricNameMarketBoardState      = "market_board_state"
	MetricNameMarketSnapshotItems   = "market_snapshot_items"
	MetricNameMarketFetchDuration   = "market_fetch_duration_seconds"
	MetricNameMarketRefreshesJoined = "market_refreshes_joined_total"
)

// Report metric names
const (
	MetricNameReportPasses = "report_passes_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Market metric help text
const (
	HelpTextMarketFetchesTotal    = "Total number of market snapshot fetch attempts"
	HelpTextMarketFetchBatches    = "Total number of pricing-service batches queried"
	HelpTextMarketBoardState      = "Current board state (0=empty 1=refreshing 2=ready 3=failed)"
	HelpTextMarketSnapshotItems   = "Number of items in the current market snapshot"
	HelpTextMarketFetchDuration   = "Market snapshot fetch duration in seconds"
	HelpTextMarketRefreshesJoined = "Refresh requests that attached to an in-flight fetch"
)

// Report metric help text
const (
	HelpTextReportPasses = "Total number of report-generation passes"
)

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelWorld   = "world"
	LabelOutcome = "outcome"
)

// Outcome label values
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// FetchLatencyBuckets defines histogram buckets for full snapshot fetches,
// which run many throttled batches and routinely take tens of seconds.
var FetchLatencyBuckets = []float64{1, 5, 10, 30, 60, 120, 300, 600}

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
