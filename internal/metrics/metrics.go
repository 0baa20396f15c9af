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

// Market Metrics
var (
	MarketFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketFetchesTotal,
			Help: HelpTextMarketFetchesTotal,
		},
		[]string{LabelWorld, LabelOutcome},
	)

	MarketFetchBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketFetchBatches,
			Help: HelpTextMarketFetchBatches,
		},
		[]string{LabelWorld},
	)

	MarketBoardState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameMarketBoardState,
			Help: HelpTextMarketBoardState,
		},
		[]string{LabelWorld},
	)

	MarketSnapshotItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameMarketSnapshotItems,
			Help: HelpTextMarketSnapshotItems,
		},
		[]string{LabelWorld},
	)

	MarketFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameMarketFetchDuration,
			Help:    HelpTextMarketFetchDuration,
			Buckets: FetchLatencyBuckets,
		},
		[]string{LabelWorld},
	)

	MarketRefreshesJoined = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketRefreshesJoined,
			Help: HelpTextMarketRefreshesJoined,
		},
		[]string{LabelWorld},
	)
)

// Report Metrics
var (
	ReportPasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReportPasses,
			Help: HelpTextReportPasses,
		},
	)
)
