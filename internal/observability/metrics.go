package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast refresh pipeline.
type Metrics struct {
	RefreshesTotal  prometheus.Counter
	RefreshErrors   *prometheus.CounterVec // labels: stage={fetch,parse,assemble,broadcast}
	RefreshDuration prometheus.Histogram
	LastRefreshUnix prometheus.Gauge
	PipelineRunning prometheus.Gauge

	// Upstream API metrics.
	UpstreamRequests    *prometheus.CounterVec   // labels: document={points,daily,hourly,grid}, outcome={success,error}
	UpstreamAPIDuration *prometheus.HistogramVec // labels: document

	// Broadcast metrics.
	ForecastsBroadcast prometheus.Counter
	BroadcastErrors    prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RefreshesTotal,
		m.RefreshErrors,
		m.RefreshDuration,
		m.LastRefreshUnix,
		m.PipelineRunning,
		m.UpstreamRequests,
		m.UpstreamAPIDuration,
		m.ForecastsBroadcast,
		m.BroadcastErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "noaacast",
			Name:      "refreshes_total",
			Help:      "Total forecast refresh cycles completed successfully.",
		}),
		RefreshErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "noaacast",
			Name:      "refresh_errors_total",
			Help:      "Refresh failures by pipeline stage.",
		}, []string{"stage"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "noaacast",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-parse-assemble cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastRefreshUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "noaacast",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful refresh.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "noaacast",
			Name:      "pipeline_running",
			Help:      "1 when the refresh scheduler is active, 0 when shut down.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "noaacast",
			Name:      "upstream_requests_total",
			Help:      "Upstream weather API requests by document and outcome.",
		}, []string{"document", "outcome"}),
		UpstreamAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "noaacast",
			Name:      "upstream_api_duration_seconds",
			Help:      "Upstream weather API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"document"}),
		ForecastsBroadcast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "noaacast",
			Name:      "forecasts_broadcast_total",
			Help:      "Total assembled forecasts published to the broadcast topic.",
		}),
		BroadcastErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "noaacast",
			Name:      "broadcast_errors_total",
			Help:      "Total failed broadcast attempts.",
		}),
	}
}
