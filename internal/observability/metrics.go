// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Market data metrics
	BarsIngested        prometheus.Counter
	BarValidationErrors *prometheus.CounterVec
	FeedMessages        prometheus.Counter
	FeedMessagesDropped prometheus.Counter
	FeedReconnects      prometheus.Counter

	// Backtest metrics
	BacktestRunsTotal *prometheus.CounterVec
	BacktestDuration  *prometheus.HistogramVec
	BarsProcessed     prometheus.Counter
	TradesSimulated   prometheus.Counter
	ZeroSizeSkips     prometheus.Counter
	GateBlocks        *prometheus.CounterVec

	// Reporting metrics
	ReportsGenerated prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
	UptimeSeconds     prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "futures_risk_lab"
	}

	return &Metrics{
		// Market data metrics
		BarsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "bars_ingested_total",
			Help:      "Total number of bars ingested into storage",
		}),
		BarValidationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "bar_validation_errors_total",
			Help:      "Total number of bar validation failures by reason",
		}, []string{"reason"}),
		FeedMessages: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "feed_messages_total",
			Help:      "Total number of websocket feed messages received",
		}),
		FeedMessagesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "feed_messages_dropped_total",
			Help:      "Total number of malformed or unparseable feed messages dropped",
		}),
		FeedReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "marketdata",
			Name:      "feed_reconnects_total",
			Help:      "Total number of websocket feed reconnect attempts",
		}),

		// Backtest metrics
		BacktestRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "runs_total",
			Help:      "Total number of backtest runs by status",
		}, []string{"strategy", "status"}),
		BacktestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "duration_seconds",
			Help:      "Backtest execution duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"strategy"}),
		BarsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "bars_processed_total",
			Help:      "Total number of bars processed across all runs",
		}),
		TradesSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "trades_simulated_total",
			Help:      "Total number of trades simulated",
		}),
		ZeroSizeSkips: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "zero_size_skips_total",
			Help:      "Total number of entry signals skipped because the sizer returned zero",
		}),
		GateBlocks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backtest",
			Name:      "gate_blocks_total",
			Help:      "Total number of signals suppressed by the microstructure gate by filter",
		}, []string{"filter"}),

		// Reporting metrics
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful backtest run",
		}),
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordBarIngested increments the bars ingested counter.
func RecordBarIngested() {
	DefaultMetrics.BarsIngested.Inc()
}

// RecordTradeSimulated increments the trades simulated counter.
func RecordTradeSimulated() {
	DefaultMetrics.TradesSimulated.Inc()
}

// RecordGateBlock increments the gate block counter for the given filter.
func RecordGateBlock(filter string) {
	DefaultMetrics.GateBlocks.WithLabelValues(filter).Inc()
}
