// Package metrics provides the centralized Prometheus metrics registry
// for the analysis service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stock_sentry",
		Name:      "analyses_total",
		Help:      "Total number of ticker analyses, by outcome",
	}, []string{"outcome"})
	BreakoutsDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stock_sentry",
		Name:      "breakouts_detected_total",
		Help:      "Total number of breakout days detected",
	})
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stock_sentry",
		Name:      "predictions_total",
		Help:      "Total number of ML predictions produced",
	})
	PredictionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stock_sentry",
		Name:      "prediction_failures_total",
		Help:      "Total number of ML predictions that were unavailable",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stock_sentry",
		Name:      "analysis_cache_hits_total",
		Help:      "Total number of analysis cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stock_sentry",
		Name:      "analysis_cache_misses_total",
		Help:      "Total number of analysis cache misses",
	})
)

// Gauge metrics
var (
	WatchlistSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "stock_sentry",
		Name:      "watchlist_size",
		Help:      "Number of tickers currently on the watchlist",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stock_sentry",
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end duration of a ticker analysis",
		Buckets:   prometheus.DefBuckets,
	})
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stock_sentry",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of a single backtest replay",
		Buckets:   prometheus.DefBuckets,
	})
)

// Registry returns the process-wide registry, registering every metric
// exactly once.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			AnalysesTotal,
			BreakoutsDetectedTotal,
			PredictionsTotal,
			PredictionFailuresTotal,
			CacheHitsTotal,
			CacheMissesTotal,
			WatchlistSize,
			AnalysisDuration,
			BacktestDuration,
		)
	})
	return registry
}

// Handler returns the HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
