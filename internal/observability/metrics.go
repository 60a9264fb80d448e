package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// widget agent.
type Metrics struct {
	// Location resolution metrics.
	GeoAttempts *prometheus.CounterVec // labels: provider={host,system,ip}, outcome={success,error}
	GeoFailures prometheus.Counter

	// Forecast session metrics.
	ForecastLoads        *prometheus.CounterVec // labels: reason={initial,refresh,unit-change,manual}, outcome={success,error}
	ForecastLoadDuration prometheus.Histogram
	SupersededResults    *prometheus.CounterVec // labels: component={forecast,search}
	ForecastReady        prometheus.Gauge

	// Place search metrics.
	SearchQueries *prometheus.CounterVec // labels: outcome={success,error,empty}

	// Reverse geocoding metrics.
	ReverseCache *prometheus.CounterVec // labels: result={hit,miss}

	// Preference store metrics.
	StoreWriteErrors prometheus.Counter
}

// NewMetrics creates and registers all agent metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.GeoAttempts,
		m.GeoFailures,
		m.ForecastLoads,
		m.ForecastLoadDuration,
		m.SupersededResults,
		m.ForecastReady,
		m.SearchQueries,
		m.ReverseCache,
		m.StoreWriteErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		GeoAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pocketwx",
			Name:      "geo_attempts_total",
			Help:      "Location provider attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeoFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pocketwx",
			Name:      "geo_failures_total",
			Help:      "Resolutions where every provider was exhausted.",
		}),
		ForecastLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pocketwx",
			Name:      "forecast_loads_total",
			Help:      "Forecast fetches by trigger reason and outcome.",
		}, []string{"reason", "outcome"}),
		ForecastLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pocketwx",
			Name:      "forecast_load_duration_seconds",
			Help:      "Duration of a complete forecast fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SupersededResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pocketwx",
			Name:      "superseded_results_total",
			Help:      "Completed requests discarded because a newer one started.",
		}, []string{"component"}),
		ForecastReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pocketwx",
			Name:      "forecast_ready",
			Help:      "1 once a forecast snapshot has been loaded.",
		}),
		SearchQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pocketwx",
			Name:      "search_queries_total",
			Help:      "Place search requests by outcome.",
		}, []string{"outcome"}),
		ReverseCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pocketwx",
			Name:      "reverse_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
		StoreWriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pocketwx",
			Name:      "store_write_errors_total",
			Help:      "Failed preference file writes.",
		}),
	}
}
