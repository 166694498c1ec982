// Package metrics exposes QuoteFlow's Prometheus collectors.
//
// Collectors are registered on an explicit registry so tests can use a
// fresh one per case. All Recorder methods are safe on a nil receiver.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quoteflow"

// Render outcomes.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder holds the application collectors.
type Recorder struct {
	rendersTotal    *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	resolutions     *prometheus.CounterVec
	sourceFailures  *prometheus.CounterVec
	circuitState    *prometheus.GaugeVec
	counterUpdates  *prometheus.CounterVec
	favoritesActive prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallpaper_renders_total",
			Help:      "Wallpaper renders by result.",
		}, []string{"result"}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wallpaper_render_duration_seconds",
			Help:      "Time spent rasterising and encoding a wallpaper.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_resolutions_total",
			Help:      "Quotes served, by the source that supplied them.",
		}, []string{"source"}),
		sourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_source_failures_total",
			Help:      "Failed fetches from upstream quote sources.",
		}, []string{"source"}),
		circuitState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per upstream (0 closed, 1 half-open, 2 open).",
		}, []string{"source"}),
		counterUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_counter_updates_total",
			Help:      "Ledger counter updates by counter and direction.",
		}, []string{"counter", "direction"}),
		favoritesActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favorites_stored",
			Help:      "Favorite quotes currently stored.",
		}),
	}
}

// NewRegistry returns a registry carrying the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// ObserveRender records one wallpaper render.
func (r *Recorder) ObserveRender(d time.Duration, err error) {
	if r == nil {
		return
	}

	result := ResultOK
	if err != nil {
		result = ResultError
	}

	r.rendersTotal.WithLabelValues(result).Inc()
	r.renderDuration.Observe(d.Seconds())
}

// QuoteResolved counts a quote served from source.
func (r *Recorder) QuoteResolved(source string) {
	if r == nil {
		return
	}

	r.resolutions.WithLabelValues(source).Inc()
}

// SourceFailed counts a failed upstream fetch.
func (r *Recorder) SourceFailed(source string) {
	if r == nil {
		return
	}

	r.sourceFailures.WithLabelValues(source).Inc()
}

// CircuitStateChanged publishes the breaker state for source.
func (r *Recorder) CircuitStateChanged(source string, state int) {
	if r == nil {
		return
	}

	r.circuitState.WithLabelValues(source).Set(float64(state))
}

// CounterUpdated records a ledger update of delta on counter.
func (r *Recorder) CounterUpdated(counter string, delta int64) {
	if r == nil || delta == 0 {
		return
	}

	direction := "up"
	if delta < 0 {
		direction = "down"
	}

	r.counterUpdates.WithLabelValues(counter, direction).Inc()
}

// FavoritesStored sets the favorites gauge.
func (r *Recorder) FavoritesStored(n int) {
	if r == nil {
		return
	}

	r.favoritesActive.Set(float64(n))
}
