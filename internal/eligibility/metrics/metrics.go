package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for scheme loading and eligibility checks.
type Metrics struct {
	// Loads by source and result
	Loads *prometheus.CounterVec

	// Size of the published scheme set
	SchemesLoaded prometheus.Gauge

	// Entries and criteria discarded by the canonicalizer
	Dropped *prometheus.CounterVec

	// Per-scheme verdicts across all checks
	Verdicts *prometheus.CounterVec

	LoadLatency  prometheus.Histogram
	CheckLatency prometheus.Histogram
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eligo_scheme_loads_total",
			Help: "Scheme loads by source and result",
		}, []string{"source", "result"}), // result: "ok", "rejected", "failed"

		SchemesLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "eligo_schemes_loaded",
			Help: "Number of schemes in the published snapshot",
		}),

		Dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eligo_normalize_dropped_total",
			Help: "Scheme entries and criteria dropped during normalization",
		}, []string{"kind"}), // kind: "scheme", "criterion"

		Verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eligo_check_verdicts_total",
			Help: "Per-scheme verdicts produced by eligibility checks",
		}, []string{"verdict"}),

		LoadLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eligo_load_duration_seconds",
			Help:    "Duration of scheme loads including extraction",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		CheckLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eligo_check_duration_seconds",
			Help:    "Duration of eligibility checks",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementLoad records a load attempt.
func (m *Metrics) IncrementLoad(source, result string) {
	if m != nil {
		m.Loads.WithLabelValues(source, result).Inc()
	}
}

// SetSchemesLoaded records the size of the published snapshot.
func (m *Metrics) SetSchemesLoaded(n int) {
	if m != nil {
		m.SchemesLoaded.Set(float64(n))
	}
}

// AddDropped records discarded schemes and criteria.
func (m *Metrics) AddDropped(schemes, criteria int) {
	if m == nil {
		return
	}
	if schemes > 0 {
		m.Dropped.WithLabelValues("scheme").Add(float64(schemes))
	}
	if criteria > 0 {
		m.Dropped.WithLabelValues("criterion").Add(float64(criteria))
	}
}

// IncrementVerdict records one scheme verdict.
func (m *Metrics) IncrementVerdict(verdict string) {
	if m != nil {
		m.Verdicts.WithLabelValues(verdict).Inc()
	}
}

func (m *Metrics) ObserveLoadLatency(d time.Duration) {
	if m != nil {
		m.LoadLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}
