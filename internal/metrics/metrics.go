// Package metrics exposes Prometheus collectors for the estimate engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/estimator/internal/formula"
)

const namespace = "estimator"

// Edit results recorded by ObserveEdit.
const (
	EditCommitted = "committed"
	EditRejected  = "rejected"
)

// Collectors groups the engine's metrics. A nil *Collectors is valid and
// records nothing.
type Collectors struct {
	Passes        prometheus.Counter
	PassDuration  prometheus.Histogram
	Edits         *prometheus.CounterVec
	FormulaErrors *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		Passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Recalculation and validation passes run.",
		}),
		PassDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Time spent in one recalculation and validation pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		Edits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Cell edits by result.",
		}, []string{"result"}),
		FormulaErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "formula_errors_total",
			Help:      "Formula errors found by recalculation passes, by kind.",
		}, []string{"kind"}),
	}
}

// ObservePass records one settled pass and the formula errors it left behind.
func (c *Collectors) ObservePass(d time.Duration, errs map[string]error) {
	if c == nil {
		return
	}
	c.Passes.Inc()
	c.PassDuration.Observe(d.Seconds())
	for _, err := range errs {
		c.FormulaErrors.WithLabelValues(formula.Kind(err)).Inc()
	}
}

// ObserveEdit records the result of one cell edit.
func (c *Collectors) ObserveEdit(result string) {
	if c == nil {
		return
	}
	c.Edits.WithLabelValues(result).Inc()
}
