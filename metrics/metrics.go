// SPDX-License-Identifier: MIT
// Package: lvcuts/metrics

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/lvcuts/cuts"
)

// Metric names.
const (
	NameAttempts = "lvcuts_cut_attempts_total"
	NameResults  = "lvcuts_cut_results_total"
	NameEfficacy = "lvcuts_cut_efficacy"
)

// EfficacyBuckets spans weak (1e-4) to very deep (10) cuts.
var EfficacyBuckets = []float64{1e-4, 1e-3, 1e-2, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10}

// Collector holds the generator metrics of one registry.
type Collector struct {
	attempts *prometheus.CounterVec
	results  *prometheus.CounterVec
	efficacy *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg. A nil reg creates
// unregistered metrics, which is convenient in tests.
//
// Registering twice on the same registry panics, as promauto does.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		attempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: NameAttempts,
				Help: "Number of cut generator calls",
			},
			[]string{"generator"},
		),
		results: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: NameResults,
				Help: "Number of cut generator calls by outcome",
			},
			[]string{"generator", "outcome"},
		),
		efficacy: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    NameEfficacy,
				Help:    "Efficacy of the generated cuts",
				Buckets: EfficacyBuckets,
			},
			[]string{"generator"},
		),
	}
}

// Observe records one generator call. efficacy is only recorded for
// successful calls (nil reason).
func (c *Collector) Observe(generator string, reason error, efficacy float64) {
	if c == nil {
		return
	}
	c.attempts.WithLabelValues(generator).Inc()
	c.results.WithLabelValues(generator, cuts.ReasonLabel(reason)).Inc()
	if reason == nil {
		c.efficacy.WithLabelValues(generator).Observe(efficacy)
	}
}

var _ cuts.Observer = (*Collector)(nil)
