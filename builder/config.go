// SPDX-License-Identifier: MIT
// Package: lvcuts/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng       = nil       (coefficients follow patternInt)
//   • wmin/wmax = 3 / 12
//   • ratio     = 0.5
//   • tol       = numerics.Default()
//   • solution  = nil       (solve the LP relaxation)

package builder

import (
	"math/rand"

	"github.com/katalvlaran/lvcuts/numerics"
)

const (
	defaultWeightMin = int64(3)
	defaultWeightMax = int64(12)
	defaultRatio     = 0.5
)

// builderConfig aggregates all knobs used by the factories.
type builderConfig struct {
	rng        *rand.Rand
	wmin, wmax int64
	ratio      float64
	tol        *numerics.Tolerances
	solution   []float64
}

// newBuilderConfig applies opts in order over the defaults.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		wmin:  defaultWeightMin,
		wmax:  defaultWeightMax,
		ratio: defaultRatio,
		tol:   numerics.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// intIn draws from [lo, hi]; without an RNG the k-th draw cycles through
// the range with a stride coprime to small range sizes.
func (c builderConfig) intIn(lo, hi int64, k int) int64 {
	span := hi - lo + 1
	if c.rng != nil {
		return lo + c.rng.Int63n(span)
	}

	return lo + (int64(k)*7+3)%span
}

// weight draws the k-th row coefficient.
func (c builderConfig) weight(k int) int64 { return c.intIn(c.wmin, c.wmax, k) }
