// SPDX-License-Identifier: MIT
// Package: lvcuts/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs.
//   • Determinism is explicit: randomness only through WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvcuts/numerics"
)

// BuilderOption customizes a factory by mutating builderConfig before the
// fixture is built.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightRange sets the integer range [lo, hi] of row coefficients.
// Panics unless 1 ≤ lo ≤ hi.
func WithWeightRange(lo, hi int64) BuilderOption {
	if lo < 1 || hi < lo {
		panic("builder: WithWeightRange(lo,hi) requires 1 <= lo <= hi")
	}
	return func(c *builderConfig) { c.wmin, c.wmax = lo, hi }
}

// WithCapacityRatio sets the right-hand side as a fraction of the total
// coefficient mass. Panics unless 0 < r < 1.
func WithCapacityRatio(r float64) BuilderOption {
	if math.IsNaN(r) || r <= 0 || r >= 1 {
		panic("builder: WithCapacityRatio(r) requires 0 < r < 1")
	}
	return func(c *builderConfig) { c.ratio = r }
}

// WithTolerances builds the fixture on t. Panics on nil.
func WithTolerances(t *numerics.Tolerances) BuilderOption {
	if t == nil {
		panic("builder: WithTolerances(nil)")
	}
	return func(c *builderConfig) { c.tol = t }
}

// WithSolution sets the LP solution instead of solving the relaxation.
// The slice is copied; its length is checked by the factory.
func WithSolution(sol []float64) BuilderOption {
	if sol == nil {
		panic("builder: WithSolution(nil)")
	}
	sol = append([]float64(nil), sol...)
	return func(c *builderConfig) { c.solution = sol }
}
