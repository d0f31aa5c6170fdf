// SPDX-License-Identifier: MIT
// Package: lvcuts/numerics
//
// options.go: defaults and functional options for Tolerances.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs.
//   - New never panics; it only applies already-validated options.

package numerics

import "math"

// Default tolerance values.
const (
	DefaultEpsilon    = 1e-9
	DefaultSumEpsilon = 1e-6
	DefaultFeasTol    = 1e-6
	DefaultInfinity   = 1e20
)

// Panic messages for invalid option values.
const (
	panicEpsilonInvalid    = "numerics: WithEpsilon(eps) requires finite eps >= 0"
	panicSumEpsilonInvalid = "numerics: WithSumEpsilon(eps) requires finite eps >= 0"
	panicFeasTolInvalid    = "numerics: WithFeasTol(tol) requires finite tol >= 0"
	panicInfinityInvalid   = "numerics: WithInfinity(inf) requires finite inf >= 1"
)

// Option mutates a Tolerances value under construction.
type Option func(*Tolerances)

// WithEpsilon sets the generic zero/equality tolerance.
// Panics if eps is negative or not finite.
func WithEpsilon(eps float64) Option {
	if !isFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(t *Tolerances) { t.epsilon = eps }
}

// WithSumEpsilon sets the tolerance applied to accumulated sums.
// Panics if eps is negative or not finite.
func WithSumEpsilon(eps float64) Option {
	if !isFinite(eps) || eps < 0 {
		panic(panicSumEpsilonInvalid)
	}

	return func(t *Tolerances) { t.sumepsilon = eps }
}

// WithFeasTol sets the feasibility tolerance.
// Panics if tol is negative or not finite.
func WithFeasTol(tol float64) Option {
	if !isFinite(tol) || tol < 0 {
		panic(panicFeasTolInvalid)
	}

	return func(t *Tolerances) { t.feastol = tol }
}

// WithInfinity sets the infinity sentinel. It must itself be finite so
// that bound arithmetic never produces NaN.
func WithInfinity(inf float64) Option {
	if !isFinite(inf) || inf < 1 {
		panic(panicInfinityInvalid)
	}

	return func(t *Tolerances) { t.infinity = inf }
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
