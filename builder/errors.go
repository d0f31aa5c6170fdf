// SPDX-License-Identifier: MIT
// Package: lvcuts/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Factories attach context with %w ("Knapsack: n=0 < min=1: ...").
//   • Validation panics are confined to WithX option constructors.

package builder

import "errors"

// ErrTooFewVars indicates a size parameter below the factory minimum.
var ErrTooFewVars = errors.New("builder: too few variables")

// ErrBadSolution indicates a WithSolution vector whose length does not
// match the fixture.
var ErrBadSolution = errors.New("builder: solution does not match fixture")

// ErrInfeasibleFixture indicates that the LP relaxation of the generated
// fixture could not be solved.
var ErrInfeasibleFixture = errors.New("builder: LP relaxation not solvable")
