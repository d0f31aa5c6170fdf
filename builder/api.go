// SPDX-License-Identifier: MIT
// Package: lvcuts/builder
//
// api.go: fixture factories.
//
// Contract:
//   • Variables are added in type order (binary, integer, continuous), as
//     mip.Problem requires.
//   • Same inputs, options and seed ⇒ identical problems and LP solutions.
//   • Factories never panic; they return sentinel errors wrapped with the
//     factory name.

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvcuts/mip"
)

const (
	methodKnapsack      = "Knapsack"
	methodFixedCharge   = "FixedCharge"
	methodMixedKnapsack = "MixedKnapsack"

	minItems = 1
)

// Knapsack builds max Σ p_i x_i s.t. Σ w_i x_i ≤ floor(ratio·Σ w), x
// binary. The row is integral. Profits are w_i plus a draw from [0,3].
//
// Complexity: O(n) plus one LP solve.
func Knapsack(n int, opts ...BuilderOption) (*mip.Problem, error) {
	if n < minItems {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodKnapsack, n, minItems, ErrTooFewVars)
	}
	cfg := newBuilderConfig(opts...)
	p := mip.NewProblem(mip.WithTolerances(cfg.tol))

	cols := make([]int, n)
	w := make([]float64, n)
	obj := make([]float64, n)
	for i := 0; i < n; i++ {
		if _, err := p.AddVar(fmt.Sprintf("x%d", i), mip.Binary, 0, 1); err != nil {
			return nil, fmt.Errorf("%s: %w", methodKnapsack, err)
		}
		cols[i] = i
		w[i] = float64(cfg.weight(i))
		obj[i] = -(w[i] + float64(cfg.intIn(0, 3, n+i)))
	}
	capacity := math.Floor(cfg.ratio * floats.Sum(w))
	if _, err := p.AddRow("capacity", cols, w, math.Inf(-1), capacity, mip.WithIntegral()); err != nil {
		return nil, fmt.Errorf("%s: %w", methodKnapsack, err)
	}

	return finish(methodKnapsack, p, obj, cfg)
}

// FixedCharge builds a single-node flow problem: binaries x_0..x_{n-1}
// open arcs, flows y_i ∈ [0, u_i] need y_i ≤ u_i·x_i (row "link<i>" and a
// variable upper bound), and Σ y_i ≥ ratio·Σ u_i ("demand"). The
// objective min Σ f_i x_i + c_i y_i favours fractional x in the LP.
//
// Variable layout: x_i at i, y_i at n+i.
func FixedCharge(n int, opts ...BuilderOption) (*mip.Problem, error) {
	if n < minItems {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodFixedCharge, n, minItems, ErrTooFewVars)
	}
	cfg := newBuilderConfig(opts...)
	p := mip.NewProblem(mip.WithTolerances(cfg.tol))

	obj := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		if _, err := p.AddVar(fmt.Sprintf("x%d", i), mip.Binary, 0, 1); err != nil {
			return nil, fmt.Errorf("%s: %w", methodFixedCharge, err)
		}
		obj[i] = float64(cfg.intIn(5, 20, i))
	}
	u := make([]float64, n)
	for i := 0; i < n; i++ {
		u[i] = float64(cfg.weight(i))
		if _, err := p.AddVar(fmt.Sprintf("y%d", i), mip.Continuous, 0, u[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", methodFixedCharge, err)
		}
		obj[n+i] = float64(cfg.intIn(1, 3, n+i))
	}

	flows := make([]int, n)
	ones := make([]float64, n)
	for i := 0; i < n; i++ {
		y := n + i
		flows[i], ones[i] = y, 1
		if err := p.AddVUB(y, i, u[i], 0); err != nil {
			return nil, fmt.Errorf("%s: %w", methodFixedCharge, err)
		}
		if _, err := p.AddRow(fmt.Sprintf("link%d", i), []int{y, i}, []float64{1, -u[i]}, math.Inf(-1), 0); err != nil {
			return nil, fmt.Errorf("%s: %w", methodFixedCharge, err)
		}
	}
	demand := cfg.ratio * floats.Sum(u)
	if _, err := p.AddRow("demand", flows, ones, demand, math.Inf(1)); err != nil {
		return nil, fmt.Errorf("%s: %w", methodFixedCharge, err)
	}

	return finish(methodFixedCharge, p, obj, cfg)
}

// MixedKnapsack builds max Σ p_i x_i - Σ 2 s_j s.t.
// Σ a_i x_i - Σ s_j ≤ b with general integers x_i ∈ [0, ub_i], half-integral
// a_i, continuous s_j ∈ [0, v_j] and b = floor(ratio·Σ a_i ub_i) + 0.5.
//
// Variable layout: x_i at i, s_j at nint+j.
func MixedKnapsack(nint, ncont int, opts ...BuilderOption) (*mip.Problem, error) {
	if nint < minItems || ncont < 0 {
		return nil, fmt.Errorf("%s: nint=%d ncont=%d: %w", methodMixedKnapsack, nint, ncont, ErrTooFewVars)
	}
	cfg := newBuilderConfig(opts...)
	p := mip.NewProblem(mip.WithTolerances(cfg.tol))

	n := nint + ncont
	cols := make([]int, n)
	vals := make([]float64, n)
	obj := make([]float64, n)
	mass := 0.0
	for i := 0; i < nint; i++ {
		ub := float64(cfg.intIn(1, 4, i))
		if _, err := p.AddVar(fmt.Sprintf("x%d", i), mip.Integer, 0, ub); err != nil {
			return nil, fmt.Errorf("%s: %w", methodMixedKnapsack, err)
		}
		cols[i] = i
		vals[i] = 0.5 * float64(cfg.weight(i))
		obj[i] = -(vals[i] + float64(cfg.intIn(0, 2, n+i)))
		mass += vals[i] * ub
	}
	for j := 0; j < ncont; j++ {
		k := nint + j
		if _, err := p.AddVar(fmt.Sprintf("s%d", j), mip.Continuous, 0, float64(cfg.intIn(1, 5, k))); err != nil {
			return nil, fmt.Errorf("%s: %w", methodMixedKnapsack, err)
		}
		cols[k], vals[k], obj[k] = k, -1, 2
	}
	rhs := math.Floor(cfg.ratio*mass) + 0.5
	if _, err := p.AddRow("knapsack", cols, vals, math.Inf(-1), rhs); err != nil {
		return nil, fmt.Errorf("%s: %w", methodMixedKnapsack, err)
	}

	return finish(methodMixedKnapsack, p, obj, cfg)
}

// finish sets the configured solution or solves the relaxation for obj.
func finish(method string, p *mip.Problem, obj []float64, cfg builderConfig) (*mip.Problem, error) {
	if cfg.solution != nil {
		if len(cfg.solution) != p.NVars() {
			return nil, fmt.Errorf("%s: %d values for %d vars: %w", method, len(cfg.solution), p.NVars(), ErrBadSolution)
		}
		if err := p.SetLPSolution(cfg.solution); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}

		return p, nil
	}
	if _, err := p.SolveRelaxation(obj); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", method, ErrInfeasibleFixture, err)
	}

	return p, nil
}
