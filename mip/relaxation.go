// SPDX-License-Identifier: MIT
//
// File: relaxation.go
// Role: LP relaxation solve via gonum's simplex.
//
// The relaxation min c·x, lhs ≤ Ax+const ≤ rhs, lb ≤ x ≤ ub is rewritten
// into gonum's standard form min c'·y, A'y = b, y ≥ 0:
//   - x = lb + y     when lb is finite (plus y + s = ub-lb if ub is finite),
//   - x = ub - y     when only ub is finite,
//   - x = y⁺ - y⁻    when x is free;
//   - every finite row side gets its own slack column, equalities none.

package mip

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

type stdTerm struct {
	col  int
	sign float64
}

type stdVar struct {
	offset float64
	terms  []stdTerm
}

type stdRow struct {
	coefs map[int]float64
	slack float64 // +1, -1 or 0 (no slack)
	b     float64
}

// SolveRelaxation minimises obj·x over the LP relaxation with global
// bounds, stores the optimal values as the LP solution and sets each
// row's basis status (BasisLower/BasisUpper when tight at that side).
//
// Errors:
//   - ErrDimensionMismatch if len(obj) != NVars.
//   - ErrInfeasible, ErrUnbounded, or a wrapped gonum error.
//
// Complexity: dominated by the dense simplex, O(m·n) memory.
func (p *Problem) SolveRelaxation(obj []float64) (float64, error) {
	if len(obj) != p.NVars() {
		return 0, fmt.Errorf("SolveRelaxation: %d costs for %d vars: %w", len(obj), p.NVars(), ErrDimensionMismatch)
	}

	ncols := 0
	mapping := make([]stdVar, p.NVars())
	var rows []stdRow
	for j, v := range p.vars {
		lbinf, ubinf := p.tol.IsInfinity(-v.LB), p.tol.IsInfinity(v.UB)
		switch {
		case !lbinf:
			mapping[j] = stdVar{offset: v.LB, terms: []stdTerm{{col: ncols, sign: 1}}}
			if !ubinf {
				rows = append(rows, stdRow{coefs: map[int]float64{ncols: 1}, slack: 1, b: v.UB - v.LB})
			}
			ncols++
		case !ubinf:
			mapping[j] = stdVar{offset: v.UB, terms: []stdTerm{{col: ncols, sign: -1}}}
			ncols++
		default:
			mapping[j] = stdVar{terms: []stdTerm{{col: ncols, sign: 1}, {col: ncols + 1, sign: -1}}}
			ncols += 2
		}
	}

	for _, r := range p.rows {
		coefs := make(map[int]float64)
		shift := r.Constant
		for k, c := range r.Cols {
			m := mapping[c]
			shift += r.Vals[k] * m.offset
			for _, t := range m.terms {
				coefs[t.col] += r.Vals[k] * t.sign
			}
		}
		if len(coefs) == 0 {
			if (!p.tol.IsInfinity(r.RHS) && p.tol.IsFeasLT(r.RHS, shift)) || (!p.tol.IsInfinity(-r.LHS) && p.tol.IsFeasGT(r.LHS, shift)) {
				return 0, fmt.Errorf("SolveRelaxation: empty row %q: %w", r.Name, ErrInfeasible)
			}
			continue
		}
		switch {
		case p.tol.IsEQ(r.LHS, r.RHS):
			rows = append(rows, stdRow{coefs: coefs, b: r.RHS - shift})
		default:
			if !p.tol.IsInfinity(r.RHS) {
				rows = append(rows, stdRow{coefs: coefs, slack: 1, b: r.RHS - shift})
			}
			if !p.tol.IsInfinity(-r.LHS) {
				rows = append(rows, stdRow{coefs: coefs, slack: -1, b: r.LHS - shift})
			}
		}
	}

	nstruct := ncols
	cost := make([]float64, nstruct)
	objshift := 0.0
	for j, m := range mapping {
		objshift += obj[j] * m.offset
		for _, t := range m.terms {
			cost[t.col] += obj[j] * t.sign
		}
	}

	// gonum rejects all-zero columns; pin unused columns at 0 or report
	// unboundedness when their cost is negative.
	used := make([]bool, nstruct)
	for _, r := range rows {
		for c := range r.coefs {
			used[c] = true
		}
	}
	for c := 0; c < nstruct; c++ {
		if used[c] {
			continue
		}
		if cost[c] < 0 {
			return 0, fmt.Errorf("SolveRelaxation: %w", ErrUnbounded)
		}
		rows = append(rows, stdRow{coefs: map[int]float64{c: 1}, slack: 1})
	}

	for i := range rows {
		if rows[i].slack != 0 {
			ncols++
		}
	}

	cost = append(cost, make([]float64, ncols-nstruct)...)

	var y []float64
	if len(rows) == 0 {
		y = make([]float64, ncols)
	} else {
		a := mat.NewDense(len(rows), ncols, nil)
		b := make([]float64, len(rows))
		scol := nstruct
		for i, r := range rows {
			sign := 1.0
			if r.b < 0 {
				sign = -1
			}
			for c, v := range r.coefs {
				a.Set(i, c, sign*v)
			}
			if r.slack != 0 {
				a.Set(i, scol, sign*r.slack)
				scol++
			}
			b[i] = sign * r.b
		}

		var err error
		_, y, err = lp.Simplex(cost, a, b, 0, nil)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return 0, fmt.Errorf("SolveRelaxation: %w", ErrInfeasible)
		case errors.Is(err, lp.ErrUnbounded):
			return 0, fmt.Errorf("SolveRelaxation: %w", ErrUnbounded)
		case err != nil:
			return 0, fmt.Errorf("SolveRelaxation: %w", err)
		}
	}

	x := make([]float64, p.NVars())
	objval := objshift
	for j, m := range mapping {
		x[j] = m.offset
		for _, t := range m.terms {
			x[j] += t.sign * y[t.col]
		}
		objval += obj[j] * (x[j] - m.offset)
	}
	if err := p.SetLPSolution(x); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.rows {
		act := p.Activity(r, nil)
		switch {
		case !p.tol.IsInfinity(-r.LHS) && p.tol.IsFeasEQ(act, r.LHS):
			r.Basis = BasisLower
		case !p.tol.IsInfinity(r.RHS) && p.tol.IsFeasEQ(act, r.RHS):
			r.Basis = BasisUpper
		default:
			r.Basis = BasisBasic
		}
	}

	return objval, nil
}
