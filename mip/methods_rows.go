// SPDX-License-Identifier: MIT
//
// File: methods_rows.go
// Role: Row creation, basis statuses and activities.

package mip

import (
	"fmt"
	"math"
)

// RowOption configures a Row on creation.
type RowOption func(*Row)

// WithIntegral marks the row's activity as integral.
func WithIntegral() RowOption { return func(r *Row) { r.Integral = true } }

// WithLocal marks the row as valid only in the current subtree.
func WithLocal() RowOption { return func(r *Row) { r.Local = true } }

// WithModifiable marks the row as modifiable.
func WithModifiable() RowOption { return func(r *Row) { r.Modifiable = true } }

// WithRank sets the row's rank.
func WithRank(rank int) RowOption {
	if rank < 0 {
		panic("mip: WithRank(rank<0)")
	}

	return func(r *Row) { r.Rank = rank }
}

// WithConstant sets the constant term of the row activity.
func WithConstant(c float64) RowOption {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		panic("mip: WithConstant(non-finite)")
	}

	return func(r *Row) { r.Constant = c }
}

// WithBasis sets the initial basis status of the row.
func WithBasis(b BasisStatus) RowOption { return func(r *Row) { r.Basis = b } }

// AddRow appends the row lhs ≤ Σ vals[k]·x[cols[k]] ≤ rhs.
//
// Behavior highlights:
//   - Slices are copied; the caller keeps ownership of its inputs.
//   - ±Inf sides are clamped to the infinity sentinel.
//   - Zero coefficients are dropped.
//
// Errors:
//   - ErrDimensionMismatch, ErrVarNotFound, ErrDuplicateColumn,
//     ErrBadCoefficient (NaN/Inf), ErrBadSides.
//
// Complexity: O(len(cols)).
func (p *Problem) AddRow(name string, cols []int, vals []float64, lhs, rhs float64, opts ...RowOption) (*Row, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(cols) != len(vals) {
		return nil, fmt.Errorf("AddRow %q: %d cols, %d vals: %w", name, len(cols), len(vals), ErrDimensionMismatch)
	}
	if math.IsNaN(lhs) || math.IsNaN(rhs) {
		return nil, fmt.Errorf("AddRow %q: %w", name, ErrBadSides)
	}
	lhs, rhs = p.clampBound(lhs), p.clampBound(rhs)
	if lhs > rhs || p.tol.IsInfinity(lhs) || p.tol.IsInfinity(-rhs) {
		return nil, fmt.Errorf("AddRow %q: [%g,%g]: %w", name, lhs, rhs, ErrBadSides)
	}

	seen := make(map[int]struct{}, len(cols))
	r := &Row{
		Name:  name,
		Pos:   len(p.rows),
		LHS:   lhs,
		RHS:   rhs,
		Cols:  make([]int, 0, len(cols)),
		Vals:  make([]float64, 0, len(vals)),
		Basis: BasisBasic,
	}
	for k, c := range cols {
		if c < 0 || c >= len(p.vars) {
			return nil, fmt.Errorf("AddRow %q: column %d: %w", name, c, ErrVarNotFound)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("AddRow %q: column %d: %w", name, c, ErrDuplicateColumn)
		}
		seen[c] = struct{}{}
		if math.IsNaN(vals[k]) || math.IsInf(vals[k], 0) {
			return nil, fmt.Errorf("AddRow %q: column %d: %w", name, c, ErrBadCoefficient)
		}
		if vals[k] == 0 {
			continue
		}
		r.Cols = append(r.Cols, c)
		r.Vals = append(r.Vals, vals[k])
	}
	for _, opt := range opts {
		opt(r)
	}
	p.rows = append(p.rows, r)

	return r, nil
}

// SetBasis sets the basis status of the row at position pos.
func (p *Problem) SetBasis(pos int, b BasisStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pos < 0 || pos >= len(p.rows) {
		return fmt.Errorf("SetBasis %d: %w", pos, ErrRowNotFound)
	}
	p.rows[pos].Basis = b

	return nil
}

// Activity returns Σ vals·sol + constant for row r (LP values if sol is nil).
func (p *Problem) Activity(r *Row, sol []float64) float64 {
	act := r.Constant
	for k, c := range r.Cols {
		act += r.Vals[k] * p.SolVal(sol, c)
	}

	return act
}

// Slack returns the distance of the activity to the nearer finite side.
func (p *Problem) Slack(r *Row, sol []float64) float64 {
	act := p.Activity(r, sol)
	slack := math.Inf(1)
	if !p.tol.IsInfinity(r.RHS) {
		slack = r.RHS - act
	}
	if !p.tol.IsInfinity(-r.LHS) {
		slack = math.Min(slack, act-r.LHS)
	}

	return slack
}
