// SPDX-License-Identifier: MIT
// Package: lvcuts/aggrrow
//
// aggrrow.go: AddRow, SumRows, RemoveZeros and accessors.

package aggrrow

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/scratch"
)

// Problem returns the problem the row is defined over.
func (r *Row) Problem() *mip.Problem { return r.prob }

// Vals returns the coefficients. The slice aliases the row's storage.
func (r *Row) Vals() []float64 { return r.vals }

// Inds returns the variable indices parallel to Vals.
func (r *Row) Inds() []int { return r.inds }

// NNZ returns the number of stored coefficients.
func (r *Row) NNZ() int { return len(r.inds) }

// RHS returns the right-hand side.
func (r *Row) RHS() float64 { return r.rhs }

// Rank returns the maximal rank of the contributing rows.
func (r *Row) Rank() int { return r.rank }

// Local reports whether a contributing row is only locally valid.
func (r *Row) Local() bool { return r.local }

// NRows returns the number of contributing rows.
func (r *Row) NRows() int { return len(r.rowsinds) }

// RowInds returns the positions of the contributing rows.
func (r *Row) RowInds() []int { return r.rowsinds }

// RowWeights returns the weights of the contributing rows.
func (r *Row) RowWeights() []float64 { return r.rowweights }

// SlackSigns returns +1 (rhs used) or -1 (lhs used) per contributing row.
func (r *Row) SlackSigns() []int { return r.slacksign }

// HasRowBeenAdded reports whether the row at position pos contributed.
// Complexity: O(NRows).
func (r *Row) HasRowBeenAdded(pos int) bool {
	for _, k := range r.rowsinds {
		if k == pos {
			return true
		}
	}

	return false
}

// AbsWeightRange returns the smallest and largest |weight| of the
// contributing rows, or (0, 0) if there are none.
func (r *Row) AbsWeightRange() (minabs, maxabs float64) {
	if len(r.rowweights) == 0 {
		return 0, 0
	}
	abs := make([]float64, len(r.rowweights))
	for i, w := range r.rowweights {
		abs[i] = math.Abs(w)
	}

	return floats.Min(abs), floats.Max(abs)
}

// Clear empties the row but keeps its storage.
func (r *Row) Clear() {
	r.vals = r.vals[:0]
	r.inds = r.inds[:0]
	r.rhs = 0
	r.rank = 0
	r.local = false
	r.rowsinds = r.rowsinds[:0]
	r.slacksign = r.slacksign[:0]
	r.rowweights = r.rowweights[:0]
}

// Copy returns a deep copy.
func (r *Row) Copy() *Row {
	return &Row{
		prob:       r.prob,
		vals:       append([]float64(nil), r.vals...),
		inds:       append([]int(nil), r.inds...),
		rhs:        r.rhs,
		rank:       r.rank,
		local:      r.local,
		rowsinds:   append([]int(nil), r.rowsinds...),
		slacksign:  append([]int(nil), r.slacksign...),
		rowweights: append([]float64(nil), r.rowweights...),
	}
}

// AddRow adds scale·row to the aggregation.
//
// The side used for the right-hand side is chosen by side; for SideAuto
// the lhs is used when the rhs is infinite, or when the lhs is finite and
// scale < 0. For an integral row the side value minus the row constant is
// rounded (ceil for lhs, floor for rhs) with feasibility slack.
// Coefficients that cancel to exactly zero are removed.
//
// Errors: ErrNilRow, ErrBadScale, scratch.ErrDirty.
// Complexity: O(NNZ + len(row.Cols)).
func (r *Row) AddRow(row *mip.Row, scale float64, side SideType) error {
	if row == nil {
		return fmt.Errorf("AddRow: %w", ErrNilRow)
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return fmt.Errorf("AddRow %q: %w", row.Name, ErrBadScale)
	}
	tol := r.prob.Tolerances()

	r.local = r.local || row.Local
	r.rank = max(r.rank, row.Rank)

	var uselhs bool
	switch side {
	case SideLHS:
		uselhs = true
	case SideRHS:
		uselhs = false
	default:
		uselhs = tol.IsInfinity(row.RHS) || (!tol.IsInfinity(-row.LHS) && scale < 0)
	}

	var sideval float64
	if uselhs {
		r.slacksign = append(r.slacksign, -1)
		sideval = row.LHS - row.Constant
		if row.Integral {
			sideval = tol.FeasCeil(sideval)
		}
	} else {
		r.slacksign = append(r.slacksign, 1)
		sideval = row.RHS - row.Constant
		if row.Integral {
			sideval = tol.FeasFloor(sideval)
		}
	}
	r.rowsinds = append(r.rowsinds, row.Pos)
	r.rowweights = append(r.rowweights, scale)
	r.rhs += scale * sideval

	if err := r.addScaledRowCoefs(row, scale); err != nil {
		return fmt.Errorf("AddRow %q: %w", row.Name, err)
	}

	return nil
}

// addScaledRowCoefs merges scale·row into vals/inds.
func (r *Row) addScaledRowCoefs(row *mip.Row, scale float64) error {
	if len(r.inds) == 0 {
		for k, c := range row.Cols {
			r.inds = append(r.inds, c)
			r.vals = append(r.vals, scale*row.Vals[k])
		}

		return nil
	}

	varpos := scratch.Acquire(r.prob.NVars())
	for k, c := range row.Cols {
		varpos.Set(c, k+1)
	}

	// common entries
	cancelled := false
	for i, j := range r.inds {
		if k := varpos.Get(j); k != 0 {
			r.vals[i] += scale * row.Vals[k-1]
			varpos.Clear(j)
			cancelled = cancelled || r.vals[i] == 0
		}
	}

	// remaining entries of the row
	for k, c := range row.Cols {
		if varpos.Get(c) != 0 {
			r.inds = append(r.inds, c)
			r.vals = append(r.vals, scale*row.Vals[k])
			varpos.Clear(c)
		}
	}
	if cancelled {
		r.RemoveZeros(0)
	}

	return varpos.Release()
}

// SumRows clears the row and aggregates Σ weights[k]·row(k) over the rows
// listed in rowinds, or over all rows of the problem if rowinds is nil.
// weights is indexed by row position.
//
// Rows are skipped when modifiable, local without AllowLocal, when their
// |weight| lies below MinAllowedWeight or outside the MaxWeightRange
// window of the weights accepted so far, or when they would enter with a
// negative slack not admitted by the NegSlack policy. With SideTypeBasis a
// ranged row uses the side its basis status is tight at.
//
// valid is false, with reason ErrRowTooLong or ErrEmpty, when the result
// would have more than MaxAggrLen non-zeros or has none. On success
// (near-)zero coefficients are removed.
//
// Errors: ErrBadWeights, scratch.ErrDirty.
// Complexity: O(Σ len(row.Cols)).
func (r *Row) SumRows(weights []float64, rowinds []int, params SumParams) (valid bool, reason error, err error) {
	p := r.prob
	tol := p.Tolerances()
	if rowinds == nil && len(weights) < p.NRows() {
		return false, nil, fmt.Errorf("SumRows: %d weights for %d rows: %w", len(weights), p.NRows(), ErrBadWeights)
	}
	for _, k := range rowinds {
		if k < 0 || k >= p.NRows() || k >= len(weights) {
			return false, nil, fmt.Errorf("SumRows: row %d: %w", k, ErrBadWeights)
		}
	}

	varpos := scratch.Acquire(p.NVars())
	minabs, maxabs := tol.Infinity(), -tol.Infinity()

	r.Clear()

	valid = true
	add := func(pos int) bool {
		if r.addOneRow(p.Row(pos), weights[pos], params, &minabs, &maxabs, varpos) {
			valid, reason = false, ErrRowTooLong
			return false
		}
		return true
	}
	if rowinds != nil {
		for _, k := range rowinds {
			if !add(k) {
				break
			}
		}
	} else {
		for k := 0; k < p.NRows(); k++ {
			if !add(k) {
				break
			}
		}
	}
	if valid && len(r.inds) == 0 {
		valid, reason = false, ErrEmpty
	}

	if valid {
		for k := 0; k < len(r.inds); {
			varpos.Clear(r.inds[k])
			if tol.IsZero(r.vals[k]) {
				r.removeAt(k)
			} else {
				k++
			}
		}
	} else {
		for _, j := range r.inds {
			varpos.Clear(j)
		}
	}

	if err = varpos.Release(); err != nil {
		return false, nil, fmt.Errorf("SumRows: %w", err)
	}

	return valid, reason, nil
}

// addOneRow adds weight·row using a shared position index that is not
// cleared between rows. It reports whether the row became too long.
func (r *Row) addOneRow(row *mip.Row, weight float64, params SumParams, minabs, maxabs *float64, varpos *scratch.PosIndex) bool {
	tol := r.prob.Tolerances()
	absweight := math.Abs(weight)

	if row.Modifiable ||
		(row.Local && !params.AllowLocal) ||
		absweight > params.MaxWeightRange*(*minabs) ||
		*maxabs > params.MaxWeightRange*absweight ||
		absweight < params.MinAllowedWeight {
		return false
	}

	*minabs = math.Min(*minabs, absweight)
	*maxabs = math.Max(*maxabs, absweight)

	var uselhs bool
	if params.SideTypeBasis && !tol.IsEQ(row.LHS, row.RHS) {
		switch {
		case row.Basis == mip.BasisLower:
			uselhs = true
		case row.Basis == mip.BasisUpper:
			uselhs = false
		default:
			uselhs = weight < 0 && !tol.IsInfinity(-row.LHS)
		}
	} else {
		uselhs = weight < 0 && !tol.IsInfinity(-row.LHS)
	}

	negok := params.NegSlack == NegSlackAll || (params.NegSlack == NegSlackIntegral && row.Integral)
	var sideval float64
	if uselhs {
		if weight > 0 && !negok {
			return false
		}
		sideval = row.LHS - row.Constant
		if row.Integral {
			sideval = tol.FeasCeil(sideval)
		}
	} else {
		if weight < 0 && !negok {
			return false
		}
		sideval = row.RHS - row.Constant
		if row.Integral {
			sideval = tol.FeasFloor(sideval)
		}
	}

	r.rhs += sideval * weight
	r.rank = max(r.rank, row.Rank)
	r.local = r.local || row.Local

	r.rowsinds = append(r.rowsinds, row.Pos)
	r.rowweights = append(r.rowweights, weight)
	if uselhs {
		r.slacksign = append(r.slacksign, -1)
	} else {
		r.slacksign = append(r.slacksign, 1)
	}

	for k, c := range row.Cols {
		if pos := varpos.Get(c); pos == 0 {
			r.inds = append(r.inds, c)
			r.vals = append(r.vals, weight*row.Vals[k])
			varpos.Set(c, len(r.inds))
		} else {
			r.vals[pos-1] += weight * row.Vals[k]
		}
	}

	return len(r.inds) > params.MaxAggrLen
}

// RemoveZeros drops coefficients with |v| <= eps. Order is not preserved.
func (r *Row) RemoveZeros(eps float64) {
	for i := 0; i < len(r.inds); {
		if math.Abs(r.vals[i]) <= eps {
			r.removeAt(i)
		} else {
			i++
		}
	}
}

// removeAt deletes entry i by moving the last entry into its place.
func (r *Row) removeAt(i int) {
	last := len(r.inds) - 1
	r.vals[i], r.inds[i] = r.vals[last], r.inds[last]
	r.vals = r.vals[:last]
	r.inds = r.inds[:last]
}
