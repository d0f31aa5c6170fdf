// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/numerics"
)

// transformStrongCG complements continuous variables so that their
// coefficients become non-negative (lower bound for a positive
// coefficient, upper bound otherwise) and integer variables onto their
// closest simple bound. A nil result with a nil error means a free
// variable.
func transformStrongCG(p *mip.Problem, sol []float64, coefs []float64, inds []int, rhs float64, o boundOpts) (*transformed, error) {
	tol := p.Tolerances()
	t := &transformed{terms: sortedTerms(coefs, inds), rhs: numerics.DDFrom(rhs)}
	ncont := splitContinuous(p, t.terms)

	for k := 0; k < ncont; k++ {
		tm := &t.terms[k]
		v := p.Var(tm.ind)
		if tm.coef > 0 {
			tm.lb, tm.lbtype = findBestLB(p, v, sol, o.usevbds, o.allowlocal)
			if tol.IsInfinity(-tm.lb) {
				return nil, nil
			}
			tm.sign, tm.btype = 1, tm.lbtype
			continue
		}
		tm.ub, tm.ubtype = findBestUB(p, v, sol, o.usevbds, o.allowlocal)
		if tol.IsInfinity(tm.ub) {
			return nil, nil
		}
		tm.sign, tm.btype = -1, tm.ubtype
	}

	ok, err := t.complement(p, sol, ncont, o)
	if err != nil || !ok {
		return nil, err
	}

	return t, nil
}

// strongCGCoef is the strong CG rounding of a: floor(a) when frac(a) ≤ f0,
// floor(a) + ceil(k·(frac(a)-f0)/(1-f0))/(k+1) otherwise.
func strongCGCoef(tol *numerics.Tolerances, a, f0, k float64, sumLE bool) float64 {
	down := tol.Floor(a)
	fa := a - down
	le := tol.IsLE(fa, f0)
	if sumLE {
		le = tol.IsSumLE(fa, f0)
	}
	if le {
		return down
	}

	return down + tol.Ceil(k*(fa-f0)/(1-f0))/(k+1)
}

// roundStrongCG rounds the integer entries; continuous entries always get
// coefficient 0.
func roundStrongCG(p *mip.Problem, terms []term, f0, k float64, out *sparseRow) {
	tol := p.Tolerances()
	firstcont := p.FirstContVar()
	for _, tm := range terms {
		if tm.ind >= firstcont {
			continue
		}
		sign := float64(tm.sign)
		cutaj := sign * strongCGCoef(tol, sign*tm.coef, f0, k, true)
		if tol.IsZero(cutaj) {
			continue
		}
		out.add(tm.ind, cutaj)
		v := p.Var(tm.ind)
		bound := simpleLB(v, tm.btype)
		if tm.sign < 0 {
			bound = simpleUB(v, tm.btype)
		}
		out.rhs = out.rhs.Add(numerics.ProdDD(cutaj, bound))
	}
}

// substituteStrongCG substitutes the slacks of integral rows; slacks of
// other rows get coefficient 0.
func substituteStrongCG(p *mip.Problem, row *aggrrow.Row, scale, f0, k float64, out *sparseRow) {
	tol := p.Tolerances()
	weights, signs := row.RowWeights(), row.SlackSigns()
	for i, pos := range row.RowInds() {
		r := p.Row(pos)
		if !r.Integral {
			continue
		}
		sign := float64(signs[i])
		cutar := strongCGCoef(tol, sign*scale*weights[i], f0, k, false)
		if tol.IsZero(cutar) {
			continue
		}
		out.addRow(r, -sign*cutar)
		if signs[i] > 0 {
			out.rhs = out.rhs.Sub(numerics.ProdDD(cutar, tol.FeasFloor(r.RHS-r.Constant)))
		} else {
			out.rhs = out.rhs.Add(numerics.ProdDD(cutar, tol.FeasCeil(r.LHS-r.Constant)))
		}
	}
}

// CalcStrongCG computes the strong Chvátal-Gomory cut of scale·row with
// k = ceil(1/f0) - 1 where f0 is the fractionality of the transformed
// rhs.
//
// Continuous variables and the slacks of non-integral rows always get
// coefficient 0, so the cut is only valid when their transformed
// coefficients are non-negative. The bound choice guarantees this for
// continuous variables; rows are the caller's responsibility.
//
// Errors: ErrNilRow, ErrDimensionMismatch, ErrInvalidCombination,
// scratch.ErrDirty.
func CalcStrongCG(sol []float64, row *aggrrow.Row, params StrongCGParams) (res Result, err error) {
	p, err := checkInput("CalcStrongCG", row, sol)
	if err != nil {
		return Result{}, err
	}
	if err = params.validate(); err != nil {
		return Result{}, fmt.Errorf("CalcStrongCG: %w", err)
	}
	defer func() {
		if err == nil {
			params.observe(GenStrongCG, res)
		}
	}()
	tol := p.Tolerances()
	log := params.logger()

	coefs := make([]float64, row.NNZ())
	for k, v := range row.Vals() {
		coefs[k] = params.Scale * v
	}
	inds := append([]int(nil), row.Inds()...)
	local := row.Local()
	coefs, inds, rhs := CleanupCut(p, local, coefs, inds, params.Scale*row.RHS())

	t, err := transformStrongCG(p, sol, coefs, inds, rhs, boundOpts{
		boundswitch: params.BoundSwitch,
		usevbds:     params.UseVBDs,
		allowlocal:  params.AllowLocal,
	})
	if err != nil {
		return Result{}, fmt.Errorf("CalcStrongCG: %w", err)
	}
	if t == nil {
		log.Debug("strongcg: free variable", slog.Int("nnz", len(inds)))
		return fail(ErrFreeVariable), nil
	}
	local = local || t.localbdsused

	mkrhs := t.rhs.Float()
	downrhs := tol.Floor(mkrhs)
	f0 := mkrhs - downrhs
	if f0 < params.MinFrac || f0 > params.MaxFrac {
		log.Debug("strongcg: fractionality outside window", slog.Float64("f0", f0))
		return fail(ErrOutOfFractionalityWindow), nil
	}
	k := tol.Ceil(1/f0) - 1

	out := newSparseRow(p.NVars(), len(t.terms))
	out.rhs = numerics.DDFrom(downrhs)
	roundStrongCG(p, t.terms, f0, k, out)
	substituteStrongCG(p, row, params.Scale, f0, k, out)
	cut, err := out.finish(p, sol, local, row.Rank()+1)
	if err != nil {
		return Result{}, fmt.Errorf("CalcStrongCG: %w", err)
	}

	return Result{Cut: cut, Success: true}, nil
}
