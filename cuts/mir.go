// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/numerics"
)

// roundMIR applies the MIR function with fractionality f0 to scale·terms
// and adds the result, mapped back to the original variables, to out.
//
// Integer coefficient a' = sign·scale·coef becomes floor(a') when
// frac(a') ≤ f0 and floor(a') + (frac(a')-f0)/(1-f0) otherwise.
// Continuous coefficients become 0 when a' ≥ 0 and a'/(1-f0) otherwise.
func roundMIR(p *mip.Problem, terms []term, scale, f0 float64, out *sparseRow) {
	tol := p.Tolerances()
	firstcont := p.FirstContVar()
	onemf0 := 1 - f0

	for _, tm := range terms {
		v := p.Var(tm.ind)
		sign := float64(tm.sign)
		aj := sign * scale * tm.coef

		if tm.ind < firstcont {
			downaj := tol.Floor(aj)
			fj := aj - downaj
			cutaj := downaj
			if !tol.IsSumLE(fj, f0) {
				cutaj += (fj - f0) / onemf0
			}
			cutaj *= sign
			if tol.IsZero(cutaj) {
				continue
			}
			out.add(tm.ind, cutaj)
			bound := simpleLB(v, tm.btype)
			if tm.sign < 0 {
				bound = simpleUB(v, tm.btype)
			}
			out.rhs = out.rhs.Add(numerics.ProdDD(cutaj, bound))
			continue
		}

		if aj >= 0 {
			continue
		}
		cutaj := sign * aj / onemf0
		if tol.IsZero(cutaj) {
			continue
		}
		out.add(tm.ind, cutaj)
		if tm.btype < 0 {
			bound := simpleLB(v, tm.btype)
			if tm.sign < 0 {
				bound = simpleUB(v, tm.btype)
			}
			out.rhs = out.rhs.Add(numerics.ProdDD(cutaj, bound))
			continue
		}
		vb := v.VLBs[tm.btype]
		if tm.sign < 0 {
			vb = v.VUBs[tm.btype]
		}
		out.add(vb.Var, -cutaj*vb.Coef)
		out.rhs = out.rhs.Add(numerics.ProdDD(cutaj, vb.Const))
	}
}

// substituteMIR rounds the slack of every contributing row and replaces
// it by its definition. A slack is integral when its row is integral and
// the used side minus the row constant is integral.
func substituteMIR(p *mip.Problem, row *aggrrow.Row, scale, f0 float64, out *sparseRow) {
	tol := p.Tolerances()
	onemf0 := 1 - f0
	weights, signs := row.RowWeights(), row.SlackSigns()

	for i, pos := range row.RowInds() {
		r := p.Row(pos)
		sign := float64(signs[i])
		ar := sign * scale * weights[i]

		side := r.RHS - r.Constant
		if signs[i] < 0 {
			side = r.LHS - r.Constant
		}

		var cutar float64
		if r.Integral && tol.IsFeasIntegral(side) {
			downar := tol.Floor(ar)
			fr := ar - downar
			cutar = downar
			if !tol.IsLE(fr, f0) {
				cutar += (fr - f0) / onemf0
			}
		} else {
			if ar >= 0 {
				continue
			}
			cutar = ar / onemf0
		}
		if tol.IsZero(cutar) {
			continue
		}

		out.addRow(r, -sign*cutar)
		if r.Integral {
			if signs[i] > 0 {
				side = tol.FeasFloor(side)
			} else {
				side = tol.FeasCeil(side)
			}
		}
		out.rhs = out.rhs.Sub(numerics.ProdDD(sign*cutar, side))
	}
}

// CalcMIR computes the complemented MIR cut of scale·row.
//
// Steps: copy and clean the scaled row, complement every variable onto its
// chosen bound, require the fractionality f0 of the rhs to lie in
// [MinFrac, MaxFrac] and |Scale|/(1-f0) ≤ MaxCMIRScale, round, substitute
// the slacks of the contributing rows, clean the result.
//
// sol == nil separates the LP solution.
//
// Errors: ErrNilRow, ErrDimensionMismatch, ErrInvalidCombination,
// ErrBadBoundChoice, scratch.ErrDirty.
func CalcMIR(sol []float64, row *aggrrow.Row, params MIRParams) (res Result, err error) {
	p, err := checkInput("CalcMIR", row, sol)
	if err != nil {
		return Result{}, err
	}
	if err = params.validate(p.NVars()); err != nil {
		return Result{}, fmt.Errorf("CalcMIR: %w", err)
	}
	defer func() {
		if err == nil {
			params.observe(GenMIR, res)
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

	t, err := transformMIR(p, sol, coefs, inds, rhs, boundOpts{
		boundswitch:    params.BoundSwitch,
		usevbds:        params.UseVBDs,
		allowlocal:     params.AllowLocal,
		fixintegralrhs: params.FixIntegralRHS,
		ignoresol:      params.IgnoreSol,
		forced:         params.BoundsForTrans,
		minfrac:        params.MinFrac,
		maxfrac:        params.MaxFrac,
	})
	if err != nil {
		return Result{}, fmt.Errorf("CalcMIR: %w", err)
	}
	if t == nil {
		log.Debug("mir: free variable", slog.Int("nnz", len(inds)))
		return fail(ErrFreeVariable), nil
	}
	local = local || t.localbdsused

	mkrhs := t.rhs.Float()
	downrhs := numerics.EpsFloor(mkrhs, tol.SumEpsilon())
	f0 := mkrhs - downrhs
	if f0 < params.MinFrac || f0 > params.MaxFrac {
		log.Debug("mir: fractionality outside window", slog.Float64("f0", f0))
		return fail(ErrOutOfFractionalityWindow), nil
	}
	if math.Abs(params.Scale)/(1-f0) > MaxCMIRScale {
		log.Debug("mir: scale too large", slog.Float64("f0", f0), slog.Float64("scale", params.Scale))
		return fail(ErrInvalidScale), nil
	}

	out := newSparseRow(p.NVars(), len(t.terms))
	out.rhs = numerics.DDFrom(downrhs)
	roundMIR(p, t.terms, 1, f0, out)
	substituteMIR(p, row, params.Scale, f0, out)
	cut, err := out.finish(p, sol, local, row.Rank()+1)
	if err != nil {
		return Result{}, fmt.Errorf("CalcMIR: %w", err)
	}

	return Result{Cut: cut, Success: true}, nil
}
