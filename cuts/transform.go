// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts
//
// transform.go: bound selection and the substitution x = bound ± x'
// shared by the MIR, c-MIR and Strong CG generators.

package cuts

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/numerics"
	"github.com/katalvlaran/lvcuts/scratch"
)

// Bound type encoding: k ≥ 0 is the position of a variable bound.
const (
	bndGlobal = -1
	bndLocal  = -2
)

// term is coef·x where x = bound + x' (sign +1) or x = bound - x'
// (sign -1); btype names the bound that was substituted.
type term struct {
	ind   int
	coef  float64
	sign  int
	btype int

	// Best bounds found for the variable, kept for re-complementation.
	lb, ub         float64
	lbtype, ubtype int
}

// transformed is a row over complemented variables: Σ coef·x ≤ rhs with
// every x replaced by its bound substitution.
type transformed struct {
	terms        []term
	rhs          numerics.DD
	localbdsused bool
}

func (t *transformed) copyTerms() []term {
	return append([]term(nil), t.terms...)
}

func simpleLB(v *mip.Var, btype int) float64 {
	if btype == bndLocal {
		return v.LocalLB
	}

	return v.LB
}

func simpleUB(v *mip.Var, btype int) float64 {
	if btype == bndLocal {
		return v.LocalUB
	}

	return v.UB
}

// findBestLB returns the tightest lower bound of v: global, local when
// allowed and strictly larger, or the closest variable lower bound when
// allowed for a continuous v and at least as large.
func findBestLB(p *mip.Problem, v *mip.Var, sol []float64, usevbds, allowlocal bool) (float64, int) {
	tol := p.Tolerances()
	best, btype := v.LB, bndGlobal
	if allowlocal && tol.IsGT(v.LocalLB, best) {
		best, btype = v.LocalLB, bndLocal
	}
	if usevbds && v.Type == mip.Continuous {
		vlb, k := p.ClosestVLB(v.Index, sol)
		if k >= 0 && v.VLBs[k].Var < v.Index && tol.IsGE(vlb, best) {
			best, btype = vlb, k
		}
	}

	return best, btype
}

// findBestUB mirrors findBestLB for upper bounds.
func findBestUB(p *mip.Problem, v *mip.Var, sol []float64, usevbds, allowlocal bool) (float64, int) {
	tol := p.Tolerances()
	best, btype := v.UB, bndGlobal
	if allowlocal && tol.IsLT(v.LocalUB, best) {
		best, btype = v.LocalUB, bndLocal
	}
	if usevbds && v.Type == mip.Continuous {
		vub, k := p.ClosestVUB(v.Index, sol)
		if k >= 0 && v.VUBs[k].Var < v.Index && tol.IsLE(vub, best) {
			best, btype = vub, k
		}
	}

	return best, btype
}

// boundOpts are the knobs of the bound transformation.
type boundOpts struct {
	boundswitch    float64
	usevbds        bool
	allowlocal     bool
	fixintegralrhs bool
	ignoresol      bool
	forced         []BoundChoice
	minfrac        float64
	maxfrac        float64
}

// forcedBound evaluates a forced bound choice for v.
func forcedBound(p *mip.Problem, v *mip.Var, sol []float64, c BoundChoice) (float64, int, error) {
	switch c.Kind {
	case BoundGlobal:
		if c.Upper {
			return v.UB, bndGlobal, nil
		}
		return v.LB, bndGlobal, nil
	case BoundLocal:
		if c.Upper {
			return v.LocalUB, bndLocal, nil
		}
		return v.LocalLB, bndLocal, nil
	case BoundVariable:
		vbs := v.VLBs
		if c.Upper {
			vbs = v.VUBs
		}
		if v.Type != mip.Continuous || c.VB < 0 || c.VB >= len(vbs) {
			return 0, 0, fmt.Errorf("var %q bound %d: %w", v.Name, c.VB, ErrBadBoundChoice)
		}
		vb := vbs[c.VB]
		return vb.Coef*p.SolVal(sol, vb.Var) + vb.Const, c.VB, nil
	default:
		return 0, 0, fmt.Errorf("var %q kind %d: %w", v.Name, c.Kind, ErrBadBoundChoice)
	}
}

// determineBestBounds picks the bound substituted for v and fills the
// bound fields and sign of tm. It reports false for a free variable.
func determineBestBounds(p *mip.Problem, v *mip.Var, sol []float64, o boundOpts, tm *term) (bool, error) {
	tol := p.Tolerances()

	if o.forced != nil && o.forced[v.Index].Kind != BoundAuto {
		c := o.forced[v.Index]
		val, btype, err := forcedBound(p, v, sol, c)
		if err != nil {
			return false, err
		}
		if c.Upper {
			tm.ub, tm.ubtype = val, btype
			tm.lb, tm.lbtype = findBestLB(p, v, sol, o.usevbds && o.fixintegralrhs, o.allowlocal && o.fixintegralrhs)
			tm.sign, tm.btype = -1, btype
			return !tol.IsInfinity(val), nil
		}
		tm.lb, tm.lbtype = val, btype
		tm.ub, tm.ubtype = findBestUB(p, v, sol, o.usevbds && o.fixintegralrhs, o.allowlocal && o.fixintegralrhs)
		tm.sign, tm.btype = 1, btype
		return !tol.IsInfinity(-val), nil
	}

	tm.lb, tm.lbtype = findBestLB(p, v, sol, o.usevbds, o.allowlocal)
	tm.ub, tm.ubtype = findBestUB(p, v, sol, o.usevbds, o.allowlocal)
	lbinf, ubinf := tol.IsInfinity(-tm.lb), tol.IsInfinity(tm.ub)
	if lbinf && ubinf {
		return false, nil
	}

	lower := true
	switch {
	case !o.ignoresol:
		solval := p.SolVal(sol, v.Index)
		mid := (1-o.boundswitch)*tm.lb + o.boundswitch*tm.ub
		switch {
		case ubinf:
			lower = true
		case lbinf:
			lower = false
		case tol.IsLT(solval, mid):
			lower = true
		case tol.IsGT(solval, mid):
			lower = false
		case tm.lbtype == bndGlobal:
			lower = true
		case tm.ubtype == bndGlobal:
			lower = false
		case tm.lbtype >= 0:
			lower = true
		case tm.ubtype >= 0:
			lower = false
		}
	default:
		// Structural choice: prefer the bound that stayed at its global
		// value or the one closer to it.
		switch {
		case lbinf:
			lower = false
		case tol.IsNegative(tm.lb):
			lower = true
		case ubinf, tol.IsZero(v.LB):
			lower = true
		default:
			lower = tol.IsLE(math.Abs(v.LB-tm.lb), math.Abs(v.UB-tm.ub))
		}
	}

	if lower {
		tm.sign, tm.btype = 1, tm.lbtype
	} else {
		tm.sign, tm.btype = -1, tm.ubtype
	}

	return true, nil
}

// sortedTerms returns the entries of the row sorted by decreasing index,
// so continuous variables come first.
func sortedTerms(coefs []float64, inds []int) []term {
	terms := make([]term, len(inds))
	for k, i := range inds {
		terms[k] = term{ind: i, coef: coefs[k]}
	}
	sort.Slice(terms, func(a, b int) bool { return terms[a].ind > terms[b].ind })

	return terms
}

// substituteContinuous replaces every continuous variable by its chosen
// bound. Variable-bound substitutions move b·coef onto the reference
// variable's entry, which varpos locates (position + 1).
func substituteContinuous(p *mip.Problem, t *transformed, varpos *scratch.PosIndex, ncont int) {
	for k := 0; k < ncont; k++ {
		tm := t.terms[k]
		v := p.Var(tm.ind)
		if tm.btype < 0 {
			bound := simpleLB(v, tm.btype)
			if tm.sign < 0 {
				bound = simpleUB(v, tm.btype)
			}
			t.rhs = t.rhs.Sub(numerics.ProdDD(tm.coef, bound))
			t.localbdsused = t.localbdsused || tm.btype == bndLocal
			continue
		}

		vb := v.VLBs[tm.btype]
		if tm.sign < 0 {
			vb = v.VUBs[tm.btype]
		}
		t.rhs = t.rhs.Sub(numerics.ProdDD(tm.coef, vb.Const))
		if pos := varpos.Get(vb.Var); pos > 0 {
			t.terms[pos-1].coef += tm.coef * vb.Coef
		} else {
			t.terms = append(t.terms, term{ind: vb.Var, coef: tm.coef * vb.Coef})
			varpos.Set(vb.Var, len(t.terms))
		}
	}
}

// splitContinuous returns the number of leading continuous entries of
// terms sorted by decreasing index.
func splitContinuous(p *mip.Problem, terms []term) int {
	firstcont := p.FirstContVar()
	ncont := 0
	for ncont < len(terms) && terms[ncont].ind >= firstcont {
		ncont++
	}

	return ncont
}

// complement substitutes the continuous entries, whose bounds are already
// chosen, then chooses simple bounds for the integer entries and
// substitutes them as well. Integer entries with a zero coefficient are
// dropped. It reports false for a free integer variable.
func (t *transformed) complement(p *mip.Problem, sol []float64, ncont int, o boundOpts) (bool, error) {
	tol := p.Tolerances()

	varpos := scratch.Acquire(p.NVars())
	for k := ncont; k < len(t.terms); k++ {
		varpos.Set(t.terms[k].ind, k+1)
	}
	substituteContinuous(p, t, varpos, ncont)
	for k := ncont; k < len(t.terms); k++ {
		varpos.Clear(t.terms[k].ind)
	}
	if err := varpos.Release(); err != nil {
		return false, fmt.Errorf("transform: %w", err)
	}

	o.usevbds = false
	for k := ncont; k < len(t.terms); {
		tm := &t.terms[k]
		if tol.IsZero(tm.coef) {
			last := len(t.terms) - 1
			t.terms[k] = t.terms[last]
			t.terms = t.terms[:last]
			continue
		}
		ok, err := determineBestBounds(p, p.Var(tm.ind), sol, o, tm)
		if err != nil || !ok {
			return false, err
		}
		bound := tm.lb
		if tm.sign < 0 {
			bound = tm.ub
		}
		t.rhs = t.rhs.Sub(numerics.ProdDD(tm.coef, bound))
		t.localbdsused = t.localbdsused || tm.btype == bndLocal
		k++
	}

	return true, nil
}

// transformMIR complements the row Σ coefs·x ≤ rhs onto non-negative
// variables. A nil result with a nil error means a free variable.
func transformMIR(p *mip.Problem, sol []float64, coefs []float64, inds []int, rhs float64, o boundOpts) (*transformed, error) {
	t := &transformed{terms: sortedTerms(coefs, inds), rhs: numerics.DDFrom(rhs)}
	ncont := splitContinuous(p, t.terms)

	for k := 0; k < ncont; k++ {
		ok, err := determineBestBounds(p, p.Var(t.terms[k].ind), sol, o, &t.terms[k])
		if err != nil || !ok {
			return nil, err
		}
	}

	ok, err := t.complement(p, sol, ncont, o)
	if err != nil || !ok {
		return nil, err
	}

	if o.fixintegralrhs {
		t.fixIntegralRHS(p, sol, o.minfrac, o.maxfrac)
	}

	return t, nil
}

// fixIntegralRHS re-complements the single variable that brings the
// fractionality of rhs back into [minfrac, maxfrac] with the largest gain
// in estimated violation, ties broken by the smaller new fractionality.
func (t *transformed) fixIntegralRHS(p *mip.Problem, sol []float64, minfrac, maxfrac float64) {
	tol := p.Tolerances()
	rhs := t.rhs.Float()
	f0 := numerics.EpsFrac(rhs, tol.SumEpsilon())
	if f0 >= minfrac && f0 <= maxfrac {
		return
	}

	best, bestnewf0, besti := -1e100, 1.0, -1
	for i, tm := range t.terms {
		if tm.btype >= 0 {
			continue
		}
		if tm.sign > 0 && (tol.IsInfinity(tm.ub) || tm.ubtype >= 0) {
			continue
		}
		if tm.sign < 0 && (tol.IsInfinity(-tm.lb) || tm.lbtype >= 0) {
			continue
		}

		newrhs := rhs + float64(tm.sign)*tm.coef*(tm.lb-tm.ub)
		newf0 := numerics.EpsFrac(newrhs, tol.SumEpsilon())
		if newf0 < minfrac || newf0 > maxfrac {
			continue
		}

		var fj, newfj float64
		if p.IsContinuous(tm.ind) {
			fj = math.Abs(tm.coef)
			newfj = fj
		} else {
			fj = tol.Frac(float64(tm.sign) * tm.coef)
			newfj = tol.Frac(-float64(tm.sign) * tm.coef)
		}

		solval := p.SolVal(sol, tm.ind)
		var viol, newviol float64
		if tm.sign > 0 {
			viol = f0 - fj*(solval-tm.lb)
			newviol = newf0 - newfj*(tm.ub-solval)
		} else {
			viol = f0 - fj*(tm.ub-solval)
			newviol = newf0 - newfj*(solval-tm.lb)
		}
		gain := newviol - viol
		if tol.IsGT(gain, best) || (tol.IsGE(gain, best) && newf0 < bestnewf0) {
			best, bestnewf0, besti = gain, newf0, i
		}
	}
	if besti < 0 {
		return
	}

	tm := &t.terms[besti]
	t.rhs = t.rhs.AddFloat(float64(tm.sign) * tm.coef * (tm.lb - tm.ub))
	if tm.sign > 0 {
		tm.sign, tm.btype = -1, tm.ubtype
	} else {
		tm.sign, tm.btype = 1, tm.lbtype
	}
	t.localbdsused = t.localbdsused || tm.btype == bndLocal
}
