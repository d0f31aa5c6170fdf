// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts
//
// snf.go: 0-1 single-node-flow relaxation of an aggregation row.
//
// Every non-binary variable y of the row is rewritten as a flow
// 0 ≤ y' ≤ u·x with a binary x (a variable bound's binary when one fits,
// a constant 1 otherwise); remaining binaries become flows bounded by
// themselves. The result is
//
//	Σ_{N1} y' - Σ_{N2} y' ≤ rhs,   0 ≤ y'_j ≤ u_j·x_j.

package cuts

import (
	"math"

	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/numerics"
	"github.com/katalvlaran/lvcuts/scratch"
)

// maxAbsVBCoef bounds |coef| of variable bounds used in the relaxation.
const maxAbsVBCoef = 1e5

// snfVar is one flow of the relaxation together with the data needed to
// map it back: y' = aggrcont·y + aggrbin·x + aggrconst.
type snfVar struct {
	coef    int // +1 for N1, -1 for N2
	vub     float64
	binsol  float64
	contsol float64

	origbin  int // -1 if the binary is the constant 1
	origcont int // -1 for a pure binary flow

	aggrbin   float64
	aggrcont  float64
	aggrconst float64
}

type snfRelaxation struct {
	vars []snfVar
	rhs  float64
}

// snfBounds are the bounds determined for one non-binary row entry.
type snfBounds struct {
	lb, ub           float64
	lbtype, ubtype   int
	slb, sub         float64
	slbtype, subtype int
	lower            bool
}

// binRowCoef returns the row coefficient of a binary from its binvarpos
// slot: 0 when the binary is not in the row, terms[pos-1].coef otherwise.
func binRowCoef(terms []term, pos int) float64 {
	if pos == 0 {
		return 0
	}

	return terms[pos-1].coef
}

// closestSNFVLB returns the variable lower bound of v with the largest
// value at sol among those whose binary is still unused and that keep the
// flow bound of the relaxation non-negative; (-inf, -1) if none applies.
func closestSNFVLB(p *mip.Problem, v *mip.Var, sol []float64, terms []term, binvarpos *scratch.PosIndex, bestsub, rowcoef float64) (float64, int) {
	tol := p.Tolerances()
	best, bestidx := -tol.Infinity(), -1
	for k, vb := range v.VLBs {
		if !p.IsBinary(vb.Var) || !p.Var(vb.Var).Active {
			continue
		}
		pos := binvarpos.Get(vb.Var)
		if pos < 0 {
			continue
		}
		rowcoefbin := binRowCoef(terms, pos)
		val1 := rowcoef*(bestsub-vb.Const) + rowcoefbin
		val2 := rowcoef*vb.Coef + rowcoefbin

		var ok bool
		if tol.IsPositive(rowcoef) {
			ok = tol.IsFeasLE(bestsub, vb.Const) && tol.IsFeasLE(val1, 0) && tol.IsFeasLE(val2, 0)
		} else {
			ok = tol.IsFeasLE(bestsub, vb.Const) && tol.IsFeasGE(val1, 0) && tol.IsFeasGE(val2, 0)
		}
		if !ok || math.Abs(vb.Coef) > maxAbsVBCoef || tol.IsInfinity(math.Abs(val2)) {
			continue
		}

		if val := vb.Coef*p.SolVal(sol, vb.Var) + vb.Const; tol.IsGT(val, best) {
			best, bestidx = val, k
		}
	}

	return best, bestidx
}

// closestSNFVUB mirrors closestSNFVLB for variable upper bounds.
func closestSNFVUB(p *mip.Problem, v *mip.Var, sol []float64, terms []term, binvarpos *scratch.PosIndex, bestslb, rowcoef float64) (float64, int) {
	tol := p.Tolerances()
	best, bestidx := tol.Infinity(), -1
	for k, vb := range v.VUBs {
		if !p.IsBinary(vb.Var) || !p.Var(vb.Var).Active {
			continue
		}
		pos := binvarpos.Get(vb.Var)
		if pos < 0 {
			continue
		}
		rowcoefbin := binRowCoef(terms, pos)
		val1 := rowcoef*(bestslb-vb.Const) + rowcoefbin
		val2 := rowcoef*vb.Coef + rowcoefbin

		var ok bool
		if tol.IsPositive(rowcoef) {
			ok = tol.IsFeasGE(bestslb, vb.Const) && tol.IsFeasGE(val1, 0) && tol.IsFeasGE(val2, 0)
		} else {
			ok = tol.IsFeasGE(bestslb, vb.Const) && tol.IsFeasLE(val1, 0) && tol.IsFeasLE(val2, 0)
		}
		if !ok || math.Abs(vb.Coef) > maxAbsVBCoef || tol.IsInfinity(math.Abs(val2)) {
			continue
		}

		if val := vb.Coef*p.SolVal(sol, vb.Var) + vb.Const; tol.IsLT(val, best) {
			best, bestidx = val, k
		}
	}

	return best, bestidx
}

// determineBoundForSNF picks the bound used for the non-binary entry k and
// reserves the binary of a chosen variable bound in binvarpos (negated
// slot, -1 for binaries outside the row). It reports false for a free
// variable.
func determineBoundForSNF(p *mip.Problem, sol []float64, terms []term, k int, binvarpos *scratch.PosIndex, allowlocal bool, boundswitch float64) (snfBounds, bool) {
	tol := p.Tolerances()
	tm := terms[k]
	v := p.Var(tm.ind)

	b := snfBounds{lb: -tol.Infinity(), ub: tol.Infinity(), lbtype: -3, ubtype: -3}
	b.slb, b.slbtype = findBestLB(p, v, sol, false, allowlocal)
	b.sub, b.subtype = findBestUB(p, v, sol, false, allowlocal)
	if tol.IsInfinity(-b.slb) && tol.IsInfinity(b.sub) {
		return b, false
	}

	if !tol.IsInfinity(b.sub) {
		b.lb, b.lbtype = b.slb, b.slbtype
		if v.Type == mip.Continuous {
			if vlb, idx := closestSNFVLB(p, v, sol, terms, binvarpos, b.sub, tm.coef); tol.IsGT(vlb, b.lb) {
				b.lb, b.lbtype = vlb, idx
			}
		}
	}
	if !tol.IsInfinity(-b.slb) {
		b.ub, b.ubtype = b.sub, b.subtype
		if v.Type == mip.Continuous {
			if vub, idx := closestSNFVUB(p, v, sol, terms, binvarpos, b.slb, tm.coef); tol.IsLT(vub, b.ub) {
				b.ub, b.ubtype = vub, idx
			}
		}
	}
	if tol.IsInfinity(-b.lb) && tol.IsInfinity(b.ub) {
		return b, false
	}

	solval := p.SolVal(sol, tm.ind)
	mid := (1-boundswitch)*b.lb + boundswitch*b.ub
	switch {
	case tol.IsEQ(solval, mid) && b.lbtype >= 0:
		b.lower = true
	case tol.IsEQ(solval, mid) && b.ubtype >= 0:
		b.lower = false
	default:
		b.lower = tol.IsLE(solval, mid)
	}

	if z, ok := b.binary(v); ok {
		if pos := binvarpos.Get(z); pos == 0 {
			binvarpos.Set(z, -1)
		} else {
			binvarpos.Set(z, -pos)
		}
	}

	return b, true
}

// binary returns the binary of the selected variable bound, if any.
func (b snfBounds) binary(v *mip.Var) (int, bool) {
	switch {
	case b.lower && b.lbtype >= 0:
		return v.VLBs[b.lbtype].Var, true
	case !b.lower && b.ubtype >= 0:
		return v.VUBs[b.ubtype].Var, true
	default:
		return 0, false
	}
}

// constructSNFRelaxation builds the single-node-flow relaxation of
// Σ coefs·x ≤ rhs. It returns nil for a row with a free variable.
func constructSNFRelaxation(p *mip.Problem, sol []float64, boundswitch float64, allowlocal bool, coefs []float64, inds []int, rhs float64) (*snfRelaxation, bool, error) {
	tol := p.Tolerances()
	nbin := p.NBinVars()
	terms := sortedTerms(coefs, inds)

	binvarpos := scratch.Acquire(nbin)
	nnonbin := len(terms)
	for nnonbin > 0 && terms[nnonbin-1].ind < nbin {
		nnonbin--
		binvarpos.Set(terms[nnonbin].ind, nnonbin+1)
	}

	bounds := make([]snfBounds, nnonbin)
	for k := 0; k < nnonbin; k++ {
		b, ok := determineBoundForSNF(p, sol, terms, k, binvarpos, allowlocal, boundswitch)
		if !ok {
			for j := nnonbin; j < len(terms); j++ {
				binvarpos.Clear(terms[j].ind)
			}
			for j := 0; j < k; j++ {
				if z, used := bounds[j].binary(p.Var(terms[j].ind)); used {
					binvarpos.Clear(z)
				}
			}
			return nil, false, binvarpos.Release()
		}
		bounds[k] = b
	}

	snf := &snfRelaxation{vars: make([]snfVar, 0, len(terms))}
	transrhs := numerics.DDFrom(rhs)
	local := false

	for k := 0; k < nnonbin; k++ {
		tm, b := terms[k], bounds[k]
		v := p.Var(tm.ind)
		a := tm.coef
		solval := p.SolVal(sol, tm.ind)
		sv := snfVar{origcont: tm.ind, origbin: -1, binsol: 1}
		pos := tol.IsPositive(a)

		switch {
		case b.lower && b.lbtype < 0:
			val := numerics.DDFrom(b.sub).SubFloat(b.lb).MulFloat(a).Float()
			contsol := numerics.DDFrom(solval).SubFloat(b.sub).MulFloat(a).Float()
			local = local || b.lbtype == bndLocal || b.subtype == bndLocal
			prod := numerics.ProdDD(a, b.sub)
			if pos {
				sv.coef, sv.vub, sv.contsol = -1, val, -contsol
				sv.aggrconst, sv.aggrcont = prod.Float(), -a
			} else {
				sv.coef, sv.vub, sv.contsol = 1, -val, contsol
				sv.aggrconst, sv.aggrcont = -prod.Float(), a
			}
			transrhs = transrhs.Sub(prod)

		case b.lower:
			vb := v.VLBs[b.lbtype]
			rowcoefbin := 0.0
			if slot := binvarpos.Get(vb.Var); slot < -1 {
				rowcoefbin = terms[-slot-1].coef
			}
			binsol := p.SolVal(sol, vb.Var)
			val := numerics.ProdDD(a, vb.Coef).AddFloat(rowcoefbin).Float()
			contsol := numerics.DDFrom(solval).SubFloat(vb.Const).MulFloat(a).Add(numerics.ProdDD(rowcoefbin, binsol)).Float()
			prod := numerics.ProdDD(a, vb.Const)
			binvarpos.Clear(vb.Var)
			sv.origbin, sv.binsol = vb.Var, binsol
			if pos {
				sv.coef, sv.vub, sv.contsol = -1, -val, -contsol
				sv.aggrbin, sv.aggrcont, sv.aggrconst = -rowcoefbin, -a, prod.Float()
			} else {
				sv.coef, sv.vub, sv.contsol = 1, val, contsol
				sv.aggrbin, sv.aggrcont, sv.aggrconst = rowcoefbin, a, -prod.Float()
			}
			transrhs = transrhs.Sub(prod)

		case b.ubtype < 0:
			val := numerics.DDFrom(b.ub).SubFloat(b.slb).MulFloat(a).Float()
			contsol := numerics.DDFrom(solval).SubFloat(b.slb).MulFloat(a).Float()
			local = local || b.ubtype == bndLocal || b.slbtype == bndLocal
			prod := numerics.ProdDD(a, b.slb)
			if pos {
				sv.coef, sv.vub, sv.contsol = 1, val, contsol
				sv.aggrcont, sv.aggrconst = a, -prod.Float()
			} else {
				sv.coef, sv.vub, sv.contsol = -1, -val, -contsol
				sv.aggrcont, sv.aggrconst = -a, prod.Float()
			}
			transrhs = transrhs.Sub(prod)

		default:
			vb := v.VUBs[b.ubtype]
			rowcoefbin := 0.0
			if slot := binvarpos.Get(vb.Var); slot < -1 {
				rowcoefbin = terms[-slot-1].coef
			}
			binsol := p.SolVal(sol, vb.Var)
			val := numerics.ProdDD(a, vb.Coef).AddFloat(rowcoefbin).Float()
			contsol := numerics.DDFrom(solval).SubFloat(vb.Const).MulFloat(a).Add(numerics.ProdDD(rowcoefbin, binsol)).Float()
			prod := numerics.ProdDD(a, vb.Const)
			binvarpos.Clear(vb.Var)
			sv.origbin, sv.binsol = vb.Var, binsol
			if pos {
				sv.coef, sv.vub, sv.contsol = 1, val, contsol
				sv.aggrbin, sv.aggrcont, sv.aggrconst = rowcoefbin, a, -prod.Float()
			} else {
				sv.coef, sv.vub, sv.contsol = -1, -val, -contsol
				sv.aggrbin, sv.aggrcont, sv.aggrconst = -rowcoefbin, -a, prod.Float()
			}
			transrhs = transrhs.Sub(prod)
		}
		snf.vars = append(snf.vars, sv)
	}
	snf.rhs = transrhs.Float()

	for k := nnonbin; k < len(terms); k++ {
		tm := terms[k]
		if binvarpos.Get(tm.ind) == 0 {
			continue
		}
		binvarpos.Clear(tm.ind)
		solval := p.SolVal(sol, tm.ind)
		sv := snfVar{origbin: tm.ind, origcont: -1, binsol: solval}
		if tol.IsPositive(tm.coef) {
			sv.coef, sv.vub, sv.contsol, sv.aggrbin = 1, tm.coef, tm.coef*solval, tm.coef
		} else {
			sv.coef, sv.vub, sv.contsol, sv.aggrbin = -1, -tm.coef, -tm.coef*solval, -tm.coef
		}
		snf.vars = append(snf.vars, sv)
	}

	if err := binvarpos.Release(); err != nil {
		return nil, false, err
	}

	return snf, local, nil
}
