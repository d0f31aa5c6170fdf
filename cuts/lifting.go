// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts
//
// lifting.go: superadditive lifting of the flow cover inequality.

package cuts

import (
	"sort"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/numerics"
)

// liftingData describes the lifting function of a cover with excess
// lambda: m are the flow bounds above lambda in C1 ∪ (N2\C2) sorted
// decreasingly, M their prefix sums (M[0] = 0, M[r] = Σ m).
type liftingData struct {
	m, M   []float64
	lambda float64
	mp     float64 // smallest bound above lambda in C1
	ml     float64 // min(lambda, Σ_{C1, u ≤ λ} u + Σ_{N2\C2, u ≤ λ} u)
	d1, d2 float64
	r, t   int
}

// coverClass maps (coef, status) to 0: N2\C2, 1: C2, 2: N1\C1, 3: C1.
func coverClass(coef, status int) int {
	return (coef + 1) + (status+1)/2
}

func computeLiftingData(tol *numerics.Tolerances, snf *snfRelaxation, status []int, lambda float64) (*liftingData, bool) {
	ld := &liftingData{mp: tol.Infinity()}
	sumN2mC2LE := numerics.DDFrom(0)
	sumN2mC2GT := numerics.DDFrom(0)
	sumC1LE := numerics.DDFrom(0)
	sumC2 := numerics.DDFrom(0)

	for j, sv := range snf.vars {
		switch coverClass(sv.coef, status[j]) {
		case 0:
			if tol.IsGT(sv.vub, lambda) {
				sumN2mC2GT = sumN2mC2GT.AddFloat(sv.vub)
				ld.m = append(ld.m, sv.vub)
			} else {
				sumN2mC2LE = sumN2mC2LE.AddFloat(sv.vub)
			}
		case 1:
			sumC2 = sumC2.AddFloat(sv.vub)
		case 3:
			if tol.IsGT(sv.vub, lambda) {
				ld.m = append(ld.m, sv.vub)
				ld.mp = min(ld.mp, sv.vub)
			} else {
				sumC1LE = sumC1LE.AddFloat(sv.vub)
			}
		}
	}
	if tol.IsInfinity(ld.mp) {
		return nil, false
	}
	ld.r = len(ld.m)

	ld.ml = min(lambda, sumC1LE.Add(sumN2mC2LE).Float())
	tmp := sumC2.AddFloat(snf.rhs)
	ld.d1 = tmp.Float()
	ld.d2 = tmp.Add(sumN2mC2GT).Add(sumN2mC2LE).Float()

	sort.Sort(sort.Reverse(sort.Float64Slice(ld.m)))
	ld.M = make([]float64, ld.r+1)
	acc := numerics.DDFrom(0)
	for i, v := range ld.m {
		ld.M[i] = acc.Float()
		acc = acc.AddFloat(v)
	}
	ld.M[ld.r] = acc.Float()

	for ld.t < ld.r && ld.m[ld.t] >= ld.mp {
		ld.t++
	}
	ld.lambda = lambda

	return ld, true
}

// segment returns the largest i ≤ r with x + lambda > M[i].
func (ld *liftingData) segment(tol *numerics.Tolerances, x float64) int {
	xl := x + ld.lambda
	i := 0
	for i < ld.r && tol.IsGT(xl, ld.M[i+1]) {
		i++
	}

	return i
}

// evaluate returns the value of the lifting function at x.
func (ld *liftingData) evaluate(tol *numerics.Tolerances, x float64) float64 {
	i := ld.segment(tol, x)
	ilambda := numerics.ProdDD(float64(i), ld.lambda)

	if i < ld.t {
		if tol.IsLE(ld.M[i], x) {
			return ilambda.Float()
		}
		return ilambda.AddFloat(x).SubFloat(ld.M[i]).Float()
	}

	if i < ld.r {
		tmp := numerics.DDFrom(ld.m[i]).SubFloat(ld.mp).SubFloat(ld.ml).AddFloat(ld.lambda)
		if tmp.Hi < 0 {
			tmp = numerics.DDFrom(0)
		}
		tmp = tmp.AddFloat(ld.M[i]).AddFloat(ld.ml)
		if tol.IsLT(tmp.Float(), x+ld.lambda) {
			return ilambda.Float()
		}
		return ilambda.AddFloat(x).SubFloat(ld.M[i]).Float()
	}

	return numerics.ProdDD(float64(ld.r), ld.lambda).AddFloat(x).SubFloat(ld.M[ld.r]).Float()
}

// alphaBeta returns the lifting coefficients of a flow in N1\C1 with
// bound vub.
func (ld *liftingData) alphaBeta(tol *numerics.Tolerances, vub float64) (int, float64) {
	i := ld.segment(tol, vub)
	if tol.IsLT(vub, ld.M[i]) {
		return 1, numerics.ProdDD(-float64(i), ld.lambda).AddFloat(ld.M[i]).Float()
	}

	return 0, 0
}

// generateLiftedFlowCoverCut lifts the cover inequality and maps it back
// to the problem variables, including the slacks of the aggregated rows.
func generateLiftedFlowCoverCut(p *mip.Problem, snf *snfRelaxation, row *aggrrow.Row, status []int, lambda float64) (*sparseRow, bool) {
	tol := p.Tolerances()
	ld, ok := computeLiftingData(tol, snf, status, lambda)
	if !ok {
		return nil, false
	}

	out := newSparseRow(p.NVars(), len(snf.vars))
	rhs := numerics.DDFrom(ld.d1)

	for j, sv := range snf.vars {
		switch coverClass(sv.coef, status[j]) {
		case 0:
			if tol.IsGT(sv.vub, lambda) {
				if sv.origbin >= 0 {
					out.add(sv.origbin, -lambda)
				} else {
					rhs = rhs.AddFloat(lambda)
				}
				continue
			}
			if sv.origcont >= 0 {
				out.add(sv.origcont, -sv.aggrcont)
			}
			if sv.origbin >= 0 {
				out.add(sv.origbin, -sv.aggrbin)
			}
			rhs = rhs.AddFloat(sv.aggrconst)

		case 1:
			if sv.origbin >= 0 {
				lifted := ld.evaluate(tol, sv.vub)
				out.add(sv.origbin, -lifted)
				rhs = rhs.SubFloat(lifted)
			}

		case 2:
			alpha, beta := ld.alphaBeta(tol, sv.vub)
			if alpha != 1 {
				continue
			}
			if sv.origcont >= 0 {
				out.add(sv.origcont, sv.aggrcont)
			}
			bincoef := numerics.DDFrom(sv.aggrbin).SubFloat(beta)
			if sv.origbin >= 0 {
				out.add(sv.origbin, bincoef.Float())
			} else {
				rhs = rhs.Sub(bincoef)
			}
			rhs = rhs.SubFloat(sv.aggrconst)

		case 3:
			bincoef, constant := sv.aggrbin, sv.aggrconst
			if sv.origbin >= 0 && tol.IsGT(sv.vub, lambda) {
				tmp := numerics.DDFrom(sv.vub).SubFloat(lambda)
				constant = tmp.AddFloat(constant).Float()
				bincoef = -tmp.SubFloat(bincoef).Float()
			}
			if sv.origbin >= 0 {
				out.add(sv.origbin, bincoef)
			}
			if sv.origcont >= 0 {
				out.add(sv.origcont, sv.aggrcont)
			}
			rhs = rhs.SubFloat(constant)
		}
	}

	weights, signs := row.RowWeights(), row.SlackSigns()
	for i, pos := range row.RowInds() {
		if weights[i]*float64(signs[i]) > 0 {
			continue
		}
		r := p.Row(pos)
		out.addRow(r, -weights[i])
		var side float64
		if signs[i] > 0 {
			side = r.RHS - r.Constant
			if r.Integral {
				side = tol.FeasFloor(side)
			}
		} else {
			side = r.LHS - r.Constant
			if r.Integral {
				side = tol.FeasCeil(side)
			}
		}
		rhs = rhs.Add(numerics.ProdDD(side, -weights[i]))
	}
	out.rhs = rhs

	return out, true
}
