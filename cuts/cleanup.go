// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import "github.com/katalvlaran/lvcuts/mip"

// CleanupCut removes coefficients with |c| ≤ SumEpsilon from
// Σ coefs·x ≤ rhs and relaxes rhs by the dropped term's worst case over
// the variable's bounds (local bounds if local). A dropped term whose
// bound is infinite makes rhs infinite. Entries are removed by moving the
// last entry into their place.
//
// The slices are compacted in place; the shortened slices and the new rhs
// are returned. Calling CleanupCut twice is the same as calling it once.
func CleanupCut(p *mip.Problem, local bool, coefs []float64, inds []int, rhs float64) ([]float64, []int, float64) {
	tol := p.Tolerances()
	n := len(inds)
	for i := 0; i < n; {
		c := coefs[i]
		if !tol.IsSumZero(c) {
			i++
			continue
		}
		if !tol.IsInfinity(rhs) && !tol.IsZero(c) {
			v := p.Var(inds[i])
			if c < 0 {
				ub := v.UB
				if local {
					ub = v.LocalUB
				}
				if tol.IsInfinity(ub) {
					rhs = tol.Infinity()
				} else {
					rhs -= c * ub
				}
			} else {
				lb := v.LB
				if local {
					lb = v.LocalLB
				}
				if tol.IsInfinity(-lb) {
					rhs = tol.Infinity()
				} else {
					rhs -= c * lb
				}
			}
		}
		n--
		coefs[i], inds[i] = coefs[n], inds[n]
	}

	return coefs[:n], inds[:n], rhs
}
