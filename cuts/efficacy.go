// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvcuts/mip"
)

const minNorm = 1e-6

// Efficacy returns (activity - rhs) / max(‖coefs‖₂, 1e-6) of the cut at
// sol (nil means the LP solution). Positive values mean sol violates the
// cut.
func Efficacy(p *mip.Problem, sol []float64, cut *Cut) float64 {
	return efficacy(p, sol, cut.Coefs, cut.Inds, cut.RHS)
}

func efficacy(p *mip.Problem, sol []float64, coefs []float64, inds []int, rhs float64) float64 {
	vals := make([]float64, len(inds))
	for k, i := range inds {
		vals[k] = p.SolVal(sol, i)
	}
	act := floats.Dot(coefs, vals)
	norm := floats.Norm(coefs, 2)

	return (act - rhs) / math.Max(norm, minNorm)
}
