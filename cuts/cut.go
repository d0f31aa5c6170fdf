// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"fmt"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/mip"
)

// Generator names used for logging and metrics.
const (
	GenMIR       = "mir"
	GenCMIR      = "cmir"
	GenFlowCover = "flowcover"
	GenStrongCG  = "strongcg"
)

// Cut is the inequality Σ Coefs[k]·x[Inds[k]] ≤ RHS.
type Cut struct {
	Coefs []float64
	Inds  []int
	RHS   float64

	// Local marks a cut valid only where the local bounds hold.
	Local bool

	// Rank is one more than the rank of the aggregation.
	Rank int

	// Efficacy is the Euclidean violation of the cut at the solution it
	// was separated for.
	Efficacy float64
}

// NNZ returns the number of coefficients.
func (c *Cut) NNZ() int { return len(c.Inds) }

// Activity returns Σ Coefs[k]·sol[Inds[k]]; sol == nil means the LP values.
func (c *Cut) Activity(p *mip.Problem, sol []float64) float64 {
	act := 0.0
	for k, i := range c.Inds {
		act += c.Coefs[k] * p.SolVal(sol, i)
	}

	return act
}

// Result is the outcome of one generator call.
type Result struct {
	// Cut is set iff Success.
	Cut *Cut

	Success bool

	// Reason is one of the reason sentinels when Success is false, and nil
	// otherwise.
	Reason error
}

func fail(reason error) Result { return Result{Reason: reason} }

// checkInput validates the row and solution shared by all generators.
func checkInput(op string, row *aggrrow.Row, sol []float64) (*mip.Problem, error) {
	if row == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilRow)
	}
	p := row.Problem()
	if sol != nil && len(sol) != p.NVars() {
		return nil, fmt.Errorf("%s: %d values for %d vars: %w", op, len(sol), p.NVars(), ErrDimensionMismatch)
	}

	return p, nil
}
