// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/knapsack"
	"github.com/katalvlaran/lvcuts/numerics"
)

// Scaling limits used to turn the cover knapsack integral.
const (
	coverMinDelta = 1e-3
	coverMaxDelta = 1e-9
	coverMaxDnom  = 1000
	coverMaxScale = 1000.0
)

// Flow cover membership of an snfVar.
const (
	inCover    = 1
	notInCover = -1
)

// buildFlowCover completes status from a knapsack solution (solution
// items leave the cover, the others enter it) and returns the cover
// excess lambda = Σ_{C1} u - Σ_{C2} u - rhs.
func buildFlowCover(snf *snfRelaxation, sol knapsack.Solution, status []int, fcw numerics.DD) float64 {
	for _, j := range sol.SolItems {
		if snf.vars[j].coef == 1 {
			status[j] = notInCover
		} else {
			status[j] = inCover
			fcw = fcw.SubFloat(snf.vars[j].vub)
		}
	}
	for _, j := range sol.NonSolItems {
		if snf.vars[j].coef == 1 {
			status[j] = inCover
			fcw = fcw.AddFloat(snf.vars[j].vub)
		} else {
			status[j] = notInCover
		}
	}

	return fcw.SubFloat(snf.rhs).Float()
}

// coverSolver names the knapsack solver that produced a flow cover.
type coverSolver int

const (
	coverNone        coverSolver = iota
	coverFixed                   // no fractional flow, fixings only
	coverExact                   // dynamic program on the scaled knapsack
	coverGreedy                  // approximate knapsack
	coverGreedyRetry             // approximate knapsack after an exact cover without excess
)

func (c coverSolver) String() string {
	switch c {
	case coverFixed:
		return "fixed"
	case coverExact:
		return "exact"
	case coverGreedy:
		return "greedy"
	case coverGreedyRetry:
		return "greedy-retry"
	default:
		return "none"
	}
}

// flowCover is the outcome of getFlowCover. status is nil when the
// knapsack capacity is not positive.
type flowCover struct {
	status []int
	lambda float64
	found  bool
	solver coverSolver
}

// getFlowCover finds a flow cover C1 ⊆ N1, C2 ⊆ N2 with positive excess.
//
// Flows with integral binary value are fixed in or out of the cover; the
// fractional ones form a knapsack that minimises the estimated violation.
// That knapsack is solved exactly when its scaled capacity is small and
// greedily otherwise, and greedily again when the exact cover has no
// excess. found implies lambda > 0.
func getFlowCover(tol *numerics.Tolerances, snf *snfRelaxation) (flowCover, error) {
	n := len(snf.vars)
	status := make([]int, n)
	fcw := numerics.DDFrom(0)
	n1weight := 0.0
	var items []int

	for j, sv := range snf.vars {
		switch {
		case tol.IsFeasZero(sv.vub):
			status[j] = notInCover
		case !tol.IsFeasIntegral(sv.binsol):
			items = append(items, j)
			if sv.coef == 1 {
				n1weight += sv.vub
			}
		case sv.coef == 1 && sv.binsol < 0.5:
			status[j] = notInCover
		case sv.coef == 1:
			status[j] = inCover
			fcw = fcw.AddFloat(sv.vub)
		case sv.binsol > 0.5:
			status[j] = inCover
			fcw = fcw.SubFloat(sv.vub)
		default:
			status[j] = notInCover
		}
	}

	weights := make([]float64, len(items))
	profits := make([]float64, len(items))
	integral := true
	for k, j := range items {
		sv := snf.vars[j]
		weights[k] = sv.vub
		if !knapsack.IsIntegralScalar(weights[k], 1, -coverMinDelta, coverMaxDelta) {
			integral = false
		}
		if sv.coef == 1 {
			profits[k] = 1 - sv.binsol
		} else {
			profits[k] = sv.binsol
		}
	}

	capacity := -snf.rhs + fcw.Float() + n1weight
	if tol.IsFeasLE(capacity/10, 0) {
		return flowCover{}, nil
	}
	if len(items) == 0 {
		lambda := fcw.SubFloat(snf.rhs).Float()
		return flowCover{status: status, lambda: lambda, found: tol.IsFeasGT(lambda, 0), solver: coverFixed}, nil
	}

	scalar, scaled := 1.0, true
	if !integral {
		scalar, scaled = knapsack.CalcIntegralScalar(weights, -coverMinDelta, coverMaxDelta, coverMaxDnom, coverMaxScale)
	}

	var sol knapsack.Solution
	solver := coverGreedy
	if scaled {
		intweights := make([]int64, len(items))
		for k, w := range weights {
			intweights[k] = knapsack.IntegralVal(w, scalar, -coverMinDelta, coverMaxDelta)
		}
		var intcap int64
		if knapsack.IsIntegralScalar(capacity, scalar, -coverMinDelta, coverMaxDelta) {
			intcap = knapsack.IntegralVal(capacity, scalar, -coverMinDelta, coverMaxDelta) - 1
		} else {
			intcap = int64(capacity * scalar)
		}
		cells := float64(len(items)+1) * float64(intcap+1)
		if float64(intcap)*float64(len(items)) <= MaxDynProgSpace && cells <= math.MaxInt32/8.0 {
			exact, err := knapsack.SolveExactly(intweights, profits, intcap, items)
			switch {
			case err == nil:
				sol, solver = exact, coverExact
			case !errors.Is(err, knapsack.ErrTableTooLarge):
				return flowCover{}, fmt.Errorf("getFlowCover: %w", err)
			}
		}
	}
	if solver == coverGreedy {
		var err error
		if sol, err = knapsack.SolveApproximatelyLT(weights, profits, capacity, items, tol); err != nil {
			return flowCover{}, fmt.Errorf("getFlowCover: %w", err)
		}
	}

	fixed := append([]int(nil), status...)
	lambda := buildFlowCover(snf, sol, status, fcw)
	if solver == coverExact && tol.IsFeasLE(lambda, 0) {
		retry, err := knapsack.SolveApproximatelyLT(weights, profits, capacity, items, tol)
		if err != nil {
			return flowCover{}, fmt.Errorf("getFlowCover: %w", err)
		}
		copy(status, fixed)
		lambda = buildFlowCover(snf, retry, status, fcw)
		solver = coverGreedyRetry
	}

	return flowCover{status: status, lambda: lambda, found: tol.IsFeasGT(lambda, 0), solver: solver}, nil
}

// CalcFlowCover computes a lifted flow cover cut of row.
//
// Stages: build the single-node-flow relaxation, find a cover with
// positive excess lambda, lift the cover inequality and map it back to
// the original variables, adding -weight·row for every contributing row
// whose slack enters with a non-positive coefficient.
//
// Errors: ErrNilRow, ErrDimensionMismatch, scratch.ErrDirty.
func CalcFlowCover(sol []float64, row *aggrrow.Row, params FlowCoverParams) (res Result, err error) {
	p, err := checkInput("CalcFlowCover", row, sol)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err == nil {
			params.observe(GenFlowCover, res)
		}
	}()
	tol := p.Tolerances()
	log := params.logger()

	coefs := append([]float64(nil), row.Vals()...)
	inds := append([]int(nil), row.Inds()...)
	local := row.Local()
	coefs, inds, rhs := CleanupCut(p, local, coefs, inds, row.RHS())

	snf, snflocal, err := constructSNFRelaxation(p, sol, params.BoundSwitch, params.AllowLocal, coefs, inds, rhs)
	if err != nil {
		return Result{}, fmt.Errorf("CalcFlowCover: %w", err)
	}
	if snf == nil {
		log.Debug("flowcover: free variable", slog.Int("nnz", len(inds)))
		return fail(ErrFreeVariable), nil
	}
	local = local || snflocal

	cover, err := getFlowCover(tol, snf)
	if err != nil {
		return Result{}, fmt.Errorf("CalcFlowCover: %w", err)
	}
	if !cover.found {
		log.Debug("flowcover: no cover", slog.Int("nflows", len(snf.vars)),
			slog.Float64("lambda", cover.lambda), slog.String("solver", cover.solver.String()))
		return fail(ErrNoCoverFound), nil
	}

	out, ok := generateLiftedFlowCoverCut(p, snf, row, cover.status, cover.lambda)
	if !ok {
		log.Debug("flowcover: lifting data invalid", slog.Float64("lambda", cover.lambda))
		return fail(ErrNoCoverFound), nil
	}
	cut, err := out.finish(p, sol, local, row.Rank()+1)
	if err != nil {
		return Result{}, fmt.Errorf("CalcFlowCover: %w", err)
	}

	return Result{Cut: cut, Success: true}, nil
}
