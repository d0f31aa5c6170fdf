// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/numerics"
)

// boundDist is an integer entry of the mixed knapsack set strictly
// between its local bounds.
type boundDist struct {
	dist float64
	pos  int
}

// farthestFirst orders by decreasing distance, then by position.
func farthestFirst(a, b boundDist) bool {
	if a.dist != b.dist {
		return a.dist > b.dist
	}

	return a.pos < b.pos
}

// cmirSearch holds the state of one delta search.
type cmirSearch struct {
	p      *mip.Problem
	sol    []float64
	row    *aggrrow.Row
	params CMIRParams

	terms        []term
	rhs          numerics.DD
	local        bool
	localbdsused bool

	bestEff   float64
	bestDelta float64
	best      *Cut

	deltas []float64
	dists  *btree.BTreeG[boundDist]
}

// try rounds the mixed knapsack set scaled by 1/delta and records the cut
// when it improves the best efficacy seen.
func (s *cmirSearch) try(delta float64) error {
	tol := s.p.Tolerances()
	scale := 1 / delta
	rhs := s.rhs.MulFloat(scale).Float()
	downrhs := numerics.EpsFloor(rhs, tol.SumEpsilon())
	f0 := rhs - downrhs
	if f0 < s.params.MinFrac || f0 > s.params.MaxFrac {
		return nil
	}
	if math.Abs(scale)/(1-f0) > MaxCMIRScale {
		return nil
	}

	out := newSparseRow(s.p.NVars(), len(s.terms))
	out.rhs = numerics.DDFrom(downrhs)
	roundMIR(s.p, s.terms, scale, f0, out)
	substituteMIR(s.p, s.row, scale, f0, out)
	cut, err := out.finish(s.p, s.sol, s.local || s.localbdsused, s.row.Rank()+1)
	if err != nil {
		return err
	}

	if cut.Efficacy > s.bestEff {
		s.bestEff, s.bestDelta = cut.Efficacy, delta
		if cut.Efficacy > s.params.MinEfficacy {
			s.best = cut
		}
	}

	return nil
}

// CutGenerationHeuristicCMIR searches for the most efficacious c-MIR cut
// of row.
//
// The row is complemented once onto its closest bounds. Candidate deltas
// are the distinct |coef| of integer variables strictly inside their
// local bounds plus max|coef|+1 (or 1 when there is none); each is tried
// as scale 1/delta. The best delta is refined by halving up to three
// times, then integer variables are re-complemented one by one in order of
// decreasing bound distance, keeping a flip only when it strictly improves
// the efficacy.
//
// Negative deltas (TryNegScaling) are tried only when every contributing
// row is an equation, since the negated aggregation is valid only then.
//
// A cut is returned only when its efficacy exceeds params.MinEfficacy;
// otherwise the reason is ErrNoScaleFound.
//
// Errors: ErrNilRow, ErrDimensionMismatch, ErrInvalidCombination,
// scratch.ErrDirty.
func CutGenerationHeuristicCMIR(sol []float64, row *aggrrow.Row, params CMIRParams) (res Result, err error) {
	p, err := checkInput("CutGenerationHeuristicCMIR", row, sol)
	if err != nil {
		return Result{}, err
	}
	if err = params.validate(); err != nil {
		return Result{}, fmt.Errorf("CutGenerationHeuristicCMIR: %w", err)
	}
	defer func() {
		if err == nil {
			params.observe(GenCMIR, res)
		}
	}()
	log := params.logger()

	s, err := newCMIRSearch(p, sol, row, params)
	if err != nil {
		return Result{}, fmt.Errorf("CutGenerationHeuristicCMIR: %w", err)
	}
	if s == nil {
		log.Debug("cmir: free variable", slog.Int("nnz", row.NNZ()))
		return fail(ErrFreeVariable), nil
	}

	negok := params.TryNegScaling && isEquation(p, row)
	for _, delta := range s.deltas {
		if err = s.try(delta); err != nil {
			return Result{}, fmt.Errorf("CutGenerationHeuristicCMIR: %w", err)
		}
		if negok {
			if err = s.try(-delta); err != nil {
				return Result{}, fmt.Errorf("CutGenerationHeuristicCMIR: %w", err)
			}
		}
	}
	if math.IsInf(s.bestEff, -1) {
		log.Debug("cmir: no delta in window", slog.Int("ndeltas", len(s.deltas)))
		return fail(ErrNoScaleFound), nil
	}

	if err = s.refine(); err != nil {
		return Result{}, fmt.Errorf("CutGenerationHeuristicCMIR: %w", err)
	}

	var flipErr error
	s.dists.Scan(func(d boundDist) bool {
		flipErr = s.flip(d.pos)
		return flipErr == nil
	})
	if flipErr != nil {
		return Result{}, fmt.Errorf("CutGenerationHeuristicCMIR: %w", flipErr)
	}

	if s.best == nil {
		log.Debug("cmir: efficacy too small", slog.Float64("efficacy", s.bestEff), slog.Float64("delta", s.bestDelta))
		return fail(ErrNoScaleFound), nil
	}
	log.Debug("cmir: cut found", slog.Float64("delta", s.bestDelta), slog.Int("nnz", s.best.NNZ()))

	return Result{Cut: s.best, Success: true}, nil
}

// newCMIRSearch complements row onto its closest bounds and collects the
// candidate deltas: the distinct |coef| of integer entries strictly inside
// their local bounds, visited from the last entry backwards, then
// max|coef|+1 (or 1 when there is no integer entry). A nil search with a
// nil error means a free variable.
func newCMIRSearch(p *mip.Problem, sol []float64, row *aggrrow.Row, params CMIRParams) (*cmirSearch, error) {
	tol := p.Tolerances()

	coefs := append([]float64(nil), row.Vals()...)
	inds := append([]int(nil), row.Inds()...)
	coefs, inds, rhs := CleanupCut(p, row.Local(), coefs, inds, row.RHS())

	t, err := transformMIR(p, sol, coefs, inds, rhs, boundOpts{
		boundswitch: params.BoundSwitch,
		usevbds:     params.UseVBDs,
		allowlocal:  params.AllowLocal,
		minfrac:     params.MinFrac,
		maxfrac:     params.MaxFrac,
	})
	if err != nil || t == nil {
		return nil, err
	}

	s := &cmirSearch{
		p:            p,
		sol:          sol,
		row:          row,
		params:       params,
		terms:        t.terms,
		rhs:          t.rhs,
		local:        row.Local(),
		localbdsused: t.localbdsused,
		bestEff:      math.Inf(-1),
		dists:        btree.NewBTreeG[boundDist](farthestFirst),
	}

	firstcont := p.FirstContVar()
	maxabs := -1.0
	for k := len(s.terms) - 1; k >= 0; k-- {
		tm := s.terms[k]
		if tm.ind >= firstcont {
			continue
		}
		v := p.Var(tm.ind)
		absc := math.Abs(tm.coef)
		maxabs = math.Max(maxabs, absc)

		solval := p.SolVal(sol, tm.ind)
		if tol.IsEQ(solval, v.LocalLB) || tol.IsEQ(solval, v.LocalUB) {
			continue
		}
		s.dists.Set(boundDist{dist: math.Min(v.LocalUB-solval, solval-v.LocalLB), pos: k})

		if params.MaxTestDelta == 0 || len(s.deltas) < params.MaxTestDelta {
			s.deltas = appendUnique(tol, s.deltas, absc)
		}
	}
	if maxabs >= 0 {
		s.deltas = appendUnique(tol, s.deltas, maxabs+1)
	}
	if len(s.deltas) == 0 {
		s.deltas = append(s.deltas, 1)
	}

	return s, nil
}

// refine tries the best delta divided by 2, 4 and 8. Each division
// applies to the best delta at that moment.
func (s *cmirSearch) refine() error {
	for div := 2.0; div <= 8; div *= 2 {
		if err := s.try(s.bestDelta / div); err != nil {
			return err
		}
	}

	return nil
}

// flip complements the integer entry at pos onto its opposite bound and
// keeps the change only if the best delta then yields a better cut.
func (s *cmirSearch) flip(pos int) error {
	tol := s.p.Tolerances()
	tm := &s.terms[pos]
	v := s.p.Var(tm.ind)
	old, oldrhs, oldlocal := *tm, s.rhs, s.localbdsused

	if tm.sign > 0 {
		ub, ubtype := findBestUB(s.p, v, s.sol, false, s.params.AllowLocal)
		if tol.IsInfinity(ub) {
			return nil
		}
		s.rhs = s.rhs.Add(numerics.ProdDD(tm.coef, simpleLB(v, tm.btype)-ub))
		tm.sign, tm.btype = -1, ubtype
	} else {
		lb, lbtype := findBestLB(s.p, v, s.sol, false, s.params.AllowLocal)
		if tol.IsInfinity(-lb) {
			return nil
		}
		s.rhs = s.rhs.Sub(numerics.ProdDD(tm.coef, lb-simpleUB(v, tm.btype)))
		tm.sign, tm.btype = 1, lbtype
	}
	s.localbdsused = s.localbdsused || tm.btype == bndLocal

	before := s.bestEff
	if err := s.try(s.bestDelta); err != nil {
		return err
	}
	if s.bestEff == before {
		*tm, s.rhs, s.localbdsused = old, oldrhs, oldlocal
	}

	return nil
}

func appendUnique(tol *numerics.Tolerances, vals []float64, x float64) []float64 {
	for _, v := range vals {
		if tol.IsEQ(v, x) {
			return vals
		}
	}

	return append(vals, x)
}

// isEquation reports whether row aggregates equations only.
func isEquation(p *mip.Problem, row *aggrrow.Row) bool {
	tol := p.Tolerances()
	for _, pos := range row.RowInds() {
		r := p.Row(pos)
		if !tol.IsEQ(r.LHS, r.RHS) {
			return false
		}
	}

	return row.NRows() > 0
}
