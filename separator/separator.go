// SPDX-License-Identifier: MIT
// Package: lvcuts/separator

package separator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/mip"
)

// colEntry is a non-zero of a column: the row position and coefficient.
type colEntry struct {
	pos int
	val float64
}

// Separator runs the aggregation heuristic on one problem.
type Separator struct {
	p       *mip.Problem
	opts    Options
	log     *slog.Logger
	colRows [][]colEntry
}

// New builds the column view of p and applies opts over DefaultOptions.
// Rows added to p later are not seen by the separator.
//
// Errors: ErrNilProblem, ErrUnknownGenerator.
func New(p *mip.Problem, opts ...Option) (*Separator, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := CheckGenerators(o.Generators); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	log := o.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	colRows := make([][]colEntry, p.NVars())
	for pos := 0; pos < p.NRows(); pos++ {
		r := p.Row(pos)
		for k, c := range r.Cols {
			colRows[c] = append(colRows[c], colEntry{pos: pos, val: r.Vals[k]})
		}
	}

	return &Separator{p: p, opts: o, log: log, colRows: colRows}, nil
}

// Options returns the effective options.
func (s *Separator) Options() Options { return s.opts }

// Run separates sol (nil means the LP solution) and returns up to MaxCuts
// distinct cuts by decreasing efficacy. The cuts are also added to the
// shared pool when one is configured.
//
// Errors: ErrDimensionMismatch, ctx.Err() when the context is done
// between start rows, and hard errors of the generators.
func (s *Separator) Run(ctx context.Context, sol []float64) ([]Entry, error) {
	if sol == nil {
		sol = s.p.LPSolution()
	} else if len(sol) != s.p.NVars() {
		return nil, fmt.Errorf("Run: %d values for %d vars: %w", len(sol), s.p.NVars(), ErrDimensionMismatch)
	}

	found := NewPool()
	starts := s.startRows(sol)
	s.log.Debug("separator: start", slog.Int("rows", s.p.NRows()), slog.Int("starts", len(starts)))
	for _, pos := range starts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		if found.Len() >= s.opts.MaxCuts {
			break
		}
		if err := s.aggregate(sol, pos, found); err != nil {
			return nil, fmt.Errorf("Run: row %q: %w", s.p.Row(pos).Name, err)
		}
	}

	top := found.Top(s.opts.MaxCuts)
	if s.opts.Pool != nil {
		for _, e := range top {
			s.opts.Pool.Add(e.Generator, e.Cut)
		}
	}
	s.log.Debug("separator: done", slog.Int("found", found.Len()), slog.Int("returned", len(top)))

	return top, nil
}

// startRows returns the usable rows with slack at most MaxSlack ordered by
// increasing slack.
func (s *Separator) startRows(sol []float64) []int {
	tol := s.p.Tolerances()
	type cand struct {
		pos   int
		slack float64
	}
	var cands []cand
	for pos := 0; pos < s.p.NRows(); pos++ {
		r := s.p.Row(pos)
		if r.Modifiable || len(r.Cols) == 0 || (tol.IsInfinity(r.RHS) && tol.IsInfinity(-r.LHS)) {
			continue
		}
		if slack := s.p.Slack(r, sol); slack <= s.opts.MaxSlack {
			cands = append(cands, cand{pos: pos, slack: slack})
		}
	}
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].slack < cands[b].slack })

	out := make([]int, len(cands))
	for k, c := range cands {
		out[k] = c.pos
	}

	return out
}

// aggregate runs the heuristic from the start row.
func (s *Separator) aggregate(sol []float64, start int, found *Pool) error {
	p := s.p
	tol := p.Tolerances()
	row := p.Row(start)

	weight := 1.0
	switch {
	case tol.IsInfinity(row.RHS):
		weight = -1
	case tol.IsInfinity(-row.LHS):
	case p.Activity(row, sol) <= 0.5*row.LHS+0.5*row.RHS:
		weight = -1
	}

	aggr := aggrrow.New(p)
	if err := aggr.AddRow(row, weight, aggrrow.SideAuto); err != nil {
		return err
	}

	for naggrs := 0; ; naggrs++ {
		if aggr.NNZ() == 0 || aggr.NNZ() > s.opts.MaxAggrLen || s.countCont(aggr) > s.opts.MaxCont {
			return nil
		}
		if err := s.separate(sol, aggr, found); err != nil {
			return err
		}
		if naggrs >= s.opts.MaxAggrs {
			return nil
		}

		pos, fact, ok := s.eliminationRow(sol, aggr, start)
		if !ok {
			return nil
		}
		s.log.Debug("separator: aggregate",
			slog.String("start", row.Name),
			slog.String("row", p.Row(pos).Name),
			slog.Float64("factor", fact))
		if err := aggr.AddRow(p.Row(pos), fact, aggrrow.SideAuto); err != nil {
			return err
		}
		aggr.RemoveZeros(tol.Epsilon())
	}
}

func (s *Separator) countCont(aggr *aggrrow.Row) int {
	n := 0
	for _, j := range aggr.Inds() {
		if s.p.IsContinuous(j) {
			n++
		}
	}

	return n
}

func (s *Separator) hooks() cuts.Hooks {
	return cuts.Hooks{Logger: s.opts.Logger, Observer: s.opts.Observer}
}

// separate calls every enabled generator on aggr and pools the cuts above
// MinEfficacy.
func (s *Separator) separate(sol []float64, aggr *aggrrow.Row, found *Pool) error {
	for _, g := range s.opts.Generators {
		var (
			res cuts.Result
			err error
		)
		switch g {
		case cuts.GenMIR:
			params := s.opts.MIR
			params.Hooks = s.hooks()
			res, err = cuts.CalcMIR(sol, aggr, params)
		case cuts.GenCMIR:
			params := s.opts.CMIR
			params.Hooks = s.hooks()
			res, err = cuts.CutGenerationHeuristicCMIR(sol, aggr, params)
		case cuts.GenFlowCover:
			params := s.opts.FlowCover
			params.Hooks = s.hooks()
			res, err = cuts.CalcFlowCover(sol, aggr, params)
		case cuts.GenStrongCG:
			params := s.opts.StrongCG
			params.Hooks = s.hooks()
			res, err = cuts.CalcStrongCG(sol, aggr, params)
		default:
			err = fmt.Errorf("generator %q: %w", g, ErrUnknownGenerator)
		}
		if err != nil {
			return err
		}
		if res.Success && res.Cut.Efficacy > s.opts.MinEfficacy {
			found.Add(g, res.Cut)
		}
	}

	return nil
}

// eliminationRow picks the continuous variable of aggr farthest from its
// local bounds that some unused row can eliminate, and among those rows
// the one with the smallest slack scaled by its factor.
func (s *Separator) eliminationRow(sol []float64, aggr *aggrrow.Row, start int) (int, float64, bool) {
	p := s.p
	tol := p.Tolerances()
	vals := aggr.Vals()

	maxdist := 0.0
	bestpos, bestfact := -1, 0.0
	for k, j := range aggr.Inds() {
		if !p.IsContinuous(j) || tol.IsZero(vals[k]) {
			continue
		}
		v := p.Var(j)
		solval := sol[j]
		dist := math.Min(solval-v.LocalLB, v.LocalUB-solval)
		if dist <= maxdist {
			continue
		}

		minslack := math.Inf(1)
		for _, ce := range s.colRows[j] {
			r := p.Row(ce.pos)
			if ce.pos == start || r.Modifiable || aggr.HasRowBeenAdded(ce.pos) {
				continue
			}
			fact := -vals[k] / ce.val
			slack := math.Inf(1)
			switch {
			case fact < 0 && fact >= s.opts.MinRowFac && !tol.IsInfinity(-r.LHS):
				slack = (r.LHS - p.Activity(r, sol)) * fact
			case fact > 0 && fact <= s.opts.MaxRowFac && !tol.IsInfinity(r.RHS):
				slack = (r.RHS - p.Activity(r, sol)) * fact
			}
			if slack < minslack {
				minslack = slack
				maxdist = dist
				bestpos, bestfact = ce.pos, fact
			}
		}
	}

	return bestpos, bestfact, bestpos >= 0
}
