// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/numerics"
	"github.com/katalvlaran/lvcuts/scratch"
)

// sparseRow accumulates Σ coefs[k]·x[inds[k]] ≤ rhs with one entry per
// variable. pos maps a variable to its entry position plus one.
type sparseRow struct {
	coefs []float64
	inds  []int
	rhs   numerics.DD
	pos   *scratch.PosIndex
}

func newSparseRow(nvars, hint int) *sparseRow {
	return &sparseRow{
		coefs: make([]float64, 0, hint),
		inds:  make([]int, 0, hint),
		pos:   scratch.Acquire(nvars),
	}
}

// add adds val to the coefficient of variable i.
func (s *sparseRow) add(i int, val float64) {
	if k := s.pos.Get(i); k > 0 {
		s.coefs[k-1] += val
		return
	}
	s.coefs = append(s.coefs, val)
	s.inds = append(s.inds, i)
	s.pos.Set(i, len(s.inds))
}

// addRow adds mul·row, ignoring the row constant and sides.
func (s *sparseRow) addRow(row *mip.Row, mul float64) {
	for k, c := range row.Cols {
		s.add(c, mul*row.Vals[k])
	}
}

// release clears the position index and hands it back. The accumulated
// entries stay readable.
func (s *sparseRow) release() error {
	for _, i := range s.inds {
		s.pos.Clear(i)
	}
	err := s.pos.Release()
	s.pos = nil

	return err
}

// finish releases the index, cleans the accumulated row and returns it as
// a cut with its efficacy at sol.
func (s *sparseRow) finish(p *mip.Problem, sol []float64, local bool, rank int) (*Cut, error) {
	if err := s.release(); err != nil {
		return nil, err
	}
	rhs := s.rhs.Float()
	if p.Tolerances().IsZero(rhs) {
		rhs = 0
	}
	coefs, inds, rhs := CleanupCut(p, local, s.coefs, s.inds, rhs)
	cut := &Cut{Coefs: coefs, Inds: inds, RHS: rhs, Local: local, Rank: rank}
	cut.Efficacy = efficacy(p, sol, coefs, inds, rhs)

	return cut, nil
}
