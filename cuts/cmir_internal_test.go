package cuts

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/mip"
)

// knapsackSearch prepares the c-MIR search of the single row
// Σ coefs·x ≤ rhs over integers x_j ∈ [0, ubs[j]].
func knapsackSearch(t *testing.T, coefs, ubs []float64, rhs float64, sol []float64) *cmirSearch {
	t.Helper()
	p := mip.NewProblem()
	inds := make([]int, len(coefs))
	for j, ub := range ubs {
		v, err := p.AddVar(fmt.Sprintf("x%d", j), mip.Integer, 0, ub)
		require.NoError(t, err)
		inds[j] = v.Index
	}
	_, err := p.AddRow("k", inds, coefs, math.Inf(-1), rhs)
	require.NoError(t, err)

	row := aggrrow.New(p)
	require.NoError(t, row.AddRow(p.Row(0), 1, aggrrow.SideRHS))

	s, err := newCMIRSearch(p, sol, row, DefaultCMIRParams())
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

// TestCMIRDeltaCandidates collects deltas from the last integer entry
// backwards, skipping entries at a bound, then appends max|coef|+1.
func TestCMIRDeltaCandidates(t *testing.T) {
	s := knapsackSearch(t, []float64{3, 5, 7}, []float64{3, 2, 1}, 10.5, []float64{1, 0.1, 1})
	assert.Equal(t, []float64{3, 5, 8}, s.deltas)
	assert.Equal(t, 2, s.dists.Len())
}

// TestCMIRRefinementMonotone follows 3x0 + 6x1 ≤ 8.5 at (2, 0.25): the
// candidates 6 and 7 give 6/7·x0 + x1 ≤ 12/7, halving 6 gives the
// stronger x0 + 2x1 ≤ 2, and further divisions never lose it.
func TestCMIRRefinementMonotone(t *testing.T) {
	s := knapsackSearch(t, []float64{3, 6}, []float64{2, 1}, 8.5, []float64{2, 0.25})
	require.Equal(t, []float64{6, 7}, s.deltas)
	for _, d := range s.deltas {
		require.NoError(t, s.try(d))
	}
	require.Equal(t, 6.0, s.bestDelta)
	require.InDelta(t, 0.25/math.Sqrt(1+36.0/49), s.bestEff, 1e-9)

	improved := false
	for div := 2.0; div <= 8; div *= 2 {
		before := s.bestEff
		require.NoError(t, s.try(s.bestDelta/div))
		require.GreaterOrEqual(t, s.bestEff, before, "delta divided by %v", div)
		improved = improved || s.bestEff > before
	}
	assert.True(t, improved)
	assert.Equal(t, 3.0, s.bestDelta)
	assert.InDelta(t, 0.5/math.Sqrt(5), s.bestEff, 1e-9)

	require.NotNil(t, s.best)
	got := make(map[int]float64)
	for k, i := range s.best.Inds {
		got[i] = s.best.Coefs[k]
	}
	assert.InDelta(t, 1, got[0], 1e-9)
	assert.InDelta(t, 2, got[1], 1e-9)
	assert.InDelta(t, 2, s.best.RHS, 1e-9)
}

func TestCMIRRefineKeepsBest(t *testing.T) {
	s := knapsackSearch(t, []float64{3, 5, 7}, []float64{3, 2, 1}, 10.5, []float64{1, 0.1, 1})
	for _, d := range s.deltas {
		require.NoError(t, s.try(d))
	}
	before, delta := s.bestEff, s.bestDelta
	require.NoError(t, s.refine())
	assert.GreaterOrEqual(t, s.bestEff, before)
	assert.Equal(t, delta, s.bestDelta)
}
