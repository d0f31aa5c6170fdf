package cuts_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/mip"
)

func cleanupProblem(t *testing.T) *mip.Problem {
	p := mip.NewProblem()
	_, _ = p.AddVar("a", mip.Integer, 2, 5)
	_, _ = p.AddVar("b", mip.Integer, -3, 4)
	_, _ = p.AddVar("c", mip.Integer, 0, 4)
	_, _ = p.AddVar("d", mip.Continuous, 0, math.Inf(1))
	require.NoError(t, p.SetLocalBounds(2, 0, 1))
	return p
}

// TestCleanupCut drops tiny coefficients and relaxes rhs by their worst
// case over the bounds.
func TestCleanupCut(t *testing.T) {
	p := cleanupProblem(t)

	coefs := []float64{1e-7, 2, -5e-7, 1e-12}
	inds := []int{0, 1, 2, 3}
	coefs, inds, rhs := cuts.CleanupCut(p, false, coefs, inds, 3)
	require.Equal(t, []int{1}, inds)
	require.Equal(t, []float64{2}, coefs)
	require.InDelta(t, 3-2e-7+2e-6, rhs, 1e-15)

	// Idempotent.
	c2, i2, r2 := cuts.CleanupCut(p, false, coefs, inds, rhs)
	require.Equal(t, coefs, c2)
	require.Equal(t, inds, i2)
	require.Equal(t, rhs, r2)

	// Local bounds: c ≤ 1 locally.
	_, _, rhs = cuts.CleanupCut(p, true, []float64{-5e-7}, []int{2}, 3)
	require.InDelta(t, 3+5e-7, rhs, 1e-15)
}

// TestCleanupCutInfinite checks that an unbounded dropped term makes the
// rhs infinite.
func TestCleanupCutInfinite(t *testing.T) {
	p := cleanupProblem(t)
	coefs, inds, rhs := cuts.CleanupCut(p, false, []float64{1, -5e-7}, []int{0, 3}, 3)
	require.Equal(t, []int{0}, inds)
	require.Equal(t, []float64{1}, coefs)
	require.True(t, p.Tolerances().IsInfinity(rhs))
}
