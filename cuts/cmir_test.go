package cuts_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/mip"
)

// TestCMIRPair finds at least the plain MIR cut of x0 + x1 ≤ 1.5.
func TestCMIRPair(t *testing.T) {
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{0.75, 0.75}

	res, err := cuts.CutGenerationHeuristicCMIR(sol, row, cuts.DefaultCMIRParams())
	require.NoError(t, err)
	require.True(t, res.Success)
	requireCut(t, map[int]float64{0: 1, 1: 1}, 1, res.Cut)

	mir := cuts.DefaultMIRParams()
	mir.FixIntegralRHS = false
	plain, err := cuts.CalcMIR(sol, row, mir)
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Cut.Efficacy, plain.Cut.Efficacy-tolDelta)
}

// TestCMIRKnapsack checks validity and violation on a general integer
// knapsack 3x0 + 5x1 + 7x2 ≤ 10.5.
func TestCMIRKnapsack(t *testing.T) {
	p := mip.NewProblem()
	_, _ = p.AddVar("x0", mip.Integer, 0, 3)
	_, _ = p.AddVar("x1", mip.Integer, 0, 2)
	_, _ = p.AddVar("x2", mip.Integer, 0, 1)
	_, err := p.AddRow("k", []int{0, 1, 2}, []float64{3, 5, 7}, math.Inf(-1), 10.5)
	require.NoError(t, err)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{1, 0.1, 1}

	params := cuts.DefaultCMIRParams()
	params.TryNegScaling = true
	res, err := cuts.CutGenerationHeuristicCMIR(sol, row, params)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Greater(t, res.Cut.Efficacy, params.MinEfficacy)
	require.Equal(t, 1, res.Cut.Rank)

	requireValid(t, p, [][]float64{steps(0, 3, 1), steps(0, 2, 1), {0, 1}},
		func(x []float64) bool { return 3*x[0]+5*x[1]+7*x[2] <= 10.5 }, res.Cut)
}

// TestCMIRNoScale reports ErrNoScaleFound when no cut is efficacious
// enough.
func TestCMIRNoScale(t *testing.T) {
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	params := cuts.DefaultCMIRParams()
	params.MinEfficacy = 10

	res, err := cuts.CutGenerationHeuristicCMIR([]float64{0.75, 0.75}, row, params)
	require.NoError(t, err)
	require.False(t, res.Success)
	require.ErrorIs(t, res.Reason, cuts.ErrNoScaleFound)

	params = cuts.DefaultCMIRParams()
	params.MaxTestDelta = -1
	_, err = cuts.CutGenerationHeuristicCMIR([]float64{0.75, 0.75}, row, params)
	require.ErrorIs(t, err, cuts.ErrInvalidCombination)
}

// TestCMIRRefinedDelta separates 3x0 + 6x1 ≤ 8.5 at (2, 0.25), where only
// the halved candidate 6/2 yields x0 + 2x1 ≤ 2.
func TestCMIRRefinedDelta(t *testing.T) {
	p := mip.NewProblem()
	_, _ = p.AddVar("x0", mip.Integer, 0, 2)
	_, _ = p.AddVar("x1", mip.Integer, 0, 1)
	_, err := p.AddRow("k", []int{0, 1}, []float64{3, 6}, math.Inf(-1), 8.5)
	require.NoError(t, err)
	row := aggregate(t, p, []int{0}, []float64{1})

	res, err := cuts.CutGenerationHeuristicCMIR([]float64{2, 0.25}, row, cuts.DefaultCMIRParams())
	require.NoError(t, err)
	require.True(t, res.Success)
	requireCut(t, map[int]float64{0: 1, 1: 2}, 2, res.Cut)
	require.InDelta(t, 0.5/math.Sqrt(5), res.Cut.Efficacy, tolDelta)

	requireValid(t, p, [][]float64{steps(0, 2, 1), {0, 1}},
		func(x []float64) bool { return 3*x[0]+6*x[1] <= 8.5 }, res.Cut)
}
