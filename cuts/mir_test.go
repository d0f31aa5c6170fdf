package cuts_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/mip"
)

// MIRSuite covers CalcMIR and CalcStrongCG on small hand-checked rows.
type MIRSuite struct {
	suite.Suite
}

// pairProblem is x0 + x1 ≤ 1.5 over binaries.
func pairProblem(t *testing.T) *mip.Problem {
	p := mip.NewProblem()
	_, _ = p.AddVar("x0", mip.Binary, 0, 1)
	_, _ = p.AddVar("x1", mip.Binary, 0, 1)
	_, err := p.AddRow("pair", []int{0, 1}, []float64{1, 1}, math.Inf(-1), 1.5)
	require.NoError(t, err)
	return p
}

// TestPairCut rounds x0 + x1 ≤ 1.5 at (0.75, 0.75) to x0 + x1 ≤ 1.
func (s *MIRSuite) TestPairCut() {
	t := s.T()
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{0.75, 0.75}

	res, err := cuts.CalcMIR(sol, row, cuts.DefaultMIRParams())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NoError(t, res.Reason)
	requireCut(t, map[int]float64{0: 1, 1: 1}, 1, res.Cut)
	assert.InDelta(t, 0.5/math.Sqrt2, res.Cut.Efficacy, tolDelta)
	assert.Equal(t, 1, res.Cut.Rank)
	assert.False(t, res.Cut.Local)
	assert.InDelta(t, res.Cut.Efficacy, cuts.Efficacy(p, sol, res.Cut), tolDelta)

	scg, err := cuts.CalcStrongCG(sol, row, cuts.DefaultStrongCGParams())
	require.NoError(t, err)
	require.True(t, scg.Success)
	requireCut(t, map[int]float64{0: 1, 1: 1}, 1, scg.Cut)
}

// TestIntegerRounding checks the rounded coefficient of a single general
// integer: 2.6x ≤ 5.2 gives 2.5x ≤ 5 (MIR) and 2.4x ≤ 5 (strong CG, k=4).
func (s *MIRSuite) TestIntegerRounding() {
	t := s.T()
	p := mip.NewProblem()
	_, _ = p.AddVar("x", mip.Integer, 0, 10)
	_, err := p.AddRow("r", []int{0}, []float64{2.6}, math.Inf(-1), 5.2)
	require.NoError(t, err)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{2}

	res, err := cuts.CalcMIR(sol, row, cuts.DefaultMIRParams())
	require.NoError(t, err)
	require.True(t, res.Success)
	requireCut(t, map[int]float64{0: 2.5}, 5, res.Cut)

	scg, err := cuts.CalcStrongCG(sol, row, cuts.DefaultStrongCGParams())
	require.NoError(t, err)
	require.True(t, scg.Success)
	requireCut(t, map[int]float64{0: 2.4}, 5, scg.Cut)

	grid := [][]float64{steps(0, 10, 1)}
	feasible := func(x []float64) bool { return 2.6*x[0] <= 5.2 }
	requireValid(t, p, grid, feasible, res.Cut)
	requireValid(t, p, grid, feasible, scg.Cut)
}

// TestContinuous checks x - y ≤ 0.5 with y ≥ 0 continuous: the MIR cut
// is x - 2y ≤ 0 while Strong CG gives y coefficient 0.
func (s *MIRSuite) TestContinuous() {
	t := s.T()
	p := mip.NewProblem()
	_, _ = p.AddVar("x", mip.Integer, 0, 5)
	_, _ = p.AddVar("y", mip.Continuous, 0, 10)
	_, err := p.AddRow("r", []int{0, 1}, []float64{1, -1}, math.Inf(-1), 0.5)
	require.NoError(t, err)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{0.75, 0.25}

	res, err := cuts.CalcMIR(sol, row, cuts.DefaultMIRParams())
	require.NoError(t, err)
	require.True(t, res.Success)
	requireCut(t, map[int]float64{0: 1, 1: -2}, 0, res.Cut)
	assert.Positive(t, res.Cut.Efficacy)

	// Strong CG moves y to its upper bound and then drops it: x ≤ 10.
	scg, err := cuts.CalcStrongCG(sol, row, cuts.DefaultStrongCGParams())
	require.NoError(t, err)
	require.True(t, scg.Success)
	assert.NotContains(t, coefs(scg.Cut), 1)
	requireCut(t, map[int]float64{0: 1}, 10, scg.Cut)
	assert.Negative(t, scg.Cut.Efficacy)

	grid := [][]float64{steps(0, 5, 1), steps(0, 10, 0.25)}
	feasible := func(x []float64) bool { return x[0]-x[1] <= 0.5 }
	requireValid(t, p, grid, feasible, res.Cut)
	requireValid(t, p, grid, feasible, scg.Cut)
}

// TestFreeVariable checks that a free continuous variable stops every
// generator without a hard error.
func (s *MIRSuite) TestFreeVariable() {
	t := s.T()
	p := mip.NewProblem()
	_, _ = p.AddVar("x", mip.Binary, 0, 1)
	_, _ = p.AddVar("y", mip.Continuous, math.Inf(-1), math.Inf(1))
	_, err := p.AddRow("r", []int{0, 1}, []float64{1, 1}, math.Inf(-1), 1.5)
	require.NoError(t, err)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{0.5, 1}

	res, err := cuts.CalcMIR(sol, row, cuts.DefaultMIRParams())
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Nil(t, res.Cut)
	require.ErrorIs(t, res.Reason, cuts.ErrFreeVariable)

	res, err = cuts.CalcStrongCG(sol, row, cuts.DefaultStrongCGParams())
	require.NoError(t, err)
	require.ErrorIs(t, res.Reason, cuts.ErrFreeVariable)

	res, err = cuts.CalcFlowCover(sol, row, cuts.DefaultFlowCoverParams())
	require.NoError(t, err)
	require.ErrorIs(t, res.Reason, cuts.ErrFreeVariable)

	res, err = cuts.CutGenerationHeuristicCMIR(sol, row, cuts.DefaultCMIRParams())
	require.NoError(t, err)
	require.ErrorIs(t, res.Reason, cuts.ErrFreeVariable)
}

// TestFractionalityWindow checks an integral rhs that no single bound
// flip can repair.
func (s *MIRSuite) TestFractionalityWindow() {
	t := s.T()
	p := mip.NewProblem()
	_, _ = p.AddVar("x0", mip.Binary, 0, 1)
	_, _ = p.AddVar("x1", mip.Binary, 0, 1)
	_, err := p.AddRow("r", []int{0, 1}, []float64{1, 1}, math.Inf(-1), 1)
	require.NoError(t, err)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{0.5, 0.5}

	res, err := cuts.CalcMIR(sol, row, cuts.DefaultMIRParams())
	require.NoError(t, err)
	require.ErrorIs(t, res.Reason, cuts.ErrOutOfFractionalityWindow)

	res, err = cuts.CalcStrongCG(sol, row, cuts.DefaultStrongCGParams())
	require.NoError(t, err)
	require.ErrorIs(t, res.Reason, cuts.ErrOutOfFractionalityWindow)
}

// TestScaleTooLarge checks the |scale|/(1-f0) limit.
func (s *MIRSuite) TestScaleTooLarge() {
	t := s.T()
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	params := cuts.DefaultMIRParams()
	params.Scale = 3e6 + 0.5

	res, err := cuts.CalcMIR([]float64{0.75, 0.75}, row, params)
	require.NoError(t, err)
	require.ErrorIs(t, res.Reason, cuts.ErrInvalidScale)
}

// TestParamErrors checks the hard errors shared by the generators.
func (s *MIRSuite) TestParamErrors() {
	t := s.T()
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	sol := []float64{0.75, 0.75}

	_, err := cuts.CalcMIR(sol, nil, cuts.DefaultMIRParams())
	require.ErrorIs(t, err, cuts.ErrNilRow)
	_, err = cuts.CalcMIR([]float64{1}, row, cuts.DefaultMIRParams())
	require.ErrorIs(t, err, cuts.ErrDimensionMismatch)

	params := cuts.DefaultMIRParams()
	params.IgnoreSol = true
	_, err = cuts.CalcMIR(sol, row, params)
	require.ErrorIs(t, err, cuts.ErrInvalidCombination)

	params = cuts.DefaultMIRParams()
	params.BoundsForTrans = []cuts.BoundChoice{{}}
	_, err = cuts.CalcMIR(sol, row, params)
	require.ErrorIs(t, err, cuts.ErrDimensionMismatch)

	params.BoundsForTrans = []cuts.BoundChoice{{Kind: cuts.BoundVariable}, {}}
	_, err = cuts.CalcMIR(sol, row, params)
	require.ErrorIs(t, err, cuts.ErrBadBoundChoice)

	scg := cuts.DefaultStrongCGParams()
	scg.MinFrac = 0
	_, err = cuts.CalcStrongCG(sol, row, scg)
	require.ErrorIs(t, err, cuts.ErrInvalidCombination)
}

// TestForcedBounds forces x0 onto its upper bound against the solution.
func (s *MIRSuite) TestForcedBounds() {
	t := s.T()
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	params := cuts.DefaultMIRParams()
	params.FixIntegralRHS = false
	params.BoundsForTrans = []cuts.BoundChoice{{Kind: cuts.BoundGlobal, Upper: true}, {Kind: cuts.BoundGlobal}}

	// x0 = 1 - x0', x1 = x1': -x0' + x1 ≤ 0.5, f0 = 0.5.
	res, err := cuts.CalcMIR([]float64{0.75, 0.25}, row, params)
	require.NoError(t, err)
	require.True(t, res.Success)
	requireValid(t, p, [][]float64{{0, 1}, {0, 1}},
		func(x []float64) bool { return x[0]+x[1] <= 1.5 }, res.Cut)
}

// TestIgnoreSol picks bounds structurally.
func (s *MIRSuite) TestIgnoreSol() {
	t := s.T()
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	params := cuts.DefaultMIRParams()
	params.FixIntegralRHS = false
	params.IgnoreSol = true

	res, err := cuts.CalcMIR(nil, row, params)
	require.NoError(t, err)
	require.True(t, res.Success)
	requireCut(t, map[int]float64{0: 1, 1: 1}, 1, res.Cut)
}

// TestLocalBounds checks that a tighter local bound marks the cut local.
func (s *MIRSuite) TestLocalBounds() {
	t := s.T()
	p := mip.NewProblem()
	_, _ = p.AddVar("x", mip.Integer, 0, 10)
	_, err := p.AddRow("r", []int{0}, []float64{2.6}, math.Inf(-1), 5.2)
	require.NoError(t, err)
	require.NoError(t, p.SetLocalBounds(0, 1, 10))
	row := aggregate(t, p, []int{0}, []float64{1})

	res, err := cuts.CalcMIR([]float64{1.5}, row, cuts.DefaultMIRParams())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.True(t, res.Cut.Local)

	params := cuts.DefaultMIRParams()
	params.AllowLocal = false
	res, err = cuts.CalcMIR([]float64{1.5}, row, params)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.False(t, res.Cut.Local)
}

// TestObserver checks that the observer sees one call per generator run.
func (s *MIRSuite) TestObserver() {
	t := s.T()
	p := pairProblem(t)
	row := aggregate(t, p, []int{0}, []float64{1})
	rec := &recorder{}

	params := cuts.DefaultMIRParams()
	params.Observer = rec
	res, err := cuts.CalcMIR([]float64{0.75, 0.75}, row, params)
	require.NoError(t, err)

	scg := cuts.DefaultStrongCGParams()
	scg.Observer = rec
	_, err = cuts.CalcStrongCG([]float64{0.75, 0.75}, row, scg)
	require.NoError(t, err)

	// Hard errors are not observed.
	_, err = cuts.CalcStrongCG([]float64{1}, row, scg)
	require.Error(t, err)

	require.Len(t, rec.calls, 2)
	require.Equal(t, cuts.GenMIR, rec.calls[0].generator)
	require.NoError(t, rec.calls[0].reason)
	require.InDelta(t, res.Cut.Efficacy, rec.calls[0].efficacy, tolDelta)
	require.Equal(t, cuts.GenStrongCG, rec.calls[1].generator)
}

func TestMIRSuite(t *testing.T) {
	suite.Run(t, new(MIRSuite))
}
