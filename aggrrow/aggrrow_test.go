package aggrrow_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/mip"
)

// AggrRowSuite exercises aggregation on a small problem:
//
//	r0:  x0 + 2x1 + y        ≤ 4.5
//	r1:  1 ≤ x0 - x1 + 3y    ≤ 6    (integral, local)
//	r2:       x1 - y         ≥ -2   (modifiable)
type AggrRowSuite struct {
	suite.Suite
	p *mip.Problem
}

func (s *AggrRowSuite) SetupTest() {
	p := mip.NewProblem()
	_, _ = p.AddVar("x0", mip.Binary, 0, 1)
	_, _ = p.AddVar("x1", mip.Integer, 0, 5)
	_, _ = p.AddVar("y", mip.Continuous, 0, 10)
	_, err := p.AddRow("r0", []int{0, 1, 2}, []float64{1, 2, 1}, math.Inf(-1), 4.5)
	s.Require().NoError(err)
	_, err = p.AddRow("r1", []int{0, 1, 2}, []float64{1, -1, 3}, 1.5, 6.5, mip.WithIntegral(), mip.WithLocal(), mip.WithRank(2))
	s.Require().NoError(err)
	_, err = p.AddRow("r2", []int{1, 2}, []float64{1, -1}, -2, math.Inf(1), mip.WithModifiable())
	s.Require().NoError(err)
	s.p = p
}

func coefMap(r *aggrrow.Row) map[int]float64 {
	m := make(map[int]float64, r.NNZ())
	for i, j := range r.Inds() {
		m[j] = r.Vals()[i]
	}
	return m
}

// TestAddRowSides checks side selection and integral rounding.
func (s *AggrRowSuite) TestAddRowSides() {
	r := aggrrow.New(s.p)
	require.NoError(s.T(), r.AddRow(s.p.Row(0), 2, aggrrow.SideAuto))
	require.Equal(s.T(), 9.0, r.RHS())
	require.Equal(s.T(), []int{1}, r.SlackSigns())

	// Integral ranged row with negative scale picks lhs, ceil(1.5) = 2.
	require.NoError(s.T(), r.AddRow(s.p.Row(1), -1, aggrrow.SideAuto))
	require.Equal(s.T(), 9.0-2.0, r.RHS())
	require.Equal(s.T(), []int{1, -1}, r.SlackSigns())
	require.True(s.T(), r.Local())
	require.Equal(s.T(), 2, r.Rank())
	require.Equal(s.T(), map[int]float64{0: 1, 1: 5, 2: -1}, coefMap(r))

	// Forced rhs: floor(6.5) = 6.
	r2 := aggrrow.New(s.p)
	require.NoError(s.T(), r2.AddRow(s.p.Row(1), 1, aggrrow.SideRHS))
	require.Equal(s.T(), 6.0, r2.RHS())
	require.True(s.T(), r2.HasRowBeenAdded(1))
	require.False(s.T(), r2.HasRowBeenAdded(0))

	require.ErrorIs(s.T(), r2.AddRow(nil, 1, aggrrow.SideAuto), aggrrow.ErrNilRow)
	require.ErrorIs(s.T(), r2.AddRow(s.p.Row(0), math.NaN(), aggrrow.SideAuto), aggrrow.ErrBadScale)
}

// TestAddRowAdditivity verifies addRow(+1) followed by addRow(-1) restores the row.
func (s *AggrRowSuite) TestAddRowAdditivity() {
	r := aggrrow.New(s.p)
	require.NoError(s.T(), r.AddRow(s.p.Row(2), 3, aggrrow.SideLHS))
	before := coefMap(r)
	nnz, rhs := r.NNZ(), r.RHS()

	require.NoError(s.T(), r.AddRow(s.p.Row(0), 1, aggrrow.SideRHS))
	require.Equal(s.T(), 3, r.NNZ())
	require.NoError(s.T(), r.AddRow(s.p.Row(0), -1, aggrrow.SideRHS))

	require.Equal(s.T(), nnz, r.NNZ())
	require.InDelta(s.T(), rhs, r.RHS(), 1e-12)
	after := coefMap(r)
	require.Len(s.T(), after, len(before))
	for j, v := range before {
		require.InDelta(s.T(), v, after[j], 1e-12)
	}
	require.Equal(s.T(), 3, r.NRows())
}

// TestSumRowsFilters checks modifiable/local/weight filters.
func (s *AggrRowSuite) TestSumRowsFilters() {
	r := aggrrow.New(s.p)
	params := aggrrow.DefaultSumParams()
	params.AllowLocal = false

	valid, reason, err := r.SumRows([]float64{1, 1, 1}, nil, params)
	require.NoError(s.T(), err)
	require.NoError(s.T(), reason)
	require.True(s.T(), valid)
	require.Equal(s.T(), []int{0}, r.RowInds(), "local and modifiable rows are skipped")
	require.Equal(s.T(), 4.5, r.RHS())

	params.AllowLocal = true
	params.MaxWeightRange = 10
	valid, _, err = r.SumRows([]float64{1, 100, 1}, nil, params)
	require.NoError(s.T(), err)
	require.True(s.T(), valid)
	require.Equal(s.T(), []int{0}, r.RowInds(), "weight range excludes row 1")

	valid, _, err = r.SumRows([]float64{1, 2, 0}, []int{1, 0}, params)
	require.NoError(s.T(), err)
	require.True(s.T(), valid)
	require.Equal(s.T(), []int{1, 0}, r.RowInds())
	require.Equal(s.T(), 12.0+4.5, r.RHS())
	require.Equal(s.T(), map[int]float64{0: 3, 2: 7}, coefMap(r), "cancelled x1 is removed")
	minw, maxw := r.AbsWeightRange()
	require.Equal(s.T(), 1.0, minw)
	require.Equal(s.T(), 2.0, maxw)
}

// TestSumRowsNegSlack checks the negative-slack policy.
func (s *AggrRowSuite) TestSumRowsNegSlack() {
	r := aggrrow.New(s.p)
	params := aggrrow.DefaultSumParams()
	params.NegSlack = aggrrow.NegSlackNone

	// Row 0 has an infinite lhs, so weight -1 must use its rhs: negative slack.
	valid, reason, err := r.SumRows([]float64{-1, 0, 0}, []int{0}, params)
	require.NoError(s.T(), err)
	require.False(s.T(), valid)
	require.ErrorIs(s.T(), reason, aggrrow.ErrEmpty)

	// Only the integral row may enter through its lhs with a positive weight.
	require.NoError(s.T(), s.p.SetBasis(1, mip.BasisLower))
	params.NegSlack = aggrrow.NegSlackIntegral
	params.SideTypeBasis = true
	valid, _, err = r.SumRows([]float64{-1, 1, 0}, []int{0, 1}, params)
	require.NoError(s.T(), err)
	require.True(s.T(), valid)
	require.Equal(s.T(), []int{1}, r.RowInds())
	require.Equal(s.T(), []int{-1}, r.SlackSigns())
}

// TestSumRowsBasis checks basis-driven side selection.
func (s *AggrRowSuite) TestSumRowsBasis() {
	require.NoError(s.T(), s.p.SetBasis(1, mip.BasisLower))
	r := aggrrow.New(s.p)
	params := aggrrow.DefaultSumParams()
	params.SideTypeBasis = true

	valid, _, err := r.SumRows([]float64{0, 1, 0}, []int{1}, params)
	require.NoError(s.T(), err)
	require.True(s.T(), valid)
	require.Equal(s.T(), []int{-1}, r.SlackSigns())
	require.Equal(s.T(), 2.0, r.RHS())
}

// TestSumRowsTooLong checks the maximal length guard.
func (s *AggrRowSuite) TestSumRowsTooLong() {
	r := aggrrow.New(s.p)
	params := aggrrow.DefaultSumParams()
	params.MaxAggrLen = 2

	valid, reason, err := r.SumRows([]float64{1, 0, 0}, []int{0}, params)
	require.NoError(s.T(), err)
	require.False(s.T(), valid)
	require.ErrorIs(s.T(), reason, aggrrow.ErrRowTooLong)

	_, _, err = r.SumRows([]float64{1}, nil, params)
	require.ErrorIs(s.T(), err, aggrrow.ErrBadWeights)
}

// TestRemoveZerosCopyClear covers the remaining mutators.
func (s *AggrRowSuite) TestRemoveZerosCopyClear() {
	r := aggrrow.New(s.p)
	require.NoError(s.T(), r.AddRow(s.p.Row(0), 1e-7, aggrrow.SideRHS))
	c := r.Copy()
	r.RemoveZeros(1e-6)
	require.Equal(s.T(), 0, r.NNZ())
	require.Equal(s.T(), 3, c.NNZ())

	c.Clear()
	require.Equal(s.T(), 0, c.NNZ())
	require.Equal(s.T(), 0, c.NRows())
	require.Equal(s.T(), 0.0, c.RHS())
	require.False(s.T(), c.Local())
	minw, maxw := c.AbsWeightRange()
	require.Zero(s.T(), minw)
	require.Zero(s.T(), maxw)
}

func TestAggrRowSuite(t *testing.T) {
	suite.Run(t, new(AggrRowSuite))
}
