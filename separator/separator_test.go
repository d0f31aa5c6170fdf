package separator_test

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/metrics"
	"github.com/katalvlaran/lvcuts/mip"
	"github.com/katalvlaran/lvcuts/separator"
)

// pairProblem is x0 + x1 ≤ 1.5 over binaries with LP solution (0.75, 0.75).
func pairProblem(t *testing.T) *mip.Problem {
	t.Helper()
	p := mip.NewProblem()
	_, _ = p.AddVar("x0", mip.Binary, 0, 1)
	_, _ = p.AddVar("x1", mip.Binary, 0, 1)
	_, err := p.AddRow("pair", []int{0, 1}, []float64{1, 1}, math.Inf(-1), 1.5)
	require.NoError(t, err)
	require.NoError(t, p.SetLPSolution([]float64{0.75, 0.75}))
	return p
}

// fixedCharge is y0 + y1 ≤ 6 with y_j ≤ 5·x_j, x binary, y ∈ [0,5].
func fixedCharge(t *testing.T) *mip.Problem {
	t.Helper()
	p := mip.NewProblem()
	_, _ = p.AddVar("x0", mip.Binary, 0, 1)
	_, _ = p.AddVar("x1", mip.Binary, 0, 1)
	_, _ = p.AddVar("y0", mip.Continuous, 0, 5)
	_, _ = p.AddVar("y1", mip.Continuous, 0, 5)
	require.NoError(t, p.AddVUB(2, 0, 5, 0))
	require.NoError(t, p.AddVUB(3, 1, 5, 0))
	_, err := p.AddRow("flow", []int{2, 3}, []float64{1, 1}, math.Inf(-1), 6)
	require.NoError(t, err)
	require.NoError(t, p.SetLPSolution([]float64{0.6, 0.6, 3, 3}))
	return p
}

// linked is y - 5x ≤ 0 and y ≥ 3: only the sum of both rows implies x ≥ 1.
func linked(t *testing.T) *mip.Problem {
	t.Helper()
	p := mip.NewProblem()
	_, _ = p.AddVar("x", mip.Binary, 0, 1)
	_, _ = p.AddVar("y", mip.Continuous, 0, 5)
	_, err := p.AddRow("link", []int{1, 0}, []float64{1, -5}, math.Inf(-1), 0)
	require.NoError(t, err)
	_, err = p.AddRow("demand", []int{1}, []float64{1}, 3, math.Inf(1))
	require.NoError(t, err)
	require.NoError(t, p.SetLPSolution([]float64{0.6, 3}))
	return p
}

func TestNewErrors(t *testing.T) {
	_, err := separator.New(nil)
	require.ErrorIs(t, err, separator.ErrNilProblem)

	bad := func(o *separator.Options) { o.Generators = []string{"gomory"} }
	_, err = separator.New(pairProblem(t), bad)
	require.ErrorIs(t, err, separator.ErrUnknownGenerator)
}

func TestRunDimensionMismatch(t *testing.T) {
	s, err := separator.New(pairProblem(t))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), []float64{0.5})
	require.ErrorIs(t, err, separator.ErrDimensionMismatch)
}

// TestRunDedupe checks that MIR and Strong CG both find x0 + x1 ≤ 1 and
// the pool keeps it once, credited to the first generator.
func TestRunDedupe(t *testing.T) {
	s, err := separator.New(pairProblem(t), separator.WithGenerators(cuts.GenMIR, cuts.GenStrongCG))
	require.NoError(t, err)

	got, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cuts.GenMIR, got[0].Generator)
	assert.InDelta(t, 1, got[0].Cut.RHS, 1e-9)
	assert.InDelta(t, 0.5/math.Sqrt2, got[0].Cut.Efficacy, 1e-9)
}

func TestRunFixedCharge(t *testing.T) {
	p := fixedCharge(t)
	rec := &recorder{}
	s, err := separator.New(p, separator.WithObserver(rec))
	require.NoError(t, err)

	got, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.GreaterOrEqual(t, got[0].Cut.Efficacy, 0.4-1e-9)
	assert.Positive(t, rec.calls)

	sol := p.LPSolution()
	for k, e := range got {
		assert.True(t, separator.KnownGenerator(e.Generator))
		assert.Greater(t, e.Cut.Efficacy, separator.DefaultMinEfficacy)
		assert.Greater(t, e.Cut.Activity(p, sol), e.Cut.RHS, "cut %d is not violated", k)
		if k > 0 {
			assert.GreaterOrEqual(t, got[k-1].Cut.Efficacy, e.Cut.Efficacy)
		}
		for _, x0 := range []float64{0, 1} {
			for _, x1 := range []float64{0, 1} {
				for y0 := 0.0; y0 <= 5*x0; y0 += 0.5 {
					for y1 := 0.0; y1 <= 5*x1 && y0+y1 <= 6; y1 += 0.5 {
						x := []float64{x0, x1, y0, y1}
						require.LessOrEqual(t, e.Cut.Activity(p, x), e.Cut.RHS+1e-6,
							"%s cut violated by %v", e.Generator, x)
					}
				}
			}
		}
	}
}

// TestRunEliminatesContinuous needs a second row to cancel y.
func TestRunEliminatesContinuous(t *testing.T) {
	p := linked(t)

	single, err := separator.New(p, separator.WithMaxAggrs(0))
	require.NoError(t, err)
	got, err := single.Run(context.Background(), nil)
	require.NoError(t, err)
	for _, e := range got {
		assert.NotEqual(t, []int{0}, e.Cut.Inds)
	}

	s, err := separator.New(p)
	require.NoError(t, err)
	got, err = s.Run(context.Background(), nil)
	require.NoError(t, err)

	var xcut *cuts.Cut
	for _, e := range got {
		if len(e.Cut.Inds) == 1 && e.Cut.Inds[0] == 0 {
			xcut = e.Cut
			break
		}
	}
	require.NotNil(t, xcut, "no cut on x among %d cuts", len(got))
	require.Negative(t, xcut.Coefs[0])
	ratio := xcut.RHS / xcut.Coefs[0]
	assert.Greater(t, ratio, 0.6)
	assert.LessOrEqual(t, ratio, 1+1e-9)
}

func TestRunMaxCutsAndSharedPool(t *testing.T) {
	shared := separator.NewPool()
	s, err := separator.New(fixedCharge(t), separator.WithMaxCuts(1), separator.WithPool(shared))
	require.NoError(t, err)

	got, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, shared.Len())
	assert.Same(t, got[0].Cut, shared.Top(1)[0].Cut)

	_, err = s.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, shared.Len())
}

func TestRunNoStartRow(t *testing.T) {
	p := pairProblem(t)
	s, err := separator.New(p)
	require.NoError(t, err)

	got, err := s.Run(context.Background(), []float64{0, 0})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunCanceled(t *testing.T) {
	s, err := separator.New(fixedCharge(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

type recorder struct{ calls int }

func (r *recorder) Observe(string, error, float64) { r.calls++ }

// TestRunMetrics wires a metrics collector as the observer: the pair row
// is the only start row, so each generator is attempted once.
func TestRunMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := separator.New(pairProblem(t), separator.WithObserver(metrics.New(reg)))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), nil)
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, metrics.NameAttempts)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
