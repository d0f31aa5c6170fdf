package cuts_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/lvcuts/aggrrow"
	"github.com/katalvlaran/lvcuts/cuts"
	"github.com/katalvlaran/lvcuts/mip"
)

const tolDelta = 1e-9

// aggregate returns the aggregation w[k]·row(pos[k]) using the rhs of
// every row.
func aggregate(t *testing.T, p *mip.Problem, pos []int, w []float64) *aggrrow.Row {
	t.Helper()
	r := aggrrow.New(p)
	for k, i := range pos {
		require.NoError(t, r.AddRow(p.Row(i), w[k], aggrrow.SideRHS))
	}
	return r
}

// coefs returns the cut as a variable → coefficient map.
func coefs(c *cuts.Cut) map[int]float64 {
	m := make(map[int]float64, c.NNZ())
	for k, i := range c.Inds {
		m[i] = c.Coefs[k]
	}
	return m
}

func requireCut(t *testing.T, want map[int]float64, rhs float64, got *cuts.Cut) {
	t.Helper()
	require.NotNil(t, got)
	have := coefs(got)
	require.Len(t, have, len(want), "cut %v", have)
	for i, c := range want {
		require.InDelta(t, c, have[i], tolDelta, "coefficient of x%d", i)
	}
	require.InDelta(t, rhs, got.RHS, tolDelta)
}

// requireValid enumerates the grid points of every variable (grids[j]
// lists the values of x_j), keeps those accepted by feasible and checks
// that none of them violates the cut.
func requireValid(t *testing.T, p *mip.Problem, grids [][]float64, feasible func(x []float64) bool, cut *cuts.Cut) {
	t.Helper()
	lens := make([]int, len(grids))
	for j, g := range grids {
		lens[j] = len(g)
	}
	x := make([]float64, len(grids))
	checked := 0
	for _, idx := range combin.Cartesian(lens) {
		for j, k := range idx {
			x[j] = grids[j][k]
		}
		if !feasible(x) {
			continue
		}
		checked++
		require.LessOrEqual(t, cut.Activity(p, x), cut.RHS+1e-6, "point %v violates the cut", x)
	}
	require.Positive(t, checked)
}

// steps returns lo, lo+h, ..., hi.
func steps(lo, hi, h float64) []float64 {
	var out []float64
	for v := lo; v <= hi+1e-12; v += h {
		out = append(out, math.Round(v/h)*h)
	}
	return out
}

type observation struct {
	generator string
	reason    error
	efficacy  float64
}

type recorder struct{ calls []observation }

func (r *recorder) Observe(generator string, reason error, efficacy float64) {
	r.calls = append(r.calls, observation{generator, reason, efficacy})
}
