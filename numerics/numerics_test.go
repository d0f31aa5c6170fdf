package numerics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvcuts/numerics"
)

// TestDefaults verifies the default thresholds.
func TestDefaults(t *testing.T) {
	tol := numerics.Default()
	assert.Equal(t, numerics.DefaultEpsilon, tol.Epsilon())
	assert.Equal(t, numerics.DefaultSumEpsilon, tol.SumEpsilon())
	assert.Equal(t, numerics.DefaultFeasTol, tol.FeasTol())
	assert.Equal(t, numerics.DefaultInfinity, tol.Infinity())
	assert.True(t, tol.IsInfinity(1e20))
	assert.True(t, tol.IsInfinity(-(-1e21)))
	assert.False(t, tol.IsInfinity(-1e20))
}

// TestOptionsPanic ensures invalid option values fail fast.
func TestOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { numerics.WithEpsilon(-1) })
	assert.Panics(t, func() { numerics.WithSumEpsilon(math.NaN()) })
	assert.Panics(t, func() { numerics.WithFeasTol(math.Inf(1)) })
	assert.Panics(t, func() { numerics.WithInfinity(math.Inf(1)) })
	assert.Panics(t, func() { numerics.WithInfinity(0.5) })

	tol := numerics.New(numerics.WithEpsilon(1e-6), numerics.WithInfinity(1e30))
	assert.Equal(t, 1e-6, tol.Epsilon())
	assert.Equal(t, 1e30, tol.Infinity())
}

// TestComparisons checks the absolute and relative comparison families.
func TestComparisons(t *testing.T) {
	tol := numerics.Default()

	assert.True(t, tol.IsZero(1e-10))
	assert.False(t, tol.IsZero(1e-8))
	assert.True(t, tol.IsSumZero(1e-7))
	assert.True(t, tol.IsEQ(1.0, 1.0+1e-10))
	assert.True(t, tol.IsLT(1.0, 1.0+1e-8))
	assert.False(t, tol.IsLT(1.0, 1.0+1e-10))
	assert.True(t, tol.IsLE(1.0+1e-10, 1.0))
	assert.True(t, tol.IsGT(2, 1))
	assert.True(t, tol.IsGE(1.0-1e-10, 1.0))
	assert.True(t, tol.IsSumLE(0.5+1e-7, 0.5))

	// Relative comparisons scale with magnitude above 1.
	assert.True(t, tol.IsFeasEQ(1e6, 1e6+0.5))
	assert.False(t, tol.IsFeasEQ(1.0, 1.0+1e-5))
	assert.True(t, tol.IsFeasLE(1e6+0.5, 1e6))
	assert.True(t, tol.IsFeasLT(1.0, 1.1))
	assert.True(t, tol.IsFeasGT(1.1, 1.0))
	assert.True(t, tol.IsFeasGE(1.0-1e-7, 1.0))
	assert.InDelta(t, 0.5, numerics.RelDiff(2, 1), 1e-15)
	assert.InDelta(t, 0.5, numerics.RelDiff(0.5, 0), 1e-15)
}

// TestRounding covers floor/ceil/frac with slack.
func TestRounding(t *testing.T) {
	tol := numerics.Default()

	assert.Equal(t, 3.0, tol.FeasFloor(2.9999999))
	assert.Equal(t, 2.0, tol.FeasFloor(2.99))
	assert.Equal(t, 2.0, tol.FeasCeil(2.0000001))
	assert.Equal(t, 1.0, tol.Floor(1.5))
	assert.Equal(t, 2.0, tol.Ceil(1.5))
	assert.InDelta(t, 0.5, tol.Frac(1.5), 1e-15)
	assert.InDelta(t, 0.25, tol.Frac(-1.75), 1e-15)
	assert.True(t, tol.IsFeasIntegral(3.0000001))
	assert.True(t, tol.IsFeasIntegral(2.9999999))
	assert.False(t, tol.IsFeasIntegral(2.5))
	assert.True(t, tol.IsIntegral(-4))
	assert.False(t, tol.IsIntegral(4.000001))

	assert.Equal(t, 1.0, numerics.EpsFloor(1.999, 1e-6))
	assert.Equal(t, 2.0, numerics.EpsFloor(1.999, 1e-2))
	assert.InDelta(t, -0.001, numerics.EpsFrac(1.999, 1e-2), 1e-12)
}

// TestDDAccumulation shows that DD keeps the small terms a float64 sum drops.
func TestDDAccumulation(t *testing.T) {
	sum := numerics.DDFrom(1e16)
	plain := 1e16
	for i := 0; i < 1000; i++ {
		sum = sum.AddFloat(1.0)
		plain += 1.0
	}
	sum = sum.SubFloat(1e16)
	plain -= 1e16

	require.Equal(t, 1000.0, sum.Float())
	assert.NotEqual(t, 1000.0, plain, "plain float64 loses the unit increments")
}

// TestDDArithmetic checks the basic operations against exact expectations.
func TestDDArithmetic(t *testing.T) {
	a := numerics.DDFrom(0.1)
	b := numerics.DDFrom(0.2)

	assert.InDelta(t, 0.30000000000000004, a.Add(b).Float(), 1e-17)
	assert.InDelta(t, -0.1, a.Sub(b).Float(), 1e-17)
	assert.InDelta(t, 0.02, a.Mul(b).Float(), 1e-17)
	assert.InDelta(t, 0.3, a.MulFloat(3).Float(), 1e-16)
	assert.Equal(t, -0.1, a.Neg().Float())

	// (1+2^-30)·(1-2^-30) = 1 - 2^-60 rounds to 1; the error term keeps it.
	p := numerics.ProdDD(1+math.Ldexp(1, -30), 1-math.Ldexp(1, -30))
	assert.Equal(t, 1.0, p.Hi)
	assert.Equal(t, -math.Ldexp(1, -60), p.Lo)
}
