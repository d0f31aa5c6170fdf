package knapsack_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvcuts/knapsack"
	"github.com/katalvlaran/lvcuts/numerics"
)

// benchmarkExact runs SolveExactly on n random items with the given capacity.
func benchmarkExact(b *testing.B, n int, capacity int64) {
	rng := rand.New(rand.NewSource(1))
	weights := make([]int64, n)
	profits := make([]float64, n)
	for j := range weights {
		weights[j] = 1 + rng.Int63n(capacity/2+1)
		profits[j] = rng.Float64()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := knapsack.SolveExactly(weights, profits, capacity, nil); err != nil {
			b.Fatalf("SolveExactly failed: %v", err)
		}
	}
}

func BenchmarkSolveExactly_20x100(b *testing.B)   { benchmarkExact(b, 20, 100) }
func BenchmarkSolveExactly_100x1000(b *testing.B) { benchmarkExact(b, 100, 1000) }

func BenchmarkSolveApproximatelyLT_1000(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	n := 1000
	weights := make([]float64, n)
	profits := make([]float64, n)
	for j := range weights {
		weights[j] = 1 + rng.Float64()*10
		profits[j] = rng.Float64()
	}
	tol := numerics.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := knapsack.SolveApproximatelyLT(weights, profits, 2000, nil, tol); err != nil {
			b.Fatalf("SolveApproximatelyLT failed: %v", err)
		}
	}
}
