// SPDX-License-Identifier: MIT

package knapsack

import "fmt"

// SolveExactly solves the 0/1 knapsack with integral weights to optimality.
//
// Steps:
//  1. Items heavier than capacity are fixed out, zero-weight items with
//     non-negative profit are fixed in.
//  2. If the remaining items fit together, all of them are taken.
//  3. Otherwise fill dp[i][c] = best profit using the first i items within
//     capacity c, row by row:
//     dp[i][c] = max(dp[i-1][c], dp[i-1][c-wᵢ] + pᵢ).
//  4. Backtrack from (n, capacity): item i is in iff dp[i][c] != dp[i-1][c].
//
// items holds the ids reported in the Solution (nil means 0..n-1).
//
// Errors: ErrDimensionMismatch, ErrNegativeWeight, ErrTableTooLarge.
//
// Complexity: O(n·capacity) time and memory.
func SolveExactly(weights []int64, profits []float64, capacity int64, items []int) (Solution, error) {
	n := len(weights)
	if len(profits) != n || (items != nil && len(items) != n) {
		return Solution{}, fmt.Errorf("SolveExactly: %d weights, %d profits, %d items: %w",
			n, len(profits), len(items), ErrDimensionMismatch)
	}
	if capacity < 0 {
		return Solution{}, fmt.Errorf("SolveExactly: capacity %d: %w", capacity, ErrNegativeWeight)
	}
	items = ids(items, n)

	var sol Solution
	// 1) trivial decisions
	var rest []int
	var restweight int64
	for j := 0; j < n; j++ {
		w := weights[j]
		switch {
		case w < 0:
			return Solution{}, fmt.Errorf("SolveExactly: weight %d of item %d: %w", w, items[j], ErrNegativeWeight)
		case w > capacity || profits[j] < 0:
			sol.NonSolItems = append(sol.NonSolItems, items[j])
		case w == 0:
			sol.SolItems = append(sol.SolItems, items[j])
			sol.Value += profits[j]
		default:
			rest = append(rest, j)
			restweight += w
		}
	}

	// 2) everything fits
	if restweight <= capacity {
		for _, j := range rest {
			sol.SolItems = append(sol.SolItems, items[j])
			sol.Value += profits[j]
		}

		return sol, nil
	}

	// 3) full table
	m := len(rest)
	width := capacity + 1
	if float64(m+1)*float64(width) > MaxTableCells {
		return Solution{}, fmt.Errorf("SolveExactly: %d items, capacity %d: %w", m, capacity, ErrTableTooLarge)
	}
	dp := make([]float64, (m+1)*int(width))
	for i := 1; i <= m; i++ {
		j := rest[i-1]
		w, p := weights[j], profits[j]
		prev := dp[(i-1)*int(width) : i*int(width)]
		curr := dp[i*int(width) : (i+1)*int(width)]
		for c := int64(0); c < width; c++ {
			best := prev[c]
			if c >= w {
				if take := prev[c-w] + p; take > best {
					best = take
				}
			}
			curr[c] = best
		}
	}

	// 4) backtrack
	taken := make([]bool, m)
	c := capacity
	for i := m; i > 0; i-- {
		if dp[i*int(width)+int(c)] != dp[(i-1)*int(width)+int(c)] {
			taken[i-1] = true
			c -= weights[rest[i-1]]
		}
	}
	for i, j := range rest {
		if taken[i] {
			sol.SolItems = append(sol.SolItems, items[j])
			sol.Value += profits[j]
		} else {
			sol.NonSolItems = append(sol.NonSolItems, items[j])
		}
	}

	return sol, nil
}
