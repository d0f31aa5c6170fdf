// SPDX-License-Identifier: MIT

package knapsack

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvcuts/numerics"
)

// SolveApproximatelyLT packs items greedily under the strict capacity
// Σ w < capacity (compared with tol's feasibility tolerance).
//
// Items are arranged by a weighted median selection on profit/weight with
// budget capacity·(1-feastol): every item before the critical position has
// a ratio no smaller than the critical item, and their weights sum to at
// most the budget. The greedy then scans that arrangement and takes each
// item that still fits.
//
// items holds the ids reported in the Solution (nil means 0..n-1).
//
// Complexity: expected O(n).
func SolveApproximatelyLT(weights, profits []float64, capacity float64, items []int, tol *numerics.Tolerances) (Solution, error) {
	n := len(weights)
	if len(profits) != n || (items != nil && len(items) != n) {
		return Solution{}, fmt.Errorf("SolveApproximatelyLT: %d weights, %d profits, %d items: %w",
			n, len(profits), len(items), ErrDimensionMismatch)
	}
	items = ids(items, n)

	ratio := make([]float64, n)
	order := make([]int, n)
	for j := 0; j < n; j++ {
		order[j] = j
		switch {
		case weights[j] > 0:
			ratio[j] = profits[j] / weights[j]
		case profits[j] >= 0:
			ratio[j] = math.MaxFloat64
		default:
			ratio[j] = -math.MaxFloat64
		}
	}

	budget := capacity * (1 - tol.FeasTol())
	weightedSelectDown(ratio, weights, order, budget)

	var sol Solution
	solweight := 0.0
	for _, j := range order {
		if tol.IsFeasLT(solweight+weights[j], capacity) {
			sol.SolItems = append(sol.SolItems, items[j])
			sol.Value += profits[j]
			solweight += weights[j]
		} else {
			sol.NonSolItems = append(sol.NonSolItems, items[j])
		}
	}

	return sol, nil
}

// weightedSelectDown rearranges order so that keys are non-increasing up to
// the critical position, which it returns: the first position whose item
// no longer fits into budget after all items in front of it. It returns
// len(order) when everything fits.
func weightedSelectDown(keys, weights []float64, order []int, budget float64) int {
	lo, hi := 0, len(order)-1
	residual := budget
	for lo <= hi {
		pivot := medianOfThree(keys[order[lo]], keys[order[(lo+hi)/2]], keys[order[hi]])

		// three-way partition: [lo,gt) > pivot, [gt,lt) == pivot, [lt,hi] < pivot
		gt, i, lt := lo, lo, hi+1
		for i < lt {
			k := keys[order[i]]
			switch {
			case k > pivot:
				order[gt], order[i] = order[i], order[gt]
				gt++
				i++
			case k < pivot:
				lt--
				order[lt], order[i] = order[i], order[lt]
			default:
				i++
			}
		}

		left := 0.0
		for _, j := range order[lo:gt] {
			left += weights[j]
		}
		if left > residual {
			hi = gt - 1
			continue
		}
		residual -= left
		for k := gt; k < lt; k++ {
			if weights[order[k]] > residual {
				return k
			}
			residual -= weights[order[k]]
		}
		lo = lt
	}

	return lo
}

func medianOfThree(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}

	return b
}
