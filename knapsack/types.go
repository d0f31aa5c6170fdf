// SPDX-License-Identifier: MIT

package knapsack

// MaxTableCells bounds (n+1)·(c+1) for SolveExactly.
const MaxTableCells = 1 << 28

// Solution is the outcome of a knapsack solve.
//
// SolItems and NonSolItems partition the input ids; both keep the order in
// which the solver decided on them.
type Solution struct {
	SolItems    []int
	NonSolItems []int
	Value       float64
}

// ids returns items, or 0..n-1 when items is nil.
func ids(items []int, n int) []int {
	if items != nil {
		return items
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
