// SPDX-License-Identifier: MIT

package knapsack

import "errors"

var (
	// ErrDimensionMismatch indicates weights, profits and items of different lengths.
	ErrDimensionMismatch = errors.New("knapsack: dimension mismatch")

	// ErrNegativeWeight indicates a negative item weight or capacity.
	ErrNegativeWeight = errors.New("knapsack: negative weight or capacity")

	// ErrTableTooLarge indicates the dynamic program would exceed MaxTableCells.
	ErrTableTooLarge = errors.New("knapsack: dynamic programming table too large")
)
