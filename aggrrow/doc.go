// SPDX-License-Identifier: MIT

// Package aggrrow implements the aggregation row: a sparse weighted sum
// of LP rows Σ wᵢ·rowᵢ ≤ Σ wᵢ·sideᵢ together with the bookkeeping of which
// rows contributed, with which weight and which side (slack sign).
//
// Every cut generator in package cuts starts from an aggregation row.
//
// Representation:
//
//	vals/inds are parallel arrays of length NNZ (unique variable indices,
//	unordered). The contributing rows are kept as three parallel arrays
//	(position, weight, slack sign) in insertion order.
//
// Merging:
//
//	Rows are merged in O(nnz) with a clean scratch.PosIndex mapping a
//	variable index to its position+1 in the row. The index is zero again
//	when AddRow/SumRows return, on every path.
//
// Invariants:
//   - rank and local only grow while rows are added.
//   - after SumRows or RemoveZeros no (near-)zero coefficient is stored.
//
// Concurrency:
//
//	A Row is owned by a single goroutine.
package aggrrow
