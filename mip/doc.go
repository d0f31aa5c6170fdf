// SPDX-License-Identifier: MIT

// Package mip defines the problem model the cut generators read from:
// variables with global and local bounds, a registry of variable lower
// and upper bounds (VLB/VUB), linear rows of the LP relaxation with
// integrality/locality/rank/basis metadata, and the LP solution.
//
// Variable ordering:
//
//	Variables are indexed in the order binaries < integers < implicit
//	integers < continuous. AddVar rejects a variable whose type class is
//	lower than the last one added, so the index alone tells the cut
//	generators whether a variable is binary (idx < NBinVars) or continuous
//	(idx >= FirstContVar).
//
// Variable bounds:
//
//	A VLB x ≥ coef·z + const (VUB x ≤ coef·z + const) may only reference a
//	variable z with a smaller index. The rule is enforced at registration,
//	which rules out cyclic substitution chains.
//
// Infinity:
//
//	Bounds are stored against the finite sentinel of the problem's
//	numerics.Tolerances; ±math.Inf inputs are clamped to it.
//
// Concurrency:
//
//	Mutators take an internal write lock. Read accessors do not lock: cut
//	generation must not run concurrently with mutation of the same Problem.
//
// LP relaxation:
//
//	SolveRelaxation solves min c·x over the rows and global bounds with
//	gonum's simplex and stores the LP values and row basis statuses.
package mip
