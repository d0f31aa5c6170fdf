// SPDX-License-Identifier: MIT

// Package knapsack provides the 0/1 knapsack solvers and the rational
// scaling helpers used by lifted flow cover separation.
//
//	max Σ pⱼ·xⱼ  s.t.  Σ wⱼ·xⱼ ≤ c,  x ∈ {0,1}ⁿ
//
// Solvers:
//
//   - SolveExactly          dynamic program over integral weights with a
//     full (n+1)×(c+1) table and backtracking. Memory: O(n·c).
//   - SolveApproximatelyLT  greedy by profit/weight ratio after a weighted
//     median selection; the capacity is strict (Σ w < c under the
//     feasibility tolerance).
//
// Scaling:
//
//   - IsIntegralScalar / IntegralVal test and round s·v.
//   - CalcIntegralScalar searches a multiplier that makes a whole vector
//     integral (power-of-two and small-prime multiples first, continued
//     fractions second).
//
// Both solvers return item ids, never positions, so callers can pass their
// own numbering through the items slice. Inputs are never modified.
package knapsack
