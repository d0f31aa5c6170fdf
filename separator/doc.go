// SPDX-License-Identifier: MIT

// Package separator runs the cut generators of package cuts over the rows
// of a MIP relaxation with an aggregation heuristic and collects the
// resulting cuts in an efficacy-ordered pool.
//
// Heuristic, per start row (rows sorted by increasing slack, slack at most
// MaxSlack):
//
//  1. aggregate the start row with weight -1 when its activity lies in the
//     lower half of [lhs, rhs], +1 otherwise;
//  2. run every enabled generator on the aggregation and keep the cuts
//     whose efficacy exceeds MinEfficacy;
//  3. pick the continuous variable of the aggregation farthest from its
//     bounds and eliminate it with the unused row of smallest weighted
//     slack whose factor lies in [MinRowFac, MaxRowFac];
//  4. repeat from 2 until MaxAggrs aggregations were done, no row can
//     eliminate a continuous variable, or the aggregation has more than
//     MaxCont continuous variables.
//
// Run stops starting new aggregations once MaxCuts cuts were found or the
// context is done.
//
// Complexity: each aggregation step costs O(nnz) plus one generator call
// per enabled generator.
//
// Concurrency: a Separator is not safe for concurrent Run calls; a Pool is.
package separator
