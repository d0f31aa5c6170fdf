// SPDX-License-Identifier: MIT

// Package cuts turns an aggregation row into a valid inequality for the
// mixed-integer set it was built from.
//
// Four generators are provided:
//
//   - CalcMIR: complemented mixed-integer rounding of a single scaling.
//   - CutGenerationHeuristicCMIR: searches the scaling factor (delta) and
//     the complementation of integer variables for the most efficacious
//     c-MIR cut.
//   - CalcFlowCover: lifted flow-cover cut over a single-node-flow
//     relaxation of the row.
//   - CalcStrongCG: strong Chvátal-Gomory cut.
//
// All generators share the bound transformation of the row onto
// non-negative variables, the substitution of slack variables of the
// contributing rows and the final cleanup of tiny coefficients.
//
// A generator that cannot produce a cut returns Result.Success == false
// with one of the reason sentinels (ErrFreeVariable, ErrInvalidScale,
// ErrOutOfFractionalityWindow, ErrNoCoverFound, ErrNoScaleFound) in
// Result.Reason. The error return is reserved for invalid input.
//
// Generators are synchronous and never retain their inputs. A row must
// not be mutated while a generator reads it.
package cuts
