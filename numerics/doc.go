// SPDX-License-Identifier: MIT

// Package numerics provides the floating-point tolerance oracle and the
// double-double value type used by the cut generators.
//
// Description:
//
//	Cut derivation compares reals against three thresholds:
//	  - Epsilon    : generic zero/equality tolerance (absolute).
//	  - SumEpsilon : tolerance for values that are sums of many terms.
//	  - FeasTol    : feasibility tolerance (relative above magnitude 1).
//	Infinity is a finite sentinel (1e20 by default). Bounds at or beyond
//	it are treated as absent; keeping it finite avoids NaN from 0·∞ when a
//	bound is multiplied by a vanishing coefficient.
//
// Tolerances is a plain value threaded explicitly through every call;
// there is no package-level state.
//
// DD is a compensated two-float ("double-double") value with roughly
// 106 bits of mantissa. It is used where many small corrections are
// accumulated into a right-hand side (flow-cover relaxation, lifting).
//
// Complexity:
//   - Every comparison and DD operation is O(1).
package numerics
