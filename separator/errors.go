// SPDX-License-Identifier: MIT
// Package: lvcuts/separator

package separator

import "errors"

var (
	// ErrNilProblem indicates a nil *mip.Problem passed to New.
	ErrNilProblem = errors.New("separator: problem is nil")

	// ErrUnknownGenerator indicates a generator name other than
	// cuts.GenMIR, cuts.GenCMIR, cuts.GenFlowCover and cuts.GenStrongCG.
	ErrUnknownGenerator = errors.New("separator: unknown generator")

	// ErrDimensionMismatch indicates a solution whose length differs from
	// the number of problem variables.
	ErrDimensionMismatch = errors.New("separator: dimension mismatch")
)
