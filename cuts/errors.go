// SPDX-License-Identifier: MIT
// Package: lvcuts/cuts

package cuts

import (
	"errors"

	"github.com/katalvlaran/lvcuts/aggrrow"
)

// Reasons reported in Result.Reason when no cut is produced.
var (
	// ErrFreeVariable means a variable of the row has no finite bound on
	// the side required by the transformation.
	ErrFreeVariable = errors.New("cuts: free variable in row")

	// ErrInvalidScale means the rounding would scale the row by more than
	// MaxCMIRScale.
	ErrInvalidScale = errors.New("cuts: scaling too large")

	// ErrOutOfFractionalityWindow means the fractional part of the
	// right-hand side lies outside [MinFrac, MaxFrac].
	ErrOutOfFractionalityWindow = errors.New("cuts: rhs fractionality outside window")

	// ErrNoCoverFound means no flow cover with positive excess exists.
	ErrNoCoverFound = errors.New("cuts: no flow cover found")

	// ErrNoScaleFound means no scaling factor produced a cut better than
	// the requested efficacy.
	ErrNoScaleFound = errors.New("cuts: no scaling factor found")
)

// Hard errors.
var (
	// ErrNilRow indicates a nil aggregation row.
	ErrNilRow = errors.New("cuts: nil aggregation row")

	// ErrDimensionMismatch indicates a solution or bound choice slice whose
	// length differs from the number of problem variables.
	ErrDimensionMismatch = errors.New("cuts: dimension mismatch")

	// ErrInvalidCombination indicates parameters that cannot be used
	// together, such as FixIntegralRHS with IgnoreSol.
	ErrInvalidCombination = errors.New("cuts: invalid parameter combination")

	// ErrBadBoundChoice indicates a forced bound that does not exist, or a
	// variable bound forced on an integral variable.
	ErrBadBoundChoice = errors.New("cuts: invalid forced bound")
)

// ReasonLabel maps a reason to a short label for logs and metrics.
// A nil reason is "success".
func ReasonLabel(reason error) string {
	switch {
	case reason == nil:
		return "success"
	case errors.Is(reason, ErrFreeVariable):
		return "free_variable"
	case errors.Is(reason, ErrInvalidScale):
		return "invalid_scale"
	case errors.Is(reason, ErrOutOfFractionalityWindow):
		return "fractionality"
	case errors.Is(reason, ErrNoCoverFound):
		return "no_cover"
	case errors.Is(reason, ErrNoScaleFound):
		return "no_scale"
	case errors.Is(reason, aggrrow.ErrRowTooLong):
		return "row_too_long"
	case errors.Is(reason, aggrrow.ErrEmpty):
		return "empty"
	default:
		return "other"
	}
}
