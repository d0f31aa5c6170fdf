// SPDX-License-Identifier: MIT
// Package: lvcuts/aggrrow

package aggrrow

import "errors"

var (
	// ErrNilRow indicates a nil *mip.Row argument.
	ErrNilRow = errors.New("aggrrow: nil row")

	// ErrBadScale indicates a NaN or infinite scale.
	ErrBadScale = errors.New("aggrrow: invalid scale")

	// ErrBadWeights indicates a weight vector shorter than the row count.
	ErrBadWeights = errors.New("aggrrow: weights do not cover the rows")

	// ErrRowTooLong is the reason SumRows reports valid=false when the
	// aggregation exceeds MaxAggrLen non-zeros.
	ErrRowTooLong = errors.New("aggrrow: aggregation exceeds maximal length")

	// ErrEmpty is the reason SumRows reports valid=false when nothing was
	// aggregated.
	ErrEmpty = errors.New("aggrrow: empty aggregation")
)
