// SPDX-License-Identifier: MIT
// Package: lvcuts/mip

package mip

import "errors"

// Sentinel errors for problem construction.
var (
	// ErrVarOrder indicates a variable added out of type order.
	ErrVarOrder = errors.New("mip: variable type out of order (binary < integer < implicit < continuous)")

	// ErrBadBounds indicates lb > ub, NaN bounds or binary bounds outside [0,1].
	ErrBadBounds = errors.New("mip: invalid bounds")

	// ErrVarNotFound indicates an index outside [0, NVars).
	ErrVarNotFound = errors.New("mip: variable not found")

	// ErrRowNotFound indicates a row position outside [0, NRows).
	ErrRowNotFound = errors.New("mip: row not found")

	// ErrCyclicVarBound indicates a variable bound whose reference variable
	// does not have a smaller index than the bounded variable.
	ErrCyclicVarBound = errors.New("mip: variable bound must reference a smaller index")

	// ErrContinuousRef indicates a variable bound referencing a continuous
	// variable.
	ErrContinuousRef = errors.New("mip: variable bound must reference an integral variable")

	// ErrBadCoefficient indicates a zero, NaN or infinite coefficient.
	ErrBadCoefficient = errors.New("mip: invalid coefficient")

	// ErrDimensionMismatch indicates slices of different lengths.
	ErrDimensionMismatch = errors.New("mip: dimension mismatch")

	// ErrDuplicateColumn indicates a row listing a variable twice.
	ErrDuplicateColumn = errors.New("mip: duplicate column in row")

	// ErrBadSides indicates lhs > rhs, both sides infinite or NaN sides.
	ErrBadSides = errors.New("mip: invalid row sides")

	// ErrInfeasible indicates an infeasible LP relaxation.
	ErrInfeasible = errors.New("mip: LP relaxation infeasible")

	// ErrUnbounded indicates an unbounded LP relaxation.
	ErrUnbounded = errors.New("mip: LP relaxation unbounded")
)
