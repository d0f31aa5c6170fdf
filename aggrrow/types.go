// SPDX-License-Identifier: MIT
// Package: lvcuts/aggrrow

package aggrrow

import (
	"math"

	"github.com/katalvlaran/lvcuts/mip"
)

// SideType selects which side of a row is used when adding it.
type SideType int

const (
	// SideLHS uses the left-hand side (slack sign -1).
	SideLHS SideType = -1
	// SideAuto uses the lhs if the rhs is infinite or the scale is negative
	// and the lhs is finite, the rhs otherwise.
	SideAuto SideType = 0
	// SideRHS uses the right-hand side (slack sign +1).
	SideRHS SideType = 1
)

// NegSlack controls whether rows entering with a negative slack
// coefficient may be aggregated by SumRows.
type NegSlack int

const (
	// NegSlackNone never allows negative slacks.
	NegSlackNone NegSlack = iota
	// NegSlackIntegral allows them only for integral rows.
	NegSlackIntegral
	// NegSlackAll always allows them.
	NegSlackAll
)

// SumParams configures SumRows.
type SumParams struct {
	// MaxWeightRange bounds max|w|/min|w| over the aggregated rows.
	MaxWeightRange float64

	// MinAllowedWeight skips rows with |w| below it.
	MinAllowedWeight float64

	// SideTypeBasis chooses the side of ranged rows from the basis status.
	SideTypeBasis bool

	// AllowLocal admits rows that are valid only locally.
	AllowLocal bool

	// NegSlack is the negative-slack policy.
	NegSlack NegSlack

	// MaxAggrLen is the maximal number of non-zeros of the result.
	MaxAggrLen int
}

// DefaultSumParams returns permissive defaults.
func DefaultSumParams() SumParams {
	return SumParams{
		MaxWeightRange:   1e4,
		MinAllowedWeight: 1e-4,
		SideTypeBasis:    false,
		AllowLocal:       true,
		NegSlack:         NegSlackAll,
		MaxAggrLen:       math.MaxInt,
	}
}

// Row is an aggregation row over the variables of a problem.
type Row struct {
	prob *mip.Problem

	vals []float64
	inds []int
	rhs  float64

	rank  int
	local bool

	rowsinds   []int
	slacksign  []int
	rowweights []float64
}

// New returns an empty aggregation row over p.
func New(p *mip.Problem) *Row {
	return &Row{prob: p}
}
