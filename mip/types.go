// SPDX-License-Identifier: MIT
// Package: lvcuts/mip
//
// types.go: VarType, Var, VarBound, Row, BasisStatus and Problem.

package mip

import (
	"sync"

	"github.com/katalvlaran/lvcuts/numerics"
)

// VarType classifies a variable. The numeric order is the index order.
type VarType int

const (
	// Binary variables take values in {0,1}.
	Binary VarType = iota
	// Integer variables take integral values.
	Integer
	// ImplInt variables are continuous in the model but integral in every
	// feasible solution.
	ImplInt
	// Continuous variables take real values.
	Continuous
)

// String implements fmt.Stringer.
func (t VarType) String() string {
	switch t {
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	case ImplInt:
		return "implint"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// VarBound is a registered linear bound on a variable in terms of the
// reference variable Var: x ≥ Coef·z + Const (VLB) or x ≤ Coef·z + Const (VUB).
type VarBound struct {
	Var   int
	Coef  float64
	Const float64
}

// Var is a problem variable.
type Var struct {
	// Name is informational only.
	Name string

	// Index is the problem index; it fixes the processing order.
	Index int

	// Type is the variable class.
	Type VarType

	// LB and UB are the global bounds.
	LB, UB float64

	// LocalLB and LocalUB are the bounds valid in the current subtree.
	LocalLB, LocalUB float64

	// LPSol is the value in the current LP solution.
	LPSol float64

	// Active marks variables usable as variable-bound references.
	Active bool

	// VLBs and VUBs are the registered variable bounds.
	VLBs []VarBound
	VUBs []VarBound
}

// IsIntegral reports whether the variable must take integral values.
func (v *Var) IsIntegral() bool { return v.Type != Continuous }

// BasisStatus is the LP basis status of a row's slack.
type BasisStatus int

const (
	// BasisLower means the row is tight at its left-hand side.
	BasisLower BasisStatus = iota
	// BasisBasic means the slack is basic.
	BasisBasic
	// BasisUpper means the row is tight at its right-hand side.
	BasisUpper
	// BasisZero means a free slack at zero.
	BasisZero
)

// Row is a linear row lhs ≤ Σ Vals[k]·x[Cols[k]] + Constant ≤ rhs of the
// LP relaxation.
type Row struct {
	Name string

	// Pos is the row position in the problem.
	Pos int

	Cols []int
	Vals []float64

	LHS, RHS float64
	Constant float64

	// Integral marks rows whose activity is integral in every feasible
	// solution; the slack of such a row may then be treated as integral.
	Integral bool

	// Local marks rows valid only in the current subtree.
	Local bool

	// Modifiable marks rows that may receive new columns later; they are
	// never aggregated.
	Modifiable bool

	// Rank is the Chvátal rank metadata of the row.
	Rank int

	// Basis is the basis status of the row's slack.
	Basis BasisStatus
}

// ProblemOption configures a Problem on creation.
type ProblemOption func(*Problem)

// WithTolerances sets the tolerance oracle used to clamp infinite bounds.
func WithTolerances(t *numerics.Tolerances) ProblemOption {
	if t == nil {
		panic("mip: WithTolerances(nil)")
	}

	return func(p *Problem) { p.tol = t }
}

// Problem holds variables, rows and the LP solution.
type Problem struct {
	mu sync.RWMutex

	tol  *numerics.Tolerances
	vars []*Var
	rows []*Row

	nbin, nint, nimpl, ncont int
}

// NewProblem returns an empty problem.
// Complexity: O(len(opts)).
func NewProblem(opts ...ProblemOption) *Problem {
	p := &Problem{tol: numerics.Default()}
	for _, opt := range opts {
		opt(p)
	}

	return p
}
