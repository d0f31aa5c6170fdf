// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only getters. None of them lock; see doc.go.

package mip

import "github.com/katalvlaran/lvcuts/numerics"

// Tolerances returns the tolerance oracle of the problem.
func (p *Problem) Tolerances() *numerics.Tolerances { return p.tol }

// NVars returns the number of variables.
func (p *Problem) NVars() int { return len(p.vars) }

// NBinVars returns the number of binary variables.
func (p *Problem) NBinVars() int { return p.nbin }

// NIntVars returns the number of general integer variables.
func (p *Problem) NIntVars() int { return p.nint }

// NImplVars returns the number of implicit integer variables.
func (p *Problem) NImplVars() int { return p.nimpl }

// NContVars returns the number of continuous variables.
func (p *Problem) NContVars() int { return p.ncont }

// FirstContVar returns the index of the first continuous variable.
func (p *Problem) FirstContVar() int { return len(p.vars) - p.ncont }

// IsBinary reports whether index i is a binary variable.
func (p *Problem) IsBinary(i int) bool { return i < p.nbin }

// IsContinuous reports whether index i is a continuous variable.
func (p *Problem) IsContinuous(i int) bool { return i >= len(p.vars)-p.ncont }

// Var returns variable i. The pointer is shared; treat it as read-only.
func (p *Problem) Var(i int) *Var { return p.vars[i] }

// NRows returns the number of rows.
func (p *Problem) NRows() int { return len(p.rows) }

// Row returns the row at position pos. The pointer is shared; treat it as read-only.
func (p *Problem) Row(pos int) *Row { return p.rows[pos] }
