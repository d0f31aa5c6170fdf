// SPDX-License-Identifier: MIT
//
// File: methods_vars.go
// Role: Variable creation, local bounds, variable-bound registry and
//       closest variable-bound queries.

package mip

import (
	"fmt"
	"math"
)

// AddVar appends a variable with global bounds [lb, ub].
//
// Behavior highlights:
//   - ±Inf (or anything beyond the sentinel) is clamped to ±Infinity.
//   - Local bounds start equal to the global bounds.
//   - The LP value starts at the finite bound closest to zero.
//
// Errors:
//   - ErrVarOrder if typ is a lower class than the last variable added.
//   - ErrBadBounds if lb > ub, a bound is NaN, or a binary leaves [0,1].
//
// Complexity: O(1) amortised.
func (p *Problem) AddVar(name string, typ VarType, lb, ub float64) (*Var, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if typ < Binary || typ > Continuous {
		return nil, fmt.Errorf("AddVar %q: type %d: %w", name, typ, ErrVarOrder)
	}
	if n := len(p.vars); n > 0 && p.vars[n-1].Type > typ {
		return nil, fmt.Errorf("AddVar %q: %s after %s: %w", name, typ, p.vars[n-1].Type, ErrVarOrder)
	}
	if math.IsNaN(lb) || math.IsNaN(ub) {
		return nil, fmt.Errorf("AddVar %q: %w", name, ErrBadBounds)
	}
	lb, ub = p.clampBound(lb), p.clampBound(ub)
	if lb > ub || p.tol.IsInfinity(lb) || p.tol.IsInfinity(-ub) {
		return nil, fmt.Errorf("AddVar %q: [%g,%g]: %w", name, lb, ub, ErrBadBounds)
	}
	if typ == Binary && (lb < 0 || ub > 1) {
		return nil, fmt.Errorf("AddVar %q: binary bounds [%g,%g]: %w", name, lb, ub, ErrBadBounds)
	}

	v := &Var{
		Name:    name,
		Index:   len(p.vars),
		Type:    typ,
		LB:      lb,
		UB:      ub,
		LocalLB: lb,
		LocalUB: ub,
		Active:  true,
	}
	switch {
	case !p.tol.IsInfinity(-lb) && lb > 0:
		v.LPSol = lb
	case !p.tol.IsInfinity(ub) && ub < 0:
		v.LPSol = ub
	}
	p.vars = append(p.vars, v)
	switch typ {
	case Binary:
		p.nbin++
	case Integer:
		p.nint++
	case ImplInt:
		p.nimpl++
	default:
		p.ncont++
	}

	return v, nil
}

// SetLocalBounds tightens the local bounds of variable i.
// Errors: ErrVarNotFound, ErrBadBounds if the local bounds leave the
// global domain or cross.
func (p *Problem) SetLocalBounds(i int, lb, ub float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.vars) {
		return fmt.Errorf("SetLocalBounds %d: %w", i, ErrVarNotFound)
	}
	v := p.vars[i]
	lb, ub = p.clampBound(lb), p.clampBound(ub)
	if math.IsNaN(lb) || math.IsNaN(ub) || lb > ub || lb < v.LB || ub > v.UB {
		return fmt.Errorf("SetLocalBounds %q: [%g,%g] within [%g,%g]: %w", v.Name, lb, ub, v.LB, v.UB, ErrBadBounds)
	}
	v.LocalLB, v.LocalUB = lb, ub

	return nil
}

// SetActive marks variable i as usable (or not) as a variable-bound
// reference.
func (p *Problem) SetActive(i int, active bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.vars) {
		return fmt.Errorf("SetActive %d: %w", i, ErrVarNotFound)
	}
	p.vars[i].Active = active

	return nil
}

// AddVLB registers x[v] ≥ coef·x[ref] + c. The reference must be an
// integral variable with a smaller index.
func (p *Problem) AddVLB(v, ref int, coef, c float64) error {
	return p.addVarBound("AddVLB", v, ref, coef, c, true)
}

// AddVUB registers x[v] ≤ coef·x[ref] + c.
func (p *Problem) AddVUB(v, ref int, coef, c float64) error {
	return p.addVarBound("AddVUB", v, ref, coef, c, false)
}

func (p *Problem) addVarBound(op string, v, ref int, coef, c float64, lower bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 0 || v >= len(p.vars) || ref < 0 || ref >= len(p.vars) {
		return fmt.Errorf("%s (%d,%d): %w", op, v, ref, ErrVarNotFound)
	}
	if ref >= v {
		return fmt.Errorf("%s (%d,%d): %w", op, v, ref, ErrCyclicVarBound)
	}
	if p.vars[ref].Type == Continuous {
		return fmt.Errorf("%s (%d,%d): %w", op, v, ref, ErrContinuousRef)
	}
	if coef == 0 || math.IsNaN(coef) || math.IsInf(coef, 0) || math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("%s (%d,%d): coef=%g const=%g: %w", op, v, ref, coef, c, ErrBadCoefficient)
	}
	vb := VarBound{Var: ref, Coef: coef, Const: c}
	if lower {
		p.vars[v].VLBs = append(p.vars[v].VLBs, vb)
	} else {
		p.vars[v].VUBs = append(p.vars[v].VUBs, vb)
	}

	return nil
}

// ClosestVLB returns the largest value coef·sol(z)+const over the VLBs of
// variable i together with its position in VLBs, or (-Infinity, -1) if
// none applies. VLBs whose value is unbounded below for some feasible z
// (coef > 0 with infinite ub(z), coef < 0 with infinite lb(z)) are skipped.
func (p *Problem) ClosestVLB(i int, sol []float64) (float64, int) {
	best, bestidx := -p.tol.Infinity(), -1
	for k, vb := range p.vars[i].VLBs {
		ref := p.vars[vb.Var]
		if (vb.Coef > 0 && p.tol.IsInfinity(ref.UB)) || (vb.Coef < 0 && p.tol.IsInfinity(-ref.LB)) {
			continue
		}
		val := vb.Coef*p.SolVal(sol, vb.Var) + vb.Const
		if val > best {
			best, bestidx = val, k
		}
	}

	return best, bestidx
}

// ClosestVUB returns the smallest value coef·sol(z)+const over the VUBs of
// variable i together with its position in VUBs, or (+Infinity, -1).
func (p *Problem) ClosestVUB(i int, sol []float64) (float64, int) {
	best, bestidx := p.tol.Infinity(), -1
	for k, vb := range p.vars[i].VUBs {
		ref := p.vars[vb.Var]
		if (vb.Coef > 0 && p.tol.IsInfinity(-ref.LB)) || (vb.Coef < 0 && p.tol.IsInfinity(ref.UB)) {
			continue
		}
		val := vb.Coef*p.SolVal(sol, vb.Var) + vb.Const
		if val < best {
			best, bestidx = val, k
		}
	}

	return best, bestidx
}

// SetLPSolution stores x as the LP solution.
// Errors: ErrDimensionMismatch if len(x) != NVars.
func (p *Problem) SetLPSolution(x []float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(x) != len(p.vars) {
		return fmt.Errorf("SetLPSolution: %d values for %d vars: %w", len(x), len(p.vars), ErrDimensionMismatch)
	}
	for i, v := range p.vars {
		v.LPSol = x[i]
	}

	return nil
}

// LPSolution returns a copy of the LP values.
func (p *Problem) LPSolution() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	x := make([]float64, len(p.vars))
	for i, v := range p.vars {
		x[i] = v.LPSol
	}

	return x
}

// SolVal returns sol[i], or the LP value of variable i when sol is nil.
func (p *Problem) SolVal(sol []float64, i int) float64 {
	if sol == nil {
		return p.vars[i].LPSol
	}

	return sol[i]
}

func (p *Problem) clampBound(x float64) float64 {
	inf := p.tol.Infinity()
	switch {
	case x >= inf:
		return inf
	case x <= -inf:
		return -inf
	default:
		return x
	}
}
