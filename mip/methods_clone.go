// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Deep copies.

package mip

// Clone returns a deep copy of the problem: variables, variable bounds,
// rows and LP values. The tolerance oracle is shared.
// Complexity: O(V + nnz).
func (p *Problem) Clone() *Problem {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clone := &Problem{
		tol:   p.tol,
		vars:  make([]*Var, len(p.vars)),
		rows:  make([]*Row, len(p.rows)),
		nbin:  p.nbin,
		nint:  p.nint,
		nimpl: p.nimpl,
		ncont: p.ncont,
	}
	for i, v := range p.vars {
		nv := *v
		nv.VLBs = append([]VarBound(nil), v.VLBs...)
		nv.VUBs = append([]VarBound(nil), v.VUBs...)
		clone.vars[i] = &nv
	}
	for i, r := range p.rows {
		nr := *r
		nr.Cols = append([]int(nil), r.Cols...)
		nr.Vals = append([]float64(nil), r.Vals...)
		clone.rows[i] = &nr
	}

	return clone
}
