// SPDX-License-Identifier: MIT
// Package: lvcuts/separator

package separator

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/lvcuts/cuts"
)

// Entry is a pooled cut and the generator that produced it.
type Entry struct {
	Generator string
	Cut       *cuts.Cut

	seq uint64
}

// byEfficacy orders by decreasing efficacy, then by insertion.
func byEfficacy(a, b Entry) bool {
	if a.Cut.Efficacy != b.Cut.Efficacy {
		return a.Cut.Efficacy > b.Cut.Efficacy
	}

	return a.seq < b.seq
}

// Pool keeps distinct cuts ordered by efficacy. It is safe for concurrent
// use.
type Pool struct {
	mu   sync.Mutex
	tree *btree.BTreeG[Entry]
	seen map[string]struct{}
	seq  uint64
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{
		tree: btree.NewBTreeG[Entry](byEfficacy),
		seen: make(map[string]struct{}),
	}
}

// Add inserts cut unless it is nil or an identical cut is pooled already.
// It reports whether the cut was inserted.
func (p *Pool) Add(generator string, cut *cuts.Cut) bool {
	if cut == nil {
		return false
	}
	key := cutKey(cut)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, dup := p.seen[key]; dup {
		return false
	}
	p.seen[key] = struct{}{}
	p.seq++
	p.tree.Set(Entry{Generator: generator, Cut: cut, seq: p.seq})

	return true
}

// Len returns the number of pooled cuts.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.tree.Len()
}

// Top returns up to n cuts by decreasing efficacy; n ≤ 0 returns all.
func (p *Pool) Top(n int) []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n <= 0 || n > p.tree.Len() {
		n = p.tree.Len()
	}
	out := make([]Entry, 0, n)
	p.tree.Scan(func(e Entry) bool {
		out = append(out, e)
		return len(out) < n
	})

	return out
}

// Clear empties the pool.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tree = btree.NewBTreeG[Entry](byEfficacy)
	p.seen = make(map[string]struct{})
}

// cutKey is a canonical text form of the cut: entries sorted by index.
func cutKey(c *cuts.Cut) string {
	order := make([]int, len(c.Inds))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool { return c.Inds[order[a]] < c.Inds[order[b]] })

	var sb strings.Builder
	for _, k := range order {
		sb.WriteString(strconv.Itoa(c.Inds[k]))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(c.Coefs[k], 'g', 12, 64))
		sb.WriteByte(' ')
	}
	sb.WriteString("<= ")
	sb.WriteString(strconv.FormatFloat(c.RHS, 'g', 12, 64))
	if c.Local {
		sb.WriteString(" local")
	}

	return sb.String()
}
