// SPDX-License-Identifier: MIT
// Package: lvcuts/scratch

package scratch

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDirty is returned by Release when a slot was left non-zero.
	ErrDirty = errors.New("scratch: buffer released while not clean")

	// ErrReleased is returned when a released index is released again.
	ErrReleased = errors.New("scratch: buffer already released")
)

var pool = sync.Pool{New: func() any { return new([]int) }}

// PosIndex is a zero-initialised map from dense keys [0, n) to ints.
// A PosIndex is owned by one goroutine between Acquire and Release.
type PosIndex struct {
	buf      *[]int
	slots    []int
	released bool
}

// Acquire checks out a clean index of size n.
func Acquire(n int) *PosIndex {
	bp := pool.Get().(*[]int)
	if cap(*bp) < n {
		*bp = make([]int, n)
	}
	slots := (*bp)[:n]

	return &PosIndex{buf: bp, slots: slots}
}

// Len returns the number of slots.
func (p *PosIndex) Len() int { return len(p.slots) }

// Get returns the value stored for key k.
func (p *PosIndex) Get(k int) int { return p.slots[k] }

// Set stores v for key k.
func (p *PosIndex) Set(k, v int) { p.slots[k] = v }

// Clear resets key k to zero.
func (p *PosIndex) Clear(k int) { p.slots[k] = 0 }

// Release verifies that every slot is zero and returns the buffer.
func (p *PosIndex) Release() error {
	if p.released {
		return ErrReleased
	}
	p.released = true

	dirty := -1
	for i, v := range p.slots {
		if v != 0 {
			if dirty < 0 {
				dirty = i
			}
			p.slots[i] = 0
		}
	}
	pool.Put(p.buf)
	p.buf, p.slots = nil, nil
	if dirty >= 0 {
		return fmt.Errorf("Release: slot %d: %w", dirty, ErrDirty)
	}

	return nil
}
