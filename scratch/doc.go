// SPDX-License-Identifier: MIT

// Package scratch provides "clean" scratch buffers: integer arrays that
// are zero when checked out and must be zero again when checked in.
//
// The cut generators use them as O(1) variable → position maps. Every
// writer clears the slots it set before returning, including early-exit
// paths; Release verifies that and reports ErrDirty otherwise (zeroing the
// buffer anyway so the next user starts clean).
package scratch
