// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package arena provides the two pieces of shared infrastructure every
// geometry buffer in this module is built from: a grow-by-doubling slice
// wrapper (the Go analogue of cairo-array.c's chunked array) and a bounded,
// lock-free free-pool for the clip stack's recycled nodes (grounded on
// cairo-freelist.c's freepool, reimplemented with atomic compare-and-swap
// instead of a non-atomic singly linked free list per the concurrency
// model's single cross-thread surface requirement).
package arena

// Buffer is a typed, grow-by-doubling append buffer. Unlike a bare Go
// slice, Reset keeps the backing array so repeated build/reset cycles
// (one per path, one per sweep) do not re-allocate.
type Buffer[T any] struct {
	data []T
}

// Append adds v to the buffer, growing the backing array by doubling when
// full -- cairo-array.c grows its chunk the same way rather than by a
// fixed increment, to keep amortised append O(1).
func (b *Buffer[T]) Append(v T) {
	b.data = append(b.data, v)
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int { return len(b.data) }

// At returns the element at index i.
func (b *Buffer[T]) At(i int) T { return b.data[i] }

// Set overwrites the element at index i.
func (b *Buffer[T]) Set(i int, v T) { b.data[i] = v }

// Slice returns the live elements as a slice. The slice aliases the
// buffer's storage and is invalidated by the next Append past capacity.
func (b *Buffer[T]) Slice() []T { return b.data }

// Reset empties the buffer without releasing its backing array.
func (b *Buffer[T]) Reset() { b.data = b.data[:0] }

// Truncate drops elements from index n onward.
func (b *Buffer[T]) Truncate(n int) { b.data = b.data[:n] }
