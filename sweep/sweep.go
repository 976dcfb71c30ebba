// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sweep implements the two tessellation engines that turn a
// polygon's directed edges into non-overlapping trapezoids: the
// rectangular (axis-aligned) fast path (component C10) and the general
// polygon sweep (component C11).
//
// C10 is grounded on original_source/src/cairo-bentley-ottmann-
// rectangular.c: a priority queue of rectangle-bottom "stop" events
// ordered by a binary min-heap, and an active-edge list that (because
// every edge is vertical) never needs mid-sweep intersection tests --
// only insertion at Top and removal at Bottom. C11 generalises the same
// active-list-plus-event-queue shape to edges of arbitrary slope, adding
// the exact-cross-product intersection test spec 4.7 requires so that
// slope comparisons never drift under repeated subdivision.
package sweep

// FillRule selects how winding is interpreted when opening/closing
// trapezoids.
type FillRule int

const (
	NonZero FillRule = iota
	EvenOdd
)

func insideAfter(rule FillRule, winding int) bool {
	if rule == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}
