// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package trap implements the append-only trapezoid array (component
// C9): an ordered list of trapezoids plus the IsRectilinear/IsRectangular
// monotone flags, grounded on spec 3.4 (the equivalent cairo_traps_t is
// referenced but not included in original_source/, so this is built
// directly from the distilled invariants rather than transliterated C).
package trap

import "github.com/gogpu/geomcore/fixed"

// Array is an append-only trapezoid buffer with monotone shape flags.
type Array struct {
	Traps []fixed.Trapezoid

	// IsRectilinear is true iff every trapezoid added so far has had
	// vertical left and right edges.
	IsRectilinear bool
	// IsRectangular is true iff IsRectilinear and every trapezoid is
	// additionally a true axis-aligned rectangle (left/right edges span
	// exactly [Top, Bottom]).
	IsRectangular bool
}

// New returns an empty array; the flags start true and are cleared the
// first time a trapezoid violates them.
func New() *Array {
	return &Array{IsRectilinear: true, IsRectangular: true}
}

// Append adds t to the array, skipping degenerate (zero-or-negative-
// height) trapezoids, and updates the monotone shape flags.
func (a *Array) Append(t fixed.Trapezoid) {
	if t.IsDegenerate() {
		return
	}
	a.Traps = append(a.Traps, t)

	rectilinear := t.Left.P1.X == t.Left.P2.X && t.Right.P1.X == t.Right.P2.X
	a.IsRectilinear = a.IsRectilinear && rectilinear

	rectangular := rectilinear &&
		t.Left.P1.Y == t.Top && t.Left.P2.Y == t.Bottom &&
		t.Right.P1.Y == t.Top && t.Right.P2.Y == t.Bottom
	a.IsRectangular = a.IsRectangular && rectangular
}

// Len returns the number of trapezoids.
func (a *Array) Len() int { return len(a.Traps) }

// Reset empties the array and resets the monotone flags to true.
func (a *Array) Reset() {
	a.Traps = a.Traps[:0]
	a.IsRectilinear = true
	a.IsRectangular = true
}

// Extents returns the bounding box of every trapezoid in the array.
func (a *Array) Extents() fixed.Box {
	if len(a.Traps) == 0 {
		return fixed.Box{}
	}
	t0 := a.Traps[0]
	box := fixed.Box{
		P1: fixed.Pt(minInt(t0.Left.P1.X, t0.Left.P2.X), t0.Top),
		P2: fixed.Pt(maxInt(t0.Right.P1.X, t0.Right.P2.X), t0.Bottom),
	}
	for _, t := range a.Traps[1:] {
		tb := fixed.Box{
			P1: fixed.Pt(minInt(t.Left.P1.X, t.Left.P2.X), t.Top),
			P2: fixed.Pt(maxInt(t.Right.P1.X, t.Right.P2.X), t.Bottom),
		}
		box = box.Union(tb)
	}
	return box
}

func minInt(a, b fixed.Int) fixed.Int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b fixed.Int) fixed.Int {
	if a > b {
		return a
	}
	return b
}
