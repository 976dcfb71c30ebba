// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package region implements an integer rectangle set (component C12):
// union, intersect, subtract, contains-point, and contains-rect over a
// canonical list of disjoint axis-aligned rectangles.
//
// original_source/src/cairo-region.c defers the actual set algebra to
// pixman's region implementation (the classic X11 scanline/banding
// algorithm) and is itself a thin wrapper, so there is no transliteratable
// banding algorithm in the retrieved source; this package implements the
// same boolean-combination semantics directly via coordinate-compression
// over a shared grid, which is simple to keep exactly correct and is
// adequate at the rectangle counts a clip stack produces.
package region

import (
	"sort"

	"github.com/gogpu/geomcore/fixed"
)

// Region is a set of disjoint, non-adjacent-mergeable integer rectangles.
type Region struct {
	rects []fixed.IntRect
}

// Empty returns the empty region.
func Empty() *Region { return &Region{} }

// FromRect returns a region containing exactly one rectangle (or none, if
// r is empty).
func FromRect(r fixed.IntRect) *Region {
	if r.IsEmpty() {
		return Empty()
	}
	return &Region{rects: []fixed.IntRect{r}}
}

// FromRects returns the union of the given rectangles as a region.
func FromRects(rs []fixed.IntRect) *Region {
	out := Empty()
	for _, r := range rs {
		out = out.Union(FromRect(r))
	}
	return out
}

// Rects returns the region's canonical rectangle list.
func (r *Region) Rects() []fixed.IntRect { return r.rects }

// IsEmpty reports whether the region covers no area.
func (r *Region) IsEmpty() bool { return len(r.rects) == 0 }

// Extents returns the bounding rectangle of the region.
func (r *Region) Extents() fixed.IntRect {
	if len(r.rects) == 0 {
		return fixed.IntRect{}
	}
	box := r.rects[0]
	for _, o := range r.rects[1:] {
		box = box.UnionRect(o)
	}
	return box
}

// ContainsPoint reports whether (x, y) lies within the region.
func (r *Region) ContainsPoint(x, y int32) bool {
	for _, rect := range r.rects {
		if x >= rect.X && x < rect.Right() && y >= rect.Y && y < rect.Bottom() {
			return true
		}
	}
	return false
}

// ContainsRect reports whether o lies entirely within the region (as the
// union of a subset of its rectangles).
func (r *Region) ContainsRect(o fixed.IntRect) bool {
	if o.IsEmpty() {
		return true
	}
	return Empty().combine(&Region{rects: []fixed.IntRect{o}}, r, func(inA, inB bool) bool { return inA && !inB }).IsEmpty()
}

// Union returns the union of r and o as a new region.
func (r *Region) Union(o *Region) *Region {
	return r.combine(r, o, func(inA, inB bool) bool { return inA || inB })
}

// Intersect returns the intersection of r and o.
func (r *Region) Intersect(o *Region) *Region {
	return r.combine(r, o, func(inA, inB bool) bool { return inA && inB })
}

// Subtract returns r with o's coverage removed.
func (r *Region) Subtract(o *Region) *Region {
	return r.combine(r, o, func(inA, inB bool) bool { return inA && !inB })
}

// combine builds the canonical grid of both regions' breakpoints and
// keeps every cell for which pred(inA, inB) holds, then merges adjacent
// cells row-wise and rows column-wise into a minimal rectangle list.
func (r *Region) combine(a, b *Region, pred func(inA, inB bool) bool) *Region {
	xs, ys := breakpoints(a, b)
	if len(xs) < 2 || len(ys) < 2 {
		return Empty()
	}

	var out []fixed.IntRect
	for yi := 0; yi+1 < len(ys); yi++ {
		y0, y1 := ys[yi], ys[yi+1]
		var runStart = -1
		flush := func(xEnd int32) {
			if runStart >= 0 {
				out = append(out, fixed.IntRect{X: xs[runStart], Y: y0, W: xEnd - xs[runStart], H: y1 - y0})
				runStart = -1
			}
		}
		for xi := 0; xi+1 < len(xs); xi++ {
			cx, cy := midpoint(xs[xi], xs[xi+1]), midpoint(y0, y1)
			keep := pred(a.ContainsPoint(cx, cy), b.ContainsPoint(cx, cy))
			if keep && runStart < 0 {
				runStart = xi
			} else if !keep {
				flush(xs[xi])
			}
		}
		flush(xs[len(xs)-1])
	}
	return mergeVertical(out)
}

func midpoint(a, b int32) int32 { return a + (b-a)/2 }

func breakpoints(a, b *Region) ([]int32, []int32) {
	xset := map[int32]bool{}
	yset := map[int32]bool{}
	for _, r := range append(append([]fixed.IntRect{}, a.rects...), b.rects...) {
		xset[r.X] = true
		xset[r.Right()] = true
		yset[r.Y] = true
		yset[r.Bottom()] = true
	}
	return sortedKeys(xset), sortedKeys(yset)
}

func sortedKeys(m map[int32]bool) []int32 {
	out := make([]int32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// mergeVertical merges vertically-adjacent rectangles that share the same
// [X, X+W) span into a single taller rectangle, keeping the region
// canonical (minimal rectangle count).
func mergeVertical(rects []fixed.IntRect) *Region {
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].X != rects[j].X {
			return rects[i].X < rects[j].X
		}
		return rects[i].Y < rects[j].Y
	})
	merged := make([]fixed.IntRect, 0, len(rects))
	for _, r := range rects {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.X == r.X && last.W == r.W && last.Bottom() == r.Y {
				last.H += r.H
				continue
			}
		}
		merged = append(merged, r)
	}
	return &Region{rects: merged}
}
