// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package spline flattens cubic Bezier curves into polylines within a
// squared-error tolerance (component C4).
//
// The subdivision algorithm is carried over verbatim in structure from
// cairo-spline.c's _cairo_spline_decompose/_de_casteljau/_cairo_spline_
// error_squared, generalised to fixed.Point; the recursive-midpoint-split
// shape also matches the teacher's internal/path/flatten.go
// flattenCubic, which the teacher in turn modeled on the same class of
// perpendicular-distance stopping criterion.
package spline

import "github.com/gogpu/geomcore/fixed"

// Knots is the four control points of a cubic Bezier.
type Knots struct {
	A, B, C, D fixed.Point
}

// LineTo receives the points of the flattened polyline, in order: the
// start of every within-tolerance piece (so the first point is A itself),
// then the endpoint D.
type LineTo func(p fixed.Point)

// Status reports whether Decompose did meaningful work.
type Status int

const (
	// OK means the polyline was (possibly trivially) emitted.
	OK Status = iota
	// Degenerate means A == B == C == D: no work, caller should no-op.
	Degenerate
)

// InitialSlope returns the first non-zero difference among (B-A, C-A,
// D-A), used by the stroker to find the tangent direction leaving A.
func InitialSlope(k Knots) fixed.Slope {
	if s := k.B.Sub(k.A); !s.IsZero() {
		return s
	}
	if s := k.C.Sub(k.A); !s.IsZero() {
		return s
	}
	return k.D.Sub(k.A)
}

// FinalSlope returns the first non-zero difference among (D-C, D-B, D-A),
// used by the stroker to find the tangent direction arriving at D.
func FinalSlope(k Knots) fixed.Slope {
	if s := k.D.Sub(k.C); !s.IsZero() {
		return s
	}
	if s := k.D.Sub(k.B); !s.IsZero() {
		return s
	}
	return k.D.Sub(k.A)
}

// Decompose emits a polyline approximating k within squared tolerance
// toleranceSq via emit, finishing with the endpoint D. toleranceSq is
// compared with squared distances in raw fixed-point units (One*One per
// square user unit). It returns
// Degenerate (and emits nothing) when all four control points coincide.
func Decompose(k Knots, toleranceSq float64, emit LineTo) Status {
	if k.A.Equal(k.B) && k.A.Equal(k.C) && k.A.Equal(k.D) {
		return Degenerate
	}
	decomposeInto(k, toleranceSq, emit)
	emit(k.D)
	return OK
}

func decomposeInto(k Knots, toleranceSq float64, emit LineTo) {
	if errorSquared(k) <= toleranceSq {
		emit(k.A)
		return
	}
	s1, s2 := deCasteljau(k)
	decomposeInto(s1, toleranceSq, emit)
	decomposeInto(s2, toleranceSq, emit)
}

// lerpHalf returns the integer midpoint of a and b via a>>1 + b>>1 +
// rounding, matching _lerp_half's use of an arithmetic shift to avoid
// overflow on the addition.
func lerpHalf(a, b fixed.Int) fixed.Int {
	return (a >> 1) + (b >> 1) + (a & b & 1)
}

func midpoint(a, b fixed.Point) fixed.Point {
	return fixed.Pt(lerpHalf(a.X, b.X), lerpHalf(a.Y, b.Y))
}

// deCasteljau splits k at t=1/2 into two half-size splines, mirroring
// _de_casteljau's ab/bc/cd -> abbc/bccd -> final split.
func deCasteljau(k Knots) (s1, s2 Knots) {
	ab := midpoint(k.A, k.B)
	bc := midpoint(k.B, k.C)
	cd := midpoint(k.C, k.D)
	abbc := midpoint(ab, bc)
	bccd := midpoint(bc, cd)
	final := midpoint(abbc, bccd)

	s1 = Knots{A: k.A, B: ab, C: abbc, D: final}
	s2 = Knots{A: final, B: bccd, C: cd, D: k.D}
	return s1, s2
}

// errorSquared returns an upper bound on the squared deviation of the
// spline from the straight chord A-D, as the larger of the squared
// perpendicular distances of B and C from that chord (or, when A == D,
// the squared distances of B and C from A directly).
func errorSquared(k Knots) float64 {
	if k.A.Equal(k.D) {
		bd := distSq(k.B, k.A)
		cd := distSq(k.C, k.A)
		if bd > cd {
			return bd
		}
		return cd
	}

	chord := k.D.Sub(k.A)
	chordLenSq := float64(chord.DX)*float64(chord.DX) + float64(chord.DY)*float64(chord.DY)

	be := perpDistSq(k.B, k.A, chord, chordLenSq)
	ce := perpDistSq(k.C, k.A, chord, chordLenSq)
	if be > ce {
		return be
	}
	return ce
}

func distSq(p, q fixed.Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return dx*dx + dy*dy
}

// perpDistSq returns the squared perpendicular distance from p to the
// line through origin with direction chord, offset by a.
func perpDistSq(p, a fixed.Point, chord fixed.Slope, chordLenSq float64) float64 {
	v := p.Sub(a)
	cross := float64(v.DX)*float64(chord.DY) - float64(v.DY)*float64(chord.DX)
	return (cross * cross) / chordLenSq
}
