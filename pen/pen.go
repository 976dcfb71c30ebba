// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pen implements the convex polygon that stands in for a stroke's
// circular cross-section (component C5).
//
// Grounded directly on original_source/xrpen.c: XrPenInit's vertex-count
// formula (_XrPenVerticesNeeded) and slope precomputation
// (_XrPenComputeSlopes), and XrPenAddPoints' sorted-merge insertion of
// extra vertices. Slope comparisons reuse fixed.Slope's exact cross
// product instead of xrpen.c's floating-point _SlopeClockwise, since this
// module's fixed.Slope already provides a division-free, exact
// comparison the C source achieves only approximately.
package pen

import (
	"math"
	"sort"

	"github.com/gogpu/geomcore/fixed"
)

// Vertex is one pen vertex: its device-space point, its angle (used only
// to sort newly merged vertices), and the two slopes into its clockwise
// and counter-clockwise neighbours the stroker's outside-vertex queries
// need.
type Vertex struct {
	Pt       fixed.Point
	Theta    float64
	SlopeCW  fixed.Slope
	SlopeCCW fixed.Slope
}

// Pen is a convex n-gon approximating a circle of Radius under the CTM
// supplied at construction.
type Pen struct {
	Radius    float64
	Tolerance float64
	Vertices  []Vertex
}

// New builds a pen of the given radius and tolerance under ctm, per
// spec 3.6: n = ceil(pi/theta) where theta = acos(1 - tolerance/(r *
// sigma_max(ctm))), clamped to at least 4.
func New(radius, tolerance float64, ctm fixed.Matrix) *Pen {
	n := VerticesNeeded(radius, tolerance, ctm)
	p := &Pen{Radius: radius, Tolerance: tolerance, Vertices: make([]Vertex, n)}
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		x := radius * math.Cos(theta)
		y := radius * math.Sin(theta)
		dx, dy := ctm.TransformDistance(x, y)
		p.Vertices[i] = Vertex{Pt: fixed.PtFromFloat64(dx, dy), Theta: theta}
	}
	p.computeSlopes()
	return p
}

// VerticesNeeded returns the vertex count per spec 3.6 / xrpen.c's
// _XrPenVerticesNeeded, clamped to a minimum of 4.
func VerticesNeeded(radius, tolerance float64, ctm fixed.Matrix) int {
	if tolerance > radius {
		return 4
	}
	emax := ctm.LargestSingularValue()
	if emax == 0 || radius == 0 {
		return 4
	}
	arg := 1 - tolerance/(emax*radius)
	if arg < -1 {
		arg = -1
	}
	if arg > 1 {
		arg = 1
	}
	theta := math.Acos(arg)
	if theta <= 0 {
		return 4
	}
	n := int(math.Ceil(math.Pi / theta))
	if n < 4 {
		n = 4
	}
	return n
}

func (p *Pen) computeSlopes() {
	n := len(p.Vertices)
	if n == 0 {
		return
	}
	for i := range p.Vertices {
		prev := p.Vertices[(i-1+n)%n]
		v := &p.Vertices[i]
		next := p.Vertices[(i+1)%n]
		v.SlopeCW = v.Pt.Sub(prev.Pt)
		v.SlopeCCW = next.Pt.Sub(v.Pt)
	}
}

// FindActiveCWVertex returns the index of the vertex whose clockwise
// slope pair straddles slope, walking clockwise from index 0. Ties are
// broken deterministically by taking the smallest index found.
func (p *Pen) FindActiveCWVertex(slope fixed.Slope) int {
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		v := p.Vertices[i]
		if v.SlopeCW.Clockwise(slope) || v.SlopeCW == slope {
			if !v.SlopeCCW.Clockwise(slope) {
				return i
			}
		}
	}
	return 0
}

// FindActiveCCWVertex returns the index of the vertex whose counter-
// clockwise slope pair straddles slope.
func (p *Pen) FindActiveCCWVertex(slope fixed.Slope) int {
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		v := p.Vertices[i]
		if v.SlopeCCW.CounterClockwise(slope) || v.SlopeCCW == slope {
			if !v.SlopeCW.CounterClockwise(slope) {
				return i
			}
		}
	}
	return 0
}

// AddPoints inserts extra vertices (e.g. exact offset points the stroker
// needs for a spline outline join), sort-merging by angle and
// deduplicating coincident points, then rebuilds the slope table.
// Mirrors XrPenAddPoints.
func (p *Pen) AddPoints(extra []fixed.Point) {
	if len(extra) == 0 {
		return
	}
	type tagged struct {
		pt    fixed.Point
		theta float64
	}
	add := make([]tagged, len(extra))
	for i, pt := range extra {
		theta := math.Atan2(pt.Y.ToFloat64(), pt.X.ToFloat64())
		if theta < 0 {
			theta += 2 * math.Pi
		}
		add[i] = tagged{pt: pt, theta: theta}
	}
	sort.Slice(add, func(i, j int) bool { return add[i].theta < add[j].theta })

	merged := make([]Vertex, 0, len(p.Vertices)+len(add))
	existing := map[fixed.Point]bool{}
	for _, v := range p.Vertices {
		existing[v.Pt] = true
	}
	merged = append(merged, p.Vertices...)
	for _, t := range add {
		if existing[t.pt] {
			continue
		}
		merged = append(merged, Vertex{Pt: t.pt, Theta: t.theta})
		existing[t.pt] = true
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Theta < merged[j].Theta })
	p.Vertices = merged
	p.computeSlopes()
}
