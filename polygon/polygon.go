// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package polygon implements the append-only directed-edge list consumed
// by the sweeps (component C7).
//
// The optional limits-clipping behaviour -- splitting an edge that
// crosses a limit box's left/right wall into up to three edges so every
// edge's x-projection lies inside the limits' union -- is grounded on
// original_source/src/cairo-polygon.c's edge-clipping-against-limits
// logic, simplified from that file's general edge-clipper (which the
// teacher's internal/clip/edge_clipper.go also implements, in the
// heavier Cohen-Sutherland form for full Bezier clipping) down to the
// box-wall split this spec actually calls for.
package polygon

import "github.com/gogpu/geomcore/fixed"

// Edge is one directed edge of the polygon boundary.
type Edge struct {
	Line        fixed.Line
	Top, Bottom fixed.Int
	Dir         int8 // +1 if Line.P1.Y < Line.P2.Y, else -1
}

// Polygon is an append-only ordered sequence of directed edges with a
// running bounding box and optional clip-limit rectangles.
type Polygon struct {
	Edges   []Edge
	Extents fixed.Box

	// Limits, when non-empty, restricts every added edge's x-projection
	// to the union of these boxes.
	Limits []fixed.Box
}

// New returns an empty polygon with no limits.
func New() *Polygon { return &Polygon{} }

// NewWithLimits returns an empty polygon clipped against limits.
func NewWithLimits(limits []fixed.Box) *Polygon {
	return &Polygon{Limits: limits}
}

// AddLine adds a directed edge from p1 to p2. Horizontal edges (p1.Y ==
// p2.Y) are dropped on insertion. If limits are set, the edge is clipped
// against their union first.
func (p *Polygon) AddLine(p1, p2 fixed.Point) {
	if p1.Y == p2.Y {
		return
	}
	if len(p.Limits) == 0 {
		p.addRaw(p1, p2)
		return
	}
	for _, seg := range clipToLimits(p1, p2, p.Limits) {
		p.addRaw(seg.P1, seg.P2)
	}
}

func (p *Polygon) addRaw(p1, p2 fixed.Point) {
	if p1.Y == p2.Y {
		return
	}
	dir := int8(1)
	top, bottom := p1.Y, p2.Y
	if p1.Y > p2.Y {
		dir = -1
		top, bottom = p2.Y, p1.Y
	}
	e := Edge{Line: fixed.Line{P1: p1, P2: p2}, Top: top, Bottom: bottom, Dir: dir}
	p.Edges = append(p.Edges, e)

	box := fixed.NewBox(p1, p2)
	if len(p.Edges) == 1 {
		p.Extents = box
	} else {
		p.Extents = p.Extents.Union(box)
	}
}

// clipToLimits splits the segment p1-p2 at the left and right walls of
// the union bounding box of limits into up to three pieces (left of the
// left wall, interior, right of the right wall) and moves every outside
// piece onto the nearer wall, keeping its y-range. Every returned segment
// therefore has its x-projection inside the union; a segment lying wholly
// outside becomes a single wall segment.
func clipToLimits(p1, p2 fixed.Point, limits []fixed.Box) []fixed.Line {
	union := limits[0]
	for _, b := range limits[1:] {
		union = union.Union(b)
	}
	left, right := union.P1.X, union.P2.X
	clampX := func(pt fixed.Point) fixed.Point {
		if pt.X < left {
			pt.X = left
		} else if pt.X > right {
			pt.X = right
		}
		return pt
	}

	type splitPoint struct {
		t float64
		x fixed.Int
	}
	var splits []splitPoint
	dx := float64(p2.X - p1.X)
	if dx != 0 {
		if tl := float64(left-p1.X) / dx; tl > 0 && tl < 1 {
			splits = append(splits, splitPoint{t: tl, x: left})
		}
		if tr := float64(right-p1.X) / dx; tr > 0 && tr < 1 {
			splits = append(splits, splitPoint{t: tr, x: right})
		}
	}
	if len(splits) == 0 {
		return []fixed.Line{{P1: clampX(p1), P2: clampX(p2)}}
	}
	if len(splits) == 2 && splits[0].t > splits[1].t {
		splits[0], splits[1] = splits[1], splits[0]
	}

	pts := []fixed.Point{p1}
	for _, s := range splits {
		y := p1.Y + fixed.Int(s.t*float64(p2.Y-p1.Y))
		pts = append(pts, fixed.Pt(s.x, y))
	}
	pts = append(pts, p2)

	segs := make([]fixed.Line, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, fixed.Line{P1: clampX(pts[i]), P2: clampX(pts[i+1])})
	}
	return segs
}
