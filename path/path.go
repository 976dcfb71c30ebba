// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package path implements the fixed-point path store (component C3): an
// ordered sequence of MoveTo/LineTo/CurveTo/ClosePath operations with
// current-point tracking, equality, translation, full affine transform,
// and directed replay.
//
// Grounded on the teacher's internal/path/edge_iter.go (the replay/
// iteration model, explicitly modeled there on tiny-skia's
// PathEdgeIter) and internal/path/flatten.go (the PathElement verb set),
// generalised from float64 device points to fixed.Point and extended
// with the rectilinear/box/equality/transform operations the teacher's
// path type does not need.
package path

import (
	"fmt"

	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/geomerr"
)

// Op identifies a path verb.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpCurveTo
	OpClose
)

// Direction controls whether Interpret replays a sub-path forwards or
// reversed, needed by the filler (C8) for consistent winding.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// Sink receives the callbacks Interpret replays a path through.
type Sink interface {
	MoveTo(p fixed.Point)
	LineTo(p fixed.Point)
	CurveTo(p1, p2, p3 fixed.Point)
	ClosePath()
}

// Path is an ordered sequence of path operations over a fixed-point point
// buffer, with current-point tracking and derived shape flags.
type Path struct {
	ops    []Op
	points []fixed.Point

	hasCurrent   bool
	current      fixed.Point
	subpathStart fixed.Point

	isRectilinear bool
	hasCurves     bool
}

// New returns an empty path.
func New() *Path {
	return &Path{isRectilinear: true}
}

// Reset empties the path, keeping its backing storage.
func (p *Path) Reset() {
	p.ops = p.ops[:0]
	p.points = p.points[:0]
	p.hasCurrent = false
	p.isRectilinear = true
	p.hasCurves = false
}

// IsEmpty reports whether the path has no operations at all.
func (p *Path) IsEmpty() bool { return len(p.ops) == 0 }

// CurrentPoint returns the current point and whether one exists.
func (p *Path) CurrentPoint() (fixed.Point, bool) { return p.current, p.hasCurrent }

// MoveTo starts a new sub-path at p. Consecutive MoveTos collapse: the
// second overwrites the first rather than emitting a degenerate sub-path.
func (pa *Path) MoveTo(p fixed.Point) {
	if n := len(pa.ops); n > 0 && pa.ops[n-1] == OpMoveTo {
		pa.points[len(pa.points)-1] = p
	} else {
		pa.ops = append(pa.ops, OpMoveTo)
		pa.points = append(pa.points, p)
	}
	pa.current = p
	pa.subpathStart = p
	pa.hasCurrent = true
}

// LineTo appends a line segment from the current point to p. If there is
// no current point, it behaves as if preceded by a MoveTo to p (the
// zero-length segment is simply a new sub-path start).
func (pa *Path) LineTo(p fixed.Point) {
	if !pa.hasCurrent {
		pa.MoveTo(p)
		return
	}
	if p.X != pa.current.X && p.Y != pa.current.Y {
		pa.isRectilinear = false
	}
	pa.ops = append(pa.ops, OpLineTo)
	pa.points = append(pa.points, p)
	pa.current = p
}

// CurveTo appends a cubic Bezier from the current point through p1, p2 to
// p3. With no current point, it starts a degenerate sub-path at p1.
func (pa *Path) CurveTo(p1, p2, p3 fixed.Point) {
	if !pa.hasCurrent {
		pa.MoveTo(p1)
	}
	pa.isRectilinear = false
	pa.hasCurves = true
	pa.ops = append(pa.ops, OpCurveTo)
	pa.points = append(pa.points, p1, p2, p3)
	pa.current = p3
}

// ClosePath closes the current sub-path back to its starting point; a
// closing segment that is not axis-aligned clears IsRectilinear. A
// ClosePath with no current point is a no-op.
func (pa *Path) ClosePath() {
	if !pa.hasCurrent {
		return
	}
	if pa.current.X != pa.subpathStart.X && pa.current.Y != pa.subpathStart.Y {
		pa.isRectilinear = false
	}
	pa.ops = append(pa.ops, OpClose)
	pa.current = pa.subpathStart
}

// RelLineTo is LineTo relative to the current point; fails with
// ErrNoCurrentPoint if there is none.
func (pa *Path) RelLineTo(dx, dy fixed.Int) error {
	if !pa.hasCurrent {
		return fmt.Errorf("%w: rel_line_to", geomerr.ErrNoCurrentPoint)
	}
	pa.LineTo(fixed.Pt(pa.current.X+dx, pa.current.Y+dy))
	return nil
}

// RelCurveTo is CurveTo with all three control points relative to the
// current point.
func (pa *Path) RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 fixed.Int) error {
	if !pa.hasCurrent {
		return fmt.Errorf("%w: rel_curve_to", geomerr.ErrNoCurrentPoint)
	}
	c := pa.current
	pa.CurveTo(
		fixed.Pt(c.X+dx1, c.Y+dy1),
		fixed.Pt(c.X+dx2, c.Y+dy2),
		fixed.Pt(c.X+dx3, c.Y+dy3),
	)
	return nil
}

// IsRectilinear reports whether every emitted line segment is axis-aligned
// and no curves have ever been added.
func (p *Path) IsRectilinear() bool { return p.isRectilinear }

// HasCurves reports whether any CurveTo op exists.
func (p *Path) HasCurves() bool { return p.hasCurves }

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	c := &Path{
		hasCurrent:    p.hasCurrent,
		current:       p.current,
		subpathStart:  p.subpathStart,
		isRectilinear: p.isRectilinear,
		hasCurves:     p.hasCurves,
	}
	c.ops = append([]Op(nil), p.ops...)
	c.points = append([]fixed.Point(nil), p.points...)
	return c
}

// Equal reports sequential op-by-op equality of two paths, used by clip
// deduplication (spec 4.8 step 3).
func (p *Path) Equal(o *Path) bool {
	if len(p.ops) != len(o.ops) || len(p.points) != len(o.points) {
		return false
	}
	for i := range p.ops {
		if p.ops[i] != o.ops[i] {
			return false
		}
	}
	for i := range p.points {
		if !p.points[i].Equal(o.points[i]) {
			return false
		}
	}
	return true
}

// Translate shifts every point by (tx, ty) without re-examining shape
// flags; the fast path transform uses when the matrix is an integer
// translation.
func (p *Path) Translate(tx, ty fixed.Int) {
	for i := range p.points {
		p.points[i].X += tx
		p.points[i].Y += ty
	}
	p.current.X += tx
	p.current.Y += ty
	p.subpathStart.X += tx
	p.subpathStart.Y += ty
}

// Transform applies the affine matrix m to every point. If m is an
// integer translation, it dispatches to the cheaper Translate.
func (p *Path) Transform(m fixed.Matrix) {
	if m.IsIdentity() {
		return
	}
	if m.IsIntegerTranslation() {
		p.Translate(fixed.FromFloat64(m.X0), fixed.FromFloat64(m.Y0))
		return
	}
	p.isRectilinear = p.isRectilinear && isAxisAlignedMatrix(m)
	for i := range p.points {
		x, y := m.TransformPoint(p.points[i].X.ToFloat64(), p.points[i].Y.ToFloat64())
		p.points[i] = fixed.PtFromFloat64(x, y)
	}
	cx, cy := m.TransformPoint(p.current.X.ToFloat64(), p.current.Y.ToFloat64())
	p.current = fixed.PtFromFloat64(cx, cy)
	sx, sy := m.TransformPoint(p.subpathStart.X.ToFloat64(), p.subpathStart.Y.ToFloat64())
	p.subpathStart = fixed.PtFromFloat64(sx, sy)
}

func isAxisAlignedMatrix(m fixed.Matrix) bool {
	return (m.XY == 0 && m.YX == 0) || (m.XX == 0 && m.YY == 0)
}

// Interpret replays the path through sink, optionally reversing each
// sub-path when dir == Reverse.
func (p *Path) Interpret(dir Direction, sink Sink) {
	if dir == Forward {
		p.interpretForward(sink)
		return
	}
	p.interpretReverse(sink)
}

func (p *Path) interpretForward(sink Sink) {
	idx := 0
	for _, op := range p.ops {
		switch op {
		case OpMoveTo:
			sink.MoveTo(p.points[idx])
			idx++
		case OpLineTo:
			sink.LineTo(p.points[idx])
			idx++
		case OpCurveTo:
			sink.CurveTo(p.points[idx], p.points[idx+1], p.points[idx+2])
			idx += 3
		case OpClose:
			sink.ClosePath()
		}
	}
}

// subpathRange describes one sub-path's slice of ops/points for reversal.
type subpathRange struct {
	opStart, opEnd     int
	ptStart, ptEnd     int
	closed             bool
}

func (p *Path) subpaths() []subpathRange {
	var ranges []subpathRange
	var cur *subpathRange
	ptIdx := 0
	for i, op := range p.ops {
		switch op {
		case OpMoveTo:
			if cur != nil {
				cur.opEnd, cur.ptEnd = i, ptIdx
				ranges = append(ranges, *cur)
			}
			cur = &subpathRange{opStart: i, ptStart: ptIdx}
			ptIdx++
		case OpLineTo:
			ptIdx++
		case OpCurveTo:
			ptIdx += 3
		case OpClose:
			if cur != nil {
				cur.closed = true
			}
		}
	}
	if cur != nil {
		cur.opEnd, cur.ptEnd = len(p.ops), ptIdx
		ranges = append(ranges, *cur)
	}
	return ranges
}

func (p *Path) interpretReverse(sink Sink) {
	for _, sp := range p.subpaths() {
		ops := p.ops[sp.opStart:sp.opEnd]
		pts := p.points[sp.ptStart:sp.ptEnd]
		// Walk verbs in reverse, swapping each verb's endpoint order.
		type seg struct {
			op   Op
			from fixed.Point
			to   fixed.Point
			c1   fixed.Point
			c2   fixed.Point
		}
		var segs []seg
		idx := 0
		var last fixed.Point
		for _, op := range ops {
			switch op {
			case OpMoveTo:
				last = pts[idx]
				idx++
			case OpLineTo:
				segs = append(segs, seg{op: OpLineTo, from: last, to: pts[idx]})
				last = pts[idx]
				idx++
			case OpCurveTo:
				segs = append(segs, seg{op: OpCurveTo, from: last, c1: pts[idx], c2: pts[idx+1], to: pts[idx+2]})
				last = pts[idx+2]
				idx += 3
			case OpClose:
			}
		}
		if len(segs) == 0 {
			sink.MoveTo(pts[0])
			if sp.closed {
				sink.ClosePath()
			}
			continue
		}
		sink.MoveTo(segs[len(segs)-1].to)
		for i := len(segs) - 1; i >= 0; i-- {
			s := segs[i]
			switch s.op {
			case OpLineTo:
				sink.LineTo(s.from)
			case OpCurveTo:
				sink.CurveTo(s.c2, s.c1, s.from)
			}
		}
		if sp.closed {
			sink.ClosePath()
		}
	}
}

// IsBox recognises a closed rectilinear four-edge axis-aligned rectangle
// and, if p is one, returns its box and true.
func (p *Path) IsBox() (fixed.Box, bool) {
	if p.hasCurves || !p.isRectilinear {
		return fixed.Box{}, false
	}
	sps := p.subpaths()
	if len(sps) != 1 || !sps[0].closed {
		return fixed.Box{}, false
	}
	sp := sps[0]
	pts := p.points[sp.ptStart:sp.ptEnd]
	// MoveTo + 3 LineTo = 4 points forming a closed rectangle, or
	// MoveTo + 4 LineTo back to start.
	uniq := pts
	if len(uniq) == 4 {
		// ok
	} else if len(uniq) == 5 && uniq[0].Equal(uniq[4]) {
		uniq = uniq[:4]
	} else {
		return fixed.Box{}, false
	}
	xs := map[fixed.Int]bool{}
	ys := map[fixed.Int]bool{}
	for _, pt := range uniq {
		xs[pt.X] = true
		ys[pt.Y] = true
	}
	if len(xs) != 2 || len(ys) != 2 {
		return fixed.Box{}, false
	}
	minX, maxX := extrema(xs)
	minY, maxY := extrema(ys)
	return fixed.Box{P1: fixed.Pt(minX, minY), P2: fixed.Pt(maxX, maxY)}, true
}

func extrema(m map[fixed.Int]bool) (fixed.Int, fixed.Int) {
	var lo, hi fixed.Int
	first := true
	for k := range m {
		if first {
			lo, hi = k, k
			first = false
			continue
		}
		if k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}
	return lo, hi
}

// FillIsEmpty reports whether every sub-path has fewer than 3 non-
// coincident vertices, i.e. the path encloses no area.
func (p *Path) FillIsEmpty() bool {
	for _, sp := range p.subpaths() {
		pts := p.points[sp.ptStart:sp.ptEnd]
		distinct := map[fixed.Point]bool{}
		for _, pt := range pts {
			distinct[pt] = true
		}
		if len(distinct) >= 3 {
			return false
		}
	}
	return true
}

// ApproximateClipExtents returns a cheap superset of the path's ink
// extents: the bounding box of every control point (not the tight curve
// extents, which would require flattening).
func (p *Path) ApproximateClipExtents() fixed.Box {
	if len(p.points) == 0 {
		return fixed.Box{}
	}
	box := fixed.Box{P1: p.points[0], P2: p.points[0]}
	for _, pt := range p.points[1:] {
		box = box.Union(fixed.Box{P1: pt, P2: pt})
	}
	return box
}

// Ops exposes the raw verb list for callers that need to walk the path
// without the Sink interface's call overhead.
func (p *Path) Ops() []Op { return p.ops }

// Points exposes the raw point buffer backing Ops.
func (p *Path) Points() []fixed.Point { return p.points }
