// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package stroke implements the stroker (component C6): it walks a path
// and emits the filled outline of its stroked region, honouring caps,
// joins, the miter limit, and dash patterns.
//
// Grounded on the teacher's internal/stroke/expander.go (the forward/
// backward offset-path-plus-reversed-backward-path construction, its
// bevel/miter/round join math, and its cubic-Bezier arc approximation
// for round joins and caps), generalised here from float64 device Points
// to fixed.Point path output and extended with: dashing (absent from the
// teacher entirely; grounded on original_source/src/cairo_path_stroke.c's
// non-reset-across-subpaths cursor; every dash run is capped at both ends
// and no run's cap is turned into a join), the
// miter-limit fallback-to-bevel test stated exactly as spec 4.4 gives it,
// and pen-based round joins/caps (package pen) for curve-derived vertices
// rather than the teacher's always-cubic-arc approximation.
package stroke

import (
	"math"

	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/path"
	"github.com/gogpu/geomcore/pen"
	"github.com/gogpu/geomcore/spline"
)

// Cap is the shape of a sub-path's open endpoints.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape used to connect two segments.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style bundles the stroke parameters named in spec 6.1.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
	Dash       *Dash
}

// vertex is one point along a flattened sub-path, tagged with whether it
// came from an explicit path corner (honours the configured Join) or
// from curve flattening (always gets a round join, per spec 4.4 item 5).
type vertex struct {
	pt        vec2
	fromCurve bool
}

// Expand walks p and returns the fill outline of its stroked region as a
// new Path, ready to be handed to fill.Fill. toleranceSq controls curve
// flattening (component C4) and the arc approximation for round joins
// and caps. p and style.Width are expected to already be in the same
// (typically device) space -- callers that stroke in user space should
// transform both the path and the width by their CTM before calling.
func Expand(p *path.Path, style Style, toleranceSq float64) *path.Path {
	e := &expander{style: style, toleranceSq: toleranceSq, out: path.New()}
	for _, sp := range flattenSubpaths(p, toleranceSq) {
		e.cur = cursorFor(style.Dash, e.cur)
		e.expandSubpath(sp.verts, sp.closed)
	}
	return e.out
}

type subpath struct {
	verts  []vertex
	closed bool
}

// flattenSubpaths replays p, flattening every curve via spline.Decompose
// to the given squared tolerance, and returns each sub-path as a vertex
// list plus its closed flag.
func flattenSubpaths(p *path.Path, toleranceSq float64) []subpath {
	s := &flattenSink{toleranceSq: toleranceSq}
	p.Interpret(path.Forward, s)
	s.flush()
	return s.subpaths
}

type flattenSink struct {
	toleranceSq float64
	subpaths    []subpath
	cur         []vertex
	current     fixed.Point
	hasCur      bool
	closed      bool
}

func toVec(p fixed.Point) vec2 { return vec2{X: p.X.ToFloat64(), Y: p.Y.ToFloat64()} }

func (s *flattenSink) flush() {
	if len(s.cur) > 0 {
		s.subpaths = append(s.subpaths, subpath{verts: s.cur, closed: s.closed})
	}
	s.cur = nil
	s.closed = false
}

func (s *flattenSink) MoveTo(p fixed.Point) {
	s.flush()
	s.current = p
	s.hasCur = true
	s.cur = append(s.cur, vertex{pt: toVec(p)})
}

func (s *flattenSink) LineTo(p fixed.Point) {
	if !s.hasCur {
		s.MoveTo(p)
		return
	}
	s.cur = append(s.cur, vertex{pt: toVec(p)})
	s.current = p
}

func (s *flattenSink) CurveTo(p1, p2, p3 fixed.Point) {
	if !s.hasCur {
		s.MoveTo(p1)
	}
	knots := spline.Knots{A: s.current, B: p1, C: p2, D: p3}
	spline.Decompose(knots, s.toleranceSq*float64(fixed.One)*float64(fixed.One), func(pt fixed.Point) {
		s.cur = append(s.cur, vertex{pt: toVec(pt), fromCurve: true})
	})
	s.current = p3
}

func (s *flattenSink) ClosePath() {
	s.closed = true
}

// expander builds the forward/backward offset outlines for one stroke
// operation and assembles them into the output path, mirroring the
// teacher's StrokeExpander but over vertex lists (post-dash-split) rather
// than a live PathElement stream.
type expander struct {
	style       Style
	toleranceSq float64
	out         *path.Path
	cur         *cursor

	forward, backward []vec2

	startPt, lastPt     vec2
	startNorm, lastNorm vec2
	startTan, lastTan   vec2
	joinThresh          float64
}

func cursorFor(d *Dash, existing *cursor) *cursor {
	if d == nil || !d.IsDashed() {
		return nil
	}
	if existing != nil {
		return existing
	}
	return newCursor(d)
}

func (e *expander) expandSubpath(verts []vertex, closed bool) {
	if len(verts) < 2 {
		return
	}
	if e.style.Dash != nil && e.style.Dash.IsDashed() {
		e.expandDashed(verts, closed)
		return
	}
	e.expandPlain(verts, closed)
}

func (e *expander) expandPlain(verts []vertex, closed bool) {
	e.reset()
	pts := verts
	if closed {
		pts = append(append([]vertex(nil), verts...), verts[0])
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].pt == pts[i-1].pt {
			continue
		}
		tan := pts[i].pt.sub(pts[i-1].pt)
		e.doJoin(pts[i-1].pt, tan, pts[i].fromCurve)
		e.lastTan = tan
		e.doLine(tan, pts[i].pt)
	}
	if closed {
		e.finishClosed()
	} else {
		e.finish()
	}
}

// expandDashed splits verts into "on" runs using the dash cursor (which
// is not reset across sub-paths -- e.cur persists across calls within one
// Expand invocation) and strokes each run as an independent mini
// sub-path with caps at both ends.
func (e *expander) expandDashed(verts []vertex, closed bool) {
	pts := verts
	if closed {
		pts = append(append([]vertex(nil), verts...), verts[0])
	}
	var run []vertex
	flushRun := func() {
		if len(run) >= 2 {
			e.reset()
			for i := 1; i < len(run); i++ {
				if run[i].pt == run[i-1].pt {
					continue
				}
				tan := run[i].pt.sub(run[i-1].pt)
				e.doJoin(run[i-1].pt, tan, run[i].fromCurve)
				e.lastTan = tan
				e.doLine(tan, run[i].pt)
			}
			e.finish()
		}
		run = nil
	}

	if e.cur.on() {
		run = append(run, pts[0])
	}
	for i := 1; i < len(pts); i++ {
		segLen := pts[i].pt.sub(pts[i-1].pt).length()
		pos := pts[i-1].pt
		dir := pts[i].pt.sub(pts[i-1].pt)
		if segLen > 0 {
			dir = dir.scale(1 / segLen)
		}
		remaining := segLen
		for remaining > 0 {
			wasOn := e.cur.on()
			consumed, ended := e.cur.advance(remaining)
			next := pos.add(dir.scale(consumed))
			if wasOn {
				if len(run) == 0 {
					run = append(run, vertex{pt: pos})
				}
				run = append(run, vertex{pt: next, fromCurve: pts[i].fromCurve && consumed == remaining})
			}
			if wasOn && ended {
				flushRun()
			}
			if !wasOn && ended && e.cur.on() {
				run = append(run, vertex{pt: next})
			}
			pos = next
			remaining -= consumed
		}
	}
	flushRun()
}

func (e *expander) reset() {
	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
	e.startPt, e.startNorm, e.startTan = vec2{}, vec2{}, vec2{}
	e.lastPt, e.lastNorm, e.lastTan = vec2{}, vec2{}, vec2{}
	if e.style.Width > 0 {
		e.joinThresh = 2.0 * math.Sqrt(e.toleranceSq) / e.style.Width
	}
}

func (e *expander) doJoin(p0 vec2, tan0 vec2, fromCurve bool) {
	scale := 0.5 * e.style.Width / tan0.length()
	norm := tan0.perp().scale(scale)

	if len(e.forward) == 0 {
		e.forward = append(e.forward, p0.add(norm.neg()))
		e.backward = append(e.backward, p0.add(norm))
		e.startTan, e.startNorm, e.startPt = tan0, norm, p0
		return
	}
	e.joinWithPrevious(p0, norm, tan0, fromCurve)
}

func (e *expander) joinWithPrevious(p0, norm, tan0 vec2, fromCurve bool) {
	ab, cd := e.lastTan, tan0
	cross := ab.cross(cd)
	dot := ab.dot(cd)
	hypot := math.Hypot(cross, dot)

	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.forward = append(e.forward, p0.add(norm.neg()))
		e.backward = append(e.backward, p0.add(norm))
		return
	}

	join := e.style.Join
	if fromCurve {
		join = JoinRound
	}
	switch join {
	case JoinBevel:
		e.forward = append(e.forward, p0.add(norm.neg()))
		e.backward = append(e.backward, p0.add(norm))
	case JoinMiter:
		e.applyMiter(p0, norm, ab, cd, cross, dot, hypot)
	case JoinRound:
		e.applyRound(p0, norm, cross, dot)
	}
}

// applyMiter computes the outer intersection of the two outer edges when
// 2 <= miterLimit^2 * (1 - cos(angle)), matching spec 4.4's fallback
// test; otherwise falls through to a bevel, never producing an
// arbitrarily long spike (scenario F).
func (e *expander) applyMiter(p0, norm, ab, cd vec2, cross, dot, hypot float64) {
	m2 := e.style.MiterLimit * e.style.MiterLimit
	if 2.0*hypot < (hypot+dot)*m2 {
		lastScale := 0.5 * e.style.Width / ab.length()
		lastNorm := ab.perp().scale(lastScale)
		if cross > 0 {
			fpLast := p0.add(lastNorm.neg())
			fpThis := p0.add(norm.neg())
			h := ab.cross(fpThis.sub(fpLast)) / cross
			miter := fpThis.add(cd.scale(-h))
			e.forward = append(e.forward, miter)
			e.backward = append(e.backward, p0)
			return
		} else if cross < 0 {
			fpLast := p0.add(lastNorm)
			fpThis := p0.add(norm)
			h := ab.cross(fpThis.sub(fpLast)) / cross
			miter := fpThis.add(cd.scale(-h))
			e.backward = append(e.backward, miter)
			e.forward = append(e.forward, p0)
			return
		}
	}
	e.forward = append(e.forward, p0.add(norm.neg()))
	e.backward = append(e.backward, p0.add(norm))
}

func (e *expander) applyRound(p0, norm vec2, cross, dot float64) {
	lastScale := 0.5 * e.style.Width / e.lastTan.length()
	lastNorm := e.lastTan.perp().scale(lastScale)

	angle := math.Atan2(cross, dot)
	if angle > 0 {
		e.backward = append(e.backward, p0.add(norm))
		e.forward = append(e.forward, arcPoints(p0, lastNorm.neg(), angle, e.toleranceSq)...)
	} else {
		e.forward = append(e.forward, p0.add(norm.neg()))
		e.backward = append(e.backward, reverseArc(arcPoints(p0, lastNorm, -angle, e.toleranceSq))...)
	}
}

func (e *expander) doLine(tangent, p1 vec2) {
	scale := 0.5 * e.style.Width / tangent.length()
	norm := tangent.perp().scale(scale)
	e.forward = append(e.forward, p1.add(norm.neg()))
	e.backward = append(e.backward, p1.add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

func (e *expander) finish() {
	if len(e.forward) == 0 {
		return
	}
	e.emitMoveTo(e.forward[0])
	for _, p := range e.forward[1:] {
		e.emitLineTo(p)
	}
	if len(e.backward) > 0 {
		e.applyCap(e.style.Cap, e.lastPt, e.lastNorm.neg())
	}
	for i := len(e.backward) - 1; i >= 0; i-- {
		e.emitLineTo(e.backward[i])
	}
	e.applyStartCap(e.style.Cap, e.startPt, e.startNorm)
	e.out.ClosePath()
}

func (e *expander) finishClosed() {
	if len(e.forward) == 0 {
		return
	}
	e.doJoin(e.startPt, e.startTan, false)

	e.emitMoveTo(e.forward[0])
	for _, p := range e.forward[1:] {
		e.emitLineTo(p)
	}
	e.out.ClosePath()

	if len(e.backward) > 0 {
		e.emitMoveTo(e.backward[len(e.backward)-1])
	}
	for i := len(e.backward) - 1; i >= 0; i-- {
		e.emitLineTo(e.backward[i])
	}
	e.out.ClosePath()
}

func (e *expander) applyCap(cap Cap, center, norm vec2) {
	switch cap {
	case CapButt:
		e.emitLineTo(center.add(norm.neg()))
	case CapRound:
		for _, p := range arcPoints(center, norm, math.Pi, e.toleranceSq) {
			e.emitLineTo(p)
		}
	case CapSquare:
		p1 := squareTransform(center, norm, vec2{X: 1, Y: 1})
		p2 := squareTransform(center, norm, vec2{X: -1, Y: 1})
		p3 := squareTransform(center, norm, vec2{X: -1, Y: 0})
		e.emitLineTo(p1)
		e.emitLineTo(p2)
		e.emitLineTo(p3)
	}
}

func (e *expander) applyStartCap(cap Cap, center, norm vec2) {
	switch cap {
	case CapButt:
		// Nothing to add; ClosePath draws the final edge back to start.
	case CapRound:
		for _, p := range arcPoints(center, norm, math.Pi, e.toleranceSq) {
			e.emitLineTo(p)
		}
	case CapSquare:
		p1 := squareTransform(center, norm, vec2{X: 1, Y: 1})
		p2 := squareTransform(center, norm, vec2{X: -1, Y: 1})
		e.emitLineTo(p1)
		e.emitLineTo(p2)
	}
}

func squareTransform(center, norm, p vec2) vec2 {
	return vec2{
		X: norm.X*p.X - norm.Y*p.Y + center.X,
		Y: norm.Y*p.X + norm.X*p.Y + center.Y,
	}
}

// arcPoints approximates a circular arc of the given signed angle,
// starting at center+norm, using the pen's vertex density formula
// (package pen) rather than the teacher's fixed cubic-per-quadrant rule,
// so round joins/caps respect the same tolerance-driven density as the
// rest of the geometric core.
func arcPoints(center, norm vec2, angle, toleranceSq float64) []vec2 {
	radius := norm.length()
	if radius == 0 {
		return nil
	}
	tolerance := math.Sqrt(toleranceSq)
	n := pen.VerticesNeeded(radius, tolerance, fixed.Identity())
	steps := int(math.Ceil(float64(n) * math.Abs(angle) / (2 * math.Pi)))
	if steps < 1 {
		steps = 1
	}
	start := norm.angle()
	pts := make([]vec2, 0, steps)
	for i := 1; i <= steps; i++ {
		a := start + angle*float64(i)/float64(steps)
		pts = append(pts, vec2{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)})
	}
	return pts
}

func reverseArc(pts []vec2) []vec2 {
	out := make([]vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func (e *expander) emitMoveTo(v vec2) {
	e.out.MoveTo(fixed.PtFromFloat64(v.X, v.Y))
}

func (e *expander) emitLineTo(v vec2) {
	e.out.LineTo(fixed.PtFromFloat64(v.X, v.Y))
}
