// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fill implements the filler (component C8): it walks a path,
// flattens curves via spline.Decompose, and emits a polygon's directed
// edges, adding a closing edge back to the start for each sub-path that
// ends in ClosePath (a sub-path left open gets no closing edge).
//
// Grounded on the teacher's internal/path/edge_iter.go, which performs
// the same walk-and-flatten-and-close sequence (there, to emit device
// Edge{P0,P1} pairs for the rasterizer instead of polygon.Edge entries
// for a sweep), and on spec 4.5.
package fill

import (
	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/path"
	"github.com/gogpu/geomcore/polygon"
	"github.com/gogpu/geomcore/spline"
)

// Fill tessellates p into a polygon ready for the general sweep (C11),
// flattening curves to the given squared tolerance (in squared user
// units, scaled to fixed-point units for spline.Decompose) and clipping against
// limits if non-empty. dir controls whether each sub-path is replayed
// forwards or reversed (the filler uses this to normalise winding across
// multiple sub-paths fed by different callers).
func Fill(p *path.Path, toleranceSq float64, limits []fixed.Box, dir path.Direction) *polygon.Polygon {
	var poly *polygon.Polygon
	if len(limits) > 0 {
		poly = polygon.NewWithLimits(limits)
	} else {
		poly = polygon.New()
	}
	sink := &fillSink{poly: poly, toleranceSq: toleranceSq}
	p.Interpret(dir, sink)
	return poly
}

type fillSink struct {
	poly        *polygon.Polygon
	toleranceSq float64

	current fixed.Point
	start   fixed.Point
	hasCur  bool
}

func (s *fillSink) MoveTo(p fixed.Point) {
	s.current = p
	s.start = p
	s.hasCur = true
}

func (s *fillSink) LineTo(p fixed.Point) {
	if !s.hasCur {
		s.MoveTo(p)
		return
	}
	s.poly.AddLine(s.current, p)
	s.current = p
}

func (s *fillSink) CurveTo(p1, p2, p3 fixed.Point) {
	if !s.hasCur {
		s.MoveTo(p1)
	}
	knots := spline.Knots{A: s.current, B: p1, C: p2, D: p3}
	last := s.current
	spline.Decompose(knots, s.toleranceSq*float64(fixed.One)*float64(fixed.One), func(pt fixed.Point) {
		s.poly.AddLine(last, pt)
		last = pt
	})
	s.current = p3
}

func (s *fillSink) ClosePath() {
	if !s.hasCur {
		return
	}
	if s.current != s.start {
		s.poly.AddLine(s.current, s.start)
	}
	s.current = s.start
}
