// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geomcore is the top-level facade tying the path, stroker,
// filler, sweeps, and clip engine to a destination Surface, mirroring
// the role the teacher's top-level drawing context plays, narrowed to
// exactly the fill/stroke/clip operations spec 6 names.
package geomcore

import (
	"fmt"
	"os"

	"github.com/gogpu/geomcore/clip"
	"github.com/gogpu/geomcore/fill"
	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/geomerr"
	"github.com/gogpu/geomcore/internal/xlog"
	"github.com/gogpu/geomcore/path"
	"github.com/gogpu/geomcore/stroke"
	"github.com/gogpu/geomcore/surface"
	"github.com/gogpu/geomcore/sweep"
	"github.com/gogpu/geomcore/trap"
)

// trapDumpFile is read once at process start, following the teacher's
// single-read-at-construction environment convention (spec 6.4): when
// set, every tessellation appends a textual trapezoid dump to this file.
var trapDumpFile = os.Getenv("GEOMCORE_TRAP_DUMP")

// Context draws a sequence of fill/stroke/clip operations onto a Surface
// under a current transformation matrix, short-circuiting via Sticky
// once any operation fails.
type Context struct {
	Surface surface.Surface
	CTM     fixed.Matrix
	Clip    *clip.Stack

	geomerr.Sticky
}

// New returns a Context drawing onto s with an identity CTM and no clip.
func New(s surface.Surface) *Context {
	return &Context{Surface: s, CTM: fixed.Identity(), Clip: clip.NewStack()}
}

// FillParams bundles spec 6.1's fill parameters.
type FillParams struct {
	Rule      sweep.FillRule
	Tolerance float64
}

// Fill transforms p by the CTM, tessellates it against the current clip
// extents, and hands the result to the surface: trapezoids in the
// general case, or the rectangular sweep's boxes when the transformed
// path turns out rectilinear and reduces to true rectangles.
func (c *Context) Fill(op surface.Operator, source surface.Pattern, p *path.Path, params FillParams) error {
	if err := c.Sticky.Err(); err != nil {
		return err
	}
	if c.Clip.AllClipped() {
		return nil
	}
	if params.Tolerance <= 0 {
		return c.Fail(fmt.Errorf("%w: fill tolerance must be positive", geomerr.ErrInvalidTolerance))
	}

	transformed := p.Clone()
	transformed.Transform(c.CTM)

	toleranceSq := params.Tolerance * params.Tolerance
	poly := fill.Fill(transformed, toleranceSq, c.clipLimits(), path.Forward)

	if transformed.IsRectilinear() {
		traps := sweep.RectangularTessellate(poly, params.Rule)
		dumpTraps("fill(rect)", traps)
		if traps.IsRectangular {
			return c.wrap(c.fillAsBoxes(op, source, traps))
		}
		return c.wrap(c.Surface.FillTrapezoids(op, source, traps))
	}

	traps := sweep.GeneralTessellate(poly, params.Rule)
	dumpTraps("fill", traps)
	return c.wrap(c.Surface.FillTrapezoids(op, source, traps))
}

func (c *Context) fillAsBoxes(op surface.Operator, source surface.Pattern, traps *trap.Array) error {
	col := source.ColorAt(0, 0)
	boxes := make([]fixed.IntRect, 0, traps.Len())
	for _, t := range traps.Traps {
		boxes = append(boxes, fixed.IntRect{
			X: t.Left.P1.X.Floor(),
			Y: t.Top.Floor(),
			W: (t.Right.P1.X - t.Left.P1.X).Floor(),
			H: (t.Bottom - t.Top).Floor(),
		})
	}
	return c.Surface.FillBoxes(op, col, boxes)
}

// StrokeParams bundles spec 6.1's stroke parameters.
type StrokeParams struct {
	Style     stroke.Style
	Tolerance float64
}

// Stroke expands p into its fill outline under the CTM and renders that
// outline exactly as Fill would, always under the non-zero winding rule
// (a stroke outline's forward/backward offset pair is constructed to be
// self-consistent only under non-zero winding).
func (c *Context) Stroke(op surface.Operator, source surface.Pattern, p *path.Path, params StrokeParams) error {
	if err := c.Sticky.Err(); err != nil {
		return err
	}
	if c.Clip.AllClipped() {
		return nil
	}
	if params.Tolerance <= 0 {
		return c.Fail(fmt.Errorf("%w: stroke tolerance must be positive", geomerr.ErrInvalidTolerance))
	}

	transformed := p.Clone()
	transformed.Transform(c.CTM)

	outline := stroke.Expand(transformed, params.Style, params.Tolerance*params.Tolerance)
	return c.Fill(op, source, outline, FillParams{Rule: sweep.NonZero, Tolerance: params.Tolerance})
}

// PushClip intersects the current clip with p, transformed by the CTM.
func (c *Context) PushClip(p *path.Path, rule sweep.FillRule, tolerance float64, aa clip.Antialias) {
	transformed := p.Clone()
	transformed.Transform(c.CTM)
	c.Clip.Clip(transformed, rule, tolerance, aa)
}

// PopClip removes the most recently pushed clip level.
func (c *Context) PopClip() { c.Clip.Pop() }

func (c *Context) clipLimits() []fixed.Box {
	if c.Clip.IsUnclipped() {
		return nil
	}
	extents := c.Clip.Extents(c.Surface.GetExtents())
	return []fixed.Box{intRectToBox(extents)}
}

func intRectToBox(r fixed.IntRect) fixed.Box {
	return fixed.Box{
		P1: fixed.Pt(fixed.Int(r.X)<<fixed.Shift, fixed.Int(r.Y)<<fixed.Shift),
		P2: fixed.Pt(fixed.Int(r.Right())<<fixed.Shift, fixed.Int(r.Bottom())<<fixed.Shift),
	}
}

func (c *Context) wrap(err error) error {
	if err != nil {
		return c.Fail(err)
	}
	return nil
}

func dumpTraps(op string, traps *trap.Array) {
	if trapDumpFile == "" {
		return
	}
	f, err := os.OpenFile(trapDumpFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		xlog.Logger().Warn("trap dump: open failed", "file", trapDumpFile, "error", err)
		return
	}
	defer f.Close()
	for _, t := range traps.Traps {
		fmt.Fprintf(f, "%s top=%v bottom=%v left=(%v,%v) right=(%v,%v)\n",
			op, t.Top, t.Bottom, t.Left.P1, t.Left.P2, t.Right.P1, t.Right.P2)
	}
}
