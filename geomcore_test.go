// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geomcore

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/geomcore/clip"
	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/geomerr"
	"github.com/gogpu/geomcore/path"
	"github.com/gogpu/geomcore/stroke"
	"github.com/gogpu/geomcore/surface"
	"github.com/gogpu/geomcore/sweep"
)

func rectPath(x0, y0, x1, y1 float64) *path.Path {
	p := path.New()
	p.MoveTo(fixed.PtFromFloat64(x0, y0))
	p.LineTo(fixed.PtFromFloat64(x1, y0))
	p.LineTo(fixed.PtFromFloat64(x1, y1))
	p.LineTo(fixed.PtFromFloat64(x0, y1))
	p.ClosePath()
	return p
}

func TestNewContextIsUnclipped(t *testing.T) {
	ctx := New(surface.NewImageSurface(20, 20))
	if ctx.CTM != fixed.Identity() {
		t.Error("New() CTM is not the identity")
	}
	if !ctx.Clip.IsUnclipped() {
		t.Error("New() context is not unclipped")
	}
}

func TestFillRejectsNonPositiveTolerance(t *testing.T) {
	ctx := New(surface.NewImageSurface(20, 20))
	err := ctx.Fill(surface.OpSource, surface.SolidPattern{Color: color.RGBA{A: 255}}, rectPath(0, 0, 10, 10), FillParams{Rule: sweep.NonZero, Tolerance: 0})
	if !errors.Is(err, geomerr.ErrInvalidTolerance) {
		t.Errorf("Fill() with zero tolerance error = %v, want wrapping ErrInvalidTolerance", err)
	}
	if ctx.Sticky.Err() == nil {
		t.Error("Fill() failure did not stick the error on the context")
	}
}

func TestFillShortCircuitsAfterSticky(t *testing.T) {
	ctx := New(surface.NewImageSurface(20, 20))
	ctx.Fail(errors.New("boom"))

	err := ctx.Fill(surface.OpSource, surface.SolidPattern{Color: color.RGBA{A: 255}}, rectPath(0, 0, 10, 10), FillParams{Rule: sweep.NonZero, Tolerance: 0.5})
	if err == nil || err.Error() != "boom" {
		t.Errorf("Fill() after a sticky error = %v, want the original sticky error", err)
	}
}

func TestFillNoopWhenAllClipped(t *testing.T) {
	s := surface.NewImageSurface(20, 20)
	ctx := New(s)
	ctx.Clip.InitRect(fixed.IntRect{})

	if err := ctx.Fill(surface.OpSource, surface.SolidPattern{Color: color.RGBA{R: 255, A: 255}}, rectPath(0, 0, 10, 10), FillParams{Rule: sweep.NonZero, Tolerance: 0.5}); err != nil {
		t.Fatalf("Fill() under an all-clipped stack returned error = %v, want nil", err)
	}
	if c := s.Image().RGBAAt(5, 5); c.A != 0 {
		t.Error("Fill() painted pixels despite an all-clipped stack")
	}
}

func TestFillRectangleUsesBoxFastPath(t *testing.T) {
	s := surface.NewImageSurface(20, 20)
	ctx := New(s)
	red := surface.SolidPattern{Color: color.RGBA{R: 255, A: 255}}

	if err := ctx.Fill(surface.OpSource, red, rectPath(2, 2, 8, 8), FillParams{Rule: sweep.NonZero, Tolerance: 0.5}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if c := s.Image().RGBAAt(5, 5); c.R != 255 || c.A != 255 {
		t.Errorf("interior pixel = %v, want opaque red", c)
	}
	if c := s.Image().RGBAAt(0, 0); c.A != 0 {
		t.Errorf("exterior pixel alpha = %d, want 0", c.A)
	}
}

// TestScenarioEPushClipThenFill is spec scenario E end to end through the
// facade: clipping to rect(0,0,10,10) then filling rect(5,5,20,20) leaves a
// single clip-stack entry and only paints the intersection.
func TestScenarioEPushClipThenFill(t *testing.T) {
	s := surface.NewImageSurface(30, 30)
	ctx := New(s)
	ctx.Clip.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})

	ctx.PushClip(rectPath(0, 0, 10, 10), sweep.NonZero, 0.5, clip.AntialiasDefault)

	red := surface.SolidPattern{Color: color.RGBA{R: 255, A: 255}}
	if err := ctx.Fill(surface.OpSource, red, rectPath(5, 5, 25, 25), FillParams{Rule: sweep.NonZero, Tolerance: 0.5}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	if c := s.Image().RGBAAt(7, 7); c.R != 255 || c.A != 255 {
		t.Errorf("pixel inside the clip/fill intersection = %v, want opaque red", c)
	}
	if c := s.Image().RGBAAt(2, 2); c.A != 0 {
		t.Errorf("pixel outside the fill but inside the clip = alpha %d, want 0", c.A)
	}
	if c := s.Image().RGBAAt(15, 15); c.A != 0 {
		t.Errorf("pixel inside the fill but outside the clip = alpha %d, want 0", c.A)
	}
}

func TestPushClipThenPopClipRestoresPreviousExtents(t *testing.T) {
	s := surface.NewImageSurface(30, 30)
	ctx := New(s)
	ctx.Clip.InitRect(fixed.IntRect{X: 0, Y: 0, W: 20, H: 20})

	before := ctx.Clip.Extents(s.GetExtents())
	ctx.PushClip(rectPath(2, 2, 8, 8), sweep.NonZero, 0.5, clip.AntialiasDefault)
	ctx.PopClip()
	after := ctx.Clip.Extents(s.GetExtents())

	if before != after {
		t.Errorf("clip extents after Push/PopClip = %v, want %v", after, before)
	}
}

func TestStrokeUsesNonZeroWindingRegardlessOfParamsRule(t *testing.T) {
	s := surface.NewImageSurface(20, 20)
	ctx := New(s)
	p := path.New()
	p.MoveTo(fixed.PtFromFloat64(2, 10))
	p.LineTo(fixed.PtFromFloat64(18, 10))

	red := surface.SolidPattern{Color: color.RGBA{R: 255, A: 255}}
	style := stroke.Style{Width: 2, Cap: stroke.CapButt, Join: stroke.JoinMiter, MiterLimit: 4}
	if err := ctx.Stroke(surface.OpSource, red, p, StrokeParams{Style: style, Tolerance: 0.25}); err != nil {
		t.Fatalf("Stroke() error = %v", err)
	}
	if c := s.Image().RGBAAt(10, 10); c.R != 255 || c.A != 255 {
		t.Errorf("pixel along the stroked line = %v, want opaque red", c)
	}
}

func TestStrokeRejectsNonPositiveTolerance(t *testing.T) {
	ctx := New(surface.NewImageSurface(20, 20))
	p := path.New()
	p.MoveTo(fixed.PtFromFloat64(0, 0))
	p.LineTo(fixed.PtFromFloat64(10, 0))
	style := stroke.Style{Width: 2, Cap: stroke.CapButt, Join: stroke.JoinMiter, MiterLimit: 4}

	err := ctx.Stroke(surface.OpSource, surface.SolidPattern{Color: color.RGBA{A: 255}}, p, StrokeParams{Style: style, Tolerance: -1})
	if !errors.Is(err, geomerr.ErrInvalidTolerance) {
		t.Errorf("Stroke() with negative tolerance error = %v, want wrapping ErrInvalidTolerance", err)
	}
}

func TestTrapDumpWritesToConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "traps.log")
	old := trapDumpFile
	trapDumpFile = dumpPath
	defer func() { trapDumpFile = old }()

	s := surface.NewImageSurface(20, 20)
	ctx := New(s)
	red := surface.SolidPattern{Color: color.RGBA{R: 255, A: 255}}
	if err := ctx.Fill(surface.OpSource, red, rectPath(2, 2, 8, 8), FillParams{Rule: sweep.NonZero, Tolerance: 0.5}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	data, err := os.ReadFile(dumpPath)
	if err != nil {
		t.Fatalf("reading trap dump file: %v", err)
	}
	if len(data) == 0 {
		t.Error("trap dump file is empty, want a dumped trapezoid line")
	}
}

func TestTrapDumpNoopWhenUnset(t *testing.T) {
	old := trapDumpFile
	trapDumpFile = ""
	defer func() { trapDumpFile = old }()

	s := surface.NewImageSurface(20, 20)
	ctx := New(s)
	red := surface.SolidPattern{Color: color.RGBA{R: 255, A: 255}}
	if err := ctx.Fill(surface.OpSource, red, rectPath(2, 2, 8, 8), FillParams{Rule: sweep.NonZero, Tolerance: 0.5}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
}
