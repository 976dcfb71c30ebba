// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clip

import (
	"testing"

	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/path"
	"github.com/gogpu/geomcore/sweep"
)

func rectanglePathAt(x0, y0, x1, y1 float64) *path.Path {
	p := path.New()
	p.MoveTo(fixed.PtFromFloat64(x0, y0))
	p.LineTo(fixed.PtFromFloat64(x1, y0))
	p.LineTo(fixed.PtFromFloat64(x1, y1))
	p.LineTo(fixed.PtFromFloat64(x0, y1))
	p.ClosePath()
	return p
}

func TestNewStackIsUnclipped(t *testing.T) {
	s := NewStack()
	if !s.IsUnclipped() {
		t.Error("NewStack().IsUnclipped() = false, want true")
	}
	if s.AllClipped() {
		t.Error("NewStack().AllClipped() = true, want false")
	}
}

func TestInitRectEmptyBecomesAllClipped(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{})
	if !s.AllClipped() {
		t.Error("InitRect() with an empty rect did not set AllClipped")
	}
}

func TestInitRectSetsExtents(t *testing.T) {
	s := NewStack()
	r := fixed.IntRect{X: 0, Y: 0, W: 10, H: 10}
	s.InitRect(r)
	if s.IsUnclipped() {
		t.Error("InitRect() left the stack unclipped")
	}
	if ext := s.Extents(fixed.IntRect{X: 0, Y: 0, W: 100, H: 100}); ext != r {
		t.Errorf("Extents() = %v, want %v", ext, r)
	}
}

// TestScenarioEClipThenFill is spec scenario E on the clip stack alone:
// clipping to rect(0,0,10,10) and then pushing the fill rect(5,5,20,20)
// as a second clip level leaves two stack entries and a get_region that
// succeeds with exactly the one rectangle (5,5,5,5).
func TestScenarioEClipThenFill(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})

	fillPath := rectanglePathAt(5, 5, 25, 25)
	s.Clip(fillPath, sweep.NonZero, 0.5, AntialiasDefault)

	depth := 0
	for l := s.top; l != nil; l = l.prev {
		depth++
	}
	if depth != 2 {
		t.Fatalf("stack depth = %d, want 2 (the initial rect plus the fill clip)", depth)
	}

	reg, err := s.GetRegion()
	if err != nil {
		t.Fatalf("GetRegion() error = %v", err)
	}
	rects := reg.Rects()
	if len(rects) != 1 {
		t.Fatalf("GetRegion() rects = %v, want exactly one rectangle", rects)
	}
	want := fixed.IntRect{X: 5, Y: 5, W: 5, H: 5}
	if rects[0] != want {
		t.Errorf("GetRegion() rect = %v, want %v", rects[0], want)
	}
}

// TestClipIdempotence is invariant 5: clip(P); clip(P) has the same
// extents as clip(P) alone.
func TestClipIdempotence(t *testing.T) {
	once := NewStack()
	once.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	once.Clip(rectanglePathAt(0, 0, 10, 10), sweep.NonZero, 0.5, AntialiasDefault)

	twice := NewStack()
	twice.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	twice.Clip(rectanglePathAt(0, 0, 10, 10), sweep.NonZero, 0.5, AntialiasDefault)
	twice.Clip(rectanglePathAt(0, 0, 10, 10), sweep.NonZero, 0.5, AntialiasDefault)

	full := fixed.IntRect{X: 0, Y: 0, W: 100, H: 100}
	if once.Extents(full) != twice.Extents(full) {
		t.Errorf("extents differ after redundant re-clip: %v vs %v", once.Extents(full), twice.Extents(full))
	}
}

func TestClipEmptyFillAllClips(t *testing.T) {
	s := NewStack()
	line := path.New()
	line.MoveTo(fixed.PtFromFloat64(0, 0))
	line.LineTo(fixed.PtFromFloat64(10, 0))
	s.Clip(line, sweep.NonZero, 0.5, AntialiasDefault)
	if !s.AllClipped() {
		t.Error("Clip() with a zero-area fill did not set AllClipped")
	}
}

func TestClipDisjointRectsAllClips(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	s.Clip(rectanglePathAt(100, 100, 110, 110), sweep.NonZero, 0.5, AntialiasDefault)
	if !s.AllClipped() {
		t.Error("Clip() with a disjoint rectangle did not set AllClipped")
	}
}

func TestPopRestoresPreviousLevel(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	s.Clip(rectanglePathAt(2, 2, 8, 8), sweep.NonZero, 0.5, AntialiasDefault)
	s.Pop()

	full := fixed.IntRect{X: 0, Y: 0, W: 100, H: 100}
	want := fixed.IntRect{X: 0, Y: 0, W: 10, H: 10}
	if s.Extents(full) != want {
		t.Errorf("Extents() after Pop = %v, want %v", s.Extents(full), want)
	}
}

func TestCloseReturnsToUnclipped(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	s.Close()
	if !s.IsUnclipped() {
		t.Error("Close() did not return the stack to unclipped")
	}
}

func TestApplyClipReplaysLevels(t *testing.T) {
	src := NewStack()
	src.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})

	dst := NewStack()
	dst.ApplyClip(src)

	full := fixed.IntRect{X: 0, Y: 0, W: 100, H: 100}
	if dst.Extents(full) != src.Extents(full) {
		t.Errorf("ApplyClip() extents = %v, want %v", dst.Extents(full), src.Extents(full))
	}
}

func TestApplyClipAllClippedPropagates(t *testing.T) {
	src := NewStack()
	src.InitRect(fixed.IntRect{})
	dst := NewStack()
	dst.ApplyClip(src)
	if !dst.AllClipped() {
		t.Error("ApplyClip() of an all-clipped stack did not propagate AllClipped")
	}
}

func TestInitCopyTransformedIdentitySharesLevels(t *testing.T) {
	src := NewStack()
	src.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	copied := InitCopyTransformed(src, fixed.Identity())

	full := fixed.IntRect{X: 0, Y: 0, W: 100, H: 100}
	if copied.Extents(full) != src.Extents(full) {
		t.Errorf("identity InitCopyTransformed extents = %v, want %v", copied.Extents(full), src.Extents(full))
	}
}

func TestInitCopyTransformedIntegerTranslation(t *testing.T) {
	src := NewStack()
	src.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	copied := InitCopyTransformed(src, fixed.Translate(5, 5))

	full := fixed.IntRect{X: 0, Y: 0, W: 100, H: 100}
	want := fixed.IntRect{X: 5, Y: 5, W: 10, H: 10}
	if copied.Extents(full) != want {
		t.Errorf("translated InitCopyTransformed extents = %v, want %v", copied.Extents(full), want)
	}
}

func TestInitCopyTransformedGeneralRebuildsLevels(t *testing.T) {
	src := NewStack()
	src.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	scale := fixed.Matrix{XX: 2, YY: 2}
	copied := InitCopyTransformed(src, scale)

	full := fixed.IntRect{X: 0, Y: 0, W: 100, H: 100}
	want := fixed.IntRect{X: 0, Y: 0, W: 20, H: 20}
	if copied.Extents(full) != want {
		t.Errorf("scaled InitCopyTransformed extents = %v, want %v", copied.Extents(full), want)
	}
}

func TestInitCopyTransformedAllClippedPropagates(t *testing.T) {
	src := NewStack()
	src.InitRect(fixed.IntRect{})
	copied := InitCopyTransformed(src, fixed.Translate(1, 1))
	if !copied.AllClipped() {
		t.Error("InitCopyTransformed() of an all-clipped stack did not propagate AllClipped")
	}
}

func TestGetRegionUnclippedReturnsNil(t *testing.T) {
	s := NewStack()
	reg, err := s.GetRegion()
	if err != nil {
		t.Fatalf("GetRegion() error = %v on an unclipped stack", err)
	}
	if reg != nil {
		t.Errorf("GetRegion() = %v on an unclipped stack, want nil", reg)
	}
}

func TestGetRegionAllClippedReturnsEmpty(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{})
	reg, err := s.GetRegion()
	if err != nil {
		t.Fatalf("GetRegion() error = %v", err)
	}
	if !reg.IsEmpty() {
		t.Error("GetRegion() of an all-clipped stack is not empty")
	}
}

func TestGetSurfaceProducesOpaqueInterior(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	img := s.GetSurface(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})

	if a := img.AlphaAt(5, 5).A; a != 255 {
		t.Errorf("interior alpha = %d, want 255", a)
	}
}

func TestResetStaticDataDrainsPool(t *testing.T) {
	// Exercise the pool through several push/pop cycles, then ensure
	// ResetStaticData runs without panicking (it empties the shared pool
	// used by getLevel/releaseLevel).
	s := NewStack()
	for i := 0; i < 5; i++ {
		s.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
		s.Pop()
	}
	ResetStaticData()
}

func TestDropCacheClearsResolvedRegion(t *testing.T) {
	s := NewStack()
	s.InitRect(fixed.IntRect{X: 0, Y: 0, W: 10, H: 10})
	if _, err := s.GetRegion(); err != nil {
		t.Fatalf("GetRegion() error = %v", err)
	}
	if !s.top.hasRegion {
		t.Fatal("expected the region cache to be populated before DropCache")
	}
	s.DropCache()
	if s.top.hasRegion {
		t.Error("DropCache() did not clear the region cache")
	}
}
