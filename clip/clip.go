// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clip implements the clip engine (component C13): a stack of
// clip paths, most-recent first, that resolves to an integer Region when
// representable and falls back to a cached alpha mask otherwise.
//
// Grounded on the teacher's internal/clip/stack.go for the overall
// push/pop/bounds-intersection shape (ClipStack.PushRect/PushPath/Pop/
// Bounds), generalised here from the teacher's float64 Rect/mask-only
// model to fixed-point geometry with region resolution, structural
// dedup, and the bounded freed-pool named in spec 3.5. The freed-pool
// itself reuses internal/arena.BoundedPool, already grounded on
// cairo-freelist.c.
package clip

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/geomcore/fill"
	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/geomerr"
	"github.com/gogpu/geomcore/internal/arena"
	"github.com/gogpu/geomcore/path"
	"github.com/gogpu/geomcore/region"
	"github.com/gogpu/geomcore/sweep"
)

// Antialias selects the rasterization quality of a clip path's alpha
// mask, when one must be produced.
type Antialias uint8

const (
	AntialiasDefault Antialias = iota
	AntialiasNone
	AntialiasBest
)

// Level is one entry of the clip stack: a cloned sub-path plus the
// parameters it was clipped with, its extents, and lazily-computed
// caches. Levels are immutable once pushed except for their caches,
// which is what lets two Stacks safely share a tail of the same chain.
type Level struct {
	prev *Level

	path      *path.Path
	rule      sweep.FillRule
	tolerance float64
	antialias Antialias
	extents   fixed.IntRect
	refCount  int32

	hasRegion         bool
	regionUnsupported bool
	region            *region.Region
	surface           *image.Alpha
}

var levelPool arena.BoundedPool[Level]

func getLevel() *Level {
	if l := levelPool.Get(); l != nil {
		*l = Level{}
		return l
	}
	return &Level{}
}

func releaseLevel(l *Level) {
	l.refCount--
	if l.refCount <= 0 {
		prev := l.prev
		*l = Level{}
		levelPool.Put(l)
		if prev != nil {
			releaseLevel(prev)
		}
	}
}

// ResetStaticData drains the freed-pool, per spec's reset_static_data.
func ResetStaticData() { levelPool.Drain() }

// Stack is the clip state attached to one drawing context: either
// unclipped (top == nil), clipped to a chain of Levels, or ALL_CLIPPED
// (a terminal sentinel reachable from either state, never leaving it
// short of a fresh Stack).
type Stack struct {
	top        *Level
	allClipped bool
}

// NewStack returns an unclipped stack.
func NewStack() *Stack { return &Stack{} }

// AllClipped reports whether the stack is in the terminal all-clipped
// state, which short-circuits every drawing operation.
func (s *Stack) AllClipped() bool { return s.allClipped }

// IsUnclipped reports whether no clip has ever been pushed (distinct
// from AllClipped, its opposite terminal state).
func (s *Stack) IsUnclipped() bool { return !s.allClipped && s.top == nil }

// Extents returns the current clip's integer bounding rectangle, or full
// if the stack is unclipped.
func (s *Stack) Extents(full fixed.IntRect) fixed.IntRect {
	if s.allClipped {
		return fixed.IntRect{}
	}
	if s.top == nil {
		return full
	}
	return s.top.extents
}

func (s *Stack) push(l *Level) {
	l.prev = s.top
	s.top = l
}

// InitRect clips to the integer rectangle r directly, without going
// through a general path: fill-rule non-zero, tolerance one device unit,
// antialiasing off, matching the common "clip to a plain box" fast path.
func (s *Stack) InitRect(r fixed.IntRect) {
	if r.IsEmpty() {
		s.allClipped = true
		return
	}
	l := getLevel()
	l.path = rectPath(r)
	l.rule = sweep.NonZero
	l.tolerance = 1.0
	l.antialias = AntialiasNone
	l.extents = r
	l.refCount = 1
	s.push(l)
}

func rectPath(r fixed.IntRect) *path.Path {
	p := path.New()
	x0, y0 := fixed.Int(r.X)<<fixed.Shift, fixed.Int(r.Y)<<fixed.Shift
	x1, y1 := fixed.Int(r.Right())<<fixed.Shift, fixed.Int(r.Bottom())<<fixed.Shift
	p.MoveTo(fixed.Pt(x0, y0))
	p.LineTo(fixed.Pt(x1, y0))
	p.LineTo(fixed.Pt(x1, y1))
	p.LineTo(fixed.Pt(x0, y1))
	p.ClosePath()
	return p
}

// Clip intersects the current clip with p, following the six-step
// procedure of spec 4.8 exactly: short-circuit on all_clipped or an
// empty fill, skip redundant pushes (structural equality, or a box that
// is a superset of the current extents), and otherwise push a new level.
func (s *Stack) Clip(p *path.Path, rule sweep.FillRule, tolerance float64, aa Antialias) {
	if s.allClipped {
		return
	}
	if p.FillIsEmpty() {
		s.allClipped = true
		return
	}
	if s.top != nil && redundant(s.top, p, rule) {
		return
	}

	newExtents := outerIntRect(p.ApproximateClipExtents())
	extents := newExtents
	if s.top != nil {
		extents = extents.IntersectRect(s.top.extents)
	}
	if extents.IsEmpty() {
		s.allClipped = true
		return
	}

	if s.top != nil {
		if box, ok := p.IsBox(); ok && containsIntRect(box, s.top.extents) {
			return
		}
	}

	l := getLevel()
	l.path = p.Clone()
	l.rule = rule
	l.tolerance = tolerance
	l.antialias = aa
	l.extents = extents
	l.refCount = 1
	s.push(l)
}

// redundant reports whether pushing p with rule atop top would refine
// nothing: the two paths are structurally identical, and either the fill
// rule also matches or p is rectilinear (where winding vs. even-odd makes
// no difference to a single closed axis-aligned loop).
func redundant(top *Level, p *path.Path, rule sweep.FillRule) bool {
	if !top.path.Equal(p) {
		return false
	}
	return top.rule == rule || p.IsRectilinear()
}

func outerIntRect(b fixed.Box) fixed.IntRect {
	x0, y0 := b.P1.X.Floor(), b.P1.Y.Floor()
	x1, y1 := b.P2.X.Ceil(), b.P2.Y.Ceil()
	if x1 <= x0 || y1 <= y0 {
		return fixed.IntRect{}
	}
	return fixed.IntRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func containsIntRect(b fixed.Box, r fixed.IntRect) bool {
	rb := fixed.Box{
		P1: fixed.Pt(fixed.Int(r.X)<<fixed.Shift, fixed.Int(r.Y)<<fixed.Shift),
		P2: fixed.Pt(fixed.Int(r.Right())<<fixed.Shift, fixed.Int(r.Bottom())<<fixed.Shift),
	}
	return b.Contains(rb)
}

// Pop removes the topmost clip level, releasing it toward the freed-pool
// once no other Stack shares it. Lower levels keep whatever caches they
// already resolved, since those were computed independent of the level
// being removed.
func (s *Stack) Pop() {
	if s.top == nil {
		return
	}
	old := s.top
	s.top = old.prev
	if s.top != nil {
		// The stack takes over old's reference to the level below it.
		s.top.refCount++
	}
	releaseLevel(old)
}

// Close pops every level, returning the stack to unclipped.
func (s *Stack) Close() {
	for s.top != nil {
		s.Pop()
	}
	s.allClipped = false
}

// ApplyClip replays other's stack from bottom to top onto s, per spec's
// apply_clip.
func (s *Stack) ApplyClip(other *Stack) {
	if other.allClipped {
		s.allClipped = true
		return
	}
	for _, l := range other.levelsBottomUp() {
		s.Clip(l.path, l.rule, l.tolerance, l.antialias)
	}
}

func (s *Stack) levelsBottomUp() []*Level {
	var out []*Level
	for l := s.top; l != nil; l = l.prev {
		out = append(out, l)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// InitCopyTransformed deep-clones other under M: a no-op reference share
// when M is identity (safe because Levels are append-only except for
// their caches), a cheap clone-and-translate when M is an integer
// translation (each cached region and the cached alpha mask survive,
// translated), and a full re-clip through the filler and general sweep
// otherwise, discarding every cache.
func InitCopyTransformed(other *Stack, m fixed.Matrix) *Stack {
	if other.allClipped {
		return &Stack{allClipped: true}
	}
	if m.IsIdentity() {
		for l := other.top; l != nil; l = l.prev {
			l.refCount++
		}
		return &Stack{top: other.top}
	}
	ns := &Stack{}
	if m.IsIntegerTranslation() {
		tx, ty := fixed.FromFloat64(m.X0), fixed.FromFloat64(m.Y0)
		var prev *Level
		for _, l := range other.levelsBottomUp() {
			c := getLevel()
			c.path = l.path.Clone()
			c.path.Translate(tx, ty)
			c.rule, c.tolerance, c.antialias = l.rule, l.tolerance, l.antialias
			c.extents = translateIntRect(l.extents, tx.Floor(), ty.Floor())
			c.refCount = 1
			if l.hasRegion {
				c.region = translateRegion(l.region, tx.Floor(), ty.Floor())
				c.hasRegion = true
			}
			if l.surface != nil {
				c.surface = translateAlpha(l.surface, int(tx.Floor()), int(ty.Floor()))
			}
			c.prev = prev
			prev = c
		}
		ns.top = prev
		return ns
	}
	for _, l := range other.levelsBottomUp() {
		p := l.path.Clone()
		p.Transform(m)
		ns.Clip(p, l.rule, l.tolerance, l.antialias)
	}
	return ns
}

func translateIntRect(r fixed.IntRect, dx, dy int32) fixed.IntRect {
	return fixed.IntRect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func translateRegion(r *region.Region, dx, dy int32) *region.Region {
	rects := make([]fixed.IntRect, len(r.Rects()))
	for i, rect := range r.Rects() {
		rects[i] = translateIntRect(rect, dx, dy)
	}
	return region.FromRects(rects)
}

// translateAlpha shifts an alpha mask by (dx, dy), preserving its pixel
// content -- used to carry a cached clip mask across an integer-
// translation CTM change without re-rasterizing.
func translateAlpha(src *image.Alpha, dx, dy int) *image.Alpha {
	b := src.Bounds().Add(image.Pt(dx, dy))
	dst := image.NewAlpha(b)
	draw.Draw(dst, b, src, src.Bounds().Min, draw.Src)
	return dst
}

// GetRegion walks the stack bottom-up and returns the intersection of
// every level as an integer Region, provided every level's fill is
// losslessly representable that way (rectilinear, integer-aligned, and
// fill-rule compatible). Failing levels cache the negative result so
// repeated queries don't re-derive it.
func (s *Stack) GetRegion() (*region.Region, error) {
	if s.allClipped {
		return region.Empty(), nil
	}
	if s.top == nil {
		return nil, nil
	}
	return s.resolveRegion(s.top)
}

func (s *Stack) resolveRegion(l *Level) (*region.Region, error) {
	if l.hasRegion {
		return l.region, nil
	}
	if l.regionUnsupported {
		return nil, geomerr.ErrClipNotRepresentable
	}
	own, ok := levelAsRegion(l)
	if !ok {
		l.regionUnsupported = true
		return nil, geomerr.ErrClipNotRepresentable
	}
	result := own
	if l.prev != nil {
		below, err := s.resolveRegion(l.prev)
		if err != nil {
			l.regionUnsupported = true
			return nil, err
		}
		result = own.Intersect(below)
	}
	l.region = result
	l.hasRegion = true
	return result, nil
}

func levelAsRegion(l *Level) (*region.Region, bool) {
	if !l.path.IsRectilinear() {
		return nil, false
	}
	if box, ok := l.path.IsBox(); ok {
		return region.FromRect(outerIntRect(box)), true
	}
	poly := fill.Fill(l.path, l.tolerance*l.tolerance, nil, path.Forward)
	traps := sweep.RectangularTessellate(poly, l.rule)
	if !traps.IsRectangular {
		return nil, false
	}
	rects := make([]fixed.IntRect, 0, traps.Len())
	for _, t := range traps.Traps {
		rects = append(rects, fixed.IntRect{
			X: t.Left.P1.X.Floor(),
			Y: t.Top.Floor(),
			W: (t.Right.P1.X - t.Left.P1.X).Floor(),
			H: (t.Bottom - t.Top).Floor(),
		})
	}
	return region.FromRects(rects), true
}

// GetSurface returns (and caches, per level) an alpha-mask surface sized
// to extents, built by compositing each level's own mask onto a white
// canvas with Porter-Duff IN, bottom level first -- matching spec's
// "render each clip path successively with OP_IN starting from a white
// region" rule.
func (s *Stack) GetSurface(extents fixed.IntRect) *image.Alpha {
	if s.allClipped || extents.IsEmpty() {
		return image.NewAlpha(image.Rectangle{})
	}
	img := image.NewAlpha(image.Rect(int(extents.X), int(extents.Y), int(extents.Right()), int(extents.Bottom())))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, l := range s.levelsBottomUp() {
		mask := l.surface
		if mask == nil {
			mask = rasterizeLevel(l, extents)
			l.surface = mask
		}
		compositeIn(img, mask)
	}
	return img
}

func rasterizeLevel(l *Level, extents fixed.IntRect) *image.Alpha {
	poly := fill.Fill(l.path, l.tolerance*l.tolerance, nil, path.Forward)
	traps := sweep.GeneralTessellate(poly, l.rule)
	img := image.NewAlpha(image.Rect(int(extents.X), int(extents.Y), int(extents.Right()), int(extents.Bottom())))
	for y := extents.Y; y < extents.Bottom(); y++ {
		centerY := fixed.Int(y)<<fixed.Shift + fixed.One/2
		for _, t := range traps.Traps {
			if centerY < t.Top || centerY >= t.Bottom {
				continue
			}
			left, right := t.Left.XAtY(centerY), t.Right.XAtY(centerY)
			for x := extents.X; x < extents.Right(); x++ {
				centerX := fixed.Int(x)<<fixed.Shift + fixed.One/2
				if centerX >= left && centerX < right {
					img.SetAlpha(int(x), int(y), color.Alpha{A: 255})
				}
			}
		}
	}
	return img
}

// compositeIn applies Porter-Duff IN in place: dst = dst * src / 255,
// pixel by pixel, over dst's own bounds (both images are always sized to
// the same stack extents by GetSurface's construction).
func compositeIn(dst, src *image.Alpha) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := uint16(dst.AlphaAt(x, y).A)
			a := uint16(src.AlphaAt(x, y).A)
			dst.SetAlpha(x, y, color.Alpha{A: uint8(d * a / 255)})
		}
	}
}

// DropCache clears every level's cached region and alpha mask. Called
// whenever a user-visible mutation invalidates them (a transform change
// routed through InitCopyTransformed's general path already builds fresh
// levels; this is for callers that mutate a level's parameters in
// place, which this package does not do internally but exposes for
// collaborators that do).
func (s *Stack) DropCache() {
	for l := s.top; l != nil; l = l.prev {
		l.hasRegion = false
		l.regionUnsupported = false
		l.region = nil
		l.surface = nil
	}
}
