// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/trap"
)

// ImageSurface is a reference Surface backed by *image.RGBA. It
// rasterizes trapezoids with the same half-open pixel-centre sampling
// rule the clip engine's alpha masks use, and composites every pixel
// through the full Porter-Duff operator set so fill_trapezoids/
// fill_boxes behave identically regardless of which op the caller
// chose (OP_OVER for ordinary drawing, OP_IN for clip-mask work, etc).
type ImageSurface struct {
	img *image.RGBA
}

// NewImageSurface returns a fully transparent surface of the given size.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image exposes the backing pixels, e.g. for test assertions or to hand
// to an encoder outside this module's scope.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// GetExtents implements Surface.
func (s *ImageSurface) GetExtents() fixed.IntRect {
	b := s.img.Bounds()
	return fixed.IntRect{X: int32(b.Min.X), Y: int32(b.Min.Y), W: int32(b.Dx()), H: int32(b.Dy())}
}

// FillTrapezoids implements Surface.
func (s *ImageSurface) FillTrapezoids(op Operator, source Pattern, traps *trap.Array) error {
	b := s.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		centerY := fixed.Int(y)<<fixed.Shift + fixed.One/2
		for _, t := range traps.Traps {
			if centerY < t.Top || centerY >= t.Bottom {
				continue
			}
			left, right := t.Left.XAtY(centerY), t.Right.XAtY(centerY)
			for x := b.Min.X; x < b.Max.X; x++ {
				centerX := fixed.Int(x)<<fixed.Shift + fixed.One/2
				if centerX < left || centerX >= right {
					continue
				}
				s.composite(op, x, y, source.ColorAt(float64(x)+0.5, float64(y)+0.5))
			}
		}
	}
	return nil
}

// FillBoxes implements Surface, the rectangular sweep's fast path.
func (s *ImageSurface) FillBoxes(op Operator, c color.Color, boxes []fixed.IntRect) error {
	for _, box := range boxes {
		for y := box.Y; y < box.Bottom(); y++ {
			for x := box.X; x < box.Right(); x++ {
				s.composite(op, int(x), int(y), c)
			}
		}
	}
	return nil
}

// CreateSimilarSolid implements Surface.
func (s *ImageSurface) CreateSimilarSolid(content Content, w, h int, c color.Color) (Surface, error) {
	out := NewImageSurface(w, h)
	fill := c
	if content == ContentAlpha {
		_, _, _, a := c.RGBA()
		fill = color.RGBA64{A: uint16(a)}
	}
	b := out.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.img.Set(x, y, fill)
		}
	}
	return out, nil
}

// AcquireSourceImage implements Surface.
func (s *ImageSurface) AcquireSourceImage() (image.Image, any, error) {
	return s.img, nil, nil
}

// ReleaseSourceImage implements Surface; ImageSurface holds no temporary
// resources to release.
func (s *ImageSurface) ReleaseSourceImage(image.Image, any) {}

func (s *ImageSurface) composite(op Operator, x, y int, src color.Color) {
	dst := s.img.RGBAAt(x, y)
	sr, sg, sb, sa := src.RGBA()
	dr, dg, db, da := dst.RGBA()
	fa, fb := operatorFactors(op, sa, da)
	s.img.SetRGBA(x, y, color.RGBA{
		R: uint8(blendChannel(sr, dr, fa, fb) >> 8),
		G: uint8(blendChannel(sg, dg, fa, fb) >> 8),
		B: uint8(blendChannel(sb, db, fa, fb) >> 8),
		A: uint8(blendChannel(sa, da, fa, fb) >> 8),
	})
}

func blendChannel(s, d, fa, fb uint32) uint32 {
	v := (uint64(s)*uint64(fa) + uint64(d)*uint64(fb)) / 65535
	if v > 65535 {
		v = 65535
	}
	return uint32(v)
}

// operatorFactors returns the classic Porter-Duff (Fa, Fb) source/dest
// scale factors for op, as 16-bit fractions, given the source and
// destination alpha at this pixel (both already premultiplied 16-bit
// values from color.Color.RGBA).
func operatorFactors(op Operator, sa, da uint32) (fa, fb uint32) {
	const full = 65535
	switch op {
	case OpClear:
		return 0, 0
	case OpSource:
		return full, 0
	case OpIn:
		return da, 0
	case OpOut:
		return full - da, 0
	case OpAtop:
		return da, full - sa
	case OpDest:
		return 0, full
	case OpDestOver:
		return full - da, full
	case OpDestIn:
		return 0, sa
	case OpDestOut:
		return 0, full - sa
	case OpDestAtop:
		return full - da, sa
	case OpXor:
		return full - da, full - sa
	case OpAdd:
		return full, full
	default: // OpOver
		return full, full - sa
	}
}
