// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/trap"
)

// Surface is the narrow vtable the geometric core draws through (spec
// 6.3). The core never interprets pixel data itself -- it only asks a
// Surface to consume the trapezoids or boxes it produced.
type Surface interface {
	// FillTrapezoids composites source through traps onto the surface
	// using op.
	FillTrapezoids(op Operator, source Pattern, traps *trap.Array) error

	// FillBoxes composites a solid color through boxes onto the surface
	// using op; the rectangular-sweep fast path's output.
	FillBoxes(op Operator, c color.Color, boxes []fixed.IntRect) error

	// CreateSimilarSolid returns a new surface of the given content kind
	// and size, pre-filled with c -- used by the clip engine to build a
	// starting white alpha-mask canvas without depending on a concrete
	// surface type.
	CreateSimilarSolid(content Content, w, h int, c color.Color) (Surface, error)

	// AcquireSourceImage exposes this surface's pixels for reading when
	// it is used as a source elsewhere, returning an opaque extra token
	// the backend may need to release any temporary resources.
	AcquireSourceImage() (img image.Image, extra any, err error)

	// ReleaseSourceImage releases resources obtained by a prior
	// AcquireSourceImage call.
	ReleaseSourceImage(img image.Image, extra any)

	// GetExtents returns the surface's integer bounding rectangle.
	GetExtents() fixed.IntRect
}
