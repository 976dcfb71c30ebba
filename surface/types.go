// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "image/color"

// Operator selects the Porter-Duff compositing rule a fill or box
// operation uses, carried over from the teacher's BlendMode but renamed
// and extended to the operator set the clip engine's alpha-mask
// compositing and the filler's ordinary drawing both need (OP_OVER for
// drawing, OP_IN for clip-mask composition).
type Operator uint8

const (
	OpClear Operator = iota
	OpSource
	OpOver
	OpIn
	OpOut
	OpAtop
	OpDest
	OpDestOver
	OpDestIn
	OpDestOut
	OpDestAtop
	OpXor
	OpAdd
)

// Content describes what channels a similar surface needs to carry,
// used by create_similar_solid to pick the cheapest backing pixel
// format for a given operation (e.g. an alpha-only mask surface for
// clip caching needs no color channels).
type Content uint8

const (
	ContentColor Content = iota
	ContentAlpha
	ContentColorAlpha
)

// Pattern is a color source that can vary across the surface: the
// `source` argument of fill_trapezoids. Kept from the teacher's pattern
// abstraction; SolidPattern is the only source the core itself ever
// constructs (gradients and image patterns are a collaborator concern,
// not the geometric core's).
type Pattern interface {
	ColorAt(x, y float64) color.Color
}

// SolidPattern is a Pattern that returns a single color everywhere.
type SolidPattern struct {
	Color color.Color
}

// ColorAt implements Pattern.
func (p SolidPattern) ColorAt(_, _ float64) color.Color { return p.Color }
