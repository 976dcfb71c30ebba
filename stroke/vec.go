// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import "math"

// vec2 is a user-space float64 vector, used for the offset/join/cap math
// that the stroker performs before quantising back to fixed.Point. The
// teacher's expander.go does all of its geometry in float64 Point/Vec2
// for the same reason: join and miter computation is far simpler without
// fixed-point rounding at every step.
type vec2 struct{ X, Y float64 }

func (v vec2) add(w vec2) vec2   { return vec2{X: v.X + w.X, Y: v.Y + w.Y} }
func (v vec2) sub(w vec2) vec2   { return vec2{X: v.X - w.X, Y: v.Y - w.Y} }
func (v vec2) scale(s float64) vec2 { return vec2{X: v.X * s, Y: v.Y * s} }
func (v vec2) neg() vec2         { return vec2{X: -v.X, Y: -v.Y} }
func (v vec2) dot(w vec2) float64 { return v.X*w.X + v.Y*w.Y }
func (v vec2) cross(w vec2) float64 { return v.X*w.Y - v.Y*w.X }
func (v vec2) length() float64   { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v vec2) lengthSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v vec2) perp() vec2        { return vec2{X: -v.Y, Y: v.X} }
func (v vec2) angle() float64    { return math.Atan2(v.Y, v.X) }
