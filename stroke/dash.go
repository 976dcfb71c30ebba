// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import "math"

// Dash describes a dash pattern: alternating "on"/"off" lengths in
// user-space units, plus a starting offset. Recreated here in the same
// shape as the teacher's former top-level dash.go (Array/Offset fields,
// NewDash/WithOffset/PatternLength/IsDashed/Clone), since stroking with
// dashes (spec 4.4) needs exactly that API and the teacher's own stroke
// expander does not implement dashing at all.
type Dash struct {
	Array  []float64
	Offset float64
}

// NewDash builds a Dash from the given on/off lengths, normalising
// negative entries via math.Abs. Returns nil if every entry is zero or
// no lengths were given, matching a "solid line" request.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}
	arr := make([]float64, len(lengths))
	allZero := true
	for i, v := range lengths {
		arr[i] = math.Abs(v)
		if arr[i] != 0 {
			allZero = false
		}
	}
	if allZero {
		return nil
	}
	return &Dash{Array: arr}
}

// WithOffset returns a copy of d with the given starting offset.
func (d *Dash) WithOffset(offset float64) *Dash {
	c := *d
	c.Offset = offset
	return &c
}

// PatternLength returns the total length of one full on/off cycle. An
// odd-length array is conceptually doubled (on, off, on -> on, off, on,
// on, off, on) so the pattern alternates correctly forever.
func (d *Dash) PatternLength() float64 {
	total := 0.0
	for _, v := range d.Array {
		total += v
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether d describes an actual dash pattern.
func (d *Dash) IsDashed() bool { return d != nil && len(d.Array) > 0 }

// Clone returns a deep copy of d.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	c := &Dash{Array: append([]float64(nil), d.Array...), Offset: d.Offset}
	return c
}

// cursor walks a dash pattern, tracking which entry is "on" and how much
// of it remains, without resetting across sub-paths of one stroke
// operation (spec 4.4's dash-continuity rule, carried over from
// original_source/src/cairo_path_stroke.c).
type cursor struct {
	dash    *Dash
	index   int
	remain  float64
	onPhase bool
}

func newCursor(d *Dash) *cursor {
	c := &cursor{dash: d}
	c.seek(d.Offset)
	return c
}

// seek advances the cursor by offset user-space units from the start of
// the pattern, used once at construction to honour Dash.Offset.
func (c *cursor) seek(offset float64) {
	pattern := c.expanded()
	total := 0.0
	for _, v := range pattern {
		total += v
	}
	if total <= 0 {
		c.index, c.remain, c.onPhase = 0, pattern[0], true
		return
	}
	offset = math.Mod(offset, total)
	if offset < 0 {
		offset += total
	}
	idx := 0
	for offset >= pattern[idx] {
		offset -= pattern[idx]
		idx++
		if idx == len(pattern) {
			idx = 0
		}
	}
	c.index = idx
	c.remain = pattern[idx] - offset
	c.onPhase = idx%2 == 0
}

func (c *cursor) expanded() []float64 {
	if len(c.dash.Array)%2 != 0 {
		return append(append([]float64(nil), c.dash.Array...), c.dash.Array...)
	}
	return c.dash.Array
}

// on reports whether the cursor currently sits in an "on" (drawn) phase.
func (c *cursor) on() bool { return c.onPhase }

// advance consumes up to length units of the current phase, returning the
// amount actually consumed (less than length only if the phase ends
// first) and whether the phase ended (in which case the cursor has
// already moved to the next phase, with its full length in remain).
func (c *cursor) advance(length float64) (consumed float64, phaseEnded bool) {
	if length < c.remain {
		c.remain -= length
		return length, false
	}
	consumed = c.remain
	pattern := c.expanded()
	c.index = (c.index + 1) % len(pattern)
	c.remain = pattern[c.index]
	c.onPhase = !c.onPhase
	return consumed, true
}
