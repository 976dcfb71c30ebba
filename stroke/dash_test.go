// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stroke

import "testing"

func TestNewDash(t *testing.T) {
	tests := []struct {
		name      string
		lengths   []float64
		wantNil   bool
		wantArray []float64
	}{
		{name: "empty input returns nil", lengths: []float64{}, wantNil: true},
		{name: "nil input returns nil", lengths: nil, wantNil: true},
		{name: "all zeros returns nil", lengths: []float64{0, 0, 0}, wantNil: true},
		{name: "simple dash-gap pattern", lengths: []float64{5, 3}, wantArray: []float64{5, 3}},
		{name: "single value", lengths: []float64{5}, wantArray: []float64{5}},
		{name: "negative values become absolute", lengths: []float64{-5, 3}, wantArray: []float64{5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDash(tt.lengths...)
			if tt.wantNil {
				if got != nil {
					t.Errorf("NewDash() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("NewDash() = nil, want non-nil")
			}
			if len(got.Array) != len(tt.wantArray) {
				t.Fatalf("Array length = %d, want %d", len(got.Array), len(tt.wantArray))
			}
			for i, v := range got.Array {
				if v != tt.wantArray[i] {
					t.Errorf("Array[%d] = %v, want %v", i, v, tt.wantArray[i])
				}
			}
		})
	}
}

func TestDashWithOffset(t *testing.T) {
	d := NewDash(5, 3)
	got := d.WithOffset(2.5)
	if got.Offset != 2.5 {
		t.Errorf("WithOffset(2.5).Offset = %v, want 2.5", got.Offset)
	}
	if d.Offset != 0 {
		t.Errorf("original Dash.Offset mutated to %v, want 0", d.Offset)
	}
}

func TestDashPatternLength(t *testing.T) {
	tests := []struct {
		name string
		dash *Dash
		want float64
	}{
		{name: "even pattern", dash: NewDash(5, 3), want: 8},
		{name: "odd pattern is doubled", dash: NewDash(5), want: 10},
		{name: "three element odd pattern", dash: NewDash(5, 3, 2), want: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dash.PatternLength(); got != tt.want {
				t.Errorf("PatternLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashIsDashed(t *testing.T) {
	if (&Dash{Array: nil}).IsDashed() {
		t.Error("IsDashed() with no array = true, want false")
	}
	if !NewDash(5, 3).IsDashed() {
		t.Error("IsDashed() with a pattern = false, want true")
	}
}

func TestDashClone(t *testing.T) {
	original := NewDash(5, 3).WithOffset(2)
	clone := original.Clone()
	if clone == original {
		t.Fatal("Clone() returned the same pointer")
	}
	clone.Array[0] = 100
	clone.Offset = 50
	if original.Array[0] != 5 {
		t.Errorf("original.Array[0] = %v after mutating clone, want 5", original.Array[0])
	}
	if original.Offset != 2 {
		t.Errorf("original.Offset = %v after mutating clone, want 2", original.Offset)
	}
}

func TestCursorSeekStartsAtOffsetZero(t *testing.T) {
	d := NewDash(5, 3)
	c := newCursor(d)
	if !c.on() {
		t.Error("cursor at offset 0 should start in the on phase")
	}
	if c.remain != 5 {
		t.Errorf("remain = %v, want 5", c.remain)
	}
}

func TestCursorSeekMidOnPhase(t *testing.T) {
	d := NewDash(5, 3).WithOffset(2)
	c := newCursor(d)
	if !c.on() {
		t.Error("cursor seeked into the on phase should report on() = true")
	}
	if c.remain != 3 {
		t.Errorf("remain after seeking 2 units into a 5-unit on phase = %v, want 3", c.remain)
	}
}

func TestCursorSeekIntoOffPhase(t *testing.T) {
	d := NewDash(5, 3).WithOffset(6)
	c := newCursor(d)
	if c.on() {
		t.Error("cursor seeked 6 units into a [5 on, 3 off] pattern should be off")
	}
	if c.remain != 2 {
		t.Errorf("remain = %v, want 2", c.remain)
	}
}

func TestCursorAdvanceWithinPhase(t *testing.T) {
	c := newCursor(NewDash(5, 3))
	consumed, ended := c.advance(2)
	if consumed != 2 || ended {
		t.Errorf("advance(2) = (%v, %v), want (2, false)", consumed, ended)
	}
	if c.remain != 3 {
		t.Errorf("remain after advance(2) = %v, want 3", c.remain)
	}
}

func TestCursorAdvancePastPhaseEndTogglesPhase(t *testing.T) {
	c := newCursor(NewDash(5, 3))
	consumed, ended := c.advance(5)
	if consumed != 5 || !ended {
		t.Errorf("advance(5) on a 5-unit phase = (%v, %v), want (5, true)", consumed, ended)
	}
	if c.on() {
		t.Error("phase should have toggled to off after consuming the full on length")
	}
	if c.remain != 3 {
		t.Errorf("remain after toggling = %v, want 3", c.remain)
	}
}

func TestCursorDoesNotResetAcrossAdvances(t *testing.T) {
	// Verifies the non-reset-cursor continuity rule: repeated small
	// advances across what would be multiple sub-paths sum to the same
	// state as covering the same 5 units in as few advances as the phase
	// ends allow (advance stops at each phase end).
	c1 := newCursor(NewDash(4, 4))
	c1.advance(2)
	c1.advance(2)
	c1.advance(1)

	c2 := newCursor(NewDash(4, 4))
	consumed, _ := c2.advance(5)
	c2.advance(5 - consumed)

	if c1.on() != c2.on() || c1.remain != c2.remain {
		t.Errorf("stepwise advances left cursor at (on=%v,remain=%v), want (on=%v,remain=%v)",
			c1.on(), c1.remain, c2.on(), c2.remain)
	}
}
