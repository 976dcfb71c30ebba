// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pen

import (
	"testing"

	"github.com/gogpu/geomcore/fixed"
)

func TestVerticesNeededMinimumFour(t *testing.T) {
	n := VerticesNeeded(1, 10, fixed.Identity())
	if n != 4 {
		t.Errorf("VerticesNeeded() with tolerance > radius = %d, want 4", n)
	}
}

func TestVerticesNeededZeroRadius(t *testing.T) {
	if n := VerticesNeeded(0, 0.5, fixed.Identity()); n != 4 {
		t.Errorf("VerticesNeeded(radius=0) = %d, want 4", n)
	}
}

func TestVerticesNeededIncreasesWithRadius(t *testing.T) {
	small := VerticesNeeded(1, 0.1, fixed.Identity())
	large := VerticesNeeded(100, 0.1, fixed.Identity())
	if large <= small {
		t.Errorf("VerticesNeeded(radius=100) = %d, want more than VerticesNeeded(radius=1) = %d", large, small)
	}
}

func TestVerticesNeededIncreasesWithTighterTolerance(t *testing.T) {
	loose := VerticesNeeded(10, 2, fixed.Identity())
	tight := VerticesNeeded(10, 0.01, fixed.Identity())
	if tight <= loose {
		t.Errorf("VerticesNeeded(tolerance=0.01) = %d, want more than VerticesNeeded(tolerance=2) = %d", tight, loose)
	}
}

func TestNewProducesRequestedVertexCount(t *testing.T) {
	p := New(5, 0.25, fixed.Identity())
	want := VerticesNeeded(5, 0.25, fixed.Identity())
	if len(p.Vertices) != want {
		t.Errorf("New() produced %d vertices, want %d", len(p.Vertices), want)
	}
}

func TestNewVerticesLieOnCircle(t *testing.T) {
	radius := 10.0
	p := New(radius, 0.1, fixed.Identity())
	for i, v := range p.Vertices {
		x, y := v.Pt.X.ToFloat64(), v.Pt.Y.ToFloat64()
		dist := x*x + y*y
		wantDist := radius * radius
		if diff := dist - wantDist; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("vertex %d distance^2 = %v, want %v", i, dist, wantDist)
		}
	}
}

func TestComputeSlopesFormsClosedLoop(t *testing.T) {
	p := New(5, 0.5, fixed.Identity())
	n := len(p.Vertices)
	for i, v := range p.Vertices {
		next := p.Vertices[(i+1)%n]
		wantCW := next.Pt.Sub(v.Pt)
		if next.SlopeCW != wantCW {
			t.Errorf("vertex %d SlopeCW = %v, want %v (next vertex - this vertex)", (i+1)%n, next.SlopeCW, wantCW)
		}
	}
}

func TestAddPointsNoopOnEmpty(t *testing.T) {
	p := New(5, 0.5, fixed.Identity())
	before := len(p.Vertices)
	p.AddPoints(nil)
	if len(p.Vertices) != before {
		t.Errorf("AddPoints(nil) changed vertex count from %d to %d", before, len(p.Vertices))
	}
}

func TestAddPointsDedupesCoincidentVertex(t *testing.T) {
	p := New(5, 0.5, fixed.Identity())
	before := len(p.Vertices)
	existing := p.Vertices[0].Pt
	p.AddPoints([]fixed.Point{existing})
	if len(p.Vertices) != before {
		t.Errorf("AddPoints() with a coincident point changed vertex count from %d to %d, want unchanged", before, len(p.Vertices))
	}
}

func TestAddPointsInsertsNewVertexSortedByAngle(t *testing.T) {
	p := New(4, 2, fixed.Identity())
	before := len(p.Vertices)
	extra := fixed.PtFromFloat64(0, -100)
	p.AddPoints([]fixed.Point{extra})
	if len(p.Vertices) != before+1 {
		t.Fatalf("AddPoints() vertex count = %d, want %d", len(p.Vertices), before+1)
	}
	for i := 1; i < len(p.Vertices); i++ {
		if p.Vertices[i].Theta < p.Vertices[i-1].Theta {
			t.Errorf("vertices not sorted by theta at index %d", i)
		}
	}
}

func TestFindActiveCWVertexInRange(t *testing.T) {
	p := New(10, 0.1, fixed.Identity())
	idx := p.FindActiveCWVertex(fixed.Slope{DX: fixed.One, DY: 0})
	if idx < 0 || idx >= len(p.Vertices) {
		t.Errorf("FindActiveCWVertex() = %d, out of range [0,%d)", idx, len(p.Vertices))
	}
}

func TestFindActiveCCWVertexInRange(t *testing.T) {
	p := New(10, 0.1, fixed.Identity())
	idx := p.FindActiveCCWVertex(fixed.Slope{DX: fixed.One, DY: 0})
	if idx < 0 || idx >= len(p.Vertices) {
		t.Errorf("FindActiveCCWVertex() = %d, out of range [0,%d)", idx, len(p.Vertices))
	}
}
