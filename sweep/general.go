// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sweep

import (
	"sort"

	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/polygon"
	"github.com/gogpu/geomcore/trap"
)

// genEdge is one active/inactive polygon edge during the general sweep.
type genEdge struct {
	line        fixed.Line
	top, bottom fixed.Int
	dir         int8
}

func (e *genEdge) xAt(y fixed.Int) fixed.Int { return e.line.XAtY(y) }

// GeneralTessellate implements the scan-line sweep of arbitrary directed
// edges (component C11): an inactive list sorted by top then current-x,
// an active list kept sorted by current-x with exact-slope tie-breaking,
// and on-the-fly intersection detection between adjacent active edges so
// the next event y never skips past a crossing. Every slope comparison
// uses fixed.Slope's exact cross product computed from the edges'
// original endpoints, never from accumulated float x, per spec 4.7's
// numerical rule.
func GeneralTessellate(poly *polygon.Polygon, rule FillRule) *trap.Array {
	out := trap.New()

	inactive := make([]*genEdge, 0, len(poly.Edges))
	for _, e := range poly.Edges {
		inactive = append(inactive, &genEdge{line: e.Line, top: e.Top, bottom: e.Bottom, dir: e.Dir})
	}
	if len(inactive) == 0 {
		return out
	}
	sort.Slice(inactive, func(i, j int) bool {
		if inactive[i].top != inactive[j].top {
			return inactive[i].top < inactive[j].top
		}
		return inactive[i].xAt(inactive[i].top) < inactive[j].xAt(inactive[j].top)
	})

	var active []*genEdge
	idx := 0
	y := inactive[0].top
	const posInf = fixed.Int(1<<31 - 1)

	for idx < len(inactive) || len(active) > 0 {
		for idx < len(inactive) && inactive[idx].top <= y {
			active = append(active, inactive[idx])
			idx++
		}
		sortActiveGen(active, y)

		yNext := posInf
		if idx < len(inactive) {
			yNext = inactive[idx].top
		}
		for _, e := range active {
			if e.bottom < yNext {
				yNext = e.bottom
			}
		}
		for i := 0; i+1 < len(active); i++ {
			if cy, ok := intersectY(active[i], active[i+1], y); ok && cy < yNext {
				yNext = cy
			}
		}
		if yNext <= y {
			// Guarantee forward progress against rounding.
			yNext = y + 1
		}

		if len(active) > 0 {
			emitGeneralSlab(active, y, yNext, rule, out)
		}

		y = yNext
		kept := active[:0]
		for _, e := range active {
			if e.bottom > y {
				kept = append(kept, e)
			}
		}
		active = kept
	}
	return out
}

func sortActiveGen(active []*genEdge, y fixed.Int) {
	sort.Slice(active, func(i, j int) bool {
		xi, xj := active[i].xAt(y), active[j].xAt(y)
		if xi != xj {
			return xi < xj
		}
		return active[i].line.Slope().Compare(active[j].line.Slope()) < 0
	})
}

// intersectY returns the y at which a and b (adjacent in the active list,
// already both live at y) cross, strictly after y, if they do before
// either's bottom. The crossing y is computed from the exact intersection
// of the two lines and promoted by one sub-pixel unit so it is guaranteed
// to land strictly after the true crossing, matching spec 4.7's rounding
// rule.
func intersectY(a, b *genEdge, y fixed.Int) (fixed.Int, bool) {
	d1 := a.line.Slope()
	d2 := b.line.Slope()
	denom := d1.Cross(d2)
	if denom == 0 {
		return 0, false
	}
	// Solve for intersection of the two infinite lines.
	p1, p2 := a.line.P1, b.line.P1
	ex := p2.X - p1.X
	ey := p2.Y - p1.Y
	t := (int64(ex)*int64(d2.DY) - int64(ey)*int64(d2.DX))
	tf := float64(t) / float64(denom)
	iy := fixed.Int(float64(p1.Y) + tf*float64(d1.DY))
	if iy <= y {
		return 0, false
	}
	lo := a.top
	if b.top > lo {
		lo = b.top
	}
	hi := a.bottom
	if b.bottom < hi {
		hi = b.bottom
	}
	if iy >= hi || iy < lo {
		return 0, false
	}
	return iy + 1, true
}

func emitGeneralSlab(active []*genEdge, y, yNext fixed.Int, rule FillRule, out *trap.Array) {
	winding := 0
	var openLine fixed.Line
	open := false
	for _, e := range active {
		wasInside := insideAfter(rule, winding)
		winding += int(e.dir)
		nowInside := insideAfter(rule, winding)
		switch {
		case !wasInside && nowInside:
			openLine = e.line
			open = true
		case wasInside && !nowInside:
			if open {
				out.Append(fixed.Trapezoid{Top: y, Bottom: yNext, Left: openLine, Right: e.line})
				open = false
			}
		}
	}
}
