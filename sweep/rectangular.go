// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sweep

import (
	"container/heap"
	"sort"

	"github.com/gogpu/geomcore/fixed"
	"github.com/gogpu/geomcore/polygon"
	"github.com/gogpu/geomcore/trap"
)

// rectEdge is one vertical edge of a rectilinear polygon: a constant x
// over [top, bottom] and a winding direction.
type rectEdge struct {
	line        fixed.Line
	x           fixed.Int
	top, bottom fixed.Int
	dir         int8
}

// stopHeap is a binary min-heap of active edges ordered by bottom,
// mirroring cairo-bentley-ottmann-rectangular.c's array-backed priority
// queue of stop events (PQ_FIRST_ENTRY/PQ_LEFT_CHILD_INDEX).
type stopHeap []*rectEdge

func (h stopHeap) Len() int            { return len(h) }
func (h stopHeap) Less(i, j int) bool  { return h[i].bottom < h[j].bottom }
func (h stopHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *stopHeap) Push(x interface{}) { *h = append(*h, x.(*rectEdge)) }
func (h *stopHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// RectangularTessellate specialises the sweep to rectilinear geometry
// (every edge of poly must be vertical, i.e. is the output of a filler
// walking an IsRectilinear path): a priority queue of bottoms plus a
// doubly-sorted active list, with no intersection tests since parallel
// vertical edges never cross. Emits one trapezoid for each inside span of
// each horizontal slab between consecutive event ys, under the given fill
// rule; trapezoids of adjacent slabs are not merged into taller boxes.
func RectangularTessellate(poly *polygon.Polygon, rule FillRule) *trap.Array {
	edges := make([]*rectEdge, 0, len(poly.Edges))
	for _, e := range poly.Edges {
		if e.Line.P1.X != e.Line.P2.X {
			// Not rectilinear; caller should have used the general sweep.
			continue
		}
		line := e.Line
		if line.P1.Y > line.P2.Y {
			// Trapezoid sides run top to bottom whatever the edge's direction.
			line.P1, line.P2 = line.P2, line.P1
		}
		edges = append(edges, &rectEdge{line: line, x: line.P1.X, top: e.Top, bottom: e.Bottom, dir: e.Dir})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].top < edges[j].top })

	out := trap.New()
	if len(edges) == 0 {
		return out
	}

	var active []*rectEdge
	stops := &stopHeap{}
	heap.Init(stops)

	startIdx := 0
	y := edges[0].top
	const posInf = fixed.Int(1<<31 - 1)

	for startIdx < len(edges) || stops.Len() > 0 {
		nextTop := posInf
		if startIdx < len(edges) {
			nextTop = edges[startIdx].top
		}
		nextBottom := posInf
		if stops.Len() > 0 {
			nextBottom = (*stops)[0].bottom
		}
		yNext := nextTop
		if nextBottom < yNext {
			yNext = nextBottom
		}
		if yNext == y {
			// Insert/remove events exactly at y before emitting anything.
		} else if len(active) > 0 {
			emitSlab(active, y, yNext, rule, out)
		}
		y = yNext

		for startIdx < len(edges) && edges[startIdx].top == y {
			active = append(active, edges[startIdx])
			heap.Push(stops, edges[startIdx])
			startIdx++
		}
		sortActiveRect(active)

		for stops.Len() > 0 && (*stops)[0].bottom == y {
			dead := heap.Pop(stops).(*rectEdge)
			active = removeRectEdge(active, dead)
		}
	}
	return out
}

func sortActiveRect(active []*rectEdge) {
	sort.Slice(active, func(i, j int) bool { return active[i].x < active[j].x })
}

func removeRectEdge(active []*rectEdge, dead *rectEdge) []*rectEdge {
	for i, e := range active {
		if e == dead {
			return append(active[:i], active[i+1:]...)
		}
	}
	return active
}

func emitSlab(active []*rectEdge, y, yNext fixed.Int, rule FillRule, out *trap.Array) {
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
