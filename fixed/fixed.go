// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fixed implements the 16.16 fixed-point arithmetic and geometry
// primitives that every other package in this module builds on: points,
// slopes, lines, boxes, and the exact (division-free) slope comparisons
// the sweep algorithms depend on to stay numerically stable under dense
// intersections.
//
// The scale mirrors golang.org/x/image/math/fixed's "treat an int as a
// scaled fixed-point number" idiom, but at 16.16 rather than 26.6: this
// is a general geometry unit, not a font hinting grid.
package fixed

import "math"

// Int is a signed 32-bit value interpreted as 16.16 fixed point: one unit
// is 1/65536 of a device pixel.
type Int int32

// Shift is the number of fractional bits.
const Shift = 16

// One is the fixed-point representation of 1.0.
const One Int = 1 << Shift

// FromFloat64 converts a float64 to Int, rounding toward zero.
func FromFloat64(v float64) Int {
	return Int(v * float64(One))
}

// ToFloat64 converts an Int back to float64.
func (f Int) ToFloat64() float64 {
	return float64(f) / float64(One)
}

// Floor returns the exact integer floor of f as a plain int32 count of
// whole units (not a scaled Int).
func (f Int) Floor() int32 {
	return int32(f >> Shift)
}

// Ceil returns the exact integer ceiling of f.
func (f Int) Ceil() int32 {
	return int32((f + One - 1) >> Shift)
}

// Round returns the nearest integer, halves rounding away from zero.
func (f Int) Round() int32 {
	if f >= 0 {
		return int32((f + One/2) >> Shift)
	}
	return -int32((-f + One/2) >> Shift)
}

// Abs returns the absolute value.
func (f Int) Abs() Int {
	if f < 0 {
		return -f
	}
	return f
}

// Point is a fixed-point coordinate pair.
type Point struct {
	X, Y Int
}

// Pt builds a Point.
func Pt(x, y Int) Point { return Point{X: x, Y: y} }

// PtFromFloat64 builds a Point from float64 user-space coordinates.
func PtFromFloat64(x, y float64) Point {
	return Point{X: FromFloat64(x), Y: FromFloat64(y)}
}

// Equal reports whether two points are exactly equal.
func (p Point) Equal(q Point) bool { return p.X == q.X && p.Y == q.Y }

// Sub returns p-q as a Slope.
func (p Point) Sub(q Point) Slope { return Slope{DX: p.X - q.X, DY: p.Y - q.Y} }

// Slope is a direction vector, always stored as p2-p1 and never normalised.
type Slope struct {
	DX, DY Int
}

// IsZero reports whether the slope has zero length.
func (s Slope) IsZero() bool { return s.DX == 0 && s.DY == 0 }

// Cross returns the exact 64-bit cross product a x b = a.DX*b.DY - a.DY*b.DX.
// Its sign determines the rotational relationship between the two slopes
// without ever dividing, which is what keeps the sweep's intersection
// ordering exact under repeated subdivision.
func (a Slope) Cross(b Slope) int64 {
	return int64(a.DX)*int64(b.DY) - int64(a.DY)*int64(b.DX)
}

// Clockwise reports whether b is clockwise of a (strictly), i.e. a x b > 0
// in a y-down coordinate system.
func (a Slope) Clockwise(b Slope) bool {
	return a.Cross(b) > 0
}

// CounterClockwise reports whether b is counter-clockwise of a.
func (a Slope) CounterClockwise(b Slope) bool {
	return !a.Clockwise(b)
}

// Compare orders two slopes by angle using only exact cross products,
// never floating point division. It returns -1, 0, or 1.
func (a Slope) Compare(b Slope) int {
	cmp := a.Cross(b)
	if cmp > 0 {
		return 1
	} else if cmp < 0 {
		return -1
	}
	return 0
}

// Line is a directed segment between two fixed-point points.
type Line struct {
	P1, P2 Point
}

// Slope returns P2-P1.
func (l Line) Slope() Slope { return l.P2.Sub(l.P1) }

// XAtY returns the exact x coordinate of the line at height y, assuming
// P1.Y != P2.Y. Uses integer math scaled to avoid accumulated drift.
func (l Line) XAtY(y Int) Int {
	if l.P1.Y == l.P2.Y {
		return l.P1.X
	}
	num := int64(y-l.P1.Y) * int64(l.P2.X-l.P1.X)
	den := int64(l.P2.Y - l.P1.Y)
	return l.P1.X + Int(num/den)
}

// Box is an axis-aligned rectangle with P1 <= P2 component-wise.
type Box struct {
	P1, P2 Point
}

// NewBox builds a Box from two corner points, normalising the ordering.
func NewBox(a, b Point) Box {
	box := Box{P1: a, P2: b}
	if box.P1.X > box.P2.X {
		box.P1.X, box.P2.X = box.P2.X, box.P1.X
	}
	if box.P1.Y > box.P2.Y {
		box.P1.Y, box.P2.Y = box.P2.Y, box.P1.Y
	}
	return box
}

// IsEmpty reports whether the box has zero or negative area.
func (b Box) IsEmpty() bool { return b.P1.X >= b.P2.X || b.P1.Y >= b.P2.Y }

// Union returns the smallest box containing both b and o. Zero-area boxes
// (points, axis-aligned segments) contribute their corners like any other.
func (b Box) Union(o Box) Box {
	return Box{
		P1: Point{X: min32(b.P1.X, o.P1.X), Y: min32(b.P1.Y, o.P1.Y)},
		P2: Point{X: max32(b.P2.X, o.P2.X), Y: max32(b.P2.Y, o.P2.Y)},
	}
}

// Intersect returns the overlap of b and o; may be empty.
func (b Box) Intersect(o Box) Box {
	return Box{
		P1: Point{X: max32(b.P1.X, o.P1.X), Y: max32(b.P1.Y, o.P1.Y)},
		P2: Point{X: min32(b.P2.X, o.P2.X), Y: min32(b.P2.Y, o.P2.Y)},
	}
}

// Contains reports whether o lies entirely within b.
func (b Box) Contains(o Box) bool {
	return o.P1.X >= b.P1.X && o.P1.Y >= b.P1.Y && o.P2.X <= b.P2.X && o.P2.Y <= b.P2.Y
}

func min32(a, b Int) Int {
	if a < b {
		return a
	}
	return b
}

func max32(a, b Int) Int {
	if a > b {
		return a
	}
	return b
}

// IntRect is an integer device-space rectangle, width/height >= 0.
type IntRect struct {
	X, Y, W, H int32
}

// IsEmpty reports whether the rectangle has no area.
func (r IntRect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Right returns X+W.
func (r IntRect) Right() int32 { return r.X + r.W }

// Bottom returns Y+H.
func (r IntRect) Bottom() int32 { return r.Y + r.H }

// IntersectRect returns the overlapping integer rectangle of r and o.
func (r IntRect) IntersectRect(o IntRect) IntRect {
	x0, y0 := maxI32(r.X, o.X), maxI32(r.Y, o.Y)
	x1, y1 := minI32(r.Right(), o.Right()), minI32(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return IntRect{}
	}
	return IntRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// UnionRect returns the bounding rectangle of r and o.
func (r IntRect) UnionRect(o IntRect) IntRect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0, y0 := minI32(r.X, o.X), minI32(r.Y, o.Y)
	x1, y1 := maxI32(r.Right(), o.Right()), maxI32(r.Bottom(), o.Bottom())
	return IntRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Trapezoid is the canonical output primitive: an axis-aligned-top-and-
// bottom quadrilateral, with left/right evaluated only within [Top, Bottom].
type Trapezoid struct {
	Top, Bottom Int
	Left, Right Line
}

// IsDegenerate reports whether the trapezoid has zero or negative height;
// such trapezoids are never emitted by the sweeps.
func (t Trapezoid) IsDegenerate() bool { return t.Top >= t.Bottom }

// Matrix is the 2x2 linear part plus translation of an affine transform,
// matching the teacher's CTM role (path.transform, pen construction).
type Matrix struct {
	XX, XY, YX, YY float64
	X0, Y0         float64
}

// Identity returns the identity matrix.
func Identity() Matrix { return Matrix{XX: 1, YY: 1} }

// Translate returns the matrix that translates by (tx, ty).
func Translate(tx, ty float64) Matrix { return Matrix{XX: 1, YY: 1, X0: tx, Y0: ty} }

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m.XX == 1 && m.XY == 0 && m.YX == 0 && m.YY == 1 && m.X0 == 0 && m.Y0 == 0
}

// IsIntegerTranslation reports whether m is a pure translation by integer
// user-space amounts, the fast path path.transform and clip transform use.
func (m Matrix) IsIntegerTranslation() bool {
	return m.XX == 1 && m.XY == 0 && m.YX == 0 && m.YY == 1 &&
		m.X0 == math.Trunc(m.X0) && m.Y0 == math.Trunc(m.Y0)
}

// TransformPoint applies the full affine transform to (x, y).
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.XX*x + m.YX*y + m.X0, m.XY*x + m.YY*y + m.Y0
}

// TransformDistance applies only the linear part (no translation).
func (m Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.XX*dx + m.YX*dy, m.XY*dx + m.YY*dy
}

// Determinant returns the determinant of the 2x2 linear part.
func (m Matrix) Determinant() float64 { return m.XX*m.YY - m.XY*m.YX }

// Invert returns the inverse matrix and true, or the zero matrix and false
// if m is singular (ErrInvalidMatrix territory for callers that need one).
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, false
	}
	inv := 1 / det
	r := Matrix{
		XX: m.YY * inv,
		XY: -m.XY * inv,
		YX: -m.YX * inv,
		YY: m.XX * inv,
	}
	r.X0 = -(m.X0*r.XX + m.Y0*r.YX)
	r.Y0 = -(m.X0*r.XY + m.Y0*r.YY)
	return r, true
}

// Multiply returns m composed with n, applying m first then n (n*m).
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		XX: m.XX*n.XX + m.XY*n.YX,
		XY: m.XX*n.XY + m.XY*n.YY,
		YX: m.YX*n.XX + m.YY*n.YX,
		YY: m.YX*n.XY + m.YY*n.YY,
		X0: m.X0*n.XX + m.Y0*n.YX + n.X0,
		Y0: m.X0*n.XY + m.Y0*n.YY + n.Y0,
	}
}

// LargestSingularValue returns sigma_max(M), the larger singular value of
// the 2x2 linear part, used by the pen to size its vertex count (xrpen.c's
// _XrPenVerticesNeeded uses the analogous eigenvalue-of-the-linear-part
// computation against the un-translated matrix).
func (m Matrix) LargestSingularValue() float64 {
	// Singular values of a 2x2 matrix via its Gram matrix eigenvalues.
	a, b, c, d := m.XX, m.XY, m.YX, m.YY
	// Entries of M^T * M.
	e := a*a + c*c
	f := a*b + c*d
	g := b*b + d*d
	tr := e + g
	det := e*g - f*f
	disc := tr*tr/4 - det
	if disc < 0 {
		disc = 0
	}
	lambdaMax := tr/2 + math.Sqrt(disc)
	if lambdaMax < 0 {
		lambdaMax = 0
	}
	return math.Sqrt(lambdaMax)
}
