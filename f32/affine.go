// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "math"

// Affine is a 2D affine transform in the SVG parameter order,
//
//	| A C E |
//	| B D F |
//
// mapping (x, y) to (A·x + C·y + E, B·x + D·y + F).
type Affine struct {
	A, B, C, D, E, F float32
}

// NewAffine returns the transform with the given parameters.
func NewAffine(a, b, c, d, e, f float32) Affine {
	return Affine{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Identity is the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Apply transforms the point p.
func (t Affine) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// Mul returns t×u, the transform applying u before t.
func (t Affine) Mul(u Affine) Affine {
	return Affine{
		A: t.A*u.A + t.C*u.B,
		B: t.B*u.A + t.D*u.B,
		C: t.A*u.C + t.C*u.D,
		D: t.B*u.C + t.D*u.D,
		E: t.A*u.E + t.C*u.F + t.E,
		F: t.B*u.E + t.D*u.F + t.F,
	}
}

// Translate appends a translation by (dx, dy).
func (t Affine) Translate(dx, dy float32) Affine {
	return t.Mul(Affine{A: 1, D: 1, E: dx, F: dy})
}

// Rotate appends a rotation by deg degrees.
func (t Affine) Rotate(deg float32) Affine {
	rad := float64(deg) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	s, c := float32(sin), float32(cos)
	return t.Mul(Affine{A: c, B: s, C: -s, D: c})
}
