// SPDX-License-Identifier: Unlicense OR MIT

package vector

import "math"

// BoundingBox is an axis-aligned box in path space.
type BoundingBox struct {
	X1, Y1, X2, Y2 float32
}

// NewBoundingBox returns a degenerate box holding the single point (x, y).
func NewBoundingBox(x, y float32) BoundingBox {
	return BoundingBox{X1: x, Y1: y, X2: x, Y2: y}
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float32 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float32 {
	return b.Y2 - b.Y1
}

// Merge returns the union of b and other.
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	if other.X1 < b.X1 {
		b.X1 = other.X1
	}
	if other.Y1 < b.Y1 {
		b.Y1 = other.Y1
	}
	if other.X2 > b.X2 {
		b.X2 = other.X2
	}
	if other.Y2 > b.Y2 {
		b.Y2 = other.Y2
	}
	return b
}

// Extend grows the box by width on every side.
func (b *BoundingBox) Extend(width float32) {
	b.X1 -= width
	b.Y1 -= width
	b.X2 += width
	b.Y2 += width
}

// Translate moves the box by (x, y).
func (b *BoundingBox) Translate(x, y float32) {
	b.X1 += x
	b.Y1 += y
	b.X2 += x
	b.Y2 += y
}

// AddPoint grows the box to contain (x, y).
func (b *BoundingBox) AddPoint(x, y float32) {
	b.addX(x)
	b.addY(y)
}

func (b *BoundingBox) addX(x float32) {
	if x < b.X1 {
		b.X1 = x
	}
	if x > b.X2 {
		b.X2 = x
	}
}

func (b *BoundingBox) addY(y float32) {
	if y < b.Y1 {
		b.Y1 = y
	}
	if y > b.Y2 {
		b.Y2 = y
	}
}

// AddBezier grows the box to contain the cubic from (x0, y0) to (x, y) with
// control points (x1, y1) and (x2, y2), including the curve's interior
// extrema found by solving the derivative per axis.
func (b *BoundingBox) AddBezier(x0, y0, x1, y1, x2, y2, x, y float32) {
	b.AddPoint(x0, y0)
	b.AddPoint(x, y)

	compute := func(p0, p1, p2, p3 float32, vertical bool) {
		add := b.addX
		if vertical {
			add = b.addY
		}
		bb := 6*p0 - 12*p1 + 6*p2
		a := -3*p0 + 9*p1 - 9*p2 + 3*p3
		c := 3*p1 - 3*p0

		if a == 0 {
			if bb == 0 {
				return
			}
			if t := -c / bb; 0 < t && t < 1 {
				add(bezierAt(p0, p1, p2, p3, t))
			}
			return
		}

		b2ac := bb*bb - 4*c*a
		if b2ac < 0 {
			return
		}
		sqrt := float32(math.Sqrt(float64(b2ac)))
		if t := (-bb + sqrt) / (2 * a); 0 < t && t < 1 {
			add(bezierAt(p0, p1, p2, p3, t))
		}
		if t := (-bb - sqrt) / (2 * a); 0 < t && t < 1 {
			add(bezierAt(p0, p1, p2, p3, t))
		}
	}
	compute(x0, x1, x2, x, false)
	compute(y0, y1, y2, y, true)
}

func bezierAt(v0, v1, v2, v3, t float32) float32 {
	u := 1 - t
	return u*u*u*v0 + 3*u*u*t*v1 + 3*u*t*t*v2 + t*t*t*v3
}

// BBox is a per-letter box in render space. X2/Y2 are absolute coordinates,
// not extents: Width reports X2 so a zero-origin canvas can be grown to the
// box in one step. RealWidth reports the true extent.
type BBox struct {
	X1, Y1, X2, Y2 float64
}

// NewBBox returns the box with the given corners.
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the right edge of the box.
func (b BBox) Width() float64 { return b.X2 }

// Height returns the bottom edge of the box.
func (b BBox) Height() float64 { return b.Y2 }

// RealWidth returns the horizontal extent.
func (b BBox) RealWidth() float64 { return b.X2 - b.X1 }

// RealHeight returns the vertical extent.
func (b BBox) RealHeight() float64 { return b.Y2 - b.Y1 }

// BBoxes is the ordered list of per-letter boxes for one document.
type BBoxes []BBox

// TotalBox returns the union of all boxes, or the zero box when empty.
func (bs BBoxes) TotalBox() BBox {
	var total BBox
	if len(bs) == 0 {
		return total
	}
	total = bs[0]
	for _, b := range bs {
		if b.X1 < total.X1 {
			total.X1 = b.X1
		}
		if b.Y1 < total.Y1 {
			total.Y1 = b.Y1
		}
		if b.X2 > total.X2 {
			total.X2 = b.X2
		}
		if b.Y2 > total.Y2 {
			total.Y2 = b.Y2
		}
	}
	return total
}

// AppendF32 appends the packed form: count, then x1 y1 x2 y2 per box.
func (bs BBoxes) AppendF32(dst []float32) []float32 {
	dst = append(dst, float32(len(bs)))
	for _, b := range bs {
		dst = append(dst, float32(b.X1), float32(b.Y1), float32(b.X2), float32(b.Y2))
	}
	return dst
}
