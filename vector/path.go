// SPDX-License-Identifier: Unlicense OR MIT

// Package vector holds the path model shared by glyph outlines, draw
// commands and the renderers: ordered move/line/cubic/close segments with
// affine transforms, bounding boxes and the wire serializations.
package vector

import (
	"fmt"
	"strings"

	"github.com/suti/textrender/f32"
)

// SegmentOp is the type of a path segment.
type SegmentOp uint8

const (
	SegmentOpMoveTo SegmentOp = iota
	SegmentOpLineTo
	SegmentOpCurveTo
	SegmentOpClose
)

// Segment is a single path command. Args[0] is the end point for MoveTo and
// LineTo. For CurveTo, Args[0] and Args[1] are the control points and
// Args[2] the end point. Close carries no arguments.
//
// Quadratic segments do not exist at this level: they are promoted to cubics
// when the path is built.
type Segment struct {
	Op   SegmentOp
	Args [3]f32.Point
}

// End returns the segment's end point. It panics on Close segments, which
// have no end point of their own.
func (s Segment) End() f32.Point {
	switch s.Op {
	case SegmentOpMoveTo, SegmentOpLineTo:
		return s.Args[0]
	case SegmentOpCurveTo:
		return s.Args[2]
	default:
		panic("vector: Close has no end point")
	}
}

// PathData is an ordered sequence of segments.
type PathData []Segment

// MoveTo starts a new subpath at (x, y).
func (p *PathData) MoveTo(x, y float32) {
	*p = append(*p, Segment{Op: SegmentOpMoveTo, Args: [3]f32.Point{{X: x, Y: y}}})
}

// LineTo adds a line to (x, y).
func (p *PathData) LineTo(x, y float32) {
	*p = append(*p, Segment{Op: SegmentOpLineTo, Args: [3]f32.Point{{X: x, Y: y}}})
}

// CurveTo adds a cubic curve to (x, y) with control points (x1, y1) and
// (x2, y2).
func (p *PathData) CurveTo(x, y, x1, y1, x2, y2 float32) {
	*p = append(*p, Segment{Op: SegmentOpCurveTo, Args: [3]f32.Point{
		{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x, Y: y},
	}})
}

// QuadTo adds a quadratic curve to (x, y) with control point (x1, y1),
// promoted to a cubic with the (p + 2q)/3 rule. The path must not be empty
// and must not end in Close: a quadratic needs the previous end point.
func (p *PathData) QuadTo(x, y, x1, y1 float32) {
	prev := p.lastPos()
	calc := func(n1, n2 float32) float32 { return (n1 + n2*2) / 3 }
	p.CurveTo(x, y,
		calc(prev.X, x1), calc(prev.Y, y1),
		calc(x, x1), calc(y, y1))
}

// Close closes the current subpath.
func (p *PathData) Close() {
	*p = append(*p, Segment{Op: SegmentOpClose})
}

func (p PathData) lastPos() f32.Point {
	if len(p) == 0 {
		panic("vector: path must not be empty")
	}
	seg := p[len(p)-1]
	if seg.Op == SegmentOpClose {
		panic("vector: the previous segment must be M/L/C")
	}
	return seg.End()
}

// Transform applies t to every point of the path in place.
func (p PathData) Transform(t f32.Affine) {
	for i := 0; i < len(p); i++ {
		seg := &p[i]
		switch seg.Op {
		case SegmentOpMoveTo, SegmentOpLineTo:
			seg.Args[0] = t.Apply(seg.Args[0])
		case SegmentOpCurveTo:
			seg.Args[0] = t.Apply(seg.Args[0])
			seg.Args[1] = t.Apply(seg.Args[1])
			seg.Args[2] = t.Apply(seg.Args[2])
		}
	}
}

// Clone returns a deep copy of the path.
func (p PathData) Clone() PathData {
	return append(PathData(nil), p...)
}

// Bounds computes the axis-aligned bounding box of the path. ok is false
// when the path is empty or starts with Close.
func (p PathData) Bounds() (bbox BoundingBox, ok bool) {
	if len(p) == 0 {
		return BoundingBox{}, false
	}
	switch first := p[0]; first.Op {
	case SegmentOpMoveTo, SegmentOpLineTo:
		bbox = NewBoundingBox(first.Args[0].X, first.Args[0].Y)
	case SegmentOpCurveTo:
		bbox = NewBoundingBox(first.Args[0].X, first.Args[0].Y)
	default:
		return BoundingBox{}, false
	}
	var startX, startY, prevX, prevY float32
	for _, seg := range p {
		switch seg.Op {
		case SegmentOpMoveTo:
			end := seg.Args[0]
			bbox.AddPoint(end.X, end.Y)
			startX, startY = end.X, end.Y
			prevX, prevY = end.X, end.Y
		case SegmentOpLineTo:
			end := seg.Args[0]
			bbox.AddPoint(end.X, end.Y)
			prevX, prevY = end.X, end.Y
		case SegmentOpCurveTo:
			c1, c2, end := seg.Args[0], seg.Args[1], seg.Args[2]
			bbox.AddBezier(prevX, prevY, c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			prevX, prevY = end.X, end.Y
		case SegmentOpClose:
			prevX, prevY = startX, startY
		}
	}
	return bbox, true
}

// String renders the path as an SVG d attribute with M/L/C/Z tokens.
func (p PathData) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch seg.Op {
		case SegmentOpMoveTo:
			fmt.Fprintf(&b, "M %v %v", seg.Args[0].X, seg.Args[0].Y)
		case SegmentOpLineTo:
			fmt.Fprintf(&b, "L %v %v", seg.Args[0].X, seg.Args[0].Y)
		case SegmentOpCurveTo:
			fmt.Fprintf(&b, "C %v %v %v %v %v %v",
				seg.Args[0].X, seg.Args[0].Y,
				seg.Args[1].X, seg.Args[1].Y,
				seg.Args[2].X, seg.Args[2].Y)
		case SegmentOpClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// Wire subtags of the packed path block.
const (
	packMoveTo float32 = 0
	packLineTo float32 = 1
	packCurveTo float32 = 2
	packClose  float32 = 3
)

// AppendF32 appends the packed form of the path: segment count, then per
// segment a subtag followed by its points.
func (p PathData) AppendF32(dst []float32) []float32 {
	dst = append(dst, float32(len(p)))
	for _, seg := range p {
		switch seg.Op {
		case SegmentOpMoveTo:
			dst = append(dst, packMoveTo, seg.Args[0].X, seg.Args[0].Y)
		case SegmentOpLineTo:
			dst = append(dst, packLineTo, seg.Args[0].X, seg.Args[0].Y)
		case SegmentOpCurveTo:
			dst = append(dst, packCurveTo,
				seg.Args[2].X, seg.Args[2].Y,
				seg.Args[0].X, seg.Args[0].Y,
				seg.Args[1].X, seg.Args[1].Y)
		case SegmentOpClose:
			dst = append(dst, packClose)
		}
	}
	return dst
}
