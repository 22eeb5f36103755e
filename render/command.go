// SPDX-License-Identifier: Unlicense OR MIT

/*
Package render lowers positioned letters into a flat, renderer-agnostic
command sequence: transforms, glyph references, paths, fills and strokes.
Glyph outlines are emitted once per (font family, codepoint) into a path
table baked at the canonical size 100; finalization replaces each reference
with its scaled path so any backend can consume the stream without font
access.
*/
package render

import (
	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/internal/f32color"
	"github.com/suti/textrender/vector"
)

// Op is the kind of a draw command.
type Op uint8

const (
	// OpTransform replaces the current transform. Reset marks the
	// decoration variant that discards letter positioning first.
	OpTransform Op = iota
	// OpUse references a path table entry at a font size.
	OpUse
	// OpPath carries a concrete path.
	OpPath
	// OpFill fills the current path.
	OpFill
	// OpStroke outlines the current path.
	OpStroke
)

// Command is one draw command. Only the fields of its Op are meaningful.
type Command struct {
	Op        Op
	Transform f32.Affine
	Reset     bool
	Path      vector.PathData
	Color     string
	Width     float64
	Family    string
	Code      rune
	Size      float64
}

// Wire tags of the packed command block.
const (
	packTransform float32 = 0
	packPath      float32 = 1
	packStroke    float32 = 2
	packFill      float32 = 3
)

// AppendF32 appends the packed form of a command. Unreferenced ops (Use
// before finalization) pack to nothing.
func (c Command) AppendF32(dst []float32) []float32 {
	switch c.Op {
	case OpTransform:
		t := c.Transform
		return append(dst, packTransform, t.A, t.B, t.C, t.D, t.E, t.F)
	case OpPath:
		return c.Path.AppendF32(append(dst, packPath))
	case OpStroke:
		return append(dst, packStroke, float32(c.Width), float32(f32color.Packed(c.Color)))
	case OpFill:
		return append(dst, packFill, float32(f32color.Packed(c.Color)))
	}
	return dst
}

// CommandList is a finalized command sequence.
type CommandList []Command

// AppendF32 appends the packed command block: command count, then each
// command.
func (cl CommandList) AppendF32(dst []float32) []float32 {
	dst = append(dst, float32(len(cl)))
	for _, c := range cl {
		dst = c.AppendF32(dst)
	}
	return dst
}

// Flatten applies each transform to the paths that follow it and
// concatenates everything into one path with no transforms left.
func (cl CommandList) Flatten() vector.PathData {
	transform := f32.Identity()
	var flat vector.PathData
	for _, c := range cl {
		switch c.Op {
		case OpTransform:
			transform = c.Transform
		case OpPath:
			for _, seg := range c.Path {
				switch seg.Op {
				case vector.SegmentOpMoveTo:
					p := transform.Apply(seg.Args[0])
					flat.MoveTo(p.X, p.Y)
				case vector.SegmentOpLineTo:
					p := transform.Apply(seg.Args[0])
					flat.LineTo(p.X, p.Y)
				case vector.SegmentOpCurveTo:
					c1 := transform.Apply(seg.Args[0])
					c2 := transform.Apply(seg.Args[1])
					end := transform.Apply(seg.Args[2])
					flat.CurveTo(end.X, end.Y, c1.X, c1.Y, c2.X, c2.Y)
				case vector.SegmentOpClose:
					flat.Close()
				}
			}
		}
	}
	return flat
}
