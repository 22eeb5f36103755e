// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/internal/f32color"
	"github.com/suti/textrender/vector"
)

// Style is a paint source: a flat color or a reference to a def.
type Style struct {
	Color f32color.RGBA
	Href  string
}

func (s Style) String() string {
	if s.Href != "" {
		return s.Href
	}
	return s.Color.RGBString()
}

// Context is a small canvas-like surface that renders fills and strokes of
// the current path into an SVG group.
type Context struct {
	document  *Element
	defs      *Element
	lastPath  vector.PathData
	transform f32.Affine
	width     float32
	height    float32

	FillStyle   Style
	StrokeStyle Style
	LineCap     string
	LineJoin    string
	LineWidth   float32
}

// NewContext returns an empty canvas of the given size.
func NewContext(width, height float32) *Context {
	return &Context{
		document:    NewElement("g"),
		defs:        newDefs(),
		transform:   f32.Identity(),
		width:       width,
		height:      height,
		FillStyle:   Style{Color: f32color.Black},
		StrokeStyle: Style{Color: f32color.Black},
		LineCap:     "butt",
		LineJoin:    "miter",
		LineWidth:   2,
	}
}

// BeginPath discards the current path.
func (ctx *Context) BeginPath() {
	ctx.lastPath = nil
}

// MoveTo starts a new subpath.
func (ctx *Context) MoveTo(x, y float32) {
	ctx.lastPath.MoveTo(x, y)
}

// LineTo extends the current subpath with a line.
func (ctx *Context) LineTo(x, y float32) {
	ctx.lastPath.LineTo(x, y)
}

// CurveTo extends the current subpath with a cubic curve.
func (ctx *Context) CurveTo(x1, y1, x2, y2, x, y float32) {
	ctx.lastPath.CurveTo(x, y, x1, y1, x2, y2)
}

// Close closes the current subpath.
func (ctx *Context) Close() {
	ctx.lastPath.Close()
}

// Stroke outlines p, or the current path when p is nil, with the stroke
// style and line width.
func (ctx *Context) Stroke(p vector.PathData) {
	path := ctx.paintPath(p)
	path.Assign("stroke", ctx.StrokeStyle).
		Assign("stroke-width", ctx.LineWidth).
		Assign("fill", ctx.FillStyle)
	ctx.document.Append(path)
}

// Fill paints p, or the current path when p is nil, with the fill style.
func (ctx *Context) Fill(p vector.PathData) {
	path := ctx.paintPath(p)
	path.Assign("stroke", ctx.StrokeStyle).
		Assign("stroke-width", "0").
		Assign("fill", ctx.FillStyle)
	ctx.document.Append(path)
}

func (ctx *Context) paintPath(p vector.PathData) *Element {
	if p == nil {
		p = ctx.lastPath
	}
	path := p.Clone()
	path.Transform(ctx.transform)
	return newPath(path.String()).
		Assign("stroke-linecap", ctx.LineCap).
		Assign("stroke-linejoin", ctx.LineJoin)
}

// SetTransform replaces the current transform.
func (ctx *Context) SetTransform(t f32.Affine) {
	ctx.transform = t
}

// ResetTransform restores the identity transform.
func (ctx *Context) ResetTransform() {
	ctx.transform = f32.Identity()
}

// SVG renders the canvas as a complete document.
func (ctx *Context) SVG() string {
	return newSVG(ctx.width, ctx.height).
		Append(ctx.defs, ctx.document).
		String()
}
