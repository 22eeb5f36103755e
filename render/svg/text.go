// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/internal/f32color"
	"github.com/suti/textrender/render"
	"github.com/suti/textrender/vector"
)

// RenderText draws a finalized command list as plain filled and stroked
// paths.
func RenderText(commands render.CommandList, width, height, scale float32) string {
	ctx := NewContext(width, height)
	ctx.LineCap = "round"
	ctx.LineJoin = "round"

	for _, c := range commands {
		switch c.Op {
		case render.OpPath:
			path := c.Path.Clone()
			path.Transform(f32.NewAffine(scale, 0, 0, scale, 0, 0))
			ctx.BeginPath()
			for _, seg := range path {
				switch seg.Op {
				case vector.SegmentOpMoveTo:
					ctx.MoveTo(seg.Args[0].X, seg.Args[0].Y)
				case vector.SegmentOpLineTo:
					ctx.LineTo(seg.Args[0].X, seg.Args[0].Y)
				case vector.SegmentOpCurveTo:
					ctx.CurveTo(seg.Args[0].X, seg.Args[0].Y,
						seg.Args[1].X, seg.Args[1].Y,
						seg.Args[2].X, seg.Args[2].Y)
				case vector.SegmentOpClose:
					ctx.Close()
				}
			}
		case render.OpFill:
			color := f32color.ParseOrBlack(c.Color)
			ctx.FillStyle = Style{Color: color}
			ctx.StrokeStyle = Style{Color: color}
			ctx.Fill(nil)
		case render.OpStroke:
			if c.Width == 0 {
				continue
			}
			ctx.StrokeStyle = Style{Color: f32color.ParseOrBlack(c.Color)}
			ctx.LineWidth = float32(c.Width)
			ctx.Stroke(nil)
		case render.OpTransform:
			if c.Reset {
				ctx.ResetTransform()
			}
			ctx.SetTransform(c.Transform)
		}
	}
	return ctx.SVG()
}
