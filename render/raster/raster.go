// SPDX-License-Identifier: Unlicense OR MIT

/*
Package raster renders finalized command lists into images. It is the
pixel sibling of the SVG backend: the same command stream drives an
anti-aliased scanline rasterizer, and art-text textures are composited
through the rasterized glyph silhouette.
*/
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/internal/f32color"
	"github.com/suti/textrender/render"
	"github.com/suti/textrender/vector"
)

// Draw renders the command list onto a fresh transparent canvas.
func Draw(commands render.CommandList, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	r := raster.NewRasterizer(width, height)
	r.UseNonZeroWinding = true
	painter := raster.NewRGBAPainter(dst)

	transform := f32.Identity()
	var current raster.Path
	for _, c := range commands {
		switch c.Op {
		case render.OpTransform:
			transform = c.Transform
		case render.OpPath:
			current = rasterPath(c.Path, transform)
		case render.OpFill:
			if len(current) == 0 {
				continue
			}
			r.Clear()
			r.AddPath(current)
			painter.SetColor(f32color.ParseOrBlack(c.Color).NRGBA())
			r.Rasterize(painter)
		case render.OpStroke:
			if c.Width == 0 || len(current) == 0 {
				continue
			}
			r.Clear()
			r.AddStroke(current, toFixed(float32(c.Width)), raster.RoundCapper, raster.RoundJoiner)
			painter.SetColor(f32color.ParseOrBlack(c.Color).NRGBA())
			r.Rasterize(painter)
		}
	}
	return dst
}

// DrawTexture renders the command list and composites the texture image
// over it, sized to cover the glyph silhouette with center alignment and
// masked by the silhouette's coverage.
func DrawTexture(commands render.CommandList, width, height int, texture []byte) (*image.RGBA, error) {
	dst := Draw(commands, width, height)

	flat := commands.Flatten()
	bbox, ok := flat.Bounds()
	if !ok {
		return dst, nil
	}
	bw := int(math.Ceil(float64(bbox.Width())))
	bh := int(math.Ceil(float64(bbox.Height())))
	if bw <= 0 || bh <= 0 {
		return dst, nil
	}

	img, err := imaging.Decode(bytes.NewReader(texture))
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	cover := imaging.Fill(img, bw, bh, imaging.Center, imaging.Lanczos)

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	r := raster.NewRasterizer(width, height)
	r.UseNonZeroWinding = true
	r.AddPath(rasterPath(flat, f32.Identity()))
	r.Rasterize(raster.NewAlphaSrcPainter(mask))

	origin := image.Pt(int(bbox.X1), int(bbox.Y1))
	rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(bw, bh))}
	draw.DrawMask(dst, rect, cover, image.Point{}, mask, origin, draw.Over)
	return dst, nil
}

// rasterPath converts a transformed path into the rasterizer's fixed-point
// form. Close returns the pen to the subpath start.
func rasterPath(p vector.PathData, t f32.Affine) raster.Path {
	var rp raster.Path
	var start fixed.Point26_6
	var open bool
	for _, seg := range p {
		switch seg.Op {
		case vector.SegmentOpMoveTo:
			pt := toFixedPoint(t.Apply(seg.Args[0]))
			rp.Start(pt)
			start = pt
			open = true
		case vector.SegmentOpLineTo:
			if !open {
				continue
			}
			rp.Add1(toFixedPoint(t.Apply(seg.Args[0])))
		case vector.SegmentOpCurveTo:
			if !open {
				continue
			}
			rp.Add3(
				toFixedPoint(t.Apply(seg.Args[0])),
				toFixedPoint(t.Apply(seg.Args[1])),
				toFixedPoint(t.Apply(seg.Args[2])),
			)
		case vector.SegmentOpClose:
			if !open {
				continue
			}
			rp.Add1(start)
		}
	}
	return rp
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * 64))
}

func toFixedPoint(p f32.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}
