// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/suti/textrender/render"
	"github.com/suti/textrender/text"
	"github.com/suti/textrender/vector"
)

// RenderArtText draws a command list with its artistic layers: shadows
// outermost-first, then strokes, then the interior texture or gradient
// masked by the glyph silhouette. refSize scales stroke and shadow widths;
// texture holds the fetched image bytes, nil when the document has none.
func RenderArtText(commands render.CommandList, width, height, refSize float32, art *text.ArtText, texture []byte) string {
	if art == nil || (art.Fill == nil && len(art.Strokes) == 0 && len(art.Shadows) == 0) {
		return RenderText(commands, width, height, 1)
	}

	flat := commands.Flatten()
	bbox, ok := flat.Bounds()
	if !ok {
		bbox = vector.NewBoundingBox(0, 0)
	}
	id := newID()
	// Shadow offsets and blurs are fractions of the canvas diagonal.
	diag := float32(math.Sqrt(float64(width*width + height*height)))

	var maxStrokeWidth float32
	if len(art.Strokes) > 0 {
		maxStrokeWidth = art.Strokes[len(art.Strokes)-1].Width
	}
	strokeBox := bbox
	strokeBox.Extend(maxStrokeWidth)
	unionBox := strokeBox
	for _, shadow := range art.Shadows {
		shadowBox := strokeBox
		shadowBox.Extend(shadow.Blur * diag * 2)
		shadowBox.Translate(shadow.Offset[0]*diag*2, shadow.Offset[1]*diag*2)
		unionBox = unionBox.Merge(shadowBox)
	}

	defs := newDefs()
	content := group()
	silhouette := newPath(flat.String()).Assign("id", id+"-path")
	defs.Append(silhouette)

	if len(art.Shadows) > 0 {
		defs.Append(newStyle(fmt.Sprintf(
			".%s-shadow { stroke-width: %v; stroke: #000000; fill: #ffffff; }",
			id, maxStrokeWidth*refSize)))
		for i := len(art.Shadows) - 1; i >= 0; i-- {
			shadow := art.Shadows[i]
			use := newUse(id + "-path").Assign("class", id+"-shadow")
			g := group(use)
			applyShadow(defs, g, shadow.Color,
				[2]float32{shadow.Offset[0] * diag, shadow.Offset[1] * diag},
				shadow.Blur*diag)
			content.Append(g)
		}
	}

	for i := len(art.Strokes) - 1; i >= 0; i-- {
		stroke := art.Strokes[i]
		g := group(newUse(id + "-path")).
			Assign("stroke-width", stroke.Width*refSize).
			Assign("stroke", stroke.Color.RGBString()).
			Assign("fill", stroke.Color.RGBString())
		content.Append(g)
	}

	maskUse := newUse(id + "-path").Assign("fill", "#ffffff")
	defs.Append(newMask(id+"-mask", maskUse))

	if art.Texture != "" && texture != nil {
		content.Append(textureGroup(texture, bbox, id))
	}
	if art.Fill != nil {
		defs.Append(newLinearGradient(art.Fill.Vector, art.Fill.Stops, id+"-linear"))
		rect := newRect(width, height, 0, 0).
			Assign("fill", fmt.Sprintf("url(#%s-linear)", id))
		content.Append(group(rect).Assign("mask", fmt.Sprintf("url(#%s-mask)", id)))
	}

	unionBox = unionBox.Merge(vector.BoundingBox{X2: width, Y2: height})
	w := unionBox.Width()
	h := unionBox.Height()
	var dx, dy float32
	if unionBox.X1 < 0 {
		dx = unionBox.X1
	}
	if unionBox.Y1 < 0 {
		dy = unionBox.Y1
	}

	return newSVG(w, h).
		Assign("viewBox", fmt.Sprintf("%v %v %v %v", dx, dy, w, h)).
		Append(defs, content).
		String()
}

// textureGroup sizes the texture to cover the silhouette box with center
// alignment and masks it by the silhouette.
func textureGroup(texture []byte, bbox vector.BoundingBox, id string) *Element {
	bw, bh := bbox.Width(), bbox.Height()
	cw, ch := bw, bh
	x, y := bbox.X1, bbox.Y1
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(texture)); err == nil && cfg.Height > 0 {
		iw, ih := float32(cfg.Width), float32(cfg.Height)
		if bw/bh > iw/ih {
			cw = bw
			ch = bw / iw * ih
			y -= (ch - bh) / 2
		} else {
			ch = bh
			cw = bh / ih * iw
			x -= (cw - bw) / 2
		}
	}
	img := newImage("data:image/png;base64," + base64.StdEncoding.EncodeToString(texture)).
		Assign("x", x).
		Assign("y", y).
		Assign("width", cw).
		Assign("height", ch)
	return group(img).Assign("mask", fmt.Sprintf("url(#%s-mask)", id))
}
