// SPDX-License-Identifier: Unlicense OR MIT

package svg

import (
	"fmt"

	"github.com/suti/textrender/internal/f32color"
	"github.com/suti/textrender/text"
)

func newSVG(width, height float32) *Element {
	return NewElement("svg").
		Assign("xmlns", "http://www.w3.org/2000/svg").
		Assign("xmlns:xlink", "http://www.w3.org/1999/xlink").
		Assign("width", width).
		Assign("height", height).
		Assign("viewBox", fmt.Sprintf("0 0 %v %v", width, height))
}

func newStyle(css string) *Element {
	style := NewElement("style")
	style.content = css
	return style
}

func newImage(href string) *Element {
	return NewElement("image").Assign("xlink:href", href)
}

func group(children ...*Element) *Element {
	return NewElement("g").Append(children...)
}

func newPath(d string) *Element {
	return NewElement("path").
		Assign("d", d).
		Assign("stroke-linecap", "round").
		Assign("stroke-linejoin", "round")
}

func newRect(width, height, x, y float32) *Element {
	return NewElement("rect").
		Assign("width", width).
		Assign("height", height).
		Assign("x", x).
		Assign("y", y)
}

func newDefs() *Element {
	return NewElement("defs")
}

func newUse(id string) *Element {
	return NewElement("use").Assign("xlink:href", "#"+id)
}

func newMask(id string, children ...*Element) *Element {
	return NewElement("mask").Assign("id", id).Append(children...)
}

func newLinearGradient(vector [2]float32, stops []text.GradientStop, id string) *Element {
	lg := NewElement("linearGradient").
		Assign("id", id).
		Assign("x1", 0).
		Assign("y1", 0).
		Assign("x2", fmt.Sprintf("%v%%", vector[0]*100)).
		Assign("y2", fmt.Sprintf("%v%%", vector[1]*100))
	for _, stop := range stops {
		lg.Append(NewElement("stop").
			Assign("offset", stop.Offset).
			Assign("stop-color", stop.Color.RGBAString()))
	}
	return lg
}

// applyShadow registers a drop-shadow filter in defs and points the target
// element at it: recolor the alpha, offset, blur, then merge the source on
// top.
func applyShadow(defs, target *Element, color f32color.RGBA, offset [2]float32, blur float32) {
	id := fmt.Sprintf("shadow-%d%d%d%v%v%v%v",
		color.R, color.G, color.B, color.A, offset[0], offset[1], blur)

	colorMatrix := NewElement("feColorMatrix").
		Assign("type", "matrix").
		Assign("in", "SourceAlpha").
		Assign("result", "matrix").
		Assign("color-interpolation-filters", "sRGB").
		Assign("values", fmt.Sprintf(" 0 0 0 0 %v 0 0 0 0 %v 0 0 0 0 %v 0 0 0 %v 0",
			float32(color.R)/255, float32(color.G)/255, float32(color.B)/255, color.A))

	feOffset := NewElement("feOffset").
		Assign("dx", offset[0]).
		Assign("dy", offset[1]).
		Assign("in", "matrix").
		Assign("result", "offset")

	blurEl := NewElement("feGaussianBlur").
		Assign("stdDeviation", blur).
		Assign("in", "offset").
		Assign("result", "blur")

	merge := NewElement("feMerge").Append(
		NewElement("feMergeNode").Assign("in", "blur"),
		NewElement("feMergeNode").Assign("in", "SourceGraphic"),
	)

	filter := NewElement("filter").Append(colorMatrix, feOffset, blurEl, merge).
		Assign("x", "-150%").
		Assign("y", "-150%").
		Assign("width", "400%").
		Assign("height", "400%").
		Assign("id", id)

	defs.Append(filter)
	target.Assign("filter", fmt.Sprintf("url(#%s)", id))
}
