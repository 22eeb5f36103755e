// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"testing"

	"github.com/suti/textrender/font"
)

func TestParseDefaults(t *testing.T) {
	data, err := ParseTextData(`{"paragraph":{"contents":[{"blocks":[{"text":"hi"}]}]}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.Width != 200 || data.Height != 200 {
		t.Errorf("canvas: have %vx%v, want 200x200", data.Width, data.Height)
	}
	p := data.Paragraph
	if p.WritingMode != font.HorizontalTB || p.TextAlign != "center" ||
		p.Resizing != "grow-vertically" || p.Align != "middle" {
		t.Errorf("paragraph defaults wrong: %+v", p)
	}
	if len(p.Contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(p.Contents))
	}
	c := p.Contents[0]
	if c.LineHeight != 1.2 || c.ParagraphIndentation != 0 {
		t.Errorf("content defaults wrong: %+v", c)
	}
	if len(c.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(c.Blocks))
	}
	b := c.Blocks[0]
	if b.FontFamily != "default" || b.FontSize != 16 || b.Fill != "#000000" ||
		b.Stroke != "#000000" || b.Italic || b.StrokeWidth != 0 || b.Decoration != "" {
		t.Errorf("block defaults wrong: %+v", b)
	}
}

func TestParseStringDimensions(t *testing.T) {
	data, err := ParseTextData(`{"width":"320","height":"64.5","paragraph":{"contents":[]}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if data.Width != 320 || data.Height != 64.5 {
		t.Errorf("have %vx%v, want 320x64.5", data.Width, data.Height)
	}
}

func TestParseRejectsBrokenStructure(t *testing.T) {
	for _, src := range []string{
		`not json`,
		`{"width":10}`,
		`{"paragraph":{"contents":[{"lineHeight":1}]}}`, // content without blocks
		`{"paragraph":"flat"}`,
	} {
		if _, err := ParseTextData(src); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestParseWritingModes(t *testing.T) {
	for s, want := range map[string]font.WritingMode{
		"horizontal-tb": font.HorizontalTB,
		"vertical-rl":   font.VerticalRL,
		"vertical-lr":   font.VerticalLR,
		"sideways":      font.HorizontalTB,
	} {
		data, err := ParseTextData(`{"paragraph":{"writingMode":"` + s + `","contents":[]}}`)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if data.Paragraph.WritingMode != want {
			t.Errorf("%q: have %v, want %v", s, data.Paragraph.WritingMode, want)
		}
	}
}

func TestParseArtText(t *testing.T) {
	src := `{"paragraph":{"contents":[],"advancedData":{
		"fill":{"stop":{"1":"#0000ff","0":"rgba(255,0,0,0.5)"},"vector":[0.5,1]},
		"texture":"//img.example/t.png",
		"stroke":[
			{"color":"#102030","width":2},
			{"color":"#ffffff","width":4,"hidden":true},
			{"color":"#808080"}
		],
		"shadow":[{"color":"rgb(9,8,7)","offset":[0.1,0.2],"blur":0.3}]
	}}}`
	data, err := ParseTextData(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	art := data.Paragraph.ArtText
	if art == nil {
		t.Fatal("artText missing")
	}
	if !art.Enabled {
		t.Error("enabled should default to true")
	}
	if art.Texture != "//img.example/t.png" {
		t.Errorf("texture: %q", art.Texture)
	}
	if art.Fill == nil || len(art.Fill.Stops) != 2 {
		t.Fatalf("gradient stops: %+v", art.Fill)
	}
	// Stops are ordered by their offset key.
	if art.Fill.Stops[0].Offset != "0" || art.Fill.Stops[1].Offset != "1" {
		t.Errorf("stop order: %+v", art.Fill.Stops)
	}
	if art.Fill.Stops[0].Color.R != 255 || art.Fill.Stops[0].Color.A != 0.5 {
		t.Errorf("stop color: %+v", art.Fill.Stops[0].Color)
	}
	if art.Fill.Vector != [2]float32{0.5, 1} {
		t.Errorf("vector: %v", art.Fill.Vector)
	}
	// Hidden layers and width-less layers are dropped.
	if len(art.Strokes) != 1 {
		t.Fatalf("strokes: %+v", art.Strokes)
	}
	if art.Strokes[0].Width != 2 || art.Strokes[0].Color.B != 0x30 {
		t.Errorf("stroke layer: %+v", art.Strokes[0])
	}
	if len(art.Shadows) != 1 {
		t.Fatalf("shadows: %+v", art.Shadows)
	}
	sh := art.Shadows[0]
	if sh.Blur != 0.3 || sh.Offset != [2]float32{0.1, 0.2} || sh.Color.R != 9 {
		t.Errorf("shadow layer: %+v", sh)
	}
}

func TestParseArtTextDefaultFill(t *testing.T) {
	data, err := ParseTextData(`{"paragraph":{"contents":[],"advancedData":{"use":false}}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	art := data.Paragraph.ArtText
	if art == nil || art.Fill == nil {
		t.Fatal("fill must be present whenever advancedData is")
	}
	if art.Enabled {
		t.Error("use:false must clear Enabled")
	}
	if art.Fill.Vector != [2]float32{0, 1} || len(art.Fill.Stops) != 1 {
		t.Errorf("default gradient wrong: %+v", art.Fill)
	}
}
