// SPDX-License-Identifier: Unlicense OR MIT

/*
Package text converts paragraph descriptions into positioned glyphs.

The request data model mirrors the JSON surface: a document holds one
paragraph group with a writing mode and alignment, each paragraph holds
styled text blocks, and an optional art-text section describes gradient,
texture, stroke and shadow layers. Parsing is tolerant: every missing or
mistyped field falls back to its documented default.
*/
package text

import (
	"encoding/json"
	"errors"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/suti/textrender/font"
	"github.com/suti/textrender/internal/f32color"
)

// TextBlock is one styled run of text.
type TextBlock struct {
	Text          string
	FontFamily    string
	FontSize      float32
	LetterSpacing float32
	Fill          string
	Italic        bool
	Stroke        string
	StrokeWidth   float32
	Decoration    string
}

// ParagraphContent is one paragraph: a line height, an indentation applied
// to its first character, and its blocks.
type ParagraphContent struct {
	LineHeight           float32
	ParagraphIndentation float32
	Blocks               []TextBlock
}

// GradientStop is one color stop. The offset is kept as the JSON key
// string; stops are ordered by it.
type GradientStop struct {
	Offset string
	Color  f32color.RGBA
}

// Gradient is a linear gradient fill for art text.
type Gradient struct {
	Type   string
	Vector [2]float32
	Stops  []GradientStop
}

// StrokeLayer is one art-text stroke, outermost last.
type StrokeLayer struct {
	Color f32color.RGBA
	Width float32
}

// ShadowLayer is one art-text shadow.
type ShadowLayer struct {
	Color  f32color.RGBA
	Offset [2]float32
	Blur   float32
}

// ArtText describes the artistic fill of a document.
type ArtText struct {
	Fill    *Gradient
	Texture string
	Strokes []StrokeLayer
	Shadows []ShadowLayer
	Enabled bool
}

// Paragraph is the paragraph group of a document.
type Paragraph struct {
	WritingMode      font.WritingMode
	TextAlign        string
	Resizing         string
	Align            string
	ParagraphSpacing float32
	Contents         []ParagraphContent
	ArtText          *ArtText
}

// TextData is one parsed request: the declared canvas and the paragraph
// group. Source preserves the raw request for diagnostics.
type TextData struct {
	Width     float32
	Height    float32
	Paragraph Paragraph
	Source    string
}

// ErrInvalidInput reports a request that cannot be interpreted as a
// document.
var ErrInvalidInput = errors.New("text: invalid text data")

// ParseTextData interprets a request body. It fails only when the JSON is
// unparseable or the paragraph/contents/blocks structure is missing; every
// field-level problem falls back to a default.
func ParseTextData(src string) (*TextData, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		return nil, ErrInvalidInput
	}
	data := &TextData{
		Width:  getDimension(raw, "width"),
		Height: getDimension(raw, "height"),
		Source: src,
	}
	paragraph, ok := raw["paragraph"].(map[string]any)
	if !ok {
		return nil, ErrInvalidInput
	}
	p := &data.Paragraph
	p.TextAlign = getString(paragraph, "textAlign", "center")
	p.Resizing = getString(paragraph, "resizing", "grow-vertically")
	p.Align = getString(paragraph, "align", "middle")
	p.ParagraphSpacing = getNumber(paragraph, "paragraphSpacing", 0)
	switch getString(paragraph, "writingMode", "") {
	case "vertical-rl":
		p.WritingMode = font.VerticalRL
	case "vertical-lr":
		p.WritingMode = font.VerticalLR
	default:
		p.WritingMode = font.HorizontalTB
	}
	if advanced, ok := paragraph["advancedData"].(map[string]any); ok {
		p.ArtText = parseArtText(advanced)
	}
	contents, ok := paragraph["contents"].([]any)
	if !ok {
		return nil, ErrInvalidInput
	}
	for _, item := range contents {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		content := ParagraphContent{
			LineHeight:           getNumber(obj, "lineHeight", 1.2),
			ParagraphIndentation: getNumber(obj, "paragraphIndentation", 0),
		}
		blocks, ok := obj["blocks"].([]any)
		if !ok {
			return nil, ErrInvalidInput
		}
		for _, item := range blocks {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			content.Blocks = append(content.Blocks, TextBlock{
				Text:          getString(obj, "text", ""),
				FontFamily:    getString(obj, "fontFamily", "default"),
				FontSize:      getNumber(obj, "fontSize", 16),
				LetterSpacing: getNumber(obj, "letterSpacing", 0),
				Fill:          getString(obj, "fill", "#000000"),
				Italic:        getBool(obj, "italic", false),
				Stroke:        getString(obj, "stroke", "#000000"),
				StrokeWidth:   getNumber(obj, "strokeWidth", 0),
				Decoration:    getString(obj, "decoration", ""),
			})
		}
		p.Contents = append(p.Contents, content)
	}
	return data, nil
}

func parseArtText(advanced map[string]any) *ArtText {
	art := &ArtText{Enabled: getBool(advanced, "use", true)}
	art.Texture = getString(advanced, "texture", "")

	fill := &Gradient{Type: "linear", Vector: [2]float32{0, 1}}
	fill.Stops = []GradientStop{{Offset: "0", Color: f32color.Black}}
	if obj, ok := advanced["fill"].(map[string]any); ok {
		if stops, ok := obj["stop"].(map[string]any); ok {
			fill.Stops = fill.Stops[:0]
			keys := make([]string, 0, len(stops))
			for key := range stops {
				keys = append(keys, key)
			}
			slices.Sort(keys)
			for _, key := range keys {
				value, _ := stops[key].(string)
				color, ok := f32color.Parse(value)
				if !ok {
					color = f32color.Black
				}
				fill.Stops = append(fill.Stops, GradientStop{Offset: key, Color: color})
			}
		}
		if vec, ok := obj["vector"].([]any); ok {
			fill.Vector = [2]float32{indexNumber(vec, 0, 0), indexNumber(vec, 1, 0)}
		} else {
			fill.Vector = [2]float32{0, 0}
		}
	}
	art.Fill = fill

	if strokes, ok := advanced["stroke"].([]any); ok {
		for _, item := range strokes {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if hidden, ok := obj["hidden"].(bool); ok && hidden {
				continue
			}
			if _, ok := obj["width"]; !ok {
				continue
			}
			layer := StrokeLayer{Color: f32color.Black, Width: getNumber(obj, "width", 0)}
			if s, ok := obj["color"].(string); ok {
				if color, ok := f32color.Parse(s); ok {
					layer.Color = color
				}
			}
			art.Strokes = append(art.Strokes, layer)
		}
	}

	if shadows, ok := advanced["shadow"].([]any); ok {
		for _, item := range shadows {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if hidden, ok := obj["hidden"].(bool); ok && hidden {
				continue
			}
			layer := ShadowLayer{Color: f32color.Black, Blur: getNumber(obj, "blur", 0)}
			if s, ok := obj["color"].(string); ok {
				if color, ok := f32color.Parse(s); ok {
					layer.Color = color
				}
			}
			if offset, ok := obj["offset"].([]any); ok {
				layer.Offset = [2]float32{indexNumber(offset, 0, 0), indexNumber(offset, 1, 0)}
			}
			art.Shadows = append(art.Shadows, layer)
		}
	}
	return art
}

// getDimension reads a canvas dimension that may arrive as a number or a
// numeric string.
func getDimension(obj map[string]any, key string) float32 {
	switch v := obj[key].(type) {
	case float64:
		return float32(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return float32(f)
		}
	}
	return 200
}

func getNumber(obj map[string]any, key string, def float32) float32 {
	if v, ok := obj[key].(float64); ok {
		return float32(v)
	}
	return def
}

func getString(obj map[string]any, key, def string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return def
}

func getBool(obj map[string]any, key string, def bool) bool {
	if v, ok := obj[key].(bool); ok {
		return v
	}
	return def
}

func indexNumber(arr []any, i int, def float32) float32 {
	if i < len(arr) {
		if v, ok := arr[i].(float64); ok {
			return float32(v)
		}
	}
	return def
}
