// SPDX-License-Identifier: Unlicense OR MIT

package text

import (
	"math"

	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/font"
	"github.com/suti/textrender/vector"
)

// GlyphSource supplies cached glyphs during layout. The glyphs must stay
// valid for at least as long as the returned layout.
type GlyphSource interface {
	Glyph(family string, r rune) *font.Glyph
}

// Letter is one positioned character: its single-character block, the
// resolved glyph and the metrics assigned during layout.
type Letter struct {
	Block       TextBlock
	Glyph       *font.Glyph
	WritingMode font.WritingMode

	LineHeight           float32
	ParagraphIndentation float32
	TextAlign            string
	Resizing             string
	Align                string
	ParagraphSpacing     float32

	// BWidth is the advance contribution after justification.
	BWidth   float32
	Position f32.Point
	// BaselineToTop and BaselineToBottom are the line's vertical metrics.
	BaselineToTop    float32
	BaselineToBottom float32
}

// Result is a laid-out document.
type Result struct {
	Letters []Letter
	BBoxes  vector.BBoxes
	// MinWidth is the largest single-letter advance, the lower bound the
	// canvas was grown to if needed.
	MinWidth float32
	// Width and Height are the final extents: the primary axis possibly
	// grown to MinWidth, the cross axis summed over lines.
	Width, Height float32
}

// Layout typesets a document: linearize blocks into letters, group words,
// wrap lines against the primary axis, compute per-line baseline metrics,
// align or justify, and assign positions and per-letter boxes.
func Layout(data *TextData, source GlyphSource) *Result {
	p := &data.Paragraph
	mode := p.WritingMode
	width, height := data.Width, data.Height

	paragraphs := make([][]Letter, 0, len(p.Contents))
	for _, content := range p.Contents {
		letters := []Letter{}
		indentation := content.ParagraphIndentation
		for _, block := range content.Blocks {
			for _, r := range block.Text {
				single := block
				single.Text = string(r)
				letters = append(letters, Letter{
					Block:                single,
					Glyph:                source.Glyph(block.FontFamily, r),
					WritingMode:          mode,
					LineHeight:           content.LineHeight,
					ParagraphIndentation: indentation,
					TextAlign:            p.TextAlign,
					Resizing:             p.Resizing,
					Align:                p.Align,
					ParagraphSpacing:     p.ParagraphSpacing,
				})
				indentation = 0
			}
		}
		paragraphs = append(paragraphs, letters)
	}

	var minWidth float32
	for _, letters := range paragraphs {
		for _, letter := range letters {
			if w := letter.Glyph.Spacing(letter.Block.FontSize, mode); w > minWidth {
				minWidth = w
			}
		}
	}

	var limit float32
	if !mode.Vertical() {
		if minWidth > width {
			width = ceil32(minWidth)
		}
		limit = width
	} else {
		if minWidth > height {
			height = ceil32(minWidth)
		}
		limit = height
	}

	var lines [][]Word
	for _, letters := range paragraphs {
		lines = append(lines, autoWrap(limit, PickWords(letters), mode)...)
	}

	if !mode.Vertical() {
		height = 0
		for _, line := range lines {
			top, bottom, ok := lineMetrics(line)
			if ok {
				height += top + bottom
			}
		}
	} else {
		width = 0
		for _, line := range lines {
			top, bottom, ok := lineMetrics(line)
			if ok {
				width += top + bottom
			}
		}
	}

	result := &Result{MinWidth: minWidth, Width: width, Height: height}
	var offset float32
	for index, line := range lines {
		offset = placeLine(result, line, width, height, p.TextAlign, offset, index, mode)
	}

	for _, letter := range result.Letters {
		x := float64(letter.Position.X)
		y := float64(letter.Position.Y)
		w := float64(letter.BWidth)
		top := float64(letter.BaselineToTop)
		bottom := float64(letter.BaselineToBottom)
		if !mode.Vertical() {
			result.BBoxes = append(result.BBoxes, vector.NewBBox(x, y-top, x+w, y+bottom))
		} else {
			result.BBoxes = append(result.BBoxes, vector.NewBBox(x-bottom, y, x+top, y+w))
		}
	}
	return result
}

// autoWrap splits oversize words at character boundaries, then accumulates
// words into lines against the primary-axis limit.
func autoWrap(limit float32, words []Word, mode font.WritingMode) [][]Word {
	var flat []Word
	for _, word := range words {
		if limit < ceil32(word.Spacing()) {
			var running float32
			var letters []Letter
			for _, letter := range word.Letters {
				cw := letter.Glyph.Spacing(letter.Block.FontSize, mode) +
					letter.Block.FontSize*letter.Block.LetterSpacing
				if ceil32(running+cw) > limit {
					if len(letters) > 0 {
						flat = append(flat, Word{Letters: letters})
						letters = nil
					}
					letters = append(letters, letter)
					running = cw
					continue
				}
				letters = append(letters, letter)
				running += cw
			}
			if len(letters) > 0 {
				flat = append(flat, Word{Letters: letters})
			}
			continue
		}
		flat = append(flat, word)
	}

	var lines [][]Word
	var running float32
	for _, word := range flat {
		ww := word.Spacing()
		if ceil32(running+ww) > limit {
			lines = append(lines, []Word{word})
			running = ww
			continue
		}
		if len(lines) == 0 {
			lines = append(lines, []Word{word})
		} else {
			lines[len(lines)-1] = append(lines[len(lines)-1], word)
		}
		running += ww
	}
	return lines
}

// dominant returns the letter with the largest font size; ties keep the
// earliest.
func dominant(line []Word) (Letter, bool) {
	var best Letter
	found := false
	var fontSize float32
	for _, word := range line {
		for _, letter := range word.Letters {
			if !found || letter.Block.FontSize > fontSize {
				fontSize = letter.Block.FontSize
				best = letter
				found = true
			}
		}
	}
	return best, found
}

// lineMetrics computes the baseline-to-top and baseline-to-bottom extents
// of a line from its dominant letter.
func lineMetrics(line []Word) (top, bottom float32, ok bool) {
	letter, found := dominant(line)
	if !found {
		return 0, 0, false
	}
	fontSize := letter.Block.FontSize
	ascender := float32(letter.Glyph.Ascender)
	descender := float32(letter.Glyph.Descender)
	if descender >= 0 {
		descender = -descender
	}
	padding := (letter.LineHeight - 1) * fontSize / 2
	top = fontSize*(ascender/(ascender-descender)) + padding
	bottom = fontSize*(-descender/(ascender-descender)) + padding
	return top, bottom, true
}

type justifyMode uint8

const (
	justifyNone justifyMode = iota
	justifySpace
	justifyWord
)

// placeLine assigns positions for one line and returns the advanced cross
// axis offset.
func placeLine(result *Result, line []Word, width, height float32, textAlign string, offset float32, index int, mode font.WritingMode) float32 {
	if len(line) == 0 {
		return offset
	}
	top, bottom, _ := lineMetrics(line)

	var lineWidth float32
	for _, word := range line {
		lineWidth += word.Spacing()
	}
	if last := line[len(line)-1]; len(last.Letters) > 0 {
		block := last.Letters[len(last.Letters)-1].Block
		lineWidth -= block.LetterSpacing * block.FontSize
	}

	var diff float32
	if !mode.Vertical() {
		diff = width - lineWidth
	} else {
		diff = height - lineWidth
	}

	var paddingLeft float32
	justify := justifyNone
	var justifyValue float32
	switch textAlign {
	case "right":
		paddingLeft = diff
	case "center":
		paddingLeft = diff / 2
	case "justify":
		var spaceTest float32
		for _, word := range line {
			if word.IsBlank() {
				spaceTest += word.Letters[0].Block.FontSize * 0.2
			}
		}
		var wordTest float32
		for i, word := range line {
			if i != len(line)-1 {
				wordTest += word.Letters[len(word.Letters)-1].Block.FontSize * 0.2
			}
		}
		if spaceTest > diff {
			justify = justifySpace
			justifyValue = diff / (spaceTest * 5)
		} else if wordTest > diff {
			justify = justifyWord
			justifyValue = diff / (wordTest * 5)
		}
	}

	var pos f32.Point
	switch mode {
	case font.HorizontalTB:
		extra := float32(0)
		if index != 0 {
			extra = bottom
		}
		pos = f32.Pt(paddingLeft, top+offset+extra)
	case font.VerticalLR:
		extra := float32(0)
		if index != 0 {
			extra = top
		}
		pos = f32.Pt(bottom+offset+extra, paddingLeft)
	case font.VerticalRL:
		pos = f32.Pt(width-(top+offset), paddingLeft)
	}

	for wi, word := range line {
		for li, letter := range word.Letters {
			fontSize := letter.Block.FontSize
			letterSpacing := letter.Block.LetterSpacing
			if wi == len(line)-1 && li == len(word.Letters)-1 {
				letterSpacing = 0
			}
			advance := letter.Glyph.Spacing(fontSize, mode)
			bWidth := advance + fontSize*letterSpacing
			switch justify {
			case justifyWord:
				if wi != len(line)-1 && li == len(word.Letters)-1 {
					bWidth = advance + fontSize*letterSpacing + justifyValue*fontSize
				}
			case justifySpace:
				if word.IsBlank() {
					bWidth = advance + fontSize*letterSpacing + justifyValue*fontSize
				}
			}
			if !mode.Vertical() {
				pos.X += letter.ParagraphIndentation
			} else {
				pos.Y += letter.ParagraphIndentation
			}
			letter.BWidth = bWidth
			letter.Position = pos
			letter.BaselineToTop = top
			letter.BaselineToBottom = bottom
			result.Letters = append(result.Letters, letter)
			if !mode.Vertical() {
				pos.X += bWidth
			} else {
				pos.Y += bWidth
			}
		}
	}

	switch mode {
	case font.VerticalRL:
		offset += top + bottom
	default:
		if index == 0 {
			offset += top
		} else {
			offset += top + bottom
		}
	}
	return offset
}

func ceil32(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
