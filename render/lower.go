// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"math"

	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/text"
	"github.com/suti/textrender/vector"
)

// canonicalSize is the font size path table entries are baked at.
const canonicalSize = 100

// italicSkew is -sin(15°), the horizontal shear of italic glyphs.
var italicSkew = float32(-math.Sin(15 * math.Pi / 180))

// PathKey identifies a path table entry.
type PathKey struct {
	Family string
	Code   rune
}

// PathTable maps each referenced (family, codepoint) pair to its outline
// baked at canonicalSize.
type PathTable map[PathKey]vector.PathData

// Lower emits the command sequence and path table for positioned letters.
// Each letter yields a transform, a table reference, a fill and a stroke,
// plus decoration commands when the block carries one.
func Lower(letters []text.Letter) (PathTable, []Command) {
	table := make(PathTable)
	for i := range letters {
		letter := &letters[i]
		path := letter.Glyph.PathAt(0, 0, canonicalSize, letter.WritingMode)
		for _, r := range letter.Block.Text {
			table[PathKey{letter.Block.FontFamily, r}] = path
		}
	}

	var commands []Command
	for i := range letters {
		letter := &letters[i]
		for _, r := range letter.Block.Text {
			commands = append(commands,
				letterTransform(letter),
				Command{
					Op:     OpUse,
					Family: letter.Block.FontFamily,
					Code:   r,
					Size:   float64(letter.Block.FontSize),
				},
				Command{Op: OpFill, Color: letter.Block.Fill},
				letterStroke(letter),
			)
			commands = append(commands, letterDecoration(letter)...)
		}
	}
	return table, commands
}

// letterTransform positions a glyph, shearing italics around the baseline.
func letterTransform(letter *text.Letter) Command {
	var c float32
	if letter.Block.Italic {
		c = italicSkew
	}
	x, y := letter.Position.X, letter.Position.Y
	return Command{
		Op: OpTransform,
		Transform: f32.NewAffine(
			1, 0, c, 1,
			x-letter.LineHeight*c, y,
		),
	}
}

// letterStroke derives the stroke from the block. Widths scale with the
// font size; barely visible widths are floored to 0.42 because thinner
// strokes collapse when rasterized.
func letterStroke(letter *text.Letter) Command {
	width := float64(letter.Block.StrokeWidth) * float64(letter.Block.FontSize) / 20
	if width > 0 && width < 0.42 {
		width = 0.42
	}
	return Command{Op: OpStroke, Color: letter.Block.Fill, Width: width}
}

// letterDecoration emits the underline triple. Overline and line-through
// are reserved and render nothing.
func letterDecoration(letter *text.Letter) []Command {
	if letter.Block.Decoration != "underline" {
		return nil
	}
	fontSize := letter.Block.FontSize
	lineWidth := 0.04 * fontSize
	x, y := letter.Position.X, letter.Position.Y
	y += lineWidth
	bWidth := letter.BWidth

	var path vector.PathData
	if !letter.WritingMode.Vertical() {
		path.MoveTo(x, y)
		path.LineTo(x+bWidth, y)
		path.LineTo(x+bWidth, y+lineWidth)
		path.LineTo(x, y+lineWidth)
		path.LineTo(x, y)
		path.Close()
	} else {
		path.MoveTo(x, y)
		path.LineTo(x, y+bWidth)
		path.LineTo(x+lineWidth, y+bWidth)
		path.LineTo(x+lineWidth, y)
		path.LineTo(x, y)
		path.Close()
	}
	return []Command{
		{Op: OpTransform, Transform: f32.Identity(), Reset: true},
		{Op: OpPath, Path: path},
		{Op: OpFill, Color: letter.Block.Fill},
	}
}
