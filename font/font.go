// SPDX-License-Identifier: Unlicense OR MIT

/*
Package font turns font binaries into cached glyph outlines.

A Face wraps one parsed font binary and extracts a Glyph per codepoint on
demand. The process-wide Cache stores every extracted Glyph in an
append-only store so layout structures can hold glyph pointers for as long
as they like, and tracks font versions for lazy hot reload.
*/
package font

import (
	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/vector"
)

// WritingMode selects the axis characters advance along.
type WritingMode uint8

const (
	HorizontalTB WritingMode = iota
	VerticalRL
	VerticalLR
)

// Vertical reports whether the mode advances characters along y.
func (m WritingMode) Vertical() bool {
	return m != HorizontalTB
}

// Glyph is one extracted outline with the font-global metrics needed to
// scale and place it. The outline is in font design units, y up.
type Glyph struct {
	Path            vector.PathData
	AdvanceWidth    int32
	UnitsPerEm      int32
	Ascender        int32
	Descender       int32
	LeftSideBearing int32
	// Code is the codepoint the glyph was extracted for. HasCode is false
	// on the none glyph.
	Code    rune
	HasCode bool
}

// None returns the glyph used for unmapped codepoints: empty outline, zero
// advance, a notional 1000-unit em.
func None() *Glyph {
	return &Glyph{
		UnitsPerEm: 1000,
		Ascender:   900,
		Descender:  -100,
	}
}

// isOrientation reports whether a codepoint keeps its horizontal
// orientation (and advance) in vertical writing modes. The set is basic
// ASCII.
func isOrientation(c rune) bool {
	return c > 32 && c <= 126 || c == 32
}

// AdvanceX returns the horizontal advance scaled to fontSize.
func (g *Glyph) AdvanceX(fontSize float32) float32 {
	return float32(g.AdvanceWidth) / float32(g.UnitsPerEm) * fontSize
}

// AdvanceY returns the vertical advance scaled to fontSize. The division
// happens in font-unit integers before scaling; this truncation is kept
// for parity with existing renders.
func (g *Glyph) AdvanceY(fontSize float32) float32 {
	if g.AdvanceWidth == 0 {
		return 0
	}
	return float32((g.Ascender-g.Descender)/g.UnitsPerEm) * fontSize
}

// Spacing returns the advance contribution of the glyph along the primary
// axis of the writing mode.
func (g *Glyph) Spacing(fontSize float32, mode WritingMode) float32 {
	if !mode.Vertical() {
		return g.AdvanceX(fontSize)
	}
	if g.HasCode && isOrientation(g.Code) {
		return g.AdvanceX(fontSize)
	}
	return g.AdvanceY(fontSize)
}

// PathAt returns a copy of the outline scaled to fontSize and placed at
// (x, y) with y flipped into screen space. In vertical modes, ASCII glyphs
// are rotated a quarter turn and all others are recentered under the
// baseline.
func (g *Glyph) PathAt(x, y, fontSize float32, mode WritingMode) vector.PathData {
	path := g.Path.Clone()
	scale := 1 / float32(g.UnitsPerEm) * fontSize
	t := f32.NewAffine(scale, 0, 0, -scale, x, y)
	if mode.Vertical() {
		if g.HasCode && isOrientation(g.Code) {
			t = t.Rotate(-90)
		} else {
			dx := -0.05 * fontSize / scale
			dy := -float32(g.Ascender) / float32(g.Ascender-g.Descender) * fontSize / scale
			t = t.Translate(dx, dy)
		}
	}
	path.Transform(t)
	return path
}
