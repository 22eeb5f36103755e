// SPDX-License-Identifier: Unlicense OR MIT

package font

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/opentype/api"

	"github.com/suti/textrender/vector"
)

// Face is an owning handle over one parsed font binary.
type Face struct {
	face font.Face
	upem int32
	asc  int32
	desc int32
}

// ParseFont constructs a Face from source bytes.
func ParseFont(src []byte) (*Face, error) {
	face, err := font.ParseTTF(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed parsing truetype font: %w", err)
	}
	f := &Face{face: face, upem: int32(face.Upem())}
	if extents, ok := face.FontHExtents(); ok {
		f.asc = int32(extents.Ascender)
		f.desc = int32(extents.Descender)
	} else {
		f.asc = f.upem
	}
	return f, nil
}

// Index returns the glyph id for a codepoint, 0 when the cmap has no
// mapping.
func (f *Face) Index(r rune) uint32 {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return uint32(gid)
}

// Outline extracts the glyph for a codepoint. Unmapped codepoints yield
// glyph 0 (the face's .notdef outline), mirroring the cmap contract.
func (f *Face) Outline(r rune) *Glyph {
	gid := font.GID(f.Index(r))
	g := &Glyph{
		AdvanceWidth: int32(f.face.HorizontalAdvance(gid)),
		UnitsPerEm:   f.upem,
		Ascender:     f.asc,
		Descender:    f.desc,
		Code:         r,
		HasCode:      true,
	}
	if outline, ok := f.face.GlyphData(gid).(api.GlyphOutline); ok {
		g.Path = segmentsToPath(outline.Segments)
	}
	return g
}

func segmentsToPath(segs []api.Segment) vector.PathData {
	var p vector.PathData
	for _, seg := range segs {
		switch seg.Op {
		case api.SegmentOpMoveTo:
			p.MoveTo(seg.Args[0].X, seg.Args[0].Y)
		case api.SegmentOpLineTo:
			p.LineTo(seg.Args[0].X, seg.Args[0].Y)
		case api.SegmentOpQuadTo:
			p.QuadTo(seg.Args[1].X, seg.Args[1].Y, seg.Args[0].X, seg.Args[0].Y)
		case api.SegmentOpCubeTo:
			p.CurveTo(seg.Args[2].X, seg.Args[2].Y,
				seg.Args[0].X, seg.Args[0].Y,
				seg.Args[1].X, seg.Args[1].Y)
		}
	}
	if len(p) > 0 {
		p.Close()
	}
	return p
}
