// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/vector"
)

// Finalize walks the command sequence once, replacing every Use with its
// table path scaled from the canonical size to the referenced font size.
// All other commands pass through verbatim. The result is concrete enough
// for any backend.
func Finalize(table PathTable, commands []Command) CommandList {
	out := make(CommandList, 0, len(commands))
	for _, c := range commands {
		if c.Op != OpUse {
			out = append(out, c)
			continue
		}
		path := table[PathKey{c.Family, c.Code}].Clone()
		scale := float32(c.Size) / canonicalSize
		path.Transform(f32.NewAffine(scale, 0, 0, scale, 0, 0))
		out = append(out, Command{Op: OpPath, Path: path})
	}
	return out
}

// Pack serializes a rendered document into the flat float32 transport:
// the -5 header with the minimum word width and canvas, the bounding box
// block, then the command block.
func Pack(minWidth, width, height float32, boxes vector.BBoxes, commands CommandList) []float32 {
	dst := []float32{-5, minWidth, width, height}
	dst = boxes.AppendF32(dst)
	return commands.AppendF32(dst)
}
