// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"math"
	"testing"

	"github.com/suti/textrender/f32"
	"github.com/suti/textrender/font"
	"github.com/suti/textrender/text"
	"github.com/suti/textrender/vector"
)

func testGlyph(r rune) *font.Glyph {
	g := &font.Glyph{
		AdvanceWidth: 500,
		UnitsPerEm:   1000,
		Ascender:     800,
		Descender:    -200,
		Code:         r,
		HasCode:      true,
	}
	g.Path.MoveTo(0, 0)
	g.Path.LineTo(400, 0)
	g.Path.LineTo(400, 600)
	g.Path.Close()
	return g
}

func testLetter(r rune, x, y float32) text.Letter {
	return text.Letter{
		Block: text.TextBlock{
			Text:       string(r),
			FontFamily: "default",
			FontSize:   20,
			Fill:       "#102030",
		},
		Glyph:      testGlyph(r),
		LineHeight: 1.2,
		BWidth:     10,
		Position:   f32.Pt(x, y),
	}
}

func TestLowerEmitsPerLetterCommands(t *testing.T) {
	letters := []text.Letter{testLetter('A', 0, 18), testLetter('B', 10, 18)}
	table, commands := Lower(letters)
	if len(table) != 2 {
		t.Fatalf("path table entries: have %d, want 2", len(table))
	}
	if len(commands) != 8 {
		t.Fatalf("commands: have %d, want 8", len(commands))
	}
	wantOps := []Op{OpTransform, OpUse, OpFill, OpStroke}
	for i, c := range commands {
		if c.Op != wantOps[i%4] {
			t.Errorf("command %d: have op %v, want %v", i, c.Op, wantOps[i%4])
		}
	}
	use := commands[1]
	if use.Family != "default" || use.Code != 'A' || use.Size != 20 {
		t.Errorf("use command wrong: %+v", use)
	}
	if commands[2].Color != "#102030" {
		t.Errorf("fill color: %q", commands[2].Color)
	}
}

func TestLowerDeduplicatesPaths(t *testing.T) {
	letters := []text.Letter{
		testLetter('A', 0, 18),
		testLetter('A', 10, 18),
		testLetter('A', 20, 18),
	}
	table, commands := Lower(letters)
	if len(table) != 1 {
		t.Fatalf("path table entries: have %d, want 1", len(table))
	}
	var uses int
	for _, c := range commands {
		if c.Op == OpUse {
			uses++
		}
	}
	if uses != 3 {
		t.Errorf("uses: have %d, want 3", uses)
	}
}

func TestLowerPathTableCanonicalScale(t *testing.T) {
	table, _ := Lower([]text.Letter{testLetter('A', 0, 0)})
	path := table[PathKey{"default", 'A'}]
	if len(path) == 0 {
		t.Fatal("missing table entry")
	}
	// Baked at size 100 over a 1000-unit em: 400 units scale to 40, with y
	// flipped.
	end := path[1].End()
	if end.X != 40 || end.Y != 0 {
		t.Errorf("first line end: %v, want {40 0}", end)
	}
	end = path[2].End()
	if end.X != 40 || end.Y != -60 {
		t.Errorf("second line end: %v, want {40 -60}", end)
	}
}

func TestItalicTransform(t *testing.T) {
	plain := testLetter('A', 5, 18)
	italic := testLetter('A', 5, 18)
	italic.Block.Italic = true
	_, commands := Lower([]text.Letter{plain, italic})
	pt := commands[0].Transform
	it := commands[4].Transform
	if pt.C != 0 || pt.E != 5 {
		t.Errorf("plain transform: %+v", pt)
	}
	wantSkew := float32(-math.Sin(15 * math.Pi / 180))
	if math.Abs(float64(it.C-wantSkew)) > 1e-6 {
		t.Errorf("italic skew: have %v, want %v", it.C, wantSkew)
	}
	wantE := 5 - 1.2*wantSkew
	if math.Abs(float64(it.E-wantE)) > 1e-5 {
		t.Errorf("italic e: have %v, want %v", it.E, wantE)
	}
	if it.F != pt.F || it.A != 1 || it.D != 1 || it.B != 0 {
		t.Errorf("italic transform drifted: %+v", it)
	}
}

func TestStrokeWidthFloor(t *testing.T) {
	tests := []struct {
		strokeWidth float32
		want        float64
	}{
		{0, 0},
		{0.1, 0.42}, // 0.1·20/20 = 0.1 collapses, floored
		{2, 2},
	}
	for _, tc := range tests {
		letter := testLetter('A', 0, 0)
		letter.Block.StrokeWidth = tc.strokeWidth
		_, commands := Lower([]text.Letter{letter})
		stroke := commands[3]
		if stroke.Width != tc.want {
			t.Errorf("strokeWidth %v: have %v, want %v", tc.strokeWidth, stroke.Width, tc.want)
		}
	}
}

func TestUnderlineDecoration(t *testing.T) {
	letter := testLetter('A', 3, 18)
	letter.Block.Decoration = "underline"
	_, commands := Lower([]text.Letter{letter})
	if len(commands) != 7 {
		t.Fatalf("commands: have %d, want 7", len(commands))
	}
	reset := commands[4]
	if reset.Op != OpTransform || !reset.Reset {
		t.Errorf("decoration must reset the transform: %+v", reset)
	}
	deco := commands[5]
	if deco.Op != OpPath || len(deco.Path) != 6 {
		t.Fatalf("decoration path: %+v", deco)
	}
	// Thickness 0.04·20 = 0.8, placed one thickness below the baseline.
	start := deco.Path[0].Args[0]
	if start.X != 3 || math.Abs(float64(start.Y-18.8)) > 1e-5 {
		t.Errorf("underline start: %v, want {3 18.8}", start)
	}
	if commands[6].Op != OpFill {
		t.Errorf("decoration fill missing: %+v", commands[6])
	}
}

func TestFinalizeExpandsUses(t *testing.T) {
	letters := []text.Letter{testLetter('A', 0, 18)}
	table, commands := Lower(letters)
	final := Finalize(table, commands)
	if len(final) != len(commands) {
		t.Fatalf("finalize changed command count: %d != %d", len(final), len(commands))
	}
	for _, c := range final {
		if c.Op == OpUse {
			t.Fatal("use survived finalization")
		}
	}
	path := final[1]
	if path.Op != OpPath {
		t.Fatalf("use was not replaced by a path: %+v", path)
	}
	// Size 20 over canonical 100: the 40-unit edge shrinks to 8.
	if end := path.Path[1].End(); end.X != 8 || end.Y != 0 {
		t.Errorf("scaled end: %v, want {8 0}", end)
	}
	// The table keeps the canonical path untouched.
	if end := table[PathKey{"default", 'A'}][1].End(); end.X != 40 {
		t.Errorf("table entry was mutated: %v", end)
	}
}

func TestFinalizeMissingEntryYieldsEmptyPath(t *testing.T) {
	commands := []Command{{Op: OpUse, Family: "ghost", Code: 'x', Size: 10}}
	final := Finalize(PathTable{}, commands)
	if final[0].Op != OpPath || len(final[0].Path) != 0 {
		t.Errorf("missing entry: %+v", final[0])
	}
}

func TestFlatten(t *testing.T) {
	var p vector.PathData
	p.MoveTo(1, 1)
	p.LineTo(2, 1)
	list := CommandList{
		{Op: OpTransform, Transform: f32.NewAffine(2, 0, 0, 2, 10, 0)},
		{Op: OpPath, Path: p},
	}
	flat := list.Flatten()
	if len(flat) != 2 {
		t.Fatalf("flat segments: %d", len(flat))
	}
	if pt := flat[0].Args[0]; pt.X != 12 || pt.Y != 2 {
		t.Errorf("flattened move: %v, want {12 2}", pt)
	}
}

func TestPackStream(t *testing.T) {
	boxes := vector.BBoxes{vector.NewBBox(0, 0, 10, 24)}
	list := CommandList{{Op: OpFill, Color: "#0000ff"}}
	got := Pack(7, 100, 50, boxes, list)
	want := []float32{-5, 7, 100, 50, 1, 0, 0, 10, 24, 1, 3, 255}
	if len(got) != len(want) {
		t.Fatalf("stream length: have %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stream[%d]: have %v, want %v", i, got[i], want[i])
		}
	}
}
