// SPDX-License-Identifier: Unlicense OR MIT

// Package f32color parses and serializes the CSS-ish color strings carried
// by text blocks and art-text layers: #RRGGBB, rgb(r,g,b) and
// rgba(r,g,b,a).
package f32color

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGBA is a color with 8-bit channels and a float alpha, matching the wire
// format of the request JSON.
type RGBA struct {
	R, G, B uint8
	A       float32
}

// Black is the fallback for unparseable colors.
var Black = RGBA{A: 1}

// Parse splits a color string. ok is false when the string is neither a
// #-prefixed hex color nor an rgb()/rgba() function; callers fall back to
// Black.
func Parse(s string) (RGBA, bool) {
	s = strings.ReplaceAll(s, " ", "")
	if !strings.Contains(s, "rgb") {
		if !strings.Contains(s, "#") {
			return RGBA{}, false
		}
		c := Packed(s)
		return RGBA{
			R: uint8(c >> 16),
			G: uint8(c >> 8),
			B: uint8(c),
			A: 1,
		}, true
	}
	mode := "rgb("
	if strings.Contains(s, "rgba(") {
		mode = "rgba("
	}
	_, rest, found := strings.Cut(s, mode)
	if !found {
		return RGBA{}, false
	}
	rest, _, found = strings.Cut(rest, ")")
	if !found {
		return RGBA{}, false
	}
	parts := strings.Split(rest, ",")
	channel := func(i int) uint8 {
		if i >= len(parts) {
			return 0
		}
		v, err := strconv.ParseUint(parts[i], 10, 8)
		if err != nil {
			return 0
		}
		return uint8(v)
	}
	a := float32(1)
	if len(parts) > 3 {
		v, err := strconv.ParseFloat(parts[3], 32)
		if err != nil {
			a = 0
		} else {
			a = float32(v)
		}
	}
	return RGBA{R: channel(0), G: channel(1), B: channel(2), A: a}, true
}

// ParseOrBlack is Parse with the documented fallback applied.
func ParseOrBlack(s string) RGBA {
	if c, ok := Parse(s); ok {
		return c
	}
	return Black
}

// Packed returns the hex integer of a #RRGGBB string, alpha ignored, or 0
// when the string is not hex.
func Packed(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 16, 64)
	if err != nil {
		return 0
	}
	return v
}

// RGBString renders the color as rgb(r,g,b).
func (c RGBA) RGBString() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// RGBAString renders the color as rgba(r,g,b,a).
func (c RGBA) RGBAString() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%v)", c.R, c.G, c.B, c.A)
}

// NRGBA converts to the stdlib non-premultiplied form for rasterization.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}
