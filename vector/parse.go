// SPDX-License-Identifier: Unlicense OR MIT

package vector

import (
	"fmt"
	"strconv"
)

// ParsePath parses an SVG path d string holding absolute M, L, C, Q and Z
// commands, the subset emitted by String and by pre-extracted glyph packs.
// Quadratics are promoted to cubics as the path is built.
func ParsePath(src string) (PathData, error) {
	var p PathData
	i := 0
	skip := func() {
		for i < len(src) && (src[i] == ' ' || src[i] == ',' || src[i] == '\t' || src[i] == '\n') {
			i++
		}
	}
	number := func() (float32, error) {
		skip()
		start := i
		for i < len(src) {
			c := src[i]
			if c >= '0' && c <= '9' || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
				i++
				continue
			}
			break
		}
		if start == i {
			return 0, fmt.Errorf("vector: expected number at offset %d", start)
		}
		v, err := strconv.ParseFloat(src[start:i], 32)
		if err != nil {
			return 0, fmt.Errorf("vector: bad number %q: %w", src[start:i], err)
		}
		return float32(v), nil
	}
	numbers := func(n int) ([6]float32, error) {
		var args [6]float32
		for k := 0; k < n; k++ {
			v, err := number()
			if err != nil {
				return args, err
			}
			args[k] = v
		}
		return args, nil
	}
	for {
		skip()
		if i >= len(src) {
			return p, nil
		}
		cmd := src[i]
		i++
		switch cmd {
		case 'M':
			args, err := numbers(2)
			if err != nil {
				return nil, err
			}
			p.MoveTo(args[0], args[1])
		case 'L':
			args, err := numbers(2)
			if err != nil {
				return nil, err
			}
			p.LineTo(args[0], args[1])
		case 'C':
			args, err := numbers(6)
			if err != nil {
				return nil, err
			}
			p.CurveTo(args[4], args[5], args[0], args[1], args[2], args[3])
		case 'Q':
			args, err := numbers(4)
			if err != nil {
				return nil, err
			}
			p.QuadTo(args[2], args[3], args[0], args[1])
		case 'Z', 'z':
			p.Close()
		default:
			return nil, fmt.Errorf("vector: unsupported path command %q", cmd)
		}
	}
}
