// SPDX-License-Identifier: Unlicense OR MIT

package font

import "encoding/binary"

// sfnt signatures.
const (
	sigTrueType1 = 0x00010000
	sigTrueType2 = 0x74727565 // 'true'
	sigTrueType3 = 0x74797031 // 'typ1'
	sigOpenType  = 0x4F54544F // 'OTTO'
	sigWOFF      = 0x774F4646 // 'wOFF'
)

// Format is the sniffed container format of a font buffer.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatTrueType
	FormatOpenType
)

func (f Format) String() string {
	switch f {
	case FormatTrueType:
		return "ttf"
	case FormatOpenType:
		return "otf"
	default:
		return "unknown"
	}
}

// Sniff inspects the leading signature of a font buffer. compressed is true
// for WOFF wrappers, with the format taken from the wrapped flavor.
func Sniff(data []byte) (format Format, compressed bool) {
	sig, ok := readU32(data, 0)
	if !ok {
		return FormatUnknown, false
	}
	switch sig {
	case sigTrueType1, sigTrueType2, sigTrueType3:
		return FormatTrueType, false
	case sigOpenType:
		return FormatOpenType, false
	case sigWOFF:
		flavor, ok := readU32(data, 4)
		if !ok {
			return FormatUnknown, false
		}
		switch flavor {
		case sigTrueType1:
			return FormatTrueType, true
		case sigOpenType:
			return FormatOpenType, true
		}
	}
	return FormatUnknown, false
}

func readU32(data []byte, offset int) (uint32, bool) {
	if offset+4 > len(data) {
		return 0, false
	}
	return binary.BigEndian.Uint32(data[offset : offset+4]), true
}
