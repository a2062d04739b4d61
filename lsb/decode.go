package lsb

import (
	"unicode/utf16"

	"lsbsteg/pixgrid"
)

// blank matches the characters stripped from the end of a decoded message:
// NUL, the other control characters and space.
func blank(c uint16) bool {
	return c <= ' '
}

// Decode recovers the text hidden by Encode. Pixels that never carried a
// character decode to NUL, which the trailing trim removes along with any
// other trailing blanks.
func Decode(g *pixgrid.Grid) string {
	return string(utf16.Decode(TrimCodes(DecodeCodes(g))))
}

// DecodeCodes returns one reconstructed code per pixel, untrimmed.
func DecodeCodes(g *pixgrid.Grid) []uint16 {
	codes := make([]uint16, g.Len())
	for i, s := range g.Pix {
		r0, g0, b0 := lsbs(s)
		codes[i] = uint16(r0)<<redBit | uint16(g0)<<greenBit | uint16(b0)<<blueBit
	}
	return codes
}

// TrimCodes drops trailing blank codes. Leading and inner blanks are kept.
func TrimCodes(codes []uint16) []uint16 {
	end := len(codes)
	for end > 0 && blank(codes[end-1]) {
		end--
	}
	return codes[:end]
}
