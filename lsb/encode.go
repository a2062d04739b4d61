package lsb

import (
	"unicode/utf16"

	"lsbsteg/pixgrid"
)

// Encode hides text in a copy of g, one UTF-16 code unit per pixel in raster
// order. Characters beyond Capacity(g) are dropped and pixels past the end of
// the message are copied unchanged.
func Encode(g *pixgrid.Grid, text string) *pixgrid.Grid {
	return EncodeCodes(g, utf16.Encode([]rune(text)))
}

// EncodeCodes is Encode over raw character codes.
func EncodeCodes(g *pixgrid.Grid, codes []uint16) *pixgrid.Grid {
	out := g.Clone()

	n := min(len(codes), out.Len())
	for i, c := range codes[:n] {
		s := out.Pix[i]
		s.R = setLSB(s.R, uint8(c>>redBit))
		s.G = setLSB(s.G, uint8(c>>greenBit))
		s.B = setLSB(s.B, uint8(c>>blueBit))
		out.Pix[i] = s
	}

	return out
}
