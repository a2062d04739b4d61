// Package lsb embeds short text messages in the least significant bits of a
// pixel grid and recovers them.
//
// Each pixel carries one character: bit 7 of the character code goes to the
// red LSB, bit 6 to green and bit 5 to blue. Bits 0-4 are never stored, so
// only codes that are multiples of 32 below 256 survive a round trip.
package lsb

import "lsbsteg/pixgrid"

const (
	redBit   = 7
	greenBit = 6
	blueBit  = 5

	// lostBits covers the code bits the format does not carry.
	lostBits = 1<<blueBit - 1
)

// lsbs extracts the three channel LSBs of s.
func lsbs(s pixgrid.Sample) (r0, g0, b0 uint8) {
	return s.R & 1, s.G & 1, s.B & 1
}

// setLSB replaces the lowest bit of v with bit.
func setLSB(v, bit uint8) uint8 {
	return v&0xFE | bit&1
}

// Capacity is the number of characters g can carry.
func Capacity(g *pixgrid.Grid) int {
	return g.Len()
}

// Lossless reports whether code survives Encode followed by Decode unchanged.
func Lossless(code uint16) bool {
	return code < 0x100 && code&lostBits == 0
}

// Triple packs the three LSBs of s as r0<<2 | g0<<1 | b0, a value in [0, 7].
func Triple(s pixgrid.Sample) uint8 {
	r0, g0, b0 := lsbs(s)
	return r0<<2 | g0<<1 | b0
}
