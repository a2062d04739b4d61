package lsb

import "lsbsteg/pixgrid"

// Bit positions, in a packed 0xRRGGBB value, that the three LSBs are moved to
// by Visualize.
const (
	planeRedShift   = 0
	planeGreenShift = 7
	planeBlueShift  = 15
)

// Visualize makes the hidden bits visible. The red, green and blue LSBs of
// each pixel become bits 0, 7 and 15 of a packed 0xRRGGBB sample, which
// renders as a dim blue/green pattern wherever message bits are set.
func Visualize(g *pixgrid.Grid) *pixgrid.Grid {
	out := g.Clone()
	for i, s := range g.Pix {
		r0, g0, b0 := lsbs(s)
		v := uint32(r0)<<planeRedShift | uint32(g0)<<planeGreenShift | uint32(b0)<<planeBlueShift
		out.Pix[i] = pixgrid.SampleFromRGB24(v)
	}
	return out
}
