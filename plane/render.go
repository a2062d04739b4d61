// Package plane renders the hidden bit plane of a grid for display.
//
// lsb.Visualize is the reference rendering. Render is an alternative that
// maps each pixel's LSB triple through a palette, so the message area can be
// shown in colors that are actually visible.
package plane

import (
	"fmt"
	"image"
	"image/color"

	"lsbsteg/lsb"
	"lsbsteg/palette"
	"lsbsteg/pixgrid"
)

// Render returns a paletted image whose color indexes are the LSB triples of
// g. pal must have at least palette.Size entries.
func Render(g *pixgrid.Grid, pal color.Palette) (*image.Paletted, error) {
	if len(pal) < palette.Size {
		return nil, fmt.Errorf("%w: got %d", palette.ErrTooSmall, len(pal))
	}

	dest := image.NewPaletted(g.Bounds(), pal)
	for y := 0; y < g.Height(); y++ {
		row := dest.Pix[y*dest.Stride:]
		for x := 0; x < g.Width(); x++ {
			row[x] = lsb.Triple(g.SampleAt(x, y))
		}
	}
	return dest, nil
}
