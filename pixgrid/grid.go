// Package pixgrid holds the in-memory raster every steganography step works on:
// a dense, row-major grid of 24-bit RGB samples without alpha.
package pixgrid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var ErrInvalidDimension = errors.New("invalid grid dimension")

// MaxSamples bounds width×height, about 768 MiB of samples.
const MaxSamples = 1 << 28

// Sample is one pixel: three independent 8-bit channels.
type Sample struct {
	R, G, B uint8
}

// SampleFromRGB24 unpacks a 0xRRGGBB value. Bits above 23 are ignored.
func SampleFromRGB24(v uint32) Sample {
	return Sample{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGB24 packs the sample as 0xRRGGBB.
func (s Sample) RGB24() uint32 {
	return uint32(s.R)<<16 | uint32(s.G)<<8 | uint32(s.B)
}

// RGBA implements color.Color, samples are always opaque.
func (s Sample) RGBA() (r, g, b, a uint32) {
	r = uint32(s.R)
	r |= r << 8
	g = uint32(s.G)
	g |= g << 8
	b = uint32(s.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

var SampleModel = color.ModelFunc(sampleConvert)

func sampleConvert(c color.Color) color.Color {
	if s, ok := c.(Sample); ok {
		return s
	}
	// 8-bit non-premultiplied values; alpha is dropped, not composited.
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Sample{R: n.R, G: n.G, B: n.B}
}

type Grid struct {
	// Pix holds the samples in raster order. The sample at (x, y) is
	// Pix[y*width+x].
	Pix    []Sample
	width  int
	height int
}

var _ image.Image = &Grid{}

// New returns a zeroed width×height grid.
func New(width, height int) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if height != 0 && width > MaxSamples/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d samples", ErrInvalidDimension, width, height, MaxSamples)
	}
	return &Grid{
		Pix:    make([]Sample, width*height),
		width:  width,
		height: height,
	}, nil
}

// FromSamples builds a grid from a raster-ordered copy of samples.
func FromSamples(width, height int, samples []Sample) (*Grid, error) {
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if len(samples) != len(g.Pix) {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidDimension, len(samples), width, height)
	}
	copy(g.Pix, samples)
	return g, nil
}

// FromImage converts any image to a grid anchored at (0, 0).
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	g := &Grid{
		Pix:    make([]Sample, b.Dx()*b.Dy()),
		width:  b.Dx(),
		height: b.Dy(),
	}

	switch src := img.(type) {
	case *Grid:
		copy(g.Pix, src.Pix)
	case *image.RGBA:
		// Fast path for the decoder output of 24-bit bitmaps.
		for y := 0; y < g.height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < g.width; x++ {
				p := row[x*4 : x*4+4]
				if p[3] != 0xFF {
					g.Pix[y*g.width+x] = SampleModel.Convert(color.RGBA{p[0], p[1], p[2], p[3]}).(Sample)
					continue
				}
				g.Pix[y*g.width+x] = Sample{R: p[0], G: p[1], B: p[2]}
			}
		}
	default:
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				g.Pix[y*g.width+x] = SampleModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(Sample)
			}
		}
	}

	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len is the number of samples, width×height.
func (g *Grid) Len() int { return len(g.Pix) }

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SampleAt returns the sample at (x, y), or the zero Sample outside the grid.
func (g *Grid) SampleAt(x, y int) Sample {
	if !g.inside(x, y) {
		return Sample{}
	}
	return g.Pix[y*g.width+x]
}

// Set stores s at (x, y). Coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, s Sample) {
	if !g.inside(x, y) {
		return
	}
	g.Pix[y*g.width+x] = s
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		Pix:    make([]Sample, len(g.Pix)),
		width:  g.width,
		height: g.height,
	}
	copy(c.Pix, g.Pix)
	return c
}

func (g *Grid) ColorModel() color.Model { return SampleModel }

func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.width, g.height) }

func (g *Grid) At(x, y int) color.Color { return g.SampleAt(x, y) }
