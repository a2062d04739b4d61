package plane

import (
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/image/draw"
)

// MaxScale bounds the upscaling factor.
const MaxScale = 64

// Scale enlarges img by an integer factor with nearest-neighbour sampling, so
// every source pixel becomes a factor×factor block of the same color.
func Scale(logger *slog.Logger, img image.Image, factor int) (image.Image, error) {
	if factor < 1 || factor > MaxScale {
		return nil, fmt.Errorf("invalid scale factor %d: must be between 1 and %d", factor, MaxScale)
	}
	if factor == 1 {
		return img, nil
	}

	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx()*factor, sr.Dy()*factor)

	logger.Info("scaling", "factor", factor, "width", dr.Dx(), "height", dr.Dy())
	var dest draw.Image
	if p, ok := img.(*image.Paletted); ok {
		dest = image.NewPaletted(dr, p.Palette)
	} else {
		dest = image.NewRGBA(dr)
	}
	draw.NearestNeighbor.Scale(dest, dr, img, sr, draw.Src, nil)

	return dest, nil
}
