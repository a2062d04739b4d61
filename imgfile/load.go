// Package imgfile reads cover images into pixel grids and writes grids back
// out in formats that keep every bit of every channel.
package imgfile

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"lsbsteg/pixgrid"
)

// Load decodes the image at path into a grid and reports its format name.
func Load(path string) (*pixgrid.Grid, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image %q: %w", path, err)
	}

	return pixgrid.FromImage(img), format, nil
}

// Output formats that store 8-bit RGB without loss.
const (
	FormatBMP  = "bmp"
	FormatPNG  = "png"
	FormatTIFF = "tiff"
)

var (
	Formats = []string{FormatBMP, FormatPNG, FormatTIFF}

	extFormats = map[string]string{
		".bmp":  FormatBMP,
		".dib":  FormatBMP,
		".png":  FormatPNG,
		".tif":  FormatTIFF,
		".tiff": FormatTIFF,
	}
)

// FormatFor picks the output format from the extension of path, or returns
// fallback when the extension is not a lossless output format.
func FormatFor(path, fallback string) string {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return fallback
}

// SuffixedPath inserts suffix between the name and the extension of path
// ("cat.bmp" -> "cat_encrypted.bmp"). A non-empty format replaces the
// extension.
func SuffixedPath(path, suffix, format string) string {
	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]
	if format != "" && FormatFor(path, "") != format {
		ext = "." + format
	}
	return stem + suffix + ext
}
