package imgfile

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrExists = errors.New("destination file already exists")

// Save writes img to path in the given format. The image is written to a
// temporary file in the destination folder and renamed into place, so a
// failed write never leaves a truncated file behind. Unless overwrite is set,
// an existing destination is an error.
func Save(img image.Image, format, path string, overwrite bool) (err error) {
	if !overwrite {
		if err := checkDest(path); err != nil {
			return err
		}
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", path, err)
	}
	tmpName := outFile.Name()
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", tmpName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", tmpName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(tmpName, path); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", path, defErr)
			}
		}
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				slog.Error("could not remove temporary destination", "name", tmpName, "error", rmErr)
			}
		}
	}()

	switch format {
	case FormatBMP:
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", path, err)
		}
	case FormatPNG:
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", path, err)
		}
	case FormatTIFF:
		if err = tiff.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}

	canRename = true
	return nil
}

func checkDest(dest string) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrExists, destFileInfo.Name())
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
