package plane

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"lsbsteg/imgfile"
	"lsbsteg/lsb"
	"lsbsteg/palette"
	"lsbsteg/pixgrid"
)

// Suffix is appended to the source name of a written bit plane.
const Suffix = "_plane"

// Flags configures how bit planes are written. It is embedded by every
// command that can produce them.
type Flags struct {
	Dir     string        `help:"Destination folder for bit planes. Defaults to the folder of each image"`
	Palette string        `help:"Render through a palette: built-in name (gray, mono, rgb), hex color list or RIFF .pal file. Empty writes the raw visualization"`
	Scale   int           `help:"Integer upscaling factor" default:"1"`
	Format  string        `help:"Output format (bmp, png, tiff)" default:"png"`
	Force   bool          `help:"Overwrite existing bit plane files" default:"false"`
	Colors  color.Palette `kong:"-"`
}

// Prepare validates the flags and loads the palette.
func (f *Flags) Prepare() error {
	if f.Scale < 1 || f.Scale > MaxScale {
		return fmt.Errorf("invalid scale %d: must be between 1 and %d", f.Scale, MaxScale)
	}

	if !slices.Contains(imgfile.Formats, f.Format) {
		return fmt.Errorf("unsupported bit plane format %q, use one of %s", f.Format, strings.Join(imgfile.Formats, ", "))
	}

	if f.Dir != "" {
		dir, err := filepath.Abs(f.Dir)
		if err != nil {
			return fmt.Errorf("invalid bit plane folder %q: %w", f.Dir, err)
		}
		f.Dir = dir
	}

	if f.Palette != "" {
		pal, err := palette.Load(f.Palette)
		if err != nil {
			return err
		}
		f.Colors = pal
	}

	return nil
}

// Dest returns where the bit plane of src is written.
func (f *Flags) Dest(src string) string {
	dir := f.Dir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	name := filepath.Base(src)
	name = name[:len(name)-len(filepath.Ext(name))]
	return filepath.Join(dir, name+Suffix+"."+f.Format)
}

// Image builds the bit plane of g without writing it.
func (f *Flags) Image(logger *slog.Logger, g *pixgrid.Grid) (image.Image, error) {
	var img image.Image = lsb.Visualize(g)
	if f.Colors != nil {
		var err error
		if img, err = Render(g, f.Colors); err != nil {
			return nil, err
		}
	}

	return Scale(logger, img, f.Scale)
}

// Write saves the bit plane of g, loaded from src, and returns its path.
func (f *Flags) Write(logger *slog.Logger, g *pixgrid.Grid, src string) (string, error) {
	img, err := f.Image(logger, g)
	if err != nil {
		return "", err
	}

	dest := f.Dest(src)
	if err = imgfile.Save(img, f.Format, dest, f.Force); err != nil {
		return "", err
	}

	logger.Info("bit plane written", "to", dest)
	return dest, nil
}
