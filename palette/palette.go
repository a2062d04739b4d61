// Package palette provides the 8-color palettes used to render the hidden
// bit plane of an image, and reads and writes them as RIFF PAL files.
//
// Palette entries are indexed by the LSB triple of a pixel, r0<<2 | g0<<1 | b0.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Size is the number of entries a bit-plane palette needs.
const Size = 8

var ErrTooSmall = fmt.Errorf("palette needs at least %d colors", Size)

var builtin = map[string]color.Palette{
	// each LSB switches its own channel fully on
	"rgb": func() color.Palette {
		pal := make(color.Palette, Size)
		for i := range Size {
			pal[i] = color.RGBA{R: full(i >> 2), G: full(i >> 1), B: full(i), A: 0xFF}
		}
		return pal
	}(),
	// black where no LSB is set, white otherwise
	"mono": func() color.Palette {
		pal := make(color.Palette, Size)
		pal[0] = color.Black
		for i := 1; i < Size; i++ {
			pal[i] = color.White
		}
		return pal
	}(),
	// the triple read as a 3-bit intensity
	"gray": func() color.Palette {
		pal := make(color.Palette, Size)
		for i := range Size {
			pal[i] = color.Gray{Y: uint8(i * 0xFF / (Size - 1))}
		}
		return pal
	}(),
}

func full(bit int) uint8 {
	return uint8(bit&1) * 0xFF
}

const DefaultName = "rgb"

func rgb(c color.Color) [3]uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [3]uint8{n.R, n.G, n.B}
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a copy of a built-in palette.
func Builtin(name string) (color.Palette, bool) {
	pal, ok := builtin[name]
	if !ok {
		return nil, false
	}
	return append(color.Palette(nil), pal...), true
}

// Load resolves name as a built-in palette name, a comma-separated list of
// hex colors ("#000,#f00,...") or the path of a RIFF PAL file. Only the first
// palette of a file is used.
func Load(name string) (color.Palette, error) {
	if pal, ok := Builtin(name); ok {
		return pal, nil
	}

	var pal color.Palette
	if strings.HasPrefix(name, "#") {
		var err error
		if pal, err = ParseColors(name); err != nil {
			return nil, err
		}
	} else {
		pals, err := readFile(name)
		if err != nil {
			return nil, err
		}
		if len(pals) == 0 {
			return nil, fmt.Errorf("no palette in %q", name)
		}
		pal = pals[0]
	}

	if len(pal) < Size {
		return nil, fmt.Errorf("%w: %q has %d", ErrTooSmall, name, len(pal))
	}
	return pal, nil
}

func readFile(path string) ([]color.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette", "name", path, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", path, err)
	}
	return pals, nil
}

// Save writes pal to path as a RIFF PAL file.
func Save(path string, pal color.Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette %q: %w", path, closeErr)
		}
	}()

	if _, err = WriteTo(f, []color.Palette{pal}); err != nil {
		return fmt.Errorf("could not save palette %q: %w", path, err)
	}
	return f.Sync()
}

// ParseColors parses a comma-separated list of #RGB, #RGBA, #RRGGBB or
// #RRGGBBAA colors.
func ParseColors(s string) (color.Palette, error) {
	var pal color.Palette
	for i, part := range strings.Split(s, ",") {
		c, err := ParseHexColor(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		pal = append(pal, c)
	}
	return pal, nil
}

var errColorFormat = errors.New("invalid color, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA")

func ParseHexColor(s string) (color.Color, error) {
	var c color.NRGBA
	c.A = 0xFF

	switch len(s) {
	case 4, 5:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
		if len(s) == 5 {
			if _, err = fmt.Sscanf(s[4:], "%1x", &c.A); err != nil {
				return nil, fmt.Errorf("could not read alpha of %q: %w", s, err)
			}
			c.A |= c.A << 4
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 7, 9:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
		if len(s) == 9 {
			if _, err = fmt.Sscanf(s[7:], "%2x", &c.A); err != nil {
				return nil, fmt.Errorf("could not read alpha of %q: %w", s, err)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", errColorFormat, s)
	}

	return c, nil
}
