// Package hide implements the command that embeds a message into a cover
// image.
package hide

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"lsbsteg/charset"
	"lsbsteg/imgfile"
	"lsbsteg/lsb"
)

// Suffix is appended to the cover name when no destination is given.
const Suffix = "_encrypted"

type CLICmd struct {
	Image    string `arg:"" help:"Cover image" type:"existingfile"`
	Text     *string `help:"Message to hide, may be empty" xor:"message" required:""`
	TextFile string  `help:"Read the message from this file" type:"existingfile" xor:"message" required:""`
	Charset  string  `help:"Character set of the embedded codes: empty for UTF-16 code units, or a single-byte charset such as windows-1251"`
	Out      string  `short:"o" help:"Destination image. Defaults to the cover name with '_encrypted' appended"`
	Format   string  `help:"Output format (bmp, png, tiff). Defaults to the destination extension, or bmp"`
	Force    bool    `help:"Overwrite an existing destination" default:"false"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if (c.Text == nil) == (c.TextFile == "") {
		return errors.New("exactly one of --text or --text-file is required")
	}

	img, err := filepath.Abs(c.Image)
	if err != nil {
		return fmt.Errorf("invalid image path %q: %w", c.Image, err)
	}
	c.Image = img

	if err := charset.Validate(c.Charset); err != nil {
		return err
	}

	if c.Format != "" && !slices.Contains(imgfile.Formats, c.Format) {
		return fmt.Errorf("unsupported output format %q, use one of %s", c.Format, strings.Join(imgfile.Formats, ", "))
	}

	if c.Out == "" {
		if c.Format == "" {
			c.Format = imgfile.FormatFor(c.Image, imgfile.FormatBMP)
		}
		c.Out = imgfile.SuffixedPath(c.Image, Suffix, c.Format)
	} else if c.Format == "" {
		c.Format = imgfile.FormatFor(c.Out, imgfile.FormatBMP)
	}

	return nil
}

func (c *CLICmd) message() (string, error) {
	if c.Text != nil {
		return *c.Text, nil
	}

	b, err := os.ReadFile(c.TextFile)
	if err != nil {
		return "", fmt.Errorf("could not read message file %q: %w", c.TextFile, err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func (c *CLICmd) Run() error {
	logger := slog.Default().With("file", c.Image)

	text, err := c.message()
	if err != nil {
		return err
	}

	codes, err := charset.Codes(c.Charset, text)
	if err != nil {
		return fmt.Errorf("could not convert message: %w", err)
	}

	cover, _, err := imgfile.Load(c.Image)
	if err != nil {
		return err
	}

	capacity := lsb.Capacity(cover)
	embedded := min(len(codes), capacity)
	if len(codes) > capacity {
		logger.Warn("message does not fit, truncating", "capacity", capacity, "length", len(codes),
			"dropped", len(codes)-capacity)
	}
	if lossy := charset.Lossy(codes[:embedded]); len(lossy) > 0 {
		logger.Warn("some characters will not be recovered exactly", "count", len(lossy), "first", lossy[0])
	}

	out := lsb.EncodeCodes(cover, codes)
	if err = imgfile.Save(out, c.Format, c.Out, c.Force); err != nil {
		return fmt.Errorf("could not save %q: %w", c.Out, err)
	}

	logger.Info("message hidden", "to", c.Out, "format", c.Format, "characters", embedded, "capacity", capacity)
	return nil
}
