// Package reveal implements the command that recovers hidden messages.
package reveal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"lsbsteg/charset"
	"lsbsteg/imgfile"
	"lsbsteg/lsb"
	"lsbsteg/parallel"
	"lsbsteg/pixgrid"
	"lsbsteg/plane"
)

type CLICmd struct {
	Images  []string    `arg:"" help:"Images to decode" type:"existingfile"`
	Charset string      `help:"Character set the message was hidden with: empty for UTF-16 code units, or a single-byte charset such as windows-1251"`
	Plane   plane.Flags `embed:"" prefix:"plane-" group:"plane"`
	Out     io.Writer   `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	for i, img := range c.Images {
		abs, err := filepath.Abs(img)
		if err != nil {
			return fmt.Errorf("invalid image path %q: %w", img, err)
		}
		c.Images[i] = abs
	}

	if err := charset.Validate(c.Charset); err != nil {
		return err
	}

	return c.Plane.Prepare()
}

// Decode recovers the message hidden in g.
func (c *CLICmd) Decode(g *pixgrid.Grid) (string, error) {
	return charset.Text(c.Charset, lsb.TrimCodes(lsb.DecodeCodes(g)))
}

func (c *CLICmd) decodeFile(logger *slog.Logger, name string) (string, error) {
	g, _, err := imgfile.Load(name)
	if err != nil {
		return "", err
	}

	text, err := c.Decode(g)
	if err != nil {
		return "", err
	}
	logger.Debug("decoded", "characters", len([]rune(text)), "capacity", lsb.Capacity(g))

	if c.Plane.Dir != "" {
		if _, err = c.Plane.Write(logger, g, name); err != nil {
			return "", fmt.Errorf("could not write bit plane: %w", err)
		}
	}

	return text, nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if c.Plane.Dir != "" {
		if err := os.MkdirAll(c.Plane.Dir, 0o755); err != nil {
			return fmt.Errorf("unable to create bit plane folder %q: %w", c.Plane.Dir, err)
		}
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	texts := make([]string, len(c.Images))
	ok := make([]bool, len(c.Images))

	var counter parallel.Counter
	for i, name := range c.Images {
		worker(func() {
			logger := slog.Default().With("file", name)

			text, err := c.decodeFile(logger, name)
			if err == nil {
				texts[i], ok[i] = text, true
			}
			counter.Track(logger, "could not decode image", err)
		})
	}

	wait(true)

	for i, name := range c.Images {
		if !ok[i] {
			continue
		}
		var err error
		if len(c.Images) == 1 {
			_, err = fmt.Fprintln(out, texts[i])
		} else {
			_, err = fmt.Fprintf(out, "%s: %s\n", name, texts[i])
		}
		if err != nil {
			return fmt.Errorf("could not print message: %w", err)
		}
	}

	return counter.Report()
}
