package plane

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"lsbsteg/imgfile"
	"lsbsteg/parallel"
)

type CLICmd struct {
	Images []string `arg:"" help:"Images to visualize" type:"existingfile"`
	Flags  `embed:""`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	for i, img := range c.Images {
		abs, err := filepath.Abs(img)
		if err != nil {
			return fmt.Errorf("invalid image path %q: %w", img, err)
		}
		c.Images[i] = abs
	}

	return c.Flags.Prepare()
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0o755); err != nil {
			return fmt.Errorf("unable to create destination folder %q: %w", c.Dir, err)
		}
	}

	var counter parallel.Counter
	for _, name := range c.Images {
		worker(func() {
			logger := slog.Default().With("file", name)

			g, _, err := imgfile.Load(name)
			if err == nil {
				_, err = c.Write(logger, g, name)
			}
			counter.Track(logger, "could not write bit plane", err)
		})
	}

	wait(true)
	return counter.Report()
}
