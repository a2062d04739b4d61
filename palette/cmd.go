package palette

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	List   ListCmd   `cmd:"" help:"List the built-in bit plane palettes"`
	Export ExportCmd `cmd:"" help:"Write a bit plane palette as a RIFF PAL file, as a starting point for custom palettes"`
}

type ListCmd struct {
	Out io.Writer `kong:"-"`
}

func (c *ListCmd) Run() error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	for _, name := range Names() {
		pal, _ := Builtin(name)
		colors := make([]string, len(pal))
		for i, col := range pal {
			n := rgb(col)
			colors[i] = fmt.Sprintf("#%02x%02x%02x", n[0], n[1], n[2])
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\n", name, strings.Join(colors, ",")); err != nil {
			return err
		}
	}
	return nil
}

type ExportCmd struct {
	Path    string `arg:"" help:"Destination .pal file"`
	Palette string `help:"Palette to export: built-in name or hex color list" default:"rgb"`
	Force   bool   `help:"Overwrite an existing file" default:"false"`
}

func (c *ExportCmd) Validate(kctx *kong.Context) error {
	if _, err := Load(c.Palette); err != nil {
		return err
	}

	if c.Force {
		return nil
	}
	if _, err := os.Stat(c.Path); err == nil {
		return fmt.Errorf("destination file already exists: %q", c.Path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot stat destination file %q: %w", c.Path, err)
	}
	return nil
}

func (c *ExportCmd) Run() error {
	pal, err := Load(c.Palette)
	if err != nil {
		return err
	}

	if err = Save(c.Path, pal); err != nil {
		return err
	}
	slog.Info("palette exported", "to", c.Path, "colors", len(pal))
	return nil
}
