package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"lsbsteg/hide"
	"lsbsteg/palette"
	"lsbsteg/parallel"
	"lsbsteg/plane"
	"lsbsteg/reveal"
)

type CLI struct {
	Workers   int    `help:"Number of images processed in parallel. Defaults to the number of CPUs" default:"0"`
	LogFormat string `help:"Log output format" enum:"text,json" default:"text"`
	Verbose   bool   `short:"v" help:"Log debug messages" default:"false"`

	Hide    hide.CLICmd    `cmd:"" help:"Hide a text message in the low bits of an image"`
	Reveal  reveal.CLICmd  `cmd:"" help:"Recover the messages hidden in images"`
	Plane   plane.CLICmd   `cmd:"" help:"Write the hidden bit plane of images as viewable pictures"`
	Palette palette.CLICmd `cmd:"" help:"Manage bit plane palettes"`
}

func setupLogger(format string, verbose bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("lsbsteg"),
		kong.Description("Hide short text messages in the least significant bits of uncompressed images."),
		kong.UsageOnError(),
	)

	setupLogger(cli.LogFormat, cli.Verbose)

	pool := parallel.Start(cli.Workers)
	defer pool.Wait(true)

	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers)
	if err := kctx.Run(pool.Do, pool.Wait); err != nil {
		pool.Wait(true)
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
