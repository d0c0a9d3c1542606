// Command imgfu hides files inside ordinary-looking images and recovers
// them, using least-significant-bit embedding over the color channels.
package main

import (
	"log/slog"
	"os"

	"imgfu/capacity"
	"imgfu/embed"
	"imgfu/extract"
	"imgfu/parallel"

	"github.com/alecthomas/kong"
)

var cli struct {
	Embed    embed.CLICmd    `cmd:"" help:"Hide a file inside an image"`
	Extract  extract.CLICmd  `cmd:"" help:"Recover a hidden file from an image"`
	Capacity capacity.CLICmd `cmd:"" help:"Report how many bytes an image can hide"`

	Verbose bool `help:"Enable debug logging" short:"v"`
	Jobs    int  `help:"Number of workers for folder scans, 0 for one per CPU" default:"0"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("imgfu"),
		kong.Description("A steganography tool for hiding files inside images."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	pool := parallel.Start(cli.Jobs)
	if err := kctx.Run(parallel.WorkerFunc(pool.Do), parallel.WaitFunc(pool.Wait)); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
