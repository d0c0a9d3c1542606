// Package embed implements the subcommand that hides a file inside a
// carrier image.
package embed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"imgfu/carrier"
	"imgfu/steg"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Image    string `help:"Carrier image to hide data within" short:"i" required:""`
	File     string `help:"File to hide" short:"f" required:""`
	Output   string `help:"Destination image" short:"o" required:""`
	Name     string `help:"Embedded file name, defaults to the base name of --file"`
	Compress bool   `help:"Compress the data with zstd before embedding"`
	Check    bool   `help:"Store a CRC-32 of the data so extraction can verify it"`
	Format   string `help:"Output image format, lossless only" enum:"png,bmp,tiff" default:"png"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	for _, in := range []struct{ flag, path string }{
		{"image", c.Image},
		{"file", c.File},
	} {
		info, err := os.Stat(in.path)
		if err == nil && !info.Mode().IsRegular() {
			err = fmt.Errorf("not a regular file")
		}
		if err != nil {
			return fmt.Errorf("invalid %s path %q: %w", in.flag, in.path, err)
		}
	}

	if c.Name == "" {
		c.Name = filepath.Base(c.File)
	}
	return nil
}

func (c *CLICmd) Run() error {
	img, err := carrier.LoadNRGBA(c.Image)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("could not read payload file %q: %w", c.File, err)
	}

	logger := slog.Default().With("image", c.Image)
	payload := steg.Payload{Name: c.Name, Data: data}
	opts := steg.Options{Compress: c.Compress, Checksum: c.Check}
	if err := steg.Encode(logger, img, payload, opts); err != nil {
		return fmt.Errorf("could not embed %q in %q: %w", c.File, c.Image, err)
	}

	if err := carrier.Save(img, c.Format, c.Output); err != nil {
		return err
	}
	logger.Info("saved", "output", c.Output, "format", c.Format)
	return nil
}
