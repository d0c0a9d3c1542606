// Package extract implements the subcommand that recovers a hidden file
// from an image.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"imgfu/carrier"
	"imgfu/steg"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Image  string `help:"Image believed to contain a hidden file" short:"i" required:""`
	Output string `help:"Destination path, defaults to the embedded file name" short:"o"`
	Force  bool   `help:"Overwrite the destination if it already exists"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	info, err := os.Stat(c.Image)
	if err == nil && !info.Mode().IsRegular() {
		err = fmt.Errorf("not a regular file")
	}
	if err != nil {
		return fmt.Errorf("invalid image path %q: %w", c.Image, err)
	}
	return nil
}

func (c *CLICmd) Run() error {
	img, err := carrier.LoadNRGBA(c.Image)
	if err != nil {
		return err
	}

	logger := slog.Default().With("image", c.Image)
	payload, err := steg.Decode(logger, img)
	if err != nil {
		return fmt.Errorf("could not extract hidden file from %q: %w", c.Image, err)
	}

	dest := c.Output
	if dest == "" {
		// The embedded name is untrusted input, keep only its base.
		dest = filepath.Base(payload.Name)
		if dest == "." || dest == string(filepath.Separator) {
			return fmt.Errorf("embedded name %q does not yield a usable path", payload.Name)
		}
	}

	if !c.Force {
		if info, statErr := os.Stat(dest); statErr == nil {
			return fmt.Errorf("destination file already exists: %q", info.Name())
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, statErr)
		}
	}

	if err := os.WriteFile(dest, payload.Data, 0o644); err != nil {
		return fmt.Errorf("could not write recovered file %q: %w", dest, err)
	}
	logger.Info("recovered", "file", dest, "bytes", len(payload.Data))
	return nil
}
