// Package capacity implements the subcommand that reports how many bytes
// an image, or each image in a folder, can hide.
package capacity

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"imgfu/parallel"
	"imgfu/steg"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan    string `help:"Image file or folder of images to size up" short:"s" default:"."`
	Payload string `help:"Report whether this file would fit in each image" short:"p"`

	payloadSize int
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	path, err := filepath.Abs(c.Scan)
	if err == nil {
		_, err = os.Stat(path)
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = path

	if c.Payload != "" {
		info, err := os.Stat(c.Payload)
		if err == nil && !info.Mode().IsRegular() {
			err = fmt.Errorf("not a regular file")
		}
		if err != nil {
			return fmt.Errorf("invalid payload path %q: %w", c.Payload, err)
		}
		c.payloadSize = int(info.Size())
	}
	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	info, err := os.Stat(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to stat %q: %w", c.Scan, err)
	}

	if !info.IsDir() {
		if !c.report(c.Scan) {
			return fmt.Errorf("error reading %q", c.Scan)
		}
		return nil
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var scannedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(name string) func() {
			return func() {
				if c.report(filepath.Join(c.Scan, name)) {
					scannedCount.Add(1)
				} else {
					errCount.Add(1)
				}
			}
		}(file.Name()))
	}

	wait(true)

	scanned := scannedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "scanned", scanned, "errors", errors, "total", scanned+errors)

	if errors > 0 {
		return fmt.Errorf("error reading %d files", errors)
	}
	return nil
}

// report logs the embedding capacity of one image, and when a payload was
// given, whether it fits. Only the image header is decoded.
func (c *CLICmd) report(path string) bool {
	logger := slog.Default().With("file", path)

	img, err := os.Open(path)
	if err != nil {
		logger.Error("could not open image", "error", err)
		return false
	}

	conf, imgType, err := image.DecodeConfig(img)
	if closeErr := img.Close(); closeErr != nil {
		logger.Error("could not close image", "error", closeErr)
	}
	if err != nil {
		logger.Error("could not read image", "error", err)
		return false
	}

	bounds := image.Rect(0, 0, conf.Width, conf.Height)
	args := []any{
		"type", imgType,
		"size", fmt.Sprintf("%dx%d", conf.Width, conf.Height),
		"bytes", steg.Capacity(bounds),
	}
	if c.Payload != "" {
		used := steg.Utilization(bounds, c.payloadSize)
		args = append(args,
			"used", fmt.Sprintf("%.1f%%", used),
			"fits", used <= steg.MaxUtilization)
	}
	logger.Info("capacity", args...)

	return true
}
