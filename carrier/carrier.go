// Package carrier loads and saves the images that transport hidden data.
// Decoding accepts any registered container; saving is restricted to
// lossless formats, since recompression destroys the embedded LSBs.
package carrier

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// LoadNRGBA decodes the image at path and converts it to non-premultiplied
// 8-bit RGBA, the only representation the lossless encoders below write
// back bit-for-bit.
func LoadNRGBA(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	slog.Debug("decoded carrier", "file", path, "type", imgType, "bounds", img.Bounds())

	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba, nil
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(nrgba, nrgba.Rect, img, img.Bounds().Min, draw.Src)
	return nrgba, nil
}

// Save writes img to dest in the given lossless format, through a
// temporary file renamed into place once fully flushed.
func Save(img image.Image, outType, dest string) (err error) {
	destDir := filepath.Dir(dest)
	outFile, err := os.CreateTemp(destDir, filepath.Base(dest))
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", dest, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", dest, defErr)
		}
		if defErr := outFile.Close(); defErr != nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", dest, defErr)
		}

		if canRename {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", dest, defErr)
			}
		} else if defErr := os.Remove(outFile.Name()); defErr != nil {
			slog.Error("could not remove temporary destination", "file", outFile.Name(), "error", defErr)
		}
	}()

	switch outType {
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", dest, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", dest, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", dest, err)
		}
	default:
		return fmt.Errorf("unsupported lossless output format: %s", outType)
	}

	canRename = true
	return err
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
