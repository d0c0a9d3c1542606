package steg

import (
	"fmt"
	"image"
)

// pixelPosition maps a pixel index to row-major coordinates within b. The
// index counts pixels from b's origin, left to right then top to bottom.
func pixelPosition(b image.Rectangle, i int) (x, y int, err error) {
	w, h := b.Dx(), b.Dy()
	if w <= 0 || i < 0 || i >= w*h {
		return 0, 0, fmt.Errorf("pixel index %d outside %dx%d image: %w", i, w, h, ErrBounds)
	}
	return b.Min.X + i%w, b.Min.Y + i/w, nil
}
