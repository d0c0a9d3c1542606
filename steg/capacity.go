package steg

import (
	"image"
	"math"
)

// reservePixels is held back from the raw pixel count to guarantee
// headroom for the frame header and small-file overhead.
const reservePixels = 1000

// MaxUtilization is the percentage of capacity above which an embedding
// is refused.
const MaxUtilization = 99.9

// Capacity reports how many payload bytes (name plus data) an image of
// the given bounds can hold. Every byte consumes two pixels after
// reservePixels are set aside for the header.
func Capacity(b image.Rectangle) int {
	px := b.Dx()*b.Dy() - reservePixels
	if px < 0 {
		return 0
	}
	return px / pixelsPerByte
}

// Utilization reports the percentage of an image's capacity a payload of
// the given byte size would occupy. A zero capacity reports +Inf.
func Utilization(b image.Rectangle, payloadBytes int) float64 {
	c := Capacity(b)
	if c <= 0 {
		return math.Inf(1)
	}
	return float64(payloadBytes) / float64(c) * 100
}
