// Package steg hides a file's bytes in the least significant bits of an
// image's color channels and recovers them exactly.
//
// Each logical byte occupies two consecutive pixels in row-major order:
// bits 0-3 go into the LSBs of the first pixel's R, G, B and A channels,
// bits 4-7 into the second pixel's. A fixed 25-byte frame header precedes
// the payload and declares the embedded name and data lengths. All bits
// above bit 0 of every channel are left untouched, so the image remains
// visually indistinguishable from the original.
//
// The package operates purely on in-memory *image.NRGBA buffers; loading
// and saving image containers is the caller's concern. The pixel values
// must survive that round trip bit-for-bit, which restricts carriers to
// lossless formats.
package steg

import "errors"

var (
	ErrBounds   = errors.New("steg: pixel index out of bounds")
	ErrCapacity = errors.New("steg: payload exceeds image capacity")
	ErrEncoding = errors.New("steg: embedded name is not valid UTF-8")
	ErrHeader   = errors.New("steg: invalid frame header")
	ErrChecksum = errors.New("steg: data checksum mismatch")
)

// Payload is the file hidden in, or recovered from, an image: its base
// name and raw contents.
type Payload struct {
	Name string
	Data []byte
}

// Options select the optional frame features recorded in the header
// flags byte. The zero value produces a frame with all-zero flags and
// salt, matching embeddings made before these options existed.
type Options struct {
	// Compress stores the data zstd-compressed.
	Compress bool
	// Checksum stores an IEEE CRC-32 of the data in the salt region so
	// extraction can detect a corrupted or absent frame.
	Checksum bool
}
