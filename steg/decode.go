package steg

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
)

// Decode recovers the payload embedded in img. The frame carries no magic
// number: an image with nothing embedded yields garbage lengths and fails
// on header, bounds or UTF-8 validation, or in rare cases produces
// nonsensical output. Frames embedded with Options.Checksum are verified.
func Decode(logger *slog.Logger, img *image.NRGBA) (Payload, error) {
	r := NewReader(img)
	h, err := readHeader(r)
	if err != nil {
		return Payload{}, err
	}
	logger.Debug("extracted header", "nameLen", h.nameLen, "dataLen", h.dataLen, "flags", h.flags)

	// Reject impossible lengths before allocating for them.
	pixels := int64(img.Rect.Dx()) * int64(img.Rect.Dy())
	need := (headerSize + int64(h.nameLen) + int64(h.dataLen)) * pixelsPerByte
	if need > pixels {
		return Payload{}, fmt.Errorf("frame declares %d pixels, image has %d: %w",
			need, pixels, ErrBounds)
	}

	name := make([]byte, h.nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return Payload{}, fmt.Errorf("could not extract name: %w", err)
	}
	if !utf8.Valid(name) {
		return Payload{}, fmt.Errorf("name %q: %w", name, ErrEncoding)
	}

	data := make([]byte, h.dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return Payload{}, fmt.Errorf("could not extract data: %w", err)
	}

	if h.flags&flagChecksum != 0 {
		want := binary.BigEndian.Uint32(h.salt[:4])
		if got := crc32.ChecksumIEEE(data); got != want {
			return Payload{}, fmt.Errorf("crc %08x, frame declares %08x: %w", got, want, ErrChecksum)
		}
	}
	if h.flags&flagCompressed != 0 {
		if data, err = decompress(data); err != nil {
			return Payload{}, err
		}
	}

	logger.Info("extracted", "name", string(name), "bytes", len(data))
	return Payload{Name: string(name), Data: data}, nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic(err) // options are static
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("could not decompress data: %w", err)
	}
	return out, nil
}
