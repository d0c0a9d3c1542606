package steg

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"log/slog"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Encode embeds p into img in place: header, then name, then data, as one
// continuous bitstream over the pixels. It refuses without touching a
// pixel when the payload would push utilization past MaxUtilization.
// Progress is reported through logger.
func Encode(logger *slog.Logger, img *image.NRGBA, p Payload, opts Options) error {
	var h header
	data := p.Data
	if opts.Compress {
		data = compress(data)
		h.flags |= flagCompressed
	}
	if opts.Checksum {
		binary.BigEndian.PutUint32(h.salt[:4], crc32.ChecksumIEEE(data))
		h.flags |= flagChecksum
	}

	if uint64(len(p.Name)) > math.MaxUint32 || uint64(len(data)) > math.MaxUint32 {
		return fmt.Errorf("name %d and data %d bytes must fit 32-bit length fields: %w",
			len(p.Name), len(data), ErrCapacity)
	}
	h.nameLen = uint32(len(p.Name))
	h.dataLen = uint32(len(data))

	used := Utilization(img.Rect, len(p.Name)+len(data))
	if used > MaxUtilization {
		return fmt.Errorf("payload of %d bytes needs %.1f%% of a %d byte capacity: %w",
			len(p.Name)+len(data), used, Capacity(img.Rect), ErrCapacity)
	}
	logger.Info("embedding", "name", p.Name, "bytes", len(data),
		"used", fmt.Sprintf("%.1f%%", used))

	w := NewWriter(img)
	if err := writeHeader(w, h); err != nil {
		return err
	}
	logger.Debug("embedded header", "pixels", w.Pixels())

	if _, err := w.Write([]byte(p.Name)); err != nil {
		return fmt.Errorf("could not embed name: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not embed data: %w", err)
	}
	logger.Debug("embedded payload", "pixels", w.Pixels())

	return nil
}

func compress(data []byte) []byte {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic(err) // options are static
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}
