package steg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Frame layout, in logical bytes as embedded:
//
//	offset  size  field
//	0       1     flags
//	1       4     name length (big-endian)
//	5       4     data length (big-endian)
//	9       16    salt
//	25      N     name bytes (UTF-8)
//	25+N    M     data bytes
//
// Flags and salt are zero unless an Options feature is enabled.
const (
	headerSize = 25
	saltSize   = 16
)

// Header flag bits.
const (
	flagCompressed = 1 << iota // data is zstd-compressed
	flagChecksum               // salt[0:4] holds an IEEE CRC-32 of the data

	knownFlags = flagCompressed | flagChecksum
)

type header struct {
	flags   byte
	nameLen uint32
	dataLen uint32
	salt    [saltSize]byte
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	buf[0] = h.flags
	binary.BigEndian.PutUint32(buf[1:5], h.nameLen)
	binary.BigEndian.PutUint32(buf[5:9], h.dataLen)
	copy(buf[9:], h.salt[:])
	return buf
}

func writeHeader(w *Writer, h header) error {
	if _, err := w.Write(h.marshal()); err != nil {
		return fmt.Errorf("could not embed header: %w", err)
	}
	return nil
}

func readHeader(r *Reader) (header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return header{}, fmt.Errorf("could not extract header: %w", err)
	}

	h := header{
		flags:   buf[0],
		nameLen: binary.BigEndian.Uint32(buf[1:5]),
		dataLen: binary.BigEndian.Uint32(buf[5:9]),
	}
	copy(h.salt[:], buf[9:])

	if h.flags&^knownFlags != 0 {
		return header{}, fmt.Errorf("unknown flags %#02x: %w", h.flags, ErrHeader)
	}
	return h, nil
}
