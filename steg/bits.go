package steg

import "image"

// One payload bit per channel LSB, four channels per pixel, so a byte
// spans exactly two pixels.
const (
	bitsPerPixel  = 4
	pixelsPerByte = 2
)

// Writer embeds bytes into the channel LSBs of an image, consuming pixels
// in row-major order. The cursor is shared across calls, so successive
// writes form one continuous bitstream. Create with NewWriter.
type Writer struct {
	img *image.NRGBA
	pos int // pixels consumed so far
}

func NewWriter(img *image.NRGBA) *Writer {
	return &Writer{img: img}
}

// Pixels reports how many pixels the writer has consumed.
func (w *Writer) Pixels() int { return w.pos }

// WriteByte spreads b over the next two pixels, bit k of b into the LSB
// of channel k mod 4. Setting a bit is c|1, clearing is c&^1; every bit
// above bit 0 keeps its value.
func (w *Writer) WriteByte(b byte) error {
	for half := 0; half < 8; half += bitsPerPixel {
		x, y, err := pixelPosition(w.img.Rect, w.pos)
		if err != nil {
			return err
		}
		off := w.img.PixOffset(x, y)
		px := w.img.Pix[off : off+4 : off+4]
		for c := range px {
			if b>>(half+c)&1 == 1 {
				px[c] |= 1
			} else {
				px[c] &^= 1
			}
		}
		w.pos++
	}
	return nil
}

// Write embeds p in order. It reports how many bytes were fully embedded;
// on a bounds failure pixels consumed by earlier bytes stay modified.
func (w *Writer) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := w.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// Reader extracts bytes previously embedded by a Writer, walking the same
// pixel order and channel layout. Create with NewReader.
type Reader struct {
	img *image.NRGBA
	pos int
}

func NewReader(img *image.NRGBA) *Reader {
	return &Reader{img: img}
}

// Pixels reports how many pixels the reader has consumed.
func (r *Reader) Pixels() int { return r.pos }

// ReadByte reassembles a byte from the channel LSBs of the next two
// pixels, the inverse of Writer.WriteByte.
func (r *Reader) ReadByte() (byte, error) {
	var b byte
	for half := 0; half < 8; half += bitsPerPixel {
		x, y, err := pixelPosition(r.img.Rect, r.pos)
		if err != nil {
			return 0, err
		}
		off := r.img.PixOffset(x, y)
		px := r.img.Pix[off : off+4]
		for c, v := range px {
			b |= (v & 1) << (half + c)
		}
		r.pos++
	}
	return b, nil
}

// Read fills p with extracted bytes, advancing the shared cursor.
func (r *Reader) Read(p []byte) (int, error) {
	for i := range p {
		b, err := r.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}
