// Package bits implements big-endian, MSB-first bit streams over byte
// buffers. The consent wire format packs fields at arbitrary bit widths
// with no byte alignment between them, so both sides track a sub-byte
// cursor. Widths of 1 to 64 bits are supported.
package bits

import "io"

// Reader consumes unsigned integers of arbitrary bit width from a byte
// buffer, MSB first, extending across byte boundaries.
type Reader struct {
	buf []byte
	pos int // cursor in bits from the start of buf
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Read consumes width bits (1..64) and returns them as the low bits of the
// result. Returns io.ErrUnexpectedEOF if fewer than width bits remain.
func (r *Reader) Read(width uint) (uint64, error) {
	if width == 0 || width > 64 {
		panic("bits: read width out of range")
	}
	if r.pos+int(width) > len(r.buf)*8 {
		return 0, io.ErrUnexpectedEOF
	}
	var v uint64
	for i := uint(0); i < width; i++ {
		b := r.buf[r.pos>>3]
		shift := 7 - (uint(r.pos) & 7)
		v = v<<1 | uint64((b>>shift)&1)
		r.pos++
	}
	return v, nil
}

// ReadBool consumes a single bit.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.Read(1)
	return v == 1, err
}

// Remaining reports how many unread bits are left in the buffer.
func (r *Reader) Remaining() int {
	return len(r.buf)*8 - r.pos
}

// Writer buffers unsigned integers of arbitrary bit width, MSB first.
// Call Bytes (which byte-aligns) to obtain the encoded buffer.
type Writer struct {
	buf []byte
	cur byte
	n   uint // bits used in cur
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

// Write appends the low width bits of v, MSB first. Bits of v above width
// are ignored; callers validate ranges before writing.
func (w *Writer) Write(width uint, v uint64) {
	if width == 0 || width > 64 {
		panic("bits: write width out of range")
	}
	for i := int(width) - 1; i >= 0; i-- {
		if v>>uint(i)&1 == 1 {
			w.cur |= 1 << (7 - w.n)
		}
		w.n++
		if w.n == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur = 0
			w.n = 0
		}
	}
}

// WriteBool appends a single bit.
func (w *Writer) WriteBool(v bool) {
	var b uint64
	if v {
		b = 1
	}
	w.Write(1, b)
}

// WriteBytes appends p as consecutive 8-bit writes. The stream need not be
// byte-aligned; this is exactly equivalent to calling Write(8, b) per byte.
func (w *Writer) WriteBytes(p []byte) {
	if w.n == 0 {
		w.buf = append(w.buf, p...)
		return
	}
	for _, b := range p {
		w.Write(8, uint64(b))
	}
}

// ByteAlign pads the current byte with zero bits so the buffer ends on a
// byte boundary.
func (w *Writer) ByteAlign() {
	if w.n > 0 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.n = 0
	}
}

// Bytes byte-aligns the stream and returns the encoded buffer.
func (w *Writer) Bytes() []byte {
	w.ByteAlign()
	return w.buf
}

// Len reports the number of bits written so far.
func (w *Writer) Len() int {
	return len(w.buf)*8 + int(w.n)
}
