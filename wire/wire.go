// Package wire is the byte-level buffer adapter the param traits write into and
// read from.
//
// Layout rules shared by every codec:
//
//	integers   big-endian, fixed width
//	bool       1 byte, 0 or 1
//	length     int32 (negative => malformed, beyond remaining => truncated)
//	string     length | bytes
//	data       length | bytes
//
// No alignment and no padding. Reader is the only place that touches the backing
// slice on the decode side, so a codec cannot read out of bounds regardless of input.
package wire

import (
	"encoding/binary"
	"math"
)

// MaxLength is the largest length prefix a Writer will emit.
const MaxLength = math.MaxInt32

const minGrow = 64

// Writer appends encoded values to a growable buffer.
// A Writer is owned by one goroutine for the duration of one message.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with at least sizeHint bytes of capacity.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// NewWriterBuffer writes into buf's storage starting at offset 0. If the encoded
// message outgrows cap(buf) the Writer moves to a larger allocation.
func NewWriterBuffer(buf []byte) *Writer {
	return &Writer{buf: buf[:0]}
}

// NewWriterAppend continues after the existing contents of dst.
func NewWriterAppend(dst []byte) *Writer {
	return &Writer{buf: dst}
}

// Bytes returns the encoded bytes. The slice aliases the Writer's storage until
// the next write or Reset.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Len() int { return len(w.buf) }

// Reset drops the contents and keeps the capacity.
func (w *Writer) Reset() { w.buf = w.buf[:0] }

// grow guarantees room for n more bytes, doubling capacity as needed.
func (w *Writer) grow(n int) {
	if cap(w.buf)-len(w.buf) >= n {
		return
	}
	need := len(w.buf) + n
	c := 2 * cap(w.buf)
	if c < minGrow {
		c = minGrow
	}
	for c < need {
		c *= 2
	}
	nb := make([]byte, len(w.buf), c)
	copy(nb, w.buf)
	w.buf = nb
}

// WriteBytes appends p verbatim (no length prefix).
func (w *Writer) WriteBytes(p []byte) {
	w.grow(len(p))
	w.buf = append(w.buf, p...)
}

func (w *Writer) WriteUint8(v uint8) {
	w.grow(1)
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteUint16(v uint16) {
	w.grow(2)
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.grow(4)
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.grow(8)
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

// WriteLength writes an int32 length or count prefix.
// n outside [0, MaxLength] is a caller bug and panics.
func (w *Writer) WriteLength(n int) {
	if n < 0 || n > MaxLength {
		panic("wire: length out of range")
	}
	w.WriteInt32(int32(n))
}

// WriteString writes a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteLength(len(s))
	w.grow(len(s))
	w.buf = append(w.buf, s...)
}

// WriteData writes a length-prefixed byte payload.
func (w *Writer) WriteData(p []byte) {
	w.WriteLength(len(p))
	w.WriteBytes(p)
}
