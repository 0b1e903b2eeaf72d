package wire

import "encoding/binary"

// Reader is a bounds-checked cursor over a received message.
// It borrows the slice; values that must outlive the message are copied by
// ReadString and ReadData.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// NewReaderAt starts the cursor at off. An off outside [0, len(b)] yields a
// Reader whose first read fails as truncated.
func NewReaderAt(b []byte, off int) *Reader {
	if off < 0 {
		off = len(b) + 1
	}
	return &Reader{buf: b, off: off}
}

// Offset is the current cursor position.
func (r *Reader) Offset() int { return r.off }

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.off >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.off
}

// Done reports whether every byte has been consumed.
func (r *Reader) Done() bool { return r.off == len(r.buf) }

// ReadBytes returns the next n bytes and advances. The slice aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, Malformed(r.off, "negative read size %d", n)
	}
	if n > r.Remaining() || r.off > len(r.buf) {
		return nil, Truncated(r.off, n, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadBool() (bool, error) {
	start := r.off
	v, err := r.ReadUint8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, Malformed(start, "invalid bool byte 0x%02x", v)
	}
}

// ReadLength reads an int32 length prefix and checks that many bytes remain.
func (r *Reader) ReadLength() (int, error) {
	return r.ReadCount(1)
}

// ReadCount reads an int32 element count where every element occupies at least
// minElem bytes, and rejects counts the remaining input cannot hold.
func (r *Reader) ReadCount(minElem int) (int, error) {
	start := r.off
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, Malformed(start, "negative length %d", v)
	}
	n := int(v)
	if minElem < 1 {
		minElem = 1
	}
	// division keeps the bound overflow-safe on 32-bit ints
	if n > r.Remaining()/minElem {
		return 0, Truncated(r.off, n*minElem, r.Remaining())
	}
	return n, nil
}

// ReadString reads a length-prefixed string. The result does not alias the input.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadLength()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadData reads a length-prefixed payload into a freshly allocated slice.
// An empty payload decodes as nil.
func (r *Reader) ReadData() ([]byte, error) {
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadBytes(n)
	if err != nil || n == 0 {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}
