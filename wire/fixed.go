package wire

import "unsafe"

// FixedWidth is any integer with a fixed wire size.
type FixedWidth interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// PutFixed writes v big-endian in exactly its in-memory width.
func PutFixed[T FixedWidth](w *Writer, v T) {
	switch unsafe.Sizeof(v) {
	case 1:
		w.WriteUint8(uint8(v))
	case 2:
		w.WriteUint16(uint16(v))
	case 4:
		w.WriteUint32(uint32(v))
	default:
		w.WriteUint64(uint64(v))
	}
}

// Fixed reads a value written by PutFixed.
func Fixed[T FixedWidth](r *Reader) (T, error) {
	var zero T
	switch unsafe.Sizeof(zero) {
	case 1:
		v, err := r.ReadUint8()
		return T(v), err
	case 2:
		v, err := r.ReadUint16()
		return T(v), err
	case 4:
		v, err := r.ReadUint32()
		return T(v), err
	default:
		v, err := r.ReadUint64()
		return T(v), err
	}
}
