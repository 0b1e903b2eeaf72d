package traits

import "github.com/unkn0wn-root/paramwire/wire"

// readEnum reads an int32 discriminant and rejects values outside [lo, hi].
func readEnum(r *wire.Reader, what string, lo, hi int32) (int32, error) {
	start := r.Offset()
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, wire.Malformed(start, "%s %d out of range [%d, %d]", what, v, lo, hi)
	}
	return v, nil
}
