package codec

import "github.com/cockroachdb/errors"

// ErrPayloadTooLarge is returned by Limit.Decode for oversized inputs.
var ErrPayloadTooLarge = errors.New("codec: payload too large")

// Limit wraps another codec and refuses to decode payloads longer than
// MaxDecode bytes. Encode is forwarded unchanged. MaxDecode <= 0 disables the check.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

func (c Limit[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, errors.Wrapf(ErrPayloadTooLarge, "%d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
