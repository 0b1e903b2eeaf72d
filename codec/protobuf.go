package codec

import "google.golang.org/protobuf/proto"

// Protobuf is a Codec for generated protobuf messages.
// Construct with NewProtobuf; the constructor supplies fresh messages to decode into.
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

// Encode uses deterministic map ordering so identical records hash identically.
func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
