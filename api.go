package paramwire

import (
	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/param"
)

// Serializer is the high-level, codec-agnostic message API for one value type.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
// A Serializer is safe for concurrent use.
type Serializer[V any] interface {
	Name() string

	Marshal(v V) ([]byte, error)
	Unmarshal(b []byte) (V, error)

	// Describe renders v for logs, bounded by Options.DescribeLimit.
	Describe(v V) string
}

// Options tune a Serializer. Only Name and Codec are required; NewTraits fills
// Codec and Log from the trait.
type Options[V any] struct {
	// Required
	Name  string // type name used in logs, hooks and errors, e.g. "host_port"
	Codec codec.Codec[V]

	// Log renders a value into a bounded buffer. nil => fmt "%+v".
	Log func(v V, l *param.LogBuffer)

	Logger         Logger // nil => NopLogger
	Hooks          Hooks  // nil => NopHooks
	MaxMessageSize int    // encode and decode; 0 => 16 MiB, <0 => unlimited
	DescribeLimit  int    // 0 => 4096 bytes
	LogValues      bool   // log described values at Debug on every encode/decode
}

func New[V any](opts Options[V]) (Serializer[V], error) {
	return newSerializer(opts)
}

// NewTraits builds a Serializer over the versioned wire codec of trait Tr.
func NewTraits[V any, Tr param.Traits[V]](opts Options[V]) (Serializer[V], error) {
	var tr Tr
	if opts.Codec == nil {
		opts.Codec = codec.Wire[V, Tr]{}
	}
	if opts.Log == nil {
		opts.Log = tr.Log
	}
	return newSerializer(opts)
}
