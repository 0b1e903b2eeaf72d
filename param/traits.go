// Package param defines the per-type serialization contract ("param traits")
// and the traits for primitive and container types.
//
// A trait is a stateless, usually zero-size, type that knows how to write one Go
// type into a wire.Writer, read it back from a wire.Reader and render it for logs.
// Dispatch is static: callers name the trait type, nothing is looked up at runtime.
//
//	b := param.Marshal(traits.HostPortPair{}, resource.HostPortPair{Host: "example.com", Port: 443})
//	hp, err := param.Unmarshal(traits.HostPortPair{}, b)
package param

import (
	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/wire"
)

// Traits is the encode/decode/describe rule for values of type T.
//
// Write must be deterministic and must not fail; values that cannot be
// represented are a caller bug. Read consumes exactly the bytes Write produced
// and fails with a wire.DecodeError (truncated or malformed) otherwise. Log must
// not panic for any valid value.
type Traits[T any] interface {
	Write(w *wire.Writer, p T)
	Read(r *wire.Reader) (T, error)
	Log(p T, l *LogBuffer)
}

// Marshal encodes v into a fresh buffer.
func Marshal[T any, Tr Traits[T]](tr Tr, v T) []byte {
	w := wire.NewWriter(64)
	tr.Write(w, v)
	return w.Bytes()
}

// Unmarshal decodes exactly one value from b. Bytes left over after the value are
// reported as malformed.
func Unmarshal[T any, Tr Traits[T]](tr Tr, b []byte) (T, error) {
	var zero T
	r := wire.NewReader(b)
	v, err := tr.Read(r)
	if err != nil {
		return zero, err
	}
	if !r.Done() {
		return zero, wire.Malformed(r.Offset(), "%d trailing bytes", r.Remaining())
	}
	return v, nil
}

// Describe renders v with at most limit bytes of output (DefaultLogLimit if <= 0).
func Describe[T any, Tr Traits[T]](tr Tr, v T, limit int) string {
	l := NewLogBuffer(limit)
	tr.Log(v, l)
	return l.String()
}

// wrap annotates a nested decode failure while keeping its kind.
func wrap(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}
