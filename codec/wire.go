package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/wire"
)

// SchemaVersion prefixes every message produced by Wire. Changing a discriminant
// or a field order of any trait requires bumping it.
const SchemaVersion byte = 1

// Wire is the Codec for values of V encoded by trait Tr.
// The zero value is ready to use.
//
//	var hp codec.Wire[resource.HostPortPair, traits.HostPortPair]
//	b, _ := hp.Encode(resource.HostPortPair{Host: "example.com", Port: 443})
type Wire[V any, Tr param.Traits[V]] struct{}

var _ Codec[bool] = Wire[bool, param.Bool]{}

// Encode never fails.
func (c Wire[V, Tr]) Encode(v V) ([]byte, error) {
	return c.Append(nil, v), nil
}

// Append writes the version byte and v after the existing contents of dst.
func (Wire[V, Tr]) Append(dst []byte, v V) []byte {
	var tr Tr
	w := wire.NewWriterAppend(dst)
	w.WriteUint8(SchemaVersion)
	tr.Write(w, v)
	return w.Bytes()
}

// Decode reads exactly one message. Trailing bytes and unknown versions are
// malformed.
func (c Wire[V, Tr]) Decode(b []byte) (V, error) {
	v, off, err := c.DecodeAt(b, 0)
	if err != nil {
		return v, err
	}
	if off != len(b) {
		var zero V
		return zero, wire.Malformed(off, "%d trailing bytes", len(b)-off)
	}
	return v, nil
}

// DecodeAt reads one message starting at off and returns the offset just past it.
func (Wire[V, Tr]) DecodeAt(b []byte, off int) (V, int, error) {
	var tr Tr
	var zero V
	r := wire.NewReaderAt(b, off)
	ver, err := r.ReadUint8()
	if err != nil {
		return zero, off, errors.Wrap(err, "schema version")
	}
	if ver != SchemaVersion {
		return zero, off, wire.Malformed(off, "schema version %d, want %d", ver, SchemaVersion)
	}
	v, err := tr.Read(r)
	if err != nil {
		return zero, off, err
	}
	return v, r.Offset(), nil
}

// Describe decodes b and renders the value with at most limit bytes of output.
func (c Wire[V, Tr]) Describe(b []byte, limit int) (string, error) {
	v, err := c.Decode(b)
	if err != nil {
		return "", err
	}
	var tr Tr
	return param.Describe[V](tr, v, limit), nil
}
