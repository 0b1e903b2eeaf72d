// Package codec provides the byte-level codecs used to carry values between
// processes and into diagnostic storage.
//
// Wire is the typed codec built on param traits: a leading schema-version byte
// followed by the trait encoding. The remaining codecs (CBOR, Msgpack, JSON,
// Protobuf, Bytes, String) serialize structured records such as captured
// messages.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
