package codec

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
)

// CBOROptions configure NewCBOR.
type CBOROptions struct {
	// Deterministic selects Core Deterministic Encoding (RFC 8949 4.2.1) so equal
	// records always produce equal bytes. Otherwise map keys stay unsorted.
	Deterministic bool
	// MaxDecode rejects longer inputs with ErrPayloadTooLarge and derives the
	// array and map size caps. 0 => no length bound, 1<<20 elements.
	MaxDecode int
}

const (
	cborMaxNesting   = 32
	cborDefaultElems = 1 << 20
	// bounds accepted by cbor.DecOptions for array and map caps
	cborMinElems = 16
	cborMaxElems = math.MaxInt32
)

// CBOR is a Codec backed by fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Times are encoded as integer Unix microseconds, the resolution every trait
// carries. Decoding rejects duplicate map keys.
type CBOR[V any] struct {
	enc       cbor.EncMode
	dec       cbor.DecMode
	maxDecode int
}

var _ Codec[struct{}] = CBOR[struct{}]{}

func NewCBOR[V any](opts CBOROptions) (CBOR[V], error) {
	if opts.MaxDecode < 0 {
		return CBOR[V]{}, errors.Newf("codec: cbor MaxDecode %d < 0", opts.MaxDecode)
	}
	var eo cbor.EncOptions
	if opts.Deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeUnixMicro
	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, errors.Wrap(err, "codec: cbor encode mode")
	}

	// every array element takes at least one byte and every map pair two
	elems, pairs := cborDefaultElems, cborDefaultElems
	if opts.MaxDecode > 0 {
		elems = clampElems(opts.MaxDecode)
		pairs = clampElems(opts.MaxDecode / 2)
	}
	dm, err := (cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  cborMaxNesting,
		MaxArrayElements: elems,
		MaxMapPairs:      pairs,
	}).DecMode()
	if err != nil {
		return CBOR[V]{}, errors.Wrap(err, "codec: cbor decode mode")
	}
	return CBOR[V]{enc: em, dec: dm, maxDecode: opts.MaxDecode}, nil
}

func clampElems(n int) int {
	return min(max(n, cborMinElems), cborMaxElems)
}

// MustCBOR is like NewCBOR but panics on error.
func MustCBOR[V any](opts CBOROptions) CBOR[V] {
	c, err := NewCBOR[V](opts)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) {
	b, err := c.enc.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "codec: cbor encode")
	}
	return b, nil
}

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	if c.maxDecode > 0 && len(b) > c.maxDecode {
		return v, errors.Wrapf(ErrPayloadTooLarge, "cbor %d > %d", len(b), c.maxDecode)
	}
	if err := c.dec.Unmarshal(b, &v); err != nil {
		return v, errors.Wrap(err, "codec: cbor decode")
	}
	return v, nil
}
