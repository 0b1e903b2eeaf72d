package codec

import jsoniter "github.com/json-iterator/go"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON is a Codec backed by json-iterator in standard-library compatible mode.
// Used for human-readable capture exports. The zero value is ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return jsonAPI.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := jsonAPI.Unmarshal(b, &v)
	return v, err
}

// DecodeInto decodes over *v. Fields absent from b keep their current values.
func (JSON[V]) DecodeInto(b []byte, v *V) error { return jsonAPI.Unmarshal(b, v) }
