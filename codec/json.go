package codec

import "encoding/json"

// JSON serializes values with encoding/json. Larger than CBOR/msgpack for
// binary bodies ([]byte fields are base64'd) but convenient for debugging
// cache contents by hand.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
