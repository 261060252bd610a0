// Package codec provides pluggable serialization for stored response
// snapshots. The worker wraps the encoded payload in its own wire envelope,
// so codecs only see the value bytes.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
