// Package wire frames stored cache entries so corruption and foreign
// writes are detectable before the codec runs.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1

	// KindResponse marks a stored response snapshot.
	KindResponse byte = 1
)

var (
	ErrCorrupt = errors.New("swkit: corrupt entry")
	magic4     = [...]byte{'S', 'W', 'K', 'C'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames payload: magic(4) | ver(1) | kind(1) | vlen(u32 be) | payload.
func Encode(kind byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kind)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode validates the envelope and returns the kind and payload.
// Any malformed input yields ErrCorrupt; callers treat that as a miss and
// delete the entry (self-heal).
func Decode(b []byte) (kind byte, payload []byte, err error) {
	const hdr = 4 + 1 + 1 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}
	kind = b[5]

	vlen := int(binary.BigEndian.Uint32(b[6:10]))
	if vlen < 0 || vlen != len(b)-hdr { // exact length; trailing bytes are corruption
		return 0, nil, ErrCorrupt
	}
	return kind, b[hdr : hdr+vlen], nil
}
