package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// CBORCodec serializes envelopes as CBOR (RFC 8949) via fxamacker/cbor.
// Pros: compact binary payload, cheap to decode, reuses the json struct tags.
// Cons: not human-readable, peers must agree on the format out of band.
type CBORCodec struct{}

func (c *CBORCodec) Encode(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (c *CBORCodec) Decode(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (c *CBORCodec) Type() CodecType {
	return CodecTypeCBOR
}
