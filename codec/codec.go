// Package codec implements the wire serialization collaborator: everything
// the engine sends or receives passes through a Codec, so embedders can swap
// the wire format without touching dispatch or correlation logic.
package codec

type CodecType byte

const (
	CodecTypeJSON CodecType = 0
	CodecTypeCBOR CodecType = 1
)

type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Type() CodecType // 0=JSON, 1=CBOR
}

func GetCodec(codecType CodecType) Codec {
	if codecType == CodecTypeCBOR {
		return &CBORCodec{}
	}

	return &JSONCodec{}
}
