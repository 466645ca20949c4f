// Package protocol implements an optional length-prefixed framing for
// embedders that run the engine over a raw byte stream (TCP, pipes).
//
// The engine itself is message-oriented: Receive wants one complete
// serialized envelope. A byte stream has no message boundaries, so the
// frame carries the body length up front; the receiver reads the fixed
// header first, then exactly that many body bytes.
//
// Frame format:
//
//	0      3  4  5         9
//	┌──────┬──┬──┬─────────┬───────────────┐
//	│magic │v │ct│ bodyLen │    body ...    │
//	│ jrp  │01│  │ uint32  │ bodyLen bytes  │
//	└──────┴──┴──┴─────────┴───────────────┘
//
// The codec-type byte tells the receiving side which codec decodes the
// body, so a JSON client can talk to a CBOR-configured peer without out
// of band agreement. No sequence number is needed: correlation lives in
// the envelope's id field.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"mini-jsonrpc/codec"
)

// Magic bytes "jrp" identify a frame and reject non-protocol peers early.
const (
	MagicByte1 byte = 0x6a // 'j'
	MagicByte2 byte = 0x72 // 'r'
	MagicByte3 byte = 0x70 // 'p'
	Version    byte = 0x01
	HeaderSize int  = 9 // 3 (magic) + 1 (version) + 1 (codec) + 4 (bodyLen)
)

// Encode writes one frame (header + serialized envelope) to w. Callers
// sharing a writer across goroutines must serialize calls themselves, or
// frames will interleave and corrupt the stream.
func Encode(w io.Writer, codecType codec.CodecType, body []byte) error {
	buf := make([]byte, HeaderSize)
	buf[0], buf[1], buf[2] = MagicByte1, MagicByte2, MagicByte3
	buf[3] = Version
	buf[4] = byte(codecType)
	binary.BigEndian.PutUint32(buf[5:9], uint32(len(body)))

	if _, err := w.Write(buf); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	return nil
}

// Decode reads one complete frame from r, validating magic, version, and
// codec type. io.ReadFull guarantees exactly the declared number of body
// bytes is consumed, so the next frame starts cleanly.
func Decode(r io.Reader) (codec.CodecType, []byte, error) {
	headerBuf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return 0, nil, err
	}

	if headerBuf[0] != MagicByte1 || headerBuf[1] != MagicByte2 || headerBuf[2] != MagicByte3 {
		return 0, nil, fmt.Errorf("invalid magic number: %x", headerBuf[0:3])
	}
	if headerBuf[3] != Version {
		return 0, nil, fmt.Errorf("unsupported version: %d", headerBuf[3])
	}
	codecType := codec.CodecType(headerBuf[4])
	if codecType != codec.CodecTypeJSON && codecType != codec.CodecTypeCBOR {
		return 0, nil, fmt.Errorf("unsupported codec type: %d", headerBuf[4])
	}

	bodyLen := binary.BigEndian.Uint32(headerBuf[5:9])
	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, err
	}
	return codecType, body, nil
}
