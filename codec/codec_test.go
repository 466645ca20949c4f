package codec

import (
	"mini-jsonrpc/message"
	"testing"
)

func TestJSONCodec(t *testing.T) {
	jsonCodec := &JSONCodec{}

	originalReq := &message.Request{
		JSONRPC: message.Version,
		Method:  "add",
		Params:  []any{"a", "b"},
		ID:      "req-1",
	}

	data, err := jsonCodec.Encode(originalReq)
	if err != nil {
		t.Fatalf("JSONCodec Encode failed: %v", err)
	}

	var decodedReq message.Request
	err = jsonCodec.Decode(data, &decodedReq)
	if err != nil {
		t.Fatalf("JSONCodec Decode failed: %v", err)
	}

	if originalReq.Method != decodedReq.Method {
		t.Errorf("Method mismatch: got %s, want %s", decodedReq.Method, originalReq.Method)
	}
	if originalReq.ID != decodedReq.ID {
		t.Errorf("ID mismatch: got %v, want %v", decodedReq.ID, originalReq.ID)
	}
	if len(decodedReq.Params) != 2 {
		t.Errorf("Params mismatch: got %v, want %v", decodedReq.Params, originalReq.Params)
	}
}

func TestCBORCodec(t *testing.T) {
	cborCodec := &CBORCodec{}

	originalResp := message.ErrorResponse("req-2", message.NewError(message.CodeMethodNotFound, "Method not found"))

	data, err := cborCodec.Encode(originalResp)
	if err != nil {
		t.Fatalf("CBORCodec Encode failed: %v", err)
	}

	var decodedResp message.Response
	err = cborCodec.Decode(data, &decodedResp)
	if err != nil {
		t.Fatalf("CBORCodec Decode failed: %v", err)
	}

	if decodedResp.Error == nil {
		t.Fatal("Expect error object to survive the round trip")
	}
	if decodedResp.Error.Code != message.CodeMethodNotFound {
		t.Errorf("Code mismatch: got %d, want %d", decodedResp.Error.Code, message.CodeMethodNotFound)
	}
	if decodedResp.ID != "req-2" {
		t.Errorf("ID mismatch: got %v, want %v", decodedResp.ID, "req-2")
	}
}

func TestCBORCodecResponseShape(t *testing.T) {
	cborCodec := &CBORCodec{}

	// Success with a nil result: exactly one of result/error on the wire.
	data, err := cborCodec.Encode(message.ResultResponse("r1", nil))
	if err != nil {
		t.Fatalf("CBORCodec Encode failed: %v", err)
	}
	var fields map[string]any
	if err := cborCodec.Decode(data, &fields); err != nil {
		t.Fatalf("CBORCodec Decode failed: %v", err)
	}
	if _, ok := fields["result"]; !ok {
		t.Fatalf("Expect result field for a nil-result success, got %v", fields)
	}
	if _, ok := fields["error"]; ok {
		t.Fatalf("Success response must not carry an error field, got %v", fields)
	}

	// Error response: no result field at all.
	data, err = cborCodec.Encode(message.ErrorResponse("r2", message.NewError(message.CodeInternalError, "Internal error")))
	if err != nil {
		t.Fatalf("CBORCodec Encode failed: %v", err)
	}
	fields = nil
	if err := cborCodec.Decode(data, &fields); err != nil {
		t.Fatalf("CBORCodec Decode failed: %v", err)
	}
	if _, ok := fields["error"]; !ok {
		t.Fatalf("Expect error field, got %v", fields)
	}
	if _, ok := fields["result"]; ok {
		t.Fatalf("Error response must not carry a result field, got %v", fields)
	}
}

func TestGetCodec(t *testing.T) {
	if GetCodec(CodecTypeJSON).Type() != CodecTypeJSON {
		t.Error("Expect JSON codec for CodecTypeJSON")
	}
	if GetCodec(CodecTypeCBOR).Type() != CodecTypeCBOR {
		t.Error("Expect CBOR codec for CodecTypeCBOR")
	}
}
