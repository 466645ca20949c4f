// Package message defines the JSON-RPC 2.0 envelope types exchanged between
// client and server, plus the reserved error taxonomy.
//
// Request and Response are the "envelopes" for every call. They get serialized
// by the codec layer; the engine itself never touches raw bytes beyond handing
// them to a codec.
package message

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Version is the protocol tag every envelope must carry.
const Version = "2.0"

// Reserved error codes (JSON-RPC 2.0). Codes outside the reserved range
// below zero are free for application handlers.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeServerError    = -32000
)

// Request carries a single call or notification.
//
//   - Params are positional. A nil Params is treated as an empty sequence.
//   - A nil ID marks a notification: no response is ever produced for it,
//     and it is never matched against a pending call.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      any    `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no identifier.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// ErrorObject is the wire-level error value inside an error response.
// It implements error so application handlers can return one directly
// and have its code/message/data reported verbatim.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *ErrorObject) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("json-rpc error %d", e.Code)
	}
	return e.Message
}

// NewError builds an error object with no auxiliary data.
func NewError(code int, message string) *ErrorObject {
	return &ErrorObject{Code: code, Message: message}
}

// Response carries the outcome of a single call. Exactly one of Result and
// Error is ever present on the wire: success responses always carry "result"
// (even when null), error responses carry only "error".
type Response struct {
	JSONRPC string       `json:"jsonrpc"`
	Result  any          `json:"result,omitempty"`
	Error   *ErrorObject `json:"error,omitempty"`
	ID      any          `json:"id,omitempty"`
}

// The two wire shapes. Marshaling through these instead of Response itself
// is what keeps result/error mutually exclusive: the success shape has no
// error field and its result is never omitted, the error shape has no
// result field. Every codec must route through them, so Response implements
// both json.Marshaler and cbor.Marshaler.
type successBody struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result"`
	ID      any    `json:"id,omitempty"`
}

type errorBody struct {
	JSONRPC string       `json:"jsonrpc"`
	Error   *ErrorObject `json:"error"`
	ID      any          `json:"id,omitempty"`
}

func (r *Response) MarshalJSON() ([]byte, error) {
	if r.Error != nil {
		return json.Marshal(errorBody{JSONRPC: r.JSONRPC, Error: r.Error, ID: r.ID})
	}
	return json.Marshal(successBody{JSONRPC: r.JSONRPC, Result: r.Result, ID: r.ID})
}

func (r *Response) MarshalCBOR() ([]byte, error) {
	if r.Error != nil {
		return cbor.Marshal(errorBody{JSONRPC: r.JSONRPC, Error: r.Error, ID: r.ID})
	}
	return cbor.Marshal(successBody{JSONRPC: r.JSONRPC, Result: r.Result, ID: r.ID})
}

// ResultResponse builds the success envelope for the given identifier.
func ResultResponse(id any, result any) *Response {
	return &Response{
		JSONRPC: Version,
		Result:  result,
		ID:      id,
	}
}

// ErrorResponse builds the error envelope for the given identifier
// (nil when the originating request could not be parsed at all).
//
// Zero-valued fields of errObj fall back to code -32000 and message
// "Unauthorized". A nil errObj yields that default entirely.
func ErrorResponse(id any, errObj *ErrorObject) *Response {
	e := &ErrorObject{Code: CodeServerError, Message: "Unauthorized"}
	if errObj != nil {
		if errObj.Code != 0 {
			e.Code = errObj.Code
		}
		if errObj.Message != "" {
			e.Message = errObj.Message
		}
		e.Data = errObj.Data
	}
	return &Response{
		JSONRPC: Version,
		Error:   e,
		ID:      id,
	}
}
