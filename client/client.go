// Package client implements the outbound half of the engine: it builds call
// and notification envelopes, runs the transform chain over them, and routes
// inbound responses to the callbacks registered for their identifiers.
//
// The client owns no connection. The embedder encodes and sends whatever
// CreateCall returns over its own transport, then feeds raw inbound bytes to
// Receive, which correlates them:
//
//	CreateCall(id=a) ──→ embedder transport ──→ server
//	Receive ←── response(id=a) → pending[a] callback fires once, entry removed
package client

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"mini-jsonrpc/codec"
	"mini-jsonrpc/config"
	"mini-jsonrpc/message"
	"mini-jsonrpc/middleware"
)

// ErrUndecodable marks inbound bytes that failed to decode. It is the
// failure value Receive returns instead of raising; callers that care can
// test for it with errors.Is.
var ErrUndecodable = errors.New("rpc: undecodable response")

// Callback handles the response to one outstanding call. It fires at most
// once; the pending entry is removed in the same step that invokes it.
type Callback func(resp *message.Response)

// Result is one element of a batch outcome: either a parsed response or the
// failure marker for that element.
type Result struct {
	Response *message.Response
	Err      error
}

// Client builds outbound envelopes and routes inbound responses.
type Client struct {
	transforms []middleware.ClientTransform
	pending    sync.Map // canonical id string → Callback
	cdc        codec.Codec
	opts       config.Options

	// GenerateID produces identifiers for outbound calls. The default is
	// uuid.NewString, which is collision-resistant across the process.
	GenerateID func() string

	// ErrorLog is invoked for undecodable inbound bytes when the LogErrors
	// option is set. Defaults to log.Printf.
	ErrorLog func(format string, args ...any)
}

// NewClient creates a client with default options (JSON codec, error
// logging on).
func NewClient() *Client {
	return NewClientWithOptions(config.Default())
}

// NewClientWithOptions creates a client using the given option set.
func NewClientWithOptions(opts config.Options) *Client {
	return &Client{
		cdc:        codec.GetCodec(opts.Codec),
		opts:       opts,
		GenerateID: uuid.NewString,
		ErrorLog:   log.Printf,
	}
}

// Use appends a transform to the middleware chain. Transforms run in
// registration order on every outbound envelope, each seeing the previous
// stage's output.
func (c *Client) Use(transform middleware.ClientTransform) error {
	if transform == nil {
		return fmt.Errorf("rpc: middleware must not be nil")
	}
	c.transforms = append(c.transforms, transform)
	return nil
}

// CreateCall builds a call envelope with a fresh identifier, runs the
// transform chain, and returns the final identifier together with the
// transformed envelope. The returned identifier is the canonical string
// form of the envelope's id, so it matches the pending registry even when
// a transform replaced the id with a number. The caller sends the envelope
// over its own transport; register a callback for the identifier to
// receive the reply.
func (c *Client) CreateCall(method string, params ...any) (string, *message.Request, error) {
	if method == "" {
		return "", nil, fmt.Errorf("rpc: method name must not be empty")
	}
	id := c.GenerateID()
	req := c.transform(&message.Request{
		JSONRPC: message.Version,
		Method:  method,
		Params:  paramsOrEmpty(params),
		ID:      id,
	})
	// A transform may have replaced the identifier.
	if req.ID != nil {
		id = pendingKey(req.ID)
	}
	return id, req, nil
}

// CreateNotify builds a notification envelope: no identifier, no response
// ever, no pending entry.
func (c *Client) CreateNotify(method string, params ...any) (*message.Request, error) {
	if method == "" {
		return nil, fmt.Errorf("rpc: method name must not be empty")
	}
	return c.transform(&message.Request{
		JSONRPC: message.Version,
		Method:  method,
		Params:  paramsOrEmpty(params),
	}), nil
}

func (c *Client) transform(req *message.Request) *message.Request {
	for _, t := range c.transforms {
		req = t(req)
	}
	return req
}

// RegisterHandler stores the callback for an outstanding identifier,
// overwriting any prior entry for the same id.
func (c *Client) RegisterHandler(id any, cb Callback) error {
	if cb == nil {
		return fmt.Errorf("rpc: callback for id %v must not be nil", id)
	}
	c.pending.Store(pendingKey(id), cb)
	return nil
}

// Receive decodes one raw inbound message and routes it. If a callback is
// registered for the response's identifier it fires exactly once and its
// entry is removed; the parsed response is returned either way so the
// caller can inspect unmatched responses ad hoc. Undecodable input yields
// ErrUndecodable, never a panic.
func (c *Client) Receive(raw []byte) (*message.Response, error) {
	var resp message.Response
	if err := c.cdc.Decode(raw, &resp); err != nil {
		c.logf("Failed to decode response: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	if resp.ID != nil {
		// LoadAndDelete claims the entry in one step, so a duplicate
		// response for the same id can never fire the callback twice.
		if cb, ok := c.pending.LoadAndDelete(pendingKey(resp.ID)); ok {
			cb.(Callback)(&resp)
		}
	}
	return &resp, nil
}

// ReceiveBatch applies Receive to each element in order. Elements are
// independent: a failure in one never affects the others.
func (c *Client) ReceiveBatch(raws [][]byte) []Result {
	results := make([]Result, len(raws))
	for i, raw := range raws {
		resp, err := c.Receive(raw)
		results[i] = Result{Response: resp, Err: err}
	}
	return results
}

func (c *Client) logf(format string, args ...any) {
	if c.opts.LogErrors && c.ErrorLog != nil {
		c.ErrorLog(format, args...)
	}
}

func paramsOrEmpty(params []any) []any {
	if params == nil {
		return []any{}
	}
	return params
}

// pendingKey folds the string and number identifier forms into one map key,
// so an entry registered with int 7 still matches a decoded float64 7.
func pendingKey(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
