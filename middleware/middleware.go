// Package middleware defines the two pre-dispatch extension contracts and a
// few ready-made implementations.
//
// Server and client middlewares are deliberately distinct types. A server
// middleware is a gate: it inspects an inbound request before validation and
// either lets dispatch continue or stops it with an error. A client
// middleware is a transform: it rewrites an outbound envelope and each stage
// sees the previous stage's output.
package middleware

import (
	"mini-jsonrpc/message"
)

// MethodInfo describes the registered method an inbound request resolved to.
// Gates receive nil when the method is unknown; validation has not run yet
// at that point, so a gate can still short-circuit with its own error.
type MethodInfo struct {
	Name string
	Meta map[string]any
}

// ServerGate runs before dispatch. Returning false stops processing: the
// supplied error object (or an internal-error default when nil) becomes the
// response and the handler never executes.
type ServerGate func(req *message.Request, method *MethodInfo) (bool, *message.ErrorObject)

// ClientTransform rewrites an outbound request. It may mutate the envelope
// in place or return a replacement; the returned value is what the next
// stage, and eventually the wire, sees.
type ClientTransform func(req *message.Request) *message.Request
