package middleware

import (
	"strings"

	"mini-jsonrpc/message"
)

// MethodPrefix returns a client transform that namespaces every outbound
// method name, e.g. MethodPrefix("eth") turns "getBalance" into
// "eth_getBalance". Methods already carrying the prefix pass unchanged.
func MethodPrefix(ns string) ClientTransform {
	prefix := ns + "_"
	return func(req *message.Request) *message.Request {
		if !strings.HasPrefix(req.Method, prefix) {
			req.Method = prefix + req.Method
		}
		return req
	}
}
