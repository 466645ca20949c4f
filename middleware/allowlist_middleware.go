package middleware

import (
	mapset "github.com/deckarep/golang-set"

	"mini-jsonrpc/message"
)

// MethodAllowlist returns a gate that rejects any request whose method is
// not in the given set. Rejections report -32601 so callers cannot probe
// which methods exist but are fenced off.
func MethodAllowlist(methods ...string) ServerGate {
	allowed := mapset.NewSet()
	for _, m := range methods {
		allowed.Add(m)
	}
	return func(req *message.Request, method *MethodInfo) (bool, *message.ErrorObject) {
		if !allowed.Contains(req.Method) {
			return false, message.NewError(message.CodeMethodNotFound, "Method not found")
		}
		return true, nil
	}
}
