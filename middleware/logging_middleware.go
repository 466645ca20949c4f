package middleware

import (
	"log"

	"mini-jsonrpc/message"
)

// Logging returns a gate that logs every inbound request and always lets
// dispatch continue.
func Logging() ServerGate {
	return func(req *message.Request, method *MethodInfo) (bool, *message.ErrorObject) {
		if method != nil {
			log.Printf("Method: %s, ID: %v", req.Method, req.ID)
		} else {
			log.Printf("Method: %s (unregistered), ID: %v", req.Method, req.ID)
		}
		return true, nil
	}
}

// LogCalls returns a client transform that logs every outbound envelope
// without changing it.
func LogCalls() ClientTransform {
	return func(req *message.Request) *message.Request {
		if req.IsNotification() {
			log.Printf("Notify: %s", req.Method)
		} else {
			log.Printf("Call: %s, ID: %v", req.Method, req.ID)
		}
		return req
	}
}
