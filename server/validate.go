package server

import (
	"mini-jsonrpc/message"
)

// validate applies the structural envelope rules, short-circuiting on the
// first failure:
//
//  1. protocol tag must be "2.0"        → Invalid Request
//  2. method name must be present       → Invalid Request
//  3. method must resolve to an entry   → Method not found
func (svr *Server) validate(req *message.Request) *message.ErrorObject {
	if req.JSONRPC != message.Version {
		return message.NewError(message.CodeInvalidRequest, "Invalid Request")
	}
	if req.Method == "" {
		return message.NewError(message.CodeInvalidRequest, "Invalid Request")
	}
	if _, ok := svr.methods[req.Method]; !ok {
		return message.NewError(message.CodeMethodNotFound, "Method not found")
	}
	return nil
}
