// Package server implements the inbound half of the engine: method registry,
// middleware gates, and the dispatch pipeline.
//
// Dispatch pipeline for one raw message:
//
//	Receive → codec.Decode → gates (in order) → validate → handler → codec.Encode
//
// Every failure on that path becomes a wire error response; nothing is ever
// raised back to the embedder. The server holds no transport state — the
// embedder reads bytes off its socket/queue/HTTP body, hands them to Receive,
// and writes whatever comes back.
package server

import (
	"fmt"
	"log"

	"mini-jsonrpc/codec"
	"mini-jsonrpc/config"
	"mini-jsonrpc/message"
	"mini-jsonrpc/middleware"
)

// Handler is the application callback for one method. It receives the
// request's positional parameters and returns a result value.
//
// Returning a *message.ErrorObject reports that error verbatim to the
// caller, taking precedence over the result. Any other non-nil error, and
// any panic inside the handler, is converted to an internal error (-32603)
// with the fault text as auxiliary data.
type Handler func(params []any) (any, error)

// Method is one registry entry. Meta is opaque to the engine: gates can read
// it, the wire never sees it.
type Method struct {
	Name    string
	Handler Handler
	Meta    map[string]any
}

// Server dispatches decoded requests to registered handlers.
//
// Register and Use are meant to run before the instance sees traffic; during
// dispatch the registry and gate chain are only read, so concurrent Receive
// calls need no locking.
type Server struct {
	methods map[string]*Method
	gates   []middleware.ServerGate
	cdc     codec.Codec
	opts    config.Options

	// ErrorLog is invoked for handler faults and undecodable input when
	// the LogErrors option is set. Defaults to log.Printf.
	ErrorLog func(format string, args ...any)
}

// NewServer creates a server with default options (JSON codec, error
// logging on).
func NewServer() *Server {
	return NewServerWithOptions(config.Default())
}

// NewServerWithOptions creates a server using the given option set.
func NewServerWithOptions(opts config.Options) *Server {
	return &Server{
		methods:  make(map[string]*Method),
		cdc:      codec.GetCodec(opts.Codec),
		opts:     opts,
		ErrorLog: log.Printf,
	}
}

// Register stores the handler for a method name, overwriting any previous
// entry (last write wins). A nil handler is a contract violation and is
// rejected before it can ever be dispatched to.
func (svr *Server) Register(name string, handler Handler, meta map[string]any) error {
	if handler == nil {
		return fmt.Errorf("rpc: handler for method %q must not be nil", name)
	}
	svr.methods[name] = &Method{Name: name, Handler: handler, Meta: meta}
	return nil
}

// RegisterMany registers every entry of the mapping via Register.
func (svr *Server) RegisterMany(handlers map[string]Handler) error {
	for name, handler := range handlers {
		if err := svr.Register(name, handler, nil); err != nil {
			return err
		}
	}
	return nil
}

// Use appends a gate to the middleware chain. Gates run in registration
// order, before validation and dispatch.
func (svr *Server) Use(gate middleware.ServerGate) error {
	if gate == nil {
		return fmt.Errorf("rpc: middleware must not be nil")
	}
	svr.gates = append(svr.gates, gate)
	return nil
}

// Receive runs one raw message through the dispatch pipeline and returns the
// encoded response. It returns nil for notifications (requests without an
// identifier), which by contract never produce a response.
func (svr *Server) Receive(raw []byte) []byte {
	var req message.Request
	if err := svr.cdc.Decode(raw, &req); err != nil {
		svr.logf("Failed to decode request: %v", err)
		errObj := message.NewError(message.CodeParseError, "Parse error")
		errObj.Data = err.Error()
		return svr.respond(message.ErrorResponse(nil, errObj))
	}

	reply := svr.dispatch(&req)
	if req.IsNotification() {
		return nil
	}
	return svr.respond(reply)
}

// ReceiveBatch processes each message independently through Receive,
// preserving order. A failure in one message never affects another; entries
// for notifications are nil.
func (svr *Server) ReceiveBatch(raws [][]byte) [][]byte {
	responses := make([][]byte, len(raws))
	for i, raw := range raws {
		responses[i] = svr.Receive(raw)
	}
	return responses
}

// dispatch runs gates, validation, and the handler for one decoded request.
func (svr *Server) dispatch(req *message.Request) *message.Response {
	// Gates see the matched entry even before validation, or nil when the
	// method is unknown.
	var info *middleware.MethodInfo
	entry := svr.methods[req.Method]
	if entry != nil {
		info = &middleware.MethodInfo{Name: entry.Name, Meta: entry.Meta}
	}

	for _, gate := range svr.gates {
		ok, errObj := gate(req, info)
		if ok {
			continue
		}
		if errObj == nil {
			errObj = message.NewError(message.CodeInternalError, "Internal error")
			errObj.Data = "invalid middleware response"
		}
		return message.ErrorResponse(req.ID, errObj)
	}

	if errObj := svr.validate(req); errObj != nil {
		return message.ErrorResponse(req.ID, errObj)
	}

	params := req.Params
	if params == nil {
		params = []any{}
	}

	result, err := svr.invoke(entry, params)
	if err != nil {
		if appErr, ok := err.(*message.ErrorObject); ok {
			// Application-level error: reported verbatim, omitted fields
			// fall back to -32000/"Application error".
			e := &message.ErrorObject{Code: appErr.Code, Message: appErr.Message, Data: appErr.Data}
			if e.Code == 0 {
				e.Code = message.CodeServerError
			}
			if e.Message == "" {
				e.Message = "Application error"
			}
			return message.ErrorResponse(req.ID, e)
		}
		svr.logf("Handler %s failed: %v", req.Method, err)
		errObj := message.NewError(message.CodeInternalError, "Internal error")
		errObj.Data = err.Error()
		return message.ErrorResponse(req.ID, errObj)
	}

	return message.ResultResponse(req.ID, result)
}

// invoke calls the handler, converting a panic into an error so no fault
// ever escapes the dispatch boundary.
func (svr *Server) invoke(entry *Method, params []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return entry.Handler(params)
}

func (svr *Server) respond(resp *message.Response) []byte {
	data, err := svr.cdc.Encode(resp)
	if err != nil {
		svr.logf("Failed to encode response: %v", err)
		return nil
	}
	return data
}

func (svr *Server) logf(format string, args ...any) {
	if svr.opts.LogErrors && svr.ErrorLog != nil {
		svr.ErrorLog(format, args...)
	}
}
