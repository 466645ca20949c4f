package middleware

import (
	"golang.org/x/time/rate"

	"mini-jsonrpc/message"
)

// RateLimit returns a token-bucket gate shared by every request on the
// instance. Rejected requests get a -32000 error response and never reach
// validation or the handler.
func RateLimit(r float64, burst int) ServerGate {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(req *message.Request, method *MethodInfo) (bool, *message.ErrorObject) {
		if !limiter.Allow() {
			return false, message.NewError(message.CodeServerError, "rate limit exceeded")
		}
		return true, nil
	}
}
