package bsky

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bluesky-social/indigo/xrpc"
)

// Error names returned by the PDS and the chat service.
const (
	ErrCodeRateLimitExceeded      = "RateLimitExceeded"
	ErrCodeAuthenticationRequired = "AuthenticationRequired"
	ErrCodeExpiredToken           = "ExpiredToken"
	ErrCodeInvalidToken           = "InvalidToken"
	ErrCodeInvalidRequest         = "InvalidRequest"
	ErrCodeAccountTakedown        = "AccountTakedown"
)

// IsXRPCError checks whether err carries a server error body with the given
// error name.
func IsXRPCError(err error, code string) bool {
	var body *xrpc.XRPCError
	if errors.As(err, &body) {
		return body.ErrStr == code
	}
	return false
}

// StatusCode returns the HTTP status of a server failure, or 0 when err did
// not come from a server response.
func StatusCode(err error) int {
	var xrpcErr *xrpc.Error
	if errors.As(err, &xrpcErr) {
		return xrpcErr.StatusCode
	}
	return 0
}

// IsRateLimited reports whether the server said "too many requests": a 429
// status, or an error body whose name or message says so. Transport failures
// and errors raised on this side of the wire never count, whatever their text.
func IsRateLimited(err error) bool {
	var xrpcErr *xrpc.Error
	if errors.As(err, &xrpcErr) && xrpcErr.IsThrottled() {
		return true
	}
	var body *xrpc.XRPCError
	if !errors.As(err, &body) {
		return false
	}
	if body.ErrStr == ErrCodeRateLimitExceeded {
		return true
	}
	message := strings.ToLower(body.Message)
	return strings.Contains(message, "rate limit") || strings.Contains(message, "too many requests")
}

// isAuthFailure reports whether err rejects the presented credentials.
func isAuthFailure(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized || IsXRPCError(err, ErrCodeAuthenticationRequired)
}
