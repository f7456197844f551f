package microgrid

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// APIError is a failed call to the microgrid API. Code carries the gRPC
// status code when the failure came from the server or transport, and
// codes.Unknown otherwise.
type APIError struct {
	// Op is the API operation that failed, e.g. "ListComponents".
	Op string

	// Server is the endpoint the client was talking to.
	Server string

	// Code classifies the failure.
	Code codes.Code

	// Err is the underlying error.
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("microgrid: %s failed calling %s: %s: %v", e.Op, e.Server, e.Code, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// wrapRPCError classifies err as an *APIError. Context errors keep their
// conventional codes so deadline and cancellation remain distinguishable.
func wrapRPCError(op, server string, err error) error {
	if err == nil {
		return nil
	}
	code := codes.Unknown
	if s, ok := status.FromError(err); ok {
		code = s.Code()
	} else if errors.Is(err, context.DeadlineExceeded) {
		code = codes.DeadlineExceeded
	} else if errors.Is(err, context.Canceled) {
		code = codes.Canceled
	}
	return &APIError{Op: op, Server: server, Code: code, Err: err}
}

func codeOf(err error) (codes.Code, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return codes.OK, false
}

// IsNotFound reports whether err is an API error for a missing entity.
func IsNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == codes.NotFound
}

// IsPermissionDenied reports whether err is an API permission failure.
func IsPermissionDenied(err error) bool {
	code, ok := codeOf(err)
	return ok && (code == codes.PermissionDenied || code == codes.Unauthenticated)
}

// IsInvalidArgument reports whether err is an API rejection of the request
// contents. Such calls must not be retried unmodified.
func IsInvalidArgument(err error) bool {
	code, ok := codeOf(err)
	return ok && (code == codes.InvalidArgument || code == codes.OutOfRange)
}

// IsRetryable reports whether err is an API failure that a later identical
// call may survive: the service was unavailable, overloaded, or the call
// timed out or was aborted mid-flight.
func IsRetryable(err error) bool {
	code, ok := codeOf(err)
	if !ok {
		return false
	}
	switch code {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Aborted:
		return true
	default:
		return false
	}
}
