package backend

import (
	"errors"
	"fmt"
)

// ErrNotInClan is the distinguished 404 outcome of the clan-membership
// lookup. It is a valid state, not a failure.
var ErrNotInClan = errors.New("backend: user is not a member of any clan")

// TransportError wraps network/connectivity failures from the HTTP layer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError carries a non-2xx status and, when the server provided one,
// its message field verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: server returned %d", e.StatusCode)
}

// DecodeError means the response body did not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("backend: failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
