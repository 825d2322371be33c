package api

import (
	"errors"
	"fmt"
)

// Client-side preconditions, checked before any network I/O.
// Callers should use errors.Is to match these values.
var (
	ErrNoToken   = errors.New("no token available")
	ErrNoProfile = errors.New("no profile available")
)

// APIError is a failure the server reported. Message is passed through
// verbatim; there is no code-to-message mapping layer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError is a transport-level failure with no interpretable response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
