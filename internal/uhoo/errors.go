package uhoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthRejected matches a handshake TransportError whose status says the vendor refused
// the credentials.
var ErrAuthRejected = errors.New("uhoo: credentials rejected")

// TransportError reports a network failure, a timeout or a non-2xx handshake response.
type TransportError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("uhoo %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("uhoo %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrAuthRejected) true for 401/403 responses.
func (e *TransportError) Is(target error) bool {
	if target != ErrAuthRejected {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Timeout reports whether the call was cut by its deadline.
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// ParseError reports a response whose body does not have the expected shape.
type ParseError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ParseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("uhoo %s: unexpected payload (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("uhoo %s: unexpected payload: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is, or wraps, a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
