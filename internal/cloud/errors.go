package cloud

import (
	"errors"
	"fmt"
)

// ErrWaitTimeout is returned when a state transition was not confirmed in time
var ErrWaitTimeout = errors.New("timed out waiting for state transition")

// ClientError is an error reported by the provider about a single resource,
// such as a transition requested from an incompatible state or a missing
// permission on that resource.
type ClientError struct {
	Code       string
	Message    string
	ResourceID string
	Cause      error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying provider error
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// IsClientError reports whether err is, or wraps, a ClientError
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}

// IsWaitTimeout reports whether err is, or wraps, ErrWaitTimeout
func IsWaitTimeout(err error) bool {
	return errors.Is(err, ErrWaitTimeout)
}
