package calendar

import (
	"errors"
	"fmt"
)

// ErrUserNotConnected means the owner never granted calendar access.
var ErrUserNotConnected = errors.New("user not connected")

// ErrNoToken means the grant exists but no usable token came back.
var ErrNoToken = errors.New("no token found")

// ExternalServiceError wraps a calendar or identity-broker failure. It is
// logged by the sync worker and never propagated to booking callers.
type ExternalServiceError struct {
	Op      string
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("externalServiceError: %s: %s", e.Op, e.Message)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func newExternalError(op, msg string, err error) error {
	return &ExternalServiceError{Op: op, Message: msg, Err: err}
}
