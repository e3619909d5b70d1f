package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway call failures
type ErrorKind string

const (
	ErrInvalidModel     ErrorKind = "invalid_model"
	ErrMalformedRequest ErrorKind = "malformed_request"
	ErrTimeout          ErrorKind = "timeout"
	ErrTransport        ErrorKind = "transport"
	ErrUnknown          ErrorKind = "unknown"
)

// CallError is returned by the gateway client when a call does not succeed.
// It is non-fatal at the experiment level: the runner records it and moves on.
type CallError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *CallError) Error() string {
	if e.Message == "" && e.Cause != nil {
		return fmt.Sprintf("gateway call failed (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("gateway call failed (%s): %s", e.Kind, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// KindOf extracts the ErrorKind from an error chain, defaulting to ErrUnknown
func KindOf(err error) ErrorKind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ErrUnknown
}
