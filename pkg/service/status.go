package service

import (
	"errors"
	"fmt"
)

// Code is the service's status taxonomy, surfaced to the transport layer
// alongside a human-readable message.
type Code int

const (
	// OK means the operation completed.
	OK Code = iota
	// InvalidArgument means the request was malformed: empty id,
	// unparseable amount, or a non-positive transfer amount.
	InvalidArgument
	// NotFound means a referenced account id does not exist.
	NotFound
	// InsufficientFunds means a debit would drive a balance negative.
	InsufficientFunds
	// Internal means an unexpected invariant violation; a programming-error
	// signal, not user-recoverable.
	Internal
)

// String returns the metrics/log label for the code.
func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case InsufficientFunds:
		return "insufficient_funds"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a status code plus the message shown to the caller.
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds a service error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the status code from an error, treating anything that is
// not a *service.Error as Internal. A nil error is OK.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return Internal
}
