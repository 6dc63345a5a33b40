package exceptions

import (
	"errors"
	"fmt"
)

// Exception is the base of the taxonomy. Use the severity-specific
// constructors instead of building it directly.
type Exception struct {
	Message  string
	Details  any
	critical bool
	cause    error
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.cause
}

// IsCritical reports whether the exception must not be recovered from.
func (e *Exception) IsCritical() bool {
	return e.critical
}

// CriticalException signals an unrecoverable failure.
type CriticalException struct {
	Exception
}

// NewCritical wraps cause into a CriticalException whose message is the
// cause's message.
func NewCritical(cause error) *CriticalException {
	if cause == nil {
		cause = ErrUnknown
	}
	return &CriticalException{Exception{Message: cause.Error(), critical: true, cause: cause}}
}

// Criticalf builds a CriticalException from a format string. A %w verb keeps
// the wrapped error reachable through errors.Is.
func Criticalf(format string, args ...any) *CriticalException {
	err := fmt.Errorf(format, args...)
	ex := &CriticalException{Exception{Message: err.Error(), critical: true}}
	ex.cause = errors.Unwrap(err)
	return ex
}

// MinorException signals a failure the caller can handle.
type MinorException struct {
	Exception
}

func NewMinor(message string, details any) *MinorException {
	return &MinorException{Exception{Message: message, Details: details}}
}

// InvalidArgumentException is raised by guards when an argument violates
// its contract.
type InvalidArgumentException struct {
	CriticalException
	ArgName string
}

func NewInvalidArgument(argName, message string) *InvalidArgumentException {
	if message == "" {
		message = "is invalid"
	}
	return &InvalidArgumentException{
		CriticalException: CriticalException{Exception{
			Message:  fmt.Sprintf("argument %q %s", argName, message),
			critical: true,
			cause:    ErrInvalidArgument,
		}},
		ArgName: argName,
	}
}

// IsCritical reports whether err is, or wraps, a critical exception.
func IsCritical(err error) bool {
	var ex interface{ IsCritical() bool }
	if errors.As(err, &ex) {
		return ex.IsCritical()
	}
	return false
}
