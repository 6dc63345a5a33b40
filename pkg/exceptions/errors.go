package exceptions

import "errors"

var (
	// ErrUnknown stands in for a nil cause passed to NewCritical.
	ErrUnknown = errors.New("unknown error")

	// ErrInvalidArgument is the cause of every InvalidArgumentException.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidation is matched by every ValidationError through errors.Is.
	ErrValidation = errors.New("validation failed")
)
