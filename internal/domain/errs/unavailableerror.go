package errs

import (
	"errors"
	"fmt"
)

// UnavailableError marks a storage call that failed because the backend could
// not be reached in time (network failure, server selection or deadline).
type UnavailableError struct {
	message string
	cause   error
}

func (v *UnavailableError) Error() string {
	return v.message
}

func (v *UnavailableError) Unwrap() error {
	return v.cause
}

func UnavailableErrorf(format string, args ...any) *UnavailableError {
	err := fmt.Errorf(format, args...)
	return &UnavailableError{
		message: err.Error(),
		cause:   errors.Unwrap(err),
	}
}

var _ error = &UnavailableError{}
