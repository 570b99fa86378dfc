package errs

import (
	"errors"
	"fmt"
)

// InternalError wraps an unexpected storage or encoding failure. The message is
// meant for logs; HTTP responses never echo it.
type InternalError struct {
	message string
	cause   error
}

func (v *InternalError) Error() string {
	return v.message
}

func (v *InternalError) Unwrap() error {
	return v.cause
}

// InternalErrorf accepts %w so the cause stays reachable through errors.Is/As.
func InternalErrorf(format string, args ...any) *InternalError {
	err := fmt.Errorf(format, args...)
	return &InternalError{
		message: err.Error(),
		cause:   errors.Unwrap(err),
	}
}

var _ error = &InternalError{}
