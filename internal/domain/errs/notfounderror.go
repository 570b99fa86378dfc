package errs

import "fmt"

// NotFoundError reports a task id that does not name a persisted task,
// including ids that are not valid identifiers at all.
type NotFoundError struct {
	message string
}

func (v *NotFoundError) Error() string {
	return v.message
}

func NotFoundErrorf(format string, args ...any) *NotFoundError {
	return &NotFoundError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &NotFoundError{}
