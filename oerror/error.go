package oerror

import "fmt"

// GripError is the error type returned by grip when configuration, registry or simulation state
// is rejected.
type GripError struct {
	Err string
}

// New returns a new *GripError with a message formatted from the format and args passed.
func New(format string, args ...any) error {
	if len(args) == 0 {
		return &GripError{Err: format}
	}
	return &GripError{Err: fmt.Sprintf(format, args...)}
}

func (e *GripError) Error() string {
	return e.Err
}
