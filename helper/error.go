package helper

import "fmt"

// Error wraps an error with a short trace of the operation that failed.
// The original error stays reachable through errors.Is and errors.As.
type Error struct {
	Trace    string
	Original error
}

// NewError wraps original with the given trace
func NewError(trace string, original error) error {
	return &Error{
		Trace:    trace,
		Original: original,
	}
}

func (e *Error) Error() string {
	if e.Original == nil {
		return e.Trace
	}
	return fmt.Sprintf("%s: %v", e.Trace, e.Original)
}

func (e *Error) Unwrap() error {
	return e.Original
}
