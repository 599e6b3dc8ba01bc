package oerror

import "fmt"

// Error is the error type returned by charsim at its I/O edges.
type Error struct {
	Err   string
	cause error
}

// New creates a new error with a formatted message. If one of the arguments is an error, it is kept
// as the cause so that errors.Is and errors.As see through it.
func New(format string, args ...any) *Error {
	e := &Error{Err: fmt.Sprintf(format, args...)}
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			e.cause = err
			break
		}
	}
	return e
}

func (e *Error) Error() string {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.cause
}
