package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// Error carries a message, an optional wrapped cause and the stack captured
// at construction time.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	Stack   string `json:"stack,omitempty"`
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error.
func New(message string) *Error {
	return &Error{Message: message, Stack: captureStack()}
}

// Errorf creates a new formatted error.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Stack: captureStack()}
}

// WithCode creates a new error with a code.
func WithCode(code int, message string) *Error {
	return &Error{Code: code, Message: message, Stack: captureStack()}
}

// Wrap wraps an error with a message. Returns nil for a nil cause.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err, Stack: captureStack()}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Message: fmt.Sprintf(format, args...), Err: err, Stack: captureStack()}
}

// GetCode returns the code of an *Error, 0 otherwise.
func GetCode(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}

// Cause returns the innermost wrapped error.
func Cause(err error) error {
	for err != nil {
		e, ok := err.(*Error)
		if !ok || e.Err == nil {
			return err
		}
		err = e.Err
	}
	return err
}

func captureStack() string {
	buf := make([]byte, 1024)
	n := runtime.Stack(buf, false)
	lines := strings.Split(string(buf[:n]), "\n")
	if len(lines) > 6 {
		lines = lines[6:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
