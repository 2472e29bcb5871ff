package codec

import (
	"errors"
	"fmt"
)

// Parse error kinds. Every error returned while reading the format wraps one
// of these, so callers can branch with errors.Is.
var (
	ErrFormat         = errors.New("format error")
	ErrTruncated      = errors.New("truncated data")
	ErrDuplicateField = errors.New("duplicate field")
)

// ParseError describes a fatal problem found while reading a file.
type ParseError struct {
	Kind   error // One of ErrFormat, ErrTruncated, ErrDuplicateField
	Offset int   // Absolute byte offset where the problem was detected
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

// Unwrap exposes the kind to errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Errorf builds a ParseError of the given kind.
func Errorf(kind error, offset int, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:   kind,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}
