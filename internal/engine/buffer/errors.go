package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfRange is returned when a line, column or length violates a bound.
	ErrOutOfRange = errors.New("position out of range")

	// ErrInvalidOperation is returned for structurally disallowed edits,
	// such as inserting into an empty buffer anywhere but 1:1.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrIO is matched by every load/save failure.
	ErrIO = errors.New("i/o error")

	// ErrNoPath is returned by Save when neither the call nor the buffer
	// names a file.
	ErrNoPath = errors.New("no file path")
)

// PositionError describes a rejected edit and the coordinates it used.
type PositionError struct {
	Op     string // "insert", "delete", "replace", "line", "truncate"
	Line   int
	Col    int
	Length int
	Err    error

	// alsoOutOfRange lets errors.Is match ErrOutOfRange for failures that
	// are primarily invalid operations.
	alsoOutOfRange bool
}

func (e *PositionError) Error() string {
	switch e.Op {
	case "delete", "replace":
		return fmt.Sprintf("%s %d:%d %d: %v", e.Op, e.Line, e.Col, e.Length, e.Err)
	case "line", "truncate":
		return fmt.Sprintf("%s %d: %v", e.Op, e.Line, e.Err)
	default:
		return fmt.Sprintf("%s %d:%d: %v", e.Op, e.Line, e.Col, e.Err)
	}
}

// Unwrap returns the underlying sentinel.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches the error kind.
func (e *PositionError) Is(target error) bool {
	return e.alsoOutOfRange && target == ErrOutOfRange
}

// IOError wraps a file system failure during Load or Save.
type IOError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the file system error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match IOError with ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func outOfRange(op string, line, col, length int) error {
	return &PositionError{Op: op, Line: line, Col: col, Length: length, Err: ErrOutOfRange}
}

func invalidOperation(op string, line, col, length int) error {
	return &PositionError{Op: op, Line: line, Col: col, Length: length, Err: ErrInvalidOperation}
}
