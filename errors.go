package noodle

import (
	"errors"
	"fmt"
	"strings"
)

// Op names a storage operation.
type Op string

// Storage operations.
const (
	OpCreate Op = "create"
	OpRead   Op = "read"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Standard sentinel errors.
var (
	// ErrInvalidRawID is returned when a textual raw identifier can not be
	// decoded by BackingStorage.ParseRawID.
	ErrInvalidRawID = errors.New("noodle: invalid raw id")
)

// OpError wraps an operational failure of a backing storage with the
// operation and entity it happened on.
type OpError struct {
	Backend string // BackingStorage.Name
	Op      Op
	Entity  string // Entity type name
	Err     error  // Underlying error
}

// Error returns the error string.
func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString("noodle: ")
	b.WriteString(string(e.Op))
	if e.Entity != "" {
		b.WriteString(" ")
		b.WriteString(e.Entity)
	}
	if e.Backend != "" {
		b.WriteString(" on ")
		b.WriteString(e.Backend)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError returns a new OpError.
func NewOpError(backend string, op Op, entity string, err error) *OpError {
	return &OpError{Backend: backend, Op: op, Entity: entity, Err: err}
}

// IsOpError returns true if the error is an OpError.
func IsOpError(err error) bool {
	if err == nil {
		return false
	}
	var e *OpError
	return errors.As(err, &e)
}

// RawIDError reports a raw identifier that could not be decoded.
type RawIDError struct {
	Input string
	Type  string // Go type of the raw identifier
	Err   error
}

// Error returns the error string.
func (e *RawIDError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("noodle: invalid %s raw id %q: %v", e.Type, e.Input, e.Err)
	}
	return fmt.Sprintf("noodle: invalid %s raw id %q", e.Type, e.Input)
}

// Unwrap returns the underlying error.
func (e *RawIDError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches ErrInvalidRawID.
func (e *RawIDError) Is(target error) bool {
	return target == ErrInvalidRawID
}

// NewRawIDError returns a new RawIDError.
func NewRawIDError(input, typ string, err error) *RawIDError {
	return &RawIDError{Input: input, Type: typ, Err: err}
}
