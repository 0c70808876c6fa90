package vecmodel

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchema signals a malformed or unrecognized field annotation.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrInvalidDefinition signals a violated definition invariant.
	ErrInvalidDefinition = errors.New("invalid definition")
	// ErrSerialization signals a container conversion failure.
	ErrSerialization = errors.New("serialization failed")
)

// SchemaError wraps ErrInvalidSchema with the offending field and token.
type SchemaError struct {
	Field  string // property name of the offending field, if known
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidSchema.Error(), e.Detail)
	}
	return fmt.Sprintf("%s: field %q: %s", ErrInvalidSchema.Error(), e.Field, e.Detail)
}

func (e *SchemaError) Unwrap() error { return ErrInvalidSchema }

// NewSchemaError creates a schema error for the given field.
func NewSchemaError(field, format string, args ...any) error {
	return &SchemaError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

// ValidationError wraps ErrInvalidDefinition with the violated invariant.
type ValidationError struct {
	Invariant string // e.g. "multiple key fields", "duplicate storage name"
	Detail    string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidDefinition.Error(), e.Invariant)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidDefinition.Error(), e.Invariant, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDefinition }

// NewValidationError creates a validation error naming the violated invariant.
func NewValidationError(invariant, format string, args ...any) error {
	return &ValidationError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

// SerializationError wraps ErrSerialization with the offending row index.
// RowIndex is -1 when the failure is not attributable to a single row.
type SerializationError struct {
	RowIndex int
	Detail   string
	Cause    error
}

func (e *SerializationError) Error() string {
	if e.RowIndex < 0 {
		return fmt.Sprintf("%s: %s", ErrSerialization.Error(), e.Detail)
	}
	return fmt.Sprintf("%s: row %d: %s", ErrSerialization.Error(), e.RowIndex, e.Detail)
}

func (e *SerializationError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrSerialization
}

// Is reports ErrSerialization regardless of the wrapped cause.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// NewSerializationError creates a serialization error for the given row.
func NewSerializationError(rowIndex int, format string, args ...any) error {
	return &SerializationError{RowIndex: rowIndex, Detail: fmt.Sprintf(format, args...)}
}
