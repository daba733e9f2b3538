package gateway

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredentials is returned when no credential document was supplied.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrSchemaMismatch is returned when a row to append does not match the worksheet header.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrUnknownColumn is returned when a named column is not in the worksheet header.
	ErrUnknownColumn = errors.New("unknown column")
)

// SchemaError describes how an appended row differs from the worksheet header row.
type SchemaError struct {
	Missing   []string
	Unknown   []string
	Duplicate []string
	Width     int
	Columns   int
}

func (e *SchemaError) Error() string {
	parts := []string{}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns %v", strings.Join(e.Missing, ", ")))
	}

	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown columns %v", strings.Join(e.Unknown, ", ")))
	}

	if len(e.Duplicate) > 0 {
		parts = append(parts, fmt.Sprintf("duplicate columns %v", strings.Join(e.Duplicate, ", ")))
	}

	if e.Width != e.Columns {
		parts = append(parts, fmt.Sprintf("%v values for %v columns", e.Width, e.Columns))
	}

	return fmt.Sprintf("%v (%v)", ErrSchemaMismatch, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}
