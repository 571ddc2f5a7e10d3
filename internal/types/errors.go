// =============================================================================
// E911 CSV Converter - Error Kinds
// =============================================================================
//
// Every failure the conversion can produce is one of the kinds below. They are
// returned as pointers and wrapped with fmt.Errorf("...: %w", err) on the way
// up, so callers match them with errors.As:
//
//   var unknown *types.UnknownCodeError
//   if errors.As(err, &unknown) { ... }
//
// All of them are fatal to a run. There are no retries.
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// SchemaMappingError reports destination columns with no match in the
// source schema. It is raised when the column index map is built, before any
// record is read.
type SchemaMappingError struct {
	// Column is the first destination column that could not be resolved.
	Column string

	// Missing lists every unresolved destination column, in destination order.
	Missing []string
}

func (e *SchemaMappingError) Error() string {
	if len(e.Missing) > 1 {
		return fmt.Sprintf("destination columns not found in source schema: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("destination column %q not found in source schema", e.Column)
}

// RecordShapeError reports a record with fewer (or, for fixed-width stages,
// a different number of) fields than required.
type RecordShapeError struct {
	Want int
	Got  int
}

func (e *RecordShapeError) Error() string {
	return fmt.Sprintf("record has %d fields, need %d", e.Got, e.Want)
}

// UnknownCodeError reports a code absent from its code table.
type UnknownCodeError struct {
	// Field is the logical field being decoded ("Class" or "Type").
	Field string

	// Code is the offending raw value.
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Field, e.Code)
}

// IOError reports a failure of the underlying file system or codec.
type IOError struct {
	// Op is the operation that failed: "open", "read", "write", "close", "rename".
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// RowError attaches the 1-based input record number to a per-record failure.
// The header records count towards the number, so Row matches the position
// of the record in the input file.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
