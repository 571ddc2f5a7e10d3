// =============================================================================
// E911 CSV Converter - CSV Writer Module
// =============================================================================
//
// This module encodes output records. The format is fixed:
//   - Fields separated by the configured delimiter (comma by default)
//   - Minimal quoting: a field is quoted only if it contains the delimiter,
//     a double quote, a carriage return or a line feed
//   - Embedded double quotes are doubled
//   - Every record ends with a single "\n", regardless of platform
//   - No header row
//
// EXAMPLE:
//   Record{"1", "Acme, Inc", `The "Shop"`, ""}
//   =>
//   1,"Acme, Inc","The ""Shop""",
//
// =============================================================================

package csvwriter

import (
	"bufio"
	"io"
	"strings"

	"github.com/ginjaninja78/e911-csv-converter/internal/types"
)

// =============================================================================
// WRITER
// =============================================================================

// Writer encodes records to an underlying io.Writer. Output is buffered;
// call Flush when done.
type Writer struct {
	w     *bufio.Writer
	comma rune
	count int
}

// New returns a Writer using comma as the field delimiter.
func New(w io.Writer, comma rune) *Writer {
	return &Writer{
		w:     bufio.NewWriter(w),
		comma: comma,
	}
}

// Write encodes one record followed by "\n".
func (w *Writer) Write(rec types.Record) error {
	for i, field := range rec {
		if i > 0 {
			if _, err := w.w.WriteRune(w.comma); err != nil {
				return err
			}
		}
		if err := w.writeField(field, len(rec) == 1); err != nil {
			return err
		}
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.count++
	return nil
}

// writeField writes one field, quoting it when needed. A record made of a
// single empty field is written as "" so that it does not read back as a
// blank line.
func (w *Writer) writeField(field string, only bool) error {
	if !w.needsQuotes(field) && !(only && field == "") {
		_, err := w.w.WriteString(field)
		return err
	}

	if err := w.w.WriteByte('"'); err != nil {
		return err
	}
	if _, err := w.w.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
		return err
	}
	return w.w.WriteByte('"')
}

// needsQuotes reports whether field must be quoted under the minimal policy.
func (w *Writer) needsQuotes(field string) bool {
	return strings.ContainsRune(field, w.comma) || strings.ContainsAny(field, "\"\r\n")
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// =============================================================================
// CONVENIENCE
// =============================================================================

// Encode writes all records to w and flushes.
func Encode(w io.Writer, comma rune, records []types.Record) error {
	cw := New(w, comma)
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Flush()
}
