// =============================================================================
// E911 CSV Converter - CSV Parser Module
// =============================================================================
//
// This module decodes the input file into a sequence of records. It handles:
//   - Configurable delimiters (comma by default)
//   - Double-quote quoting with doubled quotes as the escape
//   - Non-UTF-8 input encodings (decoded with golang.org/x/text)
//   - Rows of varying width (shape is checked downstream, not here)
//
// Records are streamed one at a time. Fields are returned without trimming.
// Blank lines are dropped by encoding/csv and are not counted as records, and
// a CRLF inside a quoted field is read as a single \n. Header records are
// skipped by the caller through Skip, without inspection.
//
// USAGE:
//   r, err := csvparser.Open(path, settings)
//   if err != nil {
//       return err
//   }
//   defer r.Close()
//
//   for r.Next() {
//       rec := r.Record()
//       // Process the record...
//   }
//   if err := r.Err(); err != nil {
//       return err
//   }
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/e911-csv-converter/internal/config"
	"github.com/ginjaninja78/e911-csv-converter/internal/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// =============================================================================
// READER
// =============================================================================

// Reader streams records from a delimited text source.
type Reader struct {
	closer io.Closer
	reader *csv.Reader
	path   string

	current   types.Record
	recordNum int
	err       error
}

// Open opens a file for reading with the given settings.
//
// PARAMETERS:
//   - path: The path to the input file.
//   - settings: Delimiter and encoding settings.
//
// RETURNS:
//   - A Reader positioned before the first record.
//   - A *types.IOError if the file cannot be opened, or an error for an
//     unsupported encoding or delimiter.
func Open(path string, settings config.CSVSettings) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &types.IOError{Op: "open", Path: path, Err: err}
	}

	r, err := NewReader(file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.closer = file
	r.path = path
	return r, nil
}

// NewReader wraps an io.Reader. The caller keeps ownership of src.
func NewReader(src io.Reader, settings config.CSVSettings) (*Reader, error) {
	enc, err := LookupEncoding(settings.Encoding)
	if err != nil {
		return nil, err
	}

	comma, err := settings.Comma()
	if err != nil {
		return nil, err
	}

	var in io.Reader = bufio.NewReader(src)
	if enc != nil {
		in = transform.NewReader(in, enc.NewDecoder())
	}

	csvReader := csv.NewReader(in)
	configureReader(csvReader, comma)

	return &Reader{reader: csvReader, path: "<input>"}, nil
}

// configureReader sets the parsing rules shared by every input.
func configureReader(reader *csv.Reader, comma rune) {
	reader.Comma = comma

	// Width is validated by the projection stage, which knows the mapping.
	reader.FieldsPerRecord = -1

	// Accept stray quotes inside unquoted fields the way lenient
	// spreadsheet exports produce them.
	reader.LazyQuotes = true

	// Leading spaces are data.
	reader.TrimLeadingSpace = false
}

// Next advances to the next record. It returns false at end of input or on
// error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	row, err := r.reader.Read()
	if errors.Is(err, io.EOF) {
		return false
	}
	if err != nil {
		r.err = &types.IOError{Op: "read", Path: r.path, Err: fmt.Errorf("record %d: %w", r.recordNum+1, err)}
		return false
	}

	r.recordNum++
	r.current = types.Record(row)
	return true
}

// Skip discards up to n records and returns how many were discarded. Fewer
// than n means the input ended (or failed; see Err).
func (r *Reader) Skip(n int) int {
	skipped := 0
	for skipped < n && r.Next() {
		skipped++
	}
	return skipped
}

// Record returns the current record.
func (r *Reader) Record() types.Record {
	return r.current
}

// RecordNumber returns the 1-based number of the current record.
func (r *Reader) RecordNumber() int {
	return r.recordNum
}

// Err returns the first error encountered while reading.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file, if the Reader opened one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ReadAll decodes every remaining record.
func (r *Reader) ReadAll() ([]types.Record, error) {
	var out []types.Record
	for r.Next() {
		out = append(out, r.Record())
	}
	return out, r.Err()
}

// =============================================================================
// ENCODINGS
// =============================================================================

// LookupEncoding resolves an encoding name. A nil encoding with a nil error
// means the input is already UTF-8 and needs no decoding.
//
// SUPPORTED NAMES:
//   - "", "UTF-8", "utf8"                    : no decoding
//   - "ISO-8859-1", "latin1"                 : charmap.ISO8859_1
//   - "Windows-1252", "cp1252"               : charmap.Windows1252
//   - any other IANA-registered name known to golang.org/x/text
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}
