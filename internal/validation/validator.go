// =============================================================================
// E911 CSV Converter - Configuration Validation
// =============================================================================
//
// This module checks a configuration before any input is read. It backs the
// 'validate' command and reports every problem it finds rather than only the
// first, so a broken schema can be fixed in one pass.
//
// CHECKS:
//   - Both schemas are non-empty
//   - Duplicate column names (warning: only the first occurrence is used)
//   - Every destination column resolves against the source schema
//   - The destination width matches what the post-processor expects
//   - header_rows is not negative; zero is a warning
//   - The encoding and delimiter are usable
//
// ERROR HANDLING:
//   - Findings are collected, not returned on the first failure
//   - Severity "error" makes a run impossible, "warning" does not
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ginjaninja78/e911-csv-converter/internal/config"
	"github.com/ginjaninja78/e911-csv-converter/internal/csvparser"
	"github.com/ginjaninja78/e911-csv-converter/internal/schema"
	"github.com/ginjaninja78/e911-csv-converter/internal/types"
)

// Severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field is the configuration key the finding is about.
	Field string

	// Message is a human-readable description.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(e.Severity), e.Field, e.Message)
}

// Result is the outcome of validating one configuration.
type Result struct {
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int
}

// IsValid reports whether no error-severity finding was recorded.
func (r *Result) IsValid() bool {
	return r.ErrorCount == 0
}

func (r *Result) add(severity, field, format string, args ...interface{}) {
	r.Errors = append(r.Errors, &ValidationError{
		Severity: severity,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
	if severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// ValidateConfig validates cfg against a resolved schema pair.
//
// PARAMETERS:
//   - cfg: The configuration to check.
//   - src, dst: The schemas the run would use.
//   - width: The projected width the post-processor requires, or 0 if it
//     accepts any width.
func ValidateConfig(cfg *config.Config, src, dst schema.Schema, width int) *Result {
	result := &Result{}

	validateSchemas(result, src, dst, width)
	validateCSVSettings(result, cfg.CSVSettings)

	if err := cfg.Validate(); err != nil {
		result.add(SeverityError, "config", "%v", err)
	}
	return result
}

func validateSchemas(result *Result, src, dst schema.Schema, width int) {
	if len(src) == 0 {
		result.add(SeverityError, "source_schema", "schema is empty")
	}
	if len(dst) == 0 {
		result.add(SeverityError, "destination_schema", "schema is empty")
	}

	for _, name := range src.Duplicates() {
		result.add(SeverityWarning, "source_schema", "column %q appears more than once; the first occurrence is used", name)
	}
	for _, name := range dst.Duplicates() {
		result.add(SeverityWarning, "destination_schema", "column %q appears more than once", name)
	}

	if len(src) > 0 && len(dst) > 0 {
		_, err := schema.BuildMapping(src, dst)
		var mapping *types.SchemaMappingError
		if errors.As(err, &mapping) {
			for _, name := range mapping.Missing {
				result.add(SeverityError, "destination_schema", "column %q not found in source schema", name)
			}
		}
	}

	if width > 0 && len(dst) != width {
		result.add(SeverityError, "destination_schema", "has %d columns, profile expects %d", len(dst), width)
	}
}

func validateCSVSettings(result *Result, s config.CSVSettings) {
	if s.HeaderRows == 0 {
		result.add(SeverityWarning, "csv_settings.header_rows", "no header records will be skipped")
	}
	if _, err := csvparser.LookupEncoding(s.Encoding); err != nil {
		result.add(SeverityError, "csv_settings.encoding", "%v", err)
	}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors renders findings one per line, followed by a summary line.
func FormatErrors(result *Result) string {
	var b strings.Builder
	for _, e := range result.Errors {
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d error(s), %d warning(s)\n", result.ErrorCount, result.WarningCount)
	return b.String()
}
