// =============================================================================
// E911 CSV Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the entire
// pipeline for a single input file.
//
// CONVERSION PIPELINE:
//   1. Resolve the source and destination schemas (config or XLSX template)
//   2. Build the column index map (fails fast on unknown columns)
//   3. Open the input file and discard the header records
//   4. For each remaining record, in order:
//      a. Project it through the column index map
//      b. Apply the post-processor
//      c. Encode it to the output
//   5. Commit the output file
//
// OUTPUT POLICY:
//   Output is written to a temporary file beside the destination and renamed
//   into place only after the last record is written. A failed run leaves any
//   existing output file untouched.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/e911-csv-converter/internal/config"
	"github.com/ginjaninja78/e911-csv-converter/internal/csvparser"
	"github.com/ginjaninja78/e911-csv-converter/internal/csvwriter"
	"github.com/ginjaninja78/e911-csv-converter/internal/dispatch"
	"github.com/ginjaninja78/e911-csv-converter/internal/schema"
	"github.com/ginjaninja78/e911-csv-converter/internal/types"
	"github.com/ginjaninja78/e911-csv-converter/internal/xlsxparser"
	"github.com/ginjaninja78/e911-csv-converter/pkg/utils"
	"github.com/google/uuid"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// RunID identifies this run in log output.
	RunID string

	// InputFile is the path to the input file that was processed.
	InputFile string

	// OutputFile is the path to the converted file.
	// This is empty if the conversion failed.
	OutputFile string

	// Success indicates whether the output file was committed.
	Success bool

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	// RecordsRead counts every decoded record, headers included.
	RecordsRead int

	// HeadersSkipped is the number of leading records discarded.
	HeadersSkipped int

	// RecordsWritten is the number of output records.
	RecordsWritten int

	// ProcessingTime is the time taken to convert the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single input file.
type Converter struct {
	inputPath string
	cfg       *config.Config
	post      PostProcessor
	logger    Logger
}

// New creates a new Converter.
//
// PARAMETERS:
//   - inputPath: The path to the input CSV file.
//   - cfg: The converter configuration.
//   - post: The post-processor; nil selects one from cfg.Profile.
//
// A Converter is good for a single Run: stateful post-processors such as
// the e911 normalizer number records from 1 exactly once.
func New(inputPath string, cfg *config.Config, post PostProcessor) *Converter {
	if post == nil {
		post = NewPostProcessor(cfg.Profile)
	}
	return &Converter{
		inputPath: inputPath,
		cfg:       cfg,
		post:      post,
		logger:    NewLogger(os.Stderr, cfg.LogLevel),
	}
}

// SetLogger replaces the converter's logger.
func (c *Converter) SetLogger(l Logger) {
	c.logger = l
}

// NewPostProcessor returns a fresh post-processor for a profile name.
// Unknown profiles fall back to Identity; config.Validate rejects them
// earlier.
func NewPostProcessor(profile string) PostProcessor {
	switch profile {
	case config.ProfileE911:
		return dispatch.NewNormalizer()
	default:
		return Identity
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - A Result describing the run. It is non-nil even on failure, with
//     the statistics gathered up to the failing record.
//   - The first error encountered. Per-record failures are wrapped in a
//     *types.RowError carrying the input record number.
func (c *Converter) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	result := &Result{
		RunID:     uuid.New().String(),
		InputFile: c.inputPath,
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	c.logger.Info("run %s: converting %s", result.RunID, c.inputPath)

	// =========================================================================
	// STEP 1: BUILD THE COLUMN INDEX MAP
	// =========================================================================

	src, dst, err := ResolveSchemas(c.cfg)
	if err != nil {
		return result, err
	}

	mapping, err := schema.BuildMapping(src, dst)
	if err != nil {
		return result, fmt.Errorf("failed to build column mapping: %w", err)
	}

	if wa, ok := c.post.(WidthAware); ok && wa.InputWidth() != len(mapping) {
		return result, fmt.Errorf("destination schema has %d columns, post-processor expects %d", len(mapping), wa.InputWidth())
	}

	c.logger.Debug("source schema: %d columns, destination schema: %d columns", len(src), len(dst))

	transformer := NewTransformer(mapping, c.post)
	c.logger.Debug("records need at least %d fields", transformer.Mapping().Width())

	comma, err := c.cfg.CSVSettings.Comma()
	if err != nil {
		return result, err
	}

	// =========================================================================
	// STEP 2: OPEN INPUT AND OUTPUT
	// =========================================================================

	reader, err := csvparser.Open(c.inputPath, c.cfg.CSVSettings)
	if err != nil {
		return result, fmt.Errorf("failed to open input: %w", err)
	}
	defer reader.Close()

	if utils.FileExists(c.cfg.OutputFile) {
		c.logger.Info("output %s exists and will be replaced on success", c.cfg.OutputFile)
	}

	out, err := utils.CreateAtomic(c.cfg.OutputFile)
	if err != nil {
		return result, fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Abort()

	writer := csvwriter.New(out, comma)

	// =========================================================================
	// STEP 3: SKIP HEADER RECORDS
	// =========================================================================
	// The header records are discarded without inspection.

	headerRows := c.cfg.CSVSettings.HeaderRows
	result.Stats.HeadersSkipped = reader.Skip(headerRows)
	result.Stats.RecordsRead = result.Stats.HeadersSkipped
	if err := reader.Err(); err != nil {
		return result, err
	}
	if result.Stats.HeadersSkipped < headerRows {
		c.logger.Warn("input ended after %d of %d header records", result.Stats.HeadersSkipped, headerRows)
	}

	// =========================================================================
	// STEP 4: TRANSFORM AND ENCODE
	// =========================================================================

	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Stats.RecordsRead++

		rec, err := transformer.Transform(reader.Record())
		if err != nil {
			return result, &types.RowError{Row: reader.RecordNumber(), Err: err}
		}

		if err := writer.Write(rec); err != nil {
			return result, &types.IOError{Op: "write", Path: out.TempPath(), Err: err}
		}
		result.Stats.RecordsWritten++
	}
	if err := reader.Err(); err != nil {
		return result, err
	}

	// =========================================================================
	// STEP 5: COMMIT OUTPUT
	// =========================================================================

	if err := writer.Flush(); err != nil {
		return result, &types.IOError{Op: "write", Path: out.TempPath(), Err: err}
	}
	if err := out.Commit(); err != nil {
		return result, err
	}

	result.OutputFile = out.Path()
	result.Success = true
	c.logger.Info("run %s: wrote %d records to %s", result.RunID, result.Stats.RecordsWritten, result.OutputFile)

	return result, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ResolveSchemas returns the schema pair a configuration describes. An XLSX
// schema template, when configured, takes precedence over the inline
// schema strings.
func ResolveSchemas(cfg *config.Config) (schema.Schema, schema.Schema, error) {
	if cfg.SchemaTemplate == "" {
		return schema.Parse(cfg.SourceSchema), schema.Parse(cfg.DestinationSchema), nil
	}

	tmpl, err := xlsxparser.Parse(cfg.SchemaTemplate, cfg.SchemaTemplateSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load schema template: %w", err)
	}
	return tmpl.Source, tmpl.Destination, nil
}

// =============================================================================
// LOGGING
// =============================================================================

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Log levels, lowest first.
const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// NewLogger returns a Logger writing "[LEVEL] message" lines to w. Messages
// below level ("debug", "info", "warn", "error") are dropped.
func NewLogger(w io.Writer, level string) Logger {
	return &defaultLogger{w: w, min: parseLevel(level)}
}

// NopLogger discards everything.
var NopLogger Logger = &defaultLogger{w: io.Discard, min: levelError + 1}

func parseLevel(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// defaultLogger is a simple leveled logger.
type defaultLogger struct {
	w   io.Writer
	min int
}

func (l *defaultLogger) log(level int, tag, msg string, args []interface{}) {
	if level < l.min {
		return
	}
	fmt.Fprintf(l.w, "["+tag+"] "+msg+"\n", args...)
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	l.log(levelDebug, "DEBUG", msg, args)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	l.log(levelInfo, "INFO", msg, args)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	l.log(levelWarn, "WARN", msg, args)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	l.log(levelError, "ERROR", msg, args)
}
