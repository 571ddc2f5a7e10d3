// =============================================================================
// E911 CSV Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the converter's
// configuration. The shipped defaults describe the 911 dispatch export, so
// the tool runs without any configuration file at all.
//
// CONFIGURATION FILE (config.yaml, optional):
//   source_schema:       Comma-separated source column names
//   destination_schema:  Comma-separated destination column names
//   schema_template:     Optional .xlsx file overriding both schemas
//   output_file:         Where the converted file is written
//   profile:             Post-processing profile ("e911" or "none")
//   log_level:           "debug", "info", "warn" or "error"
//   csv_settings:        Delimiter, header rows and input encoding
//
// LOADING:
//   The YAML document is decoded on top of Default(), so any key left out of
//   the file keeps its default value and an explicit zero (for example
//   header_rows: 0) is honored.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ginjaninja78/e911-csv-converter/internal/dispatch"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// PROFILES
// =============================================================================

const (
	// ProfileE911 applies the 911 record normalizer after projection.
	ProfileE911 = "e911"

	// ProfileNone writes projected records unchanged.
	ProfileNone = "none"
)

// DefaultOutputFile is the output path used when none is configured.
const DefaultOutputFile = "./converted.csv"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete converter configuration.
type Config struct {
	// SourceSchema is the comma-separated column list of the input file.
	SourceSchema string `yaml:"source_schema"`

	// DestinationSchema is the comma-separated column list records are
	// projected to before post-processing.
	DestinationSchema string `yaml:"destination_schema"`

	// SchemaTemplate is an optional XLSX workbook with "Source" and
	// "Destination" columns. When set, it replaces both schema strings.
	SchemaTemplate string `yaml:"schema_template"`

	// SchemaTemplateSheet selects the worksheet. Empty means the first sheet.
	SchemaTemplateSheet string `yaml:"schema_template_sheet"`

	// OutputFile is the path of the converted file. An existing file is
	// replaced only when a conversion succeeds.
	// Default: "./converted.csv"
	OutputFile string `yaml:"output_file"`

	// Profile names the post-processing applied after projection.
	// Valid values: "e911", "none"
	// Default: "e911"
	Profile string `yaml:"profile"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// CSVSettings contains settings for reading the input file.
	CSVSettings CSVSettings `yaml:"csv_settings"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character separating fields, in input and output.
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRows is the number of leading records discarded without
	// inspection.
	// Default: 2
	HeaderRows int `yaml:"header_rows"`

	// Encoding is the character encoding of the input file. Output is
	// always UTF-8.
	// Common values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration for the 911 dispatch export.
func Default() *Config {
	return &Config{
		SourceSchema:      dispatch.SourceSchema,
		DestinationSchema: dispatch.DestinationSchema,
		OutputFile:        DefaultOutputFile,
		Profile:           ProfileE911,
		LogLevel:          "info",
		CSVSettings: CSVSettings{
			Delimiter:  ",",
			HeaderRows: 2,
			Encoding:   "UTF-8",
		},
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//
// RETURNS:
//   - The configuration, defaults filled in.
//   - An error if the file cannot be read, parsed, or fails validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default() when path is empty
// or the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// normalize cleans up values a YAML author is likely to write loosely.
func normalize(cfg *Config) {
	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	switch cfg.CSVSettings.Delimiter {
	case "\\t", "tab", "TAB":
		cfg.CSVSettings.Delimiter = "\t"
	case "pipe", "PIPE":
		cfg.CSVSettings.Delimiter = "|"
	case "semicolon":
		cfg.CSVSettings.Delimiter = ";"
	}

	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.Profile == "" {
		cfg.Profile = ProfileE911
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks the settings that make a run impossible. Schema-level
// checks live in the validation package.
func (c *Config) Validate() error {
	switch c.Profile {
	case ProfileE911, ProfileNone:
	default:
		return fmt.Errorf("unknown profile %q", c.Profile)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if c.CSVSettings.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative, got %d", c.CSVSettings.HeaderRows)
	}

	if _, err := c.CSVSettings.Comma(); err != nil {
		return err
	}
	return nil
}

// Comma returns the delimiter as a rune.
func (s CSVSettings) Comma() (rune, error) {
	r := []rune(s.Delimiter)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s.Delimiter)
	}
	if r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s.Delimiter)
	}
	return r[0], nil
}
