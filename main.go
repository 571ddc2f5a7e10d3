// =============================================================================
// E911 CSV Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the E911 CSV Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   e911conv <input.csv>    - Convert a 911 address export to ./converted.csv
//   e911conv validate       - Validate configuration without converting
//   e911conv template <f>   - Export the schemas as an XLSX template
//   e911conv version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/e911-csv-converter/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
