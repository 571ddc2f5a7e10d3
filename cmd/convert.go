// =============================================================================
// E911 CSV Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool. It
// runs the whole conversion pipeline for one input file.
//
// COMMAND USAGE:
//   e911conv convert <input.csv> [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration (file, then flag overrides)
//   2. Build the column index map from the source and destination schemas
//   3. Skip the header records
//   4. Project and normalize every remaining record
//   5. Commit the output file and print DONE!
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/ginjaninja78/e911-csv-converter/internal/converter"
	"github.com/spf13/cobra"
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert <input.csv>",
	Short: "Convert a 911 address export",
	Long: `The convert command reads the input file, discards its header records,
reorders each record to the destination schema, normalizes it and writes the
result to the output file.

On success:
  - The output file is created or replaced
  - DONE! is printed

On error:
  - Processing stops at the first bad record
  - The error names the input record number
  - An existing output file is left unchanged`,

	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context(), args[0])
	},
}

// init registers the convert command with the root command.
func init() {
	rootCmd.AddCommand(convertCmd)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert converts a single input file.
func runConvert(ctx context.Context, inputPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conv := converter.New(inputPath, cfg, nil)
	result, err := conv.Run(ctx)
	if err != nil {
		return fmt.Errorf("conversion of %s failed: %w", inputPath, err)
	}

	if verbose {
		fmt.Printf("Records read:    %d\n", result.Stats.RecordsRead)
		fmt.Printf("Headers skipped: %d\n", result.Stats.HeadersSkipped)
		fmt.Printf("Records written: %d\n", result.Stats.RecordsWritten)
		fmt.Printf("Output file:     %s\n", result.OutputFile)
		fmt.Printf("Time elapsed:    %s\n", result.Stats.ProcessingTime)
	}

	fmt.Println("DONE!")
	return nil
}
