// =============================================================================
// E911 CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to. Called with a
// single file argument it runs the conversion directly:
//
//   e911conv extract.csv     (same as: e911conv convert extract.csv)
//
// COBRA CLI STRUCTURE:
//   rootCmd (e911conv)
//   ├── convertCmd  (e911conv convert <input>)
//   ├── validateCmd (e911conv validate)
//   ├── templateCmd (e911conv template <out.xlsx>)
//   └── versionCmd  (e911conv version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --output, --profile)
//   2. Loading the configuration and applying flag overrides
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ginjaninja78/e911-csv-converter/internal/config"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// A missing file at the default path means built-in defaults.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// outputFile overrides output_file from the configuration.
var outputFile string

// profile overrides the post-processing profile from the configuration.
var profile string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "e911conv [input.csv]",
	Short: "E911 CSV Converter - Reformat 911 dispatch address exports",
	Long: `E911 CSV Converter reformats a 911 dispatch address export from its
27-column source layout into the 7-column layout used for address lookups.

Each record is reordered by column name, then normalized:
  - Records are numbered from 1
  - Service class codes become abbreviations (1 -> RESD, W -> WRLS, ...)
  - Address components are joined into one clean address string
  - The listed/unlisted code becomes TRUE or FALSE

The first two records of the input are treated as headers and discarded.

Example Usage:
  e911conv extract.csv                      # Writes ./converted.csv
  e911conv convert extract.csv -o out.csv   # Custom output path
  e911conv validate --config ./e911.yaml    # Check a configuration`,

	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		// If no input is provided, print the help message.
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd.Context(), args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main(). An interrupt
// cancels the running conversion, which leaves no partial output behind.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (built-in defaults if it does not exist)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVarP(
		&outputFile,
		"output",
		"o",
		"",
		"Output file path (overrides output_file, default ./converted.csv)",
	)

	rootCmd.PersistentFlags().StringVar(
		&profile,
		"profile",
		"",
		"Post-processing profile: e911 or none (overrides profile)",
	)
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if outputFile != "" {
		cfg.OutputFile = outputFile
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
