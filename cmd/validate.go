package cmd

import (
	"fmt"

	"github.com/ginjaninja78/e911-csv-converter/internal/converter"
	"github.com/ginjaninja78/e911-csv-converter/internal/validation"
	"github.com/spf13/cobra"
)

// validateCmd checks the configuration without reading any input.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and schemas",
	Long: `Load the configuration, resolve the schemas (inline or from the XLSX
template) and report every problem that would stop a conversion.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		src, dst, err := converter.ResolveSchemas(cfg)
		if err != nil {
			return err
		}

		width := 0
		if wa, ok := converter.NewPostProcessor(cfg.Profile).(converter.WidthAware); ok {
			width = wa.InputWidth()
		}

		result := validation.ValidateConfig(cfg, src, dst, width)
		fmt.Print(validation.FormatErrors(result))

		if !result.IsValid() {
			return fmt.Errorf("configuration has %d error(s)", result.ErrorCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
