package cmd

import (
	"fmt"

	"github.com/ginjaninja78/e911-csv-converter/internal/converter"
	"github.com/ginjaninja78/e911-csv-converter/internal/xlsxparser"
	"github.com/spf13/cobra"
)

// templateCmd exports the configured schemas as an XLSX schema template,
// ready to be edited and referenced from schema_template.
var templateCmd = &cobra.Command{
	Use:   "template <out.xlsx>",
	Short: "Write the current schemas to an XLSX template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		src, dst, err := converter.ResolveSchemas(cfg)
		if err != nil {
			return err
		}

		if err := xlsxparser.WriteTemplate(args[0], src, dst); err != nil {
			return err
		}
		fmt.Printf("Wrote %d source and %d destination columns to %s\n", len(src), len(dst), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
