package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/e911-csv-converter/internal/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and resets the package-level flag values
// afterwards.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, verbose, outputFile, profile = "config.yaml", false, "", ""
	})
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestRootConvertsPositionalInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "extract.csv")
	output := filepath.Join(dir, "converted.csv")

	row := strings.Join([]string{
		"42", "C1", "F", "12", "", "N", "Main", "St", "", "Springfield", "County", "ST",
		"Acme Co", "E911", "Loc", "555", "1", "0", "5551234", "00000", "0000", "C2", "TAR",
		"555", "1", "date", "date",
	}, ",")
	content := "TITLE\n" + dispatch.SourceSchema + "\n" + row + "\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))

	require.NoError(t, execute(t, "--config", filepath.Join(dir, "none.yaml"), "-o", output, input))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "1,Acme Co,42,RESD,12 N Main St,Springfield,FALSE\n", string(data))
}

func TestValidateRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("destination_schema: \"ESN, Phone\"\nprofile: none\n"), 0644))

	err := execute(t, "validate", "--config", cfgPath)
	assert.ErrorContains(t, err, "1 error(s)")
}

func TestTemplateCommandWritesWorkbook(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.xlsx")

	require.NoError(t, execute(t, "template", "--config", "", out))
	assert.FileExists(t, out)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, execute(t, "version"))
	assert.Contains(t, buf.String(), "E911 CSV Converter")
}
