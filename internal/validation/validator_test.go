package validation

import (
	"testing"

	"github.com/ginjaninja78/e911-csv-converter/internal/config"
	"github.com/ginjaninja78/e911-csv-converter/internal/dispatch"
	"github.com/ginjaninja78/e911-csv-converter/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSchemas() (schema.Schema, schema.Schema) {
	return schema.Parse(dispatch.SourceSchema), schema.Parse(dispatch.DestinationSchema)
}

func TestDefaultConfigIsValid(t *testing.T) {
	src, dst := defaultSchemas()

	result := ValidateConfig(config.Default(), src, dst, dispatch.InputWidth)
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Errors)
	assert.Equal(t, "0 error(s), 0 warning(s)\n", FormatErrors(result))
}

func TestMissingColumnsReported(t *testing.T) {
	src, _ := defaultSchemas()
	dst := schema.Parse("ESN, Customer, Phone, Number, Class, House #, House Sfx, Pre Dir, Street Name, Street Sfx, Post Dir, Town")

	result := ValidateConfig(config.Default(), src, dst, dispatch.InputWidth)
	require.False(t, result.IsValid())
	assert.Equal(t, 2, result.ErrorCount)
	assert.Contains(t, result.Errors[0].Message, `"Phone"`)
	assert.Contains(t, result.Errors[1].Message, `"Town"`)
}

func TestWidthMismatch(t *testing.T) {
	src, _ := defaultSchemas()

	result := ValidateConfig(config.Default(), src, schema.Parse("ESN"), dispatch.InputWidth)
	require.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, "destination_schema", result.Errors[0].Field)

	result = ValidateConfig(config.Default(), src, schema.Parse("ESN"), 0)
	assert.True(t, result.IsValid())
}

func TestWarnings(t *testing.T) {
	cfg := config.Default()
	cfg.CSVSettings.HeaderRows = 0

	result := ValidateConfig(cfg, schema.Parse("A, B, A"), schema.Parse("A"), 0)
	assert.True(t, result.IsValid())
	assert.Equal(t, 2, result.WarningCount)
	assert.Contains(t, FormatErrors(result), "[WARNING] source_schema")
}

func TestEmptyAndBadSettings(t *testing.T) {
	cfg := config.Default()
	cfg.CSVSettings.Encoding = "klingon"
	cfg.CSVSettings.Delimiter = ""

	result := ValidateConfig(cfg, schema.Schema{}, schema.Schema{}, 0)

	fields := map[string]bool{}
	for _, e := range result.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["source_schema"])
	assert.True(t, fields["destination_schema"])
	assert.True(t, fields["csv_settings.encoding"])
	assert.True(t, fields["config"])
}
