// =============================================================================
// E911 CSV Converter - XLSX Schema Template Parser
// =============================================================================
//
// This module reads source and destination schemas from an XLSX workbook, so
// the column layouts can be maintained in a spreadsheet instead of as long
// comma-separated strings in config.yaml.
//
// TEMPLATE STRUCTURE (Expected Columns):
//   The first row holds the headers "Source" and "Destination" (any column
//   positions, case-insensitive). Each row below lists one column name per
//   schema, in order. Blank cells are skipped.
//
//   | Column A     | Column B       |
//   |--------------|----------------|
//   | Source       | Destination    |
//   | Number       | ESN            |
//   | CompID1      | Customer       |
//   | F            | Number         |
//   | House #      | Class          |
//   | ...          | ...            |
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/e911-csv-converter/internal/schema"
	"github.com/xuri/excelize/v2"
)

// Header labels looked up in the first row.
const (
	SourceHeader      = "Source"
	DestinationHeader = "Destination"
)

// DefaultSheetName is the sheet written by WriteTemplate.
const DefaultSheetName = "Schema"

// =============================================================================
// TEMPLATE STRUCTURE
// =============================================================================

// Template is a schema pair read from a workbook.
type Template struct {
	// TemplateFile is the path to the source workbook.
	TemplateFile string

	// Sheet is the worksheet the schemas were read from.
	Sheet string

	Source      schema.Schema
	Destination schema.Schema
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a schema template.
//
// PARAMETERS:
//   - templatePath: The path to the XLSX file.
//   - sheet: The worksheet to read; empty selects the first sheet.
//
// RETURNS:
//   - The Template with both schemas.
//   - An error if the file cannot be opened, the sheet is missing, or the
//     header row lacks either column.
func Parse(templatePath, sheet string) (*Template, error) {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("template file has no sheets")
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	srcCol, dstCol := findColumn(rows[0], SourceHeader), findColumn(rows[0], DestinationHeader)
	if srcCol < 0 {
		return nil, fmt.Errorf("sheet %q has no %q header", sheet, SourceHeader)
	}
	if dstCol < 0 {
		return nil, fmt.Errorf("sheet %q has no %q header", sheet, DestinationHeader)
	}

	return &Template{
		TemplateFile: templatePath,
		Sheet:        sheet,
		Source:       collectColumn(rows[1:], srcCol),
		Destination:  collectColumn(rows[1:], dstCol),
	}, nil
}

// findColumn returns the index of the header cell matching name, or -1.
func findColumn(header []string, name string) int {
	for i, cell := range header {
		if strings.EqualFold(strings.TrimSpace(cell), name) {
			return i
		}
	}
	return -1
}

// collectColumn gathers the non-blank, trimmed values of one column.
func collectColumn(rows [][]string, col int) schema.Schema {
	out := schema.Schema{}
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// =============================================================================
// TEMPLATE GENERATION
// =============================================================================

// WriteTemplate saves a schema pair as a workbook Parse can read back.
func WriteTemplate(path string, src, dst schema.Schema) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DefaultSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(DefaultSheetName, "A1", &[]string{SourceHeader, DestinationHeader}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writeColumn(f, "A", src); err != nil {
		return err
	}
	if err := writeColumn(f, "B", dst); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func writeColumn(f *excelize.File, col string, s schema.Schema) error {
	for i, name := range s {
		cell := fmt.Sprintf("%s%d", col, i+2)
		if err := f.SetCellStr(DefaultSheetName, cell, name); err != nil {
			return fmt.Errorf("failed to write %s: %w", cell, err)
		}
	}
	return nil
}
