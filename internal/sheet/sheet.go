// Package sheet is the spreadsheet boundary.
//
// The binary codec is delegated to excelize; this package owns only the
// logical contract: an ordered sequence of named-cell rows in, an ordered
// sequence of rows out. The first sheet's first row is the header and
// defines the column order for the whole dataset.
package sheet

import (
	"errors"
	"fmt"

	"github.com/abelbrown/geophone/internal/record"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidFile marks a file that could not be decoded as tabular data.
// Callers match it with errors.Is and keep any previously loaded dataset.
var ErrInvalidFile = errors.New("invalid spreadsheet file")

// ExportSheetName is the sheet name written on export.
const ExportSheetName = "Resultats"

// Read decodes the first sheet of an .xlsx file into a header and ordered
// rows. Data rows shorter than the header get empty cells; cells beyond the
// header are dropped.
func Read(path string) ([]string, []record.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("%w: no sheets", ErrInvalidFile)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("%w: empty sheet", ErrInvalidFile)
	}

	columns := append([]string(nil), raw[0]...)
	rows := make([]record.Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(record.Row, len(columns))
		for i, name := range columns {
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

// Write serializes a view back to an .xlsx file.
//
// The internal record ID is dropped entirely. The annotation is resolved to
// its display phrase and appended as one extra column after the original
// ones; the derived country column is already a normal data column by this
// point. Row order follows the view exactly.
func Write(path string, columns []string, view []record.EnrichedRecord, annotations map[int]record.Annotation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := append(append([]string(nil), columns...), record.AnnotationColumn)
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range view {
		cells := make([]interface{}, 0, len(header))
		for _, col := range columns {
			cells = append(cells, rec.Value(col))
		}
		cells = append(cells, annotations[rec.ID].ExportLabel())

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i, err)
		}
		if err := f.SetSheetRow(ExportSheetName, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
