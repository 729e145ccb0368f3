// Package xlsx writes result tables to spreadsheet files.
package xlsx

import (
	"fmt"

	"github.com/ChrisMcGann/pepcomb/pkg/table"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates with a new workbook.
const defaultSheet = "Sheet1"

// Writer collects tables as sheets and saves the workbook on Close.
// Each sheet starts with an unnamed row index column.
type Writer struct {
	file       *excelize.File
	outputPath string
	sheets     int
}

// NewWriter creates a workbook to be saved at outputPath.
func NewWriter(outputPath string) (*Writer, error) {
	return &Writer{
		file:       excelize.NewFile(),
		outputPath: outputPath,
	}, nil
}

// WriteTable writes t to a new sheet called name.
func (w *Writer) WriteTable(name string, t *table.Table) error {
	if w.sheets == 0 {
		if err := w.file.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to name sheet %s: %w", name, err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	w.sheets++

	header := make([]interface{}, 0, len(t.Columns)+1)
	header = append(header, "")
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := w.setRow(name, 1, header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		values := make([]interface{}, 0, len(row)+1)
		values = append(values, i)
		values = append(values, row...)
		if err := w.setRow(name, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) setRow(sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// Close saves the workbook.
func (w *Writer) Close() error {
	defer w.file.Close()

	if w.sheets == 0 {
		return nil
	}
	if err := w.file.SaveAs(w.outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
