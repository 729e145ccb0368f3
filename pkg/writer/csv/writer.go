// Package csv writes result tables as comma separated values.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ChrisMcGann/pepcomb/pkg/table"
)

// Writer writes tables to one CSV file. Tables after the first are
// separated by an empty line.
type Writer struct {
	file   *os.File
	csv    *csv.Writer
	tables int
}

// NewWriter creates the file at outputPath.
func NewWriter(outputPath string) (*Writer, error) {
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &Writer{file: f, csv: csv.NewWriter(f)}, nil
}

// WriteTable writes a header and one record per row, each led by its
// row index. name is not written.
func (w *Writer) WriteTable(name string, t *table.Table) error {
	if w.tables > 0 {
		if err := w.csv.Write(nil); err != nil {
			return err
		}
	}
	w.tables++

	header := append([]string{""}, t.Columns...)
	if err := w.csv.Write(header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}

	record := make([]string, len(t.Columns)+1)
	for i, row := range t.Rows {
		record[0] = table.FormatValue(i)
		for j, v := range row {
			record[j+1] = table.FormatValue(v)
		}
		if err := w.csv.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i, name, err)
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
