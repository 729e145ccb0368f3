// Package writer selects a table exporter from the output path.
package writer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ChrisMcGann/pepcomb/pkg/table"
	"github.com/ChrisMcGann/pepcomb/pkg/writer/csv"
	"github.com/ChrisMcGann/pepcomb/pkg/writer/sqlite"
	"github.com/ChrisMcGann/pepcomb/pkg/writer/xlsx"
)

// TableWriter stores named tables in a file. Close must be called to
// finish the file.
type TableWriter interface {
	WriteTable(name string, t *table.Table) error
	Close() error
}

// Format names an output format.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
	FormatCSV    Format = "csv"
)

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("cannot detect output format from extension '%s', use .xlsx, .db or .csv", ext)
	}
}

// Open creates a TableWriter for path.
func Open(path string) (TableWriter, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return xlsx.NewWriter(path)
	case FormatSQLite:
		return sqlite.NewWriter(path)
	default:
		return csv.NewWriter(path)
	}
}

// Export writes a single table to path.
func Export(path, name string, t *table.Table) error {
	w, err := Open(path)
	if err != nil {
		return err
	}

	if err := w.WriteTable(name, t); err != nil {
		return errors.Join(err, w.Close())
	}
	return w.Close()
}
