// Package table holds search results as ordered rows of named columns,
// independent of any export format.
package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Row is one record; values line up with Table.Columns.
// Values are string, int or float64.
type Row []interface{}

// Table is an ordered list of rows with named columns.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{
		Columns: columns,
		Rows:    []Row{},
	}
}

// Append adds a row. It panics if the number of values does not match
// the number of columns.
func (t *Table) Append(values ...interface{}) {
	if len(values) != len(t.Columns) {
		panic(fmt.Sprintf("table: row has %d values, want %d", len(values), len(t.Columns)))
	}
	t.Rows = append(t.Rows, Row(values))
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Strings returns the named column as strings, in row order.
func (t *Table) Strings(name string) []string {
	col := t.Column(name)
	if col < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = FormatValue(row[col])
	}
	return out
}

// Floats returns the named float64 column, in row order.
func (t *Table) Floats(name string) []float64 {
	col := t.Column(name)
	if col < 0 {
		return nil
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if v, ok := row[col].(float64); ok {
			out[i] = v
		}
	}
	return out
}

// Render writes a human readable view of the table with a leading row
// index column.
func (t *Table) Render(w io.Writer) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintf(w, "Empty table\nColumns: [%s]\n", strings.Join(t.Columns, ", "))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(t.Columns, "\t"))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		fmt.Fprintf(tw, "%d\t%s\t\n", i, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// FormatValue formats a cell value with the shortest exact representation
// for floats.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
