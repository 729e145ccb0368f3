// Package sqlite provides SQLite database writing for search results
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ChrisMcGann/pepcomb/pkg/table"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Date format for SearchRun (ISO 8601)
const runDateFormat = "2006-01-02 15:04:05"

// Writer stores result tables in a SQLite file. Each table becomes a SQL
// table of the same name with a leading RowIndex column; every write is
// recorded in SearchRun under the writer's run id.
type Writer struct {
	db         *sql.DB
	outputPath string
	runID      string
	tables     int
	closed     bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		runID:      uuid.NewString(),
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// RunID returns the identifier recorded with every table of this writer.
func (w *Writer) RunID() string {
	return w.runID
}

// createTables creates the run bookkeeping table
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS SearchRun (
		RunId TEXT NOT NULL,
		TableName TEXT NOT NULL,
		RowCount INTEGER,
		CreationDate TEXT
	);
	`

	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// WriteTable writes t into a table called name, replacing any previous
// table with that name.
func (w *Writer) WriteTable(name string, t *table.Table) error {
	ident, err := identifier(name)
	if err != nil {
		return err
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, `"RowIndex" INTEGER`)
	for i, c := range t.Columns {
		colIdent, err := identifier(c)
		if err != nil {
			return err
		}
		cols = append(cols, fmt.Sprintf("%s %s", colIdent, columnType(t, i)))
	}

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + ident); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", ident, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)+1), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", ident, placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(t.Columns)+1)
	for i, row := range t.Rows {
		args[0] = i
		copy(args[1:], row)
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO SearchRun (RunId, TableName, RowCount, CreationDate)
		VALUES (?, ?, ?, ?)
	`, w.runID, name, t.Len(), time.Now().Format(runDateFormat))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", name, err)
	}

	w.tables++
	return nil
}

// columnType picks the SQL type of column i from its first value.
func columnType(t *table.Table, i int) string {
	if len(t.Rows) == 0 {
		return "TEXT"
	}
	switch t.Rows[0][i].(type) {
	case int:
		return "INTEGER"
	case float64:
		return "DOUBLE"
	default:
		return "TEXT"
	}
}

// identifier quotes name for use as a SQL identifier. Only letters, digits
// and underscores are accepted.
func identifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty table or column name")
	}
	for _, r := range name {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return "", fmt.Errorf("invalid table or column name %q", name)
		}
	}
	return `"` + name + `"`, nil
}

// Close closes the database connection
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
