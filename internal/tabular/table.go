// Package tabular models the rectangular input table and its CSV ingestion.
//
// The matching engine requires every row to have exactly one cell per
// header; this package enforces that shape and filters blank rows before
// the engine ever sees them, so the engine itself never re-validates.
package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHeader indicates the input produced no header row.
var ErrNoHeader = errors.New("tabular: input has no header row")

// Table is an immutable rectangular grid: one header per column and rows of
// equal width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New validates rectangularity and returns the table. Rows of a different
// width than the header are an input error, not a row-level condition.
func New(headers []string, rows [][]string) (*Table, error) {
	if len(headers) == 0 {
		return nil, ErrNoHeader
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("tabular: row %d has %d cells, want %d", i, len(row), len(headers))
		}
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Column returns the cells of one column across all rows, in row order.
func (t *Table) Column(index int) []string {
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row[index]
	}
	return cells
}

// isBlankRow reports whether every cell is empty after trimming.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
