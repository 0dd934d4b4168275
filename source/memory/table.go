// Package memory provides an in-memory datagrid.DataSource.
package memory

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOutOfRange is returned for cell coordinates outside the table.
var ErrOutOfRange = errors.New("memory: cell out of range")

// Table is a row-major table of values. Rows added through the grid start
// with the table's defaults. It is not safe for concurrent use.
type Table struct {
	columns  int
	rows     [][]any
	dirty    map[int]bool
	defaults []any

	// Generate, when set, supplies values for cells never written.
	Generate func(col, row int) any
}

// NewTable creates a table with n rows of the given width.
func NewTable(columns, rows int) *Table {
	t := &Table{columns: columns, dirty: make(map[int]bool)}
	t.rows = make([][]any, rows)
	return t
}

// FromRows wraps existing rows. The width is the longest row.
func FromRows(rows [][]any) *Table {
	t := &Table{rows: rows, dirty: make(map[int]bool)}
	for _, r := range rows {
		t.columns = max(t.columns, len(r))
	}
	return t
}

// SetDefaults sets the values new rows start with.
func (t *Table) SetDefaults(values ...any) { t.defaults = values }

// Columns returns the table width.
func (t *Table) Columns() int { return t.columns }

// RowCount implements datagrid.DataSource.
func (t *Table) RowCount() int { return len(t.rows) }

func (t *Table) check(col, row int) error {
	if col < 0 || col >= t.columns || row < 0 || row >= len(t.rows) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, col, row, t.columns, len(t.rows))
	}
	return nil
}

// CellValue implements datagrid.DataSource.
func (t *Table) CellValue(col, row int) (any, error) {
	if err := t.check(col, row); err != nil {
		return nil, err
	}
	r := t.rows[row]
	if col < len(r) && r[col] != nil {
		return r[col], nil
	}
	if t.Generate != nil {
		return t.Generate(col, row), nil
	}
	return nil, nil
}

// PushCellValue implements datagrid.DataSource.
func (t *Table) PushCellValue(col, row int, v any) error {
	if err := t.check(col, row); err != nil {
		return err
	}
	r := t.rows[row]
	if len(r) < t.columns {
		r = append(r, make([]any, t.columns-len(r))...)
		t.rows[row] = r
	}
	r[col] = v
	t.dirty[row] = true
	return nil
}

// IsRowDirty implements datagrid.DataSource.
func (t *Table) IsRowDirty(row int) bool { return t.dirty[row] }

// MarkClean forgets every pending change.
func (t *Table) MarkClean() { clear(t.dirty) }

// DefaultValues implements datagrid.DataSource.
func (t *Table) DefaultValues(row int) []any { return slices.Clone(t.defaults) }

// NotifyRowAdded implements datagrid.DataSource.
func (t *Table) NotifyRowAdded(row int) {
	row = min(max(row, 0), len(t.rows))
	t.rows = slices.Insert(t.rows, row, nil)
	t.shiftDirty(row, 1)
}

// NotifyRowRemoved implements datagrid.DataSource.
func (t *Table) NotifyRowRemoved(row int) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.rows = slices.Delete(t.rows, row, row+1)
	delete(t.dirty, row)
	t.shiftDirty(row, -1)
}

// shiftDirty moves dirty marks at or after row by delta.
func (t *Table) shiftDirty(row, delta int) {
	moved := make(map[int]bool, len(t.dirty))
	for r, d := range t.dirty {
		if r >= row {
			r += delta
		}
		moved[r] = d
	}
	t.dirty = moved
}
