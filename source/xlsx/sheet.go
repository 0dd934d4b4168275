// Package xlsx serves a worksheet as a virtual-mode datagrid.DataSource.
// Values are read once into memory; edits are written back to the workbook
// and persisted by Save.
package xlsx

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrOutOfRange is returned for cell coordinates outside the sheet.
var ErrOutOfRange = errors.New("xlsx: cell out of range")

// Sheet is a worksheet exposed as grid rows.
type Sheet struct {
	file    *excelize.File
	name    string
	header  bool
	raw     bool
	headers []string
	rows    [][]string
	columns int
	dirty   map[int]bool
	defs    []any
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithHeaderRow treats the first worksheet row as column headers.
func WithHeaderRow(on bool) Option {
	return func(s *Sheet) { s.header = on }
}

// WithRawStrings disables number and boolean detection; every value is a string.
func WithRawStrings() Option {
	return func(s *Sheet) { s.raw = true }
}

// WithDefaults sets the values rows added through the grid start with.
func WithDefaults(values ...any) Option {
	return func(s *Sheet) { s.defs = values }
}

// Open opens a workbook and serves one of its sheets; an empty name picks
// the first sheet.
func Open(path, sheet string, opts ...Option) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %s: %w", path, err)
	}
	s, err := New(f, sheet, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// New serves a sheet of an open workbook.
func New(f *excelize.File, sheet string, opts ...Option) (*Sheet, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	s := &Sheet{file: f, name: sheet, dirty: make(map[int]bool)}
	for _, opt := range opts {
		opt(s)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if s.header && len(rows) > 0 {
		s.headers, rows = rows[0], rows[1:]
	}
	s.rows = rows
	s.columns = len(s.headers)
	for _, r := range rows {
		s.columns = max(s.columns, len(r))
	}
	return s, nil
}

// File returns the underlying workbook.
func (s *Sheet) File() *excelize.File { return s.file }

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Columns returns the number of columns holding data or a header.
func (s *Sheet) Columns() int { return s.columns }

// Header returns the header text of column col, or its letter when the sheet
// has no header row.
func (s *Sheet) Header(col int) string {
	if col < len(s.headers) && s.headers[col] != "" {
		return s.headers[col]
	}
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return strconv.Itoa(col + 1)
	}
	return name
}

// cellName returns the worksheet reference of a grid cell.
func (s *Sheet) cellName(col, row int) (string, error) {
	if s.header {
		row++
	}
	return excelize.CoordinatesToCellName(col+1, row+1)
}

func (s *Sheet) check(col, row int) error {
	if col < 0 || col >= s.columns || row < 0 || row >= len(s.rows) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, col, row, s.columns, len(s.rows))
	}
	return nil
}

// RowCount implements datagrid.DataSource.
func (s *Sheet) RowCount() int { return len(s.rows) }

// CellValue implements datagrid.DataSource. Empty cells are nil.
func (s *Sheet) CellValue(col, row int) (any, error) {
	if err := s.check(col, row); err != nil {
		return nil, err
	}
	r := s.rows[row]
	if col >= len(r) || r[col] == "" {
		return nil, nil
	}
	if s.raw {
		return r[col], nil
	}
	return detect(r[col]), nil
}

// detect turns cell text into an int64, float64 or bool when it reads as one.
func detect(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	switch strings.ToUpper(text) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return text
}

// PushCellValue implements datagrid.DataSource.
func (s *Sheet) PushCellValue(col, row int, v any) error {
	if err := s.check(col, row); err != nil {
		return err
	}
	name, err := s.cellName(col, row)
	if err != nil {
		return err
	}
	if err := s.file.SetCellValue(s.name, name, v); err != nil {
		return fmt.Errorf("xlsx: write %s: %w", name, err)
	}
	r := s.rows[row]
	if len(r) <= col {
		r = append(r, make([]string, col+1-len(r))...)
		s.rows[row] = r
	}
	r[col] = cellText(v)
	s.dirty[row] = true
	return nil
}

// cellText renders v the way the worksheet stores it.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return strings.ToUpper(strconv.FormatBool(x))
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// IsRowDirty implements datagrid.DataSource.
func (s *Sheet) IsRowDirty(row int) bool { return s.dirty[row] }

// DefaultValues implements datagrid.DataSource.
func (s *Sheet) DefaultValues(row int) []any { return slices.Clone(s.defs) }

// NotifyRowAdded implements datagrid.DataSource.
func (s *Sheet) NotifyRowAdded(row int) {
	row = min(max(row, 0), len(s.rows))
	ws := row + 1
	if s.header {
		ws++
	}
	if row < len(s.rows) {
		if err := s.file.InsertRows(s.name, ws, 1); err != nil {
			return
		}
	}
	s.rows = slices.Insert(s.rows, row, []string(nil))
	s.shiftDirty(row, 1)
	s.dirty[row] = true
}

// NotifyRowRemoved implements datagrid.DataSource.
func (s *Sheet) NotifyRowRemoved(row int) {
	if row < 0 || row >= len(s.rows) {
		return
	}
	ws := row + 1
	if s.header {
		ws++
	}
	if err := s.file.RemoveRow(s.name, ws); err != nil {
		return
	}
	s.rows = slices.Delete(s.rows, row, row+1)
	delete(s.dirty, row)
	s.shiftDirty(row, -1)
}

func (s *Sheet) shiftDirty(row, delta int) {
	moved := make(map[int]bool, len(s.dirty))
	for r, d := range s.dirty {
		if r >= row {
			r += delta
		}
		moved[r] = d
	}
	s.dirty = moved
}

// Save writes the workbook back to where it was opened from, or to path
// when path is not empty, and forgets the dirty rows.
func (s *Sheet) Save(path string) error {
	var err error
	if path == "" {
		err = s.file.Save()
	} else {
		err = s.file.SaveAs(path)
	}
	if err != nil {
		return fmt.Errorf("xlsx: save: %w", err)
	}
	clear(s.dirty)
	return nil
}

// Close closes the workbook.
func (s *Sheet) Close() error { return s.file.Close() }
