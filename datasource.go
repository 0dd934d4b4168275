package datagrid

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// DataSource supplies cell values in virtual mode. Row indices are grid
// indices; the source owns the values and the grid owns layout state.
type DataSource interface {
	RowCount() int
	CellValue(col, row int) (any, error)
	PushCellValue(col, row int, v any) error
	// IsRowDirty reports whether the row has changes the source has not saved.
	IsRowDirty(row int) bool
	// DefaultValues returns the values a new row starts with, in column order.
	DefaultValues(row int) []any
	NotifyRowAdded(row int)
	NotifyRowRemoved(row int)
}

// DataSource returns the attached source, nil in local mode.
func (g *Grid) DataSource() DataSource { return g.dataSource }

// SetDataSource switches to virtual mode backed by ds, or back to local mode
// when ds is nil. Rows are recreated as shared rows; local values are lost.
func (g *Grid) SetDataSource(ds DataSource) error {
	if ds == g.dataSource {
		return nil
	}
	if err := g.SetCurrentCell(-1, -1); err != nil {
		return err
	}
	defer g.suspend(suspendLayout)()
	g.rows.clearAll()
	g.dataSource = ds
	if ds == nil || g.columns.Len() == 0 {
		return nil
	}
	if n := ds.RowCount(); n > 0 {
		return g.rows.Insert(0, n)
	}
	return nil
}

// VirtualMode reports whether values come from a data source.
func (g *Grid) VirtualMode() bool { return g.dataSource != nil }

// SetRowCount grows or shrinks the grid to n shared rows. In virtual mode it
// is called after the source changed size.
func (g *Grid) SetRowCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: row count %d", ErrInvalidArgument, n)
	}
	if n > 0 && g.columns.Len() == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidOperation)
	}
	return g.rows.resize(n)
}

// AddRow appends one row seeded with the default values the data source
// offers, and tells the source about it.
func (g *Grid) AddRow() (int, error) {
	i, err := g.rows.Add(1)
	if err != nil {
		return -1, err
	}
	ds := g.dataSource
	if ds == nil {
		return i, nil
	}
	ds.NotifyRowAdded(i)
	for c, v := range ds.DefaultValues(i) {
		if c >= g.columns.Len() || v == nil {
			continue
		}
		if err := ds.PushCellValue(c, i, v); err != nil {
			return i, g.dataError(ContextCommit, CellAddress{Col: c, Row: i}, err)
		}
	}
	return i, nil
}

// CellValue returns the value of a cell without unsharing its row.
func (g *Grid) CellValue(col, row int) (any, error) {
	if err := g.checkCellAddress(col, row); err != nil {
		return nil, err
	}
	if g.dataSource != nil {
		v, err := g.dataSource.CellValue(col, row)
		if err != nil {
			return nil, &DataError{Context: ContextDisplay, Cell: CellAddress{Col: col, Row: row}, Err: err}
		}
		return v, nil
	}
	r := g.rows.shared(row)
	if col >= len(r.cells) {
		g.invariant("row has fewer cells than columns", "row", row, "cells", len(r.cells))
		return nil, nil
	}
	return r.cells[col].value, nil
}

// SetCellValue writes a value through the grid: to the data source in
// virtual mode, to the (unshared) row otherwise.
func (g *Grid) SetCellValue(col, row int, v any) error {
	if err := g.checkCellAddress(col, row); err != nil {
		return err
	}
	return g.storeValue(col, row, v)
}

func (g *Grid) storeValue(col, row int, v any) error {
	old, _ := g.CellValue(col, row)
	if g.dataSource != nil {
		if err := g.dataSource.PushCellValue(col, row, v); err != nil {
			return err
		}
	} else {
		r, err := g.rows.Get(row)
		if err != nil {
			return err
		}
		r.cells[col].value = v
	}
	g.invalidateCell(col, row)
	g.events.cellValueChanged.emit(CellValueChangedEvent{Cell: CellAddress{Col: col, Row: row}, Old: old, New: v})
	if g.columns.items[col].InheritedAutoSizeMode().usesCells() || g.autoSizeRowsMode.usesCells() {
		g.requestLayout(layoutOptions{useRowShortcut: true, autoSize: true})
	}
	return nil
}

// FormattedValue returns a cell value as displayed. Fetch errors display as
// empty text.
func (g *Grid) FormattedValue(col, row int) string {
	v, err := g.CellValue(col, row)
	if err != nil {
		g.log.Debug("cell value", "col", col, "row", row, "err", err)
		return ""
	}
	return formatValue(v, g.EffectiveStyle(col, row))
}

// formatValue renders v with the style's format and null text.
func formatValue(v any, s CellStyle) string {
	switch x := v.(type) {
	case nil:
		return s.NullValue
	case string:
		return x
	}
	if s.Format != "" {
		return fmt.Sprintf(s.Format, v)
	}
	return fmt.Sprint(v)
}

// SortColumn returns the sorted column and order, (-1, SortNone) when unsorted.
func (g *Grid) SortColumn() (int, SortOrder) { return g.sort.column, g.sort.order }

// Sort reorders rows by the values of column col. Only local mode sorts; a
// data source sorts itself. The current cell follows its row and a pending
// edit is committed first. Row indices of unshared rows are renumbered.
func (g *Grid) Sort(col int, order SortOrder) error {
	c := g.columns.At(col)
	if c == nil {
		return outOfRange("column index", col, g.columns.Len())
	}
	if order != SortAscending && order != SortDescending {
		return fmt.Errorf("%w: sort order %d", ErrInvalidArgument, order)
	}
	if g.dataSource != nil {
		return fmt.Errorf("%w: virtual mode rows are sorted by the data source", ErrInvalidOperation)
	}
	if c.sortMode == SortNotSortable {
		return fmt.Errorf("%w: column %q is not sortable", ErrInvalidOperation, c.name)
	}
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextCommit, false); err != nil {
			return err
		}
	}

	type keyed struct {
		entry rowEntry
		old   int
	}
	keys := make([]keyed, len(g.rows.entries))
	for i, e := range g.rows.entries {
		keys[i] = keyed{entry: e, old: i}
	}
	// Frozen rows sort among themselves and stay above the scrolling rows.
	byValue := func(a, b keyed) int {
		r := compareValues(a.entry.row.cells[col].value, b.entry.row.cells[col].value)
		if order == SortDescending {
			r = -r
		}
		return r
	}
	slices.SortStableFunc(keys, func(a, b keyed) int {
		fa, fb := a.entry.state.Has(StateFrozen), b.entry.state.Has(StateFrozen)
		switch {
		case fa && !fb:
			return -1
		case !fa && fb:
			return 1
		}
		return byValue(a, b)
	})
	moved := make(map[int]int, len(keys))
	for i, k := range keys {
		g.rows.entries[i] = k.entry
		moved[k.old] = i
	}

	defer g.suspend(suspendLayout)()
	g.rows.renumber(0)
	g.rows.invalidate()
	if err := checkFrozenRows(g.rows, -1, 0, false); err != nil {
		g.log.Warn("frozen rows after sort", "err", err)
	}
	g.selectedCells = remapCells(g.selectedCells, func(a CellAddress) (CellAddress, bool) {
		return CellAddress{Col: a.Col, Row: moved[a.Row]}, true
	})
	g.readOnlyCells = remapCells(g.readOnlyCells, func(a CellAddress) (CellAddress, bool) {
		return CellAddress{Col: a.Col, Row: moved[a.Row]}, true
	})
	if !g.current.IsNone() {
		g.current.Row = moved[g.current.Row]
	}
	if !g.anchor.IsNone() {
		g.anchor.Row = moved[g.anchor.Row]
	}
	g.sort.column, g.sort.order = col, order
	g.log.Debug("sorted", "column", c.name, "order", order)
	g.requestLayout(layoutOptions{})
	if !g.current.IsNone() {
		if err := g.ScrollIntoView(g.current.Col, g.current.Row); err != nil {
			g.log.Debug("scroll after sort", "err", err)
		}
	}
	return nil
}

// compareValues orders nil first, then numbers, then everything else by text.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	switch {
	case okA && okB:
		return cmp.Compare(fa, fb)
	case okA:
		return -1
	case okB:
		return 1
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
