package datagrid

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// CurrentCell returns the current cell, NoCell when there is none.
func (g *Grid) CurrentCell() CellAddress { return g.current }

// Anchor returns the pivot of range selection.
func (g *Grid) Anchor() CellAddress { return g.anchor }

// SetCurrentCell moves the current cell and selects it according to the
// selection mode. (-1, -1) clears the current cell. A pending edit is
// committed first; if the commit fails nothing changes and the commit error
// is returned.
func (g *Grid) SetCurrentCell(col, row int) error {
	return g.setCurrentCell(col, row, selectReplace)
}

// ExtendSelection moves the current cell and selects the range between the
// anchor and it. The anchor stays put. Without multi-select it behaves like
// SetCurrentCell.
func (g *Grid) ExtendSelection(col, row int) error {
	if !g.multiSelect || g.anchor.IsNone() {
		return g.SetCurrentCell(col, row)
	}
	return g.setCurrentCell(col, row, selectExtend)
}

// SelectRange selects the block between two cells in display order and makes
// to the current cell, with from as the anchor.
func (g *Grid) SelectRange(from, to CellAddress) error {
	if err := g.checkCellAddress(from.Col, from.Row); err != nil {
		return err
	}
	if !g.IsCellVisible(from.Col, from.Row) {
		return fmt.Errorf("%w: cell (%d,%d) is hidden", ErrInvalidOperation, from.Col, from.Row)
	}
	if !g.multiSelect && from != to {
		return fmt.Errorf("%w: range selection without multi-select", ErrInvalidOperation)
	}
	if err := g.SetCurrentCell(from.Col, from.Row); err != nil {
		return err
	}
	return g.setCurrentCell(to.Col, to.Row, selectExtend)
}

// selectHow tells setCurrentCell what to do with the existing selection.
type selectHow uint8

const (
	selectReplace selectHow = iota // Select only the new current cell
	selectExtend                   // Select the range from the anchor
	selectKeep                     // Add the new current cell to the selection
)

func (g *Grid) setCurrentCell(col, row int, how selectHow) error {
	extend := how == selectExtend
	next := CellAddress{Col: col, Row: row}
	if !next.IsNone() {
		if err := g.checkCellAddress(col, row); err != nil {
			return err
		}
		if !g.IsCellVisible(col, row) {
			return fmt.Errorf("%w: cell (%d,%d) is hidden", ErrInvalidOperation, col, row)
		}
		if err := g.checkFrozenRoom(col, row); err != nil {
			return err
		}
	}
	if next == g.current && !extend {
		return nil
	}
	if g.edit.state != NotEditing && next != g.current {
		if err := g.commitEdit(ContextCurrentCellChange|ContextCommit, false); err != nil {
			return err
		}
	}

	release := g.suspendSelection()
	switch {
	case next.IsNone():
		g.clearSelection(NoCell)
	case extend:
		g.clearSelection(NoCell)
		g.selectRange(g.anchor, next)
	case how == selectKeep && g.multiSelect:
		g.selectForCurrent(next)
		g.anchor = next
	default:
		g.clearSelection(NoCell)
		g.selectForCurrent(next)
		g.anchor = next
	}
	if next.IsNone() {
		g.anchor = NoCell
	}
	old := g.current
	g.current = next
	if old.Row != next.Row {
		g.edit.rowDirty = false
	}
	g.invalidateCurrent(old)
	g.invalidateCurrent(next)
	release()

	if old != next {
		g.log.Debug("current cell", "old", old, "new", next)
		g.events.currentCellChanged.emit(CurrentCellChangedEvent{Old: old, New: next})
	}
	if next.IsNone() || g.current != next {
		return nil
	}
	if err := g.ScrollIntoView(col, row); err != nil && !errors.Is(err, ErrNoRoom) {
		g.log.Debug("scroll to current cell", "err", err)
	}
	if g.editMode == EditOnEnter && g.edit.state == NotEditing {
		if err := g.beginEdit(false, false); err != nil {
			g.log.Debug("edit on enter", "err", err)
		}
	}
	return nil
}

func (g *Grid) invalidateCurrent(a CellAddress) {
	if a.IsNone() {
		return
	}
	g.invalidateCell(a.Col, a.Row)
	g.invalidateCell(-1, a.Row)
}

func (g *Grid) checkCellAddress(col, row int) error {
	if col < 0 || col >= g.columns.Len() {
		return outOfRange("column index", col, g.columns.Len())
	}
	if row < 0 || row >= g.rows.Len() {
		return outOfRange("row index", row, g.rows.Len())
	}
	return nil
}

// checkFrozenRoom rejects a frozen cell that lies entirely past the data
// area: frozen bands never scroll, so it could never be shown.
func (g *Grid) checkFrozenRoom(col, row int) error {
	if g.bounds.Empty() {
		return nil
	}
	d := g.layout.Data
	if g.columns.items[col].Frozen() && g.columns.frozenX(col) >= d.W {
		return fmt.Errorf("%w: frozen column %d", ErrNoRoom, col)
	}
	if g.rows.State(row).Has(StateFrozen) && g.rows.frozenY(row) >= d.H {
		return fmt.Errorf("%w: frozen row %d", ErrNoRoom, row)
	}
	return nil
}

// selectForCurrent selects what a click on a cell selects in the current mode.
func (g *Grid) selectForCurrent(a CellAddress) {
	switch {
	case g.selectionMode.selectsRows():
		g.setRowSelected(a.Row, true)
	case g.selectionMode.selectsColumns():
		g.setColumnSelected(a.Col, true)
	default:
		g.setCellSelected(a, true)
	}
}

// selectRange selects the block between a and b in display order.
func (g *Grid) selectRange(a, b CellAddress) {
	switch {
	case g.selectionMode.selectsRows():
		for r := range g.rowsBetween(a.Row, b.Row) {
			g.setRowSelected(r, true)
		}
	case g.selectionMode.selectsColumns():
		for c := range g.columnsBetween(a.Col, b.Col) {
			g.setColumnSelected(c, true)
		}
	default:
		cols := slices.Collect(g.columnsBetween(a.Col, b.Col))
		for r := range g.rowsBetween(a.Row, b.Row) {
			for _, c := range cols {
				g.setCellSelected(CellAddress{Col: c, Row: r}, true)
			}
		}
	}
}

// rowsBetween yields visible rows from a to b inclusive.
func (g *Grid) rowsBetween(a, b int) func(func(int) bool) {
	if a > b {
		a, b = b, a
	}
	return func(yield func(int) bool) {
		for r := g.rows.Next(a-1, StateVisible, 0); r >= 0 && r <= b; r = g.rows.Next(r, StateVisible, 0) {
			if !yield(r) {
				return
			}
		}
	}
}

// columnsBetween yields visible columns from a to b inclusive in display order.
func (g *Grid) columnsBetween(a, b int) func(func(int) bool) {
	if !g.columns.DisplayInOrder(a, b) {
		a, b = b, a
	}
	return func(yield func(int) bool) {
		for c := a; c >= 0; c = g.columns.Next(c, StateVisible, 0) {
			if g.columns.items[c].Visible() && !yield(c) {
				return
			}
			if c == b {
				return
			}
		}
	}
}

// --- Primitive state changes ---------------------------------------------------

func (g *Grid) markSelectionChanged() {
	g.guard.selectionChanged = true
	if g.guard.counts[suspendSelection] == 0 {
		g.flushSelectionChanged()
	}
}

// flushSelectionChanged raises one SelectionChanged for everything changed
// since the last one.
func (g *Grid) flushSelectionChanged() {
	if !g.guard.selectionChanged || g.guard.counts[suspendSelection] > 0 {
		return
	}
	g.guard.selectionChanged = false
	g.events.selectionChanged.emit(SelectionChangedEvent{})
}

// setCellSelected adds or removes one cell from the bag. A cell already
// covered by a selected band is never added.
func (g *Grid) setCellSelected(a CellAddress, on bool) {
	_, in := g.selectedCells[a]
	if on == in {
		return
	}
	if on {
		if g.rows.State(a.Row).Has(StateSelected) || g.columns.items[a.Col].Selected() {
			return
		}
		g.selectedCells[a] = struct{}{}
	} else {
		delete(g.selectedCells, a)
	}
	g.invalidateCell(a.Col, a.Row)
	g.markSelectionChanged()
}

// setRowSelected changes a row band and drops bag cells it now covers.
func (g *Grid) setRowSelected(row int, on bool) {
	if g.rows.State(row).Has(StateSelected) == on {
		return
	}
	g.rows.setState(row, StateSelected, on)
	if on {
		for a := range g.selectedCells {
			if a.Row == row {
				delete(g.selectedCells, a)
			}
		}
	}
	g.invalidateRow(row)
	g.markSelectionChanged()
}

// setColumnSelected changes a column band and drops bag cells it now covers.
func (g *Grid) setColumnSelected(col int, on bool) {
	c := g.columns.items[col]
	if c.Selected() == on {
		return
	}
	g.columns.setState(c, StateSelected, on)
	if on {
		for a := range g.selectedCells {
			if a.Col == col {
				delete(g.selectedCells, a)
			}
		}
	}
	g.invalidateColumn(col)
	g.markSelectionChanged()
}

// clearSelection empties the bag and both band sets except keep, which may
// name a cell, a row (Col -1) or a column (Row -1).
func (g *Grid) clearSelection(keep CellAddress) {
	defer g.suspendSelection()()
	for a := range g.selectedCells {
		if a != keep {
			g.setCellSelected(a, false)
		}
	}
	for r := range g.rows.All(StateSelected, 0) {
		if !(keep.Col < 0 && keep.Row == r) {
			g.setRowSelected(r, false)
		}
	}
	for c := range g.columns.All(StateSelected, 0) {
		if !(keep.Row < 0 && keep.Col == c) {
			g.setColumnSelected(c, false)
		}
	}
}

// --- Public selection surface -------------------------------------------------

// ClearSelection deselects everything. SelectionChanged fires once, and only
// if something was selected.
func (g *Grid) ClearSelection() {
	g.clearSelection(NoCell)
}

// ClearSelectionExcept deselects everything but one element: a cell when both
// indices are set, a row when col is -1, a column when row is -1.
func (g *Grid) ClearSelectionExcept(col, row int) error {
	if col < -1 || col >= g.columns.Len() {
		return outOfRange("column index", col, g.columns.Len())
	}
	if row < -1 || row >= g.rows.Len() {
		return outOfRange("row index", row, g.rows.Len())
	}
	g.clearSelection(CellAddress{Col: col, Row: row})
	return nil
}

// IsCellSelected reports whether a cell is selected on its own or through a band.
func (g *Grid) IsCellSelected(col, row int) bool {
	if col < 0 || col >= g.columns.Len() || row < 0 || row >= g.rows.Len() {
		return false
	}
	if _, ok := g.selectedCells[CellAddress{Col: col, Row: row}]; ok {
		return true
	}
	return g.rows.State(row).Has(StateSelected) || g.columns.items[col].Selected()
}

// IsCellVisible reports whether both bands of a cell are visible.
func (g *Grid) IsCellVisible(col, row int) bool {
	c := g.columns.At(col)
	return c != nil && c.Visible() && g.rows.State(row).Has(StateVisible)
}

// SelectCell selects or deselects one cell. In full-row and full-column modes
// the whole band follows. Deselecting a cell covered by a selected band
// breaks the band into individually selected cells.
func (g *Grid) SelectCell(col, row int, on bool) error {
	if err := g.checkCellAddress(col, row); err != nil {
		return err
	}
	if on && !g.IsCellVisible(col, row) {
		return fmt.Errorf("%w: cell (%d,%d) is hidden", ErrInvalidOperation, col, row)
	}
	defer g.suspendSelection()()
	a := CellAddress{Col: col, Row: row}
	switch {
	case g.selectionMode.selectsRows():
		return g.SelectRow(row, on)
	case g.selectionMode.selectsColumns():
		return g.SelectColumn(col, on)
	case on:
		if !g.multiSelect {
			g.clearSelection(NoCell)
		}
		g.setCellSelected(a, true)
	default:
		if g.rows.State(row).Has(StateSelected) {
			g.setRowSelected(row, false)
			for c := range g.columns.All(StateVisible, 0) {
				if c != col {
					g.setCellSelected(CellAddress{Col: c, Row: row}, true)
				}
			}
		}
		if g.columns.items[col].Selected() {
			g.setColumnSelected(col, false)
			for r := range g.rows.All(StateVisible, 0) {
				if r != row {
					g.setCellSelected(CellAddress{Col: col, Row: r}, true)
				}
			}
		}
		g.setCellSelected(a, false)
	}
	return nil
}

// SelectRow selects or deselects a row. In cell mode its visible cells are
// selected one by one; column-band modes reject it.
func (g *Grid) SelectRow(row int, on bool) error {
	if row < 0 || row >= g.rows.Len() {
		return outOfRange("row index", row, g.rows.Len())
	}
	if on && !g.rows.State(row).Has(StateVisible) {
		return fmt.Errorf("%w: row %d is hidden", ErrInvalidOperation, row)
	}
	defer g.suspendSelection()()
	switch m := g.selectionMode; {
	case m.rowBands():
		if on && !g.multiSelect {
			g.clearSelection(NoCell)
		}
		g.setRowSelected(row, on)
	case m == CellSelect:
		if on && !g.multiSelect {
			return fmt.Errorf("%w: selecting a row needs multi-select in %s", ErrInvalidOperation, m)
		}
		for c := range g.columns.All(StateVisible, 0) {
			g.setCellSelected(CellAddress{Col: c, Row: row}, on)
		}
	default:
		return fmt.Errorf("%w: rows cannot be selected in %s", ErrInvalidOperation, m)
	}
	return nil
}

// SelectColumn selects or deselects a column. In cell mode its visible cells
// are selected one by one; row-band modes reject it.
func (g *Grid) SelectColumn(col int, on bool) error {
	c := g.columns.At(col)
	if c == nil {
		return outOfRange("column index", col, g.columns.Len())
	}
	if on && !c.Visible() {
		return fmt.Errorf("%w: column %d is hidden", ErrInvalidOperation, col)
	}
	defer g.suspendSelection()()
	switch m := g.selectionMode; {
	case m.columnBands():
		if on && !g.multiSelect {
			g.clearSelection(NoCell)
		}
		g.setColumnSelected(col, on)
	case m == CellSelect:
		if on && !g.multiSelect {
			return fmt.Errorf("%w: selecting a column needs multi-select in %s", ErrInvalidOperation, m)
		}
		for r := range g.rows.All(StateVisible, 0) {
			g.setCellSelected(CellAddress{Col: col, Row: r}, on)
		}
	default:
		return fmt.Errorf("%w: columns cannot be selected in %s", ErrInvalidOperation, m)
	}
	return nil
}

// SelectAll selects every visible element the selection mode allows.
func (g *Grid) SelectAll() error {
	if !g.multiSelect {
		return fmt.Errorf("%w: select all without multi-select", ErrInvalidOperation)
	}
	defer g.suspendSelection()()
	switch m := g.selectionMode; {
	case m.rowBands():
		for r := range g.rows.All(StateVisible, 0) {
			g.setRowSelected(r, true)
		}
	case m.columnBands():
		for c := range g.columns.All(StateVisible, 0) {
			g.setColumnSelected(c, true)
		}
	default:
		cols := slices.Collect(g.columns.All(StateVisible, 0))
		for r := range g.rows.All(StateVisible, 0) {
			for _, c := range cols {
				g.setCellSelected(CellAddress{Col: c, Row: r}, true)
			}
		}
	}
	return nil
}

// SelectedRows returns the selected row bands in index order.
func (g *Grid) SelectedRows() []int {
	return slices.Collect(g.rows.All(StateSelected, 0))
}

// SelectedColumns returns the selected column bands in display order.
func (g *Grid) SelectedColumns() []int {
	return slices.Collect(g.columns.All(StateSelected, 0))
}

// SelectedCells returns every selected cell exactly once: cells of selected
// rows, then of selected columns not already listed, then individually
// selected cells ordered by row and column. Band cells include hidden columns
// and rows.
func (g *Grid) SelectedCells() []CellAddress {
	var out []CellAddress
	rows := g.SelectedRows()
	for _, r := range rows {
		for c := range g.columns.items {
			out = append(out, CellAddress{Col: c, Row: r})
		}
	}
	for _, c := range g.SelectedColumns() {
		for r := range g.rows.entries {
			if !g.rows.entries[r].state.Has(StateSelected) {
				out = append(out, CellAddress{Col: c, Row: r})
			}
		}
	}
	bag := slices.SortedFunc(maps.Keys(g.selectedCells), func(a, b CellAddress) int {
		return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
	})
	for _, a := range bag {
		if g.rows.State(a.Row).Has(StateSelected) || g.columns.items[a.Col].Selected() {
			g.invariant("selected cell also covered by a band", "cell", a)
			continue
		}
		out = append(out, a)
	}
	return out
}

// SelectedCellCount returns len(SelectedCells()) without building it.
func (g *Grid) SelectedCellCount() int {
	nr := g.rows.Count(StateSelected, 0)
	nc := g.columns.Count(StateSelected, 0)
	return nr*g.columns.Len() + nc*(g.rows.Len()-nr) + len(g.selectedCells)
}

// SetSelectionMode changes what selection gestures select. The selection is
// cleared and the current cell selected again under the new mode. Column-band
// modes are rejected while a column sorts automatically.
func (g *Grid) SetSelectionMode(m SelectionMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: selection mode %d", ErrInvalidArgument, m)
	}
	if m == g.selectionMode {
		return nil
	}
	if m.columnBands() {
		for _, c := range g.columns.items {
			if c.sortMode == SortAutomatic {
				return fmt.Errorf("%w: column %q sorts automatically", ErrInvalidOperation, c.name)
			}
		}
	}
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextCommit, false); err != nil {
			return err
		}
	}
	defer g.suspendSelection()()
	g.clearSelection(NoCell)
	g.selectionMode = m
	if !g.current.IsNone() {
		g.selectForCurrent(g.current)
		g.anchor = g.current
	}
	return nil
}

// SetMultiSelect allows or forbids selecting more than one element. Turning it
// off keeps only the current cell's selection.
func (g *Grid) SetMultiSelect(on bool) {
	if on == g.multiSelect {
		return
	}
	g.multiSelect = on
	if on {
		return
	}
	defer g.suspendSelection()()
	g.clearSelection(NoCell)
	if !g.current.IsNone() {
		g.selectForCurrent(g.current)
		g.anchor = g.current
	}
}

// --- Structural bookkeeping ---------------------------------------------------

// shiftColumns remaps column references after delta columns were inserted
// (delta > 0) or removed (delta < 0) at identity index at.
func (g *Grid) shiftColumns(at, delta int) {
	remap := func(c int) (int, bool) {
		switch {
		case c < at:
			return c, true
		case delta < 0 && c < at-delta:
			return -1, false
		}
		return c + delta, true
	}
	g.selectedCells = remapCells(g.selectedCells, func(a CellAddress) (CellAddress, bool) {
		c, ok := remap(a.Col)
		return CellAddress{Col: c, Row: a.Row}, ok
	})
	g.readOnlyCells = remapCells(g.readOnlyCells, func(a CellAddress) (CellAddress, bool) {
		c, ok := remap(a.Col)
		return CellAddress{Col: c, Row: a.Row}, ok
	})
	if !g.current.IsNone() {
		if c, ok := remap(g.current.Col); ok {
			g.current.Col = c
			g.edit.cell.Col = c
		} else {
			g.resetCurrentCell()
		}
	}
	if !g.anchor.IsNone() {
		if c, ok := remap(g.anchor.Col); ok {
			g.anchor.Col = c
		} else {
			g.anchor = g.current
		}
	}
	if g.sort.column >= 0 {
		if c, ok := remap(g.sort.column); ok {
			g.sort.column = c
		} else {
			g.sort.column, g.sort.order = -1, SortNone
		}
	}
}

// shiftRows remaps row references after delta rows were inserted (delta > 0)
// or removed (delta < 0) at index at.
func (g *Grid) shiftRows(at, delta int) {
	remap := func(r int) (int, bool) {
		switch {
		case r < at:
			return r, true
		case delta < 0 && r < at-delta:
			return -1, false
		}
		return r + delta, true
	}
	before := len(g.selectedCells)
	g.selectedCells = remapCells(g.selectedCells, func(a CellAddress) (CellAddress, bool) {
		r, ok := remap(a.Row)
		return CellAddress{Col: a.Col, Row: r}, ok
	})
	g.readOnlyCells = remapCells(g.readOnlyCells, func(a CellAddress) (CellAddress, bool) {
		r, ok := remap(a.Row)
		return CellAddress{Col: a.Col, Row: r}, ok
	})
	if len(g.selectedCells) != before {
		g.markSelectionChanged()
	}
	if !g.current.IsNone() {
		if r, ok := remap(g.current.Row); ok {
			g.current.Row = r
			g.edit.cell.Row = r
		} else {
			g.resetCurrentCell()
		}
	}
	if !g.anchor.IsNone() {
		if r, ok := remap(g.anchor.Row); ok {
			g.anchor.Row = r
		} else {
			g.anchor = g.current
		}
	}
}

func remapCells(set map[CellAddress]struct{}, fn func(CellAddress) (CellAddress, bool)) map[CellAddress]struct{} {
	if len(set) == 0 {
		return set
	}
	out := make(map[CellAddress]struct{}, len(set))
	for a := range set {
		if b, ok := fn(a); ok {
			out[b] = struct{}{}
		}
	}
	return out
}

// dropRowsFrom forgets references to rows at or after n.
func (g *Grid) dropRowsFrom(n int) {
	g.shiftRows(n, -(1 << 30))
}

// clearRowSelectionState forgets every row-bound reference after all rows
// were removed.
func (g *Grid) clearRowSelectionState() {
	if len(g.selectedCells) > 0 {
		clear(g.selectedCells)
		g.markSelectionChanged()
	}
	clear(g.readOnlyCells)
}

// deselectRowCells drops a hidden row from the selection.
func (g *Grid) deselectRowCells(row int) {
	defer g.suspendSelection()()
	g.setRowSelected(row, false)
	for a := range g.selectedCells {
		if a.Row == row {
			g.setCellSelected(a, false)
		}
	}
}

// deselectColumnCells drops a hidden column from the selection.
func (g *Grid) deselectColumnCells(col int) {
	defer g.suspendSelection()()
	g.setColumnSelected(col, false)
	for a := range g.selectedCells {
		if a.Col == col {
			g.setCellSelected(a, false)
		}
	}
}

// moveCurrentOffColumn moves the current cell to a neighbour of col before
// col is hidden or removed.
func (g *Grid) moveCurrentOffColumn(col int) error {
	next := g.columns.Next(col, StateVisible, 0)
	if next < 0 {
		next = g.columns.Prev(col, StateVisible, 0)
	}
	if next < 0 {
		return g.SetCurrentCell(-1, -1)
	}
	return g.SetCurrentCell(next, g.current.Row)
}

// moveCurrentOffRow moves the current cell to a neighbour of row before row
// is hidden or removed.
func (g *Grid) moveCurrentOffRow(row int) error {
	next := g.rows.Next(row, StateVisible, 0)
	if next < 0 {
		next = g.rows.Prev(row, StateVisible, 0)
	}
	if next < 0 {
		return g.SetCurrentCell(-1, -1)
	}
	return g.SetCurrentCell(g.current.Col, next)
}

// resetCurrentCell drops the current cell without committing. Used when its
// band vanished underneath it.
func (g *Grid) resetCurrentCell() {
	if g.current.IsNone() {
		return
	}
	if g.edit.state != NotEditing {
		g.abandonEdit()
	}
	old := g.current
	g.current, g.anchor = NoCell, NoCell
	g.events.currentCellChanged.emit(CurrentCellChangedEvent{Old: old, New: NoCell})
}
