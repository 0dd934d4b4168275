package datagrid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// EditState is the state of the in-place editing state machine.
type EditState uint8

const (
	NotEditing    EditState = iota
	Editing                 // Editor is live over the current cell
	CommitPending           // Value is being parsed, validated and pushed
)

func (s EditState) String() string {
	switch s {
	case Editing:
		return "Editing"
	case CommitPending:
		return "CommitPending"
	}
	return "NotEditing"
}

// editSession is the in-place edit of the current cell.
type editSession struct {
	state       EditState
	cell        CellAddress
	initialText string
	dirty       bool // Editor text differs from the committed value
	rowDirty    bool // A value was committed in the current row since it became current
}

// EditState returns the editing state.
func (g *Grid) EditState() EditState { return g.edit.state }

// IsEditing reports whether an edit is in progress.
func (g *Grid) IsEditing() bool { return g.edit.state != NotEditing }

// EditingCell returns the cell being edited, NoCell when not editing.
func (g *Grid) EditingCell() CellAddress {
	if g.edit.state == NotEditing {
		return NoCell
	}
	return g.edit.cell
}

// Editor returns the in-place editor.
func (g *Grid) Editor() Editor { return g.editor }

// IsCellReadOnly reports whether a cell refuses edits. The grid, row, column
// and cell flags are OR'd together. Unknown cells are read-only.
func (g *Grid) IsCellReadOnly(col, row int) bool {
	c := g.columns.At(col)
	if c == nil || row < 0 || row >= g.rows.Len() {
		return true
	}
	if g.readOnly || c.ReadOnly() || g.rows.State(row).Has(StateReadOnly) {
		return true
	}
	_, ok := g.readOnlyCells[CellAddress{Col: col, Row: row}]
	return ok
}

// SetCellReadOnly changes the read-only flag of one cell, committing an edit
// of that cell first.
func (g *Grid) SetCellReadOnly(col, row int, ro bool) error {
	if err := g.checkCellAddress(col, row); err != nil {
		return err
	}
	a := CellAddress{Col: col, Row: row}
	if ro && g.edit.state != NotEditing && g.edit.cell == a {
		if err := g.commitEdit(ContextCommit, false); err != nil {
			return err
		}
	}
	if ro {
		g.readOnlyCells[a] = struct{}{}
	} else {
		delete(g.readOnlyCells, a)
	}
	return nil
}

// BeginEdit starts editing the current cell. It works in every edit mode,
// including EditProgrammatically. selectAll selects the editor text.
func (g *Grid) BeginEdit(selectAll bool) error {
	return g.beginEdit(selectAll, true)
}

// beginEdit starts an edit. Gestures pass explicit false so that
// EditProgrammatically refuses them.
func (g *Grid) beginEdit(selectAll, explicit bool) error {
	if g.edit.state != NotEditing {
		return nil
	}
	a := g.current
	if a.IsNone() {
		return fmt.Errorf("%w: no current cell", ErrInvalidOperation)
	}
	if g.editMode == EditProgrammatically && !explicit {
		return fmt.Errorf("%w: edits start programmatically", ErrInvalidOperation)
	}
	if g.IsCellReadOnly(a.Col, a.Row) {
		return fmt.Errorf("%w: (%d,%d)", ErrReadOnly, a.Col, a.Row)
	}
	if g.columns.items[a.Col].cellType == CellCheckBox {
		return fmt.Errorf("%w: checkbox cells toggle instead of editing", ErrInvalidOperation)
	}
	ev := &CellBeginEditEvent{Cell: a}
	g.events.cellBeginEdit.emit(ev)
	if ev.Cancel {
		return fmt.Errorf("%w: edit cancelled", ErrInvalidOperation)
	}
	text := g.FormattedValue(a.Col, a.Row)
	g.edit = editSession{state: Editing, cell: a, initialText: text, rowDirty: g.edit.rowDirty}
	g.editor.Begin(text, selectAll)
	g.editor.SetBounds(g.CellDisplayBounds(a.Col, a.Row))
	g.invalidateCell(a.Col, a.Row)
	g.log.Debug("begin edit", "cell", a)
	return nil
}

// EndEdit commits the pending edit and closes the editor. When the value
// cannot be parsed, validated or stored, the edit stays active and an error
// wrapping ErrCommitFailed is returned, unless a DataError handler cleared
// Cancel. Without an edit it does nothing.
func (g *Grid) EndEdit() error {
	return g.commitEdit(ContextCommit, false)
}

// CommitEdit pushes the editor value like EndEdit but keeps the editor open.
func (g *Grid) CommitEdit() error {
	return g.commitEdit(ContextCommit, true)
}

// CancelEdit discards the editor text and closes the editor.
func (g *Grid) CancelEdit() error {
	if g.edit.state == NotEditing {
		return ErrNotEditing
	}
	g.abandonEdit()
	return nil
}

// IsCurrentCellDirty reports whether the editor holds uncommitted changes.
func (g *Grid) IsCurrentCellDirty() bool {
	return g.edit.state != NotEditing && g.edit.dirty
}

// IsCurrentRowDirty reports whether the current row has uncommitted or
// committed-but-unsaved changes. A data source decides for bound rows.
func (g *Grid) IsCurrentRowDirty() bool {
	if g.current.IsNone() {
		return false
	}
	if g.IsCurrentCellDirty() {
		return true
	}
	if g.dataSource != nil {
		return g.dataSource.IsRowDirty(g.current.Row)
	}
	return g.edit.rowDirty
}

// NotifyCurrentCellDirty marks the edit as changed or unchanged. Editors call
// it through the grid when their text changes.
func (g *Grid) NotifyCurrentCellDirty(dirty bool) error {
	if g.edit.state == NotEditing {
		return ErrNotEditing
	}
	g.edit.dirty = dirty
	return nil
}

// commitEdit parses, validates and pushes the editor text. ctx tells data
// error handlers why the commit happened. With keepEditing the editor stays
// open after a successful push.
func (g *Grid) commitEdit(ctx DataErrorContext, keepEditing bool) error {
	switch g.edit.state {
	case NotEditing:
		return nil
	case CommitPending:
		// A handler of this commit triggered another one.
		return fmt.Errorf("%w: commit already in progress", ErrCommitFailed)
	}
	a := g.edit.cell
	if !g.edit.dirty {
		if !keepEditing {
			g.closeEdit(false)
		}
		return nil
	}

	g.edit.state = CommitPending
	col := g.columns.At(a.Col)
	text := g.editor.Text()
	value, err := col.kind.Parse(text)
	if err != nil {
		return g.dataError(ctx|ContextParsing, a, err)
	}
	ev := &CellValidatingEvent{Cell: a, Text: text, Value: value}
	g.events.cellValidating.emit(ev)
	if ev.Cancel {
		g.edit.state = Editing
		return fmt.Errorf("%w: validation cancelled at (%d,%d)", ErrCommitFailed, a.Col, a.Row)
	}
	if err := col.checkItem(value, text); err != nil {
		return g.dataError(ctx, a, err)
	}
	if err := col.validate(value, text, a.Row); err != nil {
		return g.dataError(ctx, a, err)
	}
	if err := g.storeValue(a.Col, a.Row, value); err != nil {
		return g.dataError(ctx|ContextCommit, a, err)
	}

	g.edit.dirty = false
	g.edit.rowDirty = true
	g.log.Debug("edit committed", "cell", a, "value", value)
	if keepEditing {
		g.edit.state = Editing
		g.edit.initialText = g.FormattedValue(a.Col, a.Row)
		return nil
	}
	g.closeEdit(true)
	return nil
}

// dataError raises a DataError. By default the edit stays active and the
// failure is returned; a handler that clears Cancel abandons the edit
// instead and the caller proceeds.
func (g *Grid) dataError(ctx DataErrorContext, a CellAddress, err error) error {
	de := &DataError{Context: ctx, Cell: a, Err: err}
	ev := &DataErrorEvent{Err: de, Cancel: true}
	g.events.dataError.emit(ev)
	if g.edit.state == CommitPending {
		g.edit.state = Editing
	}
	if !ev.Cancel {
		g.log.Debug("data error dismissed", "err", de)
		if g.edit.state != NotEditing {
			g.abandonEdit()
		}
		return nil
	}
	g.log.Debug("data error", "err", de)
	return fmt.Errorf("%w: %w", ErrCommitFailed, de)
}

// abandonEdit closes the editor without pushing its text.
func (g *Grid) abandonEdit() {
	g.closeEdit(false)
}

func (g *Grid) closeEdit(committed bool) {
	a := g.edit.cell
	g.editor.End()
	g.edit.state = NotEditing
	g.edit.dirty = false
	g.edit.cell = NoCell
	g.edit.initialText = ""
	g.invalidateCell(a.Col, a.Row)
	g.events.cellEndEdit.emit(CellEndEditEvent{Cell: a, Committed: committed})
}

// editorChanged is called after the editor consumed input.
func (g *Grid) editorChanged() {
	if g.edit.state == NotEditing {
		return
	}
	g.edit.dirty = g.editor.Text() != g.edit.initialText
}

// ToggleCheckBox flips a checkbox cell and stores the new value. It runs the
// same validation as a committed edit but never opens the editor.
func (g *Grid) ToggleCheckBox(col, row int) error {
	if err := g.checkCellAddress(col, row); err != nil {
		return err
	}
	c := g.columns.items[col]
	if c.cellType != CellCheckBox {
		return fmt.Errorf("%w: column %q is not a checkbox column", ErrInvalidOperation, c.name)
	}
	if g.IsCellReadOnly(col, row) {
		return fmt.Errorf("%w: (%d,%d)", ErrReadOnly, col, row)
	}
	if err := g.commitEdit(ContextCommit, false); err != nil {
		return err
	}
	a := CellAddress{Col: col, Row: row}
	old, err := g.CellValue(col, row)
	if err != nil {
		return err
	}
	v := !checked(old)
	text := strconv.FormatBool(v)
	ev := &CellValidatingEvent{Cell: a, Text: text, Value: v}
	g.events.cellValidating.emit(ev)
	if ev.Cancel {
		return fmt.Errorf("%w: validation cancelled at (%d,%d)", ErrCommitFailed, col, row)
	}
	if err := c.validate(v, text, row); err != nil {
		return g.dataError(ContextCommit, a, err)
	}
	if err := g.storeValue(col, row, v); err != nil {
		return g.dataError(ContextCommit, a, err)
	}
	if row == g.current.Row {
		g.edit.rowDirty = true
	}
	g.log.Debug("checkbox toggled", "cell", a, "value", v)
	return nil
}

// toggleCurrentCheckBox is the Space and click gesture on a checkbox cell.
func (g *Grid) toggleCurrentCheckBox() bool {
	a := g.current
	if a.IsNone() || g.editMode == EditProgrammatically {
		return false
	}
	if g.columns.items[a.Col].cellType != CellCheckBox {
		return false
	}
	if err := g.ToggleCheckBox(a.Col, a.Row); err != nil {
		g.log.Debug("toggle checkbox", "cell", a, "err", err)
		return false
	}
	return true
}

// stepComboItem replaces the editor text of a combo box cell with the next
// (delta > 0) or previous item, wrapping at either end.
func (g *Grid) stepComboItem(delta int) bool {
	c := g.columns.items[g.edit.cell.Col]
	n := len(c.items)
	if c.cellType != CellComboBox || n == 0 {
		return false
	}
	i := slices.Index(c.items, strings.TrimSpace(g.editor.Text()))
	switch {
	case i < 0 && delta < 0:
		i = n - 1
	case i < 0:
		i = 0
	default:
		i = ((i+delta)%n + n) % n
	}
	g.editor.Begin(c.items[i], true)
	g.editorChanged()
	g.invalidateCell(g.edit.cell.Col, g.edit.cell.Row)
	return true
}
