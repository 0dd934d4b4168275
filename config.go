package datagrid

import (
	"fmt"
	"log/slog"
)

// SelectionMode decides which of cells, row bands and column bands selection
// gestures populate.
type SelectionMode uint8

const (
	CellSelect SelectionMode = iota
	FullRowSelect
	FullColumnSelect
	RowHeaderSelect
	ColumnHeaderSelect
)

// Valid reports whether m is a known mode.
func (m SelectionMode) Valid() bool { return m <= ColumnHeaderSelect }

func (m SelectionMode) String() string {
	switch m {
	case CellSelect:
		return "CellSelect"
	case FullRowSelect:
		return "FullRowSelect"
	case FullColumnSelect:
		return "FullColumnSelect"
	case RowHeaderSelect:
		return "RowHeaderSelect"
	case ColumnHeaderSelect:
		return "ColumnHeaderSelect"
	}
	return fmt.Sprintf("SelectionMode(%d)", uint8(m))
}

// selectsRows reports whether current-cell changes select whole rows.
func (m SelectionMode) selectsRows() bool { return m == FullRowSelect }

// selectsColumns reports whether current-cell changes select whole columns.
func (m SelectionMode) selectsColumns() bool { return m == FullColumnSelect }

// rowBands reports whether rows can be selected as bands in this mode.
func (m SelectionMode) rowBands() bool { return m == FullRowSelect || m == RowHeaderSelect }

// columnBands reports whether columns can be selected as bands in this mode.
func (m SelectionMode) columnBands() bool { return m == FullColumnSelect || m == ColumnHeaderSelect }

// EditMode decides which gestures start an edit.
type EditMode uint8

const (
	EditOnKeystrokeOrF2 EditMode = iota
	EditOnEnter
	EditOnKeystroke
	EditOnF2
	EditProgrammatically
)

// Valid reports whether m is a known mode.
func (m EditMode) Valid() bool { return m <= EditProgrammatically }

func (m EditMode) String() string {
	switch m {
	case EditOnKeystrokeOrF2:
		return "EditOnKeystrokeOrF2"
	case EditOnEnter:
		return "EditOnEnter"
	case EditOnKeystroke:
		return "EditOnKeystroke"
	case EditOnF2:
		return "EditOnF2"
	case EditProgrammatically:
		return "EditProgrammatically"
	}
	return fmt.Sprintf("EditMode(%d)", uint8(m))
}

func (m EditMode) onKeystroke() bool {
	return m == EditOnKeystroke || m == EditOnKeystrokeOrF2 || m == EditOnEnter
}

func (m EditMode) onF2() bool {
	return m == EditOnF2 || m == EditOnKeystrokeOrF2 || m == EditOnEnter
}

// ScrollBars selects which scroll bars may be shown.
type ScrollBars uint8

const (
	ScrollBarsNone ScrollBars = iota
	ScrollBarsHorizontal
	ScrollBarsVertical
	ScrollBarsBoth
)

// Valid reports whether s is a known policy.
func (s ScrollBars) Valid() bool { return s <= ScrollBarsBoth }

func (s ScrollBars) horizontal() bool { return s == ScrollBarsHorizontal || s == ScrollBarsBoth }
func (s ScrollBars) vertical() bool   { return s == ScrollBarsVertical || s == ScrollBarsBoth }

// AutoSizeColumnMode decides how a column width is computed.
type AutoSizeColumnMode uint8

const (
	AutoSizeColumnNotSet AutoSizeColumnMode = iota // Inherit the grid-wide mode
	AutoSizeColumnNone
	AutoSizeColumnColumnHeader
	AutoSizeColumnAllCellsExceptHeader
	AutoSizeColumnAllCells
	AutoSizeColumnDisplayedCellsExceptHeader
	AutoSizeColumnDisplayedCells
	AutoSizeColumnFill
)

// Valid reports whether m is a known mode.
func (m AutoSizeColumnMode) Valid() bool { return m <= AutoSizeColumnFill }

// usesHeader reports whether the header cell contributes to the width.
func (m AutoSizeColumnMode) usesHeader() bool {
	return m == AutoSizeColumnColumnHeader || m == AutoSizeColumnAllCells || m == AutoSizeColumnDisplayedCells
}

// usesCells reports whether data cells contribute to the width.
func (m AutoSizeColumnMode) usesCells() bool {
	switch m {
	case AutoSizeColumnAllCells, AutoSizeColumnAllCellsExceptHeader,
		AutoSizeColumnDisplayedCells, AutoSizeColumnDisplayedCellsExceptHeader:
		return true
	}
	return false
}

func (m AutoSizeColumnMode) displayedOnly() bool {
	return m == AutoSizeColumnDisplayedCells || m == AutoSizeColumnDisplayedCellsExceptHeader
}

// AutoSizeRowsMode decides how row heights are computed.
type AutoSizeRowsMode uint8

const (
	AutoSizeRowsNone AutoSizeRowsMode = iota
	AutoSizeRowsAllCells
	AutoSizeRowsDisplayedCells
	AutoSizeRowsAllHeaders
	AutoSizeRowsDisplayedHeaders
	AutoSizeRowsAllCellsExceptHeaders
	AutoSizeRowsDisplayedCellsExceptHeaders
)

// Valid reports whether m is a known mode.
func (m AutoSizeRowsMode) Valid() bool { return m <= AutoSizeRowsDisplayedCellsExceptHeaders }

// usesHeader reports whether row header content contributes to the height.
func (m AutoSizeRowsMode) usesHeader() bool {
	switch m {
	case AutoSizeRowsAllCells, AutoSizeRowsDisplayedCells, AutoSizeRowsAllHeaders, AutoSizeRowsDisplayedHeaders:
		return true
	}
	return false
}

func (m AutoSizeRowsMode) usesCells() bool {
	return m != AutoSizeRowsNone && m != AutoSizeRowsAllHeaders && m != AutoSizeRowsDisplayedHeaders
}

func (m AutoSizeRowsMode) displayedOnly() bool {
	return m == AutoSizeRowsDisplayedCells || m == AutoSizeRowsDisplayedHeaders ||
		m == AutoSizeRowsDisplayedCellsExceptHeaders
}

// SortMode decides how a column reacts to header clicks.
type SortMode uint8

const (
	SortNotSortable SortMode = iota
	SortAutomatic
	SortProgrammatic
)

// Valid reports whether m is a known mode.
func (m SortMode) Valid() bool { return m <= SortProgrammatic }

// SortOrder is the direction of a sort.
type SortOrder uint8

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

// BorderStyle is the frame drawn around the client area.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderFixedSingle
	BorderFixed3D
)

// Valid reports whether b is a known style.
func (b BorderStyle) Valid() bool { return b <= BorderFixed3D }

// thickness returns the border width in pixels.
func (b BorderStyle) thickness() int {
	switch b {
	case BorderFixedSingle:
		return 1
	case BorderFixed3D:
		return 2
	}
	return 0
}

// GridOption configures a Grid instance.
type GridOption func(*Grid)

// WithSelectionMode sets the initial selection mode. Invalid values are ignored.
func WithSelectionMode(m SelectionMode) GridOption {
	return func(g *Grid) {
		if m.Valid() {
			g.selectionMode = m
		}
	}
}

// WithEditMode sets the edit trigger policy.
func WithEditMode(m EditMode) GridOption {
	return func(g *Grid) {
		if m.Valid() {
			g.editMode = m
		}
	}
}

// WithScrollBars sets the scroll bar policy.
func WithScrollBars(s ScrollBars) GridOption {
	return func(g *Grid) {
		if s.Valid() {
			g.scrollBars = s
		}
	}
}

// WithAutoSizeColumnsMode sets the grid-wide column auto-size mode.
func WithAutoSizeColumnsMode(m AutoSizeColumnMode) GridOption {
	return func(g *Grid) {
		if m.Valid() && m != AutoSizeColumnNotSet {
			g.autoSizeColumnsMode = m
		}
	}
}

// WithAutoSizeRowsMode sets the row auto-size mode.
func WithAutoSizeRowsMode(m AutoSizeRowsMode) GridOption {
	return func(g *Grid) {
		if m.Valid() {
			g.autoSizeRowsMode = m
		}
	}
}

// WithMultiSelect enables or disables selecting more than one element.
func WithMultiSelect(on bool) GridOption {
	return func(g *Grid) { g.multiSelect = on }
}

// WithReadOnly makes every cell read-only.
func WithReadOnly(on bool) GridOption {
	return func(g *Grid) { g.readOnly = on }
}

// WithDataSource puts the grid in virtual mode backed by ds.
func WithDataSource(ds DataSource) GridOption {
	return func(g *Grid) { g.dataSource = ds }
}

// WithHost sets the collaborator used for invalidation and timers.
func WithHost(h Host) GridOption {
	return func(g *Grid) {
		if h != nil {
			g.host = h
		}
	}
}

// WithMeasurer sets the text measurer used by auto-sizing.
func WithMeasurer(m Measurer) GridOption {
	return func(g *Grid) {
		if m != nil {
			g.measurer = m
		}
	}
}

// WithTheme sets the grid theme.
func WithTheme(t Theme) GridOption {
	return func(g *Grid) { g.theme = t }
}

// WithLogger replaces the package logger for this grid.
func WithLogger(l *slog.Logger) GridOption {
	return func(g *Grid) {
		if l != nil {
			g.log = l
		}
	}
}

// WithRightToLeft mirrors the layout horizontally.
func WithRightToLeft(on bool) GridOption {
	return func(g *Grid) { g.rightToLeft = on }
}

// WithEditor replaces the built-in text editor.
func WithEditor(e Editor) GridOption {
	return func(g *Grid) {
		if e != nil {
			g.editor = e
		}
	}
}

// WithBounds sets the initial client bounds.
func WithBounds(r Rect) GridOption {
	return func(g *Grid) { g.bounds = r }
}
