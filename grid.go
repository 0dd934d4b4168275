package datagrid

import (
	"fmt"
	"log/slog"
	"time"
)

// Header defaults, in pixels at 96 DPI.
const (
	DefaultRowHeadersWidth     = 41
	DefaultColumnHeadersHeight = 23
	MinimumRowHeadersWidth     = 4
	MinimumColumnHeadersHeight = 4
	DefaultDPI                 = 96
)

// Host is the native surface the grid lives on.
type Host interface {
	// Invalidate asks for r to be repainted.
	Invalidate(r Rect)
	// ScheduleTimer calls fn after d on the UI thread. The returned func cancels it.
	ScheduleTimer(d time.Duration, fn func()) (cancel func())
}

// nopHost is used until a real host is attached.
type nopHost struct{}

func (nopHost) Invalidate(Rect)                            {}
func (nopHost) ScheduleTimer(time.Duration, func()) func() { return func() {} }

// headerFlags groups header visibility and sizes.
type headerFlags struct {
	columnHeadersVisible bool
	rowHeadersVisible    bool
	columnHeadersHeight  int
	rowHeadersWidth      int
}

// Grid is the layout-state engine of a grid widget. It is not safe for
// concurrent use; all calls must come from the UI goroutine.
type Grid struct {
	log      *slog.Logger
	host     Host
	measurer Measurer
	editor   Editor
	theme    Theme

	columns     *ColumnCollection
	rows        *RowCollection
	rowTemplate *Row
	dataSource  DataSource

	// Configuration
	selectionMode       SelectionMode
	editMode            EditMode
	scrollBars          ScrollBars
	autoSizeColumnsMode AutoSizeColumnMode
	autoSizeRowsMode    AutoSizeRowsMode
	borderStyle         BorderStyle
	multiSelect         bool
	readOnly            bool
	rightToLeft         bool
	dpi                 int
	headers             headerFlags

	defaultCellStyle     CellStyle
	alternatingRowsStyle CellStyle

	bounds Rect
	layout LayoutInfo
	vp     viewportState

	// Selection
	current       CellAddress
	anchor        CellAddress
	selectedCells map[CellAddress]struct{} // Cells selected one by one; bands use state bits
	readOnlyCells map[CellAddress]struct{}

	edit editSession
	sort struct {
		column int
		order  SortOrder
	}

	guard   layoutGuard
	gesture gestureState
	events  events
}

// NewGrid creates an empty grid.
func NewGrid(opts ...GridOption) *Grid {
	g := &Grid{
		log:                 gridLogger,
		host:                nopHost{},
		measurer:            FixedMeasurer{},
		theme:               DefaultTheme(),
		selectionMode:       RowHeaderSelect,
		editMode:            EditOnKeystrokeOrF2,
		scrollBars:          ScrollBarsBoth,
		autoSizeColumnsMode: AutoSizeColumnNone,
		multiSelect:         true,
		dpi:                 DefaultDPI,
		headers: headerFlags{
			columnHeadersVisible: true,
			rowHeadersVisible:    true,
			columnHeadersHeight:  DefaultColumnHeadersHeight,
			rowHeadersWidth:      DefaultRowHeadersWidth,
		},
		current:       NoCell,
		anchor:        NoCell,
		selectedCells: make(map[CellAddress]struct{}),
		readOnlyCells: make(map[CellAddress]struct{}),
	}
	g.sort.column = -1
	g.columns = newColumnCollection(g)
	g.rows = newRowCollection(g)
	g.rowTemplate = newRow(g, 0)
	g.vp.reset()

	for _, opt := range opts {
		opt(g)
	}
	if g.editor == nil {
		g.editor = NewTextEditor()
	}
	g.defaultCellStyle = g.theme.CellStyle
	g.alternatingRowsStyle = g.theme.AlternatingRowsStyle
	if g.dataSource != nil {
		ds := g.dataSource
		g.dataSource = nil
		if err := g.SetDataSource(ds); err != nil {
			g.log.Warn("data source rejected", "err", err)
		}
	}
	g.PerformLayout()
	return g
}

// Columns returns the column collection.
func (g *Grid) Columns() *ColumnCollection { return g.columns }

// Rows returns the row collection.
func (g *Grid) Rows() *RowCollection { return g.rows }

// RowTemplate returns the row new shared rows are copied from. Changing its
// height or default style affects rows added afterwards.
func (g *Grid) RowTemplate() *Row { return g.rowTemplate }

// Theme returns the grid theme.
func (g *Grid) Theme() Theme { return g.theme }

// SetTheme changes the theme and repaints.
func (g *Grid) SetTheme(t Theme) {
	g.theme = t
	g.defaultCellStyle = t.CellStyle
	g.alternatingRowsStyle = t.AlternatingRowsStyle
	g.requestLayout(layoutOptions{})
}

// DefaultCellStyle returns the grid-wide default cell style.
func (g *Grid) DefaultCellStyle() CellStyle { return g.defaultCellStyle }

// SetDefaultCellStyle changes the grid-wide default cell style.
func (g *Grid) SetDefaultCellStyle(s CellStyle) {
	g.defaultCellStyle = s
	g.host.Invalidate(g.layout.Data)
}

// AlternatingRowsStyle returns the style layered under odd rows.
func (g *Grid) AlternatingRowsStyle() CellStyle { return g.alternatingRowsStyle }

// SetAlternatingRowsStyle changes the style layered under odd rows.
func (g *Grid) SetAlternatingRowsStyle(s CellStyle) {
	g.alternatingRowsStyle = s
	g.host.Invalidate(g.layout.Data)
}

// SetHost attaches the native surface.
func (g *Grid) SetHost(h Host) {
	if h == nil {
		h = nopHost{}
	}
	g.host = h
}

// SetMeasurer replaces the text measurer.
func (g *Grid) SetMeasurer(m Measurer) {
	if m == nil {
		m = FixedMeasurer{}
	}
	g.measurer = m
	g.requestLayout(layoutOptions{autoSize: true})
}

// --- Configuration surface ---------------------------------------------------------

// SelectionMode returns the selection mode.
func (g *Grid) SelectionMode() SelectionMode { return g.selectionMode }

// EditMode returns the edit trigger policy.
func (g *Grid) EditMode() EditMode { return g.editMode }

// SetEditMode changes the edit trigger policy.
func (g *Grid) SetEditMode(m EditMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: edit mode %d", ErrInvalidArgument, m)
	}
	g.editMode = m
	return nil
}

// MultiSelect reports whether more than one element can be selected.
func (g *Grid) MultiSelect() bool { return g.multiSelect }

// ReadOnly reports whether the whole grid is read-only.
func (g *Grid) ReadOnly() bool { return g.readOnly }

// SetReadOnly makes the whole grid read-only, committing a pending edit first.
func (g *Grid) SetReadOnly(ro bool) error {
	if ro == g.readOnly {
		return nil
	}
	if ro && g.edit.state != NotEditing {
		if err := g.commitEdit(ContextCommit, false); err != nil {
			return err
		}
	}
	g.readOnly = ro
	return nil
}

// RightToLeft reports whether the layout is mirrored.
func (g *Grid) RightToLeft() bool { return g.rightToLeft }

// SetRightToLeft mirrors the layout.
func (g *Grid) SetRightToLeft(on bool) {
	if g.rightToLeft == on {
		return
	}
	g.rightToLeft = on
	g.requestLayout(layoutOptions{repositionEditor: true})
}

// ScrollBars returns the scroll bar policy.
func (g *Grid) ScrollBars() ScrollBars { return g.scrollBars }

// SetScrollBars changes the scroll bar policy. A pending edit is committed
// first because the data area may change size.
func (g *Grid) SetScrollBars(s ScrollBars) error {
	if !s.Valid() {
		return fmt.Errorf("%w: scroll bars %d", ErrInvalidArgument, s)
	}
	if s == g.scrollBars {
		return nil
	}
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextCommit|ContextScroll, true); err != nil {
			return err
		}
	}
	g.scrollBars = s
	g.requestLayout(layoutOptions{computeVisibleRows: true, invalidateFillColumns: true, repositionEditor: true})
	return nil
}

// BorderStyle returns the frame style.
func (g *Grid) BorderStyle() BorderStyle { return g.borderStyle }

// SetBorderStyle changes the frame style.
func (g *Grid) SetBorderStyle(b BorderStyle) error {
	if !b.Valid() {
		return fmt.Errorf("%w: border style %d", ErrInvalidArgument, b)
	}
	if b == g.borderStyle {
		return nil
	}
	g.borderStyle = b
	g.requestLayout(layoutOptions{computeVisibleRows: true, invalidateFillColumns: true, repositionEditor: true})
	return nil
}

// AutoSizeColumnsMode returns the grid-wide column auto-size mode.
func (g *Grid) AutoSizeColumnsMode() AutoSizeColumnMode { return g.autoSizeColumnsMode }

// SetAutoSizeColumnsMode changes the grid-wide column auto-size mode. Columns
// with their own mode are unaffected.
func (g *Grid) SetAutoSizeColumnsMode(m AutoSizeColumnMode) error {
	if !m.Valid() || m == AutoSizeColumnNotSet {
		return fmt.Errorf("%w: auto-size columns mode %d", ErrInvalidArgument, m)
	}
	for _, c := range g.columns.items {
		if c.autoSizeMode != AutoSizeColumnNotSet || !c.Visible() {
			continue
		}
		if m == AutoSizeColumnColumnHeader && !g.headers.columnHeadersVisible {
			return fmt.Errorf("%w: column headers are hidden", ErrInvalidOperation)
		}
		if m == AutoSizeColumnFill && c.Frozen() {
			return fmt.Errorf("%w: frozen column %q cannot fill", ErrInvalidOperation, c.name)
		}
	}
	g.autoSizeColumnsMode = m
	g.columns.usedFillWeightsDirty = true
	g.requestLayout(layoutOptions{invalidateFillColumns: true, autoSize: true})
	return nil
}

// AutoSizeRowsMode returns the row auto-size mode.
func (g *Grid) AutoSizeRowsMode() AutoSizeRowsMode { return g.autoSizeRowsMode }

// SetAutoSizeRowsMode changes the row auto-size mode. Header-based modes need
// visible row headers.
func (g *Grid) SetAutoSizeRowsMode(m AutoSizeRowsMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: auto-size rows mode %d", ErrInvalidArgument, m)
	}
	if (m == AutoSizeRowsAllHeaders || m == AutoSizeRowsDisplayedHeaders) && !g.headers.rowHeadersVisible {
		return fmt.Errorf("%w: row headers are hidden", ErrInvalidOperation)
	}
	g.autoSizeRowsMode = m
	g.requestLayout(layoutOptions{autoSize: true})
	return nil
}

// ColumnHeadersVisible reports whether the column header band is shown.
func (g *Grid) ColumnHeadersVisible() bool { return g.headers.columnHeadersVisible }

// SetColumnHeadersVisible shows or hides the column headers. Hiding them is
// rejected while a visible column auto-sizes to its header.
func (g *Grid) SetColumnHeadersVisible(v bool) error {
	if v == g.headers.columnHeadersVisible {
		return nil
	}
	if !v {
		for _, c := range g.columns.items {
			if c.Visible() && c.InheritedAutoSizeMode() == AutoSizeColumnColumnHeader {
				return fmt.Errorf("%w: column %q auto-sizes to its header", ErrInvalidOperation, c.name)
			}
		}
	}
	g.headers.columnHeadersVisible = v
	g.requestLayout(layoutOptions{computeVisibleRows: true, repositionEditor: true})
	return nil
}

// RowHeadersVisible reports whether the row header band is shown.
func (g *Grid) RowHeadersVisible() bool { return g.headers.rowHeadersVisible }

// SetRowHeadersVisible shows or hides the row headers. Hiding them is rejected
// while rows auto-size to their headers only.
func (g *Grid) SetRowHeadersVisible(v bool) error {
	if v == g.headers.rowHeadersVisible {
		return nil
	}
	if !v && (g.autoSizeRowsMode == AutoSizeRowsAllHeaders || g.autoSizeRowsMode == AutoSizeRowsDisplayedHeaders) {
		return fmt.Errorf("%w: rows auto-size to their headers", ErrInvalidOperation)
	}
	g.headers.rowHeadersVisible = v
	g.requestLayout(layoutOptions{invalidateFillColumns: true, repositionEditor: true})
	return nil
}

// ColumnHeadersHeight returns the column header band height.
func (g *Grid) ColumnHeadersHeight() int { return g.headers.columnHeadersHeight }

// SetColumnHeadersHeight changes the column header band height.
func (g *Grid) SetColumnHeadersHeight(h int) error {
	if h < MinimumColumnHeadersHeight {
		return fmt.Errorf("%w: column headers height %d below %d", ErrInvalidArgument, h, MinimumColumnHeadersHeight)
	}
	g.headers.columnHeadersHeight = h
	g.requestLayout(layoutOptions{computeVisibleRows: true, repositionEditor: true})
	return nil
}

// RowHeadersWidth returns the row header band width.
func (g *Grid) RowHeadersWidth() int { return g.headers.rowHeadersWidth }

// SetRowHeadersWidth changes the row header band width.
func (g *Grid) SetRowHeadersWidth(w int) error {
	if w < MinimumRowHeadersWidth {
		return fmt.Errorf("%w: row headers width %d below %d", ErrInvalidArgument, w, MinimumRowHeadersWidth)
	}
	g.headers.rowHeadersWidth = w
	g.requestLayout(layoutOptions{invalidateFillColumns: true, repositionEditor: true})
	return nil
}

// DPI returns the logical DPI used to scale default sizes.
func (g *Grid) DPI() int { return g.dpi }

// SetDPI rescales header sizes, row heights and column widths from the
// current DPI to dpi.
func (g *Grid) SetDPI(dpi int) error {
	if dpi <= 0 {
		return fmt.Errorf("%w: dpi %d", ErrInvalidArgument, dpi)
	}
	if dpi == g.dpi {
		return nil
	}
	scale := func(v int) int { return v * dpi / g.dpi }
	defer g.suspend(suspendLayout)()
	g.headers.columnHeadersHeight = max(scale(g.headers.columnHeadersHeight), MinimumColumnHeadersHeight)
	g.headers.rowHeadersWidth = max(scale(g.headers.rowHeadersWidth), MinimumRowHeadersWidth)
	for _, c := range g.columns.items {
		c.width = max(scale(c.width), c.minWidth)
	}
	g.rows.instances(func(r *Row) {
		r.height = max(scale(r.height), r.minHeight)
	})
	g.columns.invalidate()
	g.rows.invalidate()
	g.dpi = dpi
	g.requestLayout(layoutOptions{computeVisibleRows: true, invalidateFillColumns: true, repositionEditor: true, autoSize: true})
	return nil
}

// Bounds returns the client bounds.
func (g *Grid) Bounds() Rect { return g.bounds }

// SetBounds changes the client bounds and lays out again.
func (g *Grid) SetBounds(r Rect) error {
	if r.W < 0 || r.H < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidArgument, r.W, r.H)
	}
	if r == g.bounds {
		return nil
	}
	g.bounds = r
	g.requestLayout(layoutOptions{computeVisibleRows: true, invalidateFillColumns: true, repositionEditor: true, autoSize: true})
	return nil
}

// --- Band change notifications --------------------------------------------------

func (g *Grid) onColumnHeaderChanged(c *Column) {
	if c.InheritedAutoSizeMode().usesHeader() {
		g.requestLayout(layoutOptions{autoSize: true})
		return
	}
	g.invalidateColumn(c.index)
}

func (g *Grid) onColumnWidthChanged(c *Column) {
	g.columns.invalidate()
	if g.guard.counts[suspendDimension] > 0 {
		return
	}
	g.requestLayout(layoutOptions{repositionEditor: true})
}

func (g *Grid) onRowHeightChanged(row int) {
	g.rows.invalidate()
	if g.guard.counts[suspendDimension] > 0 {
		return
	}
	g.requestLayout(layoutOptions{repositionEditor: true})
}

// setColumnVisible hides or shows c, moving the current cell off a column
// that is being hidden.
func (g *Grid) setColumnVisible(c *Column, v bool) error {
	c.state = c.state.with(StateVisible, v)
	err := checkFrozenOrder(g.columns.display)
	c.state = c.state.with(StateVisible, !v)
	if err != nil {
		return err
	}
	if v {
		mode := c.InheritedAutoSizeMode()
		if mode == AutoSizeColumnColumnHeader && !g.headers.columnHeadersVisible {
			return fmt.Errorf("%w: column headers are hidden", ErrInvalidOperation)
		}
		if mode == AutoSizeColumnFill && c.Frozen() {
			return fmt.Errorf("%w: frozen column cannot fill", ErrInvalidOperation)
		}
	}
	if !v && g.current.Col == c.index {
		if err := g.moveCurrentOffColumn(c.index); err != nil {
			return err
		}
	}
	defer g.suspend(suspendLayout)()
	g.columns.setState(c, StateVisible, v)
	if !v {
		g.deselectColumnCells(c.index)
		c.state &^= StateDisplayed
	}
	g.columns.usedFillWeightsDirty = true
	g.requestLayout(layoutOptions{invalidateFillColumns: true, autoSize: true})
	return nil
}

// setColumnFrozen pins or unpins c.
func (g *Grid) setColumnFrozen(c *Column, f bool) error {
	c.state = c.state.with(StateFrozen, f)
	err := checkFrozenOrder(g.columns.display)
	if err == nil && f && c.Visible() && c.InheritedAutoSizeMode() == AutoSizeColumnFill {
		err = fmt.Errorf("%w: fill column cannot be frozen", ErrInvalidOperation)
	}
	c.state = c.state.with(StateFrozen, !f)
	if err != nil {
		return err
	}
	defer g.suspend(suspendLayout)()
	g.columns.setState(c, StateFrozen, f)
	g.requestLayout(layoutOptions{invalidateFillColumns: true})
	return nil
}

// --- Invalidation --------------------------------------------------------------

// invalidateCell repaints one cell if it is displayed.
func (g *Grid) invalidateCell(col, row int) {
	r := g.CellBounds(col, row).Intersect(g.layout.Data)
	if !r.Empty() {
		g.host.Invalidate(r)
	}
}

// invalidateColumn repaints a column, header included.
func (g *Grid) invalidateColumn(col int) {
	c := g.columns.At(col)
	if c == nil || !c.Displayed() {
		return
	}
	b := g.CellBounds(col, -1)
	b.H = g.layout.Data.Bottom() - b.Y
	g.host.Invalidate(b.Intersect(g.layout.Client))
}

// invalidateRow repaints a row, header included.
func (g *Grid) invalidateRow(row int) {
	if !g.rows.State(row).Has(StateDisplayed) {
		return
	}
	b := g.CellBounds(-1, row)
	b.W = g.layout.Client.Right() - b.X
	if g.rightToLeft {
		b.X, b.W = g.layout.Client.X, b.Right()-g.layout.Client.X
	}
	g.host.Invalidate(b.Intersect(g.layout.Client))
}

// Invalidate repaints the whole client area.
func (g *Grid) Invalidate() {
	g.host.Invalidate(g.layout.Client)
}
