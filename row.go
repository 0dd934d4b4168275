package datagrid

import "fmt"

// Row sizing defaults, in pixels at 96 DPI.
const (
	DefaultRowHeight = 22
	MinimumRowHeight = 3
	RowSizingHotZone = 5
)

// Row is a horizontal band. Rows handed out by the grid are always bound to
// one index. Internally a single instance may stand for many consecutive
// indices until one of them is customized; such shared instances report
// Index() == -1.
type Row struct {
	grid  *Grid
	index int

	height    int
	minHeight int

	cells        []*Cell
	defaultStyle CellStyle
	headerValue  any
	errorText    string
}

// newRow builds an unbound row with one empty cell per column.
func newRow(g *Grid, columns int) *Row {
	r := &Row{grid: g, index: -1, height: DefaultRowHeight, minHeight: MinimumRowHeight}
	r.cells = make([]*Cell, columns)
	for i := range r.cells {
		r.cells[i] = &Cell{row: r, col: i}
	}
	return r
}

// clone copies the row and its cells. The copy is unbound.
func (r *Row) clone() *Row {
	c := &Row{
		grid:         r.grid,
		index:        -1,
		height:       r.height,
		minHeight:    r.minHeight,
		defaultStyle: r.defaultStyle,
		headerValue:  r.headerValue,
		errorText:    r.errorText,
	}
	c.cells = make([]*Cell, len(r.cells))
	for i, cell := range r.cells {
		cp := *cell
		cp.row = c
		c.cells[i] = &cp
	}
	return c
}

// Index returns the logical row index, or -1 for a shared instance.
func (r *Row) Index() int { return r.index }

// Cells returns the row's cells in column identity order.
func (r *Row) Cells() []*Cell { return r.cells }

// Cell returns the cell in column col, or nil.
func (r *Row) Cell(col int) *Cell {
	if col < 0 || col >= len(r.cells) {
		return nil
	}
	return r.cells[col]
}

// Height returns the row height in pixels.
func (r *Row) Height() int { return r.height }

// SetHeight changes the height.
func (r *Row) SetHeight(h int) error {
	if h < r.minHeight {
		return fmt.Errorf("%w: height %d below minimum %d", ErrInvalidArgument, h, r.minHeight)
	}
	r.setHeight(h)
	return nil
}

func (r *Row) setHeight(h int) {
	if r.height == h {
		return
	}
	r.height = h
	if r.grid != nil && r.index >= 0 {
		r.grid.onRowHeightChanged(r.index)
	}
}

// MinimumHeight returns the lower height bound.
func (r *Row) MinimumHeight() int { return r.minHeight }

// SetMinimumHeight changes the lower bound, growing the row if needed.
func (r *Row) SetMinimumHeight(h int) error {
	if h < MinimumRowHeight {
		return fmt.Errorf("%w: minimum height %d below %d", ErrInvalidArgument, h, MinimumRowHeight)
	}
	r.minHeight = h
	if r.height < h {
		r.setHeight(h)
	}
	return nil
}

// State returns the state bits stored for the row's index.
func (r *Row) State() ElementState {
	if r.grid == nil || r.index < 0 {
		return StateNone
	}
	return r.grid.rows.State(r.index)
}

// Visible reports whether the row takes part in layout.
func (r *Row) Visible() bool { return r.State().Has(StateVisible) }

// Frozen reports whether the row is pinned at the top.
func (r *Row) Frozen() bool { return r.State().Has(StateFrozen) }

// ReadOnly reports whether the row's cells are read-only.
func (r *Row) ReadOnly() bool { return r.State().Has(StateReadOnly) }

// Selected reports whether the row is selected as a band.
func (r *Row) Selected() bool { return r.State().Has(StateSelected) }

// Displayed reports whether the row intersected the data area after the last layout.
func (r *Row) Displayed() bool { return r.State().Has(StateDisplayed) }

// bound returns an error for rows not bound to an index.
func (r *Row) bound() error {
	if r.grid == nil || r.index < 0 {
		return fmt.Errorf("%w: row is not bound to an index", ErrInvalidOperation)
	}
	return nil
}

// SetVisible shows or hides the row.
func (r *Row) SetVisible(v bool) error {
	if err := r.bound(); err != nil {
		return err
	}
	return r.grid.rows.SetVisible(r.index, v)
}

// SetFrozen pins or unpins the row.
func (r *Row) SetFrozen(f bool) error {
	if err := r.bound(); err != nil {
		return err
	}
	return r.grid.rows.SetFrozen(r.index, f)
}

// SetReadOnly changes the row read-only flag.
func (r *Row) SetReadOnly(ro bool) error {
	if err := r.bound(); err != nil {
		return err
	}
	return r.grid.rows.SetReadOnly(r.index, ro)
}

// SetSelected selects or deselects the whole row.
func (r *Row) SetSelected(s bool) error {
	if err := r.bound(); err != nil {
		return err
	}
	return r.grid.SelectRow(r.index, s)
}

// DefaultCellStyle returns the row's default cell style.
func (r *Row) DefaultCellStyle() CellStyle { return r.defaultStyle }

// SetDefaultCellStyle changes the row's default cell style.
func (r *Row) SetDefaultCellStyle(s CellStyle) {
	r.defaultStyle = s
	if r.grid != nil && r.index >= 0 {
		r.grid.invalidateRow(r.index)
	}
}

// HeaderValue returns the value shown in the row header.
func (r *Row) HeaderValue() any { return r.headerValue }

// SetHeaderValue changes the row header value.
func (r *Row) SetHeaderValue(v any) {
	r.headerValue = v
	if r.grid != nil && r.index >= 0 {
		r.grid.invalidateRow(r.index)
	}
}

// ErrorText returns the row error text.
func (r *Row) ErrorText() string { return r.errorText }

// SetErrorText changes the row error text.
func (r *Row) SetErrorText(s string) {
	r.errorText = s
	if r.grid != nil && r.index >= 0 {
		r.grid.invalidateRow(r.index)
	}
}
