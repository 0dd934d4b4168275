package datagrid

import "fmt"

// Cell is the intersection of a row and a column. It belongs to exactly one
// Row instance; cells of shared rows report RowIndex() == -1.
type Cell struct {
	row       *Row
	col       int
	value     any
	style     CellStyle
	errorText string
}

// ColumnIndex returns the column identity index.
func (c *Cell) ColumnIndex() int { return c.col }

// RowIndex returns the row index, or -1 when the owning row is shared.
func (c *Cell) RowIndex() int { return c.row.index }

// Address returns the cell address.
func (c *Cell) Address() CellAddress { return CellAddress{Col: c.col, Row: c.row.index} }

func (c *Cell) grid() (*Grid, error) {
	if err := c.row.bound(); err != nil {
		return nil, err
	}
	return c.row.grid, nil
}

// Value returns the cell value. In virtual mode it is fetched from the data source.
func (c *Cell) Value() any {
	g, err := c.grid()
	if err != nil {
		return c.value
	}
	v, _ := g.CellValue(c.col, c.row.index)
	return v
}

// SetValue stores v, or pushes it to the data source in virtual mode.
func (c *Cell) SetValue(v any) error {
	g, err := c.grid()
	if err != nil {
		c.value = v
		return nil
	}
	return g.SetCellValue(c.col, c.row.index, v)
}

// FormattedValue returns the value as displayed.
func (c *Cell) FormattedValue() string {
	g, err := c.grid()
	if err != nil {
		return fmt.Sprint(c.value)
	}
	return g.FormattedValue(c.col, c.row.index)
}

// Style returns the cell's own style override.
func (c *Cell) Style() CellStyle { return c.style }

// SetStyle changes the cell's style override.
func (c *Cell) SetStyle(s CellStyle) {
	c.style = s
	if g, err := c.grid(); err == nil {
		g.invalidateCell(c.col, c.row.index)
	}
}

// ErrorText returns the cell error text.
func (c *Cell) ErrorText() string { return c.errorText }

// SetErrorText changes the cell error text.
func (c *Cell) SetErrorText(s string) {
	c.errorText = s
	if g, err := c.grid(); err == nil {
		g.invalidateCell(c.col, c.row.index)
	}
}

// ReadOnly reports whether the cell cannot be edited: the grid, row, column
// or the cell itself is read-only.
func (c *Cell) ReadOnly() bool {
	g, err := c.grid()
	if err != nil {
		return false
	}
	return g.IsCellReadOnly(c.col, c.row.index)
}

// SetReadOnly marks the cell itself read-only.
func (c *Cell) SetReadOnly(ro bool) error {
	g, err := c.grid()
	if err != nil {
		return err
	}
	return g.SetCellReadOnly(c.col, c.row.index, ro)
}

// Selected reports whether the cell is selected, individually or through its band.
func (c *Cell) Selected() bool {
	g, err := c.grid()
	if err != nil {
		return false
	}
	return g.IsCellSelected(c.col, c.row.index)
}

// SetSelected selects or deselects the cell.
func (c *Cell) SetSelected(s bool) error {
	g, err := c.grid()
	if err != nil {
		return err
	}
	return g.SelectCell(c.col, c.row.index, s)
}

// Visible reports whether both the row and the column are visible.
func (c *Cell) Visible() bool {
	g, err := c.grid()
	if err != nil {
		return false
	}
	return g.IsCellVisible(c.col, c.row.index)
}

// Displayed reports whether both bands were displayed after the last layout.
func (c *Cell) Displayed() bool {
	g, err := c.grid()
	if err != nil {
		return false
	}
	col := g.columns.At(c.col)
	return col != nil && col.Displayed() && c.row.Displayed()
}
