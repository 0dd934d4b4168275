package datagrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
)

var wide = datagrid.Rect{W: 600, H: 400}

func TestSelectedCells_FullRowIncludesHiddenColumns(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 5, datagrid.WithSelectionMode(datagrid.FullRowSelect))
	require.NoError(t, g.Columns().At(1).SetVisible(false))

	require.NoError(t, g.SelectRow(3, true))
	assert.Equal(t, []int{3}, g.SelectedRows())
	assert.Equal(t, []datagrid.CellAddress{cell(0, 3), cell(1, 3), cell(2, 3)}, g.SelectedCells())
	assert.Equal(t, 3, g.SelectedCellCount())
	assert.True(t, g.IsCellSelected(1, 3))
	assert.False(t, g.IsCellSelected(0, 2))
}

func TestSetCurrentCell_SelectsByMode(t *testing.T) {
	tests := []struct {
		name string
		mode datagrid.SelectionMode
		want []datagrid.CellAddress
	}{
		{"cell", datagrid.CellSelect, []datagrid.CellAddress{cell(1, 2)}},
		{"full row", datagrid.FullRowSelect, []datagrid.CellAddress{cell(0, 2), cell(1, 2)}},
		{"full column", datagrid.FullColumnSelect, []datagrid.CellAddress{cell(1, 0), cell(1, 1), cell(1, 2)}},
		{"row header", datagrid.RowHeaderSelect, []datagrid.CellAddress{cell(1, 2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, wide, 2, 80, 3, datagrid.WithSelectionMode(tt.mode))
			require.NoError(t, g.SetCurrentCell(1, 2))
			assert.Equal(t, cell(1, 2), g.CurrentCell())
			assert.Equal(t, cell(1, 2), g.Anchor())
			assert.Equal(t, tt.want, g.SelectedCells())
		})
	}
}

func TestClearSelection_RaisesOnce(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 5)
	changes := 0
	g.OnSelectionChanged(func(datagrid.SelectionChangedEvent) { changes++ })

	require.NoError(t, g.SelectRow(1, true))
	require.NoError(t, g.SelectRow(2, true))
	require.NoError(t, g.SelectCell(0, 4, true))
	require.Equal(t, 3, changes)

	g.ClearSelection()
	assert.Equal(t, 4, changes, "one event for the whole clear")
	assert.Empty(t, g.SelectedCells())

	g.ClearSelection()
	assert.Equal(t, 4, changes, "nothing selected, nothing raised")
}

func TestSelectionBatch(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 5, datagrid.WithSelectionMode(datagrid.CellSelect))
	changes := 0
	g.OnSelectionChanged(func(datagrid.SelectionChangedEvent) { changes++ })

	end := g.BeginSelectionBatch()
	assert.Equal(t, 1, g.NoSelectionChangeCount())
	for r := range 5 {
		require.NoError(t, g.SelectCell(0, r, true))
	}
	assert.Zero(t, changes)
	end()
	end()
	assert.Equal(t, 1, changes)
	assert.Zero(t, g.NoSelectionChangeCount())
}

func TestSelectAll(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 4, datagrid.WithSelectionMode(datagrid.CellSelect))
	require.NoError(t, g.Columns().At(2).SetVisible(false))
	require.NoError(t, g.SelectAll())
	assert.Equal(t, 8, g.SelectedCellCount(), "hidden cells are not selected")

	single := newGrid(t, wide, 3, 80, 4, datagrid.WithMultiSelect(false))
	assert.ErrorIs(t, single.SelectAll(), datagrid.ErrInvalidOperation)
}

func TestExtendSelection(t *testing.T) {
	g := newGrid(t, wide, 4, 80, 6, datagrid.WithSelectionMode(datagrid.CellSelect))
	require.NoError(t, g.SetCurrentCell(1, 1))
	require.NoError(t, g.ExtendSelection(2, 3))

	assert.Equal(t, cell(2, 3), g.CurrentCell())
	assert.Equal(t, cell(1, 1), g.Anchor(), "the anchor stays put")
	assert.Equal(t, 6, g.SelectedCellCount())
	assert.True(t, g.IsCellSelected(1, 3))
	assert.False(t, g.IsCellSelected(0, 1))

	// Shrinking the range deselects what fell out of it.
	require.NoError(t, g.ExtendSelection(1, 2))
	assert.Equal(t, 2, g.SelectedCellCount())
	assert.False(t, g.IsCellSelected(2, 3))

	require.NoError(t, g.SelectRange(cell(3, 5), cell(3, 4)))
	assert.Equal(t, cell(3, 5), g.Anchor())
	assert.Equal(t, []datagrid.CellAddress{cell(3, 4), cell(3, 5)}, g.SelectedCells())
}

func TestSelectCell_BreaksBand(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 3)
	require.NoError(t, g.SelectRow(1, true))
	require.NoError(t, g.SelectCell(1, 1, false))

	assert.Empty(t, g.SelectedRows())
	assert.Equal(t, []datagrid.CellAddress{cell(0, 1), cell(2, 1)}, g.SelectedCells())
}

func TestSelectRow_RejectedInColumnModes(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 3, datagrid.WithSelectionMode(datagrid.FullColumnSelect))
	assert.ErrorIs(t, g.SelectRow(0, true), datagrid.ErrInvalidOperation)
	assert.NoError(t, g.SelectColumn(1, true))
	assert.Equal(t, []int{1}, g.SelectedColumns())
}

func TestSetSelectionMode_ReselectsCurrent(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 3, datagrid.WithSelectionMode(datagrid.CellSelect))
	require.NoError(t, g.SetCurrentCell(2, 1))
	require.NoError(t, g.SelectCell(0, 0, true))

	require.NoError(t, g.SetSelectionMode(datagrid.FullRowSelect))
	assert.Equal(t, []int{1}, g.SelectedRows())
	assert.Equal(t, 3, g.SelectedCellCount())

	assert.ErrorIs(t, g.SetSelectionMode(datagrid.SelectionMode(99)), datagrid.ErrInvalidArgument)
}

func TestSetSelectionMode_AutomaticSortBlocksColumnModes(t *testing.T) {
	g := newGrid(t, wide, 1, 80, 3)
	_, err := g.Columns().Add("sorted", datagrid.WithSortMode(datagrid.SortAutomatic))
	require.NoError(t, err)
	assert.ErrorIs(t, g.SetSelectionMode(datagrid.ColumnHeaderSelect), datagrid.ErrInvalidOperation)
	assert.Equal(t, datagrid.RowHeaderSelect, g.SelectionMode())
}

func TestSetMultiSelect_KeepsCurrent(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 4, datagrid.WithSelectionMode(datagrid.FullRowSelect))
	require.NoError(t, g.SetCurrentCell(0, 2))
	require.NoError(t, g.SelectRow(0, true))
	require.NoError(t, g.SelectRow(3, true))

	g.SetMultiSelect(false)
	assert.Equal(t, []int{2}, g.SelectedRows())
}

func TestSetCurrentCell_Rejects(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 3)
	require.NoError(t, g.Rows().SetVisible(1, false))

	assert.ErrorIs(t, g.SetCurrentCell(0, 1), datagrid.ErrInvalidOperation)
	assert.ErrorIs(t, g.SetCurrentCell(3, 0), datagrid.ErrIndexOutOfRange)
	assert.True(t, g.CurrentCell().IsNone())

	require.NoError(t, g.SetCurrentCell(0, 2))
	require.NoError(t, g.SetCurrentCell(-1, -1))
	assert.Equal(t, datagrid.NoCell, g.CurrentCell())
	assert.Empty(t, g.SelectedCells())
}

func TestHidingCurrentColumn_MovesCurrentCell(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 3)
	var moves []datagrid.CurrentCellChangedEvent
	g.OnCurrentCellChanged(func(ev datagrid.CurrentCellChangedEvent) { moves = append(moves, ev) })

	require.NoError(t, g.SetCurrentCell(1, 1))
	require.NoError(t, g.Columns().At(1).SetVisible(false))

	cur := g.CurrentCell()
	assert.NotEqual(t, 1, cur.Col)
	assert.True(t, g.IsCellVisible(cur.Col, cur.Row))
	require.Len(t, moves, 2)
	assert.Equal(t, cell(1, 1), moves[1].Old)
}

func TestRemovingRows_ShiftsSelection(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 6, datagrid.WithSelectionMode(datagrid.CellSelect))
	require.NoError(t, g.SelectCell(1, 4, true))
	require.NoError(t, g.SelectCell(0, 1, true))

	require.NoError(t, g.Rows().RemoveAt(1))
	assert.Equal(t, []datagrid.CellAddress{cell(1, 3)}, g.SelectedCells())

	require.NoError(t, g.Rows().Insert(0, 2))
	assert.Equal(t, []datagrid.CellAddress{cell(1, 5)}, g.SelectedCells())
}

func TestRemovingSelectedBand_RaisesSelectionChanged(t *testing.T) {
	rows := func(g *datagrid.Grid) []int { return g.SelectedRows() }
	cols := func(g *datagrid.Grid) []int { return g.SelectedColumns() }
	tests := []struct {
		name     string
		mode     datagrid.SelectionMode
		remove   func(*datagrid.Grid) error
		selected func(*datagrid.Grid) []int
		want     []int
		events   int
	}{
		{"selected row", datagrid.FullRowSelect,
			func(g *datagrid.Grid) error { return g.Rows().RemoveAt(3) }, rows, []int{0}, 1},
		{"unselected row", datagrid.FullRowSelect,
			func(g *datagrid.Grid) error { return g.Rows().RemoveAt(2) }, rows, []int{0, 2}, 0},
		{"selected column", datagrid.FullColumnSelect,
			func(g *datagrid.Grid) error { return g.Columns().RemoveAt(3) }, cols, []int{0}, 1},
		{"unselected column", datagrid.FullColumnSelect,
			func(g *datagrid.Grid) error { return g.Columns().RemoveAt(1) }, cols, []int{0, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, wide, 4, 80, 5, datagrid.WithSelectionMode(tt.mode))
			if tt.mode == datagrid.FullRowSelect {
				require.NoError(t, g.SelectRow(0, true))
				require.NoError(t, g.SelectRow(3, true))
			} else {
				require.NoError(t, g.SelectColumn(0, true))
				require.NoError(t, g.SelectColumn(3, true))
			}
			changes := 0
			g.OnSelectionChanged(func(datagrid.SelectionChangedEvent) { changes++ })

			require.NoError(t, tt.remove(g))
			assert.Equal(t, tt.want, tt.selected(g))
			assert.Equal(t, tt.events, changes)
		})
	}
}
