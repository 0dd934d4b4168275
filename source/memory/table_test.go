package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
	"github.com/go-theft-auto/datagrid/source/memory"
)

var _ datagrid.DataSource = (*memory.Table)(nil)

func TestTable_Values(t *testing.T) {
	tbl := memory.FromRows([][]any{
		{"Zentorno", 725000},
		{"Adder"},
	})
	assert.Equal(t, 2, tbl.Columns())
	assert.Equal(t, 2, tbl.RowCount())

	v, err := tbl.CellValue(1, 1)
	require.NoError(t, err)
	assert.Nil(t, v, "short rows read as nil")

	require.NoError(t, tbl.PushCellValue(1, 1, 1000000))
	v, err = tbl.CellValue(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000000, v)
	assert.True(t, tbl.IsRowDirty(1))
	assert.False(t, tbl.IsRowDirty(0))

	_, err = tbl.CellValue(2, 0)
	assert.ErrorIs(t, err, memory.ErrOutOfRange)
	assert.ErrorIs(t, tbl.PushCellValue(0, 5, "x"), memory.ErrOutOfRange)

	tbl.MarkClean()
	assert.False(t, tbl.IsRowDirty(1))
}

func TestTable_Generate(t *testing.T) {
	tbl := memory.NewTable(2, 1000)
	tbl.Generate = func(col, row int) any { return row*10 + col }

	v, err := tbl.CellValue(1, 42)
	require.NoError(t, err)
	assert.Equal(t, 421, v)

	require.NoError(t, tbl.PushCellValue(1, 42, "kept"))
	v, err = tbl.CellValue(1, 42)
	require.NoError(t, err)
	assert.Equal(t, "kept", v)
}

func TestTable_RowNotificationsMoveDirtyMarks(t *testing.T) {
	tbl := memory.NewTable(1, 3)
	require.NoError(t, tbl.PushCellValue(0, 2, "c"))

	tbl.NotifyRowAdded(0)
	assert.Equal(t, 4, tbl.RowCount())
	assert.True(t, tbl.IsRowDirty(3))
	assert.False(t, tbl.IsRowDirty(2))

	tbl.NotifyRowRemoved(1)
	assert.Equal(t, 3, tbl.RowCount())
	assert.True(t, tbl.IsRowDirty(2))
	v, err := tbl.CellValue(0, 2)
	require.NoError(t, err)
	assert.Equal(t, "c", v)

	tbl.NotifyRowRemoved(9)
	assert.Equal(t, 3, tbl.RowCount())
}

func TestTable_BacksGrid(t *testing.T) {
	tbl := memory.NewTable(2, 500)
	tbl.SetDefaults("new", 0)

	g := datagrid.NewGrid(datagrid.WithBounds(datagrid.Rect{W: 400, H: 300}))
	_, err := g.Columns().Add("name")
	require.NoError(t, err)
	_, err = g.Columns().Add("price", datagrid.WithValueKind(datagrid.KindInt))
	require.NoError(t, err)
	require.NoError(t, g.SetDataSource(tbl))

	assert.True(t, g.VirtualMode())
	assert.Equal(t, 500, g.Rows().Len())
	assert.Zero(t, g.Rows().UnsharedCount())

	require.NoError(t, g.SetCurrentCell(1, 7))
	g.TypeText("1200")
	require.NoError(t, g.EndEdit())
	v, err := tbl.CellValue(1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), v)
	assert.True(t, g.IsCurrentRowDirty())
	assert.Zero(t, g.Rows().UnsharedCount(), "virtual values never unshare rows")

	i, err := g.AddRow()
	require.NoError(t, err)
	assert.Equal(t, 500, i)
	assert.Equal(t, 501, tbl.RowCount())
	assert.Equal(t, "new", g.FormattedValue(0, 500))
	assert.Equal(t, "0", g.FormattedValue(1, 500))
}
