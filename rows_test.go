package datagrid_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
)

func TestRows_GetUnsharesOneIndex(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 100)
	var unshared []int
	g.OnRowUnshared(func(ev datagrid.RowUnsharedEvent) { unshared = append(unshared, ev.Row) })

	rows := g.Rows()
	require.True(t, rows.SharesTemplate(0, 99))

	r, err := rows.Get(50)
	require.NoError(t, err)
	r.SetDefaultCellStyle(datagrid.CellStyle{BackColor: datagrid.ColorRed})

	assert.Equal(t, 50, r.Index())
	assert.False(t, rows.IsShared(50))
	assert.True(t, rows.IsShared(49))
	assert.True(t, rows.IsShared(51))
	assert.True(t, rows.SharesTemplate(49, 51))
	assert.False(t, rows.SharesTemplate(49, 50))
	assert.Equal(t, 1, rows.UnsharedCount())
	assert.Equal(t, []int{50}, unshared)

	again, err := rows.Get(50)
	require.NoError(t, err)
	assert.Same(t, r, again, "an unshared row is returned as is")
	assert.Equal(t, 1, rows.UnsharedCount())

	assert.Equal(t, datagrid.ColorRed, g.EffectiveStyle(0, 50).BackColor)
	assert.NotEqual(t, datagrid.ColorRed, g.EffectiveStyle(0, 51).BackColor)
}

func TestRows_ReadsDoNotUnshare(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 20)
	require.NoError(t, g.SetCurrentCell(1, 7))
	require.NoError(t, g.SelectRow(3, true))
	require.NoError(t, g.Rows().SetReadOnly(4, true))

	_, err := g.CellValue(1, 10)
	require.NoError(t, err)
	_ = g.FormattedValue(0, 11)
	_ = g.EffectiveStyle(0, 12)
	g.SetVerticalOffset(100)

	assert.Zero(t, g.Rows().UnsharedCount())
	assert.True(t, g.Rows().State(3).Has(datagrid.StateSelected))
	assert.True(t, g.IsCellReadOnly(0, 4))
}

func TestRows_ValueBelongsToOneIndex(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 30)
	require.NoError(t, g.SetCellValue(1, 20, "Banshee"))

	v, err := g.CellValue(1, 20)
	require.NoError(t, err)
	assert.Equal(t, "Banshee", v)

	v, err = g.CellValue(1, 21)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 1, g.Rows().UnsharedCount())
}

func TestRows_IndicesFollowStructure(t *testing.T) {
	g := newGrid(t, wide, 1, 80, 10)
	r, err := g.Rows().Get(6)
	require.NoError(t, err)
	r.SetHeaderValue("six")

	require.NoError(t, g.Rows().Insert(2, 3))
	assert.Equal(t, 9, r.Index())
	require.NoError(t, g.Rows().RemoveAt(0))
	assert.Equal(t, 8, r.Index())

	require.NoError(t, g.Rows().RemoveAt(8))
	assert.Equal(t, -1, r.Index(), "a removed row is detached")
	assert.Equal(t, 11, g.Rows().Len())
}

func TestRows_HeightChangesExtent(t *testing.T) {
	g := newGrid(t, wide, 1, 80, 10)
	h := datagrid.DefaultRowHeight
	require.Equal(t, 10*h, g.Rows().Extent(datagrid.StateVisible, 0))

	r, err := g.Rows().Get(3)
	require.NoError(t, err)
	require.NoError(t, r.SetHeight(50))
	assert.Equal(t, 9*h+50, g.Rows().Extent(datagrid.StateVisible, 0))

	assert.ErrorIs(t, r.SetHeight(1), datagrid.ErrInvalidArgument)

	require.NoError(t, g.Rows().SetVisible(3, false))
	assert.Equal(t, 9*h, g.Rows().Extent(datagrid.StateVisible, 0))
	assert.Equal(t, 9, g.Rows().Count(datagrid.StateVisible, 0))
}

func TestRows_AddValuesAndTemplate(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 0)
	require.NoError(t, g.RowTemplate().SetHeight(30))

	i, err := g.Rows().AddValues("Infernus", 95000)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, "95000", g.FormattedValue(1, 0))

	_, err = g.Rows().AddValues(1, 2, 3)
	assert.ErrorIs(t, err, datagrid.ErrInvalidArgument)

	_, err = g.Rows().Add(4)
	require.NoError(t, err)
	assert.Equal(t, 30+4*30, g.Rows().Extent(datagrid.StateVisible, 0), "new rows copy the template")
}

func TestRows_FrozenMustBeContiguous(t *testing.T) {
	g := newGrid(t, wide, 1, 80, 5)
	require.NoError(t, g.Rows().SetFrozen(0, true))
	assert.ErrorIs(t, g.Rows().SetFrozen(2, true), datagrid.ErrInvalidOperation)
	require.NoError(t, g.Rows().SetFrozen(1, true))

	// Rows inserted inside the frozen block are frozen too.
	require.NoError(t, g.Rows().Insert(1, 1))
	assert.True(t, g.Rows().State(1).Has(datagrid.StateFrozen))
	assert.Equal(t, 3, g.Rows().Count(datagrid.StateVisibleFrozen, 0))
}

func TestRows_InsertKeepsFrozenBlockContiguous(t *testing.T) {
	tests := []struct {
		name   string
		frozen int
		at     int
		want   []bool
	}{
		{"above the block", 1, 0, []bool{true, true, true, false, false, false, false}},
		{"inside the block", 2, 1, []bool{true, true, true, true, false, false, false}},
		{"right below the block", 2, 2, []bool{true, true, false, false, false, false, false}},
		{"at the end", 1, 5, []bool{true, false, false, false, false, false, false}},
		{"nothing frozen", 0, 0, []bool{false, false, false, false, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, wide, 1, 80, 5)
			for r := range tt.frozen {
				require.NoError(t, g.Rows().SetFrozen(r, true))
			}

			require.NoError(t, g.Rows().Insert(tt.at, 2))
			got := make([]bool, g.Rows().Len())
			for r := range got {
				got[r] = g.Rows().State(r).Has(datagrid.StateFrozen)
			}
			assert.Equal(t, tt.want, got)

			for r := 1; r < g.Rows().Len(); r++ {
				assert.Greater(t, g.CellBounds(0, r).Y, g.CellBounds(0, r-1).Y, "row %d", r)
			}
			assert.NoError(t, g.Rows().SetVisible(6, false), "later state changes still pass the frozen check")
		})
	}
}

func TestRows_Traversal(t *testing.T) {
	g := newGrid(t, wide, 1, 80, 8)
	require.NoError(t, g.Rows().SetVisible(2, false))
	require.NoError(t, g.Rows().SetVisible(5, false))

	rows := g.Rows()
	visible := slices.Collect(rows.All(datagrid.StateVisible, 0))
	assert.Equal(t, []int{0, 1, 3, 4, 6, 7}, visible)
	assert.Equal(t, visible, slices.Collect(rows.All(datagrid.StateVisible, 0)), "sequences restart")
	assert.Equal(t, 3, rows.Next(1, datagrid.StateVisible, 0))
	assert.Equal(t, 4, rows.Prev(6, datagrid.StateVisible, 0))
	assert.Equal(t, 7, rows.Last(datagrid.StateVisible, 0))
	assert.Equal(t, 1, rows.CountBetween(1, 4, datagrid.StateVisible, 0))
	assert.Equal(t, -1, rows.First(datagrid.StateFrozen, 0))
}

func TestColumns_TraversalInDisplayOrder(t *testing.T) {
	g := newGrid(t, wide, 4, 50, 0)
	cols := g.Columns()
	require.NoError(t, cols.At(3).SetDisplayIndex(0))
	require.NoError(t, cols.At(1).SetVisible(false))

	order := slices.Collect(cols.All(datagrid.StateVisible, 0))
	assert.Equal(t, []int{3, 0, 2}, order)
	assert.Equal(t, order, slices.Collect(cols.All(datagrid.StateVisible, 0)))
	assert.Equal(t, 0, cols.At(3).DisplayIndex())
	assert.Equal(t, 3, cols.First(datagrid.StateVisible, 0))
	assert.Equal(t, 2, cols.Last(datagrid.StateVisible, 0))
	assert.Equal(t, 2, cols.Next(0, datagrid.StateVisible, 0))
	assert.Equal(t, 150, cols.Extent(datagrid.StateVisible, 0))

	// Every visible column exactly once.
	seen := map[int]int{}
	for i := range cols.All(datagrid.StateVisible, 0) {
		seen[i]++
	}
	assert.Equal(t, map[int]int{0: 1, 2: 1, 3: 1}, seen)
}

func TestColumns_FrozenOrder(t *testing.T) {
	g := newGrid(t, wide, 0, 0, 0)
	_, err := g.Columns().Add("a", datagrid.Frozen())
	require.NoError(t, err)
	_, err = g.Columns().Add("b")
	require.NoError(t, err)

	_, err = g.Columns().Add("c", datagrid.Frozen())
	assert.ErrorIs(t, err, datagrid.ErrInvalidOperation)
	assert.ErrorIs(t, g.Columns().ByName("b").SetDisplayIndex(0), datagrid.ErrInvalidOperation)
	assert.ErrorIs(t, g.Columns().ByName("a").SetAutoSizeMode(datagrid.AutoSizeColumnFill), datagrid.ErrInvalidOperation)
}

func TestColumns_RejectBadOptions(t *testing.T) {
	g := newGrid(t, wide, 0, 0, 0)
	_, err := g.Columns().Add("w", datagrid.WithWidth(2))
	assert.ErrorIs(t, err, datagrid.ErrInvalidArgument)
	_, err = g.Columns().Add("f", datagrid.WithFillWeight(0))
	assert.ErrorIs(t, err, datagrid.ErrInvalidArgument)
	_, err = g.Columns().Add("v", datagrid.WithValidation("value >"))
	assert.ErrorIs(t, err, datagrid.ErrInvalidArgument)
	assert.Zero(t, g.Columns().Len())

	c, err := g.Columns().Add("ok", datagrid.WithHeaderText("OK"))
	require.NoError(t, err)
	assert.Equal(t, "OK", c.HeaderText())
	assert.Equal(t, datagrid.DefaultColumnWidth, c.Width())
	assert.Same(t, c, g.Columns().ByName("ok"))
}

func TestColumns_RemoveShiftsCells(t *testing.T) {
	g := newGrid(t, wide, 3, 50, 2)
	require.NoError(t, g.SetCellValue(2, 1, "x"))
	require.NoError(t, g.SelectCell(2, 0, true))

	require.NoError(t, g.Columns().RemoveAt(0))
	v, err := g.CellValue(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.True(t, g.IsCellSelected(1, 0))

	require.NoError(t, g.Columns().Clear())
	assert.Zero(t, g.Rows().Len(), "rows go with the last column")
}

func TestFillColumns_ShareLeftover(t *testing.T) {
	g := datagrid.NewGrid(datagrid.WithBounds(datagrid.Rect{W: 300, H: 100}))
	require.NoError(t, g.SetRowHeadersVisible(false))
	_, err := g.Columns().Add("fixed", datagrid.WithWidth(100))
	require.NoError(t, err)
	_, err = g.Columns().Add("one", datagrid.WithAutoSize(datagrid.AutoSizeColumnFill), datagrid.WithFillWeight(100))
	require.NoError(t, err)
	_, err = g.Columns().Add("three", datagrid.WithAutoSize(datagrid.AutoSizeColumnFill), datagrid.WithFillWeight(300))
	require.NoError(t, err)

	assert.Equal(t, 50, g.Columns().At(1).Width())
	assert.Equal(t, 150, g.Columns().At(2).Width())
	assert.Zero(t, g.MaxHorizontalOffset())

	require.NoError(t, g.SetBounds(datagrid.Rect{W: 500, H: 100}))
	assert.Equal(t, 100, g.Columns().At(1).Width())
	assert.Equal(t, 300, g.Columns().At(2).Width())
}
