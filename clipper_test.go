package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowClipper(t *testing.T) {
	c := rowClipper{first: 2, total: 10, height: 20}

	tests := []struct {
		y, row, top int
	}{
		{0, 2, 0},
		{45, 4, 40},
		{159, 9, 140},
		{-1, -1, 0},
		{160, -1, 0},
	}
	for _, tt := range tests {
		row, top := c.rowAt(tt.y)
		assert.Equal(t, tt.row, row, "rowAt(%d)", tt.y)
		assert.Equal(t, tt.top, top, "rowAt(%d)", tt.y)
	}

	ranges := []struct {
		offset, visible, start, end int
	}{
		{30, 50, 3, 6},
		{0, 0, 2, 2},
		{0, 20, 2, 3},
		{1000, 50, 10, 10},
	}
	for _, tt := range ranges {
		start, end := c.visibleRange(tt.offset, tt.visible)
		assert.Equal(t, tt.start, start, "visibleRange(%d, %d)", tt.offset, tt.visible)
		assert.Equal(t, tt.end, end, "visibleRange(%d, %d)", tt.offset, tt.visible)
	}
}

func TestRowCollection_Clipper(t *testing.T) {
	g := NewGrid(WithBounds(Rect{W: 300, H: 200}))
	_, err := g.Columns().Add("a")
	require.NoError(t, err)
	_, err = g.Rows().Add(50)
	require.NoError(t, err)
	require.NoError(t, g.Rows().SetFrozen(0, true))

	c, ok := g.rows.clipper()
	require.True(t, ok)
	assert.Equal(t, rowClipper{first: 1, total: 50, height: DefaultRowHeight}, c)

	r, err := g.Rows().Get(10)
	require.NoError(t, err)
	require.NoError(t, r.SetHeight(40))
	_, ok = g.rows.clipper()
	assert.False(t, ok, "mixed heights walk the rows")
}
