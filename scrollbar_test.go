package datagrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
)

// newScrollGrid is one column of 100 rows in 200x100 without headers, so
// only the vertical bar shows.
func newScrollGrid(t *testing.T) *datagrid.Grid {
	t.Helper()
	g := newGrid(t, datagrid.Rect{W: 200, H: 100}, 1, 100, 100)
	require.NoError(t, g.SetRowHeadersVisible(false))
	require.NoError(t, g.SetColumnHeadersVisible(false))
	return g
}

func TestScrollBar_Geometry(t *testing.T) {
	g := newScrollGrid(t)
	sb := g.Theme().ScrollbarSize

	assert.Equal(t, datagrid.Rect{X: 200 - sb, Y: 0, W: sb, H: 100}, g.ScrollBarTrack(datagrid.Vertical))
	assert.True(t, g.ScrollBarTrack(datagrid.Horizontal).Empty())
	assert.Equal(t, 100*datagrid.DefaultRowHeight-100, g.MaxVerticalOffset())

	thumb := g.ScrollBarThumb(datagrid.Vertical)
	assert.Equal(t, datagrid.MinThumbSize, thumb.H, "a long extent gets the minimum thumb")
	assert.Zero(t, thumb.Y)

	g.ScrollBarDrag(datagrid.Vertical, 1050)
	assert.Equal(t, 1050, g.VerticalOffset())
	assert.Equal(t, 40, g.ScrollBarThumb(datagrid.Vertical).Y)
	assert.Equal(t, 47, g.FirstDisplayedScrollingRow())
	assert.Equal(t, 16, g.FirstRowHiddenHeight())

	g.ScrollBarDrag(datagrid.Vertical, 1<<20)
	assert.Equal(t, 100-datagrid.MinThumbSize, g.ScrollBarThumb(datagrid.Vertical).Y)
}

func TestScrollBar_PressAndDrag(t *testing.T) {
	g := newScrollGrid(t)
	x := g.ScrollBarTrack(datagrid.Vertical).Center().X
	g.ScrollBarDrag(datagrid.Vertical, 1050)

	// Below the thumb pages down by the visible height.
	require.True(t, g.MouseDown(datagrid.MouseEvent{X: x, Y: 90}))
	assert.Equal(t, 1150, g.VerticalOffset())
	assert.False(t, g.MouseUp(datagrid.MouseEvent{X: x, Y: 90}), "a page press leaves no gesture")

	thumb := g.ScrollBarThumb(datagrid.Vertical)
	require.Equal(t, 43, thumb.Y)
	require.True(t, g.MouseDown(datagrid.MouseEvent{X: x, Y: 50}))
	assert.Equal(t, 1150, g.VerticalOffset(), "pressing the thumb does not scroll")

	require.True(t, g.MouseMove(datagrid.MouseEvent{X: x, Y: 58}))
	assert.Equal(t, 1150+8*2100/80, g.VerticalOffset())
	assert.True(t, g.MouseUp(datagrid.MouseEvent{X: x, Y: 58}))
	assert.False(t, g.MouseMove(datagrid.MouseEvent{X: x, Y: 80}))

	// Above the thumb pages up.
	require.True(t, g.MouseDown(datagrid.MouseEvent{X: x, Y: 2}))
	assert.Equal(t, 1260, g.VerticalOffset())
}

func TestMouseWheel(t *testing.T) {
	g := newScrollGrid(t)
	step := datagrid.DefaultRowHeight * datagrid.WheelScrollRows

	assert.False(t, g.MouseWheel(0, 0))
	require.True(t, g.MouseWheel(-1, 0))
	assert.Equal(t, step, g.VerticalOffset())
	require.True(t, g.MouseWheel(2, 0))
	assert.Zero(t, g.VerticalOffset(), "clamped at the top")
}

func TestMouseWheel_CommitsEdit(t *testing.T) {
	g := newScrollGrid(t)
	require.NoError(t, g.SetCurrentCell(0, 0))
	g.TypeText("Buffalo")

	require.True(t, g.MouseWheel(-1, 0))
	assert.Equal(t, "Buffalo", g.FormattedValue(0, 0))
	assert.True(t, g.IsEditing(), "the editor stays open while scrolling")
}
