package datagrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
)

func TestPaint_DisplayedCells(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 5)
	require.NoError(t, g.SetCellValue(1, 2, "Sultan"))
	require.NoError(t, g.SetCurrentCell(1, 2))
	unshared := g.Rows().UnsharedCount()

	p := &recordingPainter{}
	g.Paint(p)
	assert.Equal(t, unshared, g.Rows().UnsharedCount(), "painting never unshares")
	assert.NotZero(t, p.fills)

	var cells, colHeaders, rowHeaders int
	for _, r := range p.cells {
		switch r.Kind {
		case datagrid.PaintCell:
			cells++
		case datagrid.PaintColumnHeader:
			colHeaders++
		case datagrid.PaintRowHeader:
			rowHeaders++
		}
	}
	assert.Equal(t, 15, cells)
	assert.Equal(t, 3, colHeaders)
	assert.Equal(t, 5, rowHeaders)
	_, ok := p.find(datagrid.PaintTopLeftHeader, -1, -1)
	assert.True(t, ok)

	req, ok := p.find(datagrid.PaintCell, 1, 2)
	require.True(t, ok)
	assert.Equal(t, "Sultan", req.Text)
	assert.True(t, req.Current)
	assert.True(t, req.State.Has(datagrid.StateSelected))
	assert.Equal(t, g.EffectiveStyle(1, 2).SelectionBackColor, req.Style.BackColor)
	assert.Equal(t, g.CellBounds(1, 2), req.Bounds)
	assert.Equal(t, -1, req.Caret)

	other, ok := p.find(datagrid.PaintCell, 0, 0)
	require.True(t, ok)
	assert.False(t, other.Current)
	assert.Equal(t, g.EffectiveStyle(0, 0).BackColor, other.Style.BackColor)
}

func TestPaint_EditingCell(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 5)
	require.NoError(t, g.SetCurrentCell(2, 1))
	require.True(t, g.TypeText("Sab"))

	p := &recordingPainter{}
	g.Paint(p)
	req, ok := p.find(datagrid.PaintCell, 2, 1)
	require.True(t, ok)
	assert.True(t, req.Editing)
	assert.Equal(t, "Sab", req.Text)
	assert.Equal(t, 3, req.Caret)
	assert.Equal(t, g.Theme().EditingBgColor, req.Style.BackColor)
}

func TestPaint_SortGlyphAndRightToLeft(t *testing.T) {
	g := newCarGrid(t)
	g.SetRightToLeft(true)
	require.NoError(t, g.Sort(1, datagrid.SortDescending))

	p := &recordingPainter{}
	g.Paint(p)
	h, ok := p.find(datagrid.PaintColumnHeader, 1, -1)
	require.True(t, ok)
	assert.Equal(t, datagrid.SortDescending, h.SortOrder)
	assert.True(t, h.RightToLeft)

	c, ok := p.find(datagrid.PaintCell, 0, 0)
	require.True(t, ok)
	assert.Equal(t, g.CellBounds(0, 0), c.Bounds)
	assert.Equal(t, "Infernus", c.Text)
}

func TestPaint_EmptyBoundsPaintsNothing(t *testing.T) {
	g := newGrid(t, datagrid.Rect{}, 3, 80, 5)
	p := &recordingPainter{}
	g.Paint(p)
	assert.Zero(t, p.fills)
	assert.Empty(t, p.cells)
}

func TestRender(t *testing.T) {
	g := newGrid(t, wide, 3, 80, 5)
	require.NoError(t, g.SetCellValue(0, 0, "Elegy"))

	r := &mockRenderer{}
	require.NoError(t, g.Render(r))
	assert.Equal(t, 1, r.renderCalls)
	assert.Positive(t, r.commands)
}

func TestPaint_CellTypes(t *testing.T) {
	g := newToggleGrid(t)
	require.NoError(t, g.ToggleCheckBox(1, 1))
	require.NoError(t, g.SetCellValue(2, 1, "Super"))

	p := &recordingPainter{}
	g.Paint(p)

	on, ok := p.find(datagrid.PaintCell, 1, 1)
	require.True(t, ok)
	assert.Equal(t, datagrid.CellCheckBox, on.CellType)
	assert.True(t, on.Checked)
	assert.Equal(t, "[x]", on.Text)
	assert.Equal(t, datagrid.AlignCenter, on.Style.Alignment)

	off, ok := p.find(datagrid.PaintCell, 1, 0)
	require.True(t, ok)
	assert.False(t, off.Checked)
	assert.Equal(t, "[ ]", off.Text)

	combo, ok := p.find(datagrid.PaintCell, 2, 1)
	require.True(t, ok)
	assert.Equal(t, datagrid.CellComboBox, combo.CellType)
	assert.Equal(t, "Super", combo.Text)

	r := &mockRenderer{}
	require.NoError(t, g.Render(r))
	assert.Positive(t, r.commands)
}
