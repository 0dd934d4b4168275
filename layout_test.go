package datagrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
)

func TestLayout_ScrollBarsAppearOnOverflow(t *testing.T) {
	g := newGrid(t, datagrid.Rect{W: 300, H: 200}, 2, 80, 3)
	l := g.Layout()
	assert.True(t, l.HScrollBar.Empty())
	assert.True(t, l.VScrollBar.Empty())
	assert.Equal(t, datagrid.Rect{X: 41, Y: 23, W: 259, H: 177}, l.Data)

	_, err := g.Rows().Add(10)
	require.NoError(t, err)
	l = g.Layout()
	assert.Equal(t, datagrid.Rect{X: 288, Y: 23, W: 12, H: 177}, l.VScrollBar)
	assert.Equal(t, 247, l.Data.W)

	// 250 px of columns fit beside the headers but not beside the vertical bar.
	_, err = g.Columns().Add("", datagrid.WithWidth(90))
	require.NoError(t, err)
	l = g.Layout()
	assert.Equal(t, datagrid.Rect{X: 41, Y: 188, W: 247, H: 12}, l.HScrollBar)
	assert.Equal(t, 165, l.VScrollBar.H)
	assert.Equal(t, datagrid.Rect{X: 41, Y: 23, W: 247, H: 165}, l.Data)

	require.NoError(t, g.SetScrollBars(datagrid.ScrollBarsNone))
	l = g.Layout()
	assert.True(t, l.HScrollBar.Empty())
	assert.True(t, l.VScrollBar.Empty())
	assert.Equal(t, datagrid.Rect{X: 41, Y: 23, W: 259, H: 177}, l.Data)
}

func TestSuspendLayout_Nests(t *testing.T) {
	g := newGrid(t, datagrid.Rect{W: 300, H: 200}, 1, 80, 3)

	outer := g.SuspendLayout()
	inner := g.SuspendLayout()
	_, err := g.Rows().Add(20)
	require.NoError(t, err)
	inner()
	assert.True(t, g.Layout().VScrollBar.Empty(), "still suspended")

	outer()
	assert.False(t, g.Layout().VScrollBar.Empty())
	outer()
	assert.False(t, g.Layout().VScrollBar.Empty(), "resume is idempotent")
}

func TestAutoSizeColumns_AllCells(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 3)
	require.NoError(t, g.SetCellValue(0, 1, "Grotti Turismo Classic"))

	require.NoError(t, g.SetAutoSizeColumnsMode(datagrid.AutoSizeColumnAllCells))
	// 22 glyphs of 7 px plus padding on both sides.
	assert.Equal(t, 22*7+8, g.Columns().At(0).Width())

	require.NoError(t, g.SetCellValue(0, 1, "Comet"))
	assert.Equal(t, 5*7+8, g.Columns().At(0).Width())

	assert.ErrorIs(t, g.SetAutoSizeColumnsMode(datagrid.AutoSizeColumnNotSet), datagrid.ErrInvalidArgument)
}

func TestAutoSizeRows_KeepTemplateHeight(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 3)
	require.NoError(t, g.SetCellValue(1, 1, "Cheetah\nInfernus\nTurismo"))
	require.Equal(t, 1, g.Rows().UnsharedCount())

	require.NoError(t, g.SetAutoSizeRowsMode(datagrid.AutoSizeRowsAllCells))
	assert.Equal(t, 22+3*13+8+22, g.Rows().Extent(datagrid.StateVisible, 0))
	assert.Equal(t, 1, g.Rows().UnsharedCount(), "single-line rows stay shared")
	assert.True(t, g.Rows().IsShared(0))
}

func TestEffectiveStyle_Layers(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 4)
	g.SetDefaultCellStyle(datagrid.CellStyle{BackColor: 1, ForeColor: 2, Padding: 3})
	g.SetAlternatingRowsStyle(datagrid.CellStyle{BackColor: 10})
	g.Columns().At(1).SetDefaultCellStyle(datagrid.CellStyle{Alignment: datagrid.AlignRight})
	r, err := g.Rows().Get(3)
	require.NoError(t, err)
	r.SetDefaultCellStyle(datagrid.CellStyle{ForeColor: 20})
	r.Cell(1).SetStyle(datagrid.CellStyle{BackColor: 30})

	assert.Equal(t, datagrid.CellStyle{BackColor: 1, ForeColor: 2, Padding: 3}, g.EffectiveStyle(0, 0))
	assert.Equal(t, datagrid.Color(10), g.EffectiveStyle(0, 1).BackColor, "alternating rows")
	assert.Equal(t, datagrid.AlignRight, g.EffectiveStyle(1, 2).Alignment)

	s := g.EffectiveStyle(1, 3)
	assert.Equal(t, datagrid.Color(30), s.BackColor, "cell beats row and alternating")
	assert.Equal(t, datagrid.Color(20), s.ForeColor, "row beats grid")
	assert.Equal(t, datagrid.AlignRight, s.Alignment)
	assert.Equal(t, 3, s.Padding)

	assert.Equal(t, datagrid.Color(10), g.EffectiveStyle(0, 3).BackColor)
}
