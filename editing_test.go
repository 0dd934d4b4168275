package datagrid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
)

// newEditGrid has five columns; column 0 holds integers that must not be
// negative.
func newEditGrid(t *testing.T, opts ...datagrid.GridOption) *datagrid.Grid {
	t.Helper()
	g := datagrid.NewGrid(append([]datagrid.GridOption{datagrid.WithBounds(wide)}, opts...)...)
	_, err := g.Columns().Add("price",
		datagrid.WithValueKind(datagrid.KindInt),
		datagrid.WithValidation("value == nil || value >= 0"))
	require.NoError(t, err)
	for _, name := range []string{"name", "class", "seats", "notes"} {
		_, err := g.Columns().Add(name, datagrid.WithWidth(80))
		require.NoError(t, err)
	}
	_, err = g.Rows().Add(6)
	require.NoError(t, err)
	return g
}

func TestSetCurrentCell_FailedCommitKeepsEdit(t *testing.T) {
	g := newEditGrid(t)
	require.NoError(t, g.SetCurrentCell(0, 1))
	require.True(t, g.TypeText("abc"))
	require.True(t, g.IsCurrentCellDirty())

	var raised []*datagrid.DataErrorEvent
	g.OnDataError(func(ev *datagrid.DataErrorEvent) { raised = append(raised, ev) })

	err := g.SetCurrentCell(2, 4)
	require.ErrorIs(t, err, datagrid.ErrCommitFailed)

	var de *datagrid.DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, cell(0, 1), de.Cell)
	assert.NotZero(t, de.Context&datagrid.ContextParsing)
	assert.NotZero(t, de.Context&datagrid.ContextCurrentCellChange)

	assert.Equal(t, cell(0, 1), g.CurrentCell(), "the current cell did not move")
	assert.True(t, g.IsEditing())
	assert.Equal(t, datagrid.Editing, g.EditState())
	assert.Equal(t, "abc", g.Editor().Text())
	assert.Len(t, raised, 1)
}

func TestDataError_HandlerAbandonsEdit(t *testing.T) {
	g := newEditGrid(t)
	g.OnDataError(func(ev *datagrid.DataErrorEvent) { ev.Cancel = false })
	var ended []datagrid.CellEndEditEvent
	g.OnCellEndEdit(func(ev datagrid.CellEndEditEvent) { ended = append(ended, ev) })

	require.NoError(t, g.SetCurrentCell(0, 1))
	g.TypeText("abc")
	require.NoError(t, g.SetCurrentCell(2, 4))

	assert.Equal(t, cell(2, 4), g.CurrentCell())
	assert.False(t, g.IsEditing())
	v, err := g.CellValue(0, 1)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, []datagrid.CellEndEditEvent{{Cell: cell(0, 1), Committed: false}}, ended)
}

func TestEndEdit_ParsesAndValidates(t *testing.T) {
	g := newEditGrid(t)
	var changed []datagrid.CellValueChangedEvent
	g.OnCellValueChanged(func(ev datagrid.CellValueChangedEvent) { changed = append(changed, ev) })

	require.NoError(t, g.SetCurrentCell(0, 2))
	g.TypeText("-5")
	err := g.EndEdit()
	assert.ErrorIs(t, err, datagrid.ErrCommitFailed)
	assert.ErrorIs(t, err, datagrid.ErrValidation)
	assert.True(t, g.IsEditing())

	require.NoError(t, g.CancelEdit())
	g.TypeText("42")
	require.NoError(t, g.EndEdit())
	assert.False(t, g.IsEditing())

	v, err := g.CellValue(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
	assert.Equal(t, "42", g.FormattedValue(0, 2))
	require.Len(t, changed, 1)
	assert.Equal(t, datagrid.CellValueChangedEvent{Cell: cell(0, 2), Old: nil, New: int64(42)}, changed[0])
	assert.True(t, g.IsCurrentRowDirty(), "a committed value dirties the row")
}

func TestCommitEdit_KeepsEditorOpen(t *testing.T) {
	g := newEditGrid(t)
	require.NoError(t, g.SetCurrentCell(1, 0))
	g.TypeText("Sabre")
	require.NoError(t, g.CommitEdit())

	assert.True(t, g.IsEditing())
	assert.False(t, g.IsCurrentCellDirty())
	assert.Equal(t, "Sabre", g.FormattedValue(1, 0))
	assert.NoError(t, g.EndEdit())
	assert.False(t, g.IsEditing())
}

func TestCellValidating_CancelKeepsEditor(t *testing.T) {
	g := newEditGrid(t)
	g.OnCellValidating(func(ev *datagrid.CellValidatingEvent) {
		ev.Cancel = ev.Text == "Pegassi"
	})
	require.NoError(t, g.SetCurrentCell(1, 0))
	g.TypeText("Pegassi")
	assert.ErrorIs(t, g.EndEdit(), datagrid.ErrCommitFailed)
	assert.True(t, g.IsEditing())
	assert.Equal(t, "", g.FormattedValue(1, 0))
}

func TestBeginEdit_Refusals(t *testing.T) {
	g := newEditGrid(t)
	assert.ErrorIs(t, g.BeginEdit(true), datagrid.ErrInvalidOperation, "no current cell")

	require.NoError(t, g.SetCellReadOnly(1, 3, true))
	require.NoError(t, g.SetCurrentCell(1, 3))
	assert.ErrorIs(t, g.BeginEdit(true), datagrid.ErrReadOnly)
	assert.False(t, g.TypeText("x"))

	g.OnCellBeginEdit(func(ev *datagrid.CellBeginEditEvent) { ev.Cancel = ev.Cell.Col == 2 })
	require.NoError(t, g.SetCurrentCell(2, 3))
	assert.ErrorIs(t, g.BeginEdit(false), datagrid.ErrInvalidOperation)

	assert.ErrorIs(t, g.CancelEdit(), datagrid.ErrNotEditing)
	assert.ErrorIs(t, g.NotifyCurrentCellDirty(true), datagrid.ErrNotEditing)
}

func TestReadOnlyLayers(t *testing.T) {
	g := newEditGrid(t)
	require.NoError(t, g.Columns().At(3).SetReadOnly(true))
	require.NoError(t, g.Rows().SetReadOnly(5, true))

	assert.True(t, g.IsCellReadOnly(3, 0))
	assert.True(t, g.IsCellReadOnly(0, 5))
	assert.False(t, g.IsCellReadOnly(0, 0))
	assert.True(t, g.IsCellReadOnly(9, 0), "unknown cells are read-only")

	require.NoError(t, g.SetReadOnly(true))
	assert.True(t, g.IsCellReadOnly(0, 0))
}

func TestEditModes(t *testing.T) {
	t.Run("F2 only", func(t *testing.T) {
		g := newEditGrid(t, datagrid.WithEditMode(datagrid.EditOnF2))
		require.NoError(t, g.SetCurrentCell(1, 0))
		assert.False(t, g.TypeText("x"))
		assert.True(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyF2}))
		assert.True(t, g.IsEditing())
	})
	t.Run("keystroke only", func(t *testing.T) {
		g := newEditGrid(t, datagrid.WithEditMode(datagrid.EditOnKeystroke))
		require.NoError(t, g.SetCurrentCell(1, 0))
		assert.False(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyF2}))
		assert.True(t, g.TypeText("x"))
	})
	t.Run("on enter", func(t *testing.T) {
		g := newEditGrid(t, datagrid.WithEditMode(datagrid.EditOnEnter))
		require.NoError(t, g.SetCurrentCell(1, 0))
		assert.True(t, g.IsEditing(), "entering a cell edits it")
	})
	t.Run("programmatic", func(t *testing.T) {
		g := newEditGrid(t, datagrid.WithEditMode(datagrid.EditProgrammatically))
		require.NoError(t, g.SetCurrentCell(1, 0))
		assert.False(t, g.TypeText("x"))
		assert.False(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyF2}))
		require.NoError(t, g.BeginEdit(false))
		assert.True(t, g.IsEditing())
	})
}

func TestKeyDown_EditingKeys(t *testing.T) {
	g := newEditGrid(t)
	require.NoError(t, g.SetCellValue(1, 0, "Infernus"))
	require.NoError(t, g.SetCurrentCell(1, 0))

	g.TypeText("Banshee")
	assert.True(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyEscape}))
	assert.True(t, g.IsEditing(), "the first escape restores the text")
	assert.Equal(t, "Infernus", g.Editor().Text())
	assert.False(t, g.IsCurrentCellDirty())

	assert.True(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyEscape}))
	assert.False(t, g.IsEditing())

	g.TypeText("Banshee")
	assert.True(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyEnter}))
	assert.Equal(t, "Banshee", g.FormattedValue(1, 0))
	assert.Equal(t, cell(1, 1), g.CurrentCell(), "enter commits and moves down")
}

func TestKeyDown_Navigation(t *testing.T) {
	g := newEditGrid(t)
	require.NoError(t, g.Columns().At(2).SetVisible(false))

	press := func(k datagrid.Key, mods datagrid.Modifiers) {
		t.Helper()
		require.True(t, g.KeyDown(datagrid.KeyEvent{Key: k, Mods: mods}))
	}
	press(datagrid.KeyDown, 0)
	assert.Equal(t, cell(0, 0), g.CurrentCell(), "the first key picks the first cell")

	press(datagrid.KeyRight, 0)
	press(datagrid.KeyRight, 0)
	assert.Equal(t, cell(3, 0), g.CurrentCell(), "hidden columns are skipped")

	press(datagrid.KeyEnd, datagrid.ModCtrl)
	assert.Equal(t, cell(4, 5), g.CurrentCell())

	press(datagrid.KeyTab, datagrid.ModShift)
	assert.Equal(t, cell(3, 5), g.CurrentCell())

	press(datagrid.KeyHome, 0)
	press(datagrid.KeyTab, datagrid.ModShift)
	assert.Equal(t, cell(4, 4), g.CurrentCell(), "shift-tab wraps to the previous row")

	press(datagrid.KeyUp, datagrid.ModShift)
	assert.Equal(t, cell(4, 4), g.Anchor())
	assert.Equal(t, 2, g.SelectedCellCount())

	assert.False(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyEscape}))
}

func TestKeyDown_DeleteClearsSelection(t *testing.T) {
	g := newEditGrid(t, datagrid.WithSelectionMode(datagrid.CellSelect))
	require.NoError(t, g.SetCellValue(1, 0, "a"))
	require.NoError(t, g.SetCellValue(1, 1, "b"))
	require.NoError(t, g.SetCellReadOnly(1, 1, true))
	require.NoError(t, g.SelectRange(cell(1, 0), cell(1, 1)))

	assert.True(t, g.KeyDown(datagrid.KeyEvent{Key: datagrid.KeyDelete}))
	assert.Equal(t, "", g.FormattedValue(1, 0))
	assert.Equal(t, "b", g.FormattedValue(1, 1), "read-only cells keep their value")
}

// newToggleGrid has a text column, a checkbox column and a combo box column.
func newToggleGrid(t *testing.T, opts ...datagrid.GridOption) *datagrid.Grid {
	t.Helper()
	g := datagrid.NewGrid(append([]datagrid.GridOption{datagrid.WithBounds(wide)}, opts...)...)
	_, err := g.Columns().Add("name", datagrid.WithWidth(80))
	require.NoError(t, err)
	_, err = g.Columns().Add("stolen", datagrid.WithWidth(80), datagrid.CheckBox())
	require.NoError(t, err)
	_, err = g.Columns().Add("class", datagrid.WithWidth(80), datagrid.WithComboBox("Sports", "Super", "Muscle"))
	require.NoError(t, err)
	_, err = g.Rows().Add(4)
	require.NoError(t, err)
	return g
}

func TestCheckBox_TogglesWithoutEditor(t *testing.T) {
	tests := []struct {
		name   string
		toggle func(g *datagrid.Grid)
	}{
		{"space key", func(g *datagrid.Grid) { g.KeyDown(key(datagrid.KeySpace, 0)) }},
		{"typed space", func(g *datagrid.Grid) { g.TypeText(" ") }},
		{"click on the glyph", func(g *datagrid.Grid) {
			c := g.CellBounds(1, 0).Center()
			press(g, c.X, c.Y, 0)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newToggleGrid(t)
			require.NoError(t, g.SetCurrentCell(1, 0))
			var changed []datagrid.CellValueChangedEvent
			g.OnCellValueChanged(func(ev datagrid.CellValueChangedEvent) { changed = append(changed, ev) })

			tt.toggle(g)
			assert.False(t, g.IsEditing(), "checkboxes never open the editor")
			v, err := g.CellValue(1, 0)
			require.NoError(t, err)
			assert.Equal(t, true, v)
			assert.True(t, g.IsCurrentRowDirty())

			tt.toggle(g)
			require.Len(t, changed, 2)
			assert.Equal(t, datagrid.CellValueChangedEvent{Cell: cell(1, 0), Old: true, New: false}, changed[1])
			assert.Equal(t, datagrid.KindBool, g.Columns().At(1).ValueKind())
		})
	}
}

func TestCheckBox_Refusals(t *testing.T) {
	g := newToggleGrid(t)
	require.NoError(t, g.SetCurrentCell(1, 1))
	assert.ErrorIs(t, g.BeginEdit(false), datagrid.ErrInvalidOperation)
	assert.False(t, g.TypeText("x"), "only Space reaches a checkbox")
	assert.ErrorIs(t, g.ToggleCheckBox(0, 1), datagrid.ErrInvalidOperation, "text column")

	// A click inside the cell but off the glyph only moves the current cell.
	b := g.CellBounds(1, 2)
	press(g, b.X+10, b.Y+b.H/2, 0)
	assert.Equal(t, cell(1, 2), g.CurrentCell())
	v, err := g.CellValue(1, 2)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, g.Columns().At(1).SetReadOnly(true))
	assert.ErrorIs(t, g.ToggleCheckBox(1, 2), datagrid.ErrReadOnly)
	assert.False(t, g.KeyDown(key(datagrid.KeySpace, 0)))

	p := newToggleGrid(t, datagrid.WithEditMode(datagrid.EditProgrammatically))
	require.NoError(t, p.SetCurrentCell(1, 0))
	assert.False(t, p.KeyDown(key(datagrid.KeySpace, 0)), "gestures do not toggle")
	require.NoError(t, p.ToggleCheckBox(1, 0))
	v, err = p.CellValue(1, 0)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestCheckBox_RunsValidationRule(t *testing.T) {
	g := newToggleGrid(t)
	require.NoError(t, g.Columns().At(1).SetValidationRule("value == true || row > 0"))

	require.NoError(t, g.ToggleCheckBox(1, 0))
	err := g.ToggleCheckBox(1, 0)
	assert.ErrorIs(t, err, datagrid.ErrCommitFailed)
	assert.ErrorIs(t, err, datagrid.ErrValidation)
	v, _ := g.CellValue(1, 0)
	assert.Equal(t, true, v, "rejected toggle keeps the value")

	g.OnCellValidating(func(ev *datagrid.CellValidatingEvent) { ev.Cancel = true })
	assert.ErrorIs(t, g.ToggleCheckBox(1, 1), datagrid.ErrCommitFailed)
}

func TestComboBox_CommitsOnlyItems(t *testing.T) {
	g := newToggleGrid(t)
	require.NoError(t, g.SetCurrentCell(2, 0))
	require.True(t, g.TypeText("Sedan"))

	err := g.EndEdit()
	assert.ErrorIs(t, err, datagrid.ErrCommitFailed)
	assert.ErrorIs(t, err, datagrid.ErrValidation)
	assert.True(t, g.IsEditing())

	// Alt+arrows step through the items and wrap.
	assert.True(t, g.KeyDown(key(datagrid.KeyDown, datagrid.ModAlt)))
	assert.Equal(t, "Sports", g.Editor().Text())
	assert.True(t, g.KeyDown(key(datagrid.KeyUp, datagrid.ModAlt)))
	assert.Equal(t, "Muscle", g.Editor().Text())
	assert.True(t, g.KeyDown(key(datagrid.KeyDown, datagrid.ModAlt)))
	assert.Equal(t, "Sports", g.Editor().Text())
	assert.True(t, g.IsCurrentCellDirty())

	require.True(t, g.KeyDown(key(datagrid.KeyEnter, 0)))
	assert.False(t, g.IsEditing())
	v, err := g.CellValue(2, 0)
	require.NoError(t, err)
	assert.Equal(t, "Sports", v)
	assert.Equal(t, cell(2, 1), g.CurrentCell())
}

func TestComboBox_Items(t *testing.T) {
	g := newToggleGrid(t)
	c := g.Columns().At(2)
	assert.Equal(t, datagrid.CellComboBox, c.CellType())

	items := c.Items()
	items[0] = "Compact"
	assert.Equal(t, []string{"Sports", "Super", "Muscle"}, c.Items(), "Items returns a copy")

	assert.ErrorIs(t, c.SetItems(), datagrid.ErrInvalidArgument)
	require.NoError(t, c.SetItems("Coupe", "Sedan"))
	require.NoError(t, g.SetCurrentCell(2, 1))
	g.TypeText("Sedan")
	require.NoError(t, g.EndEdit())

	_, err := g.Columns().Add("empty", datagrid.WithComboBox())
	assert.ErrorIs(t, err, datagrid.ErrInvalidArgument)
}
