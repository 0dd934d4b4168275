package datagrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/datagrid"
)

func key(k datagrid.Key, mods datagrid.Modifiers) datagrid.KeyEvent {
	return datagrid.KeyEvent{Key: k, Mods: mods}
}

func TestTextEditor_WordsAndSelection(t *testing.T) {
	e := datagrid.NewTextEditor()
	e.Begin("Grotti Cheetah", false)
	assert.True(t, e.Active())
	assert.Equal(t, 14, e.CursorPos)

	assert.False(t, e.HandleKey(key(datagrid.KeyLeft, datagrid.ModCtrl)), "moves do not change text")
	assert.Equal(t, 7, e.CursorPos)

	e.HandleKey(key(datagrid.KeyEnd, datagrid.ModShift))
	start, end := e.SelectedRange()
	assert.Equal(t, 7, start)
	assert.Equal(t, 14, end)

	e.InsertText("Turismo")
	assert.Equal(t, "Grotti Turismo", e.Text())
	assert.False(t, e.HasSelection())

	e.HandleKey(key(datagrid.KeyHome, 0))
	e.HandleKey(key(datagrid.KeyRight, datagrid.ModCtrl))
	assert.Equal(t, 7, e.CursorPos)

	e.InsertText("\t")
	assert.Equal(t, "Grotti Turismo", e.Text(), "control characters are dropped")

	e.End()
	assert.False(t, e.Active())
	assert.Equal(t, datagrid.Rect{}, e.Bounds())
}

func TestTextEditor_DeleteKeys(t *testing.T) {
	e := datagrid.NewTextEditor()
	e.Begin("Comet", false)

	assert.True(t, e.HandleKey(key(datagrid.KeyBackspace, 0)))
	assert.Equal(t, "Come", e.Text())
	assert.False(t, e.HandleKey(key(datagrid.KeyDelete, 0)), "nothing after the caret")

	e.HandleKey(key(datagrid.KeyHome, 0))
	assert.False(t, e.HandleKey(key(datagrid.KeyBackspace, 0)))
	assert.True(t, e.HandleKey(key(datagrid.KeyDelete, 0)))
	assert.Equal(t, "ome", e.Text())

	e.HandleKey(key(datagrid.KeyA, datagrid.ModCtrl))
	assert.True(t, e.HasSelection())
	assert.True(t, e.HandleKey(key(datagrid.KeyDelete, 0)))
	assert.Empty(t, e.Text())

	e.Begin("Sentinel", true)
	start, end := e.SelectedRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 8, end)
	e.InsertText("X")
	assert.Equal(t, "X", e.Text())
}

func TestTextEditor_UndoRedo(t *testing.T) {
	e := datagrid.NewTextEditor()
	e.Begin("Grotti Cheetah", false)
	e.HandleKey(key(datagrid.KeyLeft, datagrid.ModCtrl))
	e.HandleKey(key(datagrid.KeyEnd, datagrid.ModShift))
	e.InsertText("Turismo")
	e.HandleKey(key(datagrid.KeyBackspace, 0))
	assert.Equal(t, "Grotti Turism", e.Text())

	ctrl := datagrid.ModCtrl
	assert.True(t, e.HandleKey(key(datagrid.KeyZ, ctrl)))
	assert.Equal(t, "Grotti Turismo", e.Text())
	assert.True(t, e.HandleKey(key(datagrid.KeyZ, ctrl)))
	assert.Equal(t, "Grotti Cheetah", e.Text())
	assert.False(t, e.HandleKey(key(datagrid.KeyZ, ctrl)))

	assert.True(t, e.HandleKey(key(datagrid.KeyY, ctrl)))
	assert.Equal(t, "Grotti Turismo", e.Text())
	assert.True(t, e.HandleKey(key(datagrid.KeyZ, ctrl|datagrid.ModShift)))
	assert.Equal(t, "Grotti Turism", e.Text())
	assert.False(t, e.HandleKey(key(datagrid.KeyY, ctrl)))

	assert.False(t, e.HandleKey(key(datagrid.KeyZ, 0)), "plain Z is typed, not a key")
}

func TestEditor_CaretKeysStayInEditor(t *testing.T) {
	g := newGrid(t, wide, 2, 80, 3)
	is := assert.New(t)
	is.NoError(g.SetCurrentCell(0, 0))
	is.True(g.TypeText("Pegassi"))

	is.True(g.KeyDown(key(datagrid.KeyHome, 0)))
	is.True(g.KeyDown(key(datagrid.KeyLeft, 0)))
	is.True(g.IsEditing())
	is.Equal(cell(0, 0), g.CurrentCell())
	is.True(g.IsCurrentCellDirty())
}
