package term

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
	"github.com/go-theft-auto/datagrid/source/memory"
)

// newTermGrid builds a 40x6 character grid over three vehicles.
//
//	      Name        Price
//	      Infernus    95000
//	      Banshee     45000
//	      Sabre       19000
func newTermGrid(t *testing.T) (*datagrid.Grid, *Host) {
	t.Helper()
	host := NewHost()
	opts := append(Options(datagrid.DefaultTheme()),
		datagrid.WithHost(host),
		datagrid.WithBounds(datagrid.Rect{W: 40 * CellW, H: 6 * CellH}),
	)
	g := datagrid.NewGrid(opts...)
	require.NoError(t, Configure(g))
	_, err := g.Columns().Add("name", datagrid.WithHeaderText("Name"), datagrid.WithWidth(12*CellW))
	require.NoError(t, err)
	_, err = g.Columns().Add("price", datagrid.WithHeaderText("Price"), datagrid.WithWidth(10*CellW))
	require.NoError(t, err)
	table := memory.FromRows([][]any{
		{"Infernus", 95000},
		{"Banshee", 45000},
		{"Sabre", 19000},
	})
	require.NoError(t, g.SetDataSource(table))
	return g, host
}

func lines(s *Screen) []string {
	return strings.Split(s.Text(), "\n")
}

func TestToSpan_DropsHairlines(t *testing.T) {
	assert.True(t, toSpan(datagrid.Rect{X: 3 * CellW, Y: 0, W: 1, H: 5 * CellH}).empty())
	assert.True(t, toSpan(datagrid.Rect{X: 0, Y: 2*CellH - 1, W: 10 * CellW, H: 1}).empty())

	sp := toSpan(datagrid.Rect{X: CellW, Y: CellH, W: 2 * CellW, H: 3 * CellH})
	assert.Equal(t, span{x0: 1, y0: 1, x1: 3, y1: 4}, sp)
}

func TestMeasurer_CountsWideRunes(t *testing.T) {
	m := Measurer{}
	assert.Equal(t, datagrid.Size{W: 5 * CellW, H: CellH}, m.MeasureText("Sabre"))
	assert.Equal(t, datagrid.Size{W: 4 * CellW, H: CellH}, m.MeasureText("日本"))
	assert.Equal(t, datagrid.Size{W: 3 * CellW, H: 2 * CellH}, m.MeasureText("ab\nabc"))
}

func TestScreen_PaintsHeadersAndCells(t *testing.T) {
	g, _ := newTermGrid(t)
	s := NewScreen(40, 6)
	g.Paint(s)

	ls := lines(s)
	require.Len(t, ls, 6)
	// Row headers take six characters, cells one character of padding.
	assert.Equal(t, "Name", ls[0][7:11])
	assert.Equal(t, "Price", ls[0][19:24])
	assert.Equal(t, "Infernus", ls[1][7:15])
	assert.Equal(t, "95000", ls[1][19:24])
	assert.Equal(t, "Sabre", ls[3][7:12])
	assert.Contains(t, s.String(), "Infernus")
}

func TestScreen_TruncatesLongText(t *testing.T) {
	g, _ := newTermGrid(t)
	require.NoError(t, g.SetCellValue(0, 0, "Infernus Turbo Deluxe"))
	s := NewScreen(40, 6)
	g.Paint(s)

	row := []rune(lines(s)[1])
	// Ten characters fit between the paddings of a twelve character column.
	assert.Equal(t, "Infernus …", string(row[7:17]))
}

func TestScreen_WideRunes(t *testing.T) {
	s := NewScreen(6, 1)
	clip := span{x0: 0, y0: 0, x1: 5, y1: 1}
	s.put(clip, 0, 0, "日本語", datagrid.ColorWhite, 0)
	assert.Equal(t, "日本  ", s.Text(), "a wide rune cut by the clip becomes a space")
}

func TestModel_KeysMoveAndEdit(t *testing.T) {
	g, host := newTermGrid(t)
	m := NewModel(g, host)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 7})
	assert.Equal(t, datagrid.Rect{W: 40 * CellW, H: 6 * CellH}, g.Bounds())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, datagrid.CellAddress{Col: 0, Row: 0}, g.CurrentCell())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, datagrid.CellAddress{Col: 1, Row: 1}, g.CurrentCell())

	view := m.View()
	assert.Contains(t, view, "Price 2: 45000")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("47")})
	assert.True(t, g.IsEditing())
	assert.Equal(t, "47", g.Editor().Text())
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, g.IsEditing())

	v, err := g.CellValue(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "47", v)
}

func TestModel_QuitKeys(t *testing.T) {
	g, host := newTermGrid(t)
	m := NewModel(g, host)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_SaveCommitsPendingEdit(t *testing.T) {
	g, host := newTermGrid(t)
	m := NewModel(g, host)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 7})
	saved := 0
	m.Save = func() error {
		saved++
		return nil
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Cheetah")})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, 1, saved)
	assert.False(t, g.IsEditing())
	assert.Equal(t, "Cheetah", g.FormattedValue(0, 0))
	assert.Contains(t, m.View(), "saved")
}

func TestModel_MouseClickAndDoubleClick(t *testing.T) {
	g, host := newTermGrid(t)
	m := NewModel(g, host)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 7})

	press := tea.MouseMsg{X: 9, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 9, Y: 2, Action: tea.MouseActionRelease}
	m.Update(press)
	m.Update(release)
	assert.Equal(t, datagrid.CellAddress{Col: 0, Row: 1}, g.CurrentCell())
	assert.False(t, g.IsEditing())

	m.Update(press)
	m.Update(release)
	assert.True(t, g.IsEditing(), "a second press on the same cell edits it")
}

func TestModel_WheelScrolls(t *testing.T) {
	host := NewHost()
	opts := append(Options(datagrid.DefaultTheme()),
		datagrid.WithHost(host),
		datagrid.WithBounds(datagrid.Rect{W: 40 * CellW, H: 6 * CellH}),
	)
	g := datagrid.NewGrid(opts...)
	require.NoError(t, Configure(g))
	_, err := g.Columns().Add("n")
	require.NoError(t, err)
	table := memory.NewTable(1, 100)
	table.Generate = func(_, row int) any { return row }
	require.NoError(t, g.SetDataSource(table))

	m := NewModel(g, host)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 7})
	m.Update(tea.MouseMsg{X: 9, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, datagrid.WheelScrollRows*CellH, g.VerticalOffset())
	assert.Equal(t, datagrid.WheelScrollRows, g.FirstDisplayedScrollingRow())
}

func TestHost_Timers(t *testing.T) {
	h := NewHost()
	assert.True(t, h.TakeDirty(), "a new host paints once")
	assert.False(t, h.TakeDirty())

	fired := 0
	h.ScheduleTimer(time.Millisecond, func() { fired++ })
	cancel := h.ScheduleTimer(time.Millisecond, func() { fired += 10 })
	assert.Equal(t, 2, h.Pending())
	assert.NotNil(t, h.Cmd())
	assert.Nil(t, h.Cmd(), "commands are handed out once")

	cancel()
	h.fire(1)
	h.fire(2)
	h.fire(1)
	assert.Equal(t, 1, fired)
	assert.Zero(t, h.Pending())

	h.Invalidate(datagrid.Rect{})
	assert.True(t, h.TakeDirty())
}

func TestKeyEvent_AddsAlt(t *testing.T) {
	ev, ok := keyEvent(tea.KeyMsg{Type: tea.KeyShiftTab, Alt: true})
	require.True(t, ok)
	assert.Equal(t, datagrid.KeyEvent{Key: datagrid.KeyTab, Mods: datagrid.ModShift | datagrid.ModAlt}, ev)

	_, ok = keyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, ok)
}
