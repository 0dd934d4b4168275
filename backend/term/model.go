package term

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/datagrid"
)

// DoubleClickTime is the longest gap between two presses of a double click.
const DoubleClickTime = 400 * time.Millisecond

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

// Model is a bubbletea model showing one grid above a status line.
type Model struct {
	grid   *datagrid.Grid
	host   *Host
	screen *Screen
	view   string
	status string

	lastPress    time.Time
	lastPressPos [2]int

	// Save, when set, runs on ctrl+s.
	Save func() error
}

// NewModel wraps a grid whose host is h. The grid gets its size from the
// first tea.WindowSizeMsg.
func NewModel(g *datagrid.Grid, h *Host) *Model {
	m := &Model{grid: g, host: h, screen: NewScreen(0, 0)}
	m.screen.ErrorColor = g.Theme().ErrorColor
	g.OnDataError(func(ev *datagrid.DataErrorEvent) {
		m.status = ev.Err.Err.Error()
	})
	g.OnCurrentCellChanged(func(datagrid.CurrentCellChangedEvent) {
		m.status = ""
	})
	return m
}

// Screen returns the character buffer the grid is painted into.
func (m *Model) Screen() *Screen { return m.screen }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return m.host.Cmd() }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case timerMsg:
		m.host.fire(msg.id)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlQ:
			return m, tea.Quit
		case tea.KeyCtrlS:
			m.save()
			return m, nil
		}
		m.key(msg)
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, m.host.Cmd()
}

func (m *Model) resize(w, h int) {
	h = max(h-1, 0)
	m.screen.Resize(w, h)
	if err := m.grid.SetBounds(datagrid.Rect{W: w * CellW, H: h * CellH}); err != nil {
		m.status = err.Error()
	}
	m.host.dirty = true
}

func (m *Model) save() {
	if m.Save == nil {
		return
	}
	if m.grid.IsEditing() {
		if err := m.grid.EndEdit(); err != nil {
			m.status = err.Error()
			return
		}
	}
	if err := m.Save(); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved"
}

func (m *Model) key(msg tea.KeyMsg) {
	if ev, ok := keyEvent(msg); ok {
		m.grid.KeyDown(ev)
		return
	}
	switch msg.Type {
	case tea.KeySpace:
		m.grid.TypeText(" ")
	case tea.KeyRunes:
		m.grid.TypeText(string(msg.Runes))
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := toPixel(msg.X, msg.Y)
	ev := datagrid.MouseEvent{X: x, Y: y, Mods: mouseMods(msg)}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.grid.MouseWheel(1, ev.Mods)
			return
		case tea.MouseButtonWheelDown:
			m.grid.MouseWheel(-1, ev.Mods)
			return
		case tea.MouseButtonWheelLeft:
			m.grid.MouseWheel(1, ev.Mods|datagrid.ModShift)
			return
		case tea.MouseButtonWheelRight:
			m.grid.MouseWheel(-1, ev.Mods|datagrid.ModShift)
			return
		case tea.MouseButtonRight:
			ev.Button = datagrid.MouseButtonRight
		case tea.MouseButtonMiddle:
			ev.Button = datagrid.MouseButtonMiddle
		}
		now := time.Now()
		pos := [2]int{msg.X, msg.Y}
		if ev.Button == datagrid.MouseButtonLeft && pos == m.lastPressPos && now.Sub(m.lastPress) <= DoubleClickTime {
			m.lastPress = time.Time{}
			m.grid.MouseDoubleClick(ev)
			return
		}
		m.lastPress, m.lastPressPos = now, pos
		m.grid.MouseDown(ev)
	case tea.MouseActionRelease:
		m.grid.MouseUp(ev)
	case tea.MouseActionMotion:
		m.grid.MouseMove(ev)
	}
}

func mouseMods(msg tea.MouseMsg) datagrid.Modifiers {
	var mods datagrid.Modifiers
	if msg.Shift {
		mods |= datagrid.ModShift
	}
	if msg.Ctrl {
		mods |= datagrid.ModCtrl
	}
	if msg.Alt {
		mods |= datagrid.ModAlt
	}
	return mods
}

// View implements tea.Model. The grid is painted again only when it asked
// for it.
func (m *Model) View() string {
	if m.host.TakeDirty() {
		m.grid.Paint(m.screen)
		m.view = m.screen.String()
	}
	return m.view + "\n" + statusStyle.Render(m.statusLine())
}

func (m *Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	cur := m.grid.CurrentCell()
	if cur.IsNone() {
		return fmt.Sprintf("%d rows", m.grid.Rows().Len())
	}
	name := m.grid.Columns().At(cur.Col).HeaderText()
	return fmt.Sprintf("%s %d: %s", name, cur.Row+1, m.grid.FormattedValue(cur.Col, cur.Row))
}

// keys maps bubbletea key types to grid keys. Printable keys are typed as
// text instead.
var keys = map[tea.KeyType]datagrid.KeyEvent{
	tea.KeyTab:      {Key: datagrid.KeyTab},
	tea.KeyShiftTab: {Key: datagrid.KeyTab, Mods: datagrid.ModShift},

	tea.KeyUp:             {Key: datagrid.KeyUp},
	tea.KeyDown:           {Key: datagrid.KeyDown},
	tea.KeyLeft:           {Key: datagrid.KeyLeft},
	tea.KeyRight:          {Key: datagrid.KeyRight},
	tea.KeyShiftUp:        {Key: datagrid.KeyUp, Mods: datagrid.ModShift},
	tea.KeyShiftDown:      {Key: datagrid.KeyDown, Mods: datagrid.ModShift},
	tea.KeyShiftLeft:      {Key: datagrid.KeyLeft, Mods: datagrid.ModShift},
	tea.KeyShiftRight:     {Key: datagrid.KeyRight, Mods: datagrid.ModShift},
	tea.KeyCtrlUp:         {Key: datagrid.KeyUp, Mods: datagrid.ModCtrl},
	tea.KeyCtrlDown:       {Key: datagrid.KeyDown, Mods: datagrid.ModCtrl},
	tea.KeyCtrlLeft:       {Key: datagrid.KeyLeft, Mods: datagrid.ModCtrl},
	tea.KeyCtrlRight:      {Key: datagrid.KeyRight, Mods: datagrid.ModCtrl},
	tea.KeyCtrlShiftUp:    {Key: datagrid.KeyUp, Mods: datagrid.ModCtrl | datagrid.ModShift},
	tea.KeyCtrlShiftDown:  {Key: datagrid.KeyDown, Mods: datagrid.ModCtrl | datagrid.ModShift},
	tea.KeyCtrlShiftLeft:  {Key: datagrid.KeyLeft, Mods: datagrid.ModCtrl | datagrid.ModShift},
	tea.KeyCtrlShiftRight: {Key: datagrid.KeyRight, Mods: datagrid.ModCtrl | datagrid.ModShift},

	tea.KeyHome:          {Key: datagrid.KeyHome},
	tea.KeyEnd:           {Key: datagrid.KeyEnd},
	tea.KeyShiftHome:     {Key: datagrid.KeyHome, Mods: datagrid.ModShift},
	tea.KeyShiftEnd:      {Key: datagrid.KeyEnd, Mods: datagrid.ModShift},
	tea.KeyCtrlHome:      {Key: datagrid.KeyHome, Mods: datagrid.ModCtrl},
	tea.KeyCtrlEnd:       {Key: datagrid.KeyEnd, Mods: datagrid.ModCtrl},
	tea.KeyCtrlShiftHome: {Key: datagrid.KeyHome, Mods: datagrid.ModCtrl | datagrid.ModShift},
	tea.KeyCtrlShiftEnd:  {Key: datagrid.KeyEnd, Mods: datagrid.ModCtrl | datagrid.ModShift},
	tea.KeyPgUp:          {Key: datagrid.KeyPageUp},
	tea.KeyPgDown:        {Key: datagrid.KeyPageDown},
	tea.KeyCtrlPgUp:      {Key: datagrid.KeyPageUp, Mods: datagrid.ModCtrl},
	tea.KeyCtrlPgDown:    {Key: datagrid.KeyPageDown, Mods: datagrid.ModCtrl},

	tea.KeyDelete:    {Key: datagrid.KeyDelete},
	tea.KeyBackspace: {Key: datagrid.KeyBackspace},
	tea.KeyEnter:     {Key: datagrid.KeyEnter},
	tea.KeyEsc:       {Key: datagrid.KeyEscape},
	tea.KeyF2:        {Key: datagrid.KeyF2},
	tea.KeyCtrlA:     {Key: datagrid.KeyA, Mods: datagrid.ModCtrl},
	tea.KeyCtrlZ:     {Key: datagrid.KeyZ, Mods: datagrid.ModCtrl},
	tea.KeyCtrlY:     {Key: datagrid.KeyY, Mods: datagrid.ModCtrl},
}

// keyEvent translates a key message, adding alt when it was held.
func keyEvent(msg tea.KeyMsg) (datagrid.KeyEvent, bool) {
	ev, ok := keys[msg.Type]
	if ok && msg.Alt {
		ev.Mods |= datagrid.ModAlt
	}
	return ev, ok
}
