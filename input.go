package datagrid

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key the grid reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyZ
	KeyY
	KeyF2
	KeyCount
)

// Modifiers is the modifier key state of an input event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether every modifier in m is held.
func (s Modifiers) Has(m Modifiers) bool { return s&m == m }

// KeyEvent is a key press delivered by the host.
type KeyEvent struct {
	Key  Key
	Mods Modifiers
}

// MouseEvent is a pointer event in client coordinates.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Mods   Modifiers
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyNone:      "--",
		KeyTab:       "Tab",
		KeyLeft:      "Left",
		KeyRight:     "Right",
		KeyUp:        "Up",
		KeyDown:      "Down",
		KeyPageUp:    "PgUp",
		KeyPageDown:  "PgDn",
		KeyHome:      "Home",
		KeyEnd:       "End",
		KeyDelete:    "Del",
		KeyBackspace: "Backspace",
		KeySpace:     "Space",
		KeyEnter:     "Enter",
		KeyEscape:    "Esc",
		KeyA:         "A",
		KeyZ:         "Z",
		KeyY:         "Y",
		KeyF2:        "F2",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}

// KeyDown handles a key press. It reports whether the grid consumed the key.
func (g *Grid) KeyDown(ev KeyEvent) bool {
	if g.edit.state != NotEditing {
		return g.editingKey(ev)
	}
	switch ev.Key {
	case KeyF2:
		if g.editMode.onF2() {
			return g.beginEdit(false, false) == nil
		}
		return false
	case KeyA:
		if ev.Mods.Has(ModCtrl) {
			return g.SelectAll() == nil
		}
		return false
	case KeyEscape:
		return false
	case KeyDelete:
		return g.clearSelectedValues()
	case KeySpace:
		if ev.Mods == 0 {
			return g.toggleCurrentCheckBox()
		}
	}
	dc, dr, ok := g.navigationTarget(ev)
	if !ok {
		return false
	}
	g.navigate(dc, dr, ev.Mods.Has(ModShift) && ev.Key != KeyTab)
	return true
}

// editingKey routes a key to the live editor or ends the edit.
func (g *Grid) editingKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEscape:
		if g.edit.dirty {
			// First Escape restores the text, second one leaves the cell.
			g.editor.Begin(g.edit.initialText, true)
			g.edit.dirty = false
			return true
		}
		g.abandonEdit()
		return true
	case KeyUp, KeyDown:
		// Alt+arrow steps through combo box items.
		delta := 1
		if ev.Key == KeyUp {
			delta = -1
		}
		if ev.Mods.Has(ModAlt) && g.stepComboItem(delta) {
			return true
		}
	}
	switch ev.Key {
	case KeyEnter, KeyTab, KeyUp, KeyDown, KeyPageUp, KeyPageDown:
		if err := g.commitEdit(ContextCommit|ContextCurrentCellChange, false); err != nil {
			return true
		}
		if dc, dr, ok := g.navigationTarget(ev); ok {
			g.navigate(dc, dr, false)
		}
		return true
	}
	if g.editor.HandleKey(ev) {
		g.editorChanged()
	}
	// The editor owns the keyboard; caret moves repaint too.
	g.invalidateCell(g.edit.cell.Col, g.edit.cell.Row)
	return true
}

// TypeText handles typed characters. Outside an edit it starts one when the
// edit mode allows keystrokes; the text replaces the cell content.
func (g *Grid) TypeText(s string) bool {
	if s == "" {
		return false
	}
	if g.edit.state == NotEditing {
		if a := g.current; !a.IsNone() && g.columns.items[a.Col].cellType == CellCheckBox {
			return s == " " && g.toggleCurrentCheckBox()
		}
		if !g.editMode.onKeystroke() {
			return false
		}
		if err := g.beginEdit(true, false); err != nil {
			return false
		}
	}
	g.editor.InsertText(s)
	g.editorChanged()
	return true
}

// navigationTarget maps a navigation key to a target cell.
func (g *Grid) navigationTarget(ev KeyEvent) (int, int, bool) {
	cur := g.current
	if cur.IsNone() {
		c, r := g.columns.First(StateVisible, 0), g.rows.First(StateVisible, 0)
		return c, r, c >= 0 && r >= 0
	}
	col, row := cur.Col, cur.Row
	ctrl := ev.Mods.Has(ModCtrl)
	left, right := KeyLeft, KeyRight
	if g.rightToLeft {
		left, right = right, left
	}
	switch ev.Key {
	case left:
		if ctrl {
			col = g.columns.First(StateVisible, 0)
		} else {
			col = g.columns.Prev(col, StateVisible, 0)
		}
	case right:
		if ctrl {
			col = g.columns.Last(StateVisible, 0)
		} else {
			col = g.columns.Next(col, StateVisible, 0)
		}
	case KeyUp:
		if ctrl {
			row = g.rows.First(StateVisible, 0)
		} else {
			row = g.rows.Prev(row, StateVisible, 0)
		}
	case KeyDown, KeyEnter:
		if ctrl {
			row = g.rows.Last(StateVisible, 0)
		} else {
			row = g.rows.Next(row, StateVisible, 0)
		}
	case KeyHome:
		col = g.columns.First(StateVisible, 0)
		if ctrl {
			row = g.rows.First(StateVisible, 0)
		}
	case KeyEnd:
		col = g.columns.Last(StateVisible, 0)
		if ctrl {
			row = g.rows.Last(StateVisible, 0)
		}
	case KeyPageDown, KeyPageUp:
		row = g.pageRow(row, ev.Key == KeyPageDown)
	case KeyTab:
		next := g.columns.Next(col, StateVisible, 0)
		if ev.Mods.Has(ModShift) {
			next = g.columns.Prev(col, StateVisible, 0)
		}
		if next >= 0 {
			col = next
			break
		}
		r := g.rows.Next(row, StateVisible, 0)
		col = g.columns.First(StateVisible, 0)
		if ev.Mods.Has(ModShift) {
			r = g.rows.Prev(row, StateVisible, 0)
			col = g.columns.Last(StateVisible, 0)
		}
		if r < 0 {
			return 0, 0, false
		}
		row = r
	default:
		return 0, 0, false
	}
	if col < 0 || row < 0 {
		return 0, 0, false
	}
	return col, row, true
}

// pageRow returns the row one screen away from row.
func (g *Grid) pageRow(row int, down bool) int {
	h := max(g.scrollingHeight(), 1)
	moved := 0
	for {
		next := g.rows.Next(row, StateVisible, 0)
		if !down {
			next = g.rows.Prev(row, StateVisible, 0)
		}
		if next < 0 {
			return row
		}
		moved += g.rows.shared(next).height
		if moved > h {
			return row
		}
		row = next
	}
}

func (g *Grid) navigate(col, row int, extend bool) {
	var err error
	if extend {
		err = g.ExtendSelection(col, row)
	} else {
		err = g.SetCurrentCell(col, row)
	}
	if err != nil {
		g.log.Debug("navigate", "col", col, "row", row, "err", err)
	}
}

// clearSelectedValues empties the values of selected editable cells.
func (g *Grid) clearSelectedValues() bool {
	cells := g.SelectedCells()
	if len(cells) == 0 {
		return false
	}
	defer g.suspend(suspendLayout)()
	for _, a := range cells {
		if g.IsCellReadOnly(a.Col, a.Row) {
			continue
		}
		if err := g.SetCellValue(a.Col, a.Row, nil); err != nil {
			g.log.Debug("clear value", "cell", a, "err", err)
		}
	}
	return true
}
