package datagrid

// Editor is the in-place editing control hosted over the current cell.
type Editor interface {
	// Begin shows the editor with text. selectAll selects the whole text.
	Begin(text string, selectAll bool)
	// Text returns the current editor text.
	Text() string
	// InsertText types s at the cursor, replacing the selection.
	InsertText(s string)
	// HandleKey applies an editing key. It reports whether the text changed.
	HandleKey(ev KeyEvent) bool
	// SetBounds moves the editor; an empty rectangle hides it.
	SetBounds(r Rect)
	// End hides the editor.
	End()
}

// TextEditor is the default single-line Editor. It keeps a cursor, a
// selection and an undo stack.
type TextEditor struct {
	runes  []rune
	active bool
	bounds Rect

	// Cursor position (in runes, not bytes)
	CursorPos int

	// Selection range (in runes). SelectionStart is the anchor point,
	// SelectionEnd follows the cursor. -1 means no selection.
	SelectionStart int
	SelectionEnd   int

	undoStack []string
	undoIndex int
}

// NewTextEditor creates an inactive editor.
func NewTextEditor() *TextEditor {
	return &TextEditor{SelectionStart: -1, SelectionEnd: -1}
}

// Begin implements Editor.
func (e *TextEditor) Begin(text string, selectAll bool) {
	e.runes = []rune(text)
	e.active = true
	e.undoStack, e.undoIndex = nil, 0
	e.CursorPos = len(e.runes)
	e.ClearSelection()
	if selectAll {
		e.SelectAll()
	}
}

// Text implements Editor.
func (e *TextEditor) Text() string { return string(e.runes) }

// Active reports whether the editor is shown.
func (e *TextEditor) Active() bool { return e.active }

// Bounds returns the last bounds set by the grid.
func (e *TextEditor) Bounds() Rect { return e.bounds }

// SetBounds implements Editor.
func (e *TextEditor) SetBounds(r Rect) { e.bounds = r }

// End implements Editor.
func (e *TextEditor) End() {
	e.active = false
	e.bounds = Rect{}
	e.ClearSelection()
}

// HasSelection returns true if there's an active text selection.
func (e *TextEditor) HasSelection() bool {
	return e.SelectionStart >= 0 && e.SelectionStart != e.SelectionEnd
}

// SelectedRange returns the selection as (start, end) with start <= end, or
// (-1, -1) without a selection.
func (e *TextEditor) SelectedRange() (start, end int) {
	if !e.HasSelection() {
		return -1, -1
	}
	return min(e.SelectionStart, e.SelectionEnd), max(e.SelectionStart, e.SelectionEnd)
}

// ClearSelection removes the selection.
func (e *TextEditor) ClearSelection() {
	e.SelectionStart = -1
	e.SelectionEnd = -1
}

// SelectAll selects all text.
func (e *TextEditor) SelectAll() {
	e.SelectionStart = 0
	e.SelectionEnd = len(e.runes)
	e.CursorPos = len(e.runes)
}

// InsertText implements Editor.
func (e *TextEditor) InsertText(s string) {
	var typed []rune
	for _, ch := range s {
		if ch >= 32 {
			typed = append(typed, ch)
		}
	}
	if len(typed) == 0 {
		return
	}
	e.pushUndo()
	e.deleteSelection()
	tail := append(typed, e.runes[e.CursorPos:]...)
	e.runes = append(e.runes[:e.CursorPos], tail...)
	e.CursorPos += len(typed)
}

func (e *TextEditor) deleteSelection() bool {
	if !e.HasSelection() {
		return false
	}
	start, end := e.SelectedRange()
	e.runes = append(e.runes[:start], e.runes[end:]...)
	e.CursorPos = start
	e.ClearSelection()
	return true
}

// HandleKey implements Editor.
func (e *TextEditor) HandleKey(ev KeyEvent) bool {
	ctrl, shift := ev.Mods.Has(ModCtrl), ev.Mods.Has(ModShift)
	n := len(e.runes)
	switch ev.Key {
	case KeyA:
		if ctrl {
			e.SelectAll()
		}
		return false
	case KeyZ:
		if !ctrl {
			return false
		}
		if shift {
			return e.redo()
		}
		return e.undo()
	case KeyY:
		return ctrl && e.redo()
	case KeyLeft:
		to := e.CursorPos
		if to > 0 {
			to--
			if ctrl {
				to = findWordBoundaryLeft(e.runes, e.CursorPos)
			}
		}
		e.moveCursor(to, shift)
	case KeyRight:
		to := e.CursorPos
		if to < n {
			to++
			if ctrl {
				to = findWordBoundaryRight(e.runes, e.CursorPos)
			}
		}
		e.moveCursor(to, shift)
	case KeyHome:
		e.moveCursor(0, shift)
	case KeyEnd:
		e.moveCursor(n, shift)
	case KeyBackspace:
		if e.HasSelection() {
			e.pushUndo()
			return e.deleteSelection()
		}
		if e.CursorPos == 0 {
			return false
		}
		e.pushUndo()
		e.runes = append(e.runes[:e.CursorPos-1], e.runes[e.CursorPos:]...)
		e.CursorPos--
		return true
	case KeyDelete:
		if e.HasSelection() {
			e.pushUndo()
			return e.deleteSelection()
		}
		if e.CursorPos >= n {
			return false
		}
		e.pushUndo()
		e.runes = append(e.runes[:e.CursorPos], e.runes[e.CursorPos+1:]...)
		return true
	case KeySpace:
		e.InsertText(" ")
		return true
	}
	return false
}

func (e *TextEditor) moveCursor(to int, extend bool) {
	if !extend {
		e.ClearSelection()
	} else if e.SelectionStart < 0 {
		e.SelectionStart = e.CursorPos
	}
	e.CursorPos = to
	if extend {
		e.SelectionEnd = to
	}
}

// pushUndo saves the current text before a change.
func (e *TextEditor) pushUndo() {
	const maxUndoSize = 50
	text := string(e.runes)
	if e.undoIndex < len(e.undoStack) {
		e.undoStack = e.undoStack[:e.undoIndex]
	}
	if len(e.undoStack) > 0 && e.undoStack[len(e.undoStack)-1] == text {
		return
	}
	e.undoStack = append(e.undoStack, text)
	e.undoIndex = len(e.undoStack)
	if len(e.undoStack) > maxUndoSize {
		e.undoStack = e.undoStack[1:]
		e.undoIndex--
	}
}

func (e *TextEditor) undo() bool {
	cur := string(e.runes)
	if e.undoIndex == len(e.undoStack) && len(e.undoStack) > 0 && e.undoStack[len(e.undoStack)-1] != cur {
		e.undoStack = append(e.undoStack, cur)
	}
	if e.undoIndex == 0 {
		return false
	}
	e.undoIndex--
	e.setText(e.undoStack[e.undoIndex])
	return true
}

func (e *TextEditor) redo() bool {
	if e.undoIndex >= len(e.undoStack)-1 {
		return false
	}
	e.undoIndex++
	e.setText(e.undoStack[e.undoIndex])
	return true
}

func (e *TextEditor) setText(s string) {
	e.runes = []rune(s)
	e.CursorPos = len(e.runes)
	e.ClearSelection()
}

// findWordBoundaryLeft finds the start of the word to the left of pos.
func findWordBoundaryLeft(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	pos--
	for pos > 0 && isWhitespace(runes[pos]) {
		pos--
	}
	for pos > 0 && !isWhitespace(runes[pos-1]) {
		pos--
	}
	return pos
}

// findWordBoundaryRight finds the end of the word to the right of pos.
func findWordBoundaryRight(runes []rune, pos int) int {
	n := len(runes)
	for pos < n && !isWhitespace(runes[pos]) {
		pos++
	}
	for pos < n && isWhitespace(runes[pos]) {
		pos++
	}
	return pos
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
