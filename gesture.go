package datagrid

import "time"

// Gesture timing and wheel step.
const (
	AutoScrollInterval = 50 * time.Millisecond
	WheelScrollRows    = 3
)

// gestureKind is the pointer gesture in progress.
type gestureKind uint8

const (
	gestureNone gestureKind = iota
	gestureSelect
	gestureResizeColumn
	gestureResizeRow
	gestureScrollBar
)

// gestureState tracks a mouse drag from button down to button up.
type gestureState struct {
	kind       gestureKind
	band       int   // Column or row being resized, or the scroll bar orientation
	startX     int   // Pointer position when the drag started
	startY     int
	startSize  int   // Band size when the resize started
	last       Point // Last pointer position
	stopScroll func()
}

func (s *gestureState) reset() {
	if s.stopScroll != nil {
		s.stopScroll()
	}
	*s = gestureState{}
}

// MouseDown starts a gesture at the pointer. It reports whether the grid
// handled the event.
func (g *Grid) MouseDown(ev MouseEvent) bool {
	g.gesture.reset()
	if ev.Button != MouseButtonLeft {
		return false
	}
	if o, ok := g.scrollBarAt(Point{X: ev.X, Y: ev.Y}); ok {
		g.pressScrollBar(o, Point{X: ev.X, Y: ev.Y})
		return true
	}
	hit := g.HitTest(ev.X, ev.Y)
	switch hit.Type {
	case HitColumnResize:
		g.gesture = gestureState{kind: gestureResizeColumn, band: hit.Col, startX: ev.X, startY: ev.Y,
			startSize: g.columns.items[hit.Col].width}
	case HitRowResize:
		g.gesture = gestureState{kind: gestureResizeRow, band: hit.Row, startX: ev.X, startY: ev.Y,
			startSize: g.rows.shared(hit.Row).height}
	case HitCell:
		g.clickCell(hit.Col, hit.Row, ev.Mods)
		if ev.Mods == 0 {
			g.clickCheckBox(hit.Col, hit.Row, Point{X: ev.X, Y: ev.Y})
		}
		g.gesture = gestureState{kind: gestureSelect, last: Point{X: ev.X, Y: ev.Y}}
	case HitColumnHeader:
		g.clickColumnHeader(hit.Col, ev.Mods)
	case HitRowHeader:
		g.clickRowHeader(hit.Row, ev.Mods)
		if g.selectionMode.rowBands() {
			g.gesture = gestureState{kind: gestureSelect, last: Point{X: ev.X, Y: ev.Y}}
		}
	case HitTopLeftHeader:
		if err := g.SelectAll(); err != nil {
			g.log.Debug("select all", "err", err)
		}
	default:
		return false
	}
	return true
}

func (g *Grid) clickCell(col, row int, mods Modifiers) {
	var err error
	switch {
	case mods.Has(ModShift):
		err = g.ExtendSelection(col, row)
	case mods.Has(ModCtrl) && g.IsCellSelected(col, row) && g.current == (CellAddress{Col: col, Row: row}):
		err = g.SelectCell(col, row, false)
	case mods.Has(ModCtrl):
		err = g.setCurrentCell(col, row, selectKeep)
	default:
		err = g.SetCurrentCell(col, row)
	}
	if err != nil {
		g.log.Debug("click cell", "col", col, "row", row, "err", err)
	}
}

// clickCheckBox toggles a checkbox cell when the click that made it current
// landed on the glyph.
func (g *Grid) clickCheckBox(col, row int, p Point) {
	if g.current != (CellAddress{Col: col, Row: row}) || g.columns.items[col].cellType != CellCheckBox {
		return
	}
	b := CellBounds(g.columns, g.rows, g.Viewport(), col, row)
	if checkBoxBounds(b).Contains(p) {
		g.toggleCurrentCheckBox()
	}
}

// clickColumnHeader selects the column in column-band modes and sorts
// automatic columns otherwise.
func (g *Grid) clickColumnHeader(col int, mods Modifiers) {
	c := g.columns.items[col]
	if !g.selectionMode.columnBands() {
		if c.sortMode != SortAutomatic {
			return
		}
		order := SortAscending
		if sc, so := g.SortColumn(); sc == col && so == SortAscending {
			order = SortDescending
		}
		if err := g.Sort(col, order); err != nil {
			g.log.Debug("sort", "column", c.name, "err", err)
		}
		return
	}
	row := g.current.Row
	if row < 0 {
		row = g.rows.First(StateVisible, 0)
	}
	if row < 0 {
		return
	}
	how := selectReplace
	if mods.Has(ModCtrl) {
		how = selectKeep
	}
	if err := g.setCurrentCell(col, row, how); err != nil {
		g.log.Debug("click column header", "col", col, "err", err)
		return
	}
	if err := g.SelectColumn(col, true); err != nil {
		g.log.Debug("select column", "col", col, "err", err)
	}
}

// clickRowHeader selects the row in row-band and cell modes.
func (g *Grid) clickRowHeader(row int, mods Modifiers) {
	if g.selectionMode.columnBands() {
		return
	}
	col := g.current.Col
	if col < 0 {
		col = g.columns.First(StateVisible, 0)
	}
	if col < 0 {
		return
	}
	var err error
	switch {
	case mods.Has(ModShift):
		err = g.ExtendSelection(col, row)
	case mods.Has(ModCtrl):
		err = g.setCurrentCell(col, row, selectKeep)
	default:
		err = g.SetCurrentCell(col, row)
	}
	if err == nil && !mods.Has(ModShift) {
		err = g.SelectRow(row, true)
	}
	if err != nil {
		g.log.Debug("click row header", "row", row, "err", err)
	}
}

// MouseMove continues the gesture in progress.
func (g *Grid) MouseMove(ev MouseEvent) bool {
	s := &g.gesture
	switch s.kind {
	case gestureResizeColumn:
		dx := ev.X - s.startX
		if g.rightToLeft {
			dx = -dx
		}
		c := g.columns.At(s.band)
		if c == nil {
			return false
		}
		if err := c.SetWidth(max(s.startSize+dx, c.minWidth)); err != nil {
			g.log.Debug("resize column", "err", err)
		}
		return true
	case gestureResizeRow:
		if s.band >= g.rows.Len() {
			return false
		}
		r, err := g.rows.Get(s.band)
		if err != nil {
			return false
		}
		if err := r.SetHeight(max(s.startSize+ev.Y-s.startY, r.minHeight)); err != nil {
			g.log.Debug("resize row", "err", err)
		}
		return true
	case gestureSelect:
		s.last = Point{X: ev.X, Y: ev.Y}
		g.dragSelect()
		return true
	case gestureScrollBar:
		g.dragScrollBar(Point{X: ev.X, Y: ev.Y})
		return true
	}
	return false
}

// dragSelect extends the selection to the pointer, scrolling while the
// pointer is outside the scrolling part of the data area.
func (g *Grid) dragSelect() {
	s := &g.gesture
	d := g.layout.Data
	p := s.last
	x := clamp(p.X, d.X, d.Right()-1)
	y := clamp(p.Y, d.Y, d.Bottom()-1)
	if hit := g.HitTest(x, y); hit.Type == HitCell && (CellAddress{Col: hit.Col, Row: hit.Row}) != g.current {
		g.navigate(hit.Col, hit.Row, true)
	}
	dx, dy := g.autoScrollDirection(p)
	if dx == 0 && dy == 0 {
		if s.stopScroll != nil {
			s.stopScroll()
			s.stopScroll = nil
		}
		return
	}
	if s.stopScroll == nil {
		s.stopScroll = g.host.ScheduleTimer(AutoScrollInterval, g.autoScrollTick)
	}
}

// autoScrollDirection tells which way to scroll for a pointer outside the
// scrolling area, in logical (unmirrored) terms.
func (g *Grid) autoScrollDirection(p Point) (dx, dy int) {
	d := g.layout.Data
	fw := min(g.columns.Extent(StateVisibleFrozen, 0), d.W)
	fh := min(g.rows.Extent(StateVisibleFrozen, 0), d.H)
	x := mirrorX(g.layout, p.X)
	switch {
	case x < d.X+fw && g.vp.horizontalOffset > 0:
		dx = -1
	case x >= d.Right() && g.vp.horizontalOffset < g.MaxHorizontalOffset():
		dx = 1
	}
	switch {
	case p.Y < d.Y+fh && g.vp.verticalOffset > 0:
		dy = -1
	case p.Y >= d.Bottom() && g.vp.verticalOffset < g.MaxVerticalOffset():
		dy = 1
	}
	return dx, dy
}

// autoScrollTick scrolls one band toward the pointer and re-arms itself.
func (g *Grid) autoScrollTick() {
	s := &g.gesture
	if s.kind != gestureSelect {
		return
	}
	s.stopScroll = nil
	dx, dy := g.autoScrollDirection(s.last)
	if dx == 0 && dy == 0 {
		return
	}
	if dx != 0 {
		g.scrollColumns(dx)
	}
	if dy != 0 {
		g.scrollRows(dy)
	}
	g.dragSelect()
}

// scrollColumns scrolls by n whole scrolling columns.
func (g *Grid) scrollColumns(n int) {
	first := g.vp.firstCol
	if first < 0 {
		return
	}
	target := first
	for ; n > 0; n-- {
		if next := g.columns.Next(target, StateVisible, StateFrozen); next >= 0 {
			target = next
		}
	}
	partial := g.vp.negativeOffset > 0
	for ; n < 0; n++ {
		if partial {
			partial = false
			continue
		}
		if prev := g.columns.Prev(target, StateVisible, StateFrozen); prev >= 0 {
			target = prev
		}
	}
	g.SetHorizontalOffset(g.columns.scrollX(target))
}

// scrollRows scrolls by n whole scrolling rows.
func (g *Grid) scrollRows(n int) {
	first := g.vp.firstRow
	if first < 0 {
		return
	}
	target := first
	for ; n > 0; n-- {
		if next := g.rows.Next(target, StateVisible, StateFrozen); next >= 0 {
			target = next
		}
	}
	partial := g.vp.firstRowHiddenHeight > 0
	for ; n < 0; n++ {
		if partial {
			partial = false
			continue
		}
		if prev := g.rows.Prev(target, StateVisible, StateFrozen); prev >= 0 {
			target = prev
		}
	}
	g.SetVerticalOffset(g.rows.scrollY(target))
}

// MouseUp ends the gesture in progress.
func (g *Grid) MouseUp(ev MouseEvent) bool {
	active := g.gesture.kind != gestureNone
	g.gesture.reset()
	return active
}

// MouseDoubleClick starts editing the clicked cell when the edit mode lets
// keyboard gestures start edits.
func (g *Grid) MouseDoubleClick(ev MouseEvent) bool {
	hit := g.HitTest(ev.X, ev.Y)
	switch hit.Type {
	case HitCell:
		if g.current != (CellAddress{Col: hit.Col, Row: hit.Row}) {
			return false
		}
		return g.beginEdit(true, false) == nil
	case HitColumnResize:
		c := g.columns.items[hit.Col]
		w := g.preferredColumnWidth(c, AutoSizeColumnAllCells)
		return c.SetWidth(max(w, c.minWidth)) == nil
	}
	return false
}

// MouseWheel scrolls by whole rows, or by columns with shift held. Positive
// delta scrolls up or left.
func (g *Grid) MouseWheel(delta int, mods Modifiers) bool {
	if delta == 0 {
		return false
	}
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextScroll|ContextCommit, true); err != nil {
			return true
		}
	}
	if mods.Has(ModShift) {
		g.scrollColumns(-delta)
		return true
	}
	step := g.rowTemplate.height * WheelScrollRows
	g.SetVerticalOffset(g.vp.verticalOffset - delta*step)
	return true
}

// ScrollBarDrag applies a scroll bar thumb position.
func (g *Grid) ScrollBarDrag(o Orientation, value int) {
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextScroll|ContextCommit, true); err != nil {
			return
		}
	}
	if o == Horizontal {
		g.SetHorizontalOffset(value)
		return
	}
	g.SetVerticalOffset(value)
}

// Cursor names the pointer shape for a position, for hosts that set it.
func (g *Grid) Cursor(x, y int) string {
	if g.gesture.kind == gestureResizeColumn {
		return "col-resize"
	}
	if g.gesture.kind == gestureResizeRow {
		return "row-resize"
	}
	switch g.HitTest(x, y).Type {
	case HitColumnResize:
		return "col-resize"
	case HitRowResize:
		return "row-resize"
	}
	return "default"
}
