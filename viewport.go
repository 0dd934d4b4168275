package datagrid

import "fmt"

// viewportState is the scroll position and what it derives.
type viewportState struct {
	horizontalOffset int
	verticalOffset   int

	firstCol       int // First displayed scrolling column, -1 when none
	negativeOffset int // Pixels of firstCol hidden at the leading edge

	firstRow             int // First displayed scrolling row, -1 when none
	firstRowTop          int // Scroll-space top of firstRow
	firstRowHiddenHeight int // Pixels of firstRow hidden at the top
	rowAnchorValid       bool

	displayedCols []int
	displayedRows []int
}

func (v *viewportState) reset() {
	*v = viewportState{firstCol: -1, firstRow: -1}
}

// Viewport is a snapshot of everything CellBounds and HitTest need besides
// the band collections.
type Viewport struct {
	Layout           LayoutInfo
	HorizontalOffset int
	VerticalOffset   int
}

// Viewport returns a snapshot of the current layout and scroll position.
func (g *Grid) Viewport() Viewport {
	return Viewport{Layout: g.layout, HorizontalOffset: g.vp.horizontalOffset, VerticalOffset: g.vp.verticalOffset}
}

// HorizontalOffset returns the horizontal scroll position in pixels.
func (g *Grid) HorizontalOffset() int { return g.vp.horizontalOffset }

// VerticalOffset returns the vertical scroll position in pixels.
func (g *Grid) VerticalOffset() int { return g.vp.verticalOffset }

// FirstDisplayedScrollingColumn returns the leading non-frozen displayed column, or -1.
func (g *Grid) FirstDisplayedScrollingColumn() int { return g.vp.firstCol }

// FirstDisplayedScrollingRow returns the top non-frozen displayed row, or -1.
func (g *Grid) FirstDisplayedScrollingRow() int { return g.vp.firstRow }

// NegativeOffset returns how many pixels of the first scrolling column are hidden.
func (g *Grid) NegativeOffset() int { return g.vp.negativeOffset }

// FirstRowHiddenHeight returns how many pixels of the first scrolling row are hidden.
func (g *Grid) FirstRowHiddenHeight() int { return g.vp.firstRowHiddenHeight }

// DisplayedColumns returns the columns intersecting the data area, frozen
// first, in display order.
func (g *Grid) DisplayedColumns() []int { return append([]int(nil), g.vp.displayedCols...) }

// DisplayedRows returns the rows intersecting the data area, frozen first.
func (g *Grid) DisplayedRows() []int { return append([]int(nil), g.vp.displayedRows...) }

// scrollingWidth is the part of the data area left to scrolling columns.
func (g *Grid) scrollingWidth() int {
	return g.layout.Data.W - g.columns.Extent(StateVisibleFrozen, 0)
}

// scrollingHeight is the part of the data area left to scrolling rows.
func (g *Grid) scrollingHeight() int {
	return g.layout.Data.H - g.rows.Extent(StateVisibleFrozen, 0)
}

// MaxHorizontalOffset returns the largest valid horizontal offset. It is 0
// when the scroll bar policy has no horizontal bar.
func (g *Grid) MaxHorizontalOffset() int {
	if !g.scrollBars.horizontal() {
		return 0
	}
	return max(g.columns.Extent(StateVisible, StateFrozen)-max(g.scrollingWidth(), 0), 0)
}

// MaxVerticalOffset returns the largest valid vertical offset, 0 without a
// vertical bar.
func (g *Grid) MaxVerticalOffset() int {
	if !g.scrollBars.vertical() {
		return 0
	}
	return max(g.rows.Extent(StateVisible, StateFrozen)-max(g.scrollingHeight(), 0), 0)
}

// SetHorizontalOffset scrolls horizontally. The value is clamped into
// [0, MaxHorizontalOffset()].
func (g *Grid) SetHorizontalOffset(v int) {
	v = clamp(v, 0, g.MaxHorizontalOffset())
	old := g.vp.horizontalOffset
	if v == old {
		return
	}
	oldFirst := g.vp.firstCol
	g.vp.horizontalOffset = v
	g.computeFirstColumn()
	g.updateDisplayedColumns()
	typ := classifyScroll(g.vp.firstCol == oldFirst || oldFirst < 0 || g.vp.firstCol < 0,
		func() int { return g.columns.CountBetween(oldFirst, g.vp.firstCol, StateVisible, StateFrozen) },
		v > old)
	g.log.Debug("horizontal scroll", "old", old, "new", v, "type", typ, "firstCol", g.vp.firstCol)
	g.afterScroll()
	g.events.scroll.emit(ScrollEvent{Orientation: Horizontal, Type: typ, OldValue: old, NewValue: v})
}

// SetVerticalOffset scrolls vertically. The value is clamped into
// [0, MaxVerticalOffset()].
func (g *Grid) SetVerticalOffset(v int) {
	v = clamp(v, 0, g.MaxVerticalOffset())
	old := g.vp.verticalOffset
	if v == old {
		return
	}
	oldFirst := g.vp.firstRow
	g.vp.verticalOffset = v
	g.computeFirstRow()
	g.updateDisplayedRows()
	typ := classifyScroll(g.vp.firstRow == oldFirst || oldFirst < 0 || g.vp.firstRow < 0,
		func() int { return g.rows.CountBetween(oldFirst, g.vp.firstRow, StateVisible, StateFrozen) },
		v > old)
	g.log.Debug("vertical scroll", "old", old, "new", v, "type", typ, "firstRow", g.vp.firstRow)
	g.afterScroll()
	g.events.scroll.emit(ScrollEvent{Orientation: Vertical, Type: typ, OldValue: old, NewValue: v})
}

// classifyScroll derives the event type: moving the first displayed band by
// more than one visible band is a large scroll.
func classifyScroll(sameBand bool, between func() int, increment bool) ScrollEventType {
	large := !sameBand && between() > 0
	switch {
	case large && increment:
		return LargeIncrement
	case large:
		return LargeDecrement
	case increment:
		return SmallIncrement
	}
	return SmallDecrement
}

func (g *Grid) afterScroll() {
	g.repositionEditor()
	g.host.Invalidate(g.layout.Data)
	if g.layout.ColumnHeaders.W > 0 {
		g.host.Invalidate(g.layout.ColumnHeaders)
	}
	if g.layout.RowHeaders.H > 0 {
		g.host.Invalidate(g.layout.RowHeaders)
	}
	if g.autoSizeRowsMode.displayedOnly() || g.hasDisplayedAutoSizeColumn() {
		g.requestLayout(layoutOptions{useRowShortcut: true, autoSize: true})
	}
}

func (g *Grid) hasDisplayedAutoSizeColumn() bool {
	for _, c := range g.columns.items {
		if c.Visible() && c.InheritedAutoSizeMode().displayedOnly() {
			return true
		}
	}
	return false
}

// recomputeViewport clamps both offsets and recomputes what they derive.
// Called by layout passes; it does not raise scroll events.
func (g *Grid) recomputeViewport() {
	g.vp.horizontalOffset = clamp(g.vp.horizontalOffset, 0, g.MaxHorizontalOffset())
	g.vp.verticalOffset = clamp(g.vp.verticalOffset, 0, g.MaxVerticalOffset())
	g.computeFirstColumn()
	g.computeFirstRow()
	g.updateDisplayedColumns()
	g.updateDisplayedRows()
}

// computeFirstColumn finds the scrolling column covering the horizontal offset.
func (g *Grid) computeFirstColumn() {
	g.vp.firstCol, g.vp.negativeOffset = -1, 0
	x := 0
	for i := range g.columns.All(StateVisible, StateFrozen) {
		w := g.columns.items[i].width
		if g.vp.horizontalOffset < x+w {
			g.vp.firstCol = i
			g.vp.negativeOffset = g.vp.horizontalOffset - x
			return
		}
		x += w
	}
}

// computeFirstRow finds the scrolling row covering the vertical offset. With
// a valid anchor it walks from the previous first row instead of the top.
func (g *Grid) computeFirstRow() {
	rows := g.rows
	y := g.vp.verticalOffset
	if _, ok := rows.clipper(); ok || !g.vp.rowAnchorValid || g.vp.firstRow < 0 ||
		!rows.State(g.vp.firstRow).Matches(StateVisible, StateFrozen) {
		i, top := rows.rowAtScrollY(y)
		g.setFirstRow(i, top)
		return
	}
	i, top := g.vp.firstRow, g.vp.firstRowTop
	for y >= top+rows.shared(i).height {
		next := rows.Next(i, StateVisible, StateFrozen)
		if next < 0 {
			break
		}
		top += rows.shared(i).height
		i = next
	}
	for y < top {
		prev := rows.Prev(i, StateVisible, StateFrozen)
		if prev < 0 {
			break
		}
		i = prev
		top -= rows.shared(i).height
	}
	g.setFirstRow(i, top)
}

func (g *Grid) setFirstRow(i, top int) {
	g.vp.firstRow, g.vp.firstRowTop = i, top
	g.vp.firstRowHiddenHeight = 0
	if i >= 0 {
		g.vp.firstRowHiddenHeight = g.vp.verticalOffset - top
	}
	g.vp.rowAnchorValid = i >= 0
}

// updateDisplayedColumns refreshes the Displayed flag and list of columns.
func (g *Grid) updateDisplayedColumns() {
	for _, i := range g.vp.displayedCols {
		if c := g.columns.At(i); c != nil {
			c.state &^= StateDisplayed
		}
	}
	g.vp.displayedCols = g.vp.displayedCols[:0]
	avail := g.layout.Data.W
	x := 0
	for i := range g.columns.All(StateVisibleFrozen, 0) {
		if x >= avail {
			break
		}
		g.markColumnDisplayed(i)
		x += g.columns.items[i].width
	}
	if g.vp.firstCol < 0 {
		return
	}
	x -= g.vp.negativeOffset
	for i := g.vp.firstCol; i >= 0 && x < avail; i = g.columns.Next(i, StateVisible, StateFrozen) {
		g.markColumnDisplayed(i)
		x += g.columns.items[i].width
	}
}

func (g *Grid) markColumnDisplayed(i int) {
	g.columns.items[i].state |= StateDisplayed
	g.vp.displayedCols = append(g.vp.displayedCols, i)
}

// updateDisplayedRows refreshes the Displayed flag and list of rows without
// unsharing anything.
func (g *Grid) updateDisplayedRows() {
	rows := g.rows
	for _, i := range g.vp.displayedRows {
		if i < rows.Len() {
			rows.entries[i].state &^= StateDisplayed
		}
	}
	g.vp.displayedRows = g.vp.displayedRows[:0]
	avail := g.layout.Data.H
	y := 0
	for i := range rows.All(StateVisibleFrozen, 0) {
		if y >= avail {
			break
		}
		g.markRowDisplayed(i)
		y += rows.shared(i).height
	}
	if g.vp.firstRow < 0 {
		return
	}
	if c, ok := rows.clipper(); ok {
		start, end := c.visibleRange(g.vp.verticalOffset, avail-y)
		for i := start; i < end; i++ {
			g.markRowDisplayed(i)
		}
		return
	}
	y -= g.vp.firstRowHiddenHeight
	for i := g.vp.firstRow; i >= 0 && y < avail; i = rows.Next(i, StateVisible, StateFrozen) {
		g.markRowDisplayed(i)
		y += rows.shared(i).height
	}
}

func (g *Grid) markRowDisplayed(i int) {
	g.rows.entries[i].state |= StateDisplayed
	g.vp.displayedRows = append(g.vp.displayedRows, i)
}

// ScrollIntoView changes the offsets as little as possible so that the cell
// lies inside the scrolling part of the data area. Either coordinate may be
// -1 to scroll along one axis only. Frozen bands never scroll. A pending edit
// is committed first; if that fails nothing moves.
func (g *Grid) ScrollIntoView(col, row int) error {
	if col < -1 || col >= g.columns.Len() {
		return outOfRange("column index", col, g.columns.Len())
	}
	if row < -1 || row >= g.rows.Len() {
		return outOfRange("row index", row, g.rows.Len())
	}
	if col < 0 && row < 0 {
		return nil
	}
	if g.layout.Data.Empty() {
		return ErrNoRoom
	}
	h, v := g.vp.horizontalOffset, g.vp.verticalOffset
	if col >= 0 {
		c := g.columns.items[col]
		if !c.Visible() {
			return fmt.Errorf("%w: column %d is hidden", ErrInvalidOperation, col)
		}
		if !c.Frozen() {
			area := g.scrollingWidth()
			if area <= 0 {
				return ErrNoRoom
			}
			h = scrollToShow(g.columns.scrollX(col), c.width, h, area)
		}
	}
	if row >= 0 {
		s := g.rows.State(row)
		if !s.Has(StateVisible) {
			return fmt.Errorf("%w: row %d is hidden", ErrInvalidOperation, row)
		}
		if !s.Has(StateFrozen) {
			area := g.scrollingHeight()
			if area <= 0 {
				return ErrNoRoom
			}
			v = scrollToShow(g.rows.scrollY(row), g.rows.shared(row).height, v, area)
		}
	}
	if h == g.vp.horizontalOffset && v == g.vp.verticalOffset {
		return nil
	}
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextScroll|ContextCommit, true); err != nil {
			return err
		}
	}
	g.SetHorizontalOffset(h)
	g.SetVerticalOffset(v)
	return nil
}

// scrollToShow returns the smallest change of offset that shows [pos, pos+size)
// inside a window of length area. A band larger than the window is aligned to
// its leading edge.
func scrollToShow(pos, size, offset, area int) int {
	switch {
	case pos < offset:
		return pos
	case pos+size > offset+area:
		return min(pos, pos+size-area)
	}
	return offset
}

// SetFirstDisplayedScrollingColumn scrolls so that column i leads the
// scrolling area, as far as the maximum offset allows.
func (g *Grid) SetFirstDisplayedScrollingColumn(i int) error {
	c := g.columns.At(i)
	if c == nil {
		return outOfRange("column index", i, g.columns.Len())
	}
	if !c.Visible() || c.Frozen() {
		return fmt.Errorf("%w: column %d is hidden or frozen", ErrInvalidOperation, i)
	}
	if g.layout.Data.Empty() {
		return ErrNoRoom
	}
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextScroll|ContextCommit, true); err != nil {
			return err
		}
	}
	g.SetHorizontalOffset(g.columns.scrollX(i))
	return nil
}

// SetFirstDisplayedScrollingRow scrolls so that row i is the top scrolling
// row, as far as the maximum offset allows.
func (g *Grid) SetFirstDisplayedScrollingRow(i int) error {
	if i < 0 || i >= g.rows.Len() {
		return outOfRange("row index", i, g.rows.Len())
	}
	if !g.rows.State(i).Matches(StateVisible, StateFrozen) {
		return fmt.Errorf("%w: row %d is hidden or frozen", ErrInvalidOperation, i)
	}
	if g.layout.Data.Empty() {
		return ErrNoRoom
	}
	if g.edit.state != NotEditing {
		if err := g.commitEdit(ContextScroll|ContextCommit, true); err != nil {
			return err
		}
	}
	g.SetVerticalOffset(g.rows.scrollY(i))
	return nil
}
