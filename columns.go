package datagrid

import (
	"fmt"
	"iter"
	"slices"
)

// filterKey caches extents per include/exclude pair.
type filterKey struct {
	include, exclude ElementState
}

// ColumnCollection holds the grid's columns in identity order and display order.
// Traversal methods walk display order and return identity indices, -1 when
// no band matches.
type ColumnCollection struct {
	grid    *Grid
	items   []*Column // identity order
	display []*Column // display order

	extents map[filterKey]int

	// usedFillWeightsDirty is set when fill weights or modes change; the next
	// layout recomputes fill widths.
	usedFillWeightsDirty bool
}

func newColumnCollection(g *Grid) *ColumnCollection {
	return &ColumnCollection{grid: g, extents: make(map[filterKey]int)}
}

// Len returns the number of columns.
func (cc *ColumnCollection) Len() int { return len(cc.items) }

// At returns the column with identity index i, or nil.
func (cc *ColumnCollection) At(i int) *Column {
	if i < 0 || i >= len(cc.items) {
		return nil
	}
	return cc.items[i]
}

// ByName returns the first column named name, or nil.
func (cc *ColumnCollection) ByName(name string) *Column {
	for _, c := range cc.items {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Add appends a column.
func (cc *ColumnCollection) Add(name string, opts ...Option) (*Column, error) {
	return cc.Insert(len(cc.items), name, opts...)
}

// Insert adds a column at identity index i. The new column also takes display
// position i; bands at or after it shift right.
func (cc *ColumnCollection) Insert(i int, name string, opts ...Option) (*Column, error) {
	if i < 0 || i > len(cc.items) {
		return nil, outOfRange("column index", i, len(cc.items)+1)
	}
	c, err := newColumn(name, opts)
	if err != nil {
		return nil, err
	}
	g := cc.grid
	if c.sortMode == SortAutomatic && g.selectionMode.columnBands() {
		return nil, fmt.Errorf("%w: automatic sort with %s", ErrInvalidOperation, g.selectionMode)
	}
	mode := c.autoSizeMode
	if mode == AutoSizeColumnNotSet {
		mode = g.autoSizeColumnsMode
	}
	if c.Visible() && mode == AutoSizeColumnColumnHeader && !g.headers.columnHeadersVisible {
		return nil, fmt.Errorf("%w: column headers are hidden", ErrInvalidOperation)
	}
	if c.Visible() && c.Frozen() && mode == AutoSizeColumnFill {
		return nil, fmt.Errorf("%w: frozen column cannot fill", ErrInvalidOperation)
	}
	d := min(i, len(cc.display))
	order := slices.Insert(slices.Clone(cc.display), d, c)
	if err := checkFrozenOrder(order); err != nil {
		return nil, err
	}

	defer g.suspend(suspendLayout)()
	c.grid = g
	cc.items = slices.Insert(cc.items, i, c)
	cc.display = order
	cc.reindex()
	g.rows.insertCellColumn(i)
	g.shiftColumns(i, 1)
	cc.invalidate()
	cc.usedFillWeightsDirty = true
	g.log.Debug("column added", "name", name, "index", i)
	g.events.columnAdded.emit(ColumnEvent{Index: i, Name: name})
	if ds := g.dataSource; ds != nil && len(cc.items) == 1 && g.rows.Len() == 0 {
		// Virtual rows need a column to exist.
		if n := ds.RowCount(); n > 0 {
			g.rows.insertShared(0, n)
			g.events.rowsAdded.emit(RowsEvent{Index: 0, Count: n})
		}
	}
	g.requestLayout(layoutOptions{invalidateFillColumns: true, autoSize: true})
	return c, nil
}

// Remove removes the column named name.
func (cc *ColumnCollection) Remove(name string) error {
	c := cc.ByName(name)
	if c == nil {
		return fmt.Errorf("%w: no column named %q", ErrInvalidArgument, name)
	}
	return cc.RemoveAt(c.index)
}

// RemoveAt removes the column with identity index i. Removing the last column
// also clears all rows.
func (cc *ColumnCollection) RemoveAt(i int) error {
	if i < 0 || i >= len(cc.items) {
		return outOfRange("column index", i, len(cc.items))
	}
	g := cc.grid
	if g.current.Col == i {
		if err := g.moveCurrentOffColumn(i); err != nil {
			return err
		}
	}

	defer g.suspendSelection()()
	defer g.suspend(suspendLayout)()
	c := cc.items[i]
	if c.state.Has(StateSelected) {
		g.markSelectionChanged()
	}
	cc.items = slices.Delete(cc.items, i, i+1)
	cc.display = slices.DeleteFunc(cc.display, func(x *Column) bool { return x == c })
	cc.reindex()
	c.grid, c.index, c.displayIndex = nil, -1, -1
	g.rows.removeCellColumn(i)
	g.shiftColumns(i, -1)
	cc.invalidate()
	cc.usedFillWeightsDirty = true
	g.log.Debug("column removed", "name", c.name, "index", i)
	g.events.columnRemoved.emit(ColumnEvent{Index: i, Name: c.name})
	if len(cc.items) == 0 {
		g.rows.clearAll()
	}
	g.requestLayout(layoutOptions{invalidateFillColumns: true, autoSize: true})
	return nil
}

// Clear removes every column and therefore every row.
func (cc *ColumnCollection) Clear() error {
	if len(cc.items) == 0 {
		return nil
	}
	g := cc.grid
	if err := g.SetCurrentCell(-1, -1); err != nil {
		return err
	}
	defer g.suspend(suspendLayout)()
	defer g.suspendSelection()()
	for len(cc.items) > 0 {
		if err := cc.RemoveAt(len(cc.items) - 1); err != nil {
			return err
		}
	}
	return nil
}

// reindex rewrites identity and display indices after a structural change.
func (cc *ColumnCollection) reindex() {
	for i, c := range cc.items {
		c.index = i
	}
	for d, c := range cc.display {
		c.displayIndex = d
	}
}

// move places c at display position d.
func (cc *ColumnCollection) move(c *Column, d int) error {
	if d < 0 || d >= len(cc.display) {
		return outOfRange("display index", d, len(cc.display))
	}
	if c.displayIndex == d {
		return nil
	}
	order := slices.Delete(slices.Clone(cc.display), c.displayIndex, c.displayIndex+1)
	order = slices.Insert(order, d, c)
	if err := checkFrozenOrder(order); err != nil {
		return err
	}
	cc.display = order
	cc.reindex()
	cc.invalidate()
	cc.grid.requestLayout(layoutOptions{})
	return nil
}

// checkFrozenOrder rejects an order where a visible frozen column follows a
// visible non-frozen one.
func checkFrozenOrder(order []*Column) error {
	seenScrolling := false
	for _, c := range order {
		if !c.Visible() {
			continue
		}
		if !c.Frozen() {
			seenScrolling = true
		} else if seenScrolling {
			return fmt.Errorf("%w: frozen column %q after a non-frozen column", ErrInvalidOperation, c.name)
		}
	}
	return nil
}

// invalidate drops cached extents.
func (cc *ColumnCollection) invalidate() {
	clear(cc.extents)
}

// First returns the first column in display order matching the filter.
func (cc *ColumnCollection) First(include, exclude ElementState) int {
	for _, c := range cc.display {
		if c.state.Matches(include, exclude) {
			return c.index
		}
	}
	return -1
}

// Last returns the last column in display order matching the filter.
func (cc *ColumnCollection) Last(include, exclude ElementState) int {
	for d := len(cc.display) - 1; d >= 0; d-- {
		if c := cc.display[d]; c.state.Matches(include, exclude) {
			return c.index
		}
	}
	return -1
}

// Next returns the column after from in display order matching the filter.
func (cc *ColumnCollection) Next(from int, include, exclude ElementState) int {
	if from < 0 || from >= len(cc.items) {
		return -1
	}
	for d := cc.items[from].displayIndex + 1; d < len(cc.display); d++ {
		if c := cc.display[d]; c.state.Matches(include, exclude) {
			return c.index
		}
	}
	return -1
}

// Prev returns the column before from in display order matching the filter.
func (cc *ColumnCollection) Prev(from int, include, exclude ElementState) int {
	if from < 0 || from >= len(cc.items) {
		return -1
	}
	for d := cc.items[from].displayIndex - 1; d >= 0; d-- {
		if c := cc.display[d]; c.state.Matches(include, exclude) {
			return c.index
		}
	}
	return -1
}

// All yields the identity indices of matching columns in display order. The
// sequence can be ranged over any number of times.
func (cc *ColumnCollection) All(include, exclude ElementState) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := cc.First(include, exclude); i >= 0; i = cc.Next(i, include, exclude) {
			if !yield(i) {
				return
			}
		}
	}
}

// Count returns the number of matching columns.
func (cc *ColumnCollection) Count(include, exclude ElementState) int {
	n := 0
	for _, c := range cc.items {
		if c.state.Matches(include, exclude) {
			n++
		}
	}
	return n
}

// CountBetween returns the number of matching columns strictly between a and b
// in display order.
func (cc *ColumnCollection) CountBetween(a, b int, include, exclude ElementState) int {
	if a < 0 || b < 0 || a >= len(cc.items) || b >= len(cc.items) {
		return 0
	}
	lo, hi := cc.items[a].displayIndex, cc.items[b].displayIndex
	if lo > hi {
		lo, hi = hi, lo
	}
	n := 0
	for d := lo + 1; d < hi; d++ {
		if cc.display[d].state.Matches(include, exclude) {
			n++
		}
	}
	return n
}

// DisplayInOrder reports whether column a comes before column b in display order.
func (cc *ColumnCollection) DisplayInOrder(a, b int) bool {
	return cc.items[a].displayIndex < cc.items[b].displayIndex
}

// Extent returns the summed width of matching columns.
func (cc *ColumnCollection) Extent(include, exclude ElementState) int {
	k := filterKey{include, exclude}
	cacheable := (include|exclude)&^(StateVisible|StateFrozen) == 0
	if v, ok := cc.extents[k]; ok && cacheable {
		return v
	}
	sum := 0
	for _, c := range cc.items {
		if c.state.Matches(include, exclude) {
			sum += c.width
		}
	}
	if cacheable {
		cc.extents[k] = sum
	}
	return sum
}

// frozenX returns the offset of a frozen column from the start of the frozen band.
func (cc *ColumnCollection) frozenX(col int) int {
	x := 0
	for _, c := range cc.display {
		if c.index == col {
			break
		}
		if c.state.Matches(StateVisibleFrozen, 0) {
			x += c.width
		}
	}
	return x
}

// scrollX returns the offset of a scrolling column from the start of the
// scrolling band, ignoring the horizontal offset.
func (cc *ColumnCollection) scrollX(col int) int {
	x := 0
	for _, c := range cc.display {
		if c.index == col {
			break
		}
		if c.state.Matches(StateVisible, StateFrozen) {
			x += c.width
		}
	}
	return x
}

// setState changes state bits of one column and drops cached extents.
func (cc *ColumnCollection) setState(c *Column, f ElementState, on bool) {
	c.state = c.state.with(f, on)
	if f&(StateVisible|StateFrozen) != 0 {
		cc.invalidate()
	}
}
