package datagrid

import (
	"fmt"
	"iter"
	"slices"
)

// rowEntry is one logical row: the instance it resolves to and the state
// bits of that index. State lives here so shared instances never need
// per-index data.
type rowEntry struct {
	row   *Row
	state ElementState
}

// RowCollection stores the grid's rows. Consecutive entries may point at the
// same shared *Row until an index is unshared by Get.
type RowCollection struct {
	grid    *Grid
	entries []rowEntry

	unshared int
	extents  map[filterKey]int

	// uniform caches whether every row is visible with the same height, which
	// lets the viewport locate rows by division.
	uniform struct {
		valid  bool
		ok     bool
		height int
	}
}

func newRowCollection(g *Grid) *RowCollection {
	return &RowCollection{grid: g, extents: make(map[filterKey]int)}
}

// Len returns the number of logical rows.
func (rc *RowCollection) Len() int { return len(rc.entries) }

// Get returns the row bound to index i, unsharing it first if needed. Only
// entry i is replaced; neighbours sharing the same instance are untouched.
func (rc *RowCollection) Get(i int) (*Row, error) {
	if i < 0 || i >= len(rc.entries) {
		return nil, outOfRange("row index", i, len(rc.entries))
	}
	r := rc.entries[i].row
	if r.index >= 0 {
		return r, nil
	}
	if i == 0 && len(rc.entries) == 1 {
		// The only row: nobody else can be sharing the instance.
		r.index = 0
	} else {
		r = r.clone()
		r.index = i
		rc.entries[i].row = r
	}
	rc.unshared++
	rc.grid.log.Debug("row unshared", "row", i, "unshared", rc.unshared)
	rc.grid.events.rowUnshared.emit(RowUnsharedEvent{Row: i})
	return r, nil
}

// shared returns the instance for index i without unsharing it. Callers must
// treat the result as read-only.
func (rc *RowCollection) shared(i int) *Row {
	return rc.entries[i].row
}

// IsShared reports whether index i still resolves to a shared instance.
func (rc *RowCollection) IsShared(i int) bool {
	return i >= 0 && i < len(rc.entries) && rc.entries[i].row.index < 0
}

// SharesTemplate reports whether indices i and j resolve to the same instance.
func (rc *RowCollection) SharesTemplate(i, j int) bool {
	if i < 0 || j < 0 || i >= len(rc.entries) || j >= len(rc.entries) {
		return false
	}
	return rc.entries[i].row == rc.entries[j].row
}

// UnsharedCount returns how many rows have been unshared since the grid was created.
func (rc *RowCollection) UnsharedCount() int { return rc.unshared }

// --- Structure -----------------------------------------------------------------

// Add appends n rows sharing one copy of the row template and returns the
// index of the first one.
func (rc *RowCollection) Add(n int) (int, error) {
	first := len(rc.entries)
	if err := rc.Insert(first, n); err != nil {
		return -1, err
	}
	return first, nil
}

// AddValues appends one unshared row holding values in column order.
func (rc *RowCollection) AddValues(values ...any) (int, error) {
	g := rc.grid
	if g.columns.Len() == 0 {
		return -1, fmt.Errorf("%w: no columns", ErrInvalidOperation)
	}
	if g.dataSource != nil {
		return -1, fmt.Errorf("%w: values are owned by the data source", ErrInvalidOperation)
	}
	if len(values) > g.columns.Len() {
		return -1, fmt.Errorf("%w: %d values for %d columns", ErrInvalidArgument, len(values), g.columns.Len())
	}
	i := len(rc.entries)
	r := g.rowTemplate.clone()
	r.index = i
	for c, v := range values {
		r.cells[c].value = v
	}
	defer g.suspend(suspendLayout)()
	rc.entries = append(rc.entries, rowEntry{row: r, state: StateVisible})
	rc.invalidate()
	g.events.rowsAdded.emit(RowsEvent{Index: i, Count: 1})
	g.requestLayout(layoutOptions{autoSize: true})
	return i, nil
}

// Insert adds n shared rows at index i.
func (rc *RowCollection) Insert(i, n int) error {
	if i < 0 || i > len(rc.entries) {
		return outOfRange("row index", i, len(rc.entries)+1)
	}
	if n <= 0 {
		return fmt.Errorf("%w: row count %d", ErrInvalidArgument, n)
	}
	g := rc.grid
	if g.columns.Len() == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidOperation)
	}
	// New rows take the frozen flag of the first visible row at or after i.
	// At index 0 above a frozen row 0 they join the frozen block; below the
	// block or at the end they scroll. Either way the block stays contiguous.
	next := rc.Next(i-1, StateVisible, 0)
	inheritFrozen := next >= 0 && rc.entries[next].state.Has(StateFrozen)
	defer g.suspend(suspendLayout)()
	rc.insertShared(i, n)
	if inheritFrozen {
		rc.freezeRange(i, n)
	}
	g.shiftRows(i, n)
	g.events.rowsAdded.emit(RowsEvent{Index: i, Count: n})
	g.requestLayout(layoutOptions{autoSize: true})
	return nil
}

// insertShared inserts n entries pointing at one fresh copy of the template.
func (rc *RowCollection) insertShared(i, n int) {
	tmpl := rc.grid.rowTemplate.clone()
	added := make([]rowEntry, n)
	for k := range added {
		added[k] = rowEntry{row: tmpl, state: StateVisible}
	}
	rc.entries = slices.Insert(rc.entries, i, added...)
	rc.renumber(i + n)
	rc.invalidate()
}

func (rc *RowCollection) freezeRange(i, n int) {
	for k := i; k < i+n && k < len(rc.entries); k++ {
		rc.entries[k].state |= StateFrozen
	}
	rc.invalidate()
}

// RemoveAt removes row i. If it holds the current cell, the current cell moves
// first; that commits a pending edit and fails if the commit fails.
func (rc *RowCollection) RemoveAt(i int) error {
	if i < 0 || i >= len(rc.entries) {
		return outOfRange("row index", i, len(rc.entries))
	}
	g := rc.grid
	if g.current.Row == i {
		if err := g.moveCurrentOffRow(i); err != nil {
			return err
		}
	}
	defer g.suspendSelection()()
	defer g.suspend(suspendLayout)()
	rc.removeRange(i, 1)
	g.shiftRows(i, -1)
	if g.dataSource != nil {
		g.dataSource.NotifyRowRemoved(i)
	}
	g.events.rowsRemoved.emit(RowsEvent{Index: i, Count: 1})
	g.requestLayout(layoutOptions{autoSize: true})
	return nil
}

// removeRange drops entries [i, i+n). Losing a selected row counts as a
// selection change.
func (rc *RowCollection) removeRange(i, n int) {
	for k := i; k < i+n; k++ {
		if rc.entries[k].state.Has(StateSelected) {
			rc.grid.markSelectionChanged()
		}
		if r := rc.entries[k].row; r.index >= 0 {
			r.index = -1
			r.grid = nil
		}
	}
	rc.entries = slices.Delete(rc.entries, i, i+n)
	rc.renumber(i)
	rc.invalidate()
}

// Clear removes every row. A pending edit is committed first.
func (rc *RowCollection) Clear() error {
	if len(rc.entries) == 0 {
		return nil
	}
	if err := rc.grid.SetCurrentCell(-1, -1); err != nil {
		return err
	}
	rc.clearAll()
	return nil
}

// clearAll drops every row without touching the edit.
func (rc *RowCollection) clearAll() {
	n := len(rc.entries)
	if n == 0 {
		return
	}
	g := rc.grid
	defer g.suspendSelection()()
	defer g.suspend(suspendLayout)()
	g.resetCurrentCell()
	rc.removeRange(0, n)
	g.clearRowSelectionState()
	g.events.rowsRemoved.emit(RowsEvent{Index: 0, Count: n})
	g.requestLayout(layoutOptions{})
}

// resize grows or shrinks the collection to n rows, adding shared rows at the end.
func (rc *RowCollection) resize(n int) error {
	cur := len(rc.entries)
	switch {
	case n > cur:
		return rc.Insert(cur, n-cur)
	case n < cur:
		g := rc.grid
		if g.current.Row >= n {
			if err := g.SetCurrentCell(-1, -1); err != nil {
				return err
			}
		}
		defer g.suspendSelection()()
		defer g.suspend(suspendLayout)()
		rc.removeRange(n, cur-n)
		g.dropRowsFrom(n)
		g.events.rowsRemoved.emit(RowsEvent{Index: n, Count: cur - n})
		g.requestLayout(layoutOptions{})
	}
	return nil
}

// renumber fixes the index of unshared rows from position i on.
func (rc *RowCollection) renumber(i int) {
	for k := i; k < len(rc.entries); k++ {
		if r := rc.entries[k].row; r.index >= 0 {
			r.index = k
		}
	}
}

// instances calls fn once per distinct row instance, then for the template.
func (rc *RowCollection) instances(fn func(*Row)) {
	var prev *Row
	seen := make(map[*Row]struct{})
	for _, e := range rc.entries {
		if e.row == prev {
			continue
		}
		prev = e.row
		if _, ok := seen[e.row]; ok {
			continue
		}
		seen[e.row] = struct{}{}
		fn(e.row)
	}
	fn(rc.grid.rowTemplate)
}

// insertCellColumn adds an empty cell at column i to every row instance.
func (rc *RowCollection) insertCellColumn(i int) {
	rc.instances(func(r *Row) {
		r.cells = slices.Insert(r.cells, i, &Cell{row: r})
		for c := i; c < len(r.cells); c++ {
			r.cells[c].col = c
		}
	})
}

// removeCellColumn drops column i from every row instance.
func (rc *RowCollection) removeCellColumn(i int) {
	rc.instances(func(r *Row) {
		if i >= len(r.cells) {
			return
		}
		r.cells = slices.Delete(r.cells, i, i+1)
		for c := i; c < len(r.cells); c++ {
			r.cells[c].col = c
		}
	})
}

// --- State -----------------------------------------------------------------------

// State returns the state bits of index i.
func (rc *RowCollection) State(i int) ElementState {
	if i < 0 || i >= len(rc.entries) {
		return StateNone
	}
	return rc.entries[i].state
}

// setState changes state bits of index i without unsharing.
func (rc *RowCollection) setState(i int, f ElementState, on bool) {
	rc.entries[i].state = rc.entries[i].state.with(f, on)
	if f&(StateVisible|StateFrozen) != 0 {
		rc.invalidate()
	}
}

// SetVisible shows or hides row i. Hiding the current row moves the current cell.
func (rc *RowCollection) SetVisible(i int, v bool) error {
	if i < 0 || i >= len(rc.entries) {
		return outOfRange("row index", i, len(rc.entries))
	}
	if rc.entries[i].state.Has(StateVisible) == v {
		return nil
	}
	g := rc.grid
	if !v {
		if err := checkFrozenRows(rc, i, StateVisible, false); err != nil {
			return err
		}
		if g.current.Row == i {
			if err := g.moveCurrentOffRow(i); err != nil {
				return err
			}
		}
	} else if err := checkFrozenRows(rc, i, StateVisible, true); err != nil {
		return err
	}
	defer g.suspend(suspendLayout)()
	rc.setState(i, StateVisible, v)
	if !v {
		g.deselectRowCells(i)
	}
	g.requestLayout(layoutOptions{autoSize: true})
	return nil
}

// SetFrozen pins or unpins row i. Visible frozen rows must stay contiguous from the top.
func (rc *RowCollection) SetFrozen(i int, f bool) error {
	if i < 0 || i >= len(rc.entries) {
		return outOfRange("row index", i, len(rc.entries))
	}
	if rc.entries[i].state.Has(StateFrozen) == f {
		return nil
	}
	if err := checkFrozenRows(rc, i, StateFrozen, f); err != nil {
		return err
	}
	defer rc.grid.suspend(suspendLayout)()
	rc.setState(i, StateFrozen, f)
	rc.grid.requestLayout(layoutOptions{})
	return nil
}

// SetReadOnly changes the read-only flag of row i, committing an edit in the row first.
func (rc *RowCollection) SetReadOnly(i int, ro bool) error {
	if i < 0 || i >= len(rc.entries) {
		return outOfRange("row index", i, len(rc.entries))
	}
	g := rc.grid
	if ro && g.edit.state != NotEditing && g.current.Row == i {
		if err := g.commitEdit(ContextCommit, false); err != nil {
			return err
		}
	}
	rc.setState(i, StateReadOnly, ro)
	return nil
}

// checkFrozenRows rejects a change of flag f on row i that would leave a
// visible frozen row below a visible non-frozen one.
func checkFrozenRows(rc *RowCollection, i int, f ElementState, on bool) error {
	seenScrolling := false
	for k, e := range rc.entries {
		s := e.state
		if k == i {
			s = s.with(f, on)
		}
		if !s.Has(StateVisible) {
			continue
		}
		if !s.Has(StateFrozen) {
			seenScrolling = true
		} else if seenScrolling {
			return fmt.Errorf("%w: frozen row %d below a non-frozen row", ErrInvalidOperation, k)
		}
	}
	return nil
}

// --- Traversal -------------------------------------------------------------------

// First returns the first row matching the filter, or -1.
func (rc *RowCollection) First(include, exclude ElementState) int {
	return rc.Next(-1, include, exclude)
}

// Next returns the next row after from matching the filter, or -1.
func (rc *RowCollection) Next(from int, include, exclude ElementState) int {
	for i := max(from+1, 0); i < len(rc.entries); i++ {
		if rc.entries[i].state.Matches(include, exclude) {
			return i
		}
	}
	return -1
}

// Prev returns the previous row before from matching the filter, or -1.
func (rc *RowCollection) Prev(from int, include, exclude ElementState) int {
	for i := min(from, len(rc.entries)) - 1; i >= 0; i-- {
		if rc.entries[i].state.Matches(include, exclude) {
			return i
		}
	}
	return -1
}

// Last returns the last row matching the filter, or -1.
func (rc *RowCollection) Last(include, exclude ElementState) int {
	return rc.Prev(len(rc.entries), include, exclude)
}

// All yields matching row indices in order. Iteration is over indices, so
// unsharing rows inside the loop is safe.
func (rc *RowCollection) All(include, exclude ElementState) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := rc.First(include, exclude); i >= 0; i = rc.Next(i, include, exclude) {
			if !yield(i) {
				return
			}
		}
	}
}

// Count returns the number of matching rows.
func (rc *RowCollection) Count(include, exclude ElementState) int {
	n := 0
	for _, e := range rc.entries {
		if e.state.Matches(include, exclude) {
			n++
		}
	}
	return n
}

// CountBetween returns the number of matching rows strictly between a and b.
func (rc *RowCollection) CountBetween(a, b int, include, exclude ElementState) int {
	if a > b {
		a, b = b, a
	}
	n := 0
	for i := max(a+1, 0); i < b && i < len(rc.entries); i++ {
		if rc.entries[i].state.Matches(include, exclude) {
			n++
		}
	}
	return n
}

// Extent returns the summed height of matching rows.
func (rc *RowCollection) Extent(include, exclude ElementState) int {
	k := filterKey{include, exclude}
	cacheable := (include|exclude)&^(StateVisible|StateFrozen) == 0
	if cacheable {
		if v, ok := rc.extents[k]; ok {
			return v
		}
	}
	sum := 0
	if h, ok := rc.uniformHeight(); ok {
		sum = rc.Count(include, exclude) * h
	} else {
		for _, e := range rc.entries {
			if e.state.Matches(include, exclude) {
				sum += e.row.height
			}
		}
	}
	if cacheable {
		rc.extents[k] = sum
	}
	return sum
}

// invalidate drops cached extents and the uniform-height shortcut.
func (rc *RowCollection) invalidate() {
	clear(rc.extents)
	rc.uniform.valid = false
	rc.grid.vp.rowAnchorValid = false
}

// uniformHeight reports the common height when every row is visible and
// equally tall.
func (rc *RowCollection) uniformHeight() (int, bool) {
	u := &rc.uniform
	if u.valid {
		return u.height, u.ok
	}
	u.valid, u.ok, u.height = true, true, 0
	for k, e := range rc.entries {
		if k == 0 {
			u.height = e.row.height
		}
		if !e.state.Has(StateVisible) || e.row.height != u.height {
			u.ok = false
			break
		}
	}
	return u.height, u.ok
}

// frozenCount returns the number of visible frozen rows; they form a block at the top.
func (rc *RowCollection) frozenCount() int {
	n := 0
	for _, e := range rc.entries {
		if !e.state.Has(StateVisible) {
			continue
		}
		if !e.state.Has(StateFrozen) {
			break
		}
		n++
	}
	return n
}

// frozenY returns the offset of a frozen row from the top of the frozen band.
func (rc *RowCollection) frozenY(row int) int {
	y := 0
	for i := 0; i < row && i < len(rc.entries); i++ {
		if rc.entries[i].state.Matches(StateVisibleFrozen, 0) {
			y += rc.entries[i].row.height
		}
	}
	return y
}

// scrollY returns the offset of a scrolling row from the top of the scrolling
// band, ignoring the vertical offset.
func (rc *RowCollection) scrollY(row int) int {
	if c, ok := rc.clipper(); ok {
		return c.top(row)
	}
	y := 0
	for i := 0; i < row && i < len(rc.entries); i++ {
		if rc.entries[i].state.Matches(StateVisible, StateFrozen) {
			y += rc.entries[i].row.height
		}
	}
	return y
}

// rowAtScrollY returns the scrolling row covering scroll-space y and that
// row's top, or -1 when y is past the last row.
func (rc *RowCollection) rowAtScrollY(y int) (int, int) {
	if c, ok := rc.clipper(); ok {
		return c.rowAt(y)
	}
	top := 0
	for i := range rc.entries {
		e := rc.entries[i]
		if !e.state.Matches(StateVisible, StateFrozen) {
			continue
		}
		if y < top+e.row.height {
			return i, top
		}
		top += e.row.height
	}
	return -1, 0
}
