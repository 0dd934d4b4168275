package datagrid

// handlerList is a per-grid observer list for one event type.
type handlerList[T any] struct {
	nextID   int
	handlers []handlerEntry[T]
}

type handlerEntry[T any] struct {
	id int
	fn func(T)
}

// add registers fn and returns a func that removes it again.
func (l *handlerList[T]) add(fn func(T)) func() {
	l.nextID++
	id := l.nextID
	l.handlers = append(l.handlers, handlerEntry[T]{id: id, fn: fn})
	return func() {
		for i, h := range l.handlers {
			if h.id == id {
				l.handlers = append(l.handlers[:i:i], l.handlers[i+1:]...)
				return
			}
		}
	}
}

// emit calls every handler registered when emit started. Handlers may
// subscribe or unsubscribe while running.
func (l *handlerList[T]) emit(ev T) {
	if len(l.handlers) == 0 {
		return
	}
	snapshot := append([]handlerEntry[T](nil), l.handlers...)
	for _, h := range snapshot {
		h.fn(ev)
	}
}

func (l *handlerList[T]) empty() bool { return len(l.handlers) == 0 }

// CurrentCellChangedEvent reports a move of the current cell.
type CurrentCellChangedEvent struct {
	Old, New CellAddress
}

// SelectionChangedEvent is raised once per selection batch.
type SelectionChangedEvent struct{}

// Orientation tells which axis scrolled.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// ScrollEventType classifies a scroll by how far the first displayed band moved.
type ScrollEventType uint8

const (
	SmallIncrement ScrollEventType = iota
	SmallDecrement
	LargeIncrement
	LargeDecrement
)

func (t ScrollEventType) String() string {
	switch t {
	case SmallIncrement:
		return "SmallIncrement"
	case SmallDecrement:
		return "SmallDecrement"
	case LargeIncrement:
		return "LargeIncrement"
	case LargeDecrement:
		return "LargeDecrement"
	}
	return "Unknown"
}

// ScrollEvent reports an offset change.
type ScrollEvent struct {
	Orientation Orientation
	Type        ScrollEventType
	OldValue    int
	NewValue    int
}

// RowUnsharedEvent reports that a shared row was cloned for one index.
type RowUnsharedEvent struct {
	Row int
}

// DataErrorEvent is raised when a value cannot be parsed, validated, pushed
// or fetched. Cancel starts true: the pending edit stays active. Setting it
// to false cancels the edit and lets the surrounding operation proceed.
type DataErrorEvent struct {
	Err    *DataError
	Cancel bool
}

// CellBeginEditEvent is raised before an edit starts. Set Cancel to refuse it.
type CellBeginEditEvent struct {
	Cell   CellAddress
	Cancel bool
}

// CellEndEditEvent is raised after an edit ended, committed or not.
type CellEndEditEvent struct {
	Cell      CellAddress
	Committed bool
}

// CellValidatingEvent is raised before a parsed value is pushed. Set Cancel
// to keep the editor open without raising a data error.
type CellValidatingEvent struct {
	Cell   CellAddress
	Text   string
	Value  any
	Cancel bool
}

// CellValueChangedEvent reports a value written through the grid.
type CellValueChangedEvent struct {
	Cell     CellAddress
	Old, New any
}

// ColumnEvent reports a column added to or removed from the grid.
type ColumnEvent struct {
	Index int
	Name  string
}

// RowsEvent reports a contiguous block of rows added or removed.
type RowsEvent struct {
	Index, Count int
}

// events is the per-instance dispatch table.
type events struct {
	currentCellChanged handlerList[CurrentCellChangedEvent]
	selectionChanged   handlerList[SelectionChangedEvent]
	scroll             handlerList[ScrollEvent]
	rowUnshared        handlerList[RowUnsharedEvent]
	dataError          handlerList[*DataErrorEvent]
	cellBeginEdit      handlerList[*CellBeginEditEvent]
	cellEndEdit        handlerList[CellEndEditEvent]
	cellValidating     handlerList[*CellValidatingEvent]
	cellValueChanged   handlerList[CellValueChangedEvent]
	columnAdded        handlerList[ColumnEvent]
	columnRemoved      handlerList[ColumnEvent]
	rowsAdded          handlerList[RowsEvent]
	rowsRemoved        handlerList[RowsEvent]
}

// OnCurrentCellChanged subscribes fn. The returned func unsubscribes.
func (g *Grid) OnCurrentCellChanged(fn func(CurrentCellChangedEvent)) func() {
	return g.events.currentCellChanged.add(fn)
}

// OnSelectionChanged subscribes fn.
func (g *Grid) OnSelectionChanged(fn func(SelectionChangedEvent)) func() {
	return g.events.selectionChanged.add(fn)
}

// OnScroll subscribes fn.
func (g *Grid) OnScroll(fn func(ScrollEvent)) func() {
	return g.events.scroll.add(fn)
}

// OnRowUnshared subscribes fn. Frequent events in virtual mode mean something
// keeps forcing rows out of the shared template.
func (g *Grid) OnRowUnshared(fn func(RowUnsharedEvent)) func() {
	return g.events.rowUnshared.add(fn)
}

// OnDataError subscribes fn.
func (g *Grid) OnDataError(fn func(*DataErrorEvent)) func() {
	return g.events.dataError.add(fn)
}

// OnCellBeginEdit subscribes fn.
func (g *Grid) OnCellBeginEdit(fn func(*CellBeginEditEvent)) func() {
	return g.events.cellBeginEdit.add(fn)
}

// OnCellEndEdit subscribes fn.
func (g *Grid) OnCellEndEdit(fn func(CellEndEditEvent)) func() {
	return g.events.cellEndEdit.add(fn)
}

// OnCellValidating subscribes fn.
func (g *Grid) OnCellValidating(fn func(*CellValidatingEvent)) func() {
	return g.events.cellValidating.add(fn)
}

// OnCellValueChanged subscribes fn.
func (g *Grid) OnCellValueChanged(fn func(CellValueChangedEvent)) func() {
	return g.events.cellValueChanged.add(fn)
}

// OnColumnAdded subscribes fn.
func (g *Grid) OnColumnAdded(fn func(ColumnEvent)) func() {
	return g.events.columnAdded.add(fn)
}

// OnColumnRemoved subscribes fn.
func (g *Grid) OnColumnRemoved(fn func(ColumnEvent)) func() {
	return g.events.columnRemoved.add(fn)
}

// OnRowsAdded subscribes fn.
func (g *Grid) OnRowsAdded(fn func(RowsEvent)) func() {
	return g.events.rowsAdded.add(fn)
}

// OnRowsRemoved subscribes fn.
func (g *Grid) OnRowsRemoved(fn func(RowsEvent)) func() {
	return g.events.rowsRemoved.add(fn)
}
