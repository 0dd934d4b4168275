package datagrid

// LayoutInfo holds the rectangles computed by the last layout pass, in
// left-to-right client coordinates. CellBounds and HitTest apply the
// right-to-left mirror themselves.
type LayoutInfo struct {
	Client        Rect // Inside the border
	TopLeftHeader Rect
	ColumnHeaders Rect
	RowHeaders    Rect
	Data          Rect // Cells, frozen and scrolling
	HScrollBar    Rect // Empty when hidden
	VScrollBar    Rect // Empty when hidden
	RightToLeft   bool
}

// suspendKind names one re-entrancy counter.
type suspendKind uint8

const (
	suspendLayout    suspendKind = iota // Defers layout passes
	suspendDimension                    // Band size changes do not request layout
	suspendSelection                    // Defers SelectionChanged
	suspendAutoSize                     // Defers auto-sizing
	suspendKinds
)

// layoutOptions selects the work done by one layout pass.
type layoutOptions struct {
	useRowShortcut        bool // Locate the first row starting from the previous one
	computeVisibleRows    bool
	invalidateFillColumns bool
	repositionEditor      bool
	autoSize              bool
}

func (o layoutOptions) merge(p layoutOptions) layoutOptions {
	return layoutOptions{
		useRowShortcut:        o.useRowShortcut && p.useRowShortcut,
		computeVisibleRows:    o.computeVisibleRows || p.computeVisibleRows,
		invalidateFillColumns: o.invalidateFillColumns || p.invalidateFillColumns,
		repositionEditor:      o.repositionEditor || p.repositionEditor,
		autoSize:              o.autoSize || p.autoSize,
	}
}

// layoutGuard tracks nested suspensions and the work they deferred.
type layoutGuard struct {
	counts [suspendKinds]int

	layoutPending    bool
	pending          layoutOptions
	inLayout         bool
	autoSizePending  bool
	selectionChanged bool
}

// suspend increments counter k and returns the matching release. Releasing
// the outermost suspension runs the work deferred under it. Release is
// idempotent so it can be both deferred and called early.
//
//	defer g.suspend(suspendLayout)()
func (g *Grid) suspend(k suspendKind) func() {
	g.guard.counts[k]++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		g.guard.counts[k]--
		if g.guard.counts[k] > 0 {
			return
		}
		switch k {
		case suspendLayout:
			if g.guard.layoutPending {
				g.flushLayout()
			}
		case suspendSelection:
			g.flushSelectionChanged()
		case suspendAutoSize:
			if g.guard.autoSizePending {
				g.guard.autoSizePending = false
				g.requestLayout(layoutOptions{autoSize: true})
			}
		}
	}
}

// suspendSelection defers SelectionChanged until the outermost release.
func (g *Grid) suspendSelection() func() { return g.suspend(suspendSelection) }

// SuspendLayout defers layout until the returned func is called. Calls nest.
func (g *Grid) SuspendLayout() (resume func()) { return g.suspend(suspendLayout) }

// BeginSelectionBatch defers SelectionChanged until the returned func is
// called; one event fires then if anything changed. Calls nest.
func (g *Grid) BeginSelectionBatch() (end func()) { return g.suspendSelection() }

// NoSelectionChangeCount returns the selection batching depth.
func (g *Grid) NoSelectionChangeCount() int { return g.guard.counts[suspendSelection] }

// requestLayout records the work and runs it unless layout is suspended.
func (g *Grid) requestLayout(o layoutOptions) {
	if g.guard.layoutPending {
		g.guard.pending = g.guard.pending.merge(o)
	} else {
		g.guard.pending = o
		g.guard.layoutPending = true
	}
	if g.guard.counts[suspendLayout] > 0 || g.guard.inLayout {
		return
	}
	g.flushLayout()
}

// flushLayout runs pending layout passes. A pass may request another one, so
// a couple of rounds are allowed before giving up.
func (g *Grid) flushLayout() {
	for round := 0; g.guard.layoutPending; round++ {
		if round == 3 {
			g.invariant("layout did not settle", "rounds", round)
			g.guard.layoutPending = false
			return
		}
		o := g.guard.pending
		g.guard.layoutPending = false
		g.guard.pending = layoutOptions{}
		g.performLayout(o)
	}
}

// PerformLayout recomputes everything: header and data rectangles, fill
// widths, auto-sizes and the viewport.
func (g *Grid) PerformLayout() {
	g.requestLayout(layoutOptions{
		computeVisibleRows:    true,
		invalidateFillColumns: true,
		repositionEditor:      true,
		autoSize:              true,
	})
}

// Layout returns the rectangles of the last layout pass.
func (g *Grid) Layout() LayoutInfo { return g.layout }

func (g *Grid) performLayout(o layoutOptions) {
	g.guard.inLayout = true
	defer func() { g.guard.inLayout = false }()
	defer g.suspend(suspendDimension)()

	autoSize := o.autoSize && g.guard.counts[suspendAutoSize] == 0
	if o.autoSize && !autoSize {
		g.guard.autoSizePending = true
	}
	if autoSize {
		g.autoSizeColumns(false)
	}

	oldDataW := g.layout.Data.W
	g.layout = g.computeLayoutInfo()
	if o.invalidateFillColumns || g.columns.usedFillWeightsDirty || g.layout.Data.W != oldDataW {
		if g.computeFillColumns() {
			g.layout = g.computeLayoutInfo()
		}
	}
	if !o.useRowShortcut {
		g.vp.rowAnchorValid = false
	}
	g.recomputeViewport()

	if autoSize && g.autoSizeDisplayed() {
		g.layout = g.computeLayoutInfo()
		g.recomputeViewport()
	}

	g.host.Invalidate(g.layout.Client)
	if o.repositionEditor {
		g.repositionEditor()
	}
	g.log.Debug("layout",
		"data", g.layout.Data,
		"hOffset", g.vp.horizontalOffset,
		"vOffset", g.vp.verticalOffset,
		"firstCol", g.vp.firstCol,
		"firstRow", g.vp.firstRow,
	)
}

// computeLayoutInfo derives the header, data and scroll bar rectangles from
// the bounds and band extents.
func (g *Grid) computeLayoutInfo() LayoutInfo {
	t := g.borderStyle.thickness()
	b := g.bounds
	client := Rect{X: b.X + t, Y: b.Y + t, W: max(b.W-2*t, 0), H: max(b.H-2*t, 0)}

	chh, rhw := 0, 0
	if g.headers.columnHeadersVisible {
		chh = min(g.headers.columnHeadersHeight, client.H)
	}
	if g.headers.rowHeadersVisible {
		rhw = min(g.headers.rowHeadersWidth, client.W)
	}

	colExtent := 0
	for _, c := range g.columns.items {
		if !c.Visible() {
			continue
		}
		if c.InheritedAutoSizeMode() == AutoSizeColumnFill {
			colExtent += c.minWidth
		} else {
			colExtent += c.width
		}
	}
	rowExtent := g.rows.Extent(StateVisible, 0)

	sb := max(g.theme.ScrollbarSize, 0)
	needH, needV := false, false
	for range 2 {
		dataW := client.W - rhw
		dataH := client.H - chh
		if needV {
			dataW -= sb
		}
		if needH {
			dataH -= sb
		}
		needH = g.scrollBars.horizontal() && colExtent > dataW && dataH > sb
		needV = g.scrollBars.vertical() && rowExtent > dataH && dataW > sb
	}

	l := LayoutInfo{Client: client, RightToLeft: g.rightToLeft}
	dataW := client.W - rhw
	dataH := client.H - chh
	if needV {
		dataW -= sb
		l.VScrollBar = Rect{X: client.Right() - sb, Y: client.Y + chh, W: sb, H: max(dataH, 0)}
	}
	if needH {
		dataH -= sb
		l.HScrollBar = Rect{X: client.X + rhw, Y: client.Bottom() - sb, W: max(dataW, 0), H: sb}
		if needV {
			l.VScrollBar.H = max(dataH, 0)
		}
	}
	dataW, dataH = max(dataW, 0), max(dataH, 0)
	l.TopLeftHeader = Rect{X: client.X, Y: client.Y, W: rhw, H: chh}
	l.ColumnHeaders = Rect{X: client.X + rhw, Y: client.Y, W: dataW, H: chh}
	l.RowHeaders = Rect{X: client.X, Y: client.Y + chh, W: rhw, H: dataH}
	l.Data = Rect{X: client.X + rhw, Y: client.Y + chh, W: dataW, H: dataH}
	return l
}

// computeFillColumns distributes the data width left over by non-fill
// columns among fill columns by weight. A column that would drop below its
// minimum is fixed at the minimum and the rest is shared again; the rounding
// remainder goes to the last fill column. Reports whether a width changed.
func (g *Grid) computeFillColumns() bool {
	g.columns.usedFillWeightsDirty = false
	var fills []*Column
	used := 0
	for _, i := range g.visibleColumnsInOrder() {
		c := g.columns.items[i]
		if c.InheritedAutoSizeMode() == AutoSizeColumnFill {
			fills = append(fills, c)
		} else {
			used += c.width
		}
	}
	if len(fills) == 0 {
		return false
	}

	remaining := max(g.layout.Data.W-used, 0)
	widths := make(map[*Column]int, len(fills))
	pool := fills
	for {
		weight := 0.0
		for _, c := range pool {
			weight += c.fillWeight
		}
		var clamped []*Column
		for _, c := range pool {
			if int(float64(remaining)*c.fillWeight/weight) < c.minWidth {
				clamped = append(clamped, c)
			}
		}
		if len(clamped) == 0 || len(clamped) == len(pool) {
			if len(clamped) == len(pool) {
				for _, c := range pool {
					widths[c] = c.minWidth
				}
				pool = nil
			}
			break
		}
		for _, c := range clamped {
			widths[c] = c.minWidth
			remaining -= c.minWidth
		}
		next := pool[:0:0]
		for _, c := range pool {
			if _, ok := widths[c]; !ok {
				next = append(next, c)
			}
		}
		pool = next
	}
	if len(pool) > 0 {
		weight := 0.0
		for _, c := range pool {
			weight += c.fillWeight
		}
		given := 0
		for _, c := range pool {
			w := int(float64(remaining) * c.fillWeight / weight)
			widths[c] = w
			given += w
		}
		widths[pool[len(pool)-1]] += remaining - given
	}

	changed := false
	for _, c := range fills {
		if w := max(widths[c], c.minWidth); w != c.width {
			c.setWidth(w)
			changed = true
		}
	}
	return changed
}

// visibleColumnsInOrder returns visible column indices in display order.
func (g *Grid) visibleColumnsInOrder() []int {
	out := make([]int, 0, len(g.columns.items))
	for i := range g.columns.All(StateVisible, 0) {
		out = append(out, i)
	}
	return out
}

// autoSizeColumns sizes columns whose mode looks at the header or at every
// row. Displayed-only modes are handled by autoSizeDisplayed once the viewport
// is known.
func (g *Grid) autoSizeColumns(displayed bool) bool {
	defer g.suspend(suspendAutoSize)()
	changed := false
	for _, c := range g.columns.items {
		mode := c.InheritedAutoSizeMode()
		if !c.Visible() || mode == AutoSizeColumnNone || mode == AutoSizeColumnFill {
			continue
		}
		if mode.displayedOnly() != displayed {
			continue
		}
		w := g.preferredColumnWidth(c, mode)
		if w != c.width {
			c.setWidth(w)
			changed = true
		}
	}
	return changed
}

// preferredColumnWidth measures the header and the cells selected by mode.
func (g *Grid) preferredColumnWidth(c *Column, mode AutoSizeColumnMode) int {
	pad := 2 * max(g.defaultCellStyle.Padding, 1)
	w := c.minWidth
	if mode.usesHeader() && g.headers.columnHeadersVisible {
		w = max(w, g.measurer.MeasureText(c.headerText).W+pad)
	}
	if mode.usesCells() {
		rows := g.vp.displayedRows
		if !mode.displayedOnly() {
			rows = nil
			for i := range g.rows.All(StateVisible, 0) {
				rows = append(rows, i)
			}
		}
		for _, r := range rows {
			w = max(w, g.measurer.MeasureText(g.FormattedValue(c.index, r)).W+pad)
		}
	}
	return w
}

// autoSizeDisplayed runs displayed-only column modes and row auto-sizing.
func (g *Grid) autoSizeDisplayed() bool {
	changed := g.autoSizeColumns(true)
	if g.autoSizeRows() {
		changed = true
	}
	return changed
}

// autoSizeRows grows or shrinks rows to their content. Rows never go below the
// template height, so single-line content does not unshare every row.
func (g *Grid) autoSizeRows() bool {
	mode := g.autoSizeRowsMode
	if mode == AutoSizeRowsNone || g.columns.Len() == 0 {
		return false
	}
	defer g.suspend(suspendAutoSize)()
	var rows []int
	if mode.displayedOnly() {
		rows = append(rows, g.vp.displayedRows...)
	} else {
		for i := range g.rows.All(StateVisible, 0) {
			rows = append(rows, i)
		}
	}
	pad := 2 * max(g.defaultCellStyle.Padding, 1)
	changed := false
	for _, i := range rows {
		shared := g.rows.shared(i)
		h := max(g.rowTemplate.height, shared.minHeight)
		if mode.usesHeader() && shared.headerValue != nil {
			h = max(h, g.measurer.MeasureText(formatValue(shared.headerValue, CellStyle{})).H+pad)
		}
		if mode.usesCells() {
			for c := range g.columns.All(StateVisible, 0) {
				h = max(h, g.measurer.MeasureText(g.FormattedValue(c, i)).H+pad)
			}
		}
		if h == shared.height {
			continue
		}
		r, err := g.rows.Get(i)
		if err != nil {
			continue
		}
		r.setHeight(h)
		changed = true
	}
	if changed {
		g.rows.invalidate()
	}
	return changed
}

// repositionEditor moves the live editor over the current cell.
func (g *Grid) repositionEditor() {
	if g.edit.state == NotEditing {
		return
	}
	g.editor.SetBounds(g.CellDisplayBounds(g.current.Col, g.current.Row))
}
