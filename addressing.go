package datagrid

// HitType classifies a point in client coordinates.
type HitType uint8

const (
	HitNone HitType = iota
	HitCell
	HitColumnHeader
	HitRowHeader
	HitColumnResize
	HitRowResize
	HitTopLeftHeader
)

func (t HitType) String() string {
	switch t {
	case HitCell:
		return "Cell"
	case HitColumnHeader:
		return "ColumnHeader"
	case HitRowHeader:
		return "RowHeader"
	case HitColumnResize:
		return "ColumnResize"
	case HitRowResize:
		return "RowResize"
	case HitTopLeftHeader:
		return "TopLeftHeader"
	}
	return "None"
}

// HitTestInfo is the result of HitTest. Col and Row are -1 when the hit is
// not on a band; a resize hit names the band whose trailing edge is grabbed.
type HitTestInfo struct {
	Type     HitType
	Col, Row int
	Bounds   Rect // Unclipped bounds of the hit cell or header
}

var noHit = HitTestInfo{Type: HitNone, Col: -1, Row: -1}

// mirrorRect flips r inside the client rectangle for right-to-left layouts.
func mirrorRect(l LayoutInfo, r Rect) Rect {
	if !l.RightToLeft || r.Empty() {
		return r
	}
	r.X = 2*l.Client.X + l.Client.W - r.X - r.W
	return r
}

// mirrorX flips a point coordinate inside the client rectangle.
func mirrorX(l LayoutInfo, x int) int {
	if !l.RightToLeft {
		return x
	}
	return 2*l.Client.X + l.Client.W - 1 - x
}

// columnX returns the unmirrored left edge of a visible column, or false.
func columnX(cols *ColumnCollection, vp Viewport, col int) (int, bool) {
	c := cols.At(col)
	if c == nil || !c.Visible() {
		return 0, false
	}
	if c.Frozen() {
		return vp.Layout.Data.X + cols.frozenX(col), true
	}
	return vp.Layout.Data.X + cols.Extent(StateVisibleFrozen, 0) + cols.scrollX(col) - vp.HorizontalOffset, true
}

// rowY returns the top edge of a visible row, or false.
func rowY(rows *RowCollection, vp Viewport, row int) (int, bool) {
	s := rows.State(row)
	if row < 0 || row >= rows.Len() || !s.Has(StateVisible) {
		return 0, false
	}
	if s.Has(StateFrozen) {
		return vp.Layout.Data.Y + rows.frozenY(row), true
	}
	return vp.Layout.Data.Y + rows.Extent(StateVisibleFrozen, 0) + rows.scrollY(row) - vp.VerticalOffset, true
}

// CellBounds returns the rectangle of a cell in client coordinates, whether
// or not it is scrolled into view. Col -1 addresses the row header and row -1
// the column header; (-1, -1) is the top-left header. Hidden or unknown bands
// give an empty rectangle.
func CellBounds(cols *ColumnCollection, rows *RowCollection, vp Viewport, col, row int) Rect {
	l := vp.Layout
	var r Rect
	switch {
	case col == -1:
		r.X, r.W = l.RowHeaders.X, l.RowHeaders.W
	default:
		x, ok := columnX(cols, vp, col)
		if !ok {
			return Rect{}
		}
		r.X, r.W = x, cols.items[col].width
	}
	switch {
	case row == -1:
		r.Y, r.H = l.ColumnHeaders.Y, l.ColumnHeaders.H
	default:
		y, ok := rowY(rows, vp, row)
		if !ok {
			return Rect{}
		}
		r.Y, r.H = y, rows.shared(row).height
	}
	if r.Empty() {
		return Rect{}
	}
	return mirrorRect(l, r)
}

// cellDisplayBounds clips CellBounds to the region the cell can be seen in:
// scrolling bands never draw over frozen ones.
func cellDisplayBounds(cols *ColumnCollection, rows *RowCollection, vp Viewport, col, row int) Rect {
	l := vp.Layout
	r := CellBounds(cols, rows, vp, col, row)
	if r.Empty() {
		return r
	}
	area := l.Client
	if col >= 0 {
		area.X, area.W = l.Data.X, l.Data.W
		if !cols.items[col].Frozen() {
			fw := min(cols.Extent(StateVisibleFrozen, 0), l.Data.W)
			area.X += fw
			area.W -= fw
		}
	} else {
		area.X, area.W = l.RowHeaders.X, l.RowHeaders.W
	}
	if row >= 0 {
		area.Y, area.H = l.Data.Y, l.Data.H
		if !rows.State(row).Has(StateFrozen) {
			fh := min(rows.Extent(StateVisibleFrozen, 0), l.Data.H)
			area.Y += fh
			area.H -= fh
		}
	} else {
		area.Y, area.H = l.ColumnHeaders.Y, l.ColumnHeaders.H
	}
	r = r.Intersect(mirrorRect(l, area))
	if r.Empty() {
		return Rect{}
	}
	return r
}

// columnAt returns the visible column under unmirrored x inside the data
// columns, or -1.
func columnAt(cols *ColumnCollection, vp Viewport, x int) int {
	d := vp.Layout.Data
	if x < d.X || x >= d.Right() {
		return -1
	}
	fw := cols.Extent(StateVisibleFrozen, 0)
	if x < d.X+fw {
		left := d.X
		for i := range cols.All(StateVisibleFrozen, 0) {
			w := cols.items[i].width
			if x < left+w {
				return i
			}
			left += w
		}
		return -1
	}
	sx := x - d.X - fw + vp.HorizontalOffset
	left := 0
	for i := range cols.All(StateVisible, StateFrozen) {
		w := cols.items[i].width
		if sx < left+w {
			return i
		}
		left += w
	}
	return -1
}

// rowAt returns the visible row under y inside the data rows, or -1.
func rowAt(rows *RowCollection, vp Viewport, y int) int {
	d := vp.Layout.Data
	if y < d.Y || y >= d.Bottom() {
		return -1
	}
	fh := rows.Extent(StateVisibleFrozen, 0)
	if y < d.Y+fh {
		top := d.Y
		for i := range rows.All(StateVisibleFrozen, 0) {
			h := rows.shared(i).height
			if y < top+h {
				return i
			}
			top += h
		}
		return -1
	}
	i, _ := rows.rowAtScrollY(y - d.Y - fh + vp.VerticalOffset)
	return i
}

// HitTest classifies point p given in client coordinates. Resize zones are
// reported only inside the header bands, for bands the user may resize.
func HitTest(cols *ColumnCollection, rows *RowCollection, vp Viewport, p Point) HitTestInfo {
	l := vp.Layout
	if !l.Client.Contains(p) {
		return noHit
	}
	x := mirrorX(l, p.X)
	q := Point{X: x, Y: p.Y}
	switch {
	case l.TopLeftHeader.Contains(q):
		return HitTestInfo{Type: HitTopLeftHeader, Col: -1, Row: -1, Bounds: mirrorRect(l, l.TopLeftHeader)}

	case l.ColumnHeaders.Contains(q):
		col := columnAt(cols, vp, x)
		if col < 0 {
			return noHit
		}
		if rc := resizeColumnAt(cols, vp, col, x); rc >= 0 {
			return HitTestInfo{Type: HitColumnResize, Col: rc, Row: -1, Bounds: CellBounds(cols, rows, vp, rc, -1)}
		}
		return HitTestInfo{Type: HitColumnHeader, Col: col, Row: -1, Bounds: CellBounds(cols, rows, vp, col, -1)}

	case l.RowHeaders.Contains(q):
		row := rowAt(rows, vp, p.Y)
		if row < 0 {
			return noHit
		}
		if rr := resizeRowAt(rows, vp, row, p.Y); rr >= 0 {
			return HitTestInfo{Type: HitRowResize, Col: -1, Row: rr, Bounds: CellBounds(cols, rows, vp, -1, rr)}
		}
		return HitTestInfo{Type: HitRowHeader, Col: -1, Row: row, Bounds: CellBounds(cols, rows, vp, -1, row)}

	case l.Data.Contains(q):
		col, row := columnAt(cols, vp, x), rowAt(rows, vp, p.Y)
		if col < 0 || row < 0 {
			return noHit
		}
		return HitTestInfo{Type: HitCell, Col: col, Row: row, Bounds: CellBounds(cols, rows, vp, col, row)}
	}
	return noHit
}

// resizeColumnAt returns the column whose trailing edge lies within half the
// hot zone of x, or -1.
func resizeColumnAt(cols *ColumnCollection, vp Viewport, col, x int) int {
	half := ColumnSizingHotZone / 2
	left, _ := columnX(cols, vp, col)
	right := left + cols.items[col].width
	if x >= right-half && columnResizable(cols.items[col]) {
		return col
	}
	if x < left+half {
		if prev := cols.Prev(col, StateVisible, 0); prev >= 0 && columnResizable(cols.items[prev]) {
			// The leading edge of the first scrolling column may be hidden
			// behind the frozen band.
			if pl, _ := columnX(cols, vp, prev); pl+cols.items[prev].width >= left {
				return prev
			}
		}
	}
	return -1
}

func columnResizable(c *Column) bool {
	m := c.InheritedAutoSizeMode()
	return m == AutoSizeColumnNone || m == AutoSizeColumnFill
}

// resizeRowAt returns the row whose bottom edge lies within half the hot zone
// of y, or -1.
func resizeRowAt(rows *RowCollection, vp Viewport, row, y int) int {
	if rows.grid != nil && rows.grid.autoSizeRowsMode != AutoSizeRowsNone {
		return -1
	}
	half := RowSizingHotZone / 2
	top, _ := rowY(rows, vp, row)
	if y >= top+rows.shared(row).height-half {
		return row
	}
	if y < top+half {
		if prev := rows.Prev(row, StateVisible, 0); prev >= 0 {
			if pt, _ := rowY(rows, vp, prev); pt+rows.shared(prev).height >= top {
				return prev
			}
		}
	}
	return -1
}

// CellBounds returns the rectangle of a cell at the current scroll position.
// See the package-level CellBounds for the addressing rules.
func (g *Grid) CellBounds(col, row int) Rect {
	return CellBounds(g.columns, g.rows, g.Viewport(), col, row)
}

// CellDisplayBounds returns the visible part of a cell's rectangle, empty
// when the cell is scrolled out or hidden behind frozen bands.
func (g *Grid) CellDisplayBounds(col, row int) Rect {
	return cellDisplayBounds(g.columns, g.rows, g.Viewport(), col, row)
}

// HitTest classifies the client point (x, y).
func (g *Grid) HitTest(x, y int) HitTestInfo {
	return HitTest(g.columns, g.rows, g.Viewport(), Point{X: x, Y: y})
}
