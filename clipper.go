package datagrid

// rowClipper locates scrolling rows when every row has the same height, so
// grids with many rows never walk the row list to scroll or hit-test.
//
// Scroll space starts at the top of the first scrolling row:
//
//	c, ok := rows.clipper()
//	start, end := c.visibleRange(offset, height)
//	for i := start; i < end; i++ {
//	    y := c.top(i) - offset
//	}
type rowClipper struct {
	first  int // Index of the first scrolling row
	total  int // Number of rows, frozen included
	height int // Height of every row
}

// clipper returns a clipper when all rows are visible and equally tall.
func (rc *RowCollection) clipper() (rowClipper, bool) {
	h, ok := rc.uniformHeight()
	if !ok || h <= 0 {
		return rowClipper{}, false
	}
	return rowClipper{first: rc.frozenCount(), total: len(rc.entries), height: h}, true
}

// rowAt returns the row covering scroll-space y and its top, or -1 when y
// lies outside the rows.
func (c rowClipper) rowAt(y int) (int, int) {
	if y < 0 {
		return -1, 0
	}
	i := c.first + y/c.height
	if i >= c.total {
		return -1, 0
	}
	return i, c.top(i)
}

// top returns the scroll-space top of row i.
func (c rowClipper) top(i int) int {
	return (i - c.first) * c.height
}

// visibleRange returns the rows intersecting [offset, offset+visible), end
// exclusive.
func (c rowClipper) visibleRange(offset, visible int) (start, end int) {
	start = min(c.first+max(offset, 0)/c.height, c.total)
	if visible <= 0 {
		return start, start
	}
	end = c.first + (max(offset, 0)+visible+c.height-1)/c.height
	return start, min(end, c.total)
}
