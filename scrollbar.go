package datagrid

// MinThumbSize is the smallest scroll bar thumb length, in pixels.
const MinThumbSize = 20

// ScrollBarTrack returns the client rectangle of a scroll bar, empty when the
// bar takes no space.
func (g *Grid) ScrollBarTrack(o Orientation) Rect {
	r := g.layout.VScrollBar
	if o == Horizontal {
		r = g.layout.HScrollBar
	}
	if r.Empty() {
		return Rect{}
	}
	return mirrorRect(g.layout, r)
}

// scrollBarMetrics returns the track length, the visible and total scrolling
// extents, the current offset and its maximum along one axis.
func (g *Grid) scrollBarMetrics(o Orientation) (track, area, extent, offset, maxOffset int) {
	if o == Horizontal {
		return g.layout.HScrollBar.W, max(g.scrollingWidth(), 0),
			g.columns.Extent(StateVisible, StateFrozen), g.vp.horizontalOffset, g.MaxHorizontalOffset()
	}
	return g.layout.VScrollBar.H, max(g.scrollingHeight(), 0),
		g.rows.Extent(StateVisible, StateFrozen), g.vp.verticalOffset, g.MaxVerticalOffset()
}

// thumbSpan returns the thumb offset from the track start and its length.
func (g *Grid) thumbSpan(o Orientation) (pos, length int) {
	track, area, extent, offset, maxOffset := g.scrollBarMetrics(o)
	if extent <= area || maxOffset == 0 {
		return 0, track
	}
	length = min(max(MinThumbSize, track*area/extent), track)
	pos = offset * (track - length) / maxOffset
	return pos, length
}

// ScrollBarThumb returns the client rectangle of a scroll bar thumb.
func (g *Grid) ScrollBarThumb(o Orientation) Rect {
	var r Rect
	if o == Horizontal {
		r = g.layout.HScrollBar
	} else {
		r = g.layout.VScrollBar
	}
	if r.Empty() {
		return Rect{}
	}
	pos, length := g.thumbSpan(o)
	if o == Horizontal {
		r.X, r.W = r.X+pos, length
	} else {
		r.Y, r.H = r.Y+pos, length
	}
	return mirrorRect(g.layout, r)
}

// scrollBarAt tells which bar, if any, is under the client point.
func (g *Grid) scrollBarAt(p Point) (Orientation, bool) {
	switch {
	case g.ScrollBarTrack(Vertical).Contains(p):
		return Vertical, true
	case g.ScrollBarTrack(Horizontal).Contains(p):
		return Horizontal, true
	}
	return 0, false
}

// pressScrollBar starts a thumb drag, or pages when the track outside the
// thumb is pressed.
func (g *Grid) pressScrollBar(o Orientation, p Point) {
	thumb := g.ScrollBarThumb(o)
	if thumb.Contains(p) {
		_, _, _, offset, _ := g.scrollBarMetrics(o)
		g.gesture = gestureState{kind: gestureScrollBar, band: int(o), startX: p.X, startY: p.Y, startSize: offset}
		return
	}
	_, area, _, offset, _ := g.scrollBarMetrics(o)
	before := p.Y < thumb.Y
	if o == Horizontal {
		before = p.X < thumb.X
		if g.rightToLeft {
			before = p.X >= thumb.Right()
		}
	}
	if before {
		area = -area
	}
	g.ScrollBarDrag(o, offset+area)
}

// dragScrollBar moves the thumb by the pointer delta since the press.
func (g *Grid) dragScrollBar(p Point) {
	s := &g.gesture
	o := Orientation(s.band)
	track, _, _, _, maxOffset := g.scrollBarMetrics(o)
	_, length := g.thumbSpan(o)
	free := track - length
	if free <= 0 {
		return
	}
	d := p.Y - s.startY
	if o == Horizontal {
		d = p.X - s.startX
		if g.rightToLeft {
			d = -d
		}
	}
	g.ScrollBarDrag(o, s.startSize+d*maxOffset/free)
}
