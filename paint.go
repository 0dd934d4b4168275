package datagrid

import "fmt"

// PaintKind tells which part of the grid a paint request draws.
type PaintKind uint8

const (
	PaintCell PaintKind = iota
	PaintColumnHeader
	PaintRowHeader
	PaintTopLeftHeader
)

// CellPaintRequest describes one cell or header to draw. Bounds are the full
// client bounds; Clip is the part that may be drawn.
type CellPaintRequest struct {
	Kind      PaintKind
	Col, Row  int // -1 for the header coordinate
	Bounds    Rect
	Clip      Rect
	Text      string
	ErrorText string
	// Style is resolved: selection and editing colors are already applied.
	Style     CellStyle
	State     ElementState
	Current   bool
	Editing   bool
	Caret     int // Rune index of the edit caret, -1 when not shown
	SortOrder SortOrder
	CellType  CellType
	Checked   bool
	// RightToLeft swaps the meaning of left and right alignment.
	RightToLeft bool
}

// Painter draws what Grid.Paint asks for.
type Painter interface {
	FillRect(r Rect, c Color)
	PaintCell(req CellPaintRequest)
}

// Paint draws the displayed part of the grid. Rows are read through their
// shared instances; painting never unshares a row.
func (g *Grid) Paint(p Painter) {
	l := g.layout
	if l.Client.Empty() {
		return
	}
	p.FillRect(l.Client, g.theme.BackgroundColor)
	g.paintHeaders(p)
	for _, row := range g.vp.displayedRows {
		for _, col := range g.vp.displayedCols {
			g.paintCell(p, col, row)
		}
	}
	g.paintFocus(p)
	g.paintScrollBars(p)
}

func (g *Grid) paintHeaders(p Painter) {
	l := g.layout
	vp := g.Viewport()
	header := CellStyle{
		BackColor: g.theme.HeaderBgColor,
		ForeColor: g.theme.HeaderTextColor,
		Alignment: AlignLeft,
		Padding:   g.defaultCellStyle.Padding,
	}
	if !l.TopLeftHeader.Empty() {
		r := mirrorRect(l, l.TopLeftHeader)
		p.PaintCell(CellPaintRequest{Kind: PaintTopLeftHeader, Col: -1, Row: -1, Bounds: r, Clip: r,
			Style: header, Caret: -1, RightToLeft: g.rightToLeft})
	}
	if g.headers.columnHeadersVisible {
		for _, col := range g.vp.displayedCols {
			c := g.columns.items[col]
			s := header
			if c.state.Has(StateSelected) || g.current.Col == col {
				s.BackColor = g.theme.HeaderSelectedColor
			}
			req := CellPaintRequest{
				Kind:        PaintColumnHeader,
				Col:         col,
				Row:         -1,
				Bounds:      CellBounds(g.columns, g.rows, vp, col, -1),
				Clip:        cellDisplayBounds(g.columns, g.rows, vp, col, -1),
				Text:        c.headerText,
				Style:       s,
				State:       c.state,
				Caret:       -1,
				RightToLeft: g.rightToLeft,
			}
			if g.sort.column == col {
				req.SortOrder = g.sort.order
			}
			p.PaintCell(req)
			g.paintGridLines(p, req.Bounds, req.Clip)
		}
	}
	if g.headers.rowHeadersVisible {
		for _, row := range g.vp.displayedRows {
			r := g.rows.shared(row)
			st := g.rows.State(row)
			s := header
			if st.Has(StateSelected) || g.current.Row == row {
				s.BackColor = g.theme.HeaderSelectedColor
			}
			text := ""
			if r.headerValue != nil {
				text = fmt.Sprint(r.headerValue)
			}
			req := CellPaintRequest{
				Kind:        PaintRowHeader,
				Col:         -1,
				Row:         row,
				Bounds:      CellBounds(g.columns, g.rows, vp, -1, row),
				Clip:        cellDisplayBounds(g.columns, g.rows, vp, -1, row),
				Text:        text,
				ErrorText:   r.errorText,
				Style:       s,
				State:       st,
				Current:     g.current.Row == row,
				Caret:       -1,
				RightToLeft: g.rightToLeft,
			}
			p.PaintCell(req)
			g.paintGridLines(p, req.Bounds, req.Clip)
		}
	}
}

func (g *Grid) paintCell(p Painter, col, row int) {
	vp := g.Viewport()
	clip := cellDisplayBounds(g.columns, g.rows, vp, col, row)
	if clip.Empty() {
		return
	}
	a := CellAddress{Col: col, Row: row}
	r := g.rows.shared(row)
	st := StateVisible | StateDisplayed
	if g.columns.items[col].Frozen() || g.rows.State(row).Has(StateFrozen) {
		st |= StateFrozen
	}
	if g.IsCellReadOnly(col, row) {
		st |= StateReadOnly
	}
	s := g.EffectiveStyle(col, row)
	if g.IsCellSelected(col, row) {
		st |= StateSelected
		s.BackColor, s.ForeColor = s.SelectionBackColor, s.SelectionForeColor
	}
	req := CellPaintRequest{
		Kind:        PaintCell,
		Col:         col,
		Row:         row,
		Bounds:      CellBounds(g.columns, g.rows, vp, col, row),
		Clip:        clip,
		Style:       s,
		State:       st,
		Current:     g.current == a,
		Caret:       -1,
		RightToLeft: g.rightToLeft,
	}
	if col < len(r.cells) {
		req.ErrorText = r.cells[col].errorText
	}
	if g.edit.state != NotEditing && g.edit.cell == a {
		req.Editing = true
		req.Text = g.editor.Text()
		req.Style.BackColor = g.theme.EditingBgColor
		req.Style.ForeColor = g.theme.CellStyle.ForeColor
		if te, ok := g.editor.(*TextEditor); ok {
			req.Caret = te.CursorPos
		}
	} else {
		req.Text = g.FormattedValue(col, row)
	}
	req.CellType = g.columns.items[col].cellType
	if req.CellType == CellCheckBox {
		v, _ := g.CellValue(col, row)
		req.Checked = checked(v)
		req.Text = "[ ]"
		if req.Checked {
			req.Text = "[x]"
		}
		req.Style.Alignment = AlignCenter
	}
	p.PaintCell(req)
	g.paintGridLines(p, req.Bounds, clip)
}

// paintGridLines draws the bottom edge and the trailing edge of a cell.
func (g *Grid) paintGridLines(p Painter, b, clip Rect) {
	c := g.theme.GridLineColor
	x := b.Right() - 1
	if g.rightToLeft {
		x = b.X
	}
	p.FillRect(Rect{X: x, Y: b.Y, W: 1, H: b.H}.Intersect(clip), c)
	p.FillRect(Rect{X: b.X, Y: b.Bottom() - 1, W: b.W, H: 1}.Intersect(clip), c)
}

// paintFocus outlines the current cell.
func (g *Grid) paintFocus(p Painter) {
	if g.current.IsNone() || !g.IsCellVisible(g.current.Col, g.current.Row) {
		return
	}
	vp := g.Viewport()
	b := CellBounds(g.columns, g.rows, vp, g.current.Col, g.current.Row)
	clip := cellDisplayBounds(g.columns, g.rows, vp, g.current.Col, g.current.Row)
	if clip.Empty() {
		return
	}
	c := g.theme.CurrentCellColor
	for _, edge := range [4]Rect{
		{X: b.X, Y: b.Y, W: b.W, H: 1},
		{X: b.X, Y: b.Bottom() - 1, W: b.W, H: 1},
		{X: b.X, Y: b.Y, W: 1, H: b.H},
		{X: b.Right() - 1, Y: b.Y, W: 1, H: b.H},
	} {
		p.FillRect(edge.Intersect(clip), c)
	}
}

func (g *Grid) paintScrollBars(p Painter) {
	l := g.layout
	for _, o := range [2]Orientation{Horizontal, Vertical} {
		track := g.ScrollBarTrack(o)
		if track.Empty() {
			continue
		}
		p.FillRect(track, g.theme.ScrollbarBgColor)
		p.FillRect(g.ScrollBarThumb(o), g.theme.ScrollbarGrabColor)
	}
	if !l.HScrollBar.Empty() && !l.VScrollBar.Empty() {
		corner := Rect{X: l.VScrollBar.X, Y: l.HScrollBar.Y, W: l.VScrollBar.W, H: l.HScrollBar.H}
		p.FillRect(mirrorRect(l, corner), g.theme.ScrollbarBgColor)
	}
}
