package datagrid

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// noClip is the clip rectangle in effect outside any PushClipRect.
var noClip = [4]float32{-1e9, -1e9, 1e9, 1e9}

var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 4096),
			IdxBuffer: make([]uint16, 0, 6144),
			CmdBuffer: make([]DrawCmd, 0, 64),
			clipStack: make([][4]float32, 0, 4),
		}
	},
}

// AcquireDrawList takes a cleared DrawList from the pool. Return it with
// ReleaseDrawList once the renderer is done with it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns dl to the pool.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates the triangles of one grid paint. Consecutive
// primitives sharing a texture and clip rectangle land in the same DrawCmd.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	clipStack [][4]float32
	clip      [4]float32
	texture   uint32
	vtxBase   uint32 // first vertex of the open command
	idxBase   uint32 // first index of the open command
}

// Clear empties the list and keeps its capacity.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.clip = noClip
	dl.texture = 0
	dl.vtxBase, dl.idxBase = 0, 0
}

// PushClipRect clips everything drawn until the matching PopClipRect.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.clip)
	dl.clip = [4]float32{x1, y1, x2, y2}
	dl.openCmd()
}

// PopClipRect restores the previous clip rectangle.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n == 0 {
		return
	}
	dl.clip = dl.clipStack[n-1]
	dl.clipStack = dl.clipStack[:n-1]
	dl.openCmd()
}

// SetTexture selects the texture for the following primitives; 0 draws
// untextured.
func (dl *DrawList) SetTexture(id uint32) {
	if dl.texture == id {
		return
	}
	dl.texture = id
	dl.openCmd()
}

// closeCmd records the index count of the open command.
func (dl *DrawList) closeCmd() {
	if n := len(dl.CmdBuffer); n > 0 {
		dl.CmdBuffer[n-1].ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxBase
	}
}

// openCmd closes the current command and starts one with the current clip
// rectangle and texture. An open command that has nothing in it yet is
// reused.
func (dl *DrawList) openCmd() {
	dl.closeCmd()
	dl.vtxBase = uint32(len(dl.VtxBuffer))
	dl.idxBase = uint32(len(dl.IdxBuffer))
	cmd := DrawCmd{
		ClipRect:     dl.clip,
		TextureID:    dl.texture,
		VertexOffset: dl.vtxBase,
		IndexOffset:  dl.idxBase,
	}
	if n := len(dl.CmdBuffer); n > 0 && dl.CmdBuffer[n-1].ElemCount == 0 {
		dl.CmdBuffer[n-1] = cmd
		return
	}
	dl.CmdBuffer = append(dl.CmdBuffer, cmd)
}

// quad appends four vertices and the two triangles covering them.
func (dl *DrawList) quad(v0, v1, v2, v3 Vertex) {
	i := dl.reserve(4)
	dl.VtxBuffer = append(dl.VtxBuffer, v0, v1, v2, v3)
	dl.IdxBuffer = append(dl.IdxBuffer, i, i+1, i+2, i, i+2, i+3)
}

// reserve returns the index, relative to the open command, of the next
// vertex. Indices are 16 bit, so a command holding too many vertices is
// split first.
func (dl *DrawList) reserve(n int) uint16 {
	if len(dl.CmdBuffer) == 0 || len(dl.VtxBuffer)-int(dl.vtxBase)+n > 0xFFFF {
		dl.openCmd()
	}
	return uint16(len(dl.VtxBuffer) - int(dl.vtxBase))
}

// AddRect fills a rectangle. Fully transparent colors draw nothing.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.quad(
		Vertex{Pos: [2]float32{x, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, Color: color},
	)
}

// AddTriangle fills a triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	i := dl.reserve(3)
	dl.VtxBuffer = append(dl.VtxBuffer,
		Vertex{Pos: [2]float32{x1, y1}, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, Color: color},
	)
	dl.IdxBuffer = append(dl.IdxBuffer, i, i+1, i+2)
}

// AddText draws one line of text with glyphs from atlas, scaled by scale.
// Runes the atlas lacks draw as '?'. It returns the advance in pixels.
func (dl *DrawList) AddText(x, y float32, text string, color uint32, atlas FontAtlas, scale float32) float32 {
	cw := float32(atlas.GlyphW) * scale
	cellH := float32(atlas.GlyphH) * scale
	if color&0xFF000000 == 0 || len(text) == 0 {
		return float32(utf8.RuneCountInString(text)) * cw
	}

	px := x
	for _, r := range text {
		char := unicodeFallback(r)
		if !atlas.Contains(char) {
			char = '?'
		}
		u0, v0, u1, v1 := atlas.uv(char)
		dl.quad(
			Vertex{Pos: [2]float32{px, y}, TexCoord: [2]float32{u0, v0}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y}, TexCoord: [2]float32{u1, v0}, Color: color},
			Vertex{Pos: [2]float32{px + cw, y + cellH}, TexCoord: [2]float32{u1, v1}, Color: color},
			Vertex{Pos: [2]float32{px, y + cellH}, TexCoord: [2]float32{u0, v1}, Color: color},
		)
		px += cw
	}
	return px - x
}

// unicodeFallback maps symbols that show up in cell text to the ASCII the
// atlas carries.
func unicodeFallback(r rune) rune {
	if r >= ' ' && r < 0x7F {
		return r
	}
	switch r {
	case '\t':
		return ' '
	case '→', '▶', '►':
		return '>'
	case '←', '◀', '◄':
		return '<'
	case '↓', '▼':
		return 'v'
	case '↑', '▲':
		return '^'
	case '•', '●':
		return '*'
	case '✓', '✔':
		return '+'
	case '✗', '✘', '×':
		return 'x'
	case '—', '–', '−':
		return '-'
	case '‘', '’':
		return '\''
	case '“', '”':
		return '"'
	case '€', '£', '¥':
		return '$'
	}
	return r
}

// Finalize closes the open command and drops empty ones. Call it once all
// primitives are in; calling it again is harmless.
func (dl *DrawList) Finalize() {
	dl.closeCmd()
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
	if n := len(filtered); n > 0 {
		dl.vtxBase, dl.idxBase = filtered[n-1].VertexOffset, filtered[n-1].IndexOffset
	}
}

// DrawListPainter paints a grid into a DrawList using a fixed-cell font atlas.
type DrawListPainter struct {
	dl    *DrawList
	theme Theme
	atlas FontAtlas
}

// NewDrawListPainter creates a painter writing into dl.
func NewDrawListPainter(dl *DrawList, theme Theme, atlas FontAtlas) *DrawListPainter {
	if atlas.GlyphW <= 0 || atlas.GlyphH <= 0 {
		atlas.GlyphW, atlas.GlyphH = theme.CharWidth, theme.CharHeight
	}
	return &DrawListPainter{dl: dl, theme: theme, atlas: atlas}
}

func (p *DrawListPainter) scale() float32 {
	if p.theme.FontScale <= 0 {
		return 1
	}
	return p.theme.FontScale
}

// glyph returns the scaled glyph cell.
func (p *DrawListPainter) glyph() (w, h float32) {
	s := p.scale()
	return float32(p.atlas.GlyphW) * s, float32(p.atlas.GlyphH) * s
}

// FillRect implements Painter.
func (p *DrawListPainter) FillRect(r Rect, c Color) {
	if r.Empty() {
		return
	}
	p.dl.SetTexture(0)
	p.dl.AddRect(float32(r.X), float32(r.Y), float32(r.W), float32(r.H), uint32(c))
}

// PaintCell implements Painter.
func (p *DrawListPainter) PaintCell(req CellPaintRequest) {
	c := req.Clip
	if c.Empty() {
		return
	}
	p.dl.PushClipRect(float32(c.X), float32(c.Y), float32(c.Right()), float32(c.Bottom()))
	defer p.dl.PopClipRect()

	b := req.Bounds
	p.FillRect(b, req.Style.BackColor)
	cw, ch := p.glyph()
	pad := req.Style.Padding
	inner := Rect{X: b.X + pad, Y: b.Y, W: b.W - 2*pad, H: b.H}
	if req.SortOrder != SortNone {
		inner.W -= int(ch)
		glyphX := inner.Right()
		if req.RightToLeft {
			glyphX = b.X + pad
			inner.X += int(ch)
		}
		p.sortGlyph(Rect{X: glyphX, Y: b.Y, W: int(ch), H: b.H}, req.SortOrder, req.Style.ForeColor)
	}

	switch req.CellType {
	case CellCheckBox:
		p.checkBox(checkBoxBounds(b), req.Checked, req.Style.ForeColor)
		if req.ErrorText != "" {
			p.errorMark(b, req.RightToLeft)
		}
		return
	case CellComboBox:
		inner.W -= int(ch)
		glyphX := inner.Right()
		if req.RightToLeft {
			glyphX = b.X + pad
			inner.X += int(ch)
		}
		p.sortGlyph(Rect{X: glyphX, Y: b.Y, W: int(ch), H: b.H}, SortDescending, req.Style.ForeColor)
	}

	lines := []string{strings.ReplaceAll(req.Text, "\n", " ")}
	if req.Style.Wrap == WrapTrue {
		lines = strings.Split(req.Text, "\n")
	}
	y := float32(b.Y) + max(float32(b.H)-ch*float32(len(lines)), 0)/2
	align := req.Style.Alignment
	if req.RightToLeft {
		switch align {
		case AlignLeft, AlignNotSet:
			align = AlignRight
		case AlignRight:
			align = AlignLeft
		}
	}
	var caretX float32
	for i, line := range lines {
		w := float32(utf8.RuneCountInString(line)) * cw
		x := float32(inner.X)
		switch align {
		case AlignCenter:
			x += (float32(inner.W) - w) / 2
		case AlignRight:
			x = float32(inner.Right()) - w
		}
		if i == 0 {
			caretX = x + float32(req.Caret)*cw
		}
		if line == "" {
			continue
		}
		p.dl.SetTexture(p.atlas.TextureID)
		p.dl.AddText(x, y+float32(i)*ch, line, uint32(req.Style.ForeColor), p.atlas, p.scale())
	}
	if req.Caret >= 0 {
		p.FillRect(Rect{X: int(caretX), Y: int(y), W: 1, H: int(ch)}, req.Style.ForeColor)
	}
	if req.ErrorText != "" {
		p.errorMark(b, req.RightToLeft)
	}
}

// sortGlyph draws an up triangle for ascending order, down for descending.
func (p *DrawListPainter) sortGlyph(r Rect, order SortOrder, c Color) {
	p.dl.SetTexture(0)
	cx, cy := float32(r.X)+float32(r.W)/2, float32(r.Y)+float32(r.H)/2
	half := float32(r.W) / 4
	if order == SortAscending {
		p.dl.AddTriangle(cx-half, cy+half/2, cx+half, cy+half/2, cx, cy-half/2, uint32(c))
		return
	}
	p.dl.AddTriangle(cx-half, cy-half/2, cx+half, cy-half/2, cx, cy+half/2, uint32(c))
}

// checkBox draws a one pixel frame and, when checked, a filled center.
func (p *DrawListPainter) checkBox(r Rect, on bool, c Color) {
	if r.Empty() {
		return
	}
	p.FillRect(Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, c)
	p.FillRect(Rect{X: r.X, Y: r.Bottom() - 1, W: r.W, H: 1}, c)
	p.FillRect(Rect{X: r.X, Y: r.Y, W: 1, H: r.H}, c)
	p.FillRect(Rect{X: r.Right() - 1, Y: r.Y, W: 1, H: r.H}, c)
	if on {
		p.FillRect(Rect{X: r.X + 3, Y: r.Y + 3, W: r.W - 6, H: r.H - 6}, c)
	}
}

// errorMark draws a small triangle in the leading top corner of a cell with
// error text.
func (p *DrawListPainter) errorMark(b Rect, rtl bool) {
	const size = 6
	p.dl.SetTexture(0)
	x, y := float32(b.X), float32(b.Y)
	c := uint32(p.theme.ErrorColor)
	if rtl {
		x = float32(b.Right())
		p.dl.AddTriangle(x, y, x-size, y, x, y+size, c)
		return
	}
	p.dl.AddTriangle(x, y, x+size, y, x, y+size, c)
}
