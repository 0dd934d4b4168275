package datagrid

// Vertex represents a single vertex in the draw list.
type Vertex struct {
	Pos      [2]float32 // Position (x, y)
	TexCoord [2]float32 // Texture coordinates (u, v)
	Color    uint32     // RGBA packed color
}

// DrawCmd represents a single draw command.
// Commands are batched by texture to minimize state changes.
type DrawCmd struct {
	ElemCount    uint32     // Number of indices to draw
	ClipRect     [4]float32 // Clip rectangle (x1, y1, x2, y2)
	TextureID    uint32     // Texture ID (0 = no texture)
	VertexOffset uint32     // Offset into vertex buffer
	IndexOffset  uint32     // Offset into index buffer
}

// FontAtlas describes a fixed-cell glyph texture: Columns x Rows cells of
// GlyphW x GlyphH pixels holding runes First, First+1, ... in row order.
type FontAtlas struct {
	TextureID      uint32
	GlyphW, GlyphH int
	Columns, Rows  int
	First          rune
}

// Contains reports whether the atlas has a glyph for r.
func (a FontAtlas) Contains(r rune) bool {
	return r >= a.First && int(r-a.First) < a.Columns*a.Rows
}

// uv returns the texture coordinates of r's cell.
func (a FontAtlas) uv(r rune) (u0, v0, u1, v1 float32) {
	idx := int(r - a.First)
	col, row := float32(idx%a.Columns), float32(idx/a.Columns)
	u0, v0 = col/float32(a.Columns), row/float32(a.Rows)
	u1, v1 = (col+1)/float32(a.Columns), (row+1)/float32(a.Rows)
	return u0, v0, u1, v1
}

// Renderer draws the DrawLists a grid produces.
type Renderer interface {
	Render(dl *DrawList) error
	FontAtlas() FontAtlas
	Resize(width, height int)
}

// Render paints the grid into a pooled DrawList and hands it to r.
func (g *Grid) Render(r Renderer) error {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)
	g.Paint(NewDrawListPainter(dl, g.theme, r.FontAtlas()))
	dl.Finalize()
	return r.Render(dl)
}
