package opengl

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-theft-auto/datagrid"
)

// buildAtlas rasterizes printable ASCII from the 7x13 fixed font into a
// 16x6 grid of glyph cells. The texture ID is left for the caller to fill.
func buildAtlas() (*image.Alpha, datagrid.FontAtlas) {
	face := basicfont.Face7x13
	atlas := datagrid.FontAtlas{
		GlyphW:  face.Advance,
		GlyphH:  face.Height,
		Columns: 16,
		Rows:    6,
		First:   ' ',
	}
	img := image.NewAlpha(image.Rect(0, 0, atlas.Columns*atlas.GlyphW, atlas.Rows*atlas.GlyphH))
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for i := range atlas.Columns * atlas.Rows {
		col, row := i%atlas.Columns, i/atlas.Columns
		d.Dot = fixed.P(col*atlas.GlyphW, row*atlas.GlyphH+face.Ascent)
		d.DrawString(string(atlas.First + rune(i)))
	}
	return img, atlas
}
