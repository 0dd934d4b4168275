// Package term hosts a datagrid.Grid in a terminal with bubbletea.
//
// The grid keeps working in pixels. One terminal cell covers CellW by CellH
// grid pixels, so every band the grid lays out lands on whole characters:
//
//	grid := datagrid.NewGrid(term.Options(datagrid.DefaultTheme())...)
//	if err := term.Configure(grid); err != nil { ... }
//	p := tea.NewProgram(term.NewModel(grid, host), tea.WithAltScreen(), tea.WithMouseCellMotion())
package term

import (
	"github.com/go-theft-auto/datagrid"
)

// Pixel size of one terminal cell.
const (
	CellW = 4
	CellH = 8
)

// Band sizes in terminal cells.
const (
	RowHeadersChars = 6
	ScrollBarChars  = 2
)

// Theme adapts a theme to character cells: one character of padding, a scroll
// bar one line tall and ScrollBarChars wide, and a glyph the size of a cell.
func Theme(base datagrid.Theme) datagrid.Theme {
	t := base
	t.CellStyle.Padding = CellW
	t.ScrollbarSize = ScrollBarChars * CellW
	t.CharWidth, t.CharHeight = CellW, CellH
	t.FontScale = 1
	return t
}

// Options returns the grid options a terminal grid needs.
func Options(base datagrid.Theme) []datagrid.GridOption {
	return []datagrid.GridOption{
		datagrid.WithTheme(Theme(base)),
		datagrid.WithMeasurer(Measurer{}),
	}
}

// Configure sizes headers and the row template to one line each. Call it
// before rows are added so they inherit the template height.
func Configure(g *datagrid.Grid) error {
	if err := g.SetColumnHeadersHeight(CellH); err != nil {
		return err
	}
	if err := g.SetRowHeadersWidth(RowHeadersChars * CellW); err != nil {
		return err
	}
	return g.RowTemplate().SetHeight(CellH)
}

// toPixel returns the grid point at the center of terminal cell (x, y).
// Centering keeps the one-line rows out of the row resize zone.
func toPixel(x, y int) (int, int) {
	return x*CellW + CellW/2, y*CellH + CellH/2
}

// span is a half-open range of terminal cells.
type span struct {
	x0, y0, x1, y1 int
}

func (s span) empty() bool { return s.x0 >= s.x1 || s.y0 >= s.y1 }

func (s span) contains(x, y int) bool {
	return x >= s.x0 && x < s.x1 && y >= s.y0 && y < s.y1
}

// toSpan rounds a grid rectangle to the cells it mostly covers. Hairlines
// thinner than half a cell vanish.
func toSpan(r datagrid.Rect) span {
	return span{
		x0: roundDiv(r.X, CellW),
		y0: roundDiv(r.Y, CellH),
		x1: roundDiv(r.Right(), CellW),
		y1: roundDiv(r.Bottom(), CellH),
	}
}

func roundDiv(v, d int) int {
	if v < 0 {
		return -((-v + d/2) / d)
	}
	return (v + d/2) / d
}
