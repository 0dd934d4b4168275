package datagrid

// Alignment controls horizontal placement of cell content.
type Alignment uint8

const (
	AlignNotSet Alignment = iota // Inherit from the next style layer
	AlignLeft
	AlignCenter
	AlignRight
)

// WrapMode controls whether cell text wraps.
type WrapMode uint8

const (
	WrapNotSet WrapMode = iota // Inherit from the next style layer
	WrapFalse
	WrapTrue
)

// CellStyle describes how a cell is painted. Zero fields are "not set" and fall
// through to the next layer when styles are resolved.
type CellStyle struct {
	BackColor          Color
	ForeColor          Color
	SelectionBackColor Color
	SelectionForeColor Color
	Alignment          Alignment
	Wrap               WrapMode
	Format             string // fmt verb applied to non-string values, e.g. "%.2f"
	NullValue          string // Shown for nil values
	Padding            int
}

// IsEmpty reports whether no field is set.
func (s CellStyle) IsEmpty() bool {
	return s == CellStyle{}
}

// MergeStyles resolves layered styles, most specific first. Each field takes the
// first non-zero value found.
func MergeStyles(layers ...CellStyle) CellStyle {
	var out CellStyle
	for _, l := range layers {
		if out.BackColor == 0 {
			out.BackColor = l.BackColor
		}
		if out.ForeColor == 0 {
			out.ForeColor = l.ForeColor
		}
		if out.SelectionBackColor == 0 {
			out.SelectionBackColor = l.SelectionBackColor
		}
		if out.SelectionForeColor == 0 {
			out.SelectionForeColor = l.SelectionForeColor
		}
		if out.Alignment == AlignNotSet {
			out.Alignment = l.Alignment
		}
		if out.Wrap == WrapNotSet {
			out.Wrap = l.Wrap
		}
		if out.Format == "" {
			out.Format = l.Format
		}
		if out.NullValue == "" {
			out.NullValue = l.NullValue
		}
		if out.Padding == 0 {
			out.Padding = l.Padding
		}
	}
	return out
}

// EffectiveStyle resolves the style of a cell: the cell override, then the
// column's default, then the row's default, then alternating-row defaults, then
// the grid default. Shared rows are consulted without being unshared.
func (g *Grid) EffectiveStyle(col, row int) CellStyle {
	layers := make([]CellStyle, 0, 5)
	var r *Row
	if row >= 0 && row < g.rows.Len() {
		r = g.rows.shared(row)
		if col >= 0 && col < len(r.cells) {
			layers = append(layers, r.cells[col].style)
		}
	}
	if col >= 0 && col < g.columns.Len() {
		layers = append(layers, g.columns.At(col).defaultStyle)
	}
	if r != nil {
		layers = append(layers, r.defaultStyle)
		if row%2 == 1 {
			layers = append(layers, g.alternatingRowsStyle)
		}
	}
	layers = append(layers, g.defaultCellStyle)
	return MergeStyles(layers...)
}

// Theme defines the grid-level colors and metrics used when painting.
type Theme struct {
	// Cells
	CellStyle            CellStyle
	AlternatingRowsStyle CellStyle

	// Headers
	HeaderBgColor       Color
	HeaderTextColor     Color
	HeaderSelectedColor Color

	// Grid chrome
	BackgroundColor  Color
	GridLineColor    Color
	CurrentCellColor Color // Focus rectangle around the current cell
	EditingBgColor   Color
	ErrorColor       Color

	// Scrollbar
	ScrollbarBgColor   Color
	ScrollbarGrabColor Color
	ScrollbarSize      int

	// Sizing
	CharWidth  int
	CharHeight int
	FontScale  float32
}

// DefaultTheme returns the default theme with sensible defaults.
func DefaultTheme() Theme {
	return Theme{
		CellStyle: CellStyle{
			BackColor:          RGBA(30, 30, 30, 255),
			ForeColor:          ColorWhite,
			SelectionBackColor: RGBA(50, 100, 150, 255),
			SelectionForeColor: ColorWhite,
			Alignment:          AlignLeft,
			Wrap:               WrapFalse,
			Padding:            4,
		},
		AlternatingRowsStyle: CellStyle{BackColor: RGBA(35, 35, 35, 255)},

		HeaderBgColor:       RGBA(40, 40, 40, 255),
		HeaderTextColor:     ColorWhite,
		HeaderSelectedColor: RGBA(60, 80, 100, 255),

		BackgroundColor:  RGBA(20, 20, 20, 255),
		GridLineColor:    RGBA(80, 80, 80, 255),
		CurrentCellColor: RGBA(0, 255, 255, 255),
		EditingBgColor:   RGBA(40, 40, 50, 255),
		ErrorColor:       RGBA(180, 60, 60, 255),

		ScrollbarBgColor:   RGBA(30, 30, 30, 255),
		ScrollbarGrabColor: RGBA(80, 80, 80, 255),
		ScrollbarSize:      12,

		CharWidth:  7,
		CharHeight: 13,
		FontScale:  1.0,
	}
}

// GTATheme returns a GTA San Andreas-inspired theme.
// Dark theme with cyan/yellow accents reminiscent of the game's menus.
func GTATheme() Theme {
	t := DefaultTheme()
	t.CellStyle.BackColor = RGBA(0, 0, 0, 220)
	t.CellStyle.SelectionBackColor = RGBA(0, 120, 180, 255)
	t.AlternatingRowsStyle = CellStyle{BackColor: RGBA(20, 30, 40, 255)}
	t.HeaderBgColor = RGBA(0, 80, 120, 255)
	t.HeaderTextColor = RGBA(255, 200, 0, 255) // GTA yellow
	t.HeaderSelectedColor = RGBA(0, 150, 200, 255)
	t.GridLineColor = RGBA(0, 100, 150, 255)
	t.CurrentCellColor = RGBA(0, 200, 255, 255)
	t.EditingBgColor = RGBA(30, 40, 50, 255)
	t.ScrollbarGrabColor = RGBA(0, 100, 150, 255)
	t.ScrollbarSize = 14
	return t
}

// LightTheme returns a light theme.
func LightTheme() Theme {
	t := DefaultTheme()
	t.CellStyle.BackColor = ColorWhite
	t.CellStyle.ForeColor = RGBA(20, 20, 20, 255)
	t.CellStyle.SelectionBackColor = RGBA(0, 120, 215, 255)
	t.AlternatingRowsStyle = CellStyle{BackColor: RGBA(250, 250, 250, 255)}
	t.HeaderBgColor = RGBA(230, 230, 230, 255)
	t.HeaderTextColor = RGBA(20, 20, 20, 255)
	t.HeaderSelectedColor = RGBA(200, 220, 240, 255)
	t.BackgroundColor = RGBA(245, 245, 245, 255)
	t.GridLineColor = RGBA(200, 200, 200, 255)
	t.CurrentCellColor = RGBA(0, 100, 200, 255)
	t.EditingBgColor = ColorWhite
	t.ScrollbarBgColor = RGBA(240, 240, 240, 255)
	t.ScrollbarGrabColor = RGBA(180, 180, 180, 255)
	return t
}
