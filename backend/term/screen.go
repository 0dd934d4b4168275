package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/datagrid"
)

type attr uint8

const (
	attrBold attr = 1 << iota
	attrUnderline
	attrReverse
)

// cell is one terminal character. A zero rune continues the wide rune on its
// left.
type cell struct {
	r      rune
	fg, bg datagrid.Color
	attr   attr
}

type look struct {
	fg, bg datagrid.Color
	attr   attr
}

// Screen is a datagrid.Painter that draws into a character buffer and renders
// it with lipgloss.
type Screen struct {
	// ErrorColor marks cells with error text; the cell foreground when zero.
	ErrorColor datagrid.Color

	w, h   int
	cells  []cell
	styles map[look]lipgloss.Style
}

// NewScreen creates a blank screen of w by h characters.
func NewScreen(w, h int) *Screen {
	s := &Screen{styles: make(map[look]lipgloss.Style)}
	s.Resize(w, h)
	return s
}

// Size returns the screen size in characters.
func (s *Screen) Size() (w, h int) { return s.w, s.h }

// Resize changes the size and blanks the screen.
func (s *Screen) Resize(w, h int) {
	s.w, s.h = max(w, 0), max(h, 0)
	s.cells = make([]cell, s.w*s.h)
	for i := range s.cells {
		s.cells[i].r = ' '
	}
}

func (s *Screen) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return nil
	}
	return &s.cells[y*s.w+x]
}

func (s *Screen) clip(sp span) span {
	return span{x0: max(sp.x0, 0), y0: max(sp.y0, 0), x1: min(sp.x1, s.w), y1: min(sp.y1, s.h)}
}

func (s *Screen) fill(sp span, bg datagrid.Color) {
	sp = s.clip(sp)
	for y := sp.y0; y < sp.y1; y++ {
		for x := sp.x0; x < sp.x1; x++ {
			*s.at(x, y) = cell{r: ' ', bg: bg}
		}
	}
}

// put writes text at (x, y), dropping what falls outside clip.
func (s *Screen) put(clip span, x, y int, text string, fg datagrid.Color, a attr) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		n := w
		if w == 2 && !(clip.contains(x, y) && clip.contains(x+1, y)) {
			r, n = ' ', 1
		}
		for i := range n {
			c := s.at(x+i, y)
			if c == nil || !clip.contains(x+i, y) {
				continue
			}
			c.fg, c.attr = fg, c.attr|a
			c.r = r
			if i > 0 {
				c.r = 0
			}
		}
		x += w
	}
}

// FillRect implements datagrid.Painter.
func (s *Screen) FillRect(r datagrid.Rect, c datagrid.Color) {
	s.fill(toSpan(r), c)
}

// PaintCell implements datagrid.Painter.
func (s *Screen) PaintCell(req datagrid.CellPaintRequest) {
	clip := s.clip(toSpan(req.Clip))
	if clip.empty() {
		return
	}
	st := req.Style
	s.fill(clip, st.BackColor)

	b := toSpan(req.Bounds)
	var a attr
	if req.Kind != datagrid.PaintCell {
		a |= attrBold
	}
	if req.Current && req.Kind == datagrid.PaintCell && !req.Editing {
		a |= attrUnderline
	}
	pad := st.Padding / CellW
	left, right := b.x0+pad, b.x1-pad
	mid := b.y0 + (b.y1-b.y0-1)/2

	if req.SortOrder != datagrid.SortNone {
		glyph := "▲"
		if req.SortOrder == datagrid.SortDescending {
			glyph = "▼"
		}
		if req.RightToLeft {
			s.put(clip, left, mid, glyph, st.ForeColor, a)
			left += 2
		} else {
			right -= 2
			s.put(clip, right+1, mid, glyph, st.ForeColor, a)
		}
	}
	if req.CellType == datagrid.CellComboBox && req.Kind == datagrid.PaintCell {
		if req.RightToLeft {
			s.put(clip, left, mid, "▾", st.ForeColor, a)
			left += 2
		} else {
			right -= 2
			s.put(clip, right+1, mid, "▾", st.ForeColor, a)
		}
	}
	if req.ErrorText != "" {
		x := b.x0
		if req.RightToLeft {
			x = b.x1 - 1
		}
		s.put(clip, x, b.y0, "!", s.errorColor(st), attrBold)
	}

	lines := []string{strings.ReplaceAll(req.Text, "\n", " ")}
	if st.Wrap == datagrid.WrapTrue {
		lines = strings.Split(req.Text, "\n")
	}
	align := st.Alignment
	if req.RightToLeft {
		switch align {
		case datagrid.AlignLeft, datagrid.AlignNotSet:
			align = datagrid.AlignRight
		case datagrid.AlignRight:
			align = datagrid.AlignLeft
		}
	}
	avail := right - left
	if avail <= 0 {
		return
	}
	top := b.y0 + max(b.y1-b.y0-len(lines), 0)/2
	for i, line := range lines {
		y := top + i
		if y >= b.y1 {
			break
		}
		caret := -1
		if i == 0 && req.Caret >= 0 {
			line, caret = scrollToCaret(line, req.Caret, avail)
		}
		if runewidth.StringWidth(line) > avail {
			line = runewidth.Truncate(line, avail, "…")
		}
		w := runewidth.StringWidth(line)
		x := left
		switch align {
		case datagrid.AlignCenter:
			x += (avail - w) / 2
		case datagrid.AlignRight:
			x = right - w
		}
		s.put(clip, x, y, line, st.ForeColor, a)
		if caret >= 0 {
			cx := min(x+caret, right-1)
			if c := s.at(cx, y); c != nil && clip.contains(cx, y) {
				c.attr |= attrReverse
				c.fg = st.ForeColor
			}
		}
	}
}

// scrollToCaret drops leading runes until the caret fits in avail columns.
// It returns the visible text and the caret column within it.
func scrollToCaret(text string, caret, avail int) (string, int) {
	rs := []rune(text)
	caret = min(caret, len(rs))
	start := 0
	for start < caret && runewidth.StringWidth(string(rs[start:caret])) >= avail {
		start++
	}
	return string(rs[start:]), runewidth.StringWidth(string(rs[start:caret]))
}

func (s *Screen) errorColor(st datagrid.CellStyle) datagrid.Color {
	if s.ErrorColor != 0 {
		return s.ErrorColor
	}
	return st.ForeColor
}

// Text returns the screen contents without styling, one line per row.
func (s *Screen) Text() string {
	var b strings.Builder
	for y := range s.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range s.w {
			if r := s.cells[y*s.w+x].r; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// String renders the screen with colors, grouping runs of equal style.
func (s *Screen) String() string {
	var b strings.Builder
	var run strings.Builder
	for y := range s.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := s.cells[y*s.w : (y+1)*s.w]
		for x := 0; x < len(row); {
			k := look{fg: row[x].fg, bg: row[x].bg, attr: row[x].attr}
			run.Reset()
			for ; x < len(row); x++ {
				c := row[x]
				if (look{fg: c.fg, bg: c.bg, attr: c.attr}) != k {
					break
				}
				if c.r != 0 {
					run.WriteRune(c.r)
				}
			}
			b.WriteString(s.style(k).Render(run.String()))
		}
	}
	return b.String()
}

func (s *Screen) style(k look) lipgloss.Style {
	if st, ok := s.styles[k]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Bold(k.attr&attrBold != 0).
		Underline(k.attr&attrUnderline != 0).
		Reverse(k.attr&attrReverse != 0)
	if c, ok := termColor(k.fg); ok {
		st = st.Foreground(c)
	}
	if c, ok := termColor(k.bg); ok {
		st = st.Background(c)
	}
	s.styles[k] = st
	return st
}

// termColor converts a grid color to a lipgloss hex color. Fully transparent
// colors are left unset.
func termColor(c datagrid.Color) (lipgloss.Color, bool) {
	r, g, b, a := c.Unpack()
	if a == 0 {
		return "", false
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)), true
}
