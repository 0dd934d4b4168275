package term

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/datagrid"
)

// Measurer sizes text in terminal cells, counting wide runes twice.
type Measurer struct{}

// MeasureText implements datagrid.Measurer.
func (Measurer) MeasureText(s string) datagrid.Size {
	lines := strings.Split(s, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return datagrid.Size{W: w * CellW, H: len(lines) * CellH}
}
