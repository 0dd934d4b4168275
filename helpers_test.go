package datagrid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/datagrid"
)

// mockHost records invalidations and runs timers only when told to.
type mockHost struct {
	invalidated int
	timers      []func()
}

func (h *mockHost) Invalidate(datagrid.Rect) { h.invalidated++ }

func (h *mockHost) ScheduleTimer(_ time.Duration, fn func()) func() {
	h.timers = append(h.timers, fn)
	i := len(h.timers) - 1
	return func() { h.timers[i] = nil }
}

// mockRenderer is a test renderer that doesn't render anything.
type mockRenderer struct {
	renderCalls int
	commands    int
}

func (m *mockRenderer) Render(dl *datagrid.DrawList) error {
	m.renderCalls++
	m.commands = len(dl.CmdBuffer)
	return nil
}

func (m *mockRenderer) FontAtlas() datagrid.FontAtlas {
	return datagrid.FontAtlas{TextureID: 1, GlyphW: 8, GlyphH: 16, Columns: 16, Rows: 6, First: ' '}
}

func (m *mockRenderer) Resize(width, height int) {}

// recordingPainter keeps every paint request.
type recordingPainter struct {
	fills int
	cells []datagrid.CellPaintRequest
}

func (p *recordingPainter) FillRect(datagrid.Rect, datagrid.Color) { p.fills++ }

func (p *recordingPainter) PaintCell(req datagrid.CellPaintRequest) {
	p.cells = append(p.cells, req)
}

func (p *recordingPainter) find(kind datagrid.PaintKind, col, row int) (datagrid.CellPaintRequest, bool) {
	for _, r := range p.cells {
		if r.Kind == kind && r.Col == col && r.Row == row {
			return r, true
		}
	}
	return datagrid.CellPaintRequest{}, false
}

// newGrid creates a grid with cols columns of width w and rows shared rows.
func newGrid(t *testing.T, bounds datagrid.Rect, cols, w, rows int, opts ...datagrid.GridOption) *datagrid.Grid {
	t.Helper()
	g := datagrid.NewGrid(append([]datagrid.GridOption{datagrid.WithBounds(bounds)}, opts...)...)
	for range cols {
		_, err := g.Columns().Add("", datagrid.WithWidth(w))
		require.NoError(t, err)
	}
	if rows > 0 {
		_, err := g.Rows().Add(rows)
		require.NoError(t, err)
	}
	return g
}

func cell(col, row int) datagrid.CellAddress {
	return datagrid.CellAddress{Col: col, Row: row}
}
