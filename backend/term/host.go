package term

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/datagrid"
)

// timerMsg fires a timer scheduled through Host.
type timerMsg struct{ id int }

// Host implements datagrid.Host on top of the bubbletea event loop. Timers
// become tea.Tick commands, so their callbacks run inside Update like every
// other grid call.
type Host struct {
	dirty  bool
	next   int
	timers map[int]func()
	cmds   []tea.Cmd
}

// NewHost creates a host that starts dirty so the first view is painted.
func NewHost() *Host {
	return &Host{dirty: true, timers: make(map[int]func())}
}

// Invalidate implements datagrid.Host.
func (h *Host) Invalidate(datagrid.Rect) { h.dirty = true }

// ScheduleTimer implements datagrid.Host.
func (h *Host) ScheduleTimer(d time.Duration, fn func()) func() {
	h.next++
	id := h.next
	h.timers[id] = fn
	h.cmds = append(h.cmds, tea.Tick(d, func(time.Time) tea.Msg { return timerMsg{id: id} }))
	return func() { delete(h.timers, id) }
}

// Pending reports how many timers are waiting to fire.
func (h *Host) Pending() int { return len(h.timers) }

// fire runs a timer unless it was canceled.
func (h *Host) fire(id int) {
	fn, ok := h.timers[id]
	if !ok {
		return
	}
	delete(h.timers, id)
	fn()
}

// Cmd returns the ticks scheduled since the last call.
func (h *Host) Cmd() tea.Cmd {
	cmds := h.cmds
	h.cmds = nil
	return tea.Batch(cmds...)
}

// TakeDirty reports whether a repaint was requested and clears the request.
func (h *Host) TakeDirty() bool {
	d := h.dirty
	h.dirty = false
	return d
}
