package opengl

import (
	"slices"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/datagrid"
)

// Host implements datagrid.Host for a GLFW window. Invalidation marks the
// window for a redraw and timers fire from the frame loop, on the thread
// that owns the grid.
type Host struct {
	dirty  bool
	timers []*timer
}

type timer struct {
	due      time.Time
	fn       func()
	canceled bool
}

// NewHost creates a host that starts dirty so the first frame is drawn.
func NewHost() *Host {
	return &Host{dirty: true}
}

// Invalidate implements datagrid.Host.
func (h *Host) Invalidate(datagrid.Rect) {
	if !h.dirty {
		h.dirty = true
		glfw.PostEmptyEvent()
	}
}

// ScheduleTimer implements datagrid.Host.
func (h *Host) ScheduleTimer(d time.Duration, fn func()) func() {
	t := &timer{due: time.Now().Add(d), fn: fn}
	h.timers = append(h.timers, t)
	return func() { t.canceled = true }
}

// TakeDirty reports whether a redraw was requested and clears the request.
func (h *Host) TakeDirty() bool {
	d := h.dirty
	h.dirty = false
	return d
}

// RunTimers fires the timers due at now.
func (h *Host) RunTimers(now time.Time) {
	var due []*timer
	h.timers = slices.DeleteFunc(h.timers, func(t *timer) bool {
		if t.canceled {
			return true
		}
		if !now.Before(t.due) {
			due = append(due, t)
			return true
		}
		return false
	})
	for _, t := range due {
		if !t.canceled {
			t.fn()
		}
	}
}

// NextTimeout returns how long the loop may block waiting for events, or a
// negative duration when no timer is pending.
func (h *Host) NextTimeout(now time.Time) time.Duration {
	wait := time.Duration(-1)
	for _, t := range h.timers {
		if t.canceled {
			continue
		}
		d := max(t.due.Sub(now), 0)
		if wait < 0 || d < wait {
			wait = d
		}
	}
	return wait
}
