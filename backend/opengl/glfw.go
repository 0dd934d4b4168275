package opengl

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/datagrid"
)

// DoubleClickTime is the longest gap between two presses of a double click.
const DoubleClickTime = 400 * time.Millisecond

// GLFWInputAdapter feeds GLFW window events into a grid.
type GLFWInputAdapter struct {
	window *glfw.Window
	grid   *datagrid.Grid
	mods   datagrid.Modifiers
	x, y   int

	lastPress    time.Time
	lastPressPos datagrid.Point

	cursors map[string]*glfw.Cursor
	cursor  string
}

// NewGLFWInputAdapter installs callbacks on window that drive grid.
func NewGLFWInputAdapter(window *glfw.Window, grid *datagrid.Grid) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		grid:   grid,
		cursors: map[string]*glfw.Cursor{
			"col-resize": glfw.CreateStandardCursor(glfw.HResizeCursor),
			"row-resize": glfw.CreateStandardCursor(glfw.VResizeCursor),
		},
		cursor: "default",
	}

	// Setup callbacks
	window.SetKeyCallback(adapter.keyCallback)
	window.SetCharCallback(adapter.charCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	a.mods = glfwModsToGrid(mods)
	if action == glfw.Release {
		return
	}
	k := glfwKeyToGridKey(key)
	if k == datagrid.KeyNone {
		return
	}
	a.grid.KeyDown(datagrid.KeyEvent{Key: k, Mods: a.mods})
}

func (a *GLFWInputAdapter) charCallback(w *glfw.Window, char rune) {
	a.grid.TypeText(string(char))
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	gridButton := glfwMouseButtonToGrid(button)
	if gridButton < 0 {
		return
	}
	a.mods = glfwModsToGrid(mods)
	ev := datagrid.MouseEvent{X: a.x, Y: a.y, Button: gridButton, Mods: a.mods}

	switch action {
	case glfw.Press:
		now := time.Now()
		p := datagrid.Point{X: a.x, Y: a.y}
		double := gridButton == datagrid.MouseButtonLeft && now.Sub(a.lastPress) < DoubleClickTime &&
			abs(p.X-a.lastPressPos.X) <= 4 && abs(p.Y-a.lastPressPos.Y) <= 4
		if double {
			a.lastPress = time.Time{}
			a.grid.MouseDoubleClick(ev)
			return
		}
		a.lastPress, a.lastPressPos = now, p
		a.grid.MouseDown(ev)
	case glfw.Release:
		a.grid.MouseUp(ev)
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	switch {
	case yoff != 0:
		a.grid.MouseWheel(int(yoff), a.mods)
	case xoff != 0:
		a.grid.MouseWheel(int(-xoff), a.mods|datagrid.ModShift)
	}
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.x, a.y = int(xpos), int(ypos)
	a.grid.MouseMove(datagrid.MouseEvent{X: a.x, Y: a.y, Mods: a.mods})

	shape := a.grid.Cursor(a.x, a.y)
	if shape == a.cursor {
		return
	}
	a.cursor = shape
	a.window.SetCursor(a.cursors[shape]) // nil restores the default arrow
}

// glfwModsToGrid maps GLFW modifier bits to grid modifiers.
func glfwModsToGrid(mods glfw.ModifierKey) datagrid.Modifiers {
	var m datagrid.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= datagrid.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= datagrid.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= datagrid.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= datagrid.ModSuper
	}
	return m
}

// glfwKeyToGridKey maps GLFW keys to grid keys. Space arrives through the
// char callback and is not mapped here.
func glfwKeyToGridKey(key glfw.Key) datagrid.Key {
	switch key {
	case glfw.KeyTab:
		return datagrid.KeyTab
	case glfw.KeyLeft:
		return datagrid.KeyLeft
	case glfw.KeyRight:
		return datagrid.KeyRight
	case glfw.KeyUp:
		return datagrid.KeyUp
	case glfw.KeyDown:
		return datagrid.KeyDown
	case glfw.KeyPageUp:
		return datagrid.KeyPageUp
	case glfw.KeyPageDown:
		return datagrid.KeyPageDown
	case glfw.KeyHome:
		return datagrid.KeyHome
	case glfw.KeyEnd:
		return datagrid.KeyEnd
	case glfw.KeyDelete:
		return datagrid.KeyDelete
	case glfw.KeyBackspace:
		return datagrid.KeyBackspace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return datagrid.KeyEnter
	case glfw.KeyEscape:
		return datagrid.KeyEscape
	case glfw.KeyA:
		return datagrid.KeyA
	case glfw.KeyY:
		return datagrid.KeyY
	case glfw.KeyZ:
		return datagrid.KeyZ
	case glfw.KeyF2:
		return datagrid.KeyF2
	default:
		return datagrid.KeyNone
	}
}

// glfwMouseButtonToGrid maps GLFW mouse buttons to grid mouse buttons.
func glfwMouseButtonToGrid(button glfw.MouseButton) datagrid.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return datagrid.MouseButtonLeft
	case glfw.MouseButtonRight:
		return datagrid.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return datagrid.MouseButtonMiddle
	default:
		return -1
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
