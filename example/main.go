// Example shows a virtual grid of 100,000 generated rows in a GLFW window.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Click, drag and shift-click to select, type or press F2 to edit, and drag
// column header edges to resize. Pass -v for debug logging.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/datagrid"
	"github.com/go-theft-auto/datagrid/backend/opengl"
	"github.com/go-theft-auto/datagrid/source/memory"
)

const (
	windowWidth  = 1024
	windowHeight = 640
	windowTitle  = "datagrid example"
	rowCount     = 100_000
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	datagrid.SetVerbose(*verbose)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("grid renderer: %w", err)
	}
	defer renderer.Delete()

	host := opengl.NewHost()
	grid, err := newGrid(host)
	if err != nil {
		return err
	}
	opengl.NewGLFWInputAdapter(window, grid)

	resize := func(w, h int) {
		renderer.Resize(w, h)
		if err := grid.SetBounds(datagrid.Rect{W: w, H: h}); err != nil {
			fmt.Fprintln(os.Stderr, "resize:", err)
		}
	}
	w, h := window.GetSize()
	resize(w, h)
	window.SetSizeCallback(func(_ *glfw.Window, w, h int) { resize(w, h) })

	// Main loop.
	for !window.ShouldClose() {
		if wait := host.NextTimeout(time.Now()); wait >= 0 {
			glfw.WaitEventsTimeout(wait.Seconds())
		} else {
			glfw.WaitEvents()
		}
		host.RunTimers(time.Now())
		if !host.TakeDirty() {
			continue
		}

		fw, fh := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := grid.Render(renderer); err != nil {
			return fmt.Errorf("grid render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

// newGrid builds a virtual grid over generated rows.
func newGrid(host datagrid.Host) (*datagrid.Grid, error) {
	table := memory.NewTable(4, rowCount)
	table.Generate = func(col, row int) any {
		switch col {
		case 0:
			return row + 1
		case 1:
			return fmt.Sprintf("Vehicle %05d", row+1)
		case 2:
			return float64(row%997) * 125.5
		default:
			return row%3 == 0
		}
	}
	table.SetDefaults(nil, "New vehicle", 0.0, false)

	grid := datagrid.NewGrid(
		datagrid.WithHost(host),
		datagrid.WithTheme(datagrid.GTATheme()),
		datagrid.WithSelectionMode(datagrid.RowHeaderSelect),
	)
	cols := grid.Columns()
	if _, err := cols.Add("id", datagrid.WithHeaderText("ID"), datagrid.WithWidth(70),
		datagrid.WithValueKind(datagrid.KindInt), datagrid.Frozen(), datagrid.ReadOnly()); err != nil {
		return nil, err
	}
	if _, err := cols.Add("name", datagrid.WithHeaderText("Name"), datagrid.WithWidth(180)); err != nil {
		return nil, err
	}
	if _, err := cols.Add("price", datagrid.WithHeaderText("Price"), datagrid.WithValueKind(datagrid.KindFloat),
		datagrid.WithValidation("value >= 0"),
		datagrid.WithCellStyle(datagrid.CellStyle{Format: "%.2f", Alignment: datagrid.AlignRight})); err != nil {
		return nil, err
	}
	if _, err := cols.Add("active", datagrid.WithHeaderText("Active"), datagrid.WithValueKind(datagrid.KindBool),
		datagrid.WithAutoSize(datagrid.AutoSizeColumnFill)); err != nil {
		return nil, err
	}
	if err := grid.SetDataSource(table); err != nil {
		return nil, err
	}
	return grid, nil
}
