// Command gen renders the grid in a few configurations, captures framebuffer
// pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/datagrid"
	"github.com/go-theft-auto/datagrid/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single grid screenshot to capture.
type screenshot struct {
	name   string                       // filename without extension
	width  int                          // viewport width
	height int                          // viewport height
	setup  func(g *datagrid.Grid) error // state applied after the sample data
	opts   []datagrid.GridOption        // grid construction options
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("grid renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only update the renderer projection. GLFW resizes asynchronously, so the
	// hidden window stays at 800x600, larger than every screenshot.
	renderer.Resize(s.width, s.height)

	// Fresh grid per screenshot to avoid state leaking between captures.
	g, err := sampleGrid(s.width, s.height, s.opts...)
	if err != nil {
		return err
	}
	if s.setup != nil {
		if err := s.setup(g); err != nil {
			return err
		}
	}

	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if err := g.Render(renderer); err != nil {
		return err
	}

	// Read pixels
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

var vehicles = [][]any{
	{"Infernus", "Super", 95000, true},
	{"Banshee", "Sports", 45000, true},
	{"Sabre Turbo", "Muscle", 19000, false},
	{"Cheetah", "Super", 105000, true},
	{"Stallion", "Muscle", 18000, false},
	{"Comet", "Sports", 62000, true},
	{"PCJ-600", "Motorcycle", 9000, true},
	{"Stretch", "Sedan", 30000, false},
}

// sampleGrid builds a local-mode grid over the vehicle list.
func sampleGrid(w, h int, opts ...datagrid.GridOption) (*datagrid.Grid, error) {
	g := datagrid.NewGrid(append([]datagrid.GridOption{datagrid.WithBounds(datagrid.Rect{W: w, H: h})}, opts...)...)
	cols := g.Columns()
	if _, err := cols.Add("name", datagrid.WithHeaderText("Vehicle"), datagrid.WithWidth(140),
		datagrid.WithSortMode(datagrid.SortAutomatic)); err != nil {
		return nil, err
	}
	if _, err := cols.Add("class", datagrid.WithHeaderText("Class"), datagrid.WithWidth(110)); err != nil {
		return nil, err
	}
	if _, err := cols.Add("price", datagrid.WithHeaderText("Price"), datagrid.WithValueKind(datagrid.KindInt),
		datagrid.WithSortMode(datagrid.SortAutomatic),
		datagrid.WithCellStyle(datagrid.CellStyle{Format: "$%d", Alignment: datagrid.AlignRight})); err != nil {
		return nil, err
	}
	if _, err := cols.Add("owned", datagrid.WithHeaderText("Owned"), datagrid.WithValueKind(datagrid.KindBool),
		datagrid.WithAutoSize(datagrid.AutoSizeColumnFill)); err != nil {
		return nil, err
	}
	for _, v := range vehicles {
		if _, err := g.Rows().AddValues(v...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// buildScreenshots returns the list of all grid screenshots to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "grid", width: 520, height: 240},
		{name: "grid_gta", width: 520, height: 240, opts: []datagrid.GridOption{datagrid.WithTheme(datagrid.GTATheme())}},
		{
			name: "full_row_select", width: 520, height: 240,
			opts: []datagrid.GridOption{datagrid.WithSelectionMode(datagrid.FullRowSelect)},
			setup: func(g *datagrid.Grid) error {
				if err := g.SetCurrentCell(0, 1); err != nil {
					return err
				}
				return g.ExtendSelection(0, 3)
			},
		},
		{
			name: "sorted", width: 520, height: 240,
			setup: func(g *datagrid.Grid) error { return g.Sort(2, datagrid.SortDescending) },
		},
		{
			name: "editing", width: 520, height: 240,
			setup: func(g *datagrid.Grid) error {
				if err := g.SetCurrentCell(1, 2); err != nil {
					return err
				}
				g.TypeText("Muscle car")
				return nil
			},
		},
		{
			name: "scrolled", width: 300, height: 140,
			setup: func(g *datagrid.Grid) error {
				if err := g.Rows().SetFrozen(0, true); err != nil {
					return err
				}
				return g.ScrollIntoView(3, 7)
			},
		},
		{name: "right_to_left", width: 520, height: 240, opts: []datagrid.GridOption{datagrid.WithRightToLeft(true)}},
	}
}
