// Gridterm browses and edits one sheet of an .xlsx workbook in the terminal.
//
//	go run ./cmd/gridterm -sheet Vehicles garage.xlsx
//
// Arrow keys move, typing or F2 edits, Enter commits, Esc cancels, ctrl+s
// saves and ctrl+q quits. The first sheet row is used as column headers
// unless -header=false is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	xterm "golang.org/x/term"

	"github.com/go-theft-auto/datagrid"
	"github.com/go-theft-auto/datagrid/backend/term"
	"github.com/go-theft-auto/datagrid/source/xlsx"
)

func main() {
	sheetName := flag.String("sheet", "", "sheet to open (default: the active sheet)")
	header := flag.Bool("header", true, "use the first row as column headers")
	light := flag.Bool("light", false, "light theme")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	datagrid.SetVerbose(*verbose)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gridterm [flags] workbook.xlsx")
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *sheetName, *header, *light); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path, sheetName string, header, light bool) error {
	fd := int(os.Stdout.Fd())
	if !xterm.IsTerminal(fd) {
		return errors.New("gridterm: stdout is not a terminal")
	}
	w, h, err := xterm.GetSize(fd)
	if err != nil {
		return fmt.Errorf("gridterm: terminal size: %w", err)
	}

	sheet, err := xlsx.Open(path, sheetName, xlsx.WithHeaderRow(header))
	if err != nil {
		return err
	}
	defer sheet.Close()

	theme := datagrid.GTATheme()
	if light {
		theme = datagrid.LightTheme()
	}
	host := term.NewHost()
	opts := append(term.Options(theme),
		datagrid.WithHost(host),
		datagrid.WithBounds(datagrid.Rect{W: w * term.CellW, H: max(h-1, 0) * term.CellH}),
	)
	grid := datagrid.NewGrid(opts...)
	if err := term.Configure(grid); err != nil {
		return err
	}
	for c := range sheet.Columns() {
		if _, err := grid.Columns().Add(fmt.Sprintf("c%d", c), datagrid.WithHeaderText(sheet.Header(c))); err != nil {
			return err
		}
	}
	if err := grid.SetDataSource(sheet); err != nil {
		return err
	}

	m := term.NewModel(grid, host)
	m.Save = func() error { return sheet.Save("") }
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("gridterm: %w", err)
	}
	return nil
}
