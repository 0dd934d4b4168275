/*
Package datagrid implements the layout-state engine of a retained-mode grid
widget: band collections, shared rows, cell addressing, viewport scrolling,
selection and in-place editing. Drawing, the native surface and input
delivery are collaborators supplied by a backend.

# Overview

A Grid owns its columns and rows and keeps every derived rectangle up to
date. Callers mutate it through methods; the grid recomputes layout,
clamps scroll offsets, moves the current cell off hidden bands and raises
events. Nothing is drawn until a backend asks: Paint walks the displayed
cells and hands CellPaintRequests to a Painter, and Render does the same
into a DrawList for a GPU Renderer.

Rows are shared by default. Adding a million rows stores one template
reference plus a state byte per row; a row only gets its own instance
(it is "unshared") when a caller asks for it with Rows().Get or writes a
local value into it. Reads, painting, scrolling and selection never
unshare. In virtual mode a DataSource owns the values and rows stay
shared for good.

# Quick Start

	grid := datagrid.NewGrid(
	    datagrid.WithHost(host),
	    datagrid.WithTheme(datagrid.GTATheme()),
	    datagrid.WithSelectionMode(datagrid.FullRowSelect),
	)
	grid.Columns().Add("name", datagrid.WithHeaderText("Vehicle"), datagrid.WithWidth(160))
	grid.Columns().Add("price",
	    datagrid.WithValueKind(datagrid.KindInt),
	    datagrid.WithValidation("value >= 0"),
	    datagrid.WithSortMode(datagrid.SortAutomatic))

	grid.Rows().AddValues("Infernus", 95000)
	grid.Rows().AddValues("Banshee", 45000)

	grid.SetBounds(datagrid.Rect{W: 800, H: 600})

	// Event loop
	for {
	    // Route input to grid.KeyDown, grid.TypeText, grid.MouseDown, ...
	    if host.TakeDirty() {
	        grid.Render(renderer)
	    }
	}

# Backends

	backend/opengl   GLFW input adapter and an OpenGL 4.1 DrawList renderer
	backend/term     bubbletea model that paints the grid into terminal cells
	source/memory    in-memory DataSource for virtual mode
	source/xlsx      DataSource over an Excel worksheet

# Coordinates

All geometry is in integer client pixels. Layout rectangles are computed
left to right; with RightToLeft set, CellBounds, HitTest and painting
mirror them around the client area. Offsets are measured over scrolling
bands only: frozen columns and rows never move.

# Errors

Operations return errors matched with errors.Is:

	ErrInvalidArgument   bad index, size below a minimum, unknown enum value
	ErrIndexOutOfRange   index outside a collection (wraps ErrInvalidArgument)
	ErrInvalidOperation  conflicts with the configuration, e.g. a hidden cell
	ErrNoRoom            the data area cannot show the band
	ErrReadOnly          BeginEdit on a read-only cell
	ErrNotEditing        edit operation without an edit
	ErrCommitFailed      a pending edit could not be committed

A failed commit leaves the edit active and the grid unchanged. The
wrapped *DataError tells which cell failed and what the grid was doing.

# Keyboard Shortcuts Reference

## Grid

Navigation:

	Arrows           Move the current cell, skipping hidden bands
	Ctrl+Arrows      Jump to the first or last column or row
	Home / End       First or last column of the row
	Ctrl+Home/End    First or last cell of the grid
	PgUp / PgDn      Move one screen of rows
	Tab / Shift+Tab  Next or previous cell, wrapping across rows
	Shift+Arrows     Extend the selection from the anchor

Selection and values:

	Ctrl+A           Select all (multi-select only)
	Delete           Clear the values of selected editable cells
	Space            Toggle the current checkbox cell

Editing:

	F2               Edit the current cell
	Typing           Start an edit that replaces the cell text
	Enter            Commit and move down
	Tab              Commit and move to the next cell
	Up / Down        Commit and move
	Escape           Restore the original text; a second Escape leaves the editor
	Alt+Up/Down      Previous or next item of a combo box cell

## Editor

	Left / Right     Move the caret (Ctrl: by word, Shift: extend selection)
	Home / End       Start or end of text
	Backspace/Delete Delete a character or the selection
	Ctrl+A           Select all text
	Ctrl+Z           Undo
	Ctrl+Y           Redo (also Ctrl+Shift+Z)

## Mouse

	Click            Make a cell current; on a checkbox glyph, toggle it
	Shift+Click      Extend the selection
	Ctrl+Click       Toggle a cell in the selection
	Drag             Select a range, scrolling at the edges
	Header click     Sort automatic columns, or select the band
	Edge drag        Resize a column or row
	Edge dbl-click   Fit a column to its content
	Wheel            Scroll three rows (Shift: one column)
*/
package datagrid
