package datagrid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Column sizing defaults, in pixels at 96 DPI.
const (
	DefaultColumnWidth         = 100
	MinimumColumnWidth         = 5
	DefaultFillWeight  float64 = 100
	ColumnSizingHotZone        = 6
)

// ValueKind tells how edited text is parsed into a cell value.
type ValueKind uint8

const (
	KindText ValueKind = iota
	KindInt
	KindFloat
	KindBool
)

// Parse converts editor text into a value of this kind. Empty text parses to nil.
func (k ValueKind) Parse(text string) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" && k != KindText {
		return nil, nil
	}
	switch k {
	case KindInt:
		return strconv.ParseInt(text, 10, 64)
	case KindFloat:
		return strconv.ParseFloat(text, 64)
	case KindBool:
		return strconv.ParseBool(text)
	}
	return text, nil
}

// CellType selects how the cells of a column display and take input.
type CellType uint8

const (
	CellTextBox  CellType = iota
	CellCheckBox          // Bool value toggled by click or Space, no editor
	CellComboBox          // Text editor restricted to the column items
)

func (t CellType) String() string {
	switch t {
	case CellCheckBox:
		return "CheckBox"
	case CellComboBox:
		return "ComboBox"
	}
	return "TextBox"
}

// Valid reports whether t is a known cell type.
func (t CellType) Valid() bool { return t <= CellComboBox }

// CheckBoxSize is the side of the checkbox glyph in pixels.
const CheckBoxSize = 13

// checkBoxBounds centers the checkbox glyph in cell bounds b.
func checkBoxBounds(b Rect) Rect {
	size := min(CheckBoxSize, b.W, b.H)
	return Rect{X: b.X + (b.W-size)/2, Y: b.Y + (b.H-size)/2, W: size, H: size}
}

// checked reads a checkbox value. Anything but true is unchecked.
func checked(v any) bool {
	b, _ := v.(bool)
	return b
}

// Column is a vertical band. Its identity index is stable until columns are
// inserted or removed; its display index is the visual position.
type Column struct {
	grid         *Grid
	index        int
	displayIndex int

	name       string
	headerText string

	width      int
	minWidth   int
	fillWeight float64

	autoSizeMode AutoSizeColumnMode
	sortMode     SortMode
	state        ElementState
	defaultStyle CellStyle

	kind     ValueKind
	cellType CellType
	items    []string
	rule     string
	program  *vm.Program

	opts options
}

// newColumn builds a detached column from options.
func newColumn(name string, opts []Option) (*Column, error) {
	o := applyOptions(opts)
	c := &Column{
		index:        -1,
		displayIndex: -1,
		name:         name,
		headerText:   GetOpt(o, OptHeaderText),
		width:        GetOpt(o, OptWidth),
		minWidth:     GetOpt(o, OptMinWidth),
		fillWeight:   GetOpt(o, OptFillWeight),
		autoSizeMode: GetOpt(o, OptAutoSizeMode),
		sortMode:     GetOpt(o, OptSortMode),
		defaultStyle: GetOpt(o, OptCellStyle),
		kind:         GetOpt(o, OptValueKind),
		cellType:     GetOpt(o, OptCellType),
		items:        slices.Clone(GetOpt(o, OptItems)),
		state:        StateVisible,
		opts:         o,
	}
	if !HasOpt(o, OptHeaderText) {
		c.headerText = name
	}
	if GetOpt(o, OptHidden) {
		c.state &^= StateVisible
	}
	if GetOpt(o, OptFrozen) {
		c.state |= StateFrozen
	}
	if GetOpt(o, OptReadOnly) {
		c.state |= StateReadOnly
	}
	if c.minWidth < MinimumColumnWidth {
		return nil, fmt.Errorf("%w: minimum width %d below %d", ErrInvalidArgument, c.minWidth, MinimumColumnWidth)
	}
	if c.width < c.minWidth {
		return nil, fmt.Errorf("%w: width %d below minimum %d", ErrInvalidArgument, c.width, c.minWidth)
	}
	if c.fillWeight <= 0 {
		return nil, fmt.Errorf("%w: fill weight must be positive", ErrInvalidArgument)
	}
	if !c.autoSizeMode.Valid() || !c.sortMode.Valid() {
		return nil, fmt.Errorf("%w: unknown auto-size or sort mode", ErrInvalidArgument)
	}
	switch c.cellType {
	case CellCheckBox:
		c.kind = KindBool
	case CellComboBox:
		if len(c.items) == 0 {
			return nil, fmt.Errorf("%w: combo box column %q has no items", ErrInvalidArgument, name)
		}
	default:
		if !c.cellType.Valid() {
			return nil, fmt.Errorf("%w: cell type %d", ErrInvalidArgument, c.cellType)
		}
	}
	if rule := GetOpt(o, OptValidation); rule != "" {
		if err := c.compileRule(rule); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// validationEnv lists the variables visible to validation rules.
type validationEnv struct {
	Value any    `expr:"value"`
	Text  string `expr:"text"`
	Col   int    `expr:"col"`
	Row   int    `expr:"row"`
}

func (c *Column) compileRule(rule string) error {
	program, err := expr.Compile(rule, expr.Env(validationEnv{}))
	if err != nil {
		return fmt.Errorf("%w: validation rule %q: %w", ErrInvalidArgument, rule, err)
	}
	c.rule, c.program = rule, program
	return nil
}

// validate runs the column rule against a parsed value. A nil result counts
// as a rejection.
func (c *Column) validate(value any, text string, row int) error {
	if c.program == nil {
		return nil
	}
	out, err := expr.Run(c.program, validationEnv{Value: value, Text: text, Col: c.index, Row: row})
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrValidation, c.rule, err)
	}
	ok, isBool := out.(bool)
	if !isBool && out != nil {
		return fmt.Errorf("%w: %q evaluated to %T, expected bool", ErrValidation, c.rule, out)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrValidation, c.rule)
	}
	return nil
}

// checkItem rejects a combo box value that is not one of the items. Empty
// text clears the cell and is always accepted.
func (c *Column) checkItem(value any, text string) error {
	if c.cellType != CellComboBox || value == nil {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" || slices.Contains(c.items, text) {
		return nil
	}
	return fmt.Errorf("%w: %q is not an item of column %q", ErrValidation, text, c.name)
}

// Index returns the identity index.
func (c *Column) Index() int { return c.index }

// DisplayIndex returns the visual position.
func (c *Column) DisplayIndex() int { return c.displayIndex }

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// HeaderText returns the header caption.
func (c *Column) HeaderText() string { return c.headerText }

// SetHeaderText changes the header caption.
func (c *Column) SetHeaderText(s string) {
	if c.headerText == s {
		return
	}
	c.headerText = s
	if c.grid != nil {
		c.grid.onColumnHeaderChanged(c)
	}
}

// Options returns the options the column was added with.
func (c *Column) Options() options { return c.opts }

// Width returns the width in pixels.
func (c *Column) Width() int { return c.width }

// SetWidth changes the width. For fill columns the fill weight is scaled so the
// next layout lands on roughly the requested width.
func (c *Column) SetWidth(w int) error {
	if w < c.minWidth {
		return fmt.Errorf("%w: width %d below minimum %d", ErrInvalidArgument, w, c.minWidth)
	}
	if w == c.width {
		return nil
	}
	if c.grid != nil && c.InheritedAutoSizeMode() == AutoSizeColumnFill && c.width > 0 {
		c.fillWeight = c.fillWeight * float64(w) / float64(c.width)
		c.grid.columns.usedFillWeightsDirty = true
	}
	c.setWidth(w)
	return nil
}

// setWidth stores w and notifies the grid without validation.
func (c *Column) setWidth(w int) {
	if c.width == w {
		return
	}
	c.width = w
	if c.grid != nil {
		c.grid.onColumnWidthChanged(c)
	}
}

// MinimumWidth returns the lower width bound.
func (c *Column) MinimumWidth() int { return c.minWidth }

// SetMinimumWidth changes the lower bound, growing the column if needed.
func (c *Column) SetMinimumWidth(w int) error {
	if w < MinimumColumnWidth {
		return fmt.Errorf("%w: minimum width %d below %d", ErrInvalidArgument, w, MinimumColumnWidth)
	}
	c.minWidth = w
	if c.width < w {
		c.setWidth(w)
	}
	return nil
}

// FillWeight returns the share of leftover width taken in fill mode.
func (c *Column) FillWeight() float64 { return c.fillWeight }

// SetFillWeight changes the fill weight.
func (c *Column) SetFillWeight(w float64) error {
	if w <= 0 {
		return fmt.Errorf("%w: fill weight must be positive", ErrInvalidArgument)
	}
	if c.fillWeight == w {
		return nil
	}
	c.fillWeight = w
	if c.grid != nil {
		c.grid.columns.usedFillWeightsDirty = true
		c.grid.requestLayout(layoutOptions{invalidateFillColumns: true})
	}
	return nil
}

// AutoSizeMode returns the column's own auto-size mode.
func (c *Column) AutoSizeMode() AutoSizeColumnMode { return c.autoSizeMode }

// InheritedAutoSizeMode resolves NotSet against the grid-wide mode.
func (c *Column) InheritedAutoSizeMode() AutoSizeColumnMode {
	switch {
	case c.autoSizeMode != AutoSizeColumnNotSet:
		return c.autoSizeMode
	case c.grid != nil:
		return c.grid.autoSizeColumnsMode
	}
	return AutoSizeColumnNone
}

// SetAutoSizeMode changes the auto-size mode. A header-based mode needs the
// column headers to be visible; a frozen column cannot fill.
func (c *Column) SetAutoSizeMode(m AutoSizeColumnMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: auto-size mode %d", ErrInvalidArgument, m)
	}
	if c.grid != nil {
		eff := m
		if eff == AutoSizeColumnNotSet {
			eff = c.grid.autoSizeColumnsMode
		}
		if eff == AutoSizeColumnColumnHeader && !c.grid.headers.columnHeadersVisible && c.Visible() {
			return fmt.Errorf("%w: column headers are hidden", ErrInvalidOperation)
		}
		if eff == AutoSizeColumnFill && c.Frozen() && c.Visible() {
			return fmt.Errorf("%w: frozen column cannot fill", ErrInvalidOperation)
		}
	}
	c.autoSizeMode = m
	if c.grid != nil {
		c.grid.columns.usedFillWeightsDirty = true
		c.grid.requestLayout(layoutOptions{invalidateFillColumns: true, autoSize: true})
	}
	return nil
}

// SortMode returns the column sort mode.
func (c *Column) SortMode() SortMode { return c.sortMode }

// SetSortMode changes the sort mode. Automatic sorting conflicts with column
// selection modes.
func (c *Column) SetSortMode(m SortMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: sort mode %d", ErrInvalidArgument, m)
	}
	if c.grid != nil && m == SortAutomatic && c.grid.selectionMode.columnBands() {
		return fmt.Errorf("%w: automatic sort with %s", ErrInvalidOperation, c.grid.selectionMode)
	}
	c.sortMode = m
	return nil
}

// State returns the state bits.
func (c *Column) State() ElementState { return c.state }

// Visible reports whether the column takes part in layout.
func (c *Column) Visible() bool { return c.state.Has(StateVisible) }

// Frozen reports whether the column is pinned at the leading edge.
func (c *Column) Frozen() bool { return c.state.Has(StateFrozen) }

// ReadOnly reports whether the column's cells are read-only.
func (c *Column) ReadOnly() bool { return c.state.Has(StateReadOnly) }

// Selected reports whether the column is selected as a band.
func (c *Column) Selected() bool { return c.state.Has(StateSelected) }

// Displayed reports whether the column intersected the data area after the last layout.
func (c *Column) Displayed() bool { return c.state.Has(StateDisplayed) }

// SetVisible shows or hides the column. Hiding the column of the current
// cell first moves the current cell, which commits any pending edit.
func (c *Column) SetVisible(v bool) error {
	if c.Visible() == v {
		return nil
	}
	if c.grid == nil {
		c.state = c.state.with(StateVisible, v)
		return nil
	}
	return c.grid.setColumnVisible(c, v)
}

// SetFrozen pins or unpins the column. Visible frozen columns must stay
// contiguous from the start of display order.
func (c *Column) SetFrozen(f bool) error {
	if c.Frozen() == f {
		return nil
	}
	if c.grid == nil {
		c.state = c.state.with(StateFrozen, f)
		return nil
	}
	return c.grid.setColumnFrozen(c, f)
}

// SetReadOnly changes the column read-only flag, committing an edit in the column first.
func (c *Column) SetReadOnly(r bool) error {
	if c.ReadOnly() == r {
		return nil
	}
	if c.grid != nil && r && c.grid.edit.state != NotEditing && c.grid.current.Col == c.index {
		if err := c.grid.commitEdit(ContextCommit, false); err != nil {
			return err
		}
	}
	c.state = c.state.with(StateReadOnly, r)
	return nil
}

// SetSelected selects or deselects the whole column.
func (c *Column) SetSelected(s bool) error {
	if c.grid == nil {
		return fmt.Errorf("%w: column is not in a grid", ErrInvalidOperation)
	}
	return c.grid.SelectColumn(c.index, s)
}

// SetDisplayIndex moves the column to display position d.
func (c *Column) SetDisplayIndex(d int) error {
	if c.grid == nil {
		return fmt.Errorf("%w: column is not in a grid", ErrInvalidOperation)
	}
	return c.grid.columns.move(c, d)
}

// DefaultCellStyle returns the column's default cell style.
func (c *Column) DefaultCellStyle() CellStyle { return c.defaultStyle }

// SetDefaultCellStyle changes the column's default cell style.
func (c *Column) SetDefaultCellStyle(s CellStyle) {
	c.defaultStyle = s
	if c.grid != nil {
		c.grid.invalidateColumn(c.index)
	}
}

// ValueKind returns how edited text is parsed.
func (c *Column) ValueKind() ValueKind { return c.kind }

// SetValueKind changes how edited text is parsed.
func (c *Column) SetValueKind(k ValueKind) { c.kind = k }

// CellType returns how the column's cells display and take input.
func (c *Column) CellType() CellType { return c.cellType }

// Items returns the combo box items.
func (c *Column) Items() []string { return slices.Clone(c.items) }

// SetItems replaces the combo box items. A combo box column needs at least one.
func (c *Column) SetItems(items ...string) error {
	if c.cellType == CellComboBox && len(items) == 0 {
		return fmt.Errorf("%w: combo box column %q has no items", ErrInvalidArgument, c.name)
	}
	c.items = slices.Clone(items)
	if c.grid != nil {
		c.grid.invalidateColumn(c.index)
	}
	return nil
}

// ValidationRule returns the expr-lang rule, or "".
func (c *Column) ValidationRule() string { return c.rule }

// SetValidationRule compiles and installs a rule. An empty rule removes it.
func (c *Column) SetValidationRule(rule string) error {
	if rule == "" {
		c.rule, c.program = "", nil
		return nil
	}
	return c.compileRule(rule)
}
