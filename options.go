package datagrid

// Option configures a column when it is added.
type Option func(*options)

// options holds column configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for column options.
//
// Example:
//
//	var OptTooltip = datagrid.NewOptKey("tooltip", "")
//
//	grid.Columns().Add("price", datagrid.WithOpt(OptTooltip, "Unit price"))
//
//	tip := datagrid.GetOpt(col.Options(), OptTooltip)
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// =============================================================================
// Built-in Column Option Keys
// =============================================================================

var (
	OptHeaderText   = NewOptKey("headerText", "")
	OptWidth        = NewOptKey("width", DefaultColumnWidth)
	OptMinWidth     = NewOptKey("minWidth", MinimumColumnWidth)
	OptFillWeight   = NewOptKey("fillWeight", DefaultFillWeight)
	OptAutoSizeMode = NewOptKey("autoSizeMode", AutoSizeColumnNotSet)
	OptSortMode     = NewOptKey("sortMode", SortNotSortable)
	OptValueKind    = NewOptKey("valueKind", KindText)
	OptValidation   = NewOptKey("validation", "") // expr-lang boolean expression
	OptCellType     = NewOptKey("cellType", CellTextBox)
	OptItems        = NewOptKey[[]string]("items", nil)
	OptFrozen       = NewOptKey("frozen", false)
	OptReadOnly     = NewOptKey("readOnly", false)
	OptHidden       = NewOptKey("hidden", false)
	OptCellStyle    = NewOptKey("cellStyle", CellStyle{})
)

// WithHeaderText sets the header caption. Defaults to the column name.
func WithHeaderText(s string) Option { return WithOpt(OptHeaderText, s) }

// WithWidth sets the initial width in pixels.
func WithWidth(w int) Option { return WithOpt(OptWidth, w) }

// WithMinWidth sets the minimum width in pixels.
func WithMinWidth(w int) Option { return WithOpt(OptMinWidth, w) }

// WithFillWeight sets the share of leftover width taken in fill mode.
func WithFillWeight(w float64) Option { return WithOpt(OptFillWeight, w) }

// WithAutoSize sets the column auto-size mode.
func WithAutoSize(m AutoSizeColumnMode) Option { return WithOpt(OptAutoSizeMode, m) }

// WithSortMode sets how the column reacts to header clicks.
func WithSortMode(m SortMode) Option { return WithOpt(OptSortMode, m) }

// WithValueKind sets how edited text is parsed.
func WithValueKind(k ValueKind) Option { return WithOpt(OptValueKind, k) }

// WithValidation sets a boolean expr-lang rule checked on commit.
// The rule sees value, text, row and col.
//
//	datagrid.WithValidation("value >= 0 && value <= 100")
func WithValidation(rule string) Option { return WithOpt(OptValidation, rule) }

// CheckBox makes the column's cells checkboxes holding bool values.
func CheckBox() Option { return WithOpt(OptCellType, CellCheckBox) }

// WithComboBox makes the column's cells combo boxes. Committed text must be
// one of items.
func WithComboBox(items ...string) Option {
	return func(o *options) {
		WithOpt(OptCellType, CellComboBox)(o)
		WithOpt(OptItems, items)(o)
	}
}

// Frozen pins the column at the leading edge.
func Frozen() Option { return WithOpt(OptFrozen, true) }

// ReadOnly makes every cell of the column read-only.
func ReadOnly() Option { return WithOpt(OptReadOnly, true) }

// Hidden adds the column invisible.
func Hidden() Option { return WithOpt(OptHidden, true) }

// WithCellStyle sets the column's default cell style.
func WithCellStyle(s CellStyle) Option { return WithOpt(OptCellStyle, s) }
