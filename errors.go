package datagrid

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. Callers match with errors.Is.
var (
	// ErrInvalidArgument is returned for bad indices, sizes below a minimum or unknown enum values.
	ErrInvalidArgument = errors.New("datagrid: invalid argument")
	// ErrIndexOutOfRange wraps ErrInvalidArgument.
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidArgument)

	// ErrInvalidOperation is returned when an operation conflicts with the current configuration.
	ErrInvalidOperation = errors.New("datagrid: invalid operation")
	// ErrNoRoom is returned when the data area has no room to show the addressed band.
	ErrNoRoom = fmt.Errorf("%w: no room to display", ErrInvalidOperation)
	// ErrReadOnly is returned by BeginEdit on a read-only cell.
	ErrReadOnly = fmt.Errorf("%w: cell is read-only", ErrInvalidOperation)
	// ErrNotEditing is returned by edit operations when no edit is in progress.
	ErrNotEditing = fmt.Errorf("%w: no edit in progress", ErrInvalidOperation)

	// ErrCommitFailed is returned when a pending edit could not be committed.
	// It is a recoverable outcome: the edit stays active and no state changed.
	ErrCommitFailed = errors.New("datagrid: pending edit could not be committed")
	// ErrValidation is the cause of a DataError raised by a failed validation rule.
	ErrValidation = errors.New("datagrid: value rejected by validation rule")
)

// outOfRange builds an ErrIndexOutOfRange error for argument name.
func outOfRange(name string, v, n int) error {
	return fmt.Errorf("%w: %s %d not in [0,%d)", ErrIndexOutOfRange, name, v, n)
}

// DataErrorContext describes what the grid was doing when a data error happened.
type DataErrorContext uint16

const (
	ContextFormatting DataErrorContext = 1 << iota
	ContextDisplay
	ContextParsing
	ContextCommit
	ContextCurrentCellChange
	ContextScroll
	ContextLeaveControl
	ContextRowDeletion
	ContextInitialValueRestoration
)

func (c DataErrorContext) String() string {
	names := []string{
		"Formatting", "Display", "Parsing", "Commit", "CurrentCellChange",
		"Scroll", "LeaveControl", "RowDeletion", "InitialValueRestoration",
	}
	var parts []string
	for i, n := range names {
		if c&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// DataError is the recoverable error raised when a value cannot be parsed,
// validated, pushed or fetched.
type DataError struct {
	Context DataErrorContext
	Cell    CellAddress
	Err     error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("datagrid: data error at (%d,%d) [%s]: %v", e.Cell.Col, e.Cell.Row, e.Context, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
