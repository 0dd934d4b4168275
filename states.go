package datagrid

import "strings"

// ElementState is the compact state bitset carried by every band and cell.
type ElementState uint8

const (
	StateNone ElementState = 0

	StateDisplayed ElementState = 1 << 0 // Intersects the data area after the last layout
	StateFrozen    ElementState = 1 << 1 // Pinned outside the scrolling region
	StateReadOnly  ElementState = 1 << 2 // Cannot be edited
	StateSelected  ElementState = 1 << 3 // Selected as a whole band
	StateVisible   ElementState = 1 << 4 // Takes part in layout

	// Convenience
	StateVisibleFrozen ElementState = StateVisible | StateFrozen
)

// Has reports whether every flag in f is set.
func (s ElementState) Has(f ElementState) bool { return s&f == f }

// Matches reports whether s contains all include flags and none of the exclude flags.
func (s ElementState) Matches(include, exclude ElementState) bool {
	return s&include == include && s&exclude == 0
}

// with returns s with f set or cleared.
func (s ElementState) with(f ElementState, on bool) ElementState {
	if on {
		return s | f
	}
	return s &^ f
}

func (s ElementState) String() string {
	if s == StateNone {
		return "None"
	}
	var parts []string
	names := []struct {
		f    ElementState
		name string
	}{
		{StateDisplayed, "Displayed"},
		{StateFrozen, "Frozen"},
		{StateReadOnly, "ReadOnly"},
		{StateSelected, "Selected"},
		{StateVisible, "Visible"},
	}
	for _, n := range names {
		if s&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
