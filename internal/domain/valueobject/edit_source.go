package valueobject

import "fmt"

// EditSource identifies which paired control originated an edit.
type EditSource struct {
	value string
}

const (
	editSourceSlider = "slider"
	editSourceText   = "text"
)

var (
	EditSourceSlider = EditSource{value: editSourceSlider}
	EditSourceText   = EditSource{value: editSourceText}
)

// NewEditSource parses "slider" or "text".
func NewEditSource(s string) (EditSource, error) {
	switch s {
	case editSourceSlider:
		return EditSourceSlider, nil
	case editSourceText:
		return EditSourceText, nil
	default:
		return EditSource{}, fmt.Errorf("%w: unknown edit source %q", ErrInvalidArgument, s)
	}
}

func (e EditSource) String() string { return e.value }
func (e EditSource) IsZero() bool   { return e.value == "" }

// Equal returns true when both sources carry the same value.
func (e EditSource) Equal(other EditSource) bool { return e.value == other.value }

// Counterpart is the control that must be rewritten after an edit on e.
func (e EditSource) Counterpart() EditSource {
	switch e.value {
	case editSourceSlider:
		return EditSourceText
	case editSourceText:
		return EditSourceSlider
	default:
		return EditSource{}
	}
}
