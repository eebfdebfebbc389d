package model

import (
	"fmt"
	"sort"

	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// SliderState is the discrete grid a tenure slider may rest on.
// CurrentTenure is always one of AvailableTenures.
type SliderState struct {
	AvailableTenures []int `json:"available_tenures"`
	MinTenure        int   `json:"min_tenure"`
	MaxTenure        int   `json:"max_tenure"`
	CurrentTenure    int   `json:"current_tenure"`
}

// NewSliderState builds the slider grid from a strictly increasing,
// non-empty tenure sequence, resting on current.
func NewSliderState(tenures []int, current int) (SliderState, error) {
	if len(tenures) == 0 {
		return SliderState{}, fmt.Errorf("%w: slider needs at least one tenure", valueobject.ErrNoOfferData)
	}
	for i := 1; i < len(tenures); i++ {
		if tenures[i] <= tenures[i-1] {
			return SliderState{}, fmt.Errorf("%w: tenures must be strictly increasing", valueobject.ErrInvalidArgument)
		}
	}
	grid := make([]int, len(tenures))
	copy(grid, tenures)

	s := SliderState{
		AvailableTenures: grid,
		MinTenure:        grid[0],
		MaxTenure:        grid[len(grid)-1],
		CurrentTenure:    current,
	}
	if !s.Contains(current) {
		return SliderState{}, fmt.Errorf("%w: tenure %d is not on the slider grid", valueobject.ErrInvalidArgument, current)
	}
	return s, nil
}

// SliderStateFor is the initial grid for table, resting on its longest tenure.
func SliderStateFor(table OfferTable) (SliderState, error) {
	tenures := table.Tenures()
	if len(tenures) == 0 {
		return SliderState{}, fmt.Errorf("%w: empty offer table", valueobject.ErrNoOfferData)
	}
	return NewSliderState(tenures, tenures[len(tenures)-1])
}

// Contains reports whether tenure is on the grid.
func (s SliderState) Contains(tenure int) bool {
	i := sort.SearchInts(s.AvailableTenures, tenure)
	return i < len(s.AvailableTenures) && s.AvailableTenures[i] == tenure
}

// IsEmpty reports whether the grid has no tenures.
func (s SliderState) IsEmpty() bool { return len(s.AvailableTenures) == 0 }

// WithCurrent returns a copy resting on tenure. tenure must be on the grid.
func (s SliderState) WithCurrent(tenure int) (SliderState, error) {
	if !s.Contains(tenure) {
		return s, fmt.Errorf("%w: tenure %d is not on the slider grid", valueobject.ErrInvalidArgument, tenure)
	}
	next := s.clone()
	next.CurrentTenure = tenure
	return next, nil
}

func (s SliderState) clone() SliderState {
	next := s
	next.AvailableTenures = make([]int, len(s.AvailableTenures))
	copy(next.AvailableTenures, s.AvailableTenures)
	return next
}
