package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// SliderPhase – lifecycle of one tenure slider
// ---------------------------------------------------------------------------

// SliderPhase is the interaction phase of a tenure slider.
type SliderPhase struct {
	value string
}

const (
	sliderPhaseIdle         = "IDLE"
	sliderPhaseUserDragging = "USER_DRAGGING"
	sliderPhaseReconciled   = "RECONCILED"
)

var (
	SliderPhaseIdle         = SliderPhase{value: sliderPhaseIdle}
	SliderPhaseUserDragging = SliderPhase{value: sliderPhaseUserDragging}
	SliderPhaseReconciled   = SliderPhase{value: sliderPhaseReconciled}
)

var validSliderPhases = map[string]SliderPhase{
	sliderPhaseIdle:         SliderPhaseIdle,
	sliderPhaseUserDragging: SliderPhaseUserDragging,
	sliderPhaseReconciled:   SliderPhaseReconciled,
}

// NewSliderPhase creates a SliderPhase from a raw string.
func NewSliderPhase(s string) (SliderPhase, error) {
	v, ok := validSliderPhases[s]
	if !ok {
		return SliderPhase{}, fmt.Errorf("invalid slider phase: %q", s)
	}
	return v, nil
}

func (p SliderPhase) String() string              { return p.value }
func (p SliderPhase) IsZero() bool                { return p.value == "" }
func (p SliderPhase) Equal(other SliderPhase) bool { return p.value == other.value }

// CanTransitionTo reports whether the slider may move from p to next.
// Reconciled is re-entrant: every edit reconciles again.
func (p SliderPhase) CanTransitionTo(next SliderPhase) bool {
	switch p.value {
	case sliderPhaseIdle:
		return next.value == sliderPhaseReconciled || next.value == sliderPhaseUserDragging
	case sliderPhaseUserDragging, sliderPhaseReconciled:
		return next.value == sliderPhaseReconciled || next.value == sliderPhaseUserDragging
	default:
		return false
	}
}
