package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/offer-engine/internal/domain/event"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// OfferSession aggregate root
// ---------------------------------------------------------------------------

// OfferSession holds one applicant's offer table together with the state of
// the tenure slider bound to it. It is an immutable aggregate: transitions
// return a new copy with the version bumped.
type OfferSession struct {
	id             string
	applicationRef string
	table          OfferTable
	slider         SliderState
	phase          valueobject.SliderPhase
	selection      *SelectionResult
	status         valueobject.SessionStatus
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewOfferSession opens a session over table. An empty table still opens a
// session; it simply has no selection and an empty slider.
func NewOfferSession(applicationRef string, table OfferTable, now time.Time) (OfferSession, error) {
	if applicationRef == "" {
		return OfferSession{}, errors.New("application reference is required")
	}

	s := OfferSession{
		id:             uuid.New().String(),
		applicationRef: applicationRef,
		table:          table,
		phase:          valueobject.SliderPhaseIdle,
		status:         valueobject.SessionStatusOpen,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}
	if !table.IsEmpty() {
		slider, err := SliderStateFor(table)
		if err != nil {
			return OfferSession{}, fmt.Errorf("slider state: %w", err)
		}
		s.slider = slider
	}

	s.domainEvents = append(s.domainEvents, event.NewOfferSessionOpened(s.id, applicationRef, table.Tenures(), now))
	return s, nil
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// Reconcile records the outcome of a slider reconciliation. A nil result
// keeps the previous selection. TenureSelected is raised whenever the
// selected tenure changes.
func (s OfferSession) Reconcile(
	slider SliderState,
	phase valueobject.SliderPhase,
	result *SelectionResult,
	now time.Time,
) (OfferSession, error) {
	if s.status.IsTerminal() {
		return s, fmt.Errorf("%w: session %s is %s", valueobject.ErrInvalidStatusTransition, s.id, s.status)
	}
	if !s.phase.CanTransitionTo(phase) {
		return s, fmt.Errorf("%w: slider %s -> %s", valueobject.ErrInvalidStatusTransition, s.phase, phase)
	}
	if !slider.IsEmpty() && !slider.Contains(slider.CurrentTenure) {
		return s, fmt.Errorf("%w: tenure %d is not on the slider grid", valueobject.ErrInvalidArgument, slider.CurrentTenure)
	}

	next := s
	next.slider = slider.clone()
	next.phase = phase
	next.version = s.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(s.domainEvents)

	if result != nil {
		r := *result
		next.selection = &r

		previous := 0
		if s.selection != nil {
			previous = s.selection.TenureMonths
		}
		if previous != r.TenureMonths {
			next.domainEvents = append(next.domainEvents, event.NewTenureSelected(
				s.id, s.applicationRef, r.TenureMonths, previous, r.Amount, r.MonthlyInstallment, now,
			))
		}
	}
	return next, nil
}

// Accept freezes the current selection. OPEN -> ACCEPTED.
func (s OfferSession) Accept(now time.Time) (OfferSession, error) {
	if !s.status.Equal(valueobject.SessionStatusOpen) {
		return s, fmt.Errorf("%w: session %s is %s", valueobject.ErrInvalidStatusTransition, s.id, s.status)
	}
	if s.selection == nil {
		return s, fmt.Errorf("%w: session %s has no selected offer", valueobject.ErrNoOfferData, s.id)
	}
	if !s.selection.HasTerms {
		return s, fmt.Errorf("%w: tenure %d of session %s has no rate or fee", valueobject.ErrNoOfferData, s.selection.TenureMonths, s.id)
	}

	sel := *s.selection
	next := s
	next.status = valueobject.SessionStatusAccepted
	next.version = s.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(s.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewOfferAccepted(
		s.id, s.applicationRef, sel.TenureMonths,
		sel.Amount, sel.AnnualRatePercent, sel.ProcessingFee, sel.MonthlyInstallment, now,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s OfferSession) ID() string                         { return s.id }
func (s OfferSession) ApplicationRef() string             { return s.applicationRef }
func (s OfferSession) Table() OfferTable                  { return s.table }
func (s OfferSession) Slider() SliderState                { return s.slider.clone() }
func (s OfferSession) Phase() valueobject.SliderPhase     { return s.phase }
func (s OfferSession) Status() valueobject.SessionStatus  { return s.status }
func (s OfferSession) Version() int                       { return s.version }
func (s OfferSession) CreatedAt() time.Time               { return s.createdAt }
func (s OfferSession) UpdatedAt() time.Time               { return s.updatedAt }
func (s OfferSession) DomainEvents() []event.DomainEvent  { return s.domainEvents }
func (s OfferSession) NoOffer() bool                      { return s.table.IsEmpty() }

// Selection returns the current selection, if any.
func (s OfferSession) Selection() (SelectionResult, bool) {
	if s.selection == nil {
		return SelectionResult{}, false
	}
	return *s.selection, true
}

// ClearEvents returns a copy with an empty event list.
func (s OfferSession) ClearEvents() OfferSession {
	next := s
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

// ---------------------------------------------------------------------------
// Persistence snapshot
// ---------------------------------------------------------------------------

// OfferSessionSnapshot is the serialisable form of an OfferSession used by
// session stores.
type OfferSessionSnapshot struct {
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Selection      *SelectionResult `json:"selection,omitempty"`
	ID             string           `json:"id"`
	ApplicationRef string           `json:"application_ref"`
	Phase          string           `json:"phase"`
	Status         string           `json:"status"`
	Entries        []OfferEntry     `json:"entries"`
	Slider         SliderState      `json:"slider"`
	Version        int              `json:"version"`
}

// Snapshot captures the session state. Pending events are not included.
func (s OfferSession) Snapshot() OfferSessionSnapshot {
	snap := OfferSessionSnapshot{
		ID:             s.id,
		ApplicationRef: s.applicationRef,
		Entries:        s.table.Entries(),
		Slider:         s.slider.clone(),
		Phase:          s.phase.String(),
		Status:         s.status.String(),
		Version:        s.version,
		CreatedAt:      s.createdAt,
		UpdatedAt:      s.updatedAt,
	}
	if s.selection != nil {
		sel := *s.selection
		snap.Selection = &sel
	}
	return snap
}

// RestoreOfferSession rebuilds a session from a snapshot.
func RestoreOfferSession(snap OfferSessionSnapshot) (OfferSession, error) {
	table, err := NewOfferTable(snap.Entries)
	if err != nil {
		return OfferSession{}, fmt.Errorf("restore offer table: %w", err)
	}
	phase, err := valueobject.NewSliderPhase(snap.Phase)
	if err != nil {
		return OfferSession{}, fmt.Errorf("restore slider phase: %w", err)
	}
	status, err := valueobject.NewSessionStatus(snap.Status)
	if err != nil {
		return OfferSession{}, fmt.Errorf("restore session status: %w", err)
	}

	s := OfferSession{
		id:             snap.ID,
		applicationRef: snap.ApplicationRef,
		table:          table,
		slider:         snap.Slider.clone(),
		phase:          phase,
		status:         status,
		version:        snap.Version,
		createdAt:      snap.CreatedAt,
		updatedAt:      snap.UpdatedAt,
	}
	if snap.Selection != nil {
		sel := *snap.Selection
		s.selection = &sel
	}
	return s, nil
}
