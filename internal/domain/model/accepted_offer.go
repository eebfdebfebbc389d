package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// AcceptedOffer is the frozen record of an accepted selection together with
// its repayment schedule.
type AcceptedOffer struct {
	AcceptedAt     time.Time
	SessionID      string
	ApplicationRef string
	Selection      SelectionResult
	TotalInterest  decimal.Decimal
	Schedule       []AmortizationEntry
}

// NewAcceptedOffer records the selection of an ACCEPTED session.
func NewAcceptedOffer(
	s OfferSession,
	schedule []AmortizationEntry,
	totalInterest decimal.Decimal,
	now time.Time,
) (AcceptedOffer, error) {
	if !s.Status().Equal(valueobject.SessionStatusAccepted) {
		return AcceptedOffer{}, fmt.Errorf("%w: session %s is %s", valueobject.ErrInvalidStatusTransition, s.ID(), s.Status())
	}
	sel, ok := s.Selection()
	if !ok {
		return AcceptedOffer{}, fmt.Errorf("%w: session %s has no selected offer", valueobject.ErrNoOfferData, s.ID())
	}
	sched := make([]AmortizationEntry, len(schedule))
	copy(sched, schedule)
	return AcceptedOffer{
		SessionID:      s.ID(),
		ApplicationRef: s.ApplicationRef(),
		Selection:      sel,
		Schedule:       sched,
		TotalInterest:  totalInterest,
		AcceptedAt:     now,
	}, nil
}
