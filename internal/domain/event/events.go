package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/offer-engine/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateOfferSession = "OfferSession"

// Event types.
const (
	TypeOfferSessionOpened = "offer.session.opened"
	TypeTenureSelected     = "offer.session.tenure_selected"
	TypeOfferAccepted      = "offer.session.accepted"
)

// ---------------------------------------------------------------------------
// Offer session events
// ---------------------------------------------------------------------------

// OfferSessionOpened is raised when an applicant's offer table is loaded.
type OfferSessionOpened struct {
	events.BaseEvent
	ApplicationRef string `json:"application_ref"`
	Tenures        []int  `json:"tenures"`
	NoOffer        bool   `json:"no_offer"`
}

func NewOfferSessionOpened(sessionID, applicationRef string, tenures []int, now time.Time) OfferSessionOpened {
	return OfferSessionOpened{
		BaseEvent:      events.NewBaseEvent(TypeOfferSessionOpened, sessionID, aggregateOfferSession, now),
		ApplicationRef: applicationRef,
		Tenures:        tenures,
		NoOffer:        len(tenures) == 0,
	}
}

// TenureSelected is raised when the reconciled tenure of a session changes.
type TenureSelected struct {
	events.BaseEvent
	ApplicationRef     string          `json:"application_ref"`
	Amount             decimal.Decimal `json:"amount"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TenureMonths       int             `json:"tenure_months"`
	PreviousTenure     int             `json:"previous_tenure,omitempty"`
}

func NewTenureSelected(
	sessionID, applicationRef string,
	tenure, previous int,
	amount, installment decimal.Decimal,
	now time.Time,
) TenureSelected {
	return TenureSelected{
		BaseEvent:          events.NewBaseEvent(TypeTenureSelected, sessionID, aggregateOfferSession, now),
		ApplicationRef:     applicationRef,
		TenureMonths:       tenure,
		PreviousTenure:     previous,
		Amount:             amount,
		MonthlyInstallment: installment,
	}
}

// OfferAccepted is raised when the applicant accepts the selected offer.
type OfferAccepted struct {
	events.BaseEvent
	ApplicationRef     string          `json:"application_ref"`
	Amount             decimal.Decimal `json:"amount"`
	AnnualRatePercent  decimal.Decimal `json:"annual_rate_percent"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TenureMonths       int             `json:"tenure_months"`
}

func NewOfferAccepted(
	sessionID, applicationRef string,
	tenure int,
	amount, rate, fee, installment decimal.Decimal,
	now time.Time,
) OfferAccepted {
	return OfferAccepted{
		BaseEvent:          events.NewBaseEvent(TypeOfferAccepted, sessionID, aggregateOfferSession, now),
		ApplicationRef:     applicationRef,
		TenureMonths:       tenure,
		Amount:             amount,
		AnnualRatePercent:  rate,
		ProcessingFee:      fee,
		MonthlyInstallment: installment,
	}
}
