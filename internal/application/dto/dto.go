package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SeriesPoint is one element of a BRE offer array. Value is the already
// JSON-decoded payload value: a number or a string such as "1%".
type SeriesPoint struct {
	Value  any `json:"value"`
	Tenure int `json:"tenure"`
}

// OpenSessionRequest carries either three tenure-indexed series or a
// multiplier row with the applicant's income. Rates and Fees are merged into
// a multiplier table when present.
type OpenSessionRequest struct {
	Multiplier     map[string]any  `json:"multiplier,omitempty"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	MaxLoanAmount  decimal.Decimal `json:"max_loan_amount"`
	ApplicationRef string          `json:"application_ref"`
	Amounts        []SeriesPoint   `json:"amounts,omitempty"`
	Rates          []SeriesPoint   `json:"rates,omitempty"`
	Fees           []SeriesPoint   `json:"fees,omitempty"`
}

// SelectTenureRequest asks for the offer nearest to a requested tenure.
type SelectTenureRequest struct {
	SessionID       string  `json:"session_id"`
	RequestedTenure float64 `json:"requested_tenure"`
}

// ReconcileSliderRequest carries one edit of the slider or its text input.
// Source is "slider" or "text".
type ReconcileSliderRequest struct {
	SessionID string `json:"session_id"`
	RawValue  string `json:"raw_value"`
	Source    string `json:"source"`
}

// GetSessionRequest identifies a session to retrieve.
type GetSessionRequest struct {
	SessionID string `json:"session_id"`
}

// AcceptOfferRequest identifies the session whose selection is accepted.
type AcceptOfferRequest struct {
	SessionID string `json:"session_id"`
}

// GetAcceptedOfferRequest identifies the session whose accepted offer is
// retrieved.
type GetAcceptedOfferRequest struct {
	SessionID string `json:"session_id"`
}

// QuoteInstallmentRequest prices an ad-hoc offer. Fee takes the same
// encodings as the fee series; an absent fee is zero.
type QuoteInstallmentRequest struct {
	StartDate         time.Time       `json:"start_date,omitempty"`
	Fee               any             `json:"fee,omitempty"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TenureMonths      int             `json:"tenure_months"`
	IncludeSchedule   bool            `json:"include_schedule"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// OfferEntryResponse is one row of the offer table. ProcessingFee is in its
// payload form ("1%" or "2000").
type OfferEntryResponse struct {
	Amount            decimal.Decimal `json:"amount"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	ProcessingFee     string          `json:"processing_fee"`
	TenureMonths      int             `json:"tenure_months"`
	HasTerms          bool            `json:"has_terms"`
}

// SelectionResponse is the priced offer for the selected tenure.
type SelectionResponse struct {
	Amount             decimal.Decimal `json:"amount"`
	AnnualRatePercent  decimal.Decimal `json:"annual_rate_percent"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TenureMonths       int             `json:"tenure_months"`
	// HasTerms is false when no rate or fee is known for the tenure; the
	// rate, fee and installment fields are then zero.
	HasTerms           bool            `json:"has_terms"`
}

// SliderStateResponse is the slider grid and its resting tenure.
type SliderStateResponse struct {
	AvailableTenures []int  `json:"available_tenures"`
	MinTenure        int    `json:"min_tenure"`
	MaxTenure        int    `json:"max_tenure"`
	CurrentTenure    int    `json:"current_tenure"`
	Label            string `json:"label,omitempty"`
}

// SessionResponse is the external representation of an offer session.
type SessionResponse struct {
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	Selection      *SelectionResponse   `json:"selection,omitempty"`
	ID             string               `json:"id"`
	ApplicationRef string               `json:"application_ref"`
	Status         string               `json:"status"`
	Phase          string               `json:"phase"`
	Offers         []OfferEntryResponse `json:"offers"`
	DroppedTenures []int                `json:"dropped_tenures,omitempty"`
	Slider         SliderStateResponse  `json:"slider"`
	Version        int                  `json:"version"`
	NoOffer        bool                 `json:"no_offer"`
}

// ReconcileSliderResponse tells the caller which control to rewrite.
// Target is "slider", "text", or empty when both controls are rewritten.
type ReconcileSliderResponse struct {
	Target      string          `json:"target,omitempty"`
	TextLabel   string          `json:"text_label,omitempty"`
	Session     SessionResponse `json:"session"`
	SliderValue int             `json:"slider_value,omitempty"`
	Applied     bool            `json:"applied"`
}

// AmortizationEntryResponse represents a single amortization schedule entry.
type AmortizationEntryResponse struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}

// AcceptOfferResponse is the accepted session with its repayment schedule.
type AcceptOfferResponse struct {
	TotalInterest decimal.Decimal             `json:"total_interest"`
	Session       SessionResponse             `json:"session"`
	Schedule      []AmortizationEntryResponse `json:"schedule"`
}

// AcceptedOfferResponse is the stored record of an accepted offer.
type AcceptedOfferResponse struct {
	AcceptedAt     time.Time                   `json:"accepted_at"`
	SessionID      string                      `json:"session_id"`
	ApplicationRef string                      `json:"application_ref"`
	Selection      SelectionResponse           `json:"selection"`
	TotalInterest  decimal.Decimal             `json:"total_interest"`
	Schedule       []AmortizationEntryResponse `json:"schedule"`
}

// QuoteInstallmentResponse is an ad-hoc pricing.
type QuoteInstallmentResponse struct {
	MonthlyInstallment decimal.Decimal             `json:"monthly_installment"`
	ProcessingFee      decimal.Decimal             `json:"processing_fee"`
	TotalInterest      decimal.Decimal             `json:"total_interest"`
	TotalPayable       decimal.Decimal             `json:"total_payable"`
	Schedule           []AmortizationEntryResponse `json:"schedule,omitempty"`
}
