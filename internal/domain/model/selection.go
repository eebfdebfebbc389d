package model

import "github.com/shopspring/decimal"

// SelectionResult is the display bundle for one resolved tenure. It is a
// value: every selection produces a fresh result.
//
// HasTerms is false when the entry carries no rate or fee. Rate, fee and
// installment are then left zero and must not be shown as a quote.
type SelectionResult struct {
	Amount             decimal.Decimal `json:"amount"`
	AnnualRatePercent  decimal.Decimal `json:"annual_rate_percent"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TenureMonths       int             `json:"tenure_months"`
	HasTerms           bool            `json:"has_terms"`
}
