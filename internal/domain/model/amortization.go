package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is one period of a repayment schedule. Amounts are in
// whole currency units.
type AmortizationEntry struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}
