package service

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
	"github.com/bibbank/offer-engine/pkg/money"
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPercent = decimal.NewFromInt(1200)
)

// EmiCalculator computes equated monthly installments, processing fees and
// repayment schedules. All amounts are rounded to whole currency units,
// half away from zero.
type EmiCalculator struct{}

// NewEmiCalculator returns a new calculator.
func NewEmiCalculator() *EmiCalculator {
	return &EmiCalculator{}
}

// MonthlyInstallment applies the reducing-balance formula
//
//	r   = annualRatePercent / 12 / 100
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// and falls back to P / n when the rate is zero. Negative principal, negative
// rate and non-positive months fail with ErrInvalidArgument.
func (c *EmiCalculator) MonthlyInstallment(principal, annualRatePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	if err := validateLoanTerms(principal, annualRatePercent, months); err != nil {
		return decimal.Zero, err
	}
	if principal.IsZero() {
		return decimal.Zero, nil
	}
	if annualRatePercent.IsZero() {
		return money.RoundUnits(principal.Div(decimal.NewFromInt(int64(months)))), nil
	}

	// float64 for the power term, decimal for everything monetary.
	r := annualRatePercent.Div(monthsPercent).InexactFloat64()
	factor := math.Pow(1+r, float64(months))
	emi := principal.InexactFloat64() * r * factor / (factor - 1)
	if math.IsNaN(emi) || math.IsInf(emi, 0) {
		return decimal.Zero, fmt.Errorf("%w: installment overflow for principal %s", valueobject.ErrInvalidArgument, principal)
	}
	return money.RoundUnits(decimal.NewFromFloat(emi)), nil
}

// ProcessingFee resolves fee against principal: a percentage fee is
// principal × value / 100 and a flat fee is returned verbatim. Neither is
// rounded.
func (c *EmiCalculator) ProcessingFee(principal decimal.Decimal, fee model.Fee) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: principal %s is negative", valueobject.ErrInvalidArgument, principal)
	}
	if fee.Value().IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: fee %s is negative", valueobject.ErrInvalidArgument, fee)
	}
	if fee.IsPercent() {
		return principal.Mul(fee.Value()).Div(hundred), nil
	}
	return fee.Value(), nil
}

// Schedule builds the repayment schedule for the installment returned by
// MonthlyInstallment. The first installment is due one month after start and
// the final period absorbs rounding so the balance reaches exactly zero.
func (c *EmiCalculator) Schedule(
	principal, annualRatePercent decimal.Decimal,
	months int,
	start time.Time,
) ([]model.AmortizationEntry, error) {
	installment, err := c.MonthlyInstallment(principal, annualRatePercent, months)
	if err != nil {
		return nil, err
	}
	if principal.IsZero() {
		return nil, nil
	}

	monthlyRate := annualRatePercent.Div(monthsPercent)
	remaining := principal
	schedule := make([]model.AmortizationEntry, 0, months)

	for period := 1; period <= months; period++ {
		interest := money.RoundUnits(remaining.Mul(monthlyRate))
		principalPart := installment.Sub(interest)
		if period == months || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, model.AmortizationEntry{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}
	return schedule, nil
}

// TotalInterest is the interest paid over the life of the loan at a fixed
// installment.
func (c *EmiCalculator) TotalInterest(principal, installment decimal.Decimal, months int) decimal.Decimal {
	return installment.Mul(decimal.NewFromInt(int64(months))).Sub(principal)
}

func validateLoanTerms(principal, annualRatePercent decimal.Decimal, months int) error {
	switch {
	case principal.IsNegative():
		return fmt.Errorf("%w: principal %s is negative", valueobject.ErrInvalidArgument, principal)
	case annualRatePercent.IsNegative():
		return fmt.Errorf("%w: annual rate %s is negative", valueobject.ErrInvalidArgument, annualRatePercent)
	case months <= 0:
		return fmt.Errorf("%w: months %d must be positive", valueobject.ErrInvalidArgument, months)
	}
	return nil
}
