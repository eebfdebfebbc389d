// Package money holds the rounding primitives shared by the offer engine.
// Installments and schedule lines are whole currency units; this package
// decides how fractional results are brought back to units.
package money

import "github.com/shopspring/decimal"

// RoundUnits rounds d to the nearest whole unit, halves away from zero.
func RoundUnits(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// FloorToStep rounds d down to a multiple of step. A non-positive step
// returns d unchanged.
func FloorToStep(d decimal.Decimal, step int64) decimal.Decimal {
	if step <= 0 {
		return d
	}
	s := decimal.NewFromInt(step)
	return d.Div(s).Floor().Mul(s)
}
