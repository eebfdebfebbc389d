package service

import (
	"math"

	"github.com/bibbank/offer-engine/internal/domain/model"
)

// TenureSelector resolves a requested tenure against an OfferTable and
// prices the chosen entry.
type TenureSelector struct {
	calc *EmiCalculator
}

// NewTenureSelector returns a selector pricing entries with calc.
func NewTenureSelector(calc *EmiCalculator) *TenureSelector {
	return &TenureSelector{calc: calc}
}

// SelectNearest picks the tenure closest to requested. On an exact tie the
// longer tenure wins. It returns false for an empty table or a non-finite
// request.
func (s *TenureSelector) SelectNearest(table model.OfferTable, requested float64) (model.SelectionResult, bool) {
	if table.IsEmpty() || math.IsNaN(requested) || math.IsInf(requested, 0) {
		return model.SelectionResult{}, false
	}

	var (
		best     model.OfferEntry
		bestDist = math.Inf(1)
	)
	// Ascending order plus <= lets the longer tenure take a tie.
	for _, e := range table.Entries() {
		if d := math.Abs(float64(e.TenureMonths) - requested); d <= bestDist {
			best, bestDist = e, d
		}
	}
	return s.price(best)
}

// SelectMax picks the longest tenure.
func (s *TenureSelector) SelectMax(table model.OfferTable) (model.SelectionResult, bool) {
	e, ok := table.Longest()
	if !ok {
		return model.SelectionResult{}, false
	}
	return s.price(e)
}

// Select prices the entry for exactly tenure.
func (s *TenureSelector) Select(table model.OfferTable, tenure int) (model.SelectionResult, bool) {
	e, ok := table.Get(tenure)
	if !ok {
		return model.SelectionResult{}, false
	}
	return s.price(e)
}

// price builds the SelectionResult for e. An entry without terms keeps only
// its tenure and amount.
func (s *TenureSelector) price(e model.OfferEntry) (model.SelectionResult, bool) {
	if !e.HasTerms {
		return model.SelectionResult{TenureMonths: e.TenureMonths, Amount: e.Amount}, true
	}

	installment, err := s.calc.MonthlyInstallment(e.Amount, e.AnnualRatePercent, e.TenureMonths)
	if err != nil {
		return model.SelectionResult{}, false
	}
	feeAmount, err := s.calc.ProcessingFee(e.Amount, e.ProcessingFee)
	if err != nil {
		return model.SelectionResult{}, false
	}
	return model.SelectionResult{
		TenureMonths:       e.TenureMonths,
		Amount:             e.Amount,
		AnnualRatePercent:  e.AnnualRatePercent,
		ProcessingFee:      feeAmount,
		MonthlyInstallment: installment,
		HasTerms:           true,
	}, true
}
