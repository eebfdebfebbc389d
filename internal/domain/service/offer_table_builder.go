package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/pkg/money"
)

// multiplierAmountStep is the granularity multiplier-derived amounts are
// floored to.
const multiplierAmountStep = 1000

// ---------------------------------------------------------------------------
// OfferTableBuilder – normalises BRE offer arrays into an OfferTable
// ---------------------------------------------------------------------------

// OfferTableBuilder joins tenure-indexed amount, rate and fee series by
// tenure. It never pairs values by position: a tenure missing from any
// series is left out of the table.
type OfferTableBuilder struct{}

// NewOfferTableBuilder returns a new builder.
func NewOfferTableBuilder() *OfferTableBuilder {
	return &OfferTableBuilder{}
}

// Build returns the table over the tenures present in all three series.
// Points with a non-positive tenure, an undecodable value or a negative
// amount or rate are dropped. When a tenure repeats inside one series the
// last point wins.
func (b *OfferTableBuilder) Build(amounts, rates, fees []model.SeriesPoint) model.OfferTable {
	amountByTenure := decodeDecimalSeries(amounts)
	rateByTenure := decodeDecimalSeries(rates)
	feeByTenure := decodeFeeSeries(fees)

	entries := make([]model.OfferEntry, 0, len(amountByTenure))
	for tenure, amount := range amountByTenure {
		rate, ok := rateByTenure[tenure]
		if !ok {
			continue
		}
		fee, ok := feeByTenure[tenure]
		if !ok {
			continue
		}
		entries = append(entries, model.OfferEntry{
			TenureMonths:      tenure,
			Amount:            amount,
			AnnualRatePercent: rate,
			ProcessingFee:     fee,
			HasTerms:          true,
		})
	}
	return tableOf(entries)
}

// Mismatches lists, ascending, the tenures Build leaves out because they
// are missing from at least one series.
func (b *OfferTableBuilder) Mismatches(amounts, rates, fees []model.SeriesPoint) []int {
	amountByTenure := decodeDecimalSeries(amounts)
	rateByTenure := decodeDecimalSeries(rates)
	feeByTenure := decodeFeeSeries(fees)

	union := make(map[int]struct{})
	for t := range amountByTenure {
		union[t] = struct{}{}
	}
	for t := range rateByTenure {
		union[t] = struct{}{}
	}
	for t := range feeByTenure {
		union[t] = struct{}{}
	}

	var out []int
	for t := range union {
		_, inAmounts := amountByTenure[t]
		_, inRates := rateByTenure[t]
		_, inFees := feeByTenure[t]
		if !inAmounts || !inRates || !inFees {
			out = append(out, t)
		}
	}
	sort.Ints(out)
	return out
}

// BuildFromMultiplier derives amounts from a tenure-multiplier row: for every
// key that is a positive integer with a non-zero numeric multiplier the
// amount is min(maxLoanAmount, multiplier × monthlyIncome), floored to the
// nearest 1000. Metadata columns are ignored. The entries carry no rate or
// fee; see MergeTerms.
func (b *OfferTableBuilder) BuildFromMultiplier(
	row model.MultiplierRow,
	monthlyIncome, maxLoanAmount decimal.Decimal,
) model.OfferTable {
	entries := make([]model.OfferEntry, 0, len(row))
	for key, raw := range row {
		tenure, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || tenure <= 0 || raw == nil {
			continue
		}
		multiplier, err := model.DecimalFromAny(raw)
		if err != nil || multiplier.IsZero() {
			continue
		}

		amount := decimal.Min(maxLoanAmount, multiplier.Mul(monthlyIncome))
		amount = money.FloorToStep(amount, multiplierAmountStep)
		if amount.IsNegative() {
			continue
		}
		entries = append(entries, model.OfferEntry{
			TenureMonths:  tenure,
			Amount:        amount,
			ProcessingFee: model.FlatFee(decimal.Zero),
		})
	}
	return tableOf(entries)
}

// MergeTerms attaches rate and fee to the entries of base by tenure. Base
// tenures without both a rate and a fee are dropped.
func (b *OfferTableBuilder) MergeTerms(base model.OfferTable, rates, fees []model.SeriesPoint) model.OfferTable {
	rateByTenure := decodeDecimalSeries(rates)
	feeByTenure := decodeFeeSeries(fees)

	entries := make([]model.OfferEntry, 0, base.Len())
	for _, e := range base.Entries() {
		rate, ok := rateByTenure[e.TenureMonths]
		if !ok {
			continue
		}
		fee, ok := feeByTenure[e.TenureMonths]
		if !ok {
			continue
		}
		e.AnnualRatePercent = rate
		e.ProcessingFee = fee
		e.HasTerms = true
		entries = append(entries, e)
	}
	return tableOf(entries)
}

func decodeDecimalSeries(series []model.SeriesPoint) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(series))
	for _, p := range series {
		if p.Tenure <= 0 {
			continue
		}
		d, err := model.DecimalFromAny(p.Value)
		if err != nil || d.IsNegative() {
			continue
		}
		out[p.Tenure] = d
	}
	return out
}

func decodeFeeSeries(series []model.SeriesPoint) map[int]model.Fee {
	out := make(map[int]model.Fee, len(series))
	for _, p := range series {
		if p.Tenure <= 0 {
			continue
		}
		fee, err := model.ParseFee(p.Value)
		if err != nil {
			continue
		}
		out[p.Tenure] = fee
	}
	return out
}

// tableOf wraps entries that are already unique, positive and non-negative.
func tableOf(entries []model.OfferEntry) model.OfferTable {
	table, err := model.NewOfferTable(entries)
	if err != nil {
		return model.OfferTable{}
	}
	return table
}
