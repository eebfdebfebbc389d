package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/service"
)

func newSelector() *service.TenureSelector {
	return service.NewTenureSelector(service.NewEmiCalculator())
}

func gridTable(t *testing.T, tenures ...int) model.OfferTable {
	t.Helper()
	var amounts, rates, fees []model.SeriesPoint
	for _, tenure := range tenures {
		amounts = append(amounts, model.SeriesPoint{Tenure: tenure, Value: tenure * 10000})
		rates = append(rates, model.SeriesPoint{Tenure: tenure, Value: 12})
		fees = append(fees, model.SeriesPoint{Tenure: tenure, Value: "1%"})
	}
	table := service.NewOfferTableBuilder().Build(amounts, rates, fees)
	require.Equal(t, len(tenures), table.Len())
	return table
}

func TestTenureSelector_SelectNearest(t *testing.T) {
	s := newSelector()
	table := gridTable(t, 12, 24, 36, 48)

	t.Run("exact match for every tenure", func(t *testing.T) {
		for _, tenure := range table.Tenures() {
			sel, ok := s.SelectNearest(table, float64(tenure))
			require.True(t, ok)
			assert.Equal(t, tenure, sel.TenureMonths)
		}
	})

	t.Run("between adjacent tenures", func(t *testing.T) {
		tests := []struct {
			requested float64
			want      int
		}{
			{13, 12},
			{17.9, 12},
			{18, 24}, // tie goes to the longer tenure
			{18.1, 24},
			{29.99, 24},
			{30, 36},
			{42, 48},
			{0, 12},
			{-5, 12},
			{240, 48},
		}
		for _, tt := range tests {
			sel, ok := s.SelectNearest(table, tt.requested)
			require.True(t, ok)
			assert.Equal(t, tt.want, sel.TenureMonths, "requested=%v", tt.requested)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		_, ok := s.SelectNearest(model.OfferTable{}, 12)
		assert.False(t, ok)
	})

	t.Run("non-finite request", func(t *testing.T) {
		_, ok := s.SelectNearest(table, math.NaN())
		assert.False(t, ok)
		_, ok = s.SelectNearest(table, math.Inf(1))
		assert.False(t, ok)
	})
}

func TestTenureSelector_EndToEndExample(t *testing.T) {
	s := newSelector()
	table := service.NewOfferTableBuilder().Build(exampleSeries())

	sel, ok := s.SelectMax(table)
	require.True(t, ok)
	assert.Equal(t, 24, sel.TenureMonths)
	assert.Equal(t, "240000", sel.Amount.String())
	assert.Equal(t, "11", sel.AnnualRatePercent.String())
	assert.Equal(t, "2000", sel.ProcessingFee.String())
	assert.Equal(t, "11186", sel.MonthlyInstallment.String())
	assert.True(t, sel.HasTerms)

	sel, ok = s.Select(table, 12)
	require.True(t, ok)
	assert.Equal(t, "1200", sel.ProcessingFee.String())
	assert.Equal(t, "10578", sel.MonthlyInstallment.String())

	_, ok = s.Select(table, 18)
	assert.False(t, ok)
	_, ok = s.SelectMax(model.OfferTable{})
	assert.False(t, ok)
}

func TestTenureSelector_EntryWithoutTerms(t *testing.T) {
	s := newSelector()
	table := service.NewOfferTableBuilder().BuildFromMultiplier(model.MultiplierRow{"12": 2}, d(53333), d(500000))

	sel, ok := s.SelectMax(table)
	require.True(t, ok)
	assert.False(t, sel.HasTerms)
	assert.Equal(t, 12, sel.TenureMonths)
	assert.Equal(t, "106000", sel.Amount.String())
	assert.True(t, sel.AnnualRatePercent.IsZero())
	assert.True(t, sel.ProcessingFee.IsZero())
	assert.True(t, sel.MonthlyInstallment.IsZero(), "no installment is invented without a rate")
}
