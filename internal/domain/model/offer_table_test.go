package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

func entry(tenure int, amount int64) model.OfferEntry {
	return model.OfferEntry{
		TenureMonths:      tenure,
		Amount:            decimal.NewFromInt(amount),
		AnnualRatePercent: decimal.NewFromInt(11),
		ProcessingFee:     model.FlatFee(decimal.NewFromInt(2000)),
		HasTerms:          true,
	}
}

func TestNewOfferTable(t *testing.T) {
	t.Run("orders entries by tenure", func(t *testing.T) {
		table, err := model.NewOfferTable([]model.OfferEntry{entry(36, 300000), entry(12, 100000), entry(24, 200000)})
		require.NoError(t, err)
		assert.Equal(t, []int{12, 24, 36}, table.Tenures())
		assert.Equal(t, 3, table.Len())

		e, ok := table.Get(24)
		require.True(t, ok)
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(200000)))

		_, ok = table.Get(18)
		assert.False(t, ok)

		longest, ok := table.Longest()
		require.True(t, ok)
		assert.Equal(t, 36, longest.TenureMonths)
	})

	t.Run("empty table", func(t *testing.T) {
		table, err := model.NewOfferTable(nil)
		require.NoError(t, err)
		assert.True(t, table.IsEmpty())
		assert.Empty(t, table.Tenures())
		_, ok := table.Longest()
		assert.False(t, ok)
	})

	t.Run("rejects duplicate tenure", func(t *testing.T) {
		_, err := model.NewOfferTable([]model.OfferEntry{entry(12, 1), entry(12, 2)})
		assert.ErrorIs(t, err, valueobject.ErrInvalidArgument)
	})

	t.Run("rejects non-positive tenure", func(t *testing.T) {
		_, err := model.NewOfferTable([]model.OfferEntry{entry(0, 1)})
		assert.ErrorIs(t, err, valueobject.ErrInvalidArgument)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := model.NewOfferTable([]model.OfferEntry{entry(12, -1)})
		assert.ErrorIs(t, err, valueobject.ErrInvalidArgument)
	})

	t.Run("entries are copies", func(t *testing.T) {
		table, err := model.NewOfferTable([]model.OfferEntry{entry(12, 100000)})
		require.NoError(t, err)
		entries := table.Entries()
		entries[0].TenureMonths = 99
		assert.Equal(t, []int{12}, table.Tenures())
	})
}

func TestSliderState(t *testing.T) {
	t.Run("builds grid bounds", func(t *testing.T) {
		s, err := model.NewSliderState([]int{12, 24, 36}, 24)
		require.NoError(t, err)
		assert.Equal(t, 12, s.MinTenure)
		assert.Equal(t, 36, s.MaxTenure)
		assert.True(t, s.Contains(36))
		assert.False(t, s.Contains(18))
	})

	t.Run("rejects current off grid", func(t *testing.T) {
		_, err := model.NewSliderState([]int{12, 24}, 18)
		assert.ErrorIs(t, err, valueobject.ErrInvalidArgument)
	})

	t.Run("rejects empty grid", func(t *testing.T) {
		_, err := model.NewSliderState(nil, 0)
		assert.ErrorIs(t, err, valueobject.ErrNoOfferData)
	})

	t.Run("rejects unsorted grid", func(t *testing.T) {
		_, err := model.NewSliderState([]int{24, 12}, 12)
		assert.ErrorIs(t, err, valueobject.ErrInvalidArgument)
	})

	t.Run("WithCurrent keeps original untouched", func(t *testing.T) {
		s, err := model.NewSliderState([]int{12, 24}, 24)
		require.NoError(t, err)
		moved, err := s.WithCurrent(12)
		require.NoError(t, err)
		assert.Equal(t, 12, moved.CurrentTenure)
		assert.Equal(t, 24, s.CurrentTenure)

		_, err = s.WithCurrent(13)
		assert.Error(t, err)
	})

	t.Run("SliderStateFor rests on longest tenure", func(t *testing.T) {
		table, err := model.NewOfferTable([]model.OfferEntry{entry(12, 1), entry(24, 2)})
		require.NoError(t, err)
		s, err := model.SliderStateFor(table)
		require.NoError(t, err)
		assert.Equal(t, 24, s.CurrentTenure)

		_, err = model.SliderStateFor(model.OfferTable{})
		assert.ErrorIs(t, err, valueobject.ErrNoOfferData)
	})
}
