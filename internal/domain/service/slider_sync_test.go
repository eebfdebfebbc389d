package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/service"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

func TestSliderSyncController_Mount(t *testing.T) {
	t.Run("reconciles on the longest tenure", func(t *testing.T) {
		c := service.NewSliderSyncController(gridTable(t, 12, 24, 36), newSelector())
		assert.True(t, c.Phase().Equal(valueobject.SliderPhaseIdle))

		rec := c.Mount()
		require.True(t, rec.Applied)
		assert.True(t, rec.Phase.Equal(valueobject.SliderPhaseReconciled))
		assert.True(t, rec.Target.IsZero(), "mount writes both controls")
		assert.Equal(t, 36, rec.State.CurrentTenure)
		assert.Equal(t, 36, rec.SliderValue)
		assert.Equal(t, "36 Months", rec.TextLabel)
		require.NotNil(t, rec.Result)
		assert.Equal(t, 36, rec.Result.TenureMonths)
	})

	t.Run("empty table stays idle", func(t *testing.T) {
		c := service.NewSliderSyncController(model.OfferTable{}, newSelector())
		rec := c.Mount()
		assert.False(t, rec.Applied)
		assert.Nil(t, rec.Result)
		assert.True(t, c.Phase().Equal(valueobject.SliderPhaseIdle))
		assert.ErrorIs(t, c.BeginDrag(), valueobject.ErrNoOfferData)
	})

	t.Run("second mount is a no-op", func(t *testing.T) {
		c := service.NewSliderSyncController(gridTable(t, 12, 24), newSelector())
		c.Mount()
		c.Reconcile("12", valueobject.EditSourceSlider)
		rec := c.Mount()
		assert.False(t, rec.Applied)
		assert.Equal(t, 12, rec.State.CurrentTenure)
	})
}

func TestSliderSyncController_Reconcile(t *testing.T) {
	t.Run("slider edit rewrites the text label", func(t *testing.T) {
		c := service.NewSliderSyncController(gridTable(t, 12, 24, 36), newSelector())
		c.Mount()
		require.NoError(t, c.BeginDrag())
		assert.True(t, c.Phase().Equal(valueobject.SliderPhaseUserDragging))

		rec := c.Reconcile("29.6", valueobject.EditSourceSlider)
		require.True(t, rec.Applied)
		assert.True(t, rec.Target.Equal(valueobject.EditSourceText))
		assert.Equal(t, 24, rec.State.CurrentTenure)
		assert.Equal(t, "24 Months", rec.TextLabel)
		assert.True(t, c.Phase().Equal(valueobject.SliderPhaseReconciled))
	})

	t.Run("text edit moves the slider thumb", func(t *testing.T) {
		c := service.NewSliderSyncController(gridTable(t, 12, 24, 36), newSelector())
		c.Mount()

		rec := c.Reconcile("13 Months", valueobject.EditSourceText)
		require.True(t, rec.Applied)
		assert.True(t, rec.Source.Equal(valueobject.EditSourceText))
		assert.True(t, rec.Target.Equal(valueobject.EditSourceSlider))
		assert.Equal(t, 12, rec.SliderValue)
		assert.Equal(t, 12, rec.Result.TenureMonths)
	})

	t.Run("unparsable input keeps previous result", func(t *testing.T) {
		c := service.NewSliderSyncController(gridTable(t, 12, 24, 36), newSelector())
		c.Mount()
		c.Reconcile("24", valueobject.EditSourceSlider)

		for _, tc := range []struct {
			raw    string
			source valueobject.EditSource
		}{
			{"abc", valueobject.EditSourceSlider},
			{"", valueobject.EditSourceSlider},
			{"NaN", valueobject.EditSourceSlider},
			{"Months", valueobject.EditSourceText},
			{"", valueobject.EditSourceText},
		} {
			rec := c.Reconcile(tc.raw, tc.source)
			assert.False(t, rec.Applied, "raw=%q", tc.raw)
			assert.True(t, rec.Target.IsZero())
			assert.Equal(t, 24, rec.State.CurrentTenure)
			require.NotNil(t, rec.Result)
			assert.Equal(t, 24, rec.Result.TenureMonths)
		}
	})

	t.Run("empty table is fail-soft", func(t *testing.T) {
		c := service.NewSliderSyncController(model.OfferTable{}, newSelector())
		rec := c.Reconcile("24", valueobject.EditSourceSlider)
		assert.False(t, rec.Applied)
		assert.Nil(t, rec.Result)
		_, ok := c.Result()
		assert.False(t, ok)
	})

	t.Run("last edit wins", func(t *testing.T) {
		c := service.NewSliderSyncController(gridTable(t, 12, 24, 36), newSelector())
		c.Mount()
		c.Reconcile("12", valueobject.EditSourceSlider)
		c.Reconcile("36", valueobject.EditSourceText)
		sel, ok := c.Result()
		require.True(t, ok)
		assert.Equal(t, 36, sel.TenureMonths)
		assert.Equal(t, 36, c.State().CurrentTenure)
	})
}

func TestReconcileSlider(t *testing.T) {
	selector := newSelector()
	table := gridTable(t, 6, 12, 18, 24, 36, 48, 60)
	state, err := model.SliderStateFor(table)
	require.NoError(t, err)

	t.Run("current tenure always on the grid", func(t *testing.T) {
		raws := []string{"0", "5", "7.4", "9", "15", "21.5", "30", "42", "54", "59.9", "1000", "-3", "x", "1e9"}
		for _, raw := range raws {
			for _, source := range []valueobject.EditSource{valueobject.EditSourceSlider, valueobject.EditSourceText} {
				next, _ := service.ReconcileSlider(selector, table, state, raw, source)
				assert.True(t, next.Contains(next.CurrentTenure), "raw=%q source=%s tenure=%d", raw, source, next.CurrentTenure)
				state = next
			}
		}
	})

	t.Run("returns result for applied edits", func(t *testing.T) {
		next, result := service.ReconcileSlider(selector, table, state, "20", valueobject.EditSourceSlider)
		require.NotNil(t, result)
		assert.Equal(t, 18, result.TenureMonths)
		assert.Equal(t, 18, next.CurrentTenure)

		_, result = service.ReconcileSlider(selector, table, next, "junk", valueobject.EditSourceSlider)
		assert.Nil(t, result)
	})

	t.Run("stale grid is reset to the table", func(t *testing.T) {
		stale, err := model.NewSliderState([]int{3, 9}, 9)
		require.NoError(t, err)
		next, result := service.ReconcileSlider(selector, table, stale, "junk", valueobject.EditSourceText)
		assert.Nil(t, result)
		assert.Equal(t, table.Tenures(), next.AvailableTenures)
		assert.Equal(t, 60, next.CurrentTenure)
	})

	t.Run("empty table returns state untouched", func(t *testing.T) {
		next, result := service.ReconcileSlider(selector, model.OfferTable{}, state, "12", valueobject.EditSourceSlider)
		assert.Nil(t, result)
		assert.Equal(t, state, next)
	})
}

func TestSliderSyncController_Snap(t *testing.T) {
	c := service.NewSliderSyncController(gridTable(t, 12, 24, 36), newSelector())
	c.Mount()

	rec := c.Snap(31, valueobject.EditSource{})
	require.True(t, rec.Applied)
	assert.True(t, rec.Target.IsZero())
	assert.Equal(t, 36, rec.SliderValue)
	assert.Equal(t, "36 Months", rec.TextLabel)
}
