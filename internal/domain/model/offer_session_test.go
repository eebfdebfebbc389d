package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/offer-engine/internal/domain/event"
	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) model.OfferSession {
	t.Helper()
	table, err := model.NewOfferTable([]model.OfferEntry{entry(12, 120000), entry(24, 240000)})
	require.NoError(t, err)
	s, err := model.NewOfferSession("journey-1", table, testNow)
	require.NoError(t, err)
	return s
}

func selection(tenure int) *model.SelectionResult {
	return &model.SelectionResult{
		TenureMonths:       tenure,
		Amount:             decimal.NewFromInt(int64(tenure) * 10000),
		AnnualRatePercent:  decimal.NewFromInt(11),
		ProcessingFee:      decimal.NewFromInt(2000),
		MonthlyInstallment: decimal.NewFromInt(11186),
		HasTerms:           true,
	}
}

func TestNewOfferSession(t *testing.T) {
	t.Run("opens with slider on the longest tenure", func(t *testing.T) {
		s := newTestSession(t)

		assert.NotEmpty(t, s.ID())
		assert.Equal(t, "journey-1", s.ApplicationRef())
		assert.True(t, s.Status().Equal(valueobject.SessionStatusOpen))
		assert.True(t, s.Phase().Equal(valueobject.SliderPhaseIdle))
		assert.Equal(t, 1, s.Version())
		assert.Equal(t, 24, s.Slider().CurrentTenure)
		assert.False(t, s.NoOffer())
		_, ok := s.Selection()
		assert.False(t, ok)
	})

	t.Run("emits OfferSessionOpened", func(t *testing.T) {
		s := newTestSession(t)
		events := s.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, event.TypeOfferSessionOpened, events[0].EventType())
		assert.Equal(t, s.ID(), events[0].AggregateID())
		assert.Equal(t, "OfferSession", events[0].AggregateType())

		opened, ok := events[0].(event.OfferSessionOpened)
		require.True(t, ok)
		assert.Equal(t, []int{12, 24}, opened.Tenures)
		assert.False(t, opened.NoOffer)
	})

	t.Run("empty table opens a no-offer session", func(t *testing.T) {
		s, err := model.NewOfferSession("journey-2", model.OfferTable{}, testNow)
		require.NoError(t, err)
		assert.True(t, s.NoOffer())
		assert.True(t, s.Slider().IsEmpty())
	})

	t.Run("rejects empty application ref", func(t *testing.T) {
		_, err := model.NewOfferSession("", model.OfferTable{}, testNow)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "application reference")
	})
}

func TestOfferSession_Reconcile(t *testing.T) {
	t.Run("records selection and bumps version", func(t *testing.T) {
		s := newTestSession(t).ClearEvents()
		slider, err := s.Slider().WithCurrent(24)
		require.NoError(t, err)

		next, err := s.Reconcile(slider, valueobject.SliderPhaseReconciled, selection(24), testNow.Add(time.Second))
		require.NoError(t, err)

		assert.Equal(t, 2, next.Version())
		sel, ok := next.Selection()
		require.True(t, ok)
		assert.Equal(t, 24, sel.TenureMonths)
		require.Len(t, next.DomainEvents(), 1)
		assert.Equal(t, event.TypeTenureSelected, next.DomainEvents()[0].EventType())

		// original untouched
		assert.Equal(t, 1, s.Version())
		_, ok = s.Selection()
		assert.False(t, ok)
	})

	t.Run("same tenure raises no event", func(t *testing.T) {
		s := newTestSession(t).ClearEvents()
		s, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(24), testNow)
		require.NoError(t, err)
		s = s.ClearEvents()

		next, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(24), testNow)
		require.NoError(t, err)
		assert.Empty(t, next.DomainEvents())
	})

	t.Run("nil result keeps previous selection", func(t *testing.T) {
		s := newTestSession(t)
		s, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(12), testNow)
		require.NoError(t, err)

		next, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseUserDragging, nil, testNow)
		require.NoError(t, err)
		sel, ok := next.Selection()
		require.True(t, ok)
		assert.Equal(t, 12, sel.TenureMonths)
	})

	t.Run("rejects accepted session", func(t *testing.T) {
		s := newTestSession(t)
		s, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(24), testNow)
		require.NoError(t, err)
		s, err = s.Accept(testNow)
		require.NoError(t, err)

		_, err = s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(12), testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestOfferSession_Accept(t *testing.T) {
	t.Run("OPEN to ACCEPTED", func(t *testing.T) {
		s := newTestSession(t)
		s, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(24), testNow)
		require.NoError(t, err)
		s = s.ClearEvents()

		accepted, err := s.Accept(testNow)
		require.NoError(t, err)
		assert.True(t, accepted.Status().Equal(valueobject.SessionStatusAccepted))
		assert.Equal(t, 3, accepted.Version())
		require.Len(t, accepted.DomainEvents(), 1)

		ev, ok := accepted.DomainEvents()[0].(event.OfferAccepted)
		require.True(t, ok)
		assert.Equal(t, 24, ev.TenureMonths)
		assert.True(t, ev.MonthlyInstallment.Equal(decimal.NewFromInt(11186)))
	})

	t.Run("without selection", func(t *testing.T) {
		_, err := newTestSession(t).Accept(testNow)
		assert.ErrorIs(t, err, valueobject.ErrNoOfferData)
	})

	t.Run("selection without terms", func(t *testing.T) {
		s := newTestSession(t)
		bare := &model.SelectionResult{TenureMonths: 24, Amount: decimal.NewFromInt(137000)}
		s, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, bare, testNow)
		require.NoError(t, err)

		_, err = s.Accept(testNow)
		assert.ErrorIs(t, err, valueobject.ErrNoOfferData)
	})

	t.Run("twice", func(t *testing.T) {
		s := newTestSession(t)
		s, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(24), testNow)
		require.NoError(t, err)
		s, err = s.Accept(testNow)
		require.NoError(t, err)
		_, err = s.Accept(testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestOfferSession_SnapshotRoundTrip(t *testing.T) {
	s := newTestSession(t)
	s, err := s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(24), testNow)
	require.NoError(t, err)

	data, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var snap model.OfferSessionSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	restored, err := model.RestoreOfferSession(snap)
	require.NoError(t, err)

	assert.Equal(t, s.ID(), restored.ID())
	assert.Equal(t, s.Version(), restored.Version())
	assert.Equal(t, s.Table().Tenures(), restored.Table().Tenures())
	assert.Equal(t, s.Slider(), restored.Slider())
	assert.True(t, restored.Phase().Equal(valueobject.SliderPhaseReconciled))
	assert.Empty(t, restored.DomainEvents())

	e, ok := restored.Table().Get(12)
	require.True(t, ok)
	assert.True(t, e.ProcessingFee.Equal(model.FlatFee(decimal.NewFromInt(2000))))

	sel, ok := restored.Selection()
	require.True(t, ok)
	assert.True(t, sel.MonthlyInstallment.Equal(decimal.NewFromInt(11186)))
}

func TestNewAcceptedOffer(t *testing.T) {
	s := newTestSession(t)
	_, err := model.NewAcceptedOffer(s, nil, decimal.Zero, testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

	s, err = s.Reconcile(s.Slider(), valueobject.SliderPhaseReconciled, selection(24), testNow)
	require.NoError(t, err)
	s, err = s.Accept(testNow)
	require.NoError(t, err)

	offer, err := model.NewAcceptedOffer(s, []model.AmortizationEntry{{Period: 1}}, decimal.NewFromInt(28464), testNow)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), offer.SessionID)
	assert.Equal(t, 24, offer.Selection.TenureMonths)
	assert.Len(t, offer.Schedule, 1)
}
