package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/application/usecase"
	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

func TestReconcileSlider_Execute(t *testing.T) {
	t.Run("text edit targets the slider", func(t *testing.T) {
		repo := newMockSessionRepository()
		opened := openExampleSession(t, repo)
		m := &mockMetrics{}

		resp, err := usecase.NewReconcileSliderUseCase(repo, &mockEventPublisher{}, m, newSelector(), discardLogger()).Execute(context.Background(), dto.ReconcileSliderRequest{
			SessionID: opened.ID,
			RawValue:  "14 months",
			Source:    "text",
		})
		require.NoError(t, err)
		assert.True(t, resp.Applied)
		assert.Equal(t, "slider", resp.Target)
		assert.Equal(t, 12, resp.SliderValue)
		assert.Equal(t, "12 Months", resp.TextLabel)
		assert.Equal(t, 12, resp.Session.Slider.CurrentTenure)
		assert.Equal(t, 1, m.reconciled["text/true"])
	})

	t.Run("slider edit targets the text input", func(t *testing.T) {
		repo := newMockSessionRepository()
		opened := openExampleSession(t, repo)

		resp, err := usecase.NewReconcileSliderUseCase(repo, &mockEventPublisher{}, nil, newSelector(), discardLogger()).Execute(context.Background(), dto.ReconcileSliderRequest{
			SessionID: opened.ID,
			RawValue:  "19.2",
			Source:    "slider",
		})
		require.NoError(t, err)
		assert.Equal(t, "text", resp.Target)
		assert.Equal(t, "24 Months", resp.TextLabel)
	})

	t.Run("unparsable edit is not applied", func(t *testing.T) {
		repo := newMockSessionRepository()
		opened := openExampleSession(t, repo)
		saves := repo.saves
		m := &mockMetrics{}

		resp, err := usecase.NewReconcileSliderUseCase(repo, &mockEventPublisher{}, m, newSelector(), discardLogger()).Execute(context.Background(), dto.ReconcileSliderRequest{
			SessionID: opened.ID,
			RawValue:  "abc",
			Source:    "slider",
		})
		require.NoError(t, err)
		assert.False(t, resp.Applied)
		assert.Empty(t, resp.Target)
		assert.Equal(t, 24, resp.Session.Selection.TenureMonths)
		assert.Equal(t, saves, repo.saves)
		assert.Equal(t, 1, m.reconciled["slider/false"])
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := usecase.NewReconcileSliderUseCase(newMockSessionRepository(), &mockEventPublisher{}, nil, newSelector(), discardLogger()).
			Execute(context.Background(), dto.ReconcileSliderRequest{SessionID: "x", Source: "knob"})
		assert.ErrorIs(t, err, valueobject.ErrInvalidArgument)
	})

	t.Run("concurrent edit loses on version", func(t *testing.T) {
		repo := newMockSessionRepository()
		opened := openExampleSession(t, repo)

		stale, err := repo.FindByID(context.Background(), opened.ID)
		require.NoError(t, err)

		uc := usecase.NewReconcileSliderUseCase(repo, &mockEventPublisher{}, nil, newSelector(), discardLogger())
		_, err = uc.Execute(context.Background(), dto.ReconcileSliderRequest{SessionID: opened.ID, RawValue: "12", Source: "slider"})
		require.NoError(t, err)

		repo.findByIDFunc = func(context.Context, string) (model.OfferSession, error) { return stale, nil }
		_, err = uc.Execute(context.Background(), dto.ReconcileSliderRequest{SessionID: opened.ID, RawValue: "12", Source: "slider"})
		assert.ErrorIs(t, err, valueobject.ErrVersionConflict)
	})
}
