package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/domain/port"
	"github.com/bibbank/offer-engine/internal/domain/service"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// ReconcileSliderUseCase applies one slider or text edit to a session.
type ReconcileSliderUseCase struct {
	sessions  port.SessionRepository
	publisher port.EventPublisher
	metrics   port.Metrics
	selector  *service.TenureSelector
	logger    *slog.Logger
}

// NewReconcileSliderUseCase wires dependencies.
func NewReconcileSliderUseCase(
	sessions port.SessionRepository,
	publisher port.EventPublisher,
	metrics port.Metrics,
	selector *service.TenureSelector,
	logger *slog.Logger,
) *ReconcileSliderUseCase {
	return &ReconcileSliderUseCase{
		sessions:  sessions,
		publisher: publisher,
		metrics:   metricsOrNoop(metrics),
		selector:  selector,
		logger:    logger,
	}
}

// Execute reconciles the edit. Edits that cannot be applied leave the
// session untouched and report Applied=false.
func (uc *ReconcileSliderUseCase) Execute(
	ctx context.Context,
	req dto.ReconcileSliderRequest,
) (dto.ReconcileSliderResponse, error) {
	source, err := valueobject.NewEditSource(req.Source)
	if err != nil {
		return dto.ReconcileSliderResponse{}, err
	}

	session, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.ReconcileSliderResponse{}, fmt.Errorf("find session: %w", err)
	}
	if session.Status().IsTerminal() {
		return dto.ReconcileSliderResponse{}, fmt.Errorf("%w: session %s is %s", valueobject.ErrInvalidStatusTransition, session.ID(), session.Status())
	}

	rec := controllerFor(session, uc.selector).Reconcile(req.RawValue, source)
	uc.metrics.Reconciled(source.String(), rec.Applied)
	if !rec.Applied {
		return dto.ReconcileSliderResponse{Session: toSessionResponse(session)}, nil
	}

	expected := session.Version()
	session, err = session.Reconcile(rec.State, rec.Phase, rec.Result, time.Now().UTC())
	if err != nil {
		return dto.ReconcileSliderResponse{}, fmt.Errorf("apply edit: %w", err)
	}
	session, err = persist(ctx, uc.sessions, uc.publisher, uc.logger, session, expected)
	if err != nil {
		return dto.ReconcileSliderResponse{}, err
	}

	return dto.ReconcileSliderResponse{
		Session:     toSessionResponse(session),
		Applied:     true,
		Target:      rec.Target.String(),
		SliderValue: rec.SliderValue,
		TextLabel:   rec.TextLabel,
	}, nil
}
