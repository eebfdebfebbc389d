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

// SelectTenureUseCase moves a session to the offer nearest a requested
// tenure.
type SelectTenureUseCase struct {
	sessions  port.SessionRepository
	publisher port.EventPublisher
	selector  *service.TenureSelector
	logger    *slog.Logger
}

// NewSelectTenureUseCase wires dependencies.
func NewSelectTenureUseCase(
	sessions port.SessionRepository,
	publisher port.EventPublisher,
	selector *service.TenureSelector,
	logger *slog.Logger,
) *SelectTenureUseCase {
	return &SelectTenureUseCase{
		sessions:  sessions,
		publisher: publisher,
		selector:  selector,
		logger:    logger,
	}
}

// Execute snaps the request onto the tenure grid. A session without offers
// is returned unchanged.
func (uc *SelectTenureUseCase) Execute(ctx context.Context, req dto.SelectTenureRequest) (dto.SessionResponse, error) {
	session, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("find session: %w", err)
	}
	if session.Status().IsTerminal() {
		return dto.SessionResponse{}, fmt.Errorf("%w: session %s is %s", valueobject.ErrInvalidStatusTransition, session.ID(), session.Status())
	}

	rec := controllerFor(session, uc.selector).Snap(req.RequestedTenure, valueobject.EditSource{})
	if !rec.Applied {
		return toSessionResponse(session), nil
	}

	expected := session.Version()
	session, err = session.Reconcile(rec.State, rec.Phase, rec.Result, time.Now().UTC())
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("apply selection: %w", err)
	}
	session, err = persist(ctx, uc.sessions, uc.publisher, uc.logger, session, expected)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	return toSessionResponse(session), nil
}
