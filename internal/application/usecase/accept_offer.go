package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/domain/event"
	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/port"
	"github.com/bibbank/offer-engine/internal/domain/service"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// AcceptOfferUseCase freezes a session's selection and records the accepted
// offer with its repayment schedule.
type AcceptOfferUseCase struct {
	sessions  port.SessionRepository
	offers    port.AcceptedOfferRepository
	publisher port.EventPublisher
	metrics   port.Metrics
	calc      *service.EmiCalculator
	logger    *slog.Logger
}

// NewAcceptOfferUseCase wires dependencies.
func NewAcceptOfferUseCase(
	sessions port.SessionRepository,
	offers port.AcceptedOfferRepository,
	publisher port.EventPublisher,
	metrics port.Metrics,
	calc *service.EmiCalculator,
	logger *slog.Logger,
) *AcceptOfferUseCase {
	return &AcceptOfferUseCase{
		sessions:  sessions,
		offers:    offers,
		publisher: publisher,
		metrics:   metricsOrNoop(metrics),
		calc:      calc,
		logger:    logger,
	}
}

// Execute accepts the current selection. A session left ACCEPTED without an
// offer record by an earlier failed call has its record stored on retry.
func (uc *AcceptOfferUseCase) Execute(ctx context.Context, req dto.AcceptOfferRequest) (dto.AcceptOfferResponse, error) {
	now := time.Now().UTC()

	// 1. Load and transition the session.
	session, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.AcceptOfferResponse{}, fmt.Errorf("find session: %w", err)
	}
	if session.Status().Equal(valueobject.SessionStatusAccepted) {
		return uc.resume(ctx, session)
	}
	expected := session.Version()
	accepted, err := session.Accept(now)
	if err != nil {
		return dto.AcceptOfferResponse{}, fmt.Errorf("accept offer: %w", err)
	}

	// 2. Price the repayment schedule.
	offer, err := uc.record(accepted, now)
	if err != nil {
		return dto.AcceptOfferResponse{}, err
	}

	// 3. Persist the session first so a concurrent accept loses on version.
	if err := uc.sessions.Save(ctx, accepted, expected); err != nil {
		return dto.AcceptOfferResponse{}, fmt.Errorf("save session: %w", err)
	}
	if err := uc.offers.Save(ctx, offer); err != nil {
		return dto.AcceptOfferResponse{}, fmt.Errorf("save accepted offer: %w", err)
	}

	// 4. Publish domain events.
	publishCommitted(ctx, uc.publisher, uc.logger, accepted.ID(), accepted.DomainEvents()...)
	accepted = accepted.ClearEvents()
	uc.completed(accepted, offer, "offer accepted")
	return respondAccepted(accepted, offer), nil
}

// resume finishes an accept whose session was stored but whose offer record
// was not. A session that already has its record cannot be accepted again.
func (uc *AcceptOfferUseCase) resume(ctx context.Context, session model.OfferSession) (dto.AcceptOfferResponse, error) {
	_, err := uc.offers.FindBySessionID(ctx, session.ID())
	if err == nil {
		return dto.AcceptOfferResponse{}, fmt.Errorf("accept offer: %w: session %s is %s",
			valueobject.ErrInvalidStatusTransition, session.ID(), session.Status())
	}
	if !errors.Is(err, valueobject.ErrSessionNotFound) {
		return dto.AcceptOfferResponse{}, fmt.Errorf("find accepted offer: %w", err)
	}

	// The session was stamped when it was accepted.
	acceptedAt := session.UpdatedAt()
	offer, err := uc.record(session, acceptedAt)
	if err != nil {
		return dto.AcceptOfferResponse{}, err
	}
	if err := uc.offers.Save(ctx, offer); err != nil {
		return dto.AcceptOfferResponse{}, fmt.Errorf("save accepted offer: %w", err)
	}

	sel := offer.Selection
	publishCommitted(ctx, uc.publisher, uc.logger, session.ID(), event.NewOfferAccepted(
		session.ID(), session.ApplicationRef(), sel.TenureMonths,
		sel.Amount, sel.AnnualRatePercent, sel.ProcessingFee, sel.MonthlyInstallment, acceptedAt,
	))
	uc.completed(session, offer, "accepted offer recorded on retry")
	return respondAccepted(session, offer), nil
}

// record prices the schedule of an ACCEPTED session's selection.
func (uc *AcceptOfferUseCase) record(accepted model.OfferSession, at time.Time) (model.AcceptedOffer, error) {
	sel, ok := accepted.Selection()
	if !ok || !sel.HasTerms {
		return model.AcceptedOffer{}, fmt.Errorf("%w: session %s has no priced selection", valueobject.ErrNoOfferData, accepted.ID())
	}
	schedule, err := uc.calc.Schedule(sel.Amount, sel.AnnualRatePercent, sel.TenureMonths, at)
	if err != nil {
		return model.AcceptedOffer{}, fmt.Errorf("build schedule: %w", err)
	}
	totalInterest := uc.calc.TotalInterest(sel.Amount, sel.MonthlyInstallment, sel.TenureMonths)

	offer, err := model.NewAcceptedOffer(accepted, schedule, totalInterest, at)
	if err != nil {
		return model.AcceptedOffer{}, fmt.Errorf("record offer: %w", err)
	}
	return offer, nil
}

func (uc *AcceptOfferUseCase) completed(s model.OfferSession, offer model.AcceptedOffer, msg string) {
	uc.metrics.OfferAccepted(offer.Selection.TenureMonths)
	uc.logger.Info(msg,
		"session_id", s.ID(),
		"application_ref", s.ApplicationRef(),
		"tenure_months", offer.Selection.TenureMonths,
		"amount", offer.Selection.Amount.String(),
	)
}

func respondAccepted(s model.OfferSession, offer model.AcceptedOffer) dto.AcceptOfferResponse {
	return dto.AcceptOfferResponse{
		Session:       toSessionResponse(s),
		Schedule:      toScheduleResponse(offer.Schedule),
		TotalInterest: offer.TotalInterest,
	}
}
