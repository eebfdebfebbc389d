package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/port"
	"github.com/bibbank/offer-engine/internal/domain/service"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// OpenSessionUseCase builds an offer table from BRE payloads and opens a
// session with the slider mounted on the longest tenure.
type OpenSessionUseCase struct {
	sessions  port.SessionRepository
	publisher port.EventPublisher
	metrics   port.Metrics
	builder   *service.OfferTableBuilder
	selector  *service.TenureSelector
	logger    *slog.Logger
}

// NewOpenSessionUseCase wires dependencies.
func NewOpenSessionUseCase(
	sessions port.SessionRepository,
	publisher port.EventPublisher,
	metrics port.Metrics,
	builder *service.OfferTableBuilder,
	selector *service.TenureSelector,
	logger *slog.Logger,
) *OpenSessionUseCase {
	return &OpenSessionUseCase{
		sessions:  sessions,
		publisher: publisher,
		metrics:   metricsOrNoop(metrics),
		builder:   builder,
		selector:  selector,
		logger:    logger,
	}
}

// Execute opens the session. An empty table is not an error: the session is
// opened with NoOffer set.
func (uc *OpenSessionUseCase) Execute(ctx context.Context, req dto.OpenSessionRequest) (dto.SessionResponse, error) {
	now := time.Now().UTC()

	table, dropped, err := uc.buildTable(req)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	if len(dropped) > 0 {
		uc.logger.Warn("offer series disagree on tenures",
			"application_ref", req.ApplicationRef,
			"dropped_tenures", dropped,
		)
		uc.metrics.TenuresDropped(len(dropped))
	}

	session, err := model.NewOfferSession(req.ApplicationRef, table, now)
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("%w: create session: %v", valueobject.ErrInvalidArgument, err)
	}

	c := service.NewSliderSyncController(table, uc.selector)
	if rec := c.Mount(); rec.Applied {
		session, err = session.Reconcile(rec.State, rec.Phase, rec.Result, now)
		if err != nil {
			return dto.SessionResponse{}, fmt.Errorf("mount slider: %w", err)
		}
	}

	session, err = persist(ctx, uc.sessions, uc.publisher, uc.logger, session, 0)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	uc.metrics.SessionOpened(session.NoOffer())

	uc.logger.Info("offer session opened",
		"session_id", session.ID(),
		"application_ref", session.ApplicationRef(),
		"tenures", table.Len(),
	)

	resp := toSessionResponse(session)
	resp.DroppedTenures = dropped
	return resp, nil
}

func (uc *OpenSessionUseCase) buildTable(req dto.OpenSessionRequest) (model.OfferTable, []int, error) {
	amounts := toSeriesPoints(req.Amounts)
	rates := toSeriesPoints(req.Rates)
	fees := toSeriesPoints(req.Fees)

	if req.Multiplier == nil {
		return uc.builder.Build(amounts, rates, fees), uc.builder.Mismatches(amounts, rates, fees), nil
	}

	if req.MonthlyIncome.IsNegative() || req.MaxLoanAmount.IsNegative() {
		return model.OfferTable{}, nil, fmt.Errorf("%w: income and max loan amount must not be negative", valueobject.ErrInvalidArgument)
	}
	// Terms come as a pair; one series alone would drop every tenure.
	if (len(rates) == 0) != (len(fees) == 0) {
		return model.OfferTable{}, nil, fmt.Errorf("%w: multiplier terms need both rates and fees", valueobject.ErrInvalidArgument)
	}
	table := uc.builder.BuildFromMultiplier(model.MultiplierRow(req.Multiplier), req.MonthlyIncome, req.MaxLoanAmount)
	if len(rates) == 0 {
		return table, nil, nil
	}

	merged := uc.builder.MergeTerms(table, rates, fees)
	var dropped []int
	for _, tenure := range table.Tenures() {
		if _, ok := merged.Get(tenure); !ok {
			dropped = append(dropped, tenure)
		}
	}
	return merged, dropped, nil
}
