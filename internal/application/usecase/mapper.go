package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/domain/event"
	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/port"
	"github.com/bibbank/offer-engine/internal/domain/service"
)

// persist saves s against expectedVersion and publishes its pending events.
// Once the save succeeds the change stands: a publish failure is logged and
// does not fail the call.
func persist(
	ctx context.Context,
	repo port.SessionRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
	s model.OfferSession,
	expectedVersion int,
) (model.OfferSession, error) {
	if err := repo.Save(ctx, s, expectedVersion); err != nil {
		return s, fmt.Errorf("save session: %w", err)
	}
	publishCommitted(ctx, publisher, logger, s.ID(), s.DomainEvents()...)
	return s.ClearEvents(), nil
}

// publishCommitted publishes events for state that is already stored.
// Delivery is at most once: a failed publish is logged and dropped.
func publishCommitted(
	ctx context.Context,
	publisher port.EventPublisher,
	logger *slog.Logger,
	sessionID string,
	events ...event.DomainEvent,
) {
	if len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("domain events dropped after commit",
			"session_id", sessionID,
			"events", len(events),
			"error", err,
		)
	}
}

func controllerFor(s model.OfferSession, selector *service.TenureSelector) *service.SliderSyncController {
	var prev *model.SelectionResult
	if sel, ok := s.Selection(); ok {
		prev = &sel
	}
	return service.RestoreSliderSyncController(s.Table(), selector, s.Slider(), s.Phase(), prev)
}

func toSessionResponse(s model.OfferSession) dto.SessionResponse {
	entries := s.Table().Entries()
	offers := make([]dto.OfferEntryResponse, 0, len(entries))
	for _, e := range entries {
		offers = append(offers, dto.OfferEntryResponse{
			TenureMonths:      e.TenureMonths,
			Amount:            e.Amount,
			AnnualRatePercent: e.AnnualRatePercent,
			ProcessingFee:     e.ProcessingFee.String(),
			HasTerms:          e.HasTerms,
		})
	}

	slider := s.Slider()
	resp := dto.SessionResponse{
		ID:             s.ID(),
		ApplicationRef: s.ApplicationRef(),
		Status:         s.Status().String(),
		Phase:          s.Phase().String(),
		Version:        s.Version(),
		NoOffer:        s.NoOffer(),
		Offers:         offers,
		Slider: dto.SliderStateResponse{
			AvailableTenures: slider.AvailableTenures,
			MinTenure:        slider.MinTenure,
			MaxTenure:        slider.MaxTenure,
			CurrentTenure:    slider.CurrentTenure,
		},
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
	if !slider.IsEmpty() {
		resp.Slider.Label = service.TenureLabel(slider.CurrentTenure)
	}
	if sel, ok := s.Selection(); ok {
		r := toSelectionResponse(sel)
		resp.Selection = &r
	}
	return resp
}

func toSelectionResponse(sel model.SelectionResult) dto.SelectionResponse {
	return dto.SelectionResponse{
		TenureMonths:       sel.TenureMonths,
		Amount:             sel.Amount,
		AnnualRatePercent:  sel.AnnualRatePercent,
		ProcessingFee:      sel.ProcessingFee,
		MonthlyInstallment: sel.MonthlyInstallment,
		HasTerms:           sel.HasTerms,
	}
}

func toAcceptedOfferResponse(o model.AcceptedOffer) dto.AcceptedOfferResponse {
	return dto.AcceptedOfferResponse{
		SessionID:      o.SessionID,
		ApplicationRef: o.ApplicationRef,
		Selection:      toSelectionResponse(o.Selection),
		TotalInterest:  o.TotalInterest,
		Schedule:       toScheduleResponse(o.Schedule),
		AcceptedAt:     o.AcceptedAt,
	}
}

func toScheduleResponse(schedule []model.AmortizationEntry) []dto.AmortizationEntryResponse {
	out := make([]dto.AmortizationEntryResponse, 0, len(schedule))
	for _, e := range schedule {
		out = append(out, dto.AmortizationEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return out
}

func toSeriesPoints(in []dto.SeriesPoint) []model.SeriesPoint {
	out := make([]model.SeriesPoint, len(in))
	for i, p := range in {
		out[i] = model.SeriesPoint{Tenure: p.Tenure, Value: p.Value}
	}
	return out
}

type noopMetrics struct{}

func (noopMetrics) SessionOpened(bool)     {}
func (noopMetrics) TenuresDropped(int)     {}
func (noopMetrics) Reconciled(string, bool) {}
func (noopMetrics) OfferAccepted(int)      {}

func metricsOrNoop(m port.Metrics) port.Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
