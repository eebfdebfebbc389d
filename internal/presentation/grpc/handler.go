package grpc

import (
	"context"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/application/usecase"
)

// OfferHandler is the gRPC handler for offer sessions.
type OfferHandler struct {
	UnimplementedOfferServiceServer

	openSession     *usecase.OpenSessionUseCase
	selectTenure    *usecase.SelectTenureUseCase
	reconcileSlider *usecase.ReconcileSliderUseCase
	getSession      *usecase.GetSessionUseCase
	acceptOffer     *usecase.AcceptOfferUseCase
	acceptedOffer   *usecase.GetAcceptedOfferUseCase
	quote           *usecase.QuoteInstallmentUseCase
}

// NewOfferHandler creates a new handler with all use-case dependencies.
func NewOfferHandler(
	openSession *usecase.OpenSessionUseCase,
	selectTenure *usecase.SelectTenureUseCase,
	reconcileSlider *usecase.ReconcileSliderUseCase,
	getSession *usecase.GetSessionUseCase,
	acceptOffer *usecase.AcceptOfferUseCase,
	acceptedOffer *usecase.GetAcceptedOfferUseCase,
	quote *usecase.QuoteInstallmentUseCase,
) *OfferHandler {
	return &OfferHandler{
		openSession:     openSession,
		selectTenure:    selectTenure,
		reconcileSlider: reconcileSlider,
		getSession:      getSession,
		acceptOffer:     acceptOffer,
		acceptedOffer:   acceptedOffer,
		quote:           quote,
	}
}

// OpenSession builds the offer table and opens a session for it.
func (h *OfferHandler) OpenSession(ctx context.Context, req *dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	resp, err := h.openSession.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// SelectTenure snaps a requested tenure onto the session's grid.
func (h *OfferHandler) SelectTenure(ctx context.Context, req *dto.SelectTenureRequest) (*dto.SessionResponse, error) {
	resp, err := h.selectTenure.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// ReconcileSlider applies one slider or text edit.
func (h *OfferHandler) ReconcileSlider(ctx context.Context, req *dto.ReconcileSliderRequest) (*dto.ReconcileSliderResponse, error) {
	resp, err := h.reconcileSlider.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func (h *OfferHandler) GetSession(ctx context.Context, req *dto.GetSessionRequest) (*dto.SessionResponse, error) {
	resp, err := h.getSession.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// AcceptOffer freezes the current selection.
func (h *OfferHandler) AcceptOffer(ctx context.Context, req *dto.AcceptOfferRequest) (*dto.AcceptOfferResponse, error) {
	resp, err := h.acceptOffer.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// GetAcceptedOffer returns the stored record of an accepted offer.
func (h *OfferHandler) GetAcceptedOffer(ctx context.Context, req *dto.GetAcceptedOfferRequest) (*dto.AcceptedOfferResponse, error) {
	resp, err := h.acceptedOffer.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func (h *OfferHandler) QuoteInstallment(ctx context.Context, req *dto.QuoteInstallmentRequest) (*dto.QuoteInstallmentResponse, error) {
	resp, err := h.quote.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}
