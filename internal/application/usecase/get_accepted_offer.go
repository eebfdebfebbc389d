package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/domain/port"
)

// GetAcceptedOfferUseCase retrieves the stored record of an accepted offer.
type GetAcceptedOfferUseCase struct {
	offers port.AcceptedOfferRepository
}

// NewGetAcceptedOfferUseCase wires dependencies.
func NewGetAcceptedOfferUseCase(offers port.AcceptedOfferRepository) *GetAcceptedOfferUseCase {
	return &GetAcceptedOfferUseCase{offers: offers}
}

// Execute returns the accepted offer of a session. A session that was never
// accepted is reported as not found.
func (uc *GetAcceptedOfferUseCase) Execute(ctx context.Context, req dto.GetAcceptedOfferRequest) (dto.AcceptedOfferResponse, error) {
	offer, err := uc.offers.FindBySessionID(ctx, req.SessionID)
	if err != nil {
		return dto.AcceptedOfferResponse{}, fmt.Errorf("find accepted offer: %w", err)
	}
	return toAcceptedOfferResponse(offer), nil
}
