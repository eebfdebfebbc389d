package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/domain/port"
)

// GetSessionUseCase retrieves an offer session.
type GetSessionUseCase struct {
	sessions port.SessionRepository
}

// NewGetSessionUseCase wires dependencies.
func NewGetSessionUseCase(sessions port.SessionRepository) *GetSessionUseCase {
	return &GetSessionUseCase{sessions: sessions}
}

// Execute returns the session state.
func (uc *GetSessionUseCase) Execute(ctx context.Context, req dto.GetSessionRequest) (dto.SessionResponse, error) {
	session, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("find session: %w", err)
	}
	return toSessionResponse(session), nil
}
