package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/offer-engine/internal/application/dto"
	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/service"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// QuoteInstallmentUseCase prices an offer without a session.
type QuoteInstallmentUseCase struct {
	calc *service.EmiCalculator
}

// NewQuoteInstallmentUseCase wires dependencies.
func NewQuoteInstallmentUseCase(calc *service.EmiCalculator) *QuoteInstallmentUseCase {
	return &QuoteInstallmentUseCase{calc: calc}
}

// Execute computes installment, fee and totals, plus the schedule on request.
func (uc *QuoteInstallmentUseCase) Execute(
	_ context.Context,
	req dto.QuoteInstallmentRequest,
) (dto.QuoteInstallmentResponse, error) {
	fee := model.FlatFee(decimal.Zero)
	if req.Fee != nil {
		parsed, err := model.ParseFee(req.Fee)
		if err != nil {
			return dto.QuoteInstallmentResponse{}, fmt.Errorf("%w: %v", valueobject.ErrInvalidArgument, err)
		}
		fee = parsed
	}

	installment, err := uc.calc.MonthlyInstallment(req.Principal, req.AnnualRatePercent, req.TenureMonths)
	if err != nil {
		return dto.QuoteInstallmentResponse{}, fmt.Errorf("monthly installment: %w", err)
	}
	feeAmount, err := uc.calc.ProcessingFee(req.Principal, fee)
	if err != nil {
		return dto.QuoteInstallmentResponse{}, fmt.Errorf("processing fee: %w", err)
	}

	resp := dto.QuoteInstallmentResponse{
		MonthlyInstallment: installment,
		ProcessingFee:      feeAmount,
		TotalInterest:      uc.calc.TotalInterest(req.Principal, installment, req.TenureMonths),
		TotalPayable:       installment.Mul(decimal.NewFromInt(int64(req.TenureMonths))),
	}

	if req.IncludeSchedule {
		start := req.StartDate
		if start.IsZero() {
			start = time.Now().UTC()
		}
		schedule, err := uc.calc.Schedule(req.Principal, req.AnnualRatePercent, req.TenureMonths, start)
		if err != nil {
			return dto.QuoteInstallmentResponse{}, fmt.Errorf("schedule: %w", err)
		}
		resp.Schedule = toScheduleResponse(schedule)
	}
	return resp, nil
}
