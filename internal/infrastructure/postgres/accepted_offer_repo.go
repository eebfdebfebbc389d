// Package postgres records accepted offers in PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
	"github.com/bibbank/offer-engine/pkg/postgres"
)

const uniqueViolation = "23505"

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	postgres.Querier
	postgres.TxBeginner
}

// AcceptedOfferRepo implements port.AcceptedOfferRepository.
type AcceptedOfferRepo struct {
	db DB
}

// NewAcceptedOfferRepo creates a new PostgreSQL-backed accepted offer
// repository.
func NewAcceptedOfferRepo(db DB) *AcceptedOfferRepo {
	return &AcceptedOfferRepo{db: db}
}

// Save inserts the offer and its installments in one transaction. A session
// can be accepted only once.
func (r *AcceptedOfferRepo) Save(ctx context.Context, offer model.AcceptedOffer) error {
	return postgres.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		sel := offer.Selection
		_, err := tx.Exec(ctx, `
			INSERT INTO accepted_offers (
				session_id, application_ref, tenure_months, amount,
				annual_rate_percent, processing_fee, monthly_installment,
				total_interest, accepted_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			offer.SessionID, offer.ApplicationRef, sel.TenureMonths, sel.Amount,
			sel.AnnualRatePercent, sel.ProcessingFee, sel.MonthlyInstallment,
			offer.TotalInterest, offer.AcceptedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: session %s already accepted", valueobject.ErrInvalidStatusTransition, offer.SessionID)
			}
			return fmt.Errorf("insert accepted offer: %w", err)
		}

		if len(offer.Schedule) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, e := range offer.Schedule {
			batch.Queue(`
				INSERT INTO accepted_offer_installments (
					session_id, period, due_date, principal, interest, total, remaining_balance
				) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				offer.SessionID, e.Period, e.DueDate, e.Principal, e.Interest, e.Total, e.RemainingBalance,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert installments: %w", err)
		}
		return nil
	})
}

// FindBySessionID loads an accepted offer with its installments.
func (r *AcceptedOfferRepo) FindBySessionID(ctx context.Context, sessionID string) (model.AcceptedOffer, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return model.AcceptedOffer{}, fmt.Errorf("%w: no accepted offer for %s", valueobject.ErrSessionNotFound, sessionID)
	}

	var offer model.AcceptedOffer
	err := r.db.QueryRow(ctx, `
		SELECT session_id::text, application_ref, tenure_months, amount,
		       annual_rate_percent, processing_fee, monthly_installment,
		       total_interest, accepted_at
		FROM accepted_offers
		WHERE session_id = $1`, sessionID,
	).Scan(
		&offer.SessionID, &offer.ApplicationRef, &offer.Selection.TenureMonths, &offer.Selection.Amount,
		&offer.Selection.AnnualRatePercent, &offer.Selection.ProcessingFee, &offer.Selection.MonthlyInstallment,
		&offer.TotalInterest, &offer.AcceptedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AcceptedOffer{}, fmt.Errorf("%w: no accepted offer for %s", valueobject.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return model.AcceptedOffer{}, fmt.Errorf("find accepted offer: %w", err)
	}

	schedule, err := r.loadSchedule(ctx, sessionID)
	if err != nil {
		return model.AcceptedOffer{}, err
	}
	// Only priced selections can be accepted.
	offer.Selection.HasTerms = true
	offer.Schedule = schedule
	return offer, nil
}

func (r *AcceptedOfferRepo) loadSchedule(ctx context.Context, sessionID string) ([]model.AmortizationEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT period, due_date, principal, interest, total, remaining_balance
		FROM accepted_offer_installments
		WHERE session_id = $1
		ORDER BY period`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var schedule []model.AmortizationEntry
	for rows.Next() {
		var e model.AmortizationEntry
		if err := rows.Scan(&e.Period, &e.DueDate, &e.Principal, &e.Interest, &e.Total, &e.RemainingBalance); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		schedule = append(schedule, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate installments: %w", err)
	}
	return schedule, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
