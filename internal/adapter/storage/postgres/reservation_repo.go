package postgres

import (
	"context"
	"fmt"

	"settlement-orchestrator/internal/core/domain"
)

// ReservationRepo implements ports.ReservationRepository over the
// reservations table (key PRIMARY KEY, status, reason, event_id,
// external_tx_id, failure_reason, created_at, updated_at).
type ReservationRepo struct {
	pool Pool
}

// NewReservationRepo creates a new ReservationRepo.
func NewReservationRepo(pool Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

// Reserve inserts a reserved record if none exists. The primary key makes the
// insert the single point of arbitration between concurrent callers.
func (r *ReservationRepo) Reserve(ctx context.Context, key string, rc domain.ReservationContext) (domain.ReserveStatus, error) {
	query := `INSERT INTO reservations (key, status, reason, event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (key) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query, key, domain.ReservationStatusReserved, rc.Reason, rc.EventID)
	if err != nil {
		return "", fmt.Errorf("insert reservation: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return domain.ReserveStatusReserved, nil
	}

	var status domain.ReservationStatus
	err = r.pool.QueryRow(ctx, `SELECT status FROM reservations WHERE key = $1`, key).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("read existing reservation: %w", err)
	}
	return domain.ReserveStatusFor(status), nil
}

// RecordOutcome moves a reserved record to its terminal status. It returns
// false without writing when the record is already terminal.
func (r *ReservationRepo) RecordOutcome(ctx context.Context, key string, outcome domain.ReservationOutcome) (bool, error) {
	query := `UPDATE reservations
		SET status = $2, external_tx_id = $3, failure_reason = $4, updated_at = NOW()
		WHERE key = $1 AND status = $5`

	tag, err := r.pool.Exec(ctx, query,
		key, outcome.Status(), nullable(outcome.ExternalTxID), nullable(outcome.FailureReason),
		domain.ReservationStatusReserved,
	)
	if err != nil {
		return false, fmt.Errorf("record reservation outcome: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
