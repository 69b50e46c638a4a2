package postgres

import (
	"context"
	"fmt"

	"settlement-orchestrator/internal/core/domain"
)

// OrphanRefundRepo implements ports.OrphanRefundRepository over the
// orphan_refunds table keyed by the raw ledger payment id.
type OrphanRefundRepo struct {
	pool Pool
}

// NewOrphanRefundRepo creates a new OrphanRefundRepo.
func NewOrphanRefundRepo(pool Pool) *OrphanRefundRepo {
	return &OrphanRefundRepo{pool: pool}
}

// Reserve inserts a pending refund if the payment has none yet.
func (r *OrphanRefundRepo) Reserve(ctx context.Context, refund *domain.OrphanRefund) (domain.ReserveStatus, error) {
	query := `INSERT INTO orphan_refunds (payment_id, chain, address, amount, asset, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, NOW(), NOW())
		ON CONFLICT (payment_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		refund.PaymentID, refund.Chain, refund.Address, refund.Amount.String(), refund.Asset,
		domain.OrphanRefundPending,
	)
	if err != nil {
		return "", fmt.Errorf("insert orphan refund: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return domain.ReserveStatusReserved, nil
	}

	var status domain.OrphanRefundStatus
	err = r.pool.QueryRow(ctx, `SELECT status FROM orphan_refunds WHERE payment_id = $1`, refund.PaymentID).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("read existing orphan refund: %w", err)
	}
	return status.ReserveStatus(), nil
}

// RecordOutcome finalizes a pending refund. It returns false when the refund
// was already terminal.
func (r *OrphanRefundRepo) RecordOutcome(ctx context.Context, paymentID string, outcome domain.ReservationOutcome) (bool, error) {
	query := `UPDATE orphan_refunds
		SET status = $2, external_tx_id = $3, last_error = $4, updated_at = NOW()
		WHERE payment_id = $1 AND status = $5`

	tag, err := r.pool.Exec(ctx, query,
		paymentID, domain.OrphanStatusFor(outcome), nullable(outcome.ExternalTxID), nullable(outcome.FailureReason),
		domain.OrphanRefundPending,
	)
	if err != nil {
		return false, fmt.Errorf("record orphan refund outcome: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
