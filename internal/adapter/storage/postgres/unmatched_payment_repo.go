package postgres

import (
	"context"
	"fmt"

	"settlement-orchestrator/internal/core/domain"

	"github.com/shopspring/decimal"
)

// UnmatchedPaymentRepo implements ports.UnmatchedPaymentSource. It reads the
// ledger_payments table written by the chain indexers.
type UnmatchedPaymentRepo struct {
	pool Pool
}

// NewUnmatchedPaymentRepo creates a new UnmatchedPaymentRepo.
func NewUnmatchedPaymentRepo(pool Pool) *UnmatchedPaymentRepo {
	return &UnmatchedPaymentRepo{pool: pool}
}

// ListUnmatched returns the oldest payments lacking a correlation id and an orphan refund.
func (r *UnmatchedPaymentRepo) ListUnmatched(ctx context.Context, limit int) ([]domain.UnmatchedPayment, error) {
	query := `SELECT p.payment_id, p.chain, p.from_address, p.amount::text, p.asset, p.observed_at
		FROM ledger_payments p
		WHERE p.correlation_id IS NULL
			AND NOT EXISTS (SELECT 1 FROM orphan_refunds o WHERE o.payment_id = p.payment_id)
		ORDER BY p.observed_at
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unmatched payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.UnmatchedPayment
	for rows.Next() {
		var (
			p      domain.UnmatchedPayment
			amount string
		)
		if err := rows.Scan(&p.PaymentID, &p.Chain, &p.From, &amount, &p.Asset, &p.ObservedAt); err != nil {
			return nil, fmt.Errorf("scan unmatched payment row: %w", err)
		}
		p.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount of payment %s: %w", p.PaymentID, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unmatched payment rows: %w", err)
	}
	return payments, nil
}
