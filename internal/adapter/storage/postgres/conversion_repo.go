package postgres

import (
	"context"
	"fmt"

	"settlement-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ConversionSliceRepo implements ports.ConversionSliceRepository over the
// conversion_slices table, keyed by (source_currency, target_currency).
// Rows are provisioned elsewhere; this repo never inserts or deletes.
type ConversionSliceRepo struct {
	pool Pool
}

// NewConversionSliceRepo creates a new ConversionSliceRepo.
func NewConversionSliceRepo(pool Pool) *ConversionSliceRepo {
	return &ConversionSliceRepo{pool: pool}
}

// ListOpen returns slices with a positive remaining amount.
func (r *ConversionSliceRepo) ListOpen(ctx context.Context) ([]domain.ConversionSlice, error) {
	query := `SELECT source_currency, target_currency, remaining::text, symbol, side, updated_at
		FROM conversion_slices
		WHERE remaining > 0
		ORDER BY source_currency, target_currency`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list conversion slices: %w", err)
	}
	defer rows.Close()

	var slices []domain.ConversionSlice
	for rows.Next() {
		var (
			s         domain.ConversionSlice
			remaining string
		)
		if err := rows.Scan(&s.SourceCurrency, &s.TargetCurrency, &remaining, &s.Symbol, &s.Side, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversion slice row: %w", err)
		}
		s.Remaining, err = decimal.NewFromString(remaining)
		if err != nil {
			return nil, fmt.Errorf("parse remaining of %s: %w", s.Pair(), err)
		}
		slices = append(slices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversion slice rows: %w", err)
	}
	return slices, nil
}

// DecrementRemaining claims qty from a slice inside tx. It reports false when
// the remaining amount is already below qty, meaning another worker claimed it.
func (r *ConversionSliceRepo) DecrementRemaining(ctx context.Context, tx pgx.Tx, source, target string, qty decimal.Decimal) (bool, error) {
	query := `UPDATE conversion_slices
		SET remaining = remaining - $3::numeric, updated_at = NOW()
		WHERE source_currency = $1 AND target_currency = $2 AND remaining >= $3::numeric`

	tag, err := tx.Exec(ctx, query, source, target, qty.String())
	if err != nil {
		return false, fmt.Errorf("decrement conversion slice: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
