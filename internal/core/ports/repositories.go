package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"settlement-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ReservationRepository persists reservation records.
// Reserve must be a single atomic insert-if-absent; RecordOutcome must never
// overwrite a terminal record.
type ReservationRepository interface {
	Reserve(ctx context.Context, key string, rc domain.ReservationContext) (domain.ReserveStatus, error)
	// RecordOutcome returns false when the record was already terminal (no-op).
	RecordOutcome(ctx context.Context, key string, outcome domain.ReservationOutcome) (bool, error)
}

// ConversionSliceRepository reads open slices and claims quantities from them.
type ConversionSliceRepository interface {
	ListOpen(ctx context.Context) ([]domain.ConversionSlice, error)
	// DecrementRemaining returns false when another worker already claimed the quantity.
	DecrementRemaining(ctx context.Context, tx pgx.Tx, source, target string, qty decimal.Decimal) (bool, error)
}

// OrphanRefundRepository is the reservation ledger of refunds for unmatched payments.
type OrphanRefundRepository interface {
	Reserve(ctx context.Context, refund *domain.OrphanRefund) (domain.ReserveStatus, error)
	RecordOutcome(ctx context.Context, paymentID string, outcome domain.ReservationOutcome) (bool, error)
}

// UnmatchedPaymentSource lists ledger payments without a correlation id
// that have no orphan refund yet.
type UnmatchedPaymentSource interface {
	ListUnmatched(ctx context.Context, limit int) ([]domain.UnmatchedPayment, error)
}

// DBTransactor runs fn inside a serializable transaction. fn's error rolls
// the transaction back and is returned unchanged.
type DBTransactor interface {
	WithSerializable(ctx context.Context, fn func(tx pgx.Tx) error) error
}
