package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"settlement-orchestrator/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ReservationCache holds terminal reservation statuses. Terminal records are
// immutable so a cached status never goes stale.
type ReservationCache interface {
	Get(ctx context.Context, key string) (domain.ReservationStatus, bool, error)
	Set(ctx context.Context, key string, status domain.ReservationStatus) error
}

// Locker serializes critical sections on a resource key across processes.
// fn's context is cancelled if the lock is lost, and its error is then
// reported as LCK_002; otherwise fn's error is returned unchanged.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

// Wallet is the capability set of one chain variant.
type Wallet interface {
	Chain() domain.Chain
	GetAddressFromTransaction(ctx context.Context, transactionID string) (string, error)
	// Send never returns an error; failures are classified in the result.
	Send(ctx context.Context, req domain.WalletSendRequest) domain.WalletSendResult
}

// WalletRegistry selects a wallet variant by chain identifier.
type WalletRegistry interface {
	Wallet(chain domain.Chain) (Wallet, error)
}

// Exchange is the subset of the exchange API used for conversions.
type Exchange interface {
	GetBalances(ctx context.Context) (domain.BalanceSnapshot, error)
	PlaceMarketOrder(ctx context.Context, symbol string, side domain.OrderSide, qty decimal.Decimal) (*domain.OrderResult, error)
	GetBookTicker(ctx context.Context, symbol string) (*domain.BookTicker, error)
}

// Publisher sends fire-and-forget messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, v any) error
}

// ReservationLedger is the at-most-once execution guard.
type ReservationLedger interface {
	Reserve(ctx context.Context, key string, rc domain.ReservationContext) (domain.ReserveStatus, error)
	RecordOutcome(ctx context.Context, key string, outcome domain.ReservationOutcome) error
}

// ConversionReconciler claims and converts available exchange balances.
type ConversionReconciler interface {
	Reconcile(ctx context.Context) (*domain.ReconcileReport, error)
}

// RefundCoordinator returns value to senders at most once per (transaction, reason).
type RefundCoordinator interface {
	RefundByTransaction(ctx context.Context, req domain.RefundRequest) (*domain.RefundResult, error)
	RefundToAddress(ctx context.Context, req domain.RefundRequest) (*domain.RefundResult, error)
}

// OrphanRefunder refunds unmatched payments from the live stream and the batch sweep.
type OrphanRefunder interface {
	Refund(ctx context.Context, payment domain.UnmatchedPayment) (*domain.RefundResult, error)
	Sweep(ctx context.Context) (int, error)
}
