package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSide is the exchange side of a conversion order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// ConversionSlice is an amount still owed for converting SourceCurrency into
// TargetCurrency. Remaining only decreases, through a conditional decrement.
type ConversionSlice struct {
	SourceCurrency string          `json:"source_currency"`
	TargetCurrency string          `json:"target_currency"`
	Remaining      decimal.Decimal `json:"remaining"`
	Symbol         string          `json:"symbol"`
	Side           OrderSide       `json:"side"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Pair returns "SOURCE->TARGET" for logging.
func (s ConversionSlice) Pair() string {
	return s.SourceCurrency + "->" + s.TargetCurrency
}

// BalanceSnapshot maps currency to free exchange balance.
type BalanceSnapshot map[string]decimal.Decimal

// Available returns the free balance of currency, zero when absent.
func (b BalanceSnapshot) Available(currency string) decimal.Decimal {
	if v, ok := b[currency]; ok {
		return v
	}
	return decimal.Zero
}

// ClaimQuantity is floor(min(available, remaining)). Fractional remainders stay
// pending for the next poll.
func ClaimQuantity(available, remaining decimal.Decimal) decimal.Decimal {
	return decimal.Min(available, remaining).Floor()
}

// OrderResult is an accepted exchange order.
type OrderResult struct {
	OrderID       int64           `json:"order_id"`
	ClientOrderID string          `json:"client_order_id"`
	Symbol        string          `json:"symbol"`
	Side          OrderSide       `json:"side"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        string          `json:"status"`
}

// BookTicker is the best bid/ask for a symbol.
type BookTicker struct {
	Symbol   string          `json:"symbol"`
	BidPrice decimal.Decimal `json:"bid_price"`
	AskPrice decimal.Decimal `json:"ask_price"`
}

// SliceOutcome is what happened to one slice during a reconcile pass.
type SliceOutcome string

const (
	SliceOutcomePlaced    SliceOutcome = "placed"
	SliceOutcomeSkipped   SliceOutcome = "skipped"
	SliceOutcomeContended SliceOutcome = "contended"
	SliceOutcomeFailed    SliceOutcome = "failed"
)

// ReconcileReport summarizes one reconcile invocation.
type ReconcileReport struct {
	Placed    int           `json:"placed"`
	Skipped   int           `json:"skipped"`
	Contended int           `json:"contended"`
	Failed    int           `json:"failed"`
	Orders    []OrderResult `json:"orders,omitempty"`
}

// Add records one slice outcome.
func (r *ReconcileReport) Add(outcome SliceOutcome) {
	switch outcome {
	case SliceOutcomePlaced:
		r.Placed++
	case SliceOutcomeSkipped:
		r.Skipped++
	case SliceOutcomeContended:
		r.Contended++
	case SliceOutcomeFailed:
		r.Failed++
	}
}
