package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundRequest asks for value to be returned to the sender of TransactionID.
// When Address is empty the sender is recovered from the ledger.
type RefundRequest struct {
	EventID       string          `json:"event_id"`
	Chain         Chain           `json:"chain"`
	TransactionID string          `json:"transaction_id"`
	Reason        string          `json:"reason"`
	Address       string          `json:"address,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Asset         string          `json:"asset"`
	Memo          string          `json:"memo,omitempty"`
}

// Key returns the refund's idempotency key.
func (r RefundRequest) Key() string {
	return BuildRefundKey(r.TransactionID, r.Reason)
}

// RefundResult reports what a refund trigger did.
type RefundResult struct {
	Key      string            `json:"key"`
	Reserve  ReserveStatus     `json:"reserve"`
	Executed bool              `json:"executed"`
	Send     *WalletSendResult `json:"send,omitempty"`
}

// OrphanRefundStatus is the state of a refund for an unmatched payment.
type OrphanRefundStatus string

const (
	OrphanRefundPending   OrphanRefundStatus = "pending"
	OrphanRefundSucceeded OrphanRefundStatus = "succeeded"
	OrphanRefundFailed    OrphanRefundStatus = "failed"
)

// UnmatchedPayment is an inbound ledger payment with no domain correlation id.
type UnmatchedPayment struct {
	PaymentID  string          `json:"payment_id"`
	Chain      Chain           `json:"chain"`
	From       string          `json:"from"`
	Amount     decimal.Decimal `json:"amount"`
	Asset      string          `json:"asset"`
	ObservedAt time.Time       `json:"observed_at"`
}

// OrphanRefund is the reservation of a refund keyed by the raw payment id.
type OrphanRefund struct {
	PaymentID    string             `json:"payment_id"`
	Chain        Chain              `json:"chain"`
	Address      string             `json:"address"`
	Amount       decimal.Decimal    `json:"amount"`
	Asset        string             `json:"asset"`
	Status       OrphanRefundStatus `json:"status"`
	ExternalTxID *string            `json:"external_tx_id,omitempty"`
	LastError    *string            `json:"last_error,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// IsTerminal returns true once the refund outcome is recorded.
func (o *OrphanRefund) IsTerminal() bool {
	return o.Status == OrphanRefundSucceeded || o.Status == OrphanRefundFailed
}

// ReserveStatus maps an existing orphan refund's status to what a later caller observes.
func (s OrphanRefundStatus) ReserveStatus() ReserveStatus {
	switch s {
	case OrphanRefundSucceeded:
		return ReserveStatusAlreadySucceeded
	case OrphanRefundFailed:
		return ReserveStatusAlreadyFailed
	default:
		return ReserveStatusInFlight
	}
}

// OrphanStatusFor returns the terminal orphan status an outcome transitions to.
func OrphanStatusFor(o ReservationOutcome) OrphanRefundStatus {
	if o.Success {
		return OrphanRefundSucceeded
	}
	return OrphanRefundFailed
}

// NewOrphanRefund builds the pending reservation for payment.
func NewOrphanRefund(p UnmatchedPayment) *OrphanRefund {
	return &OrphanRefund{
		PaymentID: p.PaymentID,
		Chain:     p.Chain,
		Address:   p.From,
		Amount:    p.Amount,
		Asset:     p.Asset,
		Status:    OrphanRefundPending,
	}
}
