package domain

import "time"

// BalanceChangedEvent signals that exchange balances may have moved.
// Its payload is informational; the reconciler always reads fresh balances.
type BalanceChangedEvent struct {
	EventID  string `json:"event_id"`
	Currency string `json:"currency,omitempty"`
}

// PaymentOrphanedEvent carries an unmatched payment from the live stream.
type PaymentOrphanedEvent struct {
	EventID string           `json:"event_id"`
	Payment UnmatchedPayment `json:"payment"`
}

// RefundCompletedEvent is published after a refund outcome is recorded.
type RefundCompletedEvent struct {
	EventID      string    `json:"event_id"`
	Key          string    `json:"key"`
	Chain        Chain     `json:"chain"`
	Success      bool      `json:"success"`
	ExternalTxID string    `json:"external_tx_id,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
