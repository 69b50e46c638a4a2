package domain

import (
	"time"
)

// ReservationStatus is the persisted state of a reservation record.
type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "reserved"
	ReservationStatusSucceeded ReservationStatus = "succeeded"
	ReservationStatusFailed    ReservationStatus = "failed"
)

// ReserveStatus is what a caller of Reserve observes.
// Only ReserveStatusReserved grants the right to run the guarded action.
type ReserveStatus string

const (
	ReserveStatusReserved         ReserveStatus = "reserved"
	ReserveStatusAlreadySucceeded ReserveStatus = "already_succeeded"
	ReserveStatusAlreadyFailed    ReserveStatus = "already_failed"
	ReserveStatusInFlight         ReserveStatus = "in_flight"
)

// ReservationRecord guards one side-effecting action per idempotency key.
// Transitions only reserved -> {succeeded, failed}; terminal records are immutable.
type ReservationRecord struct {
	Key           string            `json:"key"`
	Status        ReservationStatus `json:"status"`
	Reason        string            `json:"reason"`
	EventID       string            `json:"event_id"`
	ExternalTxID  *string           `json:"external_tx_id,omitempty"`
	FailureReason *string           `json:"failure_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// IsTerminal returns true once an outcome has been recorded.
func (r *ReservationRecord) IsTerminal() bool {
	return r.Status == ReservationStatusSucceeded || r.Status == ReservationStatusFailed
}

// ReservationContext is the trigger metadata stored with a new reservation.
type ReservationContext struct {
	Reason  string
	EventID string
}

// ReservationOutcome is written once by the reservation owner.
type ReservationOutcome struct {
	Success       bool
	ExternalTxID  string
	FailureReason string
}

// Status returns the terminal status this outcome transitions to.
func (o ReservationOutcome) Status() ReservationStatus {
	if o.Success {
		return ReservationStatusSucceeded
	}
	return ReservationStatusFailed
}

// ReserveStatusFor maps an existing record's status to what a later caller observes.
func ReserveStatusFor(status ReservationStatus) ReserveStatus {
	switch status {
	case ReservationStatusSucceeded:
		return ReserveStatusAlreadySucceeded
	case ReservationStatusFailed:
		return ReserveStatusAlreadyFailed
	default:
		return ReserveStatusInFlight
	}
}

// BuildRefundKey constructs the idempotency key of a refund.
func BuildRefundKey(transactionID, reason string) string {
	return "refund:" + transactionID + ":" + reason
}
