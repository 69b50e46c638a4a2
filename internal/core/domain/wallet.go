package domain

import (
	"settlement-orchestrator/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Chain identifies a supported ledger and selects its wallet variant.
type Chain string

const (
	ChainEVM    Chain = "evm"
	ChainSolana Chain = "solana"
)

// WalletSendRequest is a transient send instruction.
type WalletSendRequest struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
	Asset   string          `json:"asset"`
	Memo    string          `json:"memo,omitempty"`
}

// WalletSendResult is the outcome of a send. FailureClass and Reason are set
// only when Success is false.
type WalletSendResult struct {
	Success      bool           `json:"success"`
	ExternalTxID string         `json:"external_tx_id,omitempty"`
	FailureClass apperror.Class `json:"failure_class,omitempty"`
	Reason       string         `json:"reason,omitempty"`
}

// SendSucceeded builds a successful result.
func SendSucceeded(externalTxID string) WalletSendResult {
	return WalletSendResult{Success: true, ExternalTxID: externalTxID}
}

// SendFailed classifies err into a failed result.
func SendFailed(err error) WalletSendResult {
	return WalletSendResult{
		FailureClass: apperror.ClassOf(err),
		Reason:       err.Error(),
	}
}

// Outcome converts the result into the reservation outcome it records.
func (r WalletSendResult) Outcome() ReservationOutcome {
	return ReservationOutcome{
		Success:       r.Success,
		ExternalTxID:  r.ExternalTxID,
		FailureReason: r.Reason,
	}
}
