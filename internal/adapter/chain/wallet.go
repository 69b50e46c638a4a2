package chain

import (
	"context"
	"fmt"
	"time"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
)

// Variant is the chain-specific half of a wallet.
type Variant interface {
	Ledger
	Chain() domain.Chain
	// SourceAddress is the account every send debits; its lock serializes sends.
	SourceAddress() string
	// Validate checks asset, address and memo support without network calls.
	Validate(req domain.WalletSendRequest) error
	// Build fetches nonce or blockhash and signs the payload once.
	Build(ctx context.Context, req domain.WalletSendRequest) (SignedTx, error)
	// SenderOf recovers the sending address of an existing transaction.
	SenderOf(ctx context.Context, txID string) (string, error)
}

// Wallet implements ports.Wallet on top of a Variant with the shared send
// pipeline: validate, lock the source account, build, submit, classify.
type Wallet struct {
	variant   Variant
	locker    ports.Locker
	submitter *Submitter
	lockTTL   time.Duration
	log       zerolog.Logger
}

// NewWallet wires a variant into the shared send pipeline. callTimeout bounds
// each broadcast and verification call.
func NewWallet(variant Variant, locker ports.Locker, lockTTL, callTimeout time.Duration, log zerolog.Logger) *Wallet {
	log = log.With().Str("chain", string(variant.Chain())).Logger()
	return &Wallet{
		variant:   variant,
		locker:    locker,
		submitter: NewSubmitter(variant.Chain(), callTimeout, log),
		lockTTL:   lockTTL,
		log:       log,
	}
}

func (w *Wallet) Chain() domain.Chain {
	return w.variant.Chain()
}

// GetAddressFromTransaction returns the sender of transactionID.
func (w *Wallet) GetAddressFromTransaction(ctx context.Context, transactionID string) (string, error) {
	addr, err := w.variant.SenderOf(ctx, transactionID)
	if err != nil {
		return "", fmt.Errorf("recover sender of %s: %w", transactionID, err)
	}
	return addr, nil
}

// Send never returns an error; every failure is classified in the result.
func (w *Wallet) Send(ctx context.Context, req domain.WalletSendRequest) domain.WalletSendResult {
	if !req.Amount.IsPositive() {
		return domain.SendFailed(apperror.ErrInvalidAmount())
	}
	if err := w.variant.Validate(req); err != nil {
		return domain.SendFailed(err)
	}

	var result domain.WalletSendResult
	key := LockKey(w.variant.Chain(), w.variant.SourceAddress())
	err := w.locker.WithLock(ctx, key, w.lockTTL, func(ctx context.Context) error {
		signed, err := w.variant.Build(ctx, req)
		if err != nil {
			return err
		}

		out := w.submitter.Submit(ctx, w.variant, signed)
		if out.Err != nil {
			return out.Err
		}
		result = domain.SendSucceeded(out.TxID)
		return nil
	})
	if err != nil {
		err = classifyResidual(err)
		w.log.Error().Err(err).
			Str("address", req.Address).
			Str("asset", req.Asset).
			Str("amount", req.Amount.String()).
			Str("class", string(apperror.ClassOf(err))).
			Msg("wallet send failed")
		return domain.SendFailed(err)
	}

	w.log.Info().
		Str("address", req.Address).
		Str("asset", req.Asset).
		Str("amount", req.Amount.String()).
		Str("tx_id", result.ExternalTxID).
		Msg("wallet send succeeded")
	return result
}

func classifyResidual(err error) error {
	if apperror.CodeOf(err) != "" {
		return err
	}
	if IsAmbiguous(err) {
		return apperror.ErrLedgerTimeout(err)
	}
	return apperror.ErrLedgerUnavailable(err)
}

// LockKey is the lock serializing writes from one source account.
func LockKey(chain domain.Chain, address string) string {
	return "lock:wallet:" + string(chain) + ":" + address
}
