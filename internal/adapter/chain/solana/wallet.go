package solana

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"settlement-orchestrator/config"
	"settlement-orchestrator/internal/adapter/chain"
	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/units"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// NativeSymbol is the only asset the Solana variant sends.
const NativeSymbol = "SOL"

const lamportDecimals = 9

// Variant signs and submits SOL transfers, optionally with a memo.
type Variant struct {
	ledger Ledger
	key    solana.PrivateKey
	from   solana.PublicKey
}

// NewVariant builds the Solana variant. The key must be base58 encoded.
func NewVariant(cfg config.SolanaConfig, ledger Ledger) (*Variant, error) {
	key, err := solana.PrivateKeyFromBase58(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("parse solana private key: %w", err)
	}
	return &Variant{ledger: ledger, key: key, from: key.PublicKey()}, nil
}

func (v *Variant) Chain() domain.Chain {
	return domain.ChainSolana
}

func (v *Variant) SourceAddress() string {
	return v.from.String()
}

func (v *Variant) Validate(req domain.WalletSendRequest) error {
	if !strings.EqualFold(req.Asset, NativeSymbol) {
		return apperror.ErrUnsupportedAsset(string(domain.ChainSolana), req.Asset)
	}
	if _, err := solana.PublicKeyFromBase58(req.Address); err != nil {
		return apperror.ErrInvalidAddress(req.Address)
	}
	return nil
}

func (v *Variant) Build(ctx context.Context, req domain.WalletSendRequest) (chain.SignedTx, error) {
	base, err := units.ToBaseUnits(req.Amount, lamportDecimals)
	if err != nil || !base.IsUint64() {
		return nil, apperror.ErrInvalidAmount()
	}
	lamports := base.Uint64()
	if lamports == 0 {
		return nil, apperror.Validation(fmt.Sprintf("amount %s is below one lamport", req.Amount))
	}

	to := solana.MustPublicKeyFromBase58(req.Address)
	instructions := []solana.Instruction{
		system.NewTransferInstruction(lamports, v.from, to).Build(),
	}
	if req.Memo != "" {
		instructions = append(instructions, solana.NewInstruction(
			solana.MemoProgramID,
			solana.AccountMetaSlice{solana.NewAccountMeta(v.from, false, true)},
			[]byte(req.Memo),
		))
	}

	blockhash, err := v.ledger.LatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(v.from))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build transaction: %w", err))
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(v.from) {
			return &v.key
		}
		return nil
	})
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sign transaction: %w", err))
	}
	return signedTx{tx: tx}, nil
}

// Broadcast treats "already processed" as accepted: the cluster holds this exact payload.
func (v *Variant) Broadcast(ctx context.Context, stx chain.SignedTx) error {
	tx, ok := stx.(signedTx)
	if !ok {
		return apperror.InternalError(fmt.Errorf("unexpected payload type %T", stx))
	}
	err := v.ledger.SendTransaction(ctx, tx.tx)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "already been processed") {
		return nil
	}
	return err
}

func (v *Variant) Lookup(ctx context.Context, txID string) (bool, error) {
	sig, err := solana.SignatureFromBase58(txID)
	if err != nil {
		return false, apperror.InternalError(err)
	}
	_, err = v.ledger.Transaction(ctx, sig)
	if errors.Is(err, chain.ErrTxNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SenderOf returns the fee payer, the first account key of the message.
func (v *Variant) SenderOf(ctx context.Context, txID string) (string, error) {
	sig, err := solana.SignatureFromBase58(txID)
	if err != nil {
		return "", apperror.Validation(fmt.Sprintf("invalid transaction signature %q", txID))
	}
	tx, err := v.ledger.Transaction(ctx, sig)
	if errors.Is(err, chain.ErrTxNotFound) {
		return "", apperror.ErrTransactionNotFound(txID)
	}
	if err != nil {
		return "", apperror.ErrLedgerUnavailable(err)
	}
	if len(tx.Message.AccountKeys) == 0 {
		return "", apperror.ErrTransactionNotFound(txID)
	}
	return tx.Message.AccountKeys[0].String(), nil
}

type signedTx struct {
	tx *solana.Transaction
}

func (s signedTx) ID() string {
	return s.tx.Signatures[0].String()
}
