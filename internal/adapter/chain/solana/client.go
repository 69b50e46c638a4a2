package solana

import (
	"context"
	"errors"
	"time"

	"settlement-orchestrator/internal/adapter/chain"
	"settlement-orchestrator/pkg/lazy"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Ledger is the RPC surface the wallet uses.
type Ledger interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) error
	// Transaction returns an error wrapping chain.ErrTxNotFound when sig is unknown.
	Transaction(ctx context.Context, sig solana.Signature) (*solana.Transaction, error)
}

type rpcLedger struct {
	handle  *lazy.Handle[*rpc.Client]
	timeout time.Duration
}

// NewRPCLedger returns a Ledger backed by a JSON-RPC endpoint, created on first
// use. Each call is bounded by timeout; zero disables the bound.
func NewRPCLedger(endpoint string, timeout time.Duration) Ledger {
	return &rpcLedger{
		timeout: timeout,
		handle: lazy.New(func(context.Context) (*rpc.Client, error) {
			return rpc.New(endpoint), nil
		}),
	}
}

func (l *rpcLedger) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	c, err := l.handle.Get(ctx)
	if err != nil {
		return solana.Hash{}, err
	}
	out, err := c.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, err
	}
	return out.Value.Blockhash, nil
}

func (l *rpcLedger) SendTransaction(ctx context.Context, tx *solana.Transaction) error {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	c, err := l.handle.Get(ctx)
	if err != nil {
		return err
	}
	_, err = c.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	return err
}

func (l *rpcLedger) Transaction(ctx context.Context, sig solana.Signature) (*solana.Transaction, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	c, err := l.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	maxVersion := uint64(0)
	out, err := c.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (out == nil || out.Transaction == nil)) {
		return nil, chain.ErrTxNotFound
	}
	if err != nil {
		return nil, err
	}
	return out.Transaction.GetTransaction()
}

func (l *rpcLedger) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}
