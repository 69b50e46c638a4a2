package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"settlement-orchestrator/internal/adapter/chain"
	"settlement-orchestrator/pkg/lazy"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client is the JSON-RPC surface the wallet uses. *ethclient.Client satisfies it.
type Client interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
}

// lazyClient dials on first use and retries the dial on later calls if it failed.
type lazyClient struct {
	handle  *lazy.Handle[*ethclient.Client]
	timeout time.Duration
}

// NewLazyClient returns a Client that connects to rpcURL on first use. Each
// call, dial included, is bounded by timeout; zero disables the bound.
func NewLazyClient(rpcURL string, timeout time.Duration) Client {
	return &lazyClient{
		timeout: timeout,
		handle: lazy.New(func(ctx context.Context) (*ethclient.Client, error) {
			c, err := ethclient.DialContext(ctx, rpcURL)
			if err != nil {
				return nil, fmt.Errorf("dial evm rpc: %w", err)
			}
			return c, nil
		}),
	}
}

func (l *lazyClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	c, err := l.handle.Get(ctx)
	if err != nil {
		return 0, err
	}
	n, err := c.PendingNonceAt(ctx, account)
	return n, wrapRPCError(err)
}

func (l *lazyClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	c, err := l.handle.Get(ctx)
	if err != nil {
		return nil, err
	}
	p, err := c.SuggestGasPrice(ctx)
	return p, wrapRPCError(err)
}

func (l *lazyClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	c, err := l.handle.Get(ctx)
	if err != nil {
		return err
	}
	return wrapRPCError(c.SendTransaction(ctx, tx))
}

func (l *lazyClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	c, err := l.handle.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	tx, pending, err := c.TransactionByHash(ctx, hash)
	return tx, pending, wrapRPCError(err)
}

func (l *lazyClient) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}

// wrapRPCError surfaces the HTTP status of a failed call to the ambiguity classifier.
func wrapRPCError(err error) error {
	if err == nil {
		return nil
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return &chain.StatusError{Code: httpErr.StatusCode, Err: err}
	}
	return err
}
