package chain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTx string

func (s stubTx) ID() string { return string(s) }

// scriptedLedger replays broadcast errors in order and answers lookups from found/lookupErr.
type scriptedLedger struct {
	broadcastErrs []error
	broadcasts    []string
	lookups       int
	found         bool
	lookupErr     error
}

func (l *scriptedLedger) Broadcast(_ context.Context, tx SignedTx) error {
	l.broadcasts = append(l.broadcasts, tx.ID())
	if len(l.broadcastErrs) == 0 {
		return nil
	}
	err := l.broadcastErrs[0]
	l.broadcastErrs = l.broadcastErrs[1:]
	return err
}

func (l *scriptedLedger) Lookup(context.Context, string) (bool, error) {
	l.lookups++
	return l.found, l.lookupErr
}

func TestSubmitter_Submit(t *testing.T) {
	timeout := &StatusError{Code: 504, Err: errors.New("gateway timeout")}
	rejected := &StatusError{Code: 400, Err: errors.New("invalid signature")}

	tests := []struct {
		name           string
		ledger         *scriptedLedger
		wantBroadcasts int
		wantLookups    int
		wantVerified   bool
		wantClass      apperror.Class // empty: success
	}{
		{
			name:           "accepted first time",
			ledger:         &scriptedLedger{},
			wantBroadcasts: 1,
		},
		{
			name:           "non-ambiguous rejection is permanent",
			ledger:         &scriptedLedger{broadcastErrs: []error{rejected}},
			wantBroadcasts: 1,
			wantClass:      apperror.ClassPermanent,
		},
		{
			name:           "refused connection is retriable",
			ledger:         &scriptedLedger{broadcastErrs: []error{fmt.Errorf("post: %w", dialRefused())}},
			wantBroadcasts: 1,
			wantClass:      apperror.ClassRetriable,
		},
		{
			name:           "ambiguous then found",
			ledger:         &scriptedLedger{broadcastErrs: []error{timeout}, found: true},
			wantBroadcasts: 1,
			wantLookups:    1,
			wantVerified:   true,
		},
		{
			name:           "ambiguous then not found resubmits once",
			ledger:         &scriptedLedger{broadcastErrs: []error{timeout}},
			wantBroadcasts: 2,
			wantLookups:    1,
		},
		{
			name:           "not found error resubmits once",
			ledger:         &scriptedLedger{broadcastErrs: []error{timeout}, lookupErr: fmt.Errorf("rpc: %w", ErrTxNotFound)},
			wantBroadcasts: 2,
			wantLookups:    1,
		},
		{
			name:           "lookup failure does not resubmit",
			ledger:         &scriptedLedger{broadcastErrs: []error{timeout}, lookupErr: errors.New("connection reset")},
			wantBroadcasts: 1,
			wantLookups:    1,
			wantClass:      apperror.ClassRetriable,
		},
		{
			name:           "resubmit ambiguous again is retriable",
			ledger:         &scriptedLedger{broadcastErrs: []error{timeout, context.DeadlineExceeded}},
			wantBroadcasts: 2,
			wantLookups:    1,
			wantClass:      apperror.ClassRetriable,
		},
		{
			name:           "resubmit rejected is permanent",
			ledger:         &scriptedLedger{broadcastErrs: []error{timeout, rejected}},
			wantBroadcasts: 2,
			wantLookups:    1,
			wantClass:      apperror.ClassPermanent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSubmitter(domain.ChainEVM, time.Second, zerolog.Nop())

			out := s.Submit(context.Background(), tt.ledger, stubTx("0xabc"))

			assert.Equal(t, "0xabc", out.TxID)
			assert.Equal(t, tt.wantBroadcasts, out.Broadcasts)
			assert.Len(t, tt.ledger.broadcasts, tt.wantBroadcasts)
			assert.Equal(t, tt.wantLookups, tt.ledger.lookups)
			assert.Equal(t, tt.wantVerified, out.Verified)
			for _, id := range tt.ledger.broadcasts {
				assert.Equal(t, "0xabc", id)
			}
			if tt.wantClass == "" {
				require.NoError(t, out.Err)
				return
			}
			require.Error(t, out.Err)
			assert.Equal(t, tt.wantClass, apperror.ClassOf(out.Err))
		})
	}
}

func TestSubmitter_KeepsClassifiedBroadcastError(t *testing.T) {
	s := NewSubmitter(domain.ChainSolana, time.Second, zerolog.Nop())
	internal := apperror.InternalError(errors.New("bad payload"))

	out := s.Submit(context.Background(), &scriptedLedger{broadcastErrs: []error{internal}}, stubTx("sig"))

	assert.Same(t, internal, out.Err)
}

// stallingLedger hangs on the first broadcast until its context ends. Later
// calls answer only while their context is still live.
type stallingLedger struct {
	mu         sync.Mutex
	applied    bool // the stalled broadcast reached the ledger
	broadcasts int
	lookups    int
}

func (l *stallingLedger) Broadcast(ctx context.Context, _ SignedTx) error {
	l.mu.Lock()
	l.broadcasts++
	first := l.broadcasts == 1
	l.mu.Unlock()

	if first {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	l.applied = true
	l.mu.Unlock()
	return nil
}

func (l *stallingLedger) Lookup(ctx context.Context, _ string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lookups++
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return l.applied, nil
}

func TestSubmitter_VerifiesAfterCallerDeadline(t *testing.T) {
	ledger := &stallingLedger{applied: true}
	s := NewSubmitter(domain.ChainEVM, time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	out := s.Submit(ctx, ledger, stubTx("0xabc"))

	require.NoError(t, out.Err)
	assert.True(t, out.Verified)
	assert.Equal(t, 1, out.Broadcasts)
	assert.Equal(t, 1, ledger.lookups)
}

func TestSubmitter_ResubmitsAfterCallerDeadline(t *testing.T) {
	ledger := &stallingLedger{}
	s := NewSubmitter(domain.ChainEVM, time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	out := s.Submit(ctx, ledger, stubTx("0xabc"))

	require.NoError(t, out.Err)
	assert.False(t, out.Verified)
	assert.Equal(t, 2, out.Broadcasts)
	assert.Equal(t, 2, ledger.broadcasts)
	assert.Equal(t, 1, ledger.lookups)
}

func TestSubmitter_BoundsBroadcastByCallTimeout(t *testing.T) {
	ledger := &stallingLedger{applied: true}
	s := NewSubmitter(domain.ChainSolana, 50*time.Millisecond, zerolog.Nop())

	start := time.Now()
	out := s.Submit(context.Background(), ledger, stubTx("sig"))

	assert.Less(t, time.Since(start), time.Second)
	require.NoError(t, out.Err)
	assert.True(t, out.Verified)
}

func dialRefused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}
}
