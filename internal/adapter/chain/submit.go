package chain

import (
	"context"
	"errors"
	"time"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/metrics"

	"github.com/rs/zerolog"
)

// SignedTx is a signed payload. ID is derived from its content, so the same
// payload always has the same id.
type SignedTx interface {
	ID() string
}

// Ledger is the write/read surface the submitter needs from a chain.
type Ledger interface {
	Broadcast(ctx context.Context, tx SignedTx) error
	// Lookup reports whether a transaction with txID exists. A missing
	// transaction is (false, nil) or an error wrapping ErrTxNotFound.
	Lookup(ctx context.Context, txID string) (bool, error)
}

// SubmitOutcome reports what the submitter did with one signed payload.
type SubmitOutcome struct {
	TxID       string
	Broadcasts int
	// Verified is true when an ambiguous broadcast was confirmed by lookup.
	Verified bool
	Err      error
}

const defaultCallTimeout = 15 * time.Second

// Submitter broadcasts a signed payload, verifies ambiguous failures by id
// and resubmits the identical payload at most once.
type Submitter struct {
	chain       domain.Chain
	callTimeout time.Duration
	log         zerolog.Logger
}

// NewSubmitter creates a Submitter for chain. Every ledger call is bounded by
// callTimeout; zero or less means 15s.
func NewSubmitter(chain domain.Chain, callTimeout time.Duration, log zerolog.Logger) *Submitter {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &Submitter{chain: chain, callTimeout: callTimeout, log: log}
}

// Submit must run while the source account's lock is held.
func (s *Submitter) Submit(ctx context.Context, ledger Ledger, tx SignedTx) SubmitOutcome {
	out := SubmitOutcome{TxID: tx.ID(), Broadcasts: 1}
	log := s.log.With().Str("chain", string(s.chain)).Str("tx_id", out.TxID).Logger()

	err := s.broadcast(ctx, ledger, tx)
	if err == nil {
		s.count("accepted")
		return out
	}

	if !IsAmbiguous(err) {
		s.count("rejected")
		log.Warn().Err(err).Msg("broadcast failed")
		out.Err = classifyBroadcast(err)
		return out
	}

	log.Warn().Err(err).Msg("broadcast outcome ambiguous, verifying by id")

	// The broadcast's deadline has usually expired by now. Verification and
	// resubmission each get a fresh one that the caller cannot cancel.
	detached := context.WithoutCancel(ctx)
	found, lookupErr := s.lookup(detached, ledger, out.TxID)
	if lookupErr != nil && !errors.Is(lookupErr, ErrTxNotFound) {
		// Unknown state: resubmitting could double pay if the id is merely not indexed yet.
		s.count("lookup_failed")
		log.Error().Err(lookupErr).Msg("verification lookup failed, not resubmitting")
		out.Err = apperror.ErrLedgerTimeout(errors.Join(err, lookupErr))
		return out
	}
	if found {
		s.count("verified")
		log.Info().Msg("ambiguous broadcast was applied, not resubmitting")
		out.Verified = true
		return out
	}

	s.count("resubmitted")
	log.Info().Msg("transaction not found, resubmitting once")
	out.Broadcasts = 2
	if err := s.broadcast(detached, ledger, tx); err != nil {
		log.Error().Err(err).Msg("resubmission failed")
		if IsAmbiguous(err) {
			out.Err = apperror.ErrLedgerTimeout(err)
		} else {
			out.Err = classifyBroadcast(err)
		}
	}
	return out
}

func (s *Submitter) broadcast(ctx context.Context, ledger Ledger, tx SignedTx) error {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return ledger.Broadcast(ctx, tx)
}

func (s *Submitter) lookup(ctx context.Context, ledger Ledger, txID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return ledger.Lookup(ctx, txID)
}

func (s *Submitter) count(path string) {
	metrics.SubmissionsTotal.WithLabelValues(string(s.chain), path).Inc()
}

func classifyBroadcast(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if NeverSent(err) {
		return apperror.ErrLedgerUnavailable(err)
	}
	return apperror.ErrLedgerRejected(err)
}
