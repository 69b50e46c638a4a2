package service

import (
	"context"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/metrics"

	"github.com/rs/zerolog"
)

// ReservationLedgerImpl implements ports.ReservationLedger: PostgreSQL is the
// source of truth, Redis caches terminal statuses.
type ReservationLedgerImpl struct {
	repo  ports.ReservationRepository
	cache ports.ReservationCache // nil = no cache
	log   zerolog.Logger
}

// NewReservationLedger creates a new ReservationLedgerImpl.
func NewReservationLedger(repo ports.ReservationRepository, cache ports.ReservationCache, log zerolog.Logger) *ReservationLedgerImpl {
	return &ReservationLedgerImpl{repo: repo, cache: cache, log: log}
}

// Reserve claims key. Only a ReserveStatusReserved result grants the caller
// the right to run the guarded action.
func (l *ReservationLedgerImpl) Reserve(ctx context.Context, key string, rc domain.ReservationContext) (domain.ReserveStatus, error) {
	// Layer 1: terminal statuses from Redis
	if l.cache != nil {
		status, ok, err := l.cache.Get(ctx, key)
		if err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("reservation cache read failed, falling through to DB")
		} else if ok {
			result := domain.ReserveStatusFor(status)
			metrics.ReservationsTotal.WithLabelValues(string(result)).Inc()
			return result, nil
		}
	}

	// Layer 2: atomic insert-if-absent
	result, err := l.repo.Reserve(ctx, key, rc)
	if err != nil {
		return "", apperror.ErrDatabaseError(err)
	}
	metrics.ReservationsTotal.WithLabelValues(string(result)).Inc()

	if terminal, ok := terminalStatus(result); ok {
		l.remember(ctx, key, terminal)
	}

	l.log.Debug().
		Str("key", key).
		Str("reason", rc.Reason).
		Str("event_id", rc.EventID).
		Str("result", string(result)).
		Msg("reservation attempted")
	return result, nil
}

// RecordOutcome finalizes a reserved key. Recording onto a terminal record is
// a logged no-op.
func (l *ReservationLedgerImpl) RecordOutcome(ctx context.Context, key string, outcome domain.ReservationOutcome) error {
	updated, err := l.repo.RecordOutcome(ctx, key, outcome)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if !updated {
		l.log.Warn().
			Str("key", key).
			Str("status", string(outcome.Status())).
			Msg("reservation already terminal or missing, outcome ignored")
		return nil
	}

	l.remember(ctx, key, outcome.Status())
	return nil
}

func (l *ReservationLedgerImpl) remember(ctx context.Context, key string, status domain.ReservationStatus) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Set(ctx, key, status); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("reservation cache write failed")
	}
}

func terminalStatus(r domain.ReserveStatus) (domain.ReservationStatus, bool) {
	switch r {
	case domain.ReserveStatusAlreadySucceeded:
		return domain.ReservationStatusSucceeded, true
	case domain.ReserveStatusAlreadyFailed:
		return domain.ReservationStatusFailed, true
	default:
		return "", false
	}
}
