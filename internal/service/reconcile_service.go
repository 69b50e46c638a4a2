package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// ConversionReconcilerImpl implements ports.ConversionReconciler.
type ConversionReconcilerImpl struct {
	slices     ports.ConversionSliceRepository
	exchange   ports.Exchange
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewConversionReconciler creates a new ConversionReconcilerImpl.
func NewConversionReconciler(
	slices ports.ConversionSliceRepository,
	exchange ports.Exchange,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *ConversionReconcilerImpl {
	return &ConversionReconcilerImpl{
		slices:     slices,
		exchange:   exchange,
		transactor: transactor,
		log:        log.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile converts whatever each open slice can claim from one balance
// snapshot. A balance or listing failure aborts the pass; a failure inside
// one slice does not.
func (r *ConversionReconcilerImpl) Reconcile(ctx context.Context) (*domain.ReconcileReport, error) {
	start := time.Now()
	defer func() { metrics.ReconcileDuration.Observe(time.Since(start).Seconds()) }()

	balances, err := r.exchange.GetBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch balances: %w", err)
	}

	slices, err := r.slices.ListOpen(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	report := &domain.ReconcileReport{}
	for _, slice := range slices {
		outcome, order := r.reconcileSlice(ctx, slice, balances)
		report.Add(outcome)
		if order != nil {
			report.Orders = append(report.Orders, *order)
		}
		metrics.ReconcileSlicesTotal.WithLabelValues(string(outcome)).Inc()
	}

	r.log.Info().
		Int("slices", len(slices)).
		Int("placed", report.Placed).
		Int("skipped", report.Skipped).
		Int("contended", report.Contended).
		Int("failed", report.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("reconcile pass finished")
	return report, nil
}

func (r *ConversionReconcilerImpl) reconcileSlice(
	ctx context.Context,
	slice domain.ConversionSlice,
	balances domain.BalanceSnapshot,
) (outcome domain.SliceOutcome, order *domain.OrderResult) {
	log := r.log.With().Str("pair", slice.Pair()).Str("symbol", slice.Symbol).Logger()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("slice reconcile panicked")
			outcome, order = domain.SliceOutcomeFailed, nil
		}
	}()

	available := balances.Available(slice.SourceCurrency)
	qty := domain.ClaimQuantity(available, slice.Remaining)
	if !qty.IsPositive() {
		log.Debug().
			Str("available", available.String()).
			Str("remaining", slice.Remaining.String()).
			Msg("nothing to claim")
		return domain.SliceOutcomeSkipped, nil
	}

	claimed := false
	err := r.transactor.WithSerializable(ctx, func(tx pgx.Tx) error {
		ok, err := r.slices.DecrementRemaining(ctx, tx, slice.SourceCurrency, slice.TargetCurrency, qty)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		claimed = true

		r.logReferencePrice(ctx, log, slice.Symbol)

		// An order failure rolls the decrement back so the next pass retries the quantity.
		placed, err := r.exchange.PlaceMarketOrder(ctx, slice.Symbol, slice.Side, qty)
		if err != nil {
			return err
		}
		order = placed
		return nil
	})
	if err != nil && order != nil {
		log.Error().Err(err).
			Str("qty", qty.String()).
			Int64("order_id", order.OrderID).
			Msg("order placed but claim not committed, replay manually")
		return domain.SliceOutcomeFailed, nil
	}
	if err != nil && serializationFailure(err) {
		log.Info().Str("qty", qty.String()).Msg("claim lost to a concurrent worker")
		return domain.SliceOutcomeContended, nil
	}
	if err != nil {
		log.Error().Err(err).
			Str("qty", qty.String()).
			Str("side", string(slice.Side)).
			Str("class", string(apperror.ClassOf(err))).
			Msg("slice conversion failed, remaining restored")
		return domain.SliceOutcomeFailed, nil
	}
	if !claimed {
		log.Info().Str("qty", qty.String()).Msg("quantity already claimed by another worker")
		return domain.SliceOutcomeContended, nil
	}

	log.Info().
		Str("qty", qty.String()).
		Str("side", string(slice.Side)).
		Int64("order_id", order.OrderID).
		Str("status", order.Status).
		Msg("conversion order placed")
	return domain.SliceOutcomePlaced, order
}

func (r *ConversionReconcilerImpl) logReferencePrice(ctx context.Context, log zerolog.Logger, symbol string) {
	ticker, err := r.exchange.GetBookTicker(ctx, symbol)
	if err != nil {
		log.Warn().Err(err).Msg("book ticker unavailable")
		return
	}
	log.Info().
		Str("bid", ticker.BidPrice.String()).
		Str("ask", ticker.AskPrice.String()).
		Msg("reference price")
}

// serializationFailure reports SQLSTATE 40001: another worker committed its
// decrement of the same slice first.
func serializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}
