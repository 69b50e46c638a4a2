package service

import (
	"context"
	"encoding/json"

	"settlement-orchestrator/config"
	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
)

// MessageHandler processes one queue message body. The returned error's
// class decides between ack, redelivery and dead-lettering.
type MessageHandler func(ctx context.Context, body []byte) error

// Dispatcher decodes queue messages and routes them to the services.
type Dispatcher struct {
	reconciler ports.ConversionReconciler
	refunds    ports.RefundCoordinator
	orphans    ports.OrphanRefunder
	log        zerolog.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	reconciler ports.ConversionReconciler,
	refunds ports.RefundCoordinator,
	orphans ports.OrphanRefunder,
	log zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		reconciler: reconciler,
		refunds:    refunds,
		orphans:    orphans,
		log:        log.With().Str("component", "dispatcher").Logger(),
	}
}

// Routes maps each consumed topic to its handler.
func (d *Dispatcher) Routes(topics config.TopicsConfig) map[string]MessageHandler {
	return map[string]MessageHandler{
		topics.BalanceChanged:  d.HandleBalanceChanged,
		topics.RefundRequested: d.HandleRefundRequested,
		topics.PaymentOrphaned: d.HandlePaymentOrphaned,
	}
}

// HandleBalanceChanged runs a reconciliation pass. The event only signals
// that balances moved; the pass reads fresh balances itself.
func (d *Dispatcher) HandleBalanceChanged(ctx context.Context, body []byte) error {
	var ev domain.BalanceChangedEvent
	if err := decode(body, &ev); err != nil {
		return err
	}

	report, err := d.reconciler.Reconcile(ctx)
	if err != nil {
		return err
	}
	d.log.Debug().
		Str("event_id", ev.EventID).
		Int("placed", report.Placed).
		Int("contended", report.Contended).
		Int("failed", report.Failed).
		Msg("balance change reconciled")
	return nil
}

// HandleRefundRequested refunds to the explicit address when one is given,
// otherwise to the sender of the referenced transaction.
func (d *Dispatcher) HandleRefundRequested(ctx context.Context, body []byte) error {
	var req domain.RefundRequest
	if err := decode(body, &req); err != nil {
		return err
	}

	var err error
	if req.Address != "" {
		_, err = d.refunds.RefundToAddress(ctx, req)
	} else {
		_, err = d.refunds.RefundByTransaction(ctx, req)
	}
	return err
}

func (d *Dispatcher) HandlePaymentOrphaned(ctx context.Context, body []byte) error {
	var ev domain.PaymentOrphanedEvent
	if err := decode(body, &ev); err != nil {
		return err
	}
	_, err := d.orphans.Refund(ctx, ev.Payment)
	return err
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return apperror.ErrMalformedMessage(err)
	}
	return nil
}
