package service

import (
	"context"
	"fmt"
	"time"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	refundKindByTransaction = "by_transaction"
	refundKindToAddress     = "to_address"
	refundKindOrphan        = "orphan"
)

// RefundCoordinatorImpl implements ports.RefundCoordinator.
type RefundCoordinatorImpl struct {
	ledger  ports.ReservationLedger
	wallets ports.WalletRegistry
	events  *completionPublisher
	log     zerolog.Logger
}

// NewRefundCoordinator creates a new RefundCoordinatorImpl. publisher may be
// nil to disable refund.completed events.
func NewRefundCoordinator(
	ledger ports.ReservationLedger,
	wallets ports.WalletRegistry,
	publisher ports.Publisher,
	completedTopic string,
	log zerolog.Logger,
) *RefundCoordinatorImpl {
	log = log.With().Str("component", "refunds").Logger()
	return &RefundCoordinatorImpl{
		ledger:  ledger,
		wallets: wallets,
		events:  &completionPublisher{pub: publisher, topic: completedTopic, log: log},
		log:     log,
	}
}

// RefundByTransaction refunds the sender of req.TransactionID. The sender is
// resolved before reserving; the lookup is read-only and safe to repeat.
func (s *RefundCoordinatorImpl) RefundByTransaction(ctx context.Context, req domain.RefundRequest) (*domain.RefundResult, error) {
	if err := validateRefund(req); err != nil {
		return nil, err
	}
	wallet, err := s.wallets.Wallet(req.Chain)
	if err != nil {
		return nil, err
	}

	if req.Address == "" {
		addr, err := wallet.GetAddressFromTransaction(ctx, req.TransactionID)
		if err != nil {
			return nil, err
		}
		req.Address = addr
	}
	return s.refund(ctx, wallet, req, refundKindByTransaction)
}

// RefundToAddress refunds req.Address directly.
func (s *RefundCoordinatorImpl) RefundToAddress(ctx context.Context, req domain.RefundRequest) (*domain.RefundResult, error) {
	if err := validateRefund(req); err != nil {
		return nil, err
	}
	if req.Address == "" {
		return nil, apperror.Validation("refund address is required")
	}
	wallet, err := s.wallets.Wallet(req.Chain)
	if err != nil {
		return nil, err
	}
	return s.refund(ctx, wallet, req, refundKindToAddress)
}

func (s *RefundCoordinatorImpl) refund(ctx context.Context, wallet ports.Wallet, req domain.RefundRequest, kind string) (*domain.RefundResult, error) {
	key := req.Key()
	log := s.log.With().
		Str("key", key).
		Str("event_id", req.EventID).
		Str("chain", string(req.Chain)).
		Logger()

	status, err := s.ledger.Reserve(ctx, key, domain.ReservationContext{Reason: req.Reason, EventID: req.EventID})
	if err != nil {
		return nil, err
	}
	result := &domain.RefundResult{Key: key, Reserve: status}
	if status != domain.ReserveStatusReserved {
		log.Info().Str("reserve", string(status)).Msg("refund already handled, skipping")
		metrics.RefundsTotal.WithLabelValues(kind, "duplicate").Inc()
		return result, nil
	}

	send := safeSend(ctx, wallet, domain.WalletSendRequest{
		Address: req.Address,
		Amount:  req.Amount,
		Asset:   req.Asset,
		Memo:    req.Memo,
	})
	result.Executed = true
	result.Send = &send

	// The send already happened; record it even if the caller gave up.
	if err := s.ledger.RecordOutcome(context.WithoutCancel(ctx), key, send.Outcome()); err != nil {
		log.Error().Err(err).
			Bool("success", send.Success).
			Str("tx_id", send.ExternalTxID).
			Str("address", req.Address).
			Str("amount", req.Amount.String()).
			Msg("refund sent but outcome not recorded, reservation left in flight")
		return result, err
	}

	metrics.RefundsTotal.WithLabelValues(kind, resultLabel(send)).Inc()
	logSend(log, send, req.Address, req.Amount.String(), req.Asset)
	s.events.publish(ctx, key, req.Chain, send)
	return result, nil
}

func validateRefund(req domain.RefundRequest) error {
	if req.TransactionID == "" {
		return apperror.Validation("refund transaction_id is required")
	}
	if req.Reason == "" {
		return apperror.Validation("refund reason is required")
	}
	if !req.Amount.IsPositive() {
		return apperror.ErrInvalidAmount()
	}
	return nil
}

// safeSend maps a panicking wallet into a failed result.
func safeSend(ctx context.Context, wallet ports.Wallet, req domain.WalletSendRequest) (res domain.WalletSendResult) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.SendFailed(apperror.InternalError(fmt.Errorf("wallet send panic: %v", r)))
		}
	}()
	return wallet.Send(ctx, req)
}

func resultLabel(send domain.WalletSendResult) string {
	if send.Success {
		return "succeeded"
	}
	return "failed"
}

func logSend(log zerolog.Logger, send domain.WalletSendResult, address, amount, asset string) {
	if send.Success {
		log.Info().
			Str("tx_id", send.ExternalTxID).
			Str("address", address).
			Str("amount", amount).
			Str("asset", asset).
			Msg("refund sent")
		return
	}
	log.Error().
		Str("class", string(send.FailureClass)).
		Str("reason", send.Reason).
		Str("address", address).
		Str("amount", amount).
		Str("asset", asset).
		Msg("refund failed")
}

type completionPublisher struct {
	pub   ports.Publisher
	topic string
	log   zerolog.Logger
}

// publish is fire-and-forget.
func (p *completionPublisher) publish(ctx context.Context, key string, chain domain.Chain, send domain.WalletSendResult) {
	if p.pub == nil || p.topic == "" {
		return
	}
	ev := domain.RefundCompletedEvent{
		EventID:      uuid.NewString(),
		Key:          key,
		Chain:        chain,
		Success:      send.Success,
		ExternalTxID: send.ExternalTxID,
		Reason:       send.Reason,
		OccurredAt:   time.Now().UTC(),
	}
	if err := p.pub.Publish(ctx, p.topic, ev); err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("publish refund.completed failed")
	}
}
