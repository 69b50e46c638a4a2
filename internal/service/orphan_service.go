package service

import (
	"context"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/metrics"

	"github.com/rs/zerolog"
)

// OrphanRefunderImpl implements ports.OrphanRefunder. The live stream and the
// sweep share one reservation per payment id, so a payment seen by both is
// refunded once.
type OrphanRefunderImpl struct {
	repo      ports.OrphanRefundRepository
	source    ports.UnmatchedPaymentSource
	wallets   ports.WalletRegistry
	events    *completionPublisher
	batchSize int
	log       zerolog.Logger
}

// NewOrphanRefunder creates a new OrphanRefunderImpl.
func NewOrphanRefunder(
	repo ports.OrphanRefundRepository,
	source ports.UnmatchedPaymentSource,
	wallets ports.WalletRegistry,
	publisher ports.Publisher,
	completedTopic string,
	batchSize int,
	log zerolog.Logger,
) *OrphanRefunderImpl {
	log = log.With().Str("component", "orphan_refunds").Logger()
	return &OrphanRefunderImpl{
		repo:      repo,
		source:    source,
		wallets:   wallets,
		events:    &completionPublisher{pub: publisher, topic: completedTopic, log: log},
		batchSize: batchSize,
		log:       log,
	}
}

// OrphanKey is the key reported for an orphan refund.
func OrphanKey(paymentID string) string {
	return "orphan:" + paymentID
}

// Refund returns an unmatched payment to its sender. Once reserved, every
// failure (including an unsupported chain) is recorded so the sweep does not
// pick the payment up again.
func (s *OrphanRefunderImpl) Refund(ctx context.Context, payment domain.UnmatchedPayment) (*domain.RefundResult, error) {
	if payment.PaymentID == "" {
		return nil, apperror.Validation("payment_id is required")
	}
	key := OrphanKey(payment.PaymentID)
	log := s.log.With().Str("payment_id", payment.PaymentID).Str("chain", string(payment.Chain)).Logger()

	status, err := s.repo.Reserve(ctx, domain.NewOrphanRefund(payment))
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	metrics.ReservationsTotal.WithLabelValues(string(status)).Inc()
	result := &domain.RefundResult{Key: key, Reserve: status}
	if status != domain.ReserveStatusReserved {
		log.Info().Str("reserve", string(status)).Msg("orphan refund already handled, skipping")
		metrics.RefundsTotal.WithLabelValues(refundKindOrphan, "duplicate").Inc()
		return result, nil
	}

	var send domain.WalletSendResult
	wallet, err := s.wallets.Wallet(payment.Chain)
	switch {
	case err != nil:
		send = domain.SendFailed(err)
	case payment.From == "":
		send = domain.SendFailed(apperror.ErrInvalidAddress(payment.From))
	default:
		send = safeSend(ctx, wallet, domain.WalletSendRequest{
			Address: payment.From,
			Amount:  payment.Amount,
			Asset:   payment.Asset,
		})
	}
	result.Executed = true
	result.Send = &send

	updated, err := s.repo.RecordOutcome(context.WithoutCancel(ctx), payment.PaymentID, send.Outcome())
	if err != nil {
		log.Error().Err(err).
			Bool("success", send.Success).
			Str("tx_id", send.ExternalTxID).
			Msg("orphan refund sent but outcome not recorded, left pending")
		return result, apperror.ErrDatabaseError(err)
	}
	if !updated {
		log.Warn().Msg("orphan refund already terminal, outcome ignored")
	}

	metrics.RefundsTotal.WithLabelValues(refundKindOrphan, resultLabel(send)).Inc()
	logSend(log, send, payment.From, payment.Amount.String(), payment.Asset)
	s.events.publish(ctx, key, payment.Chain, send)
	return result, nil
}

// Sweep refunds one batch of unmatched payments and returns how many were
// sent successfully. Per-payment failures are logged and skipped.
func (s *OrphanRefunderImpl) Sweep(ctx context.Context) (int, error) {
	payments, err := s.source.ListUnmatched(ctx, s.batchSize)
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}

	refunded := 0
	for _, p := range payments {
		if err := ctx.Err(); err != nil {
			return refunded, err
		}
		res, err := s.Refund(ctx, p)
		if err != nil {
			s.log.Error().Err(err).Str("payment_id", p.PaymentID).Msg("orphan refund failed")
			continue
		}
		if res.Executed && res.Send.Success {
			refunded++
		}
	}

	if len(payments) > 0 {
		s.log.Info().Int("candidates", len(payments)).Int("refunded", refunded).Msg("orphan sweep finished")
	}
	return refunded, nil
}
