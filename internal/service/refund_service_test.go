package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports/mocks"
	"settlement-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type refundTestDeps struct {
	svc       *RefundCoordinatorImpl
	ledger    *mocks.MockReservationLedger
	wallets   *mocks.MockWalletRegistry
	wallet    *mocks.MockWallet
	publisher *mocks.MockPublisher
	ctrl      *gomock.Controller
}

func setupRefunds(t *testing.T) *refundTestDeps {
	ctrl := gomock.NewController(t)
	d := &refundTestDeps{
		ledger:    mocks.NewMockReservationLedger(ctrl),
		wallets:   mocks.NewMockWalletRegistry(ctrl),
		wallet:    mocks.NewMockWallet(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		ctrl:      ctrl,
	}
	d.svc = NewRefundCoordinator(d.ledger, d.wallets, d.publisher, "refund.completed", zerolog.Nop())
	return d
}

func refundReq() domain.RefundRequest {
	return domain.RefundRequest{
		EventID:       "evt-1",
		Chain:         domain.ChainEVM,
		TransactionID: "t1",
		Reason:        "wrong_amount",
		Amount:        decimal.RequireFromString("1.5"),
		Asset:         "USDC",
	}
}

const refundKey = "refund:t1:wrong_amount"

func TestRefundByTransaction_SendsToSender(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.wallets.EXPECT().Wallet(domain.ChainEVM).Return(d.wallet, nil)
	d.wallet.EXPECT().GetAddressFromTransaction(ctx, "t1").Return("0xsender", nil)
	d.ledger.EXPECT().Reserve(ctx, refundKey, domain.ReservationContext{Reason: "wrong_amount", EventID: "evt-1"}).
		Return(domain.ReserveStatusReserved, nil)
	d.wallet.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, req domain.WalletSendRequest) domain.WalletSendResult {
		assert.Equal(t, "0xsender", req.Address)
		assert.Equal(t, "USDC", req.Asset)
		assert.True(t, req.Amount.Equal(decimal.RequireFromString("1.5")))
		return domain.SendSucceeded("0xrefund")
	})
	d.ledger.EXPECT().RecordOutcome(gomock.Any(), refundKey, domain.ReservationOutcome{Success: true, ExternalTxID: "0xrefund"}).Return(nil)
	d.publisher.EXPECT().Publish(ctx, "refund.completed", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, v any) error {
		ev, ok := v.(domain.RefundCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, refundKey, ev.Key)
		assert.True(t, ev.Success)
		assert.Equal(t, "0xrefund", ev.ExternalTxID)
		return nil
	})

	res, err := d.svc.RefundByTransaction(ctx, refundReq())
	require.NoError(t, err)
	assert.True(t, res.Executed)
	assert.Equal(t, domain.ReserveStatusReserved, res.Reserve)
	require.NotNil(t, res.Send)
	assert.True(t, res.Send.Success)
}

func TestRefundByTransaction_DuplicateDoesNotSend(t *testing.T) {
	for _, status := range []domain.ReserveStatus{
		domain.ReserveStatusInFlight,
		domain.ReserveStatusAlreadySucceeded,
		domain.ReserveStatusAlreadyFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			d := setupRefunds(t)
			defer d.ctrl.Finish()
			ctx := context.Background()

			d.wallets.EXPECT().Wallet(domain.ChainEVM).Return(d.wallet, nil)
			d.wallet.EXPECT().GetAddressFromTransaction(ctx, "t1").Return("0xsender", nil)
			d.ledger.EXPECT().Reserve(ctx, refundKey, gomock.Any()).Return(status, nil)

			res, err := d.svc.RefundByTransaction(ctx, refundReq())
			require.NoError(t, err)
			assert.False(t, res.Executed)
			assert.Nil(t, res.Send)
			assert.Equal(t, status, res.Reserve)
		})
	}
}

func TestRefundByTransaction_SendFailureIsRecorded(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	failed := domain.SendFailed(apperror.ErrLedgerRejected(errors.New("insufficient funds")))
	d.wallets.EXPECT().Wallet(domain.ChainEVM).Return(d.wallet, nil)
	d.wallet.EXPECT().GetAddressFromTransaction(ctx, "t1").Return("0xsender", nil)
	d.ledger.EXPECT().Reserve(ctx, refundKey, gomock.Any()).Return(domain.ReserveStatusReserved, nil)
	d.wallet.EXPECT().Send(ctx, gomock.Any()).Return(failed)
	d.ledger.EXPECT().RecordOutcome(gomock.Any(), refundKey, failed.Outcome()).Return(nil)
	d.publisher.EXPECT().Publish(ctx, "refund.completed", gomock.Any()).Return(errors.New("broker down"))

	res, err := d.svc.RefundByTransaction(ctx, refundReq())
	require.NoError(t, err)
	assert.True(t, res.Executed)
	assert.False(t, res.Send.Success)
	assert.Equal(t, apperror.ClassPermanent, res.Send.FailureClass)
}

func TestRefundByTransaction_WalletPanicIsRecordedAsFailure(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.wallets.EXPECT().Wallet(domain.ChainEVM).Return(d.wallet, nil)
	d.wallet.EXPECT().GetAddressFromTransaction(ctx, "t1").Return("0xsender", nil)
	d.ledger.EXPECT().Reserve(ctx, refundKey, gomock.Any()).Return(domain.ReserveStatusReserved, nil)
	d.wallet.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(func(context.Context, domain.WalletSendRequest) domain.WalletSendResult {
		panic("nil signer")
	})
	d.ledger.EXPECT().RecordOutcome(gomock.Any(), refundKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, o domain.ReservationOutcome) error {
			assert.False(t, o.Success)
			assert.Contains(t, o.FailureReason, "nil signer")
			return nil
		})
	d.publisher.EXPECT().Publish(ctx, "refund.completed", gomock.Any()).Return(nil)

	res, err := d.svc.RefundByTransaction(ctx, refundReq())
	require.NoError(t, err)
	assert.False(t, res.Send.Success)
}

func TestRefundByTransaction_SenderLookupFailsBeforeReserving(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.wallets.EXPECT().Wallet(domain.ChainEVM).Return(d.wallet, nil)
	d.wallet.EXPECT().GetAddressFromTransaction(ctx, "t1").Return("", apperror.ErrTransactionNotFound("t1"))

	_, err := d.svc.RefundByTransaction(ctx, refundReq())
	require.Error(t, err)
	assert.Equal(t, "LED_003", apperror.CodeOf(err))
}

func TestRefundByTransaction_RecordFailureIsReturned(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.wallets.EXPECT().Wallet(domain.ChainEVM).Return(d.wallet, nil)
	d.wallet.EXPECT().GetAddressFromTransaction(ctx, "t1").Return("0xsender", nil)
	d.ledger.EXPECT().Reserve(ctx, refundKey, gomock.Any()).Return(domain.ReserveStatusReserved, nil)
	d.wallet.EXPECT().Send(ctx, gomock.Any()).Return(domain.SendSucceeded("0xrefund"))
	d.ledger.EXPECT().RecordOutcome(gomock.Any(), refundKey, gomock.Any()).Return(apperror.ErrDatabaseError(errors.New("conn reset")))

	res, err := d.svc.RefundByTransaction(ctx, refundReq())
	require.Error(t, err)
	assert.True(t, res.Executed)
}

func TestRefund_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.RefundRequest)
	}{
		{"missing transaction", func(r *domain.RefundRequest) { r.TransactionID = "" }},
		{"missing reason", func(r *domain.RefundRequest) { r.Reason = "" }},
		{"zero amount", func(r *domain.RefundRequest) { r.Amount = decimal.Zero }},
		{"negative amount", func(r *domain.RefundRequest) { r.Amount = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupRefunds(t)
			defer d.ctrl.Finish()

			req := refundReq()
			tt.mutate(&req)
			_, err := d.svc.RefundByTransaction(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apperror.ClassValidation, apperror.ClassOf(err))
		})
	}
}

func TestRefundToAddress_RequiresAddress(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()

	_, err := d.svc.RefundToAddress(context.Background(), refundReq())
	assert.Equal(t, apperror.ClassValidation, apperror.ClassOf(err))
}

func TestRefundToAddress_UnsupportedChain(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()

	req := refundReq()
	req.Chain = "tron"
	req.Address = "TXYZ"
	d.wallets.EXPECT().Wallet(domain.Chain("tron")).Return(nil, apperror.ErrUnsupportedChain("tron"))

	_, err := d.svc.RefundToAddress(context.Background(), req)
	assert.Equal(t, "VAL_003", apperror.CodeOf(err))
}

func TestRefundToAddress_UsesGivenAddress(t *testing.T) {
	d := setupRefunds(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	req := refundReq()
	req.Address = "0xexplicit"
	req.Memo = "order 42"

	d.wallets.EXPECT().Wallet(domain.ChainEVM).Return(d.wallet, nil)
	d.ledger.EXPECT().Reserve(ctx, refundKey, gomock.Any()).Return(domain.ReserveStatusReserved, nil)
	d.wallet.EXPECT().Send(ctx, domain.WalletSendRequest{
		Address: "0xexplicit",
		Amount:  req.Amount,
		Asset:   "USDC",
		Memo:    "order 42",
	}).Return(domain.SendSucceeded("0xrefund"))
	d.ledger.EXPECT().RecordOutcome(gomock.Any(), refundKey, gomock.Any()).Return(nil)
	d.publisher.EXPECT().Publish(ctx, "refund.completed", gomock.Any()).Return(nil)

	res, err := d.svc.RefundToAddress(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.Executed)
}

func TestRefund_TriggeredTwiceSendsOnce(t *testing.T) {
	ctx := context.Background()
	wallet := &countingWallet{chain: domain.ChainEVM, sender: "0xsender"}
	ledger := NewReservationLedger(newMemReservations(), nil, zerolog.Nop())
	svc := NewRefundCoordinator(ledger, singleWalletRegistry{w: wallet}, nil, "", zerolog.Nop())

	var wg sync.WaitGroup
	results := make([]*domain.RefundResult, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.RefundByTransaction(ctx, refundReq())
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wallet.sends.Load())
	executed := 0
	for _, r := range results {
		if r != nil && r.Executed {
			executed++
		}
	}
	assert.Equal(t, 1, executed)

	// A later redelivery sees the terminal record.
	res, err := svc.RefundByTransaction(ctx, refundReq())
	require.NoError(t, err)
	assert.Equal(t, domain.ReserveStatusAlreadySucceeded, res.Reserve)
	assert.Equal(t, int32(1), wallet.sends.Load())
}
