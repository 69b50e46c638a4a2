package service

import (
	"context"
	"sync"
	"sync/atomic"

	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// memReservations is an in-memory ports.ReservationRepository with the same
// insert-if-absent and terminal-is-final rules as the SQL one.
type memReservations struct {
	mu      sync.Mutex
	records map[string]*domain.ReservationRecord
}

func newMemReservations() *memReservations {
	return &memReservations{records: map[string]*domain.ReservationRecord{}}
}

func (m *memReservations) Reserve(_ context.Context, key string, rc domain.ReservationContext) (domain.ReserveStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[key]; ok {
		return domain.ReserveStatusFor(rec.Status), nil
	}
	m.records[key] = &domain.ReservationRecord{
		Key:     key,
		Status:  domain.ReservationStatusReserved,
		Reason:  rc.Reason,
		EventID: rc.EventID,
	}
	return domain.ReserveStatusReserved, nil
}

func (m *memReservations) RecordOutcome(_ context.Context, key string, outcome domain.ReservationOutcome) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok || rec.IsTerminal() {
		return false, nil
	}
	rec.Status = outcome.Status()
	if outcome.ExternalTxID != "" {
		id := outcome.ExternalTxID
		rec.ExternalTxID = &id
	}
	if outcome.FailureReason != "" {
		reason := outcome.FailureReason
		rec.FailureReason = &reason
	}
	return true, nil
}

// record returns a copy of the stored record, or nil.
func (m *memReservations) record(key string) *domain.ReservationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

// countingWallet records every send and returns a fixed tx id.
type countingWallet struct {
	chain  domain.Chain
	sender string
	sends  atomic.Int32
	mu     sync.Mutex
	last   domain.WalletSendRequest
}

func (w *countingWallet) Chain() domain.Chain { return w.chain }

func (w *countingWallet) GetAddressFromTransaction(_ context.Context, _ string) (string, error) {
	return w.sender, nil
}

func (w *countingWallet) Send(_ context.Context, req domain.WalletSendRequest) domain.WalletSendResult {
	w.sends.Add(1)
	w.mu.Lock()
	w.last = req
	w.mu.Unlock()
	return domain.SendSucceeded("0xrefund")
}

type singleWalletRegistry struct{ w ports.Wallet }

func (r singleWalletRegistry) Wallet(domain.Chain) (ports.Wallet, error) { return r.w, nil }

// memSlices holds conversion slices keyed by pair. DecrementRemaining is a
// conditional update like the SQL one.
type memSlices struct {
	mu     sync.Mutex
	slices map[string]*domain.ConversionSlice
	order  []string
}

func newMemSlices(slices ...domain.ConversionSlice) *memSlices {
	m := &memSlices{slices: map[string]*domain.ConversionSlice{}}
	for _, s := range slices {
		s := s
		m.slices[s.Pair()] = &s
		m.order = append(m.order, s.Pair())
	}
	return m
}

func (m *memSlices) ListOpen(_ context.Context) ([]domain.ConversionSlice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ConversionSlice, 0, len(m.order))
	for _, pair := range m.order {
		out = append(out, *m.slices[pair])
	}
	return out, nil
}

func (m *memSlices) DecrementRemaining(_ context.Context, _ pgx.Tx, source, target string, qty decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slices[source+"->"+target]
	if !ok || s.Remaining.LessThan(qty) {
		return false, nil
	}
	s.Remaining = s.Remaining.Sub(qty)
	return true, nil
}

func (m *memSlices) remaining(pair string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slices[pair].Remaining
}

type passThroughTransactor struct{}

func (passThroughTransactor) WithSerializable(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(&mockTx{})
}

// fakeExchange serves fixed balances and records placed orders.
type fakeExchange struct {
	balances domain.BalanceSnapshot
	mu       sync.Mutex
	orders   []domain.OrderResult
}

func (e *fakeExchange) GetBalances(context.Context) (domain.BalanceSnapshot, error) {
	return e.balances, nil
}

func (e *fakeExchange) PlaceMarketOrder(_ context.Context, symbol string, side domain.OrderSide, qty decimal.Decimal) (*domain.OrderResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o := domain.OrderResult{
		OrderID:  int64(len(e.orders) + 1),
		Symbol:   symbol,
		Side:     side,
		Quantity: qty,
		Status:   "FILLED",
	}
	e.orders = append(e.orders, o)
	return &o, nil
}

func (e *fakeExchange) GetBookTicker(_ context.Context, symbol string) (*domain.BookTicker, error) {
	return &domain.BookTicker{Symbol: symbol, BidPrice: decimal.NewFromInt(1), AskPrice: decimal.NewFromInt(1)}, nil
}

func (e *fakeExchange) placed() []domain.OrderResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.OrderResult(nil), e.orders...)
}
