package binance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"settlement-orchestrator/config"
	"settlement-orchestrator/internal/adapter/storage/redis"
	"settlement-orchestrator/internal/core/domain"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/metrics"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const budgetKey = "exchange:binance"

// Budget is the shared request budget for the exchange API.
type Budget interface {
	Take(ctx context.Context, key string, limit int64, window time.Duration) (*redis.BudgetResult, error)
}

// retriableCodes are exchange error codes for transient conditions:
// disconnected, too many requests, backend timeout.
var retriableCodes = map[int64]bool{
	-1001: true,
	-1003: true,
	-1007: true,
}

// Client implements ports.Exchange against the Binance spot API. Calls are
// paced locally, then pass through a shared request budget and a circuit
// breaker.
type Client struct {
	api     *binance.Client
	breaker *gobreaker.CircuitBreaker
	pacer   *rate.Limiter // nil = unpaced
	budget  Budget
	limit   int64
	window  time.Duration
	log     zerolog.Logger
}

// NewClient creates a Binance client. budget may be nil to disable budgeting.
func NewClient(cfg config.ExchangeConfig, budget Budget, log zerolog.Logger) *Client {
	api := binance.NewClient(cfg.APIKey, cfg.SecretKey)
	if cfg.BaseURL != "" {
		api.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	api.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	log = log.With().Str("component", "binance").Logger()
	bc := cfg.Breaker
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "binance",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bc.ConsecutiveFailures
		},
		// Rejections are answers from a healthy exchange.
		IsSuccessful: func(err error) bool {
			return err == nil || apperror.ClassOf(err) != apperror.ClassRetriable
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	var pacer *rate.Limiter
	if cfg.MaxRPS > 0 {
		pacer = rate.NewLimiter(rate.Limit(cfg.MaxRPS), max(cfg.Burst, 1))
	}

	return &Client{
		api:     api,
		breaker: breaker,
		pacer:   pacer,
		budget:  budget,
		limit:   int64(cfg.RequestBudget),
		window:  cfg.BudgetWindow,
		log:     log,
	}
}

// GetBalances returns free balances keyed by asset.
func (c *Client) GetBalances(ctx context.Context) (domain.BalanceSnapshot, error) {
	account, err := call(ctx, c, "get_balances", func() (*binance.Account, error) {
		return c.api.NewGetAccountService().Do(ctx)
	})
	if err != nil {
		return nil, err
	}

	snapshot := make(domain.BalanceSnapshot, len(account.Balances))
	for _, b := range account.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, apperror.ErrExchangeRejected(fmt.Errorf("balance %s: %w", b.Asset, err))
		}
		if free.IsPositive() {
			snapshot[b.Asset] = free
		}
	}
	return snapshot, nil
}

// PlaceMarketOrder submits a market order for qty units of the base asset.
func (c *Client) PlaceMarketOrder(ctx context.Context, symbol string, side domain.OrderSide, qty decimal.Decimal) (*domain.OrderResult, error) {
	if !qty.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	clientOrderID := "sor" + strings.ReplaceAll(uuid.NewString(), "-", "")

	resp, err := call(ctx, c, "place_order", func() (*binance.CreateOrderResponse, error) {
		return c.api.NewCreateOrderService().
			Symbol(symbol).
			Side(binance.SideType(side)).
			Type(binance.OrderTypeMarket).
			Quantity(qty.String()).
			NewClientOrderID(clientOrderID).
			Do(ctx)
	})
	if err != nil {
		return nil, err
	}

	executed, err := decimal.NewFromString(resp.ExecutedQuantity)
	if err != nil {
		executed = qty
	}
	return &domain.OrderResult{
		OrderID:       resp.OrderID,
		ClientOrderID: resp.ClientOrderID,
		Symbol:        resp.Symbol,
		Side:          side,
		Quantity:      executed,
		Status:        string(resp.Status),
	}, nil
}

// GetBookTicker returns the best bid and ask for symbol.
func (c *Client) GetBookTicker(ctx context.Context, symbol string) (*domain.BookTicker, error) {
	tickers, err := call(ctx, c, "book_ticker", func() ([]*binance.BookTicker, error) {
		return c.api.NewListBookTickersService().Symbol(symbol).Do(ctx)
	})
	if err != nil {
		return nil, err
	}
	for _, t := range tickers {
		if t.Symbol != symbol {
			continue
		}
		bid, err := decimal.NewFromString(t.BidPrice)
		if err != nil {
			return nil, apperror.ErrExchangeRejected(err)
		}
		ask, err := decimal.NewFromString(t.AskPrice)
		if err != nil {
			return nil, apperror.ErrExchangeRejected(err)
		}
		return &domain.BookTicker{Symbol: t.Symbol, BidPrice: bid, AskPrice: ask}, nil
	}
	return nil, apperror.ErrExchangeRejected(fmt.Errorf("no book ticker for %s", symbol))
}

// call waits for the local pacer, spends one unit of budget and runs fn
// through the breaker.
func call[T any](ctx context.Context, c *Client, op string, fn func() (T, error)) (T, error) {
	var zero T
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			metrics.ExchangeCallsTotal.WithLabelValues(op, "paced_out").Inc()
			return zero, apperror.ErrExchangeUnavailable(fmt.Errorf("pace %s: %w", op, err))
		}
	}
	if err := c.take(ctx); err != nil {
		metrics.ExchangeCallsTotal.WithLabelValues(op, "budget_exhausted").Inc()
		return zero, err
	}

	out, err := c.breaker.Execute(func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, classify(err)
		}
		return v, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = apperror.ErrExchangeUnavailable(err)
		}
		metrics.ExchangeCallsTotal.WithLabelValues(op, string(apperror.ClassOf(err))).Inc()
		c.log.Warn().Err(err).Str("operation", op).Msg("exchange call failed")
		return zero, err
	}
	metrics.ExchangeCallsTotal.WithLabelValues(op, "ok").Inc()
	return out.(T), nil
}

// take fails open when the budget store is unreachable; the exchange still
// enforces its own limits.
func (c *Client) take(ctx context.Context) error {
	if c.budget == nil || c.limit <= 0 {
		return nil
	}
	res, err := c.budget.Take(ctx, budgetKey, c.limit, c.window)
	if err != nil {
		c.log.Warn().Err(err).Msg("request budget unavailable, proceeding")
		return nil
	}
	if !res.Allowed {
		return apperror.ErrExchangeBudgetExhausted()
	}
	return nil
}

func classify(err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		if retriableCodes[apiErr.Code] {
			return apperror.ErrExchangeUnavailable(err)
		}
		return apperror.ErrExchangeRejected(err)
	}
	return apperror.ErrExchangeUnavailable(err)
}
