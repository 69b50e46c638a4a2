package redis

import (
	"context"
	"fmt"
	"time"
)

// RequestBudget is a fixed-window request counter shared by every worker
// calling the same rate-limited upstream.
type RequestBudget struct {
	src    ClientSource
	prefix string
	now    func() time.Time
}

// NewRequestBudget creates a new Redis-backed request budget.
func NewRequestBudget(src ClientSource) *RequestBudget {
	return &RequestBudget{
		src:    src,
		prefix: "budget:",
		now:    time.Now,
	}
}

// BudgetResult holds the outcome of a budget check.
type BudgetResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// Take consumes one unit of the budget for key in the current window.
// It uses INCR + EXPIRE on a key scoped by windowID = now / window.
func (b *RequestBudget) Take(ctx context.Context, key string, limit int64, window time.Duration) (*BudgetResult, error) {
	client, err := b.src.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("redis budget client: %w", err)
	}

	seconds := int64(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	windowID := b.now().Unix() / seconds
	redisKey := fmt.Sprintf("%s%s:%d", b.prefix, key, windowID)

	count, err := client.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis budget incr: %w", err)
	}

	// Expiry only on the first increment of a window.
	if count == 1 {
		client.Expire(ctx, redisKey, time.Duration(seconds)*time.Second+time.Second)
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &BudgetResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * seconds,
	}, nil
}
