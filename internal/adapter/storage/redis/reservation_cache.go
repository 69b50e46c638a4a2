package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"settlement-orchestrator/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const reservationCacheTTL = 24 * time.Hour

// ReservationCache implements ports.ReservationCache using Redis.
// Only terminal statuses are stored.
type ReservationCache struct {
	src    ClientSource
	prefix string
	ttl    time.Duration
}

// NewReservationCache creates a new Redis-backed reservation cache.
func NewReservationCache(src ClientSource) *ReservationCache {
	return &ReservationCache{
		src:    src,
		prefix: "reservation:",
		ttl:    reservationCacheTTL,
	}
}

// Get returns the cached terminal status of key. ok is false on a miss.
func (c *ReservationCache) Get(ctx context.Context, key string) (domain.ReservationStatus, bool, error) {
	client, err := c.src.Get(ctx)
	if err != nil {
		return "", false, fmt.Errorf("redis reservation get: %w", err)
	}

	val, err := client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis reservation get: %w", err)
	}
	return domain.ReservationStatus(val), true, nil
}

// Set caches a terminal status. Non-terminal statuses are ignored.
func (c *ReservationCache) Set(ctx context.Context, key string, status domain.ReservationStatus) error {
	if status != domain.ReservationStatusSucceeded && status != domain.ReservationStatusFailed {
		return nil
	}

	client, err := c.src.Get(ctx)
	if err != nil {
		return fmt.Errorf("redis reservation set: %w", err)
	}
	if err := client.Set(ctx, c.prefix+key, string(status), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis reservation set: %w", err)
	}
	return nil
}
