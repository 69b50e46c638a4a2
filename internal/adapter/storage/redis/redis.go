package redis

import (
	"context"
	"fmt"

	"settlement-orchestrator/config"
	"settlement-orchestrator/pkg/lazy"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Msg("redis connection established")

	return client, nil
}

// NewLazyClient returns a handle that connects on first use and retries the
// connection on later calls until one succeeds.
func NewLazyClient(cfg config.RedisConfig, log zerolog.Logger) *lazy.Handle[*goredis.Client] {
	return lazy.New(func(ctx context.Context) (*goredis.Client, error) {
		return NewClient(ctx, cfg, log)
	})
}
