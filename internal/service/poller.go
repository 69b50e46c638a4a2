package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RunEvery calls fn every interval until ctx is done. Failures are logged and
// retried on the next tick. A non-positive interval disables the loop.
func RunEvery(ctx context.Context, name string, interval time.Duration, fn func(ctx context.Context) error, log zerolog.Logger) {
	if interval <= 0 {
		log.Info().Str("job", name).Msg("periodic job disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Str("job", name).Msg("periodic job failed")
			}
		}
	}
}
