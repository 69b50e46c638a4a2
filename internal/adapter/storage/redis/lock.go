package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"settlement-orchestrator/config"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/metrics"

	"github.com/go-redsync/redsync/v4"
	redsyncredis "github.com/go-redsync/redsync/v4/redis"
	redsyncgoredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const maxLockTries = 1000

var (
	// ErrLockLost is the cancellation cause of a critical section whose lock expired.
	ErrLockLost = errors.New("distributed lock lost")
	// ErrNilLockFn is returned when a nil function is passed to WithLock.
	ErrNilLockFn = errors.New("lock function is nil")
	// ErrEmptyLockKey is returned when an empty lock key is provided.
	ErrEmptyLockKey = errors.New("lock key cannot be empty")
	// ErrLockTriesInvalid is returned when lock tries is outside [1, 1000].
	ErrLockTriesInvalid = errors.New("lock tries must be between 1 and 1000")
	// ErrLockRetryDelayNegative is returned when retry delay is negative.
	ErrLockRetryDelayNegative = errors.New("lock retry delay cannot be negative")
	// ErrLockDriftFactorInvalid is returned when drift factor is outside [0, 1).
	ErrLockDriftFactorInvalid = errors.New("lock drift factor must be between 0 (inclusive) and 1 (exclusive)")
)

// ClientSource resolves the Redis client per operation. *lazy.Handle satisfies it.
type ClientSource interface {
	Get(ctx context.Context) (*goredis.Client, error)
}

// clientPool implements the redsync pool with lazy client resolution, so the
// worker can start before Redis is reachable.
type clientPool struct {
	src ClientSource
}

func (p *clientPool) Get(ctx context.Context) (redsyncredis.Conn, error) {
	rdb, err := p.src.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get redis client for lock pool: %w", err)
	}
	return redsyncgoredis.NewPool(rdb).Get(ctx)
}

// Locker implements ports.Locker with redsync.
type Locker struct {
	rs   *redsync.Redsync
	opts config.LockConfig
	log  zerolog.Logger
}

// NewLocker creates a distributed locker. opts.TTL is the default expiry used
// when WithLock is called with a non-positive ttl.
func NewLocker(src ClientSource, opts config.LockConfig, log zerolog.Logger) (*Locker, error) {
	if err := validateLockConfig(opts); err != nil {
		return nil, err
	}
	return &Locker{
		rs:   redsync.New(&clientPool{src: src}),
		opts: opts,
		log:  log.With().Str("component", "locker").Logger(),
	}, nil
}

func validateLockConfig(opts config.LockConfig) error {
	if opts.Tries < 1 || opts.Tries > maxLockTries {
		return ErrLockTriesInvalid
	}
	if opts.RetryDelay < 0 {
		return ErrLockRetryDelayNegative
	}
	if opts.DriftFactor < 0 || opts.DriftFactor >= 1 {
		return ErrLockDriftFactorInvalid
	}
	return nil
}

// WithLock runs fn while holding the lock on key. The lock is extended while
// fn runs and released when fn returns or panics. If an extension cannot be
// obtained before the lock's validity deadline, fn's context is cancelled with
// cause ErrLockLost and fn's error comes back as LCK_002. Otherwise fn's error
// is returned unchanged.
func (l *Locker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	if fn == nil {
		return ErrNilLockFn
	}
	if strings.TrimSpace(key) == "" {
		return ErrEmptyLockKey
	}
	if ttl <= 0 {
		ttl = l.opts.TTL
	}

	mutex := l.rs.NewMutex(
		key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(l.opts.Tries),
		redsync.WithRetryDelay(l.opts.RetryDelay),
		redsync.WithDriftFactor(l.opts.DriftFactor),
	)

	if err := mutex.LockContext(ctx); err != nil {
		metrics.LockEventsTotal.WithLabelValues("acquire_failed").Inc()
		l.log.Warn().Err(err).Str("lock_key", key).Msg("failed to acquire lock")
		return apperror.ErrLockUnavailable(fmt.Errorf("acquire %s: %w", key, err))
	}
	l.log.Debug().Str("lock_key", key).Time("until", mutex.Until()).Msg("lock acquired")

	fnCtx, cancel := context.WithCancelCause(ctx)
	done := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		l.keepAlive(fnCtx, mutex, key, ttl, done, cancel)
	}()

	defer func() {
		close(done)
		<-watcherDone
		cancel(nil)

		releaseCtx := context.WithoutCancel(ctx)
		if ok, err := mutex.UnlockContext(releaseCtx); !ok || err != nil {
			l.log.Warn().Err(err).Str("lock_key", key).Bool("unlock_ok", ok).Msg("failed to release lock")
		} else {
			l.log.Debug().Str("lock_key", key).Msg("lock released")
		}
	}()

	if err := fn(fnCtx); err != nil {
		if errors.Is(context.Cause(fnCtx), ErrLockLost) {
			return apperror.ErrLockLost(fmt.Errorf("%s: %w", key, err))
		}
		return err
	}
	return nil
}

// keepAlive extends the lock every ttl/3.
func (l *Locker) keepAlive(ctx context.Context, mutex *redsync.Mutex, key string, ttl time.Duration,
	done <-chan struct{}, cancel context.CancelCauseFunc) {
	interval := ttl / 3
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := mutex.ExtendContext(ctx)
			if ok && err == nil {
				continue
			}
			if time.Now().Before(mutex.Until()) {
				metrics.LockEventsTotal.WithLabelValues("extend_failed").Inc()
				l.log.Warn().Err(err).Str("lock_key", key).Time("until", mutex.Until()).Msg("lock extension failed, will retry")
				continue
			}
			metrics.LockEventsTotal.WithLabelValues("lost").Inc()
			l.log.Error().Err(err).Str("lock_key", key).Msg("lock lost, cancelling critical section")
			cancel(ErrLockLost)
			return
		}
	}
}
