package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"settlement-orchestrator/config"
	"settlement-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockConfig(tries int) config.LockConfig {
	return config.LockConfig{
		TTL:         2 * time.Second,
		Tries:       tries,
		RetryDelay:  20 * time.Millisecond,
		DriftFactor: 0.01,
	}
}

func TestLocker_WithLock_RunsFn(t *testing.T) {
	src, mr := newSource(t)
	locker, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)

	executed := false
	err = locker.WithLock(context.Background(), "lock:wallet:evm:0xabc", 0, func(ctx context.Context) error {
		executed = true
		assert.True(t, mr.Exists("lock:wallet:evm:0xabc"), "key should exist while held")
		return nil
	})

	require.NoError(t, err)
	assert.True(t, executed)
	assert.False(t, mr.Exists("lock:wallet:evm:0xabc"), "key should be released")
}

func TestLocker_WithLock_PropagatesFnError(t *testing.T) {
	src, mr := newSource(t)
	locker, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)

	fnErr := apperror.ErrLedgerRejected(errors.New("nonce too low"))
	err = locker.WithLock(context.Background(), "k", time.Second, func(ctx context.Context) error {
		return fnErr
	})

	assert.Same(t, fnErr, err)
	assert.False(t, mr.Exists("k"))
}

func TestLocker_WithLock_ReleasesOnPanic(t *testing.T) {
	src, mr := newSource(t)
	locker, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)

	assert.Panics(t, func() {
		_ = locker.WithLock(context.Background(), "k", time.Second, func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.False(t, mr.Exists("k"))
}

func TestLocker_WithLock_Validation(t *testing.T) {
	src, _ := newSource(t)
	locker, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, locker.WithLock(context.Background(), "  ", time.Second, func(ctx context.Context) error { return nil }), ErrEmptyLockKey)
	assert.ErrorIs(t, locker.WithLock(context.Background(), "k", time.Second, nil), ErrNilLockFn)
}

func TestNewLocker_InvalidConfig(t *testing.T) {
	src, _ := newSource(t)

	tests := []struct {
		name string
		cfg  config.LockConfig
		want error
	}{
		{"zero tries", config.LockConfig{Tries: 0}, ErrLockTriesInvalid},
		{"too many tries", config.LockConfig{Tries: maxLockTries + 1}, ErrLockTriesInvalid},
		{"negative delay", config.LockConfig{Tries: 1, RetryDelay: -time.Second}, ErrLockRetryDelayNegative},
		{"drift too large", config.LockConfig{Tries: 1, DriftFactor: 1}, ErrLockDriftFactorInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLocker(src, tt.cfg, zerolog.Nop())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLocker_HolderBlocksOtherWorker(t *testing.T) {
	src, _ := newSource(t)
	workerA, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)
	workerB, err := NewLocker(src, lockConfig(1), zerolog.Nop())
	require.NoError(t, err)

	acquired := make(chan struct{})
	release := make(chan struct{})
	aDone := make(chan error, 1)

	go func() {
		aDone <- workerA.WithLock(context.Background(), "lock:wallet:solana:S1", time.Second, func(ctx context.Context) error {
			close(acquired)
			<-release
			return nil
		})
	}()
	<-acquired

	bRan := false
	err = workerB.WithLock(context.Background(), "lock:wallet:solana:S1", time.Second, func(ctx context.Context) error {
		bRan = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, bRan)
	assert.Equal(t, "LCK_001", apperror.CodeOf(err))
	assert.Equal(t, apperror.ClassRetriable, apperror.ClassOf(err))

	close(release)
	require.NoError(t, <-aDone)

	err = workerB.WithLock(context.Background(), "lock:wallet:solana:S1", time.Second, func(ctx context.Context) error {
		bRan = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, bRan)
}

func TestLocker_WaitingWorkerRunsAfterHolder(t *testing.T) {
	src, _ := newSource(t)
	workerA, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)
	workerB, err := NewLocker(src, lockConfig(100), zerolog.Nop())
	require.NoError(t, err)

	var (
		mu     sync.Mutex
		events []string
	)
	record := func(e string) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	acquired := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		assert.NoError(t, workerA.WithLock(context.Background(), "k", time.Second, func(ctx context.Context) error {
			record("a-start")
			close(acquired)
			time.Sleep(150 * time.Millisecond)
			record("a-end")
			return nil
		}))
	}()

	go func() {
		defer wg.Done()
		<-acquired
		assert.NoError(t, workerB.WithLock(context.Background(), "k", time.Second, func(ctx context.Context) error {
			record("b-start")
			record("b-end")
			return nil
		}))
	}()

	wg.Wait()
	assert.Equal(t, []string{"a-start", "a-end", "b-start", "b-end"}, events)
}

func TestLocker_ExtendsWhileFnRuns(t *testing.T) {
	src, mr := newSource(t)
	locker, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)

	ttl := 600 * time.Millisecond
	err = locker.WithLock(context.Background(), "k", ttl, func(ctx context.Context) error {
		// Age the key so that only an extension can keep it alive.
		mr.FastForward(400 * time.Millisecond)
		require.LessOrEqual(t, mr.TTL("k"), 200*time.Millisecond)

		time.Sleep(300 * time.Millisecond)
		assert.Greater(t, mr.TTL("k"), 200*time.Millisecond, "lock should have been extended")

		mr.FastForward(300 * time.Millisecond)
		assert.True(t, mr.Exists("k"))
		return ctx.Err()
	})
	require.NoError(t, err)
}

func TestLocker_LostLockCancelsFn(t *testing.T) {
	src, mr := newSource(t)
	locker, err := NewLocker(src, lockConfig(3), zerolog.Nop())
	require.NoError(t, err)

	ttl := 300 * time.Millisecond
	err = locker.WithLock(context.Background(), "k", ttl, func(ctx context.Context) error {
		mr.Del("k")

		select {
		case <-ctx.Done():
			assert.ErrorIs(t, context.Cause(ctx), ErrLockLost)
			return context.Cause(ctx)
		case <-time.After(3 * time.Second):
			t.Fatal("critical section was not cancelled after losing the lock")
			return nil
		}
	})
	assert.ErrorIs(t, err, ErrLockLost)
	assert.Equal(t, "LCK_002", apperror.CodeOf(err))
}
