package redis

import (
	"context"
	"strconv"
	"testing"

	"settlement-orchestrator/config"
	"settlement-orchestrator/pkg/lazy"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSource returns a lazily resolved client backed by an in-memory Redis.
func newSource(t *testing.T) (*lazy.Handle[*goredis.Client], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return lazy.New(func(ctx context.Context) (*goredis.Client, error) {
		return client, nil
	}), mr
}

func redisConfigFor(t *testing.T, mr *miniredis.Miniredis) config.RedisConfig {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return config.RedisConfig{Host: mr.Host(), Port: port}
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), redisConfigFor(t, mr), zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewLazyClient_RetriesUntilReachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redisConfigFor(t, mr)
	mr.Close()

	handle := NewLazyClient(cfg, zerolog.Nop())
	_, err := handle.Get(context.Background())
	require.Error(t, err)

	require.NoError(t, mr.Restart())
	client, err := handle.Get(context.Background())
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestHealthCheck(t *testing.T) {
	src, _ := newSource(t)
	hc := NewHealthCheck(src)

	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "redis", hc.Name())
}
