package redis

import "context"

// HealthCheck implements ports.HealthChecker for Redis.
type HealthCheck struct {
	src ClientSource
}

// NewHealthCheck creates a Redis health checker.
func NewHealthCheck(src ClientSource) *HealthCheck {
	return &HealthCheck{src: src}
}

// Ping checks Redis connectivity.
func (h *HealthCheck) Ping(ctx context.Context) error {
	client, err := h.src.Get(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx).Err()
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "redis"
}
