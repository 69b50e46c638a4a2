// Package lazy provides a connection handle that is dialed on first use and
// cached afterwards.
package lazy

import (
	"context"
	"sync"
)

// Handle caches the first successful result of its init function. A failed
// init is not cached, so the next Get dials again.
type Handle[T any] struct {
	mu    sync.Mutex
	init  func(ctx context.Context) (T, error)
	value T
	ready bool
}

// New returns a handle that calls init on first Get.
func New[T any](init func(ctx context.Context) (T, error)) *Handle[T] {
	return &Handle[T]{init: init}
}

// Get returns the cached value, initializing it if necessary.
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ready {
		return h.value, nil
	}

	v, err := h.init(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	h.value = v
	h.ready = true
	return v, nil
}

// Peek returns the value without initializing it.
func (h *Handle[T]) Peek() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value, h.ready
}

// Reset drops the cached value so the next Get initializes again.
func (h *Handle[T]) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	var zero T
	h.value = zero
	h.ready = false
}
