package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	redisStore "settlement-orchestrator/internal/adapter/storage/redis"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxRequestID))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()), RequestLogger(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_002")
}

type stubBudget struct {
	allowed bool
	err     error
	keys    []string
}

func (b *stubBudget) Take(_ context.Context, key string, limit int64, _ time.Duration) (*redisStore.BudgetResult, error) {
	b.keys = append(b.keys, key)
	if b.err != nil {
		return nil, b.err
	}
	remaining := int64(0)
	if b.allowed {
		remaining = limit - 1
	}
	return &redisStore.BudgetResult{Allowed: b.allowed, Limit: limit, Remaining: remaining, ResetAt: time.Now().Add(time.Minute).Unix()}, nil
}

func throttled(budget Budget) *gin.Engine {
	router := gin.New()
	router.POST("/run", Throttle(budget, "reconcile", 2, time.Minute, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestThrottle_Allowed(t *testing.T) {
	budget := &stubBudget{allowed: true}
	w := httptest.NewRecorder()
	throttled(budget).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/run", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"ops:reconcile"}, budget.keys)
}

func TestThrottle_Exhausted(t *testing.T) {
	w := httptest.NewRecorder()
	throttled(&stubBudget{allowed: false}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/run", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "OPS_001")
}

func TestThrottle_StoreDownAllows(t *testing.T) {
	w := httptest.NewRecorder()
	throttled(&stubBudget{err: errors.New("redis down")}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/run", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
