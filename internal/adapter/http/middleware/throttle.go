package middleware

import (
	"context"
	"strconv"
	"time"

	redisStore "settlement-orchestrator/internal/adapter/storage/redis"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Budget is the shared counter behind Throttle.
type Budget interface {
	Take(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.BudgetResult, error)
}

// Throttle limits how often an operator endpoint group may run across all
// workers. A budget store failure lets the request through.
func Throttle(budget Budget, group string, limit int64, window time.Duration, log zerolog.Logger) gin.HandlerFunc {
	key := "ops:" + group
	return func(c *gin.Context) {
		result, err := budget.Take(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("throttle check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.New("OPS_001", "Operation throttled, retry later", apperror.ClassRetriable))
			c.Abort()
			return
		}

		c.Next()
	}
}
