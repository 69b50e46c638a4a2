package handler

import (
	"time"

	"settlement-orchestrator/internal/adapter/http/middleware"
	"settlement-orchestrator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up the ops routes.
type RouterDeps struct {
	HealthCheckers []ports.HealthChecker
	Reconciler     ports.ConversionReconciler // nil = trigger disabled
	Orphans        ports.OrphanRefunder       // nil = trigger disabled
	Budget         middleware.Budget          // nil = triggers unthrottled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine for the internal ops listener.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	throttle := func(group string) gin.HandlerFunc {
		if deps.Budget == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.Throttle(deps.Budget, group, 6, time.Minute, deps.Logger)
	}

	ops := NewOpsHandler(deps.Reconciler, deps.Orphans)
	triggers := r.Group("/ops")
	{
		if deps.Reconciler != nil {
			triggers.POST("/reconcile", throttle("reconcile"), ops.Reconcile)
		}
		if deps.Orphans != nil {
			triggers.POST("/orphans/sweep", throttle("orphan_sweep"), ops.SweepOrphans)
		}
	}

	return r
}
