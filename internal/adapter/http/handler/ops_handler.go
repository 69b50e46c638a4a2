package handler

import (
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

// OpsHandler runs background passes on operator request.
type OpsHandler struct {
	reconciler ports.ConversionReconciler
	orphans    ports.OrphanRefunder
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(reconciler ports.ConversionReconciler, orphans ports.OrphanRefunder) *OpsHandler {
	return &OpsHandler{reconciler: reconciler, orphans: orphans}
}

// Reconcile handles POST /ops/reconcile.
func (h *OpsHandler) Reconcile(c *gin.Context) {
	report, err := h.reconciler.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// SweepOrphans handles POST /ops/orphans/sweep.
func (h *OpsHandler) SweepOrphans(c *gin.Context) {
	n, err := h.orphans.Sweep(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"refunded": n})
}
