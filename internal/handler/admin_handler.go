package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/model"
	"github.com/dkruglov/newsimage/internal/storage"
)

// AdminHandler serves operational endpoints: model-call audit stats.
type AdminHandler struct {
	calls  storage.CallRepository // nil when auditing is disabled
	logger *zap.Logger
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(calls storage.CallRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		calls:  calls,
		logger: logger,
	}
}

// Stats reports totals from the model-call audit log.
// Route: GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	if h.calls == nil {
		c.JSON(http.StatusOK, gin.H{
			"audit_enabled": false,
		})
		return
	}

	ctx := c.Request.Context()

	stats, err := h.calls.Stats(ctx)
	if err != nil {
		h.logger.Error("querying stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to query stats",
		})
		return
	}

	keywordCalls, err := h.calls.CountByStage(ctx, model.StageKeywords)
	if err != nil {
		h.logger.Error("counting keyword calls", zap.Error(err))
	}
	scoreCalls, err := h.calls.CountByStage(ctx, model.StageScore)
	if err != nil {
		h.logger.Error("counting score calls", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"audit_enabled":   true,
		"total_calls":     stats.Total,
		"failed_calls":    stats.Failed,
		"avg_duration_ms": stats.AvgDuration,
		"keyword_calls":   keywordCalls,
		"score_calls":     scoreCalls,
	})
}
