package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pitstop/oficina-api/internal/app/dashboard"
	"go.uber.org/zap"
)

// DashboardHandler expõe as métricas agregadas da oficina
type DashboardHandler struct {
	dashboard *dashboard.Service
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.dashboard.GetMetrics(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
