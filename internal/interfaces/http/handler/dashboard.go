package handler

import (
	"github.com/gin-gonic/gin"

	"seo-flow-api/internal/application/dashboard"
	"seo-flow-api/internal/interfaces/http/dto"
	"seo-flow-api/internal/interfaces/http/middleware"
	"seo-flow-api/pkg/logger"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	svc *dashboard.Service
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetDashboard 获取最近的项目与报告
// @Summary 仪表盘
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.Response[dto.DashboardResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	summary, err := h.svc.Load(ctx, middleware.GetUserIDFromGin(c))
	if err != nil {
		logger.Error(ctx, "failed to load dashboard", err)
		dto.InternalError(c, "failed to load dashboard")
		return
	}
	dto.Success(c, dto.ToDashboardResponse(summary))
}
