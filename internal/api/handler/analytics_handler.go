package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Bryan490125/Smart-Parking/internal/service"
	"github.com/Bryan490125/Smart-Parking/pkg/response"
)

// AnalyticsHandler 统计分析模块 HTTP 处理器
type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

// NewAnalyticsHandler 创建 AnalyticsHandler
func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Overview 获取预约统计概览（admin）
// GET /api/v1/admin/analytics
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	result, err := h.analyticsSvc.Overview(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
