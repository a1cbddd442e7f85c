package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/service"
	"github.com/Bryan490125/Smart-Parking/pkg/response"
)

// ZoneHandler 停车区域模块 HTTP 处理器
type ZoneHandler struct {
	zoneSvc service.ZoneService
}

// NewZoneHandler 创建 ZoneHandler
func NewZoneHandler(zoneSvc service.ZoneService) *ZoneHandler {
	return &ZoneHandler{zoneSvc: zoneSvc}
}

// ListZones 获取区域列表（所有已认证用户）
// GET /api/v1/zones
func (h *ZoneHandler) ListZones(c *gin.Context) {
	zones, err := h.zoneSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, zones)
}

// CreateZone 创建区域（admin/staff）
// POST /api/v1/zones
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	var req dto.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	zone, err := h.zoneSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleZoneError(c, err)
		return
	}

	response.Created(c, zone)
}

// GetZone 获取区域详情
// GET /api/v1/zones/:id
func (h *ZoneHandler) GetZone(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	zone, err := h.zoneSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleZoneError(c, err)
		return
	}

	response.OK(c, zone)
}

// UpdateZone 更新区域（admin/staff）
// PUT /api/v1/zones/:id
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	var req dto.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	zone, err := h.zoneSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleZoneError(c, err)
		return
	}

	response.OK(c, zone)
}

// DeleteZone 删除区域（admin，级联删除区域内车位及其预约）
// DELETE /api/v1/zones/:id
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "区域ID不能为空")
		return
	}

	if err := h.zoneSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleZoneError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleZoneError 统一处理区域模块业务错误
func (h *ZoneHandler) handleZoneError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrZoneNotFound):
		response.NotFound(c, 13001, "停车区域不存在")
	case errors.Is(err, service.ErrZoneNameExists):
		response.Conflict(c, 13002, "区域名称已存在")
	default:
		response.InternalError(c)
	}
}
