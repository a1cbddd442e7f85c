package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/service"
	"github.com/Bryan490125/Smart-Parking/pkg/response"
)

// SlotHandler 车位模块 HTTP 处理器
type SlotHandler struct {
	slotSvc service.SlotService
}

// NewSlotHandler 创建 SlotHandler
func NewSlotHandler(slotSvc service.SlotService) *SlotHandler {
	return &SlotHandler{slotSvc: slotSvc}
}

// ListSlots 获取车位列表，可按区域、状态过滤
// GET /api/v1/slots
func (h *SlotHandler) ListSlots(c *gin.Context) {
	var req dto.SlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slots, err := h.slotSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleSlotError(c, err)
		return
	}

	response.OK(c, slots)
}

// SlotAvailability 查询指定日期各车位的已占用时间窗口
// GET /api/v1/slots/availability?zone_id=&date=
func (h *SlotHandler) SlotAvailability(c *gin.Context) {
	var req dto.SlotAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.slotSvc.Availability(c.Request.Context(), &req)
	if err != nil {
		h.handleSlotError(c, err)
		return
	}

	response.OK(c, result)
}

// CreateSlot 创建车位（admin/staff）
// POST /api/v1/slots
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.slotSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSlotError(c, err)
		return
	}

	response.Created(c, slot)
}

// GetSlot 获取车位详情
// GET /api/v1/slots/:id
func (h *SlotHandler) GetSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "车位ID不能为空")
		return
	}

	slot, err := h.slotSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSlotError(c, err)
		return
	}

	response.OK(c, slot)
}

// UpdateSlot 更新车位（admin/staff）
// PUT /api/v1/slots/:id
func (h *SlotHandler) UpdateSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "车位ID不能为空")
		return
	}

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slot, err := h.slotSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSlotError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteSlot 删除车位（admin，级联删除该车位的预约）
// DELETE /api/v1/slots/:id
func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "车位ID不能为空")
		return
	}

	if err := h.slotSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSlotError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSlotError 统一处理车位模块业务错误
func (h *SlotHandler) handleSlotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 14001, "车位不存在")
	case errors.Is(err, service.ErrSlotNumberExists):
		response.Conflict(c, 14002, "该区域内车位编号已存在")
	case errors.Is(err, service.ErrZoneNotFound):
		response.NotFound(c, 13001, "停车区域不存在")
	default:
		response.InternalError(c)
	}
}
