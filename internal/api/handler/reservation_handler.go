package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/service"
	"github.com/Bryan490125/Smart-Parking/pkg/response"
)

// ReservationHandler 预约模块 HTTP 处理器
type ReservationHandler struct {
	reservationSvc service.ReservationService
}

// NewReservationHandler 创建 ReservationHandler
func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

// CreateReservation 创建预约
// 时间窗口冲突返回 409，绝不静默重试
// POST /api/v1/reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	reservation, err := h.reservationSvc.Create(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.Created(c, reservation)
}

// ListReservations 获取预约列表（学生仅能查看本人预约）
// GET /api/v1/reservations
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	reservations, total, err := h.reservationSvc.List(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OKPage(c, reservations, total, req.GetPage(), req.GetPageSize())
}

// GetReservation 获取预约详情（本人或 staff/admin）
// GET /api/v1/reservations/:id
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "预约ID不能为空")
		return
	}

	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	reservation, err := h.reservationSvc.GetByID(c.Request.Context(), id, callerID, callerRole)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OK(c, reservation)
}

// CancelReservation 取消预约（本人或 staff/admin；重复取消幂等）
// PUT /api/v1/reservations/:id/cancel
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "预约ID不能为空")
		return
	}

	callerID, callerRole, ok := MustGetCaller(c)
	if !ok {
		return
	}

	reservation, err := h.reservationSvc.Cancel(c.Request.Context(), id, callerID, callerRole)
	if err != nil {
		h.handleReservationError(c, err)
		return
	}

	response.OK(c, reservation)
}

// handleReservationError 统一处理预约模块业务错误
func (h *ReservationHandler) handleReservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 15001, "时间范围无效：开始时间必须早于结束时间")
	case errors.Is(err, service.ErrDurationOutOfRange):
		response.BadRequest(c, 15002, "预约时长超出允许范围")
	case errors.Is(err, service.ErrDateMismatch):
		response.BadRequest(c, 15003, "预约日期与开始时间不在同一天")
	case errors.Is(err, service.ErrSlotUnavailable):
		response.Conflict(c, 15004, "车位在该时间段已被预约")
	case errors.Is(err, service.ErrSlotUnderMaintenance):
		response.Conflict(c, 15005, "车位维护中，暂不可预约")
	case errors.Is(err, service.ErrReservationNotFound):
		response.NotFound(c, 15006, "预约不存在")
	case errors.Is(err, service.ErrReservationCompleted):
		response.BadRequest(c, 15007, "预约已结束，无法取消")
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 14001, "车位不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 10003, "无权限访问")
	default:
		response.InternalError(c)
	}
}
