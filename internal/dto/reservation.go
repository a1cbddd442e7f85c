package dto

import "time"

// ── 预约模块 DTO ──

// CreateReservationRequest 创建预约请求
// user_id 仅 staff/admin 代订时填写；学生只能为本人预约
type CreateReservationRequest struct {
	UserID          string    `json:"user_id"          binding:"omitempty,uuid"`
	SlotID          string    `json:"slot_id"          binding:"required,uuid"`
	ReservationDate string    `json:"reservation_date" binding:"required,datetime=2006-01-02"`
	StartTime       time.Time `json:"start_time"       binding:"required"`
	EndTime         time.Time `json:"end_time"         binding:"required"`
}

// ReservationListRequest 预约列表查询参数
// 学生只能查自己的预约；status 按派生状态过滤
type ReservationListRequest struct {
	PaginationRequest
	Status string `form:"status"  binding:"omitempty,oneof=active completed cancelled"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// ReservationResponse 预约信息响应
// status 为派生状态：窗口已结束的 active 预约显示为 completed
type ReservationResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	User            *UserBrief `json:"user,omitempty"`
	SlotID          string     `json:"slot_id"`
	Slot            *SlotBrief `json:"slot,omitempty"`
	ReservationDate string     `json:"reservation_date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Status          string     `json:"status"`
	CreatedAt       string     `json:"created_at"`
}

// UserBrief 用户简要信息（嵌入预约响应）
type UserBrief struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// SlotBrief 车位简要信息（嵌入预约响应）
type SlotBrief struct {
	ID         string     `json:"id"`
	SlotNumber string     `json:"slot_number"`
	Zone       *ZoneBrief `json:"zone,omitempty"`
}
