package dto

// ── 车位模块 DTO ──

// CreateSlotRequest 创建车位请求
type CreateSlotRequest struct {
	SlotNumber string `json:"slot_number" binding:"required,min=1,max=20"`
	ZoneID     string `json:"zone_id"     binding:"required,uuid"`
	Status     string `json:"status"      binding:"omitempty,oneof=available occupied maintenance"`
}

// UpdateSlotRequest 更新车位请求
type UpdateSlotRequest struct {
	SlotNumber *string `json:"slot_number" binding:"omitempty,min=1,max=20"`
	Status     *string `json:"status"      binding:"omitempty,oneof=available occupied maintenance"`
}

// SlotListRequest 车位列表查询参数
type SlotListRequest struct {
	ZoneID string `form:"zone_id" binding:"omitempty,uuid"`
	Status string `form:"status"  binding:"omitempty,oneof=available occupied maintenance"`
}

// SlotAvailabilityRequest 指定日期车位占用查询参数
type SlotAvailabilityRequest struct {
	ZoneID string `form:"zone_id" binding:"omitempty,uuid"`
	Date   string `form:"date"    binding:"required,datetime=2006-01-02"`
}

// SlotResponse 车位信息响应
type SlotResponse struct {
	ID         string     `json:"id"`
	SlotNumber string     `json:"slot_number"`
	ZoneID     string     `json:"zone_id"`
	Zone       *ZoneBrief `json:"zone,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

// SlotAvailabilityResponse 车位 + 当日占用窗口
// 车位 status 与时间窗占用是两个独立信号：status=available 不代表
// 任意时间窗都空闲，反之亦然
type SlotAvailabilityResponse struct {
	Slot     SlotResponse        `json:"slot"`
	Occupied []ReservationWindow `json:"occupied"`
}

// ReservationWindow 已被占用的时间窗（半开区间）
type ReservationWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
