package dto

// ── 停车区域模块 DTO ──

// CreateZoneRequest 创建区域请求
type CreateZoneRequest struct {
	ZoneName    string `json:"zone_name"   binding:"required,min=1,max=100"`
	Location    string `json:"location"    binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Capacity    int    `json:"capacity"    binding:"omitempty,min=0"`
}

// UpdateZoneRequest 更新区域请求
type UpdateZoneRequest struct {
	ZoneName    *string `json:"zone_name"   binding:"omitempty,min=1,max=100"`
	Location    *string `json:"location"    binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Capacity    *int    `json:"capacity"    binding:"omitempty,min=0"`
}

// ZoneResponse 区域信息响应
type ZoneResponse struct {
	ID          string `json:"id"`
	ZoneName    string `json:"zone_name"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	Capacity    int    `json:"capacity"`
	SlotCount   int64  `json:"slot_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ZoneBrief 区域简要信息（嵌入车位响应）
type ZoneBrief struct {
	ID       string `json:"id"`
	ZoneName string `json:"zone_name"`
	Location string `json:"location"`
}
