package model

// ── 车位状态 ──
// 车位 status 是人工设置的展示标记（如维护中），与“某时间窗内是否有
// 重叠的 active 预约”相互独立，两者不互相派生。

const (
	SlotStatusAvailable   = "available"
	SlotStatusOccupied    = "occupied"
	SlotStatusMaintenance = "maintenance"
)

// ValidSlotStatus 判断车位状态取值是否合法
func ValidSlotStatus(status string) bool {
	return status == SlotStatusAvailable || status == SlotStatusOccupied || status == SlotStatusMaintenance
}

// ParkingSlot 车位表 — 对应 parking_slots
// (slot_number, zone_id) 唯一
type ParkingSlot struct {
	SlotID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"slot_id"`
	SlotNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_slots_number_zone" json:"slot_number"`
	ZoneID     string `gorm:"type:uuid;not null;uniqueIndex:uq_slots_number_zone"        json:"zone_id"`
	Status     string `gorm:"type:varchar(20);not null;default:'available'"   json:"status"`
	BaseModel

	// 关联
	Zone *ParkingZone `gorm:"foreignKey:ZoneID;references:ZoneID" json:"zone,omitempty"`
}

// TableName 指定表名
func (ParkingSlot) TableName() string { return "parking_slots" }
