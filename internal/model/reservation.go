package model

import "time"

// ── 预约状态 ──

const (
	ReservationStatusActive    = "active"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// Reservation 预约表 — 对应 reservations
// 预约只做状态流转（active → cancelled / completed），从不删除。
// completed 不落库：读取时按 end_time 惰性派生，见 EffectiveStatus。
type Reservation struct {
	ReservationID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reservation_id"`
	UserID          string    `gorm:"type:uuid;not null"                             json:"user_id"`
	SlotID          string    `gorm:"type:uuid;not null"                             json:"slot_id"`
	ReservationDate time.Time `gorm:"type:date;not null"                             json:"reservation_date"`
	StartTime       time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime         time.Time `gorm:"not null"                                       json:"end_time"`
	Status          string    `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	BaseModel

	// 关联
	User *User        `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Slot *ParkingSlot `gorm:"foreignKey:SlotID;references:SlotID" json:"slot,omitempty"`
}

// TableName 指定表名
func (Reservation) TableName() string { return "reservations" }

// EffectiveStatus 按当前时间派生对外状态
// 存储状态仍为 active 但窗口已结束的预约视为 completed
func (r *Reservation) EffectiveStatus(now time.Time) string {
	if r.Status == ReservationStatusActive && !r.EndTime.After(now) {
		return ReservationStatusCompleted
	}
	return r.Status
}

// Overlaps 半开区间 [start, end) 重叠判断
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
