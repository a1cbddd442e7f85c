package model

// ParkingZone 停车区域表 — 对应 parking_zones
type ParkingZone struct {
	ZoneID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"zone_id"`
	ZoneName    string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"zone_name"`
	Location    string `gorm:"type:varchar(200);not null"                     json:"location"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Capacity    int    `gorm:"not null;default:0"                             json:"capacity"`
	BaseModel
}

// TableName 指定表名
func (ParkingZone) TableName() string { return "parking_zones" }
