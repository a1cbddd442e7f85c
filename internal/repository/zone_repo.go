package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Bryan490125/Smart-Parking/internal/model"
)

// ZoneRepository 停车区域数据访问接口
type ZoneRepository interface {
	Create(ctx context.Context, zone *model.ParkingZone) error
	GetByID(ctx context.Context, id string) (*model.ParkingZone, error)
	List(ctx context.Context) ([]model.ParkingZone, error)
	Update(ctx context.Context, zone *model.ParkingZone) error
	Delete(ctx context.Context, id string) error
	CountSlots(ctx context.Context, zoneID string) (int64, error)
}

type zoneRepo struct {
	db *gorm.DB
}

// NewZoneRepo 创建 ZoneRepository 实例
func NewZoneRepo(db *gorm.DB) ZoneRepository {
	return &zoneRepo{db: db}
}

func (r *zoneRepo) Create(ctx context.Context, zone *model.ParkingZone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *zoneRepo) GetByID(ctx context.Context, id string) (*model.ParkingZone, error) {
	var zone model.ParkingZone
	err := r.db.WithContext(ctx).
		Where("zone_id = ?", id).
		First(&zone).Error
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepo) List(ctx context.Context) ([]model.ParkingZone, error) {
	var zones []model.ParkingZone
	err := r.db.WithContext(ctx).
		Order("zone_name ASC").
		Find(&zones).Error
	return zones, err
}

func (r *zoneRepo) Update(ctx context.Context, zone *model.ParkingZone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete 硬删除区域，级联删除其下车位（外键 ON DELETE CASCADE）
func (r *zoneRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("zone_id = ?", id).
		Delete(&model.ParkingZone{}).Error
}

func (r *zoneRepo) CountSlots(ctx context.Context, zoneID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ParkingSlot{}).
		Where("zone_id = ?", zoneID).
		Count(&n).Error
	return n, err
}
