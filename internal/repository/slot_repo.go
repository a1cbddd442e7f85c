package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Bryan490125/Smart-Parking/internal/model"
)

// SlotRepository 车位数据访问接口
type SlotRepository interface {
	Create(ctx context.Context, slot *model.ParkingSlot) error
	GetByID(ctx context.Context, id string) (*model.ParkingSlot, error)
	List(ctx context.Context, zoneID, status string) ([]model.ParkingSlot, error)
	Update(ctx context.Context, slot *model.ParkingSlot) error
	Delete(ctx context.Context, id string) error
}

type slotRepo struct {
	db *gorm.DB
}

// NewSlotRepo 创建 SlotRepository 实例
func NewSlotRepo(db *gorm.DB) SlotRepository {
	return &slotRepo{db: db}
}

func (r *slotRepo) Create(ctx context.Context, slot *model.ParkingSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *slotRepo) GetByID(ctx context.Context, id string) (*model.ParkingSlot, error) {
	var slot model.ParkingSlot
	err := r.db.WithContext(ctx).
		Preload("Zone").
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepo) List(ctx context.Context, zoneID, status string) ([]model.ParkingSlot, error) {
	var slots []model.ParkingSlot
	db := r.db.WithContext(ctx)

	if zoneID != "" {
		db = db.Where("zone_id = ?", zoneID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	err := db.Preload("Zone").
		Order("slot_number ASC").
		Find(&slots).Error
	return slots, err
}

func (r *slotRepo) Update(ctx context.Context, slot *model.ParkingSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// Delete 硬删除车位，级联删除其预约记录（外键 ON DELETE CASCADE）
func (r *slotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.ParkingSlot{}).Error
}
