package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/model"
)

// AnalyticsRepository 预约历史只读聚合接口
type AnalyticsRepository interface {
	Summary(ctx context.Context, dayStart, dayEnd time.Time) (*dto.AnalyticsSummary, error)
	ZoneRanking(ctx context.Context) ([]dto.ZoneRankingItem, error)
	PeakPeriods(ctx context.Context) ([]dto.PeakPeriodItem, error)
}

type analyticsRepo struct {
	db *gorm.DB
}

// NewAnalyticsRepo 创建 AnalyticsRepository 实例
func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) Summary(ctx context.Context, dayStart, dayEnd time.Time) (*dto.AnalyticsSummary, error) {
	var s dto.AnalyticsSummary
	db := r.db.WithContext(ctx).Model(&model.Reservation{})

	if err := db.Session(&gorm.Session{}).Count(&s.Total).Error; err != nil {
		return nil, err
	}
	// active 为派生口径：存储 active 且窗口未结束
	if err := db.Session(&gorm.Session{}).
		Where("status = ? AND end_time > ?", model.ReservationStatusActive, time.Now()).
		Count(&s.Active).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", model.ReservationStatusCancelled).
		Count(&s.Cancelled).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("reservation_date >= ? AND reservation_date < ?", dayStart, dayEnd).
		Count(&s.Today).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

// ZoneRanking 预约数按区域聚合（车位→区域两级关联），降序
func (r *analyticsRepo) ZoneRanking(ctx context.Context) ([]dto.ZoneRankingItem, error) {
	var items []dto.ZoneRankingItem
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Select("parking_zones.zone_name AS zone_name, COUNT(*) AS count").
		Joins("JOIN parking_slots ON parking_slots.slot_id = reservations.slot_id").
		Joins("JOIN parking_zones ON parking_zones.zone_id = parking_slots.zone_id").
		Group("parking_zones.zone_name").
		Order("count DESC").
		Scan(&items).Error
	return items, err
}

// PeakPeriods 预约数按开始时间的小时聚合，按小时升序
func (r *analyticsRepo) PeakPeriods(ctx context.Context) ([]dto.PeakPeriodItem, error) {
	var items []dto.PeakPeriodItem
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Select("EXTRACT(HOUR FROM start_time)::int AS hour, COUNT(*) AS count").
		Group("hour").
		Order("hour ASC").
		Scan(&items).Error
	return items, err
}
