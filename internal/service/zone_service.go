package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/model"
	"github.com/Bryan490125/Smart-Parking/internal/repository"
)

// ── 停车区域模块业务错误 ──

var (
	ErrZoneNotFound   = errors.New("停车区域不存在")
	ErrZoneNameExists = errors.New("区域名称已存在")
)

// ZoneService 停车区域业务接口
type ZoneService interface {
	Create(ctx context.Context, req *dto.CreateZoneRequest) (*dto.ZoneResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ZoneResponse, error)
	List(ctx context.Context) ([]dto.ZoneResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateZoneRequest) (*dto.ZoneResponse, error)
	Delete(ctx context.Context, id string) error
}

type zoneService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewZoneService 创建 ZoneService 实例
func NewZoneService(repo *repository.Repository, logger *zap.Logger) ZoneService {
	return &zoneService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *zoneService) Create(ctx context.Context, req *dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	zone := &model.ParkingZone{
		ZoneName:    req.ZoneName,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
	}

	if err := s.repo.Zone.Create(ctx, zone); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrZoneNameExists
		}
		s.logger.Error("创建区域失败", zap.Error(err))
		return nil, err
	}

	return s.toZoneResponse(ctx, zone), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *zoneService) GetByID(ctx context.Context, id string) (*dto.ZoneResponse, error) {
	zone, err := s.repo.Zone.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		s.logger.Error("查询区域失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toZoneResponse(ctx, zone), nil
}

// ────────────────────── List ──────────────────────

func (s *zoneService) List(ctx context.Context) ([]dto.ZoneResponse, error) {
	zones, err := s.repo.Zone.List(ctx)
	if err != nil {
		s.logger.Error("列出区域失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ZoneResponse, 0, len(zones))
	for i := range zones {
		result = append(result, *s.toZoneResponse(ctx, &zones[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *zoneService) Update(ctx context.Context, id string, req *dto.UpdateZoneRequest) (*dto.ZoneResponse, error) {
	zone, err := s.repo.Zone.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	if req.ZoneName != nil {
		zone.ZoneName = *req.ZoneName
	}
	if req.Location != nil {
		zone.Location = *req.Location
	}
	if req.Description != nil {
		zone.Description = *req.Description
	}
	if req.Capacity != nil {
		zone.Capacity = *req.Capacity
	}

	if err := s.repo.Zone.Update(ctx, zone); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrZoneNameExists
		}
		s.logger.Error("更新区域失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toZoneResponse(ctx, zone), nil
}

// ────────────────────── Delete ──────────────────────

func (s *zoneService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Zone.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrZoneNotFound
		}
		return err
	}

	if err := s.repo.Zone.Delete(ctx, id); err != nil {
		s.logger.Error("删除区域失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *zoneService) toZoneResponse(ctx context.Context, zone *model.ParkingZone) *dto.ZoneResponse {
	slotCount, err := s.repo.Zone.CountSlots(ctx, zone.ZoneID)
	if err != nil {
		s.logger.Warn("统计区域车位数失败", zap.String("zone_id", zone.ZoneID), zap.Error(err))
	}

	return &dto.ZoneResponse{
		ID:          zone.ZoneID,
		ZoneName:    zone.ZoneName,
		Location:    zone.Location,
		Description: zone.Description,
		Capacity:    zone.Capacity,
		SlotCount:   slotCount,
		CreatedAt:   zone.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   zone.UpdatedAt.Format(time.RFC3339),
	}
}
