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

// ── 车位模块业务错误 ──

var (
	ErrSlotNotFound     = errors.New("车位不存在")
	ErrSlotNumberExists = errors.New("该区域内车位编号已存在")
)

// SlotService 车位业务接口
type SlotService interface {
	Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SlotResponse, error)
	List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error)
	// Availability 返回车位及其在指定日期内的占用时间窗
	Availability(ctx context.Context, req *dto.SlotAvailabilityRequest) ([]dto.SlotAvailabilityResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	Delete(ctx context.Context, id string) error
}

type slotService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewSlotService 创建 SlotService 实例
func NewSlotService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) SlotService {
	return &slotService{repo: repo, loc: loc, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *slotService) Create(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	if _, err := s.repo.Zone.GetByID(ctx, req.ZoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.SlotStatusAvailable
	}

	slot := &model.ParkingSlot{
		SlotNumber: req.SlotNumber,
		ZoneID:     req.ZoneID,
		Status:     status,
	}

	if err := s.repo.Slot.Create(ctx, slot); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlotNumberExists
		}
		s.logger.Error("创建车位失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取区域关联
	created, err := s.repo.Slot.GetByID(ctx, slot.SlotID)
	if err != nil {
		return nil, err
	}
	return toSlotResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *slotService) GetByID(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询车位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSlotResponse(slot), nil
}

// ────────────────────── List ──────────────────────

func (s *slotService) List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error) {
	slots, err := s.repo.Slot.List(ctx, req.ZoneID, req.Status)
	if err != nil {
		s.logger.Error("列出车位失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toSlotResponse(&slots[i]))
	}
	return result, nil
}

// ────────────────────── Availability ──────────────────────

// Availability 车位状态与时间窗占用是两个独立信号：
// 这里把指定日期内每个车位被 active 预约占用的半开区间一并返回，
// 由前端呈现空闲时段
func (s *slotService) Availability(ctx context.Context, req *dto.SlotAvailabilityRequest) ([]dto.SlotAvailabilityResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	slots, err := s.repo.Slot.List(ctx, req.ZoneID, "")
	if err != nil {
		s.logger.Error("列出车位失败", zap.Error(err))
		return nil, err
	}

	slotIDs := make([]string, 0, len(slots))
	for i := range slots {
		slotIDs = append(slotIDs, slots[i].SlotID)
	}

	reservations, err := s.repo.Reservation.ListActiveInRange(ctx, slotIDs, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("查询占用时间窗失败", zap.Error(err))
		return nil, err
	}

	windowsBySlot := make(map[string][]dto.ReservationWindow)
	for i := range reservations {
		r := &reservations[i]
		windowsBySlot[r.SlotID] = append(windowsBySlot[r.SlotID], dto.ReservationWindow{
			StartTime: r.StartTime.In(s.loc).Format(time.RFC3339),
			EndTime:   r.EndTime.In(s.loc).Format(time.RFC3339),
		})
	}

	result := make([]dto.SlotAvailabilityResponse, 0, len(slots))
	for i := range slots {
		occupied := windowsBySlot[slots[i].SlotID]
		if occupied == nil {
			occupied = []dto.ReservationWindow{}
		}
		result = append(result, dto.SlotAvailabilityResponse{
			Slot:     *toSlotResponse(&slots[i]),
			Occupied: occupied,
		})
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *slotService) Update(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	slot, err := s.repo.Slot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	if req.SlotNumber != nil {
		slot.SlotNumber = *req.SlotNumber
	}
	if req.Status != nil {
		slot.Status = *req.Status
	}

	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlotNumberExists
		}
		s.logger.Error("更新车位失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSlotResponse(slot), nil
}

// ────────────────────── Delete ──────────────────────

func (s *slotService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Slot.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}

	if err := s.repo.Slot.Delete(ctx, id); err != nil {
		s.logger.Error("删除车位失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toSlotResponse(slot *model.ParkingSlot) *dto.SlotResponse {
	resp := &dto.SlotResponse{
		ID:         slot.SlotID,
		SlotNumber: slot.SlotNumber,
		ZoneID:     slot.ZoneID,
		Status:     slot.Status,
		CreatedAt:  slot.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  slot.UpdatedAt.Format(time.RFC3339),
	}
	if slot.Zone != nil {
		resp.Zone = &dto.ZoneBrief{
			ID:       slot.Zone.ZoneID,
			ZoneName: slot.Zone.ZoneName,
			Location: slot.Zone.Location,
		}
	}
	return resp
}
