package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Bryan490125/Smart-Parking/config"
	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/model"
	"github.com/Bryan490125/Smart-Parking/internal/repository"
	pkgerrors "github.com/Bryan490125/Smart-Parking/pkg/errors"
)

// ── 预约模块业务错误 ──

var (
	ErrInvalidTimeRange     = errors.New("时间范围无效：开始时间必须早于结束时间")
	ErrDurationOutOfRange   = errors.New("预约时长超出允许范围")
	ErrDateMismatch         = errors.New("预约日期与开始时间不在同一天")
	ErrSlotUnderMaintenance = errors.New("车位维护中，暂不可预约")
	ErrSlotUnavailable      = errors.New("车位在该时间段已被预约")
	ErrReservationNotFound  = errors.New("预约不存在")
	ErrReservationCompleted = errors.New("预约已结束，无法取消")
)

// ReservationService 预约业务接口
//
// 设计说明：
//   - Create 是整个系统唯一的并发敏感路径：同一车位的 active 预约
//     时间窗必须两两不重叠（半开区间 [start, end)），该不变量由
//     Repository 层的事务（车位行锁 + 重叠检查）与数据库排他约束
//     共同保证，与进程内状态无关，多实例部署同样成立
//   - completed 状态惰性派生：窗口已结束的 active 预约对外显示为
//     completed，存储状态不回写，见 model.Reservation.EffectiveStatus
type ReservationService interface {
	Create(ctx context.Context, req *dto.CreateReservationRequest, callerID, callerRole string) (*dto.ReservationResponse, error)
	GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.ReservationResponse, error)
	List(ctx context.Context, req *dto.ReservationListRequest, callerID, callerRole string) ([]dto.ReservationResponse, int64, error)
	// Cancel active → cancelled；重复取消幂等返回当前记录
	Cancel(ctx context.Context, id, callerID, callerRole string) (*dto.ReservationResponse, error)
}

type reservationService struct {
	repo   *repository.Repository
	minDur time.Duration
	maxDur time.Duration
	loc    *time.Location
	logger *zap.Logger
}

// NewReservationService 创建 ReservationService 实例
func NewReservationService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ReservationService {
	return &reservationService{
		repo:   repo,
		minDur: cfg.Reservation.MinDuration,
		maxDur: cfg.Reservation.MaxDuration,
		loc:    cfg.Database.Location(),
		logger: logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *reservationService) Create(ctx context.Context, req *dto.CreateReservationRequest, callerID, callerRole string) (*dto.ReservationResponse, error) {
	// 1. 时间窗校验
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	dur := req.EndTime.Sub(req.StartTime)
	if dur < s.minDur || dur > s.maxDur {
		return nil, ErrDurationOutOfRange
	}

	day, err := time.ParseInLocation("2006-01-02", req.ReservationDate, s.loc)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	sy, sm, sd := req.StartTime.In(s.loc).Date()
	if dy, dm, dd := day.Date(); sy != dy || sm != dm || sd != dd {
		return nil, ErrDateMismatch
	}

	// 2. 归属：学生只能为本人预约，staff/admin 可代订
	targetUserID := callerID
	if req.UserID != "" && req.UserID != callerID {
		if callerRole != model.RoleAdmin && callerRole != model.RoleStaff {
			return nil, ErrNoPermission
		}
		targetUserID = req.UserID
	}
	if targetUserID != callerID {
		if _, err := s.repo.User.GetByID(ctx, targetUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	// 3. 车位存在且未维护
	slot, err := s.repo.Slot.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询车位失败", zap.String("slot_id", req.SlotID), zap.Error(err))
		return nil, err
	}
	if slot.Status == model.SlotStatusMaintenance {
		return nil, ErrSlotUnderMaintenance
	}

	// 4. 原子准入：检查与写入在 Repository 的事务内不可分割
	res := &model.Reservation{
		UserID:          targetUserID,
		SlotID:          req.SlotID,
		ReservationDate: day,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          model.ReservationStatusActive,
	}
	if err := s.repo.Reservation.CreateAdmitted(ctx, res); err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrTimeWindowConflict):
			// 正常业务结果，不是基础设施故障
			return nil, ErrSlotUnavailable
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrSlotNotFound
		default:
			s.logger.Error("预约准入失败",
				zap.String("slot_id", req.SlotID),
				zap.String("user_id", targetUserID),
				zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("预约创建成功",
		zap.String("reservation_id", res.ReservationID),
		zap.String("slot_id", res.SlotID),
		zap.String("user_id", res.UserID))

	created, err := s.repo.Reservation.GetByID(ctx, res.ReservationID)
	if err != nil {
		return nil, err
	}
	return s.toReservationResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *reservationService) GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.ReservationResponse, error) {
	res, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("查询预约失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !canAccessReservation(res, callerID, callerRole) {
		return nil, ErrNoPermission
	}
	return s.toReservationResponse(res), nil
}

// ────────────────────── List ──────────────────────

func (s *reservationService) List(ctx context.Context, req *dto.ReservationListRequest, callerID, callerRole string) ([]dto.ReservationResponse, int64, error) {
	filter := repository.ReservationFilter{
		Status: req.Status,
		UserID: req.UserID,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	}

	// 学生只能查自己的预约
	if callerRole == model.RoleStudent {
		filter.UserID = callerID
	}

	list, total, err := s.repo.Reservation.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出预约失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ReservationResponse, 0, len(list))
	for i := range list {
		result = append(result, *s.toReservationResponse(&list[i]))
	}
	return result, total, nil
}

// ────────────────────── Cancel ──────────────────────

func (s *reservationService) Cancel(ctx context.Context, id, callerID, callerRole string) (*dto.ReservationResponse, error) {
	res, err := s.repo.Reservation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("查询预约失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !canAccessReservation(res, callerID, callerRole) {
		return nil, ErrNoPermission
	}

	now := time.Now()
	switch res.EffectiveStatus(now) {
	case model.ReservationStatusCancelled:
		// 重复取消幂等：返回当前记录而非报错
		return s.toReservationResponse(res), nil
	case model.ReservationStatusCompleted:
		return nil, ErrReservationCompleted
	}

	res.Status = model.ReservationStatusCancelled
	if err := s.repo.Reservation.Update(ctx, res); err != nil {
		s.logger.Error("取消预约失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("预约已取消",
		zap.String("reservation_id", res.ReservationID),
		zap.String("operator_id", callerID))

	return s.toReservationResponse(res), nil
}

// ── 内部辅助方法 ──

// canAccessReservation 预约归属校验：本人或 staff/admin
func canAccessReservation(res *model.Reservation, callerID, callerRole string) bool {
	if callerRole == model.RoleAdmin || callerRole == model.RoleStaff {
		return true
	}
	return res.UserID == callerID
}

func (s *reservationService) toReservationResponse(res *model.Reservation) *dto.ReservationResponse {
	resp := &dto.ReservationResponse{
		ID:              res.ReservationID,
		UserID:          res.UserID,
		SlotID:          res.SlotID,
		ReservationDate: res.ReservationDate.In(s.loc).Format("2006-01-02"),
		StartTime:       res.StartTime.In(s.loc).Format(time.RFC3339),
		EndTime:         res.EndTime.In(s.loc).Format(time.RFC3339),
		Status:          res.EffectiveStatus(time.Now()),
		CreatedAt:       res.CreatedAt.Format(time.RFC3339),
	}
	if res.User != nil {
		resp.User = &dto.UserBrief{
			ID:       res.User.UserID,
			Username: res.User.Username,
			Name:     res.User.Name,
		}
	}
	if res.Slot != nil {
		slot := &dto.SlotBrief{
			ID:         res.Slot.SlotID,
			SlotNumber: res.Slot.SlotNumber,
		}
		if res.Slot.Zone != nil {
			slot.Zone = &dto.ZoneBrief{
				ID:       res.Slot.Zone.ZoneID,
				ZoneName: res.Slot.Zone.ZoneName,
				Location: res.Slot.Zone.Location,
			}
		}
		resp.Slot = slot
	}
	return resp
}
