package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Bryan490125/Smart-Parking/internal/model"
	pkgerrors "github.com/Bryan490125/Smart-Parking/pkg/errors"
)

// ReservationFilter 预约列表过滤条件
// Status 按派生状态过滤：completed 指窗口已结束但存储状态仍为 active 的记录
type ReservationFilter struct {
	Status string
	UserID string
	Offset int
	Limit  int
}

// ReservationRepository 预约数据访问接口
type ReservationRepository interface {
	// CreateAdmitted 原子准入：锁定车位行、检查时间窗重叠、写入预约。
	// 同一车位的并发准入在车位行锁上串行化；重叠时返回
	// pkgerrors.ErrTimeWindowConflict，车位不存在时返回 gorm.ErrRecordNotFound。
	CreateAdmitted(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) error
	List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, int64, error)
	// ListActiveInRange 查询一批车位在 [from, to) 内有交集的 active 预约
	ListActiveInRange(ctx context.Context, slotIDs []string, from, to time.Time) ([]model.Reservation, error)
	ListForExport(ctx context.Context, from, to *time.Time) ([]model.Reservation, error)
	ListUpcomingByUser(ctx context.Context, userID string, now time.Time) ([]model.Reservation, error)
}

type reservationRepo struct {
	db *gorm.DB
}

// NewReservationRepo 创建 ReservationRepository 实例
func NewReservationRepo(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) CreateAdmitted(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. SELECT ... FOR UPDATE 锁定车位行，同一车位的准入在此串行化
		var slot model.ParkingSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slot_id = ?", res.SlotID).
			First(&slot).Error; err != nil {
			return err
		}

		// 2. 半开区间重叠检查：existing.start < new.end AND existing.end > new.start
		var n int64
		if err := tx.Model(&model.Reservation{}).
			Where("slot_id = ? AND status = ?", res.SlotID, model.ReservationStatusActive).
			Where("start_time < ? AND end_time > ?", res.EndTime, res.StartTime).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return pkgerrors.ErrTimeWindowConflict
		}

		// 3. 写入。多实例部署下数据库排他约束兜底，
		//    并发落败方收到 23P01，同样按时间窗冲突返回，不重试
		if err := tx.Create(res).Error; err != nil {
			if isExclusionViolation(err) {
				return pkgerrors.ErrTimeWindowConflict
			}
			return err
		}
		return nil
	})
}

func (r *reservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slot").
		Preload("Slot.Zone").
		Where("reservation_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *reservationRepo) List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, int64, error) {
	var list []model.Reservation
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Reservation{})

	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}

	// 派生状态过滤：completed 不落库，按 end_time 区分
	now := time.Now()
	switch filter.Status {
	case model.ReservationStatusActive:
		db = db.Where("status = ? AND end_time > ?", model.ReservationStatusActive, now)
	case model.ReservationStatusCompleted:
		db = db.Where("status = ? AND end_time <= ?", model.ReservationStatusActive, now)
	case model.ReservationStatusCancelled:
		db = db.Where("status = ?", model.ReservationStatusCancelled)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Preload("Slot").
		Preload("Slot.Zone").
		Offset(filter.Offset).Limit(filter.Limit).
		Order("start_time DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *reservationRepo) ListActiveInRange(ctx context.Context, slotIDs []string, from, to time.Time) ([]model.Reservation, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}
	var list []model.Reservation
	err := r.db.WithContext(ctx).
		Where("slot_id IN ?", slotIDs).
		Where("status = ?", model.ReservationStatusActive).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&list).Error
	return list, err
}

func (r *reservationRepo) ListForExport(ctx context.Context, from, to *time.Time) ([]model.Reservation, error) {
	var list []model.Reservation
	db := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slot").
		Preload("Slot.Zone")

	if from != nil {
		db = db.Where("reservation_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("reservation_date <= ?", *to)
	}

	err := db.Order("start_time ASC").Find(&list).Error
	return list, err
}

func (r *reservationRepo) ListUpcomingByUser(ctx context.Context, userID string, now time.Time) ([]model.Reservation, error) {
	var list []model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Preload("Slot.Zone").
		Where("user_id = ? AND status = ? AND end_time > ?", userID, model.ReservationStatusActive, now).
		Order("start_time ASC").
		Find(&list).Error
	return list, err
}
