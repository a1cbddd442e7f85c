package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User        UserRepository
	Zone        ZoneRepository
	Slot        SlotRepository
	Reservation ReservationRepository
	Analytics   AnalyticsRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Zone:        NewZoneRepo(db),
		Slot:        NewSlotRepo(db),
		Reservation: NewReservationRepo(db),
		Analytics:   NewAnalyticsRepo(db),
	}
}

// ── PostgreSQL 错误判定 ──

// IsUniqueViolation 唯一约束冲突（SQLSTATE 23505）
// 用户名/邮箱/区域名/车位号重复创建时触发
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isExclusionViolation 排他约束冲突（SQLSTATE 23P01）
// 并发预约同一车位重叠时间窗时，数据库层兜底约束拒绝落败方
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
