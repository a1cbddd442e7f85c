package service

import (
	"go.uber.org/zap"

	"github.com/Bryan490125/Smart-Parking/config"
	"github.com/Bryan490125/Smart-Parking/internal/repository"
	"github.com/Bryan490125/Smart-Parking/pkg/jwt"
	"github.com/Bryan490125/Smart-Parking/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Zone        ZoneService
	Slot        SlotService
	Reservation ReservationService
	Analytics   AnalyticsService
	Export      ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:        NewUserService(repo, logger),
		Zone:        NewZoneService(repo, logger),
		Slot:        NewSlotService(repo, cfg.Database.Location(), logger),
		Reservation: NewReservationService(cfg, repo, logger),
		Analytics:   NewAnalyticsService(repo, cfg.Database.Location(), logger),
		Export:      NewExportService(repo, cfg.Database.Location(), logger),
	}
}
