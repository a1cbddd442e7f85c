package handler

import "github.com/Bryan490125/Smart-Parking/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Zone        *ZoneHandler
	Slot        *SlotHandler
	Reservation *ReservationHandler
	Analytics   *AnalyticsHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Zone:        NewZoneHandler(svc.Zone),
		Slot:        NewSlotHandler(svc.Slot),
		Reservation: NewReservationHandler(svc.Reservation),
		Analytics:   NewAnalyticsHandler(svc.Analytics),
		Export:      NewExportHandler(svc.Export),
	}
}
