package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Bryan490125/Smart-Parking/internal/model"
	"github.com/Bryan490125/Smart-Parking/internal/repository"
)

// ── 测试辅助 ──

func setupTestAnalyticsService() (AnalyticsService, *mockReservationRepo, *mockSlotRepo, *mockZoneRepo) {
	userRepo := newMockUserRepo()
	slotRepo := newMockSlotRepo()
	zoneRepo := newMockZoneRepo(slotRepo)
	resRepo := newMockReservationRepo(slotRepo, userRepo)
	repo := &repository.Repository{
		User:        userRepo,
		Zone:        zoneRepo,
		Slot:        slotRepo,
		Reservation: resRepo,
		Analytics:   newMockAnalyticsRepo(resRepo, slotRepo, zoneRepo),
	}
	svc := NewAnalyticsService(repo, time.UTC, zap.NewNop())
	return svc, resRepo, slotRepo, zoneRepo
}

// ── Overview 测试 ──

func TestAnalyticsService_Overview_Empty(t *testing.T) {
	svc, _, _, _ := setupTestAnalyticsService()

	result, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}
	if result.Summary.Total != 0 {
		t.Errorf("期望Total=0，实际=%d", result.Summary.Total)
	}
	// 空数据返回空切片而非 nil，JSON 序列化为 []
	if result.ZoneRanking == nil || result.PeakPeriods == nil {
		t.Error("空数据时排行与高峰时段应为空切片而非 nil")
	}
}

func TestAnalyticsService_Overview_SummaryCounts(t *testing.T) {
	svc, resRepo, slotRepo, _ := setupTestAnalyticsService()
	seedSlot(slotRepo, "slot-001", model.SlotStatusAvailable)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// 今日未结束（派生 active）
	resRepo.reservations["res-1"] = &model.Reservation{
		ReservationID: "res-1", UserID: "stu-001", SlotID: "slot-001",
		ReservationDate: today,
		StartTime:       now.Add(time.Hour), EndTime: now.Add(3 * time.Hour),
		Status: model.ReservationStatusActive,
	}
	// 昨日已结束（存储 active，派生 completed）
	resRepo.reservations["res-2"] = &model.Reservation{
		ReservationID: "res-2", UserID: "stu-001", SlotID: "slot-001",
		ReservationDate: today.AddDate(0, 0, -1),
		StartTime:       now.Add(-26 * time.Hour), EndTime: now.Add(-24 * time.Hour),
		Status: model.ReservationStatusActive,
	}
	// 已取消
	resRepo.reservations["res-3"] = &model.Reservation{
		ReservationID: "res-3", UserID: "stu-002", SlotID: "slot-001",
		ReservationDate: today,
		StartTime:       now.Add(5 * time.Hour), EndTime: now.Add(6 * time.Hour),
		Status: model.ReservationStatusCancelled,
	}

	result, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}

	if result.Summary.Total != 3 {
		t.Errorf("期望Total=3，实际=%d", result.Summary.Total)
	}
	// 窗口已结束的 active 预约不计入 active
	if result.Summary.Active != 1 {
		t.Errorf("期望Active=1，实际=%d", result.Summary.Active)
	}
	if result.Summary.Cancelled != 1 {
		t.Errorf("期望Cancelled=1，实际=%d", result.Summary.Cancelled)
	}
	if result.Summary.Today != 2 {
		t.Errorf("期望Today=2，实际=%d", result.Summary.Today)
	}
}

func TestAnalyticsService_Overview_ZoneRankingOrder(t *testing.T) {
	svc, resRepo, slotRepo, zoneRepo := setupTestAnalyticsService()

	zoneRepo.zones["zone-001"] = &model.ParkingZone{ZoneID: "zone-001", ZoneName: "A区"}
	zoneRepo.zones["zone-002"] = &model.ParkingZone{ZoneID: "zone-002", ZoneName: "B区"}
	slotRepo.slots["slot-a"] = &model.ParkingSlot{SlotID: "slot-a", ZoneID: "zone-001", SlotNumber: "A-01"}
	slotRepo.slots["slot-b"] = &model.ParkingSlot{SlotID: "slot-b", ZoneID: "zone-002", SlotNumber: "B-01"}

	now := time.Now().UTC()
	for i, slotID := range []string{"slot-a", "slot-a", "slot-a", "slot-b"} {
		id := string(rune('1' + i))
		resRepo.reservations["res-"+id] = &model.Reservation{
			ReservationID: "res-" + id, UserID: "stu-001", SlotID: slotID,
			ReservationDate: now,
			StartTime:       now.Add(time.Duration(i) * time.Hour),
			EndTime:         now.Add(time.Duration(i+1) * time.Hour),
			Status:          model.ReservationStatusActive,
		}
	}

	result, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 应成功: %v", err)
	}

	if len(result.ZoneRanking) != 2 {
		t.Fatalf("期望2个区域，实际=%d", len(result.ZoneRanking))
	}
	// 降序：A区3次在前
	if result.ZoneRanking[0].ZoneName != "A区" || result.ZoneRanking[0].Count != 3 {
		t.Errorf("期望首位为A区(3次)，实际=%+v", result.ZoneRanking[0])
	}
	if result.ZoneRanking[1].ZoneName != "B区" || result.ZoneRanking[1].Count != 1 {
		t.Errorf("期望次位为B区(1次)，实际=%+v", result.ZoneRanking[1])
	}
}
