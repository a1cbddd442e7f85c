package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/model"
	"github.com/Bryan490125/Smart-Parking/internal/repository"
	pkgerrors "github.com/Bryan490125/Smart-Parking/pkg/errors"
)

// uniqueViolation 模拟 PostgreSQL 唯一约束冲突（SQLSTATE 23505）
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[string]*model.User
	idCounter int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return uniqueViolation()
		}
	}
	if user.UserID == "" {
		m.idCounter++
		user.UserID = fmt.Sprintf("user-%d", m.idCounter)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role string, offset, limit int) ([]model.User, int64, error) {
	var filtered []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		filtered = append(filtered, *u)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// ── Mock ZoneRepository ──

type mockZoneRepo struct {
	zones     map[string]*model.ParkingZone
	slots     *mockSlotRepo
	idCounter int
}

func newMockZoneRepo(slots *mockSlotRepo) *mockZoneRepo {
	return &mockZoneRepo{zones: make(map[string]*model.ParkingZone), slots: slots}
}

func (m *mockZoneRepo) Create(_ context.Context, zone *model.ParkingZone) error {
	for _, z := range m.zones {
		if z.ZoneName == zone.ZoneName {
			return uniqueViolation()
		}
	}
	if zone.ZoneID == "" {
		m.idCounter++
		zone.ZoneID = fmt.Sprintf("zone-%d", m.idCounter)
	}
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = time.Now()
	m.zones[zone.ZoneID] = zone
	return nil
}

func (m *mockZoneRepo) GetByID(_ context.Context, id string) (*model.ParkingZone, error) {
	if z, ok := m.zones[id]; ok {
		return z, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockZoneRepo) List(_ context.Context) ([]model.ParkingZone, error) {
	var result []model.ParkingZone
	for _, z := range m.zones {
		result = append(result, *z)
	}
	return result, nil
}

func (m *mockZoneRepo) Update(_ context.Context, zone *model.ParkingZone) error {
	for _, z := range m.zones {
		if z.ZoneID != zone.ZoneID && z.ZoneName == zone.ZoneName {
			return uniqueViolation()
		}
	}
	m.zones[zone.ZoneID] = zone
	return nil
}

func (m *mockZoneRepo) Delete(_ context.Context, id string) error {
	delete(m.zones, id)
	return nil
}

func (m *mockZoneRepo) CountSlots(_ context.Context, zoneID string) (int64, error) {
	if m.slots == nil {
		return 0, nil
	}
	var count int64
	for _, s := range m.slots.slots {
		if s.ZoneID == zoneID {
			count++
		}
	}
	return count, nil
}

// ── Mock SlotRepository ──

type mockSlotRepo struct {
	slots     map[string]*model.ParkingSlot
	idCounter int
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string]*model.ParkingSlot)}
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.ParkingSlot) error {
	for _, s := range m.slots {
		if s.ZoneID == slot.ZoneID && s.SlotNumber == slot.SlotNumber {
			return uniqueViolation()
		}
	}
	if slot.SlotID == "" {
		m.idCounter++
		slot.SlotID = fmt.Sprintf("slot-%d", m.idCounter)
	}
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id string) (*model.ParkingSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) List(_ context.Context, zoneID, status string) ([]model.ParkingSlot, error) {
	var result []model.ParkingSlot
	for _, s := range m.slots {
		if zoneID != "" && s.ZoneID != zoneID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotID < result[j].SlotID })
	return result, nil
}

func (m *mockSlotRepo) Update(_ context.Context, slot *model.ParkingSlot) error {
	for _, s := range m.slots {
		if s.SlotID != slot.SlotID && s.ZoneID == slot.ZoneID && s.SlotNumber == slot.SlotNumber {
			return uniqueViolation()
		}
	}
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

// ── Mock ReservationRepository ──

// mockReservationRepo 用互斥锁替代数据库的行锁与排他约束，
// 保持 CreateAdmitted「检查与写入不可分割」的语义，供并发测试使用
type mockReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]*model.Reservation
	slots        *mockSlotRepo
	users        *mockUserRepo
	idCounter    int
}

func newMockReservationRepo(slots *mockSlotRepo, users *mockUserRepo) *mockReservationRepo {
	return &mockReservationRepo{
		reservations: make(map[string]*model.Reservation),
		slots:        slots,
		users:        users,
	}
}

func (m *mockReservationRepo) CreateAdmitted(_ context.Context, res *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.slots.slots[res.SlotID]; !ok {
		return gorm.ErrRecordNotFound
	}

	for _, r := range m.reservations {
		if r.SlotID == res.SlotID && r.Status == model.ReservationStatusActive &&
			r.Overlaps(res.StartTime, res.EndTime) {
			return pkgerrors.ErrTimeWindowConflict
		}
	}

	m.idCounter++
	res.ReservationID = fmt.Sprintf("res-%d", m.idCounter)
	res.CreatedAt = time.Now()
	res.UpdatedAt = time.Now()
	m.reservations[res.ReservationID] = res
	return nil
}

func (m *mockReservationRepo) GetByID(_ context.Context, id string) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	m.attachAssociations(&cp)
	return &cp, nil
}

func (m *mockReservationRepo) Update(_ context.Context, res *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reservations[res.ReservationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *res
	cp.User, cp.Slot = nil, nil
	m.reservations[res.ReservationID] = &cp
	return nil
}

func (m *mockReservationRepo) List(_ context.Context, filter repository.ReservationFilter) ([]model.Reservation, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var filtered []model.Reservation
	for _, r := range m.reservations {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		// 派生状态过滤：completed 不落库，按 end_time 区分
		switch filter.Status {
		case model.ReservationStatusActive:
			if r.Status != model.ReservationStatusActive || !r.EndTime.After(now) {
				continue
			}
		case model.ReservationStatusCompleted:
			if r.Status != model.ReservationStatusActive || r.EndTime.After(now) {
				continue
			}
		case model.ReservationStatusCancelled:
			if r.Status != model.ReservationStatusCancelled {
				continue
			}
		}
		cp := *r
		m.attachAssociations(&cp)
		filtered = append(filtered, cp)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].StartTime.After(filtered[j].StartTime)
	})

	total := int64(len(filtered))
	if filter.Offset >= len(filtered) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[filter.Offset:end], total, nil
}

func (m *mockReservationRepo) ListActiveInRange(_ context.Context, slotIDs []string, from, to time.Time) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idSet := make(map[string]bool, len(slotIDs))
	for _, id := range slotIDs {
		idSet[id] = true
	}

	var result []model.Reservation
	for _, r := range m.reservations {
		if !idSet[r.SlotID] || r.Status != model.ReservationStatusActive {
			continue
		}
		if r.Overlaps(from, to) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (m *mockReservationRepo) ListForExport(_ context.Context, from, to *time.Time) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Reservation
	for _, r := range m.reservations {
		if from != nil && r.ReservationDate.Before(*from) {
			continue
		}
		if to != nil && r.ReservationDate.After(*to) {
			continue
		}
		cp := *r
		m.attachAssociations(&cp)
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (m *mockReservationRepo) ListUpcomingByUser(_ context.Context, userID string, now time.Time) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Reservation
	for _, r := range m.reservations {
		if r.UserID != userID || r.Status != model.ReservationStatusActive {
			continue
		}
		if !r.EndTime.After(now) {
			continue
		}
		cp := *r
		m.attachAssociations(&cp)
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

// attachAssociations 模拟 Preload("User")/Preload("Slot")/Preload("Slot.Zone")
func (m *mockReservationRepo) attachAssociations(r *model.Reservation) {
	if m.users != nil {
		if u, ok := m.users.users[r.UserID]; ok {
			r.User = u
		}
	}
	if m.slots != nil {
		if s, ok := m.slots.slots[r.SlotID]; ok {
			r.Slot = s
		}
	}
}

// ── Mock AnalyticsRepository ──

// mockAnalyticsRepo 直接基于 mockReservationRepo 的数据做内存聚合
type mockAnalyticsRepo struct {
	reservations *mockReservationRepo
	slots        *mockSlotRepo
	zones        *mockZoneRepo
}

func newMockAnalyticsRepo(reservations *mockReservationRepo, slots *mockSlotRepo, zones *mockZoneRepo) *mockAnalyticsRepo {
	return &mockAnalyticsRepo{reservations: reservations, slots: slots, zones: zones}
}

func (m *mockAnalyticsRepo) Summary(_ context.Context, dayStart, dayEnd time.Time) (*dto.AnalyticsSummary, error) {
	now := time.Now()
	summary := &dto.AnalyticsSummary{}
	for _, r := range m.reservations.reservations {
		summary.Total++
		switch r.EffectiveStatus(now) {
		case model.ReservationStatusActive:
			summary.Active++
		case model.ReservationStatusCancelled:
			summary.Cancelled++
		}
		if !r.ReservationDate.Before(dayStart) && r.ReservationDate.Before(dayEnd) {
			summary.Today++
		}
	}
	return summary, nil
}

func (m *mockAnalyticsRepo) ZoneRanking(_ context.Context) ([]dto.ZoneRankingItem, error) {
	counts := make(map[string]int64)
	for _, r := range m.reservations.reservations {
		slot, ok := m.slots.slots[r.SlotID]
		if !ok {
			continue
		}
		zone, ok := m.zones.zones[slot.ZoneID]
		if !ok {
			continue
		}
		counts[zone.ZoneName]++
	}

	var result []dto.ZoneRankingItem
	for name, count := range counts {
		result = append(result, dto.ZoneRankingItem{ZoneName: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result, nil
}

func (m *mockAnalyticsRepo) PeakPeriods(_ context.Context) ([]dto.PeakPeriodItem, error) {
	counts := make(map[int]int64)
	for _, r := range m.reservations.reservations {
		counts[r.StartTime.Hour()]++
	}

	var result []dto.PeakPeriodItem
	for hour, count := range counts {
		result = append(result, dto.PeakPeriodItem{Hour: hour, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Hour < result[j].Hour })
	return result, nil
}
