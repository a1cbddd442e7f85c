package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Bryan490125/Smart-Parking/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("该时间范围内无预约记录")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 预约报表导出为 Excel (.xlsx)，供管理端对账归档
//   - 个人日历导出为 iCalendar (.ics) 文件下载，不对接任何外部日历服务
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportReservations 按预约日期范围导出报表，from/to 为 nil 时不限
	ExportReservations(ctx context.Context, from, to *time.Time) (*bytes.Buffer, string, error)
	// ExportMyCalendar 导出调用者未结束的预约
	ExportMyCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportReservations — 预约报表导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单 Sheet，一行一条预约，含用户、车位、区域、时间窗与派生状态

func (s *exportService) ExportReservations(ctx context.Context, from, to *time.Time) (*bytes.Buffer, string, error) {
	list, err := s.repo.Reservation.ListForExport(ctx, from, to)
	if err != nil {
		s.logger.Error("查询导出预约失败", zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "预约记录"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"预约日期", "开始时间", "结束时间", "状态", "用户名", "姓名", "车位", "区域"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	now := time.Now()
	for row, res := range list {
		username, name := "", ""
		if res.User != nil {
			username, name = res.User.Username, res.User.Name
		}
		slotNumber, zoneName := "", ""
		if res.Slot != nil {
			slotNumber = res.Slot.SlotNumber
			if res.Slot.Zone != nil {
				zoneName = res.Slot.Zone.ZoneName
			}
		}

		values := []interface{}{
			res.ReservationDate.In(s.loc).Format("2006-01-02"),
			res.StartTime.In(s.loc).Format("15:04"),
			res.EndTime.In(s.loc).Format("15:04"),
			res.EffectiveStatus(now),
			username,
			name,
			slotNumber,
			zoneName,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("reservations_%s.xlsx", time.Now().In(s.loc).Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportMyCalendar — 个人预约导出为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportMyCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	list, err := s.repo.Reservation.ListUpcomingByUser(ctx, userID, time.Now())
	if err != nil {
		s.logger.Error("查询个人预约失败", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", ErrExportNoData
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Smart-Parking//Reservation Calendar//CN")

	for i := range list {
		res := &list[i]

		summary := "停车预约"
		location := ""
		if res.Slot != nil {
			summary = fmt.Sprintf("停车预约 车位 %s", res.Slot.SlotNumber)
			if res.Slot.Zone != nil {
				location = fmt.Sprintf("%s（%s）", res.Slot.Zone.ZoneName, res.Slot.Zone.Location)
			}
		}

		event := cal.AddEvent(fmt.Sprintf("%s@smart-parking", res.ReservationID))
		event.SetCreatedTime(res.CreatedAt)
		event.SetStartAt(res.StartTime)
		event.SetEndAt(res.EndTime)
		event.SetSummary(summary)
		if location != "" {
			event.SetLocation(location)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())

	filename := fmt.Sprintf("my_reservations_%s.ics", time.Now().In(s.loc).Format("20060102"))
	return buf, filename, nil
}
