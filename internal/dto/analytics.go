package dto

// ── 分析统计模块 DTO ──

// AnalyticsSummary 预约总量统计
type AnalyticsSummary struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Cancelled int64 `json:"cancelled"`
	Today     int64 `json:"today"`
}

// ZoneRankingItem 按区域聚合的预约数（降序）
type ZoneRankingItem struct {
	ZoneName string `json:"zone_name"`
	Count    int64  `json:"count"`
}

// PeakPeriodItem 按开始时间小时聚合的预约数
type PeakPeriodItem struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

// AnalyticsResponse 管理端分析响应
type AnalyticsResponse struct {
	Summary     AnalyticsSummary  `json:"summary"`
	ZoneRanking []ZoneRankingItem `json:"zone_ranking"`
	PeakPeriods []PeakPeriodItem  `json:"peak_periods"`
}

// ExportReservationsRequest 预约报表导出参数
type ExportReservationsRequest struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
}
