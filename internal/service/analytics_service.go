package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Bryan490125/Smart-Parking/internal/dto"
	"github.com/Bryan490125/Smart-Parking/internal/repository"
)

// AnalyticsService 管理端统计业务接口
// 纯只读聚合，无不变量，三类指标相互独立
type AnalyticsService interface {
	Overview(ctx context.Context) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewAnalyticsService 创建 AnalyticsService 实例
func NewAnalyticsService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) AnalyticsService {
	return &analyticsService{repo: repo, loc: loc, logger: logger}
}

func (s *analyticsService) Overview(ctx context.Context) (*dto.AnalyticsResponse, error) {
	// “今日”按配置时区的自然日界定
	now := time.Now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	summary, err := s.repo.Analytics.Summary(ctx, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("统计预约总量失败", zap.Error(err))
		return nil, err
	}

	ranking, err := s.repo.Analytics.ZoneRanking(ctx)
	if err != nil {
		s.logger.Error("统计区域排行失败", zap.Error(err))
		return nil, err
	}

	peaks, err := s.repo.Analytics.PeakPeriods(ctx)
	if err != nil {
		s.logger.Error("统计高峰时段失败", zap.Error(err))
		return nil, err
	}

	if ranking == nil {
		ranking = []dto.ZoneRankingItem{}
	}
	if peaks == nil {
		peaks = []dto.PeakPeriodItem{}
	}

	return &dto.AnalyticsResponse{
		Summary:     *summary,
		ZoneRanking: ranking,
		PeakPeriods: peaks,
	}, nil
}
