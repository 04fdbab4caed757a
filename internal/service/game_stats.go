package service

import (
	"context"
	"fmt"
	"time"

	"CasinoTracker/internal/repository"

	"github.com/sirupsen/logrus"
)

// StatsService 读侧统计服务：按调用方给定的时间窗口查出结果，
// 交给纯计算的聚合器。统计永远从原始结果现算，不落任何聚合表。
type StatsService struct {
	gameRepo   repository.GameRepository
	resultRepo repository.ResultRepository
	logger     *logrus.Logger
}

func NewStatsService(gameRepo repository.GameRepository, resultRepo repository.ResultRepository, logger *logrus.Logger) *StatsService {
	return &StatsService{
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		logger:     logger,
	}
}

// GetGameStats 单个游戏最近durationHours小时的全套统计
func (s *StatsService) GetGameStats(ctx context.Context, gameID string, durationHours int) (*GameStatsResponse, error) {
	if durationHours <= 0 {
		durationHours = 24
	}
	game, err := s.gameRepo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("查询游戏失败: %w", err)
	}
	since := time.Now().Add(-time.Duration(durationHours) * time.Hour)
	results, err := s.resultRepo.QueryResults(ctx, game.ID, since, 0)
	if err != nil {
		return nil, fmt.Errorf("查询%s结果失败: %w", game.APIName, err)
	}
	return AggregateGameStats(results), nil
}

// GetGameResults 单个游戏最近durationHours小时的结果feed（已脱敏、已标准化）
func (s *StatsService) GetGameResults(ctx context.Context, gameID string, durationHours, limit int) ([]*TransformedResult, error) {
	if durationHours <= 0 {
		durationHours = 24
	}
	game, err := s.gameRepo.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("查询游戏失败: %w", err)
	}
	since := time.Now().Add(-time.Duration(durationHours) * time.Hour)
	results, err := s.resultRepo.QueryResults(ctx, game.ID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("查询%s结果失败: %w", game.APIName, err)
	}

	transformed := make([]*TransformedResult, 0, len(results))
	for _, r := range results {
		transformed = append(transformed, TransformGameResult(r))
	}
	return transformed, nil
}
