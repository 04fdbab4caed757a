package repository

import (
	"context"
	"fmt"
	"time"

	"CasinoTracker/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PersistenceError 结果落库失败（同步循环在每条结果的边界捕获并记日志）
type PersistenceError struct {
	GameID     string
	ExternalID string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("结果落库失败: game_id=%s external_id=%s: %v", e.GameID, e.ExternalID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ResultRepository 游戏结果仓储。所有upsert以(casino_game_id, external_id)为自然键。
type ResultRepository interface {
	// UpsertResult 幂等写入单条结果：键不存在则创建，存在则只更新可变字段，
	// started_at与自然键永不改写。单条SQL完成，避免读改写竞态。
	UpsertResult(ctx context.Context, result *model.GameResult) error
	// QueryResults 查询单个游戏settled_at >= since的结果，按settled_at降序
	QueryResults(ctx context.Context, gameID string, since time.Time, limit int) ([]*model.GameResult, error)
	// QueryResultsAcrossGames 跨游戏窗口查询，供大奖榜使用
	QueryResultsAcrossGames(ctx context.Context, gameIDs []string, since time.Time, limit int) ([]*model.GameResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) UpsertResult(ctx context.Context, result *model.GameResult) error {
	// 冲突时不更新id/started_at/自然键：上游只会修正结算后的可变字段。
	// 两个周期重叠时对同一键并发写为last-write-wins，符合设计预期。
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "casino_game_id"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"settled_at", "status", "result", "winners",
			"total_winners", "total_amount", "data_raw", "updated_at",
		}),
	}).Create(result).Error
	if err != nil {
		return &PersistenceError{GameID: result.CasinoGameID, ExternalID: result.ExternalID, Err: err}
	}
	return nil
}

func (r *resultRepository) QueryResults(ctx context.Context, gameID string, since time.Time, limit int) ([]*model.GameResult, error) {
	db := r.db.WithContext(ctx).
		Where("casino_game_id = ? AND settled_at >= ?", gameID, since).
		Order("settled_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var results []*model.GameResult
	if err := db.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) QueryResultsAcrossGames(ctx context.Context, gameIDs []string, since time.Time, limit int) ([]*model.GameResult, error) {
	if len(gameIDs) == 0 {
		return []*model.GameResult{}, nil
	}
	db := r.db.WithContext(ctx).
		Where("casino_game_id IN ? AND settled_at >= ?", gameIDs, since).
		Order("settled_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var results []*model.GameResult
	if err := db.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
