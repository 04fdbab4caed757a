package repository

import (
	"context"

	"CasinoTracker/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameRepository 游戏目录仓储
type GameRepository interface {
	// ListGames 返回全部游戏
	ListGames(ctx context.Context) ([]*model.CasinoGame, error)
	// GetGameByID 按主键获取单个游戏
	GetGameByID(ctx context.Context, id string) (*model.CasinoGame, error)
	// ListGamesNeedingSync 返回参与同步的游戏集合（fetch_results_url为空的游戏由调用方跳过并记日志）
	ListGamesNeedingSync(ctx context.Context) ([]*model.CasinoGame, error)
	// UpsertGames 按api_name幂等写入种子游戏
	UpsertGames(ctx context.Context, games []*model.CasinoGame) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) ListGames(ctx context.Context) ([]*model.CasinoGame, error) {
	var games []*model.CasinoGame
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) GetGameByID(ctx context.Context, id string) (*model.CasinoGame, error) {
	var game model.CasinoGame
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// ListGamesNeedingSync 目前即全量游戏：是否真的参与同步由fetch_results_url决定，
// 留在调用方判断以便对跳过的游戏记日志。
func (r *gameRepository) ListGamesNeedingSync(ctx context.Context) ([]*model.CasinoGame, error) {
	var games []*model.CasinoGame
	if err := r.db.WithContext(ctx).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) UpsertGames(ctx context.Context, games []*model.CasinoGame) error {
	if len(games) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "api_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "logo", "provider", "description", "category", "is_new",
			"release_date", "rtp", "features", "fetch_results_url", "updated_at",
		}),
	}).Create(games).Error
}
