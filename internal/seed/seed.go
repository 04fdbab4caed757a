package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"CasinoTracker/internal/model"
	"CasinoTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// gameSeed config/games.json中的单条游戏配置
type gameSeed struct {
	Name        string   `json:"name"`
	APIName     string   `json:"apiName"`
	Logo        *string  `json:"logo,omitempty"`
	Provider    *string  `json:"provider,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category"`
	IsNew       bool     `json:"is_new"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	RTP         *string  `json:"rtp,omitempty"`
	Features    []string `json:"features,omitempty"`
	FetchURL    *string  `json:"fetch_url,omitempty"`
}

// Run 从games.json导入游戏目录。按api_name幂等upsert，
// 重复启动不会产生重复行，也不会清掉已有结果数据。
func Run(ctx context.Context, path string, repo repository.GameRepository, logger *logrus.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取种子文件失败: %w", err)
	}
	var seeds []gameSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return fmt.Errorf("解析种子文件失败: %w", err)
	}

	games := make([]*model.CasinoGame, 0, len(seeds))
	for _, s := range seeds {
		game := &model.CasinoGame{
			ID:              uuid.NewString(),
			Name:            s.Name,
			APIName:         s.APIName,
			Logo:            s.Logo,
			Provider:        s.Provider,
			Description:     s.Description,
			Category:        s.Category,
			IsNew:           s.IsNew,
			ReleaseDate:     s.ReleaseDate,
			RTP:             s.RTP,
			FetchResultsURL: s.FetchURL,
		}
		if len(s.Features) > 0 {
			if b, err := json.Marshal(s.Features); err == nil {
				game.Features = b
			}
		}
		games = append(games, game)
	}

	if err := repo.UpsertGames(ctx, games); err != nil {
		return fmt.Errorf("种子游戏入库失败: %w", err)
	}
	logger.Infof("种子数据导入完成，共%d个游戏", len(games))
	return nil
}
