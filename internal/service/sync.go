package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"CasinoTracker/internal/config"
	"CasinoTracker/internal/interfaces"
	"CasinoTracker/internal/model"
	"CasinoTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SyncService 周期性的多游戏结果同步：拉取→标准化→幂等落库。
// 每轮遍历全部游戏，故障域两层隔离：单个游戏拉取失败不影响其他游戏，
// 单条结果落库失败不影响同页其余结果。周期内不重试，等下一轮自然补上。
type SyncService struct {
	gameRepo   repository.GameRepository
	resultRepo repository.ResultRepository
	fetcher    interfaces.ResultFetcher
	cfg        *config.Config
	logger     *logrus.Logger
}

func NewSyncService(
	gameRepo repository.GameRepository,
	resultRepo repository.ResultRepository,
	fetcher interfaces.ResultFetcher,
	cfg *config.Config,
	logger *logrus.Logger,
) *SyncService {
	return &SyncService{
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		fetcher:    fetcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// RunSyncCycle 执行一轮完整同步。只有游戏列表本身查不出来才返回错误，
// 游戏级/结果级失败被就地消化，整轮必然跑完。
func (s *SyncService) RunSyncCycle(ctx context.Context) error {
	games, err := s.gameRepo.ListGamesNeedingSync(ctx)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, game := range games {
		if game.FetchResultsURL == nil || *game.FetchResultsURL == "" {
			s.logger.Warnf("游戏%s未配置拉取地址，跳过同步", game.APIName)
			continue
		}
		// 各游戏之间无共享可变状态，放心并行
		wg.Add(1)
		go func(g *model.CasinoGame) {
			defer wg.Done()
			s.syncGame(ctx, g)
		}(game)
	}
	wg.Wait()
	return nil
}

// syncGame 单个游戏的拉取与落库单元（游戏级故障域边界）
func (s *SyncService) syncGame(ctx context.Context, game *model.CasinoGame) {
	raws, err := s.fetcher.FetchLatestResults(ctx, *game.FetchResultsURL, s.cfg.Sync.PageSize, s.cfg.Sync.Sort)
	if err != nil {
		s.logger.WithError(err).WithField("game", game.APIName).Warn("拉取游戏结果失败，本轮跳过该游戏")
		return
	}
	if len(raws) == 0 {
		s.logger.Debugf("游戏%s本轮未返回结果", game.APIName)
		return
	}

	// 每条结果独立upsert（结果级故障域边界）；键互不相同或幂等可合并，无需保证顺序
	var wg sync.WaitGroup
	var saved int64
	for _, raw := range raws {
		wg.Add(1)
		go func(raw model.RawGameResult) {
			defer wg.Done()
			result := buildGameResult(game.ID, raw)
			if err := s.resultRepo.UpsertResult(ctx, result); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"game":        game.APIName,
					"external_id": raw.ID,
				}).Warn("结果落库失败，跳过该条")
				return
			}
			atomic.AddInt64(&saved, 1)
		}(raw)
	}
	wg.Wait()

	s.logger.Infof("游戏%s同步完成，落库%d/%d条结果", game.APIName, saved, len(raws))
}

// buildGameResult 把上游原始结果转换为数据库模型。
// 新行生成uuid主键；键已存在时该id会被冲突路径丢弃，保持原id与started_at不变。
func buildGameResult(gameID string, raw model.RawGameResult) *model.GameResult {
	result := raw.Data.Result
	if len(result) == 0 {
		result = json.RawMessage("{}")
	}

	res := &model.GameResult{
		ID:           uuid.NewString(),
		CasinoGameID: gameID,
		ExternalID:   raw.ID,
		StartedAt:    raw.Data.StartedAt,
		SettledAt:    raw.Data.SettledAt,
		Status:       raw.Data.Status,
		Result:       []byte(result),
		TotalWinners: raw.TotalWinners,
		TotalAmount:  raw.TotalAmount,
	}
	if len(raw.Winners) > 0 {
		if b, err := json.Marshal(raw.Winners); err == nil {
			res.Winners = b
		}
	}
	// data_raw存上游原始字节：重编码会丢掉未建模字段。
	// 手工构造（无原始字节）时才退回结构体序列化。
	if len(raw.Raw) > 0 {
		res.DataRaw = []byte(raw.Raw)
	} else if b, err := json.Marshal(raw); err == nil {
		res.DataRaw = b
	}
	return res
}
