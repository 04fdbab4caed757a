package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"CasinoTracker/internal/model"
	"CasinoTracker/internal/outcome"
	"CasinoTracker/internal/repository"

	"github.com/sirupsen/logrus"
)

// 大奖入榜的最低倍数门槛：绝大多数局都不是"大奖"，低于50x直接静默丢弃
const biggestWinMinMultiplier = 50

// 大奖榜单次返回的条数上限与缺省值
const (
	biggestWinsMaxSize     = 10
	biggestWinsDefaultSize = 4
)

// BiggestWinsService 公共大奖榜服务：跨全部游戏查窗口内结果，筛选排序出榜单
type BiggestWinsService struct {
	gameRepo   repository.GameRepository
	resultRepo repository.ResultRepository
	logger     *logrus.Logger
}

func NewBiggestWinsService(gameRepo repository.GameRepository, resultRepo repository.ResultRepository, logger *logrus.Logger) *BiggestWinsService {
	return &BiggestWinsService{
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		logger:     logger,
	}
}

// Latest 最近durationHours小时的大奖榜，size夹在[1, 10]内（0取缺省4条）
func (s *BiggestWinsService) Latest(ctx context.Context, size, durationHours int) ([]GameShowWin, error) {
	if size <= 0 {
		size = biggestWinsDefaultSize
	}
	if size > biggestWinsMaxSize {
		size = biggestWinsMaxSize
	}
	if durationHours <= 0 {
		durationHours = 1
	}

	games, err := s.gameRepo.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询游戏列表失败: %w", err)
	}
	gameIDs := make([]string, 0, len(games))
	apiNameByID := make(map[string]string, len(games))
	for _, g := range games {
		gameIDs = append(gameIDs, g.ID)
		apiNameByID[g.ID] = g.APIName
	}

	since := time.Now().Add(-time.Duration(durationHours) * time.Hour)
	results, err := s.resultRepo.QueryResultsAcrossGames(ctx, gameIDs, since, 0)
	if err != nil {
		return nil, fmt.Errorf("查询窗口内结果失败: %w", err)
	}

	return GetBiggestWins(results, apiNameByID, size), nil
}

// GameShowWinner 对外展示的中奖玩家（昵称已脱敏）
type GameShowWinner struct {
	ScreenName string  `json:"screenName"`
	Winnings   float64 `json:"winnings"`
}

// GameShowWin 公共"大奖榜"中的一条记录
type GameShowWin struct {
	ID                  string           `json:"id"`
	GameShowEventID     string           `json:"gameShowEventId"`
	GameShow            string           `json:"gameShow"`
	Multiplier          float64          `json:"multiplier"`
	StartedAt           string           `json:"startedAt"`
	SettledAt           string           `json:"settledAt"`
	DurationInSeconds   int64            `json:"durationInSeconds"`
	SpinOutcome         string           `json:"spinOutcome"`
	StreamURL           string           `json:"streamUrl"`
	ThumbnailURL        string           `json:"thumbnailUrl"`
	TotalWinners        *int             `json:"totalWinners,omitempty"`
	TotalAmount         *float64         `json:"totalAmount,omitempty"`
	Winners             []GameShowWinner `json:"winners,omitempty"`
	RouletteNumberColor string           `json:"rouletteNumberColor,omitempty"`
}

// TransformToBiggestWin 把单条结果转换为大奖记录。
// outcome不可解析或倍数低于门槛时返回nil（不是错误）。
func TransformToBiggestWin(result *model.GameResult, gameAPIName string) *GameShowWin {
	o := outcome.Decode(result.Result)
	if o == nil {
		return nil
	}
	if o.MaxMultiplier < biggestWinMinMultiplier {
		return nil
	}

	// startedAt <= settledAt由数据模型保证，时长非负
	duration := result.SettledAt.Unix() - result.StartedAt.Unix()
	gameShow := strings.ReplaceAll(strings.ToUpper(gameAPIName), "-", "_")

	win := &GameShowWin{
		ID:                result.ExternalID,
		GameShowEventID:   result.ExternalID,
		GameShow:          gameShow,
		Multiplier:        o.MaxMultiplier,
		StartedAt:         isoTime(result.StartedAt),
		SettledAt:         isoTime(result.SettledAt),
		DurationInSeconds: duration,
		SpinOutcome:       outcome.SpinOutcomeLabel(o),
		StreamURL:         fmt.Sprintf(streamURLTemplate, result.ExternalID),
		ThumbnailURL:      fmt.Sprintf(thumbnailURLTemplate, result.ExternalID),
		TotalWinners:      result.TotalWinners,
		TotalAmount:       result.TotalAmount,
	}

	for _, w := range decodeWinners(result.Winners) {
		win.Winners = append(win.Winners, GameShowWinner{
			ScreenName: outcome.TruncateScreenName(w.ScreenName),
			Winnings:   w.Winnings,
		})
	}

	// 轮盘类游戏补充颜色（仅在结果确为数字落点时）
	if strings.Contains(gameShow, "ROULETTE") && o.WheelResult != nil &&
		o.WheelResult.Type == "WinningNumber" && o.WheelResult.WheelSector != "" {
		if number, err := strconv.Atoi(o.WheelResult.WheelSector); err == nil {
			win.RouletteNumberColor = outcome.RouletteColor(number)
		}
	}

	return win
}

// GetBiggestWins 从跨游戏结果集中筛选并排序大奖：倍数降序，平倍时取更新的一局，
// 截断到请求的条数。api_name查不到的结果直接跳过。
func GetBiggestWins(results []*model.GameResult, gameAPINameByID map[string]string, size int) []GameShowWin {
	wins := []GameShowWin{}
	for _, result := range results {
		apiName, ok := gameAPINameByID[result.CasinoGameID]
		if !ok {
			continue
		}
		if win := TransformToBiggestWin(result, apiName); win != nil {
			wins = append(wins, *win)
		}
	}

	sort.SliceStable(wins, func(i, j int) bool {
		if wins[i].Multiplier != wins[j].Multiplier {
			return wins[i].Multiplier > wins[j].Multiplier
		}
		return wins[i].SettledAt > wins[j].SettledAt // ISO-8601字符串可直接按字典序比较
	})

	if size >= 0 && len(wins) > size {
		wins = wins[:size]
	}
	return wins
}
