package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"CasinoTracker/internal/model"
	"CasinoTracker/internal/outcome"
)

// 大奖片段的播放与封面地址模板（按局号合成）
const (
	streamURLTemplate    = "https://media.groundsplatform.com/streamer/clips/%s/index.m3u8"
	thumbnailURLTemplate = "https://media.groundsplatform.com/streamer/thumbs/%s.jpg"
)

// Cash Hunt选靶网格为固定12行×9列
const (
	cashHuntGridRows = 12
	cashHuntGridCols = 9
)

// GameStatsResponse 单个游戏在一个时间窗口内的全部派生统计。
// 字段名与现有看板消费端一致，不可改动。
type GameStatsResponse struct {
	TotalCount                 int                     `json:"totalCount"`
	AggStats                   []AggStat               `json:"aggStats"`
	BestMultipliers            []BestMultiplier        `json:"bestMultipliers"`
	TopSlotToWheelResultStats  []TopSlotStat           `json:"topSlotToWheelResultStats"`
	BestIndividualWins         []BestIndividualWin     `json:"bestIndividualWins"`
	CashHuntAvgStatsByPosition *CashHuntAvgStats       `json:"cashHuntAvgStatsByPosition"`
	CashHuntSymbolStats        []CashHuntSymbolStat    `json:"cashHuntSymbolStats"`
	CrazyBonusFlapperStats     []CrazyBonusFlapperStat `json:"crazyBonusFlapperStats"`
	CoinFlipStats              []CoinFlipStat          `json:"coinFlipStats"`
}

// AggStat 单个转盘结果标签的频率统计。
// hotFrequencyPercentage为当前占比对长期均值的偏差；长期均值目前取自同一窗口，
// 因此恒为0——这是已知的占位行为，消费端依赖该字段存在，保持现状不要"修复"。
type AggStat struct {
	WheelResult            string  `json:"wheelResult"`
	Count                  int     `json:"count"`
	Percentage             float64 `json:"percentage"`
	LastOccurredAt         string  `json:"lastOccurredAt"`
	LastSeenBefore         int     `json:"lastSeenBefore"`
	HotFrequencyPercentage float64 `json:"hotFrequencyPercentage"`
}

// BestMultiplier 单个标签下倍数最高的一局
type BestMultiplier struct {
	ID              string  `json:"id"`
	WheelResult     string  `json:"wheelResult"`
	LastOccurredAt  string  `json:"lastOccurredAt"`
	MaxMultiplier   float64 `json:"maxMultiplier"`
	BigWinStreamURL string  `json:"bigWinStreamUrl,omitempty"`
}

// TopSlotStat 顶部格与转盘结果匹配情况的分桶统计
type TopSlotStat struct {
	Matched                           bool    `json:"matched"`
	Percentage                        float64 `json:"percentage"`
	TotalCount                        int     `json:"totalCount"`
	TopSlotMatchedFrequencyPercentage float64 `json:"topSlotMatchedFrequencyPercentage"`
	TopSlotMatchedLongTermAverage     float64 `json:"topSlotMatchedLongTermAverage"`
}

// BestIndividualWin 窗口内单笔最高中奖
type BestIndividualWin struct {
	ID             string  `json:"id"`
	ScreenName     string  `json:"screenName"`
	WinAmount      float64 `json:"winAmount"`
	WheelResult    string  `json:"wheelResult"`
	MaxMultiplier  float64 `json:"maxMultiplier"`
	LastOccurredAt string  `json:"lastOccurredAt"`
}

// CashHuntAvgStats Cash Hunt网格逐格倍数均值
type CashHuntAvgStats struct {
	CashHuntAvgArray [][]float64 `json:"cashHuntAvgArray"`
	MaxMultiplier    float64     `json:"maxMultiplier"`
	MinMultiplier    float64     `json:"minMultiplier"`
}

// CashHuntSymbolStat Cash Hunt按符号聚合的倍数统计
type CashHuntSymbolStat struct {
	Symbol                                string  `json:"symbol"`
	AvgMultiplier                         float64 `json:"avgMultiplier"`
	Count                                 int     `json:"count"`
	CashHuntMultiplierFrequencyPercentage float64 `json:"cashHuntMultiplierFrequencyPercentage"`
	CashHuntLongTermAverage               float64 `json:"cashHuntLongTermAverage"`
}

// CrazyBonusFlapperStat Crazy Bonus指针符号统计
type CrazyBonusFlapperStat struct {
	Symbol                               string  `json:"symbol"`
	AvgMultiplier                        float64 `json:"avgMultiplier"`
	FlapperLongTermAverageMultiplier     float64 `json:"flapperLongTermAverageMultiplier"`
	FlapperMultiplierFrequencyPercentage float64 `json:"flapperMultiplierFrequencyPercentage"`
}

// CoinFlipStat Coin Flip符号统计（percentage为该符号占全部coin flip出现次数的份额）
type CoinFlipStat struct {
	Symbol                                string  `json:"symbol"`
	AvgMultiplier                         float64 `json:"avgMultiplier"`
	Count                                 int     `json:"count"`
	Percentage                            float64 `json:"percentage"`
	CoinFlipFrequencyPercentage           float64 `json:"coinFlipFrequencyPercentage"`
	CoinFlipMultiplierFrequencyPercentage float64 `json:"coinFlipMultiplierFrequencyPercentage"`
	CoinFlipMultiplierLongTermAverage     float64 `json:"coinFlipMultiplierLongTermAverage"`
	CoinFlipPercentageLongTermAverage     float64 `json:"coinFlipPercentageLongTermAverage"`
}

// wheelResultAcc 转盘结果标签的累加器（保留首次出现顺序以保证稳定输出）
type wheelResultAcc struct {
	count          int
	lastOccurredAt time.Time
}

type multiplierAcc struct {
	externalID     string
	wheelResult    string
	lastOccurredAt time.Time
	maxMultiplier  float64
}

type symbolAcc struct {
	count       int
	multipliers []float64
}

// AggregateGameStats 把一个已按settled_at降序、按时间窗口过滤好的结果列表
// 归约为全套统计。纯计算，无副作用；空输入返回全零结构而非错误。
func AggregateGameStats(results []*model.GameResult) *GameStatsResponse {
	resp := &GameStatsResponse{
		AggStats:                  []AggStat{},
		BestMultipliers:           []BestMultiplier{},
		TopSlotToWheelResultStats: []TopSlotStat{},
		BestIndividualWins:        []BestIndividualWin{},
		CashHuntSymbolStats:       []CashHuntSymbolStat{},
		CrazyBonusFlapperStats:    []CrazyBonusFlapperStat{},
		CoinFlipStats:             []CoinFlipStat{},
	}
	totalCount := len(results)
	if totalCount == 0 {
		return resp
	}
	resp.TotalCount = totalCount

	// 各维度累加器。map配first-seen键序，输出与输入顺序无关地保持稳定。
	wheelResults := map[string]*wheelResultAcc{}
	var wheelResultOrder []string
	bestMultipliers := map[string]*multiplierAcc{}
	var bestMultiplierOrder []string

	topSlotMatched, topSlotUnmatched := 0, 0

	var cashHuntGrids [][][]outcome.CashHuntCell
	cashHuntSymbols := map[string]*symbolAcc{}
	var cashHuntSymbolOrder []string
	flapperSymbols := map[string]*symbolAcc{}
	var flapperSymbolOrder []string
	coinFlipSymbols := map[string]*symbolAcc{}
	var coinFlipSymbolOrder []string

	var individualWins []BestIndividualWin

	for _, result := range results {
		o := outcome.Decode(result.Result)
		if o == nil {
			continue // 该局不贡献任何统计
		}

		label, hasLabel := outcome.WheelResultLabel(o)
		if hasLabel {
			acc, ok := wheelResults[label]
			if !ok {
				acc = &wheelResultAcc{lastOccurredAt: result.SettledAt}
				wheelResults[label] = acc
				wheelResultOrder = append(wheelResultOrder, label)
			}
			acc.count++
			if result.SettledAt.After(acc.lastOccurredAt) {
				acc.lastOccurredAt = result.SettledAt
			}

			best, ok := bestMultipliers[label]
			if !ok || o.MaxMultiplier > best.maxMultiplier {
				if !ok {
					bestMultiplierOrder = append(bestMultiplierOrder, label)
				}
				bestMultipliers[label] = &multiplierAcc{
					externalID:     result.ExternalID,
					wheelResult:    label,
					lastOccurredAt: result.SettledAt,
					maxMultiplier:  o.MaxMultiplier,
				}
			}
		}

		if o.IsTopSlotMatchedToWheelResult != nil {
			if *o.IsTopSlotMatchedToWheelResult {
				topSlotMatched++
			} else {
				topSlotUnmatched++
			}
		}

		if o.CashHunt != nil && len(o.CashHunt.Positions) > 0 {
			cashHuntGrids = append(cashHuntGrids, o.CashHunt.Positions)
			for _, row := range o.CashHunt.Positions {
				for _, cell := range row {
					if cell.Symbol == "" || cell.Multiplier == nil {
						continue
					}
					acc, ok := cashHuntSymbols[cell.Symbol]
					if !ok {
						acc = &symbolAcc{}
						cashHuntSymbols[cell.Symbol] = acc
						cashHuntSymbolOrder = append(cashHuntSymbolOrder, cell.Symbol)
					}
					acc.multipliers = append(acc.multipliers, *cell.Multiplier)
				}
			}
		}

		if o.CrazyBonus != nil && o.CrazyBonus.Flapper != nil {
			symbol := o.CrazyBonus.Flapper.Symbol
			if symbol == "" {
				symbol = outcome.SpinOutcomeUnknown
			}
			acc, ok := flapperSymbols[symbol]
			if !ok {
				acc = &symbolAcc{}
				flapperSymbols[symbol] = acc
				flapperSymbolOrder = append(flapperSymbolOrder, symbol)
			}
			acc.multipliers = append(acc.multipliers, o.CrazyBonus.Flapper.Multiplier)
		}

		if o.CoinFlip != nil {
			symbol := o.CoinFlip.Symbol
			if symbol == "" {
				symbol = outcome.SpinOutcomeUnknown
			}
			acc, ok := coinFlipSymbols[symbol]
			if !ok {
				acc = &symbolAcc{}
				coinFlipSymbols[symbol] = acc
				coinFlipSymbolOrder = append(coinFlipSymbolOrder, symbol)
			}
			acc.count++
			acc.multipliers = append(acc.multipliers, o.CoinFlip.Multiplier)
		}

		if hasLabel {
			for _, winner := range decodeWinners(result.Winners) {
				if winner.ScreenName == "" || winner.Winnings == 0 {
					continue
				}
				individualWins = append(individualWins, BestIndividualWin{
					ID:             result.ExternalID,
					ScreenName:     winner.ScreenName,
					WinAmount:      winner.Winnings,
					WheelResult:    label,
					MaxMultiplier:  o.MaxMultiplier,
					LastOccurredAt: isoTime(result.SettledAt),
				})
			}
		}
	}

	// 全量按结算时间降序的副本，用于计算lastSeenBefore（最近一次出现前有几局更新的结果）
	byRecency := make([]*model.GameResult, len(results))
	copy(byRecency, results)
	sort.SliceStable(byRecency, func(i, j int) bool {
		return byRecency[i].SettledAt.After(byRecency[j].SettledAt)
	})
	lastSeenBefore := func(lastOccurredAt time.Time) int {
		for i, r := range byRecency {
			if r.SettledAt.Equal(lastOccurredAt) {
				return i
			}
		}
		return len(byRecency)
	}

	for _, label := range wheelResultOrder {
		acc := wheelResults[label]
		percentage := float64(acc.count) / float64(totalCount) * 100
		// 长期均值暂以当前窗口占比代替（无历史基线），偏差由此恒为0
		longTermAverage := percentage
		resp.AggStats = append(resp.AggStats, AggStat{
			WheelResult:            label,
			Count:                  acc.count,
			Percentage:             round2(percentage),
			LastOccurredAt:         isoTime(acc.lastOccurredAt),
			LastSeenBefore:         lastSeenBefore(acc.lastOccurredAt),
			HotFrequencyPercentage: round2(percentage - longTermAverage),
		})
	}
	sort.SliceStable(resp.AggStats, func(i, j int) bool {
		return resp.AggStats[i].Count > resp.AggStats[j].Count
	})

	for _, label := range bestMultiplierOrder {
		acc := bestMultipliers[label]
		bm := BestMultiplier{
			ID:             acc.externalID,
			WheelResult:    acc.wheelResult,
			LastOccurredAt: isoTime(acc.lastOccurredAt),
			MaxMultiplier:  acc.maxMultiplier,
		}
		if acc.externalID != "" {
			bm.BigWinStreamURL = fmt.Sprintf(streamURLTemplate, acc.externalID)
		}
		resp.BestMultipliers = append(resp.BestMultipliers, bm)
	}
	sort.SliceStable(resp.BestMultipliers, func(i, j int) bool {
		return resp.BestMultipliers[i].MaxMultiplier > resp.BestMultipliers[j].MaxMultiplier
	})
	if len(resp.BestMultipliers) > 5 {
		resp.BestMultipliers = resp.BestMultipliers[:5]
	}

	resp.TopSlotToWheelResultStats = buildTopSlotStats(topSlotMatched, topSlotUnmatched)

	sort.SliceStable(individualWins, func(i, j int) bool {
		return individualWins[i].WinAmount > individualWins[j].WinAmount
	})
	if len(individualWins) > 5 {
		individualWins = individualWins[:5]
	}
	for _, win := range individualWins {
		win.ScreenName = outcome.TruncateScreenName(win.ScreenName)
		resp.BestIndividualWins = append(resp.BestIndividualWins, win)
	}

	resp.CashHuntAvgStatsByPosition = buildCashHuntGridStats(cashHuntGrids)

	for _, symbol := range cashHuntSymbolOrder {
		acc := cashHuntSymbols[symbol]
		avg := mean(acc.multipliers)
		// 同窗口占位基线，偏差恒为0
		resp.CashHuntSymbolStats = append(resp.CashHuntSymbolStats, CashHuntSymbolStat{
			Symbol:                                symbol,
			AvgMultiplier:                         round2(avg),
			Count:                                 len(acc.multipliers),
			CashHuntMultiplierFrequencyPercentage: 0,
			CashHuntLongTermAverage:               round2(avg),
		})
	}
	sort.SliceStable(resp.CashHuntSymbolStats, func(i, j int) bool {
		return resp.CashHuntSymbolStats[i].AvgMultiplier > resp.CashHuntSymbolStats[j].AvgMultiplier
	})

	for _, symbol := range flapperSymbolOrder {
		acc := flapperSymbols[symbol]
		avg := mean(acc.multipliers)
		resp.CrazyBonusFlapperStats = append(resp.CrazyBonusFlapperStats, CrazyBonusFlapperStat{
			Symbol:                               symbol,
			AvgMultiplier:                        round2(avg),
			FlapperLongTermAverageMultiplier:     round2(avg),
			FlapperMultiplierFrequencyPercentage: 0,
		})
	}

	coinFlipTotal := 0
	for _, symbol := range coinFlipSymbolOrder {
		coinFlipTotal += coinFlipSymbols[symbol].count
	}
	for _, symbol := range coinFlipSymbolOrder {
		acc := coinFlipSymbols[symbol]
		avg := mean(acc.multipliers)
		percentage := 0.0
		if coinFlipTotal > 0 {
			percentage = float64(acc.count) / float64(coinFlipTotal) * 100
		}
		resp.CoinFlipStats = append(resp.CoinFlipStats, CoinFlipStat{
			Symbol:                                symbol,
			AvgMultiplier:                         round2(avg),
			Count:                                 acc.count,
			Percentage:                            round2(percentage),
			CoinFlipFrequencyPercentage:           0,
			CoinFlipMultiplierFrequencyPercentage: 0,
			CoinFlipMultiplierLongTermAverage:     round2(avg),
			CoinFlipPercentageLongTermAverage:     round2(percentage),
		})
	}

	return resp
}

// buildTopSlotStats 固定两桶：matched=false在前，matched=true在后
func buildTopSlotStats(matched, unmatched int) []TopSlotStat {
	total := matched + unmatched
	share := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return round2(float64(n) / float64(total) * 100)
	}
	return []TopSlotStat{
		{
			Matched:                           false,
			Percentage:                        share(unmatched),
			TotalCount:                        unmatched,
			TopSlotMatchedFrequencyPercentage: 0, // 无历史基线，保持占位0
			TopSlotMatchedLongTermAverage:     share(unmatched),
		},
		{
			Matched:                           true,
			Percentage:                        share(matched),
			TotalCount:                        matched,
			TopSlotMatchedFrequencyPercentage: 0,
			TopSlotMatchedLongTermAverage:     share(matched),
		},
	}
}

// buildCashHuntGridStats 逐格累加sum/count后求均值；窗口内无cash hunt局时返回nil
func buildCashHuntGridStats(grids [][][]outcome.CashHuntCell) *CashHuntAvgStats {
	if len(grids) == 0 {
		return nil
	}

	sums := make([][]float64, cashHuntGridRows)
	counts := make([][]int, cashHuntGridRows)
	for i := range sums {
		sums[i] = make([]float64, cashHuntGridCols)
		counts[i] = make([]int, cashHuntGridCols)
	}

	for _, grid := range grids {
		for i := 0; i < len(grid) && i < cashHuntGridRows; i++ {
			for j := 0; j < len(grid[i]) && j < cashHuntGridCols; j++ {
				if grid[i][j].Multiplier == nil {
					continue
				}
				sums[i][j] += *grid[i][j].Multiplier
				counts[i][j]++
			}
		}
	}

	avg := make([][]float64, cashHuntGridRows)
	maxAvg := 0.0
	minAvg := math.Inf(1)
	for i := 0; i < cashHuntGridRows; i++ {
		avg[i] = make([]float64, cashHuntGridCols)
		for j := 0; j < cashHuntGridCols; j++ {
			if counts[i][j] == 0 {
				continue
			}
			avg[i][j] = sums[i][j] / float64(counts[i][j])
			maxAvg = math.Max(maxAvg, avg[i][j])
			minAvg = math.Min(minAvg, avg[i][j])
		}
	}
	if math.IsInf(minAvg, 1) {
		minAvg = 0
	}

	return &CashHuntAvgStats{
		CashHuntAvgArray: avg,
		MaxMultiplier:    round2(maxAvg),
		MinMultiplier:    round2(minAvg),
	}
}

// decodeWinners 解出存储的中奖玩家列表；缺失或损坏时视为无人中奖
func decodeWinners(raw []byte) []model.RawWinner {
	if len(raw) == 0 {
		return nil
	}
	var winners []model.RawWinner
	if err := json.Unmarshal(raw, &winners); err != nil {
		return nil
	}
	return winners
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// round2 保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// isoTime 对外输出统一用带毫秒的ISO-8601 UTC时间
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
