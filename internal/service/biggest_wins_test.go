package service

import (
	"fmt"
	"testing"
	"time"

	"CasinoTracker/internal/model"
)

func winResult(gameID, externalID string, settledAt time.Time, outcomeJSON string) *model.GameResult {
	r := spinResult(externalID, settledAt, outcomeJSON)
	r.CasinoGameID = gameID
	return r
}

func TestTransformToBiggestWin_Threshold(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		multiplier float64
		wantWin    bool
	}{
		{"低于门槛", 49.99, false},
		{"恰好门槛", 50, true},
		{"远超门槛", 2500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := winResult("g1", "e1", base, wheelOutcome("Pachinko", tt.multiplier))
			win := TransformToBiggestWin(result, "crazytime")
			if (win != nil) != tt.wantWin {
				t.Fatalf("TransformToBiggestWin(multiplier=%v) = %v, wantWin=%v", tt.multiplier, win, tt.wantWin)
			}
		})
	}
}

func TestTransformToBiggestWin_NoOutcome(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	result := &model.GameResult{
		ID: "r1", CasinoGameID: "g1", ExternalID: "e1",
		StartedAt: base.Add(-time.Minute), SettledAt: base,
		Result: []byte(`{"somethingElse": 1}`),
	}
	if win := TransformToBiggestWin(result, "crazytime"); win != nil {
		t.Fatalf("无outcome的结果 = %+v, want nil", win)
	}
}

func TestTransformToBiggestWin_Fields(t *testing.T) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	settled := start.Add(45 * time.Second)
	result := winResult("g1", "evt-99", settled, `{"wheelResult": {"type": "BonusRound", "wheelSector": "CashHunt"}, "maxMultiplier": 150}`)
	result.StartedAt = start
	result.Winners = []byte(`[{"screenName": "longplayer", "winnings": 7500}]`)

	win := TransformToBiggestWin(result, "crazy-time")
	if win == nil {
		t.Fatal("TransformToBiggestWin() = nil, want win")
	}
	if win.GameShow != "CRAZY_TIME" {
		t.Errorf("GameShow = %s, want CRAZY_TIME（大写且-换_）", win.GameShow)
	}
	if win.DurationInSeconds != 45 {
		t.Errorf("DurationInSeconds = %d, want 45", win.DurationInSeconds)
	}
	if win.SpinOutcome != "CashHunt" {
		t.Errorf("SpinOutcome = %s, want CashHunt", win.SpinOutcome)
	}
	if win.StreamURL != "https://media.groundsplatform.com/streamer/clips/evt-99/index.m3u8" {
		t.Errorf("StreamURL = %s", win.StreamURL)
	}
	if win.ThumbnailURL != "https://media.groundsplatform.com/streamer/thumbs/evt-99.jpg" {
		t.Errorf("ThumbnailURL = %s", win.ThumbnailURL)
	}
	if len(win.Winners) != 1 || win.Winners[0].ScreenName != "lon..." {
		t.Errorf("Winners = %+v, want 一条脱敏昵称lon...", win.Winners)
	}
	if win.RouletteNumberColor != "" {
		t.Errorf("非轮盘游戏RouletteNumberColor = %q, want 空", win.RouletteNumberColor)
	}
}

func TestTransformToBiggestWin_RouletteColor(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		sector    string
		wantColor string
	}{
		{"绿0", "0", "Green"},
		{"红7", "7", "Red"},
		{"黑8", "8", "Black"},
		{"非数字落点", "LightningRound", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomeJSON := fmt.Sprintf(`{"wheelResult": {"type": "WinningNumber", "wheelSector": %q}, "maxMultiplier": 500}`, tt.sector)
			win := TransformToBiggestWin(winResult("g1", "e1", base, outcomeJSON), "lightning-roulette")
			if win == nil {
				t.Fatal("TransformToBiggestWin() = nil")
			}
			if win.RouletteNumberColor != tt.wantColor {
				t.Errorf("RouletteNumberColor = %q, want %q", win.RouletteNumberColor, tt.wantColor)
			}
		})
	}
}

func TestGetBiggestWins_SortAndTieBreak(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	apiNames := map[string]string{"g1": "crazytime", "g2": "funkytime"}
	results := []*model.GameResult{
		winResult("g1", "low", base, wheelOutcome("5", 80)),
		winResult("g1", "tieOld", base.Add(time.Second), wheelOutcome("10", 120)),
		winResult("g2", "tieNew", base.Add(2*time.Second), wheelOutcome("10", 120)),
		winResult("g1", "under", base.Add(3*time.Second), wheelOutcome("1", 20)),
	}

	wins := GetBiggestWins(results, apiNames, 10)
	if len(wins) != 3 {
		t.Fatalf("榜单条数 = %d, want 3（20x被门槛过滤）", len(wins))
	}
	// 平倍时更新的一局在前
	if wins[0].ID != "tieNew" || wins[1].ID != "tieOld" {
		t.Fatalf("平倍排序 = [%s, %s], want [tieNew, tieOld]", wins[0].ID, wins[1].ID)
	}
	if wins[2].ID != "low" {
		t.Fatalf("末位 = %s, want low", wins[2].ID)
	}

	// size=1只留最大的一条
	top := GetBiggestWins(results, apiNames, 1)
	if len(top) != 1 || top[0].ID != "tieNew" {
		t.Fatalf("size=1榜单 = %+v, want 仅tieNew", top)
	}
}

func TestGetBiggestWins_UnknownGameSkipped(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	results := []*model.GameResult{
		winResult("ghost", "e1", base, wheelOutcome("10", 300)),
	}
	wins := GetBiggestWins(results, map[string]string{"g1": "crazytime"}, 10)
	if len(wins) != 0 {
		t.Fatalf("未知游戏的结果应跳过, got %+v", wins)
	}
}
